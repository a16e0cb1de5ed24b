// Package export wires the fetch, extract, redact, and CSV layers into a
// single ordered pipeline run.
package export

import (
	"context"
	"fmt"
	"log/slog"
	"sync/atomic"
	"time"

	gmailv1 "google.golang.org/api/gmail/v1"

	"mailsift/internal/config"
	"mailsift/internal/csvout"
	"mailsift/internal/extract"
	"mailsift/internal/gmail"
	"mailsift/internal/model"
	"mailsift/internal/store"
)

// markBatchSize bounds how many written IDs accumulate before a state
// store transaction.
const markBatchSize = 50

// Options configures one export run.
type Options struct {
	Service *gmailv1.Service
	Store   *store.SQLiteStore
	Cfg     *config.Config

	// Resume skips message IDs the state store already knows.
	Resume bool

	// OnProgress, when set, receives a snapshot after every processed
	// message. Calls happen from the consumer goroutine only.
	OnProgress func(model.ExportProgress)

	// fetch stands in for gmail.FetchMessages in tests.
	fetch func(context.Context, gmail.FetchOptions, chan<- gmail.Fetched) error
}

// Summary describes a completed (or failed) run.
type Summary struct {
	Listed   int
	Fetched  int
	Written  int
	Skipped  int
	Errors   int
	Redacted int
	Files    int
	Duration time.Duration
}

// result is one finished pipeline slot, keyed by fetch index.
type result struct {
	id       string
	row      model.Row
	redacted int
	skipped  bool
	failed   bool
}

// Run exports the selected mailbox slice to CSV. Rows come out in list
// order even though fetching is concurrent: results are parked in a map
// until their fetch index is next to write.
func Run(ctx context.Context, opts Options) (*Summary, error) {
	cfg := opts.Cfg
	start := time.Now()

	var skip func(string) bool
	if opts.Resume {
		exported, err := opts.Store.ExportedIDs(ctx)
		if err != nil {
			return nil, fmt.Errorf("load export state: %w", err)
		}
		slog.Info("resuming export", "already_exported", len(exported))
		skip = func(id string) bool { return exported[id] }
	}

	writer, err := csvout.NewWriter(cfg.Output.Path, cfg.Output.RotateBytes)
	if err != nil {
		return nil, err
	}

	sum := &Summary{}
	rc := cfg.RedactionConfig()

	// Written by the lister goroutine, read by the consumer.
	var listed atomic.Int64

	fetch := opts.fetch
	if fetch == nil {
		fetch = func(ctx context.Context, fo gmail.FetchOptions, out chan<- gmail.Fetched) error {
			return gmail.FetchMessages(ctx, opts.Service, fo, out)
		}
	}

	out := make(chan gmail.Fetched, 64)
	fetchErr := make(chan error, 1)
	go func() {
		fetchErr <- fetch(ctx, gmail.FetchOptions{
			Query:            cfg.Export.Query,
			LabelIDs:         cfg.Export.Labels,
			IncludeSpamTrash: cfg.Export.IncludeSpamTrash,
			Max:              int64(cfg.Export.Max),
			PageSize:         cfg.Export.PageSize,
			Workers:          cfg.Export.Workers,
			Skip:             skip,
			OnListed:         func(total int) { listed.Store(int64(total)) },
		}, out)
	}()

	pending := make(map[int]result)
	next := 0
	var markQueue []string

	flushMarks := func() error {
		if len(markQueue) == 0 {
			return nil
		}
		if err := opts.Store.MarkExported(ctx, markQueue); err != nil {
			return fmt.Errorf("mark exported: %w", err)
		}
		markQueue = markQueue[:0]
		return nil
	}

	emit := func() {
		if opts.OnProgress == nil {
			return
		}
		sum.Listed = int(listed.Load())
		opts.OnProgress(model.ExportProgress{
			Listed:   sum.Listed,
			Fetched:  sum.Fetched,
			Written:  sum.Written,
			Skipped:  sum.Skipped,
			Redacted: sum.Redacted,
			Files:    writer.FileCount(),
		})
	}

	var runErr error
	for f := range out {
		r := result{id: f.ID, skipped: f.Skipped}
		switch {
		case f.Skipped:
			sum.Skipped++
		case f.Err != nil:
			slog.Warn("fetch failed", "id", f.ID, "error", f.Err)
			sum.Errors++
			r.failed = true
		default:
			sum.Fetched++
			row, redacted := extract.BuildRow(f.Msg, cfg.Export.MaxChars, rc)
			r.row = row
			r.redacted = redacted
		}
		pending[f.Index] = r

		// Drain everything now contiguous from the write cursor.
		for {
			p, ok := pending[next]
			if !ok {
				break
			}
			delete(pending, next)
			next++

			if p.skipped || p.failed {
				continue
			}
			if runErr == nil {
				if err := writer.WriteRow(p.row); err != nil {
					runErr = fmt.Errorf("write row: %w", err)
					continue
				}
				sum.Written++
				sum.Redacted += p.redacted
				markQueue = append(markQueue, p.id)
				if len(markQueue) >= markBatchSize {
					if err := flushMarks(); err != nil && runErr == nil {
						runErr = err
					}
				}
			}
		}
		emit()
	}

	if err := <-fetchErr; err != nil && runErr == nil {
		runErr = err
	}
	if err := flushMarks(); err != nil && runErr == nil {
		runErr = err
	}
	if err := writer.Close(); err != nil && runErr == nil {
		runErr = fmt.Errorf("close writer: %w", err)
	}

	sum.Listed = int(listed.Load())
	sum.Files = writer.FileCount()
	sum.Duration = time.Since(start)

	if runErr == nil {
		if err := opts.Store.SetLastExportTime(ctx, time.Now().UTC().Format(time.RFC3339)); err != nil {
			slog.Warn("record last export time", "error", err)
		}
	}

	if opts.OnProgress != nil {
		opts.OnProgress(model.ExportProgress{
			Listed: sum.Listed, Fetched: sum.Fetched, Written: sum.Written,
			Skipped: sum.Skipped, Redacted: sum.Redacted, Files: sum.Files,
			Completed: true, Err: runErr,
		})
	}

	slog.Info("export finished",
		"listed", sum.Listed, "written", sum.Written, "skipped", sum.Skipped,
		"errors", sum.Errors, "redacted", sum.Redacted, "files", sum.Files,
		"duration", sum.Duration.Round(time.Millisecond))

	return sum, runErr
}
