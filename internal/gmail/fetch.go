package gmail

import (
	"context"
	"fmt"
	"sync"

	gmailv1 "google.golang.org/api/gmail/v1"
)

// FetchOptions controls listing and retrieval. Zero values mean: whole
// mailbox, default page size, default worker count.
type FetchOptions struct {
	Query            string
	LabelIDs         []string
	IncludeSpamTrash bool
	Max              int64 // 0 = no cap
	PageSize         int64 // 0 = 500
	Workers          int   // 0 = 16

	// Skip, when set, is consulted with each listed message ID before it
	// is queued; true means the message is not fetched (resume support).
	Skip func(id string) bool

	// OnListed, when set, is called after each page with the running
	// count of discovered IDs.
	OnListed func(total int)
}

// Fetched is one worker-pool result. Index is the message's position in
// list order; the consumer uses it to restore ordering. Skipped results
// carry no message.
type Fetched struct {
	Index   int
	ID      string
	Msg     *gmailv1.Message
	Skipped bool
	Err     error
}

// FetchMessages streams the mailbox through a bounded worker pool. It
// pages through Users.Messages.List, then fetches each message in FULL
// format concurrently, emitting every outcome (including skips and
// per-message errors) on out exactly once. out is closed before return.
// The function respects ctx for cancelation.
func FetchMessages(ctx context.Context, svc *gmailv1.Service, opts FetchOptions, out chan<- Fetched) error {
	defer close(out)

	user := "me"
	pageSize := opts.PageSize
	if pageSize <= 0 {
		pageSize = 500
	}
	if opts.Max > 0 && opts.Max < pageSize {
		pageSize = opts.Max
	}
	workers := opts.Workers
	if workers <= 0 {
		workers = 16
	}

	type job struct {
		index int
		id    string
	}
	jobs := make(chan job, 1000)

	var wg sync.WaitGroup
	wg.Add(workers)
	for i := 0; i < workers; i++ {
		go func() {
			defer wg.Done()
			for j := range jobs {
				select {
				case <-ctx.Done():
					return
				default:
				}
				msg, err := svc.Users.Messages.Get(user, j.id).Format("full").Do()
				if err != nil {
					out <- Fetched{Index: j.index, ID: j.id, Err: err}
					continue
				}
				out <- Fetched{Index: j.index, ID: j.id, Msg: msg}
			}
		}()
	}

	list := svc.Users.Messages.List(user).
		IncludeSpamTrash(opts.IncludeSpamTrash).
		MaxResults(pageSize)
	if opts.Query != "" {
		list = list.Q(opts.Query)
	}
	if len(opts.LabelIDs) > 0 {
		list = list.LabelIds(opts.LabelIDs...)
	}

	index := 0
	pageToken := ""
	var listErr error

paging:
	for {
		select {
		case <-ctx.Done():
			listErr = ctx.Err()
			break paging
		default:
		}

		call := list
		if pageToken != "" {
			call = call.PageToken(pageToken)
		}
		resp, err := call.Do()
		if err != nil {
			listErr = fmt.Errorf("list messages: %w", err)
			break paging
		}

		for _, m := range resp.Messages {
			if opts.Max > 0 && int64(index) >= opts.Max {
				break paging
			}
			if opts.Skip != nil && opts.Skip(m.Id) {
				out <- Fetched{Index: index, ID: m.Id, Skipped: true}
				index++
				continue
			}
			select {
			case <-ctx.Done():
				listErr = ctx.Err()
				break paging
			case jobs <- job{index: index, id: m.Id}:
				index++
			}
		}
		if opts.OnListed != nil {
			opts.OnListed(index)
		}

		if resp.NextPageToken == "" {
			break
		}
		pageToken = resp.NextPageToken
	}

	close(jobs)
	wg.Wait()
	return listErr
}
