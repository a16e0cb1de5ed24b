package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"mailsift/internal/config"
	"mailsift/internal/export"
	"mailsift/internal/gmail"
	"mailsift/internal/redact"
	"mailsift/internal/store"
	"mailsift/internal/tui"
)

var (
	flagConfig   string
	flagQuery    string
	flagLabels   []string
	flagMax      int
	flagWorkers  int
	flagMaxChars int
	flagOutput   string
	flagRotate   int64
	flagResume   bool
	flagNoRedact bool
	flagEnable   []string
	flagDisable  []string
	flagSpam     bool
	flagNoTUI    bool
	flagLogLevel string
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "mailsift",
		Short: "Export Gmail mailbox metadata to CSV with privacy redaction",
	}
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "path to YAML config file")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "", "log level (debug, info, warn, error)")

	exportCmd := &cobra.Command{
		Use:   "export",
		Short: "Fetch messages and write them as CSV rows",
		RunE:  runExport,
	}
	exportCmd.Flags().StringVarP(&flagQuery, "query", "q", "", "Gmail search query (e.g. \"after:2025/01/01\")")
	exportCmd.Flags().StringSliceVarP(&flagLabels, "label", "l", nil, "label IDs to restrict the export to")
	exportCmd.Flags().IntVar(&flagMax, "max", 0, "maximum messages to export (0 = all)")
	exportCmd.Flags().IntVar(&flagWorkers, "workers", 0, "concurrent fetch workers")
	exportCmd.Flags().IntVar(&flagMaxChars, "max-chars", -1, "truncate bodies to this many characters (0 = unlimited)")
	exportCmd.Flags().StringVarP(&flagOutput, "output", "o", "", "output CSV path")
	exportCmd.Flags().Int64Var(&flagRotate, "rotate-bytes", -1, "start a new file past this size (0 = never)")
	exportCmd.Flags().BoolVar(&flagResume, "resume", false, "skip messages already exported in earlier runs")
	exportCmd.Flags().BoolVar(&flagNoRedact, "no-redact", false, "disable all redaction")
	exportCmd.Flags().StringSliceVar(&flagEnable, "enable", nil, "redaction categories to enable on top of defaults")
	exportCmd.Flags().StringSliceVar(&flagDisable, "disable", nil, "redaction categories to disable")
	exportCmd.Flags().BoolVar(&flagSpam, "include-spam-trash", false, "include SPAM and TRASH messages")
	exportCmd.Flags().BoolVar(&flagNoTUI, "no-tui", false, "plain log output instead of the progress display")

	categoriesCmd := &cobra.Command{
		Use:   "categories",
		Short: "List redaction categories and their defaults",
		Run:   runCategories,
	}

	resetCmd := &cobra.Command{
		Use:   "reset",
		Short: "Forget resume state so the next export starts from scratch",
		RunE:  runReset,
	}

	rootCmd.AddCommand(exportCmd, categoriesCmd, resetCmd)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg, err := config.Load(flagConfig)
	if err != nil {
		return nil, err
	}

	// Flags the user actually set override the file.
	if cmd.Flags().Changed("query") {
		cfg.Export.Query = flagQuery
	}
	if cmd.Flags().Changed("label") {
		cfg.Export.Labels = flagLabels
	}
	if cmd.Flags().Changed("max") {
		cfg.Export.Max = flagMax
	}
	if cmd.Flags().Changed("workers") {
		cfg.Export.Workers = flagWorkers
	}
	if cmd.Flags().Changed("max-chars") {
		cfg.Export.MaxChars = flagMaxChars
	}
	if cmd.Flags().Changed("output") {
		cfg.Output.Path = flagOutput
	}
	if cmd.Flags().Changed("rotate-bytes") {
		cfg.Output.RotateBytes = flagRotate
	}
	if cmd.Flags().Changed("include-spam-trash") {
		cfg.Export.IncludeSpamTrash = flagSpam
	}
	if flagNoRedact {
		cfg.Redact.Enabled = false
	}
	cfg.Redact.Enable = append(cfg.Redact.Enable, flagEnable...)
	cfg.Redact.Disable = append(cfg.Redact.Disable, flagDisable...)
	if flagLogLevel != "" {
		cfg.Logging.Level = flagLogLevel
	}
	return cfg, nil
}

func setupLogger(cfg *config.Config) {
	level := slog.LevelInfo
	switch cfg.Logging.Level {
	case "debug":
		level = slog.LevelDebug
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(logger)
}

func runExport(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	setupLogger(cfg)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	svc, err := gmail.NewService(ctx, cfg.Auth.ConfigDir)
	if err != nil {
		return fmt.Errorf("gmail auth: %w", err)
	}

	st, err := store.NewSQLiteStore(cfg.StatePath())
	if err != nil {
		return fmt.Errorf("open state store: %w", err)
	}
	defer st.Close()

	opts := export.Options{
		Service: svc,
		Store:   st,
		Cfg:     cfg,
		Resume:  flagResume,
	}

	var sum *export.Summary
	if flagNoTUI {
		sum, err = export.Run(ctx, opts)
	} else {
		sum, err = tui.RunProgress(ctx, opts)
	}
	if err != nil {
		return err
	}

	fmt.Printf("wrote %d rows (%d skipped, %d redactions) to %d file(s) in %s\n",
		sum.Written, sum.Skipped, sum.Redacted, sum.Files, sum.Duration.Round(10*time.Millisecond))
	return nil
}

func runCategories(cmd *cobra.Command, args []string) {
	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "CATEGORY\tDEFAULT\tDESCRIPTION")
	for _, cat := range redact.Registry() {
		def := "off"
		if cat.DefaultEnabled {
			def = "on"
		}
		fmt.Fprintf(w, "%s\t%s\t%s\n", cat.Name, def, cat.Description)
	}
	w.Flush()
}

func runReset(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	setupLogger(cfg)

	st, err := store.NewSQLiteStore(cfg.StatePath())
	if err != nil {
		return fmt.Errorf("open state store: %w", err)
	}
	defer st.Close()

	if err := st.Reset(context.Background()); err != nil {
		return err
	}
	fmt.Println("export state cleared")
	return nil
}
