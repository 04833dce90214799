package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/nao1215/protravel/internal/config"
	"github.com/nao1215/protravel/internal/database"
)

// historyTimeFormat is how timestamps are shown in history listings.
const historyTimeFormat = "2006-01-02 15:04:05"

// NewHistoryCmd creates the history command.
// It shows what earlier crawls recorded in the loot database.
func NewHistoryCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "history [url]",
		Short: "Show files and notices recorded by earlier crawls",
		Long: `History lists what earlier crawls recorded in the loot database.

For a target URL it shows every retrieved path with its size and SHA3-256
digest. Failed attempts are hidden unless --all is given.

Examples:
  # List every target in the database
  protravel history --targets

  # List files retrieved from a target
  protravel history "http://host/dl?f=.."

  # Include failed attempts
  protravel history --all "http://host/dl?f=.."

  # Show notices raised while crawling a target
  protravel history --notices "http://host/dl?f=.."

  # Show earlier runs of a target
  protravel history --runs "http://host/dl?f=.."

  # Output in JSON format
  protravel history --json "http://host/dl?f=.."`,
		Args: cobra.MaximumNArgs(1),
		RunE: runHistoryCmd,
	}

	cmd.Flags().BoolP("targets", "T", false,
		"List all targets in the database")
	cmd.Flags().BoolP("all", "a", false,
		"Include failed attempts")
	cmd.Flags().BoolP("notices", "n", false,
		"Show notices instead of files")
	cmd.Flags().BoolP("runs", "r", false,
		"Show earlier runs instead of files")
	cmd.Flags().BoolP("json", "j", false,
		"Output in JSON format")
	cmd.Flags().String("db-dir", "",
		"Loot database directory (default: XDG data directory)")

	return cmd
}

// historyOptions are the parsed history flags.
type historyOptions struct {
	target   string
	targets  bool
	all      bool
	notices  bool
	runs     bool
	json     bool
	dbDir    string
}

// runHistoryCmd executes the history command.
func runHistoryCmd(cmd *cobra.Command, args []string) error {
	opts, err := parseHistoryFlags(cmd, args)
	if err != nil {
		return err
	}

	// Validate before opening the database so that a usage error never
	// creates an empty database file.
	if !opts.targets && opts.target == "" {
		return errors.New("target URL is required (use --targets to see recorded targets)")
	}
	if opts.notices && opts.runs {
		return errors.New("--notices and --runs cannot be used together")
	}

	db, err := database.Open(opts.dbDir, database.DefaultOptions())
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer db.Close()

	return showHistory(cmd.Context(), db, opts, cmd.OutOrStdout())
}

func parseHistoryFlags(cmd *cobra.Command, args []string) (historyOptions, error) {
	var opts historyOptions
	var err error
	flags := cmd.Flags()

	if len(args) > 0 {
		opts.target = args[0]
	}
	if opts.targets, err = flags.GetBool("targets"); err != nil {
		return opts, err
	}
	if opts.all, err = flags.GetBool("all"); err != nil {
		return opts, err
	}
	if opts.notices, err = flags.GetBool("notices"); err != nil {
		return opts, err
	}
	if opts.runs, err = flags.GetBool("runs"); err != nil {
		return opts, err
	}
	if opts.json, err = flags.GetBool("json"); err != nil {
		return opts, err
	}
	if opts.dbDir, err = flags.GetString("db-dir"); err != nil {
		return opts, err
	}
	if opts.dbDir == "" {
		opts.dbDir = config.XDGDataDir()
	}
	return opts, nil
}

// showHistory writes the listing selected by opts.
func showHistory(ctx context.Context, db *database.LootDB, opts historyOptions, out io.Writer) error {
	if ctx == nil {
		ctx = context.Background()
	}

	switch {
	case opts.targets:
		return listTargets(ctx, db, opts.json, out)
	case opts.notices:
		return listNotices(ctx, db, opts.target, opts.json, out)
	case opts.runs:
		return listRuns(ctx, db, opts.target, opts.json, out)
	default:
		return listFetches(ctx, db, opts.target, opts.all, opts.json, out)
	}
}

// TargetEntry is one line of the target listing.
type TargetEntry struct {
	Target    string    `json:"target"`
	Succeeded int       `json:"succeeded"`
	Empty     int       `json:"empty"`
	Failed    int       `json:"failed"`
	LastSeen  time.Time `json:"last_seen"`
}

// FetchEntry is one recorded fetch attempt.
type FetchEntry struct {
	Path      string    `json:"path"`
	Outcome   string    `json:"outcome"`
	Size      int       `json:"size"`
	Digest    string    `json:"digest,omitempty"`
	Error     string    `json:"error,omitempty"`
	Timestamp time.Time `json:"timestamp"`
}

// NoticeEntry is one recorded notice.
type NoticeEntry struct {
	Path      string    `json:"path"`
	Source    string    `json:"source"`
	Kind      string    `json:"kind"`
	Severity  string    `json:"severity"`
	Message   string    `json:"message"`
	Details   []string  `json:"details,omitempty"`
	Timestamp time.Time `json:"timestamp"`
}

// listTargets lists every target with recorded fetches.
func listTargets(ctx context.Context, db *database.LootDB, jsonOutput bool, out io.Writer) error {
	summaries, err := db.ListTargets(ctx)
	if err != nil {
		return fmt.Errorf("failed to list targets: %w", err)
	}

	entries := make([]TargetEntry, 0, len(summaries))
	for _, s := range summaries {
		entries = append(entries, TargetEntry{
			Target:    s.Target,
			Succeeded: s.Succeeded,
			Empty:     s.Empty,
			Failed:    s.Failed,
			LastSeen:  s.LastSeen,
		})
	}
	if jsonOutput {
		return writeJSON(out, entries)
	}

	if len(entries) == 0 {
		fmt.Fprintln(out, "No targets found in the database.")
		fmt.Fprintln(out, "\nUse 'protravel crawl <url>' to start a crawl.")
		return nil
	}

	fmt.Fprintf(out, "Recorded targets (%d):\n\n", len(entries))
	for _, e := range entries {
		fmt.Fprintf(out, "  • %s\n", e.Target)
		fmt.Fprintf(out, "      stored: %d  empty: %d  failed: %d  last: %s\n",
			e.Succeeded, e.Empty, e.Failed, formatTime(e.LastSeen))
	}
	fmt.Fprintln(out, "\nUse 'protravel history <url>' to see the files of a target.")
	return nil
}

// listFetches lists the recorded attempts of target.
func listFetches(ctx context.Context, db *database.LootDB, target string, all, jsonOutput bool, out io.Writer) error {
	records, err := db.ListFetches(ctx, target, all)
	if err != nil {
		return fmt.Errorf("failed to list fetches: %w", err)
	}

	entries := make([]FetchEntry, 0, len(records))
	for _, r := range records {
		entries = append(entries, FetchEntry{
			Path:      r.Path,
			Outcome:   r.Outcome.String(),
			Size:      r.Size,
			Digest:    r.Digest,
			Error:     r.Error,
			Timestamp: r.Timestamp,
		})
	}
	if jsonOutput {
		return writeJSON(out, entries)
	}

	if len(records) == 0 {
		fmt.Fprintf(out, "No files recorded for %s\n", target)
		return nil
	}

	fmt.Fprintf(out, "Files recorded for %s (%d):\n\n", target, len(records))
	fmt.Fprintf(out, "  %-2s  %-10s  %-16s  %s\n", "", "Size", "Digest", "Path")
	fmt.Fprintln(out, "  "+strings.Repeat("-", 60))
	for _, r := range records {
		fmt.Fprintf(out, "  %-2s  %-10d  %-16s  %s\n",
			r.Outcome.Marker(), r.Size, shortDigest(r.Digest), r.Path)
	}
	return nil
}

// listNotices lists the notices raised for target.
func listNotices(ctx context.Context, db *database.LootDB, target string, jsonOutput bool, out io.Writer) error {
	records, err := db.ListNotices(ctx, target)
	if err != nil {
		return fmt.Errorf("failed to list notices: %w", err)
	}

	entries := make([]NoticeEntry, 0, len(records))
	for _, r := range records {
		entries = append(entries, NoticeEntry{
			Path:      r.Notice.Path,
			Source:    r.Notice.Source,
			Kind:      r.Notice.Kind,
			Severity:  r.Notice.Severity.String(),
			Message:   r.Notice.Message,
			Details:   r.Notice.Details,
			Timestamp: r.Timestamp,
		})
	}
	if jsonOutput {
		return writeJSON(out, entries)
	}

	if len(entries) == 0 {
		fmt.Fprintf(out, "No notices recorded for %s\n", target)
		return nil
	}

	fmt.Fprintf(out, "Notices recorded for %s (%d):\n\n", target, len(entries))
	for _, e := range entries {
		fmt.Fprintf(out, "  [%s] %s\n", e.Severity, e.Message)
		for _, d := range e.Details {
			fmt.Fprintf(out, "      %s\n", d)
		}
	}
	return nil
}

// listRuns lists earlier runs of target, newest first.
func listRuns(ctx context.Context, db *database.LootDB, target string, jsonOutput bool, out io.Writer) error {
	runs, err := db.ListRuns(ctx, target)
	if err != nil {
		return fmt.Errorf("failed to list runs: %w", err)
	}
	if jsonOutput {
		return writeJSON(out, runs)
	}

	if len(runs) == 0 {
		fmt.Fprintf(out, "No runs recorded for %s\n", target)
		return nil
	}

	fmt.Fprintf(out, "Runs recorded for %s (%d):\n\n", target, len(runs))
	fmt.Fprintf(out, "  %-20s  %-12s  %-8s  %-8s  %-8s  %s\n",
		"Started", "State", "Stored", "Empty", "Failed", "Pending")
	fmt.Fprintln(out, "  "+strings.Repeat("-", 72))
	for _, r := range runs {
		fmt.Fprintf(out, "  %-20s  %-12s  %-8d  %-8d  %-8d  %d\n",
			formatTime(r.StartedAt), r.State, r.Succeeded, r.Empty, r.Failed, r.PendingAtExit)
	}
	return nil
}

func writeJSON(out io.Writer, v any) error {
	encoder := json.NewEncoder(out)
	encoder.SetIndent("", "  ")
	return encoder.Encode(v)
}

// shortDigest abbreviates a hex digest for tabular output.
func shortDigest(d string) string {
	if d == "" {
		return "-"
	}
	if len(d) > 16 {
		return d[:16]
	}
	return d
}

func formatTime(t time.Time) string {
	if t.IsZero() {
		return "unknown"
	}
	return t.Local().Format(historyTimeFormat)
}
