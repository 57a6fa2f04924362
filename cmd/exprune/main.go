package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"exprune/internal/app"
	"exprune/internal/config"
	"exprune/internal/prune"

	"github.com/spf13/cobra"
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:     "exprune",
	Short:   "Delete files exponentially based on their age",
	Version: "0.1.1",
	Long: `exprune groups the files of a directory into exponential age buckets
(1, 2, 4, 8, 16, ... days) and keeps only the given number of files per
bucket, deleting the rest after confirmation.`,
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runPrune(cmd, "Prune")
	},
}

// addPruneFlags registers the shared pruning flags on a command.
func addPruneFlags(cmd *cobra.Command) {
	cmd.Flags().StringP("path", "p", "", "Path to the directory")
	cmd.Flags().StringP("sort", "s", "", "Sort by: mtime (modification time), ctime (status-change time), atime (access time); default ctime")
	cmd.Flags().IntP("keep", "k", 0, "Number of files to keep per time segment")
	cmd.Flags().BoolP("force", "f", false, "FOR EXPERTS ONLY! Automatically confirm deletion without prompting. Cannot be used with --print-only")
	cmd.Flags().BoolP("print-only", "o", false, "Dry run: no files will be deleted. Cannot be used with --force or --quiet")
	cmd.Flags().BoolP("recursive", "r", false, "Recursive mode: also process files in subdirectories, each grouped independently")
	cmd.Flags().BoolP("quiet", "q", false, "Quiet mode: no output except for errors; confirms deletion implicitly. Cannot be used with --print-only")
	cmd.MarkFlagRequired("path")
	cmd.MarkFlagRequired("keep")
}

// pruneOptions assembles prune.Options from a command's flags, resolving
// the sort mode against the config default. Invalid sort values degrade to
// ctime with a warning on stderr.
func pruneOptions(cmd *cobra.Command, cfg *config.Config) prune.Options {
	path, _ := cmd.Flags().GetString("path")
	sortStr, _ := cmd.Flags().GetString("sort")
	keep, _ := cmd.Flags().GetInt("keep")
	force, _ := cmd.Flags().GetBool("force")
	printOnly, _ := cmd.Flags().GetBool("print-only")
	recursive, _ := cmd.Flags().GetBool("recursive")
	quiet, _ := cmd.Flags().GetBool("quiet")

	if sortStr == "" {
		sortStr = cfg.DefaultSort
	}
	mode, ok := prune.ParseSortMode(sortStr)
	if !ok {
		fmt.Fprintln(os.Stderr, "Invalid sort type. Defaulting to ctime.")
	}

	return prune.Options{
		Path:      path,
		Mode:      mode,
		Keep:      keep,
		Force:     force,
		PrintOnly: printOnly,
		Recursive: recursive,
		Quiet:     quiet,
	}
}

// validateFlagMatrix rejects incompatible flag combinations before any
// filesystem access (including config loading side effects).
func validateFlagMatrix(cmd *cobra.Command) error {
	keep, _ := cmd.Flags().GetInt("keep")
	force, _ := cmd.Flags().GetBool("force")
	printOnly, _ := cmd.Flags().GetBool("print-only")
	quiet, _ := cmd.Flags().GetBool("quiet")

	pre := prune.Options{Keep: keep, Force: force, PrintOnly: printOnly, Quiet: quiet}
	return pre.Validate()
}

func runPrune(cmd *cobra.Command, operation string) error {
	if err := validateFlagMatrix(cmd); err != nil {
		return err
	}

	a, err := app.New(operation)
	if err != nil {
		return err
	}
	defer a.Close()

	opts := pruneOptions(cmd, a.Config())
	reporter := prune.NewReporter(os.Stdout, os.Stderr, opts.Quiet)
	return a.Service().Run(opts, reporter)
}

// config command
var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage configuration",
}

var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Initialize configuration",
	RunE: func(cmd *cobra.Command, args []string) error {
		defaults, err := app.GetDefaults()
		if err != nil {
			return fmt.Errorf("failed to get defaults: %w", err)
		}

		cfg := config.NewConfig(defaults["base_dir"])
		if err := config.Init(defaults["config_path"], cfg); err != nil {
			return fmt.Errorf("failed to initialize config: %w", err)
		}

		fmt.Printf("Configuration initialized at %s\n", defaults["config_path"])
		fmt.Printf("Log Dir:      %s\n", cfg.LogDir)
		fmt.Printf("History Dir:  %s\n", cfg.History.DataDir)
		return nil
	},
}

var configListCmd = &cobra.Command{
	Use:   "list",
	Short: "View configuration",
	RunE: func(cmd *cobra.Command, args []string) error {
		defaults, err := app.GetDefaults()
		if err != nil {
			return fmt.Errorf("failed to get defaults: %w", err)
		}

		cfg, err := config.LoadOrDefault(defaults["config_path"], defaults["base_dir"])
		if err != nil {
			return fmt.Errorf("failed to read config: %w", err)
		}

		fmt.Printf("Configuration from %s:\n\n", defaults["config_path"])
		fmt.Printf("Default Sort: %s\n", cfg.DefaultSort)
		fmt.Printf("Log Dir:      %s\n", cfg.LogDir)
		fmt.Printf("History:      type=%s disabled=%v dir=%s\n", cfg.History.Type, cfg.History.Disabled, cfg.History.DataDir)
		fmt.Printf("Ignore:       %v\n", cfg.Filesystem.Ignore)
		return nil
	},
}

// history command
var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "View prune run history",
	RunE: func(cmd *cobra.Command, args []string) error {
		limit, _ := cmd.Flags().GetInt("limit")
		runID, _ := cmd.Flags().GetString("run")

		a, err := app.New("History")
		if err != nil {
			return err
		}
		defer a.Close()

		if runID != "" {
			return printDeletions(a, runID)
		}
		return printRuns(a, limit)
	},
}

func printRuns(a *app.App, limit int) error {
	runs, err := a.History().ListRuns(limit)
	if err != nil {
		return err
	}

	if len(runs) == 0 {
		fmt.Println("No prune runs recorded.")
		return nil
	}

	for _, run := range runs {
		duration := ""
		if !run.FinishedAt.IsZero() {
			duration = run.FinishedAt.Sub(run.StartedAt).String()
		}
		fmt.Printf("%s  %s  %-8s  keep=%d deleted=%d failed=%d  %s  %s\n",
			run.ID[:8],
			run.StartedAt.Format("2006-01-02 15:04:05"),
			run.Status,
			run.KeepCount,
			run.Deleted,
			run.Failed,
			run.Path,
			duration,
		)
	}
	return nil
}

func printDeletions(a *app.App, runID string) error {
	deletions, err := a.History().ListDeletions(runID)
	if err != nil {
		return err
	}

	if len(deletions) == 0 {
		fmt.Println("No deletions recorded for this run.")
		return nil
	}

	for _, d := range deletions {
		detail := ""
		if d.Error != "" {
			detail = "  " + d.Error
		}
		fmt.Printf("%-8s  %s  %s%s\n",
			d.Status,
			d.FileTime.Format("2006-01-02 15:04:05"),
			d.Path,
			detail,
		)
	}
	return nil
}

// schedule command
var scheduleCmd = &cobra.Command{
	Use:   "schedule",
	Short: "Run pruning on a cron schedule",
	Long: `Runs the prune repeatedly per a cron expression (5-field syntax:
minute hour day month weekday) until interrupted. Scheduled runs never
prompt: they behave as if --force were given unless --print-only is set.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := validateFlagMatrix(cmd); err != nil {
			return err
		}
		cronSpec, _ := cmd.Flags().GetString("cron")

		a, err := app.New("Schedule")
		if err != nil {
			return err
		}
		defer a.Close()

		opts := pruneOptions(cmd, a.Config())
		if !opts.PrintOnly {
			opts.Force = true
		}

		job := func() error {
			reporter := prune.NewReporter(os.Stdout, os.Stderr, opts.Quiet)
			return a.Service().Run(opts, reporter)
		}

		sched, err := app.NewScheduler(cronSpec, job, a.Logger())
		if err != nil {
			return err
		}

		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		fmt.Printf("Scheduling prune of %s (%s). Press Ctrl-C to stop.\n", opts.Path, cronSpec)
		sched.Run(ctx)
		return nil
	},
}

func init() {
	addPruneFlags(rootCmd)

	configCmd.AddCommand(configInitCmd)
	configCmd.AddCommand(configListCmd)
	rootCmd.AddCommand(configCmd)

	historyCmd.Flags().IntP("limit", "n", 20, "Maximum number of runs to show")
	historyCmd.Flags().String("run", "", "Show per-file outcomes of one run by id")
	rootCmd.AddCommand(historyCmd)

	addPruneFlags(scheduleCmd)
	scheduleCmd.Flags().String("cron", "", "Cron expression, e.g. \"30 3 * * *\"")
	scheduleCmd.MarkFlagRequired("cron")
	rootCmd.AddCommand(scheduleCmd)
}
