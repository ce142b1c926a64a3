// Package main provides the CLI entrypoint for rsvp.
package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/exec"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/verte-zerg/rsvp/internal/config"
	"github.com/verte-zerg/rsvp/internal/historyui"
	"github.com/verte-zerg/rsvp/internal/input"
	"github.com/verte-zerg/rsvp/internal/model"
	"github.com/verte-zerg/rsvp/internal/reader"
	"github.com/verte-zerg/rsvp/internal/render"
	"github.com/verte-zerg/rsvp/internal/stats"
	"github.com/verte-zerg/rsvp/internal/store"
	"github.com/verte-zerg/rsvp/internal/text"
)

const (
	defaultWPM         = 250
	defaultPivotColumn = 12
	defaultCurveWindow = 10
)

var (
	readWPM         int
	readMultiWord   bool
	readPivotColumn int
	readNoHistory   bool

	historySince       string
	historyLast        int
	historyCurveWindow int
	historyPlain       bool
)

func main() {
	rootCmd := newRootCmd()
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "rsvp [file...]",
		Short:         "Terminal speed reader",
		Long:          "Show text one word at a time with the pivot letter on a fixed column.\nKeys while reading: '[' slower, ']' faster, space pause/resume.",
		SilenceUsage:  true,
		SilenceErrors: false,
		RunE:          runReadCmd,
	}

	rootCmd.Flags().IntVar(&readWPM, "wpm", defaultWPM, "initial words per minute")
	rootCmd.Flags().BoolVarP(&readMultiWord, "multiword", "m", false, "merge adjacent short words into one frame")
	rootCmd.Flags().IntVar(&readPivotColumn, "pivot-column", defaultPivotColumn, "terminal column of the pivot letter")
	rootCmd.Flags().BoolVar(&readNoHistory, "no-history", false, "do not record this run")

	rootCmd.AddCommand(newConfigCmd())
	rootCmd.AddCommand(newHistoryCmd())

	return rootCmd
}

func runReadCmd(cmd *cobra.Command, args []string) error {
	cfg, err := resolveReadConfig(cmd, config.DefaultConfigPath())
	if err != nil {
		return err
	}

	inputs, label, closeInputs, err := openInputs(args)
	if err != nil {
		return err
	}
	defer closeInputs()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	opts := []reader.Option{reader.WithSourceLabel(label)}
	tty, err := input.OpenTTY()
	if err != nil {
		logErrf("interactive controls unavailable: %v\n", err)
	} else {
		defer func() {
			if cerr := tty.Close(); cerr != nil {
				logErrf("failed to restore terminal: %v\n", cerr)
			}
		}()
		opts = append(opts, reader.WithControl(tty))
	}

	out := render.New(os.Stdout, cfg.PivotColumn, terminalWidth(os.Stdout))
	run, runErr := reader.New(cfg, out, opts...).Run(ctx, text.NewLineSource(inputs...))
	if err := stats.RenderRunReport(os.Stdout, run); err != nil {
		logErrf("failed to print statistics: %v\n", err)
	}
	if cfg.History && run.Words > 0 {
		recordRun(run)
	}
	if runErr != nil {
		return fmt.Errorf("failed to read input: %w", runErr)
	}
	return nil
}

func resolveReadConfig(cmd *cobra.Command, path string) (model.Config, error) {
	fileCfg, err := config.LoadConfig(path)
	if err != nil {
		return model.Config{}, fmt.Errorf("failed to load config: %w", err)
	}
	applyIntConfig(cmd, "wpm", &readWPM, fileCfg.Reader.WPM)
	applyBoolConfig(cmd, "multiword", &readMultiWord, fileCfg.Reader.MultiWord)
	applyIntConfig(cmd, "pivot-column", &readPivotColumn, fileCfg.Reader.PivotColumn)

	history := !readNoHistory
	if fileCfg.Reader.History != nil && !cmd.Flags().Changed("no-history") {
		history = *fileCfg.Reader.History
	}

	cfg := model.Config{
		WPM:         readWPM,
		MultiWord:   readMultiWord,
		PivotColumn: readPivotColumn,
		History:     history,
	}
	if err := validateConfig(cfg); err != nil {
		return model.Config{}, err
	}
	return cfg, nil
}

// openInputs returns the files named in args, or stdin when there are none.
func openInputs(args []string) ([]io.Reader, string, func(), error) {
	if len(args) == 0 {
		if term.IsTerminal(int(os.Stdin.Fd())) {
			return nil, "", nil, fmt.Errorf("no input: pass a file or pipe text on stdin")
		}
		return []io.Reader{os.Stdin}, "stdin", func() {}, nil
	}
	readers, closeAll, err := text.OpenFiles(args)
	if err != nil {
		return nil, "", nil, err
	}
	names := make([]string, len(args))
	for i, arg := range args {
		names[i] = filepath.Base(arg)
	}
	return readers, strings.Join(names, ","), closeAll, nil
}

func terminalWidth(f *os.File) int {
	fd := int(f.Fd())
	if !term.IsTerminal(fd) {
		return 0
	}
	width, _, err := term.GetSize(fd)
	if err != nil {
		return 0
	}
	return width
}

func recordRun(run model.RunStats) {
	st, err := store.Open(config.DefaultDBPath())
	if err != nil {
		logErrf("failed to open db: %v\n", err)
		return
	}
	defer func() {
		if cerr := st.Close(); cerr != nil {
			logErrf("failed to close db: %v\n", cerr)
		}
	}()
	if _, err := st.InsertRun(context.Background(), run); err != nil {
		logErrf("failed to save run: %v\n", err)
	}
}

func newConfigCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "config",
		Short: "Create/open config file",
		Args:  cobra.NoArgs,
		RunE:  runConfigCmd,
	}
}

func runConfigCmd(_ *cobra.Command, _ []string) error {
	path := config.DefaultConfigPath()
	if err := writeDefaultConfig(path); err != nil {
		return err
	}

	editor := strings.TrimSpace(os.Getenv("EDITOR"))
	if editor == "" {
		editor = "vi"
	}
	parts := strings.Fields(editor)
	if len(parts) == 0 {
		return fmt.Errorf("editor command is empty")
	}
	cmd := exec.Command(parts[0], append(parts[1:], path)...)
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("failed to open editor: %w", err)
	}
	return nil
}

// writeDefaultConfig creates path from the template unless it already exists.
func writeDefaultConfig(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}
	if _, err := os.Stat(path); err != nil {
		if !os.IsNotExist(err) {
			return fmt.Errorf("failed to stat config: %w", err)
		}
		if err := os.WriteFile(path, []byte(defaultConfigTemplate()), 0o644); err != nil {
			return fmt.Errorf("failed to write config: %w", err)
		}
	}
	return nil
}

func newHistoryCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "history",
		Short: "Show past reading runs",
		Args:  cobra.NoArgs,
		RunE:  runHistoryCmd,
	}
	cmd.Flags().StringVar(&historySince, "since", "", "start date (YYYY-MM-DD)")
	cmd.Flags().IntVar(&historyLast, "last", 0, "limit to last N runs")
	cmd.Flags().IntVar(&historyCurveWindow, "curve-window", defaultCurveWindow, "moving average window")
	cmd.Flags().BoolVar(&historyPlain, "plain", false, "print a summary and table instead of the TUI")
	return cmd
}

func runHistoryCmd(cmd *cobra.Command, _ []string) error {
	cfg, err := historyConfig(historySince, historyLast, historyCurveWindow)
	if err != nil {
		return err
	}

	st, err := store.Open(config.DefaultDBPath())
	if err != nil {
		return fmt.Errorf("failed to open db: %w", err)
	}
	defer func() {
		if cerr := st.Close(); cerr != nil {
			logErrf("failed to close db: %v\n", cerr)
		}
	}()

	if historyPlain {
		return printHistory(cmd.Context(), cmd.OutOrStdout(), st, cfg)
	}

	ui := historyui.NewModel(historyui.StoreLoader(st), cfg)
	program := tea.NewProgram(ui, tea.WithAltScreen())
	if _, err := program.Run(); err != nil {
		return fmt.Errorf("failed to run history TUI: %w", err)
	}
	return nil
}

func historyConfig(since string, last, window int) (model.HistoryConfig, error) {
	if last < 0 {
		return model.HistoryConfig{}, fmt.Errorf("--last must be >= 0")
	}
	if window <= 0 {
		return model.HistoryConfig{}, fmt.Errorf("--curve-window must be > 0")
	}
	cfg := model.HistoryConfig{Last: last, CurveWindow: window}
	if since != "" {
		parsed, err := time.ParseInLocation("2006-01-02", since, time.Local)
		if err != nil {
			return model.HistoryConfig{}, fmt.Errorf("invalid --since value: %w", err)
		}
		cfg.Since = &parsed
	}
	return cfg, nil
}

func printHistory(ctx context.Context, w io.Writer, st *store.Store, cfg model.HistoryConfig) error {
	report, err := stats.BuildReport(ctx, st, cfg)
	if err != nil {
		return fmt.Errorf("failed to load history: %w", err)
	}
	if err := stats.RenderSummary(w, report.Runs); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	if err := stats.RenderRunTable(w, report.Runs); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	return nil
}

func applyIntConfig(cmd *cobra.Command, name string, target, value *int) {
	if value == nil {
		return
	}
	if cmd.Flags().Changed(name) {
		return
	}
	*target = *value
}

func applyBoolConfig(cmd *cobra.Command, name string, target, value *bool) {
	if value == nil {
		return
	}
	if cmd.Flags().Changed(name) {
		return
	}
	*target = *value
}

func defaultConfigTemplate() string {
	return fmt.Sprintf(`# rsvp configuration
# Uncomment a value to enable it. CLI flags override config values.

[reader]
# wpm = %d              # Initial words per minute
# multiword = false      # Merge adjacent short words into one frame
# pivot-column = %d      # Terminal column of the pivot letter
# history = true         # Record finished runs for 'rsvp history'
`,
		defaultWPM,
		defaultPivotColumn,
	)
}

func validateConfig(cfg model.Config) error {
	if cfg.WPM <= 0 {
		return fmt.Errorf("--wpm must be > 0")
	}
	if cfg.PivotColumn < 0 {
		return fmt.Errorf("--pivot-column must be >= 0")
	}
	return nil
}

func logErrf(format string, args ...any) {
	if _, err := fmt.Fprintf(os.Stderr, format, args...); err != nil {
		// Best-effort logging to stderr.
		_ = err
	}
}
