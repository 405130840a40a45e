package cli

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"

	"noweb/internal/adapter/fs"
	"noweb/internal/adapter/parser"
	"noweb/internal/usecase"
)

var (
	checkJSON     bool
	checkProgress bool
)

var checkCmd = &cobra.Command{
	Use:   "check [path]",
	Short: "Find references to undefined chunks",
	Long: `Walk the directory (default: the root directory) and parse every document
matching the configured include/exclude globs. Each reference to a chunk
that the same document never defines is reported. Exits non-zero when any
reference is unresolved.

Examples:
  noweb check
  noweb check docs/ --json`,
	Args: cobra.MaximumNArgs(1),
	RunE: runCheck,
}

func init() {
	rootCmd.AddCommand(checkCmd)
	checkCmd.Flags().BoolVar(&checkJSON, "json", false, "output as JSON")
	checkCmd.Flags().BoolVar(&checkProgress, "progress", true, "show a progress bar on stderr")
}

func runCheck(cmd *cobra.Command, args []string) error {
	path := GetRootDir()
	if len(args) > 0 {
		var err error
		path, err = filepath.Abs(args[0])
		if err != nil {
			return fmt.Errorf("invalid path: %w", err)
		}
	}

	info, err := os.Stat(path)
	if err != nil {
		return fmt.Errorf("path does not exist: %w", err)
	}
	if !info.IsDir() {
		return fmt.Errorf("path is not a directory: %s", path)
	}

	cfg := GetConfig()
	d := GetDialect()

	walker := fs.NewWalker(cfg.Check.Includes, cfg.Check.Excludes)
	checkUC := usecase.NewCheckUseCase(walker, fs.NewDocumentReader(cmd.InOrStdin()), parser.NewParser(d), d)

	var progress usecase.ProgressFunc
	if checkProgress && !checkJSON {
		progress = newProgress(cmd)
	}

	result, err := checkUC.Check(path, progress)
	if err != nil {
		return fmt.Errorf("check failed: %w", err)
	}

	out := cmd.OutOrStdout()
	if checkJSON {
		data, err := json.MarshalIndent(result, "", "  ")
		if err != nil {
			return err
		}
		fmt.Fprintln(out, string(data))
	} else {
		for _, file := range result.Files {
			for _, f := range file.Findings {
				fmt.Fprintf(out, "%s: chunk %q references undefined chunk %q", relTo(path, f.Path), f.Chunk, f.Missing)
				if len(f.Suggestions) > 0 {
					fmt.Fprintf(out, " (did you mean %s?)", strings.Join(f.Suggestions, ", "))
				}
				fmt.Fprintln(out)
			}
		}
		for _, e := range result.Errors {
			fmt.Fprintf(out, "warning: %s\n", e)
		}
		fmt.Fprintf(out, "Checked %d document(s): %d unresolved reference(s)\n", len(result.Files), result.Findings)
	}

	if result.Findings > 0 {
		return fmt.Errorf("%d unresolved reference(s)", result.Findings)
	}
	return nil
}

// newProgress reports on stderr, initializing the bar once the total
// number of documents is known.
func newProgress(cmd *cobra.Command) usecase.ProgressFunc {
	var bar *progressbar.ProgressBar
	var barMu sync.Mutex
	var startTime time.Time

	return func(processed, total int, current string) {
		barMu.Lock()
		defer barMu.Unlock()

		if bar == nil {
			startTime = time.Now()
			bar = progressbar.NewOptions(total,
				progressbar.OptionSetWriter(cmd.ErrOrStderr()),
				progressbar.OptionEnableColorCodes(true),
				progressbar.OptionShowBytes(false),
				progressbar.OptionSetWidth(40),
				progressbar.OptionShowCount(),
				progressbar.OptionSetDescription("[cyan]Checking[reset]"),
				progressbar.OptionSetTheme(progressbar.Theme{
					Saucer:        "[green]=[reset]",
					SaucerHead:    "[green]>[reset]",
					SaucerPadding: " ",
					BarStart:      "[",
					BarEnd:        "]",
				}),
				progressbar.OptionOnCompletion(func() {
					fmt.Fprintln(cmd.ErrOrStderr())
				}),
			)
		}

		bar.Set(processed)

		if processed > 0 && processed < total {
			elapsed := time.Since(startTime)
			rate := float64(processed) / elapsed.Seconds()
			if rate > 0 {
				eta := time.Duration(float64(total-processed)/rate) * time.Second
				bar.Describe(fmt.Sprintf("[cyan]Checking[reset] ETA: %s", formatDuration(eta)))
			}
		}
	}
}

func relTo(base, path string) string {
	if rel, err := filepath.Rel(base, path); err == nil {
		return rel
	}
	return path
}

// formatDuration formats a duration in a human-readable way.
func formatDuration(d time.Duration) string {
	if d < time.Second {
		return "<1s"
	}
	if d < time.Minute {
		return fmt.Sprintf("%ds", int(d.Seconds()))
	}
	if d < time.Hour {
		m := int(d.Minutes())
		s := int(d.Seconds()) % 60
		return fmt.Sprintf("%dm%ds", m, s)
	}
	h := int(d.Hours())
	m := int(d.Minutes()) % 60
	return fmt.Sprintf("%dh%dm", h, m)
}
