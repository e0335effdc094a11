package cmd

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/eigengo/quality/formatter"
	"github.com/eigengo/quality/internal"
	tt "github.com/eigengo/quality/internal/types"
	"github.com/eigengo/quality/lint"
)

var (
	ignoreRules       string
	ignorePaths       string
	outputFormat      string
	outPath           string
	cacheDir          string
	severityThreshold string
)

var lintCmd = &cobra.Command{
	Use:   "lint [paths...]",
	Short: "Run the style checks over files or directories",
	Run: func(cmd *cobra.Command, args []string) {
		if len(args) == 0 {
			fmt.Println("error: Please provide file or directory paths")
			os.Exit(2)
		}

		threshold, err := tt.ParseSeverity(severityThreshold)
		if err != nil || threshold == tt.SeverityOff {
			fmt.Printf("error: invalid severity threshold %q\n", severityThreshold)
			os.Exit(2)
		}

		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()

		engine, err := lint.New(cfgFile)
		if err != nil {
			logger.Error("Failed to initialize lint engine", zap.Error(err))
			os.Exit(2)
		}

		if ignoreRules != "" {
			for _, rule := range strings.Split(ignoreRules, ",") {
				engine.IgnoreRule(strings.TrimSpace(rule))
			}
		}
		if ignorePaths != "" {
			for _, path := range strings.Split(ignorePaths, ",") {
				engine.IgnorePath(strings.TrimSpace(path))
			}
		}

		var cache *internal.Cache
		if cacheDir != "" {
			cache, err = internal.NewCache(cacheDir)
			if err != nil {
				logger.Error("Failed to initialize result cache", zap.Error(err))
				os.Exit(2)
			}
			engine.SetCache(cache)
		}

		exitCode := runLintProcess(ctx, engine, args, threshold)

		// save before exiting; os.Exit skips deferred functions
		if cache != nil {
			if err := cache.Save(); err != nil {
				logger.Warn("Failed to save result cache", zap.Error(err))
			}
		}
		if exitCode != 0 {
			os.Exit(exitCode)
		}
	},
}

func init() {
	lintCmd.Flags().StringVar(&ignoreRules, "ignore", "", "Comma-separated list of rules to ignore")
	lintCmd.Flags().StringVar(&ignorePaths, "ignore-paths", "", "Comma-separated list of paths to ignore")
	lintCmd.Flags().StringVar(&outputFormat, "format", "text", "Output format: text, json or pretty")
	lintCmd.Flags().StringVarP(&outPath, "output", "o", "", "Output path (stdout when empty)")
	lintCmd.Flags().StringVar(&cacheDir, "cache-dir", "", "Directory for the lint result cache")
	lintCmd.Flags().StringVar(&severityThreshold, "severity-threshold", "info", "Lowest severity to report: info, warning or error")
}

// runLintProcess returns the process exit code: 0 for a clean run, 1
// when violations at or above the threshold were found, 2 on failure.
func runLintProcess(ctx context.Context, engine lint.LintEngine, paths []string, threshold tt.Severity) int {
	violations, err := lint.ProcessFiles(ctx, logger, engine, paths, lint.ProcessFile)
	if err != nil {
		logger.Error("Error processing files", zap.Error(err))
		return 2
	}

	formatter.Sort(violations)
	visible := formatter.Filter(violations, threshold)

	if err := printViolations(visible); err != nil {
		logger.Error("Error writing output", zap.Error(err))
		return 2
	}

	if len(visible) > 0 {
		return 1
	}
	return 0
}

func printViolations(violations []tt.Violation) error {
	out := os.Stdout
	if outPath != "" {
		f, err := os.Create(outPath)
		if err != nil {
			return err
		}
		defer f.Close()
		out = f
	}

	switch outputFormat {
	case "json":
		data, err := formatter.JSON(violations)
		if err != nil {
			return err
		}
		_, err = fmt.Fprintln(out, string(data))
		return err
	case "pretty":
		// group per file so each report can show its source snippet
		byFile := make(map[string][]tt.Violation)
		var order []string
		for _, v := range violations {
			if _, seen := byFile[v.Filename]; !seen {
				order = append(order, v.Filename)
			}
			byFile[v.Filename] = append(byFile[v.Filename], v)
		}
		for _, filename := range order {
			snippet, err := formatter.ReadSourceCode(filename)
			if err != nil {
				logger.Warn("Error reading source file", zap.String("file", filename), zap.Error(err))
				snippet = nil
			}
			if _, err := fmt.Fprint(out, formatter.Pretty(byFile[filename], snippet)); err != nil {
				return err
			}
		}
		return nil
	default:
		_, err := fmt.Fprint(out, formatter.Text(violations))
		return err
	}
}
