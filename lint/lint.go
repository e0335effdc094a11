package lint

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"sync"

	"github.com/schollz/progressbar/v3"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"github.com/eigengo/quality/internal"
	tt "github.com/eigengo/quality/internal/types"
)

// LintEngine is the part of the engine the orchestration layer needs.
type LintEngine interface {
	Run(filePath string) ([]tt.Violation, error)
	RunSource(filename string, source []byte) ([]tt.Violation, error)
	IgnoreRule(rule string)
	IgnorePath(path string)
}

// New builds an engine from a ruleset file. A missing file means the
// default ruleset; an unreadable or invalid one is a configuration
// error and aborts the run.
func New(configurationPath string) (*internal.Engine, error) {
	config, err := parseConfigurationFile(configurationPath)
	if err != nil {
		return nil, err
	}
	return internal.NewEngine(config.Rules)
}

// ProcessFiles lints every given path (file or directory) and returns
// the concatenated violations.
func ProcessFiles(
	ctx context.Context,
	logger *zap.Logger,
	engine LintEngine,
	paths []string,
	processor func(LintEngine, string) ([]tt.Violation, error),
) ([]tt.Violation, error) {
	var allViolations []tt.Violation
	for _, path := range paths {
		violations, err := ProcessPath(ctx, logger, engine, path, processor)
		if err != nil {
			if logger != nil {
				logger.Error("Error processing path", zap.String("path", path), zap.Error(err))
			}
			return nil, err
		}
		allViolations = append(allViolations, violations...)
	}
	return allViolations, nil
}

// ProcessPath lints one path. Directories are walked for .java files
// and processed by a bounded worker pool; per-file results are merged
// after all workers return, so callers must sort for deterministic
// output.
func ProcessPath(
	ctx context.Context,
	logger *zap.Logger,
	engine LintEngine,
	path string,
	processor func(LintEngine, string) ([]tt.Violation, error),
) ([]tt.Violation, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("error accessing %s: %w", path, err)
	}

	if !info.IsDir() {
		if !hasJavaExtension(path) {
			return nil, nil
		}
		return processor(engine, path)
	}

	var files []string
	err = filepath.Walk(path, func(filePath string, fileInfo os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if !fileInfo.IsDir() && hasJavaExtension(filePath) {
			files = append(files, filePath)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("error walking directory %s: %w", path, err)
	}

	bar := progressbar.NewOptions(len(files),
		progressbar.OptionSetDescription(path),
		progressbar.OptionSetWidth(40),
		progressbar.OptionShowCount(),
	)

	// limit the number of workers
	maxWorkers := runtime.NumCPU()
	sem := make(chan struct{}, maxWorkers)

	var (
		mu         sync.Mutex
		wg         sync.WaitGroup
		violations []tt.Violation
	)
	for _, filePath := range files {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		default:
		}

		sem <- struct{}{}
		wg.Add(1)
		go func(fp string) {
			defer wg.Done()
			defer func() { <-sem }()

			fileViolations, err := processor(engine, fp)
			if err != nil {
				// a worker failure must still surface in the report
				if logger != nil {
					logger.Error("Error processing file", zap.String("file", fp), zap.Error(err))
				}
				fileViolations = []tt.Violation{accessViolation(fp, err)}
			}
			mu.Lock()
			violations = append(violations, fileViolations...)
			mu.Unlock()
			_ = bar.Add(1)
		}(filePath)
	}
	wg.Wait()
	fmt.Println()

	return violations, nil
}

// accessViolation reports a file the pool could not process, keeping
// directory runs from silently dropping unreadable files.
func accessViolation(path string, err error) tt.Violation {
	return tt.Violation{
		Rule:     "file-access",
		Severity: tt.SeverityError,
		Filename: path,
		Line:     1,
		Message:  err.Error(),
	}
}

// ProcessFile lints a single file through the engine.
func ProcessFile(engine LintEngine, filePath string) ([]tt.Violation, error) {
	return engine.Run(filePath)
}

// ProcessSource lints in-memory source text.
func ProcessSource(engine LintEngine, filename string, source []byte) ([]tt.Violation, error) {
	return engine.RunSource(filename, source)
}

func hasJavaExtension(path string) bool {
	return filepath.Ext(path) == ".java"
}

// Config represents the overall configuration with a name and a map of
// rule settings.
type Config struct {
	Name  string                   `yaml:"name"`
	Rules map[string]tt.ConfigRule `yaml:"rules"`
}

func parseConfigurationFile(configurationPath string) (Config, error) {
	var config Config
	if configurationPath == "" {
		return config, nil
	}

	f, err := os.Open(configurationPath)
	if os.IsNotExist(err) {
		// no ruleset file means the default rules
		return config, nil
	}
	if err != nil {
		return config, err
	}
	defer f.Close()

	decoder := yaml.NewDecoder(f)
	if err := decoder.Decode(&config); err != nil {
		return config, fmt.Errorf("error parsing ruleset %s: %w", configurationPath, err)
	}

	return config, nil
}
