package cmd

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/eigengo/quality/formatter"
	"github.com/eigengo/quality/internal"
	tt "github.com/eigengo/quality/internal/types"
	"github.com/eigengo/quality/lint"
)

// watchCmd: qlint watch
var watchCmd = &cobra.Command{
	Use:   "watch [dirs...]",
	Short: "Re-run the style checks whenever a Java file changes",
	Run: func(cmd *cobra.Command, args []string) {
		if len(args) == 0 {
			fmt.Println("error: Please provide directory paths to watch")
			os.Exit(2)
		}

		engine, err := lint.New(cfgFile)
		if err != nil {
			logger.Error("Failed to initialize lint engine", zap.Error(err))
			os.Exit(2)
		}

		watcher, err := internal.NewWatcher(engine,
			func(path string, violations []tt.Violation) {
				if len(violations) == 0 {
					fmt.Printf("%s: clean\n", path)
					return
				}
				formatter.Sort(violations)
				snippet, err := formatter.ReadSourceCode(path)
				if err != nil {
					logger.Warn("Error reading source file", zap.String("file", path), zap.Error(err))
				}
				fmt.Print(formatter.Pretty(violations, snippet))
			},
			func(err error) {
				logger.Error("Watch error", zap.Error(err))
			})
		if err != nil {
			logger.Error("Failed to create watcher", zap.Error(err))
			os.Exit(2)
		}

		if err := watcher.Watch(args...); err != nil {
			logger.Error("Failed to start watching", zap.Error(err))
			os.Exit(2)
		}
		fmt.Printf("Watching %v for changes; press Ctrl-C to stop\n", args)

		stop := make(chan os.Signal, 1)
		signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
		<-stop

		if err := watcher.Stop(); err != nil {
			logger.Warn("Error stopping watcher", zap.Error(err))
		}
	},
}
