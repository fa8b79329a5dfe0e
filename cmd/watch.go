package cmd

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/fisherbryan/boolint/internal"
	"github.com/fisherbryan/boolint/lint"
)

var watchCmd = &cobra.Command{
	Use:   "watch [paths...]",
	Short: "Re-lint files as they change",
	Run: func(cmd *cobra.Command, args []string) {
		if len(args) == 0 {
			fmt.Println("error: Please provide directory paths to watch")
			os.Exit(1)
		}

		engine, err := lint.New(configPath())
		if err != nil {
			logger.Fatal("Failed to initialize lint engine", zap.Error(err))
		}

		watcher, err := internal.NewWatcher(engine, logger)
		if err != nil {
			logger.Fatal("Failed to create watcher", zap.Error(err))
		}
		defer watcher.Close()

		if err := watcher.Watch(args...); err != nil {
			logger.Fatal("Failed to watch paths", zap.Error(err))
		}

		fmt.Printf("Watching %v for changes. Press Ctrl-C to stop.\n", args)

		sig := make(chan os.Signal, 1)
		signal.Notify(sig, os.Interrupt, syscall.SIGTERM)
		<-sig
	},
}
