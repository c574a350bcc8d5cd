package main

import (
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/keepmind9/symbot/internal/adapter"
	"github.com/keepmind9/symbot/internal/core"
	"github.com/keepmind9/symbot/internal/logger"
	"github.com/keepmind9/symbot/internal/robot"
)

var (
	configFile string

	startCmd = &cobra.Command{
		Use:   "start",
		Short: "Start the symbot adapter",
		Long:  "Connect to the Symphony pod, poll the datafeed and log inbound messages",
		Run: func(cmd *cobra.Command, args []string) {
			config, err := core.LoadConfig(configFile)
			if err != nil {
				log.Fatalf("Failed to load config: %v", err)
			}

			logConfig := logger.Config{
				Level:        config.Logging.Level,
				File:         config.Logging.File,
				MaxSize:      config.Logging.MaxSize,
				MaxBackups:   config.Logging.MaxBackups,
				MaxAge:       config.Logging.MaxAge,
				Compress:     config.Logging.Compress,
				EnableStdout: config.Logging.EnableStdout,
			}
			if err := logger.InitLogger(logConfig); err != nil {
				log.Fatalf("Failed to initialize logger: %v", err)
			}

			logger.WithFields(logrus.Fields{
				"config_file": configFile,
				"host":        config.Symphony.Host,
				"log_level":   config.Logging.Level,
			}).Info("symbot-starting")

			bot := robot.NewConsoleRobot()
			adp, err := adapter.NewFromConfig(bot, config, adapter.Options{})
			if err != nil {
				log.Fatalf("Failed to create adapter: %v", err)
			}

			adp.Run()
			fmt.Printf("symbot started against %s, press Ctrl+C to stop\n", config.Symphony.Host)

			sigCh := make(chan os.Signal, 1)
			signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
			sig := <-sigCh

			logger.WithField("signal", sig.String()).Info("symbot-shutting-down")
			adp.Close()
		},
	}
)

func init() {
	startCmd.Flags().StringVarP(&configFile, "config", "c", "config.yaml", "Path to configuration file")
}
