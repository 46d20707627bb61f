package commands

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	constants "cryopush/config"
	"cryopush/internal/collector"
	"cryopush/internal/config"
	"cryopush/internal/logger"
	"cryopush/internal/process"
	"cryopush/internal/state"
	"cryopush/internal/transport"
	"cryopush/internal/ui"
	"cryopush/pkg/utils"
)

// NewPushCmd creates the push command: one full collect-and-ship cycle.
// This is the entry point the external scheduler fires.
func NewPushCmd() *cobra.Command {
	var dateFlag string

	cmd := &cobra.Command{
		Use:   "push",
		Short: "Collect today's readings and push them to the metrics backend",
		Long: `Read the freshest record from every recognized log file in today's
dated folder, normalize the values into named metrics and push them,
together with a heartbeat timestamp, to the configured backend.

Examples:
  cryopush push                 # collect and push today's readings
  cryopush push --date 24-03-18 # re-run against a specific day's folder`,
		Run: func(cmd *cobra.Command, args []string) {
			cfg, err := config.LoadConfig()
			if err != nil {
				ui.PrintStatus("error", fmt.Sprintf("Failed to load configuration: %v", err))
				os.Exit(1)
			}
			if err := cfg.Validate(); err != nil {
				ui.PrintStatus("error", fmt.Sprintf("Configuration error: %v", err))
				os.Exit(1)
			}

			day, err := resolveDay(dateFlag)
			if err != nil {
				ui.PrintStatus("error", err.Error())
				os.Exit(1)
			}

			// An overrunning cycle must not be overlapped by the next tick
			lock, err := process.Acquire()
			if err != nil {
				// The lock may be held by an unrelated process after PID
				// reuse; clear that case and retry once
				if cleanupErr := process.CleanupStale(); cleanupErr == nil {
					lock, err = process.Acquire()
				}
			}
			if err != nil {
				ui.PrintStatus("warning", fmt.Sprintf("Skipping cycle: %v", err))
				logger.Warning("skipping cycle: %v", err)
				os.Exit(1)
			}
			defer lock.Release()

			if err := runPushCycle(cfg, day); err != nil {
				os.Exit(1)
			}
		},
	}

	cmd.Flags().StringVar(&dateFlag, "date", "", "Dated folder to collect (YY-MM-DD, default today)")
	return cmd
}

func runPushCycle(cfg *config.Config, day time.Time) error {
	logger.Info("collection cycle starting (logs_dir=%s, transport=%s)", cfg.LogsDir, cfg.Transport)

	result, err := collector.Collect(cfg.LogsDir, day)
	if err != nil {
		ui.PrintStatus("error", fmt.Sprintf("Collection failed: %v", err))
		logger.Error("collection failed: %v", err)
		return err
	}

	for _, fe := range result.FileErrors {
		ui.PrintStatus("warning", fmt.Sprintf("%s: %s", fe.File, fe.Kind))
		logger.Warning("file skipped: %v", fe)
	}

	if cfg.HostDiagnostics {
		diag := collector.HostDiagnostics(cfg.LogsDir)
		for name, value := range diag {
			result.Samples[name] = value
		}
		if used, ok := diag[constants.SELF_METRIC_LOGS_VOLUME_USED]; ok {
			ui.PrintStatus("info", fmt.Sprintf("Logs volume %s used", utils.FormatPercentage(used)))
		}
	}

	pusher, err := newPusher(cfg)
	if err != nil {
		ui.PrintStatus("error", fmt.Sprintf("Transport setup failed: %v", err))
		logger.Error("transport setup failed: %v", err)
		return err
	}

	ctx, cancel := context.WithTimeout(context.Background(), constants.PUSH_TIMEOUT_SECONDS*time.Second)
	defer cancel()

	pushErr := pusher.Push(ctx, result, cfg.MachineName)
	if pushErr != nil {
		ui.PrintStatus("error", fmt.Sprintf("Push failed: %v", pushErr))
		logger.Error("push failed: %v", pushErr)
	} else {
		ui.PrintStatus("success", fmt.Sprintf("Pushed %d metric(s) for %s", len(result.Samples), cfg.MachineName))
	}

	saveRunState(cfg, result, pushErr == nil)
	return pushErr
}

func newPusher(cfg *config.Config) (transport.Pusher, error) {
	switch cfg.Transport {
	case constants.TRANSPORT_PUSHGATEWAY:
		return transport.NewPushgateway(cfg.PushgatewayURL, cfg.JobName)
	case constants.TRANSPORT_OTLP:
		return transport.NewOTLP(cfg.OTLPEndpoint, cfg.OTLPInsecure)
	default:
		return transport.NewNop(), nil
	}
}

func saveRunState(cfg *config.Config, result *collector.Result, pushed bool) {
	run := &state.LastRun{
		Timestamp:   time.Now(),
		SampleCount: len(result.Samples),
		Pushed:      pushed,
		Transport:   cfg.Transport,
	}
	for _, fe := range result.FileErrors {
		run.Failures = append(run.Failures, state.FileFailure{
			File:    fe.File,
			Kind:    string(fe.Kind),
			Message: fe.Err.Error(),
		})
	}

	os.MkdirAll(config.Dir(), 0755)
	if err := state.Save(config.StatePath(), run); err != nil {
		logger.Warning("failed to save run state: %v", err)
	}
}

// resolveDay parses the --date flag or falls back to today
func resolveDay(dateFlag string) (time.Time, error) {
	if dateFlag == "" {
		return time.Now(), nil
	}
	day, err := time.Parse(constants.DATE_FOLDER_LAYOUT, dateFlag)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid --date %q, expected YY-MM-DD", dateFlag)
	}
	return day, nil
}
