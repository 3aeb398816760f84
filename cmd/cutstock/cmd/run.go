package cmd

import (
	"encoding/json"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/piwi3910/cutstock/internal/api"
	"github.com/piwi3910/cutstock/internal/config"
	"github.com/piwi3910/cutstock/internal/scale"
	"github.com/piwi3910/cutstock/internal/task"
)

var (
	demandFile         string
	stockFile          string
	configFile         string
	owner              string
	singleTaskPerOwner bool
	pollInterval       time.Duration
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Submit a cutting layout request and wait for its result",
	Long: `run submits a demand/stock request, polls status() until the task
reaches a terminal state, and prints the best solution per material.

Ctrl+C requests cooperative cancellation (stop); a second Ctrl+C or
SIGTERM terminates immediately, discarding in-flight results.`,
	RunE: runRun,
}

func init() {
	rootCmd.AddCommand(runCmd)

	runCmd.Flags().StringVar(&demandFile, "demand", "", "Path to a JSON file of []scale.DemandItem (required)")
	runCmd.Flags().StringVar(&stockFile, "stock", "", "Path to a JSON file of []scale.StockItem (required)")
	runCmd.Flags().StringVar(&configFile, "config", "", "Path to an OptimizerConfig JSON file (defaults to ~/.cutstock/config.json, falling back to built-in defaults)")
	runCmd.Flags().StringVar(&owner, "owner", "cli", "Owner id for single-task-per-owner mode")
	runCmd.Flags().BoolVar(&singleTaskPerOwner, "single-task-per-owner", false, "Reject submission if owner already has a non-terminal task")
	runCmd.Flags().DurationVar(&pollInterval, "poll-interval", 250*time.Millisecond, "How often to poll task status")
	runCmd.MarkFlagRequired("demand")
	runCmd.MarkFlagRequired("stock")
}

func runRun(cmd *cobra.Command, args []string) error {
	log := GetLogger()

	demand, err := loadDemand(demandFile)
	if err != nil {
		return fmt.Errorf("loading demand file: %w", err)
	}
	stock, err := loadStock(stockFile)
	if err != nil {
		return fmt.Errorf("loading stock file: %w", err)
	}
	cfg, err := loadConfig(configFile)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	engine := api.NewEngine(log)
	resp := engine.Submit(api.SubmitRequest{
		Owner:              owner,
		Demand:             demand,
		Stock:              stock,
		Config:             cfg,
		SingleTaskPerOwner: singleTaskPerOwner,
	})
	if resp.StatusCode != task.Ok {
		return fmt.Errorf("submit rejected: %s", resp.StatusCode)
	}
	log.Info("task submitted: %s", resp.TaskID)

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	stopRequested := false

	ticker := time.NewTicker(pollInterval)
	defer ticker.Stop()

	for {
		select {
		case sig := <-sigChan:
			if sig == syscall.SIGTERM || stopRequested {
				log.Warn("terminating task %s immediately", resp.TaskID)
				engine.Terminate(resp.TaskID)
			} else {
				log.Info("stopping task %s (press Ctrl+C again to terminate)", resp.TaskID)
				engine.Stop(resp.TaskID)
				stopRequested = true
			}

		case <-ticker.C:
			status, ok := engine.Status(resp.TaskID)
			if !ok {
				return fmt.Errorf("task %s vanished from the registry", resp.TaskID)
			}
			log.Debug("task %s: %s (%d%%)", resp.TaskID, status.State, status.PercentDone)
			if status.State == task.Finished.String() || status.State == task.Terminated.String() || status.State == task.Error.String() {
				return printResult(status)
			}
		}
	}
}

func printResult(status api.StatusResponse) error {
	out, err := json.MarshalIndent(status, "", "  ")
	if err != nil {
		return err
	}
	fmt.Println(string(out))
	return nil
}

func loadDemand(path string) ([]scale.DemandItem, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var items []scale.DemandItem
	if err := json.Unmarshal(data, &items); err != nil {
		return nil, err
	}
	return items, nil
}

func loadStock(path string) ([]scale.StockItem, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var items []scale.StockItem
	if err := json.Unmarshal(data, &items); err != nil {
		return nil, err
	}
	return items, nil
}

func loadConfig(path string) (config.OptimizerConfig, error) {
	if path != "" {
		return config.Load(path)
	}
	return config.Load(config.DefaultConfigPath())
}
