package cmd

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/piwi3910/cutstock/internal/api"
	"github.com/piwi3910/cutstock/internal/task"
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Submit the request and print stats() once it finishes",
	Long: `stats submits the same demand/stock/config request as run, but
instead of printing the per-material best solution it prints the
engine's stats() view: per-state task counts and a one-row report per
task. With a single task this is mostly useful as a smoke test of the
stats() contract; it is where a long-lived server embedding this engine
would expose fleet-wide visibility.`,
	RunE: runStats,
}

func init() {
	rootCmd.AddCommand(statsCmd)

	statsCmd.Flags().StringVar(&demandFile, "demand", "", "Path to a JSON file of []scale.DemandItem (required)")
	statsCmd.Flags().StringVar(&stockFile, "stock", "", "Path to a JSON file of []scale.StockItem (required)")
	statsCmd.Flags().StringVar(&configFile, "config", "", "Path to an OptimizerConfig JSON file")
	statsCmd.Flags().StringVar(&owner, "owner", "cli", "Owner id for single-task-per-owner mode")
	statsCmd.MarkFlagRequired("demand")
	statsCmd.MarkFlagRequired("stock")
}

func runStats(cmd *cobra.Command, args []string) error {
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
	resp := engine.Submit(api.SubmitRequest{Owner: owner, Demand: demand, Stock: stock, Config: cfg})
	if resp.StatusCode != task.Ok {
		return fmt.Errorf("submit rejected: %s", resp.StatusCode)
	}

	for {
		status, ok := engine.Status(resp.TaskID)
		if !ok {
			break
		}
		if status.State == task.Finished.String() || status.State == task.Terminated.String() || status.State == task.Error.String() {
			break
		}
		time.Sleep(100 * time.Millisecond)
	}

	out, err := json.MarshalIndent(engine.Stats(), "", "  ")
	if err != nil {
		return err
	}
	fmt.Println(string(out))
	return nil
}
