package cli

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"
)

var (
	historyLimit int
	historyJSON  bool
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Show recent navigations",
	Args:  cobra.NoArgs,
	RunE:  runHistory,
}

func init() {
	historyCmd.Flags().IntVarP(&historyLimit, "limit", "n", 20, "maximum number of records")
	historyCmd.Flags().BoolVar(&historyJSON, "json", false, "output as JSON")
	rootCmd.AddCommand(historyCmd)
}

func runHistory(cmd *cobra.Command, _ []string) error {
	rt, err := loadRuntime(cmd.Context())
	if err != nil {
		return err
	}

	records, err := rt.Navigation.History(cmd.Context(), historyLimit)
	if err != nil {
		return fmt.Errorf("reading history: %w", err)
	}

	if historyJSON {
		return outputJSON(cmd, records)
	}
	if len(records) == 0 {
		cmd.Println("No navigations recorded.")
		return nil
	}

	for i := range records {
		r := &records[i]
		cmd.Printf("%s  %-30s %s -> %s\n",
			r.StartedAt.Local().Format("2006-01-02 15:04:05"), r.Status, r.From, r.Destination)
		cmd.Printf("    %s (%d/%d steps, %.1fm, %s)\n",
			r.Message, r.StepsCompleted, r.StepsTotal, r.Distance, r.FinishedAt.Sub(r.StartedAt).Round(100*time.Millisecond))
		if r.Error != "" {
			cmd.Printf("    error: %s\n", r.Error)
		}
	}
	return nil
}
