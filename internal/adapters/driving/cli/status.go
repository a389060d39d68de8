package cli

import (
	"github.com/spf13/cobra"
)

var statusJSON bool

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show the robot's position and driver set",
	Args:  cobra.NoArgs,
	RunE:  runStatus,
}

func init() {
	statusCmd.Flags().BoolVar(&statusJSON, "json", false, "output as JSON")
	rootCmd.AddCommand(statusCmd)
}

func runStatus(cmd *cobra.Command, _ []string) error {
	rt, err := loadRuntime(cmd.Context())
	if err != nil {
		return err
	}

	st := rt.Navigation.Status()
	if statusJSON {
		return outputJSON(cmd, st)
	}

	cmd.Printf("Position: %s\n", st.Position.DisplayName())
	cmd.Printf("State:    %s\n", st.State)
	if rt.Drivers != "" {
		cmd.Printf("Drivers:  %s\n", rt.Drivers)
	}
	return nil
}
