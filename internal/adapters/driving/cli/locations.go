package cli

import (
	"strings"

	"github.com/spf13/cobra"
)

var locationsJSON bool

var locationsCmd = &cobra.Command{
	Use:   "locations",
	Short: "List campus locations and their aliases",
	Args:  cobra.NoArgs,
	RunE:  runLocations,
}

func init() {
	locationsCmd.Flags().BoolVar(&locationsJSON, "json", false, "output as JSON")
	rootCmd.AddCommand(locationsCmd)
}

func runLocations(cmd *cobra.Command, _ []string) error {
	rt, err := loadRuntime(cmd.Context())
	if err != nil {
		return err
	}

	locations := rt.Navigation.Locations()
	if locationsJSON {
		return outputJSON(cmd, locations)
	}

	position := rt.Navigation.Status().Position
	cmd.Printf("Locations (%d):\n", len(locations))
	for _, loc := range locations {
		marker := "  "
		if loc.ID == position {
			marker = "* "
		}
		line := marker + loc.Name
		if len(loc.Aliases) > 0 {
			line += " (" + strings.Join(loc.Aliases, ", ") + ")"
		}
		cmd.Println(line)
	}
	return nil
}
