package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/campusnav/internal/core/domain"
)

var (
	routeFrom string
	routeJSON bool
)

var routeCmd = &cobra.Command{
	Use:   "route <destination>",
	Short: "Preview the route to a destination without moving",
	Long: `Plans the shortest route and prints the motion instructions the robot
would execute. Nothing is driven.

Examples:
  campusnav route director
  campusnav route exam cell --from library`,
	Args: cobra.MinimumNArgs(1),
	RunE: runRoute,
}

func init() {
	routeCmd.Flags().StringVar(&routeFrom, "from", "", "start location (defaults to the robot's position)")
	routeCmd.Flags().BoolVar(&routeJSON, "json", false, "output the plan as JSON")
	rootCmd.AddCommand(routeCmd)
}

func runRoute(cmd *cobra.Command, args []string) error {
	rt, err := loadRuntime(cmd.Context())
	if err != nil {
		return err
	}

	plan, err := rt.Navigation.Plan(cmd.Context(), routeFrom, strings.Join(args, " "))
	if err != nil {
		return fmt.Errorf("planning route: %w", err)
	}

	if routeJSON {
		return outputJSON(cmd, plan)
	}
	outputPlan(cmd, plan)
	return nil
}

func outputPlan(cmd *cobra.Command, plan *domain.RoutePlan) {
	cmd.Printf("%s to %s\n", plan.From.DisplayName(), plan.To.DisplayName())
	if len(plan.Instructions) == 0 {
		cmd.Println("  Already there.")
		return
	}
	cmd.Printf("  Route:    %s\n", plan.Path.String())
	cmd.Printf("  Distance: %.1fm\n", plan.Distance)
	cmd.Println()
	for i, inst := range plan.Instructions {
		cmd.Printf("  %d. %s\n", i+1, inst.String())
	}
}
