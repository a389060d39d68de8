package cli

import (
	"bufio"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/campusnav/internal/core/domain"
)

var errSettingsNotConfigured = errors.New("settings service not configured")

var settingsCmd = &cobra.Command{
	Use:   "settings",
	Short: "Manage navigation settings",
	Long: `View and change motion calibration, map and hardware settings.

Settings are stored in ~/.campusnav/config.toml. Durations ending in _ms are
milliseconds; time_per_meter and time_per_90_turn are seconds. Both also
accept Go duration strings such as 1.5s or 300ms.`,
	RunE: runSettingsShow,
}

var settingsShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show current settings",
	Args:  cobra.NoArgs,
	RunE:  runSettingsShow,
}

var settingsSetCmd = &cobra.Command{
	Use:   "set <key> <value>",
	Short: "Set a single setting",
	Long: `Set a single setting. The result is validated before it is saved.

Examples:
  campusnav settings set navigation.forward_speed 60
  campusnav settings set navigation.time_per_meter 1.8
  campusnav settings set hardware.mode simulated
  campusnav settings set map.path /etc/campusnav/campus.yaml`,
	Args: cobra.ExactArgs(2),
	RunE: runSettingsSet,
}

var settingsKeysCmd = &cobra.Command{
	Use:   "keys",
	Short: "List setting keys",
	Args:  cobra.NoArgs,
	RunE:  runSettingsKeys,
}

var settingsResetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Restore default settings",
	Args:  cobra.NoArgs,
	RunE:  runSettingsReset,
}

var settingsWizardCmd = &cobra.Command{
	Use:   "wizard",
	Short: "Interactive setup wizard",
	Long:  `Run an interactive wizard to choose the start location, driver mode and map.`,
	Args:  cobra.NoArgs,
	RunE:  runSettingsWizard,
}

func init() {
	settingsCmd.AddCommand(settingsShowCmd)
	settingsCmd.AddCommand(settingsSetCmd)
	settingsCmd.AddCommand(settingsKeysCmd)
	settingsCmd.AddCommand(settingsResetCmd)
	settingsCmd.AddCommand(settingsWizardCmd)
	rootCmd.AddCommand(settingsCmd)
}

func runSettingsShow(cmd *cobra.Command, _ []string) error {
	if settingsService == nil {
		return errSettingsNotConfigured
	}

	values, err := settingsService.Values()
	if err != nil {
		return fmt.Errorf("failed to get settings: %w", err)
	}

	cmd.Println("Current Settings")
	cmd.Println("================")

	section := ""
	for _, key := range settingsService.Keys() {
		parts := strings.SplitN(key, ".", 2)
		if parts[0] != section {
			section = parts[0]
			cmd.Println()
			cmd.Printf("[%s]\n", section)
		}
		value := values[key]
		if value == "" {
			value = "(default)"
		}
		cmd.Printf("  %-22s %s\n", parts[len(parts)-1], value)
	}
	return nil
}

func runSettingsSet(cmd *cobra.Command, args []string) error {
	if settingsService == nil {
		return errSettingsNotConfigured
	}

	if err := settingsService.Set(args[0], args[1]); err != nil {
		return fmt.Errorf("failed to set %s: %w", args[0], err)
	}
	cmd.Printf("%s = %s\n", args[0], args[1])
	return nil
}

func runSettingsKeys(cmd *cobra.Command, _ []string) error {
	if settingsService == nil {
		return errSettingsNotConfigured
	}
	for _, key := range settingsService.Keys() {
		cmd.Println(key)
	}
	return nil
}

func runSettingsReset(cmd *cobra.Command, _ []string) error {
	if settingsService == nil {
		return errSettingsNotConfigured
	}
	defaults := settingsService.GetDefaults()
	if err := settingsService.Save(&defaults); err != nil {
		return fmt.Errorf("failed to reset settings: %w", err)
	}
	cmd.Println("Settings restored to defaults.")
	return nil
}

func runSettingsWizard(cmd *cobra.Command, _ []string) error {
	if settingsService == nil {
		return errSettingsNotConfigured
	}

	settings, err := settingsService.Get()
	if err != nil {
		return fmt.Errorf("failed to get settings: %w", err)
	}

	cmd.Println("campusnav Settings Wizard")
	cmd.Println("=========================")
	cmd.Println()

	reader := bufio.NewReader(cmd.InOrStdin())

	// Step 1: Start location
	cmd.Println("Step 1: Start Location")
	cmd.Println("----------------------")
	cmd.Printf("Where does the robot wait between trips? [%s]: ", settings.StartLocation)
	if input := readLine(reader); input != "" {
		settings.StartLocation = domain.LocationID(input)
	}
	cmd.Println()

	// Step 2: Drivers
	cmd.Println("Step 2: Motor and Sensor Drivers")
	cmd.Println("--------------------------------")
	modes := domain.AllHardwareModes()
	for i, mode := range modes {
		cmd.Printf("  %d. %s\n", i+1, mode.Description())
	}
	cmd.Printf("\nEnter choice [%d]: ", indexOf(modes, settings.Hardware.Mode)+1)
	settings.Hardware.Mode = modes[parseChoice(readLine(reader), len(modes), indexOf(modes, settings.Hardware.Mode)+1)-1]
	cmd.Println()

	// Step 3: Map
	cmd.Println("Step 3: Campus Map")
	cmd.Println("------------------")
	current := settings.Map.Path
	if current == "" {
		current = "built-in"
	}
	cmd.Printf("Map file path, or \"built-in\" [%s]: ", current)
	switch input := readLine(reader); input {
	case "":
	case "built-in":
		settings.Map.Path = ""
	default:
		settings.Map.Path = input
	}

	policies := domain.AllEdgePolicies()
	cmd.Println("Edge policy:")
	for i, p := range policies {
		cmd.Printf("  %d. %s\n", i+1, p)
	}
	cmd.Printf("\nEnter choice [%d]: ", indexOf(policies, settings.Map.EdgePolicy)+1)
	settings.Map.EdgePolicy = policies[parseChoice(readLine(reader), len(policies), indexOf(policies, settings.Map.EdgePolicy)+1)-1]
	cmd.Println()

	if err := settingsService.Save(settings); err != nil {
		return fmt.Errorf("failed to save settings: %w", err)
	}

	cmd.Println("Configuration Complete!")
	cmd.Println("=======================")
	cmd.Println("Run 'campusnav settings show' to review every value.")
	return nil
}

// Helper functions.

//nolint:errcheck // CLI helper, error ignored for UX
func readLine(reader *bufio.Reader) string {
	input, _ := reader.ReadString('\n')
	return strings.TrimSpace(input)
}

func parseChoice(input string, maxVal, defaultVal int) int {
	if input == "" {
		return defaultVal
	}
	val, err := strconv.Atoi(input)
	if err != nil || val < 1 || val > maxVal {
		return defaultVal
	}
	return val
}

func indexOf[T comparable](items []T, v T) int {
	for i, item := range items {
		if item == v {
			return i
		}
	}
	return 0
}
