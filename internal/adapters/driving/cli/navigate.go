package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/custodia-labs/campusnav/internal/core/domain"
	"github.com/custodia-labs/campusnav/internal/core/ports/driving"
)

// ErrNavigationUnsuccessful is returned when a navigation ends in any status
// other than completed.
var ErrNavigationUnsuccessful = errors.New("navigation unsuccessful")

// progressInterval is how often a terminal gets a progress update.
const progressInterval = 250 * time.Millisecond

var (
	navigateFrom string
	navigateJSON bool
)

// isTerminal is replaced in tests.
var isTerminal = func(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}

var navigateCmd = &cobra.Command{
	Use:   "navigate <destination>",
	Short: "Drive the robot to a destination",
	Long: `Plans the shortest route from the robot's position to the destination and
drives it. Destinations may be given by name or alias, case-insensitively,
and may contain spaces without quoting.

Press Ctrl+C to stop the robot; the navigation is reported as cancelled.

Examples:
  campusnav navigate director
  campusnav navigate exam cell --from library
  campusnav navigate Library --json`,
	Args: cobra.MinimumNArgs(1),
	RunE: runNavigate,
}

func init() {
	navigateCmd.Flags().StringVar(&navigateFrom, "from", "", "set the robot's position before starting")
	navigateCmd.Flags().BoolVar(&navigateJSON, "json", false, "output the result as JSON")
	rootCmd.AddCommand(navigateCmd)
}

func runNavigate(cmd *cobra.Command, args []string) error {
	rt, err := loadRuntime(cmd.Context())
	if err != nil {
		return err
	}
	nav := rt.Navigation
	destination := strings.Join(args, " ")

	stopSignals := cancelOnInterrupt(nav)
	defer stopSignals()

	out := cmd.OutOrStdout()
	var stopProgress func()
	if !navigateJSON && isTerminal(out) {
		stopProgress = showProgress(out, nav)
	}

	result := nav.NavigateFrom(cmd.Context(), navigateFrom, destination)

	if stopProgress != nil {
		stopProgress()
	}

	if navigateJSON {
		if err := outputJSON(cmd, result); err != nil {
			return err
		}
	} else {
		outputNavigationResult(cmd, result)
	}

	if !result.Status.IsSuccess() {
		return fmt.Errorf("%w: %s", ErrNavigationUnsuccessful, result.Status)
	}
	return nil
}

// cancelOnInterrupt stops the robot on SIGINT or SIGTERM instead of killing
// the process mid-motion.
func cancelOnInterrupt(nav driving.NavigationService) func() {
	sigs := make(chan os.Signal, 1)
	done := make(chan struct{})
	signal.Notify(sigs, os.Interrupt, syscall.SIGTERM)

	go func() {
		for {
			select {
			case <-sigs:
				nav.CancelCurrent()
			case <-done:
				return
			}
		}
	}()

	return func() {
		signal.Stop(sigs)
		close(done)
	}
}

// showProgress prints a line each time the executor moves to a new step.
func showProgress(w io.Writer, nav driving.NavigationService) func() {
	done := make(chan struct{})
	finished := make(chan struct{})

	go func() {
		defer close(finished)
		ticker := time.NewTicker(progressInterval)
		defer ticker.Stop()

		last := -1
		for {
			select {
			case <-done:
				return
			case <-ticker.C:
				st := nav.Status()
				if st.State != domain.StateRunning || st.Step == nil || st.Current == last {
					continue
				}
				last = st.Current
				fmt.Fprintln(w, progressLine(st))
			}
		}
	}()

	return func() {
		close(done)
		<-finished
	}
}

func outputJSON(cmd *cobra.Command, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal output: %w", err)
	}
	cmd.Println(string(data))
	return nil
}

// progressLine formats the step in progress, numbering steps from 1.
func progressLine(st domain.NavigationStatusSnapshot) string {
	return fmt.Sprintf("  [%d/%d] %s", st.StepNumber(), st.Total, st.Step.String())
}

func outputNavigationResult(cmd *cobra.Command, r *domain.NavigationResult) {
	cmd.Println(r.Message)
	if len(r.Path) > 1 {
		cmd.Printf("  Route:    %s\n", r.Path.String())
		cmd.Printf("  Distance: %.1fm\n", r.Distance)
		cmd.Printf("  Steps:    %d/%d\n", r.StepsCompleted, r.StepsTotal)
	}
	if r.Err != nil && !r.Status.IsSuccess() {
		cmd.Printf("  Cause:    %v\n", r.Err)
	}
}
