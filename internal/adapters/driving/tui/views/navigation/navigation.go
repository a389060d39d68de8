// Package navigation provides the live navigation view for the TUI.
package navigation

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/custodia-labs/campusnav/internal/adapters/driving/tui/keymap"
	"github.com/custodia-labs/campusnav/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/campusnav/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/campusnav/internal/core/domain"
	"github.com/custodia-labs/campusnav/internal/core/ports/driving"
)

// PollInterval is how often the view refreshes the executor status.
const PollInterval = 200 * time.Millisecond

// View drives one navigation and shows its progress.
type View struct {
	styles     *styles.Styles
	keymap     *keymap.KeyMap
	navigation driving.NavigationService
	ctx        context.Context

	spinner     spinner.Model
	destination domain.LocationID
	running     bool
	stopping    bool
	status      domain.NavigationStatusSnapshot
	result      *domain.NavigationResult

	width  int
	height int
	ready  bool
}

// NewView creates a new navigation view.
func NewView(s *styles.Styles, navigation driving.NavigationService) *View {
	if s == nil {
		s = styles.DefaultStyles()
	}

	sp := spinner.New(spinner.WithSpinner(spinner.Dot))
	sp.Style = s.Subtitle

	return &View{
		styles:     s,
		keymap:     keymap.DefaultKeyMap(),
		navigation: navigation,
		ctx:        context.Background(),
		spinner:    sp,
		width:      80,
		height:     24,
	}
}

// WithContext sets the context passed to Navigate.
func (v *View) WithContext(ctx context.Context) *View {
	v.ctx = ctx
	return v
}

// Init implements the view lifecycle. Navigation starts through Start.
func (v *View) Init() tea.Cmd {
	return nil
}

// Start begins driving to destination and returns the commands that run
// the navigation, animate the spinner and poll the status.
func (v *View) Start(destination domain.LocationID) tea.Cmd {
	v.destination = destination
	v.running = true
	v.stopping = false
	v.result = nil
	v.status = domain.NavigationStatusSnapshot{}

	nav := v.navigation
	ctx := v.ctx
	run := func() tea.Msg {
		return messages.NavigationFinished{Result: nav.Navigate(ctx, string(destination))}
	}
	return tea.Batch(run, v.spinner.Tick, v.poll())
}

func (v *View) poll() tea.Cmd {
	nav := v.navigation
	return tea.Tick(PollInterval, func(time.Time) tea.Msg {
		return messages.StatusPolled{Status: nav.Status()}
	})
}

func (v *View) cancel() tea.Cmd {
	nav := v.navigation
	return func() tea.Msg {
		return messages.CancelRequested{Accepted: nav.CancelCurrent()}
	}
}

// Update handles messages for the navigation view.
func (v *View) Update(msg tea.Msg) (*View, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		v.SetDimensions(msg.Width, msg.Height)
		return v, nil

	case messages.StatusPolled:
		v.status = msg.Status
		if v.running {
			return v, v.poll()
		}
		return v, nil

	case messages.NavigationFinished:
		v.running = false
		v.stopping = false
		v.result = msg.Result
		if v.navigation != nil {
			v.status = v.navigation.Status()
		}
		return v, nil

	case messages.CancelRequested:
		v.stopping = msg.Accepted
		return v, nil

	case spinner.TickMsg:
		if !v.running {
			return v, nil
		}
		var cmd tea.Cmd
		v.spinner, cmd = v.spinner.Update(msg)
		return v, cmd

	case tea.KeyMsg:
		switch {
		case v.running && keymap.Matches(msg.String(), v.keymap.Stop):
			return v, v.cancel()
		case !v.running && keymap.Matches(msg.String(), v.keymap.Back):
			return v, func() tea.Msg { return messages.ViewChanged{View: messages.ViewDestinations} }
		}
	}

	return v, nil
}

// View renders progress while running and the outcome afterwards.
func (v *View) View() string {
	var b strings.Builder

	b.WriteString(v.styles.Title.Render("Navigating to " + v.destination.DisplayName()))
	b.WriteString("\n\n")

	if v.running {
		b.WriteString(v.renderProgress())
		b.WriteString("\n")
		b.WriteString(v.styles.Help.Render("[s/space] stop robot"))
		return b.String()
	}

	if v.result != nil {
		b.WriteString(v.renderResult())
		b.WriteString("\n")
	}
	b.WriteString(v.styles.Help.Render("[esc] back"))
	return b.String()
}

func (v *View) renderProgress() string {
	var b strings.Builder

	line := v.spinner.View() + " "
	switch {
	case v.stopping:
		line += v.styles.Warning.Render("Stopping...")
	case v.status.Step != nil:
		line += fmt.Sprintf("Step %d/%d: %s", v.status.StepNumber(), v.status.Total, v.status.Step.String())
	default:
		line += v.styles.Muted.Render("Planning route...")
	}
	b.WriteString(line)
	b.WriteString("\n")

	if v.status.Position != "" {
		b.WriteString(v.styles.Muted.Render("Last known position: " + v.status.Position.DisplayName()))
		b.WriteString("\n")
	}
	return b.String()
}

func (v *View) renderResult() string {
	r := v.result
	var b strings.Builder

	b.WriteString(v.styles.ForStatus(r.Status).Render(r.Message))
	b.WriteString("\n\n")

	if len(r.Path) > 0 {
		fmt.Fprintf(&b, "Route:    %s\n", r.Path.String())
		fmt.Fprintf(&b, "Distance: %.1fm\n", r.Distance)
		fmt.Fprintf(&b, "Steps:    %d/%d\n", r.StepsCompleted, r.StepsTotal)
	}
	if r.Err != nil && !r.Status.IsSuccess() {
		b.WriteString(v.styles.Muted.Render("Cause: " + r.Err.Error()))
		b.WriteString("\n")
	}
	if v.status.Position != "" {
		fmt.Fprintf(&b, "Position: %s\n", v.status.Position.DisplayName())
	}
	return b.String()
}

// Running reports whether a navigation started by this view is in progress.
func (v *View) Running() bool {
	return v.running
}

// Result returns the outcome of the last navigation.
func (v *View) Result() *domain.NavigationResult {
	return v.result
}

// Status returns the last polled status.
func (v *View) Status() domain.NavigationStatusSnapshot {
	return v.status
}

// SetDimensions sets the view dimensions.
func (v *View) SetDimensions(width, height int) {
	v.width = width
	v.height = height
	v.ready = true
}
