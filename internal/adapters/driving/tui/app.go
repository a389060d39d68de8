package tui

import (
	"context"
	"fmt"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/custodia-labs/campusnav/internal/adapters/driving/tui/components/status"
	"github.com/custodia-labs/campusnav/internal/adapters/driving/tui/keymap"
	"github.com/custodia-labs/campusnav/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/campusnav/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/campusnav/internal/adapters/driving/tui/views/destinations"
	"github.com/custodia-labs/campusnav/internal/adapters/driving/tui/views/history"
	"github.com/custodia-labs/campusnav/internal/adapters/driving/tui/views/menu"
	"github.com/custodia-labs/campusnav/internal/adapters/driving/tui/views/navigation"
	"github.com/custodia-labs/campusnav/internal/adapters/driving/tui/views/settings"
)

// App is the main TUI application following the Elm architecture.
// It implements tea.Model for use with Bubbletea.
type App struct {
	// ports provides access to core services via driving ports.
	ports *Ports

	// ctx is the context for cancellation.
	ctx context.Context

	// styles holds the TUI styles.
	styles *styles.Styles

	menuView         *menu.View
	destinationsView *destinations.View
	navigationView   *navigation.View
	historyView      *history.View
	settingsView     *settings.View

	// statusBar shows the robot's position under every view.
	statusBar *status.Bar

	// currentView tracks which view is active.
	currentView messages.ViewType

	// err holds the last error that occurred.
	err error

	// width and height are terminal dimensions.
	width  int
	height int

	// ready indicates if the app has initialised.
	ready bool
}

// Ensure App implements tea.Model.
var _ tea.Model = (*App)(nil)

// NewApp creates a new TUI application with the given ports.
func NewApp(ports *Ports) (*App, error) {
	if err := ports.Validate(); err != nil {
		return nil, fmt.Errorf("creating app: %w", err)
	}

	s := styles.DefaultStyles()

	return &App{
		ports:            ports,
		ctx:              context.Background(),
		styles:           s,
		menuView:         menu.NewView(s),
		destinationsView: destinations.NewView(s, ports.Navigation),
		navigationView:   navigation.NewView(s, ports.Navigation),
		historyView:      history.NewView(s, ports.Navigation),
		settingsView:     settings.NewView(s, ports.Settings),
		statusBar:        status.NewBar(s, keymap.DefaultKeyMap()),
		currentView:      messages.ViewMenu,
	}, nil
}

// WithContext sets the context for the app and the views that call into the core.
func (a *App) WithContext(ctx context.Context) *App {
	a.ctx = ctx
	a.destinationsView.WithContext(ctx)
	a.navigationView.WithContext(ctx)
	a.historyView.WithContext(ctx)
	return a
}

// Init implements tea.Model.
// It runs initial commands when the program starts.
func (a *App) Init() tea.Cmd {
	a.refreshPosition()
	return tea.Batch(
		tea.EnterAltScreen,
		tea.SetWindowTitle("campusnav"),
	)
}

func (a *App) refreshPosition() {
	position := a.ports.Navigation.Status().Position
	a.menuView.SetPosition(position)
	a.statusBar.SetPosition(position)
}

// Update implements tea.Model.
// It handles messages and updates the model state.
//
//nolint:gocognit,gocyclo,funlen // central message handler requires complexity
func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		a.ready = true
		a.menuView.SetDimensions(msg.Width, msg.Height-1)
		a.destinationsView.SetDimensions(msg.Width, msg.Height-1)
		a.navigationView.SetDimensions(msg.Width, msg.Height-1)
		a.historyView.SetDimensions(msg.Width, msg.Height-1)
		a.settingsView.SetDimensions(msg.Width, msg.Height-1)
		a.statusBar.SetWidth(msg.Width)
		return a, nil

	case tea.KeyMsg:
		// Global quit with ctrl+c stops the robot first
		if msg.String() == "ctrl+c" {
			if a.navigationView.Running() {
				a.ports.Navigation.CancelCurrent()
			}
			return a, tea.Quit
		}

		switch a.currentView {
		case messages.ViewMenu:
			a.menuView, cmd = a.menuView.Update(msg)
		case messages.ViewDestinations:
			a.destinationsView, cmd = a.destinationsView.Update(msg)
		case messages.ViewNavigation:
			a.navigationView, cmd = a.navigationView.Update(msg)
		case messages.ViewHistory:
			a.historyView, cmd = a.historyView.Update(msg)
		case messages.ViewSettings:
			a.settingsView, cmd = a.settingsView.Update(msg)
		case messages.ViewHelp:
			// Esc from help goes to menu
			if msg.Type == tea.KeyEsc {
				a.currentView = messages.ViewMenu
				a.statusBar.Clear()
			}
		}
		return a, cmd

	case messages.ViewChanged:
		// A running navigation keeps the navigation view in front
		if a.navigationView.Running() && msg.View != messages.ViewNavigation {
			return a, nil
		}
		a.currentView = msg.View
		a.err = nil
		a.statusBar.Clear()
		switch msg.View {
		case messages.ViewMenu:
			a.refreshPosition()
		case messages.ViewDestinations:
			a.destinationsView.Reset()
			return a, a.destinationsView.Init()
		case messages.ViewHistory:
			return a, a.historyView.Init()
		case messages.ViewSettings:
			a.settingsView.Reset()
			return a, a.settingsView.Init()
		case messages.ViewHelp:
			a.statusBar.SetState(status.StateHelp)
		case messages.ViewNavigation:
			// Entered through NavigateRequested
		}
		return a, nil

	case messages.NavigateRequested:
		if a.navigationView.Running() {
			return a, nil
		}
		a.currentView = messages.ViewNavigation
		a.statusBar.SetState(status.StateNavigating)
		a.statusBar.SetMessage("Navigating to " + msg.Destination.DisplayName())
		return a, a.navigationView.Start(msg.Destination)

	case messages.StatusPolled:
		a.statusBar.SetPosition(msg.Status.Position)
		a.navigationView, cmd = a.navigationView.Update(msg)
		return a, cmd

	case messages.NavigationFinished:
		a.navigationView, cmd = a.navigationView.Update(msg)
		a.statusBar.Clear()
		a.refreshPosition()
		if msg.Result != nil && !msg.Result.Status.IsSuccess() {
			a.statusBar.SetMessage(msg.Result.Message)
		}
		return a, cmd

	case messages.CancelRequested, spinner.TickMsg:
		a.navigationView, cmd = a.navigationView.Update(msg)
		return a, cmd

	case messages.LocationsLoaded, messages.RoutePlanned:
		a.destinationsView, cmd = a.destinationsView.Update(msg)
		return a, cmd

	case messages.HistoryLoaded:
		a.historyView, cmd = a.historyView.Update(msg)
		return a, cmd

	case messages.SettingsLoaded, messages.SettingsSaved:
		a.settingsView, cmd = a.settingsView.Update(msg)
		return a, cmd

	case messages.ErrorOccurred:
		a.err = msg.Err
		a.statusBar.SetState(status.StateError)
		a.statusBar.SetMessage(msg.Err.Error())
		if a.currentView == messages.ViewDestinations {
			a.destinationsView, cmd = a.destinationsView.Update(msg)
		}
		return a, cmd

	case messages.Quit:
		return a, tea.Quit
	}

	// Forward other messages to active view
	switch a.currentView {
	case messages.ViewMenu:
		a.menuView, cmd = a.menuView.Update(msg)
	case messages.ViewDestinations:
		a.destinationsView, cmd = a.destinationsView.Update(msg)
	case messages.ViewNavigation:
		a.navigationView, cmd = a.navigationView.Update(msg)
	case messages.ViewHistory:
		a.historyView, cmd = a.historyView.Update(msg)
	case messages.ViewSettings:
		a.settingsView, cmd = a.settingsView.Update(msg)
	case messages.ViewHelp:
		// Help view doesn't need to handle other messages
	}

	return a, cmd
}

// View implements tea.Model.
// It renders the current view as a string.
func (a *App) View() string {
	if !a.ready {
		return "Initialising..."
	}

	var body string
	switch a.currentView {
	case messages.ViewDestinations:
		body = a.destinationsView.View()
	case messages.ViewNavigation:
		body = a.navigationView.View()
	case messages.ViewHistory:
		body = a.historyView.View()
	case messages.ViewSettings:
		body = a.settingsView.View()
	case messages.ViewHelp:
		body = a.viewHelp()
	default:
		body = a.menuView.View()
	}

	body = lipgloss.NewStyle().Height(a.height - 1).MaxHeight(a.height - 1).Render(body)
	return lipgloss.JoinVertical(lipgloss.Left, body, a.statusBar.View())
}

// viewHelp renders the help view.
func (a *App) viewHelp() string {
	return `Help

Global:
  ctrl+c      Stop the robot and quit

Menu:
  j/k, ↑/↓    Navigate options
  enter       Select option
  q           Quit

Destinations:
  enter       Drive to the highlighted location
  p           Preview the route
  /           Filter by name or alias
  esc         Back to Menu

Navigation:
  s, space    Stop the robot
  esc         Back once the robot has stopped

History:
  r           Refresh

Settings:
  e, enter    Edit the highlighted value
  D           Restore defaults

[esc] back to menu`
}

// Run starts the TUI application.
func (a *App) Run() error {
	p := tea.NewProgram(a, tea.WithAltScreen(), tea.WithContext(a.ctx))
	_, err := p.Run()
	if a.navigationView.Running() {
		a.ports.Navigation.CancelCurrent()
	}
	return err
}

// CurrentView returns the current view type.
func (a *App) CurrentView() messages.ViewType {
	return a.currentView
}

// Err returns the last error that occurred.
func (a *App) Err() error {
	return a.err
}

// Ready returns whether the app has been initialised.
func (a *App) Ready() bool {
	return a.ready
}

// SetDimensions sets the terminal dimensions (for testing).
func (a *App) SetDimensions(width, height int) {
	a.Update(tea.WindowSizeMsg{Width: width, Height: height})
}
