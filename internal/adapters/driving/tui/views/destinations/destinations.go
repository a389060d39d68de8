// Package destinations provides the destination picker view for the TUI.
package destinations

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/custodia-labs/campusnav/internal/adapters/driving/tui/keymap"
	"github.com/custodia-labs/campusnav/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/campusnav/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/campusnav/internal/core/domain"
	"github.com/custodia-labs/campusnav/internal/core/ports/driving"
)

// item adapts a location to the bubbles list.
type item struct {
	info domain.LocationInfo
}

func (i item) Title() string { return i.info.Name }

func (i item) Description() string {
	if len(i.info.Aliases) == 0 {
		return string(i.info.ID)
	}
	return string(i.info.ID) + " · " + strings.Join(i.info.Aliases, ", ")
}

func (i item) FilterValue() string {
	return i.info.Name + " " + strings.Join(i.info.Aliases, " ")
}

// View lists campus locations and previews routes to them.
type View struct {
	styles     *styles.Styles
	keymap     *keymap.KeyMap
	navigation driving.NavigationService
	ctx        context.Context

	list    list.Model
	plan    *domain.RoutePlan
	planErr error
	err     error

	width  int
	height int
	ready  bool
}

// NewView creates a new destinations view.
func NewView(s *styles.Styles, navigation driving.NavigationService) *View {
	if s == nil {
		s = styles.DefaultStyles()
	}

	l := list.New(nil, list.NewDefaultDelegate(), 80, 20)
	l.Title = "Where to?"
	l.Styles.Title = s.Title
	l.SetShowHelp(false)
	l.KeyMap.Quit.SetEnabled(false)

	return &View{
		styles:     s,
		keymap:     keymap.DefaultKeyMap(),
		navigation: navigation,
		ctx:        context.Background(),
		list:       l,
		width:      80,
		height:     24,
	}
}

// WithContext sets the context used for route planning.
func (v *View) WithContext(ctx context.Context) *View {
	v.ctx = ctx
	return v
}

// Init loads the campus locations.
func (v *View) Init() tea.Cmd {
	v.plan = nil
	v.planErr = nil
	return v.loadLocations()
}

func (v *View) loadLocations() tea.Cmd {
	return func() tea.Msg {
		if v.navigation == nil {
			return messages.ErrorOccurred{Err: fmt.Errorf("navigation service not available")}
		}
		return messages.LocationsLoaded{Locations: v.navigation.Locations()}
	}
}

func (v *View) planRoute(destination domain.LocationID) tea.Cmd {
	return func() tea.Msg {
		plan, err := v.navigation.Plan(v.ctx, "", string(destination))
		return messages.RoutePlanned{Plan: plan, Err: err}
	}
}

// Update handles messages for the destinations view.
func (v *View) Update(msg tea.Msg) (*View, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		v.SetDimensions(msg.Width, msg.Height)
		return v, nil

	case messages.LocationsLoaded:
		items := make([]list.Item, len(msg.Locations))
		for i, loc := range msg.Locations {
			items[i] = item{info: loc}
		}
		return v, v.list.SetItems(items)

	case messages.RoutePlanned:
		v.plan = msg.Plan
		v.planErr = msg.Err
		return v, nil

	case messages.ErrorOccurred:
		v.err = msg.Err
		return v, nil

	case tea.KeyMsg:
		return v.handleKey(msg)
	}

	var cmd tea.Cmd
	v.list, cmd = v.list.Update(msg)
	return v, cmd
}

func (v *View) handleKey(msg tea.KeyMsg) (*View, tea.Cmd) {
	if v.list.FilterState() == list.Filtering {
		var cmd tea.Cmd
		v.list, cmd = v.list.Update(msg)
		return v, cmd
	}

	switch {
	case keymap.Matches(msg.String(), v.keymap.Back):
		if v.plan != nil || v.planErr != nil {
			v.plan = nil
			v.planErr = nil
			return v, nil
		}
		if v.list.FilterState() == list.FilterApplied {
			v.list.ResetFilter()
			return v, nil
		}
		return v, func() tea.Msg { return messages.ViewChanged{View: messages.ViewMenu} }

	case keymap.Matches(msg.String(), v.keymap.Select):
		selected, ok := v.Selected()
		if !ok {
			return v, nil
		}
		return v, func() tea.Msg { return messages.NavigateRequested{Destination: selected.ID} }

	case keymap.Matches(msg.String(), v.keymap.Plan):
		selected, ok := v.Selected()
		if !ok || v.navigation == nil {
			return v, nil
		}
		return v, v.planRoute(selected.ID)
	}

	var cmd tea.Cmd
	v.list, cmd = v.list.Update(msg)
	return v, cmd
}

// View renders the location list and, when requested, a route preview.
func (v *View) View() string {
	if v.err != nil {
		return v.styles.Error.Render(fmt.Sprintf("Error: %v", v.err)) + "\n\n" +
			v.styles.Help.Render("[esc] back")
	}

	var b strings.Builder
	b.WriteString(v.list.View())
	b.WriteString("\n")

	switch {
	case v.planErr != nil:
		b.WriteString(v.styles.Error.Render(v.planErr.Error()))
		b.WriteString("\n")
	case v.plan != nil:
		b.WriteString(v.renderPlan())
	}

	b.WriteString(v.styles.Help.Render("[enter] go  [p] preview route  [/] filter  [esc] back"))
	return b.String()
}

func (v *View) renderPlan() string {
	var b strings.Builder
	b.WriteString(v.styles.Subtitle.Render(fmt.Sprintf("%s to %s, %.1fm",
		v.plan.From.DisplayName(), v.plan.To.DisplayName(), v.plan.Distance)))
	b.WriteString("\n")
	if len(v.plan.Instructions) == 0 {
		b.WriteString(v.styles.Muted.Render("  already there"))
		b.WriteString("\n")
	}
	for i, inst := range v.plan.Instructions {
		fmt.Fprintf(&b, "  %d. %s\n", i+1, inst.String())
	}
	return b.String()
}

// Selected returns the highlighted location.
func (v *View) Selected() (domain.LocationInfo, bool) {
	it, ok := v.list.SelectedItem().(item)
	if !ok {
		return domain.LocationInfo{}, false
	}
	return it.info, true
}

// Plan returns the route preview currently shown, if any.
func (v *View) Plan() *domain.RoutePlan {
	return v.plan
}

// Err returns the last load error.
func (v *View) Err() error {
	return v.err
}

// SetDimensions sets the view dimensions.
func (v *View) SetDimensions(width, height int) {
	v.width = width
	v.height = height
	v.ready = true
	listHeight := height - 12
	if listHeight < 5 {
		listHeight = 5
	}
	v.list.SetSize(width, listHeight)
}

// Reset clears any error or preview.
func (v *View) Reset() {
	v.err = nil
	v.plan = nil
	v.planErr = nil
}
