// Package history provides the navigation history view for the TUI.
package history

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/custodia-labs/campusnav/internal/adapters/driving/tui/keymap"
	"github.com/custodia-labs/campusnav/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/campusnav/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/campusnav/internal/core/domain"
	"github.com/custodia-labs/campusnav/internal/core/ports/driving"
)

// Limit is the number of records loaded.
const Limit = 100

const timeLayout = "Jan 02 15:04:05"

// View lists recent navigation sessions, newest first.
type View struct {
	styles     *styles.Styles
	keymap     *keymap.KeyMap
	navigation driving.NavigationService
	ctx        context.Context

	table   table.Model
	records []domain.NavigationRecord
	err     error

	width  int
	height int
	ready  bool
}

// NewView creates a new history view.
func NewView(s *styles.Styles, navigation driving.NavigationService) *View {
	if s == nil {
		s = styles.DefaultStyles()
	}

	t := table.New(
		table.WithColumns(columns(80)),
		table.WithFocused(true),
		table.WithHeight(10),
	)
	t.SetStyles(s.Table())

	return &View{
		styles:     s,
		keymap:     keymap.DefaultKeyMap(),
		navigation: navigation,
		ctx:        context.Background(),
		table:      t,
		width:      80,
		height:     24,
	}
}

func columns(width int) []table.Column {
	route := width - 15 - 30 - 8 - 7 - 12
	if route < 16 {
		route = 16
	}
	return []table.Column{
		{Title: "When", Width: 15},
		{Title: "Route", Width: route},
		{Title: "Status", Width: 30},
		{Title: "Dist", Width: 8},
		{Title: "Steps", Width: 7},
	}
}

// WithContext sets the context used to query the history store.
func (v *View) WithContext(ctx context.Context) *View {
	v.ctx = ctx
	return v
}

// Init loads the history.
func (v *View) Init() tea.Cmd {
	return v.load()
}

func (v *View) load() tea.Cmd {
	return func() tea.Msg {
		if v.navigation == nil {
			return messages.HistoryLoaded{Err: fmt.Errorf("navigation service not available")}
		}
		records, err := v.navigation.History(v.ctx, Limit)
		return messages.HistoryLoaded{Records: records, Err: err}
	}
}

// Update handles messages for the history view.
func (v *View) Update(msg tea.Msg) (*View, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		v.SetDimensions(msg.Width, msg.Height)
		return v, nil

	case messages.HistoryLoaded:
		v.err = msg.Err
		if msg.Err == nil {
			v.records = msg.Records
			v.table.SetRows(rows(msg.Records))
		}
		return v, nil

	case tea.KeyMsg:
		switch {
		case keymap.Matches(msg.String(), v.keymap.Back):
			return v, func() tea.Msg { return messages.ViewChanged{View: messages.ViewMenu} }
		case keymap.Matches(msg.String(), v.keymap.Refresh):
			return v, v.load()
		}
		var cmd tea.Cmd
		v.table, cmd = v.table.Update(msg)
		return v, cmd
	}

	return v, nil
}

func rows(records []domain.NavigationRecord) []table.Row {
	out := make([]table.Row, len(records))
	for i, r := range records {
		out[i] = table.Row{
			r.StartedAt.Local().Format(timeLayout),
			fmt.Sprintf("%s → %s", r.From.DisplayName(), r.Destination.DisplayName()),
			string(r.Status),
			fmt.Sprintf("%.1fm", r.Distance),
			fmt.Sprintf("%d/%d", r.StepsCompleted, r.StepsTotal),
		}
	}
	return out
}

// View renders the history table and the selected record's message.
func (v *View) View() string {
	var b strings.Builder

	b.WriteString(v.styles.Title.Render("Navigation History"))
	b.WriteString("\n\n")

	switch {
	case v.err != nil:
		b.WriteString(v.styles.Error.Render(fmt.Sprintf("Error: %v", v.err)))
		b.WriteString("\n\n")
	case len(v.records) == 0:
		b.WriteString(v.styles.Muted.Render("No navigations yet."))
		b.WriteString("\n\n")
	default:
		b.WriteString(v.table.View())
		b.WriteString("\n\n")
		if r, ok := v.Selected(); ok {
			b.WriteString(v.styles.ForStatus(r.Status).Render(r.Message))
			if r.Error != "" {
				b.WriteString(v.styles.Muted.Render(" (" + r.Error + ")"))
			}
			b.WriteString("\n\n")
		}
	}

	b.WriteString(v.styles.Help.Render("[j/k] move  [r] refresh  [esc] back"))
	return b.String()
}

// Selected returns the highlighted record.
func (v *View) Selected() (domain.NavigationRecord, bool) {
	i := v.table.Cursor()
	if i < 0 || i >= len(v.records) {
		return domain.NavigationRecord{}, false
	}
	return v.records[i], true
}

// Records returns the loaded records.
func (v *View) Records() []domain.NavigationRecord {
	return v.records
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
	v.table.SetColumns(columns(width))
	tableHeight := height - 10
	if tableHeight < 3 {
		tableHeight = 3
	}
	v.table.SetHeight(tableHeight)
}
