// Package settings provides the settings configuration view for the TUI.
package settings

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/custodia-labs/campusnav/internal/adapters/driving/tui/components/input"
	"github.com/custodia-labs/campusnav/internal/adapters/driving/tui/keymap"
	"github.com/custodia-labs/campusnav/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/campusnav/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/campusnav/internal/core/ports/driving"
)

// Key constants for key handling.
const (
	keyEnter    = "enter"
	keyDefaults = "D"
)

// keyDefaultsSentinel marks a SettingsSaved produced by restoring defaults.
const keyDefaultsSentinel = "*"

// View lists every setting and edits one at a time.
type View struct {
	styles          *styles.Styles
	keymap          *keymap.KeyMap
	settingsService driving.SettingsService

	keys     []string
	values   map[string]string
	selected int
	editing  *input.Field

	err    error
	notice string

	width  int
	height int
	ready  bool
}

// NewView creates a new settings view.
func NewView(s *styles.Styles, settingsService driving.SettingsService) *View {
	if s == nil {
		s = styles.DefaultStyles()
	}

	return &View{
		styles:          s,
		keymap:          keymap.DefaultKeyMap(),
		settingsService: settingsService,
	}
}

// Init initialises the view and loads settings.
func (v *View) Init() tea.Cmd {
	return v.loadSettings()
}

// loadSettings returns a command that loads current settings.
func (v *View) loadSettings() tea.Cmd {
	return func() tea.Msg {
		if v.settingsService == nil {
			return messages.SettingsLoaded{Err: fmt.Errorf("settings service not available")}
		}
		settings, err := v.settingsService.Get()
		return messages.SettingsLoaded{Settings: settings, Err: err}
	}
}

func (v *View) saveSetting(key, value string) tea.Cmd {
	return func() tea.Msg {
		return messages.SettingsSaved{Key: key, Err: v.settingsService.Set(key, value)}
	}
}

func (v *View) restoreDefaults() tea.Cmd {
	return func() tea.Msg {
		defaults := v.settingsService.GetDefaults()
		return messages.SettingsSaved{Key: keyDefaultsSentinel, Err: v.settingsService.Save(&defaults)}
	}
}

// Update handles messages for the settings view.
func (v *View) Update(msg tea.Msg) (*View, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		v.width = msg.Width
		v.height = msg.Height
		v.ready = true
		return v, nil

	case messages.SettingsLoaded:
		if msg.Err != nil {
			v.err = msg.Err
			return v, nil
		}
		values, err := v.settingsService.Values()
		if err != nil {
			v.err = err
			return v, nil
		}
		v.err = nil
		v.keys = v.settingsService.Keys()
		v.values = values
		if v.selected >= len(v.keys) {
			v.selected = 0
		}
		return v, nil

	case messages.SettingsSaved:
		if msg.Err != nil {
			v.err = msg.Err
			v.notice = ""
			return v, nil
		}
		v.err = nil
		v.editing = nil
		if msg.Key == keyDefaultsSentinel {
			v.notice = "Defaults restored"
		} else {
			v.notice = "Saved " + msg.Key
		}
		return v, v.loadSettings()

	case tea.KeyMsg:
		if v.editing != nil {
			return v.handleEditKey(msg)
		}
		return v.handleKey(msg)
	}

	return v, nil
}

func (v *View) handleKey(msg tea.KeyMsg) (*View, tea.Cmd) {
	switch {
	case keymap.Matches(msg.String(), v.keymap.Back):
		return v, func() tea.Msg { return messages.ViewChanged{View: messages.ViewMenu} }

	case keymap.Matches(msg.String(), v.keymap.Up):
		if v.selected > 0 {
			v.selected--
		}

	case keymap.Matches(msg.String(), v.keymap.Down):
		if v.selected < len(v.keys)-1 {
			v.selected++
		}

	case keymap.Matches(msg.String(), v.keymap.Edit):
		key, ok := v.SelectedKey()
		if !ok || v.settingsService == nil {
			return v, nil
		}
		v.editing = input.NewField(v.styles, key)
		v.editing.SetValue(v.values[key])
		v.editing.SetWidth(v.width)
		v.notice = ""
		return v, v.editing.Init()

	case msg.String() == keyDefaults:
		if v.settingsService == nil {
			return v, nil
		}
		return v, v.restoreDefaults()
	}

	return v, nil
}

func (v *View) handleEditKey(msg tea.KeyMsg) (*View, tea.Cmd) {
	switch msg.String() {
	case "esc":
		v.editing = nil
		v.err = nil
		return v, nil
	case keyEnter:
		return v, v.saveSetting(v.editing.Label(), v.editing.Value())
	}

	var cmd tea.Cmd
	v.editing, cmd = v.editing.Update(msg)
	return v, cmd
}

// View renders the settings list.
func (v *View) View() string {
	var b strings.Builder

	b.WriteString(v.styles.Title.Render("Settings"))
	b.WriteString("\n\n")

	if v.keys == nil && v.err != nil {
		b.WriteString(v.styles.Error.Render(fmt.Sprintf("Error: %v", v.err)))
		b.WriteString("\n\n")
		b.WriteString(v.styles.Help.Render("[esc] back"))
		return b.String()
	}

	width := 0
	for _, key := range v.keys {
		if len(key) > width {
			width = len(key)
		}
	}

	section := ""
	for i, key := range v.keys {
		if s := strings.SplitN(key, ".", 2)[0]; s != section {
			section = s
			b.WriteString(v.styles.Subtitle.Render(section))
			b.WriteString("\n")
		}

		value := v.values[key]
		if value == "" {
			value = "(default)"
		}
		line := fmt.Sprintf("%-*s  %s", width, key, value)
		if i == v.selected {
			b.WriteString("> " + v.styles.Selected.Render(line))
		} else {
			b.WriteString("  " + v.styles.Normal.Render(line))
		}
		b.WriteString("\n")
	}
	b.WriteString("\n")

	if v.editing != nil {
		b.WriteString(v.editing.View())
		b.WriteString("\n")
	}
	if v.err != nil {
		b.WriteString(v.styles.Error.Render(v.err.Error()))
		b.WriteString("\n")
	} else if v.notice != "" {
		b.WriteString(v.styles.Success.Render(v.notice))
		b.WriteString("\n")
	}

	if v.editing != nil {
		b.WriteString(v.styles.Help.Render("[enter] save  [esc] cancel"))
	} else {
		b.WriteString(v.styles.Help.Render("[j/k] move  [e/enter] edit  [D] restore defaults  [esc] back"))
	}
	return b.String()
}

// SelectedKey returns the highlighted settings key.
func (v *View) SelectedKey() (string, bool) {
	if v.selected < 0 || v.selected >= len(v.keys) {
		return "", false
	}
	return v.keys[v.selected], true
}

// Editing reports whether a value is being edited.
func (v *View) Editing() bool {
	return v.editing != nil
}

// Values returns the displayed values by key.
func (v *View) Values() map[string]string {
	return v.values
}

// Err returns the last error.
func (v *View) Err() error {
	return v.err
}

// SetDimensions sets the view dimensions.
func (v *View) SetDimensions(width, height int) {
	v.width = width
	v.height = height
	v.ready = true
}

// Reset clears edit state and messages.
func (v *View) Reset() {
	v.editing = nil
	v.err = nil
	v.notice = ""
}
