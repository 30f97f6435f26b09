package picker

import (
	"fmt"
	"strings"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/sidebird/arcmark/internal/search"
)

var (
	selectedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("212")).
			Bold(true)

	normalStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("252"))

	urlStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("244")).
			Italic(true)

	pathStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("105"))

	headerStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("99")).
			Bold(true).
			MarginBottom(1)

	hintStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("244"))
)

// KeyMap defines the picker key bindings.
type KeyMap struct {
	Up      key.Binding
	Down    key.Binding
	Filter  key.Binding
	YankURL key.Binding
	Select  key.Binding
	Quit    key.Binding
}

// DefaultKeyMap returns the default vim-style key bindings.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Up: key.NewBinding(
			key.WithKeys("k", "up"),
			key.WithHelp("k/up", "move up"),
		),
		Down: key.NewBinding(
			key.WithKeys("j", "down"),
			key.WithHelp("j/down", "move down"),
		),
		Filter: key.NewBinding(
			key.WithKeys("/"),
			key.WithHelp("/", "filter"),
		),
		YankURL: key.NewBinding(
			key.WithKeys("Y"),
			key.WithHelp("Y", "yank URL"),
		),
		Select: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "open"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "esc", "ctrl+c"),
			key.WithHelp("q/esc", "cancel"),
		),
	}
}

// Picker is a TUI for browsing and selecting bookmarks.
type Picker struct {
	title   string
	entries []search.Entry  // full set, basis for filtering
	results []search.Result // current view

	keys        KeyMap
	filterInput textinput.Model
	filtering   bool
	status      string

	cursor    int
	selected  bool
	cancelled bool
	width     int
	height    int
}

// New creates a Picker over the given entries. A non-empty query starts
// the picker pre-filtered (quick-search mode); otherwise all entries show.
func New(title string, entries []search.Entry, query string) Picker {
	input := textinput.New()
	input.Placeholder = "Filter..."
	input.CharLimit = 64
	input.Width = 30

	p := Picker{
		title:       title,
		entries:     entries,
		keys:        DefaultKeyMap(),
		filterInput: input,
		width:       80,
		height:      24,
	}
	if query != "" {
		p.results = search.Fuzzy(entries, query)
		p.filterInput.SetValue(query)
	} else {
		p.results = allResults(entries)
	}
	return p
}

// allResults wraps entries as unfiltered results in display order.
func allResults(entries []search.Entry) []search.Result {
	results := make([]search.Result, len(entries))
	for i, e := range entries {
		results[i] = search.Result{Entry: e}
	}
	return results
}

// Init implements tea.Model.
func (p Picker) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model.
func (p Picker) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		p.width = msg.Width
		p.height = msg.Height
		return p, nil

	case tea.KeyMsg:
		if p.filtering {
			return p.updateFiltering(msg)
		}
		return p.updateBrowsing(msg)
	}

	return p, nil
}

func (p Picker) updateBrowsing(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	p.status = ""

	switch {
	case key.Matches(msg, p.keys.Quit):
		p.cancelled = true
		return p, tea.Quit

	case key.Matches(msg, p.keys.Select):
		if len(p.results) > 0 {
			p.selected = true
			return p, tea.Quit
		}
		return p, nil

	case key.Matches(msg, p.keys.Down):
		if p.cursor < len(p.results)-1 {
			p.cursor++
		}
		return p, nil

	case key.Matches(msg, p.keys.Up):
		if p.cursor > 0 {
			p.cursor--
		}
		return p, nil

	case key.Matches(msg, p.keys.Filter):
		p.filtering = true
		p.filterInput.Focus()
		return p, textinput.Blink

	case key.Matches(msg, p.keys.YankURL):
		if entry := p.highlighted(); entry != nil {
			if err := clipboard.WriteAll(entry.URL); err != nil {
				p.status = "clipboard unavailable"
			} else {
				p.status = "URL copied"
			}
		}
		return p, nil
	}

	return p, nil
}

func (p Picker) updateFiltering(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEsc:
		// Clear filter and go back to the full list
		p.filtering = false
		p.filterInput.Reset()
		p.results = allResults(p.entries)
		p.cursor = 0
		return p, nil

	case tea.KeyEnter:
		p.filtering = false
		return p, nil

	case tea.KeyCtrlC:
		p.cancelled = true
		return p, tea.Quit
	}

	var cmd tea.Cmd
	p.filterInput, cmd = p.filterInput.Update(msg)
	p.applyFilter()
	return p, cmd
}

func (p *Picker) applyFilter() {
	query := p.filterInput.Value()
	if query == "" {
		p.results = allResults(p.entries)
	} else {
		p.results = search.Fuzzy(p.entries, query)
	}
	if p.cursor >= len(p.results) {
		p.cursor = 0
	}
}

// View implements tea.Model.
func (p Picker) View() string {
	var b strings.Builder

	b.WriteString(headerStyle.Render(fmt.Sprintf("%s (%d)", p.title, len(p.results))))
	b.WriteString("\n")
	if p.filtering {
		b.WriteString(p.filterInput.View())
		b.WriteString("\n")
	} else if query := p.filterInput.Value(); query != "" {
		b.WriteString(hintStyle.Render("filter: " + query))
		b.WriteString("\n")
	}
	b.WriteString("\n")

	if len(p.results) == 0 {
		b.WriteString(hintStyle.Render("No matches"))
		b.WriteString("\n")
	}

	for i, result := range p.results {
		cursor := "  "
		style := normalStyle
		if i == p.cursor {
			cursor = "> "
			style = selectedStyle
		}

		title := style.Render(result.Entry.Title)
		path := pathStyle.Render(result.Entry.Path)
		url := urlStyle.Render(result.Entry.URL)

		fmt.Fprintf(&b, "%s%s  %s\n", cursor, title, path)
		fmt.Fprintf(&b, "   %s\n", url)
	}

	b.WriteString("\n")
	if p.status != "" {
		b.WriteString(hintStyle.Render(p.status))
		b.WriteString("\n")
	}
	b.WriteString(hintStyle.Render("j/k: move  /: filter  Y: yank URL  Enter: open  q/Esc: cancel"))

	return b.String()
}

// highlighted returns the entry under the cursor, or nil.
func (p Picker) highlighted() *search.Entry {
	if p.cursor < len(p.results) {
		return &p.results[p.cursor].Entry
	}
	return nil
}

// SelectedEntry returns the selected entry, or nil if cancelled.
func (p Picker) SelectedEntry() *search.Entry {
	if p.cancelled || !p.selected {
		return nil
	}
	return p.highlighted()
}

// Cancelled returns true if the user cancelled the selection.
func (p Picker) Cancelled() bool {
	return p.cancelled
}
