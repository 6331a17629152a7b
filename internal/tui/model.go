// Package tui provides the BubbleTea-based theme selector.
package tui

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"sync"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/jmylchreest/themeswitch/internal/config"
	"github.com/jmylchreest/themeswitch/internal/model"
	"github.com/jmylchreest/themeswitch/internal/store"
	"github.com/jmylchreest/themeswitch/internal/switcher"
	"github.com/jmylchreest/themeswitch/internal/theme"
)

// Mode represents the current UI mode.
type Mode int

const (
	ModeList Mode = iota
	ModeEditor
	ModeHelp
)

// DraftSlot receives the custom theme draft handed out by the switcher when
// "custom" is selected. Wire Set as switcher.Config.SetPreloaded.
type DraftSlot struct {
	mu    sync.Mutex
	draft *model.CustomTheme
}

// NewDraftSlot creates an empty slot.
func NewDraftSlot() *DraftSlot {
	return &DraftSlot{}
}

// Set stores a draft, replacing any previous one.
func (d *DraftSlot) Set(c model.CustomTheme) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.draft = &c
}

// Take returns and clears the stored draft.
func (d *DraftSlot) Take() (model.CustomTheme, bool) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.draft == nil {
		return model.CustomTheme{}, false
	}
	c := *d.draft
	d.draft = nil
	return c, true
}

// Options configures a Model.
type Options struct {
	Config   *config.Config
	Switcher *switcher.Switcher
	Store    *store.Store // optional; enables live refresh
	Drafts   *DraftSlot
	Registry <-chan *theme.Registry // optional; hot-reloaded registries
}

// Model is the main TUI model.
type Model struct {
	cfg    *config.Config
	sw     *switcher.Switcher
	store  *store.Store
	drafts *DraftSlot

	mode Mode

	list   list.Model
	help   help.Model
	editor editor
	keys   KeyMap

	width  int
	height int

	statusMsg string
	statusErr bool

	refreshCh  <-chan store.ChangeEvent
	registryCh <-chan *theme.Registry
}

// themeItem wraps a descriptor for the list component.
type themeItem struct {
	desc   theme.Descriptor
	active bool
}

func (i themeItem) Title() string {
	return i.desc.Label
}

func (i themeItem) Description() string {
	return fmt.Sprintf("%s · %s", i.desc.Value, i.desc.Type)
}

func (i themeItem) FilterValue() string {
	return i.desc.Label + " " + i.desc.Value
}

// themeDelegate draws the icon swatch and active marker.
type themeDelegate struct {
	list.DefaultDelegate
	showIcons bool
}

func newThemeDelegate(showIcons bool) themeDelegate {
	d := list.NewDefaultDelegate()
	return themeDelegate{DefaultDelegate: d, showIcons: showIcons}
}

// Render renders a list item with its swatch and an active marker.
func (d themeDelegate) Render(w io.Writer, m list.Model, index int, item list.Item) {
	ti, ok := item.(themeItem)
	if !ok {
		d.DefaultDelegate.Render(w, m, index, item)
		return
	}

	titleStyle := d.Styles.NormalTitle
	descStyle := d.Styles.NormalDesc
	if index == m.Index() {
		titleStyle = d.Styles.SelectedTitle
		descStyle = d.Styles.SelectedDesc
	}

	title := ti.Title()
	if d.showIcons {
		icon := ti.desc.Icon
		title = iconSwatch(icon.Border, icon.Color1, icon.Color2) + " " + title
	}
	if ti.active {
		title += " ✓"
	}

	fmt.Fprint(w, titleStyle.Render(title))
	fmt.Fprint(w, "\n")
	fmt.Fprint(w, descStyle.Render(ti.Description()))
}

// New creates a new TUI model.
func New(opts Options) Model {
	cfg := opts.Config
	if cfg == nil {
		cfg = config.DefaultConfig()
	}
	drafts := opts.Drafts
	if drafts == nil {
		drafts = NewDraftSlot()
	}

	l := list.New(nil, newThemeDelegate(cfg.TUI.ShowIcons), 0, 0)
	l.Title = "Theme"
	l.SetShowStatusBar(false)
	l.SetShowHelp(false)
	l.SetFilteringEnabled(true)
	l.DisableQuitKeybindings()

	m := Model{
		cfg:        cfg,
		sw:         opts.Switcher,
		store:      opts.Store,
		drafts:     drafts,
		mode:       ModeList,
		list:       l,
		help:       help.New(),
		keys:       DefaultKeyMap(),
		registryCh: opts.Registry,
	}

	if opts.Store != nil {
		m.refreshCh = opts.Store.Subscribe()
	}

	return m
}

// Init initializes the TUI.
func (m Model) Init() tea.Cmd {
	return tea.Batch(
		m.watchForChanges,
		m.watchRegistry,
	)
}

type refreshMsg struct {
	event store.ChangeEvent
}

// watchForChanges waits for the next store change.
func (m Model) watchForChanges() tea.Msg {
	if m.refreshCh == nil {
		return nil
	}
	ev, ok := <-m.refreshCh
	if !ok {
		return nil
	}
	return refreshMsg{event: ev}
}

type registryMsg struct {
	registry *theme.Registry
}

// watchRegistry waits for the next hot-reloaded registry.
func (m Model) watchRegistry() tea.Msg {
	if m.registryCh == nil {
		return nil
	}
	r, ok := <-m.registryCh
	if !ok {
		return nil
	}
	return registryMsg{registry: r}
}

type statusMsg struct {
	text  string
	isErr bool
}

type clearStatusMsg struct{}

type copyResultMsg struct {
	err error
}

type revalidateResultMsg struct {
	err error
}

// Update handles messages and updates the model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.list.SetSize(msg.Width, m.listHeight())
		m.help.Width = msg.Width

		// The first size message is the first point at which we know what
		// the terminal looks like.
		if !m.sw.Mounted() {
			m.sw.Mount()
			m.syncBackground()
			m.list.SetItems(m.buildListItems())
			m.list.Select(m.activeIndex())
		}
		return m, nil

	case refreshMsg:
		if msg.event.Type == store.ChangeTypeHydrate || msg.event.Type == store.ChangeTypeRevalidate {
			if v := m.sw.View(); v != nil && msg.event.Theme != "" && msg.event.Theme != v.Value {
				m.sw.Adopt(msg.event.Theme)
				m.syncBackground()
			}
		}
		m.list.SetItems(m.buildListItems())
		return m, m.watchForChanges

	case registryMsg:
		m.sw.SetRegistry(msg.registry)
		m.list.SetItems(m.buildListItems())
		return m, tea.Batch(m.watchRegistry, setStatus("Theme list reloaded", false))

	case statusMsg:
		m.statusMsg = msg.text
		m.statusErr = msg.isErr
		return m, tea.Tick(3*time.Second, func(time.Time) tea.Msg {
			return clearStatusMsg{}
		})

	case clearStatusMsg:
		m.statusMsg = ""
		m.statusErr = false
		return m, nil

	case copyResultMsg:
		if msg.err != nil {
			return m, setStatus("Copy failed: "+msg.err.Error(), true)
		}
		return m, setStatus("Copied CSS to clipboard", false)

	case revalidateResultMsg:
		if msg.err != nil {
			return m, setStatus("Refresh failed: "+msg.err.Error(), true)
		}
		return m, setStatus("Session refreshed", false)
	}

	var cmd tea.Cmd
	switch m.mode {
	case ModeList:
		m.list, cmd = m.list.Update(msg)
	case ModeEditor:
		m.editor, cmd = m.editor.update(msg)
	}
	return m, cmd
}

func setStatus(text string, isErr bool) tea.Cmd {
	return func() tea.Msg {
		return statusMsg{text: text, isErr: isErr}
	}
}

// handleKey handles key presses.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch m.mode {
	case ModeEditor:
		return m.handleEditorKey(msg)
	case ModeHelp:
		if key.Matches(msg, m.keys.Back, m.keys.Help) {
			m.mode = ModeList
		} else if key.Matches(msg, m.keys.Quit) {
			return m, tea.Quit
		}
		return m, nil
	}

	// While the list filter is open, keys belong to it.
	if m.list.FilterState() == list.Filtering {
		var cmd tea.Cmd
		m.list, cmd = m.list.Update(msg)
		return m, cmd
	}

	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit

	case key.Matches(msg, m.keys.Help):
		m.mode = ModeHelp
		return m, nil

	case key.Matches(msg, m.keys.Enter):
		item, ok := m.list.SelectedItem().(themeItem)
		if !ok {
			return m, nil
		}
		return m.selectTheme(item.desc.Value)

	case key.Matches(msg, m.keys.Edit):
		return m.selectTheme(model.CustomThemeValue)

	case key.Matches(msg, m.keys.CopyCSS):
		return m, m.copyToClipboard(m.sw.Root().CSS())

	case key.Matches(msg, m.keys.Refresh):
		return m, m.revalidate()
	}

	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

// selectTheme applies value and opens the editor if a custom draft was
// handed out.
func (m Model) selectTheme(value string) (tea.Model, tea.Cmd) {
	if err := m.sw.Select(value); err != nil {
		return m, setStatus(err.Error(), true)
	}
	m.syncBackground()
	m.list.SetItems(m.buildListItems())

	if value != model.CustomThemeValue {
		return m, setStatus("Theme set to "+m.sw.View().Label, false)
	}

	draft, ok := m.drafts.Take()
	if !ok {
		return m, setStatus("Sign in to edit the custom theme", false)
	}
	m.editor = newEditor(draft)
	m.mode = ModeEditor
	return m, nil
}

// handleEditorKey handles keys in the custom theme editor.
func (m Model) handleEditorKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case msg.Type == tea.KeyCtrlC:
		return m, tea.Quit

	case key.Matches(msg, m.keys.Back):
		m.mode = ModeList
		return m, nil

	case key.Matches(msg, m.keys.NextField):
		return m, m.editor.next()

	case key.Matches(msg, m.keys.PrevField):
		return m, m.editor.prev()

	case key.Matches(msg, m.keys.ToggleDark):
		m.editor.toggleDark()
		return m, nil

	case key.Matches(msg, m.keys.Save):
		if err := m.sw.SaveCustomTheme(m.editor.draft()); err != nil {
			m.editor.err = err.Error()
			if errors.Is(err, store.ErrNoSession) {
				m.editor.err = "Sign in to save a custom theme"
			}
			return m, nil
		}
		m.syncBackground()
		m.mode = ModeList
		m.list.SetItems(m.buildListItems())
		return m, setStatus("Custom theme saved", false)
	}

	var cmd tea.Cmd
	m.editor, cmd = m.editor.update(msg)
	return m, cmd
}

// syncBackground points lipgloss at the root element's color scheme. An
// unset scheme leaves terminal detection alone.
func (m Model) syncBackground() {
	switch m.sw.Root().ColorScheme() {
	case theme.TypeDark:
		lipgloss.SetHasDarkBackground(true)
	case theme.TypeLight:
		lipgloss.SetHasDarkBackground(false)
	}
}

// buildListItems creates list items from the registry.
func (m Model) buildListItems() []list.Item {
	active := m.sw.View()
	themes := m.sw.Registry().All()

	items := make([]list.Item, len(themes))
	for i, d := range themes {
		items[i] = themeItem{desc: d, active: active != nil && active.Value == d.Value}
	}
	return items
}

func (m Model) activeIndex() int {
	v := m.sw.View()
	if v == nil {
		return 0
	}
	if i := m.sw.Registry().IndexOf(v.Value); i >= 0 {
		return i
	}
	return 0
}

func (m Model) listHeight() int {
	h := m.height - 3
	if m.cfg.TUI.ShowHelp {
		h--
	}
	if h < 1 {
		h = 1
	}
	return h
}

// copyToClipboard copies text to the system clipboard.
func (m Model) copyToClipboard(text string) tea.Cmd {
	return func() tea.Msg {
		return copyResultMsg{err: copyText(text, m.cfg)}
	}
}

// revalidate re-fetches the session user from the service.
func (m Model) revalidate() tea.Cmd {
	s := m.store
	if s == nil {
		return setStatus("No session store", true)
	}
	timeout, err := m.cfg.ServiceTimeout()
	if err != nil {
		timeout = 10 * time.Second
	}
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()
		return revalidateResultMsg{err: s.Revalidate(ctx)}
	}
}

// View renders the TUI. Nothing is drawn until the selector is mounted.
func (m Model) View() string {
	v := m.sw.View()
	if v == nil {
		return ""
	}

	switch m.mode {
	case ModeEditor:
		return m.editor.view() + "\n" + m.footer(editorKeyMap{m.keys})
	case ModeHelp:
		return m.viewHelp()
	default:
		return m.viewList(v)
	}
}

func (m Model) viewList(v *switcher.SelectView) string {
	header := lipgloss.NewStyle().Bold(true).Padding(0, 1)
	dim := lipgloss.NewStyle().Foreground(lipgloss.Color("8"))

	current := v.Label
	if v.Icon != nil && m.cfg.TUI.ShowIcons {
		current = iconSwatch(v.Icon.Border, v.Icon.Color1, v.Icon.Color2) + " " + current
	}
	scheme := m.sw.Root().ColorScheme()
	if scheme == "" {
		scheme = "system"
	}

	s := header.Render("Current: "+current) + dim.Render("color-scheme: "+scheme) + "\n"
	s += m.list.View()
	s += "\n" + m.footer(m.keys)
	return s
}

// footer shows the status message, or the short help when there is none.
func (m Model) footer(keys help.KeyMap) string {
	if m.statusMsg != "" {
		statusStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("7"))
		if m.statusErr {
			statusStyle = statusStyle.Foreground(lipgloss.Color("9"))
		}
		return statusStyle.Render(m.statusMsg)
	}
	if !m.cfg.TUI.ShowHelp {
		return ""
	}
	return m.help.ShortHelpView(keys.ShortHelp())
}

func (m Model) viewHelp() string {
	titleStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("12")).
		MarginBottom(1)

	s := titleStyle.Render("Keyboard Shortcuts") + "\n\n"
	s += m.help.FullHelpView(m.keys.FullHelp())
	s += "\n\n" + lipgloss.NewStyle().Foreground(lipgloss.Color("8")).Render(
		"Press ? or esc to return")
	return s
}

// RunOptions configures the TUI.
type RunOptions struct {
	Config   *config.Config
	Switcher *switcher.Switcher
	Store    *store.Store
	Drafts   *DraftSlot

	// SessionPath is watched for writes from other processes (empty = no watching).
	SessionPath string
	// RegistryPath is polled for edits (empty = bundled registry, not watched).
	RegistryPath string

	Logger *slog.Logger
}

// Run starts the TUI with the given options.
func Run(ctx context.Context, opts RunOptions) error {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}

	var watcher *store.FileWatcher
	if opts.Store != nil && opts.SessionPath != "" {
		var err error
		watcher, err = store.NewFileWatcher(opts.Store, opts.SessionPath, logger)
		if err != nil {
			logger.Warn("failed to create session watcher", "error", err)
		} else if err := watcher.Start(); err != nil {
			logger.Warn("failed to start session watcher", "error", err)
			watcher = nil
		}
	}

	registryCh := make(chan *theme.Registry, 1)
	rw := theme.NewWatcher(opts.RegistryPath, logger)
	rw.SetChangeCallback(func(r *theme.Registry) {
		// Only the newest registry matters.
		select {
		case <-registryCh:
		default:
		}
		registryCh <- r
	})
	if err := rw.Start(ctx); err != nil {
		logger.Warn("failed to start registry watcher", "error", err)
	}

	m := New(Options{
		Config:   opts.Config,
		Switcher: opts.Switcher,
		Store:    opts.Store,
		Drafts:   opts.Drafts,
		Registry: registryCh,
	})
	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithContext(ctx))

	_, err := p.Run()

	rw.Stop()
	if watcher != nil {
		_ = watcher.Stop()
	}

	if errors.Is(err, tea.ErrProgramKilled) && ctx.Err() != nil {
		return nil
	}
	return err
}
