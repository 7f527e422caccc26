package accordion

import (
	"context"
	"errors"
	"fmt"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/muurk/accordion/internal/config"
	"github.com/muurk/accordion/internal/logging"
	"github.com/muurk/accordion/internal/panel"
	"github.com/muurk/accordion/internal/provider"
	"github.com/muurk/accordion/internal/store"
	"github.com/muurk/accordion/internal/telemetry"
)

// Options configures a new Model.
type Options struct {
	Config   *config.AccordionConfig // Required
	Source   string                  // Shown in the header, usually the config path
	Registry *provider.Registry      // Defaults to provider.DefaultRegistry()
	Store    *store.Store            // Defaults to an empty store seeded from Config.State
	Tracer   *telemetry.Tracer       // Optional
	Context  context.Context         // Parent context for spans
}

// Model is the accordion's Bubble Tea model. Open and pinned state lives in
// the panel machine and host values live in the store; both are only touched
// from Update.
type Model struct {
	cfg      *config.AccordionConfig
	source   string
	registry *provider.Registry
	store    *store.Store
	machine  *panel.Machine
	tracer   *telemetry.Tracer
	ctx      context.Context

	// component names already reported as missing, per mount
	reported map[string]bool

	focus         int
	status        string
	statusIsError bool

	width    int
	height   int
	viewport viewport.Model
	help     help.Model
	keys     keyMap
}

// New validates the configuration and mounts the accordion.
func New(opts Options) (Model, error) {
	if opts.Config == nil {
		return Model{}, errors.New("accordion: configuration is required")
	}
	if err := config.Validate(opts.Config); err != nil {
		return Model{}, err
	}

	m := Model{
		registry: opts.Registry,
		store:    opts.Store,
		tracer:   opts.Tracer,
		ctx:      opts.Context,
		keys:     newKeyMap(),
		help:     help.New(),
		width:    DefaultWidth,
		height:   DefaultHeight,
	}
	if m.registry == nil {
		m.registry = provider.DefaultRegistry()
	}
	if m.store == nil {
		m.store = store.New(nil)
	}
	if m.ctx == nil {
		m.ctx = context.Background()
	}

	if err := m.mount(opts.Config, opts.Source); err != nil {
		return Model{}, err
	}

	m.viewport = viewport.New(m.width-4, m.height-chromeHeight)
	m.viewport.KeyMap = viewportKeys(m.keys)
	m.refresh()
	return m, nil
}

// mount replaces the configuration and re-seeds panel state. The store keeps
// its live values and only gains seeds for names it does not hold.
func (m *Model) mount(cfg *config.AccordionConfig, source string) error {
	machine, err := panel.New(cfg.LayerIDs(), cfg.DefaultOpenItems, cfg.PinnedItems)
	if err != nil {
		return fmt.Errorf("failed to mount accordion: %w", err)
	}

	m.cfg = cfg
	m.machine = machine
	m.reported = make(map[string]bool)
	m.store.Merge(cfg.State)
	if source != "" {
		m.source = source
	}
	if m.focus >= len(cfg.Layers) {
		m.focus = len(cfg.Layers) - 1
	}
	return nil
}

// Init implements tea.Model
func (m Model) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.viewport.Width = max(msg.Width-4, 1)
		m.viewport.Height = max(msg.Height-chromeHeight, 3)
		m.help.Width = max(msg.Width-6, 0)

	case tea.KeyMsg:
		if key.Matches(msg, m.keys.Quit) {
			return m, tea.Quit
		}
		cmd = m.handleKey(msg)

	case StateSetMsg:
		source := msg.Source
		if source == "" {
			source = "remote"
		}
		m.store.Set(msg.Name, msg.Value)
		logging.LogStateWrite(source, msg.Name, msg.Value)

	case provider.SetMsg:
		msg.Apply()

	case ReloadMsg:
		if err := m.Reload(msg.Config, msg.Path); err != nil {
			m.setError(err)
		}

	case ErrorMsg:
		m.setError(msg.Err)
	}

	m.refresh()
	return m, cmd
}

func (m *Model) handleKey(msg tea.KeyMsg) tea.Cmd {
	switch {
	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
	case key.Matches(msg, m.keys.Up):
		m.moveFocus(-1)
	case key.Matches(msg, m.keys.Down):
		m.moveFocus(1)
	case key.Matches(msg, m.keys.Toggle):
		_, _ = m.Activate(m.FocusedID())
	case key.Matches(msg, m.keys.Pin):
		_, _ = m.DispatchPinToggle(m.FocusedID())
	case key.Matches(msg, m.keys.PageUp, m.keys.PageDown):
		var cmd tea.Cmd
		m.viewport, cmd = m.viewport.Update(msg)
		return cmd
	default:
		return m.forwardKey(msg.String())
	}
	return nil
}

// forwardKey hands a key to the focused panel's provider when it is open.
func (m *Model) forwardKey(k string) tea.Cmd {
	id := m.FocusedID()
	if id == "" || !m.machine.IsOpen(id) {
		return nil
	}
	layer, _ := m.cfg.Layer(id)
	p, err := m.providerFor(layer)
	if err != nil {
		return nil
	}
	interactive, ok := p.(provider.Interactive)
	if !ok {
		return nil
	}
	_, cmd := interactive.HandleKey(k)
	return cmd
}

func (m *Model) moveFocus(delta int) {
	n := len(m.cfg.Layers)
	if n == 0 {
		return
	}
	m.focus = ((m.focus+delta)%n + n) % n
}

// Reload remounts with a new configuration.
func (m *Model) Reload(cfg *config.AccordionConfig, path string) error {
	if cfg == nil {
		return errors.New("reload: configuration is required")
	}
	if err := config.Validate(cfg); err != nil {
		return fmt.Errorf("reload: %w", err)
	}
	if err := m.mount(cfg, path); err != nil {
		return err
	}
	logging.LogConfigLoaded(m.source, len(cfg.Layers))
	m.setStatus(fmt.Sprintf("Reloaded %d panels", len(cfg.Layers)))
	return nil
}

// Activate handles a header activation on id: the collapsible primitive
// proposes the toggled membership and the machine settles it.
func (m *Model) Activate(id string) (panel.Transition, error) {
	proposed := Propose(m.machine.Open(), id)
	tr, err := m.machine.ToggleOpen(proposed)
	m.record("toggle_open", id, tr, err)
	return tr, err
}

// DispatchToggleOpen sends a raw proposed membership to the machine.
func (m *Model) DispatchToggleOpen(proposed []string) (panel.Transition, error) {
	tr, err := m.machine.ToggleOpen(proposed)
	subject := tr.ID
	var upe *panel.UnknownPanelError
	if errors.As(err, &upe) {
		subject = upe.ID
	}
	m.record("toggle_open", subject, tr, err)
	return tr, err
}

// DispatchPinToggle pins or unpins id.
func (m *Model) DispatchPinToggle(id string) (panel.Transition, error) {
	tr, err := m.machine.TogglePin(id)
	m.record("toggle_pin", id, tr, err)
	return tr, err
}

func (m *Model) record(event, id string, tr panel.Transition, err error) {
	if err != nil {
		logging.LogRejectedEvent(event, err)
		m.tracer.Event(m.ctx, "panel."+event, id, nil, err)
		m.setError(err)
		return
	}

	logging.LogTransition(tr.Kind.String(), tr.ID, tr.Open, tr.Pinned, tr.Unpinned)
	m.tracer.Event(m.ctx, "panel."+event, tr.ID, map[string]string{
		"kind":   tr.Kind.String(),
		"open":   fmt.Sprint(tr.Open),
		"pinned": fmt.Sprint(tr.Pinned),
	}, nil)
	m.setStatus(m.describe(tr))
}

func (m *Model) describe(tr panel.Transition) string {
	name := m.panelName(tr.ID)
	switch tr.Kind {
	case panel.KindOpen:
		return "Opened " + name
	case panel.KindClose:
		if len(tr.Unpinned) > 0 {
			return "Closed and unpinned " + name
		}
		return "Closed " + name
	case panel.KindPin:
		return "Pinned " + name
	case panel.KindUnpin:
		return "Unpinned " + name
	default:
		return ""
	}
}

func (m *Model) panelName(id string) string {
	if l, ok := m.cfg.Layer(id); ok && l.Name != "" {
		return l.Name
	}
	return id
}

func (m *Model) setStatus(s string) {
	m.status = s
	m.statusIsError = false
}

func (m *Model) setError(err error) {
	m.status = "error: " + err.Error()
	m.statusIsError = true
}

// FocusedID returns the id of the focused panel.
func (m Model) FocusedID() string {
	if m.focus < 0 || m.focus >= len(m.cfg.Layers) {
		return ""
	}
	return m.cfg.Layers[m.focus].ID
}

// Open returns the open panel ids.
func (m Model) Open() []string { return m.machine.Open() }

// Pinned returns the pinned panel ids.
func (m Model) Pinned() []string { return m.machine.Pinned() }

// Status returns the status line text and whether it reports an error.
func (m Model) Status() (string, bool) { return m.status, m.statusIsError }

// Store returns the host state store.
func (m Model) Store() *store.Store { return m.store }

// Config returns the mounted configuration.
func (m Model) Config() *config.AccordionConfig { return m.cfg }
