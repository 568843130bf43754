package ui

import (
	"reflect"
	"time"

	"github.com/atomicstack/flyout/internal/backend"
	"github.com/atomicstack/flyout/internal/data/dispatcher"
	"github.com/atomicstack/flyout/internal/engine"
	"github.com/atomicstack/flyout/internal/logging"
	"github.com/atomicstack/flyout/internal/logging/events"
	"github.com/atomicstack/flyout/internal/menu"
	"github.com/atomicstack/flyout/internal/menudef"
	"github.com/atomicstack/flyout/internal/theme"
	"github.com/atomicstack/flyout/internal/ui/command"
	"github.com/charmbracelet/bubbles/help"
	tea "github.com/charmbracelet/bubbletea"
	zone "github.com/lrstanley/bubblezone"
)

// flushRetry paces mount attempts the anchor refused.
const flushRetry = 16 * time.Millisecond

var styles = theme.Default()

type msgHandler func(tea.Msg) tea.Cmd

// flushMsg is the scheduler tick that installs deferred submenu layers.
type flushMsg struct{}

// Config describes the menus and presentation of a Model.
type Config struct {
	File *menudef.File
	// Root shows a single menu of File as a popup.
	Root string
	// Engine carries the behaviour flags; the host collaborators are
	// supplied by the Model.
	Engine     engine.Options
	SocketPath string
	Width      int
	Height     int
	ShowFooter bool
	Verbose    bool
}

// Model implements the Bubble Tea model hosting a menubar or popup menu.
type Model struct {
	set    *menudef.Set
	bar    *engine.Bar
	bus    *command.Bus
	keys   keyMap
	help   help.Model
	zones  *zone.Manager
	anchor *anchor
	lock   *scrollLock
	trap   map[string]bool

	backend    *backend.Watcher
	dispatcher *dispatcher.Dispatcher
	backendErr map[string]error

	// hit resolves a mouse event to the element under the pointer.
	hit      func(tea.MouseMsg) menu.Target
	hovered  menu.Target
	rendered []hitZone

	queued    []command.Request
	inflight  int
	selection string
	swallowed int

	width       int
	height      int
	fixedWidth  bool
	fixedHeight bool
	showFooter  bool
	verbose     bool
	errMsg      string
	infoMsg     string

	handlers map[reflect.Type]msgHandler
}

// NewModel builds the menus of cfg.File and opens a popup, or focuses the
// first trigger of a menubar.
func NewModel(cfg Config) (*Model, error) {
	m := &Model{
		bus:        command.New(cfg.SocketPath),
		keys:       defaultKeyMap(),
		help:       help.New(),
		zones:      zone.New(),
		lock:       &scrollLock{},
		trap:       make(map[string]bool),
		showFooter: cfg.ShowFooter,
		verbose:    cfg.Verbose,
	}
	m.anchor = newAnchor(m)
	m.hit = m.zoneHit
	if cfg.Width > 0 {
		m.width = cfg.Width
		m.fixedWidth = true
	}
	if cfg.Height > 0 {
		m.height = cfg.Height
		m.fixedHeight = true
	}
	opts := cfg.Engine
	opts.Anchor = m.anchor
	opts.ScrollLock = m.lock
	opts.Trap = m
	set, err := menudef.Build(cfg.File, cfg.Root, opts)
	if err != nil {
		return nil, err
	}
	m.set = set
	m.bar = set.Bar
	m.dispatcher = dispatcher.New(m.bar)
	m.backendErr = make(map[string]error)
	for _, tree := range m.bar.Trees() {
		tree.OnSelect(m.onSelect)
	}
	if len(m.bar.Trees()) == 1 {
		m.bar.OpenMenu(0, true)
	} else {
		m.bar.Focus(0)
	}
	m.registerHandlers()
	return m, nil
}

// WithBus replaces the command bus, mainly for tests.
func (m *Model) WithBus(bus *command.Bus) *Model {
	m.bus = bus
	return m
}

// Bar exposes the menubar driven by the model.
func (m *Model) Bar() *engine.Bar {
	return m.bar
}

// Selection returns the last selected item as menu/item/id, or "".
func (m *Model) Selection() string {
	return m.selection
}

// SetTrapped records the focus trap state of a menu.
func (m *Model) SetTrapped(scope string, trapped bool) {
	if trapped {
		m.trap[scope] = true
		return
	}
	delete(m.trap, scope)
}

func (m *Model) trapped() bool {
	return len(m.trap) > 0
}

// Init is part of the tea.Model interface.
func (m *Model) Init() tea.Cmd {
	cmds := []tea.Cmd{m.flushCmd()}
	if m.backend != nil {
		cmds = append(cmds, waitForBackendEvent(m.backend))
	}
	return tea.Batch(cmds...)
}

// Update responds to Bubble Tea messages.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if handler := m.handlerFor(msg); handler != nil {
		return m, handler(msg)
	}
	return m, nil
}

func (m *Model) registerHandlers() {
	m.handlers = map[reflect.Type]msgHandler{
		reflect.TypeOf(tea.KeyMsg{}):        m.handleKeyMsg,
		reflect.TypeOf(tea.MouseMsg{}):      m.handleMouseMsg,
		reflect.TypeOf(tea.WindowSizeMsg{}): m.handleWindowSizeMsg,
		reflect.TypeOf(flushMsg{}):          m.handleFlushMsg,
		reflect.TypeOf(command.Result{}):    m.handleResultMsg,
		reflect.TypeOf(backendEventMsg{}):   m.handleBackendEventMsg,
		reflect.TypeOf(backendDoneMsg{}):    m.handleBackendDoneMsg,
	}
}

func (m *Model) handlerFor(msg tea.Msg) msgHandler {
	if msg == nil || m.handlers == nil {
		return nil
	}
	t := reflect.TypeOf(msg)
	if handler, ok := m.handlers[t]; ok {
		return handler
	}
	if t.Kind() == reflect.Ptr {
		if handler, ok := m.handlers[t.Elem()]; ok {
			return handler
		}
	}
	return nil
}

func (m *Model) handleKeyMsg(msg tea.Msg) tea.Cmd {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return nil
	}
	if keyMsg.Type == tea.KeyCtrlC {
		return tea.Quit
	}
	if keyMsg.Type == tea.KeyEsc && m.bar.Open() < 0 {
		return tea.Quit
	}
	keys := m.keys.translate(keyMsg)
	if len(keys) == 0 {
		return nil
	}
	m.errMsg = ""
	for _, k := range keys {
		m.bar.KeyDown(k)
	}
	return m.afterInput()
}

func (m *Model) handleWindowSizeMsg(msg tea.Msg) tea.Cmd {
	size, ok := msg.(tea.WindowSizeMsg)
	if !ok {
		return nil
	}
	if !m.fixedWidth {
		m.width = size.Width
	}
	if !m.fixedHeight {
		m.height = size.Height
	}
	return m.flushCmd()
}

func (m *Model) handleFlushMsg(tea.Msg) tea.Cmd {
	m.bar.Flush()
	m.bar.UnmountClosed()
	if m.bar.Pending() > 0 {
		return tea.Tick(flushRetry, func(time.Time) tea.Msg { return flushMsg{} })
	}
	return nil
}

func (m *Model) handleResultMsg(msg tea.Msg) tea.Cmd {
	result, ok := msg.(command.Result)
	if !ok {
		return nil
	}
	if m.inflight > 0 {
		m.inflight--
	}
	if result.Err != nil {
		m.errMsg = result.Err.Error()
		m.infoMsg = ""
		logging.Error(result.Err)
		events.Action.Error(result.Err)
		return nil
	}
	if m.verbose {
		m.infoMsg = result.Info
	}
	events.Action.Success(result.Info)
	if m.bar.Open() < 0 && m.inflight == 0 {
		return tea.Quit
	}
	return nil
}

// onSelect queues the action of a selected item; it runs once the engine
// finished handling the input that selected it.
func (m *Model) onSelect(e *menu.SelectEvent) {
	target := menu.ItemOf(e.Menu, e.Item.ID)
	action, _ := m.set.Action(target)
	m.selection = target.String()
	m.queued = append(m.queued, command.Request{
		ID:     target.String(),
		Label:  e.Item.Label,
		Action: action,
		Item:   e.Item,
	})
}

// afterInput completes pending closes, dispatches queued actions and
// schedules the next flush.
func (m *Model) afterInput() tea.Cmd {
	m.bar.UnmountClosed()
	cmds := make([]tea.Cmd, 0, len(m.queued)+1)
	for _, req := range m.queued {
		m.inflight++
		cmds = append(cmds, m.bus.Execute(req))
	}
	m.queued = nil
	if cmd := m.flushCmd(); cmd != nil {
		cmds = append(cmds, cmd)
	}
	if len(cmds) == 0 {
		return nil
	}
	return tea.Batch(cmds...)
}

func (m *Model) flushCmd() tea.Cmd {
	if m.bar.Pending() == 0 {
		return nil
	}
	return func() tea.Msg { return flushMsg{} }
}
