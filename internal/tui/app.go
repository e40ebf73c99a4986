package tui

import (
	"context"
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog"

	"github.com/catpea/data-drag/internal/board"
	"github.com/catpea/data-drag/internal/config"
	"github.com/catpea/data-drag/internal/dom"
	"github.com/catpea/data-drag/internal/engine"
	"github.com/catpea/data-drag/internal/geom"
)

// Model is the bubbletea program driving a board: it feeds terminal mouse
// events into the drag engine and renders the document tree each frame.
type Model struct {
	cfg    config.Config
	log    zerolog.Logger
	def    board.Definition
	tree   board.Tree
	store  *board.Store
	layout *Layout
	reg    *engine.Registry
	orchs  []*engine.Orchestrator
	sched  *frameScheduler
	keys   keyMap

	// notices is shared with the event listeners hooked onto the tree; the
	// engine emits synchronously from inside Update, and bubbletea copies
	// the model by value.
	notices *notices

	status string
	width  int
	height int
}

type notices struct {
	status  string
	dropped bool
}

// frameScheduler queues the engine's deferred animation steps until the next
// frame tick.
type frameScheduler struct {
	queue []func()
}

func (s *frameScheduler) NextFrame(fn func()) {
	s.queue = append(s.queue, fn)
}

func (s *frameScheduler) flush() {
	q := s.queue
	s.queue = nil
	for _, fn := range q {
		fn()
	}
}

type frameMsg struct{}

type savedMsg struct {
	err error
}

// NewModel wires a board tree to the drag engine: one orchestrator for the
// primary scope and one per nested scope, all sharing a private registry.
func NewModel(cfg config.Config, def board.Definition, tree board.Tree, store *board.Store, log zerolog.Logger) Model {
	m := Model{
		cfg:     cfg,
		log:     log,
		def:     def,
		tree:    tree,
		store:   store,
		layout:  NewLayout(tree.Root),
		reg:     engine.NewRegistry(),
		sched:   &frameScheduler{},
		keys:    newKeyMap(),
		notices: &notices{},
	}

	opts := []engine.Option{
		engine.WithRegistry(m.reg),
		engine.WithScheduler(m.sched),
		engine.WithLogger(log),
		engine.WithThreshold(cfg.Engine.Threshold),
	}
	m.orchs = append(m.orchs, engine.New(tree.Root, m.layout, opts...))
	for _, scope := range tree.Scopes {
		m.orchs = append(m.orchs, engine.New(scope, m.layout, opts...))
	}

	m.subscribe()
	return m
}

// subscribe hooks status and persistence listeners onto the board root.
// Nested-scope events bubble across host edges, so the root sees everything.
func (m *Model) subscribe() {
	n := m.notices
	root := m.tree.Root

	root.On(engine.EventStart, func(ev dom.Event) {
		s := ev.Data.(engine.Start)
		n.status = fmt.Sprintf("dragging %s", describe(s.Item))
	})
	root.On(engine.EventMove, func(ev dom.Event) {
		mv := ev.Data.(engine.Move)
		n.status = fmt.Sprintf("%s over %s", describe(mv.Item), describe(mv.To))
	})
	root.On(engine.EventCloned, func(ev dom.Event) {
		c := ev.Data.(engine.Cloned)
		n.status = fmt.Sprintf("copying %s", describe(c.Original))
	})
	root.On(engine.EventDrop, func(ev dom.Event) {
		d := ev.Data.(engine.Drop)
		verb := "moved"
		if d.IsCopy {
			verb = "copied"
		}
		n.status = fmt.Sprintf("%s %s to %s", verb, describe(d.Item), describe(d.To))
		n.dropped = true
	})
	root.On(engine.EventCancel, func(ev dom.Event) {
		c := ev.Data.(engine.Cancel)
		n.status = fmt.Sprintf("cancelled %s", describe(c.Item))
	})
}

func describe(n *dom.Node) string {
	if n == nil {
		return "?"
	}
	if title, ok := n.Attr("title"); ok && title != "" {
		return title
	}
	if name, ok := n.Attr("name"); ok && name != "" {
		return name
	}
	if id, ok := n.Attr("id"); ok && id != "" {
		return id
	}
	return n.Kind()
}

func (m Model) Init() tea.Cmd {
	return nil
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.layout.Resize(msg.Width, msg.Height)
		return m, nil

	case tea.MouseMsg:
		return m.updateMouse(msg)

	case frameMsg:
		m.sched.flush()
		if m.animating() {
			return m, tick()
		}
		return m, nil

	case savedMsg:
		if msg.err != nil {
			m.status = fmt.Sprintf("save failed: %v", msg.err)
			m.log.Error().Err(msg.err).Msg("tui: placement save failed")
		}
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "q":
			return m, tea.Quit
		case "esc":
			// Escape hatch for a lost pointer-up.
			m.reg.CancelActive()
			m.status = m.notices.status
			return m, m.afterEngine()
		case "r":
			m.resetBoard()
			m.status = "board reset"
			return m, m.saveCmd()
		}
		return m, nil
	}
	return m, nil
}

func (m Model) updateMouse(msg tea.MouseMsg) (tea.Model, tea.Cmd) {
	p := geom.Point{X: float64(msg.X), Y: float64(msg.Y)}

	switch msg.Action {
	case tea.MouseActionPress:
		btn := mapButton(msg.Button)
		for _, o := range m.orchs {
			if o.PointerDown(p, btn) {
				break
			}
		}
	case tea.MouseActionMotion:
		if len(m.orchs) > 0 {
			m.orchs[0].PointerMove(p)
		}
	case tea.MouseActionRelease:
		if msg.Button == tea.MouseButtonLeft || msg.Button == tea.MouseButtonNone {
			if len(m.orchs) > 0 {
				m.orchs[0].PointerUp(p)
			}
		}
	}

	m.status = m.notices.status
	return m, m.afterEngine()
}

// afterEngine collects the follow-up commands an engine interaction may have
// produced: a placement save after a drop, and a frame tick while deferred
// animation steps or in-flight transitions remain.
func (m Model) afterEngine() tea.Cmd {
	var cmds []tea.Cmd
	if m.notices.dropped {
		m.notices.dropped = false
		cmds = append(cmds, m.saveCmd())
	}
	if len(m.sched.queue) > 0 || m.animating() {
		cmds = append(cmds, tick())
	}
	return tea.Batch(cmds...)
}

func tick() tea.Cmd {
	return tea.Tick(time.Second/30, func(time.Time) tea.Msg {
		return frameMsg{}
	})
}

// animating reports whether any node in the board, nested scopes included,
// has an offset transition in progress.
func (m Model) animating() bool {
	now := time.Now()
	found := false
	walkTree(m.tree.Root, func(n *dom.Node) {
		if n.Animating(now) {
			found = true
		}
	})
	return found
}

func walkTree(n *dom.Node, fn func(*dom.Node)) {
	fn(n)
	for _, c := range n.Children() {
		walkTree(c, fn)
	}
	if sr := n.ScopeRoot(); sr != nil {
		walkTree(sr, fn)
	}
}

// saveCmd snapshots the current placements and persists them off the UI
// thread.
func (m Model) saveCmd() tea.Cmd {
	if m.store == nil {
		return nil
	}
	placements := board.CapturePlacements(m.tree)
	name := m.def.Name
	store := m.store
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return savedMsg{err: store.Save(ctx, name, placements)}
	}
}

// resetBoard puts every card back where the definition declares it.
func (m *Model) resetBoard() {
	defaults := board.CapturePlacements(board.Build(m.def))
	board.ApplyPlacements(m.tree, defaults)
}

func mapButton(b tea.MouseButton) engine.Button {
	switch b {
	case tea.MouseButtonLeft:
		return engine.ButtonPrimary
	case tea.MouseButtonRight:
		return engine.ButtonSecondary
	case tea.MouseButtonMiddle:
		return engine.ButtonMiddle
	default:
		return engine.ButtonSecondary
	}
}
