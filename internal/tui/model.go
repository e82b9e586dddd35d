package tui

import (
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
	zone "github.com/lrstanley/bubblezone"

	"github.com/san-kum/pagescroll/internal/config"
	"github.com/san-kum/pagescroll/internal/document"
	"github.com/san-kum/pagescroll/internal/easing"
	"github.com/san-kum/pagescroll/internal/engine"
	"github.com/san-kum/pagescroll/internal/logging"
	"github.com/san-kum/pagescroll/internal/metrics"
	"github.com/san-kum/pagescroll/internal/scroll"
	"github.com/san-kum/pagescroll/internal/storage"
)

const (
	tocWidth     = 26
	chromeHeight = 3
	historyLen   = 60
	frameEvery   = 16 * time.Millisecond
)

// Options configure the live view.
type Options struct {
	Document *document.Document
	Title    string
	Config   *config.Config
	// ConfigPath is watched for changes by Run when set.
	ConfigPath string
	Registry   *easing.Registry
	Observers  []engine.Observer
	// Store receives every finished animation when set.
	Store *storage.Store
	// Copy replaces the system clipboard; tests use it.
	Copy func(string) error
	// Clock replaces time.Now for the engine.
	Clock func() time.Time
}

type tickMsg time.Time

// ConfigReloadedMsg carries a config file change into the program.
type ConfigReloadedMsg struct {
	Config *config.Config
	Err    error
}

type Model struct {
	doc      *document.Document
	title    string
	cfg      *config.Config
	registry *easing.Registry
	defaults *scroll.Defaults
	easings  []string

	svc     *engine.Service
	clock   func() time.Time
	trace   *engine.Trace
	metrics []engine.Metric
	store   *storage.Store
	copy    func(string) error

	zones   *zone.Manager
	vp      *viewport.Model
	surface *ViewportSurface

	cursor    int
	current   *scroll.Instance
	currentID string
	completed bool
	status    string
	history   []float64
	now       time.Time
	ticking   bool

	width  int
	height int
}

func New(opts Options) (*Model, error) {
	if opts.Document == nil {
		opts.Document = document.Sample(80, 24)
	}
	if opts.Config == nil {
		opts.Config = config.DefaultConfig()
	}
	if opts.Registry == nil {
		opts.Registry = easing.NewRegistry()
	}
	if opts.Copy == nil {
		opts.Copy = clipboard.WriteAll
	}
	if opts.Clock == nil {
		opts.Clock = time.Now
	}

	defaults, err := opts.Config.Snapshot(opts.Registry)
	if err != nil {
		return nil, err
	}

	sc := opts.Config.ServiceConfig()
	sc.Clock = opts.Clock

	vp := viewport.New(80-tocWidth-1, 24-chromeHeight)
	m := &Model{
		doc:      opts.Document,
		title:    opts.Title,
		cfg:      opts.Config.Clone(),
		registry: opts.Registry,
		defaults: defaults,
		easings:  opts.Registry.Names(),
		svc:      engine.New(sc),
		clock:    opts.Clock,
		trace:    engine.NewTrace(nil),
		metrics:  metrics.Default(),
		store:    opts.Store,
		copy:     opts.Copy,
		zones:    zone.New(),
		vp:       &vp,
		history:  make([]float64, 0, historyLen),
		width:    80,
		height:   24,
		status:   "1-9 jump · n/p next/prev · e easing · i interruptible · y copy · q quit",
	}
	if m.title == "" {
		m.title = "pagescroll"
	}
	m.surface = NewViewportSurface(m.vp, m.doc)
	m.svc.AddObserver(m.trace)
	for _, o := range opts.Observers {
		m.svc.AddObserver(o)
	}
	for _, mt := range m.metrics {
		m.svc.AddMetric(mt)
	}
	m.layout()
	return m, nil
}

func (m *Model) Init() tea.Cmd { return nil }

func tick() tea.Cmd {
	return tea.Tick(frameEvery, func(t time.Time) tea.Msg { return tickMsg(t) })
}

func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.layout()
		return m, nil
	case tea.KeyMsg:
		return m.handleKey(msg)
	case tea.MouseMsg:
		return m.handleMouse(msg)
	case tickMsg:
		m.now = time.Time(msg)
		m.svc.Tick(m.now)
		m.record()
		if m.svc.Running("") > 0 {
			return m, tick()
		}
		m.ticking = false
		return m, nil
	case ConfigReloadedMsg:
		m.applyConfig(msg.Config, msg.Err)
		return m, nil
	}
	return m, nil
}

// layout sizes the viewport and the document to the window.
func (m *Model) layout() {
	w := max(m.width-tocWidth-1, 10)
	h := max(m.height-chromeHeight, 1)
	m.vp.Width = w
	m.vp.Height = h
	m.doc.Resize(float64(w), float64(h))

	lines := make([]string, len(m.doc.Lines()))
	for i, line := range m.doc.Lines() {
		line = ansi.Truncate(line, w, "…")
		if strings.HasPrefix(line, "#") {
			line = headingStyle.Render(line)
		}
		lines[i] = line
	}
	m.vp.SetContent(strings.Join(lines, "\n"))
	m.vp.SetYOffset(m.vp.YOffset)
}

func (m *Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	key := msg.String()
	if key == "ctrl+c" || key == "q" {
		return m, tea.Quit
	}

	// a terminal reports presses only; treat each as the matching release
	m.doc.Dispatch(scroll.Event{Type: "keyup", Key: key})

	headings := m.doc.Headings()
	switch key {
	case "1", "2", "3", "4", "5", "6", "7", "8", "9":
		idx := int(key[0] - '1')
		if idx < len(headings) {
			m.cursor = idx
			return m, m.scrollTo(idx)
		}
		return m, nil
	case "tab":
		if len(headings) > 0 {
			m.cursor = (m.cursor + 1) % len(headings)
		}
		return m, nil
	case "shift+tab":
		if len(headings) > 0 {
			m.cursor = (m.cursor - 1 + len(headings)) % len(headings)
		}
		return m, nil
	case "enter":
		return m, m.scrollTo(m.cursor)
	case "n":
		return m, m.scrollTo(m.sectionIndex() + 1)
	case "p":
		return m, m.scrollTo(m.sectionIndex() - 1)
	case "g":
		return m, m.scrollTo(0)
	case "G":
		return m, m.scrollTo(len(headings) - 1)
	case "e":
		m.cycleEasing()
		return m, nil
	case "i":
		m.cfg.Scroll.Interruptible = !m.cfg.Scroll.Interruptible
		m.rebuildDefaults()
		m.status = fmt.Sprintf("interruptible: %v", m.cfg.Scroll.Interruptible)
		return m, nil
	case "y":
		m.copyAnchor()
		return m, nil
	}

	var cmd tea.Cmd
	*m.vp, cmd = m.vp.Update(msg)
	return m, cmd
}

func (m *Model) handleMouse(msg tea.MouseMsg) (tea.Model, tea.Cmd) {
	switch {
	case msg.Button == tea.MouseButtonWheelUp || msg.Button == tea.MouseButtonWheelDown:
		m.doc.Dispatch(scroll.Event{Type: "wheel"})
		var cmd tea.Cmd
		*m.vp, cmd = m.vp.Update(msg)
		return m, cmd

	case msg.Action == tea.MouseActionPress && msg.Button == tea.MouseButtonLeft:
		for i := range m.doc.Headings() {
			if z := m.zones.Get(tocZoneID(i)); z != nil && z.InBounds(msg) {
				m.cursor = i
				return m, m.scrollTo(i)
			}
		}
		m.doc.Dispatch(scroll.Event{Type: "mousedown", Target: m.nodeAt(msg.X, msg.Y)})
	}
	return m, nil
}

// nodeAt maps a screen cell to the section under it, or nil outside the
// content pane.
func (m *Model) nodeAt(x, y int) scroll.Node {
	top := 1
	if x <= tocWidth || y < top || y >= top+m.vp.Height {
		return nil
	}
	if section := m.doc.SectionAt(m.vp.YOffset + y - top); section != nil {
		return section
	}
	return m.doc.BodyElement()
}

func tocZoneID(i int) string { return fmt.Sprintf("toc-%d", i) }

// sectionIndex is the heading at the top of the viewport, or -1 above the
// first heading.
func (m *Model) sectionIndex() int {
	idx := -1
	for i, h := range m.doc.Headings() {
		if h.Line <= m.vp.YOffset {
			idx = i
		}
	}
	return idx
}

// scrollTo animates the viewport to heading idx.
func (m *Model) scrollTo(idx int) tea.Cmd {
	headings := m.doc.Headings()
	if idx < 0 || idx >= len(headings) {
		return nil
	}
	h := headings[idx]

	var inst *scroll.Instance
	inst = scroll.New(m.doc, scroll.Selector("#section-"+h.ID), scroll.Options{
		Defaults: m.defaults,
		Views:    []scroll.Surface{m.surface},
		OnFinish: func(completed bool) { m.finished(inst, h.ID, completed) },
	})

	// finish the previous run before its frames are cleared
	m.svc.StopAll(inst.Namespace())
	m.trace.Reset()
	m.history = m.history[:0]
	m.now = m.clock()

	switch m.svc.Start(inst) {
	case engine.OutcomeStarted:
		m.current = inst
		m.currentID = h.ID
		m.completed = false
		m.status = fmt.Sprintf("scrolling to #%s", h.ID)
		if !m.ticking {
			m.ticking = true
			return tick()
		}
	case engine.OutcomeAlreadyThere:
		m.status = fmt.Sprintf("already at #%s", h.ID)
	case engine.OutcomeTargetNotFound:
		m.status = fmt.Sprintf("#%s not found", h.ID)
	}
	return nil
}

func (m *Model) finished(inst *scroll.Instance, id string, completed bool) {
	if inst == m.current {
		m.completed = completed
		m.current = nil
	}
	if completed {
		m.status = fmt.Sprintf("arrived at #%s", id)
	} else {
		m.status = fmt.Sprintf("scroll to #%s interrupted", id)
	}
	m.saveRun(inst, completed)
}

func (m *Model) saveRun(inst *scroll.Instance, completed bool) {
	frames := m.trace.Frames()
	if m.store == nil || len(frames) == 0 {
		return
	}
	result := m.trace.Result()
	meta := storage.RunMetadata{
		Document:      m.title,
		Target:        inst.Target().String(),
		Namespace:     inst.Namespace(),
		Easing:        m.cfg.Scroll.Easing,
		DurationMs:    inst.Duration().Milliseconds(),
		IntervalMs:    frameEvery.Milliseconds(),
		Offset:        inst.Offset(),
		Vertical:      inst.Vertical(),
		Interruptible: inst.Interruptible(),
		Outcome:       engine.OutcomeStarted.String(),
		Start:         inst.Progress.Start,
		End:           result.Final,
		Completed:     completed,
		Exhausted:     result.Exhausted,
		Metrics:       make(map[string]float64),
	}
	for _, mt := range m.metrics {
		meta.Metrics[mt.Name()] = mt.Value()
	}
	if _, err := m.store.Save(meta, frames); err != nil {
		logging.Warn("save run: %v", err)
	}
}

func (m *Model) record() {
	m.history = append(m.history, float64(m.vp.YOffset))
	if len(m.history) > historyLen {
		m.history = m.history[1:]
	}
}

func (m *Model) cycleEasing() {
	if len(m.easings) == 0 {
		return
	}
	next := 0
	for i, name := range m.easings {
		if name == m.cfg.Scroll.Easing {
			next = (i + 1) % len(m.easings)
			break
		}
	}
	m.cfg.Scroll.Easing = m.easings[next]
	m.rebuildDefaults()
	m.status = "easing: " + m.cfg.Scroll.Easing
}

// rebuildDefaults takes a new snapshot for instances created from now on.
func (m *Model) rebuildDefaults() {
	d, err := m.cfg.Snapshot(m.registry)
	if err != nil {
		m.status = err.Error()
		return
	}
	m.defaults = d
}

func (m *Model) applyConfig(cfg *config.Config, err error) {
	if err != nil {
		m.status = "config reload failed: " + err.Error()
		logging.Warn("config reload: %v", err)
		return
	}
	d, err := cfg.Snapshot(m.registry)
	if err != nil {
		m.status = "config reload failed: " + err.Error()
		return
	}
	m.cfg = cfg.Clone()
	m.defaults = d
	m.status = "config reloaded"
	logging.Info("config reloaded")
}

func (m *Model) copyAnchor() {
	idx := m.sectionIndex()
	if idx < 0 {
		m.status = "no heading in view"
		return
	}
	anchor := "#" + m.doc.Headings()[idx].ID
	if err := m.copy(anchor); err != nil {
		m.status = "copy failed: " + err.Error()
		return
	}
	m.status = "copied " + anchor
}

// progress is the elapsed fraction of the current animation.
func (m *Model) progress() float64 {
	if m.current == nil {
		if m.completed {
			return 1
		}
		return 0
	}
	p := m.current.Progress
	total := p.EndTime.Sub(p.StartTime)
	if total <= 0 {
		return 1
	}
	return math.Min(1, math.Max(0, float64(m.now.Sub(p.StartTime))/float64(total)))
}

func (m *Model) View() string {
	header := titleStyle.Render(m.title) + dim.Render(fmt.Sprintf("  easing %s · interruptible %v · namespace %s",
		m.cfg.Scroll.Easing, m.cfg.Scroll.Interruptible, m.defaults.Namespace))
	header = ansi.Truncate(header, m.width, "…")

	body := lipgloss.JoinHorizontal(lipgloss.Top, m.viewTOC(), dimmer.Render(" "), m.vp.View())

	pos := fmt.Sprintf(" %4d/%-4d ", m.vp.YOffset, max(m.vp.TotalLineCount()-m.vp.Height, 0))
	barWidth := max(m.width-len(pos)-22, 10)
	state := yellow.Render("idle")
	switch {
	case m.current != nil:
		state = magenta.Render("scrolling")
	case m.completed:
		state = green.Render("done")
	}
	progress := gradientBar(m.progress(), barWidth) + white.Render(pos) + sparkline(m.history, 12) + " " + state
	status := dim.Render(ansi.Truncate(m.status, m.width, "…"))

	return m.zones.Scan(lipgloss.JoinVertical(lipgloss.Left, header, body, progress, status))
}

func (m *Model) viewTOC() string {
	active := m.sectionIndex()
	lines := make([]string, 0, m.vp.Height)
	for i, h := range m.doc.Headings() {
		if len(lines) >= m.vp.Height {
			break
		}
		label := fmt.Sprintf("%d %s%s", (i+1)%10, strings.Repeat(" ", h.Level-1), h.Title)
		label = ansi.Truncate(label, tocWidth, "…")
		label += strings.Repeat(" ", max(tocWidth-ansi.StringWidth(label), 0))

		switch {
		case i == m.cursor:
			label = selectedStyle.Render(label)
		case i == active:
			label = cyan.Render(label)
		default:
			label = dim.Render(label)
		}
		lines = append(lines, m.zones.Mark(tocZoneID(i), label))
	}
	for len(lines) < m.vp.Height {
		lines = append(lines, strings.Repeat(" ", tocWidth))
	}
	return strings.Join(lines, "\n")
}

// Close releases the zone manager.
func (m *Model) Close() {
	m.zones.Close()
}
