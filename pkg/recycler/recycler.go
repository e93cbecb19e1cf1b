// Package recycler is a bubbletea rendering host for [adapter.Source]. It
// binds only the rows that fit on screen and recycles holders that scroll
// out of view.
package recycler

import (
	"log/slog"
	"strings"

	"charm.land/bubbles/v2/key"
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"
	"github.com/charmbracelet/x/ansi"
	"github.com/charmbracelet/x/exp/charmtone"
	"github.com/charmbracelet/x/exp/ordered"

	"github.com/xuexiangjys/xui/pkg/adapter"
)

const cursorMark = "▌"

type Styles struct {
	Title            lipgloss.Style
	Subtitle         lipgloss.Style
	SelectedTitle    lipgloss.Style
	SelectedSubtitle lipgloss.Style
	Cursor           lipgloss.Style
}

func DefaultStyles() Styles {
	return Styles{
		Title:            lipgloss.NewStyle().Foreground(charmtone.Ash),
		Subtitle:         lipgloss.NewStyle().Foreground(charmtone.Squid),
		SelectedTitle:    lipgloss.NewStyle().Foreground(charmtone.Julep).Bold(true),
		SelectedSubtitle: lipgloss.NewStyle().Foreground(charmtone.Bok),
		Cursor:           lipgloss.NewStyle().Foreground(charmtone.Charple),
	}
}

type slot struct {
	position int
	start    int
	lines    int
}

type Option func(*Model)

// WithSize sets the size of the list.
func WithSize(width, height int) Option {
	return func(m *Model) {
		m.width = width
		m.height = height
	}
}

// WithGap sets the number of blank lines between rows.
func WithGap(gap int) Option {
	return func(m *Model) {
		m.gap = max(0, gap)
	}
}

func WithKeyMap(keyMap KeyMap) Option {
	return func(m *Model) {
		m.keyMap = keyMap
	}
}

func WithStyles(styles Styles) Option {
	return func(m *Model) {
		m.styles = styles
	}
}

func WithWrapNavigation() Option {
	return func(m *Model) {
		m.wrap = true
	}
}

func WithFocus(focus bool) Option {
	return func(m *Model) {
		m.focused = focus
	}
}

func WithEnableMouse() Option {
	return func(m *Model) {
		m.enableMouse = true
	}
}

// WithHostDecorator wraps the notification path between the adapter and the
// list, e.g. to count notifications.
func WithHostDecorator(decorate func(adapter.Host) adapter.Host) Option {
	return func(m *Model) {
		m.decorate = decorate
	}
}

// Model renders an adapter as a scrollable list with a cursor.
type Model struct {
	src    adapter.Source
	keyMap KeyMap
	styles Styles

	width, height int
	gap           int
	wrap          bool
	focused       bool
	enableMouse   bool
	originX       int
	originY       int
	decorate      func(adapter.Host) adapter.Host

	cursor int
	offset int

	attached map[int]*adapter.Holder
	scrap    map[int][]*adapter.Holder
	window   []slot
	rows     []int
	fresh    map[int]bool

	rebindAll   bool
	needsLayout bool
}

var _ adapter.Host = (*Model)(nil)

// New creates a list for src and attaches it as the adapter's host.
func New(src adapter.Source, opts ...Option) *Model {
	m := &Model{
		src:         src,
		keyMap:      DefaultKeyMap(),
		styles:      DefaultStyles(),
		focused:     true,
		attached:    make(map[int]*adapter.Holder),
		scrap:       make(map[int][]*adapter.Holder),
		fresh:       make(map[int]bool),
		needsLayout: true,
	}
	for _, opt := range opts {
		opt(m)
	}

	var host adapter.Host = m
	if m.decorate != nil {
		host = m.decorate(host)
	}
	src.Attach(host)
	return m
}

// NotifyItemInserted implements adapter.Host.
func (m *Model) NotifyItemInserted(position int) {
	shifted := make(map[int]*adapter.Holder, len(m.attached))
	for pos, h := range m.attached {
		if pos >= position {
			h.Offset(1)
			pos++
		}
		shifted[pos] = h
	}
	m.attached = shifted
	m.needsLayout = true
}

// NotifyItemRemoved implements adapter.Host.
func (m *Model) NotifyItemRemoved(position int) {
	if h, ok := m.attached[position]; ok {
		delete(m.attached, position)
		m.recycle(h)
	}
	shifted := make(map[int]*adapter.Holder, len(m.attached))
	for pos, h := range m.attached {
		if pos > position {
			h.Offset(-1)
			pos--
		}
		shifted[pos] = h
	}
	m.attached = shifted
	m.needsLayout = true
}

// NotifyDataSetChanged implements adapter.Host.
func (m *Model) NotifyDataSetChanged() {
	m.rebindAll = true
	m.needsLayout = true
}

func (m *Model) Init() tea.Cmd {
	return nil
}

func (m *Model) Update(msg tea.Msg) (*Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyPressMsg:
		if !m.focused {
			return m, nil
		}
		switch {
		case key.Matches(msg, m.keyMap.Down):
			m.MoveDown(1)
		case key.Matches(msg, m.keyMap.Up):
			m.MoveUp(1)
		case key.Matches(msg, m.keyMap.PageDown):
			m.MoveDown(m.pageSize())
		case key.Matches(msg, m.keyMap.PageUp):
			m.MoveUp(m.pageSize())
		case key.Matches(msg, m.keyMap.HalfPageDown):
			m.MoveDown(max(1, m.pageSize()/2))
		case key.Matches(msg, m.keyMap.HalfPageUp):
			m.MoveUp(max(1, m.pageSize()/2))
		case key.Matches(msg, m.keyMap.Home):
			m.GoToTop()
		case key.Matches(msg, m.keyMap.End):
			m.GoToBottom()
		case key.Matches(msg, m.keyMap.Click):
			m.ClickCursor()
		case key.Matches(msg, m.keyMap.LongClick):
			m.LongClickCursor()
		}
	case tea.MouseWheelMsg:
		if !m.enableMouse {
			return m, nil
		}
		switch msg.Button {
		case tea.MouseWheelDown:
			m.MoveDown(1)
		case tea.MouseWheelUp:
			m.MoveUp(1)
		}
	case tea.MouseClickMsg:
		if !m.enableMouse {
			return m, nil
		}
		m.handleMouseClick(msg.X-m.originX, msg.Y-m.originY, msg.Button)
	}
	return m, nil
}

func (m *Model) handleMouseClick(x, y int, button tea.MouseButton) {
	if x < 0 || y < 0 || x >= m.width || y >= m.height {
		return
	}
	m.ensureLayout()
	if y >= len(m.rows) || m.rows[y] < 0 {
		return
	}
	pos := m.rows[y]
	h, ok := m.attached[pos]
	if !ok {
		return
	}
	m.cursor = pos
	m.needsLayout = true
	switch button {
	case tea.MouseLeft:
		h.Click()
	case tea.MouseRight:
		h.LongClick()
	}
}

func (m *Model) View() string {
	if m.width <= 0 || m.height <= 0 {
		return ""
	}
	m.ensureLayout()

	lines := make([]string, 0, m.height)
	for i, s := range m.window {
		if i > 0 {
			for range m.gap {
				lines = append(lines, "")
			}
		}
		h := m.attached[s.position]
		if h == nil {
			continue
		}
		lines = append(lines, m.renderHolder(h, m.focused && s.position == m.cursor)...)
	}
	if len(lines) > m.height {
		lines = lines[:m.height]
	}

	return lipgloss.NewStyle().
		Width(m.width).
		Height(m.height).
		Render(strings.Join(lines, "\n"))
}

func (m *Model) renderHolder(h *adapter.Holder, focused bool) []string {
	fields := h.VisibleFields()
	if len(fields) == 0 {
		fields = []string{""}
	}

	gutter := "  "
	if focused {
		gutter = m.styles.Cursor.Render(cursorMark) + " "
	}
	title, subtitle := m.styles.Title, m.styles.Subtitle
	if h.Selected() {
		title, subtitle = m.styles.SelectedTitle, m.styles.SelectedSubtitle
	}

	avail := max(0, m.width-lipgloss.Width(gutter))
	out := make([]string, 0, len(fields))
	for i, f := range fields {
		style := subtitle
		if i == 0 {
			style = title
		}
		text := ansi.Truncate(h.Text(f), avail, "…")
		out = append(out, gutter+style.Render(text))
	}
	return out
}

func (m *Model) ensureLayout() {
	if m.needsLayout {
		m.layout()
	}
}

func (m *Model) layout() {
	m.needsLayout = false
	clear(m.fresh)
	defer func() { m.rebindAll = false }()

	n := m.src.ItemCount()
	if n == 0 || m.height <= 0 {
		for pos, h := range m.attached {
			delete(m.attached, pos)
			m.recycle(h)
		}
		m.cursor = ordered.Clamp(m.cursor, 0, max(0, n-1))
		m.offset = 0
		m.window = m.window[:0]
		m.rows = m.rows[:0]
		return
	}

	m.cursor = ordered.Clamp(m.cursor, 0, n-1)
	m.offset = ordered.Clamp(m.offset, 0, n-1)
	if m.cursor < m.offset {
		m.offset = m.cursor
	}
	for {
		m.fill(n)
		if m.offset >= m.cursor || m.fullyVisible(m.cursor) {
			break
		}
		m.offset++
	}

	visible := make(map[int]bool, len(m.window))
	for _, s := range m.window {
		visible[s.position] = true
	}
	for pos, h := range m.attached {
		if !visible[pos] {
			delete(m.attached, pos)
			m.recycle(h)
		}
	}
}

func (m *Model) fill(n int) {
	// Every row takes at least one line, so nothing outside
	// [offset, offset+height) can be on screen.
	for pos, h := range m.attached {
		if pos < m.offset || pos >= m.offset+m.height {
			delete(m.attached, pos)
			m.recycle(h)
		}
	}
	m.window = m.window[:0]
	m.rows = m.rows[:0]
	used := 0
	for pos := m.offset; pos < n && used < m.height; pos++ {
		if len(m.window) > 0 {
			for range m.gap {
				m.rows = append(m.rows, -1)
			}
			used += m.gap
			if used >= m.height {
				break
			}
		}
		h := m.obtain(pos)
		if h == nil {
			continue
		}
		lines := max(1, len(h.VisibleFields()))
		for range lines {
			m.rows = append(m.rows, pos)
		}
		m.window = append(m.window, slot{position: pos, start: used, lines: lines})
		used += lines
	}
}

func (m *Model) fullyVisible(position int) bool {
	for _, s := range m.window {
		if s.position == position {
			return s.start+s.lines <= m.height
		}
	}
	return false
}

func (m *Model) obtain(pos int) *adapter.Holder {
	kind, err := m.src.ItemKind(pos)
	if err != nil {
		slog.Debug("Could not resolve item kind", "position", pos, "error", err)
		return nil
	}
	if h, ok := m.attached[pos]; ok {
		if h.Kind() == kind {
			if m.rebindAll && !m.fresh[pos] && !m.bind(h, pos) {
				return nil
			}
			return h
		}
		delete(m.attached, pos)
		m.recycle(h)
	}

	var h *adapter.Holder
	if heap := m.scrap[kind]; len(heap) > 0 {
		h = heap[len(heap)-1]
		m.scrap[kind] = heap[:len(heap)-1]
	} else {
		h = m.src.CreateHolder(kind)
	}
	if !m.bind(h, pos) {
		m.recycle(h)
		return nil
	}
	m.attached[pos] = h
	return h
}

func (m *Model) bind(h *adapter.Holder, pos int) bool {
	if err := m.src.BindHolder(h, pos); err != nil {
		slog.Debug("Could not bind holder", "position", pos, "error", err)
		return false
	}
	m.fresh[pos] = true
	return true
}

func (m *Model) recycle(h *adapter.Holder) {
	kind := h.Kind()
	h.Unbind()
	m.scrap[kind] = append(m.scrap[kind], h)
}

func (m *Model) pageSize() int {
	m.ensureLayout()
	return max(1, len(m.window))
}

// MoveDown moves the cursor down by n rows.
func (m *Model) MoveDown(n int) {
	count := m.src.ItemCount()
	if count == 0 {
		return
	}
	next := m.cursor + n
	if next >= count {
		next = count - 1
		if m.wrap && m.cursor == count-1 {
			next = 0
		}
	}
	m.cursor = next
	m.needsLayout = true
}

// MoveUp moves the cursor up by n rows.
func (m *Model) MoveUp(n int) {
	count := m.src.ItemCount()
	if count == 0 {
		return
	}
	next := m.cursor - n
	if next < 0 {
		next = 0
		if m.wrap && m.cursor == 0 {
			next = count - 1
		}
	}
	m.cursor = next
	m.needsLayout = true
}

func (m *Model) GoToTop() {
	m.cursor = 0
	m.needsLayout = true
}

func (m *Model) GoToBottom() {
	m.cursor = max(0, m.src.ItemCount()-1)
	m.needsLayout = true
}

// ClickCursor forwards a click to the holder under the cursor.
func (m *Model) ClickCursor() bool {
	m.ensureLayout()
	if h, ok := m.attached[m.cursor]; ok {
		return h.Click()
	}
	return false
}

// LongClickCursor forwards a long click to the holder under the cursor.
func (m *Model) LongClickCursor() bool {
	m.ensureLayout()
	if h, ok := m.attached[m.cursor]; ok {
		return h.LongClick()
	}
	return false
}

func (m *Model) Cursor() int {
	return m.cursor
}

func (m *Model) SetCursor(position int) {
	m.cursor = position
	m.needsLayout = true
}

// Holder returns the holder bound to position, if it is on screen.
func (m *Model) Holder(position int) (*adapter.Holder, bool) {
	m.ensureLayout()
	h, ok := m.attached[position]
	return h, ok
}

// Window returns the positions currently on screen, in order.
func (m *Model) Window() []int {
	m.ensureLayout()
	positions := make([]int, len(m.window))
	for i, s := range m.window {
		positions[i] = s.position
	}
	return positions
}

// AttachedCount returns the number of holders bound to visible rows.
func (m *Model) AttachedCount() int {
	m.ensureLayout()
	return len(m.attached)
}

// ScrapCount returns the number of unbound holders kept for reuse.
func (m *Model) ScrapCount() int {
	m.ensureLayout()
	n := 0
	for _, heap := range m.scrap {
		n += len(heap)
	}
	return n
}

func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
	m.needsLayout = true
}

func (m *Model) GetSize() (int, int) {
	return m.width, m.height
}

// SetOrigin sets the screen cell of the list's top left corner, used to
// resolve mouse clicks.
func (m *Model) SetOrigin(x, y int) {
	m.originX = x
	m.originY = y
}

func (m *Model) SetGap(gap int) {
	m.gap = max(0, gap)
	m.needsLayout = true
}

func (m *Model) KeyMap() KeyMap {
	return m.keyMap
}

// Focus lets the list handle keys and highlight the cursor row.
func (m *Model) Focus() {
	m.focused = true
}

func (m *Model) Blur() {
	m.focused = false
}
