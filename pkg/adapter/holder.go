package adapter

// NoPosition is the layout position of a holder that is not bound to a row.
const NoPosition = -1

// Layout describes how a holder of a given item kind is laid out: an
// identifier and the named fields it shows, in display order.
type Layout struct {
	ID     string
	Fields []string
}

// Holder is a reusable view slot. The rendering host owns it and decides
// when it is recycled; the adapter fills it in on request.
type Holder struct {
	layout   Layout
	kind     int
	position int
	selected bool

	text   map[string]string
	hidden map[string]bool

	onClick     func(*Holder)
	onLongClick func(*Holder)
}

func newHolder(kind int, layout Layout) *Holder {
	return &Holder{
		layout:   layout,
		kind:     kind,
		position: NoPosition,
		text:     make(map[string]string, len(layout.Fields)),
		hidden:   make(map[string]bool),
	}
}

// Layout returns the layout the holder was created with.
func (h *Holder) Layout() Layout {
	return h.layout
}

// Kind returns the item kind the holder was created for.
func (h *Holder) Kind() int {
	return h.kind
}

// LayoutPosition returns the list position the holder currently represents,
// or [NoPosition] when it is unbound.
func (h *Holder) LayoutPosition() int {
	return h.position
}

// Selected reports whether the holder was bound to the adapter's selection
// index.
func (h *Holder) Selected() bool {
	return h.selected
}

// SetText sets the text of a field.
func (h *Holder) SetText(field, text string) *Holder {
	h.text[field] = text
	return h
}

// Text returns the text of a field.
func (h *Holder) Text(field string) string {
	return h.text[field]
}

// SetVisible shows or hides a field.
func (h *Holder) SetVisible(field string, visible bool) *Holder {
	if visible {
		delete(h.hidden, field)
	} else {
		h.hidden[field] = true
	}
	return h
}

// Visible reports whether a field is shown.
func (h *Holder) Visible(field string) bool {
	return !h.hidden[field]
}

// VisibleFields returns the layout fields that are currently shown.
func (h *Holder) VisibleFields() []string {
	fields := make([]string, 0, len(h.layout.Fields))
	for _, f := range h.layout.Fields {
		if !h.hidden[f] {
			fields = append(fields, f)
		}
	}
	return fields
}

// Click forwards a primary click on the holder. It reports whether the click
// was dispatched, which requires the holder to be bound.
func (h *Holder) Click() bool {
	if h.position == NoPosition || h.onClick == nil {
		return false
	}
	h.onClick(h)
	return true
}

// LongClick forwards a secondary (long press) click on the holder. It reports
// whether the click was dispatched.
func (h *Holder) LongClick() bool {
	if h.position == NoPosition || h.onLongClick == nil {
		return false
	}
	h.onLongClick(h)
	return true
}

// Offset moves a bound holder by delta positions. Hosts call it when rows
// are inserted or removed before the holder without rebinding it.
func (h *Holder) Offset(delta int) {
	if h.position == NoPosition {
		return
	}
	h.position += delta
}

// Unbind detaches the holder from its row so that it can be recycled.
func (h *Holder) Unbind() {
	h.position = NoPosition
	h.selected = false
	clear(h.text)
	clear(h.hidden)
}

func (h *Holder) bind(position int, selected bool) {
	h.position = position
	h.selected = selected
}
