package styles

const (
	CheckIcon   string = "✓"
	ErrorIcon   string = "×"
	WarningIcon string = "⚠"
	InfoIcon    string = "ⓘ"
	PinIcon     string = "◆"
	NoteIcon    string = "◇"

	BorderThin string = "│"
)
