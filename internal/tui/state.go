package tui

// ViewState is the page-level state of a screen.
type ViewState int

// View states.
const (
	ViewStateLoading ViewState = iota
	ViewStateList
	ViewStateError
	ViewStateQuitting
)

// String returns the state name.
func (s ViewState) String() string {
	switch s {
	case ViewStateLoading:
		return "loading"
	case ViewStateList:
		return "list"
	case ViewStateError:
		return "error"
	case ViewStateQuitting:
		return "quitting"
	default:
		return "unknown"
	}
}

// Key bindings.
const (
	keyQuit     = "q"
	keyCtrlC    = "ctrl+c"
	keyEnter    = "enter"
	keySpace    = " "
	keySpaceAlt = "space"
	keyEsc      = "esc"
	keyFeedback = "f"
	keyReload   = "r"
	keyCall     = "c"

	keyDetailDown = "ctrl+d"
	keyDetailUp   = "ctrl+u"
)

// Default terminal dimensions before the first WindowSizeMsg.
const (
	defaultWidth  = 100
	defaultHeight = 30
	minHeight     = 5
)
