package board

// State is the board's repaint state, evaluated in strict priority order by
// Updates.
type State int

const (
	// Nothing to paint; Updates reports no output.
	StateClean State = iota
	// A modal dialog owns the surface; only the dialog is painted and cell
	// updates are forbidden until it is hidden.
	StateDialogShown
	// The layout was invalidated (first initialization, or a dialog was
	// just hidden): the next repaint emits the border and every cell.
	StateNeedsFullRepaint
	// Some cells changed since the last repaint: the next repaint emits
	// only those.
	StateHasDirtyCells
)

func (s State) String() string {
	switch s {
	case StateClean:
		return "clean"
	case StateDialogShown:
		return "dialog-shown"
	case StateNeedsFullRepaint:
		return "needs-full-repaint"
	case StateHasDirtyCells:
		return "has-dirty-cells"
	default:
		return "unknown"
	}
}
