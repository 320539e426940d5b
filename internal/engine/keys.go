package engine

import "strings"

// KeyEvent is a key press as reported by a browser keydown event.
type KeyEvent struct {
	Key   string `json:"key"`
	Ctrl  bool   `json:"ctrl"`
	Meta  bool   `json:"meta"`
	Shift bool   `json:"shift"`
}

// Shortcut is what a key press did.
type Shortcut int

const (
	ShortcutNone Shortcut = iota
	ShortcutUndo
	ShortcutRedo
	ShortcutDelete

	// ShortcutExport is only reported; the caller decides where the
	// exported drawing goes.
	ShortcutExport
)

func (s Shortcut) String() string {
	switch s {
	case ShortcutUndo:
		return "undo"
	case ShortcutRedo:
		return "redo"
	case ShortcutDelete:
		return "delete"
	case ShortcutExport:
		return "export"
	default:
		return "none"
	}
}

// HandleKey applies the keyboard shortcuts. Ctrl and Cmd are equivalent.
func (e *Engine) HandleKey(ev KeyEvent) Shortcut {
	if ev.Ctrl || ev.Meta {
		switch strings.ToLower(ev.Key) {
		case "z":
			if ev.Shift {
				e.Redo()
				return ShortcutRedo
			}
			e.Undo()
			return ShortcutUndo
		case "y":
			e.Redo()
			return ShortcutRedo
		case "s":
			return ShortcutExport
		}
		return ShortcutNone
	}

	if ev.Key == "Delete" && e.Delete() {
		return ShortcutDelete
	}
	return ShortcutNone
}
