package engine

import (
	"errors"
	"fmt"

	"github.com/inamate/sketchboard/internal/document"
)

var ErrUnknownTool = errors.New("unknown tool")

// Tool is the active toolbar tool.
type Tool string

const (
	ToolSelection Tool = "selection"
	ToolLine      Tool = "line"
	ToolRectangle Tool = "rectangle"
	ToolCircle    Tool = "circle"
	ToolDiamond   Tool = "diamond"
	ToolArrow     Tool = "arrow"
	ToolPencil    Tool = "pencil"
	ToolText      Tool = "text"
)

// Tools lists every tool in toolbar order.
var Tools = []Tool{ToolSelection, ToolLine, ToolRectangle, ToolCircle, ToolDiamond, ToolArrow, ToolPencil, ToolText}

// ParseTool checks a tool name arriving from a client.
func ParseTool(s string) (Tool, error) {
	for _, t := range Tools {
		if string(t) == s {
			return t, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownTool, s)
}

// Kind returns the element kind a drawing tool creates.
func (t Tool) Kind() document.Kind {
	switch t {
	case ToolLine, ToolRectangle, ToolCircle, ToolDiamond, ToolArrow, ToolPencil, ToolText:
		return document.Kind(t)
	default:
		panic(fmt.Sprintf("engine: tool %q creates no elements", t))
	}
}

// Action is the interaction state of the pointer.
type Action int

const (
	ActionIdle Action = iota
	ActionDrawing
	ActionMoving
	ActionResizing
)

func (a Action) String() string {
	switch a {
	case ActionIdle:
		return "idle"
	case ActionDrawing:
		return "drawing"
	case ActionMoving:
		return "moving"
	case ActionResizing:
		return "resizing"
	default:
		return fmt.Sprintf("Action(%d)", int(a))
	}
}
