package watch

import (
	"fmt"
	"sort"
)

// Kind identifies a navigation command.
type Kind uint8

const (
	GrowColumns Kind = iota + 1
	ShrinkColumns
	GrowBuffer
	ShrinkBuffer
	GrowBufferByRow
	ShrinkBufferByRow
	MoveUp
	MoveDown
	MoveLeft
	MoveRight
	PageUp
	PageDown
	ReanchorOrigin
	ZeroDisplayOffset
	ShiftDisplayOffset
	ResetDiffState
	ToggleKeepTouched
	SaveSnapshot
	Relayout
	Quit
)

var kindNames = map[Kind]string{
	GrowColumns:        "grow-columns",
	ShrinkColumns:      "shrink-columns",
	GrowBuffer:         "grow-buffer",
	ShrinkBuffer:       "shrink-buffer",
	GrowBufferByRow:    "grow-buffer-row",
	ShrinkBufferByRow:  "shrink-buffer-row",
	MoveUp:             "move-up",
	MoveDown:           "move-down",
	MoveLeft:           "move-left",
	MoveRight:          "move-right",
	PageUp:             "page-up",
	PageDown:           "page-down",
	ReanchorOrigin:     "reanchor",
	ZeroDisplayOffset:  "zero-display",
	ShiftDisplayOffset: "shift-display",
	ResetDiffState:     "reset",
	ToggleKeepTouched:  "toggle-keep",
	SaveSnapshot:       "save-snapshot",
	Relayout:           "relayout",
	Quit:               "quit",
}

func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return fmt.Sprintf("kind(%d)", uint8(k))
}

// Command is one discrete user or system request. Delta is only read by
// ShiftDisplayOffset, where it is +1 or -1.
type Command struct {
	Kind  Kind
	Delta int64
}

// Cmd is shorthand for a command without a delta.
func Cmd(k Kind) Command { return Command{Kind: k} }

// Shift returns a ShiftDisplayOffset command moving the labels by delta.
func Shift(delta int64) Command { return Command{Kind: ShiftDisplayOffset, Delta: delta} }

func (c Command) String() string {
	if c.Kind == ShiftDisplayOffset {
		return fmt.Sprintf("%s(%+d)", c.Kind, c.Delta)
	}
	return c.Kind.String()
}

type phase uint8

const (
	phaseExport phase = iota
	phaseLayout
	phaseState
	phaseMotion
	phaseQuit
)

// phase places SaveSnapshot ahead of everything so the dump holds what was
// on screen when the key was pressed.
func (c Command) phase() phase {
	switch c.Kind {
	case SaveSnapshot:
		return phaseExport
	case GrowColumns, ShrinkColumns, GrowBuffer, ShrinkBuffer,
		GrowBufferByRow, ShrinkBufferByRow, Relayout:
		return phaseLayout
	case ZeroDisplayOffset, ShiftDisplayOffset, ResetDiffState, ToggleKeepTouched:
		return phaseState
	case MoveUp, MoveDown, MoveLeft, MoveRight, PageUp, PageDown, ReanchorOrigin:
		return phaseMotion
	default:
		return phaseQuit
	}
}

// Order drops duplicate commands and sorts the rest into application order:
// export, layout and size, relabel/reset/toggle, motion, quit. Commands within
// a phase keep their arrival order.
func Order(cmds []Command) []Command {
	if len(cmds) == 0 {
		return nil
	}
	seen := make(map[Command]struct{}, len(cmds))
	out := make([]Command, 0, len(cmds))
	for _, c := range cmds {
		if _, dup := seen[c]; dup {
			continue
		}
		seen[c] = struct{}{}
		out = append(out, c)
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].phase() < out[j].phase()
	})
	return out
}
