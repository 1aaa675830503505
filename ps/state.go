package ps

import (
	"parchment.dev/ps2pdf/geom2d"
	"parchment.dev/ps2pdf/pdferr"
)

// maxStackDepth bounds the graphics-state stack.
const maxStackDepth = 256

// GraphicsState is a value type, copied wholesale on gsave/grestore.
type GraphicsState struct {
	CurrentX, CurrentY float64
	LineWidth          float64
	ColorRGB           [3]float64
	FontName           string
	FontSize           float64
	CTM                geom2d.Matrix // recorded only, never applied to coordinates
}

// DefaultGraphicsState returns the initial state of a fresh interpreter.
func DefaultGraphicsState() GraphicsState {
	return GraphicsState{
		LineWidth: 1.0,
		FontName:  "Helvetica",
		FontSize:  12,
		CTM:       geom2d.Identity(),
	}
}

// StateStack is the gsave/grestore stack, bounded to maxStackDepth.
type StateStack struct {
	stack []GraphicsState
}

// NewStateStack returns a stack with a single initial state on top.
func NewStateStack() *StateStack {
	return &StateStack{stack: []GraphicsState{DefaultGraphicsState()}}
}

// Current returns a pointer to the top of the stack for in-place mutation.
func (s *StateStack) Current() *GraphicsState {
	return &s.stack[len(s.stack)-1]
}

// Push duplicates the current state onto the stack (gsave/q). op is
// the actual triggering token, carried into StackOverflow rather than
// a fixed literal.
func (s *StateStack) Push(op string) error {
	if len(s.stack) >= maxStackDepth {
		return &pdferr.StackOverflow{Operator: op}
	}
	top := *s.Current()
	s.stack = append(s.stack, top)
	return nil
}

// Pop removes the top state (grestore/Q). A pop on a single-element
// stack is a no-op, matching the compatibility behavior real-world PS
// producers rely on.
func (s *StateStack) Pop() {
	if len(s.stack) > 1 {
		s.stack = s.stack[:len(s.stack)-1]
	}
}
