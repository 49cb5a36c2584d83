package devotion

import "sync/atomic"

// Gate reports whether a usable credential is currently selected.
type Gate interface {
	HasSelectedCredential() bool
}

// GateFunc adapts a function to a Gate.
type GateFunc func() bool

func (f GateFunc) HasSelectedCredential() bool {
	return f()
}

// FlagGate is a Gate backed by a flag that only changes through Select and
// Clear. The zero value has no credential selected.
type FlagGate struct {
	selected atomic.Bool
}

// NewFlagGate returns a FlagGate with the given initial state.
func NewFlagGate(selected bool) *FlagGate {
	g := &FlagGate{}
	g.selected.Store(selected)
	return g
}

func (g *FlagGate) HasSelectedCredential() bool {
	return g.selected.Load()
}

// Select marks a credential as selected.
func (g *FlagGate) Select() {
	g.selected.Store(true)
}

// Clear drops the selection, e.g. after the backend rejected the key.
func (g *FlagGate) Clear() {
	g.selected.Store(false)
}
