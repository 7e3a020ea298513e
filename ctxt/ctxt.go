// Package ctxt implements the ambient property stack (§4.2 of the
// core event model): a stack of property frames tied to execution
// flow, with explicit open/enter/exit/close lifecycle supporting
// frames moving between goroutines.
package ctxt

import (
	"sync"

	"go.emit.dev/emit/internal/goid"

	"go.emit.dev/emit/core"
)

// Frame is a scoped push onto a Ctxt's stack. Obtained from
// OpenRoot/OpenPush/OpenDisabled, then Enter/Exit activate and
// deactivate it on the calling goroutine. A Frame may be exited on one
// goroutine and entered on another, but never entered on two
// goroutines at once.
type Frame struct {
	snapshot   core.Props
	disabled   bool
	enteredGID uint64
	entered    bool
}

// Ctxt is a stack of property frames keyed by goroutine id, emulating
// a thread-local stack in a language with no native goroutine-local
// storage.
type Ctxt struct {
	mu     sync.Mutex
	stacks map[uint64][]core.Props
}

// New returns an empty Ctxt.
func New() *Ctxt {
	return &Ctxt{stacks: make(map[uint64][]core.Props)}
}

// OpenRoot creates a frame whose effective props are p alone, dropping
// any inherited ambient context.
func (c *Ctxt) OpenRoot(p core.Props) *Frame {
	return &Frame{snapshot: p}
}

// OpenPush creates a frame whose effective props are the current
// frame's props concatenated with p: iteration order is
// current-then-p, but lookups resolve duplicate keys to p (see
// pushProps).
func (c *Ctxt) OpenPush(p core.Props) *Frame {
	var current core.Props = core.Empty{}
	c.WithCurrent(func(cur core.Props) { current = cur })
	return &Frame{snapshot: pushProps{Current: current, New: p}}
}

// OpenDisabled acknowledges p (so observers can see what would have
// been pushed) without making it visible to WithCurrent.
func (c *Ctxt) OpenDisabled(p core.Props) *Frame {
	return &Frame{snapshot: p, disabled: true}
}

// Enter activates f on the calling goroutine. Must be paired with
// Exit; enter/exit nest strictly (LIFO) on a given goroutine.
func (c *Ctxt) Enter(f *Frame) {
	if f == nil || f.disabled || f.entered {
		return
	}
	gid := goid.Current()
	c.mu.Lock()
	c.stacks[gid] = append(c.stacks[gid], f.snapshot)
	c.mu.Unlock()
	f.enteredGID = gid
	f.entered = true
}

// Exit deactivates f. f may later be re-entered, possibly on another
// goroutine.
func (c *Ctxt) Exit(f *Frame) {
	if f == nil || f.disabled || !f.entered {
		return
	}
	gid := f.enteredGID
	c.mu.Lock()
	stack := c.stacks[gid]
	if n := len(stack); n > 0 {
		stack = stack[:n-1]
		if len(stack) == 0 {
			delete(c.stacks, gid)
		} else {
			c.stacks[gid] = stack
		}
	}
	c.mu.Unlock()
	f.entered = false
	f.enteredGID = 0
}

// Close releases any shared state held by f. This implementation holds
// no resources beyond the snapshot value, so Close is a no-op; it
// exists so callers have one lifecycle to follow regardless of
// backend.
func (c *Ctxt) Close(f *Frame) {}

// WithCurrent presents the active props on the calling goroutine to
// fn exactly once, even when no frame is active (fn sees core.Empty{}
// in that case). The lock is released before fn runs, so fn must not
// re-enter this Ctxt mutably from within itself on the same goroutine
// without first returning.
func (c *Ctxt) WithCurrent(fn func(core.Props)) {
	gid := goid.Current()
	c.mu.Lock()
	stack := c.stacks[gid]
	var top core.Props = core.Empty{}
	if n := len(stack); n > 0 {
		top = stack[n-1]
	}
	c.mu.Unlock()
	fn(top)
}
