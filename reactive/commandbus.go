// SPDX-License-Identifier: Unlicense OR MIT

package reactive

import (
	"fmt"

	"kernelui.dev/klog"
)

// CommandKind names the kind of a dispatched Command. The set of
// recognized kinds is open: handlers register for whichever kinds their
// embedding surface defines (spec.md §6 lists copy-to-clipboard,
// open-external-url, set-cursor, navigate-to-route, send-message,
// cancel-run, approve-step as illustrative, not closed).
type CommandKind string

// Command is a unit of UI intent leaving a widget toward the host or
// toward domain logic, dispatched through the bus rather than called
// directly so it can cross the UI-thread boundary uniformly.
type Command struct {
	Kind    CommandKind
	Payload any
}

// Handler processes one Command. Handlers run synchronously on the UI
// thread; asynchronous results must re-enter as further signal updates
// rather than blocking here (spec.md §4.H, §5).
type Handler func(Command)

// CommandBus queues dispatched commands and delivers each to at most one
// handler, drained at the start of every Update phase.
type CommandBus struct {
	log      klog.Logger
	handlers map[CommandKind]Handler
	queue    []Command
}

func newCommandBus(log klog.Logger) *CommandBus {
	return &CommandBus{log: log, handlers: make(map[CommandKind]Handler)}
}

// RegisterHandler installs h as the handler for kind, replacing any
// previous handler for that kind.
func (b *CommandBus) RegisterHandler(kind CommandKind, h Handler) {
	b.handlers[kind] = h
}

// Dispatch appends cmd to the queue; it is delivered at the start of the
// next Update phase, never synchronously.
func (b *CommandBus) Dispatch(cmd Command) {
	b.queue = append(b.queue, cmd)
}

func (b *CommandBus) drain() {
	if len(b.queue) == 0 {
		return
	}
	pending := b.queue
	b.queue = nil
	for _, cmd := range pending {
		h, ok := b.handlers[cmd.Kind]
		if !ok {
			b.log.Warn(fmt.Sprintf("no handler registered for command kind %q", cmd.Kind))
			continue
		}
		h(cmd)
	}
}
