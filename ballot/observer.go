// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package ballot

// Change is the WorkflowStatusChange notification.
type Change struct {
	Previous Status
	New      Status
}

// Observer receives every committed phase transition, in order.
// StatusChanged runs while the process holds its write lock, so it must not
// call back into the Process.
type Observer interface {
	StatusChanged(Change)
}

// ObserverFunc adapts a plain function to Observer
type ObserverFunc func(Change)

func (f ObserverFunc) StatusChanged(c Change) { f(c) }

type subscription struct {
	id       int
	observer Observer
}

// Subscribe registers o and returns a function that removes it again.
func (p *Process) Subscribe(o Observer) (unsubscribe func()) {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.nextSubID++
	id := p.nextSubID
	p.subs = append(p.subs, subscription{id: id, observer: o})

	return func() {
		p.mu.Lock()
		defer p.mu.Unlock()
		for i, s := range p.subs {
			if s.id == id {
				p.subs = append(p.subs[:i:i], p.subs[i+1:]...)
				return
			}
		}
	}
}

// notify must be called with p.mu held for writing.
func (p *Process) notify(c Change) {
	for _, s := range p.subs {
		s.observer.StatusChanged(c)
	}
}
