package nav

import (
	"errors"
	"sync"
)

// ErrNotAuthenticated is returned when a guarded route is requested without a
// session. The router has already moved to the login screen.
var ErrNotAuthenticated = errors.New("sign in required")

// Router is a stack of routes. The bottom entry is never popped.
type Router struct {
	mu     sync.Mutex
	stack  []Route
	authed func() bool
}

// NewRouter starts at start. authed reports whether a session exists; a nil
// func treats every user as signed out.
func NewRouter(start Route, authed func() bool) *Router {
	if authed == nil {
		authed = func() bool { return false }
	}
	r := &Router{authed: authed}
	r.stack = []Route{r.guard(start)}
	return r
}

func (r *Router) guard(to Route) Route {
	if to.Name.Guarded() && !r.authed() {
		return To(Login)
	}
	return to
}

func (r *Router) move(to Route, apply func(Route)) error {
	if err := to.Validate(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	if to.Name.Guarded() && !r.authed() {
		r.stack = []Route{To(Login)}
		return ErrNotAuthenticated
	}
	apply(to)
	return nil
}

// Push opens to on top of the current screen.
func (r *Router) Push(to Route) error {
	return r.move(to, func(to Route) {
		if r.stack[len(r.stack)-1] != to {
			r.stack = append(r.stack, to)
		}
	})
}

// Replace swaps the current screen for to.
func (r *Router) Replace(to Route) error {
	return r.move(to, func(to Route) { r.stack[len(r.stack)-1] = to })
}

// Reset drops the history and starts again at to.
func (r *Router) Reset(to Route) error {
	return r.move(to, func(to Route) { r.stack = []Route{to} })
}

// Back pops the current screen. It reports false when there is nothing to go
// back to.
func (r *Router) Back() (Route, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if len(r.stack) == 1 {
		return r.stack[0], false
	}
	r.stack = r.stack[:len(r.stack)-1]
	return r.stack[len(r.stack)-1], true
}

func (r *Router) Current() Route {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.stack[len(r.stack)-1]
}

// Depth is the number of routes on the stack.
func (r *Router) Depth() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.stack)
}
