package screen

import (
	"context"
	"errors"
)

// maxRedirects bounds chains of Redirector views.
const maxRedirects = 4

// Navigator keeps the history of opened views.
type Navigator struct {
	router  *Router
	history []View
}

// NewNavigator starts with an empty history.
func NewNavigator(router *Router) *Navigator {
	return &Navigator{router: router}
}

// Open builds and loads the view for route and pushes it on the history.
// A view that asks to redirect is replaced by its target. Load failures are
// kept on the view and returned; the view is still pushed so it can render them.
func (n *Navigator) Open(ctx context.Context, route string, params Params) (View, error) {
	for hops := 0; ; hops++ {
		v, err := n.router.Navigate(route, params)
		if err != nil {
			return nil, err
		}
		loadErr := v.Load(ctx)
		if rd, ok := v.(Redirector); ok && loadErr == nil && hops < maxRedirects {
			if next, nextParams, ok := rd.Redirect(); ok {
				route, params = next, nextParams
				continue
			}
		}
		n.history = append(n.history, v)
		return v, loadErr
	}
}

// Current returns the view on top of the history.
func (n *Navigator) Current() (View, bool) {
	if len(n.history) == 0 {
		return nil, false
	}
	return n.history[len(n.history)-1], true
}

// ErrNoHistory is returned by Back when there is nothing to go back to.
var ErrNoHistory = errors.New("no previous view")

// Back drops the current view and returns the previous one.
func (n *Navigator) Back() (View, error) {
	if len(n.history) < 2 {
		return nil, ErrNoHistory
	}
	n.history = n.history[:len(n.history)-1]
	return n.history[len(n.history)-1], nil
}

// Depth is the number of views in the history.
func (n *Navigator) Depth() int { return len(n.history) }
