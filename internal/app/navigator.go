package app

import "github.com/fieldday-games/bingohunt/internal/route"

// Navigator carries fragment-change events to the router. Screens navigate
// by pushing a route; programmatic navigation re-enters the same dispatch
// logic as user-driven navigation.
type Navigator struct {
	ch chan string
}

// NewNavigator creates a navigator
func NewNavigator() *Navigator {
	return &Navigator{ch: make(chan string, 16)}
}

// Go navigates to the given route
func (n *Navigator) Go(r route.Route) {
	n.GoFragment(r.Fragment())
}

// GoFragment navigates to a raw fragment. If the router has fallen behind
// the event is dropped; the latest pending fragment still wins.
func (n *Navigator) GoFragment(fragment string) {
	select {
	case n.ch <- fragment:
	default:
	}
}

// Fragments is the stream of pending navigation events
func (n *Navigator) Fragments() <-chan string {
	return n.ch
}
