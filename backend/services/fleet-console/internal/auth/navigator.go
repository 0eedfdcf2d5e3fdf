package auth

import (
	"sync"

	"go.uber.org/zap"
)

// Navigator receives the route to show after a sign-in or sign-out.
type Navigator interface {
	Navigate(route string)
}

// NavigatorFunc adapts a function to Navigator.
type NavigatorFunc func(route string)

// Navigate implements Navigator.
func (f NavigatorFunc) Navigate(route string) { f(route) }

// LogNavigator logs redirects; used by the CLI where there is nothing to route.
func LogNavigator(logger *zap.Logger) Navigator {
	return NavigatorFunc(func(route string) {
		logger.Debug("redirect", zap.String("route", route))
	})
}

// RouteRecorder remembers the last redirect so a UI polling the gateway can follow it.
type RouteRecorder struct {
	mu   sync.Mutex
	last string
}

// Navigate implements Navigator.
func (r *RouteRecorder) Navigate(route string) {
	r.mu.Lock()
	r.last = route
	r.mu.Unlock()
}

// Last returns the most recent route, "" before any redirect.
func (r *RouteRecorder) Last() string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.last
}
