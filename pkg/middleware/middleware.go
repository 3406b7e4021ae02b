// Package middleware provides HTTP middleware composition and common
// middleware implementations.
package middleware

import "net/http"

// Middleware wraps an http.Handler with additional behavior.
type Middleware func(http.Handler) http.Handler

// System accumulates middleware and applies them to a handler in
// registration order.
type System interface {
	Use(mw Middleware)
	Apply(handler http.Handler) http.Handler
}

type system struct {
	middleware []Middleware
}

// New creates an empty middleware system.
func New() System {
	return &system{
		middleware: make([]Middleware, 0),
	}
}

func (s *system) Use(mw Middleware) {
	s.middleware = append(s.middleware, mw)
}

// Apply wraps the handler with all registered middleware. The first
// registered middleware is the outermost.
func (s *system) Apply(handler http.Handler) http.Handler {
	wrapped := handler
	for i := len(s.middleware) - 1; i >= 0; i-- {
		wrapped = s.middleware[i](wrapped)
	}
	return wrapped
}
