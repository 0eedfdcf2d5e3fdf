// Package api maps fleet-management operations onto backend REST calls. Each method
// issues the HTTP call(s) for one operation and reshapes the reply; business rules stay
// on the server.
package api

import (
	"context"
	"errors"
	"net/url"
	"strings"

	"go.uber.org/zap"

	"gestaocombustivel/backend/services/fleet-console/internal/clients"
)

// Requester is the subset of clients.BaseClient used by the façade.
type Requester interface {
	Get(ctx context.Context, path string) (*clients.Response, error)
	Post(ctx context.Context, path string, body interface{}) (*clients.Response, error)
	Put(ctx context.Context, path string, body interface{}) (*clients.Response, error)
	Patch(ctx context.Context, path string, body interface{}) (*clients.Response, error)
}

// ErrMissingID is returned when an operation needs an identifier that is empty.
var ErrMissingID = errors.New("api: identifier is required")

// Facade exposes one method per backend operation.
type Facade struct {
	http   Requester
	logger *zap.Logger
}

// New returns a Facade over http. logger may be nil.
func New(http Requester, logger *zap.Logger) *Facade {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Facade{http: http, logger: logger}
}

func withQuery(path string, qs url.Values) string {
	if len(qs) == 0 {
		return path
	}
	return path + "?" + qs.Encode()
}

func segment(id string) (string, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return "", ErrMissingID
	}
	return url.PathEscape(id), nil
}
