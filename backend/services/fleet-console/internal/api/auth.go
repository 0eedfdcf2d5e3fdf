package api

import (
	"context"

	"gestaocombustivel/backend/services/fleet-console/internal/session"
)

// LoginResult is the normalized sign-in reply.
type LoginResult struct {
	Token string
	User  session.UserProfile
}

// SignIn authenticates against POST /api/Usuario/autenticar.
func (f *Facade) SignIn(ctx context.Context, email, password string) (*LoginResult, error) {
	resp, err := f.http.Post(ctx, "/api/Usuario/autenticar", map[string]string{
		"email": email,
		"senha": password,
	})
	if err != nil {
		return nil, err
	}
	res := normalizeLogin(resp.Data)
	return &res, nil
}
