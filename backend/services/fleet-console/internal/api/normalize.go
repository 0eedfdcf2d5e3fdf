package api

import (
	"encoding/json"
	"errors"

	"github.com/tidwall/gjson"
	"go.uber.org/zap"

	"gestaocombustivel/backend/services/fleet-console/internal/clients"
	"gestaocombustivel/backend/services/fleet-console/internal/session"
)

const (
	defaultUserName = "Usuário"
	defaultUserRole = "usuario"
)

// Token fields in precedence order; the first non-empty string wins.
var tokenFields = []string{"accessToken", "token"}

// normalizeLogin reads the login reply: token from accessToken then token, profile from
// usuario with placeholder name and role when those keys are absent or null.
func normalizeLogin(data []byte) LoginResult {
	var res LoginResult
	for _, field := range tokenFields {
		if v := gjson.GetBytes(data, field); v.Type == gjson.String && v.Str != "" {
			res.Token = v.Str
			break
		}
	}

	user := session.UserProfile{Name: defaultUserName, Role: defaultUserRole}
	if v := gjson.GetBytes(data, "usuario.nome"); v.Type != gjson.Null {
		user.Name = v.String()
	}
	if v := gjson.GetBytes(data, "usuario.tipoUsuario"); v.Type != gjson.Null {
		user.Role = v.String()
	}
	if v := gjson.GetBytes(data, "usuario.empresaId"); v.Exists() {
		var id session.CompanyID
		if err := json.Unmarshal([]byte(v.Raw), &id); err == nil {
			user.CompanyID = id
		}
	}
	res.User = user
	return res
}

// normalizeList decodes a list-shaped reply. Precedence: bare array, then an "items"
// array inside an object; anything else gives an empty non-nil slice. Elements that do
// not fit T are skipped one by one.
func normalizeList[T any](data []byte, logger *zap.Logger) []T {
	out := []T{}
	if len(data) == 0 || !gjson.ValidBytes(data) {
		return out
	}

	root := gjson.ParseBytes(data)
	var list gjson.Result
	switch {
	case root.IsArray():
		list = root
	case root.IsObject() && root.Get("items").IsArray():
		list = root.Get("items")
	default:
		return out
	}

	for i, elem := range list.Array() {
		var item T
		if err := json.Unmarshal([]byte(elem.Raw), &item); err != nil || elem.Type == gjson.Null {
			if logger != nil {
				logger.Debug("skipping list element", zap.Int("index", i), zap.Error(err))
			}
			continue
		}
		out = append(out, item)
	}
	return out
}

// recoverable reports errors a list operation turns into an empty result.
func recoverable(err error) bool {
	return errors.Is(err, clients.ErrDecode)
}
