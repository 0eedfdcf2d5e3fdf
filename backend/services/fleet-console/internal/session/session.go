package session

import (
	"bytes"
	"encoding/json"
	"errors"
	"strconv"
	"strings"
)

// Key is the storage key holding the serialized session record.
const Key = "gc_auth_v1"

// Session is the persisted token + profile pair.
type Session struct {
	Token string       `json:"token"`
	User  *UserProfile `json:"user"`
}

// UserProfile is the signed-in user as reported by the backend at login.
type UserProfile struct {
	Name      string    `json:"nome"`
	Role      string    `json:"tipoUsuario"`
	CompanyID CompanyID `json:"empresaId"`
}

// IsAuthenticated reports whether the session carries a non-empty token.
func (s Session) IsAuthenticated() bool {
	return s.Token != ""
}

// IsEmpty reports whether s has neither token nor user.
func (s Session) IsEmpty() bool {
	return s.Token == "" && s.User == nil
}

// MarshalJSON writes an empty token as null so the record reads {token:null,user:null}.
func (s Session) MarshalJSON() ([]byte, error) {
	type record struct {
		Token *string      `json:"token"`
		User  *UserProfile `json:"user"`
	}
	r := record{User: s.User}
	if s.Token != "" {
		r.Token = &s.Token
	}
	return json.Marshal(r)
}

// CompanyID is the tenant identifier. The backend sends it as a string or a number;
// the original representation is kept so it round-trips unchanged.
type CompanyID struct {
	raw     string
	numeric bool
	valid   bool
}

var errCompanyIDType = errors.New("session: empresaId must be a string, number or null")

// NewCompanyID wraps a string identifier.
func NewCompanyID(id string) CompanyID {
	return CompanyID{raw: id, valid: true}
}

// NewNumericCompanyID wraps a numeric identifier.
func NewNumericCompanyID(id int64) CompanyID {
	return CompanyID{raw: strconv.FormatInt(id, 10), numeric: true, valid: true}
}

// String returns the identifier as used in URL paths and query strings.
func (c CompanyID) String() string {
	return c.raw
}

// IsZero reports null, "" and numeric 0, all of which mean "no company".
func (c CompanyID) IsZero() bool {
	if !c.valid || strings.TrimSpace(c.raw) == "" {
		return true
	}
	if c.numeric {
		f, err := strconv.ParseFloat(c.raw, 64)
		return err == nil && f == 0
	}
	return false
}

// MarshalJSON implements json.Marshaler.
func (c CompanyID) MarshalJSON() ([]byte, error) {
	switch {
	case !c.valid:
		return []byte("null"), nil
	case c.numeric:
		return []byte(c.raw), nil
	default:
		return json.Marshal(c.raw)
	}
}

// UnmarshalJSON implements json.Unmarshaler.
func (c *CompanyID) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	switch {
	case len(data) == 0 || bytes.Equal(data, []byte("null")):
		*c = CompanyID{}
		return nil
	case data[0] == '"':
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*c = NewCompanyID(s)
		return nil
	}

	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return errCompanyIDType
	}
	*c = CompanyID{raw: n.String(), numeric: true, valid: true}
	return nil
}
