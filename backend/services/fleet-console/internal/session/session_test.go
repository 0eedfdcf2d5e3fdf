package session

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSessionIsAuthenticated(t *testing.T) {
	cases := []struct {
		name string
		sess Session
		want bool
	}{
		{"empty", Session{}, false},
		{"user without token", Session{User: &UserProfile{Name: "Ana"}}, false},
		{"token", Session{Token: "tok"}, true},
		{"token and user", Session{Token: "tok", User: &UserProfile{CompanyID: NewNumericCompanyID(7)}}, true},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, tc.sess.IsAuthenticated())
		})
	}
}

func TestSessionEmptyEncodesNulls(t *testing.T) {
	data, err := json.Marshal(Session{})
	require.NoError(t, err)
	assert.JSONEq(t, `{"token":null,"user":null}`, string(data))

	var back Session
	require.NoError(t, json.Unmarshal(data, &back))
	assert.True(t, back.IsEmpty())
}

func TestSessionWireShape(t *testing.T) {
	sess := Session{Token: "tok1", User: &UserProfile{Name: "Ana", Role: "gestor", CompanyID: NewNumericCompanyID(7)}}
	data, err := json.Marshal(sess)
	require.NoError(t, err)
	assert.JSONEq(t, `{"token":"tok1","user":{"nome":"Ana","tipoUsuario":"gestor","empresaId":7}}`, string(data))
}

func TestCompanyIDKeepsRepresentation(t *testing.T) {
	for _, in := range []string{`7`, `"7"`, `"abc-1"`, `null`, `12.5`} {
		var id CompanyID
		require.NoError(t, json.Unmarshal([]byte(in), &id), in)
		out, err := json.Marshal(id)
		require.NoError(t, err)
		assert.Equal(t, in, string(out))
	}
}

func TestCompanyIDRejectsOtherTypes(t *testing.T) {
	var id CompanyID
	assert.Error(t, json.Unmarshal([]byte(`true`), &id))
	assert.Error(t, json.Unmarshal([]byte(`{"id":1}`), &id))
}

func TestCompanyIDIsZero(t *testing.T) {
	assert.True(t, CompanyID{}.IsZero())
	assert.True(t, NewCompanyID("").IsZero())
	assert.True(t, NewNumericCompanyID(0).IsZero())
	assert.False(t, NewNumericCompanyID(7).IsZero())
	assert.False(t, NewCompanyID("0").IsZero())
	assert.Equal(t, "7", NewNumericCompanyID(7).String())
}

func TestOrigin(t *testing.T) {
	assert.Equal(t, "https://localhost:7105", Origin("https://LOCALHOST:7105/api/"))
	assert.Equal(t, "http://api.example.com", Origin("http://api.example.com"))
	assert.Equal(t, "not a url", Origin("not a url/"))
}
