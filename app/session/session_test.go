package session

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewToken(t *testing.T) {
	seen := map[string]bool{}
	for i := 0; i < 100; i++ {
		tok, err := NewToken()
		require.NoError(t, err)
		assert.Len(t, tok, 32)
		assert.False(t, seen[tok], "token repeated")
		seen[tok] = true
	}
}

func TestResolve(t *testing.T) {
	p := &Provider{}

	t.Run("existing cookie", func(t *testing.T) {
		req := httptest.NewRequest("GET", "/cart", nil)
		req.AddCookie(&http.Cookie{Name: CookieName, Value: "abc"})

		tok, fresh, err := p.Resolve(req)
		require.NoError(t, err)
		assert.Equal(t, "abc", tok)
		assert.False(t, fresh)
	})

	t.Run("no cookie", func(t *testing.T) {
		req := httptest.NewRequest("GET", "/cart", nil)

		tok, fresh, err := p.Resolve(req)
		require.NoError(t, err)
		assert.Len(t, tok, 32)
		assert.True(t, fresh)
	})

	t.Run("empty cookie", func(t *testing.T) {
		req := httptest.NewRequest("GET", "/cart", nil)
		req.AddCookie(&http.Cookie{Name: CookieName, Value: ""})

		_, fresh, err := p.Resolve(req)
		require.NoError(t, err)
		assert.True(t, fresh)
	})
}

func TestSetCookie(t *testing.T) {
	rec := httptest.NewRecorder()

	(&Provider{Secure: true}).SetCookie(rec, "tok")

	cookies := rec.Result().Cookies()
	require.Len(t, cookies, 1)
	c := cookies[0]
	assert.Equal(t, CookieName, c.Name)
	assert.Equal(t, "tok", c.Value)
	assert.Equal(t, 604800, c.MaxAge)
	assert.True(t, c.HttpOnly)
	assert.True(t, c.Secure)
	assert.Equal(t, "/", c.Path)
}
