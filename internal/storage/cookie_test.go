package storage

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gorilla/sessions"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newCookieProvider() *CookieProvider {
	return NewCookieProvider(sessions.NewCookieStore([]byte("0123456789abcdef0123456789abcdef")), "test-prefs")
}

func TestCookieProvider_RoundTrip(t *testing.T) {
	p := newCookieProvider()

	// First request writes the value into a cookie.
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/", nil)
	ctx := WithHTTP(req.Context(), rec, req)
	require.NoError(t, p.ForVisitor("ignored").Set(ctx, "k", `[{"id":"x"}]`))

	cookies := rec.Result().Cookies()
	require.Len(t, cookies, 1)
	assert.Equal(t, "test-prefs", cookies[0].Name)

	// Second request carries the cookie back.
	req2 := httptest.NewRequest(http.MethodGet, "/", nil)
	req2.AddCookie(cookies[0])
	ctx2 := WithHTTP(req2.Context(), httptest.NewRecorder(), req2)

	v, ok, err := p.Get(ctx2, "k")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, `[{"id":"x"}]`, v)
}

func TestCookieProvider_MissingValue(t *testing.T) {
	p := newCookieProvider()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	ctx := WithHTTP(req.Context(), httptest.NewRecorder(), req)

	_, ok, err := p.Get(ctx, "k")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestCookieProvider_TamperedCookie(t *testing.T) {
	p := newCookieProvider()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(&http.Cookie{Name: "test-prefs", Value: "not-a-signed-value"})
	rec := httptest.NewRecorder()
	ctx := WithHTTP(req.Context(), rec, req)

	_, ok, err := p.Get(ctx, "k")
	assert.False(t, ok)
	assert.Error(t, err)

	// Writing over a broken cookie starts a fresh one.
	require.NoError(t, p.Set(ctx, "k", "v"))
	assert.NotEmpty(t, rec.Result().Cookies())
}

func TestCookieProvider_RequiresRequest(t *testing.T) {
	p := newCookieProvider()

	_, _, err := p.Get(context.Background(), "k")
	assert.ErrorIs(t, err, ErrNoRequest)
	assert.ErrorIs(t, p.Set(context.Background(), "k", "v"), ErrNoRequest)
}
