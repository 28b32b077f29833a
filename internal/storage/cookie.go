package storage

import (
	"context"
	"net/http"

	"github.com/gorilla/sessions"
)

type httpBindingKey struct{}

type httpBinding struct {
	w http.ResponseWriter
	r *http.Request
}

// WithHTTP binds the current request and response writer to ctx so that
// cookie-backed stores can read and write the browser's cookies.
func WithHTTP(ctx context.Context, w http.ResponseWriter, r *http.Request) context.Context {
	return context.WithValue(ctx, httpBindingKey{}, &httpBinding{w: w, r: r})
}

func bindingFrom(ctx context.Context) (*httpBinding, bool) {
	b, ok := ctx.Value(httpBindingKey{}).(*httpBinding)
	return b, ok && b.r != nil && b.w != nil
}

// CookieProvider keeps values in a signed browser cookie, the server-side
// counterpart of a browser's local storage. The visitor is implied by the
// cookie jar, so every visitor shares the same store value.
type CookieProvider struct {
	store sessions.Store
	name  string
}

func NewCookieProvider(store sessions.Store, cookieName string) *CookieProvider {
	return &CookieProvider{store: store, name: cookieName}
}

func (p *CookieProvider) ForVisitor(string) StringStore {
	return p
}

func (p *CookieProvider) Get(ctx context.Context, key string) (string, bool, error) {
	b, ok := bindingFrom(ctx)
	if !ok {
		return "", false, ErrNoRequest
	}

	session, err := p.store.Get(b.r, p.name)
	if err != nil {
		return "", false, err
	}

	value, ok := session.Values[key].(string)
	return value, ok, nil
}

func (p *CookieProvider) Set(ctx context.Context, key, value string) error {
	b, ok := bindingFrom(ctx)
	if !ok {
		return ErrNoRequest
	}

	// A cookie that no longer decodes is replaced rather than kept.
	session, err := p.store.Get(b.r, p.name)
	if err != nil {
		session, err = p.store.New(b.r, p.name)
		if session == nil {
			return err
		}
	}

	session.Values[key] = value
	return session.Save(b.r, b.w)
}
