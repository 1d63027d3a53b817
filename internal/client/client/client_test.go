package client

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrijs2005/couponadmin/internal/client/models"
	"github.com/dmitrijs2005/couponadmin/internal/logging"
)

func TestNewHTTPClient_RejectsBadURL(t *testing.T) {
	pipe := NewPipeline(&fakeSession{}, nil, nil, logging.Discard())

	_, err := NewHTTPClient("localhost:3001", time.Second, pipe, logging.Discard())
	require.Error(t, err)

	_, err = NewHTTPClient("://bad", time.Second, pipe, logging.Discard())
	require.Error(t, err)

	_, err = NewHTTPClient("http://localhost:3001/", time.Second, pipe, logging.Discard())
	require.NoError(t, err)
}

func TestHTTPClient_LoginIsAnonymous(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/auth/login", r.URL.Path)
		assert.Empty(t, r.Header.Get("Authorization"))
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))

		var req models.LoginRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "a@b.com", req.Email)
		assert.Equal(t, "secret123", req.Password)

		_, _ = w.Write([]byte(`{"accessToken":"T"}`))
	}))
	defer srv.Close()

	f := newFixture(t, srv, makeToken(t, 1, testNow.Add(time.Hour)))
	tok, err := f.client.Login(context.Background(), "a@b.com", "secret123")
	require.NoError(t, err)
	assert.Equal(t, "T", tok)
}

func TestHTTPClient_LoginWithoutToken(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{}`))
	}))
	defer srv.Close()

	f := newFixture(t, srv, "")
	tok, err := f.client.Login(context.Background(), "a@b.com", "secret123")
	require.NoError(t, err)
	assert.Empty(t, tok)
}

func TestHTTPClient_GetUserWithBearer(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/users/7", r.URL.Path)
		assert.Equal(t, "Bearer T", r.Header.Get("Authorization"))
		_, _ = w.Write([]byte(`{"id":7,"email":"a@b.com","role":"manager"}`))
	}))
	defer srv.Close()

	f := newFixture(t, srv, "")
	u, err := f.client.GetUser(WithBearer(context.Background(), "T"), 7)
	require.NoError(t, err)
	assert.Equal(t, int64(7), u.ID)
	assert.Equal(t, models.RoleManager, u.Role)
}

func TestHTTPClient_DoEncodesQueryAndBasePath(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/coupons", r.URL.Path)
		assert.Equal(t, "2", r.URL.Query().Get("page"))
		assert.Equal(t, "active", r.URL.Query().Get("status"))
		_, _ = w.Write([]byte(`{"data":[],"meta":{"currentPage":2}}`))
	}))
	defer srv.Close()

	f := newFixture(t, srv, "")
	c, err := NewHTTPClient(srv.URL+"/api", time.Second, f.client.pipe, logging.Discard())
	require.NoError(t, err)

	var page models.Page[models.Coupon]
	q := url.Values{"page": {"2"}, "status": {"active"}}
	require.NoError(t, c.Do(context.Background(), http.MethodGet, "/coupons", q, nil, &page))
	assert.Equal(t, 2, page.Meta.CurrentPage)
}

func TestHTTPClient_DecodeFailureIsUnexpected(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`not json`))
	}))
	defer srv.Close()

	f := newFixture(t, srv, "")
	var u models.User
	err := f.client.Do(context.Background(), http.MethodGet, "/users/1", nil, nil, &u)
	require.ErrorIs(t, err, ErrUnexpected)
}
