package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/dmitrijs2005/couponadmin/internal/client/models"
	"github.com/dmitrijs2005/couponadmin/internal/logging"
)

// HTTPClient talks to the REST backend. Every request goes through the
// Pipeline.
type HTTPClient struct {
	baseURL *url.URL
	http    *http.Client
	pipe    *Pipeline
	log     logging.Logger
}

func NewHTTPClient(baseURL string, timeout time.Duration, pipe *Pipeline, log logging.Logger) (*HTTPClient, error) {
	u, err := url.Parse(strings.TrimRight(baseURL, "/"))
	if err != nil {
		return nil, fmt.Errorf("parse server url: %w", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return nil, fmt.Errorf("server url %q: scheme must be http or https", baseURL)
	}
	return &HTTPClient{
		baseURL: u,
		http:    &http.Client{Timeout: timeout},
		pipe:    pipe,
		log:     log.With("component", "http_client"),
	}, nil
}

// Do sends a JSON request to path (relative to the base URL) and decodes
// the response into out when out is non-nil.
func (c *HTTPClient) Do(ctx context.Context, method, path string, query url.Values, body, out any) error {
	u := c.baseURL.JoinPath(path)
	if len(query) > 0 {
		u.RawQuery = query.Encode()
	}

	var reader io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		reader = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, u.String(), reader)
	if err != nil {
		return err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.pipe.Do(req, c.http.Do)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if out == nil || resp.StatusCode == http.StatusNoContent {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("%w: decode %s %s: %v", ErrUnexpected, method, path, err)
	}
	return nil
}

// Login exchanges credentials for an access token. The request carries no
// session credential. An empty token with a nil error means the backend
// answered without one.
func (c *HTTPClient) Login(ctx context.Context, email, password string) (string, error) {
	var resp models.LoginResponse
	err := c.Do(Anonymous(ctx), http.MethodPost, "/auth/login", nil,
		models.LoginRequest{Email: email, Password: password}, &resp)
	if err != nil {
		return "", err
	}
	return resp.AccessToken, nil
}

// GetUser fetches the canonical user record. Use WithBearer on ctx to
// authenticate with a token that is not yet the session's.
func (c *HTTPClient) GetUser(ctx context.Context, id int64) (*models.User, error) {
	var u models.User
	if err := c.Do(ctx, http.MethodGet, "/users/"+strconv.FormatInt(id, 10), nil, nil, &u); err != nil {
		return nil, err
	}
	return &u, nil
}
