package client

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/dmitrijs2005/couponadmin/internal/client/notify"
	"github.com/dmitrijs2005/couponadmin/internal/logging"
	"github.com/dmitrijs2005/couponadmin/internal/tokenx"
)

const maxErrorBody = 1 << 20

// TokenSource yields the current session token, or "" when logged out.
type TokenSource interface {
	Token() string
}

// SessionEnder tears a session down. EndSession ends the session only if it
// still holds token, and reports whether it did.
type SessionEnder interface {
	EndSession(ctx context.Context, token string) bool
}

// SendFunc performs the actual round trip.
type SendFunc func(*http.Request) (*http.Response, error)

// Pipeline wraps every outbound call. Before sending it checks and attaches
// the bearer credential; after receiving it maps failures to sentinel errors,
// user-visible notifications and, on authentication failures, session teardown.
type Pipeline struct {
	tokens    TokenSource
	ender     SessionEnder
	inspector *tokenx.Inspector
	notifier  notify.Notifier
	log       logging.Logger
}

func NewPipeline(tokens TokenSource, inspector *tokenx.Inspector, notifier notify.Notifier, log logging.Logger) *Pipeline {
	return &Pipeline{
		tokens:    tokens,
		inspector: inspector,
		notifier:  notifier,
		log:       log.With("component", "pipeline"),
	}
}

// BindSession sets who ends the session on authentication failures. It is
// separate from NewPipeline because the session manager itself needs a
// client built on this pipeline.
func (p *Pipeline) BindSession(e SessionEnder) {
	p.ender = e
}

func (p *Pipeline) Do(req *http.Request, send SendFunc) (*http.Response, error) {
	ctx := req.Context()
	cred := credentialFrom(ctx)

	sessionToken, err := p.outbound(ctx, req, cred)
	if err != nil {
		return nil, err
	}

	requestID := uuid.NewString()
	req.Header.Set("X-Request-ID", requestID)
	if req.Header.Get("Accept") == "" {
		req.Header.Set("Accept", "application/json")
	}

	start := time.Now()
	resp, err := send(req)
	if err != nil {
		return nil, p.transportError(ctx, req, requestID, err)
	}

	p.log.Debug(ctx, "request completed",
		"method", req.Method,
		"path", req.URL.Path,
		"status", resp.StatusCode,
		"request_id", requestID,
		"duration", time.Since(start),
	)

	if resp.StatusCode < http.StatusBadRequest {
		return resp, nil
	}
	return nil, p.statusError(ctx, resp, sessionToken)
}

// outbound attaches the credential and returns the session token it
// attached, if any.
func (p *Pipeline) outbound(ctx context.Context, req *http.Request, cred credential) (string, error) {
	switch cred.mode {
	case modeAnonymous:
		req.Header.Del("Authorization")
		return "", nil
	case modeBearer:
		req.Header.Set("Authorization", "Bearer "+cred.token)
		return "", nil
	}

	token := p.tokens.Token()
	if token == "" {
		return "", nil
	}

	if _, err := p.inspector.Check(token); err != nil {
		if errors.Is(err, tokenx.ErrExpired) {
			p.endSession(ctx, token, notify.MsgSessionExpired)
			return "", ErrSessionExpired
		}
		p.endSession(ctx, token, notify.MsgInvalidSession)
		return "", fmt.Errorf("%w: %v", ErrInvalidSession, err)
	}

	req.Header.Set("Authorization", "Bearer "+token)
	return token, nil
}

func (p *Pipeline) transportError(ctx context.Context, req *http.Request, requestID string, err error) error {
	if errors.Is(err, context.Canceled) {
		return err
	}

	var netErr net.Error
	if errors.Is(err, context.DeadlineExceeded) || (errors.As(err, &netErr) && netErr.Timeout()) {
		p.log.Warn(ctx, "request timed out", "method", req.Method, "path", req.URL.Path, "request_id", requestID)
		p.notifier.Notify(ctx, notify.Error(notify.MsgTimeout))
		return fmt.Errorf("%w: %w", ErrTimeout, err)
	}

	p.log.Warn(ctx, "request failed", "method", req.Method, "path", req.URL.Path, "request_id", requestID, "error", err)
	p.notifier.Notify(ctx, notify.Error(notify.MsgNetwork))
	return fmt.Errorf("%w: %w", ErrUnavailable, err)
}

func (p *Pipeline) statusError(ctx context.Context, resp *http.Response, sessionToken string) error {
	body, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
	_ = resp.Body.Close()

	apiErr := parseAPIError(resp.StatusCode, body)
	status := resp.StatusCode

	switch {
	case status == http.StatusUnauthorized:
		if sessionToken == "" {
			apiErr.kind = ErrUnauthorized
			break
		}
		apiErr.kind = ErrSessionExpired
		p.endSession(ctx, sessionToken, notify.MsgSessionExpired)
	case status == http.StatusForbidden:
		apiErr.kind = ErrForbidden
		p.notifier.Notify(ctx, notify.Warning(notify.MsgForbidden))
	case status == http.StatusNotFound:
		apiErr.kind = ErrNotFound
		p.notifier.Notify(ctx, notify.Warning(notify.MsgNotFound))
	case status == http.StatusUnprocessableEntity:
		apiErr.kind = ErrValidation
	case status == http.StatusTooManyRequests:
		apiErr.kind = ErrRateLimited
		p.notifier.Notify(ctx, notify.Warning(notify.MsgRateLimited))
	case status >= http.StatusInternalServerError:
		apiErr.kind = ErrServer
		p.notifier.Notify(ctx, notify.Error(notify.MsgServer))
	default:
		apiErr.kind = ErrUnexpected
		msg := apiErr.Message
		if msg == "" {
			msg = notify.MsgUnexpected
		}
		p.notifier.Notify(ctx, notify.Error(msg))
	}

	return apiErr
}

// endSession notifies only when this call actually ended the session, so
// concurrent failures on the same token produce a single notification.
func (p *Pipeline) endSession(ctx context.Context, token, msg string) {
	if p.ender == nil {
		return
	}
	if p.ender.EndSession(ctx, token) {
		p.notifier.Notify(ctx, notify.Error(msg))
	}
}
