package client

import "context"

// credentialMode selects which bearer credential, if any, a request carries.
type credentialMode int

const (
	// modeSession attaches the current session token after checking it.
	modeSession credentialMode = iota
	// modeBearer attaches an explicit token that is not yet the session's.
	modeBearer
	// modeAnonymous sends no credential.
	modeAnonymous
)

type credentialKey struct{}

type credential struct {
	mode  credentialMode
	token string
}

// WithBearer makes requests under ctx carry token instead of the session
// token. A 401 on such a request does not end the session.
func WithBearer(ctx context.Context, token string) context.Context {
	return context.WithValue(ctx, credentialKey{}, credential{mode: modeBearer, token: token})
}

// Anonymous makes requests under ctx carry no credential.
func Anonymous(ctx context.Context) context.Context {
	return context.WithValue(ctx, credentialKey{}, credential{mode: modeAnonymous})
}

func credentialFrom(ctx context.Context) credential {
	if c, ok := ctx.Value(credentialKey{}).(credential); ok {
		return c
	}
	return credential{mode: modeSession}
}
