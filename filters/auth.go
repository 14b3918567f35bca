package filters

import (
	"context"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/kbukum/filterkit/filter"
	"github.com/kbukum/filterkit/logger"
	"github.com/kbukum/filterkit/stream"
)

// TokenSource produces bearer tokens. Implementations may block (for
// example fetching a credential from a token endpoint); BearerToken
// calls Token off the invocation path.
type TokenSource interface {
	Token(ctx context.Context) (string, error)
}

// TokenFunc adapts a function to the TokenSource interface.
type TokenFunc func(ctx context.Context) (string, error)

// Token implements TokenSource.
func (f TokenFunc) Token(ctx context.Context) (string, error) { return f(ctx) }

// StaticToken returns a TokenSource that always yields token.
func StaticToken(token string) TokenSource {
	return TokenFunc(func(context.Context) (string, error) { return token, nil })
}

// JWTSigner is a TokenSource minting short-lived HS256-signed JWTs per
// request, for service-to-service authentication.
type JWTSigner struct {
	// Secret is the HMAC signing key.
	Secret []byte
	// Issuer is the iss claim.
	Issuer string
	// Subject is the sub claim.
	Subject string
	// Audience is the aud claim (optional).
	Audience string
	// TTL is the token lifetime. Defaults to one minute.
	TTL time.Duration
}

// Token implements TokenSource.
func (s *JWTSigner) Token(context.Context) (string, error) {
	ttl := s.TTL
	if ttl <= 0 {
		ttl = time.Minute
	}
	now := time.Now()
	claims := jwt.RegisteredClaims{
		Issuer:    s.Issuer,
		Subject:   s.Subject,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
	}
	if s.Audience != "" {
		claims.Audience = jwt.ClaimStrings{s.Audience}
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.Secret)
}

// BearerToken returns a filter that resolves a token from src and sets
// the Authorization header before the request goes out.
//
// Because the source may be slow, the filter does not call next
// directly: it returns an interim stream handle immediately, resolves
// the token on a goroutine, then invokes next and splices the handle
// onto the real stream. The caller can write the request body right
// away; bytes are buffered until the splice. If the source fails, the
// original callback receives the error and the handle's read side is
// torn down.
func BearerToken(src TokenSource) filter.Filter {
	return filter.Func(func(opts *filter.Options, next filter.Next, cb filter.Callback) filter.Stream {
		return stream.Interim(func(req *stream.RequestHalf, resp *stream.ResponseHalf) {
			go func() {
				token, err := src.Token(context.Background())
				if err != nil {
					resp.Fail(err)
					cb(err, nil, nil, nil)
					return
				}
				if opts.Headers == nil {
					opts.Headers = make(map[string]string)
				}
				opts.Headers["Authorization"] = "Bearer " + token
				real := next(opts, cb)
				// The callback now belongs to the real exchange, so a
				// splice failure cannot be reported through it without
				// risking a double invocation. Log it instead.
				if err := req.Splice(real); err != nil {
					logger.GetGlobalLogger().WithComponent("filters").WithError(err).
						Error("bearer token: request splice failed")
				}
				if err := resp.Splice(real); err != nil {
					logger.GetGlobalLogger().WithComponent("filters").WithError(err).
						Error("bearer token: response splice failed")
				}
			}()
		})
	})
}
