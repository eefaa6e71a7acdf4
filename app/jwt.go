package app

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"github.com/lestrrat-go/jwx/jwk"
)

var (
	ErrTokenExpired = errors.New("session token expired")
	ErrTokenInvalid = errors.New("session token invalid")
)

// TokenInfo is what the dashboard can learn about a session token. Opaque
// tokens report JWT false and a zero ExpiresAt.
type TokenInfo struct {
	JWT       bool
	Subject   string
	ExpiresAt time.Time
}

// Inspector reads expiry from JWT session tokens and, when a JWKS URL is
// configured, verifies their signatures.
type Inspector struct {
	jwksCache *jwk.AutoRefresh
	jwksURL   string
	now       func() time.Time
}

// NewInspector creates an Inspector. With an empty jwksURL tokens are never
// verified, only checked for expiry.
func NewInspector(ctx context.Context, jwksURL string) (*Inspector, error) {
	in := &Inspector{jwksURL: jwksURL, now: time.Now}
	if jwksURL == "" {
		return in, nil
	}

	ar := jwk.NewAutoRefresh(ctx)
	ar.Configure(jwksURL, jwk.WithRefreshInterval(5*time.Minute))
	if _, err := ar.Fetch(ctx, jwksURL); err != nil {
		return nil, fmt.Errorf("fetching JWKS from %s: %w", jwksURL, err)
	}
	in.jwksCache = ar
	return in, nil
}

// Inspect validates token and returns what it carries.
func (in *Inspector) Inspect(ctx context.Context, token string) (TokenInfo, error) {
	if token == "" {
		return TokenInfo{}, ErrTokenInvalid
	}
	if in.jwksCache != nil {
		return in.verify(ctx, token)
	}

	claims := &jwt.RegisteredClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		// Not a JWT: the server handed out an opaque token.
		return TokenInfo{}, nil
	}
	return in.infoFromClaims(claims)
}

func (in *Inspector) verify(ctx context.Context, token string) (TokenInfo, error) {
	claims := &jwt.RegisteredClaims{}
	parser := jwt.NewParser(
		jwt.WithValidMethods([]string{"RS256", "RS384", "RS512", "ES256", "ES384", "ES512"}),
		jwt.WithoutClaimsValidation(),
	)

	_, err := parser.ParseWithClaims(token, claims, func(t *jwt.Token) (interface{}, error) {
		keyID, ok := t.Header["kid"].(string)
		if !ok {
			return nil, fmt.Errorf("expecting JWT header to have 'kid'")
		}

		keySet, err := in.jwksCache.Fetch(ctx, in.jwksURL)
		if err != nil {
			return nil, fmt.Errorf("failed to fetch JWKS: %w", err)
		}

		key, found := keySet.LookupKeyID(keyID)
		if !found {
			return nil, fmt.Errorf("unable to find key with ID '%s'", keyID)
		}

		var pubKey interface{}
		if err := key.Raw(&pubKey); err != nil {
			return nil, fmt.Errorf("failed to get raw public key: %w", err)
		}
		return pubKey, nil
	})
	if err != nil {
		return TokenInfo{}, fmt.Errorf("%w: %w", ErrTokenInvalid, err)
	}
	return in.infoFromClaims(claims)
}

func (in *Inspector) infoFromClaims(claims *jwt.RegisteredClaims) (TokenInfo, error) {
	info := TokenInfo{JWT: true, Subject: claims.Subject}
	if claims.ExpiresAt != nil {
		info.ExpiresAt = claims.ExpiresAt.Time
		if !in.now().Before(info.ExpiresAt) {
			return info, ErrTokenExpired
		}
	}
	return info, nil
}
