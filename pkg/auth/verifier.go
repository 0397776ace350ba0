// Package auth verifies bearer tokens issued by the identity provider.
package auth

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"sync"
	"time"

	"github.com/abgdnv/shopfront/pkg/config"
	"github.com/lestrrat-go/jwx/v3/jwk"
	"github.com/lestrrat-go/jwx/v3/jwt"
)

// TokenUseClaim distinguishes Cognito access tokens from id tokens.
const TokenUseClaim = "token_use"

var allowedTokenUse = []string{"access", "id"}

var ErrInvalidTokenUse = errors.New("invalid token_use claim")

type Verifier interface {
	Verify(ctx context.Context, tokenString string) (jwt.Token, error)
}

// JWTVerifier verifies tokens against a JWKS endpoint.
// The key set is cached and refetched at most once per minInterval.
type JWTVerifier struct {
	mu sync.RWMutex

	jwksURL string
	issuer  string

	cachedSet     jwk.Set
	lastRefreshed time.Time
	minInterval   time.Duration
}

// NewJWTVerifier creates a verifier and fetches the key set once so misconfiguration fails at startup.
func NewJWTVerifier(ctx context.Context, cfg config.IdP) (*JWTVerifier, error) {
	v := &JWTVerifier{
		jwksURL:     cfg.JwksURL,
		issuer:      cfg.Issuer,
		minInterval: cfg.MinInterval,
	}
	if _, err := v.getKeySet(ctx); err != nil {
		return nil, fmt.Errorf("initial JWKS fetch failed: %w", err)
	}
	return v, nil
}

func (v *JWTVerifier) getKeySet(ctx context.Context) (jwk.Set, error) {
	v.mu.RLock()
	if v.cachedSet != nil && time.Since(v.lastRefreshed) < v.minInterval {
		set := v.cachedSet
		v.mu.RUnlock()
		return set, nil
	}
	v.mu.RUnlock()

	v.mu.Lock()
	defer v.mu.Unlock()
	// another goroutine may have refreshed while we waited for the lock
	if v.cachedSet != nil && time.Since(v.lastRefreshed) < v.minInterval {
		return v.cachedSet, nil
	}
	set, err := jwk.Fetch(ctx, v.jwksURL)
	if err != nil {
		// keep serving the stale set while the endpoint is down
		if v.cachedSet != nil {
			return v.cachedSet, nil
		}
		return nil, fmt.Errorf("failed to fetch JWKS from %s: %w", v.jwksURL, err)
	}
	v.cachedSet = set
	v.lastRefreshed = time.Now()
	return v.cachedSet, nil
}

// Verify checks signature, expiry, issuer and the token_use claim.
func (v *JWTVerifier) Verify(ctx context.Context, tokenString string) (jwt.Token, error) {
	set, err := v.getKeySet(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get keyset for verification: %w", err)
	}

	token, err := jwt.Parse(
		[]byte(tokenString),
		jwt.WithKeySet(set),
		jwt.WithValidate(true),
		jwt.WithIssuer(v.issuer),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to verify token: %w", err)
	}

	var tokenUse string
	if err := token.Get(TokenUseClaim, &tokenUse); err != nil || !slices.Contains(allowedTokenUse, tokenUse) {
		return nil, ErrInvalidTokenUse
	}
	return token, nil
}
