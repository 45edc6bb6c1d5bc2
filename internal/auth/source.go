package auth

import (
	"context"
	"sync"
	"time"

	"golang.org/x/sync/singleflight"

	"github.com/skylane/flight-proxy/internal/logger"
)

const (
	// DefaultMargin is how long a fetched token is served from cache. It is
	// deliberately shorter than the 30 minutes Amadeus grants, so a cached
	// token is always usable for the remainder of its advertised lifetime.
	DefaultMargin = 25 * time.Minute

	// lifetimeSlack is subtracted from the provider-reported lifetime when
	// that lifetime is shorter than the margin.
	lifetimeSlack = 30 * time.Second
)

// TokenSource caches a single access token and refreshes it lazily on the
// first call after expiry. Concurrent callers that observe an expired token
// share one exchange through a singleflight group, so an expiring token
// never causes a fetch storm.
type TokenSource struct {
	fetcher Fetcher

	// OnFetch, if set, is invoked after every credential exchange with its
	// outcome. Used to hook in metrics.
	OnFetch func(err error)

	margin time.Duration
	now    func() time.Time

	group singleflight.Group

	mu        sync.Mutex
	token     string
	expiresAt time.Time
}

// NewTokenSource creates a token source backed by the given fetcher.
func NewTokenSource(fetcher Fetcher) *TokenSource {
	return &TokenSource{
		fetcher: fetcher,
		margin:  DefaultMargin,
		now:     time.Now,
	}
}

// Token returns the cached access token, fetching a new one first if the
// cache is empty or past its expiry instant. A valid cached token is
// returned without any I/O.
func (s *TokenSource) Token(ctx context.Context) (string, error) {
	if token, ok := s.cached(); ok {
		return token, nil
	}

	v, err, _ := s.group.Do("token", func() (interface{}, error) {
		// A caller that queued behind an in-flight exchange may arrive here
		// after the winner already stored a fresh token.
		if token, ok := s.cached(); ok {
			return token, nil
		}
		return s.refresh(ctx)
	})
	if err != nil {
		return "", err
	}
	return v.(string), nil
}

// cached returns the current token if it is still before its expiry instant.
func (s *TokenSource) cached() (string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.token != "" && s.now().Before(s.expiresAt) {
		return s.token, true
	}
	return "", false
}

// refresh performs the exchange and replaces the cached credential. The old
// value is discarded, never merged.
func (s *TokenSource) refresh(ctx context.Context) (string, error) {
	token, lifetime, err := s.fetcher.Fetch(ctx)
	if s.OnFetch != nil {
		s.OnFetch(err)
	}
	if err != nil {
		logger.Get().Error().Err(err).Msg("Amadeus token exchange failed")
		return "", err
	}

	ttl := s.margin
	if lifetime > 0 && lifetime-lifetimeSlack < ttl {
		ttl = lifetime - lifetimeSlack
	}

	s.mu.Lock()
	s.token = token
	s.expiresAt = s.now().Add(ttl)
	s.mu.Unlock()

	logger.Get().Info().Dur("valid_for", ttl).Msg("Obtained new Amadeus access token")
	return token, nil
}
