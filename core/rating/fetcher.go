package rating

import (
	"context"
	"fmt"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/unihive/unihive/core"
)

type (
	// Target identifies one entity to score, along with the descriptive
	// payload the scoring service wants.
	Target struct {
		Type    string
		ID      string
		Payload interface{}
	}

	// Client is the external compatibility scoring service.
	Client interface {
		// Rate returns the raw score for one target. Any transport error,
		// malformed response or service-side failure comes back as err.
		Rate(ctx context.Context, target Target) (value float64, details string, err error)
	}

	// Fetcher orchestrates the per-entity score fetches: one independent
	// request per visible entity, completions applied to the cache as they
	// arrive, a settled (available/failed) entity never refetched without an
	// explicit Refresh.
	Fetcher struct {
		client Client
		cache  *Cache
		logger core.Logger

		mu           sync.RWMutex
		personalized bool
	}
)

func NewFetcher(client Client, cache *Cache, logger core.Logger) *Fetcher {
	return &Fetcher{client: client, cache: cache, logger: logger}
}

// Personalized reports whether a resume is on file, ie. whether fetched
// scores are personalized match scores.
func (f *Fetcher) Personalized() bool {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return f.personalized
}

// SetPersonalized flags subsequent fetches as resume-personalized.
func (f *Fetcher) SetPersonalized(on bool) {
	f.mu.Lock()
	f.personalized = on
	f.mu.Unlock()
}

// Score returns the cached score for an entity.
func (f *Fetcher) Score(entityType, entityID string) Score {
	return f.cache.Get(Key(entityType, entityID))
}

// FetchAll requests a score for every target concurrently and blocks until
// all of them settle. Requests are order-independent and isolated: one
// target's failure marks only that target failed and never aborts the rest.
// Targets already settled are skipped.
func (f *Fetcher) FetchAll(ctx context.Context, targets []Target) {
	g := new(errgroup.Group)
	personalized := f.Personalized()

	for _, target := range targets {
		key := Key(target.Type, target.ID)
		if f.cache.Get(key).Status.Final() {
			continue
		}
		f.cache.set(key, Score{Status: StatusPending})

		target := target
		g.Go(func() error {
			value, details, err := f.client.Rate(ctx, target)
			if err != nil {
				f.logger.Warn(fmt.Sprintf("scoring %s: %v", key, err), err)
				f.cache.set(key, Score{Status: StatusFailed})
				return nil // siblings keep going
			}
			f.cache.set(key, Score{
				Status:       StatusAvailable,
				Value:        value,
				Personalized: personalized,
				Details:      details,
			})
			return nil
		})
	}
	_ = g.Wait()
}

// Refresh drops all cached scores and re-runs the fetch-all. This is the
// explicit re-rating pass after a resume upload, not a hidden side effect.
func (f *Fetcher) Refresh(ctx context.Context, targets []Target) {
	f.cache.Reset()
	f.FetchAll(ctx, targets)
}
