package rating

import (
	"context"
	"sync"
	"testing"

	"github.com/pkg/errors"
)

type stubClient struct {
	mu    sync.Mutex
	calls map[string]int
	rate  func(target Target) (float64, string, error)
}

func newStubClient(rate func(target Target) (float64, string, error)) *stubClient {
	return &stubClient{calls: make(map[string]int), rate: rate}
}

func (c *stubClient) Rate(_ context.Context, target Target) (float64, string, error) {
	c.mu.Lock()
	c.calls[Key(target.Type, target.ID)]++
	c.mu.Unlock()
	return c.rate(target)
}

func (c *stubClient) callCount(key string) int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.calls[key]
}

type nopLogger struct{}

func (nopLogger) Debug(string, ...interface{}) {}
func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}
func (nopLogger) Fatal(string, ...interface{}) {}

func TestFetchAllIsolatesFailures(t *testing.T) {
	// A succeeds, B errors out; A's resolution must be unaffected.
	client := newStubClient(func(target Target) (float64, string, error) {
		if target.ID == "B" {
			return 0, "", errors.New("connection timed out")
		}
		return 4.7, "great fit", nil
	})
	f := NewFetcher(client, NewCache(), nopLogger{})

	f.FetchAll(context.Background(), []Target{
		{Type: "course", ID: "A"},
		{Type: "course", ID: "B"},
	})

	a := f.Score("course", "A")
	if a.Status != StatusAvailable || a.Value != 4.7 {
		t.Errorf("A = %+v, want available 4.7", a)
	}
	b := f.Score("course", "B")
	if b.Status != StatusFailed {
		t.Errorf("B status = %v, want failed", b.Status)
	}

	ra := Resolve(a, nil)
	if ra.Value != 4.7 || ra.Label != LabelExternal {
		t.Errorf("Resolve(A) = %+v, B's failure leaked into A", ra)
	}
	rb := Resolve(b, nil)
	if rb.Value != NeutralDefault {
		t.Errorf("Resolve(B) value = %v, want neutral default", rb.Value)
	}
}

func TestFetchAllSkipsSettledEntities(t *testing.T) {
	client := newStubClient(func(target Target) (float64, string, error) {
		if target.ID == "B" {
			return 0, "", errors.New("boom")
		}
		return 4.0, "", nil
	})
	f := NewFetcher(client, NewCache(), nopLogger{})

	targets := []Target{{Type: "course", ID: "A"}, {Type: "course", ID: "B"}}
	f.FetchAll(context.Background(), targets)
	f.FetchAll(context.Background(), targets) // both settled: no retries

	if n := client.callCount("course:A"); n != 1 {
		t.Errorf("A fetched %d times, want 1", n)
	}
	if n := client.callCount("course:B"); n != 1 {
		t.Errorf("failed B refetched without explicit refresh (%d calls)", n)
	}
}

func TestRefreshRefetchesEverything(t *testing.T) {
	client := newStubClient(func(Target) (float64, string, error) { return 3.0, "", nil })
	f := NewFetcher(client, NewCache(), nopLogger{})

	targets := []Target{{Type: "company", ID: "acme"}}
	f.FetchAll(context.Background(), targets)

	f.SetPersonalized(true)
	f.Refresh(context.Background(), targets)

	if n := client.callCount("company:acme"); n != 2 {
		t.Errorf("acme fetched %d times, want 2", n)
	}
	if s := f.Score("company", "acme"); !s.Personalized {
		t.Error("score fetched after resume upload not marked personalized")
	}
}

func TestFetchAllConcurrent(t *testing.T) {
	// a slow sibling must not serialize completions; all targets settle
	release := make(chan struct{})
	client := newStubClient(func(target Target) (float64, string, error) {
		if target.ID == "slow" {
			<-release
		}
		return 2.5, "", nil
	})
	f := NewFetcher(client, NewCache(), nopLogger{})

	done := make(chan struct{})
	go func() {
		f.FetchAll(context.Background(), []Target{
			{Type: "course", ID: "fast"},
			{Type: "course", ID: "slow"},
		})
		close(done)
	}()

	close(release)
	<-done

	for _, id := range []string{"fast", "slow"} {
		if s := f.Score("course", id); s.Status != StatusAvailable {
			t.Errorf("%s status = %v, want available", id, s.Status)
		}
	}
}
