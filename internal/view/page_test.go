package view

import (
	"context"
	"errors"
	"sync"
	"testing"
)

func TestRefetchTransitions(t *testing.T) {
	calls := 0
	fail := false
	p := NewPage("items", func(ctx context.Context) ([]string, error) {
		calls++
		if fail {
			return []string{"ignored"}, errors.New("boom")
		}
		return []string{"a", "b"}, nil
	}, nil)

	if s := p.Snapshot(); s.State != Loading {
		t.Fatalf("initial state %v", s.State)
	}
	if err := p.Refetch(context.Background()); err != nil {
		t.Fatal(err)
	}
	s := p.Snapshot()
	if s.State != Ready || len(s.Data) != 2 || s.Err != nil {
		t.Fatalf("unexpected snapshot %+v", s)
	}

	fail = true
	if err := p.Refetch(context.Background()); err == nil {
		t.Fatal("want error")
	}
	s = p.Snapshot()
	if s.State != Ready || s.Data != nil || s.Err == nil {
		t.Fatalf("failed fetch should leave empty Ready(error), got %+v", s)
	}
	if calls != 2 {
		t.Fatalf("calls = %d", calls)
	}
}

func TestStaleResponseIsDropped(t *testing.T) {
	release := make(chan struct{})
	started := make(chan struct{})
	first := true
	var mu sync.Mutex
	p := NewPage("items", func(ctx context.Context) (string, error) {
		mu.Lock()
		isFirst := first
		first = false
		mu.Unlock()
		if isFirst {
			close(started)
			<-release
			return "stale", nil
		}
		return "fresh", nil
	}, nil)

	done := make(chan struct{})
	go func() {
		p.Refetch(context.Background())
		close(done)
	}()
	<-started
	if err := p.Refetch(context.Background()); err != nil {
		t.Fatal(err)
	}
	close(release)
	<-done

	if got := p.Snapshot().Data; got != "fresh" {
		t.Fatalf("stale response overwrote page: %q", got)
	}
}

func TestCloseIgnoresLateResponse(t *testing.T) {
	release := make(chan struct{})
	started := make(chan struct{})
	p := NewPage("items", func(ctx context.Context) (int, error) {
		close(started)
		<-release
		return 42, nil
	}, nil)

	done := make(chan struct{})
	go func() {
		p.Refetch(context.Background())
		close(done)
	}()
	<-started
	p.Close()
	close(release)
	<-done

	if s := p.Snapshot(); s.State != Loading || s.Data != 0 {
		t.Fatalf("closed page was updated: %+v", s)
	}
	if err := p.Refetch(context.Background()); !errors.Is(err, ErrClosed) {
		t.Fatalf("want ErrClosed, got %v", err)
	}
}

func TestMutateGuardAndRefetch(t *testing.T) {
	version := 0
	p := NewPage("items", func(ctx context.Context) (int, error) {
		version++
		return version, nil
	}, nil)
	p.Refetch(context.Background())

	entered := make(chan struct{})
	release := make(chan struct{})
	done := make(chan error)
	go func() {
		done <- p.Mutate(context.Background(), func(ctx context.Context) error {
			close(entered)
			<-release
			return nil
		})
	}()
	<-entered
	if !p.InFlight() {
		t.Fatal("InFlight should be true while mutating")
	}
	if err := p.Mutate(context.Background(), func(ctx context.Context) error { return nil }); !errors.Is(err, ErrBusy) {
		t.Fatalf("want ErrBusy, got %v", err)
	}
	close(release)
	if err := <-done; err != nil {
		t.Fatal(err)
	}
	if got := p.Snapshot().Data; got != 2 {
		t.Fatalf("successful mutation should refetch, data=%d", got)
	}
}

func TestFailedMutationKeepsSnapshot(t *testing.T) {
	fetches := 0
	p := NewPage("items", func(ctx context.Context) ([]int, error) {
		fetches++
		return []int{1, 2, 3}, nil
	}, nil)
	p.Refetch(context.Background())

	want := errors.New("404")
	err := p.Mutate(context.Background(), func(ctx context.Context) error { return want })
	if !errors.Is(err, want) {
		t.Fatalf("got %v", err)
	}
	if s := p.Snapshot(); len(s.Data) != 3 || s.State != Ready || fetches != 1 {
		t.Fatalf("failed mutation touched the page: %+v fetches=%d", s, fetches)
	}
	if p.InFlight() {
		t.Fatal("guard not released")
	}
}
