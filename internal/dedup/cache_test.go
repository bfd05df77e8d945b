package dedup

import (
	"sync"
	"testing"
	"time"
)

func TestAcquire_FirstClaimWins(t *testing.T) {
	c := New(time.Minute, time.Minute)

	if !c.Acquire("C1/100/") {
		t.Fatal("first claim must succeed")
	}
	if c.Acquire("C1/100/") {
		t.Fatal("second claim inside the TTL must fail")
	}
	if !c.Acquire("C1/101/") {
		t.Fatal("a different key must be claimable")
	}
}

func TestAcquire_ExpiredClaimReclaimable(t *testing.T) {
	c := New(time.Minute, time.Minute)
	now := time.Unix(1000, 0)
	c.now = func() time.Time { return now }

	if !c.Acquire("k") {
		t.Fatal("first claim must succeed")
	}

	now = now.Add(2 * time.Minute)
	if !c.Acquire("k") {
		t.Fatal("claim past the TTL must succeed again")
	}
}

func TestAcquire_EmptyKeyAlwaysPasses(t *testing.T) {
	c := New(time.Minute, time.Minute)
	if !c.Acquire("") || !c.Acquire("") {
		t.Fatal("empty keys are never deduplicated")
	}
}

func TestSweep_EvictsOnlyExpired(t *testing.T) {
	c := New(time.Minute, time.Minute)
	now := time.Unix(1000, 0)
	c.now = func() time.Time { return now }

	c.Acquire("old")
	now = now.Add(30 * time.Second)
	c.Acquire("fresh")

	now = now.Add(45 * time.Second) // "old" expired, "fresh" not
	c.Sweep()

	if c.Len() != 1 {
		t.Fatalf("expected 1 live claim after sweep, got %d", c.Len())
	}
	if c.Acquire("fresh") {
		t.Error("fresh claim must still block redelivery")
	}
	if !c.Acquire("old") {
		t.Error("swept claim must be reclaimable")
	}
}

func TestAcquire_Concurrent(t *testing.T) {
	c := New(time.Minute, time.Minute)

	const workers = 32
	var wg sync.WaitGroup
	wins := make(chan struct{}, workers)

	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if c.Acquire("contested") {
				wins <- struct{}{}
			}
		}()
	}
	wg.Wait()
	close(wins)

	n := 0
	for range wins {
		n++
	}
	if n != 1 {
		t.Fatalf("exactly one goroutine must win the claim, got %d", n)
	}
}
