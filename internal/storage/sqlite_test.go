package storage

import (
	"path/filepath"
	"testing"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := Open(filepath.Join(t.TempDir(), "matches.db"))
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func TestSaveAndRecentMatches(t *testing.T) {
	store := openTestStore(t)

	matches := []MatchResult{
		{MapName: "arena", Strategy1: "chaser", Strategy2: "rotator", Winner: 1, Reason: "elimination", Ticks: 42, Tanks1Alive: 1},
		{MapName: "arena", Strategy1: "chaser", Strategy2: "chaser", Winner: 0, Reason: "max_ticks", Ticks: 100, Tanks1Alive: 1, Tanks2Alive: 1},
	}
	for _, m := range matches {
		if _, err := store.SaveMatch(m); err != nil {
			t.Fatalf("SaveMatch: %v", err)
		}
	}

	recent, err := store.RecentMatches(10)
	if err != nil {
		t.Fatalf("RecentMatches: %v", err)
	}
	if len(recent) != 2 {
		t.Fatalf("got %d matches, want 2", len(recent))
	}
	// Newest first.
	if recent[0].Winner != 0 || recent[0].Reason != "max_ticks" {
		t.Fatalf("first match: %+v", recent[0])
	}
	if recent[1].Strategy2 != "rotator" || recent[1].Tanks1Alive != 1 {
		t.Fatalf("second match: %+v", recent[1])
	}
}

func TestStatsByMap(t *testing.T) {
	store := openTestStore(t)

	seed := []MatchResult{
		{MapName: "arena", Winner: 1, Reason: "elimination", Strategy1: "a", Strategy2: "b"},
		{MapName: "arena", Winner: 2, Reason: "elimination", Strategy1: "a", Strategy2: "b"},
		{MapName: "arena", Winner: 0, Reason: "max_ticks", Strategy1: "a", Strategy2: "b"},
		{MapName: "maze", Winner: 1, Reason: "elimination", Strategy1: "a", Strategy2: "b"},
	}
	for _, m := range seed {
		if _, err := store.SaveMatch(m); err != nil {
			t.Fatalf("SaveMatch: %v", err)
		}
	}

	stats, err := store.StatsByMap()
	if err != nil {
		t.Fatalf("StatsByMap: %v", err)
	}
	if len(stats) != 2 {
		t.Fatalf("got %d maps, want 2", len(stats))
	}
	arena := stats[0]
	if arena.MapName != "arena" || arena.Matches != 3 || arena.Wins1 != 1 || arena.Wins2 != 1 || arena.Ties != 1 {
		t.Fatalf("arena stats: %+v", arena)
	}
}

func TestRecentMatchesEmpty(t *testing.T) {
	store := openTestStore(t)
	recent, err := store.RecentMatches(0)
	if err != nil {
		t.Fatalf("RecentMatches: %v", err)
	}
	if len(recent) != 0 {
		t.Fatalf("expected no matches, got %d", len(recent))
	}
}
