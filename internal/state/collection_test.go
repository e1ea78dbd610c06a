package state

import (
	"context"
	"errors"
	"sync"
	"testing"

	"liftoff-cli/internal/model"
)

func taskLoader(tasks []model.Task, err error) Loader[model.Task] {
	return func(context.Context) ([]model.Task, error) { return tasks, err }
}

func TestFilterSubsetAndEmptyTerm(t *testing.T) {
	c := NewCollection(MatchTask)
	all := []model.Task{
		{ID: 1, Title: "Write onboarding docs"},
		{ID: 2, Title: "Fix login", Description: "OAuth redirect loop"},
		{ID: 3, Title: "Deploy", Assignee: &model.User{FullName: "Ada Lovelace"}},
	}
	if err := c.Load(context.Background(), taskLoader(all, nil)); err != nil {
		t.Fatalf("Load: %v", err)
	}

	for _, term := range []string{"", "o", "login", "ada", "zzz"} {
		c.Filter(term)
		got := c.Items()
		if len(got) > len(all) {
			t.Fatalf("filter(%q) grew the collection", term)
		}
		seen := map[int64]bool{}
		for _, it := range c.All() {
			seen[it.ID] = true
		}
		for _, it := range got {
			if !seen[it.ID] {
				t.Fatalf("filter(%q) produced item %d not in master copy", term, it.ID)
			}
		}
	}

	c.Filter("")
	if len(c.Items()) != len(all) {
		t.Fatalf("empty term must yield the full collection, got %d", len(c.Items()))
	}

	c.Filter("ada")
	got := c.Items()
	if len(got) != 1 || got[0].ID != 3 {
		t.Fatalf("assignee-name match failed: %+v", got)
	}
}

func TestLoadFailureKeepsPriorState(t *testing.T) {
	c := NewCollection(MatchTask)
	if err := c.Load(context.Background(), taskLoader([]model.Task{{ID: 1, Title: "a"}}, nil)); err != nil {
		t.Fatalf("Load: %v", err)
	}
	err := c.Load(context.Background(), taskLoader(nil, errors.New("boom")))
	if err == nil {
		t.Fatalf("expected load error")
	}
	if c.Len() != 1 {
		t.Fatalf("failed load must leave prior state, got %d items", c.Len())
	}
}

func TestStaleLoadDiscarded(t *testing.T) {
	c := NewCollection(MatchTask)

	started := make(chan struct{})
	release := make(chan struct{})
	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		_ = c.Load(context.Background(), func(context.Context) ([]model.Task, error) {
			close(started)
			<-release
			return []model.Task{{ID: 1, Title: "stale"}}, nil
		})
	}()

	// Wait until the first load is provably in flight, then start and finish a
	// newer one.
	<-started
	if err := c.Load(context.Background(), taskLoader([]model.Task{{ID: 2, Title: "fresh"}}, nil)); err != nil {
		t.Fatalf("Load: %v", err)
	}
	close(release)
	wg.Wait()

	items := c.All()
	if len(items) != 1 || items[0].ID != 2 {
		t.Fatalf("stale response must be discarded, got %+v", items)
	}
}

func TestFilterChangeDuringLoadUsesLatestTerm(t *testing.T) {
	c := NewCollection(MatchTask)
	c.Filter("old")

	// Term changes while the load is in flight; the filtered view after the
	// load must honor the latest term.
	err := c.Load(context.Background(), func(context.Context) ([]model.Task, error) {
		c.Filter("fresh")
		return []model.Task{{ID: 1, Title: "fresh paint"}, {ID: 2, Title: "old fence"}}, nil
	})
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	got := c.Items()
	if len(got) != 1 || got[0].ID != 1 {
		t.Fatalf("expected latest term to win, got %+v", got)
	}
}

func TestMatchFields(t *testing.T) {
	if !MatchFields("", "anything") {
		t.Fatalf("empty term matches everything")
	}
	if !MatchFields("LOG", "Fix login") {
		t.Fatalf("match must be case-insensitive")
	}
	if MatchFields("xyz", "Fix login", "") {
		t.Fatalf("unexpected match")
	}
}
