package state

import (
	"testing"

	"liftoff-cli/internal/model"
)

func TestSelectedProjectSetClearCurrent(t *testing.T) {
	s := NewSelectedProject()
	if _, ok := s.Current(); ok {
		t.Fatalf("fresh holder must be empty")
	}
	s.Set(model.Project{ID: 1, Name: "Apollo"})
	if p, ok := s.Current(); !ok || p.ID != 1 {
		t.Fatalf("Current after Set: %+v %v", p, ok)
	}
	s.Clear()
	if _, ok := s.Current(); ok {
		t.Fatalf("Current after Clear must be empty")
	}
}

func TestSubscribeFiresImmediatelyAndOnChange(t *testing.T) {
	s := NewSelectedProject()
	s.Set(model.Project{ID: 1})

	var got []*model.Project
	cancel := s.Subscribe(func(p *model.Project) { got = append(got, p) })
	defer cancel()

	if len(got) != 1 || got[0] == nil || got[0].ID != 1 {
		t.Fatalf("subscriber must fire immediately with current value: %+v", got)
	}

	s.Set(model.Project{ID: 2})
	s.Clear()
	if len(got) != 3 {
		t.Fatalf("expected 3 notifications, got %d", len(got))
	}
	if got[1].ID != 2 || got[2] != nil {
		t.Fatalf("unexpected notifications: %+v", got)
	}
}

func TestUnsubscribeStopsNotifications(t *testing.T) {
	s := NewSelectedProject()
	n := 0
	cancel := s.Subscribe(func(*model.Project) { n++ })
	cancel()
	s.Set(model.Project{ID: 9})
	if n != 1 {
		t.Fatalf("canceled subscriber must not be notified, got %d calls", n)
	}
}

func TestSubscriberGetsCopy(t *testing.T) {
	s := NewSelectedProject()
	s.Set(model.Project{ID: 1, Name: "Apollo"})
	s.Subscribe(func(p *model.Project) {
		if p != nil {
			p.Name = "mutated"
		}
	})()
	if p, _ := s.Current(); p.Name != "Apollo" {
		t.Fatalf("subscriber mutation leaked into holder: %q", p.Name)
	}
}
