package scope

import "testing"

func TestAugmentUnionsTokens(t *testing.T) {
	a := NewVisibility()
	b := NewVisibility()

	got := a.Augment(b)
	if got != a {
		t.Fatal("Augment must return its receiver")
	}
	if a.Len() != 2 {
		t.Errorf("len = %d, want 2", a.Len())
	}
	if !a.Intersects(b) {
		t.Error("augmented scope must intersect its source")
	}
	// b is untouched
	if b.Len() != 1 {
		t.Errorf("source scope len = %d, want 1", b.Len())
	}
}

func TestIntersectsDisjoint(t *testing.T) {
	a := NewVisibility()
	b := NewVisibility()
	if a.Intersects(b) {
		t.Error("fresh scopes must not intersect")
	}
	if a.Intersects(nil) {
		t.Error("nil never intersects")
	}
}

func TestStackVisibility(t *testing.T) {
	s := NewStack()
	declScope := NewVisibility()
	active := NewVisibility().Augment(declScope)

	if s.IsVisible(declScope) {
		t.Error("nothing is visible with an empty stack")
	}
	s.Push(active)
	if !s.IsVisible(declScope) {
		t.Error("declaration must be visible while its scope is active")
	}
	s.Pop(active)
	if s.IsVisible(declScope) {
		t.Error("declaration must not be visible after pop")
	}
}

func TestStackPopMismatchPanics(t *testing.T) {
	s := NewStack()
	a := NewVisibility()
	b := NewVisibility()
	s.Push(a)
	s.Push(b)

	defer func() {
		if r := recover(); r != ErrPopMismatch {
			t.Errorf("recover = %v, want ErrPopMismatch", r)
		}
	}()
	s.Pop(a) // b is on top
}

func TestStackPopEmptyPanics(t *testing.T) {
	s := NewStack()
	defer func() {
		if r := recover(); r != ErrPopMismatch {
			t.Errorf("recover = %v, want ErrPopMismatch", r)
		}
	}()
	s.Pop(NewVisibility())
}

func TestDisableFilteringNestsAndReleasesOnce(t *testing.T) {
	s := NewStack()
	hidden := NewVisibility()

	release1 := s.DisableFiltering()
	release2 := s.DisableFiltering()
	if !s.IsVisible(hidden) {
		t.Error("everything is visible while filtering is disabled")
	}
	release1()
	if !s.FilteringDisabled() {
		t.Error("filtering must stay disabled until the last release")
	}
	release2()
	release2() // releasing twice is a no-op
	if s.FilteringDisabled() {
		t.Error("filtering must be enabled after all releases")
	}
	if s.IsVisible(hidden) {
		t.Error("hidden scope must not be visible after releases")
	}
}
