package menu

import (
	"errors"
	"testing"
)

func TestCatalogGet(t *testing.T) {
	c := New()

	for _, id := range []ID{Main, Booking, TrainStatus, Refund} {
		m, err := c.Get(id)
		if err != nil {
			t.Fatalf("Get(%s) failed: %v", id, err)
		}
		if m.Prompt == "" {
			t.Errorf("menu %s has empty prompt", id)
		}
	}

	if _, err := c.Get("bogus"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestOnlyMainCarriesOptions(t *testing.T) {
	c := New()

	main, _ := c.Get(Main)
	if len(main.Options) != 5 {
		t.Fatalf("main options = %d, want 5", len(main.Options))
	}
	if !main.Options["agent"].Terminate {
		t.Error("agent option must terminate the call")
	}
	if main.Options["booking"].Next != Booking {
		t.Errorf("booking option next = %s, want %s", main.Options["booking"].Next, Booking)
	}
	if main.Options["main"].Message != main.Prompt {
		t.Error("main option must echo the main prompt")
	}

	for _, id := range []ID{Booking, TrainStatus, Refund} {
		m, _ := c.Get(id)
		if len(m.Options) != 0 {
			t.Errorf("menu %s carries options; keyword rules own its input handling", id)
		}
	}
}
