package call

import (
	"strings"
	"sync"
	"testing"

	"github.com/railvoice/railvoice/internal/menu"
)

func TestCreate(t *testing.T) {
	st := NewStore()

	s := st.Create("9999999999")
	if !strings.HasPrefix(s.CallID, "CALL_") {
		t.Fatalf("call id %q missing CALL_ prefix", s.CallID)
	}
	if s.CurrentMenu != menu.Main {
		t.Errorf("current menu = %s, want main", s.CurrentMenu)
	}
	if len(s.MenuPath) != 1 || s.MenuPath[0] != menu.Main {
		t.Errorf("menu path = %v, want [main]", s.MenuPath)
	}
	if s.EndTime != nil {
		t.Error("new session must not carry an end time")
	}
	if s.StartTime.IsZero() {
		t.Error("start time not stamped")
	}
}

func TestCreate_UniqueIDs(t *testing.T) {
	st := NewStore()

	seen := make(map[string]bool)
	for i := 0; i < 200; i++ {
		s := st.Create("1234567890")
		if seen[s.CallID] {
			t.Fatalf("duplicate call id %s", s.CallID)
		}
		seen[s.CallID] = true
	}

	active, ended := st.Counts()
	if active != 200 || ended != 0 {
		t.Fatalf("counts = (%d, %d), want (200, 0)", active, ended)
	}
}

func TestGet_ReturnsSnapshot(t *testing.T) {
	st := NewStore()
	s := st.Create("9999999999")

	snap, ok := st.Get(s.CallID)
	if !ok {
		t.Fatal("session not found")
	}

	// Mutating the snapshot must not leak into the store.
	snap.MenuPath = append(snap.MenuPath, menu.Refund)
	snap.Inputs = append(snap.Inputs, "3")

	again, _ := st.Get(s.CallID)
	if len(again.MenuPath) != 1 || len(again.Inputs) != 0 {
		t.Fatalf("snapshot mutation leaked into store: %v %v", again.MenuPath, again.Inputs)
	}
}

func TestUpdate_MutatesUnderLock(t *testing.T) {
	st := NewStore()
	s := st.Create("9999999999")

	snap, ok := st.Update(s.CallID, func(live *Session) bool {
		live.RecordInput("1")
		live.Visit(menu.Booking)
		return false
	})
	if !ok {
		t.Fatal("update reported not found")
	}
	if snap.CurrentMenu != menu.Booking {
		t.Errorf("current menu = %s, want booking", snap.CurrentMenu)
	}
	if snap.MenuPath[len(snap.MenuPath)-1] != menu.Booking {
		t.Errorf("menu path tail = %v, want booking", snap.MenuPath)
	}
}

func TestUpdate_EndArchives(t *testing.T) {
	st := NewStore()
	s := st.Create("9999999999")

	snap, ok := st.Update(s.CallID, func(*Session) bool { return true })
	if !ok {
		t.Fatal("update reported not found")
	}
	if snap.EndTime == nil {
		t.Fatal("archived session missing end time")
	}

	if _, ok := st.Get(s.CallID); ok {
		t.Fatal("ended session still in active registry")
	}
	active, ended := st.Counts()
	if active != 0 || ended != 1 {
		t.Fatalf("counts = (%d, %d), want (0, 1)", active, ended)
	}
}

func TestEnd_NotFoundIsSoft(t *testing.T) {
	st := NewStore()
	s := st.Create("9999999999")

	if _, ok := st.End(s.CallID); !ok {
		t.Fatal("first end failed")
	}
	if _, ok := st.End(s.CallID); ok {
		t.Fatal("second end should report not found")
	}
	if _, ok := st.End("CALL_NOPE"); ok {
		t.Fatal("unknown id should report not found")
	}
}

func TestStore_ConcurrentAccess(t *testing.T) {
	st := NewStore()
	s := st.Create("9999999999")

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			st.Update(s.CallID, func(live *Session) bool {
				live.RecordInput("1")
				live.Visit(menu.Booking)
				return false
			})
			st.Get(s.CallID)
			st.Counts()
		}()
	}
	wg.Wait()

	snap, ok := st.Get(s.CallID)
	if !ok {
		t.Fatal("session lost")
	}
	if len(snap.Inputs) != 50 {
		t.Fatalf("inputs = %d, want 50", len(snap.Inputs))
	}
	if snap.CurrentMenu != snap.MenuPath[len(snap.MenuPath)-1] {
		t.Fatal("current menu diverged from menu path tail")
	}
}
