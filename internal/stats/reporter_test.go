package stats

import (
	"testing"

	"github.com/railvoice/railvoice/internal/call"
)

func TestNewReporter(t *testing.T) {
	st := call.NewStore()

	r, err := NewReporter(st, "@every 1s")
	if err != nil {
		t.Fatalf("NewReporter failed: %v", err)
	}

	r.Start()
	r.Stop()
}

func TestNewReporter_BadSpec(t *testing.T) {
	if _, err := NewReporter(call.NewStore(), "every now and then"); err == nil {
		t.Fatal("expected error for invalid cron spec")
	}
}

func TestReport(t *testing.T) {
	st := call.NewStore()
	s := st.Create("9999999999")
	st.End(s.CallID)
	st.Create("8888888888")

	r, err := NewReporter(st, "@every 1m")
	if err != nil {
		t.Fatal(err)
	}

	// Must not panic regardless of store contents.
	r.report()
}
