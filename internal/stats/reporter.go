// Package stats logs periodic call-volume figures for operators. The
// archive grows without bound in this demo, so the ended count doubles
// as a growth signal.
package stats

import (
	"fmt"
	"log/slog"

	"github.com/robfig/cron/v3"

	"github.com/railvoice/railvoice/internal/call"
)

// Reporter logs active and ended call counts on a cron schedule.
type Reporter struct {
	cron  *cron.Cron
	store *call.Store
}

func NewReporter(store *call.Store, spec string) (*Reporter, error) {
	r := &Reporter{cron: cron.New(), store: store}
	if _, err := r.cron.AddFunc(spec, r.report); err != nil {
		return nil, fmt.Errorf("parse stats interval %q: %w", spec, err)
	}
	return r, nil
}

func (r *Reporter) Start() {
	r.cron.Start()
}

// Stop halts the schedule and waits for an in-flight report.
func (r *Reporter) Stop() {
	<-r.cron.Stop().Done()
}

func (r *Reporter) report() {
	active, ended := r.store.Counts()
	slog.Info("call volume", "active", active, "ended", ended)
}
