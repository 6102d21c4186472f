package call

import (
	"slices"
	"time"

	"github.com/oklog/ulid/v2"

	"github.com/railvoice/railvoice/internal/menu"
)

// Session is the live record of one call. Mutations happen only inside
// Store critical sections; everything handed out is a snapshot.
type Session struct {
	CallID       string     `json:"call_id"`
	CallerNumber string     `json:"caller_number"`
	StartTime    time.Time  `json:"start_time"`
	EndTime      *time.Time `json:"end_time,omitempty"`
	CurrentMenu  menu.ID    `json:"current_menu"`
	MenuPath     []menu.ID  `json:"menu_path"`
	Inputs       []string   `json:"inputs"`
}

// NewCallID returns a process-unique call identifier.
func NewCallID() string {
	return "CALL_" + ulid.Make().String()
}

// Visit moves the session to the given menu and appends it to the path,
// keeping CurrentMenu equal to the last path element.
func (s *Session) Visit(id menu.ID) {
	s.CurrentMenu = id
	s.MenuPath = append(s.MenuPath, id)
}

// RecordInput appends a raw digit or text input.
func (s *Session) RecordInput(in string) {
	s.Inputs = append(s.Inputs, in)
}

func (s *Session) snapshot() Session {
	cp := *s
	cp.MenuPath = slices.Clone(s.MenuPath)
	cp.Inputs = slices.Clone(s.Inputs)
	return cp
}
