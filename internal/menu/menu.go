package menu

import "errors"

// ID identifies a menu in the catalog.
type ID string

const (
	Main        ID = "main"
	Booking     ID = "booking"
	TrainStatus ID = "train_status"
	Refund      ID = "refund"
)

var ErrNotFound = errors.New("menu not found")

// Option is one entry in a menu's option table. Terminate marks options
// that end the call instead of moving to another menu.
type Option struct {
	Message   string
	Next      ID
	Terminate bool
}

// Menu is a single IVR menu. Only the main menu carries an option
// table; the others are driven by keyword classification.
type Menu struct {
	ID      ID
	Prompt  string
	Options map[string]Option
}

// Catalog holds the static menu definitions. Read-only after New.
type Catalog struct {
	menus map[ID]Menu
}

const mainPrompt = "Welcome to Indian Railways Customer Support. You can say 'book ticket', 'train status' or 'refund'."

func New() *Catalog {
	return &Catalog{
		menus: map[ID]Menu{
			Main: {
				ID:     Main,
				Prompt: mainPrompt,
				Options: map[string]Option{
					"booking":      {Message: "You selected Booking. Do you want Sleeper or AC?", Next: Booking},
					"train_status": {Message: "Please enter your 6-digit PNR.", Next: TrainStatus},
					"refund":       {Message: "Refund menu. Say 'cancelled' or 'tatkal'.", Next: Refund},
					"agent":        {Message: "Transferring to agent...", Terminate: true},
					"main":         {Message: mainPrompt, Next: Main},
				},
			},
			Booking: {
				ID:     Booking,
				Prompt: "Booking Menu. Say 'sleeper' or 'ac' or say 'back' to return.",
			},
			TrainStatus: {
				ID:     TrainStatus,
				Prompt: "Please say or enter your 6-digit PNR number.",
			},
			Refund: {
				ID:     Refund,
				Prompt: "Refund Menu. Say 'cancelled' or 'tatkal' or say 'back' to return.",
			},
		},
	}
}

func (c *Catalog) Get(id ID) (Menu, error) {
	m, ok := c.menus[id]
	if !ok {
		return Menu{}, ErrNotFound
	}
	return m, nil
}
