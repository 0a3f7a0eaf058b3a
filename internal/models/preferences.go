package models

// Preferences are the user's training options, stored under a single key.
type Preferences struct {
	Stack        string `json:"stack"`
	Mode         string `json:"mode"`
	ChoicesCount int    `json:"choices_count"`
	TimerSeconds int    `json:"timer_seconds"` // 0 disables the countdown
	ShowGlyphs   bool   `json:"show_glyphs"`
}

const (
	MinChoicesCount = 2
	MaxChoicesCount = 10
	MaxTimerSeconds = 120
)

func DefaultPreferences(stack string) Preferences {
	return Preferences{
		Stack:        stack,
		Mode:         "card-to-position",
		ChoicesCount: 5,
		TimerSeconds: 0,
		ShowGlyphs:   true,
	}
}
