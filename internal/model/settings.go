package model

import "time"

// Settings is the flat configuration record stored with the snapshot
type Settings struct {
	DefaultHourlyRate float64 `json:"defaultHourlyRate"`
	Notifications     bool    `json:"notifications"`
	HapticFeedback    bool    `json:"hapticFeedback"`
	AutoSave          bool    `json:"autoSave"`
	Theme             string  `json:"theme"`

	// WeeklyGoal is the weekly tracked-time target in milliseconds
	WeeklyGoal int64 `json:"weeklyGoal"`
}

// DefaultSettings returns the settings a fresh installation starts with
func DefaultSettings() Settings {
	return Settings{
		DefaultHourlyRate: 200,
		Notifications:     true,
		HapticFeedback:    true,
		AutoSave:          true,
		Theme:             "nord",
		WeeklyGoal:        int64(40 * time.Hour / time.Millisecond),
	}
}
