package model

// Snapshot is the whole persisted state: ordered projects, sessions in
// chronological creation order, and settings.
type Snapshot struct {
	Projects []Project `json:"projects"`
	Sessions []Session `json:"sessions"`
	Settings Settings  `json:"settings"`
}

// DefaultSnapshot returns the seed state for a fresh installation.
// At least one project must exist at all times, so the seed carries one.
func DefaultSnapshot(defaultProjectID string) Snapshot {
	settings := DefaultSettings()
	return Snapshot{
		Projects: []Project{
			{
				ID:         defaultProjectID,
				Name:       "General",
				Color:      "#00F5FF",
				HourlyRate: settings.DefaultHourlyRate,
			},
		},
		Settings: settings,
	}
}
