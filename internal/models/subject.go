package models

// Subject is a unit of study material with a name and the hours required to
// complete it.
type Subject struct {
	ID        string  `json:"id"`
	Name      string  `json:"name"`
	Hours     int     `json:"hours"`
	Position  int     `json:"position"`
	DeletedAt *string `json:"deleted_at,omitempty"` // RFC3339 timestamp
}
