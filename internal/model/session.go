package model

import "time"

// Session status values. Completed is terminal.
const (
	SessionPlanned   = "planned"
	SessionCompleted = "completed"
)

// Session is one sitting of play within a campaign. Created with an
// auto-incremented number, mutated continuously during play (notes, links,
// used markers) and concluded exactly once, after which gameplay fields are
// frozen.
type Session struct {
	ID         string `gorm:"primaryKey;type:uuid" json:"id"`
	CampaignID string `gorm:"not null;index;type:uuid" json:"campaign_id"`

	Campaign *Campaign `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"-"`

	Number int    `gorm:"not null" json:"number"`
	Title  string `json:"title"`
	Status string `gorm:"not null;default:planned;index" json:"status"`

	// Date is stamped once, at first conclusion, and never overwritten.
	Date *time.Time `json:"date"`

	StrongStart string `json:"strong_start"`
	Recap       string `json:"recap"`
	// Summary is the post-conclusion narrative, possibly AI-generated.
	// It may still be corrected after the session is completed.
	Summary string `json:"summary"`

	Notes NoteMap `gorm:"type:text" json:"notes"`

	// LinkedItems is the ordered list of vault item ids pulled into this
	// session. Never references archived items.
	LinkedItems StringList `gorm:"type:text" json:"linked_items"`
	// UsedItems marks which linked items actually came up in play. Persisted
	// with the session so the markers survive a reload mid-session.
	UsedItems StringList `gorm:"type:text" json:"used_items"`

	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

// Completed reports whether the session has been concluded.
func (s *Session) Completed() bool {
	return s.Status == SessionCompleted
}
