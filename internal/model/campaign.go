package model

import (
	"database/sql/driver"
	"encoding/json"
	"time"
)

// Front is a looming threat or storyline with a coarse progress marker.
type Front struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Progress    int    `json:"progress"`
}

// FrontList is a JSON column of fronts.
type FrontList []Front

func (f FrontList) Value() (driver.Value, error) {
	if f == nil {
		return "[]", nil
	}
	b, err := json.Marshal(f)
	return string(b), err
}

func (f *FrontList) Scan(src any) error {
	*f = FrontList{}
	return scanJSON(src, f)
}

// Campaign is the top-level container: narrative metadata plus a pointer to the
// session currently considered live.
type Campaign struct {
	ID     string `gorm:"primaryKey;type:uuid" json:"id"`
	UserID int64  `gorm:"not null;index" json:"-"`

	User *User `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"-"`

	Title         string     `gorm:"not null" json:"title"`
	ElevatorPitch string     `json:"elevator_pitch"`
	Framework     string     `json:"framework"`
	Truths        StringList `gorm:"type:text" json:"truths"`
	Fronts        FrontList  `gorm:"type:text" json:"fronts"`
	SafetyTools   string     `json:"safety_tools"`

	// ActiveSession is the id of the session used for quick navigation;
	// moved forward automatically when a session concludes.
	ActiveSession string `gorm:"type:uuid" json:"active_session"`

	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}
