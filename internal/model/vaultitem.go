package model

import "time"

// ItemType is the kind of narrative asset kept in the campaign vault.
type ItemType string

const (
	TypeCharacter ItemType = "character"
	TypeNPC       ItemType = "npc"
	TypeScene     ItemType = "scene"
	TypeSecret    ItemType = "secret"
	TypeLocation  ItemType = "location"
	TypeMonster   ItemType = "monster"
	TypeItem      ItemType = "item"
)

// Item status values. An item is in exactly one of these at any time.
const (
	StatusReserve  = "reserve"  // available, unused
	StatusActive   = "active"   // linked into a session
	StatusArchived = "archived" // permanently retired
)

// reusableTypes lists the types that return to the reserve pool after
// coming up in a concluded session. Anything not listed here burns on use
// and is archived, unknown and future types included.
var reusableTypes = map[ItemType]bool{
	TypeNPC:      true,
	TypeLocation: true,
	TypeItem:     true,
	TypeMonster:  true,
}

// Reusable reports whether an item of this type survives being used in a
// session. Not meaningful for TypeCharacter: characters are exempt from the
// reuse/archive decision entirely (see IsCharacter).
func (t ItemType) Reusable() bool {
	return reusableTypes[t]
}

// IsCharacter reports whether this is a player-character item. Characters
// bypass link/unlink gating and are never archived by session conclusion.
func (t ItemType) IsCharacter() bool {
	return t == TypeCharacter
}

// Valid reports whether t is one of the known item types.
func (t ItemType) Valid() bool {
	switch t {
	case TypeCharacter, TypeNPC, TypeScene, TypeSecret, TypeLocation, TypeMonster, TypeItem:
		return true
	}
	return false
}

// VaultItem is a narrative asset in a campaign's vault: NPC, scene, secret,
// location, monster, item or player character. Content is free-form and
// type-dependent (name, description, archetype, aspects, ...).
type VaultItem struct {
	ID         string `gorm:"primaryKey;type:uuid" json:"id"`
	CampaignID string `gorm:"not null;index;type:uuid" json:"campaign_id"`

	Campaign *Campaign `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"-"`

	Type   ItemType `gorm:"not null;index" json:"type"`
	Status string   `gorm:"not null;default:reserve;index" json:"status"`

	Content    JSONMap    `gorm:"type:text" json:"content"`
	UsageCount int        `gorm:"not null;default:0" json:"usage_count"`
	Tags       StringList `gorm:"type:text" json:"tags"`

	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

// Name extracts a display name from the free-form content, falling back to
// the title field some types use instead.
func (v *VaultItem) Name() string {
	if s, ok := v.Content["name"].(string); ok && s != "" {
		return s
	}
	if s, ok := v.Content["title"].(string); ok {
		return s
	}
	return ""
}
