package postgres

import "time"

/*
 * 'GameSetting' is a key/value row for admin-controlled switches. The only
 * key in use today is the reveal date ("reveal_at").
 */
type GameSetting struct {
	Key       string    `gorm:"primaryKey;size:255" json:"key"`
	Value     string    `gorm:"type:text" json:"value"`
	UpdatedAt time.Time `gorm:"default:CURRENT_TIMESTAMP" json:"updated_at"`
}

// Setting keys.
const (
	SettingRevealAt = "reveal_at"
)
