package watchlist

import (
	"time"
)

// User is the profile record backing a watchlist. Rows are normally created by
// the sign-up pipeline; the store can also create a minimal one itself when a
// first add arrives before provisioning finished.
type User struct {
	ID                 string    `json:"id" gorm:"primaryKey"`
	Email              string    `json:"email" gorm:"unique;not null"`
	Name               string    `json:"name"`
	Country            string    `json:"country"`
	EmailNotifications bool      `json:"email_notifications" gorm:"default:true"`
	PublicProfile      bool      `json:"public_profile" gorm:"default:false"`
	DarkMode           bool      `json:"dark_mode" gorm:"default:true"`
	CreatedAt          time.Time `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt          time.Time `json:"updated_at" gorm:"autoUpdateTime"`
}

// Entry is one tracked symbol on a user's watchlist. Symbol is stored in
// canonical uppercase form; Company keeps whatever casing the caller sent.
type Entry struct {
	ID      int       `json:"id" gorm:"primaryKey"`
	UserID  string    `json:"user_id" gorm:"uniqueIndex:idx_user_symbol;not null"`
	Symbol  string    `json:"symbol" gorm:"uniqueIndex:idx_user_symbol;not null"`
	Company string    `json:"company"`
	AddedAt time.Time `json:"added_at" gorm:"autoCreateTime"`
	User    User      `json:"-" gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;"`
}

// Identity is the trusted caller identity handed down from the session layer.
type Identity struct {
	UserID string `json:"user_id"`
	Email  string `json:"email"`
	Name   string `json:"name"`
}
