// Package model defines the data structures used throughout the application.
package model

import "time"

// Video is a single external video link on an athlete's profile.
//
// Videos have no lifecycle of their own — they live inside exactly one
// Athlete's list and are created/removed through that athlete's profile.
// The URL is treated as an opaque string here; whether it points at
// YouTube, Vimeo or a direct file is a presentation concern.
type Video struct {
	ID      string    `json:"id"`
	Title   string    `json:"title"`
	URL     string    `json:"url"`
	AddedAt time.Time `json:"addedAt"`
}

// Athlete represents a registered athlete account and public profile.
//
// UserID is the athlete's chosen public handle; ID is the internal primary
// key (an xid) assigned at creation and used as the subject of issued
// tokens. Both UserID and Email are unique across all athletes.
//
// PasswordHash carries the bcrypt hash of the account password. The
// `json:"-"` tag guarantees it is never serialized into any API response —
// every handler that returns an Athlete returns it minus this field.
type Athlete struct {
	ID           string    `json:"id"`
	UserID       string    `json:"userID"`
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	Age          int       `json:"age"`
	Sport        string    `json:"sport"`
	Position     string    `json:"position"`
	Phone        string    `json:"phone"`
	Location     string    `json:"location"`
	Achievements string    `json:"achievements"`
	Photo        string    `json:"photo"`
	Videos       []Video   `json:"videoUrls"`
	PasswordHash string    `json:"-"`
	CreatedAt    time.Time `json:"createdAt"`
}
