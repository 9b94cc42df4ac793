package models

import "time"

// Message is a single guestbook entry. Entries are owned by the user that
// created them and are never updated.
type Message struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Message   string    `json:"message"`
	UserID    string    `json:"userId"`
	Username  string    `json:"username"`
	CreatedAt time.Time `json:"createdAt"`
}
