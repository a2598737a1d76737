package domain

import "time"

// Customer is an entry from the customer directory.
type Customer struct {
	ID                string    `json:"id"`
	Name              string    `json:"name"`
	Phone             string    `json:"phone"`
	Email             string    `json:"email,omitempty"`
	PreferredLanguage string    `json:"preferredLanguage,omitempty"`
	CreatedAt         time.Time `json:"createdAt"`
}
