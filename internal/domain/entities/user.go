package entities

import "time"

// User owns crops. Authentication lives outside this service; the backend
// only needs the owner reference for scoping queries.
type User struct {
	ID        string    `json:"id" db:"id"`
	Email     string    `json:"email" db:"email"`
	Name      string    `json:"name" db:"name"`
	State     string    `json:"state" db:"state"`
	District  string    `json:"district" db:"district"`
	Location  string    `json:"location" db:"location"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
}
