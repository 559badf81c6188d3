package models

import (
	"time"
)

// Account represents a signed-in user of the catalog
type Account struct {
	ID        string    `json:"id" db:"id"`
	Email     string    `json:"email" db:"email"`
	Nickname  string    `json:"nickname" db:"nickname"`
	FirstName string    `json:"first_name" db:"first_name"`
	LastName  string    `json:"last_name" db:"last_name"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
	UpdatedAt time.Time `json:"updated_at" db:"updated_at"`
}

// ApplyProfile copies the provider supplied profile onto the account
func (a *Account) ApplyProfile(p Profile) {
	a.Email = p.Email
	a.Nickname = p.Nickname
	a.FirstName = p.FirstName
	a.LastName = p.LastName
}

// Profile returns the canonical profile stored on the account
func (a *Account) Profile() Profile {
	return Profile{
		Nickname:  a.Nickname,
		FirstName: a.FirstName,
		LastName:  a.LastName,
		Email:     a.Email,
	}
}
