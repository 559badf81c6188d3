package models

// Profile is the canonical user profile resolved from an identity provider.
// Every field is always set, missing claims are carried as empty strings.
type Profile struct {
	Nickname  string `json:"nickname"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Email     string `json:"email"`
}
