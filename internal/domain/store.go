package domain

import "time"

// Store represents a rateable store owned by exactly one STORE_OWNER user.
type Store struct {
	ID        string
	StoreName string
	Email     string
	Address   string
	OwnerID   string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Owner is the identity of a store's owning user, exposed only to privileged
// callers in listings.
type Owner struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

// StoreListing is one row of the filtered store listing. AverageRating is
// recomputed from the rating ledger on every query. Owner is nil unless the
// caller's role includes the owner projection.
type StoreListing struct {
	ID            string
	StoreName     string
	Address       string
	CreatedAt     time.Time
	AverageRating float64
	Owner         *Owner
}
