package domain

import "time"

// Rating is a single user's star rating for a store. At most one exists per
// (store, user) pair.
type Rating struct {
	StoreID   string
	UserID    string
	Stars     int32
	CreatedAt time.Time
	UpdatedAt time.Time
}

// StoreRating is a rating joined with the rater's identity, as shown on the
// store owner's dashboard.
type StoreRating struct {
	Stars     int32
	CreatedAt time.Time
	Rater     Owner
}
