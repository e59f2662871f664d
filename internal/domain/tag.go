package domain

import "time"

// Tag is a user-owned label attached to to-do list items.
// Labels are stored trimmed; uniqueness per owner is enforced by the
// validators, not by a storage constraint.
type Tag struct {
	ID             string    `json:"id"`
	Label          string    `json:"label"`
	UserID         string    `json:"-"`
	LastUpdateDate time.Time `json:"lastUpdateDate"`
}

// ItemTag represents the many-to-many relationship between items and tags.
// It has no independent lifecycle: rows are created and destroyed alongside
// the tag-set mutations of their parent item.
type ItemTag struct {
	ItemID     string    `json:"itemId"`
	TagID      string    `json:"tagId"`
	CreateDate time.Time `json:"createDate"`
}
