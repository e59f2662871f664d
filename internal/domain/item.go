package domain

import "time"

// ItemStatus is the lifecycle state of a to-do list item.
// Serialized as strings on the wire.
type ItemStatus string

// Item statuses. Newly created items always start at StatusNotStarted.
const (
	StatusNotStarted ItemStatus = "NotStarted"
	StatusInProgress ItemStatus = "InProgress"
	StatusCompleted  ItemStatus = "Completed"
	StatusArchived   ItemStatus = "Archived"
)

// IsValid reports whether s is one of the defined statuses.
func (s ItemStatus) IsValid() bool {
	switch s {
	case StatusNotStarted, StatusInProgress, StatusCompleted, StatusArchived:
		return true
	}
	return false
}

// Item is a user-owned to-do list entry.
// Description, Location and DueDate are optional; nil means absent.
type Item struct {
	ID             string     `json:"id"`
	Title          string     `json:"title"`
	Status         ItemStatus `json:"itemStatus"`
	Description    *string    `json:"description,omitempty"`
	Location       *string    `json:"location,omitempty"`
	DueDate        *time.Time `json:"dueDate,omitempty"`
	LastUpdateDate time.Time  `json:"lastUpdateDate"`
	UserID         string     `json:"-"`
}

// Touch refreshes the last-update timestamp.
func (i *Item) Touch(t time.Time) {
	i.LastUpdateDate = t
}
