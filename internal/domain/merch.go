package domain

import "time"

// MerchItem is a merchandise catalogue entry. Hidden items are omitted from
// the public listing but remain editable in the admin console.
type MerchItem struct {
	ID          string
	Name        string
	Description string
	ImageURL    string
	IsFeatured  bool
	IsHidden    bool
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
