package model

import "time"

// Item is a lost-item listing: metadata, exactly one stored image, and a
// comment thread in insertion order.
type Item struct {
	ID          string    `json:"id"`
	ItemName    string    `json:"item_name"`
	Category    string    `json:"category"`
	FoundDate   string    `json:"found_date"`
	FoundTime   string    `json:"found_time"`
	Location    string    `json:"location"`
	Description string    `json:"description,omitempty"`
	Status      string    `json:"status"`
	ImagePath   string    `json:"image_path"`
	CreatedAt   time.Time `json:"created_at"`
	Comments    []Comment `json:"comments"`
}

// Item categories.
const (
	CategoryElectronics = "electronics"
	CategoryClothing    = "clothing"
	CategorySupplies    = "supplies"
	CategoryBag         = "bag"
	CategoryWallet      = "wallet"
	CategoryOther       = "other"
)

// Item statuses.
const (
	StatusFound     = "found"
	StatusSearching = "searching"
)

// Categories lists all valid item categories.
var Categories = []string{
	CategoryElectronics,
	CategoryClothing,
	CategorySupplies,
	CategoryBag,
	CategoryWallet,
	CategoryOther,
}

// ValidCategory reports whether category is one of the known categories.
func ValidCategory(category string) bool {
	for _, c := range Categories {
		if c == category {
			return true
		}
	}
	return false
}

// ValidStatus reports whether status is one of the known statuses.
func ValidStatus(status string) bool {
	return status == StatusFound || status == StatusSearching
}
