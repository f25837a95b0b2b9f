package listing

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// ListingKind says whether a listing offers the car for sale or for rent.
type ListingKind int

const (
	KindBuy ListingKind = iota
	KindRent
)

var kindNames = map[ListingKind]string{
	KindBuy:  "BUY",
	KindRent: "RENT",
}

var kindValues = map[string]ListingKind{
	"BUY":  KindBuy,
	"RENT": KindRent,
}

// ParseKind maps the persisted string form back to a ListingKind.
// Unknown names are a decode error, never a silent default.
func ParseKind(s string) (ListingKind, error) {
	k, ok := kindValues[s]
	if !ok {
		return 0, fmt.Errorf("unknown listing kind %q", s)
	}
	return k, nil
}

func (k ListingKind) String() string {
	return kindNames[k]
}

func (k ListingKind) MarshalJSON() ([]byte, error) {
	name, ok := kindNames[k]
	if !ok {
		return nil, fmt.Errorf("unknown listing kind %d", int(k))
	}
	return json.Marshal(name)
}

func (k *ListingKind) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	parsed, err := ParseKind(s)
	if err != nil {
		return err
	}
	*k = parsed
	return nil
}

// ListingStatus is the lifecycle state of a listing. The only transition the
// service treats specially is entering StatusSold; everything else is an
// ordinary field update.
type ListingStatus int

const (
	StatusAvailable ListingStatus = iota
	StatusPending
	StatusRemoved
	StatusSold
)

var statusNames = map[ListingStatus]string{
	StatusAvailable: "AVAILABLE",
	StatusPending:   "PENDING",
	StatusRemoved:   "REMOVED",
	StatusSold:      "SOLD",
}

var statusValues = map[string]ListingStatus{
	"AVAILABLE": StatusAvailable,
	"PENDING":   StatusPending,
	"REMOVED":   StatusRemoved,
	"SOLD":      StatusSold,
}

// ParseStatus maps the persisted string form back to a ListingStatus.
func ParseStatus(s string) (ListingStatus, error) {
	st, ok := statusValues[s]
	if !ok {
		return 0, fmt.Errorf("unknown listing status %q", s)
	}
	return st, nil
}

func (s ListingStatus) String() string {
	return statusNames[s]
}

func (s ListingStatus) MarshalJSON() ([]byte, error) {
	name, ok := statusNames[s]
	if !ok {
		return nil, fmt.Errorf("unknown listing status %d", int(s))
	}
	return json.Marshal(name)
}

func (s *ListingStatus) UnmarshalJSON(data []byte) error {
	var name string
	if err := json.Unmarshal(data, &name); err != nil {
		return err
	}
	parsed, err := ParseStatus(name)
	if err != nil {
		return err
	}
	*s = parsed
	return nil
}

// Listing represents a car-for-sale-or-rent posting.
type Listing struct {
	ID          int64           `json:"listing_id"`
	CarID       int64           `json:"car_id"`
	UserID      int64           `json:"user_id"`
	Kind        ListingKind     `json:"kind"`
	Description string          `json:"description"`
	PostingDate time.Time       `json:"posting_date"`
	SalePrice   decimal.Decimal `json:"sale_price"`
	Promoted    bool            `json:"promoted"`
	Status      ListingStatus   `json:"status"`
}
