package transaction

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// Kind mirrors the listing kind that produced the transaction.
type Kind int

const (
	KindBuy Kind = iota
	KindRent
)

var kindNames = map[Kind]string{
	KindBuy:  "BUY",
	KindRent: "RENT",
}

var kindValues = map[string]Kind{
	"BUY":  KindBuy,
	"RENT": KindRent,
}

// ParseKind maps the persisted string form back to a Kind.
func ParseKind(s string) (Kind, error) {
	k, ok := kindValues[s]
	if !ok {
		return 0, fmt.Errorf("unknown transaction kind %q", s)
	}
	return k, nil
}

func (k Kind) String() string {
	return kindNames[k]
}

func (k Kind) MarshalJSON() ([]byte, error) {
	name, ok := kindNames[k]
	if !ok {
		return nil, fmt.Errorf("unknown transaction kind %d", int(k))
	}
	return json.Marshal(name)
}

func (k *Kind) UnmarshalJSON(data []byte) error {
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

// Status is the settlement state of a transaction. New transactions start as
// StatusPending; this service never advances them on its own.
type Status int

const (
	StatusPending Status = iota
	StatusCompleted
	StatusCancelled
)

var statusNames = map[Status]string{
	StatusPending:   "PENDING",
	StatusCompleted: "COMPLETED",
	StatusCancelled: "CANCELLED",
}

var statusValues = map[string]Status{
	"PENDING":   StatusPending,
	"COMPLETED": StatusCompleted,
	"CANCELLED": StatusCancelled,
}

// ParseStatus maps the persisted string form back to a Status.
func ParseStatus(s string) (Status, error) {
	st, ok := statusValues[s]
	if !ok {
		return 0, fmt.Errorf("unknown transaction status %q", s)
	}
	return st, nil
}

func (s Status) String() string {
	return statusNames[s]
}

func (s Status) MarshalJSON() ([]byte, error) {
	name, ok := statusNames[s]
	if !ok {
		return nil, fmt.Errorf("unknown transaction status %d", int(s))
	}
	return json.Marshal(name)
}

func (s *Status) UnmarshalJSON(data []byte) error {
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

// Transaction records a completed sale or rental of a car.
type Transaction struct {
	ID              int64           `json:"transaction_id"`
	BuyerID         int64           `json:"buyer_id"`
	CarID           int64           `json:"car_id"`
	Kind            Kind            `json:"kind"`
	TotalAmount     decimal.Decimal `json:"total_amount"`
	Status          Status          `json:"status"`
	TransactionDate time.Time       `json:"transaction_date"`
	EndDate         *time.Time      `json:"end_date,omitempty"`
}
