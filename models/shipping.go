package models

import "time"

// ShippingAddress is the per-order shipping sub-document, stored in its own
// collection keyed by the order id. All fields are optional free text; an
// order without one is a valid, displayable state.
type ShippingAddress struct {
	OrderID       string    `bson:"_id,omitempty" json:"orderId"`
	FullName      string    `bson:"fullName,omitempty" json:"fullName,omitempty"`
	Phone         string    `bson:"phone,omitempty" json:"phone,omitempty"`
	Email         string    `bson:"email,omitempty" json:"email,omitempty"`
	StreetAddress string    `bson:"streetAddress,omitempty" json:"streetAddress,omitempty"`
	Building      string    `bson:"building,omitempty" json:"building,omitempty"`
	Floor         string    `bson:"floor,omitempty" json:"floor,omitempty"`
	Apartment     string    `bson:"apartment,omitempty" json:"apartment,omitempty"`
	Area          string    `bson:"area,omitempty" json:"area,omitempty"`
	City          string    `bson:"city,omitempty" json:"city,omitempty"`
	Notes         string    `bson:"notes,omitempty" json:"notes,omitempty"`
	CreatedAt     time.Time `bson:"createdAt" json:"createdAt"`
}
