package models

import (
	"time"
)

// Product is a catalog document. IDs are plain strings assigned by the
// catalog importer and never contain hyphens, which is what makes the
// variant-id prefix parse in the inventory package safe.
type Product struct {
	ID          string         `bson:"_id,omitempty" json:"id"`
	Name        string         `bson:"name" json:"name"`
	Description string         `bson:"description" json:"description"`
	Price       float64        `bson:"price" json:"price"`
	Sizes       []string       `bson:"sizes" json:"sizes"`
	Colors      []string       `bson:"colors" json:"colors"`
	Images      []string       `bson:"images" json:"images"`
	StockBySize map[string]int `bson:"stockBySize" json:"stockBySize"`
	CreatedAt   time.Time      `bson:"createdAt" json:"createdAt"`
	UpdatedAt   time.Time      `bson:"updatedAt" json:"updatedAt"`
}
