package domain

import "time"

// InventoryItem is one stocked product. UnitPriceCents is the price in
// minor currency units; money is never carried as a float.
type InventoryItem struct {
	ID             string    `json:"id" bson:"_id,omitempty"`
	ProductName    string    `json:"product_name" bson:"product_name"`
	Description    string    `json:"description" bson:"description"`
	Quantity       int64     `json:"quantity" bson:"quantity"`
	UnitPriceCents int64     `json:"unit_price_cents" bson:"unit_price_cents"`
	Category       string    `json:"category" bson:"category"`
	Location       string    `json:"location" bson:"location"`
	LastUpdated    time.Time `json:"last_updated" bson:"last_updated"`
}

func (i InventoryItem) RecordID() string { return i.ID }

// CloneRecord returns an independent copy safe to mutate as a working copy.
func (i InventoryItem) CloneRecord() InventoryItem { return i }
