package domain

import "time"

// Supplier is one vendor record.
type Supplier struct {
	ID            string    `json:"id" bson:"_id,omitempty"`
	Name          string    `json:"name" bson:"name"`
	ContactPerson string    `json:"contact_person" bson:"contact_person"`
	Email         string    `json:"email" bson:"email"`
	Phone         string    `json:"phone" bson:"phone"`
	Address       string    `json:"address" bson:"address"`
	Rating        float64   `json:"rating" bson:"rating"`
	LastUpdated   time.Time `json:"last_updated" bson:"last_updated"`
}

func (s Supplier) RecordID() string { return s.ID }

// CloneRecord returns an independent copy safe to mutate as a working copy.
func (s Supplier) CloneRecord() Supplier { return s }
