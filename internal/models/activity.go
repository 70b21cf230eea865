package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// VehicleStats are per-vehicle monotonic counters. They are mutated only via
// atomic increments inside the vehicle's serialization boundary, never by
// read-modify-write from callers.
type VehicleStats struct {
	VehicleID       primitive.ObjectID `json:"vehicle_id" bson:"_id"`
	TotalSearches   int64              `json:"total_searches" bson:"total_searches"`
	ContactRequests int64              `json:"contact_requests" bson:"contact_requests"`
	LastSearchedAt  *time.Time         `json:"last_searched_at" bson:"last_searched_at"`
}

// SearchEvent is the immutable activity record behind owner notifications.
// Events survive removal of the vehicle they reference.
type SearchEvent struct {
	ID         primitive.ObjectID  `json:"id" bson:"_id,omitempty"`
	VehicleID  primitive.ObjectID  `json:"vehicle_id" bson:"vehicle_id"`
	OwnerID    primitive.ObjectID  `json:"owner_id" bson:"owner_id"`
	Plate      string              `json:"plate" bson:"plate"`
	SearcherID *primitive.ObjectID `json:"searcher_id,omitempty" bson:"searcher_id,omitempty"`
	Revealed   bool                `json:"revealed" bson:"revealed"`
	CreatedAt  time.Time           `json:"created_at" bson:"created_at"`
}

// OwnerActivity is the aggregate view an owner sees for their garage.
type OwnerActivity struct {
	OwnerID              primitive.ObjectID `json:"owner_id"`
	TotalSearches        int64              `json:"total_searches"`
	TotalContactRequests int64              `json:"total_contact_requests"`
	RecentEvents         []*SearchEvent     `json:"recent_events"`
}
