package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"platelink/internal/plate"
)

type WheelCategory string

const (
	WheelCategoryTwoWheeler   WheelCategory = "two_wheeler"
	WheelCategoryThreeWheeler WheelCategory = "three_wheeler"
	WheelCategoryFourWheeler  WheelCategory = "four_wheeler"
	WheelCategoryHeavy        WheelCategory = "heavy"
	WheelCategoryOther        WheelCategory = "other"
)

func (w WheelCategory) Valid() bool {
	switch w {
	case WheelCategoryTwoWheeler, WheelCategoryThreeWheeler,
		WheelCategoryFourWheeler, WheelCategoryHeavy, WheelCategoryOther:
		return true
	}
	return false
}

// Vehicle is a registered vehicle. The plate is stored in canonical form and
// is unique across the whole registry, not just per owner.
type Vehicle struct {
	ID            primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	OwnerID       primitive.ObjectID `json:"owner_id" bson:"owner_id" validate:"required"`
	Plate         string             `json:"plate" bson:"plate" validate:"required"`
	PlateFormat   plate.Format       `json:"plate_format" bson:"plate_format"`
	WheelCategory WheelCategory      `json:"wheel_category" bson:"wheel_category" validate:"required"`
	Verified      bool               `json:"verified" bson:"verified" default:"false"`
	CreatedAt     time.Time          `json:"created_at" bson:"created_at"`
	UpdatedAt     time.Time          `json:"updated_at" bson:"updated_at"`
}

// VehicleSummary is the public shape returned by plate search before the
// searcher pays for a reveal.
type VehicleSummary struct {
	VehicleID     primitive.ObjectID `json:"vehicle_id"`
	Plate         string             `json:"plate"`
	PlateFormat   plate.Format       `json:"plate_format"`
	WheelCategory WheelCategory      `json:"wheel_category"`
	Verified      bool               `json:"verified"`
	OwnerName     string             `json:"owner_name"`
	Contactable   bool               `json:"contactable"`
}
