package models

import (
	"time"
)

type Vehicle struct {
	ID          string    `json:"id" gorm:"primaryKey;size:191"`
	UserID      string    `json:"user_id" gorm:"not null;size:191;index:idx_vehicles_user_created,priority:1"`
	Brand       string    `json:"brand" gorm:"not null;size:100"`
	Model       string    `json:"model" gorm:"not null;size:100"`
	Year        int       `json:"year" gorm:"not null"`
	Price       float64   `json:"price" gorm:"not null"`
	Description string    `json:"description" gorm:"size:1000"`
	CreatedAt   time.Time `json:"created_at" gorm:"index:idx_vehicles_user_created,priority:2"`
	UpdatedAt   time.Time `json:"updated_at"`

	Images []Image `json:"images" gorm:"foreignKey:VehicleID;constraint:OnDelete:CASCADE"`
}

// Image rows exist only as part of a Vehicle aggregate. They are written
// en masse on create/update and never patched individually.
type Image struct {
	ID        string    `json:"id" gorm:"primaryKey;size:191"`
	VehicleID string    `json:"vehicle_id" gorm:"not null;size:191;index"`
	Name      string    `json:"name" gorm:"size:255"`
	URL       string    `json:"url" gorm:"not null;size:500"`
	CreatedAt time.Time `json:"created_at"`
}

// ImagePatchOp selects what an update does to a vehicle's image set.
type ImagePatchOp int

const (
	// ImagesKeep leaves the stored image set untouched (field absent).
	ImagesKeep ImagePatchOp = iota
	// ImagesClear deletes every stored image (field present, empty list).
	ImagesClear
	// ImagesReplace deletes every stored image and inserts the new list.
	ImagesReplace
)

// ImagePatch is the tri-state image field of a vehicle update. The variant
// is fixed when the request body is decoded, so repository code never has
// to reason about nil-vs-empty slices.
type ImagePatch struct {
	Op     ImagePatchOp
	Images []Image
}

// VehiclePatch carries a partial vehicle update. Nil scalar fields are left
// unchanged.
type VehiclePatch struct {
	Brand       *string
	Model       *string
	Year        *int
	Price       *float64
	Description *string
	Images      ImagePatch
}

// VehicleFilter narrows a vehicle listing. Zero values impose no constraint.
// Brand and model match as case-sensitive substrings, year matches exactly.
type VehicleFilter struct {
	Brand string
	Model string
	Year  int
}
