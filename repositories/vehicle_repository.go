package repositories

import (
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"autolot-api/models"
)

// ErrVehicleNotFound covers both a missing vehicle and a vehicle owned by
// someone else. The two cases are indistinguishable on purpose, so callers
// cannot probe for other owners' inventory.
var ErrVehicleNotFound = errors.New("vehicle not found")

// VehicleRepository performs owner-scoped CRUD on the vehicle aggregate.
// Every query carries the owner id; there is no path that reads or writes
// another owner's rows.
type VehicleRepository struct {
	db *gorm.DB
}

func NewVehicleRepository(db *gorm.DB) *VehicleRepository {
	return &VehicleRepository{db: db}
}

// resolveOwned loads a vehicle with its images only if it exists and belongs
// to ownerID. Used by every single-item read and mutation so the ownership
// check lives in exactly one place.
func (r *VehicleRepository) resolveOwned(tx *gorm.DB, id, ownerID string) (*models.Vehicle, error) {
	var vehicle models.Vehicle
	err := tx.Preload("Images").First(&vehicle, "id = ? AND user_id = ?", id, ownerID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrVehicleNotFound
		}
		return nil, err
	}
	return &vehicle, nil
}

// Create persists a vehicle and its initial image set as one atomic write
// and returns the aggregate with generated ids.
func (r *VehicleRepository) Create(ownerID string, vehicle models.Vehicle, images []models.Image) (*models.Vehicle, error) {
	vehicle.ID = uuid.New().String()
	vehicle.UserID = ownerID
	vehicle.Images = nil

	err := r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&vehicle).Error; err != nil {
			return err
		}

		for i := range images {
			images[i].ID = uuid.New().String()
			images[i].VehicleID = vehicle.ID
			if err := tx.Create(&images[i]).Error; err != nil {
				return err
			}
		}

		vehicle.Images = images
		return nil
	})
	if err != nil {
		return nil, err
	}

	if vehicle.Images == nil {
		vehicle.Images = []models.Image{}
	}
	return &vehicle, nil
}

// List returns one page of the owner's vehicles matching the filter, plus
// the total match count. Ordering is stable: creation time, then id.
func (r *VehicleRepository) List(ownerID string, filter models.VehicleFilter, page, limit int) ([]models.Vehicle, int64, error) {
	// Substring filters are case-sensitive. MySQL's default utf8mb4 collation
	// makes plain LIKE fold case, so force a binary comparison there; sqlite
	// is handled with PRAGMA case_sensitive_like at connection setup.
	like := "LIKE"
	if r.db.Dialector.Name() == "mysql" {
		like = "LIKE BINARY"
	}

	scope := func(db *gorm.DB) *gorm.DB {
		db = db.Where("user_id = ?", ownerID)
		if filter.Brand != "" {
			db = db.Where("brand "+like+" ?", "%"+filter.Brand+"%")
		}
		if filter.Model != "" {
			db = db.Where("model "+like+" ?", "%"+filter.Model+"%")
		}
		if filter.Year != 0 {
			db = db.Where("year = ?", filter.Year)
		}
		return db
	}

	var total int64
	if err := r.db.Model(&models.Vehicle{}).Scopes(scope).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var vehicles []models.Vehicle
	err := r.db.Scopes(scope).Preload("Images").
		Order("created_at").Order("id").
		Offset((page - 1) * limit).Limit(limit).
		Find(&vehicles).Error
	if err != nil {
		return nil, 0, err
	}

	return vehicles, total, nil
}

// GetOne returns the vehicle aggregate if ownerID owns it.
func (r *VehicleRepository) GetOne(id, ownerID string) (*models.Vehicle, error) {
	return r.resolveOwned(r.db, id, ownerID)
}

// Update applies a partial patch inside a single transaction: present scalar
// fields overwrite the stored values, and the image set follows the patch's
// tri-state operation. The returned aggregate is reloaded within the same
// transaction, so it reflects exactly what was committed — a concurrent
// reader sees either the old image set or the new one, never a gap.
func (r *VehicleRepository) Update(id, ownerID string, patch models.VehiclePatch) (*models.Vehicle, error) {
	var updated *models.Vehicle

	err := r.db.Transaction(func(tx *gorm.DB) error {
		vehicle, err := r.resolveOwned(tx, id, ownerID)
		if err != nil {
			return err
		}

		updates := map[string]interface{}{}
		if patch.Brand != nil {
			updates["brand"] = *patch.Brand
		}
		if patch.Model != nil {
			updates["model"] = *patch.Model
		}
		if patch.Year != nil {
			updates["year"] = *patch.Year
		}
		if patch.Price != nil {
			updates["price"] = *patch.Price
		}
		if patch.Description != nil {
			updates["description"] = *patch.Description
		}
		if len(updates) > 0 {
			if err := tx.Model(vehicle).Updates(updates).Error; err != nil {
				return err
			}
		}

		switch patch.Images.Op {
		case models.ImagesKeep:
			// Stored image set stays as is.
		case models.ImagesClear, models.ImagesReplace:
			if err := tx.Where("vehicle_id = ?", vehicle.ID).Delete(&models.Image{}).Error; err != nil {
				return err
			}
			for i := range patch.Images.Images {
				patch.Images.Images[i].ID = uuid.New().String()
				patch.Images.Images[i].VehicleID = vehicle.ID
				if err := tx.Create(&patch.Images.Images[i]).Error; err != nil {
					return err
				}
			}
		}

		updated, err = r.resolveOwned(tx, id, ownerID)
		return err
	})
	if err != nil {
		return nil, err
	}

	if updated.Images == nil {
		updated.Images = []models.Image{}
	}
	return updated, nil
}

// Delete removes the vehicle and its images if ownerID owns it, returning
// the deleted record so the caller can name it in the confirmation.
func (r *VehicleRepository) Delete(id, ownerID string) (*models.Vehicle, error) {
	var deleted *models.Vehicle

	err := r.db.Transaction(func(tx *gorm.DB) error {
		vehicle, err := r.resolveOwned(tx, id, ownerID)
		if err != nil {
			return err
		}

		if err := tx.Where("vehicle_id = ?", vehicle.ID).Delete(&models.Image{}).Error; err != nil {
			return err
		}
		if err := tx.Delete(vehicle).Error; err != nil {
			return err
		}

		deleted = vehicle
		return nil
	})
	if err != nil {
		return nil, err
	}

	return deleted, nil
}
