package repositories

import (
	"errors"
	"testing"
	"time"

	"autolot-api/models"
)

func testVehicle() models.Vehicle {
	return models.Vehicle{
		Brand:       "Toyota",
		Model:       "Corolla",
		Year:        2020,
		Price:       70000,
		Description: "well kept",
	}
}

func imageSet(images []models.Image) map[string]bool {
	set := make(map[string]bool, len(images))
	for _, img := range images {
		set[img.Name+"|"+img.URL] = true
	}
	return set
}

func TestCreateAndGetOne_AggregateRoundTrip(t *testing.T) {
	db := newTestDB(t)
	repo := NewVehicleRepository(db)
	owner := createTestUser(t, db, "owner@example.com")

	images := []models.Image{
		{Name: "front", URL: "https://example.com/front.jpg"},
		{Name: "side", URL: "https://example.com/side.jpg"},
	}

	created, err := repo.Create(owner.ID, testVehicle(), images)
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if created.ID == "" {
		t.Fatal("expected a generated vehicle id")
	}
	if created.UserID != owner.ID {
		t.Errorf("expected owner %s, got %s", owner.ID, created.UserID)
	}

	got, err := repo.GetOne(created.ID, owner.ID)
	if err != nil {
		t.Fatalf("getOne: %v", err)
	}

	if got.Brand != "Toyota" || got.Model != "Corolla" || got.Year != 2020 ||
		got.Price != 70000 || got.Description != "well kept" {
		t.Errorf("scalar fields do not match: %+v", got)
	}

	want := imageSet(images)
	have := imageSet(got.Images)
	if len(have) != len(want) {
		t.Fatalf("expected %d images, got %d", len(want), len(have))
	}
	for key := range want {
		if !have[key] {
			t.Errorf("missing image %s", key)
		}
	}
	for _, img := range got.Images {
		if img.ID == "" || img.VehicleID != created.ID {
			t.Errorf("image not bound to vehicle: %+v", img)
		}
	}
}

func TestCreate_NoImages(t *testing.T) {
	db := newTestDB(t)
	repo := NewVehicleRepository(db)
	owner := createTestUser(t, db, "owner@example.com")

	created, err := repo.Create(owner.ID, testVehicle(), nil)
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if created.Images == nil || len(created.Images) != 0 {
		t.Errorf("expected empty image list, got %v", created.Images)
	}
}

func TestGetOne_OwnershipMismatchIsNotFound(t *testing.T) {
	db := newTestDB(t)
	repo := NewVehicleRepository(db)
	owner := createTestUser(t, db, "owner@example.com")
	stranger := createTestUser(t, db, "stranger@example.com")

	created, err := repo.Create(owner.ID, testVehicle(), nil)
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	// A vehicle owned by someone else and a vehicle that does not exist
	// must be indistinguishable.
	_, errOther := repo.GetOne(created.ID, stranger.ID)
	_, errMissing := repo.GetOne("no-such-id", stranger.ID)

	if !errors.Is(errOther, ErrVehicleNotFound) {
		t.Errorf("expected ErrVehicleNotFound for foreign vehicle, got %v", errOther)
	}
	if !errors.Is(errMissing, ErrVehicleNotFound) {
		t.Errorf("expected ErrVehicleNotFound for missing vehicle, got %v", errMissing)
	}
}

func TestUpdate_ScalarsOnlyTouchesPresentFields(t *testing.T) {
	db := newTestDB(t)
	repo := NewVehicleRepository(db)
	owner := createTestUser(t, db, "owner@example.com")

	created, err := repo.Create(owner.ID, testVehicle(), nil)
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	brand := "Honda"
	price := 55000.0
	updated, err := repo.Update(created.ID, owner.ID, models.VehiclePatch{
		Brand: &brand,
		Price: &price,
	})
	if err != nil {
		t.Fatalf("update: %v", err)
	}

	if updated.Brand != "Honda" || updated.Price != 55000 {
		t.Errorf("patched fields not applied: %+v", updated)
	}
	if updated.Model != "Corolla" || updated.Year != 2020 || updated.Description != "well kept" {
		t.Errorf("absent fields must stay unchanged: %+v", updated)
	}
}

func TestUpdate_ImagesOmittedKeepsSet(t *testing.T) {
	db := newTestDB(t)
	repo := NewVehicleRepository(db)
	owner := createTestUser(t, db, "owner@example.com")

	images := []models.Image{{Name: "front", URL: "https://example.com/front.jpg"}}
	created, err := repo.Create(owner.ID, testVehicle(), images)
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	brand := "Honda"
	updated, err := repo.Update(created.ID, owner.ID, models.VehiclePatch{Brand: &brand})
	if err != nil {
		t.Fatalf("update: %v", err)
	}

	if len(updated.Images) != 1 || updated.Images[0].ID != created.Images[0].ID {
		t.Errorf("omitted images field must leave the stored set untouched: %+v", updated.Images)
	}
}

func TestUpdate_ImagesOmittedKeepsEmptySet(t *testing.T) {
	db := newTestDB(t)
	repo := NewVehicleRepository(db)
	owner := createTestUser(t, db, "owner@example.com")

	created, err := repo.Create(owner.ID, testVehicle(), nil)
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	updated, err := repo.Update(created.ID, owner.ID, models.VehiclePatch{})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if len(updated.Images) != 0 {
		t.Errorf("expected empty image list, got %v", updated.Images)
	}
}

func TestUpdate_EmptyImageListClearsSet(t *testing.T) {
	db := newTestDB(t)
	repo := NewVehicleRepository(db)
	owner := createTestUser(t, db, "owner@example.com")

	images := []models.Image{
		{Name: "front", URL: "https://example.com/front.jpg"},
		{Name: "side", URL: "https://example.com/side.jpg"},
	}
	created, err := repo.Create(owner.ID, testVehicle(), images)
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	updated, err := repo.Update(created.ID, owner.ID, models.VehiclePatch{
		Images: models.ImagePatch{Op: models.ImagesClear},
	})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if len(updated.Images) != 0 {
		t.Errorf("expected cleared image list, got %v", updated.Images)
	}

	got, err := repo.GetOne(created.ID, owner.ID)
	if err != nil {
		t.Fatalf("getOne: %v", err)
	}
	if len(got.Images) != 0 {
		t.Errorf("clear must persist, got %v", got.Images)
	}
}

func TestUpdate_ImageListReplacesSetEntirely(t *testing.T) {
	db := newTestDB(t)
	repo := NewVehicleRepository(db)
	owner := createTestUser(t, db, "owner@example.com")

	created, err := repo.Create(owner.ID, testVehicle(), []models.Image{
		{Name: "old", URL: "https://example.com/old.jpg"},
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	oldImageID := created.Images[0].ID

	replacement := []models.Image{
		{Name: "a", URL: "https://example.com/a.jpg"},
		{Name: "b", URL: "https://example.com/b.jpg"},
	}
	updated, err := repo.Update(created.ID, owner.ID, models.VehiclePatch{
		Images: models.ImagePatch{Op: models.ImagesReplace, Images: replacement},
	})
	if err != nil {
		t.Fatalf("update: %v", err)
	}

	want := imageSet(replacement)
	have := imageSet(updated.Images)
	if len(have) != 2 {
		t.Fatalf("expected 2 images, got %d", len(have))
	}
	for key := range want {
		if !have[key] {
			t.Errorf("missing replacement image %s", key)
		}
	}

	// The prior image row is gone, not orphaned.
	var count int64
	if err := db.Model(&models.Image{}).Where("id = ?", oldImageID).Count(&count).Error; err != nil {
		t.Fatalf("count: %v", err)
	}
	if count != 0 {
		t.Error("replaced image id must no longer be retrievable")
	}
}

func TestUpdate_OwnershipMismatchIsNotFound(t *testing.T) {
	db := newTestDB(t)
	repo := NewVehicleRepository(db)
	owner := createTestUser(t, db, "owner@example.com")
	stranger := createTestUser(t, db, "stranger@example.com")

	created, err := repo.Create(owner.ID, testVehicle(), nil)
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	brand := "Hijacked"
	_, err = repo.Update(created.ID, stranger.ID, models.VehiclePatch{Brand: &brand})
	if !errors.Is(err, ErrVehicleNotFound) {
		t.Fatalf("expected ErrVehicleNotFound, got %v", err)
	}

	// The vehicle is untouched.
	got, err := repo.GetOne(created.ID, owner.ID)
	if err != nil {
		t.Fatalf("getOne: %v", err)
	}
	if got.Brand != "Toyota" {
		t.Errorf("foreign update must not modify the vehicle, got brand %q", got.Brand)
	}
}

func TestList_PaginationIsStable(t *testing.T) {
	db := newTestDB(t)
	repo := NewVehicleRepository(db)
	owner := createTestUser(t, db, "owner@example.com")

	var ids []string
	for _, model := range []string{"First", "Second", "Third"} {
		v := testVehicle()
		v.Model = model
		created, err := repo.Create(owner.ID, v, nil)
		if err != nil {
			t.Fatalf("create %s: %v", model, err)
		}
		ids = append(ids, created.ID)
		time.Sleep(5 * time.Millisecond) // distinct created_at for stable ordering
	}

	page, total, err := repo.List(owner.ID, models.VehicleFilter{}, 2, 1)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if total != 3 {
		t.Errorf("expected total 3, got %d", total)
	}
	if len(page) != 1 {
		t.Fatalf("expected 1 row, got %d", len(page))
	}
	if page[0].ID != ids[1] {
		t.Errorf("expected the second vehicle on page 2 with limit 1, got %s", page[0].Model)
	}
}

func TestList_NeverLeaksOtherOwners(t *testing.T) {
	db := newTestDB(t)
	repo := NewVehicleRepository(db)
	owner := createTestUser(t, db, "owner@example.com")
	other := createTestUser(t, db, "other@example.com")

	if _, err := repo.Create(owner.ID, testVehicle(), nil); err != nil {
		t.Fatalf("create: %v", err)
	}
	if _, err := repo.Create(other.ID, testVehicle(), nil); err != nil {
		t.Fatalf("create: %v", err)
	}

	rows, total, err := repo.List(owner.ID, models.VehicleFilter{}, 1, 10)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if total != 1 || len(rows) != 1 {
		t.Fatalf("expected exactly the owner's vehicle, got total=%d rows=%d", total, len(rows))
	}
	if rows[0].UserID != owner.ID {
		t.Errorf("listed vehicle belongs to %s, not the requesting owner", rows[0].UserID)
	}
}

func TestList_Filters(t *testing.T) {
	db := newTestDB(t)
	repo := NewVehicleRepository(db)
	owner := createTestUser(t, db, "owner@example.com")

	specs := []struct {
		brand string
		model string
		year  int
	}{
		{"Toyota", "Corolla", 2020},
		{"Toyota", "Camry", 2018},
		{"Ford", "Fiesta", 2020},
	}
	for _, s := range specs {
		v := models.Vehicle{Brand: s.brand, Model: s.model, Year: s.year, Price: 10000}
		if _, err := repo.Create(owner.ID, v, nil); err != nil {
			t.Fatalf("create: %v", err)
		}
	}

	// Brand substring match.
	rows, total, err := repo.List(owner.ID, models.VehicleFilter{Brand: "Toyo"}, 1, 10)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if total != 2 || len(rows) != 2 {
		t.Errorf("brand filter: expected 2 matches, got %d", total)
	}

	// Year exact match combined with brand.
	rows, total, err = repo.List(owner.ID, models.VehicleFilter{Brand: "Toyota", Year: 2018}, 1, 10)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if total != 1 || rows[0].Model != "Camry" {
		t.Errorf("combined filter: expected only the Camry, got total=%d", total)
	}

	// Unmatched filter yields an empty page, not an error.
	_, total, err = repo.List(owner.ID, models.VehicleFilter{Model: "Mustang"}, 1, 10)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if total != 0 {
		t.Errorf("expected no matches, got %d", total)
	}
}

func TestList_FiltersAreCaseSensitive(t *testing.T) {
	db := newTestDB(t)
	repo := NewVehicleRepository(db)
	owner := createTestUser(t, db, "owner@example.com")

	v := models.Vehicle{Brand: "Toyota", Model: "Corolla", Year: 2020, Price: 10000}
	if _, err := repo.Create(owner.ID, v, nil); err != nil {
		t.Fatalf("create: %v", err)
	}

	// Lowercase input must not match the capitalized brand.
	_, total, err := repo.List(owner.ID, models.VehicleFilter{Brand: "toyo"}, 1, 10)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if total != 0 {
		t.Errorf("lowercase brand filter matched %d vehicle(s), expected none", total)
	}

	_, total, err = repo.List(owner.ID, models.VehicleFilter{Model: "corolla"}, 1, 10)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if total != 0 {
		t.Errorf("lowercase model filter matched %d vehicle(s), expected none", total)
	}

	// Matching case still works.
	_, total, err = repo.List(owner.ID, models.VehicleFilter{Brand: "Toyo"}, 1, 10)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if total != 1 {
		t.Errorf("matching-case brand filter: expected 1 match, got %d", total)
	}
}

func TestDelete_RemovesAggregate(t *testing.T) {
	db := newTestDB(t)
	repo := NewVehicleRepository(db)
	owner := createTestUser(t, db, "owner@example.com")

	created, err := repo.Create(owner.ID, testVehicle(), []models.Image{
		{Name: "front", URL: "https://example.com/front.jpg"},
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	deleted, err := repo.Delete(created.ID, owner.ID)
	if err != nil {
		t.Fatalf("delete: %v", err)
	}
	if deleted.Brand != "Toyota" || deleted.Model != "Corolla" {
		t.Errorf("confirmation should reference the deleted vehicle, got %+v", deleted)
	}

	if _, err := repo.GetOne(created.ID, owner.ID); !errors.Is(err, ErrVehicleNotFound) {
		t.Errorf("expected ErrVehicleNotFound after delete, got %v", err)
	}

	var count int64
	if err := db.Model(&models.Image{}).Where("vehicle_id = ?", created.ID).Count(&count).Error; err != nil {
		t.Fatalf("count: %v", err)
	}
	if count != 0 {
		t.Error("images must be deleted with their vehicle")
	}
}

func TestDelete_OwnershipMismatchIsNotFound(t *testing.T) {
	db := newTestDB(t)
	repo := NewVehicleRepository(db)
	owner := createTestUser(t, db, "owner@example.com")
	stranger := createTestUser(t, db, "stranger@example.com")

	created, err := repo.Create(owner.ID, testVehicle(), nil)
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	if _, err := repo.Delete(created.ID, stranger.ID); !errors.Is(err, ErrVehicleNotFound) {
		t.Fatalf("expected ErrVehicleNotFound, got %v", err)
	}

	if _, err := repo.GetOne(created.ID, owner.ID); err != nil {
		t.Errorf("vehicle must survive a foreign delete attempt: %v", err)
	}
}
