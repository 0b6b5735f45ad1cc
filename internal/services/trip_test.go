package services

import (
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/ziyaarah/backend/internal/groupcode"
	"github.com/ziyaarah/backend/internal/models"
	"gorm.io/gorm"
)

func newTripService(db *gorm.DB) *TripService {
	return NewTripService(db, NewAccessService(db), groupcode.NewRegistry(db))
}

func TestTripService_Create(t *testing.T) {
	db := setupServiceTestDB(t)
	service := newTripService(db)
	owner := seedUser(t, db, "owner@test.com")

	trip, err := service.Create(owner.ID, CreateTripInput{
		Name:      "Hajj 2025",
		StartDate: "2025-06-01",
		EndDate:   "2025-06-20",
	})
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}

	if !groupcode.Valid(trip.GroupCode) {
		t.Errorf("group code %q does not match the expected shape", trip.GroupCode)
	}
	if trip.CreatedBy != owner.ID {
		t.Errorf("expected created_by %s, got %s", owner.ID, trip.CreatedBy)
	}

	// The creator's owner membership lands in the same transaction.
	var membership models.TripMembership
	err = db.First(&membership, "trip_id = ? AND user_id = ?", trip.ID, owner.ID).Error
	if err != nil {
		t.Fatalf("expected an owner membership: %v", err)
	}
	if membership.Role != models.RoleOwner {
		t.Errorf("expected owner role, got %s", membership.Role)
	}
}

func TestTripService_List(t *testing.T) {
	db := setupServiceTestDB(t)
	service := newTripService(db)
	owner := seedUser(t, db, "owner@test.com")
	other := seedUser(t, db, "other@test.com")

	mine := seedTrip(t, db, owner.ID)
	seedTrip(t, db, other.ID)

	trips, err := service.List(owner.ID)
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(trips) != 1 {
		t.Fatalf("expected 1 trip, got %d", len(trips))
	}
	if trips[0].ID != mine.ID {
		t.Errorf("expected trip %s, got %s", mine.ID, trips[0].ID)
	}
}

func TestTripService_Update(t *testing.T) {
	db := setupServiceTestDB(t)
	service := newTripService(db)
	owner := seedUser(t, db, "owner@test.com")
	member := seedUser(t, db, "member@test.com")
	trip := seedTrip(t, db, owner.ID)
	addMemberDirect(t, db, trip.ID, member.ID)

	name := "Umrah Spring"
	updated, err := service.Update(trip.ID, owner.ID, TripUpdate{Name: &name})
	if err != nil {
		t.Fatalf("update failed: %v", err)
	}
	if updated.Name != name {
		t.Errorf("expected name %q, got %q", name, updated.Name)
	}
	if updated.StartDate != trip.StartDate {
		t.Errorf("untouched field changed: %q != %q", updated.StartDate, trip.StartDate)
	}

	if _, err := service.Update(trip.ID, member.ID, TripUpdate{Name: &name}); !errors.Is(err, ErrNotAuthorized) {
		t.Errorf("expected ErrNotAuthorized for plain member, got %v", err)
	}
}

func TestTripService_GetDetail(t *testing.T) {
	db := setupServiceTestDB(t)
	access := NewAccessService(db)
	service := newTripService(db)
	owner := seedUser(t, db, "owner@test.com")
	stranger := seedUser(t, db, "stranger@test.com")
	trip := seedTrip(t, db, owner.ID)

	checkpoints := NewCheckpointService(db, access)
	if _, err := checkpoints.Create(trip.ID, owner.ID, CreateCheckpointInput{Title: "Visa", Type: "document"}); err != nil {
		t.Fatalf("failed creating checkpoint: %v", err)
	}
	packing := NewPackingService(db, access)
	category, err := packing.CreateCategory(trip.ID, owner.ID, CreateCategoryInput{Title: "Clothing"})
	if err != nil {
		t.Fatalf("failed creating category: %v", err)
	}
	if _, err := packing.CreateItem(category.ID, owner.ID, CreateItemInput{Name: "Ihram"}); err != nil {
		t.Fatalf("failed creating item: %v", err)
	}

	detail, err := service.GetDetail(trip.ID, owner.ID)
	if err != nil {
		t.Fatalf("detail failed: %v", err)
	}
	if len(detail.Members) != 1 {
		t.Errorf("expected 1 member, got %d", len(detail.Members))
	}
	if len(detail.Checkpoints) != 1 {
		t.Errorf("expected 1 checkpoint, got %d", len(detail.Checkpoints))
	}
	if len(detail.Packing) != 1 || len(detail.Packing[0].Items) != 1 {
		t.Errorf("expected 1 category with 1 item, got %+v", detail.Packing)
	}

	if _, err := service.GetDetail(trip.ID, stranger.ID); !errors.Is(err, ErrNotAMember) {
		t.Errorf("expected ErrNotAMember, got %v", err)
	}
	if _, err := service.GetDetail(uuid.New(), owner.ID); !errors.Is(err, ErrTripNotFound) {
		t.Errorf("expected ErrTripNotFound, got %v", err)
	}
}

func TestTripService_DeleteCascades(t *testing.T) {
	db := setupServiceTestDB(t)
	access := NewAccessService(db)
	service := newTripService(db)
	owner := seedUser(t, db, "owner@test.com")
	member := seedUser(t, db, "member@test.com")
	trip := seedTrip(t, db, owner.ID)
	addMemberDirect(t, db, trip.ID, member.ID)

	// An unrelated trip with its own data must survive the cascade.
	otherTrip := seedTrip(t, db, member.ID)
	otherCheckpoints := NewCheckpointService(db, access)
	if _, err := otherCheckpoints.Create(otherTrip.ID, member.ID, CreateCheckpointInput{Title: "Flights", Type: "booking"}); err != nil {
		t.Fatalf("failed creating unrelated checkpoint: %v", err)
	}

	checkpoints := NewCheckpointService(db, access)
	if _, err := checkpoints.Create(trip.ID, owner.ID, CreateCheckpointInput{Title: "Visa", Type: "document"}); err != nil {
		t.Fatalf("failed creating checkpoint: %v", err)
	}

	packing := NewPackingService(db, access)
	category, err := packing.CreateCategory(trip.ID, owner.ID, CreateCategoryInput{Title: "Clothing"})
	if err != nil {
		t.Fatalf("failed creating category: %v", err)
	}
	if _, err := packing.CreateItem(category.ID, owner.ID, CreateItemInput{Name: "Ihram"}); err != nil {
		t.Fatalf("failed creating item: %v", err)
	}

	rituals := NewRitualService(db, access)
	ritual, err := rituals.Create(trip.ID, owner.ID, CreateRitualInput{Title: "Tawaf"})
	if err != nil {
		t.Fatalf("failed creating ritual: %v", err)
	}
	if _, err := rituals.CreateStep(ritual.ID, owner.ID, CreateStepInput{Title: "First circuit"}); err != nil {
		t.Fatalf("failed creating step: %v", err)
	}

	stages := NewStageService(db, access)
	if _, err := stages.Create(trip.ID, owner.ID, CreateStageInput{Title: "Makkah"}); err != nil {
		t.Fatalf("failed creating stage: %v", err)
	}

	t.Run("members may not delete", func(t *testing.T) {
		if err := service.Delete(trip.ID, member.ID); !errors.Is(err, ErrNotAuthorized) {
			t.Fatalf("expected ErrNotAuthorized, got %v", err)
		}
	})

	if err := service.Delete(trip.ID, owner.ID); err != nil {
		t.Fatalf("delete failed: %v", err)
	}

	countWhere := func(model interface{}, query string, args ...interface{}) int64 {
		var count int64
		if err := db.Model(model).Where(query, args...).Count(&count).Error; err != nil {
			t.Fatalf("count failed: %v", err)
		}
		return count
	}

	if n := countWhere(&models.Trip{}, "id = ?", trip.ID); n != 0 {
		t.Errorf("trip row survived the cascade")
	}
	if n := countWhere(&models.TripMembership{}, "trip_id = ?", trip.ID); n != 0 {
		t.Errorf("memberships survived the cascade: %d", n)
	}
	if n := countWhere(&models.Checkpoint{}, "trip_id = ?", trip.ID); n != 0 {
		t.Errorf("checkpoints survived the cascade: %d", n)
	}
	if n := countWhere(&models.PackingCategory{}, "trip_id = ?", trip.ID); n != 0 {
		t.Errorf("packing categories survived the cascade: %d", n)
	}
	if n := countWhere(&models.PackingItem{}, "category_id = ?", category.ID); n != 0 {
		t.Errorf("packing items survived the cascade: %d", n)
	}
	if n := countWhere(&models.Ritual{}, "trip_id = ?", trip.ID); n != 0 {
		t.Errorf("rituals survived the cascade: %d", n)
	}
	if n := countWhere(&models.RitualStep{}, "ritual_id = ?", ritual.ID); n != 0 {
		t.Errorf("ritual steps survived the cascade: %d", n)
	}
	if n := countWhere(&models.TripStage{}, "trip_id = ?", trip.ID); n != 0 {
		t.Errorf("stages survived the cascade: %d", n)
	}

	if n := countWhere(&models.Trip{}, "id = ?", otherTrip.ID); n != 1 {
		t.Errorf("unrelated trip was deleted")
	}
	if n := countWhere(&models.Checkpoint{}, "trip_id = ?", otherTrip.ID); n != 1 {
		t.Errorf("unrelated checkpoint was deleted")
	}
}
