package plans

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/sheharaF/Eventia-backend/db"
	"github.com/sheharaF/Eventia-backend/globals"
	"github.com/sheharaF/Eventia-backend/models"

	"github.com/julienschmidt/httprouter"
	"github.com/stretchr/testify/assert"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/integration/mtest"
)

func statusRequest(status, userID string) *http.Request {
	req := httptest.NewRequest(http.MethodPut, "/api/event-plans/p1/status", strings.NewReader(`{"status":"`+status+`"}`))
	ctx := context.WithValue(req.Context(), globals.UserIDKey, userID)
	ctx = context.WithValue(ctx, globals.RoleKey, models.RoleUser)
	return req.WithContext(ctx)
}

func confirmedPlanDoc() bson.D {
	return bson.D{
		{Key: "planid", Value: "p1"},
		{Key: "userId", Value: "u1"},
		{Key: "status", Value: models.StatusConfirmed},
		{Key: "selectedVendors", Value: bson.A{}},
		{Key: "selectedPackages", Value: bson.A{}},
		{Key: "revision", Value: int64(5)},
	}
}

// Reverting a Confirmed booking to Planning while the user already has a
// Planning cart violates the one-cart-per-user unique index; the write comes
// back as a duplicate-key error and must read as a conflict, not a server
// failure.
func TestUpdateStatus_RevertBlockedByExistingCart(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))
	mt.Run("duplicate key on revert", func(mt *mtest.T) {
		old := db.EventPlansCollection
		db.EventPlansCollection = mt.Coll
		defer func() { db.EventPlansCollection = old }()

		mt.AddMockResponses(
			mtest.CreateCursorResponse(0, "eventia.eventplans", mtest.FirstBatch, confirmedPlanDoc()),
			mtest.CreateCommandErrorResponse(mtest.CommandError{
				Code:    11000,
				Message: "E11000 duplicate key error",
				Name:    "DuplicateKey",
			}),
		)

		rec := httptest.NewRecorder()
		UpdateStatus(rec, statusRequest(models.StatusPlanning, "u1"), httprouter.Params{{Key: "id", Value: "p1"}})

		assert.Equal(mt.T, http.StatusConflict, rec.Code)
		assert.Contains(mt.T, rec.Body.String(), "A planning cart already exists for this user")
	})
}

func TestUpdateStatus_ConcurrentWriteIs409(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))
	mt.Run("revision filter misses", func(mt *mtest.T) {
		old := db.EventPlansCollection
		db.EventPlansCollection = mt.Coll
		defer func() { db.EventPlansCollection = old }()

		mt.AddMockResponses(
			mtest.CreateCursorResponse(0, "eventia.eventplans", mtest.FirstBatch, confirmedPlanDoc()),
			mtest.CreateSuccessResponse(bson.E{Key: "value", Value: nil}),
		)

		rec := httptest.NewRecorder()
		UpdateStatus(rec, statusRequest(models.StatusCompleted, "u1"), httprouter.Params{{Key: "id", Value: "p1"}})

		assert.Equal(mt.T, http.StatusConflict, rec.Code)
		assert.Contains(mt.T, rec.Body.String(), "modified concurrently")
	})
}

func TestUpdateStatus_NonOwnerIsForbidden(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))
	mt.Run("other user", func(mt *mtest.T) {
		old := db.EventPlansCollection
		db.EventPlansCollection = mt.Coll
		defer func() { db.EventPlansCollection = old }()

		mt.AddMockResponses(mtest.CreateCursorResponse(0, "eventia.eventplans", mtest.FirstBatch, confirmedPlanDoc()))

		rec := httptest.NewRecorder()
		UpdateStatus(rec, statusRequest(models.StatusCancelled, "intruder"), httprouter.Params{{Key: "id", Value: "p1"}})

		assert.Equal(mt.T, http.StatusForbidden, rec.Code)
	})
}

func TestUpdateStatus_RejectsUnknownStatus(t *testing.T) {
	rec := httptest.NewRecorder()
	UpdateStatus(rec, statusRequest("Archived", "u1"), httprouter.Params{{Key: "id", Value: "p1"}})

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "Invalid status")
}
