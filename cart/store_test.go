package cart

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
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/integration/mtest"
)

// The Planning status guard lives in the store's write filters, so these run
// against mongo-driver's mocked deployment.

func authedRequest(method, target, body, userID string) *http.Request {
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	ctx := context.WithValue(req.Context(), globals.UserIDKey, userID)
	ctx = context.WithValue(ctx, globals.RoleKey, models.RoleUser)
	return req.WithContext(ctx)
}

func planningCartDoc(userID string, withLines bool) bson.D {
	lines := bson.A{}
	if withLines {
		lines = bson.A{bson.D{
			{Key: "serviceId", Value: "s1"},
			{Key: "vendorId", Value: "v1"},
			{Key: "price", Value: 100.0},
			{Key: "quantity", Value: 2},
		}}
	}
	return bson.D{
		{Key: "planid", Value: "p1"},
		{Key: "userId", Value: userID},
		{Key: "status", Value: models.StatusPlanning},
		{Key: "selectedVendors", Value: lines},
		{Key: "selectedPackages", Value: bson.A{}},
		{Key: "revision", Value: int64(3)},
	}
}

func TestSavePlanning_StaleRevisionConflicts(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))
	mt.Run("replace matches nothing", func(mt *mtest.T) {
		old := db.EventPlansCollection
		db.EventPlansCollection = mt.Coll
		defer func() { db.EventPlansCollection = old }()

		mt.AddMockResponses(mtest.CreateSuccessResponse(
			bson.E{Key: "n", Value: 0},
			bson.E{Key: "nModified", Value: 0},
		))

		plan := models.EventPlan{PlanID: "p1", Status: models.StatusPlanning, Revision: 3}
		err := savePlanning(context.Background(), &plan)

		require.Equal(mt.T, errConflict, err)
		assert.Equal(mt.T, int64(3), plan.Revision, "revision must roll back on conflict")
	})
}

func TestSavePlanning_BumpsRevision(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))
	mt.Run("replace matches", func(mt *mtest.T) {
		old := db.EventPlansCollection
		db.EventPlansCollection = mt.Coll
		defer func() { db.EventPlansCollection = old }()

		mt.AddMockResponses(mtest.CreateSuccessResponse(
			bson.E{Key: "n", Value: 1},
			bson.E{Key: "nModified", Value: 1},
		))

		plan := models.EventPlan{PlanID: "p1", Status: models.StatusPlanning, Revision: 3}
		err := savePlanning(context.Background(), &plan)

		require.NoError(mt.T, err)
		assert.Equal(mt.T, int64(4), plan.Revision)
	})
}

// After checkout the plan is Confirmed and no longer matches the Planning
// read filter, so cart mutations see no cart at all.
func TestRemoveService_ConfirmedBookingIsNotACart(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))
	mt.Run("no planning document", func(mt *mtest.T) {
		old := db.EventPlansCollection
		db.EventPlansCollection = mt.Coll
		defer func() { db.EventPlansCollection = old }()

		mt.AddMockResponses(mtest.CreateCursorResponse(0, "eventia.eventplans", mtest.FirstBatch))

		rec := httptest.NewRecorder()
		req := authedRequest(http.MethodDelete, "/api/user/cart/services/s1?vendorId=v1", "", "u1")
		RemoveService(rec, req, httprouter.Params{{Key: "serviceId", Value: "s1"}})

		assert.Equal(mt.T, http.StatusNotFound, rec.Code)
		assert.Contains(mt.T, rec.Body.String(), "Cart not found")
	})
}

func TestAddService_RetryExhaustedIsConflict(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))
	mt.Run("every attempt loses the revision race", func(mt *mtest.T) {
		oldPlans, oldServices := db.EventPlansCollection, db.ServicesCollection
		db.EventPlansCollection = mt.Coll
		db.ServicesCollection = mt.Coll
		defer func() { db.EventPlansCollection, db.ServicesCollection = oldPlans, oldServices }()

		serviceDoc := bson.D{
			{Key: "serviceid", Value: "s1"},
			{Key: "vendorId", Value: "v1"},
			{Key: "isActive", Value: true},
		}
		mt.AddMockResponses(mtest.CreateCursorResponse(0, "eventia.services", mtest.FirstBatch, serviceDoc))
		for i := 0; i < maxWriteAttempts; i++ {
			mt.AddMockResponses(
				mtest.CreateCursorResponse(0, "eventia.eventplans", mtest.FirstBatch, planningCartDoc("u1", true)),
				mtest.CreateSuccessResponse(bson.E{Key: "n", Value: 0}, bson.E{Key: "nModified", Value: 0}),
			)
		}

		rec := httptest.NewRecorder()
		body := `{"serviceId":"s1","vendorId":"v1","price":100}`
		req := authedRequest(http.MethodPost, "/api/user/cart/services", body, "u1")
		AddService(rec, req, nil)

		assert.Equal(mt.T, http.StatusConflict, rec.Code)
		assert.Contains(mt.T, rec.Body.String(), "modified concurrently")
	})
}

func checkoutBody() string {
	return `{"eventType":"Wedding","budget":50000,"guestCount":120,` +
		`"preferredLocation":{"city":"Colombo","district":"Colombo"},"eventDate":"2026-12-20"}`
}

func TestCheckout_NoCartIs404(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))
	mt.Run("no planning document", func(mt *mtest.T) {
		old := db.EventPlansCollection
		db.EventPlansCollection = mt.Coll
		defer func() { db.EventPlansCollection = old }()

		mt.AddMockResponses(mtest.CreateCursorResponse(0, "eventia.eventplans", mtest.FirstBatch))

		rec := httptest.NewRecorder()
		Checkout(rec, authedRequest(http.MethodPost, "/api/user/cart/checkout", checkoutBody(), "u1"), nil)

		assert.Equal(mt.T, http.StatusNotFound, rec.Code)
		assert.Contains(mt.T, rec.Body.String(), "Cart is empty")
	})
}

func TestCheckout_ZeroLinesIs400(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))
	mt.Run("planning document with no lines", func(mt *mtest.T) {
		old := db.EventPlansCollection
		db.EventPlansCollection = mt.Coll
		defer func() { db.EventPlansCollection = old }()

		mt.AddMockResponses(mtest.CreateCursorResponse(0, "eventia.eventplans", mtest.FirstBatch, planningCartDoc("u1", false)))

		rec := httptest.NewRecorder()
		Checkout(rec, authedRequest(http.MethodPost, "/api/user/cart/checkout", checkoutBody(), "u1"), nil)

		assert.Equal(mt.T, http.StatusBadRequest, rec.Code)
		assert.Contains(mt.T, rec.Body.String(), "Cart is empty")
	})
}

func TestCheckout_ConfirmsPlanningCart(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))
	mt.Run("lines present and revision matches", func(mt *mtest.T) {
		old := db.EventPlansCollection
		db.EventPlansCollection = mt.Coll
		defer func() { db.EventPlansCollection = old }()

		mt.AddMockResponses(
			mtest.CreateCursorResponse(0, "eventia.eventplans", mtest.FirstBatch, planningCartDoc("u1", true)),
			mtest.CreateSuccessResponse(bson.E{Key: "n", Value: 1}, bson.E{Key: "nModified", Value: 1}),
		)

		rec := httptest.NewRecorder()
		Checkout(rec, authedRequest(http.MethodPost, "/api/user/cart/checkout", checkoutBody(), "u1"), nil)

		require.Equal(mt.T, http.StatusOK, rec.Code)
		assert.Contains(mt.T, rec.Body.String(), "Booking confirmed successfully!")
		assert.Contains(mt.T, rec.Body.String(), `"status":"Confirmed"`)
		assert.Contains(mt.T, rec.Body.String(), `"totalCost":200`)
	})
}

func TestCheckout_ConcurrentWriteIs409(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))
	mt.Run("replace misses", func(mt *mtest.T) {
		old := db.EventPlansCollection
		db.EventPlansCollection = mt.Coll
		defer func() { db.EventPlansCollection = old }()

		mt.AddMockResponses(
			mtest.CreateCursorResponse(0, "eventia.eventplans", mtest.FirstBatch, planningCartDoc("u1", true)),
			mtest.CreateSuccessResponse(bson.E{Key: "n", Value: 0}, bson.E{Key: "nModified", Value: 0}),
		)

		rec := httptest.NewRecorder()
		Checkout(rec, authedRequest(http.MethodPost, "/api/user/cart/checkout", checkoutBody(), "u1"), nil)

		assert.Equal(mt.T, http.StatusConflict, rec.Code)
	})
}
