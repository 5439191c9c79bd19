package cart

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/sheharaF/Eventia-backend/db"
	"github.com/sheharaF/Eventia-backend/models"
	"github.com/sheharaF/Eventia-backend/utils"

	"github.com/julienschmidt/httprouter"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// GetBookings lists the user's confirmed/completed/cancelled plans, newest
// first, with pagination. ?status= narrows to a single booking status.
func GetBookings(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	userID := utils.GetUserIDFromRequest(r)
	skip, limit, page := utils.ParsePagination(r, 10, 100)

	filter := bson.M{
		"userId": userID,
		"status": bson.M{"$in": models.BookingStatuses},
	}
	if status := r.URL.Query().Get("status"); status != "" {
		if !models.ValidPlanStatus(status) || status == models.StatusPlanning {
			utils.RespondWithError(w, http.StatusBadRequest, "Invalid status filter")
			return
		}
		filter["status"] = status
	}

	total, err := db.EventPlansCollection.CountDocuments(ctx, filter)
	if err != nil {
		slog.Error("count bookings failed", "user", userID, "err", err)
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to fetch bookings")
		return
	}

	opts := options.Find().
		SetSkip(skip).
		SetLimit(limit).
		SetSort(bson.D{{Key: "createdAt", Value: -1}})
	bookings, err := utils.FindAndDecode[models.EventPlan](ctx, db.EventPlansCollection, filter, opts)
	if err != nil {
		slog.Error("find bookings failed", "user", userID, "err", err)
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to fetch bookings")
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, map[string]any{
		"bookings":   bookings,
		"pagination": models.NewPagination(page, int(limit), total),
	})
}
