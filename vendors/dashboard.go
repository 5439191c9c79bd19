package vendors

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/sheharaF/Eventia-backend/db"
	"github.com/sheharaF/Eventia-backend/models"
	"github.com/sheharaF/Eventia-backend/utils"

	"github.com/julienschmidt/httprouter"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Dashboard summarizes the vendor's listings, earnings over confirmed and
// completed plans, and booking counts by status.
func Dashboard(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	vendorID := utils.GetUserIDFromRequest(r)
	recent := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}}).SetLimit(5)

	servicesList, err := utils.FindAndDecode[models.Service](ctx, db.ServicesCollection, bson.M{"vendorId": vendorID}, recent)
	if err != nil {
		slog.Error("vendor dashboard services failed", "vendor", vendorID, "err", err)
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to load dashboard")
		return
	}
	serviceCount, _ := db.ServicesCollection.CountDocuments(ctx, bson.M{"vendorId": vendorID})

	packagesList, err := utils.FindAndDecode[models.Package](ctx, db.PackagesCollection, bson.M{"vendorId": vendorID}, recent)
	if err != nil {
		slog.Error("vendor dashboard packages failed", "vendor", vendorID, "err", err)
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to load dashboard")
		return
	}
	packageCount, _ := db.PackagesCollection.CountDocuments(ctx, bson.M{"vendorId": vendorID})

	planFilter := bson.M{"$or": []bson.M{
		{"selectedVendors.vendorId": vendorID},
		{"selectedPackages.vendorId": vendorID},
	}}
	plans, err := utils.FindAndDecode[models.EventPlan](ctx, db.EventPlansCollection, planFilter,
		options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}}))
	if err != nil {
		slog.Error("vendor dashboard plans failed", "vendor", vendorID, "err", err)
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to load dashboard")
		return
	}

	var earnings float64
	counts := map[string]int{}
	for _, plan := range plans {
		counts[plan.Status]++
		if plan.Status != models.StatusConfirmed && plan.Status != models.StatusCompleted {
			continue
		}
		earnings += vendorShare(plan, vendorID)
	}

	recentActivity := plans
	if len(recentActivity) > 10 {
		recentActivity = recentActivity[:10]
	}

	utils.RespondWithJSON(w, http.StatusOK, map[string]any{
		"services": map[string]any{"total": serviceCount, "list": servicesList},
		"packages": map[string]any{"total": packageCount, "list": packagesList},
		"earnings": map[string]any{"total": earnings},
		"bookings": map[string]any{
			"pending":   counts[models.StatusPlanning],
			"approved":  counts[models.StatusConfirmed],
			"completed": counts[models.StatusCompleted],
			"total":     len(plans),
		},
		"recentActivity": recentActivity,
	})
}

// vendorShare sums this vendor's line totals inside one plan.
func vendorShare(plan models.EventPlan, vendorID string) float64 {
	var sum float64
	for _, l := range plan.SelectedVendors {
		if l.VendorID == vendorID {
			q := l.Quantity
			if q < 1 {
				q = 1
			}
			sum += l.Price * float64(q)
		}
	}
	for _, l := range plan.SelectedPackages {
		if l.VendorID == vendorID {
			q := l.Quantity
			if q < 1 {
				q = 1
			}
			sum += l.Price * float64(q)
		}
	}
	return sum
}

// GetBookings lists plans that reference this vendor, filterable by status.
func GetBookings(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	vendorID := utils.GetUserIDFromRequest(r)
	skip, limit, page := utils.ParsePagination(r, 10, 100)

	filter := bson.M{"$or": []bson.M{
		{"selectedVendors.vendorId": vendorID},
		{"selectedPackages.vendorId": vendorID},
	}}
	if status := r.URL.Query().Get("status"); status != "" {
		if !models.ValidPlanStatus(status) {
			utils.RespondWithError(w, http.StatusBadRequest, "Invalid status filter")
			return
		}
		filter["status"] = status
	}

	total, err := db.EventPlansCollection.CountDocuments(ctx, filter)
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to fetch bookings")
		return
	}

	opts := options.Find().SetSkip(skip).SetLimit(limit).SetSort(bson.D{{Key: "createdAt", Value: -1}})
	bookings, err := utils.FindAndDecode[models.EventPlan](ctx, db.EventPlansCollection, filter, opts)
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to fetch bookings")
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, map[string]any{
		"bookings":   bookings,
		"pagination": models.NewPagination(page, int(limit), total),
	})
}

// UpdateProfile lets a vendor change contact and registration details.
func UpdateProfile(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	var input struct {
		Name                 *string `json:"name"`
		Phone                *string `json:"phone"`
		Address              *string `json:"address"`
		BusinessRegistration *string `json:"businessRegistration"`
	}
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid JSON payload")
		return
	}

	update := bson.M{}
	if input.Name != nil && *input.Name != "" {
		update["name"] = *input.Name
	}
	if input.Phone != nil {
		update["phone"] = *input.Phone
	}
	if input.Address != nil {
		update["address"] = *input.Address
	}
	if input.BusinessRegistration != nil && *input.BusinessRegistration != "" {
		update["businessRegistration"] = *input.BusinessRegistration
	}
	if len(update) == 0 {
		utils.RespondWithError(w, http.StatusBadRequest, "No valid fields provided for update")
		return
	}
	update["updatedAt"] = time.Now()

	var user models.User
	res := db.UserCollection.FindOneAndUpdate(ctx,
		bson.M{"userid": utils.GetUserIDFromRequest(r)},
		bson.M{"$set": update},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	)
	if err := res.Decode(&user); err != nil {
		if err == mongo.ErrNoDocuments {
			utils.RespondWithError(w, http.StatusNotFound, "User not found")
			return
		}
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to update profile")
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, map[string]any{
		"message": "Profile updated successfully",
		"user":    user.Safe(),
	})
}
