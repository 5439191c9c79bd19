package plans

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

// CreatePlan creates an event plan directly with metadata, in Planning status.
// The cart flow (find-or-create on first add) is the usual entry point; this
// exists for clients that plan the event before picking vendors.
func CreatePlan(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	var input struct {
		EventType         string          `json:"eventType"`
		Budget            float64         `json:"budget"`
		GuestCount        int             `json:"guestCount"`
		PreferredLocation models.Location `json:"preferredLocation"`
		EventDate         time.Time       `json:"eventDate"`
		Notes             string          `json:"notes"`
	}
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid JSON payload")
		return
	}
	if input.EventType != "" && !models.ValidEventType(input.EventType) {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid eventType. Allowed: Wedding, Birthday, Corporate, Anniversary, Other")
		return
	}

	now := time.Now()
	plan := models.EventPlan{
		PlanID:            utils.GetUUID(),
		UserID:            utils.GetUserIDFromRequest(r),
		Status:            models.StatusPlanning,
		EventType:         input.EventType,
		Budget:            input.Budget,
		GuestCount:        input.GuestCount,
		PreferredLocation: input.PreferredLocation,
		EventDate:         input.EventDate,
		Notes:             input.Notes,
		SelectedVendors:   []models.ServiceLine{},
		SelectedPackages:  []models.PackageLine{},
		CreatedAt:         now,
		UpdatedAt:         now,
	}

	if _, err := db.EventPlansCollection.InsertOne(ctx, plan); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			utils.RespondWithError(w, http.StatusConflict, "A planning cart already exists for this user")
			return
		}
		slog.Error("create plan failed", "user", plan.UserID, "err", err)
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to create event plan")
		return
	}

	utils.RespondWithJSON(w, http.StatusCreated, plan)
}

// MyPlans returns every plan owned by the caller, newest first.
func MyPlans(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	userID := utils.GetUserIDFromRequest(r)
	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})
	plansList, err := utils.FindAndDecode[models.EventPlan](ctx, db.EventPlansCollection, bson.M{"userId": userID}, opts)
	if err != nil {
		slog.Error("list plans failed", "user", userID, "err", err)
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to fetch event plans")
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, plansList)
}

// GetPlan returns a single plan; only the owner or an admin may read it.
func GetPlan(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	var plan models.EventPlan
	err := db.EventPlansCollection.FindOne(ctx, bson.M{"planid": ps.ByName("id")}).Decode(&plan)
	if err == mongo.ErrNoDocuments {
		utils.RespondWithError(w, http.StatusNotFound, "Event plan not found")
		return
	}
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to fetch event plan")
		return
	}

	if plan.UserID != utils.GetUserIDFromRequest(r) && utils.GetRoleFromRequest(r) != models.RoleAdmin {
		utils.RespondWithError(w, http.StatusForbidden, "Access denied")
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, plan)
}

// UpdateStatus moves a plan between Planning/Confirmed/Completed/Cancelled.
// Only membership in the status enum and ownership are checked; there is no
// transition table beyond that.
func UpdateStatus(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	var input struct {
		Status string `json:"status"`
	}
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid JSON payload")
		return
	}
	if !models.ValidPlanStatus(input.Status) {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid status")
		return
	}

	var plan models.EventPlan
	err := db.EventPlansCollection.FindOne(ctx, bson.M{"planid": ps.ByName("id")}).Decode(&plan)
	if err == mongo.ErrNoDocuments {
		utils.RespondWithError(w, http.StatusNotFound, "Event plan not found")
		return
	}
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to fetch event plan")
		return
	}

	if plan.UserID != utils.GetUserIDFromRequest(r) && utils.GetRoleFromRequest(r) != models.RoleAdmin {
		utils.RespondWithError(w, http.StatusForbidden, "Access denied")
		return
	}

	res := db.EventPlansCollection.FindOneAndUpdate(ctx,
		bson.M{"planid": plan.PlanID, "revision": plan.Revision},
		bson.M{
			"$set": bson.M{"status": input.Status, "updatedAt": time.Now()},
			"$inc": bson.M{"revision": 1},
		},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	)
	if err := res.Decode(&plan); err != nil {
		if err == mongo.ErrNoDocuments {
			utils.RespondWithError(w, http.StatusConflict, "Plan was modified concurrently, please retry")
			return
		}
		// Moving a booking back to Planning trips the one-Planning-cart-per-user
		// index when a cart already exists.
		if mongo.IsDuplicateKeyError(err) {
			utils.RespondWithError(w, http.StatusConflict, "A planning cart already exists for this user")
			return
		}
		slog.Error("update plan status failed", "plan", plan.PlanID, "err", err)
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to update status")
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, plan)
}

// Recommendations suggests active services and packages matching the plan's
// event type, budget, guest count and city, from approved vendors only.
func Recommendations(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	var plan models.EventPlan
	err := db.EventPlansCollection.FindOne(ctx, bson.M{"planid": ps.ByName("id")}).Decode(&plan)
	if err == mongo.ErrNoDocuments {
		utils.RespondWithError(w, http.StatusNotFound, "Event plan not found")
		return
	}
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to fetch event plan")
		return
	}

	if plan.UserID != utils.GetUserIDFromRequest(r) {
		utils.RespondWithError(w, http.StatusForbidden, "Access denied")
		return
	}

	serviceFilter := bson.M{
		"eventType":      plan.EventType,
		"isActive":       true,
		"priceRange.max": bson.M{"$lte": plan.Budget},
	}
	if plan.PreferredLocation.City != "" {
		serviceFilter["location.city"] = bson.M{"$regex": plan.PreferredLocation.City, "$options": "i"}
	}
	if plan.GuestCount > 0 {
		serviceFilter["capacity"] = bson.M{"$gte": plan.GuestCount}
	}

	services, err := utils.FindAndDecode[models.Service](ctx, db.ServicesCollection, serviceFilter, options.Find().SetLimit(10))
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to fetch recommendations")
		return
	}
	services = filterApprovedVendors(ctx, services)

	packageFilter := bson.M{
		"eventType": plan.EventType,
		"isActive":  true,
		"price":     bson.M{"$lte": plan.Budget},
	}
	if plan.PreferredLocation.City != "" {
		packageFilter["location.city"] = bson.M{"$regex": plan.PreferredLocation.City, "$options": "i"}
	}

	packages, err := utils.FindAndDecode[models.Package](ctx, db.PackagesCollection, packageFilter, options.Find().SetLimit(10))
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to fetch recommendations")
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, map[string]any{
		"vendors":  services,
		"packages": packages,
	})
}

func filterApprovedVendors(ctx context.Context, services []models.Service) []models.Service {
	approved := make([]models.Service, 0, len(services))
	for _, s := range services {
		var vendor models.User
		if err := db.UserCollection.FindOne(ctx, bson.M{"userid": s.VendorID}).Decode(&vendor); err != nil {
			continue
		}
		if vendor.IsApproved {
			approved = append(approved, s)
		}
	}
	return approved
}
