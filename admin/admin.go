package admin

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

// Dashboard aggregates the counts the admin landing page shows.
func Dashboard(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	totalUsers, _ := db.UserCollection.CountDocuments(ctx, bson.M{"role": models.RoleUser})
	totalVendors, _ := db.UserCollection.CountDocuments(ctx, bson.M{"role": models.RoleVendor})
	pendingVendors, _ := db.UserCollection.CountDocuments(ctx, bson.M{"role": models.RoleVendor, "isApproved": false})
	approvedVendors, _ := db.UserCollection.CountDocuments(ctx, bson.M{"role": models.RoleVendor, "isApproved": true})
	totalServices, _ := db.ServicesCollection.CountDocuments(ctx, bson.M{})
	totalEventPlans, _ := db.EventPlansCollection.CountDocuments(ctx, bson.M{})
	newContacts, _ := db.ContactCollection.CountDocuments(ctx, bson.M{"status": models.ContactNew})
	pendingTestimonials, _ := db.TestimonialCollection.CountDocuments(ctx, bson.M{"isApproved": false})

	recent := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}}).SetLimit(5)
	recentVendors, err := utils.FindAndDecode[models.User](ctx, db.UserCollection, bson.M{"role": models.RoleVendor}, recent)
	if err != nil {
		slog.Error("admin dashboard vendors failed", "err", err)
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to load dashboard")
		return
	}
	safeVendors := make([]models.SafeUser, 0, len(recentVendors))
	for _, v := range recentVendors {
		safeVendors = append(safeVendors, v.Safe())
	}

	recentPlans, err := utils.FindAndDecode[models.EventPlan](ctx, db.EventPlansCollection, bson.M{}, recent)
	if err != nil {
		slog.Error("admin dashboard plans failed", "err", err)
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to load dashboard")
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, map[string]any{
		"users": map[string]any{
			"total": totalUsers,
			"vendors": map[string]any{
				"total":    totalVendors,
				"pending":  pendingVendors,
				"approved": approvedVendors,
			},
		},
		"services": map[string]any{
			"total":      totalServices,
			"eventPlans": totalEventPlans,
		},
		"adminTasks": map[string]any{
			"newContacts":         newContacts,
			"pendingTestimonials": pendingTestimonials,
		},
		"recentActivity": map[string]any{
			"vendors":    safeVendors,
			"eventPlans": recentPlans,
		},
	})
}

// GetVendors lists vendor accounts with approval-status filter and search.
func GetVendors(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	skip, limit, page := utils.ParsePagination(r, 20, 100)
	filter := bson.M{"role": models.RoleVendor}

	switch r.URL.Query().Get("status") {
	case "pending":
		filter["isApproved"] = false
	case "approved":
		filter["isApproved"] = true
	}
	if search := r.URL.Query().Get("search"); search != "" {
		filter["$or"] = []bson.M{
			{"name": bson.M{"$regex": search, "$options": "i"}},
			{"email": bson.M{"$regex": search, "$options": "i"}},
		}
	}

	total, err := db.UserCollection.CountDocuments(ctx, filter)
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to fetch vendors")
		return
	}

	opts := options.Find().SetSkip(skip).SetLimit(limit).SetSort(bson.D{{Key: "createdAt", Value: -1}})
	vendors, err := utils.FindAndDecode[models.User](ctx, db.UserCollection, filter, opts)
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to fetch vendors")
		return
	}
	safe := make([]models.SafeUser, 0, len(vendors))
	for _, v := range vendors {
		safe = append(safe, v.Safe())
	}

	utils.RespondWithJSON(w, http.StatusOK, map[string]any{
		"vendors":    safe,
		"pagination": models.NewPagination(page, int(limit), total),
	})
}

// GetVendor returns one vendor with their services and referencing plans.
func GetVendor(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	vendorID := ps.ByName("id")
	var vendor models.User
	err := db.UserCollection.FindOne(ctx, bson.M{"userid": vendorID}).Decode(&vendor)
	if err == mongo.ErrNoDocuments || (err == nil && vendor.Role != models.RoleVendor) {
		utils.RespondWithError(w, http.StatusNotFound, "Vendor not found")
		return
	}
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to fetch vendor")
		return
	}

	servicesList, err := utils.FindAndDecode[models.Service](ctx, db.ServicesCollection, bson.M{"vendorId": vendorID})
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to fetch vendor")
		return
	}
	plans, err := utils.FindAndDecode[models.EventPlan](ctx, db.EventPlansCollection, bson.M{"selectedVendors.vendorId": vendorID})
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to fetch vendor")
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, map[string]any{
		"vendor":     vendor.Safe(),
		"services":   servicesList,
		"eventPlans": plans,
	})
}

// ApproveVendor flips a vendor's approval flag. The new role claim only shows
// up in tokens issued after the change.
func ApproveVendor(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	var input struct {
		Approve *bool  `json:"approve"`
		Reason  string `json:"reason"`
	}
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil || input.Approve == nil {
		utils.RespondWithError(w, http.StatusBadRequest, "'approve' boolean is required")
		return
	}

	var vendor models.User
	err := db.UserCollection.FindOne(ctx, bson.M{"userid": ps.ByName("id")}).Decode(&vendor)
	if err == mongo.ErrNoDocuments || (err == nil && vendor.Role != models.RoleVendor) {
		utils.RespondWithError(w, http.StatusNotFound, "Vendor not found")
		return
	}
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to fetch vendor")
		return
	}

	update := bson.M{"isApproved": *input.Approve, "updatedAt": time.Now()}
	if input.Reason != "" {
		update["approvalReason"] = input.Reason
	}
	if *input.Approve {
		update["approvedAt"] = time.Now()
	}

	res := db.UserCollection.FindOneAndUpdate(ctx,
		bson.M{"userid": vendor.UserID},
		bson.M{"$set": update},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	)
	if err := res.Decode(&vendor); err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to update vendor")
		return
	}

	message := "Vendor rejected"
	if *input.Approve {
		message = "Vendor approved"
	}
	utils.RespondWithJSON(w, http.StatusOK, map[string]any{
		"message": message,
		"vendor":  vendor.Safe(),
	})
}

// DeleteVendor removes a vendor account. Deletion is blocked while the vendor
// still has listings or appears in any event plan.
func DeleteVendor(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	vendorID := ps.ByName("id")
	var vendor models.User
	err := db.UserCollection.FindOne(ctx, bson.M{"userid": vendorID}).Decode(&vendor)
	if err == mongo.ErrNoDocuments || (err == nil && vendor.Role != models.RoleVendor) {
		utils.RespondWithError(w, http.StatusNotFound, "Vendor not found")
		return
	}
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to fetch vendor")
		return
	}

	serviceCount, err := db.ServicesCollection.CountDocuments(ctx, bson.M{"vendorId": vendorID})
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to delete vendor")
		return
	}
	packageCount, err := db.PackagesCollection.CountDocuments(ctx, bson.M{"vendorId": vendorID})
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to delete vendor")
		return
	}
	planCount, err := db.EventPlansCollection.CountDocuments(ctx, bson.M{"$or": []bson.M{
		{"selectedVendors.vendorId": vendorID},
		{"selectedPackages.vendorId": vendorID},
	}})
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to delete vendor")
		return
	}

	if serviceCount > 0 || packageCount > 0 || planCount > 0 {
		utils.RespondWithError(w, http.StatusBadRequest,
			"Cannot delete vendor with listings or bookings. Deactivate listings and resolve bookings first.")
		return
	}

	if _, err := db.UserCollection.DeleteOne(ctx, bson.M{"userid": vendorID}); err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to delete vendor")
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, map[string]string{"message": "Vendor deleted successfully"})
}
