package admin

import (
	"context"
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

// GetUsers lists customer accounts with optional name/email search.
func GetUsers(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	skip, limit, page := utils.ParsePagination(r, 20, 100)
	filter := bson.M{"role": models.RoleUser}
	if search := r.URL.Query().Get("search"); search != "" {
		filter["$or"] = []bson.M{
			{"name": bson.M{"$regex": search, "$options": "i"}},
			{"email": bson.M{"$regex": search, "$options": "i"}},
		}
	}

	total, err := db.UserCollection.CountDocuments(ctx, filter)
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to fetch users")
		return
	}
	opts := options.Find().SetSkip(skip).SetLimit(limit).SetSort(bson.D{{Key: "createdAt", Value: -1}})
	users, err := utils.FindAndDecode[models.User](ctx, db.UserCollection, filter, opts)
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to fetch users")
		return
	}
	safe := make([]models.SafeUser, 0, len(users))
	for _, u := range users {
		safe = append(safe, u.Safe())
	}

	utils.RespondWithJSON(w, http.StatusOK, map[string]any{
		"users":      safe,
		"pagination": models.NewPagination(page, int(limit), total),
	})
}

// DeleteUser removes a customer account unless they own active plans.
func DeleteUser(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	userID := ps.ByName("id")
	var user models.User
	err := db.UserCollection.FindOne(ctx, bson.M{"userid": userID}).Decode(&user)
	if err == mongo.ErrNoDocuments || (err == nil && user.Role != models.RoleUser) {
		utils.RespondWithError(w, http.StatusNotFound, "User not found")
		return
	}
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to fetch user")
		return
	}

	activePlans, err := db.EventPlansCollection.CountDocuments(ctx, bson.M{
		"userId": userID,
		"status": bson.M{"$in": []string{models.StatusPlanning, models.StatusConfirmed}},
	})
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to delete user")
		return
	}
	if activePlans > 0 {
		utils.RespondWithError(w, http.StatusBadRequest,
			"Cannot delete user with active event plans. Cancel or complete them first.")
		return
	}

	if _, err := db.UserCollection.DeleteOne(ctx, bson.M{"userid": userID}); err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to delete user")
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, map[string]string{"message": "User deleted successfully"})
}

// GetEventPlans lists every plan in the system with status and user filters.
func GetEventPlans(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	skip, limit, page := utils.ParsePagination(r, 20, 100)
	filter := bson.M{}
	if status := r.URL.Query().Get("status"); status != "" {
		if !models.ValidPlanStatus(status) {
			utils.RespondWithError(w, http.StatusBadRequest, "Invalid status filter")
			return
		}
		filter["status"] = status
	}
	if userID := r.URL.Query().Get("userId"); userID != "" {
		filter["userId"] = userID
	}

	total, err := db.EventPlansCollection.CountDocuments(ctx, filter)
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to fetch event plans")
		return
	}
	opts := options.Find().SetSkip(skip).SetLimit(limit).SetSort(bson.D{{Key: "createdAt", Value: -1}})
	plans, err := utils.FindAndDecode[models.EventPlan](ctx, db.EventPlansCollection, filter, opts)
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to fetch event plans")
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, map[string]any{
		"eventPlans": plans,
		"pagination": models.NewPagination(page, int(limit), total),
	})
}
