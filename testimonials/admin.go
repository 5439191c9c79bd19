package testimonials

import (
	"context"
	"encoding/json"
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

// AdminList shows testimonials in any approval state for moderation.
func AdminList(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	skip, limit, page := utils.ParsePagination(r, 20, 100)
	filter := bson.M{}
	switch r.URL.Query().Get("status") {
	case "pending":
		filter["isApproved"] = false
	case "approved":
		filter["isApproved"] = true
	}
	if vendorID := r.URL.Query().Get("vendorId"); vendorID != "" {
		filter["vendorId"] = vendorID
	}

	total, err := db.TestimonialCollection.CountDocuments(ctx, filter)
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to fetch testimonials")
		return
	}
	opts := options.Find().SetSkip(skip).SetLimit(limit).SetSort(bson.D{{Key: "createdAt", Value: -1}})
	list, err := utils.FindAndDecode[models.Testimonial](ctx, db.TestimonialCollection, filter, opts)
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to fetch testimonials")
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, map[string]any{
		"testimonials": list,
		"pagination":   models.NewPagination(page, int(limit), total),
	})
}

// Approve sets a testimonial's approval flag.
func Approve(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	var input struct {
		Approve *bool `json:"approve"`
	}
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil || input.Approve == nil {
		utils.RespondWithError(w, http.StatusBadRequest, "'approve' boolean is required")
		return
	}

	var t models.Testimonial
	res := db.TestimonialCollection.FindOneAndUpdate(ctx,
		bson.M{"testimonialid": ps.ByName("id")},
		bson.M{"$set": bson.M{"isApproved": *input.Approve, "updatedAt": time.Now()}},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	)
	if err := res.Decode(&t); err != nil {
		if err == mongo.ErrNoDocuments {
			utils.RespondWithError(w, http.StatusNotFound, "Testimonial not found")
			return
		}
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to update testimonial")
		return
	}

	message := "Testimonial hidden"
	if *input.Approve {
		message = "Testimonial approved"
	}
	utils.RespondWithJSON(w, http.StatusOK, map[string]any{
		"message":     message,
		"testimonial": t,
	})
}

// Delete removes a testimonial permanently.
func Delete(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	res, err := db.TestimonialCollection.DeleteOne(ctx, bson.M{"testimonialid": ps.ByName("id")})
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to delete testimonial")
		return
	}
	if res.DeletedCount == 0 {
		utils.RespondWithError(w, http.StatusNotFound, "Testimonial not found")
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, map[string]string{"message": "Testimonial deleted successfully"})
}
