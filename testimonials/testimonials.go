package testimonials

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"github.com/sheharaF/Eventia-backend/db"
	"github.com/sheharaF/Eventia-backend/models"
	"github.com/sheharaF/Eventia-backend/utils"

	"github.com/julienschmidt/httprouter"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// GetTestimonials returns approved testimonials, newest first.
func GetTestimonials(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	skip, limit, page := utils.ParsePagination(r, 10, 50)
	filter := bson.M{"isApproved": true}
	if eventType := r.URL.Query().Get("eventType"); eventType != "" {
		filter["eventType"] = bson.M{"$regex": "^" + eventType + "$", "$options": "i"}
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

// GetTestimonial returns a single approved testimonial by id.
func GetTestimonial(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	var t models.Testimonial
	err := db.TestimonialCollection.FindOne(ctx, bson.M{
		"testimonialid": ps.ByName("id"),
		"isApproved":    true,
	}).Decode(&t)
	if err == mongo.ErrNoDocuments {
		utils.RespondWithError(w, http.StatusNotFound, "Testimonial not found")
		return
	}
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to fetch testimonial")
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, t)
}

// GetVendorTestimonials returns approved testimonials about one vendor.
func GetVendorTestimonials(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	list, err := utils.FindAndDecode[models.Testimonial](ctx, db.TestimonialCollection,
		bson.M{"vendorId": ps.ByName("id"), "isApproved": true},
		options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}}),
	)
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to fetch testimonials")
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, map[string]any{"testimonials": list})
}

// CreateTestimonial accepts a testimonial from a signed-in customer. It
// goes live only after admin approval.
func CreateTestimonial(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	var input struct {
		CustomerName string `json:"customerName"`
		CustomerRole string `json:"customerRole"`
		EventType    string `json:"eventType"`
		Rating       int    `json:"rating"`
		Testimonial  string `json:"testimonial"`
		VendorID     string `json:"vendorId"`
		Image        string `json:"image"`
	}
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	input.CustomerName = strings.TrimSpace(input.CustomerName)
	input.Testimonial = strings.TrimSpace(input.Testimonial)
	switch {
	case input.CustomerName == "" || input.Testimonial == "":
		utils.RespondWithError(w, http.StatusBadRequest, "customerName and testimonial are required")
		return
	case input.Rating < 1 || input.Rating > 5:
		utils.RespondWithError(w, http.StatusBadRequest, "rating must be between 1 and 5")
		return
	case len(input.Testimonial) > 500:
		utils.RespondWithError(w, http.StatusBadRequest, "testimonial must be 500 characters or less")
		return
	case input.EventType != "" && !models.ValidEventType(input.EventType):
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid eventType. Allowed: Wedding, Birthday, Corporate, Anniversary, Other")
		return
	}

	if input.VendorID != "" {
		count, err := db.UserCollection.CountDocuments(ctx, bson.M{"userid": input.VendorID, "role": models.RoleVendor})
		if err != nil {
			utils.RespondWithError(w, http.StatusInternalServerError, "Failed to submit testimonial")
			return
		}
		if count == 0 {
			utils.RespondWithError(w, http.StatusBadRequest, "Vendor not found")
			return
		}
	}

	now := time.Now()
	t := models.Testimonial{
		TestimonialID: "t" + utils.GenerateName(10),
		CustomerName:  input.CustomerName,
		CustomerRole:  input.CustomerRole,
		EventType:     input.EventType,
		Rating:        input.Rating,
		Testimonial:   input.Testimonial,
		VendorID:      input.VendorID,
		Image:         input.Image,
		IsApproved:    false,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	if _, err := db.TestimonialCollection.InsertOne(ctx, t); err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to submit testimonial")
		return
	}

	utils.RespondWithJSON(w, http.StatusCreated, map[string]any{
		"message":     "Testimonial submitted for review",
		"testimonial": t,
	})
}
