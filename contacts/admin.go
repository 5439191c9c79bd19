package contacts

import (
	"context"
	"encoding/json"
	"net/http"
	"slices"
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

// AdminList pages through submissions with status and search filters.
func AdminList(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	skip, limit, page := utils.ParsePagination(r, 20, 100)
	filter := bson.M{}
	if status := r.URL.Query().Get("status"); status != "" {
		if !slices.Contains(models.ContactStatuses, status) {
			utils.RespondWithError(w, http.StatusBadRequest, "Invalid status filter")
			return
		}
		filter["status"] = status
	}
	if search := r.URL.Query().Get("search"); search != "" {
		filter["$or"] = []bson.M{
			{"name": bson.M{"$regex": search, "$options": "i"}},
			{"email": bson.M{"$regex": search, "$options": "i"}},
			{"subject": bson.M{"$regex": search, "$options": "i"}},
		}
	}

	total, err := db.ContactCollection.CountDocuments(ctx, filter)
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to fetch messages")
		return
	}
	opts := options.Find().SetSkip(skip).SetLimit(limit).SetSort(bson.D{{Key: "createdAt", Value: -1}})
	list, err := utils.FindAndDecode[models.Contact](ctx, db.ContactCollection, filter, opts)
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to fetch messages")
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, map[string]any{
		"contacts":   list,
		"pagination": models.NewPagination(page, int(limit), total),
	})
}

// AdminGet returns one submission and moves it out of New on first read.
func AdminGet(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	var contact models.Contact
	err := db.ContactCollection.FindOne(ctx, bson.M{"contactid": ps.ByName("id")}).Decode(&contact)
	if err == mongo.ErrNoDocuments {
		utils.RespondWithError(w, http.StatusNotFound, "Message not found")
		return
	}
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to fetch message")
		return
	}

	if contact.Status == models.ContactNew {
		res := db.ContactCollection.FindOneAndUpdate(ctx,
			bson.M{"contactid": contact.ContactID, "status": models.ContactNew},
			bson.M{"$set": bson.M{"status": models.ContactInProgress, "updatedAt": time.Now()}},
			options.FindOneAndUpdate().SetReturnDocument(options.After),
		)
		if err := res.Decode(&contact); err != nil && err != mongo.ErrNoDocuments {
			utils.RespondWithError(w, http.StatusInternalServerError, "Failed to fetch message")
			return
		}
	}

	utils.RespondWithJSON(w, http.StatusOK, contact)
}

// UpdateStatus moves a submission through the triage workflow.
func UpdateStatus(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	var input struct {
		Status string `json:"status"`
	}
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil || !slices.Contains(models.ContactStatuses, input.Status) {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid status. Allowed: New, In Progress, Resolved, Closed")
		return
	}

	var contact models.Contact
	res := db.ContactCollection.FindOneAndUpdate(ctx,
		bson.M{"contactid": ps.ByName("id")},
		bson.M{"$set": bson.M{"status": input.Status, "updatedAt": time.Now()}},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	)
	if err := res.Decode(&contact); err != nil {
		if err == mongo.ErrNoDocuments {
			utils.RespondWithError(w, http.StatusNotFound, "Message not found")
			return
		}
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to update message")
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, map[string]any{
		"message": "Status updated",
		"contact": contact,
	})
}

// UpdateNotes replaces the admin's working notes on a submission.
func UpdateNotes(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	var input struct {
		Notes string `json:"notes"`
	}
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if len(strings.TrimSpace(input.Notes)) > 2000 {
		utils.RespondWithError(w, http.StatusBadRequest, "notes must be 2000 characters or less")
		return
	}

	var contact models.Contact
	res := db.ContactCollection.FindOneAndUpdate(ctx,
		bson.M{"contactid": ps.ByName("id")},
		bson.M{"$set": bson.M{"adminNotes": input.Notes, "updatedAt": time.Now()}},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	)
	if err := res.Decode(&contact); err != nil {
		if err == mongo.ErrNoDocuments {
			utils.RespondWithError(w, http.StatusNotFound, "Message not found")
			return
		}
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to update message")
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, map[string]any{
		"message": "Notes updated",
		"contact": contact,
	})
}

// Delete removes a submission permanently.
func Delete(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	res, err := db.ContactCollection.DeleteOne(ctx, bson.M{"contactid": ps.ByName("id")})
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to delete message")
		return
	}
	if res.DeletedCount == 0 {
		utils.RespondWithError(w, http.StatusNotFound, "Message not found")
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, map[string]string{"message": "Message deleted successfully"})
}

// Stats returns submission counts per status for the admin inbox.
func Stats(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	cursor, err := db.ContactCollection.Aggregate(ctx, []bson.M{
		{"$group": bson.M{"_id": "$status", "count": bson.M{"$sum": 1}}},
	})
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to compute stats")
		return
	}
	defer cursor.Close(ctx)

	var rows []struct {
		Status string `bson:"_id"`
		Count  int64  `bson:"count"`
	}
	if err := cursor.All(ctx, &rows); err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to compute stats")
		return
	}

	counts := map[string]int64{}
	for _, s := range models.ContactStatuses {
		counts[s] = 0
	}
	var total int64
	for _, row := range rows {
		counts[row.Status] = row.Count
		total += row.Count
	}

	utils.RespondWithJSON(w, http.StatusOK, map[string]any{
		"byStatus": counts,
		"total":    total,
	})
}
