package locations

import (
	"context"
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

// GetDistricts lists every district with its cities, sorted by name.
func GetDistricts(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	list, err := utils.FindAndDecode[models.District](ctx, db.LocationCollection, bson.M{},
		options.Find().SetSort(bson.D{{Key: "district", Value: 1}}))
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to fetch locations")
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, map[string]any{"districts": list})
}

// GetDistrict returns one district, matched case-insensitively.
func GetDistrict(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	var district models.District
	err := db.LocationCollection.FindOne(ctx, bson.M{
		"district": bson.M{"$regex": "^" + ps.ByName("district") + "$", "$options": "i"},
	}).Decode(&district)
	if err == mongo.ErrNoDocuments {
		utils.RespondWithError(w, http.StatusNotFound, "District not found")
		return
	}
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to fetch location")
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, district)
}

// Search matches the query against district and city names.
func Search(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	query := strings.TrimSpace(r.URL.Query().Get("q"))
	if query == "" {
		utils.RespondWithError(w, http.StatusBadRequest, "Query parameter 'q' is required")
		return
	}

	list, err := utils.FindAndDecode[models.District](ctx, db.LocationCollection, bson.M{
		"$or": []bson.M{
			{"district": bson.M{"$regex": query, "$options": "i"}},
			{"cities": bson.M{"$regex": query, "$options": "i"}},
		},
	})
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to search locations")
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, map[string]any{
		"query":   query,
		"results": list,
	})
}
