package packages

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

// GetPackages is the public package browse endpoint. Only active packages.
func GetPackages(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	q := r.URL.Query()
	skip, limit, page := utils.ParsePagination(r, 20, 100)

	filter := bson.M{"isActive": true}

	if eventType := q.Get("eventType"); eventType != "" {
		filter["eventType"] = bson.M{"$regex": eventType, "$options": "i"}
	}

	priceFilter := bson.M{}
	if min := q.Get("minPrice"); min != "" {
		priceFilter["$gte"] = utils.ParseFloat(min)
	}
	if max := q.Get("maxPrice"); max != "" {
		priceFilter["$lte"] = utils.ParseFloat(max)
	}
	if len(priceFilter) > 0 {
		filter["price"] = priceFilter
	}

	if location := q.Get("location"); location != "" {
		filter["location.city"] = bson.M{"$regex": location, "$options": "i"}
	}

	total, err := db.PackagesCollection.CountDocuments(ctx, filter)
	if err != nil {
		slog.Error("count packages failed", "err", err)
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to search packages")
		return
	}

	opts := options.Find().SetSkip(skip).SetLimit(limit).SetSort(bson.D{{Key: "createdAt", Value: -1}})
	list, err := utils.FindAndDecode[models.Package](ctx, db.PackagesCollection, filter, opts)
	if err != nil {
		slog.Error("find packages failed", "err", err)
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to search packages")
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, map[string]any{
		"packages":   list,
		"pagination": models.NewPagination(page, int(limit), total),
	})
}

// GetPackagesByEventType lists active packages for one event type.
func GetPackagesByEventType(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	filter := bson.M{
		"eventType": bson.M{"$regex": "^" + ps.ByName("eventType") + "$", "$options": "i"},
		"isActive":  true,
	}

	list, err := utils.FindAndDecode[models.Package](ctx, db.PackagesCollection, filter,
		options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}}))
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to fetch packages")
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, list)
}
