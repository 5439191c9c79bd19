package services

import (
	"context"
	"log/slog"
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

// GetServices is the public vendor-service browse endpoint with filtering and
// pagination. Only active listings are returned.
func GetServices(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	q := r.URL.Query()
	skip, limit, page := utils.ParsePagination(r, 20, 100)

	filter := bson.M{"isActive": true}

	if eventType := q.Get("eventType"); eventType != "" {
		filter["eventType"] = bson.M{"$regex": eventType, "$options": "i"}
	}

	if categories := q.Get("serviceCategory"); categories != "" {
		parts := strings.Split(categories, ",")
		patterns := make([]bson.M, 0, len(parts))
		for _, c := range parts {
			c = strings.TrimSpace(c)
			if c == "" {
				continue
			}
			patterns = append(patterns, bson.M{"serviceCategory": bson.M{"$regex": c, "$options": "i"}})
		}
		if len(patterns) > 0 {
			filter["$or"] = patterns
		}
	}

	priceFilter := bson.M{}
	if min := q.Get("minPrice"); min != "" {
		priceFilter["$gte"] = utils.ParseFloat(min)
	}
	if max := q.Get("maxPrice"); max != "" {
		priceFilter["$lte"] = utils.ParseFloat(max)
	}
	if len(priceFilter) > 0 {
		filter["priceRange.min"] = priceFilter
	}

	if location := q.Get("location"); location != "" {
		filter["location.city"] = bson.M{"$regex": location, "$options": "i"}
	}

	total, err := db.ServicesCollection.CountDocuments(ctx, filter)
	if err != nil {
		slog.Error("count services failed", "err", err)
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to search services")
		return
	}

	opts := options.Find().SetSkip(skip).SetLimit(limit).SetSort(bson.D{{Key: "createdAt", Value: -1}})
	list, err := utils.FindAndDecode[models.Service](ctx, db.ServicesCollection, filter, opts)
	if err != nil {
		slog.Error("find services failed", "err", err)
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to search services")
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, map[string]any{
		"services":   list,
		"pagination": models.NewPagination(page, int(limit), total),
	})
}

func GetService(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	var service models.Service
	err := db.ServicesCollection.FindOne(ctx, bson.M{"serviceid": ps.ByName("id")}).Decode(&service)
	if err == mongo.ErrNoDocuments {
		utils.RespondWithError(w, http.StatusNotFound, "Service not found")
		return
	}
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to fetch service")
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, service)
}
