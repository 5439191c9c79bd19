package admin

import (
	"context"
	"net/http"
	"runtime"
	"time"

	"github.com/sheharaF/Eventia-backend/db"
	"github.com/sheharaF/Eventia-backend/models"
	"github.com/sheharaF/Eventia-backend/rdx"
	"github.com/sheharaF/Eventia-backend/utils"

	"github.com/julienschmidt/httprouter"
	"go.mongodb.org/mongo-driver/bson"
)

type statusCount struct {
	Status string `bson:"_id" json:"status"`
	Count  int64  `bson:"count" json:"count"`
}

type typeCount struct {
	EventType string `bson:"_id" json:"eventType"`
	Count     int64  `bson:"count" json:"count"`
}

// Stats aggregates platform-wide numbers for the admin analytics view.
func Stats(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	plansByStatus, err := aggregateCounts[statusCount](ctx, "$status")
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to compute stats")
		return
	}
	plansByType, err := aggregateCounts[typeCount](ctx, "$eventType")
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to compute stats")
		return
	}

	// Booked revenue only counts carts that made it through checkout.
	revenueCursor, err := db.EventPlansCollection.Aggregate(ctx, []bson.M{
		{"$match": bson.M{"status": bson.M{"$in": []string{models.StatusConfirmed, models.StatusCompleted}}}},
		{"$group": bson.M{"_id": nil, "total": bson.M{"$sum": "$totalCost"}, "count": bson.M{"$sum": 1}}},
	})
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to compute stats")
		return
	}
	defer revenueCursor.Close(ctx)

	var revenue struct {
		Total float64 `bson:"total"`
		Count int64   `bson:"count"`
	}
	if revenueCursor.Next(ctx) {
		if err := revenueCursor.Decode(&revenue); err != nil {
			utils.RespondWithError(w, http.StatusInternalServerError, "Failed to compute stats")
			return
		}
	}

	period := r.URL.Query().Get("period")
	since, label := periodStart(period)
	sinceFilter := bson.M{"createdAt": bson.M{"$gte": since}}
	newUsers, _ := db.UserCollection.CountDocuments(ctx, sinceFilter)
	newPlans, _ := db.EventPlansCollection.CountDocuments(ctx, sinceFilter)
	newServices, _ := db.ServicesCollection.CountDocuments(ctx, sinceFilter)

	utils.RespondWithJSON(w, http.StatusOK, map[string]any{
		"eventPlans": map[string]any{
			"byStatus":    plansByStatus,
			"byEventType": plansByType,
		},
		"revenue": map[string]any{
			"bookedTotal":  revenue.Total,
			"bookingCount": revenue.Count,
		},
		"period": map[string]any{
			"name":          label,
			"since":         since,
			"newUsers":      newUsers,
			"newEventPlans": newPlans,
			"newServices":   newServices,
		},
	})
}

func periodStart(period string) (time.Time, string) {
	now := time.Now()
	switch period {
	case "week":
		return now.AddDate(0, 0, -7), "week"
	case "year":
		return now.AddDate(-1, 0, 0), "year"
	default:
		return now.AddDate(0, -1, 0), "month"
	}
}

func aggregateCounts[T any](ctx context.Context, field string) ([]T, error) {
	cursor, err := db.EventPlansCollection.Aggregate(ctx, []bson.M{
		{"$group": bson.M{"_id": field, "count": bson.M{"$sum": 1}}},
		{"$sort": bson.M{"count": -1}},
	})
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	results := []T{}
	if err := cursor.All(ctx, &results); err != nil {
		return nil, err
	}
	return results, nil
}

// SystemHealth pings the backing stores and reports per-dependency status.
func SystemHealth(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	mongoStatus := "ok"
	if err := db.Client.Ping(ctx, nil); err != nil {
		mongoStatus = "unreachable"
	}
	redisStatus := "ok"
	if err := rdx.Conn.Ping(ctx).Err(); err != nil {
		redisStatus = "unreachable"
	}

	var mem runtime.MemStats
	runtime.ReadMemStats(&mem)

	status := http.StatusOK
	if mongoStatus != "ok" || redisStatus != "ok" {
		status = http.StatusServiceUnavailable
	}
	utils.RespondWithJSON(w, status, map[string]any{
		"mongo":  mongoStatus,
		"redis":  redisStatus,
		"uptime": time.Since(startedAt).Round(time.Second).String(),
		"runtime": map[string]any{
			"goVersion":  runtime.Version(),
			"goroutines": runtime.NumGoroutine(),
			"allocMB":    mem.Alloc / 1024 / 1024,
		},
		"time": time.Now().UTC(),
	})
}

var startedAt = time.Now()
