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

// GetServices lists every service regardless of owner or active flag.
func GetServices(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	skip, limit, page := utils.ParsePagination(r, 20, 100)
	filter := bson.M{}
	if vendorID := r.URL.Query().Get("vendorId"); vendorID != "" {
		filter["vendorId"] = vendorID
	}
	if search := r.URL.Query().Get("search"); search != "" {
		filter["title"] = bson.M{"$regex": search, "$options": "i"}
	}

	total, err := db.ServicesCollection.CountDocuments(ctx, filter)
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to fetch services")
		return
	}
	opts := options.Find().SetSkip(skip).SetLimit(limit).SetSort(bson.D{{Key: "createdAt", Value: -1}})
	list, err := utils.FindAndDecode[models.Service](ctx, db.ServicesCollection, filter, opts)
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to fetch services")
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, map[string]any{
		"services":   list,
		"pagination": models.NewPagination(page, int(limit), total),
	})
}

// ToggleService flips a service's isActive flag without touching ownership.
func ToggleService(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
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

	res := db.ServicesCollection.FindOneAndUpdate(ctx,
		bson.M{"serviceid": service.ServiceID},
		bson.M{"$set": bson.M{"isActive": !service.IsActive, "updatedAt": time.Now()}},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	)
	if err := res.Decode(&service); err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to update service")
		return
	}

	message := "Service deactivated"
	if service.IsActive {
		message = "Service activated"
	}
	utils.RespondWithJSON(w, http.StatusOK, map[string]any{
		"message": message,
		"service": service,
	})
}

// GetPackages lists every package regardless of owner or active flag.
func GetPackages(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	skip, limit, page := utils.ParsePagination(r, 20, 100)
	filter := bson.M{}
	if vendorID := r.URL.Query().Get("vendorId"); vendorID != "" {
		filter["vendorId"] = vendorID
	}
	if search := r.URL.Query().Get("search"); search != "" {
		filter["title"] = bson.M{"$regex": search, "$options": "i"}
	}

	total, err := db.PackagesCollection.CountDocuments(ctx, filter)
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to fetch packages")
		return
	}
	opts := options.Find().SetSkip(skip).SetLimit(limit).SetSort(bson.D{{Key: "createdAt", Value: -1}})
	list, err := utils.FindAndDecode[models.Package](ctx, db.PackagesCollection, filter, opts)
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to fetch packages")
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, map[string]any{
		"packages":   list,
		"pagination": models.NewPagination(page, int(limit), total),
	})
}

// TogglePackage flips a package's isActive flag.
func TogglePackage(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	var pkg models.Package
	err := db.PackagesCollection.FindOne(ctx, bson.M{"packageid": ps.ByName("id")}).Decode(&pkg)
	if err == mongo.ErrNoDocuments {
		utils.RespondWithError(w, http.StatusNotFound, "Package not found")
		return
	}
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to fetch package")
		return
	}

	res := db.PackagesCollection.FindOneAndUpdate(ctx,
		bson.M{"packageid": pkg.PackageID},
		bson.M{"$set": bson.M{"isActive": !pkg.IsActive, "updatedAt": time.Now()}},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	)
	if err := res.Decode(&pkg); err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to update package")
		return
	}

	message := "Package deactivated"
	if pkg.IsActive {
		message = "Package activated"
	}
	utils.RespondWithJSON(w, http.StatusOK, map[string]any{
		"message": message,
		"package": pkg,
	})
}
