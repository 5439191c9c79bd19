package vendors

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

// GetServices lists the vendor's own services with search and pagination.
func GetServices(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	vendorID := utils.GetUserIDFromRequest(r)
	skip, limit, page := utils.ParsePagination(r, 10, 100)

	filter := bson.M{"vendorId": vendorID}
	if search := r.URL.Query().Get("search"); search != "" {
		filter["$or"] = []bson.M{
			{"title": bson.M{"$regex": search, "$options": "i"}},
			{"description": bson.M{"$regex": search, "$options": "i"}},
			{"eventType": bson.M{"$regex": search, "$options": "i"}},
			{"serviceCategory": bson.M{"$regex": search, "$options": "i"}},
		}
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

// GetPackages lists the vendor's own packages with search and pagination.
func GetPackages(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	vendorID := utils.GetUserIDFromRequest(r)
	skip, limit, page := utils.ParsePagination(r, 10, 100)

	filter := bson.M{"vendorId": vendorID}
	if search := r.URL.Query().Get("search"); search != "" {
		filter["$or"] = []bson.M{
			{"title": bson.M{"$regex": search, "$options": "i"}},
			{"description": bson.M{"$regex": search, "$options": "i"}},
			{"eventType": bson.M{"$regex": search, "$options": "i"}},
		}
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

// UpdateService applies vendor edits to an owned service.
func UpdateService(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
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

	if service.VendorID != utils.GetUserIDFromRequest(r) {
		utils.RespondWithError(w, http.StatusForbidden, "Access denied. You can only update your own services")
		return
	}

	var input map[string]any
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid JSON payload")
		return
	}

	update := bson.M{"updatedAt": time.Now()}
	for _, field := range []string{"title", "description", "eventType", "serviceCategory", "priceRange", "location", "capacity", "images", "availableDates", "isActive"} {
		if v, ok := input[field]; ok {
			update[field] = v
		}
	}

	res := db.ServicesCollection.FindOneAndUpdate(ctx,
		bson.M{"serviceid": service.ServiceID},
		bson.M{"$set": update},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	)
	if err := res.Decode(&service); err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to update service")
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, map[string]any{
		"message": "Service updated successfully",
		"service": service,
	})
}

// UpdatePackage applies vendor edits to an owned package.
func UpdatePackage(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
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

	if pkg.VendorID != utils.GetUserIDFromRequest(r) {
		utils.RespondWithError(w, http.StatusForbidden, "Access denied. You can only update your own packages")
		return
	}

	var input map[string]any
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid JSON payload")
		return
	}

	update := bson.M{"updatedAt": time.Now()}
	for _, field := range []string{"title", "description", "eventType", "price", "services", "location", "capacity", "images", "availableDates", "isActive"} {
		if v, ok := input[field]; ok {
			update[field] = v
		}
	}

	res := db.PackagesCollection.FindOneAndUpdate(ctx,
		bson.M{"packageid": pkg.PackageID},
		bson.M{"$set": update},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	)
	if err := res.Decode(&pkg); err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to update package")
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, map[string]any{
		"message": "Package updated successfully",
		"package": pkg,
	})
}

// DeleteService removes an owned service.
func DeleteService(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
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

	if service.VendorID != utils.GetUserIDFromRequest(r) {
		utils.RespondWithError(w, http.StatusForbidden, "Access denied. You can only delete your own services")
		return
	}

	if _, err := db.ServicesCollection.DeleteOne(ctx, bson.M{"serviceid": service.ServiceID}); err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to delete service")
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, map[string]string{"message": "Service deleted successfully"})
}

// DeletePackage removes an owned package.
func DeletePackage(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
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

	if pkg.VendorID != utils.GetUserIDFromRequest(r) {
		utils.RespondWithError(w, http.StatusForbidden, "Access denied. You can only delete your own packages")
		return
	}

	if _, err := db.PackagesCollection.DeleteOne(ctx, bson.M{"packageid": pkg.PackageID}); err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to delete package")
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, map[string]string{"message": "Package deleted successfully"})
}
