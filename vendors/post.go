package vendors

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/sheharaF/Eventia-backend/db"
	"github.com/sheharaF/Eventia-backend/models"
	"github.com/sheharaF/Eventia-backend/utils"

	"github.com/julienschmidt/httprouter"
)

// listingInput is the combined posting form. Type selects the variant;
// kind-specific required fields are validated before anything is built.
type listingInput struct {
	Type            string             `json:"type"` // "service" or "package"
	Title           string             `json:"title"`
	Description     string             `json:"description"`
	EventType       string             `json:"eventType"`
	ServiceCategory string             `json:"serviceCategory"` // services only
	PriceRange      *models.PriceRange `json:"priceRange"`      // services only
	Price           float64            `json:"price"`    // packages only
	Services        []string           `json:"services"` // packages only
	Location        models.Location    `json:"location"`
	Capacity        int                `json:"capacity"`
	AvailableDates  []time.Time        `json:"availableDates"`
	Images          []string           `json:"images"`
	IsActive        *bool              `json:"isActive"`
}

// PostListing creates either a service or a package for the vendor.
func PostListing(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	var input listingInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid JSON payload")
		return
	}

	if input.Type == "" || input.Title == "" || input.Description == "" || input.EventType == "" {
		utils.RespondWithError(w, http.StatusBadRequest, "type, title, description, and eventType are required")
		return
	}
	if !models.ValidEventType(input.EventType) {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid eventType. Allowed: Wedding, Birthday, Corporate, Anniversary, Other")
		return
	}

	vendorID := utils.GetUserIDFromRequest(r)
	active := true
	if input.IsActive != nil {
		active = *input.IsActive
	}
	now := time.Now()

	switch input.Type {
	case "service":
		if input.ServiceCategory == "" {
			utils.RespondWithError(w, http.StatusBadRequest, "serviceCategory is required for services")
			return
		}
		if input.PriceRange == nil || input.PriceRange.Min <= 0 || input.PriceRange.Max < input.PriceRange.Min {
			utils.RespondWithError(w, http.StatusBadRequest, "priceRange.min and priceRange.max are required for services")
			return
		}

		service := models.Service{
			ServiceID:       utils.GetUUID(),
			VendorID:        vendorID,
			Title:           input.Title,
			Description:     input.Description,
			EventType:       input.EventType,
			ServiceCategory: input.ServiceCategory,
			PriceRange:      *input.PriceRange,
			Location:        input.Location,
			Capacity:        input.Capacity,
			Images:          input.Images,
			AvailableDates:  input.AvailableDates,
			IsActive:        active,
			CreatedAt:       now,
			UpdatedAt:       now,
		}
		if _, err := db.ServicesCollection.InsertOne(ctx, service); err != nil {
			slog.Error("post service failed", "vendor", vendorID, "err", err)
			utils.RespondWithError(w, http.StatusInternalServerError, "Failed to post service/package")
			return
		}
		utils.RespondWithJSON(w, http.StatusCreated, map[string]any{
			"message": "Service posted successfully",
			"service": service,
		})

	case "package":
		if input.Price <= 0 {
			utils.RespondWithError(w, http.StatusBadRequest, "price is required for packages")
			return
		}
		if len(input.Services) == 0 {
			utils.RespondWithError(w, http.StatusBadRequest, "services array is required for packages")
			return
		}

		pkg := models.Package{
			PackageID:      utils.GetUUID(),
			VendorID:       vendorID,
			Title:          input.Title,
			Description:    input.Description,
			EventType:      input.EventType,
			Price:          input.Price,
			Services:       input.Services,
			Location:       input.Location,
			Capacity:       input.Capacity,
			Images:         input.Images,
			AvailableDates: input.AvailableDates,
			IsActive:       active,
			CreatedAt:      now,
			UpdatedAt:      now,
		}
		if _, err := db.PackagesCollection.InsertOne(ctx, pkg); err != nil {
			slog.Error("post package failed", "vendor", vendorID, "err", err)
			utils.RespondWithError(w, http.StatusInternalServerError, "Failed to post service/package")
			return
		}
		utils.RespondWithJSON(w, http.StatusCreated, map[string]any{
			"message": "Package posted successfully",
			"package": pkg,
		})

	default:
		utils.RespondWithError(w, http.StatusBadRequest, "type must be either 'service' or 'package'")
	}
}
