package cart

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
	"go.mongodb.org/mongo-driver/bson"
)

// GetCart returns the user's current Planning plan. When none exists an empty
// cart view is returned without persisting anything.
func GetCart(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	userID := utils.GetUserIDFromRequest(r)

	plan, err := findPlanningCart(ctx, userID)
	if err == ErrNoCart {
		empty := emptyPlan(userID)
		utils.RespondWithJSON(w, http.StatusOK, map[string]any{
			"message": "Cart is empty",
			"cart":    empty,
		})
		return
	}
	if err != nil {
		slog.Error("get cart failed", "user", userID, "err", err)
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to fetch cart")
		return
	}

	recomputeTotal(&plan)
	utils.RespondWithJSON(w, http.StatusOK, map[string]any{
		"cart": plan,
		"summary": map[string]any{
			"vendorCount":  len(plan.SelectedVendors),
			"packageCount": len(plan.SelectedPackages),
			"totalCost":    plan.TotalCost,
		},
	})
}

// AddService puts a catalog service into the cart, creating the cart when
// needed. The price is taken from the request body, matching the stored
// listing flow the frontend drives.
func AddService(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	var input struct {
		ServiceID string  `json:"serviceId"`
		VendorID  string  `json:"vendorId"`
		Price     float64 `json:"price"`
		Quantity  int     `json:"quantity"`
		Notes     string  `json:"notes"`
	}
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid JSON payload")
		return
	}
	if input.ServiceID == "" || input.VendorID == "" || input.Price <= 0 {
		utils.RespondWithError(w, http.StatusBadRequest, "serviceId, vendorId, and price are required")
		return
	}

	// The referenced listing must exist, be active, and belong to the named vendor.
	var service models.Service
	err := db.ServicesCollection.FindOne(ctx, bson.M{"serviceid": input.ServiceID}).Decode(&service)
	if err != nil || !service.IsActive {
		utils.RespondWithError(w, http.StatusBadRequest, "Service unavailable")
		return
	}
	if service.VendorID != input.VendorID {
		utils.RespondWithError(w, http.StatusBadRequest, "Service/vendor mismatch")
		return
	}

	userID := utils.GetUserIDFromRequest(r)
	plan, err := mutatePlanning(ctx, userID, true, func(p *models.EventPlan) {
		mergeServiceLine(p, models.ServiceLine{
			ServiceID: input.ServiceID,
			VendorID:  input.VendorID,
			Price:     input.Price,
			Quantity:  input.Quantity,
			Notes:     input.Notes,
		})
	})
	if err == errConflict {
		utils.RespondWithError(w, http.StatusConflict, "Cart was modified concurrently, please retry")
		return
	}
	if err != nil {
		slog.Error("add service to cart failed", "user", userID, "service", input.ServiceID, "err", err)
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to add service to cart")
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, map[string]any{
		"message": "Service added to cart successfully",
		"cart":    plan,
	})
}

// AddPackage is the package twin of AddService over selectedPackages.
func AddPackage(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	var input struct {
		PackageID string  `json:"packageId"`
		VendorID  string  `json:"vendorId"`
		Price     float64 `json:"price"`
		Quantity  int     `json:"quantity"`
		Notes     string  `json:"notes"`
	}
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid JSON payload")
		return
	}
	if input.PackageID == "" || input.VendorID == "" || input.Price <= 0 {
		utils.RespondWithError(w, http.StatusBadRequest, "packageId, vendorId, and price are required")
		return
	}

	var pkg models.Package
	err := db.PackagesCollection.FindOne(ctx, bson.M{"packageid": input.PackageID}).Decode(&pkg)
	if err != nil || !pkg.IsActive {
		utils.RespondWithError(w, http.StatusBadRequest, "Package unavailable")
		return
	}
	if pkg.VendorID != input.VendorID {
		utils.RespondWithError(w, http.StatusBadRequest, "Package/vendor mismatch")
		return
	}

	userID := utils.GetUserIDFromRequest(r)
	plan, err := mutatePlanning(ctx, userID, true, func(p *models.EventPlan) {
		mergePackageLine(p, models.PackageLine{
			PackageID: input.PackageID,
			VendorID:  input.VendorID,
			Price:     input.Price,
			Quantity:  input.Quantity,
			Notes:     input.Notes,
		})
	})
	if err == errConflict {
		utils.RespondWithError(w, http.StatusConflict, "Cart was modified concurrently, please retry")
		return
	}
	if err != nil {
		slog.Error("add package to cart failed", "user", userID, "package", input.PackageID, "err", err)
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to add package to cart")
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, map[string]any{
		"message": "Package added to cart successfully",
		"cart":    plan,
	})
}

// RemoveService drops a service line from the cart. Removing a line that is
// not there succeeds silently; a missing cart is a 404.
func RemoveService(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	serviceID := ps.ByName("serviceId")
	vendorID := r.URL.Query().Get("vendorId")
	if vendorID == "" {
		utils.RespondWithError(w, http.StatusBadRequest, "vendorId is required")
		return
	}

	userID := utils.GetUserIDFromRequest(r)
	plan, err := mutatePlanning(ctx, userID, false, func(p *models.EventPlan) {
		removeServiceLine(p, serviceID, vendorID)
	})
	if err == ErrNoCart {
		utils.RespondWithError(w, http.StatusNotFound, "Cart not found")
		return
	}
	if err == errConflict {
		utils.RespondWithError(w, http.StatusConflict, "Cart was modified concurrently, please retry")
		return
	}
	if err != nil {
		slog.Error("remove service from cart failed", "user", userID, "service", serviceID, "err", err)
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to remove service from cart")
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, map[string]any{
		"message": "Service removed from cart successfully",
		"cart":    plan,
	})
}

func RemovePackage(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	packageID := ps.ByName("packageId")
	vendorID := r.URL.Query().Get("vendorId")
	if vendorID == "" {
		utils.RespondWithError(w, http.StatusBadRequest, "vendorId is required")
		return
	}

	userID := utils.GetUserIDFromRequest(r)
	plan, err := mutatePlanning(ctx, userID, false, func(p *models.EventPlan) {
		removePackageLine(p, packageID, vendorID)
	})
	if err == ErrNoCart {
		utils.RespondWithError(w, http.StatusNotFound, "Cart not found")
		return
	}
	if err == errConflict {
		utils.RespondWithError(w, http.StatusConflict, "Cart was modified concurrently, please retry")
		return
	}
	if err != nil {
		slog.Error("remove package from cart failed", "user", userID, "package", packageID, "err", err)
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to remove package from cart")
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, map[string]any{
		"message": "Package removed from cart successfully",
		"cart":    plan,
	})
}
