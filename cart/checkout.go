package cart

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/sheharaF/Eventia-backend/models"
	"github.com/sheharaF/Eventia-backend/utils"

	"github.com/julienschmidt/httprouter"
)

// Checkout validates the event metadata, then confirms the Planning cart as a
// booking. This is the only path from Planning to Confirmed; the conditional
// write in savePlanning means two concurrent checkouts cannot both succeed.
func Checkout(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	var input checkoutInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid JSON payload")
		return
	}

	// All metadata validation runs before any store operation.
	eventDate, err := validateCheckout(input)
	if err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, err.Error())
		return
	}

	userID := utils.GetUserIDFromRequest(r)

	plan, err := findPlanningCart(ctx, userID)
	if err == ErrNoCart {
		utils.RespondWithError(w, http.StatusNotFound, "Cart is empty")
		return
	}
	if err != nil {
		slog.Error("checkout load failed", "user", userID, "err", err)
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to confirm booking")
		return
	}

	if len(plan.SelectedVendors) == 0 && len(plan.SelectedPackages) == 0 {
		utils.RespondWithError(w, http.StatusBadRequest, "Cart is empty")
		return
	}

	plan.EventType = input.EventType
	plan.Budget = input.Budget
	plan.GuestCount = input.GuestCount
	plan.PreferredLocation = input.PreferredLocation
	plan.EventDate = eventDate
	plan.Notes = input.Notes
	plan.Status = models.StatusConfirmed
	recomputeTotal(&plan)

	if err := savePlanning(ctx, &plan); err == errConflict {
		utils.RespondWithError(w, http.StatusConflict, "Cart was modified concurrently, please retry")
		return
	} else if err != nil {
		slog.Error("checkout save failed", "user", userID, "plan", plan.PlanID, "err", err)
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to confirm booking")
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, map[string]any{
		"message": "Booking confirmed successfully!",
		"booking": plan,
	})
}
