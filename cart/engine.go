package cart

import (
	"fmt"
	"time"

	"github.com/sheharaF/Eventia-backend/models"
)

// Line-item merge and total rules for the Planning cart. These work on the
// in-memory plan only; persistence and the status guard live in store.go.

// mergeServiceLine adds a service line to the plan. A line with the same
// (serviceId, vendorId) pair accumulates quantity instead of duplicating.
func mergeServiceLine(plan *models.EventPlan, line models.ServiceLine) {
	if line.Quantity < 1 {
		line.Quantity = 1
	}
	for i := range plan.SelectedVendors {
		existing := &plan.SelectedVendors[i]
		if existing.ServiceID == line.ServiceID && existing.VendorID == line.VendorID {
			existing.Quantity += line.Quantity
			recomputeTotal(plan)
			return
		}
	}
	plan.SelectedVendors = append(plan.SelectedVendors, line)
	recomputeTotal(plan)
}

func mergePackageLine(plan *models.EventPlan, line models.PackageLine) {
	if line.Quantity < 1 {
		line.Quantity = 1
	}
	for i := range plan.SelectedPackages {
		existing := &plan.SelectedPackages[i]
		if existing.PackageID == line.PackageID && existing.VendorID == line.VendorID {
			existing.Quantity += line.Quantity
			recomputeTotal(plan)
			return
		}
	}
	plan.SelectedPackages = append(plan.SelectedPackages, line)
	recomputeTotal(plan)
}

// removeServiceLine drops the matching line. Removing an absent line is a
// no-op, not an error.
func removeServiceLine(plan *models.EventPlan, serviceID, vendorID string) {
	kept := plan.SelectedVendors[:0]
	for _, l := range plan.SelectedVendors {
		if !(l.ServiceID == serviceID && l.VendorID == vendorID) {
			kept = append(kept, l)
		}
	}
	plan.SelectedVendors = kept
	recomputeTotal(plan)
}

func removePackageLine(plan *models.EventPlan, packageID, vendorID string) {
	kept := plan.SelectedPackages[:0]
	for _, l := range plan.SelectedPackages {
		if !(l.PackageID == packageID && l.VendorID == vendorID) {
			kept = append(kept, l)
		}
	}
	plan.SelectedPackages = kept
	recomputeTotal(plan)
}

// recomputeTotal derives totalCost from the lines. The stored value is never
// trusted from client input.
func recomputeTotal(plan *models.EventPlan) {
	var total float64
	for _, l := range plan.SelectedVendors {
		q := l.Quantity
		if q < 1 {
			q = 1
		}
		total += l.Price * float64(q)
	}
	for _, l := range plan.SelectedPackages {
		q := l.Quantity
		if q < 1 {
			q = 1
		}
		total += l.Price * float64(q)
	}
	plan.TotalCost = total
}

func emptyPlan(userID string) models.EventPlan {
	now := time.Now()
	return models.EventPlan{
		UserID:           userID,
		Status:           models.StatusPlanning,
		SelectedVendors:  []models.ServiceLine{},
		SelectedPackages: []models.PackageLine{},
		TotalCost:        0,
		CreatedAt:        now,
		UpdatedAt:        now,
	}
}

// checkoutInput is the event metadata required to confirm a booking.
type checkoutInput struct {
	EventType         string          `json:"eventType"`
	Budget            float64         `json:"budget"`
	GuestCount        int             `json:"guestCount"`
	PreferredLocation models.Location `json:"preferredLocation"`
	EventDate         string          `json:"eventDate"`
	Notes             string          `json:"notes"`
}

// validateCheckout checks the fields in a fixed order and reports the first
// failure; the error message names the offending field.
func validateCheckout(in checkoutInput) (time.Time, error) {
	if !models.ValidEventType(in.EventType) {
		return time.Time{}, fmt.Errorf("Invalid eventType. Allowed: Wedding, Birthday, Corporate, Anniversary, Other")
	}
	if in.Budget <= 0 {
		return time.Time{}, fmt.Errorf("budget must be a positive number")
	}
	if in.GuestCount <= 0 {
		return time.Time{}, fmt.Errorf("guestCount must be a positive number")
	}
	if in.PreferredLocation.City == "" || in.PreferredLocation.District == "" {
		return time.Time{}, fmt.Errorf("preferredLocation.city and preferredLocation.district are required")
	}
	eventDate, err := parseEventDate(in.EventDate)
	if err != nil {
		return time.Time{}, fmt.Errorf("eventDate must be a valid date")
	}
	return eventDate, nil
}

func parseEventDate(s string) (time.Time, error) {
	if s == "" {
		return time.Time{}, fmt.Errorf("empty date")
	}
	for _, layout := range []string{time.RFC3339, "2006-01-02"} {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("unparseable date %q", s)
}
