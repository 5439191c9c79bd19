package models

import "time"

// EventPlan statuses. Planning is the mutable cart; everything else is a
// booking and is never touched by the cart line-item operations.
const (
	StatusPlanning  = "Planning"
	StatusConfirmed = "Confirmed"
	StatusCompleted = "Completed"
	StatusCancelled = "Cancelled"
)

var PlanStatuses = []string{StatusPlanning, StatusConfirmed, StatusCompleted, StatusCancelled}

// BookingStatuses are the post-checkout states listed by GET /bookings.
var BookingStatuses = []string{StatusConfirmed, StatusCompleted, StatusCancelled}

var EventTypes = []string{"Wedding", "Birthday", "Corporate", "Anniversary", "Other"}

// ServiceLine is one purchased catalog service inside a plan.
type ServiceLine struct {
	VendorID  string  `json:"vendorId" bson:"vendorId"`
	ServiceID string  `json:"serviceId" bson:"serviceId"`
	Price     float64 `json:"price" bson:"price"`
	Quantity  int     `json:"quantity" bson:"quantity"`
	Notes     string  `json:"notes,omitempty" bson:"notes,omitempty"`
}

// PackageLine is one purchased catalog package inside a plan.
type PackageLine struct {
	PackageID string  `json:"packageId" bson:"packageId"`
	VendorID  string  `json:"vendorId" bson:"vendorId"`
	Price     float64 `json:"price" bson:"price"`
	Quantity  int     `json:"quantity" bson:"quantity"`
	Notes     string  `json:"notes,omitempty" bson:"notes,omitempty"`
}

// EventPlan is both the cart (status Planning) and the booking it becomes.
// Revision is bumped on every write; mutations filter on it so concurrent
// writers cannot clobber each other.
type EventPlan struct {
	PlanID            string        `json:"planid" bson:"planid"`
	UserID            string        `json:"userId" bson:"userId"`
	Status            string        `json:"status" bson:"status"`
	EventType         string        `json:"eventType,omitempty" bson:"eventType,omitempty"`
	Budget            float64       `json:"budget,omitempty" bson:"budget,omitempty"`
	GuestCount        int           `json:"guestCount,omitempty" bson:"guestCount,omitempty"`
	PreferredLocation Location      `json:"preferredLocation" bson:"preferredLocation"`
	EventDate         time.Time     `json:"eventDate,omitzero" bson:"eventDate,omitempty"`
	Notes             string        `json:"notes,omitempty" bson:"notes,omitempty"`
	SelectedVendors   []ServiceLine `json:"selectedVendors" bson:"selectedVendors"`
	SelectedPackages  []PackageLine `json:"selectedPackages" bson:"selectedPackages"`
	TotalCost         float64       `json:"totalCost" bson:"totalCost"`
	Revision          int64         `json:"-" bson:"revision"`
	CreatedAt         time.Time     `json:"createdAt" bson:"createdAt"`
	UpdatedAt         time.Time     `json:"updatedAt" bson:"updatedAt"`
}

func ValidEventType(t string) bool {
	for _, v := range EventTypes {
		if v == t {
			return true
		}
	}
	return false
}

func ValidPlanStatus(s string) bool {
	for _, v := range PlanStatuses {
		if v == s {
			return true
		}
	}
	return false
}
