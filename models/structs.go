package models

import "time"

// Contact statuses as the admin works a submission.
const (
	ContactNew        = "New"
	ContactInProgress = "In Progress"
	ContactResolved   = "Resolved"
	ContactClosed     = "Closed"
)

var ContactStatuses = []string{ContactNew, ContactInProgress, ContactResolved, ContactClosed}

type Contact struct {
	ContactID  string    `json:"contactid" bson:"contactid"`
	Name       string    `json:"name" bson:"name"`
	Email      string    `json:"email" bson:"email"`
	Phone      string    `json:"phone,omitempty" bson:"phone,omitempty"`
	Subject    string    `json:"subject" bson:"subject"`
	Message    string    `json:"message" bson:"message"`
	Status     string    `json:"status" bson:"status"`
	AdminNotes string    `json:"adminNotes,omitempty" bson:"adminNotes,omitempty"`
	CreatedAt  time.Time `json:"createdAt" bson:"createdAt"`
	UpdatedAt  time.Time `json:"updatedAt" bson:"updatedAt"`
}

type Testimonial struct {
	TestimonialID string    `json:"testimonialid" bson:"testimonialid"`
	CustomerName  string    `json:"customerName" bson:"customerName"`
	CustomerRole  string    `json:"customerRole" bson:"customerRole"`
	EventType     string    `json:"eventType" bson:"eventType"`
	Rating        int       `json:"rating" bson:"rating"`
	Testimonial   string    `json:"testimonial" bson:"testimonial"`
	VendorID      string    `json:"vendorId,omitempty" bson:"vendorId,omitempty"`
	IsApproved    bool      `json:"isApproved" bson:"isApproved"`
	Image         string    `json:"image,omitempty" bson:"image,omitempty"`
	CreatedAt     time.Time `json:"createdAt" bson:"createdAt"`
	UpdatedAt     time.Time `json:"updatedAt" bson:"updatedAt"`
}

// District holds the static location data (district plus its cities).
type District struct {
	District string   `json:"district" bson:"district"`
	Cities   []string `json:"cities" bson:"cities"`
}

// Pagination is the envelope every paginated list endpoint returns.
type Pagination struct {
	Current    int   `json:"current"`
	Total      int   `json:"total"`
	HasNext    bool  `json:"hasNext"`
	HasPrev    bool  `json:"hasPrev"`
	TotalCount int64 `json:"totalCount"`
}

func NewPagination(page, limit int, total int64) Pagination {
	pages := int((total + int64(limit) - 1) / int64(limit))
	return Pagination{
		Current:    page,
		Total:      pages,
		HasNext:    int64(page*limit) < total,
		HasPrev:    page > 1,
		TotalCount: total,
	}
}
