package models

import "time"

// Roles carried in the JWT. A role change (e.g. vendor approval) only takes
// effect on the next token issuance.
const (
	RoleUser   = "User"
	RoleVendor = "Vendor"
	RoleAdmin  = "Admin"
)

type User struct {
	UserID               string    `json:"userid" bson:"userid"`
	Name                 string    `json:"name" bson:"name"`
	Email                string    `json:"email" bson:"email"`
	Password             string    `json:"-" bson:"password"`
	Role                 string    `json:"role" bson:"role"`
	GoogleID             string    `json:"-" bson:"googleId,omitempty"`
	BusinessRegistration string    `json:"businessRegistration,omitempty" bson:"businessRegistration,omitempty"`
	IsApproved           bool      `json:"isApproved" bson:"isApproved"`
	Phone                string    `json:"phone,omitempty" bson:"phone,omitempty"`
	Address              string    `json:"address,omitempty" bson:"address,omitempty"`
	ApprovalReason       string    `json:"approvalReason,omitempty" bson:"approvalReason,omitempty"`
	ApprovedAt           time.Time `json:"approvedAt,omitzero" bson:"approvedAt,omitempty"`
	CreatedAt            time.Time `json:"createdAt" bson:"createdAt"`
	UpdatedAt            time.Time `json:"updatedAt" bson:"updatedAt"`
}

// SafeUser is the user view returned by the API, without credentials.
type SafeUser struct {
	UserID               string    `json:"userid"`
	Name                 string    `json:"name"`
	Email                string    `json:"email"`
	Role                 string    `json:"role"`
	Phone                string    `json:"phone,omitempty"`
	Address              string    `json:"address,omitempty"`
	BusinessRegistration string    `json:"businessRegistration,omitempty"`
	IsApproved           bool      `json:"isApproved"`
	CreatedAt            time.Time `json:"createdAt"`
	UpdatedAt            time.Time `json:"updatedAt"`
}

func (u User) Safe() SafeUser {
	return SafeUser{
		UserID:               u.UserID,
		Name:                 u.Name,
		Email:                u.Email,
		Role:                 u.Role,
		Phone:                u.Phone,
		Address:              u.Address,
		BusinessRegistration: u.BusinessRegistration,
		IsApproved:           u.IsApproved,
		CreatedAt:            u.CreatedAt,
		UpdatedAt:            u.UpdatedAt,
	}
}
