package models

import "time"

type PriceRange struct {
	Min float64 `json:"min" bson:"min"`
	Max float64 `json:"max" bson:"max"`
}

type Location struct {
	City     string `json:"city" bson:"city"`
	District string `json:"district" bson:"district"`
}

// Service is a single vendor-authored listing (the original "Ad" collection).
type Service struct {
	ServiceID       string      `json:"serviceid" bson:"serviceid"`
	VendorID        string      `json:"vendorId" bson:"vendorId"`
	Title           string      `json:"title" bson:"title"`
	Description     string      `json:"description" bson:"description"`
	EventType       string      `json:"eventType" bson:"eventType"`
	ServiceCategory string      `json:"serviceCategory" bson:"serviceCategory"`
	PriceRange      PriceRange  `json:"priceRange" bson:"priceRange"`
	Location        Location    `json:"location" bson:"location"`
	Capacity        int         `json:"capacity,omitempty" bson:"capacity,omitempty"`
	Images          []string    `json:"images,omitempty" bson:"images,omitempty"`
	AvailableDates  []time.Time `json:"availableDates,omitempty" bson:"availableDates,omitempty"`
	IsActive        bool        `json:"isActive" bson:"isActive"`
	CreatedAt       time.Time   `json:"createdAt" bson:"createdAt"`
	UpdatedAt       time.Time   `json:"updatedAt" bson:"updatedAt"`
}

// Package bundles several services under one flat price.
type Package struct {
	PackageID      string      `json:"packageid" bson:"packageid"`
	VendorID       string      `json:"vendorId" bson:"vendorId"`
	Title          string      `json:"title" bson:"title"`
	Description    string      `json:"description" bson:"description"`
	EventType      string      `json:"eventType" bson:"eventType"`
	Price          float64     `json:"price" bson:"price"`
	Services       []string    `json:"services" bson:"services"`
	Location       Location    `json:"location" bson:"location"`
	Capacity       int         `json:"capacity,omitempty" bson:"capacity,omitempty"`
	Images         []string    `json:"images,omitempty" bson:"images,omitempty"`
	AvailableDates []time.Time `json:"availableDates,omitempty" bson:"availableDates,omitempty"`
	IsActive       bool        `json:"isActive" bson:"isActive"`
	CreatedAt      time.Time   `json:"createdAt" bson:"createdAt"`
	UpdatedAt      time.Time   `json:"updatedAt" bson:"updatedAt"`
}
