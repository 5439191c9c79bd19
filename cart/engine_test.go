package cart

import (
	"testing"

	"github.com/sheharaF/Eventia-backend/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMergeServiceLine_AccumulatesQuantity(t *testing.T) {
	plan := emptyPlan("u1")

	mergeServiceLine(&plan, models.ServiceLine{ServiceID: "s1", VendorID: "v1", Price: 100, Quantity: 1})
	mergeServiceLine(&plan, models.ServiceLine{ServiceID: "s1", VendorID: "v1", Price: 100, Quantity: 2})

	require.Len(t, plan.SelectedVendors, 1)
	assert.Equal(t, 3, plan.SelectedVendors[0].Quantity)
	assert.Equal(t, 300.0, plan.TotalCost)
}

func TestMergeServiceLine_DifferentVendorIsNewLine(t *testing.T) {
	plan := emptyPlan("u1")

	mergeServiceLine(&plan, models.ServiceLine{ServiceID: "s1", VendorID: "v1", Price: 100})
	mergeServiceLine(&plan, models.ServiceLine{ServiceID: "s1", VendorID: "v2", Price: 150})

	require.Len(t, plan.SelectedVendors, 2)
	assert.Equal(t, 250.0, plan.TotalCost)
}

func TestMergeServiceLine_ZeroQuantityDefaultsToOne(t *testing.T) {
	plan := emptyPlan("u1")

	mergeServiceLine(&plan, models.ServiceLine{ServiceID: "s1", VendorID: "v1", Price: 80, Quantity: 0})

	require.Len(t, plan.SelectedVendors, 1)
	assert.Equal(t, 1, plan.SelectedVendors[0].Quantity)
	assert.Equal(t, 80.0, plan.TotalCost)
}

func TestMergePackageLine_AccumulatesQuantity(t *testing.T) {
	plan := emptyPlan("u1")

	mergePackageLine(&plan, models.PackageLine{PackageID: "p1", VendorID: "v1", Price: 500})
	mergePackageLine(&plan, models.PackageLine{PackageID: "p1", VendorID: "v1", Price: 500, Quantity: 1})

	require.Len(t, plan.SelectedPackages, 1)
	assert.Equal(t, 2, plan.SelectedPackages[0].Quantity)
	assert.Equal(t, 1000.0, plan.TotalCost)
}

func TestRemoveServiceLine_AbsentIsNoOp(t *testing.T) {
	plan := emptyPlan("u1")
	mergeServiceLine(&plan, models.ServiceLine{ServiceID: "s1", VendorID: "v1", Price: 100})

	removeServiceLine(&plan, "s2", "v1")
	removeServiceLine(&plan, "s1", "v9")

	require.Len(t, plan.SelectedVendors, 1)
	assert.Equal(t, 100.0, plan.TotalCost)

	removeServiceLine(&plan, "s1", "v1")
	assert.Empty(t, plan.SelectedVendors)
	assert.Equal(t, 0.0, plan.TotalCost)
}

func TestRemovePackageLine_MatchesBothIDs(t *testing.T) {
	plan := emptyPlan("u1")
	mergePackageLine(&plan, models.PackageLine{PackageID: "p1", VendorID: "v1", Price: 200})
	mergePackageLine(&plan, models.PackageLine{PackageID: "p1", VendorID: "v2", Price: 300})

	removePackageLine(&plan, "p1", "v1")

	require.Len(t, plan.SelectedPackages, 1)
	assert.Equal(t, "v2", plan.SelectedPackages[0].VendorID)
	assert.Equal(t, 300.0, plan.TotalCost)
}

func TestRecomputeTotal_SumsBothLineKinds(t *testing.T) {
	plan := emptyPlan("u1")
	plan.SelectedVendors = []models.ServiceLine{
		{ServiceID: "s1", VendorID: "v1", Price: 100, Quantity: 2},
		{ServiceID: "s2", VendorID: "v1", Price: 50, Quantity: 1},
	}
	plan.SelectedPackages = []models.PackageLine{
		{PackageID: "p1", VendorID: "v2", Price: 1000, Quantity: 1},
	}
	plan.TotalCost = 9999 // stale stored value must be overwritten

	recomputeTotal(&plan)

	assert.Equal(t, 1250.0, plan.TotalCost)
}

// Line prices come from the client request today, so two carts holding the
// same service can disagree on cost. The total still has to follow the lines.
func TestRecomputeTotal_UsesLinePriceAsStored(t *testing.T) {
	cheap := emptyPlan("u1")
	mergeServiceLine(&cheap, models.ServiceLine{ServiceID: "s1", VendorID: "v1", Price: 10})

	dear := emptyPlan("u2")
	mergeServiceLine(&dear, models.ServiceLine{ServiceID: "s1", VendorID: "v1", Price: 900})

	assert.Equal(t, 10.0, cheap.TotalCost)
	assert.Equal(t, 900.0, dear.TotalCost)
}

func validInput() checkoutInput {
	return checkoutInput{
		EventType:  "Wedding",
		Budget:     50000,
		GuestCount: 120,
		PreferredLocation: models.Location{
			City:     "Colombo",
			District: "Colombo",
		},
		EventDate: "2026-12-20",
	}
}

func TestValidateCheckout_AcceptsValidInput(t *testing.T) {
	eventDate, err := validateCheckout(validInput())
	require.NoError(t, err)
	assert.Equal(t, 2026, eventDate.Year())
}

func TestValidateCheckout_AcceptsRFC3339Date(t *testing.T) {
	in := validInput()
	in.EventDate = "2026-12-20T18:30:00Z"

	_, err := validateCheckout(in)
	require.NoError(t, err)
}

func TestValidateCheckout_ReportsFirstFailure(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*checkoutInput)
		wantErr string
	}{
		{
			name:    "bad event type",
			mutate:  func(in *checkoutInput) { in.EventType = "Festival" },
			wantErr: "Invalid eventType. Allowed: Wedding, Birthday, Corporate, Anniversary, Other",
		},
		{
			name:    "zero budget",
			mutate:  func(in *checkoutInput) { in.Budget = 0 },
			wantErr: "budget must be a positive number",
		},
		{
			name:    "negative guest count",
			mutate:  func(in *checkoutInput) { in.GuestCount = -5 },
			wantErr: "guestCount must be a positive number",
		},
		{
			name:    "missing city",
			mutate:  func(in *checkoutInput) { in.PreferredLocation.City = "" },
			wantErr: "preferredLocation.city and preferredLocation.district are required",
		},
		{
			name:    "missing district",
			mutate:  func(in *checkoutInput) { in.PreferredLocation.District = "" },
			wantErr: "preferredLocation.city and preferredLocation.district are required",
		},
		{
			name:    "garbage date",
			mutate:  func(in *checkoutInput) { in.EventDate = "next saturday" },
			wantErr: "eventDate must be a valid date",
		},
		{
			name:    "empty date",
			mutate:  func(in *checkoutInput) { in.EventDate = "" },
			wantErr: "eventDate must be a valid date",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := validInput()
			tt.mutate(&in)
			_, err := validateCheckout(in)
			require.Error(t, err)
			assert.Equal(t, tt.wantErr, err.Error())
		})
	}
}

// eventType is checked before budget, so an input failing both reports the
// eventType message.
func TestValidateCheckout_OrderIsFixed(t *testing.T) {
	in := validInput()
	in.EventType = "Festival"
	in.Budget = -1

	_, err := validateCheckout(in)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "eventType")
}

// A full build-up-then-trim session: every mutation keeps totalCost in step
// with the surviving lines.
func TestCartSequence_TotalTracksEveryStep(t *testing.T) {
	plan := emptyPlan("u1")

	mergeServiceLine(&plan, models.ServiceLine{ServiceID: "photo", VendorID: "v1", Price: 400, Quantity: 1})
	assert.Equal(t, 400.0, plan.TotalCost)

	mergeServiceLine(&plan, models.ServiceLine{ServiceID: "catering", VendorID: "v2", Price: 25, Quantity: 100})
	assert.Equal(t, 2900.0, plan.TotalCost)

	mergePackageLine(&plan, models.PackageLine{PackageID: "decor-gold", VendorID: "v3", Price: 1500, Quantity: 1})
	assert.Equal(t, 4400.0, plan.TotalCost)

	removeServiceLine(&plan, "photo", "v1")
	require.Len(t, plan.SelectedVendors, 1)
	assert.Equal(t, 4000.0, plan.TotalCost)

	_, err := validateCheckout(validInput())
	require.NoError(t, err)
}

func TestEmptyPlan(t *testing.T) {
	plan := emptyPlan("u42")

	assert.Equal(t, "u42", plan.UserID)
	assert.Equal(t, models.StatusPlanning, plan.Status)
	assert.NotNil(t, plan.SelectedVendors)
	assert.NotNil(t, plan.SelectedPackages)
	assert.Zero(t, plan.TotalCost)
}
