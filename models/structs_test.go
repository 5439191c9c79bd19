package models

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewPagination(t *testing.T) {
	p := NewPagination(2, 10, 35)

	assert.Equal(t, 2, p.Current)
	assert.Equal(t, 4, p.Total)
	assert.True(t, p.HasNext)
	assert.True(t, p.HasPrev)
	assert.Equal(t, int64(35), p.TotalCount)
}

func TestNewPagination_SinglePage(t *testing.T) {
	p := NewPagination(1, 10, 7)

	assert.Equal(t, 1, p.Total)
	assert.False(t, p.HasNext)
	assert.False(t, p.HasPrev)
}

func TestNewPagination_EmptyResult(t *testing.T) {
	p := NewPagination(1, 10, 0)

	assert.Equal(t, 0, p.Total)
	assert.False(t, p.HasNext)
	assert.False(t, p.HasPrev)
}

func TestValidEventType(t *testing.T) {
	for _, et := range EventTypes {
		assert.True(t, ValidEventType(et))
	}
	assert.False(t, ValidEventType("Festival"))
	assert.False(t, ValidEventType("wedding")) // case sensitive
	assert.False(t, ValidEventType(""))
}

func TestValidPlanStatus(t *testing.T) {
	for _, s := range PlanStatuses {
		assert.True(t, ValidPlanStatus(s))
	}
	assert.False(t, ValidPlanStatus("Draft"))
	assert.False(t, ValidPlanStatus(""))
}

func TestUserSafe_StripsCredentials(t *testing.T) {
	u := User{
		UserID:   "u1",
		Name:     "Amara",
		Email:    "amara@example.com",
		Password: "$2a$10$hash",
		Role:     RoleVendor,
	}

	data, err := json.Marshal(u.Safe())
	require.NoError(t, err)
	assert.NotContains(t, string(data), "hash")
	assert.Contains(t, string(data), "amara@example.com")
}

func TestEventPlan_RevisionHiddenFromJSON(t *testing.T) {
	plan := EventPlan{PlanID: "p1", Revision: 7}

	data, err := json.Marshal(plan)
	require.NoError(t, err)
	assert.NotContains(t, string(data), "revision")
}
