package vendors

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

// Validation rejections happen before any store access, so these run without
// a database.
func postListing(t *testing.T, body string) *httptest.ResponseRecorder {
	t.Helper()
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/vendor/post", strings.NewReader(body))
	PostListing(rec, req, nil)
	return rec
}

func TestPostListing_RejectsBadJSON(t *testing.T) {
	rec := postListing(t, "{not json")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "Invalid JSON payload")
}

func TestPostListing_RequiresCommonFields(t *testing.T) {
	rec := postListing(t, `{"type":"service","title":"Catering"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "type, title, description, and eventType are required")
}

func TestPostListing_RejectsUnknownEventType(t *testing.T) {
	rec := postListing(t, `{"type":"service","title":"Catering","description":"d","eventType":"Festival"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "Invalid eventType")
}

func TestPostListing_ServiceRequiresCategory(t *testing.T) {
	rec := postListing(t, `{"type":"service","title":"Catering","description":"d","eventType":"Wedding"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "serviceCategory is required for services")
}

func TestPostListing_ServiceRequiresPriceRange(t *testing.T) {
	rec := postListing(t, `{"type":"service","title":"Catering","description":"d","eventType":"Wedding","serviceCategory":"Catering"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "priceRange.min and priceRange.max are required")
}

func TestPostListing_ServiceRejectsInvertedPriceRange(t *testing.T) {
	rec := postListing(t, `{"type":"service","title":"Catering","description":"d","eventType":"Wedding","serviceCategory":"Catering","priceRange":{"min":500,"max":100}}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "priceRange.min and priceRange.max are required")
}

func TestPostListing_PackageRequiresPrice(t *testing.T) {
	rec := postListing(t, `{"type":"package","title":"Full Wedding","description":"d","eventType":"Wedding"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "price is required for packages")
}

func TestPostListing_PackageRequiresServices(t *testing.T) {
	rec := postListing(t, `{"type":"package","title":"Full Wedding","description":"d","eventType":"Wedding","price":200000}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "services array is required for packages")
}

func TestPostListing_RejectsUnknownType(t *testing.T) {
	rec := postListing(t, `{"type":"venue","title":"Hall","description":"d","eventType":"Wedding"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "type must be either 'service' or 'package'")
}
