package routes

import (
	"testing"

	"github.com/sheharaF/Eventia-backend/ratelim"

	"github.com/julienschmidt/httprouter"
)

// httprouter panics at registration time when two routes conflict, so wiring
// the full table is itself the assertion.
func TestRoutesWrapper_NoConflicts(t *testing.T) {
	router := httprouter.New()
	RoutesWrapper(router, ratelim.NewRateLimiter())

	for _, path := range []string{
		"/api/user/cart",
		"/api/user/bookings",
		"/api/event-plans/my-plans",
		"/api/locations/search",
		"/api/admin/dashboard",
	} {
		handle, _, _ := router.Lookup("GET", path)
		if handle == nil {
			t.Errorf("no GET handler registered for %s", path)
		}
	}
}
