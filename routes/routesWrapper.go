package routes

import (
	"github.com/sheharaF/Eventia-backend/ratelim"

	"github.com/julienschmidt/httprouter"
)

func RoutesWrapper(router *httprouter.Router, rateLimiter *ratelim.RateLimiter) {
	AddAuthRoutes(router, rateLimiter)
	AddCartRoutes(router, rateLimiter)
	AddPlanRoutes(router, rateLimiter)
	AddCatalogRoutes(router, rateLimiter)
	AddVendorRoutes(router, rateLimiter)
	AddAdminRoutes(router, rateLimiter)
	AddTestimonialRoutes(router, rateLimiter)
	AddContactRoutes(router, rateLimiter)
	AddLocationRoutes(router, rateLimiter)
	AddProfileRoutes(router, rateLimiter)
}
