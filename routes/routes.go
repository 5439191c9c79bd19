package routes

import (
	"net/http"

	"github.com/sheharaF/Eventia-backend/admin"
	"github.com/sheharaF/Eventia-backend/auth"
	"github.com/sheharaF/Eventia-backend/cart"
	"github.com/sheharaF/Eventia-backend/contacts"
	"github.com/sheharaF/Eventia-backend/locations"
	"github.com/sheharaF/Eventia-backend/middleware"
	"github.com/sheharaF/Eventia-backend/models"
	"github.com/sheharaF/Eventia-backend/packages"
	"github.com/sheharaF/Eventia-backend/plans"
	"github.com/sheharaF/Eventia-backend/profile"
	"github.com/sheharaF/Eventia-backend/ratelim"
	"github.com/sheharaF/Eventia-backend/services"
	"github.com/sheharaF/Eventia-backend/testimonials"
	"github.com/sheharaF/Eventia-backend/vendors"

	"github.com/julienschmidt/httprouter"
)

func AddAuthRoutes(router *httprouter.Router, rl *ratelim.RateLimiter) {
	router.POST("/api/auth/register", rl.Limit(auth.Register))
	router.POST("/api/auth/login", rl.Limit(auth.Login))
	router.POST("/api/auth/logout", rl.Limit(middleware.Authenticate(auth.LogoutUser)))
	router.POST("/api/google/auth", rl.Limit(auth.GoogleAuth))
}

func AddCartRoutes(router *httprouter.Router, rl *ratelim.RateLimiter) {
	user := func(h httprouter.Handle) httprouter.Handle {
		return rl.Limit(middleware.Authenticate(middleware.RequireRoles(h, models.RoleUser)))
	}
	router.GET("/api/user/cart", user(cart.GetCart))
	router.POST("/api/user/cart/services", user(cart.AddService))
	router.POST("/api/user/cart/packages", user(cart.AddPackage))
	router.DELETE("/api/user/cart/services/:serviceId", user(cart.RemoveService))
	router.DELETE("/api/user/cart/packages/:packageId", user(cart.RemovePackage))
	router.POST("/api/user/cart/checkout", user(cart.Checkout))
	router.GET("/api/user/bookings", user(cart.GetBookings))
}

func AddPlanRoutes(router *httprouter.Router, rl *ratelim.RateLimiter) {
	authed := func(h httprouter.Handle) httprouter.Handle {
		return rl.Limit(middleware.Authenticate(h))
	}
	router.POST("/api/event-plans", authed(middleware.RequireRoles(plans.CreatePlan, models.RoleUser)))
	// httprouter cannot mix a static segment with :id, so "my-plans" is
	// dispatched inside the param route.
	router.GET("/api/event-plans/:id", authed(func(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
		if ps.ByName("id") == "my-plans" {
			plans.MyPlans(w, r, ps)
			return
		}
		plans.GetPlan(w, r, ps)
	}))
	router.PUT("/api/event-plans/:id/status", authed(plans.UpdateStatus))
	router.GET("/api/event-plans/:id/recommendations", authed(plans.Recommendations))
}

func AddCatalogRoutes(router *httprouter.Router, rl *ratelim.RateLimiter) {
	router.GET("/api/user/services", rl.Limit(services.GetServices))
	router.GET("/api/services/:id", rl.Limit(services.GetService))
	router.GET("/api/user/packages", rl.Limit(packages.GetPackages))
	router.GET("/api/packages/:eventType", rl.Limit(packages.GetPackagesByEventType))
}

func AddVendorRoutes(router *httprouter.Router, rl *ratelim.RateLimiter) {
	vendor := func(h httprouter.Handle) httprouter.Handle {
		return rl.Limit(middleware.Authenticate(middleware.RequireRoles(h, models.RoleVendor)))
	}
	router.GET("/api/vendor/dashboard", vendor(vendors.Dashboard))
	router.POST("/api/vendor/post", vendor(vendors.PostListing))
	router.GET("/api/vendor/services", vendor(vendors.GetServices))
	router.PUT("/api/vendor/services/:id", vendor(vendors.UpdateService))
	router.DELETE("/api/vendor/services/:id", vendor(vendors.DeleteService))
	router.GET("/api/vendor/packages", vendor(vendors.GetPackages))
	router.PUT("/api/vendor/packages/:id", vendor(vendors.UpdatePackage))
	router.DELETE("/api/vendor/packages/:id", vendor(vendors.DeletePackage))
	router.GET("/api/vendor/bookings", vendor(vendors.GetBookings))
	router.PUT("/api/vendor/profile", vendor(vendors.UpdateProfile))
}

func AddAdminRoutes(router *httprouter.Router, rl *ratelim.RateLimiter) {
	adm := func(h httprouter.Handle) httprouter.Handle {
		return rl.Limit(middleware.Authenticate(middleware.RequireRoles(h, models.RoleAdmin)))
	}
	router.GET("/api/admin/dashboard", adm(admin.Dashboard))
	router.GET("/api/admin/vendors", adm(admin.GetVendors))
	router.GET("/api/admin/vendors/:id", adm(admin.GetVendor))
	router.PUT("/api/admin/vendors/:id/approve", adm(admin.ApproveVendor))
	router.DELETE("/api/admin/vendors/:id", adm(admin.DeleteVendor))
	router.GET("/api/admin/users", adm(admin.GetUsers))
	router.DELETE("/api/admin/users/:id", adm(admin.DeleteUser))
	router.GET("/api/admin/event-plans", adm(admin.GetEventPlans))
	router.GET("/api/admin/services", adm(admin.GetServices))
	router.PUT("/api/admin/services/:id/toggle", adm(admin.ToggleService))
	router.GET("/api/admin/packages", adm(admin.GetPackages))
	router.PUT("/api/admin/packages/:id/toggle", adm(admin.TogglePackage))
	router.GET("/api/admin/testimonials", adm(testimonials.AdminList))
	router.GET("/api/admin/stats", adm(admin.Stats))
	router.GET("/api/admin/system-health", adm(admin.SystemHealth))

	router.GET("/api/admin/contacts", adm(contacts.AdminList))
	router.GET("/api/admin/contacts/:id", adm(func(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
		if ps.ByName("id") == "stats" {
			contacts.Stats(w, r, ps)
			return
		}
		contacts.AdminGet(w, r, ps)
	}))
	router.PUT("/api/admin/contacts/:id/status", adm(contacts.UpdateStatus))
	router.PUT("/api/admin/contacts/:id/notes", adm(contacts.UpdateNotes))
	router.DELETE("/api/admin/contacts/:id", adm(contacts.Delete))
}

func AddTestimonialRoutes(router *httprouter.Router, rl *ratelim.RateLimiter) {
	adm := func(h httprouter.Handle) httprouter.Handle {
		return rl.Limit(middleware.Authenticate(middleware.RequireRoles(h, models.RoleAdmin)))
	}
	router.GET("/api/testimonials", rl.Limit(testimonials.GetTestimonials))
	router.GET("/api/vendors/:id/testimonials", rl.Limit(testimonials.GetVendorTestimonials))
	router.GET("/api/testimonials/:id", rl.Limit(testimonials.GetTestimonial))
	router.POST("/api/testimonials", rl.Limit(middleware.Authenticate(testimonials.CreateTestimonial)))
	router.PUT("/api/testimonials/admin/:id/approve", adm(testimonials.Approve))
	router.DELETE("/api/testimonials/admin/:id", adm(testimonials.Delete))
}

func AddContactRoutes(router *httprouter.Router, rl *ratelim.RateLimiter) {
	router.POST("/api/contact", rl.Limit(contacts.Create))
}

func AddLocationRoutes(router *httprouter.Router, rl *ratelim.RateLimiter) {
	router.GET("/api/locations", rl.Limit(locations.GetDistricts))
	router.GET("/api/locations/:district", rl.Limit(func(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
		if ps.ByName("district") == "search" {
			locations.Search(w, r, ps)
			return
		}
		locations.GetDistrict(w, r, ps)
	}))
}

func AddProfileRoutes(router *httprouter.Router, rl *ratelim.RateLimiter) {
	router.GET("/api/user/profile", rl.Limit(middleware.Authenticate(profile.GetProfile)))
	router.PUT("/api/user/profile", rl.Limit(middleware.Authenticate(profile.UpdateProfile)))
}
