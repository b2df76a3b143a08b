// Package routes registers the HTTP API on a gin engine.
package routes

import (
	"fmt"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/Nyakiraa/Saute-Simmer-Website-sub000/internal/access"
	"github.com/Nyakiraa/Saute-Simmer-Website-sub000/internal/auth"
	"github.com/Nyakiraa/Saute-Simmer-Website-sub000/internal/handlers"
	"github.com/Nyakiraa/Saute-Simmer-Website-sub000/internal/intake"
	"github.com/Nyakiraa/Saute-Simmer-Website-sub000/internal/metrics"
	"github.com/Nyakiraa/Saute-Simmer-Website-sub000/internal/middleware"
	"github.com/Nyakiraa/Saute-Simmer-Website-sub000/internal/store"
)

// Deps carries everything the routes need. Limiter may be nil to disable
// rate limiting.
type Deps struct {
	Store    store.Store
	Intake   *intake.Service
	Verifier *auth.Verifier
	Policy   *access.Policy
	Limiter  *middleware.RateLimiter
	// ProtectAdmin puts the back-office CRUD routes behind AdminAuth.
	ProtectAdmin bool
	Log          *logrus.Entry
}

// NewEngine returns a bare gin engine that only honours forwarding headers
// from the given proxies. With none, c.ClientIP() is the socket peer.
func NewEngine(trustedProxies []string) (*gin.Engine, error) {
	r := gin.New()
	if err := r.SetTrustedProxies(trustedProxies); err != nil {
		return nil, fmt.Errorf("trusted proxies: %w", err)
	}
	return r, nil
}

func RegisterRoutes(r *gin.Engine, d Deps) {
	handlers.UseJSONFieldNames()
	if d.Log == nil {
		d.Log = logrus.NewEntry(logrus.StandardLogger())
	}

	r.GET("/healthz", handlers.Health(d.Store))
	r.GET("/metrics", gin.WrapH(metrics.Handler()))

	api := r.Group("/api")

	// Storefront routes.
	limited := func(chain ...gin.HandlerFunc) []gin.HandlerFunc {
		if d.Limiter == nil {
			return chain
		}
		return append([]gin.HandlerFunc{d.Limiter.Handler()}, chain...)
	}
	userAuth := middleware.UserAuth(d.Verifier, d.Log)

	api.POST("/orders", limited(handlers.PlaceOrder(d.Store, d.Intake))...)
	api.POST("/meal-set-orders", limited(userAuth, handlers.PlaceMealSetOrder(d.Store, d.Intake))...)
	api.GET("/my-orders", userAuth, handlers.MyOrders(d.Store, d.Policy))
	api.GET("/items", handlers.ListItems(d.Store))
	api.GET("/meal-sets", handlers.ListMealSets(d.Store))

	// Back-office routes.
	admin := api.Group("")
	if d.ProtectAdmin {
		admin.Use(middleware.AdminAuth(d.Verifier, d.Policy, d.Log))
	}

	admin.GET("/customers", handlers.ListCustomers(d.Store))
	admin.POST("/customers", handlers.CreateCustomer(d.Store))
	admin.POST("/customers/by-email", handlers.FindCustomerByEmail(d.Store))
	admin.GET("/customers/:id", handlers.GetCustomer(d.Store))
	admin.PUT("/customers/:id", handlers.UpdateCustomer(d.Store))
	admin.DELETE("/customers/:id", handlers.DeleteCustomer(d.Store))

	admin.POST("/items", handlers.CreateItem(d.Store))
	admin.GET("/items/:id", handlers.GetItem(d.Store))
	admin.PUT("/items/:id", handlers.UpdateItem(d.Store))
	admin.DELETE("/items/:id", handlers.DeleteItem(d.Store))

	admin.POST("/meal-sets", handlers.CreateMealSet(d.Store))
	admin.GET("/meal-sets/:id", handlers.GetMealSet(d.Store))
	admin.PUT("/meal-sets/:id", handlers.UpdateMealSet(d.Store))
	admin.DELETE("/meal-sets/:id", handlers.DeleteMealSet(d.Store))

	admin.GET("/locations", handlers.ListLocations(d.Store))
	admin.POST("/locations", handlers.CreateLocation(d.Store))
	admin.GET("/locations/:id", handlers.GetLocation(d.Store))
	admin.PUT("/locations/:id", handlers.UpdateLocation(d.Store))
	admin.DELETE("/locations/:id", handlers.DeleteLocation(d.Store))

	admin.GET("/orders", handlers.ListOrders(d.Store))
	admin.GET("/orders/:id", handlers.GetOrder(d.Store))
	admin.PUT("/orders/:id", handlers.UpdateOrder(d.Store))
	admin.DELETE("/orders/:id", handlers.DeleteOrder(d.Store))

	admin.GET("/catering-services", handlers.ListCateringServices(d.Store))
	admin.POST("/catering-services", handlers.CreateCateringService(d.Store))
	admin.GET("/catering-services/:id", handlers.GetCateringService(d.Store))
	admin.PUT("/catering-services/:id", handlers.UpdateCateringService(d.Store))
	admin.DELETE("/catering-services/:id", handlers.DeleteCateringService(d.Store))

	admin.GET("/payments", handlers.ListPayments(d.Store))
	admin.POST("/payments", handlers.CreatePayment(d.Store))
	admin.GET("/payments/:id", handlers.GetPayment(d.Store))
	admin.PUT("/payments/:id", handlers.UpdatePayment(d.Store))
	admin.DELETE("/payments/:id", handlers.DeletePayment(d.Store))
}
