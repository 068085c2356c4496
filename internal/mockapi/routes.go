package mockapi

import (
	"github.com/gin-gonic/gin"
	"github.com/newrelic/go-agent/v3/integrations/nrgin"
	"github.com/newrelic/go-agent/v3/newrelic"

	"github.com/masterchefhck/transportdf-mvp-sub001/internal/domain/user"
)

// SetupRoutes configures all development backend routes
func SetupRoutes(r *gin.Engine, h *Handlers, nrApp *newrelic.Application) {
	if nrApp != nil {
		r.Use(nrgin.Middleware(nrApp))
	}

	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "healthy"})
	})

	r.GET("/ws", h.HandleWebSocket)

	api := r.Group("/api")
	{
		auth := api.Group("/auth")
		{
			auth.POST("/login", h.Login)
			auth.POST("/register", h.Register)
		}

		admin := api.Group("/admin", h.RequireRole(user.TypeAdmin))
		{
			admin.GET("/stats", h.AdminStats)
			admin.GET("/users", h.AdminUsers)
			admin.GET("/trips", h.AdminTrips)
			admin.GET("/chats", h.AdminChats)
		}

		passengers := api.Group("/passengers", h.RequireRole(user.TypePassenger))
		{
			passengers.GET("/trip-history", h.PassengerTripHistory)
		}

		trips := api.Group("/trips", h.RequireRole(user.TypeDriver))
		{
			trips.POST("/:id/complete", h.CompleteTrip)
		}
	}
}

// NewRouter builds a gin engine with the development routes. nrApp may be nil.
func NewRouter(h *Handlers, nrApp *newrelic.Application) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	SetupRoutes(r, h, nrApp)
	return r
}
