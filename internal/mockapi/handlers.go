package mockapi

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	gorilla "github.com/gorilla/websocket"

	"github.com/masterchefhck/transportdf-mvp-sub001/internal/domain/user"
	"github.com/masterchefhck/transportdf-mvp-sub001/pkg/logger"
	"github.com/masterchefhck/transportdf-mvp-sub001/pkg/websocket"
)

const ctxUserKey = "mockapi.user"

// Handlers holds all handler dependencies
type Handlers struct {
	Store  *Store
	Logger *logger.Logger
	Hub    *websocket.Hub
}

// NewHandlers creates a new Handlers instance
func NewHandlers(store *Store, log *logger.Logger, hub *websocket.Hub) *Handlers {
	return &Handlers{
		Store:  store,
		Logger: log,
		Hub:    hub,
	}
}

type loginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type registerRequest struct {
	Name     string `json:"name" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	Phone    string `json:"phone"`
	Password string `json:"password" binding:"required,min=6"`
	UserType string `json:"user_type" binding:"required,oneof=passenger driver admin"`
}

type completeTripRequest struct {
	FinalPrice      float64 `json:"final_price" binding:"required"`
	DurationMinutes int     `json:"duration_minutes" binding:"required"`
}

// Login handles POST /api/auth/login
func (h *Handlers) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"detail": "Invalid request payload"})
		return
	}

	token, u, err := h.Store.Login(req.Email, req.Password)
	if err != nil {
		h.Logger.Info("Login rejected", logger.String("email", req.Email))
		c.JSON(http.StatusUnauthorized, gin.H{"detail": "Email ou senha incorretos"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"access_token": token, "token_type": "bearer", "user": u})
}

// Register handles POST /api/auth/register
func (h *Handlers) Register(c *gin.Context) {
	var req registerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"detail": "Invalid request payload"})
		return
	}

	u := user.User{
		Name:     req.Name,
		Email:    req.Email,
		UserType: user.Type(req.UserType),
		IsActive: true,
	}
	if u.UserType == user.TypeDriver {
		offline := user.DriverOffline
		u.DriverStatus = &offline
	}

	created, err := h.Store.AddUser(u, req.Password)
	if errors.Is(err, ErrEmailTaken) {
		c.JSON(http.StatusConflict, gin.H{"detail": "Email já cadastrado"})
		return
	}
	if err != nil {
		h.Logger.Error("Failed to register user", logger.Err(err))
		c.JSON(http.StatusInternalServerError, gin.H{"detail": "Registration failed"})
		return
	}

	token := h.Store.IssueToken(created.ID)
	h.Hub.Publish(string(user.TypeAdmin), websocket.Message{Type: websocket.EventStatsChanged})
	c.JSON(http.StatusOK, gin.H{"access_token": token, "token_type": "bearer", "user": created})
}

// AdminStats handles GET /api/admin/stats
func (h *Handlers) AdminStats(c *gin.Context) {
	c.JSON(http.StatusOK, h.Store.Stats())
}

// AdminUsers handles GET /api/admin/users
func (h *Handlers) AdminUsers(c *gin.Context) {
	c.JSON(http.StatusOK, h.Store.Users())
}

// AdminTrips handles GET /api/admin/trips
func (h *Handlers) AdminTrips(c *gin.Context) {
	c.JSON(http.StatusOK, h.Store.Trips())
}

// AdminChats handles GET /api/admin/chats
func (h *Handlers) AdminChats(c *gin.Context) {
	c.JSON(http.StatusOK, h.Store.Chats())
}

// PassengerTripHistory handles GET /api/passengers/trip-history
func (h *Handlers) PassengerTripHistory(c *gin.Context) {
	u := currentUser(c)
	c.JSON(http.StatusOK, h.Store.History(u.ID))
}

// CompleteTrip handles POST /api/trips/:id/complete
func (h *Handlers) CompleteTrip(c *gin.Context) {
	var req completeTripRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"detail": "Invalid request payload"})
		return
	}

	driver := currentUser(c)
	t, err := h.Store.CompleteTrip(c.Param("id"), req.FinalPrice, req.DurationMinutes, driver.Name)
	switch {
	case errors.Is(err, ErrTripNotFound):
		c.JSON(http.StatusNotFound, gin.H{"detail": "Viagem não encontrada"})
		return
	case errors.Is(err, ErrTripNotActive):
		c.JSON(http.StatusConflict, gin.H{"detail": "Viagem não está ativa"})
		return
	case err != nil:
		c.JSON(http.StatusInternalServerError, gin.H{"detail": "Failed to complete trip"})
		return
	}

	h.Logger.Info("Trip completed",
		logger.String("trip_id", t.ID),
		logger.String("driver_id", driver.ID),
	)

	h.Hub.Publish(string(user.TypeAdmin), websocket.Message{
		Type: websocket.EventTripCompleted,
		Data: gin.H{"trip_id": t.ID, "final_price": req.FinalPrice},
	})

	c.JSON(http.StatusOK, t)
}

// HandleWebSocket handles GET /ws?token=...
func (h *Handlers) HandleWebSocket(c *gin.Context) {
	u, err := h.Store.Authenticate(c.Query("token"))
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"detail": "Not authenticated"})
		return
	}

	upgrader := gorilla.Upgrader{
		ReadBufferSize:  1024,
		WriteBufferSize: 1024,
		CheckOrigin: func(r *http.Request) bool {
			return true // development backend only
		},
	}

	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		h.Logger.Error("Failed to upgrade to WebSocket", logger.Err(err))
		return
	}

	h.Hub.Serve(conn, u.ID, string(u.UserType))
}

// RequireRole authenticates the bearer token and restricts the route to roles.
func (h *Handlers) RequireRole(roles ...user.Type) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		token, ok := strings.CutPrefix(header, "Bearer ")
		if !ok || token == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"detail": "Not authenticated"})
			return
		}

		u, err := h.Store.Authenticate(token)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"detail": "Invalid token"})
			return
		}

		for _, r := range roles {
			if u.UserType == r {
				c.Set(ctxUserKey, u)
				c.Next()
				return
			}
		}
		c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"detail": "Access denied"})
	}
}

func currentUser(c *gin.Context) user.User {
	v, _ := c.Get(ctxUserKey)
	u, _ := v.(user.User)
	return u
}
