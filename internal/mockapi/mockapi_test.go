package mockapi

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/masterchefhck/transportdf-mvp-sub001/internal/domain/trip"
	"github.com/masterchefhck/transportdf-mvp-sub001/pkg/logger"
	"github.com/masterchefhck/transportdf-mvp-sub001/pkg/websocket"
)

func newTestRouter(t *testing.T) (*gin.Engine, *Store) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	store := NewStore()
	require.NoError(t, Seed(store))

	hub := websocket.NewHub(logger.NewNop())
	go hub.Run()
	t.Cleanup(hub.Stop)

	return NewRouter(NewHandlers(store, logger.NewNop(), hub), nil), store
}

// TestSeed_Stats tests the aggregate counters over the seed data
func TestSeed_Stats(t *testing.T) {
	store := NewStore()
	require.NoError(t, Seed(store))

	st := store.Stats()
	assert.Equal(t, 3, st.TotalUsers)
	assert.Equal(t, 1, st.TotalDrivers)
	assert.Equal(t, 1, st.TotalPassengers)
	assert.Equal(t, 12, st.TotalTrips)
	assert.Equal(t, 4, st.CompletedTrips)
	assert.InDelta(t, 33.33, st.CompletionRate, 0.01)
}

// TestCompleteTrip_Transitions tests which trips can be completed
func TestCompleteTrip_Transitions(t *testing.T) {
	store := NewStore()
	require.NoError(t, Seed(store))

	before := len(store.History("passenger-1"))

	_, err := store.CompleteTrip("trip-04", 40, 20, "Carlos Lima") // in_progress
	require.NoError(t, err)
	assert.Len(t, store.History("passenger-1"), before+1)

	_, err = store.CompleteTrip("trip-01", 40, 20, "Carlos Lima") // already completed
	assert.ErrorIs(t, err, ErrTripNotActive)

	_, err = store.CompleteTrip("nope", 40, 20, "Carlos Lima")
	assert.ErrorIs(t, err, ErrTripNotFound)

	for _, tr := range store.Trips() {
		if tr.ID == "trip-04" {
			assert.Equal(t, trip.StatusCompleted, tr.Status)
		}
	}
}

// TestRequireRole_Responses tests auth middleware status codes
func TestRequireRole_Responses(t *testing.T) {
	router, store := newTestRouter(t)

	adminToken, _, err := store.Login(SeedAdminEmail, SeedPassword)
	require.NoError(t, err)
	passengerToken, _, err := store.Login(SeedPassengerEmail, SeedPassword)
	require.NoError(t, err)

	tests := []struct {
		name   string
		path   string
		header string
		status int
	}{
		{"no header", "/api/admin/stats", "", http.StatusUnauthorized},
		{"unknown token", "/api/admin/stats", "Bearer nope", http.StatusUnauthorized},
		{"wrong role", "/api/admin/stats", "Bearer " + passengerToken, http.StatusForbidden},
		{"admin ok", "/api/admin/stats", "Bearer " + adminToken, http.StatusOK},
		{"passenger history", "/api/passengers/trip-history", "Bearer " + passengerToken, http.StatusOK},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, tt.path, nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			w := httptest.NewRecorder()
			router.ServeHTTP(w, req)
			assert.Equal(t, tt.status, w.Code)
		})
	}
}

// TestRegister_DuplicateEmail tests conflict on an existing email
func TestRegister_DuplicateEmail(t *testing.T) {
	router, _ := newTestRouter(t)

	body := `{"name":"Ana","email":"` + SeedPassengerEmail + `","password":"secret1","user_type":"passenger"}`
	req := httptest.NewRequest(http.MethodPost, "/api/auth/register", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusConflict, w.Code)
}
