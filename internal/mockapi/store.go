package mockapi

import (
	"errors"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/masterchefhck/transportdf-mvp-sub001/internal/domain/chat"
	"github.com/masterchefhck/transportdf-mvp-sub001/internal/domain/stats"
	"github.com/masterchefhck/transportdf-mvp-sub001/internal/domain/trip"
	"github.com/masterchefhck/transportdf-mvp-sub001/internal/domain/user"
)

var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrEmailTaken         = errors.New("email already registered")
	ErrUnknownToken       = errors.New("unknown token")
	ErrTripNotFound       = errors.New("trip not found")
	ErrTripNotActive      = errors.New("trip is not active")
)

type account struct {
	user         user.User
	passwordHash []byte
}

// Store is the development backend's in-memory data set
type Store struct {
	mu       sync.RWMutex
	accounts map[string]*account // by email
	tokens   map[string]string   // token -> user id
	trips    []trip.Trip
	history  map[string][]trip.HistoryEntry // by passenger id
	chats    []chat.Summary
	now      func() time.Time
}

// NewStore creates an empty store
func NewStore() *Store {
	return &Store{
		accounts: make(map[string]*account),
		tokens:   make(map[string]string),
		history:  make(map[string][]trip.HistoryEntry),
		now:      time.Now,
	}
}

// AddUser registers an account with a bcrypt-hashed password.
func (s *Store) AddUser(u user.User, password string) (user.User, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	if err != nil {
		return user.User{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.accounts[u.Email]; ok {
		return user.User{}, ErrEmailTaken
	}
	if u.ID == "" {
		u.ID = uuid.NewString()
	}
	if u.CreatedAt.IsZero() {
		u.CreatedAt = s.now()
	}
	s.accounts[u.Email] = &account{user: u, passwordHash: hash}
	return u, nil
}

// Login checks credentials and issues a new opaque token.
func (s *Store) Login(email, password string) (string, user.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	acc, ok := s.accounts[email]
	if !ok {
		return "", user.User{}, ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword(acc.passwordHash, []byte(password)); err != nil {
		return "", user.User{}, ErrInvalidCredentials
	}
	token := uuid.NewString()
	s.tokens[token] = acc.user.ID
	return token, acc.user, nil
}

// IssueToken creates a token for an existing user id without a password.
func (s *Store) IssueToken(userID string) string {
	s.mu.Lock()
	defer s.mu.Unlock()
	token := uuid.NewString()
	s.tokens[token] = userID
	return token
}

// RevokeToken forgets a token
func (s *Store) RevokeToken(token string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.tokens, token)
}

// Authenticate resolves a bearer token
func (s *Store) Authenticate(token string) (user.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	id, ok := s.tokens[token]
	if !ok {
		return user.User{}, ErrUnknownToken
	}
	for _, acc := range s.accounts {
		if acc.user.ID == id {
			return acc.user, nil
		}
	}
	return user.User{}, ErrUnknownToken
}

// Users lists every account ordered by creation time
func (s *Store) Users() []user.User {
	s.mu.RLock()
	defer s.mu.RUnlock()

	users := make([]user.User, 0, len(s.accounts))
	for _, acc := range s.accounts {
		users = append(users, acc.user)
	}
	sort.Slice(users, func(i, j int) bool { return users[i].CreatedAt.Before(users[j].CreatedAt) })
	return users
}

// Trips returns all trips in insertion order
func (s *Store) Trips() []trip.Trip {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]trip.Trip, len(s.trips))
	copy(out, s.trips)
	return out
}

// AddTrip appends a trip
func (s *Store) AddTrip(t trip.Trip) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if t.ID == "" {
		t.ID = uuid.NewString()
	}
	s.trips = append(s.trips, t)
}

// Chats returns every chat summary
func (s *Store) Chats() []chat.Summary {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]chat.Summary, len(s.chats))
	copy(out, s.chats)
	return out
}

// AddChat appends a chat summary
func (s *Store) AddChat(c chat.Summary) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.chats = append(s.chats, c)
}

// History returns a passenger's finished trips
func (s *Store) History(passengerID string) []trip.HistoryEntry {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]trip.HistoryEntry, len(s.history[passengerID]))
	copy(out, s.history[passengerID])
	return out
}

// AddHistory appends a finished trip to a passenger's history
func (s *Store) AddHistory(passengerID string, e trip.HistoryEntry) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.history[passengerID] = append(s.history[passengerID], e)
}

// CompleteTrip moves an accepted or in-progress trip to completed and
// records it in the passenger's history.
func (s *Store) CompleteTrip(id string, finalPrice float64, durationMinutes int, driverName string) (trip.Trip, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.trips {
		t := &s.trips[i]
		if t.ID != id {
			continue
		}
		if t.Status != trip.StatusAccepted && t.Status != trip.StatusInProgress {
			return trip.Trip{}, ErrTripNotActive
		}
		t.Status = trip.StatusCompleted
		completed := s.now()
		s.history[t.PassengerID] = append(s.history[t.PassengerID], trip.HistoryEntry{
			ID:                 t.ID,
			PickupAddress:      t.PickupAddress,
			DestinationAddress: t.DestinationAddress,
			FinalPrice:         finalPrice,
			Status:             trip.StatusCompleted,
			RequestedAt:        t.RequestedAt,
			CompletedAt:        &completed,
			DurationMinutes:    &durationMinutes,
			DriverName:         driverName,
		})
		return *t, nil
	}
	return trip.Trip{}, ErrTripNotFound
}

// Stats aggregates the counters shown on the admin dashboard
func (s *Store) Stats() stats.Stats {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var st stats.Stats
	for _, acc := range s.accounts {
		st.TotalUsers++
		switch acc.user.UserType {
		case user.TypeDriver:
			st.TotalDrivers++
		case user.TypePassenger:
			st.TotalPassengers++
		}
	}
	st.TotalTrips = len(s.trips)
	for _, t := range s.trips {
		if t.Status == trip.StatusCompleted {
			st.CompletedTrips++
		}
	}
	if st.TotalTrips > 0 {
		st.CompletionRate = float64(st.CompletedTrips) / float64(st.TotalTrips) * 100
	}
	return st
}
