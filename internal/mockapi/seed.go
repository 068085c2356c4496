package mockapi

import (
	"fmt"
	"time"

	"github.com/masterchefhck/transportdf-mvp-sub001/internal/domain/chat"
	"github.com/masterchefhck/transportdf-mvp-sub001/internal/domain/trip"
	"github.com/masterchefhck/transportdf-mvp-sub001/internal/domain/user"
)

// Seed accounts. Every seeded account uses SeedPassword.
const (
	SeedPassword       = "senha123"
	SeedAdminEmail     = "admin@transportdf.com"
	SeedPassengerEmail = "ana@transportdf.com"
	SeedDriverEmail    = "carlos@transportdf.com"
)

var addresses = [][2]string{
	{"Esplanada dos Ministérios", "Aeroporto de Brasília"},
	{"Asa Norte, SQN 308", "Parque da Cidade"},
	{"Lago Sul, QI 11", "Shopping Iguatemi"},
	{"Taguatinga Centro", "Rodoviária do Plano Piloto"},
	{"Sudoeste, SQSW 300", "UnB - Campus Darcy Ribeiro"},
	{"Águas Claras, Rua 12", "Hospital de Base"},
}

// Seed fills the store with a small but realistic data set.
func Seed(s *Store) error {
	base := time.Date(2026, 9, 1, 8, 0, 0, 0, time.UTC)
	online := user.DriverOnline

	if _, err := s.AddUser(user.User{ID: "admin-1", Name: "Administrador", Email: SeedAdminEmail, UserType: user.TypeAdmin, IsActive: true, CreatedAt: base}, SeedPassword); err != nil {
		return err
	}
	passenger, err := s.AddUser(user.User{ID: "passenger-1", Name: "Ana Souza", Email: SeedPassengerEmail, UserType: user.TypePassenger, IsActive: true, CreatedAt: base.Add(time.Hour)}, SeedPassword)
	if err != nil {
		return err
	}
	driver, err := s.AddUser(user.User{ID: "driver-1", Name: "Carlos Lima", Email: SeedDriverEmail, UserType: user.TypeDriver, IsActive: true, CreatedAt: base.Add(2 * time.Hour), DriverStatus: &online}, SeedPassword)
	if err != nil {
		return err
	}

	statuses := []trip.Status{trip.StatusCompleted, trip.StatusCompleted, trip.StatusCancelled, trip.StatusInProgress, trip.StatusAccepted, trip.StatusRequested}
	for i := 0; i < 12; i++ {
		addr := addresses[i%len(addresses)]
		status := statuses[i%len(statuses)]
		t := trip.Trip{
			ID:                 fmt.Sprintf("trip-%02d", i+1),
			PassengerID:        passenger.ID,
			PickupAddress:      addr[0],
			DestinationAddress: addr[1],
			EstimatedPrice:     18.5 + float64(i)*3.25,
			Status:             status,
			RequestedAt:        base.Add(time.Duration(i) * 6 * time.Hour),
		}
		if status != trip.StatusRequested {
			id := driver.ID
			t.DriverID = &id
		}
		s.AddTrip(t)

		if status == trip.StatusCompleted {
			completed := t.RequestedAt.Add(35 * time.Minute)
			duration := 35
			rating := 4.8
			given := 5
			s.AddHistory(passenger.ID, trip.HistoryEntry{
				ID:                   t.ID,
				PickupAddress:        t.PickupAddress,
				DestinationAddress:   t.DestinationAddress,
				FinalPrice:           t.EstimatedPrice,
				Status:               status,
				RequestedAt:          t.RequestedAt,
				CompletedAt:          &completed,
				DurationMinutes:      &duration,
				DriverName:           driver.Name,
				DriverRating:         &rating,
				PassengerRatingGiven: &given,
			})
		}

		if status != trip.StatusRequested {
			last := t.RequestedAt.Add(5 * time.Minute)
			s.AddChat(chat.Summary{
				TripID:                 t.ID,
				TripPickupAddress:      t.PickupAddress,
				TripDestinationAddress: t.DestinationAddress,
				TripStatus:             status,
				MessageCount:           2 + i%4,
				PassengerName:          passenger.Name,
				DriverName:             driver.Name,
				LastMessage:            "Estou chegando, aguarde na portaria.",
				LastTimestamp:          &last,
			})
		}
	}
	return nil
}
