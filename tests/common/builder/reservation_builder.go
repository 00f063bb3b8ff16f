//go:build unit || e2e

package builder

import (
	"time"

	domreservation "carmarket-engine/internal/domain/reservation"
	reqdto "carmarket-engine/internal/handler/dto/request"
	"carmarket-engine/internal/usecase/queries"

	"github.com/google/uuid"
)

type ReservationBuilder struct {
	Car          *CarBuilder
	RequesterID  uuid.UUID
	StartAt      time.Time
	EndAt        time.Time
	ContactName  string
	ContactEmail string
	ContactPhone string
	Note         string
	Now          time.Time
}

func NewReservationBuilder() *ReservationBuilder {
	now := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)
	return &ReservationBuilder{
		Car:          NewCarBuilder(),
		RequesterID:  uuid.New(),
		StartAt:      now.AddDate(0, 0, 7),
		EndAt:        now.AddDate(0, 0, 10),
		ContactName:  "Avery Renter",
		ContactEmail: "avery@example.com",
		ContactPhone: "+1-555-0100",
		Note:         "Airport pickup if possible",
		Now:          now,
	}
}

func (b *ReservationBuilder) With(mutate func(*ReservationBuilder)) *ReservationBuilder {
	mutate(b)
	return b
}

func (b *ReservationBuilder) BuildDomain() (*domreservation.Reservation, error) {
	listing, err := b.Car.BuildDomain()
	if err != nil {
		return nil, err
	}
	stay, err := domreservation.NewStayRange(b.StartAt, b.EndAt)
	if err != nil {
		return nil, err
	}
	contact := domreservation.ContactInfo{
		Name:  b.ContactName,
		Email: b.ContactEmail,
		Phone: b.ContactPhone,
	}
	return domreservation.NewReservation(listing, b.RequesterID, stay, contact, b.Note, b.Now), nil
}

func (b *ReservationBuilder) BuildCreateRequestDTO() reqdto.CreateReservationRequest {
	name := b.ContactName
	email := b.ContactEmail
	phone := b.ContactPhone
	note := b.Note
	return reqdto.CreateReservationRequest{
		CarID:        b.Car.ID,
		StartAt:      b.StartAt,
		EndAt:        b.EndAt,
		ContactName:  &name,
		ContactEmail: &email,
		ContactPhone: &phone,
		Note:         &note,
	}
}

func (b *ReservationBuilder) BuildView() *queries.ReservationView {
	name := b.ContactName
	email := b.ContactEmail
	phone := b.ContactPhone
	note := b.Note
	days := int64(b.EndAt.Sub(b.StartAt).Hours()) / 24
	if days < 1 {
		days = 1
	}
	return &queries.ReservationView{
		ID:           uuid.New(),
		CarID:        b.Car.ID,
		RequesterID:  b.RequesterID,
		OwnerID:      b.Car.OwnerID,
		StartAt:      b.StartAt,
		EndAt:        b.EndAt,
		Status:       domreservation.StatusPending.String(),
		TotalCents:   days * b.Car.DailyRateCents,
		Currency:     b.Car.Currency,
		ContactName:  &name,
		ContactEmail: &email,
		ContactPhone: &phone,
		Note:         &note,
		CreatedAt:    b.Now,
		UpdatedAt:    b.Now,
	}
}
