package response

import (
	"time"

	"carmarket-engine/internal/usecase/queries"

	"github.com/google/uuid"
)

type ReservationResponse struct {
	ID           uuid.UUID `json:"id"`
	CarID        uuid.UUID `json:"carId"`
	RequesterID  uuid.UUID `json:"requesterId"`
	OwnerID      uuid.UUID `json:"ownerId"`
	StartAt      time.Time `json:"startAt"`
	EndAt        time.Time `json:"endAt"`
	Status       string    `json:"status"`
	TotalCents   int64     `json:"totalCents"`
	Currency     string    `json:"currency"`
	ContactName  *string   `json:"contactName,omitempty"`
	ContactEmail *string   `json:"contactEmail,omitempty"`
	ContactPhone *string   `json:"contactPhone,omitempty"`
	Note         *string   `json:"note,omitempty"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

type ReservationListResponse struct {
	ID         uuid.UUID `json:"id"`
	CarID      uuid.UUID `json:"carId"`
	StartAt    time.Time `json:"startAt"`
	EndAt      time.Time `json:"endAt"`
	Status     string    `json:"status"`
	TotalCents int64     `json:"totalCents"`
	Currency   string    `json:"currency"`
	CreatedAt  time.Time `json:"createdAt"`
}

func FromReservationView(rm *queries.ReservationView) *ReservationResponse {
	return &ReservationResponse{
		ID:           rm.ID,
		CarID:        rm.CarID,
		RequesterID:  rm.RequesterID,
		OwnerID:      rm.OwnerID,
		StartAt:      rm.StartAt,
		EndAt:        rm.EndAt,
		Status:       rm.Status,
		TotalCents:   rm.TotalCents,
		Currency:     rm.Currency,
		ContactName:  rm.ContactName,
		ContactEmail: rm.ContactEmail,
		ContactPhone: rm.ContactPhone,
		Note:         rm.Note,
		CreatedAt:    rm.CreatedAt,
		UpdatedAt:    rm.UpdatedAt,
	}
}

func FromReservationListItem(rm *queries.ReservationListItem) *ReservationListResponse {
	return &ReservationListResponse{
		ID:         rm.ID,
		CarID:      rm.CarID,
		StartAt:    rm.StartAt,
		EndAt:      rm.EndAt,
		Status:     rm.Status,
		TotalCents: rm.TotalCents,
		Currency:   rm.Currency,
		CreatedAt:  rm.CreatedAt,
	}
}

type QuoteResponse struct {
	Days           int    `json:"days"`
	DailyRateCents int64  `json:"dailyRateCents"`
	SubtotalCents  int64  `json:"subtotalCents"`
	DepositCents   int64  `json:"depositCents"`
	TotalCents     int64  `json:"totalCents"`
	Currency       string `json:"currency"`
}

func FromQuoteView(qm *queries.QuoteView) *QuoteResponse {
	return &QuoteResponse{
		Days:           qm.Days,
		DailyRateCents: qm.DailyRateCents,
		SubtotalCents:  qm.SubtotalCents,
		DepositCents:   qm.DepositCents,
		TotalCents:     qm.TotalCents,
		Currency:       qm.Currency,
	}
}

type ConflictingStayResponse struct {
	StartAt time.Time `json:"startAt"`
	EndAt   time.Time `json:"endAt"`
	Status  string    `json:"status"`
}

type AvailabilityResponse struct {
	Available bool                      `json:"available"`
	Conflicts []ConflictingStayResponse `json:"conflicts"`
}

func FromAvailabilityView(am *queries.AvailabilityView) *AvailabilityResponse {
	conflicts := make([]ConflictingStayResponse, 0, len(am.Conflicts))
	for _, c := range am.Conflicts {
		conflicts = append(conflicts, ConflictingStayResponse{
			StartAt: c.StartAt,
			EndAt:   c.EndAt,
			Status:  c.Status,
		})
	}
	return &AvailabilityResponse{
		Available: am.Available,
		Conflicts: conflicts,
	}
}
