package reservation

import "math"

const depositRate = 0.20

// Quote is the side-effect-free price breakdown for a prospective stay.
// The deposit exists only on quotes; a created reservation stores the bare
// days-times-rate total.
type Quote struct {
	Days           int
	DailyRateCents int64
	SubtotalCents  int64
	DepositCents   int64
	TotalCents     int64
	Currency       string
}

func ComputeQuote(stay StayRange, dailyRateCents int64, currency string) Quote {
	days := stay.Days()
	subtotal := int64(days) * dailyRateCents
	deposit := int64(math.Round(float64(subtotal) * depositRate))

	return Quote{
		Days:           days,
		DailyRateCents: dailyRateCents,
		SubtotalCents:  subtotal,
		DepositCents:   deposit,
		TotalCents:     subtotal + deposit,
		Currency:       currency,
	}
}
