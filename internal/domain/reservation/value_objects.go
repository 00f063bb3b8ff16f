package reservation

import (
	"errors"
	"fmt"
	"math"
	"time"
)

var ErrInvalidStayRange = errors.New("stay start must be before stay end")

// StayRange is a half-open booking interval [start, end).
type StayRange struct {
	start time.Time
	end   time.Time
}

func NewStayRange(start, end time.Time) (StayRange, error) {
	if !start.Before(end) {
		return StayRange{}, ErrInvalidStayRange
	}
	return StayRange{start: start, end: end}, nil
}

func (s StayRange) Start() time.Time { return s.start }
func (s StayRange) End() time.Time   { return s.end }

// Days is the billable day count: the interval rounded up to whole days,
// never less than one.
func (s StayRange) Days() int {
	days := int(math.Ceil(s.end.Sub(s.start).Hours() / 24))
	if days < 1 {
		days = 1
	}
	return days
}

// Overlaps is the half-open interval test: adjacent ranges do not overlap.
func (s StayRange) Overlaps(other StayRange) bool {
	return s.start.Before(other.end) && s.end.After(other.start)
}

// ToDaterange renders the range in Postgres daterange literal form.
func (s StayRange) ToDaterange() string {
	return fmt.Sprintf("[%s,%s)", s.start.Format("2006-01-02"), s.end.Format("2006-01-02"))
}

type Money struct {
	cents int64
}

func NewMoney(cents int64) Money {
	return Money{cents: cents}
}

func (m Money) Cents() int64 { return m.cents }

func (m Money) Add(other Money) Money {
	return Money{cents: m.cents + other.cents}
}

// ContactInfo is an opaque payload the engine stores but never interprets.
type ContactInfo struct {
	Name  string
	Email string
	Phone string
}

func (c ContactInfo) IsZero() bool {
	return c.Name == "" && c.Email == "" && c.Phone == ""
}
