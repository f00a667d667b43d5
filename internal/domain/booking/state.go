package booking

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shareit-rentals/service-booking/pkg/domain"
)

// State is a listing filter token.
type State string

const (
	StateAll      State = "ALL"
	StateCurrent  State = "CURRENT"
	StatePast     State = "PAST"
	StateFuture   State = "FUTURE"
	StateWaiting  State = "WAITING"
	StateRejected State = "REJECTED"
)

// ParseState resolves a state token. An empty token means ALL. Tokens are
// case-sensitive.
func ParseState(s string) (State, error) {
	if strings.TrimSpace(s) == "" {
		return StateAll, nil
	}
	switch st := State(s); st {
	case StateAll, StateCurrent, StatePast, StateFuture, StateWaiting, StateRejected:
		return st, nil
	}
	return "", domain.NewValidationError(fmt.Sprintf("Unknown state: %s", s))
}

// Role selects whose bookings are listed.
type Role int

const (
	RoleBooker Role = iota
	RoleOwner
)

func (r Role) String() string {
	if r == RoleOwner {
		return "owner"
	}
	return "booker"
}

// Period restricts bookings by their position relative to an instant.
type Period int

const (
	PeriodAny Period = iota
	// PeriodCurrent matches start <= at <= end.
	PeriodCurrent
	// PeriodPast matches end < at.
	PeriodPast
	// PeriodFuture matches start > at.
	PeriodFuture
)

// Criteria is a storage-neutral description of a listing query. Results are
// always ordered by start descending.
type Criteria struct {
	Role   Role
	UserID uuid.UUID
	// Status is empty when any status matches.
	Status Status
	Period Period
	At     time.Time
}

// Criteria translates the state token into a query for the given role.
func (s State) Criteria(role Role, userID uuid.UUID, now time.Time) Criteria {
	c := Criteria{Role: role, UserID: userID, At: now}
	switch s {
	case StateCurrent:
		c.Period = PeriodCurrent
	case StatePast:
		c.Period = PeriodPast
	case StateFuture:
		c.Period = PeriodFuture
	case StateWaiting:
		c.Status = StatusWaiting
	case StateRejected:
		c.Status = StatusRejected
	}
	return c
}

// Matches reports whether b satisfies the criteria.
func (c Criteria) Matches(b *Booking) bool {
	switch c.Role {
	case RoleOwner:
		if b.OwnerID() != c.UserID {
			return false
		}
	default:
		if b.BookerID() != c.UserID {
			return false
		}
	}
	if c.Status != "" && b.Status() != c.Status {
		return false
	}
	switch c.Period {
	case PeriodCurrent:
		return !c.At.Before(b.Start()) && !c.At.After(b.End())
	case PeriodPast:
		return b.End().Before(c.At)
	case PeriodFuture:
		return b.Start().After(c.At)
	}
	return true
}
