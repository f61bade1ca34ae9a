package faucet

import (
	"errors"
	"fmt"
	"net/http"
	"time"
)

// StatusError is implemented by every admission-time error so the HTTP
// layer can map the taxonomy onto response codes without inspecting
// concrete types.
type StatusError interface {
	error
	Status() int
}

// ValidationError covers malformed input the caller can correct:
// a bad address or an unconfigured series. Maps to 400.
type ValidationError struct {
	Reason string
}

func (e *ValidationError) Error() string { return e.Reason }
func (e *ValidationError) Status() int   { return http.StatusBadRequest }

// StateConflictError covers requests that are well-formed but collide
// with existing claim state: an active cooldown or an already-pending
// NFT claim. Maps to 403. Remaining is zero for the already-pending case.
type StateConflictError struct {
	Reason    string
	Remaining time.Duration
}

func (e *StateConflictError) Error() string {
	if e.Remaining > 0 {
		return fmt.Sprintf("You need to wait %s before making another claim", FormatWait(e.Remaining))
	}
	return e.Reason
}

func (e *StateConflictError) Status() int { return http.StatusForbidden }

// SupplyExhaustedError covers requests the faucet cannot serve right now:
// balance below one payout or an empty NFT series. Maps to 503, retry later.
type SupplyExhaustedError struct {
	Reason string
}

func (e *SupplyExhaustedError) Error() string { return e.Reason }
func (e *SupplyExhaustedError) Status() int   { return http.StatusServiceUnavailable }

// HTTPStatus resolves an error to a response code, defaulting to 500 for
// anything outside the admission taxonomy.
func HTTPStatus(err error) int {
	var se StatusError
	if errors.As(err, &se) {
		return se.Status()
	}
	return http.StatusInternalServerError
}

// FormatWait renders a duration as XhYmZs, floored per unit, the way the
// cooldown message spells out remaining time.
func FormatWait(d time.Duration) string {
	if d < 0 {
		d = 0
	}
	h := int(d.Hours())
	m := int(d.Minutes()) % 60
	s := int(d.Seconds()) % 60
	return fmt.Sprintf("%dh%dm%ds", h, m, s)
}
