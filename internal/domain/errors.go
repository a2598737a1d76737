package domain

import "errors"

var (
	// ErrNotFound indicates the requested entity was not found.
	ErrNotFound = errors.New("not found")

	// ErrSubmitInFlight indicates a submit was attempted while another one is running.
	ErrSubmitInFlight = errors.New("submit already in flight")

	// ErrOrderSaved indicates a mutation was attempted on an already saved order.
	ErrOrderSaved = errors.New("order already saved")

	// ErrOffLadder indicates a fee or deposit value outside the allowed tiers.
	ErrOffLadder = errors.New("value not on the allowed ladder")

	// ErrStepBlocked indicates step advancement was blocked by missing fields.
	ErrStepBlocked = errors.New("step requirements not met")
)
