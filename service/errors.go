package service

import (
	"errors"
	"fmt"
	"net/http"
)

// Precondition failures raised before any network call.
var (
	ErrNoActiveAccount   = errors.New("no active carrier account configured")
	ErrCredentialMissing = errors.New("carrier account credentials incomplete")
	ErrMissingPickupInfo = errors.New("pickup point delivery selected without a pickup point id")
)

// HTTP-level specializations, matched through HTTPError.Unwrap.
var (
	ErrUnauthorized = errors.New("carrier API rejected credentials")
	ErrForbidden    = errors.New("carrier API refused access")
)

// TransportError wraps DNS/timeout/connection failures.
type TransportError struct {
	Err error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("carrier transport failure: %v", e.Err)
}

func (e *TransportError) Unwrap() error { return e.Err }

// HTTPError reports a response with status >= 400.
type HTTPError struct {
	StatusCode int
}

func (e *HTTPError) Error() string {
	return fmt.Sprintf("carrier API returned HTTP %d", e.StatusCode)
}

func (e *HTTPError) Unwrap() error {
	switch e.StatusCode {
	case http.StatusUnauthorized:
		return ErrUnauthorized
	case http.StatusForbidden:
		return ErrForbidden
	}
	return nil
}

// MalformedResponseError reports a body that failed to decode.
type MalformedResponseError struct {
	Err error
}

func (e *MalformedResponseError) Error() string {
	return fmt.Sprintf("carrier response could not be decoded: %v", e.Err)
}

func (e *MalformedResponseError) Unwrap() error { return e.Err }

// APIError is a carrier-level general error: either a non-zero
// top-level error code or a batch error entry that no shipment could
// be attributed to.
type APIError struct {
	Code        int
	Description string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("carrier API error %d: %s", e.Code, e.Description)
}

// PerShipmentError attributes a batch error entry to one shipment.
// For single-shipment calls it is escalated to the call error.
type PerShipmentError struct {
	ShipmentID  string
	Code        int
	Description string
}

func (e *PerShipmentError) Error() string {
	return fmt.Sprintf("shipment %s rejected by carrier (%d): %s", e.ShipmentID, e.Code, e.Description)
}
