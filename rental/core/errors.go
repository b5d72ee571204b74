package core

import (
	"errors"

	"github.com/AntonStoeckl/videorental/store"
)

var (
	// ErrValidation marks a missing or malformed input field.
	ErrValidation = errors.New("validation failed")

	// ErrInventoryExhausted is returned by a checkout when no copy of the video is available.
	ErrInventoryExhausted = errors.New("could not perform checkout: no available inventory")

	// ErrNoOpenRental is returned by a checkin when the customer has no open rental of the video.
	ErrNoOpenRental = errors.New("could not perform checkin: no open rental for this video and customer")

	// ErrDataInconsistency describes more open rentals than copies. It is logged and counted, never returned.
	ErrDataInconsistency = errors.New("video has more open rentals than total inventory")
)

// ErrorKind classifies errors for callers that need to react per category, e.g. the HTTP layer.
type ErrorKind string

const (
	KindNone               ErrorKind = ""
	KindValidation         ErrorKind = "validation"
	KindNotFound           ErrorKind = "not_found"
	KindInventoryExhausted ErrorKind = "inventory_exhausted"
	KindNoOpenRental       ErrorKind = "no_open_rental"
	KindEntityInUse        ErrorKind = "entity_in_use"
	KindDataInconsistency  ErrorKind = "data_inconsistency"
	KindStorage            ErrorKind = "storage"
	KindUnknown            ErrorKind = "unknown"
)

// KindOf returns the ErrorKind of err. Storage failures are checked last so that a business
// error joined with a storage cause keeps its business kind.
func KindOf(err error) ErrorKind {
	switch {
	case err == nil:
		return KindNone
	case errors.Is(err, ErrValidation):
		return KindValidation
	case errors.Is(err, store.ErrNotFound):
		return KindNotFound
	case errors.Is(err, ErrInventoryExhausted):
		return KindInventoryExhausted
	case errors.Is(err, ErrNoOpenRental):
		return KindNoOpenRental
	case errors.Is(err, store.ErrEntityInUse):
		return KindEntityInUse
	case errors.Is(err, ErrDataInconsistency):
		return KindDataInconsistency
	case errors.Is(err, store.ErrStorage):
		return KindStorage
	default:
		return KindUnknown
	}
}
