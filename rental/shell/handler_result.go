package shell

import (
	"github.com/google/uuid"

	"github.com/AntonStoeckl/videorental/rental/core"
)

// HandlerResult carries the execution metadata of a handler call without coupling the handler
// to a specific observability implementation.
type HandlerResult struct {
	// VideoID is the video whose inventory was evaluated, uuid.Nil if none.
	VideoID uuid.UUID

	// Inventory is the availability the handler observed or produced for VideoID.
	Inventory core.Inventory
}

// Metadata implements Result. Feature results embed HandlerResult to satisfy the interface.
func (r HandlerResult) Metadata() HandlerResult {
	return r
}

// NewHandlerResult creates a HandlerResult for one video.
func NewHandlerResult(videoID uuid.UUID, inventory core.Inventory) HandlerResult {
	return HandlerResult{
		VideoID:   videoID,
		Inventory: inventory,
	}
}
