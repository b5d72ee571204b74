package checkout

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/AntonStoeckl/videorental/rental/core"
)

const commandType = "CheckOutVideo"

// Command represents the intent to check out one copy of a video to a customer.
type Command struct {
	VideoID    uuid.UUID
	CustomerID uuid.UUID
	OccurredAt time.Time
}

// BuildCommand creates a new Command with the provided parameters.
func BuildCommand(videoID uuid.UUID, customerID uuid.UUID, occurredAt time.Time) Command {
	return Command{
		VideoID:    videoID,
		CustomerID: customerID,
		OccurredAt: occurredAt,
	}
}

// CommandType returns the command type name.
func (c Command) CommandType() string {
	return commandType
}

// Validate reports missing ids as core.ErrValidation.
func (c Command) Validate() error {
	if c.VideoID == uuid.Nil {
		return fmt.Errorf("%w: video_id is required", core.ErrValidation)
	}

	if c.CustomerID == uuid.Nil {
		return fmt.Errorf("%w: customer_id is required", core.ErrValidation)
	}

	return nil
}
