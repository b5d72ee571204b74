package availableinventory

import (
	"fmt"

	"github.com/google/uuid"

	"github.com/AntonStoeckl/videorental/rental/core"
)

const queryType = "AvailableInventory"

// Query asks for the available inventory of one video.
type Query struct {
	VideoID uuid.UUID
}

// BuildQuery creates a new Query.
func BuildQuery(videoID uuid.UUID) Query {
	return Query{VideoID: videoID}
}

// QueryType returns the query type name.
func (q Query) QueryType() string {
	return queryType
}

// Validate reports a missing video id as core.ErrValidation.
func (q Query) Validate() error {
	if q.VideoID == uuid.Nil {
		return fmt.Errorf("%w: video_id is required", core.ErrValidation)
	}

	return nil
}
