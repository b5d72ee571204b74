package availableinventory

import (
	"context"

	"github.com/google/uuid"

	"github.com/AntonStoeckl/videorental/rental/core"
	"github.com/AntonStoeckl/videorental/rental/shell"
	"github.com/AntonStoeckl/videorental/store"
)

// VideoReader is the part of the store the query needs.
type VideoReader interface {
	GetVideo(ctx context.Context, videoID uuid.UUID) (store.Video, error)
	OpenRentalsForVideo(ctx context.Context, videoID uuid.UUID) (store.Rentals, error)
}

// Result is the video together with its derived availability.
type Result struct {
	shell.HandlerResult

	Video store.Video
}

// QueryHandler answers availability queries outside of a transaction.
// The numbers are a snapshot and may be stale by the time a checkout runs.
type QueryHandler struct {
	reader VideoReader
}

// NewQueryHandler creates a new QueryHandler.
func NewQueryHandler(reader VideoReader) QueryHandler {
	return QueryHandler{reader: reader}
}

// Handle returns the video and its inventory, or store.ErrVideoNotFound.
func (h QueryHandler) Handle(ctx context.Context, query Query) (Result, error) {
	if err := query.Validate(); err != nil {
		return Result{}, err
	}

	video, err := h.reader.GetVideo(ctx, query.VideoID)
	if err != nil {
		return Result{}, err
	}

	openRentals, err := h.reader.OpenRentalsForVideo(ctx, video.ID)
	if err != nil {
		return Result{}, err
	}

	return Result{
		HandlerResult: shell.NewHandlerResult(video.ID, core.AvailableInventory(video, openRentals)),
		Video:         video,
	}, nil
}
