package get_room_details

import (
	"context"

	"github.com/neohelios/occupancy-dashboard/internal/usecase/room_details"
)

// RoomDetailsUseCase lists the per-room states of one sailing.
type RoomDetailsUseCase interface {
	Execute(ctx context.Context, req room_details.Request) (*room_details.Response, error)
}

// Logger is the logging interface the handler needs.
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
