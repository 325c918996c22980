package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/avelichko/gameroom-server/internal/core"
)

// RoomHandlers exposes the live room registry over REST.
type RoomHandlers struct {
	registry *core.Registry
	log      *zerolog.Logger
}

// NewRoomHandlers creates a new room handlers instance.
func NewRoomHandlers(registry *core.Registry, logger *zerolog.Logger) *RoomHandlers {
	return &RoomHandlers{
		registry: registry,
		log:      logger,
	}
}

// RoomListResponse represents the current room names.
type RoomListResponse struct {
	Rooms []string `json:"rooms"`
}

// List handles listing currently existing rooms. The snapshot is
// point-in-time; rooms may appear or vanish right after.
// GET /api/rooms
func (h *RoomHandlers) List(c *gin.Context) {
	names := h.registry.Names()
	h.log.Debug().Int("room_count", len(names)).Msg("rooms listed")
	c.JSON(http.StatusOK, RoomListResponse{Rooms: names})
}
