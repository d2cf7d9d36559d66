package v1

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"github.com/gameroom/gameroom-api/internal/api/handler/v1/response"
	"github.com/gameroom/gameroom-api/internal/domain"
	"github.com/gameroom/gameroom-api/internal/service"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true // Adjust this for production!
	},
}

type AvailabilityService interface {
	Snapshot() []domain.TileStatus
	Status(id uint) (domain.TileStatus, error)
	ManualToggle(id uint) (domain.StatusEvent, error)
	Stop(id uint) (domain.StatusEvent, error)
	Restart(id uint) (domain.StatusEvent, error)
	Subscribe() (<-chan domain.StatusEvent, func())
}

type AvailabilityHandler struct {
	svc AvailabilityService
}

func NewAvailabilityHandler(svc AvailabilityService) *AvailabilityHandler {
	return &AvailabilityHandler{
		svc: svc,
	}
}

// HandleGetAvailability godoc
// @Summary      Current availability of every tracked activity
// @Tags         availability
// @Produce      json
// @Success      200  {array}  domain.TileStatus
// @Router       /availability [get]
// @Security BearerAuth
func (h *AvailabilityHandler) HandleGetAvailability(ctx *gin.Context) {
	ctx.JSON(http.StatusOK, h.svc.Snapshot())
}

// HandleToggle godoc
// @Summary      Toggle an activity between available and in use
// @Description  Non-board-game activities get a 30-minute window with a running countdown; board games just flip the flag. No transaction is written.
// @Tags         availability
// @Produce      json
// @Param        activityID  path      int  true  "activity ID"
// @Success      200         {object}  domain.StatusEvent
// @Failure      400         {object}  response.Err
// @Failure      404         {object}  response.Err
// @Router       /availability/{activityID}/toggle [post]
// @Security BearerAuth
func (h *AvailabilityHandler) HandleToggle(ctx *gin.Context) {
	h.manualAction(ctx, h.svc.ManualToggle)
}

// HandleStop godoc
// @Summary      Stop an activity's timer
// @Description  Forces the tile back to available. The open transaction is untouched, so the next ledger sweep may flip it back.
// @Tags         availability
// @Produce      json
// @Param        activityID  path      int  true  "activity ID"
// @Success      200         {object}  domain.StatusEvent
// @Failure      400         {object}  response.Err
// @Failure      404         {object}  response.Err
// @Router       /availability/{activityID}/stop [post]
// @Security BearerAuth
func (h *AvailabilityHandler) HandleStop(ctx *gin.Context) {
	h.manualAction(ctx, h.svc.Stop)
}

// HandleRestart godoc
// @Summary      Restart an activity's timer at 30 minutes
// @Tags         availability
// @Produce      json
// @Param        activityID  path      int  true  "activity ID"
// @Success      200         {object}  domain.StatusEvent
// @Failure      400         {object}  response.Err
// @Failure      404         {object}  response.Err
// @Router       /availability/{activityID}/restart [post]
// @Security BearerAuth
func (h *AvailabilityHandler) HandleRestart(ctx *gin.Context) {
	h.manualAction(ctx, h.svc.Restart)
}

func (h *AvailabilityHandler) manualAction(ctx *gin.Context, action func(id uint) (domain.StatusEvent, error)) {
	activityID, err := strconv.ParseUint(ctx.Param("activityID"), 10, 64)
	if err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(fmt.Errorf("invalid activity ID: %v", ctx.Param("activityID"))))
		return
	}

	event, err := action(uint(activityID))
	if err != nil {
		if errors.Is(err, service.ErrActivityNotTracked) {
			response.RenderErr(ctx, response.ErrNotFound("activity", "ID", activityID))
			return
		}

		err = fmt.Errorf("v1.manualAction -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	ctx.JSON(http.StatusOK, event)
}

// HandleWebSocket streams availability events. The client first receives one
// event per tracked tile as a snapshot, then live transitions and countdown
// ticks as they happen.
func (h *AvailabilityHandler) HandleWebSocket(ctx *gin.Context) {
	conn, err := upgrader.Upgrade(ctx.Writer, ctx.Request, nil)
	if err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(fmt.Errorf("websocket upgrade failed: %w", err)))
		return
	}
	defer conn.Close()

	events, unsubscribe := h.svc.Subscribe()
	defer unsubscribe()

	for _, status := range h.svc.Snapshot() {
		if err = conn.WriteJSON(domain.StatusEvent{TileStatus: status}); err != nil {
			return
		}
	}

	// Drain reads so close frames are processed; the stream is write-only.
	go func() {
		for {
			if _, _, readErr := conn.ReadMessage(); readErr != nil {
				return
			}
		}
	}()

	for event := range events {
		if err = conn.WriteJSON(event); err != nil {
			if !websocket.IsCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				zap.L().Debug("availability stream closed", zap.Error(err))
			}
			return
		}
	}
}
