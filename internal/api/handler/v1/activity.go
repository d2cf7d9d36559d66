package v1

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/gameroom/gameroom-api/internal/api/handler/v1/request"
	"github.com/gameroom/gameroom-api/internal/api/handler/v1/response"
	"github.com/gameroom/gameroom-api/internal/domain"
	"github.com/gameroom/gameroom-api/internal/service"
)

type ActivityService interface {
	CreateActivity(ctx context.Context, activity domain.Activity) (domain.Activity, error)
	GetActivity(ctx context.Context, id uint) (domain.Activity, error)
	ListActivities(ctx context.Context) ([]domain.Activity, error)
	ListActiveActivities(ctx context.Context) ([]domain.Activity, error)
	UpdateActivity(ctx context.Context, activity domain.Activity) (domain.Activity, error)
	DeleteActivity(ctx context.Context, id uint) error
}

type ActivityHandler struct {
	svc ActivityService
}

func NewActivityHandler(svc ActivityService) *ActivityHandler {
	return &ActivityHandler{
		svc: svc,
	}
}

// HandleListActivities godoc
// @Summary      List activities
// @Description  Lists all activities; pass active=true for only those eligible for new transactions.
// @Tags         activities
// @Produce      json
// @Param        active   query     bool  false  "only active activities"
// @Success      200      {array}   domain.Activity
// @Failure      500      {object}  response.Err
// @Router       /activities [get]
// @Security BearerAuth
func (h *ActivityHandler) HandleListActivities(ctx *gin.Context) {
	var (
		activities []domain.Activity
		err        error
	)

	if ctx.Query("active") == "true" {
		activities, err = h.svc.ListActiveActivities(ctx.Request.Context())
	} else {
		activities, err = h.svc.ListActivities(ctx.Request.Context())
	}
	if err != nil {
		err = fmt.Errorf("v1.HandleListActivities -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	ctx.JSON(http.StatusOK, activities)
}

// HandleGetActivity godoc
// @Summary      Get an activity by ID
// @Tags         activities
// @Produce      json
// @Param        activityID  path      int  true  "activity ID"
// @Success      200         {object}  domain.Activity
// @Failure      400         {object}  response.Err
// @Failure      404         {object}  response.Err
// @Failure      500         {object}  response.Err
// @Router       /activities/{activityID} [get]
// @Security BearerAuth
func (h *ActivityHandler) HandleGetActivity(ctx *gin.Context) {
	activityID, err := strconv.ParseUint(ctx.Param("activityID"), 10, 64)
	if err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(fmt.Errorf("invalid activity ID: %v", ctx.Param("activityID"))))
		return
	}

	activity, err := h.svc.GetActivity(ctx.Request.Context(), uint(activityID))
	if err != nil {
		if errors.Is(err, service.ErrActivityNotFound) {
			response.RenderErr(ctx, response.ErrNotFound("activity", "ID", activityID))
			return
		}

		err = fmt.Errorf("v1.HandleGetActivity -> h.svc.GetActivity -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	ctx.JSON(http.StatusOK, activity)
}

// HandleCreateActivity godoc
// @Summary      Create an activity
// @Tags         activities
// @Accept       json
// @Produce      json
// @Param        request  body      request.CreateActivityRequest  true  "request body"
// @Success      201      {object}  domain.Activity
// @Failure      400      {object}  response.Err
// @Failure      403      {object}  response.Err
// @Failure      500      {object}  response.Err
// @Router       /activities [post]
// @Security BearerAuth
func (h *ActivityHandler) HandleCreateActivity(ctx *gin.Context) {
	var req request.CreateActivityRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	if err := req.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	isActive := true
	if req.IsActive != nil {
		isActive = *req.IsActive
	}

	activity, err := h.svc.CreateActivity(ctx.Request.Context(), domain.Activity{
		Name:             req.Name,
		Description:      req.Description,
		ImageURL:         req.ImageURL,
		PricePerHalfHour: req.PricePerHalfHour,
		PricePerHour:     req.PricePerHour,
		Available:        req.Available,
		IsActive:         isActive,
	})
	if err != nil {
		err = fmt.Errorf("v1.HandleCreateActivity -> h.svc.CreateActivity -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	ctx.JSON(http.StatusCreated, activity)
}

// HandleUpdateActivity godoc
// @Summary      Update an activity
// @Tags         activities
// @Accept       json
// @Produce      json
// @Param        activityID  path      int                            true  "activity ID"
// @Param        request     body      request.UpdateActivityRequest  true  "request body"
// @Success      200         {object}  domain.Activity
// @Failure      400         {object}  response.Err
// @Failure      404         {object}  response.Err
// @Failure      500         {object}  response.Err
// @Router       /activities/{activityID} [put]
// @Security BearerAuth
func (h *ActivityHandler) HandleUpdateActivity(ctx *gin.Context) {
	activityID, err := strconv.ParseUint(ctx.Param("activityID"), 10, 64)
	if err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(fmt.Errorf("invalid activity ID: %v", ctx.Param("activityID"))))
		return
	}

	var req request.UpdateActivityRequest
	if err = ctx.ShouldBindJSON(&req); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	if err = req.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	isActive := true
	if req.IsActive != nil {
		isActive = *req.IsActive
	}

	activity, err := h.svc.UpdateActivity(ctx.Request.Context(), domain.Activity{
		ID:               uint(activityID),
		Name:             req.Name,
		Description:      req.Description,
		ImageURL:         req.ImageURL,
		PricePerHalfHour: req.PricePerHalfHour,
		PricePerHour:     req.PricePerHour,
		Available:        req.Available,
		IsActive:         isActive,
	})
	if err != nil {
		if errors.Is(err, service.ErrActivityNotFound) {
			response.RenderErr(ctx, response.ErrNotFound("activity", "ID", activityID))
			return
		}

		err = fmt.Errorf("v1.HandleUpdateActivity -> h.svc.UpdateActivity -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	ctx.JSON(http.StatusOK, activity)
}

// HandleDeleteActivity godoc
// @Summary      Delete an activity
// @Tags         activities
// @Produce      json
// @Param        activityID  path  int  true  "activity ID"
// @Success      204         "no content"
// @Failure      400         {object}  response.Err
// @Failure      404         {object}  response.Err
// @Failure      500         {object}  response.Err
// @Router       /activities/{activityID} [delete]
// @Security BearerAuth
func (h *ActivityHandler) HandleDeleteActivity(ctx *gin.Context) {
	activityID, err := strconv.ParseUint(ctx.Param("activityID"), 10, 64)
	if err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(fmt.Errorf("invalid activity ID: %v", ctx.Param("activityID"))))
		return
	}

	if err = h.svc.DeleteActivity(ctx.Request.Context(), uint(activityID)); err != nil {
		if errors.Is(err, service.ErrActivityNotFound) {
			response.RenderErr(ctx, response.ErrNotFound("activity", "ID", activityID))
			return
		}

		err = fmt.Errorf("v1.HandleDeleteActivity -> h.svc.DeleteActivity -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	ctx.Status(http.StatusNoContent)
}
