package v1

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/gameroom/gameroom-api/internal/api/handler/v1/response"
	"github.com/gameroom/gameroom-api/internal/domain"
	"github.com/gameroom/gameroom-api/internal/service"
)

type ReportService interface {
	GenerateDailyReport(ctx context.Context, date time.Time) (domain.DailyReport, error)
	GenerateShiftReport(ctx context.Context, userID uint, date time.Time, startTime, endTime string) (domain.ShiftReport, error)
}

type ReportHandler struct {
	svc ReportService
}

func NewReportHandler(svc ReportService) *ReportHandler {
	return &ReportHandler{
		svc: svc,
	}
}

// HandleDailyReport godoc
// @Summary      Daily revenue report
// @Description  Totals and per-activity breakdown for one day. date defaults to today (YYYY-MM-DD).
// @Tags         reports
// @Produce      json
// @Param        date     query     string  false  "report date"
// @Success      200      {object}  domain.DailyReport
// @Failure      400      {object}  response.Err
// @Failure      500      {object}  response.Err
// @Router       /reports/daily [get]
// @Security BearerAuth
func (h *ReportHandler) HandleDailyReport(ctx *gin.Context) {
	date, respErr := parseReportDate(ctx.Query("date"))
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	report, err := h.svc.GenerateDailyReport(ctx.Request.Context(), date)
	if err != nil {
		err = fmt.Errorf("v1.HandleDailyReport -> h.svc.GenerateDailyReport -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	ctx.JSON(http.StatusOK, report)
}

// HandleShiftReport godoc
// @Summary      Shift report for an attendant
// @Tags         reports
// @Produce      json
// @Param        user_id  query     int     true   "attendant user ID"
// @Param        date     query     string  false  "shift date (YYYY-MM-DD)"
// @Param        start    query     string  true   "shift start (HH:MM)"
// @Param        end      query     string  true   "shift end (HH:MM)"
// @Success      200      {object}  domain.ShiftReport
// @Failure      400      {object}  response.Err
// @Failure      500      {object}  response.Err
// @Router       /reports/shift [get]
// @Security BearerAuth
func (h *ReportHandler) HandleShiftReport(ctx *gin.Context) {
	userID, err := strconv.ParseUint(ctx.Query("user_id"), 10, 64)
	if err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(fmt.Errorf("invalid user_id: %v", ctx.Query("user_id"))))
		return
	}

	date, respErr := parseReportDate(ctx.Query("date"))
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	report, err := h.svc.GenerateShiftReport(ctx.Request.Context(), uint(userID), date, ctx.Query("start"), ctx.Query("end"))
	if err != nil {
		if errors.Is(err, service.ErrInvalidShiftWindow) {
			response.RenderErr(ctx, response.ErrBadRequest(service.ErrInvalidShiftWindow))
			return
		}

		err = fmt.Errorf("v1.HandleShiftReport -> h.svc.GenerateShiftReport -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	ctx.JSON(http.StatusOK, report)
}

// HandleExportDailyReport godoc
// @Summary      Export a daily report as a JSON file
// @Tags         reports
// @Produce      json
// @Param        date     query     string  false  "report date"
// @Success      200      {object}  domain.DailyReport
// @Failure      400      {object}  response.Err
// @Failure      500      {object}  response.Err
// @Router       /reports/daily/export [get]
// @Security BearerAuth
func (h *ReportHandler) HandleExportDailyReport(ctx *gin.Context) {
	date, respErr := parseReportDate(ctx.Query("date"))
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	report, err := h.svc.GenerateDailyReport(ctx.Request.Context(), date)
	if err != nil {
		err = fmt.Errorf("v1.HandleExportDailyReport -> h.svc.GenerateDailyReport -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	pretty, err := json.MarshalIndent(report, "", "  ")
	if err != nil {
		err = fmt.Errorf("v1.HandleExportDailyReport -> json.MarshalIndent -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	fileName := fmt.Sprintf("daily_report_%v.json", report.Date)
	ctx.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", fileName))
	ctx.Data(http.StatusOK, "application/json", pretty)
}

func parseReportDate(value string) (time.Time, *response.Err) {
	if value == "" {
		return time.Now(), nil
	}

	date, err := time.ParseInLocation("2006-01-02", value, time.Local)
	if err != nil {
		return time.Time{}, response.ErrBadRequest(fmt.Errorf("invalid date %q, expected YYYY-MM-DD", value))
	}

	return date, nil
}
