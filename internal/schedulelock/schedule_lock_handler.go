package schedulelock

import (
	"net/http"
	"time"

	schedulelockerrors "go-roster/internal/schedulelock/errors"
	"go-roster/internal/shared/apperror"
	"go-roster/internal/shared/response"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

type Handler struct {
	service Service
	logger  *zap.Logger
}

func NewHandler(service Service, logger ...*zap.Logger) *Handler {
	l := zap.L().Named("schedulelock.handler")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("schedulelock.handler")
	}
	return &Handler{service: service, logger: l}
}

func getActorID(c *gin.Context) string {
	actorID := c.GetString("employee_id")
	if actorID == "" {
		actorID = c.GetString("user_id_validated")
	}
	return actorID
}

func (h *Handler) writeServiceError(c *gin.Context, err error) {
	httpErr := apperror.ToHTTP(err)
	h.logger.Warn("schedule lock request failed",
		zap.String("method", c.Request.Method),
		zap.String("path", c.FullPath()),
		zap.Int("status", httpErr.Status),
		zap.String("code", httpErr.Code),
		zap.String("message", httpErr.Message),
	)
	response.Error(c, httpErr.Status, httpErr.Code, httpErr.Message, httpErr.Details)
}

func (h *Handler) GetWeekStatus(c *gin.Context) {
	companyID := c.GetString("company_id")
	boutiqueID := c.Query("boutique_id")
	date := c.Query("date")

	resp, err := h.service.GetWeekStatus(c.Request.Context(), companyID, boutiqueID, date)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	response.Success(c, http.StatusOK, resp, nil)
}

func (h *Handler) ApproveWeek(c *gin.Context) {
	companyID := c.GetString("company_id")
	actorID := getActorID(c)

	var req WeekRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("http approve week validation failed", zap.Error(err))
		h.writeServiceError(c, apperror.MapValidationError(err))
		return
	}

	resp, err := h.service.ApproveWeek(c.Request.Context(), companyID, actorID, req)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	response.Success(c, http.StatusOK, resp, nil)
}

func (h *Handler) UnapproveWeek(c *gin.Context) {
	companyID := c.GetString("company_id")
	actorID := getActorID(c)

	var req WeekRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("http unapprove week validation failed", zap.Error(err))
		h.writeServiceError(c, apperror.MapValidationError(err))
		return
	}

	resp, err := h.service.UnapproveWeek(c.Request.Context(), companyID, actorID, req)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	response.Success(c, http.StatusOK, resp, nil)
}

func (h *Handler) LockWeek(c *gin.Context) {
	companyID := c.GetString("company_id")
	actorID := getActorID(c)

	var req LockWeekRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("http lock week validation failed", zap.Error(err))
		h.writeServiceError(c, apperror.MapValidationError(err))
		return
	}

	resp, err := h.service.LockWeek(c.Request.Context(), companyID, actorID, req)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	response.Success(c, http.StatusOK, resp, nil)
}

func (h *Handler) UnlockWeek(c *gin.Context) {
	companyID := c.GetString("company_id")
	actorID := getActorID(c)

	var req WeekRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("http unlock week validation failed", zap.Error(err))
		h.writeServiceError(c, apperror.MapValidationError(err))
		return
	}

	resp, err := h.service.UnlockWeek(c.Request.Context(), companyID, actorID, req)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	response.Success(c, http.StatusOK, resp, nil)
}

func (h *Handler) LockDay(c *gin.Context) {
	companyID := c.GetString("company_id")
	actorID := getActorID(c)

	var req LockDayRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("http lock day validation failed", zap.Error(err))
		h.writeServiceError(c, apperror.MapValidationError(err))
		return
	}

	resp, err := h.service.LockDay(c.Request.Context(), companyID, actorID, req)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	response.Success(c, http.StatusOK, resp, nil)
}

func (h *Handler) UnlockDay(c *gin.Context) {
	companyID := c.GetString("company_id")
	actorID := getActorID(c)

	var req UnlockDayRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("http unlock day validation failed", zap.Error(err))
		h.writeServiceError(c, apperror.MapValidationError(err))
		return
	}

	resp, err := h.service.UnlockDay(c.Request.Context(), companyID, actorID, req)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	response.Success(c, http.StatusOK, resp, nil)
}

func (h *Handler) GetDayStatus(c *gin.Context) {
	companyID := c.GetString("company_id")

	boutiqueID, err := uuid.Parse(c.Query("boutique_id"))
	if err != nil {
		h.writeServiceError(c, schedulelockerrors.ErrInvalidBoutiqueID)
		return
	}
	day, err := time.Parse("2006-01-02", c.Query("date"))
	if err != nil {
		h.writeServiceError(c, schedulelockerrors.ErrInvalidDateFormat)
		return
	}

	lock, err := h.service.IsDayLocked(c.Request.Context(), companyID, boutiqueID, day)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	response.Success(c, http.StatusOK, DayStatusResponse{
		BoutiqueID: boutiqueID.String(),
		Date:       day.Format("2006-01-02"),
		DayLock:    lock,
	}, nil)
}
