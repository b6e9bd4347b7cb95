package v1

import (
	"net/http"

	"go-recruitment-scheduler/internal/delivery/http/response"
	"go-recruitment-scheduler/internal/domain"
	"go-recruitment-scheduler/pkg/apperror"

	"github.com/gin-gonic/gin"
)

// Booking calls take the request context rather than *gin.Context: the
// orchestrator may outlive the request and gin recycles its contexts.
type InterviewHandler struct {
	bookingUC domain.BookingUsecase
}

// NewInterviewHandler registers the booking routes. writeLimit guards the
// routes that call the external booking provider.
func NewInterviewHandler(group *gin.RouterGroup, bookingUC domain.BookingUsecase, writeLimit gin.HandlerFunc) {
	handler := &InterviewHandler{bookingUC: bookingUC}

	interviews := group.Group("/interviews")
	{
		interviews.POST("", writeLimit, handler.Schedule)
		interviews.GET("/:id", handler.Get)
		interviews.POST("/:id/cancel", writeLimit, handler.Cancel)
		interviews.POST("/:id/reschedule", writeLimit, handler.Reschedule)
	}
}

type RescheduleRequest struct {
	PreferredSlots []domain.TimeSlot `json:"preferred_slots" binding:"required,min=1"`
}

// Schedule godoc
// @Summary      Schedule an interview
// @Description  Books the first preferred slot that is free for both parties. When none is free the response is 409 with conflicts and suggested times.
// @Tags         interviews
// @Accept       json
// @Produce      json
// @Param        request  body      domain.ScheduleRequest  true  "Schedule request"
// @Success      201      {object}  response.Response
// @Failure      400      {object}  response.Response
// @Failure      409      {object}  response.Response
// @Failure      429      {object}  response.Response
// @Failure      502      {object}  response.Response
// @Router       /interviews [post]
func (h *InterviewHandler) Schedule(c *gin.Context) {
	var req domain.ScheduleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(apperror.BadRequest(err.Error()))
		return
	}

	result, err := h.bookingUC.ScheduleInterview(c.Request.Context(), req)
	if err != nil {
		c.Error(err)
		return
	}
	renderBooking(c, result, "Interview scheduled")
}

// Get godoc
// @Summary      Get an interview
// @Tags         interviews
// @Produce      json
// @Param        id   path      string  true  "Interview ID"
// @Success      200  {object}  response.Response
// @Failure      404  {object}  response.Response
// @Router       /interviews/{id} [get]
func (h *InterviewHandler) Get(c *gin.Context) {
	interview, err := h.bookingUC.GetInterview(c.Request.Context(), c.Param("id"))
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Interview", interview)
}

// Cancel godoc
// @Summary      Cancel a confirmed interview
// @Tags         interviews
// @Produce      json
// @Param        id   path      string  true  "Interview ID"
// @Success      200  {object}  response.Response
// @Failure      404  {object}  response.Response
// @Failure      409  {object}  response.Response
// @Failure      502  {object}  response.Response
// @Router       /interviews/{id}/cancel [post]
func (h *InterviewHandler) Cancel(c *gin.Context) {
	if err := h.bookingUC.CancelInterview(c.Request.Context(), c.Param("id")); err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Interview cancelled", gin.H{"id": c.Param("id")})
}

// Reschedule godoc
// @Summary      Move a confirmed interview to a new slot
// @Tags         interviews
// @Accept       json
// @Produce      json
// @Param        id       path      string             true  "Interview ID"
// @Param        request  body      RescheduleRequest  true  "New preferred slots"
// @Success      201      {object}  response.Response
// @Failure      400      {object}  response.Response
// @Failure      404      {object}  response.Response
// @Failure      409      {object}  response.Response
// @Failure      502      {object}  response.Response
// @Router       /interviews/{id}/reschedule [post]
func (h *InterviewHandler) Reschedule(c *gin.Context) {
	var req RescheduleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(apperror.BadRequest(err.Error()))
		return
	}

	result, err := h.bookingUC.RescheduleInterview(c.Request.Context(), c.Param("id"), req.PreferredSlots)
	if err != nil {
		c.Error(err)
		return
	}
	renderBooking(c, result, "Interview rescheduled")
}

func renderBooking(c *gin.Context, result *domain.BookingResult, message string) {
	if !result.Success {
		response.Error(c, http.StatusConflict, "None of the preferred slots is available", result)
		return
	}
	response.Success(c, http.StatusCreated, message, result)
}
