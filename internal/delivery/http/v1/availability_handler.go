package v1

import (
	"net/http"
	"strconv"
	"time"

	"go-recruitment-scheduler/internal/delivery/http/response"
	"go-recruitment-scheduler/internal/domain"
	"go-recruitment-scheduler/pkg/apperror"

	"github.com/gin-gonic/gin"
)

type AvailabilityHandler struct {
	availabilityUC domain.AvailabilityUsecase
}

func NewAvailabilityHandler(group *gin.RouterGroup, availabilityUC domain.AvailabilityUsecase) {
	handler := &AvailabilityHandler{availabilityUC: availabilityUC}

	group.POST("/availability", handler.AddWindow)
	group.GET("/owners/:ownerId/slots", handler.AvailableSlots)
	group.GET("/slots/mutual", handler.MutualSlots)
}

type CreateWindowRequest struct {
	OwnerID  string    `json:"owner_id" binding:"required"`
	Start    time.Time `json:"start" binding:"required"`
	End      time.Time `json:"end" binding:"required"`
	Timezone string    `json:"timezone"`
}

// AddWindow godoc
// @Summary      Declare an availability window
// @Tags         availability
// @Accept       json
// @Produce      json
// @Param        window  body      CreateWindowRequest  true  "Window JSON"
// @Success      201     {object}  response.Response
// @Failure      400     {object}  response.Response
// @Failure      404     {object}  response.Response
// @Router       /availability [post]
func (h *AvailabilityHandler) AddWindow(c *gin.Context) {
	var req CreateWindowRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(apperror.BadRequest(err.Error()))
		return
	}

	window := &domain.AvailabilityWindow{
		OwnerID:  req.OwnerID,
		Start:    req.Start,
		End:      req.End,
		Timezone: req.Timezone,
	}
	if err := h.availabilityUC.AddWindow(c, window); err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusCreated, "Availability window created", window)
}

// AvailableSlots godoc
// @Summary      List bookable slots for one owner
// @Tags         availability
// @Produce      json
// @Param        ownerId   path      string  true  "Owner ID"
// @Param        duration  query     int     true  "Slot length in minutes"
// @Param        from      query     string  true  "Range start (RFC3339)"
// @Param        to        query     string  true  "Range end (RFC3339)"
// @Success      200       {object}  response.Response
// @Failure      400       {object}  response.Response
// @Failure      404       {object}  response.Response
// @Router       /owners/{ownerId}/slots [get]
func (h *AvailabilityHandler) AvailableSlots(c *gin.Context) {
	duration, from, to, err := parseSlotRange(c)
	if err != nil {
		c.Error(err)
		return
	}

	slots, err := h.availabilityUC.GetAvailableSlots(c, domain.SlotQuery{
		OwnerID:  c.Param("ownerId"),
		Duration: duration,
		From:     from,
		To:       to,
	})
	if err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusOK, "Available slots", gin.H{"slots": slots, "total": len(slots)})
}

// MutualSlots godoc
// @Summary      List slots free for both candidate and recruiter
// @Tags         availability
// @Produce      json
// @Param        candidate_id  query     string  true  "Candidate ID"
// @Param        recruiter_id  query     string  true  "Recruiter ID"
// @Param        duration      query     int     true  "Slot length in minutes"
// @Param        from          query     string  true  "Range start (RFC3339)"
// @Param        to            query     string  true  "Range end (RFC3339)"
// @Success      200           {object}  response.Response
// @Failure      400           {object}  response.Response
// @Failure      404           {object}  response.Response
// @Router       /slots/mutual [get]
func (h *AvailabilityHandler) MutualSlots(c *gin.Context) {
	candidateID := c.Query("candidate_id")
	recruiterID := c.Query("recruiter_id")
	if candidateID == "" || recruiterID == "" {
		c.Error(apperror.BadRequest("candidate_id and recruiter_id are required"))
		return
	}

	duration, from, to, err := parseSlotRange(c)
	if err != nil {
		c.Error(err)
		return
	}

	slots, err := h.availabilityUC.GetMutualSlots(c, candidateID, recruiterID, duration, from, to)
	if err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusOK, "Mutual slots", gin.H{"slots": slots, "total": len(slots)})
}

func parseSlotRange(c *gin.Context) (time.Duration, time.Time, time.Time, error) {
	minutes, err := strconv.Atoi(c.Query("duration"))
	if err != nil || minutes <= 0 {
		return 0, time.Time{}, time.Time{}, apperror.BadRequest("duration must be a positive number of minutes")
	}
	from, err := time.Parse(time.RFC3339, c.Query("from"))
	if err != nil {
		return 0, time.Time{}, time.Time{}, apperror.BadRequest("from must be an RFC3339 timestamp")
	}
	to, err := time.Parse(time.RFC3339, c.Query("to"))
	if err != nil {
		return 0, time.Time{}, time.Time{}, apperror.BadRequest("to must be an RFC3339 timestamp")
	}
	return time.Duration(minutes) * time.Minute, from, to, nil
}
