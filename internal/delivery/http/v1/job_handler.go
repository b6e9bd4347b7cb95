package v1

import (
	"net/http"
	"strconv"

	"go-recruitment-scheduler/internal/delivery/http/response"
	"go-recruitment-scheduler/internal/domain"
	"go-recruitment-scheduler/pkg/apperror"

	"github.com/gin-gonic/gin"
)

type JobHandler struct {
	matchingUC domain.MatchingUsecase
}

func NewJobHandler(group *gin.RouterGroup, matchingUC domain.MatchingUsecase) {
	handler := &JobHandler{matchingUC: matchingUC}

	jobs := group.Group("/jobs/:jobId")
	{
		jobs.GET("/ranked-candidates", handler.RankCandidates)
		jobs.GET("/candidates/:candidateId/match", handler.MatchCandidate)
	}
}

// RankCandidates godoc
// @Summary      Rank applicants for a job
// @Description  Scores every applicant against the job's required and preferred skills, best first
// @Tags         matching
// @Produce      json
// @Param        jobId      path      int  true   "Job ID"
// @Param        min_score  query     int  false  "Drop candidates scoring below this (0-100)"
// @Success      200        {object}  response.Response
// @Failure      400        {object}  response.Response
// @Failure      404        {object}  response.Response
// @Router       /jobs/{jobId}/ranked-candidates [get]
func (h *JobHandler) RankCandidates(c *gin.Context) {
	jobID, err := parseJobID(c)
	if err != nil {
		c.Error(err)
		return
	}

	minScore, err := strconv.Atoi(c.DefaultQuery("min_score", "0"))
	if err != nil {
		c.Error(apperror.BadRequest("min_score must be an integer"))
		return
	}

	ranked, err := h.matchingUC.RankCandidates(c, jobID, minScore)
	if err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusOK, "Ranked candidates", gin.H{
		"job_id":     jobID,
		"candidates": ranked,
		"total":      len(ranked),
	})
}

// MatchCandidate godoc
// @Summary      Match one candidate against a job
// @Tags         matching
// @Produce      json
// @Param        jobId        path      int     true  "Job ID"
// @Param        candidateId  path      string  true  "Candidate ID"
// @Success      200          {object}  response.Response
// @Failure      400          {object}  response.Response
// @Failure      404          {object}  response.Response
// @Router       /jobs/{jobId}/candidates/{candidateId}/match [get]
func (h *JobHandler) MatchCandidate(c *gin.Context) {
	jobID, err := parseJobID(c)
	if err != nil {
		c.Error(err)
		return
	}

	result, err := h.matchingUC.MatchCandidate(c, jobID, c.Param("candidateId"))
	if err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusOK, "Match result", result)
}

func parseJobID(c *gin.Context) (int64, error) {
	id, err := strconv.ParseInt(c.Param("jobId"), 10, 64)
	if err != nil || id <= 0 {
		return 0, apperror.BadRequest("Invalid job ID format")
	}
	return id, nil
}
