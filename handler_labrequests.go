package labdesk

import (
	"net/http"

	"github.com/blutspende/labdesk/middleware"
	"github.com/blutspende/labdesk/utils"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
)

type labFormValuesTO struct {
	TestType TestType          `json:"testType" binding:"required"`
	Values   map[string]string `json:"values"`
}

// GetPendingLabRequests
// @Summary Lab requests waiting for a result
// @Tags LabRequest
// @Produce json
// @Success 200 {array} LabRequest
// @Failure 401 {object} middleware.ClientError
// @Router /v1/lab-requests/pending [GET]
func (api *api) GetPendingLabRequests(c *gin.Context) {
	labRequests, err := api.labResultService.GetPendingLabRequests(c.Request.Context(), currentSession(c))
	if err != nil {
		api.abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, labRequests)
}

func (api *api) GetCompletedLabRequests(c *gin.Context) {
	labRequests, err := api.labResultService.GetCompletedLabRequests(c.Request.Context(), currentSession(c))
	if err != nil {
		api.abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, labRequests)
}

// OpenLabForm
// @Summary Result entry form of a pending lab request, a saved draft is restored
// @Tags LabRequest
// @Produce json
// @Param requestId path int true "Lab request ID"
// @Success 200 {object} LabForm
// @Failure 404 {object} middleware.ClientError
// @Router /v1/lab-requests/pending/{requestId}/form [GET]
func (api *api) OpenLabForm(c *gin.Context) {
	requestID, ok := requestIDParam(c)
	if !ok {
		return
	}

	form, err := api.labResultService.OpenLabForm(c.Request.Context(), currentSession(c), requestID)
	if err != nil {
		api.abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, form)
}

func (api *api) SaveDraft(c *gin.Context) {
	requestID, ok := requestIDParam(c)
	if !ok {
		return
	}
	values, ok := bindLabFormValues(c)
	if !ok {
		return
	}

	err := api.labResultService.SaveDraft(c.Request.Context(), currentSession(c), requestID, values.TestType, values.Values)
	if err != nil {
		api.abortWithError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// SubmitLabResult
// @Summary Validate, encode and submit the result of a pending lab request
// @Description A missing value is reported before anything is sent to the hospital backend.
// @Tags LabRequest
// @Accept json
// @Produce json
// @Param requestId path int true "Lab request ID"
// @Param result body labFormValuesTO true "Test type and values"
// @Success 201 {object} SubmissionReceipt
// @Failure 400 {object} middleware.ClientError
// @Failure 404 {object} middleware.ClientError
// @Failure 502 {object} middleware.ClientError
// @Router /v1/lab-requests/pending/{requestId}/result [POST]
func (api *api) SubmitLabResult(c *gin.Context) {
	requestID, ok := requestIDParam(c)
	if !ok {
		return
	}
	values, ok := bindLabFormValues(c)
	if !ok {
		return
	}

	receipt, err := api.labResultService.SubmitLabResult(c.Request.Context(), currentSession(c), requestID, values.TestType, values.Values)
	if err != nil {
		api.abortWithError(c, err)
		return
	}
	c.JSON(http.StatusCreated, receipt)
}

// GetLabReport
// @Summary Decoded result of a completed lab request
// @Tags LabRequest
// @Produce json
// @Param requestId path int true "Lab request ID"
// @Success 200 {object} LabReport
// @Failure 404 {object} middleware.ClientError
// @Router /v1/lab-requests/{requestId}/report [GET]
func (api *api) GetLabReport(c *gin.Context) {
	requestID, ok := requestIDParam(c)
	if !ok {
		return
	}

	report, err := api.labResultService.GetLabReport(c.Request.Context(), currentSession(c), requestID)
	if err != nil {
		api.abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, report)
}

func (api *api) GetSubmissionHistory(c *gin.Context) {
	requestID, ok := requestIDParam(c)
	if !ok {
		return
	}

	var pageable Pageable
	if err := c.ShouldBindQuery(&pageable); err != nil {
		log.Debug().Err(err).Msg("invalid paging parameters")
		c.AbortWithStatusJSON(http.StatusBadRequest, middleware.ErrInvalidOrMissingRequestParameter.
			WithParam("param", "pageable").
			WithMessage(utils.FormatValidationError(err)))
		return
	}

	page, err := api.labResultService.GetSubmissionHistory(c.Request.Context(), requestID, pageable)
	if err != nil {
		api.abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, page)
}

func bindLabFormValues(c *gin.Context) (labFormValuesTO, bool) {
	var values labFormValuesTO
	if err := c.ShouldBindJSON(&values); err != nil {
		log.Debug().Err(err).Msg(InvalidBodyInRequest)
		c.AbortWithStatusJSON(http.StatusBadRequest, middleware.ErrInvalidRequestBody.WithMessage(utils.FormatValidationError(err)))
		return labFormValuesTO{}, false
	}
	if values.Values == nil {
		values.Values = map[string]string{}
	}
	return values, true
}
