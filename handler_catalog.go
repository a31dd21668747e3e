package labdesk

import (
	"net/http"

	"github.com/blutspende/labdesk/middleware"
	"github.com/blutspende/labdesk/utils"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
)

type testTypeTO struct {
	TestType   TestType              `json:"testType"`
	Parameters []ParameterDefinition `json:"parameters"`
}

type classifyTO struct {
	Values map[string]string `json:"values"`
}

// GetTestTypes
// @Summary All test types with their parameters, in catalog order
// @Tags Catalog
// @Produce json
// @Success 200 {array} testTypeTO
// @Router /v1/catalog/test-types [GET]
func (api *api) GetTestTypes(c *gin.Context) {
	testTypes := TestTypes()
	testTypeTOs := make([]testTypeTO, 0, len(testTypes))
	for _, testType := range testTypes {
		testTypeTOs = append(testTypeTOs, testTypeTO{
			TestType:   testType,
			Parameters: LookupParameters(testType),
		})
	}
	c.JSON(http.StatusOK, testTypeTOs)
}

func (api *api) GetTestTypeParameters(c *gin.Context) {
	testType, ok := testTypeParam(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, LookupParameters(testType))
}

// ClassifyValues
// @Summary Live classification of entered values, nothing is stored
// @Tags Catalog
// @Accept json
// @Produce json
// @Param testType path string true "Test type"
// @Param values body classifyTO true "Values by parameter name"
// @Success 200 {array} ResultEntry
// @Failure 400 {object} middleware.ClientError
// @Router /v1/catalog/test-types/{testType}/classify [POST]
func (api *api) ClassifyValues(c *gin.Context) {
	testType, ok := testTypeParam(c)
	if !ok {
		return
	}

	var classify classifyTO
	if err := c.ShouldBindJSON(&classify); err != nil {
		log.Debug().Err(err).Msg(InvalidBodyInRequest)
		c.AbortWithStatusJSON(http.StatusBadRequest, middleware.ErrInvalidRequestBody.WithMessage(utils.FormatValidationError(err)))
		return
	}

	entries, err := api.labResultService.PreviewLabForm(testType, classify.Values)
	if err != nil {
		api.abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, entries)
}

func testTypeParam(c *gin.Context) (TestType, bool) {
	testType := TestType(c.Param("testType"))
	if !testType.IsKnown() {
		c.AbortWithStatusJSON(http.StatusNotFound, middleware.ErrInvalidOrMissingRequestParameter.
			WithParam("param", "testType").
			WithMessage("Unknown test type "+testType.String()+", expected one of "+utils.JoinEnumsAsString(TestTypes(), ", ")))
		return "", false
	}
	return testType, true
}
