package labdesk

import (
	"fmt"
	"net/http"
	"net/http/pprof"
	"time"

	"github.com/blutspende/labdesk/config"
	"github.com/blutspende/labdesk/db"
	"github.com/blutspende/labdesk/middleware"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	timeout "github.com/vearne/gin-timeout"
)

type api struct {
	config           *config.Configuration
	engine           *gin.Engine
	dbConn           db.DbConnector
	sessionService   SessionService
	labResultService LabResultService
}

func (api *api) Run() error {
	if api.config.EnableTLS {
		return api.engine.RunTLS(fmt.Sprintf(":%d", api.config.APIPort), api.config.TLSCertPath, api.config.TLSKeyPath)
	}

	return api.engine.Run(fmt.Sprintf(":%d", api.config.APIPort))
}

func NewAPI(config *config.Configuration, dbConn db.DbConnector, sessionService SessionService, labResultService LabResultService) GinApi {
	return newAPI(gin.New(), config, dbConn, sessionService, labResultService)
}

func newAPI(engine *gin.Engine, config *config.Configuration, dbConn db.DbConnector, sessionService SessionService, labResultService LabResultService) *api {
	if config.LogLevel <= zerolog.DebugLevel {
		gin.SetMode(gin.DebugMode)
	} else {
		gin.SetMode(gin.ReleaseMode)
	}

	engine.Use(gin.Recovery())
	engine.Use(middleware.RequestID())
	engine.Use(middleware.RequestLogger())

	api := api{
		config:           config,
		engine:           engine,
		dbConn:           dbConn,
		sessionService:   sessionService,
		labResultService: labResultService,
	}

	corsMiddleWare := middleware.CreateCorsMiddleware(config)
	engine.Use(corsMiddleWare)

	root := engine.Group("")
	root.GET("/health", api.GetHealth)

	v1Group := root.Group("v1")
	if config.RequestTimeoutSeconds > 0 {
		v1Group.Use(timeout.Timeout(
			timeout.WithTimeout(time.Duration(config.RequestTimeoutSeconds)*time.Second),
			timeout.WithErrorHttpCode(http.StatusRequestTimeout),
		))
	}

	sessionAuth := middleware.SessionAuth(sessionService, config.Authorization)
	// the backend serves pending and completed requests to lab technicians only
	labTechnicianOnly := []middleware.UserRole{middleware.LabTechnician}
	reportReaders := []middleware.UserRole{middleware.LabTechnician, middleware.Doctor}
	journalReaders := []middleware.UserRole{middleware.LabTechnician, middleware.Admin}

	sessions := v1Group.Group("/sessions")
	{
		sessions.POST("", api.Login)
		sessions.GET("/current", sessionAuth, api.GetCurrentSession)
		sessions.DELETE("/current", sessionAuth, api.Logout)
	}

	catalog := v1Group.Group("/catalog")
	{
		catalog.GET("/test-types", api.GetTestTypes)
		catalog.GET("/test-types/:testType/parameters", api.GetTestTypeParameters)
		catalog.POST("/test-types/:testType/classify", api.ClassifyValues)
	}

	labRequests := v1Group.Group("/lab-requests", sessionAuth)
	{
		pending := labRequests.Group("/pending")
		{
			pending.GET("", middleware.RoleProtection(labTechnicianOnly, config.Authorization), api.GetPendingLabRequests)
			pending.GET("/:requestId/form", middleware.RoleProtection(labTechnicianOnly, config.Authorization), api.OpenLabForm)
			pending.PUT("/:requestId/draft", middleware.RoleProtection(labTechnicianOnly, config.Authorization), api.SaveDraft)
			pending.POST("/:requestId/result", middleware.RoleProtection(labTechnicianOnly, config.Authorization), api.SubmitLabResult)
		}
		labRequests.GET("/completed", middleware.RoleProtection(labTechnicianOnly, config.Authorization), api.GetCompletedLabRequests)
		labRequests.GET("/:requestId/report", middleware.RoleProtection(reportReaders, config.Authorization), api.GetLabReport)
		labRequests.GET("/:requestId/submissions", middleware.RoleProtection(journalReaders, config.Authorization), api.GetSubmissionHistory)
	}

	// Development-option enables debugger, this can have side-effects
	if config.Development {
		debug := root.Group("/debug/pprof")
		{
			debug.GET("/", gin.WrapF(pprof.Index))
			debug.GET("/cmdline", gin.WrapF(pprof.Cmdline))
			debug.GET("/profile", gin.WrapF(pprof.Profile))
			debug.GET("/symbol", gin.WrapF(pprof.Symbol))
			debug.GET("/trace", gin.WrapF(pprof.Trace))
			debug.GET("/allocs", gin.WrapH(pprof.Handler("allocs")))
			debug.GET("/goroutine", gin.WrapH(pprof.Handler("goroutine")))
			debug.GET("/heap", gin.WrapH(pprof.Handler("heap")))
			debug.POST("/symbol", gin.WrapF(pprof.Symbol))
		}
	}

	return &api
}
