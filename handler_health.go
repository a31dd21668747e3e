package labdesk

import (
	"fmt"
	"net/http"
	"runtime"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
)

// BuildVersion - will be filled at build process in pipeline
var BuildVersion string

// ServiceName - will be filled at build process in pipeline
var ServiceName = "labdesk"

type healthCheck struct {
	Service      string            `json:"service"`
	Status       string            `json:"status"`
	ApiVersion   []string          `json:"apiVersion"`
	BuildVersion string            `json:"buildVersion"` // Docker build version
	Dependencies map[string]string `json:"dependencies"`
	MemStats     memStats          `json:"memStats"`
}

type memStats struct {
	Alloc              string `json:"alloc"`
	TotalAlloc         string `json:"totalAlloc"`
	Sys                string `json:"sys"`
	HeapInUse          string `json:"heapInUse"`
	HeapAlloc          string `json:"headAlloc"`
	StackInUse         string `json:"stackInUse"`
	NumberOfGoRoutines int    `json:"numberOfGoRoutines"`
}

// GetHealth
// @Summary Health check with memory statistics
// @Tags Health
// @Produce json
// @Success 200 {object} healthCheck
// @Router /health [GET]
func (api *api) GetHealth(c *gin.Context) {
	defaultInfo := healthCheck{
		Service:      ServiceName,
		Status:       "running",
		ApiVersion:   []string{"v1"},
		BuildVersion: BuildVersion,
		Dependencies: map[string]string{},
	}

	if api.dbConn != nil {
		if err := api.dbConn.Ping(); err != nil {
			log.Warn().Err(err).Msg("health check: database not reachable")
			defaultInfo.Status = "degraded"
			defaultInfo.Dependencies["database"] = "down"
		} else {
			defaultInfo.Dependencies["database"] = "up"
		}
	}

	var memStat runtime.MemStats
	runtime.ReadMemStats(&memStat)

	defaultInfo.MemStats.Alloc = fmt.Sprintf("%v MiB", memStat.Alloc/1024/1024)
	defaultInfo.MemStats.TotalAlloc = fmt.Sprintf("%v MiB", memStat.TotalAlloc/1024/1024)
	defaultInfo.MemStats.Sys = fmt.Sprintf("%v MiB", memStat.Sys/1024/1024)
	defaultInfo.MemStats.HeapInUse = fmt.Sprintf("%v MiB", memStat.HeapInuse/1024/1024)
	defaultInfo.MemStats.HeapAlloc = fmt.Sprintf("%v MiB", memStat.HeapAlloc/1024/1024)
	defaultInfo.MemStats.StackInUse = fmt.Sprintf("%v MiB", memStat.StackInuse/1024/1024)
	defaultInfo.MemStats.NumberOfGoRoutines = runtime.NumGoroutine()

	c.JSON(http.StatusOK, defaultInfo)
}
