package api

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

// getStatistics handles GET /api/v1/stats
func (s *Server) getStatistics(c echo.Context) error {
	stats, err := s.storage.GetStatistics(c.Request().Context())
	if err != nil {
		return c.JSON(http.StatusInternalServerError, ErrorResponse{
			Error:   "failed to get statistics",
			Details: err.Error(),
		})
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"documents": stats,
		"runtime": map[string]interface{}{
			"gns3Servers":      s.gns3.Count(),
			"registryEntries":  s.registry.Len(),
			"websocketClients": s.wsHub.ClientCount(),
		},
	})
}

// getScenarioUsage handles GET /api/v1/stats/usage
func (s *Server) getScenarioUsage(c echo.Context) error {
	usage, err := s.storage.GetScenarioUsage(c.Request().Context())
	if err != nil {
		return c.JSON(http.StatusInternalServerError, ErrorResponse{
			Error:   "failed to get scenario usage",
			Details: err.Error(),
		})
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"scenarios": usage,
		"count":     len(usage),
	})
}

// getDatabaseInfo handles GET /api/v1/info
func (s *Server) getDatabaseInfo(c echo.Context) error {
	info, err := s.storage.Info(c.Request().Context())
	if err != nil {
		return c.JSON(http.StatusInternalServerError, ErrorResponse{
			Error:   "failed to get database info",
			Details: err.Error(),
		})
	}

	return c.JSON(http.StatusOK, info)
}
