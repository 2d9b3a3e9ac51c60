package api

import (
	"strconv"

	"github.com/labstack/echo/v4"

	"evalgo.org/emulium/models"
)

// parsePagination parses limit and offset from query parameters.
// Default limit is 100, default offset is 0.
// Maximum limit is 1000 to prevent excessive memory usage.
func parsePagination(c echo.Context) (limit, offset int) {
	// Parse limit with default of 100
	limit = 100
	if limitParam := c.QueryParam("limit"); limitParam != "" {
		if parsed, err := strconv.Atoi(limitParam); err == nil && parsed > 0 {
			limit = parsed
			// Cap at 1000
			if limit > 1000 {
				limit = 1000
			}
		}
	}

	// Parse offset with default of 0
	offset = 0
	if offsetParam := c.QueryParam("offset"); offsetParam != "" {
		if parsed, err := strconv.Atoi(offsetParam); err == nil && parsed >= 0 {
			offset = parsed
		}
	}

	return limit, offset
}

// paginateSliceScenarios applies pagination to a slice of scenarios.
func paginateSliceScenarios(scenarios []*models.Scenario, limit, offset int) []*models.Scenario {
	// Handle edge cases
	if offset >= len(scenarios) {
		return []*models.Scenario{}
	}

	end := offset + limit
	if end > len(scenarios) {
		end = len(scenarios)
	}

	return scenarios[offset:end]
}

// paginateSliceScripts applies pagination to a slice of scripts.
func paginateSliceScripts(scripts []*models.Script, limit, offset int) []*models.Script {
	// Handle edge cases
	if offset >= len(scripts) {
		return []*models.Script{}
	}

	end := offset + limit
	if end > len(scripts) {
		end = len(scripts)
	}

	return scripts[offset:end]
}

// paginateSliceDeployments applies pagination to a slice of deployments.
func paginateSliceDeployments(deployments []*models.Deployment, limit, offset int) []*models.Deployment {
	// Handle edge cases
	if offset >= len(deployments) {
		return []*models.Deployment{}
	}

	end := offset + limit
	if end > len(deployments) {
		end = len(deployments)
	}

	return deployments[offset:end]
}

// paginateSliceActions applies pagination to a slice of scheduled actions.
func paginateSliceActions(actions []*models.ScheduledAction, limit, offset int) []*models.ScheduledAction {
	// Handle edge cases
	if offset >= len(actions) {
		return []*models.ScheduledAction{}
	}

	end := offset + limit
	if end > len(actions) {
		end = len(actions)
	}

	return actions[offset:end]
}
