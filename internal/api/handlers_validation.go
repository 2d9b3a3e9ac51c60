package api

import (
	"io"
	"net/http"

	"evalgo.org/emulium/internal/validation"
	"github.com/labstack/echo/v4"
)

// validateScenario validates a scenario JSON-LD document without
// storing it
func (s *Server) validateScenario(c echo.Context) error {
	// Read request body
	body, err := io.ReadAll(c.Request().Body)
	if err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{
			Error: "Failed to read request body",
		})
	}

	// Create validator
	validator := validation.New()

	// Validate scenario
	result, err := validator.ValidateScenario(body)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, ErrorResponse{
			Error:   "Validation error",
			Details: err.Error(),
		})
	}

	// Return validation result
	if result.Valid {
		return c.JSON(http.StatusOK, result)
	}

	return c.JSON(http.StatusBadRequest, result)
}

// validateScript validates a script JSON-LD document without storing it
func (s *Server) validateScript(c echo.Context) error {
	// Read request body
	body, err := io.ReadAll(c.Request().Body)
	if err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{
			Error: "Failed to read request body",
		})
	}

	// Create validator
	validator := validation.New()

	// Validate script
	result, err := validator.ValidateScript(body)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, ErrorResponse{
			Error:   "Validation error",
			Details: err.Error(),
		})
	}

	// Return validation result
	if result.Valid {
		return c.JSON(http.StatusOK, result)
	}

	return c.JSON(http.StatusBadRequest, result)
}

// validateGeneric validates a JSON-LD document based on type
func (s *Server) validateGeneric(c echo.Context) error {
	entityType := c.Param("type")

	// Read request body
	body, err := io.ReadAll(c.Request().Body)
	if err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{
			Error: "Failed to read request body",
		})
	}

	// Create validator
	validator := validation.New()

	// Validate based on type
	var result *validation.ValidationResult
	switch entityType {
	case "scenario":
		result, err = validator.ValidateScenario(body)
	case "script":
		result, err = validator.ValidateScript(body)
	case "action":
		result, err = validator.ValidateScheduledAction(body)
	default:
		return c.JSON(http.StatusBadRequest, ErrorResponse{
			Error:   "Invalid entity type",
			Details: "Type must be 'scenario', 'script' or 'action'",
		})
	}

	if err != nil {
		return c.JSON(http.StatusInternalServerError, ErrorResponse{
			Error:   "Validation error",
			Details: err.Error(),
		})
	}

	// Return validation result
	if result.Valid {
		return c.JSON(http.StatusOK, result)
	}

	return c.JSON(http.StatusBadRequest, result)
}
