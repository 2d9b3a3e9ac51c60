package api

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"evalgo.org/emulium/internal/audit"
)

// PruneResponse pairs the scan report with what the prune did about it.
type PruneResponse struct {
	Report *audit.Report      `json:"report"`
	Result *audit.PruneResult `json:"result"`
}

// runAudit handles GET /api/v1/audit
// @Summary Scan for drift between documents and live GNS3 state
// @Description Check stored deployments, scenarios, scripts and the console registry against the platform and report stale, stuck, orphaned and dangling entries
// @Tags Audit
// @Accept json
// @Produce json
// @Success 200 {object} audit.Report
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /audit [get]
func (s *Server) runAudit(c echo.Context) error {
	report, err := s.auditService().Scan(c.Request().Context())
	if err != nil {
		return InternalError("Audit scan failed", err.Error())
	}

	return c.JSON(http.StatusOK, report)
}

// pruneAudit handles POST /api/v1/audit/prune
// @Summary Scan and repair drift
// @Description Run an audit scan and immediately fix the repairable findings: stale deployment reports are deleted, stuck deployments are marked failed, orphaned console entries are dropped
// @Tags Audit
// @Accept json
// @Produce json
// @Success 200 {object} PruneResponse
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /audit/prune [post]
func (s *Server) pruneAudit(c echo.Context) error {
	ctx := c.Request().Context()

	service := s.auditService()
	report, err := service.Scan(ctx)
	if err != nil {
		return InternalError("Audit scan failed", err.Error())
	}

	result := service.Prune(ctx, report)

	s.broadcast(EventAuditPruned, map[string]interface{}{
		"report_id": report.ID,
		"pruned":    result.Pruned,
		"skipped":   result.Skipped,
		"errors":    len(result.Errors),
	})

	return c.JSON(http.StatusOK, PruneResponse{Report: report, Result: result})
}

// auditService assembles the audit over the server's storage, gateway
// manager and registry. It is stateless, one per request is fine.
func (s *Server) auditService() *audit.Service {
	return audit.New(s.storage, audit.NewManagerPlatform(s.gns3), s.registry)
}
