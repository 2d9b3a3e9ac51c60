package api

import (
	"strconv"

	"github.com/labstack/echo/v4"

	"evalgo.org/emulium/internal/auth"
	"evalgo.org/emulium/internal/storage"
)

// isNotFound reports whether a storage error means "document missing".
func isNotFound(err error) bool {
	return storage.IsNotFound(err)
}

// requestOwner returns the authenticated username, empty in lab-bench mode.
func requestOwner(c echo.Context) string {
	return auth.GetUsername(c)
}

// serverParam resolves the target GNS3 server for a browse request.
// Falls back to the configured default server when the query parameter
// is absent.
func (s *Server) serverParam(c echo.Context) string {
	if server := c.QueryParam("server"); server != "" {
		return server
	}
	return s.gns3.DefaultURL()
}

// boolParam parses a boolean query parameter ("true", "1", "false", "0").
func boolParam(c echo.Context, name string, def bool) bool {
	v := c.QueryParam(name)
	if v == "" {
		return def
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return def
	}
	return b
}
