package http

import (
	"errors"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	agreementDomain "trustlend-backend/internal/domain/agreement"
	"trustlend-backend/internal/domain/trust"
	"trustlend-backend/internal/usecase/registry"
)

// ---- helpers ----

// callerID reads the authenticated party identity the edge proxy forwards.
func callerID(c echo.Context) (string, bool) {
	v := strings.TrimSpace(c.Request().Header.Get("Ax-Caller-Id"))
	if !reHex32.MatchString(v) {
		return "", false
	}
	return v, true
}

// errStatus maps domain errors to HTTP codes. Semantic failures are permanent
// for the given inputs; nothing here should invite a retry.
func errStatus(err error) int {
	switch {
	case errors.Is(err, agreementDomain.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, agreementDomain.ErrUnauthorized),
		errors.Is(err, trust.ErrUnauthorizedCaller):
		return http.StatusForbidden
	case errors.Is(err, agreementDomain.ErrInvalidState),
		errors.Is(err, agreementDomain.ErrNotYetOverdue):
		return http.StatusConflict
	case errors.Is(err, agreementDomain.ErrNothingDue),
		errors.Is(err, agreementDomain.ErrTransferRejected):
		return http.StatusUnprocessableEntity
	case errors.Is(err, registry.ErrInvalidInput):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

func jsonError(c echo.Context, err error) error {
	return c.JSON(errStatus(err), ErrorResponse{Error: err.Error()})
}
