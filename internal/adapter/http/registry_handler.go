package http

import (
	"net/http"

	domain "trustlend-backend/internal/domain/agreement"
	"trustlend-backend/internal/usecase/registry"

	"github.com/labstack/echo/v4"
)

type RegistryHandler struct{ uc *registry.Usecase }

func NewRegistryHandler(uc *registry.Usecase) *RegistryHandler { return &RegistryHandler{uc: uc} }

type createLoanReq struct {
	BorrowerID        string `json:"borrower_id" validate:"required,hex32"`
	AssetCode         string `json:"asset_code" validate:"required"`
	Principal         uint64 `json:"principal" validate:"required,gt=0"`
	DurationSecs      uint64 `json:"duration_secs" validate:"required,gt=0"`
	InterestPercent   uint64 `json:"interest_percent" validate:"lte=100"`
	LateFeePercent    uint64 `json:"late_fee_percent" validate:"lte=100"`
	TotalInstallments uint64 `json:"total_installments" validate:"required,gt=0"`
}

func (h *RegistryHandler) CreateLoan(c echo.Context) error {
	caller, ok := callerID(c)
	if !ok {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "missing or invalid Ax-Caller-Id"})
	}
	var req createLoanReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusUnprocessableEntity, ErrorResponse{
			Error:   "validation failed",
			Details: ToFieldErrors(err),
		})
	}
	dto, err := h.uc.Create(c.Request().Context(), registry.CreateInput{
		CallerID:          caller,
		BorrowerID:        req.BorrowerID,
		AssetCode:         req.AssetCode,
		Principal:         req.Principal,
		DurationSecs:      req.DurationSecs,
		InterestPercent:   req.InterestPercent,
		LateFeePercent:    req.LateFeePercent,
		TotalInstallments: req.TotalInstallments,
	})
	if err != nil {
		return jsonError(c, err)
	}
	return c.JSON(http.StatusCreated, dto)
}

func (h *RegistryHandler) ListUserLoans(c echo.Context) error {
	userID := c.Param("user_id")
	role := c.QueryParam("role")
	status := domain.Status(c.QueryParam("status"))

	list, err := h.uc.ListByUser(c.Request().Context(), userID, role, status)
	if err != nil {
		return jsonError(c, err)
	}
	return c.JSON(http.StatusOK, map[string]any{
		"user_id": userID,
		"role":    role,
		"count":   len(list),
		"loans":   list,
	})
}

func (h *RegistryHandler) TrustScore(c echo.Context) error {
	score, err := h.uc.TrustScore(c.Request().Context(), c.Param("user_id"))
	if err != nil {
		return jsonError(c, err)
	}
	return c.JSON(http.StatusOK, map[string]any{
		"borrower_id": c.Param("user_id"),
		"trust_score": score,
	})
}

func (h *RegistryHandler) Stats(c echo.Context) error {
	total, err := h.uc.Total(c.Request().Context())
	if err != nil {
		return jsonError(c, err)
	}
	return c.JSON(http.StatusOK, map[string]any{"total_loans": total})
}
