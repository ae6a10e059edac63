package http

import (
	"net/http"

	"trustlend-backend/internal/usecase/agreement"

	"github.com/labstack/echo/v4"
)

type AgreementHandler struct{ uc *agreement.Usecase }

func NewAgreementHandler(uc *agreement.Usecase) *AgreementHandler { return &AgreementHandler{uc: uc} }

type repayReq struct {
	Amount uint64 `json:"amount" validate:"required,gt=0"`
}

func (h *AgreementHandler) Repay(c echo.Context) error {
	caller, ok := callerID(c)
	if !ok {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "missing or invalid Ax-Caller-Id"})
	}
	var req repayReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusUnprocessableEntity, ErrorResponse{
			Error:   "validation failed",
			Details: ToFieldErrors(err),
		})
	}
	dto, err := h.uc.Repay(c.Request().Context(), agreement.RepayInput{
		AgreementID: c.Param("agreement_id"),
		CallerID:    caller,
		Amount:      req.Amount,
	})
	if err != nil {
		return jsonError(c, err)
	}
	return c.JSON(http.StatusOK, dto)
}

func (h *AgreementHandler) MarkDefault(c echo.Context) error {
	caller, ok := callerID(c)
	if !ok {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "missing or invalid Ax-Caller-Id"})
	}
	dto, err := h.uc.MarkDefault(c.Request().Context(), agreement.MarkDefaultInput{
		AgreementID: c.Param("agreement_id"),
		CallerID:    caller,
	})
	if err != nil {
		return jsonError(c, err)
	}
	return c.JSON(http.StatusOK, dto)
}

// CheckLate runs the mutating late-payment check. No caller check: the
// operation only tightens state in the borrower's disfavor.
func (h *AgreementHandler) CheckLate(c echo.Context) error {
	dto, err := h.uc.CheckLatePayments(c.Request().Context(), c.Param("agreement_id"))
	if err != nil {
		return jsonError(c, err)
	}
	return c.JSON(http.StatusOK, dto)
}

func (h *AgreementHandler) PreviewLate(c echo.Context) error {
	charges, err := h.uc.PreviewLatePayments(c.Request().Context(), c.Param("agreement_id"))
	if err != nil {
		return jsonError(c, err)
	}
	return c.JSON(http.StatusOK, map[string]any{"unpenalized": charges})
}

func (h *AgreementHandler) Get(c echo.Context) error {
	dto, err := h.uc.Get(c.Request().Context(), c.Param("agreement_id"))
	if err != nil {
		return jsonError(c, err)
	}
	return c.JSON(http.StatusOK, dto)
}

func (h *AgreementHandler) Events(c echo.Context) error {
	events, err := h.uc.Events(c.Request().Context(), c.Param("agreement_id"))
	if err != nil {
		return jsonError(c, err)
	}
	return c.JSON(http.StatusOK, map[string]any{"events": events})
}
