package http

import (
	"net/http"
	"testing"

	"trustlend-backend/pkg/id"
)

func TestRepay_Success(t *testing.T) {
	s := newTestStack(t)
	a := s.seedAgreement(t)
	h := NewAgreementHandler(s.loans)
	e := newEcho()

	c, rec := doJSON(e, http.MethodPost, "/", testBorrower, `{"amount":22}`)
	c.SetPath("/loans/:agreement_id/repayments")
	c.SetParamNames("agreement_id")
	c.SetParamValues(a.AgreementID)
	if err := h.Repay(c); err != nil {
		t.Fatalf("Repay: %v", err)
	}
	wantStatus(t, rec, http.StatusOK)

	var body struct {
		AgreementID  string `json:"agreement_id"`
		Amount       uint64 `json:"amount"`
		RepaidAmount uint64 `json:"repaid_amount"`
		Status       string `json:"status"`
	}
	decodeBody(t, rec, &body)
	if body.AgreementID != a.AgreementID || body.Amount != 22 || body.RepaidAmount != 22 || body.Status != "active" {
		t.Fatalf("unexpected body: %+v", body)
	}

	if len(s.assets.Transfers) != 1 {
		t.Fatalf("transfers = %d, want 1", len(s.assets.Transfers))
	}
	call := s.assets.Transfers[0]
	if call.From != testBorrower || call.To != testLender || call.Amount != 22 {
		t.Fatalf("unexpected transfer: %+v", call)
	}
}

func TestRepay_MissingCallerHeader(t *testing.T) {
	s := newTestStack(t)
	a := s.seedAgreement(t)
	h := NewAgreementHandler(s.loans)
	e := newEcho()

	c, rec := doJSON(e, http.MethodPost, "/", "", `{"amount":22}`)
	c.SetParamNames("agreement_id")
	c.SetParamValues(a.AgreementID)
	if err := h.Repay(c); err != nil {
		t.Fatalf("Repay: %v", err)
	}
	wantStatus(t, rec, http.StatusBadRequest)
}

func TestRepay_ValidationFailure(t *testing.T) {
	s := newTestStack(t)
	a := s.seedAgreement(t)
	h := NewAgreementHandler(s.loans)
	e := newEcho()

	c, rec := doJSON(e, http.MethodPost, "/", testBorrower, `{"amount":0}`)
	c.SetParamNames("agreement_id")
	c.SetParamValues(a.AgreementID)
	if err := h.Repay(c); err != nil {
		t.Fatalf("Repay: %v", err)
	}
	wantStatus(t, rec, http.StatusUnprocessableEntity)

	var body ErrorResponse
	decodeBody(t, rec, &body)
	if !containsFieldMsg(body.Details, "Amount", "required") {
		t.Fatalf("expected Amount validation detail, got %+v", body.Details)
	}
}

func TestRepay_WrongCallerForbidden(t *testing.T) {
	s := newTestStack(t)
	a := s.seedAgreement(t)
	h := NewAgreementHandler(s.loans)
	e := newEcho()

	c, rec := doJSON(e, http.MethodPost, "/", testLender, `{"amount":22}`)
	c.SetParamNames("agreement_id")
	c.SetParamValues(a.AgreementID)
	if err := h.Repay(c); err != nil {
		t.Fatalf("Repay: %v", err)
	}
	wantStatus(t, rec, http.StatusForbidden)
}

func TestRepay_UnknownAgreement(t *testing.T) {
	s := newTestStack(t)
	h := NewAgreementHandler(s.loans)
	e := newEcho()

	c, rec := doJSON(e, http.MethodPost, "/", testBorrower, `{"amount":22}`)
	c.SetParamNames("agreement_id")
	c.SetParamValues(id.NewID32())
	if err := h.Repay(c); err != nil {
		t.Fatalf("Repay: %v", err)
	}
	wantStatus(t, rec, http.StatusNotFound)
}

func TestMarkDefault_NotYetOverdue(t *testing.T) {
	s := newTestStack(t)
	a := s.seedAgreement(t)
	h := NewAgreementHandler(s.loans)
	e := newEcho()

	c, rec := doJSON(e, http.MethodPost, "/", testLender, "")
	c.SetParamNames("agreement_id")
	c.SetParamValues(a.AgreementID)
	if err := h.MarkDefault(c); err != nil {
		t.Fatalf("MarkDefault: %v", err)
	}
	wantStatus(t, rec, http.StatusConflict)
}

func TestMarkDefault_WrongCallerForbidden(t *testing.T) {
	s := newTestStack(t)
	a := s.seedAgreement(t)
	h := NewAgreementHandler(s.loans)
	e := newEcho()

	c, rec := doJSON(e, http.MethodPost, "/", testBorrower, "")
	c.SetParamNames("agreement_id")
	c.SetParamValues(a.AgreementID)
	if err := h.MarkDefault(c); err != nil {
		t.Fatalf("MarkDefault: %v", err)
	}
	wantStatus(t, rec, http.StatusForbidden)
}

func TestCheckLate_FreshLoanAppliesNothing(t *testing.T) {
	s := newTestStack(t)
	a := s.seedAgreement(t)
	h := NewAgreementHandler(s.loans)
	e := newEcho()

	c, rec := doJSON(e, http.MethodPost, "/", "", "")
	c.SetParamNames("agreement_id")
	c.SetParamValues(a.AgreementID)
	if err := h.CheckLate(c); err != nil {
		t.Fatalf("CheckLate: %v", err)
	}
	wantStatus(t, rec, http.StatusOK)

	var body struct {
		Applied             []any  `json:"applied"`
		AccumulatedLateFees uint64 `json:"accumulated_late_fees"`
	}
	decodeBody(t, rec, &body)
	if len(body.Applied) != 0 || body.AccumulatedLateFees != 0 {
		t.Fatalf("unexpected body: %+v", body)
	}
}

func TestPreviewLate(t *testing.T) {
	s := newTestStack(t)
	a := s.seedAgreement(t)
	h := NewAgreementHandler(s.loans)
	e := newEcho()

	c, rec := doJSON(e, http.MethodGet, "/", "", "")
	c.SetParamNames("agreement_id")
	c.SetParamValues(a.AgreementID)
	if err := h.PreviewLate(c); err != nil {
		t.Fatalf("PreviewLate: %v", err)
	}
	wantStatus(t, rec, http.StatusOK)

	var body struct {
		Unpenalized []any `json:"unpenalized"`
	}
	decodeBody(t, rec, &body)
	if len(body.Unpenalized) != 0 {
		t.Fatalf("fresh loan must have no pending penalties, got %+v", body.Unpenalized)
	}
}

func TestGetAgreement(t *testing.T) {
	s := newTestStack(t)
	a := s.seedAgreement(t)
	h := NewAgreementHandler(s.loans)
	e := newEcho()

	c, rec := doJSON(e, http.MethodGet, "/", "", "")
	c.SetParamNames("agreement_id")
	c.SetParamValues(a.AgreementID)
	if err := h.Get(c); err != nil {
		t.Fatalf("Get: %v", err)
	}
	wantStatus(t, rec, http.StatusOK)

	var body struct {
		AgreementID string `json:"agreement_id"`
		TotalOwed   uint64 `json:"total_owed"`
		Remaining   uint64 `json:"remaining"`
		Status      string `json:"status"`
	}
	decodeBody(t, rec, &body)
	if body.AgreementID != a.AgreementID || body.TotalOwed != 110 || body.Remaining != 110 || body.Status != "active" {
		t.Fatalf("unexpected body: %+v", body)
	}
}

func TestGetAgreement_NotFound(t *testing.T) {
	s := newTestStack(t)
	h := NewAgreementHandler(s.loans)
	e := newEcho()

	c, rec := doJSON(e, http.MethodGet, "/", "", "")
	c.SetParamNames("agreement_id")
	c.SetParamValues(id.NewID32())
	if err := h.Get(c); err != nil {
		t.Fatalf("Get: %v", err)
	}
	wantStatus(t, rec, http.StatusNotFound)
}

func TestEvents_ListsAppliedPayments(t *testing.T) {
	s := newTestStack(t)
	a := s.seedAgreement(t)
	h := NewAgreementHandler(s.loans)
	e := newEcho()

	// make one repayment so there is something to list
	c, rec := doJSON(e, http.MethodPost, "/", testBorrower, `{"amount":22}`)
	c.SetParamNames("agreement_id")
	c.SetParamValues(a.AgreementID)
	if err := h.Repay(c); err != nil {
		t.Fatalf("Repay: %v", err)
	}
	wantStatus(t, rec, http.StatusOK)

	c, rec = doJSON(e, http.MethodGet, "/", "", "")
	c.SetParamNames("agreement_id")
	c.SetParamValues(a.AgreementID)
	if err := h.Events(c); err != nil {
		t.Fatalf("Events: %v", err)
	}
	wantStatus(t, rec, http.StatusOK)

	var body struct {
		Events []struct {
			Type string `json:"type"`
		} `json:"events"`
	}
	decodeBody(t, rec, &body)
	if len(body.Events) != 1 || body.Events[0].Type != "payment_applied" {
		t.Fatalf("unexpected events: %+v", body.Events)
	}
}
