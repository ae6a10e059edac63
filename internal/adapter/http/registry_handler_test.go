package http

import (
	"net/http"
	"testing"
)

func TestCreateLoan_Success(t *testing.T) {
	s := newTestStack(t)
	h := NewRegistryHandler(s.registry)
	e := newEcho()

	body := `{"borrower_id":"` + testBorrower + `","asset_code":"USDT","principal":100,"duration_secs":90,"interest_percent":10,"late_fee_percent":5,"total_installments":5}`
	c, rec := doJSON(e, http.MethodPost, "/loans", testLender, body)
	if err := h.CreateLoan(c); err != nil {
		t.Fatalf("CreateLoan: %v", err)
	}
	wantStatus(t, rec, http.StatusCreated)

	var out struct {
		AgreementID         string `json:"agreement_id"`
		LenderID            string `json:"lender_id"`
		InstallmentInterval uint64 `json:"installment_interval"`
		TotalOwed           uint64 `json:"total_owed"`
		Status              string `json:"status"`
	}
	decodeBody(t, rec, &out)
	if len(out.AgreementID) != 32 || out.LenderID != testLender {
		t.Fatalf("unexpected body: %+v", out)
	}
	if out.InstallmentInterval != 18 || out.TotalOwed != 110 || out.Status != "active" {
		t.Fatalf("unexpected body: %+v", out)
	}

	// persisted and retrievable through the loan surface
	got, err := s.agreements.GetByAgreementID(c.Request().Context(), out.AgreementID)
	if err != nil {
		t.Fatalf("agreement not persisted: %v", err)
	}
	if !got.Valid {
		t.Fatalf("created agreement must carry the validity latch")
	}
}

func TestCreateLoan_MissingCallerHeader(t *testing.T) {
	s := newTestStack(t)
	h := NewRegistryHandler(s.registry)
	e := newEcho()

	c, rec := doJSON(e, http.MethodPost, "/loans", "", `{"borrower_id":"`+testBorrower+`"}`)
	if err := h.CreateLoan(c); err != nil {
		t.Fatalf("CreateLoan: %v", err)
	}
	wantStatus(t, rec, http.StatusBadRequest)
}

func TestCreateLoan_ValidationDetails(t *testing.T) {
	s := newTestStack(t)
	h := NewRegistryHandler(s.registry)
	e := newEcho()

	body := `{"borrower_id":"NOPE","asset_code":"USDT","principal":0,"duration_secs":90,"interest_percent":250,"total_installments":5}`
	c, rec := doJSON(e, http.MethodPost, "/loans", testLender, body)
	if err := h.CreateLoan(c); err != nil {
		t.Fatalf("CreateLoan: %v", err)
	}
	wantStatus(t, rec, http.StatusUnprocessableEntity)

	var out ErrorResponse
	decodeBody(t, rec, &out)
	if !containsFieldMsg(out.Details, "BorrowerID", "hex") {
		t.Fatalf("missing borrower detail: %+v", out.Details)
	}
	if !containsFieldMsg(out.Details, "Principal", "required") {
		t.Fatalf("missing principal detail: %+v", out.Details)
	}
	if !containsFieldMsg(out.Details, "InterestPercent", "less than or equal") {
		t.Fatalf("missing interest detail: %+v", out.Details)
	}
}

func TestCreateLoan_SelfLendingRejected(t *testing.T) {
	s := newTestStack(t)
	h := NewRegistryHandler(s.registry)
	e := newEcho()

	body := `{"borrower_id":"` + testLender + `","asset_code":"USDT","principal":100,"duration_secs":90,"interest_percent":10,"late_fee_percent":5,"total_installments":5}`
	c, rec := doJSON(e, http.MethodPost, "/loans", testLender, body)
	if err := h.CreateLoan(c); err != nil {
		t.Fatalf("CreateLoan: %v", err)
	}
	wantStatus(t, rec, http.StatusBadRequest)
}

func TestListUserLoans(t *testing.T) {
	s := newTestStack(t)
	s.seedAgreement(t)
	s.seedAgreement(t)
	h := NewRegistryHandler(s.registry)
	e := newEcho()

	c, rec := doJSON(e, http.MethodGet, "/users/x/loans?role=borrower", "", "")
	c.SetParamNames("user_id")
	c.SetParamValues(testBorrower)
	if err := h.ListUserLoans(c); err != nil {
		t.Fatalf("ListUserLoans: %v", err)
	}
	wantStatus(t, rec, http.StatusOK)

	var out struct {
		UserID string `json:"user_id"`
		Count  int    `json:"count"`
		Loans  []any  `json:"loans"`
	}
	decodeBody(t, rec, &out)
	if out.UserID != testBorrower || out.Count != 2 || len(out.Loans) != 2 {
		t.Fatalf("unexpected body: %+v", out)
	}
}

func TestListUserLoans_BadRole(t *testing.T) {
	s := newTestStack(t)
	h := NewRegistryHandler(s.registry)
	e := newEcho()

	c, rec := doJSON(e, http.MethodGet, "/users/x/loans?role=guarantor", "", "")
	c.SetParamNames("user_id")
	c.SetParamValues(testBorrower)
	if err := h.ListUserLoans(c); err != nil {
		t.Fatalf("ListUserLoans: %v", err)
	}
	wantStatus(t, rec, http.StatusBadRequest)
}

func TestTrustScoreEndpoint_DefaultsToZero(t *testing.T) {
	s := newTestStack(t)
	h := NewRegistryHandler(s.registry)
	e := newEcho()

	c, rec := doJSON(e, http.MethodGet, "/", "", "")
	c.SetParamNames("user_id")
	c.SetParamValues(testBorrower)
	if err := h.TrustScore(c); err != nil {
		t.Fatalf("TrustScore: %v", err)
	}
	wantStatus(t, rec, http.StatusOK)

	var out struct {
		BorrowerID string `json:"borrower_id"`
		TrustScore int64  `json:"trust_score"`
	}
	decodeBody(t, rec, &out)
	if out.BorrowerID != testBorrower || out.TrustScore != 0 {
		t.Fatalf("unexpected body: %+v", out)
	}
}

func TestStats(t *testing.T) {
	s := newTestStack(t)
	s.seedAgreement(t)
	h := NewRegistryHandler(s.registry)
	e := newEcho()

	c, rec := doJSON(e, http.MethodGet, "/stats", "", "")
	if err := h.Stats(c); err != nil {
		t.Fatalf("Stats: %v", err)
	}
	wantStatus(t, rec, http.StatusOK)

	var out struct {
		TotalLoans int64 `json:"total_loans"`
	}
	decodeBody(t, rec, &out)
	if out.TotalLoans != 1 {
		t.Fatalf("total_loans = %d, want 1", out.TotalLoans)
	}
}

func TestHealth(t *testing.T) {
	h := NewHandler()
	e := newEcho()

	c, rec := doJSON(e, http.MethodGet, "/health", "", "")
	if err := h.Health(c); err != nil {
		t.Fatalf("Health: %v", err)
	}
	wantStatus(t, rec, http.StatusOK)

	var out struct {
		Status string `json:"status"`
	}
	decodeBody(t, rec, &out)
	if out.Status != "ok" {
		t.Fatalf("status = %q, want ok", out.Status)
	}
}
