package http

import (
	"context"
	"encoding/json"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"trustlend-backend/internal/adapter/repository/mysql"
	agreementDomain "trustlend-backend/internal/domain/agreement"
	eventDomain "trustlend-backend/internal/domain/event"
	trustDomain "trustlend-backend/internal/domain/trust"
	"trustlend-backend/internal/testutil/assetmock"
	agreementUC "trustlend-backend/internal/usecase/agreement"
	registryUC "trustlend-backend/internal/usecase/registry"
	"trustlend-backend/pkg/id"
)

const (
	testLender   = "1111111111111111111111111111aaaa"
	testBorrower = "2222222222222222222222222222bbbb"
)

type testStack struct {
	db         *gorm.DB
	assets     *assetmock.Transfer
	loans      *agreementUC.Usecase
	registry   *registryUC.Usecase
	agreements *mysql.AgreementRepository
}

func newTestStack(t *testing.T) *testStack {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	if err := db.AutoMigrate(&agreementDomain.Agreement{}, &agreementDomain.Penalty{}, &trustDomain.TrustScore{}, &eventDomain.Event{}); err != nil {
		t.Fatalf("auto-migrate: %v", err)
	}

	agreements := mysql.NewAgreementRepository(db)
	penalties := mysql.NewPenaltyRepository(db)
	scores := mysql.NewTrustScoreRepository(db)
	events := mysql.NewEventRepository(db)
	u := mysql.NewGormUoW(db)
	assets := &assetmock.Transfer{}

	return &testStack{
		db:         db,
		assets:     assets,
		loans:      agreementUC.NewUsecase(agreements, penalties, events, u, assets),
		registry:   registryUC.NewUsecase(agreements, scores, u),
		agreements: agreements,
	}
}

// seedAgreement inserts a loan that starts now, so no installment deadline
// has passed yet.
func (s *testStack) seedAgreement(t *testing.T) *agreementDomain.Agreement {
	t.Helper()
	a := &agreementDomain.Agreement{
		AgreementID:         id.NewID32(),
		LenderID:            testLender,
		BorrowerID:          testBorrower,
		AssetCode:           "USDT",
		Principal:           100,
		InterestPercent:     10,
		LateFeePercent:      5,
		TotalInstallments:   5,
		DurationSecs:        90,
		InstallmentInterval: 18,
		StartTimestamp:      time.Now().Unix(),
		Valid:               true,
	}
	if err := s.agreements.Create(context.Background(), a); err != nil {
		t.Fatalf("seed agreement: %v", err)
	}
	return a
}

func newEcho() *echo.Echo {
	e := echo.New()
	e.Validator = NewValidator()
	return e
}

// doJSON builds an echo context for a JSON request with the caller header set.
func doJSON(e *echo.Echo, method, target, caller, body string) (echo.Context, *httptest.ResponseRecorder) {
	var reader *strings.Reader
	if body == "" {
		reader = strings.NewReader("")
	} else {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, target, reader)
	if body != "" {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	if caller != "" {
		req.Header.Set("Ax-Caller-Id", caller)
	}
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder, out any) {
	t.Helper()
	if err := json.Unmarshal(rec.Body.Bytes(), out); err != nil {
		t.Fatalf("decode body %q: %v", rec.Body.String(), err)
	}
}

func wantStatus(t *testing.T, rec *httptest.ResponseRecorder, want int) {
	t.Helper()
	if rec.Code != want {
		t.Fatalf("status = %d, want %d (body %s)", rec.Code, want, rec.Body.String())
	}
}

func containsFieldMsg(list []FieldError, field, substr string) bool {
	for _, e := range list {
		if e.Field == field && strings.Contains(e.Message, substr) {
			return true
		}
	}
	return false
}
