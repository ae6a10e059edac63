package main

import (
	"log"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	assetclient "trustlend-backend/internal/adapter/asset"
	httpadp "trustlend-backend/internal/adapter/http"
	mw "trustlend-backend/internal/adapter/middleware"
	"trustlend-backend/internal/adapter/repository/mysql"
	"trustlend-backend/internal/config"
	"trustlend-backend/internal/infrastructure/cache"
	"trustlend-backend/internal/infrastructure/db"
	agreementUC "trustlend-backend/internal/usecase/agreement"
	registryUC "trustlend-backend/internal/usecase/registry"
)

func main() {
	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		log.Fatal(err)
	}

	gdb, err := db.OpenGorm(cfg.MySQLDSN())
	if err != nil {
		log.Fatal(err)
	}
	rdb, err := cache.OpenRedis(cfg.RedisAddr, cfg.RedisDB)
	if err != nil {
		log.Fatal(err)
	}

	agreements := mysql.NewAgreementRepository(gdb)
	penalties := mysql.NewPenaltyRepository(gdb)
	scores := mysql.NewTrustScoreRepository(gdb)
	events := mysql.NewEventRepository(gdb)
	uow := mysql.NewGormUoW(gdb)
	assets := assetclient.NewClient(cfg.AssetServiceURL)

	agreementUsecase := agreementUC.NewUsecase(agreements, penalties, events, uow, assets)
	registryUsecase := registryUC.NewUsecase(agreements, scores, uow)

	h := httpadp.NewHandler()
	ah := httpadp.NewAgreementHandler(agreementUsecase)
	rh := httpadp.NewRegistryHandler(registryUsecase)

	e := echo.New()
	e.HideBanner = true
	e.Validator = httpadp.NewValidator()
	e.Use(middleware.Logger(), middleware.Recover())

	idem := mw.IdempotencyMiddleware(rdb, time.Duration(cfg.IdempTTLSecs)*time.Second)

	// routes
	e.GET("/health", h.Health)
	e.GET("/stats", rh.Stats)

	e.POST("/loans", rh.CreateLoan, idem)
	e.GET("/loans/:agreement_id", ah.Get)
	e.GET("/loans/:agreement_id/events", ah.Events)
	e.POST("/loans/:agreement_id/repayments", ah.Repay, idem)
	e.POST("/loans/:agreement_id/default", ah.MarkDefault, idem)
	e.POST("/loans/:agreement_id/late-checks", ah.CheckLate, idem)
	e.GET("/loans/:agreement_id/late-checks/preview", ah.PreviewLate)

	e.GET("/users/:user_id/loans", rh.ListUserLoans)
	e.GET("/users/:user_id/trust-score", rh.TrustScore)

	addr := ":" + cfg.AppPort
	log.Printf("listening on %s", addr)
	if err := e.Start(addr); err != nil {
		log.Fatal(err)
	}
}
