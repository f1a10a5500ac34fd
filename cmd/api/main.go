package main

import (
	"context"
	"time"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	httpadp "agrifund-backend/internal/adapter/http"
	"agrifund-backend/internal/adapter/middleware"
	"agrifund-backend/internal/adapter/repository/memstore"
	"agrifund-backend/internal/adapter/repository/mysql"
	"agrifund-backend/internal/config"
	domain "agrifund-backend/internal/domain/loan"
	"agrifund-backend/internal/infrastructure/cache"
	"agrifund-backend/internal/infrastructure/db"
	"agrifund-backend/internal/logger"
	"agrifund-backend/internal/notify"
	ucloan "agrifund-backend/internal/usecase/loan"
)

func main() {
	cfg := config.Load()
	log := logger.New(cfg.LogLevel, cfg.LogFormat)
	defer func() { _ = log.Sync() }()

	if err := cfg.Validate(); err != nil {
		log.Fatal("invalid config", zap.Error(err))
	}

	var repo domain.Repository
	switch cfg.Store {
	case "mysql":
		gdb, err := db.OpenGorm(cfg.MySQLDSN(), log)
		if err != nil {
			log.Fatal("mysql connect failed", zap.Error(err))
		}
		if err := gdb.AutoMigrate(&domain.LoanApplication{}); err != nil {
			log.Fatal("migration failed", zap.Error(err))
		}
		repo = mysql.NewLoanRepository(gdb)
	default:
		log.Warn("using in-memory store; applications are lost on restart")
		repo = memstore.NewLoanRepository()
	}

	var sink notify.Sink = notify.Noop{}
	if cfg.SNSRegion != "" {
		s, err := notify.NewSNSSink(context.Background(), cfg.SNSRegion)
		if err != nil {
			log.Fatal("sns init failed", zap.Error(err))
		}
		sink = s
	}

	led := ucloan.NewLedger(repo, sink, log,
		ucloan.WithDefaultCreditLimit(cfg.DefaultCreditLimit),
		ucloan.WithNotifyTimeout(time.Duration(cfg.NotifyTimeoutSec)*time.Second),
	)

	gate := middleware.NewAuthGate(cfg.AuthSecret)

	var idemp echo.MiddlewareFunc
	if cfg.RedisAddr != "" {
		rdb, err := cache.OpenRedis(cfg.RedisAddr, cfg.RedisDB)
		if err != nil {
			log.Fatal("redis connect failed", zap.Error(err))
		}
		idemp = middleware.Idempotency(rdb, time.Duration(cfg.IdempTTLSecs)*time.Second, log)
	}

	e := httpadp.NewRouter(httpadp.NewHandler(), httpadp.NewLoanHandler(led, log), gate, idemp)

	addr := ":" + cfg.AppPort
	log.Info("listening", zap.String("addr", addr), zap.String("store", cfg.Store))
	if err := e.Start(addr); err != nil {
		log.Fatal("server stopped", zap.Error(err))
	}
}
