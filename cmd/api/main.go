package main

import (
	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	log "github.com/sirupsen/logrus"

	httpadp "moneylending-backend/internal/adapter/http"
	authmw "moneylending-backend/internal/adapter/middleware"
	"moneylending-backend/internal/adapter/repository/mysql"
	"moneylending-backend/internal/config"
	accountDomain "moneylending-backend/internal/domain/account"
	loanDomain "moneylending-backend/internal/domain/loan"
	"moneylending-backend/internal/infrastructure/cache"
	"moneylending-backend/internal/infrastructure/db"
	"moneylending-backend/internal/infrastructure/notify"
	accountUC "moneylending-backend/internal/usecase/account"
	"moneylending-backend/internal/usecase/identity"
	loanUC "moneylending-backend/internal/usecase/loan"
)

func main() {
	_ = godotenv.Load()

	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		log.WithError(err).Fatal("invalid config")
	}
	if lvl, err := log.ParseLevel(cfg.LogLevel); err == nil {
		log.SetLevel(lvl)
	}

	gdb, err := db.OpenGorm(cfg.MySQLDSN())
	if err != nil {
		log.WithError(err).Fatal("mysql connect failed")
	}
	if err := gdb.AutoMigrate(&accountDomain.Account{}, &loanDomain.Loan{}, &loanDomain.Payment{}); err != nil {
		log.WithError(err).Fatal("migration failed")
	}

	rdb, err := cache.OpenRedis(cfg.RedisAddr, cfg.RedisDB)
	if err != nil {
		log.WithError(err).Fatal("redis connect failed")
	}

	sessions := cache.NewSessionStore(rdb, cfg.SessionTTL)
	codes := cache.NewCodeStore(rdb, cfg.VerifyTTL)

	var mailer accountDomain.Notifier = notify.LogMailer{}
	if cfg.SMTPAddr != "" {
		mailer = notify.NewSMTPMailer(cfg.SMTPAddr, cfg.SMTPFrom)
	}

	loanRepo := mysql.NewLoanRepository(gdb)
	accountRepo := mysql.NewAccountRepository(gdb)
	uow := mysql.NewGormUoW(gdb)
	resolver := identity.NewResolver(accountRepo)

	loans := loanUC.NewUsecase(loanRepo, resolver, uow)
	accounts := accountUC.NewUsecase(accountRepo, sessions, codes, mailer)

	h := httpadp.NewHandler()
	lh := httpadp.NewLoanHandler(loans)
	ah := httpadp.NewAccountHandler(accounts)

	e := echo.New()
	e.HideBanner = true
	e.Validator = httpadp.NewValidator()
	e.Use(echomw.Logger(), echomw.Recover())

	e.GET("/health", h.Health)

	auth := e.Group("/api/auth")
	auth.POST("/register", ah.Register)
	auth.POST("/login", ah.Login)
	auth.POST("/logout", ah.Logout)
	auth.POST("/verify/send", ah.SendVerification)
	auth.POST("/verify/confirm", ah.ConfirmVerification)

	api := e.Group("/api", authmw.SessionAuth(sessions, accountRepo))
	api.POST("/loans", lh.CreateLoan)
	api.GET("/loans", lh.ListLoans)
	api.GET("/loans/:loan_id", lh.GetLoan)
	api.PUT("/loans/:loan_id", lh.UpdateLoan)
	api.DELETE("/loans/:loan_id", lh.DeleteLoan)
	api.POST("/loans/:loan_id/payments", lh.AddPayment)
	api.PUT("/loans/:loan_id/status", lh.ForceStatus)

	addr := ":" + cfg.AppPort
	log.WithField("addr", addr).Info("listening")
	if err := e.Start(addr); err != nil {
		log.Fatal(err)
	}
}
