package api

import (
	"dairycollect/internal/api/handler"
	mw "dairycollect/internal/api/middleware"
	"dairycollect/internal/config"
	"dairycollect/internal/domain/farmer"
	"dairycollect/internal/domain/loan"
	"dairycollect/internal/domain/milk"
	"dairycollect/internal/domain/ngo"
	"dairycollect/internal/domain/payment"
	"dairycollect/internal/domain/poc"
	"dairycollect/internal/domain/transport"
	"dairycollect/internal/domain/user"
	"log/slog"
	"net/http"
	"time"

	_ "dairycollect/docs"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/traceid"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	httpSwagger "github.com/swaggo/http-swagger/v2"
)

// Services bundles the domain services the router exposes.
type Services struct {
	Farmer    farmer.FarmerService
	Milk      milk.MilkService
	Loan      loan.LoanService
	Payment   payment.PaymentService
	POC       poc.POCService
	Transport transport.TransportService
	NGO       ngo.NGOService
	User      user.UserService
}

func SetupRouter(svcs Services, cfg *config.Config, logger *slog.Logger) *chi.Mux {
	router := chi.NewRouter()

	setupMiddleware(router, cfg, logger)
	setupMetricsEndpoint(router, cfg, logger)
	setupAuthRoutes(router, cfg, svcs.User, logger)
	setupFarmerRoutes(router, cfg, svcs.Farmer, logger)
	setupMilkRoutes(router, cfg, svcs.Milk, logger)
	setupLoanRoutes(router, cfg, svcs.Loan, logger)
	setupPaymentRoutes(router, cfg, svcs.Payment, logger)
	setupPOCRoutes(router, cfg, svcs.POC, logger)
	setupTransportRoutes(router, cfg, svcs.Transport, logger)
	setupNGORoutes(router, cfg, svcs.NGO, logger)
	router.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status":"ok"}`))
	})
	setupSwaggerEndpoint(router, logger)

	return router
}

func setupMiddleware(router *chi.Mux, cfg *config.Config, logger *slog.Logger) {
	router.Use(middleware.RequestID)
	router.Use(middleware.RealIP)
	router.Use(traceid.Middleware)
	router.Use(mw.StructuredLogger(logger))
	router.Use(middleware.Recoverer)
	router.Use(middleware.Compress(5))
	router.Use(middleware.Timeout(60 * time.Second))
	router.Use(mw.NewRateLimiterMiddleware(cfg.Server.RateLimit, logger).Middleware)
	router.Use(mw.MetricsMiddleware())
}

func setupMetricsEndpoint(router *chi.Mux, cfg *config.Config, logger *slog.Logger) {
	metricsPath := cfg.Metrics.Path
	if metricsPath == "" {
		metricsPath = "/metrics"
	}
	logger.Info("Setting up Prometheus metrics endpoint", "path", metricsPath)
	router.Handle(metricsPath, promhttp.Handler())
}

func setupSwaggerEndpoint(router *chi.Mux, logger *slog.Logger) {
	logger.Info("Setting up Swagger UI endpoint", "path", "/swagger/")
	router.Get("/swagger/*", httpSwagger.WrapHandler)
	router.Get("/swagger", func(w http.ResponseWriter, r *http.Request) {
		http.Redirect(w, r, "/swagger/index.html", http.StatusMovedPermanently)
	})
}

func setupAuthRoutes(router *chi.Mux, cfg *config.Config, svc user.UserService, logger *slog.Logger) {
	h := handler.NewAuthHandler(*cfg, svc, logger)

	router.Route("/auth", func(r chi.Router) {
		r.Post("/token", h.GenerateBearerToken)
		r.Post("/register", h.Register)
	})

	router.Route("/users", func(r chi.Router) {
		r.Use(mw.AuthMiddleware(cfg.Server.Auth, logger))
		r.Use(mw.RequireRole(cfg.Server.Auth, logger, string(user.RoleAdmin)))
		r.Get("/{userID}", h.GetUser)
		r.Delete("/{userID}", h.DeactivateUser)
	})
}

func setupFarmerRoutes(router *chi.Mux, cfg *config.Config, svc farmer.FarmerService, logger *slog.Logger) {
	h := handler.NewFarmerHandler(svc, logger)

	router.Route("/farmers", func(r chi.Router) {
		r.Use(mw.AuthMiddleware(cfg.Server.Auth, logger))
		r.Post("/", h.RegisterFarmer)
		r.Get("/", h.ListFarmers)
		r.Get("/poc/{pocID}", h.ListFarmersByPOC)
		r.Route("/{farmerID}", func(r chi.Router) {
			r.Get("/", h.GetFarmer)
			r.Put("/", h.UpdateFarmer)
			r.Delete("/", h.DeactivateFarmer)
			r.Put("/poc", h.AssignPOC)
			r.Put("/reactivate", h.ReactivateFarmer)
		})
	})
}

func setupMilkRoutes(router *chi.Mux, cfg *config.Config, svc milk.MilkService, logger *slog.Logger) {
	h := handler.NewMilkHandler(svc, logger)

	router.Route("/milk", func(r chi.Router) {
		r.Use(mw.AuthMiddleware(cfg.Server.Auth, logger))
		r.Post("/", h.SubmitMilk)
		r.Get("/", h.ListSubmissionsByStatus)
		r.Get("/farmer/{farmerID}", h.ListFarmerSubmissions)
		r.Get("/{submissionID}", h.GetSubmission)
		r.With(mw.RequireRole(cfg.Server.Auth, logger, string(user.RolePOC), string(user.RoleAdmin))).
			Put("/{submissionID}/review", h.ReviewSubmission)
	})

	router.Route("/production", func(r chi.Router) {
		r.Use(mw.AuthMiddleware(cfg.Server.Auth, logger))
		r.Post("/", h.RecordProduction)
		r.Get("/farmer/{farmerID}", h.ListFarmerProduction)
	})
}

func setupLoanRoutes(router *chi.Mux, cfg *config.Config, svc loan.LoanService, logger *slog.Logger) {
	h := handler.NewLoanHandler(svc, logger)

	router.Route("/loans", func(r chi.Router) {
		r.Use(mw.AuthMiddleware(cfg.Server.Auth, logger))
		r.Post("/", h.RequestLoan)
		r.Get("/", h.ListLoans)
		r.Get("/farmer/{farmerID}", h.ListFarmerLoans)
		r.Get("/farmer/{farmerID}/summary", h.FarmerLoanSummary)
		r.Route("/{loanID}", func(r chi.Router) {
			r.Get("/", h.GetLoan)
			r.With(mw.RequireRole(cfg.Server.Auth, logger, string(user.RoleAdmin))).Put("/approve", h.ApproveLoan)
			r.With(mw.RequireRole(cfg.Server.Auth, logger, string(user.RoleAdmin))).Put("/reject", h.RejectLoan)
			r.With(mw.RequireRole(cfg.Server.Auth, logger, string(user.RoleAdmin))).Put("/complete", h.CompleteLoan)
		})
	})
}

func setupPaymentRoutes(router *chi.Mux, cfg *config.Config, svc payment.PaymentService, logger *slog.Logger) {
	h := handler.NewPaymentHandler(svc, logger)

	router.Route("/payments", func(r chi.Router) {
		r.Use(mw.AuthMiddleware(cfg.Server.Auth, logger))
		r.Get("/farmer/{farmerID}", h.ListFarmerPayments)
		r.Get("/farmer/{farmerID}/summary", h.FarmerPaymentSummary)
		r.With(mw.RequireRole(cfg.Server.Auth, logger, string(user.RoleAdmin))).
			Post("/bulk-status", h.BulkUpdateStatus)
	})
}

func setupPOCRoutes(router *chi.Mux, cfg *config.Config, svc poc.POCService, logger *slog.Logger) {
	h := handler.NewPOCHandler(svc, logger)

	router.Route("/pocs", func(r chi.Router) {
		r.Use(mw.AuthMiddleware(cfg.Server.Auth, logger))
		r.Post("/", h.CreatePOC)
		r.Get("/", h.ListPOCs)
		r.Route("/{pocID}", func(r chi.Router) {
			r.Get("/", h.GetPOC)
			r.Put("/", h.UpdatePOC)
			r.Delete("/", h.DeactivatePOC)
			r.Put("/diary", h.AssignDiary)
		})
	})

	router.Route("/diaries", func(r chi.Router) {
		r.Use(mw.AuthMiddleware(cfg.Server.Auth, logger))
		r.Post("/", h.CreateDiary)
		r.Get("/", h.ListDiaries)
		r.Get("/{diaryID}", h.GetDiary)
		r.Put("/{diaryID}", h.UpdateDiary)
	})
}

func setupTransportRoutes(router *chi.Mux, cfg *config.Config, svc transport.TransportService, logger *slog.Logger) {
	h := handler.NewTransportHandler(svc, logger)

	router.Route("/transports", func(r chi.Router) {
		r.Use(mw.AuthMiddleware(cfg.Server.Auth, logger))
		r.Post("/", h.CreateTransport)
		r.Get("/", h.ListTransports)
		r.Route("/{transportID}", func(r chi.Router) {
			r.Get("/", h.GetTransport)
			r.Put("/", h.UpdateTransport)
			r.Delete("/", h.DeactivateTransport)
			r.Put("/diary", h.AssignDiary)
		})
	})
}

func setupNGORoutes(router *chi.Mux, cfg *config.Config, svc ngo.NGOService, logger *slog.Logger) {
	h := handler.NewNGOHandler(svc, logger)

	router.Route("/ngos", func(r chi.Router) {
		r.Use(mw.AuthMiddleware(cfg.Server.Auth, logger))
		r.Post("/", h.CreateNGO)
		r.Get("/", h.ListNGOs)
		r.Route("/{ngoID}", func(r chi.Router) {
			r.Get("/", h.GetNGO)
			r.Put("/", h.UpdateNGO)
			r.Delete("/", h.DeactivateNGO)
			r.Get("/report", h.ActivityReport)
		})
	})
}
