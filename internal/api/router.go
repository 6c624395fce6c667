package api

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/httprate"

	"github.com/ba3ai/clarus-backend/internal/api/handlers"
	custommiddleware "github.com/ba3ai/clarus-backend/internal/api/middleware"
	"github.com/ba3ai/clarus-backend/internal/config"
	"github.com/ba3ai/clarus-backend/internal/service"
)

// Services bundles the service dependencies the router wires into handlers.
type Services struct {
	System     *service.SystemService
	Investor   *service.InvestorService
	Contact    *service.ContactService
	Document   *service.DocumentService
	Statement  *service.StatementService
	Invitation *service.InvitationService
	Group      *service.GroupService
	Overview   *service.OverviewService
	Metrics    *service.MetricsService
	Benchmark  *service.BenchmarkService
	ViewAs     *service.ViewAsService
}

// NewRouter creates and configures the HTTP router
func NewRouter(svcs Services, cfg *config.Config) http.Handler {
	r := chi.NewRouter()

	// Global middleware
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(custommiddleware.Logger)
	r.Use(middleware.Recoverer)

	// CORS middleware
	corsMiddleware := custommiddleware.NewCORS(cfg.CORS.AllowedOrigins)
	r.Use(corsMiddleware.Handler)

	defaultSymbol := ""
	if len(cfg.Benchmark.Symbols) > 0 {
		defaultSymbol = cfg.Benchmark.Symbols[0]
	}

	// API routes
	r.Route("/api", func(r chi.Router) {
		// System namespace
		r.Route("/system", func(r chi.Router) {
			systemHandler := handlers.NewSystemHandler(svcs.System)
			r.Get("/health", systemHandler.Health)
			r.Get("/version", systemHandler.Version)
		})

		// Invitation acceptance is the only unauthenticated write, so it
		// carries a per-IP rate limit.
		invitationHandler := handlers.NewInvitationHandler(svcs.Invitation)
		r.Group(func(r chi.Router) {
			r.Use(httprate.LimitByIP(10, time.Minute))
			r.Post("/invitations/accept", invitationHandler.AcceptInvitation)
		})

		// Everything below requires a caller identity.
		r.Group(func(r chi.Router) {
			r.Use(custommiddleware.Identity)
			r.Use(custommiddleware.ViewAs(svcs.ViewAs))

			metricsHandler := handlers.NewMetricsHandler(
				svcs.Overview, svcs.Metrics, svcs.Group, svcs.Benchmark, defaultSymbol)
			r.Route("/metrics", func(r chi.Router) {
				r.Get("/investor-overview", metricsHandler.InvestorOverview)
				r.Get("/periods", metricsHandler.Periods)
				r.Get("/allocation", metricsHandler.Allocation)
				r.Get("/roi_comparison", metricsHandler.ROIComparison)
			})

			r.Get("/portfolio/roi_monthly", metricsHandler.PortfolioROIMonthly)
			r.Route("/market", func(r chi.Router) {
				r.Get("/roi_monthly", metricsHandler.MarketROIMonthly)
				r.Post("/refresh", metricsHandler.RefreshBenchmark)
			})

			r.Route("/investors", func(r chi.Router) {
				investorHandler := handlers.NewInvestorHandler(svcs.Investor)
				contactHandler := handlers.NewContactHandler(svcs.Contact)
				documentHandler := handlers.NewDocumentHandler(svcs.Document)
				statementHandler := handlers.NewStatementHandler(svcs.Statement)

				r.Get("/", investorHandler.Investors)
				r.Post("/", investorHandler.CreateInvestor)
				r.Get("/export", investorHandler.ExportInvestorsCSV)
				r.Get("/dependents", investorHandler.MyDependents)

				r.Route("/{uuid}", func(r chi.Router) {
					r.Use(custommiddleware.ValidateUUIDMiddleware)
					r.Get("/", investorHandler.GetInvestor)
					r.Put("/", investorHandler.UpdateInvestor)
					r.Delete("/", investorHandler.DeleteInvestor)
					r.Get("/dependents", investorHandler.Dependents)

					r.Get("/contacts", contactHandler.ContactsPerInvestor)

					r.Get("/documents", documentHandler.DocumentsPerInvestor)
					r.Get("/documents/tree", documentHandler.DocumentTree)
					r.Post("/documents", documentHandler.UploadDocument)

					r.Get("/statements", statementHandler.StatementsPerInvestor)
					r.Get("/statements/export", statementHandler.ExportStatementsCSV)
					r.Post("/statements", statementHandler.PublishStatement)
				})
			})

			r.Route("/contacts", func(r chi.Router) {
				contactHandler := handlers.NewContactHandler(svcs.Contact)
				r.Post("/", contactHandler.CreateContact)
				r.Route("/{uuid}", func(r chi.Router) {
					r.Use(custommiddleware.ValidateUUIDMiddleware)
					r.Get("/", contactHandler.GetContact)
					r.Put("/", contactHandler.UpdateContact)
					r.Delete("/", contactHandler.DeleteContact)
				})
			})

			r.Route("/documents", func(r chi.Router) {
				documentHandler := handlers.NewDocumentHandler(svcs.Document)
				r.Route("/{uuid}", func(r chi.Router) {
					r.Use(custommiddleware.ValidateUUIDMiddleware)
					r.Get("/download", documentHandler.DownloadDocument)
					r.Put("/", documentHandler.UpdateDocument)
					r.Delete("/", documentHandler.DeleteDocument)
				})
			})

			r.Route("/folders", func(r chi.Router) {
				documentHandler := handlers.NewDocumentHandler(svcs.Document)
				r.Post("/", documentHandler.CreateFolder)
				r.Route("/{uuid}", func(r chi.Router) {
					r.Use(custommiddleware.ValidateUUIDMiddleware)
					r.Delete("/", documentHandler.DeleteFolder)
				})
			})

			r.Route("/statements", func(r chi.Router) {
				statementHandler := handlers.NewStatementHandler(svcs.Statement)
				r.Route("/{uuid}", func(r chi.Router) {
					r.Use(custommiddleware.ValidateUUIDMiddleware)
					r.Get("/download", statementHandler.DownloadStatement)
					r.Put("/", statementHandler.UpdateStatement)
					r.Delete("/", statementHandler.DeleteStatement)
				})
			})

			r.Route("/invitations", func(r chi.Router) {
				r.Get("/", invitationHandler.Invitations)
				r.Post("/", invitationHandler.CreateInvitation)
				r.Route("/{uuid}", func(r chi.Router) {
					r.Use(custommiddleware.ValidateUUIDMiddleware)
					r.Delete("/", invitationHandler.DeleteInvitation)
				})
			})

			groupHandler := handlers.NewGroupHandler(svcs.Group)
			r.Get("/group-admin/my-group", groupHandler.MyGroup)
			r.Route("/admin/group-admins/{uuid}", func(r chi.Router) {
				r.Use(custommiddleware.ValidateUUIDMiddleware)
				r.Get("/members", groupHandler.GroupMembers)
				r.Post("/members", groupHandler.AddGroupMember)
				r.Delete("/members/{memberId}", groupHandler.RemoveGroupMember)
			})

			viewAsHandler := handlers.NewViewAsHandler(svcs.ViewAs)
			r.Route("/view-as", func(r chi.Router) {
				r.Get("/", viewAsHandler.Current)
				r.Put("/", viewAsHandler.Remember)
				r.Delete("/", viewAsHandler.Clear)
			})
		})
	})

	return r
}
