package http

import (
	"log/slog"
	"os"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httplog/v3"
	"github.com/go-chi/jwtauth/v5"

	"github.com/chronohr/timesheet-backend-go/internal/handler/http/middleware"
	"github.com/chronohr/timesheet-backend-go/internal/pkg/jwt"
)

func NewRouter(jwtService jwt.Service, timesheetHandler TimesheetHandler, rulesetHandler RuleSetHandler, shiftHandler ShiftHandler) *chi.Mux {
	r := chi.NewRouter()
	logFormat := httplog.SchemaECS.Concise(false)
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		ReplaceAttr: logFormat.ReplaceAttr,
	})).With(
		slog.String("app", "timesheet-backend"),
		slog.String("version", "v1.0.0"),
		slog.String("env", "development"),
	)

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"http://localhost:3000"},
		AllowCredentials: true,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-CSRF-Token"},
		ExposedHeaders:   []string{"Link"},
		MaxAge:           300,
	}))

	r.Use(httplog.RequestLogger(logger, &httplog.Options{
		Level:  slog.LevelDebug,
		Schema: httplog.SchemaECS,
	}))

	r.Use(chiMiddleware.AllowContentEncoding("application/json"))
	r.Use(chiMiddleware.CleanPath)
	r.Use(chiMiddleware.Recoverer)
	r.Use(chiMiddleware.Heartbeat("/"))

	r.Route("/api/v1", func(r chi.Router) {
		r.Group(func(r chi.Router) {
			r.Use(jwtauth.Verifier(jwtService.JWTAuth()))
			r.Use(middleware.AuthRequired(jwtService.JWTAuth()))

			r.Route("/timesheets", func(r chi.Router) {
				r.Post("/compute", timesheetHandler.Compute)
				r.Post("/bulk-compute", timesheetHandler.BulkCompute)
				r.Get("/", timesheetHandler.List)
				r.Get("/pending-approval", timesheetHandler.PendingApproval)

				r.Route("/{id}", func(r chi.Router) {
					r.Get("/", timesheetHandler.Get)
					r.Post("/submit", timesheetHandler.Submit)

					// Approver only
					r.Group(func(r chi.Router) {
						r.Use(middleware.ApproverOnly)
						r.Post("/approve", timesheetHandler.Approve)
						r.Post("/reject", timesheetHandler.Reject)
						r.Delete("/", timesheetHandler.ClearRejected)
					})
				})
			})

			r.Route("/rule-sets", func(r chi.Router) {
				r.Post("/", rulesetHandler.Create)
				r.Get("/", rulesetHandler.List)
				r.Route("/{id}", func(r chi.Router) {
					r.Get("/", rulesetHandler.Get)
					r.Put("/", rulesetHandler.Update)
					r.Delete("/", rulesetHandler.Delete)
				})
			})

			r.Route("/shifts", func(r chi.Router) {
				r.Post("/", shiftHandler.Create)
				r.Get("/", shiftHandler.List)
				r.Route("/{id}", func(r chi.Router) {
					r.Get("/", shiftHandler.Get)
					r.Put("/", shiftHandler.Update)
					r.Delete("/", shiftHandler.Delete)
					r.Post("/assign", shiftHandler.Assign)
				})
			})
		})
	})
	return r
}
