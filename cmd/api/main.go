package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/chronohr/timesheet-backend-go/internal/config"
	"github.com/chronohr/timesheet-backend-go/internal/domain/timesheet"
	appHTTP "github.com/chronohr/timesheet-backend-go/internal/handler/http"
	"github.com/chronohr/timesheet-backend-go/internal/pkg/cron"
	"github.com/chronohr/timesheet-backend-go/internal/pkg/database"
	"github.com/chronohr/timesheet-backend-go/internal/pkg/jwt"
	"github.com/chronohr/timesheet-backend-go/internal/repository/postgresql"
	rulesetService "github.com/chronohr/timesheet-backend-go/internal/service/ruleset"
	shiftService "github.com/chronohr/timesheet-backend-go/internal/service/shift"
	timesheetService "github.com/chronohr/timesheet-backend-go/internal/service/timesheet"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Println("Error loading config:", err)
		return
	}

	dsn := cfg.DatabaseURL()
	db, err := database.NewPostgreSQLDB(dsn)
	if err != nil {
		fmt.Println("Error connecting to database:", err)
		return
	}

	rulesetRepo := postgresql.NewRuleSetRepository(db)
	shiftRepo := postgresql.NewShiftTemplateRepository(db)
	employeeRepo := postgresql.NewEmployeeRepository(db)
	attendanceRepo := postgresql.NewEventRepository(db)
	timesheetRepo := postgresql.NewTimesheetRepository(db)

	JWTService := jwt.NewJWTService(cfg.JWT.Secret, cfg.JWT.AccessExpiration)

	rulesetSvc := rulesetService.NewRuleSetService(rulesetRepo)
	shiftSvc := shiftService.NewShiftService(shiftRepo, employeeRepo, db)
	timesheetSvc := timesheetService.NewTimesheetService(timesheetRepo, rulesetRepo, shiftRepo, employeeRepo, attendanceRepo)

	timesheetHandler := appHTTP.NewTimesheetHandler(timesheetSvc)
	rulesetHandler := appHTTP.NewRuleSetHandler(rulesetSvc)
	shiftHandler := appHTTP.NewShiftHandler(shiftSvc)

	scheduler := cron.NewScheduler()
	if cfg.BulkCompute.Enabled {
		scheduler.AddJob("bulk_compute_timesheets", cfg.BulkCompute.Interval, func(ctx context.Context) error {
			_, err := timesheetSvc.BulkCompute(ctx, timesheet.BulkComputeRequest{
				RuleSetID: cfg.BulkCompute.DefaultRuleSetID,
			})
			return err
		})
	}
	scheduler.Start()
	defer scheduler.Stop()

	router := appHTTP.NewRouter(JWTService, timesheetHandler, rulesetHandler, shiftHandler)

	server := &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.App.Port),
		Handler: router,
	}

	go func() {
		fmt.Printf("Server starting on port %d\n", cfg.App.Port)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			fmt.Println("Server error:", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	fmt.Println("Shutting down server...")
	if err := server.Shutdown(context.Background()); err != nil {
		fmt.Println("Server shutdown error:", err)
	}
	db.Close()
}
