package main

import (
	"context"
	"fmt"
	"net/http"

	"github.com/shiftline/timeclock-backend-go/internal/config"
	appHTTP "github.com/shiftline/timeclock-backend-go/internal/handler/http"
	"github.com/shiftline/timeclock-backend-go/internal/pkg/clock"
	"github.com/shiftline/timeclock-backend-go/internal/pkg/database"
	"github.com/shiftline/timeclock-backend-go/internal/pkg/jwt"
	"github.com/shiftline/timeclock-backend-go/internal/repository/postgresql"
	authService "github.com/shiftline/timeclock-backend-go/internal/service/auth"
	employeeService "github.com/shiftline/timeclock-backend-go/internal/service/employee"
	policyService "github.com/shiftline/timeclock-backend-go/internal/service/policy"
	reportService "github.com/shiftline/timeclock-backend-go/internal/service/report"
	scheduleService "github.com/shiftline/timeclock-backend-go/internal/service/schedule"
	shifteditService "github.com/shiftline/timeclock-backend-go/internal/service/shiftedit"
	shiftqueryService "github.com/shiftline/timeclock-backend-go/internal/service/shiftquery"
	timeclockService "github.com/shiftline/timeclock-backend-go/internal/service/timeclock"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Println("Error loading config:", err)
		return
	}

	ctx := context.Background()
	db, err := database.NewPostgreSQLDB(ctx, cfg.DatabaseURL())
	if err != nil {
		fmt.Println("Error connecting to database:", err)
		return
	}
	defer db.Close()

	employeeRepo := postgresql.NewEmployeeRepository(db)
	policyRepo := postgresql.NewPolicyRepository(db)
	scheduleRepo := postgresql.NewScheduleRepository(db)
	shiftRepo := postgresql.NewWorkShiftRepository(db)
	breakRepo := postgresql.NewMealBreakRepository(db)
	editLogRepo := postgresql.NewShiftEditLogRepository(db)

	JWTService := jwt.NewJWTService(cfg.JWT.Secret, cfg.JWT.AccessExpiration, cfg.JWT.RefreshExpiration)
	clk := clock.System()

	authSvc := authService.NewAuthService(employeeRepo, JWTService)
	employeeSvc := employeeService.NewEmployeeService(employeeRepo)
	policySvc := policyService.NewPolicyService(policyRepo)
	scheduleSvc := scheduleService.NewScheduleService(scheduleRepo, employeeRepo, clk)
	timeclockSvc := timeclockService.NewTimeclockService(policyRepo, scheduleRepo, shiftRepo, breakRepo, clk)
	shiftEditSvc := shifteditService.NewShiftEditService(policyRepo, shiftRepo, editLogRepo, postgresql.NewTxManager(db), clk)
	shiftQuerySvc := shiftqueryService.NewShiftQueryService(shiftRepo)
	reportSvc := reportService.NewReportService(shiftRepo)

	router := appHTTP.NewRouter(cfg, appHTTP.RouterDeps{
		JWTService:       JWTService,
		AuthHandler:      appHTTP.NewAuthHandler(authSvc),
		EmployeeHandler:  appHTTP.NewEmployeeHandler(employeeSvc),
		TimeclockHandler: appHTTP.NewTimeclockHandler(timeclockSvc),
		ShiftHandler:     appHTTP.NewShiftHandler(shiftQuerySvc, shiftEditSvc, reportSvc),
		ScheduleHandler:  appHTTP.NewScheduleHandler(scheduleSvc),
		PolicyHandler:    appHTTP.NewPolicyHandler(policySvc),
	})

	addr := fmt.Sprintf(":%d", cfg.App.Port)
	fmt.Println("Listening on", addr)
	if err := http.ListenAndServe(addr, router); err != nil {
		fmt.Println("Server error:", err)
	}
}
