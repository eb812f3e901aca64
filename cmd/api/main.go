package main

import (
	"fmt"
	"net/http"

	"github.com/hadirly/attendance-backend-go/internal/config"
	appHTTP "github.com/hadirly/attendance-backend-go/internal/handler/http"
	"github.com/hadirly/attendance-backend-go/internal/pkg/clock"
	"github.com/hadirly/attendance-backend-go/internal/pkg/database"
	"github.com/hadirly/attendance-backend-go/internal/pkg/jwt"
	"github.com/hadirly/attendance-backend-go/internal/repository/postgresql"
	attendanceService "github.com/hadirly/attendance-backend-go/internal/service/attendance"
	authService "github.com/hadirly/attendance-backend-go/internal/service/auth"
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

	userRepo := postgresql.NewUserRepository(db)
	attendanceRepo := postgresql.NewAttendanceRepository(db)

	policy, err := cfg.AttendancePolicy()
	if err != nil {
		fmt.Println("Error building attendance policy:", err)
		return
	}

	clk := clock.System()
	jwtService := jwt.NewJWTService(cfg.JWT.Secret, cfg.JWT.AccessExpiration, cfg.JWT.RefreshExpiration)
	authSvc := authService.NewAuthService(userRepo, jwtService, clk, cfg.Attendance.DefaultRadiusMeters, cfg.Auth.PasswordResetTTL)
	attendanceSvc := attendanceService.NewAttendanceService(db, attendanceRepo, userRepo, policy, clk)

	authHandler := appHTTP.NewAuthHandler(jwtService, authSvc)
	attendanceHandler := appHTTP.NewAttendanceHandler(attendanceSvc)

	router := appHTTP.NewRouter(
		jwtService,
		authHandler,
		attendanceHandler,
		cfg.Attendance.AdminCanResolve,
	)

	port := fmt.Sprintf(":%d", cfg.App.Port)
	fmt.Printf("Server running at http://localhost%s\n", port)
	if err := http.ListenAndServe(port, router); err != nil {
		fmt.Println("Server error:", err)
	}
}
