package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/dralina/clinic/internal/config"
	"github.com/dralina/clinic/internal/domain/blog"
	"github.com/dralina/clinic/internal/domain/booking"
	"github.com/dralina/clinic/internal/domain/clinicservice"
	"github.com/dralina/clinic/internal/domain/doctor"
	"github.com/dralina/clinic/internal/domain/patient"
	"github.com/dralina/clinic/internal/domain/schedule"
	"github.com/dralina/clinic/internal/platform/auth"
	"github.com/dralina/clinic/internal/platform/db"
	"github.com/dralina/clinic/internal/platform/middleware"
	"github.com/dralina/clinic/internal/platform/token"
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "clinic-server",
		Short: "Clinic booking and content API server",
	}

	rootCmd.AddCommand(serveCmd())
	rootCmd.AddCommand(migrateCmd())
	rootCmd.AddCommand(seedCmd())

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func serveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Start the clinic API server",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServer()
		},
	}
}

func migrateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Run database migrations",
	}

	upCmd := &cobra.Command{
		Use:   "up",
		Short: "Apply pending migrations",
		RunE: func(cmd *cobra.Command, args []string) error {
			dir, _ := cmd.Flags().GetString("dir")

			cfg, err := config.Load()
			if err != nil {
				return err
			}

			ctx := context.Background()
			pool, err := db.NewPool(ctx, cfg.DatabaseURL, cfg.DBMaxConns, cfg.DBMinConns)
			if err != nil {
				return err
			}
			defer pool.Close()

			migrator := db.NewMigrator(pool, dir)
			count, err := migrator.Up(ctx)
			if err != nil {
				return fmt.Errorf("migration failed: %w", err)
			}

			fmt.Printf("Applied %d migration(s) successfully.\n", count)
			return nil
		},
	}
	upCmd.Flags().String("dir", "./migrations", "Path to migrations directory")
	cmd.AddCommand(upCmd)

	statusCmd := &cobra.Command{
		Use:   "status",
		Short: "Show migration status",
		RunE: func(cmd *cobra.Command, args []string) error {
			dir, _ := cmd.Flags().GetString("dir")

			cfg, err := config.Load()
			if err != nil {
				return err
			}

			ctx := context.Background()
			pool, err := db.NewPool(ctx, cfg.DatabaseURL, cfg.DBMaxConns, cfg.DBMinConns)
			if err != nil {
				return err
			}
			defer pool.Close()

			migrator := db.NewMigrator(pool, dir)
			statuses, err := migrator.Status(ctx)
			if err != nil {
				return fmt.Errorf("failed to get migration status: %w", err)
			}

			fmt.Printf("%-10s %-40s %-10s %s\n", "VERSION", "NAME", "STATUS", "APPLIED AT")
			for _, s := range statuses {
				status := "pending"
				appliedAt := ""
				if s.Applied {
					status = "applied"
					if s.AppliedAt != nil {
						appliedAt = s.AppliedAt.Format("2006-01-02 15:04:05")
					}
				}
				fmt.Printf("%-10d %-40s %-10s %s\n", s.Version, s.Name, status, appliedAt)
			}
			return nil
		},
	}
	statusCmd.Flags().String("dir", "./migrations", "Path to migrations directory")
	cmd.AddCommand(statusCmd)

	return cmd
}

func seedCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "seed",
		Short: "Load demo doctors, services and schedules",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}

			ctx := context.Background()
			pool, err := db.NewPool(ctx, cfg.DatabaseURL, cfg.DBMaxConns, cfg.DBMinConns)
			if err != nil {
				return err
			}
			defer pool.Close()

			doctorRepo := doctor.NewDoctorRepoPG(pool)
			serviceRepo := clinicservice.NewServiceRepoPG(pool)
			scheduleRepo := schedule.NewScheduleRepoPG(pool)

			d := &doctor.Doctor{FullName: "Dra. Lina Ramírez", Specialty: "Dermatología", Active: true}
			if err := doctorRepo.Create(ctx, d); err != nil {
				return fmt.Errorf("seed doctor: %w", err)
			}

			for _, cs := range []*clinicservice.ClinicService{
				{Name: "Consulta dermatológica", DurationMinutes: 30, Price: 50},
				{Name: "Limpieza facial profunda", DurationMinutes: 60, Price: 80},
				{Name: "Control post-tratamiento", DurationMinutes: 15, Price: 25},
			} {
				if err := serviceRepo.Create(ctx, cs); err != nil {
					return fmt.Errorf("seed service %q: %w", cs.Name, err)
				}
			}

			// Monday through Friday, 09:00-17:00
			for day := 0; day < 5; day++ {
				ws := &schedule.WorkSchedule{
					DoctorID: d.ID, DayOfWeek: day,
					StartTime: "09:00", EndTime: "17:00", IsActive: true,
				}
				if err := scheduleRepo.Create(ctx, ws); err != nil {
					return fmt.Errorf("seed schedule day %d: %w", day, err)
				}
			}

			fmt.Println("Seed data loaded.")
			return nil
		},
	}
}

func runServer() error {
	// Logger
	logger := zerolog.New(os.Stdout).With().Timestamp().Logger()
	if os.Getenv("ENV") == "development" || os.Getenv("ENV") == "" {
		logger = zerolog.New(zerolog.ConsoleWriter{Out: os.Stdout}).With().Timestamp().Logger()
	}

	// Config
	cfg, err := config.Load()
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to load config")
	}
	if err := cfg.Validate(); err != nil {
		logger.Fatal().Err(err).Msg("invalid config")
	}

	// Database
	ctx := context.Background()
	pool, err := db.NewPool(ctx, cfg.DatabaseURL, cfg.DBMaxConns, cfg.DBMinConns)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to connect to database")
	}
	defer pool.Close()
	logger.Info().Msg("connected to database")

	// Echo server
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	// Global middleware
	e.Use(middleware.Recovery(logger))
	e.Use(middleware.RequestID())
	e.Use(middleware.Logger(logger))
	e.Use(middleware.SecurityHeaders())
	e.Use(echomw.CORSWithConfig(echomw.CORSConfig{
		AllowOrigins: cfg.CORSOrigins,
		AllowMethods: []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete},
		AllowHeaders: []string{"Authorization", "Content-Type", "X-Request-ID"},
	}))
	e.Use(middleware.RequestTimeout(30 * time.Second))

	// API groups
	public := e.Group("/api")
	admin := e.Group("/admin/api")

	rateLimitCfg := middleware.RateLimitConfig{
		RequestsPerSecond: cfg.RateLimitRPS,
		BurstSize:         cfg.RateLimitBurst,
	}
	if rateLimitCfg.RequestsPerSecond <= 0 {
		rateLimitCfg = middleware.DefaultRateLimitConfig()
	}
	public.Use(middleware.RateLimit(rateLimitCfg))
	admin.Use(middleware.RateLimit(rateLimitCfg))

	// Admin auth
	if cfg.IsDev() && cfg.SecretKey == "" {
		logger.Warn().Msg("SECRET_KEY unset, admin API runs with dev auth")
		admin.Use(auth.DevAuthMiddleware())
	} else {
		admin.Use(auth.JWTMiddleware(auth.JWTConfig{SigningKey: []byte(cfg.SecretKey)}))
	}

	// Confirmation token signer
	signer := token.NewSigner([]byte(cfg.SecretKey), time.Duration(cfg.ConfirmTTLMins)*time.Minute)

	// Repositories
	doctorRepo := doctor.NewDoctorRepoPG(pool)
	serviceRepo := clinicservice.NewServiceRepoPG(pool)
	scheduleRepo := schedule.NewScheduleRepoPG(pool)
	patientRepo := patient.NewPatientRepoPG(pool)
	apptRepo := booking.NewAppointmentRepoPG(pool)
	postRepo := blog.NewPostRepoPG(pool)

	// Services
	doctorSvc := doctor.NewService(doctorRepo)
	serviceSvc := clinicservice.NewService(serviceRepo)
	scheduleSvc := schedule.NewService(scheduleRepo)
	bookingSvc := booking.NewService(pool, apptRepo, patientRepo, serviceRepo, scheduleSvc, signer, logger)
	blogSvc := blog.NewService(postRepo)

	// Handlers
	doctor.NewHandler(doctorSvc).RegisterRoutes(public, admin)
	clinicservice.NewHandler(serviceSvc).RegisterRoutes(public, admin)
	schedule.NewHandler(scheduleSvc).RegisterRoutes(admin)
	booking.NewHandler(bookingSvc).RegisterRoutes(public, admin)
	blog.NewHandler(blogSvc).RegisterRoutes(public, admin)

	// Health checks
	e.GET("/health", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]string{
			"status":  "ok",
			"version": "0.1.0",
		})
	})
	e.GET("/health/db", db.HealthHandler(pool))

	// Graceful shutdown
	go func() {
		addr := ":" + cfg.Port
		logger.Info().Str("addr", addr).Msg("starting server")
		if err := e.Start(addr); err != nil && err != http.ErrServerClosed {
			logger.Fatal().Err(err).Msg("server error")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info().Msg("shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		logger.Fatal().Err(err).Msg("server shutdown failed")
	}
	logger.Info().Msg("server stopped")
	return nil
}
