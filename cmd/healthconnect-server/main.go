package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"golang.org/x/crypto/bcrypt"

	"github.com/healthconnect/healthconnect/internal/config"
	"github.com/healthconnect/healthconnect/internal/domain/catalog"
	"github.com/healthconnect/healthconnect/internal/domain/chatbot"
	"github.com/healthconnect/healthconnect/internal/domain/identity"
	"github.com/healthconnect/healthconnect/internal/domain/message"
	"github.com/healthconnect/healthconnect/internal/domain/order"
	"github.com/healthconnect/healthconnect/internal/domain/payment"
	"github.com/healthconnect/healthconnect/internal/domain/prescription"
	"github.com/healthconnect/healthconnect/internal/domain/scheduling"
	"github.com/healthconnect/healthconnect/internal/domain/wallet"
	"github.com/healthconnect/healthconnect/internal/platform/auth"
	"github.com/healthconnect/healthconnect/internal/platform/db"
	"github.com/healthconnect/healthconnect/internal/platform/gateway"
	"github.com/healthconnect/healthconnect/internal/platform/middleware"
	ws "github.com/healthconnect/healthconnect/internal/platform/websocket"
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "healthconnect-server",
		Short: "HealthConnect API server",
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
		Short: "Start the API server",
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

			count, err := db.NewMigrator(pool, dir).Up(ctx)
			if err != nil {
				return fmt.Errorf("migration failed: %w", err)
			}
			fmt.Printf("Applied %d migration(s).\n", count)
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

			statuses, err := db.NewMigrator(pool, dir).Status(ctx)
			if err != nil {
				return err
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
	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Seed an admin account and a starter medicine catalog",
		RunE: func(cmd *cobra.Command, args []string) error {
			email, _ := cmd.Flags().GetString("admin-email")
			password, _ := cmd.Flags().GetString("admin-password")
			if password == "" {
				return fmt.Errorf("--admin-password is required")
			}

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

			hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
			if err != nil {
				return err
			}
			_, err = pool.Exec(ctx, `
				INSERT INTO admins (id, name, email, password_hash, active)
				VALUES ($1, 'Administrator', $2, $3, TRUE)
				ON CONFLICT (email) DO NOTHING`,
				uuid.New(), email, string(hash))
			if err != nil {
				return fmt.Errorf("seed admin: %w", err)
			}

			medicines := []struct {
				name, description, category string
				price                       float64
				stock                       int
			}{
				{"Paracetamol 500mg", "Fever and mild pain relief", "Tablets", 30, 200},
				{"Amoxicillin 250mg", "Broad spectrum antibiotic", "Capsules", 110, 80},
				{"Cough Relief Syrup", "Dry cough suppressant, 100ml", "Syrup", 95, 60},
				{"Insulin Glargine", "Long acting insulin, 10ml vial", "Injections", 640, 25},
				{"Cetirizine 10mg", "Antihistamine for allergies", "Tablets", 45, 150},
			}
			for _, m := range medicines {
				_, err := pool.Exec(ctx, `
					INSERT INTO medicines (id, name, description, price, category, stock)
					VALUES ($1,$2,$3,$4,$5,$6)
					ON CONFLICT DO NOTHING`,
					uuid.New(), m.name, m.description, m.price, m.category, m.stock)
				if err != nil {
					return fmt.Errorf("seed medicines: %w", err)
				}
			}

			fmt.Println("Seed complete.")
			return nil
		},
	}
	cmd.Flags().String("admin-email", "admin@healthconnect.in", "Admin login email")
	cmd.Flags().String("admin-password", "", "Admin login password")
	return cmd
}

func runServer() error {
	logger := zerolog.New(os.Stdout).With().Timestamp().Logger()
	if os.Getenv("ENV") == "development" {
		logger = zerolog.New(zerolog.ConsoleWriter{Out: os.Stdout}).With().Timestamp().Logger()
	}

	cfg, err := config.Load()
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to load config")
	}
	if err := cfg.Validate(); err != nil {
		logger.Fatal().Err(err).Msg("invalid config")
	}

	ctx := context.Background()
	pool, err := db.NewPool(ctx, cfg.DatabaseURL, cfg.DBMaxConns, cfg.DBMinConns)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to connect to database")
	}
	defer pool.Close()
	logger.Info().Msg("connected to database")

	runTx := func(ctx context.Context, fn func(ctx context.Context) error) error {
		return db.WithTx(ctx, pool, fn)
	}

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	e.Use(middleware.Recovery(logger))
	e.Use(middleware.RequestID())
	e.Use(middleware.Logger(logger))
	e.Use(echomw.CORSWithConfig(echomw.CORSConfig{
		AllowOrigins: cfg.CORSOrigins,
		AllowMethods: []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete},
		AllowHeaders: []string{"Authorization", "Content-Type", "X-Request-ID", "Idempotency-Key"},
	}))
	e.Use(middleware.RequestTimeout(time.Duration(cfg.RequestTimeout) * time.Second))

	issuer := auth.NewIssuer(cfg.JWTSecret, time.Duration(cfg.TokenTTLMinutes)*time.Minute)
	if cfg.IsDev() && cfg.JWTSecret == "" {
		logger.Warn().Msg("JWT_SECRET not set; using dev auth")
		e.Use(auth.DevMiddleware())
	} else {
		e.Use(auth.Middleware(issuer))
	}

	e.GET("/health", db.HealthHandler(pool))

	api := e.Group("/api")
	rateLimitCfg := middleware.RateLimitConfig{
		RequestsPerSecond: cfg.RateLimitRPS,
		BurstSize:         cfg.RateLimitBurst,
	}
	if rateLimitCfg.RequestsPerSecond <= 0 {
		rateLimitCfg = middleware.DefaultRateLimitConfig()
	}
	api.Use(middleware.RateLimit(rateLimitCfg))

	// WebSocket hub and subscription endpoint
	hub := ws.NewHub()
	ws.NewHandler(hub, logger).RegisterRoutes(e)

	// Identity
	doctorRepo := identity.NewDoctorRepoPG(pool)
	patientRepo := identity.NewPatientRepoPG(pool)
	adminRepo := identity.NewAdminRepoPG(pool)
	identitySvc := identity.NewService(doctorRepo, patientRepo, adminRepo, issuer)
	identity.NewHandler(identitySvc).RegisterRoutes(api)

	// Scheduling
	schedRepo := scheduling.NewRepoPG(pool)
	schedSvc := scheduling.NewService(schedRepo)
	scheduling.NewHandler(schedSvc).RegisterRoutes(api)

	// Catalog
	catalogRepo := catalog.NewRepoPG(pool)
	catalogSvc := catalog.NewService(catalogRepo)
	catalog.NewHandler(catalogSvc).RegisterRoutes(api)

	// Orders
	orderRepo := order.NewRepoPG(pool)
	orderSvc := order.NewService(orderRepo, catalogRepo, runTx)
	order.NewHandler(orderSvc).RegisterRoutes(api)

	// Wallets
	walletRepo := wallet.NewRepoPG(pool)
	walletSvc := wallet.NewService(walletRepo, runTx)
	wallet.NewHandler(walletSvc).RegisterRoutes(api)

	// Payments
	gw := gateway.New(cfg.GatewayKeyID, cfg.GatewayKeySecret)
	paymentRepo := payment.NewRepoPG(pool)
	paymentSvc := payment.NewService(paymentRepo, gw, walletSvc, orderSvc, runTx,
		logger.With().Str("component", "payment").Logger())
	payment.NewHandler(paymentSvc).RegisterRoutes(api)

	// Messages
	messageRepo := message.NewRepoPG(pool)
	messageSvc := message.NewService(messageRepo, hub,
		logger.With().Str("component", "message").Logger())
	message.NewHandler(messageSvc).RegisterRoutes(api)

	// Prescriptions
	rxRepo := prescription.NewRepoPG(pool)
	rxSvc := prescription.NewService(rxRepo)
	prescription.NewHandler(rxSvc).RegisterRoutes(api)

	// Chatbot
	upstream := chatbot.NewHTTPUpstream(cfg.ChatbotURL, cfg.ChatbotAPIKey)
	chatbotSvc := chatbot.NewService(upstream, logger.With().Str("component", "chatbot").Logger())
	chatbot.NewHandler(chatbotSvc).RegisterRoutes(api)

	// Start server with graceful shutdown
	go func() {
		addr := ":" + cfg.Port
		logger.Info().Str("addr", addr).Msg("server starting")
		if err := e.Start(addr); err != nil && err != http.ErrServerClosed {
			logger.Fatal().Err(err).Msg("server stopped")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info().Msg("shutting down")
	shutdownCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	return e.Shutdown(shutdownCtx)
}
