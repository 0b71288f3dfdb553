package main

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"time"

	"github.com/vetician/vetician-api/internal/config"
	"github.com/vetician/vetician-api/internal/events"
	"github.com/vetician/vetician-api/internal/platform/postgres"
	"github.com/vetician/vetician-api/internal/service/account"
	"github.com/vetician/vetician-api/internal/service/auth"
	"github.com/vetician/vetician-api/internal/service/booking"
	"github.com/vetician/vetician-api/internal/service/onboarding"
	"github.com/vetician/vetician-api/internal/service/otp"
	"github.com/vetician/vetician-api/internal/service/verification"
	"github.com/vetician/vetician-api/internal/store"
	"github.com/vetician/vetician-api/internal/task"
)

// otpSweepInterval is how often expired OTP challenges are purged.
const otpSweepInterval = 10 * time.Minute

// application holds the shared dependencies so wiring and shutdown live
// in one place.
type application struct {
	config *config.Config
	logger *slog.Logger
	db     *sql.DB

	// Stores
	userStore        store.UserStore
	tokenStore       store.RefreshTokenStore
	parentStore      store.ParentStore
	petStore         store.PetStore
	vetStore         store.VeterinarianStore
	clinicStore      store.ClinicStore
	resortStore      store.PetResortStore
	paravetStore     store.ParavetStore
	otpStore         store.OTPStore
	appointmentStore store.AppointmentStore
	doorstepStore    store.DoorstepStore

	// Services
	jwtService          auth.JWTService
	passwordVerifier    auth.PasswordVerifier
	accountService      *account.Service
	otpService          *otp.Service
	onboardingService   *onboarding.Service
	verificationService *verification.Service
	bookingService      *booking.Service

	// Event system
	eventEmitter events.EventEmitter

	// Background work
	taskRunner *task.Runner
	stopSweep  context.CancelFunc
}

// newApplication creates an application instance with every dependency
// initialized and background workers started.
func newApplication(ctx context.Context, cfg *config.Config, logger *slog.Logger, db *sql.DB) (*application, error) {
	app := &application{
		config: cfg,
		logger: logger,
		db:     db,
	}

	var err error
	app.jwtService, err = auth.NewJWTService(cfg.Auth)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize JWT service: %w", err)
	}
	logger.Info("JWT authentication service initialized",
		slog.Int("token_lifetime_minutes", cfg.Auth.TokenLifetimeMinutes))

	app.passwordVerifier = auth.NewBcryptVerifier()

	app.userStore = postgres.NewPostgresUserStore(db, cfg.Auth.BcryptCost, logger)
	app.tokenStore = postgres.NewPostgresRefreshTokenStore(db, logger)
	app.parentStore = postgres.NewPostgresParentStore(db, logger)
	app.petStore = postgres.NewPostgresPetStore(db, logger)
	app.vetStore = postgres.NewPostgresVeterinarianStore(db, logger)
	app.clinicStore = postgres.NewPostgresClinicStore(db, logger)
	app.resortStore = postgres.NewPostgresPetResortStore(db, logger)
	app.paravetStore = postgres.NewPostgresParavetStore(db, logger)
	app.otpStore = postgres.NewPostgresOTPStore(db, logger)
	app.appointmentStore = postgres.NewPostgresAppointmentStore(db, logger)
	app.doorstepStore = postgres.NewPostgresDoorstepStore(db, logger)

	app.taskRunner = task.NewRunner(task.RunnerConfig{
		QueueSize:   cfg.Task.QueueSize,
		WorkerCount: cfg.Task.WorkerCount,
	}, logger)
	app.taskRunner.Start()

	app.eventEmitter = events.NewInMemoryEventEmitter(logger)
	if emitter, ok := app.eventEmitter.(*events.InMemoryEventEmitter); ok {
		emitter.RegisterHandler(events.NewAuditLogHandler(logger))
	}

	app.accountService = account.NewService(
		db,
		app.userStore,
		app.tokenStore,
		app.parentStore,
		app.petStore,
		app.vetStore,
		app.clinicStore,
		app.resortStore,
		app.paravetStore,
		app.jwtService,
		app.passwordVerifier,
		logger,
	)

	otpSender := &task.LogOTPSender{Logger: logger.With(slog.String("component", "otp_sender"))}
	app.otpService = otp.NewService(
		app.otpStore,
		app.userStore,
		app.paravetStore,
		otpSender,
		app.taskRunner,
		app.eventEmitter,
		time.Duration(cfg.OTP.TTLMinutes)*time.Minute,
		logger,
	)

	app.onboardingService = onboarding.NewService(
		app.paravetStore,
		app.userStore,
		app.eventEmitter,
		logger,
	)

	app.verificationService = verification.NewService(
		app.vetStore,
		app.clinicStore,
		app.resortStore,
		logger,
	)

	app.bookingService = booking.NewService(
		app.appointmentStore,
		app.doorstepStore,
		app.clinicStore,
		app.vetStore,
		logger,
	)

	app.startOTPSweeper(ctx)

	logger.Info("application initialized")
	return app, nil
}

// startOTPSweeper periodically submits a sweep task that purges expired
// OTP challenges.
func (app *application) startOTPSweeper(ctx context.Context) {
	sweepCtx, cancel := context.WithCancel(ctx)
	app.stopSweep = cancel

	go func() {
		ticker := time.NewTicker(otpSweepInterval)
		defer ticker.Stop()

		for {
			select {
			case <-sweepCtx.Done():
				return
			case <-ticker.C:
				sweep := task.NewOTPSweepTask(app.otpStore, app.logger)
				if err := app.taskRunner.Submit(sweepCtx, sweep); err != nil {
					app.logger.Warn("failed to submit otp sweep task",
						slog.String("error", err.Error()))
				}
			}
		}
	}()
}

// Run serves HTTP until the process receives a shutdown signal.
func (app *application) Run(ctx context.Context) error {
	router := app.setupRouter()

	if err := app.startHTTPServer(ctx, router); err != nil {
		return fmt.Errorf("server error: %w", err)
	}
	return nil
}

// cleanup releases application resources in shutdown order.
func (app *application) cleanup() {
	if app.stopSweep != nil {
		app.stopSweep()
	}
	if app.taskRunner != nil {
		app.taskRunner.Stop()
	}
	if app.db != nil {
		if err := app.db.Close(); err != nil {
			app.logger.Error("error closing database connection",
				slog.String("error", err.Error()))
		}
	}

	app.logger.Info("application shutdown completed")
}
