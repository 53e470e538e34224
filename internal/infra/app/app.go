package app

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/Osiris4002/ann-dhan/internal/core/port"
	"github.com/Osiris4002/ann-dhan/internal/infra/config"
	firebaseinfra "github.com/Osiris4002/ann-dhan/internal/infra/firebase"
	"github.com/Osiris4002/ann-dhan/internal/infra/logger"
	"github.com/Osiris4002/ann-dhan/internal/infra/security"
	"github.com/Osiris4002/ann-dhan/internal/repository/firebaseauth"
	firestorerepo "github.com/Osiris4002/ann-dhan/internal/repository/firestore"
	"github.com/Osiris4002/ann-dhan/internal/repository/gemini"
	"github.com/Osiris4002/ann-dhan/internal/repository/memory"
	"github.com/Osiris4002/ann-dhan/internal/transport/http/middleware"
	"github.com/Osiris4002/ann-dhan/internal/transport/http/routes"
	"github.com/Osiris4002/ann-dhan/internal/usecase"
)

// Application owns the process-scoped state: external clients are built once
// here, before the first request, and closed on shutdown.
type Application struct {
	cfg     *config.AppConfig
	engine  *gin.Engine
	logger  *zap.Logger
	closers []func() error
}

// New wires clients, repositories, services, and the HTTP engine.
func New(ctx context.Context, cfg *config.AppConfig) (*Application, error) {
	log, err := logger.New(cfg.App.Env)
	if err != nil {
		return nil, fmt.Errorf("init logger: %w", err)
	}

	var (
		users    port.UserRepository
		chats    port.ChatRepository
		identity port.IdentityProvider
		store    routes.StoreChecker
		closers  []func() error
	)

	if cfg.Firebase.CredentialsFile != "" || cfg.IsProduction() {
		clients, err := firebaseinfra.NewClients(ctx, cfg.Firebase, log)
		if err != nil {
			return nil, fmt.Errorf("init firebase: %w", err)
		}
		users = firestorerepo.NewUserRepository(clients.Firestore)
		chats = firestorerepo.NewChatRepository(clients.Firestore)
		identity = firebaseauth.NewIdentityProvider(clients.Auth)
		store = clients
		closers = append(closers, clients.Close)
	} else {
		log.Warn("firebase credentials not configured, using in-memory repositories and dev token issuer")
		devTokens := security.NewDevTokenIssuer(cfg.DevAuth.Secret, cfg.App.Name, cfg.DevAuth.TokenTTL)
		users = memory.NewUserRepository()
		chats = memory.NewChatRepository()
		identity = memory.NewIdentityProvider(devTokens)
	}

	generator, err := gemini.NewGenerator(ctx, cfg.Gemini)
	if err != nil {
		closeAll(closers, log)
		return nil, fmt.Errorf("init gemini: %w", err)
	}
	closers = append(closers, generator.Close)

	metrics, err := middleware.NewHTTPMetrics(middleware.HTTPMetricsOptions{})
	if err != nil {
		closeAll(closers, log)
		return nil, fmt.Errorf("init metrics: %w", err)
	}

	hasher := security.NewBcryptPINHasher(cfg.PIN.BcryptCost)
	authService := usecase.NewAuthService(users, identity, hasher, log)
	chatService := usecase.NewChatService(chats, generator, cfg.Chat.HistoryLimit, cfg.Chat.SystemInstruction, log)

	engine := routes.Register(routes.Dependencies{
		Config: cfg,
		Logger: log,
		Services: routes.ServiceSet{
			Auth: authService,
			Chat: chatService,
		},
		Identity: identity,
		Metrics:  metrics,
		Store:    store,
	})

	return &Application{
		cfg:     cfg,
		engine:  engine,
		logger:  log,
		closers: closers,
	}, nil
}

// Run serves HTTP until the context is cancelled, then shuts down gracefully.
func (a *Application) Run(ctx context.Context) error {
	defer func() {
		_ = a.logger.Sync()
	}()
	defer closeAll(a.closers, a.logger)

	srv := &http.Server{
		Addr:              fmt.Sprintf("%s:%d", a.cfg.App.Host, a.cfg.App.Port),
		Handler:           a.engine,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      60 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	a.logger.Info("starting ann-dhan API",
		zap.String("env", a.cfg.App.Env),
		zap.String("address", srv.Addr),
	)

	serverErrCh := make(chan error, 1)
	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			serverErrCh <- fmt.Errorf("run server: %w", err)
		}
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("shutdown server: %w", err)
		}
		return nil
	case err := <-serverErrCh:
		return err
	}
}

func closeAll(closers []func() error, log *zap.Logger) {
	for i := len(closers) - 1; i >= 0; i-- {
		if err := closers[i](); err != nil && log != nil {
			log.Warn("failed to close client", zap.Error(err))
		}
	}
}
