package firebase

import (
	"context"
	"fmt"

	"cloud.google.com/go/firestore"
	firebase "firebase.google.com/go/v4"
	"firebase.google.com/go/v4/auth"
	"go.uber.org/zap"
	"google.golang.org/api/iterator"
	"google.golang.org/api/option"

	"github.com/Osiris4002/ann-dhan/internal/infra/config"
)

// Clients bundles the Firebase handles shared across the process. They are
// initialized exactly once before the first request is served and closed at
// process shutdown.
type Clients struct {
	Auth      *auth.Client
	Firestore *firestore.Client
}

// NewClients initializes the Firebase app and derives the auth and Firestore
// clients from it.
func NewClients(ctx context.Context, cfg config.FirebaseSettings, log *zap.Logger) (*Clients, error) {
	var opts []option.ClientOption
	if cfg.CredentialsFile != "" {
		opts = append(opts, option.WithCredentialsFile(cfg.CredentialsFile))
	}

	var fbCfg *firebase.Config
	if cfg.ProjectID != "" {
		fbCfg = &firebase.Config{ProjectID: cfg.ProjectID}
	}

	app, err := firebase.NewApp(ctx, fbCfg, opts...)
	if err != nil {
		return nil, fmt.Errorf("init firebase app: %w", err)
	}

	authClient, err := app.Auth(ctx)
	if err != nil {
		return nil, fmt.Errorf("init firebase auth client: %w", err)
	}

	fsClient, err := app.Firestore(ctx)
	if err != nil {
		return nil, fmt.Errorf("init firestore client: %w", err)
	}

	log.Info("firebase clients initialized", zap.String("project_id", cfg.ProjectID))

	return &Clients{Auth: authClient, Firestore: fsClient}, nil
}

// HealthCheck issues a minimal read against the store to confirm reachability.
func (c *Clients) HealthCheck(ctx context.Context) error {
	iter := c.Firestore.Collection("users").Limit(1).Documents(ctx)
	defer iter.Stop()

	if _, err := iter.Next(); err != nil && err != iterator.Done {
		return fmt.Errorf("firestore health check: %w", err)
	}
	return nil
}

// Close releases the Firestore connection.
func (c *Clients) Close() error {
	if c.Firestore != nil {
		return c.Firestore.Close()
	}
	return nil
}
