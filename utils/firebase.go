package utils

import (
	"context"
	"fmt"
	"log"
	"os"

	"cloud.google.com/go/firestore"
	firebase "firebase.google.com/go/v4"
	fbauth "firebase.google.com/go/v4/auth"
	"google.golang.org/api/option"

	"github.com/iedc-carmel/club-management-backend/config"
)

// FirebaseClients bundles the handles the rest of the app depends on.
// They are constructed once in main and injected; no package-level state.
type FirebaseClients struct {
	App       *firebase.App
	Auth      *fbauth.Client
	Firestore *firestore.Client
}

// InitFirebase initializes the Firebase Admin SDK plus the Auth and
// Firestore clients. Returns an error when credentials are missing so the
// caller can decide whether to fall back to dev mode.
func InitFirebase(ctx context.Context, cfg *config.Config) (*FirebaseClients, error) {
	log.Printf("📂 Looking for Firebase credentials at: %s - FIREBASE_PROJECT_ID=%s",
		cfg.FirebaseCredentialsPath, cfg.FirebaseProjectID)

	if _, err := os.Stat(cfg.FirebaseCredentialsPath); os.IsNotExist(err) {
		return nil, fmt.Errorf("firebase credentials file not found: %s", cfg.FirebaseCredentialsPath)
	}

	if cfg.FirebaseProjectID == "" {
		return nil, fmt.Errorf("FIREBASE_PROJECT_ID is required")
	}

	app, err := firebase.NewApp(ctx,
		&firebase.Config{ProjectID: cfg.FirebaseProjectID},
		option.WithCredentialsFile(cfg.FirebaseCredentialsPath),
	)
	if err != nil {
		return nil, fmt.Errorf("firebase app initialization failed: %w", err)
	}

	authClient, err := app.Auth(ctx)
	if err != nil {
		return nil, fmt.Errorf("firebase auth client failed: %w", err)
	}

	fsClient, err := app.Firestore(ctx)
	if err != nil {
		return nil, fmt.Errorf("firestore client failed: %w", err)
	}

	log.Printf("✅ Firebase initialized for project: %s", cfg.FirebaseProjectID)

	return &FirebaseClients{
		App:       app,
		Auth:      authClient,
		Firestore: fsClient,
	}, nil
}
