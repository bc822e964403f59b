package main

import (
	"context"
	"log"
	"time"

	"cloud.google.com/go/firestore"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/iedc-carmel/club-management-backend/config"
	"github.com/iedc-carmel/club-management-backend/internal/auditlog"
	"github.com/iedc-carmel/club-management-backend/internal/auth"
	"github.com/iedc-carmel/club-management-backend/internal/event"
	"github.com/iedc-carmel/club-management-backend/internal/member"
	"github.com/iedc-carmel/club-management-backend/internal/notification"
	"github.com/iedc-carmel/club-management-backend/internal/reports"
	"github.com/iedc-carmel/club-management-backend/routes"
	"github.com/iedc-carmel/club-management-backend/utils"
)

func main() {
	cfg := config.Load()
	ctx := context.Background()

	var (
		fsClient *firestore.Client
		verifier auth.TokenVerifier
		minter   auth.TokenMinter
		identity member.IdentityAdmin
	)

	// 🔥 Init Firebase - SINGLE INITIALIZATION POINT
	log.Println("🔄 Initializing Firebase...")
	clients, err := utils.InitFirebase(ctx, cfg)
	if err != nil {
		log.Printf("⚠️ Firebase initialization failed: %v", err)
		if cfg.DevAuthSecret == "" {
			log.Fatalf("❌ No Firebase credentials and no DEV_AUTH_SECRET set, cannot start")
		}

		// Dev mode: HMAC tokens plus the Firestore emulator
		// (FIRESTORE_EMULATOR_HOST must be set).
		log.Println("ℹ️ Continuing in dev mode (HMAC tokens, Firestore emulator)")
		projectID := cfg.FirebaseProjectID
		if projectID == "" {
			projectID = "demo-dev"
		}
		fsClient, err = firestore.NewClient(ctx, projectID)
		if err != nil {
			log.Fatalf("❌ Firestore client failed: %v", err)
		}

		dev := auth.NewDevTokenProvider(cfg.DevAuthSecret)
		verifier = dev
		minter = dev
		identity = member.NoopIdentity{}
	} else {
		log.Println("✅ Firebase initialized successfully")
		fsClient = clients.Firestore
		verifier = auth.NewFirebaseVerifier(clients.Auth)
		minter = auth.NewFirebaseMinter(clients.Auth)
		identity = member.NewFirebaseIdentity(clients.Auth)
	}
	defer fsClient.Close()

	// Init repositories & services
	auditRepo := auditlog.NewRepository(fsClient)
	auditSvc := auditlog.NewService(auditRepo)

	kafkaWriter := notification.NewKafkaWriter(cfg.KafkaBrokers, cfg.KafkaTopic)
	notifSvc := notification.NewService(cfg, kafkaWriter)
	if kafkaWriter != nil {
		notification.StartKafkaConsumer(ctx, cfg.KafkaBrokers, cfg.KafkaTopic, notifSvc)
	}

	memberRepo := member.NewRepository(fsClient)
	memberSvc := member.NewService(memberRepo, identity, auditSvc, notifSvc)

	eventRepo := event.NewRepository(fsClient)
	eventSvc := event.NewService(eventRepo, auditSvc, notifSvc)

	authSvc := auth.NewService(memberRepo, minter)

	// Setup Gin router
	router := gin.New()
	router.Use(gin.Logger())
	router.Use(gin.Recovery())

	router.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.CORSOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS", "HEAD"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization", "Content-Length", "X-Requested-With"},
		ExposeHeaders:    []string{"Content-Length", "Content-Type", "Content-Disposition"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	routes.Setup(router, cfg, &routes.Dependencies{
		Verifier: verifier,
		Auth:     auth.NewHandler(authSvc),
		Members:  member.NewHandler(memberSvc),
		Events:   event.NewHandler(eventSvc),
		Reports:  reports.NewHandler(eventSvc, reports.NewExporter()),
		AuditLog: auditlog.NewHandler(auditSvc),
	})

	log.Printf("🚀 Server starting on port %s", cfg.Port)
	if err := router.Run(":" + cfg.Port); err != nil {
		log.Fatalf("❌ Failed to start server: %v", err)
	}
}
