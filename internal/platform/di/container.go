// internal/platform/di/container.go
package di

import (
	"context"
	"log"

	firebase "firebase.google.com/go/v4"
	firebaseauth "firebase.google.com/go/v4/auth"

	"cloud.google.com/go/firestore"
	"cloud.google.com/go/storage"

	httpin "github.com/ridoy-softworldit/bdm-bazar-backend/internal/adapters/in/http"
	dbout "github.com/ridoy-softworldit/bdm-bazar-backend/internal/adapters/out/db"
	fs "github.com/ridoy-softworldit/bdm-bazar-backend/internal/adapters/out/firestore"
	gcso "github.com/ridoy-softworldit/bdm-bazar-backend/internal/adapters/out/gcs"
	mailadp "github.com/ridoy-softworldit/bdm-bazar-backend/internal/adapters/out/mail"

	uc "github.com/ridoy-softworldit/bdm-bazar-backend/internal/application/usecase"

	appcfg "github.com/ridoy-softworldit/bdm-bazar-backend/internal/infra/config"
	pgdb "github.com/ridoy-softworldit/bdm-bazar-backend/internal/infra/database"
	fsinfra "github.com/ridoy-softworldit/bdm-bazar-backend/internal/infra/firestore"
)

// ========================================
// Container
// ========================================

type Container struct {
	// Infra
	Config       *appcfg.Config
	Firestore    *firestore.Client
	FirebaseApp  *firebase.App
	FirebaseAuth *firebaseauth.Client
	GCS          *storage.Client
	Postgres     *pgdb.DB // nil when POSTGRES_DSN is unset

	// Application-layer usecases
	OrderUC   *uc.OrderUsecase
	ProductUC *uc.ProductUsecase
	BrandUC   *uc.BrandUsecase
	ReviewUC  *uc.ReviewUsecase
	UserUC    *uc.UserUsecase
}

// Close releases external clients. Safe on a partially built container.
func (c *Container) Close() {
	if c == nil {
		return
	}
	if c.Firestore != nil {
		_ = c.Firestore.Close()
	}
	if c.GCS != nil {
		_ = c.GCS.Close()
	}
	if c.Postgres != nil {
		_ = c.Postgres.Close()
	}
}

// RouterDeps exposes the handler wiring for httpin.NewRouter.
func (c *Container) RouterDeps() httpin.RouterDeps {
	return httpin.RouterDeps{
		OrderUC:      c.OrderUC,
		ProductUC:    c.ProductUC,
		BrandUC:      c.BrandUC,
		ReviewUC:     c.ReviewUC,
		UserUC:       c.UserUC,
		FirebaseAuth: c.FirebaseAuth,
	}
}

// ========================================
// NewContainer
// ========================================

func NewContainer(ctx context.Context) (*Container, error) {
	// 1. Load config
	cfg := appcfg.Load()

	// 2. Firestore client
	fsWrap, err := fsinfra.NewClient(ctx, cfg.FirestoreProjectID, cfg.FirestoreCredentialsFile)
	if err != nil {
		return nil, err
	}
	fsClient := fsWrap.Client
	if err := fsWrap.Ping(ctx); err != nil {
		log.Printf("[container] WARN: %v", err)
	}

	// 2.5 GCS client (featured images)
	gcsClient, err := storage.NewClient(ctx)
	if err != nil {
		log.Printf("[container] WARN: gcs init failed: %v (image upload disabled)", err)
		gcsClient = nil
	}

	// 3. Firebase App & Auth (token verification)
	var fbApp *firebase.App
	var fbAuth *firebaseauth.Client

	fbApp, err = firebase.NewApp(ctx, &firebase.Config{
		ProjectID: cfg.FirebaseProjectID,
	})
	if err != nil {
		log.Printf("[container] WARN: firebase app init failed: %v", err)
	} else {
		authClient, err := fbApp.Auth(ctx)
		if err != nil {
			log.Printf("[container] WARN: firebase auth init failed: %v", err)
		} else {
			fbAuth = authClient
			log.Printf("[container] Firebase Auth initialized")
		}
	}

	// 3.5 Postgres summary mirror (optional)
	var pg *pgdb.DB
	var pgErr error
	switch {
	case cfg.PostgresDSN != "":
		pg, pgErr = pgdb.Open(cfg.PostgresDSN)
	case cfg.PostgresHost != "":
		pg, pgErr = pgdb.NewConnection(cfg.PostgresHost, cfg.PostgresPort, cfg.PostgresUser, cfg.PostgresPassword, cfg.PostgresDB)
	}
	if pgErr != nil {
		log.Printf("[container] WARN: postgres init failed: %v (document-store summaries only)", pgErr)
		pg = nil
	}

	// 4. Outbound adapters (repositories)
	orderRepo := fs.NewOrderRepositoryFS(fsClient)
	orderCounter := fs.NewOrderCounterFS(fsClient)
	productRepo := fs.NewProductRepositoryFS(fsClient)
	brandRepo := fs.NewBrandRepositoryFS(fsClient)
	reviewRepo := fs.NewReviewRepositoryFS(fsClient)
	userRepo := fs.NewUserRepositoryFS(fsClient)

	// 5. Usecases
	orderUC := uc.NewOrderUsecase(orderRepo, orderCounter, productRepo)
	productUC := uc.NewProductUsecase(productRepo)
	brandUC := uc.NewBrandUsecase(brandRepo)
	reviewUC := uc.NewReviewUsecase(reviewRepo)
	userUC := uc.NewUserUsecase(userRepo)

	if pg != nil {
		orderUC = orderUC.
			WithSummaryReader(dbout.NewOrderSummaryRepositoryPG(pg.Client)).
			WithMirror(dbout.NewOrderMirrorPG(pg.Client))
		log.Printf("[container] order summaries served from postgres mirror")
	}

	if gcsClient != nil && cfg.GCSBucket != "" {
		productUC = productUC.WithMediaStore(gcso.NewMediaStoreGCS(gcsClient, cfg.GCSBucket))
		log.Printf("[container] product media store: gs://%s", cfg.GCSBucket)
	}

	// 6. Order confirmation mail (optional). The API key comes from env
	// or, when SENDGRID_SECRET_NAME is set, from Secret Manager.
	apiKey := cfg.SendGridAPIKey
	if apiKey == "" && cfg.SendGridSecretName != "" {
		if v, err := accessSecret(ctx, cfg.GCPProjectID, cfg.SendGridSecretName); err != nil {
			log.Printf("[container] WARN: sendgrid secret fetch failed: %v", err)
		} else {
			apiKey = v
		}
	}
	if apiKey != "" {
		client := mailadp.NewSendGridClient(apiKey)
		orderUC = orderUC.WithMailer(mailadp.NewOrderMailer(client, cfg.SendGridFrom))
		log.Printf("[container] order confirmation mail enabled from=%s", cfg.SendGridFrom)
	} else {
		log.Printf("[container] order confirmation mail disabled (no api key)")
	}

	return &Container{
		Config:       cfg,
		Firestore:    fsClient,
		FirebaseApp:  fbApp,
		FirebaseAuth: fbAuth,
		GCS:          gcsClient,
		Postgres:     pg,

		OrderUC:   orderUC,
		ProductUC: productUC,
		BrandUC:   brandUC,
		ReviewUC:  reviewUC,
		UserUC:    userUC,
	}, nil
}
