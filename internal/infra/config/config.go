// internal/infra/config/config.go
package config

import "os"

// Config holds the environment configuration for the whole application.
type Config struct {
	Port string

	GCPProjectID             string
	GCPCreds                 string
	FirestoreProjectID       string
	FirestoreCredentialsFile string
	FirebaseProjectID        string

	GCSBucket string

	// Postgres summary mirror. A DSN wins over the discrete fields;
	// when neither is set the mirror is disabled and summaries are
	// computed from the document store.
	PostgresDSN      string
	PostgresHost     string
	PostgresPort     string
	PostgresUser     string
	PostgresPassword string
	PostgresDB       string

	// SendGrid. The API key may come from Secret Manager instead
	// (see SendGridSecretName); the env var wins when both are set.
	SendGridAPIKey     string
	SendGridFrom       string
	SendGridSecretName string
}

// Load reads the environment and returns the resolved Config.
func Load() *Config {
	defaultProject := getenvDefault("GCP_PROJECT_ID", "bdm-bazar")

	cfg := &Config{
		Port: getenvDefault("PORT", "8080"),

		GCPProjectID:             defaultProject,
		GCPCreds:                 os.Getenv("GOOGLE_APPLICATION_CREDENTIALS"),
		FirestoreProjectID:       getenvDefault("FIRESTORE_PROJECT_ID", defaultProject),
		FirestoreCredentialsFile: os.Getenv("FIRESTORE_CREDENTIALS_FILE"),
		FirebaseProjectID:        getenvDefault("FIREBASE_PROJECT_ID", defaultProject),

		GCSBucket: os.Getenv("GCS_BUCKET"),

		PostgresDSN:      os.Getenv("POSTGRES_DSN"),
		PostgresHost:     os.Getenv("POSTGRES_HOST"),
		PostgresPort:     getenvDefault("POSTGRES_PORT", "5432"),
		PostgresUser:     os.Getenv("POSTGRES_USER"),
		PostgresPassword: os.Getenv("POSTGRES_PASSWORD"),
		PostgresDB:       getenvDefault("POSTGRES_DB", "bdm_bazar"),

		SendGridAPIKey:     os.Getenv("SENDGRID_API_KEY"),
		SendGridFrom:       getenvDefault("SENDGRID_FROM", "no-reply@bdmbazar.com"),
		SendGridSecretName: os.Getenv("SENDGRID_SECRET_NAME"),
	}

	return cfg
}

func getenvDefault(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}
