package config

import "os"

type Config struct {
	Port                    string
	Env                     string
	JWTSecret               string
	FirebaseCredentialsPath string
	PostgresConnStr         string
	MongoURI                string
	MongoDatabase           string
	MinioEndpoint           string
	MinioAccessKey          string
	MinioSecretKey          string
	MinioBucket             string
	MinioUseSSL             bool
}

func Load() *Config {
	return &Config{
		Port:                    getEnv("PORT", "8080"),
		Env:                     getEnv("ENV", "development"),
		JWTSecret:               getEnv("JWT_SECRET", ""),
		FirebaseCredentialsPath: getEnv("FIREBASE_CREDENTIALS_PATH", ""),
		PostgresConnStr:         getEnv("POSTGRES_CONN_STR", ""),
		MongoURI:                getEnv("MONGO_URI", ""),
		MongoDatabase:           getEnv("MONGO_DATABASE", "socialbook"),
		MinioEndpoint:           getEnv("MINIO_ENDPOINT", "localhost:9000"),
		MinioAccessKey:          getEnv("MINIO_ACCESS_KEY", ""),
		MinioSecretKey:          getEnv("MINIO_SECRET_KEY", ""),
		MinioBucket:             getEnv("MINIO_BUCKET", "socialbook-uploads"),
		MinioUseSSL:             getEnv("MINIO_USE_SSL", "false") == "true",
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
