package config

import (
	"errors"
	"io/fs"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	App        AppConfig
	Store      StoreConfig
	Simulation SimulationConfig
	Assistant  AssistantConfig
	DB         DBConfig
	Redis      RedisConfig
	Minio      MinioConfig
	JWT        JWTConfig
}

type AppConfig struct {
	Port     string
	Env      string
	LogLevel string
	// Supervisor is the acting supervisor on the performance review screen
	Supervisor string
	// CORSOrigin is the allowed browser origin, "*" when unset
	CORSOrigin string
}

type StoreConfig struct {
	NotificationCap int
}

type SimulationConfig struct {
	FaceScanDelay        time.Duration
	FaceScanOfflineDelay time.Duration
	FingerprintDelay     time.Duration
	PasswordDelay        time.Duration
	CameraAvailable      bool
	AuditStepDelay       time.Duration
}

type AssistantConfig struct {
	APIKey  string
	Model   string
	Timeout time.Duration
}

// DBConfig points at the optional Postgres log archive. Empty Host disables it.
type DBConfig struct {
	Host     string
	Port     string
	User     string
	Password string
	Name     string
}

// RedisConfig points at the optional event broadcaster. Empty Host disables it.
type RedisConfig struct {
	Host     string
	Port     string
	Password string
	DB       int
	Channel  string
}

// MinioConfig points at the optional guide file storage. Empty Endpoint disables it.
type MinioConfig struct {
	Endpoint  string
	AccessKey string
	SecretKey string
	Bucket    string
	UseSSL    bool
}

type JWTConfig struct {
	Secret        string
	SessionExpiry time.Duration
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("APP_PORT", "8080")
	v.SetDefault("APP_ENV", "development")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("APP_SUPERVISOR", "Prof. Alan Grant")

	v.SetDefault("STORE_NOTIFICATION_CAP", 100)

	v.SetDefault("SIM_FACE_SCAN_DELAY", "3s")
	v.SetDefault("SIM_FACE_SCAN_OFFLINE_DELAY", "1500ms")
	v.SetDefault("SIM_FINGERPRINT_DELAY", "2s")
	v.SetDefault("SIM_PASSWORD_DELAY", "1s")
	v.SetDefault("SIM_CAMERA_AVAILABLE", true)
	v.SetDefault("SIM_AUDIT_STEP_DELAY", "1s")

	v.SetDefault("ASSISTANT_MODEL", "gemini-2.5-flash")
	v.SetDefault("ASSISTANT_TIMEOUT", "30s")

	v.SetDefault("REDIS_PORT", "6379")
	v.SetDefault("REDIS_CHANNEL", "mediaccess:events")

	v.SetDefault("MINIO_BUCKET", "system-guides")

	v.SetDefault("JWT_SECRET", "mediaccess-demo-secret")
	v.SetDefault("JWT_SESSION_EXPIRY", "8h")
}

// LoadConfig reads .env when present, then the process environment
func LoadConfig() (*Config, error) {
	return load(".env")
}

func load(file string) (*Config, error) {
	v := viper.New()
	setDefaults(v)
	v.SetConfigFile(file)
	v.SetConfigType("env")
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.Is(err, fs.ErrNotExist) && !errors.As(err, &notFound) {
			return nil, err
		}
	}

	config := &Config{
		App: AppConfig{
			Port:       v.GetString("APP_PORT"),
			Env:        v.GetString("APP_ENV"),
			LogLevel:   v.GetString("LOG_LEVEL"),
			Supervisor: v.GetString("APP_SUPERVISOR"),
			CORSOrigin: v.GetString("APP_CORS_ORIGIN"),
		},
		Store: StoreConfig{
			NotificationCap: v.GetInt("STORE_NOTIFICATION_CAP"),
		},
		Simulation: SimulationConfig{
			FaceScanDelay:        v.GetDuration("SIM_FACE_SCAN_DELAY"),
			FaceScanOfflineDelay: v.GetDuration("SIM_FACE_SCAN_OFFLINE_DELAY"),
			FingerprintDelay:     v.GetDuration("SIM_FINGERPRINT_DELAY"),
			PasswordDelay:        v.GetDuration("SIM_PASSWORD_DELAY"),
			CameraAvailable:      v.GetBool("SIM_CAMERA_AVAILABLE"),
			AuditStepDelay:       v.GetDuration("SIM_AUDIT_STEP_DELAY"),
		},
		Assistant: AssistantConfig{
			APIKey:  v.GetString("GEMINI_API_KEY"),
			Model:   v.GetString("ASSISTANT_MODEL"),
			Timeout: v.GetDuration("ASSISTANT_TIMEOUT"),
		},
		DB: DBConfig{
			Host:     v.GetString("DB_HOST"),
			Port:     v.GetString("DB_PORT"),
			User:     v.GetString("DB_USER"),
			Password: v.GetString("DB_PASSWORD"),
			Name:     v.GetString("DB_NAME"),
		},
		Redis: RedisConfig{
			Host:     v.GetString("REDIS_HOST"),
			Port:     v.GetString("REDIS_PORT"),
			Password: v.GetString("REDIS_PASSWORD"),
			DB:       v.GetInt("REDIS_DB"),
			Channel:  v.GetString("REDIS_CHANNEL"),
		},
		Minio: MinioConfig{
			Endpoint:  v.GetString("MINIO_ENDPOINT"),
			AccessKey: v.GetString("MINIO_ACCESS_KEY"),
			SecretKey: v.GetString("MINIO_SECRET_KEY"),
			Bucket:    v.GetString("MINIO_BUCKET"),
			UseSSL:    v.GetBool("MINIO_USE_SSL"),
		},
		JWT: JWTConfig{
			Secret:        v.GetString("JWT_SECRET"),
			SessionExpiry: v.GetDuration("JWT_SESSION_EXPIRY"),
		},
	}

	return config, nil
}
