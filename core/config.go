package core

import (
	"log"
	"net/mail"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type (
	Config struct {
		Env      string
		Build    string
		Debug    bool
		TestMode bool

		AppName          string
		SecretKey        string
		FrontendBaseURL  string
		DefaultFromEmail mail.Address
		ModeratorEmails  []mail.Address
		SendgridAPIKey   string
		RollbarToken     string

		Server   serverConfig
		Log      logConfig
		Docstore docstoreConfig
		Database databaseConfig
		Redis    redisConfig
	}

	serverConfig struct {
		Host               string
		Address            string
		DebugHost          string
		ShutdownTimeout    time.Duration
		JWTExpirationDelta time.Duration
		SubmissionsPerMin  int
		DisableRequestLogs bool
	}

	logConfig struct {
		Level      string
		Path       string
		MaxSizeMB  int
		MaxBackups int
		MaxAgeDays int
		Compress   bool
	}

	docstoreConfig struct {
		Engine          string // memory (default), postgres, firestore
		ProjectID       string
		CredentialsFile string
	}

	databaseConfig struct {
		Engine     string
		Host       string
		Port       string
		Name       string
		User       string
		Password   string
		DisableTLS bool
	}

	redisConfig struct {
		Addr       string
		Password   string
		DB         int
		SessionTTL time.Duration
	}
)

// Address returns the "host:port" of the database server.
func (db databaseConfig) Address() string {
	if db.Port == "" {
		return db.Host
	}
	return db.Host + ":" + db.Port
}

// Enabled reports whether a Redis server is configured.
func (r redisConfig) Enabled() bool {
	return r.Addr != ""
}

func NewConfig() *Config {
	v := viper.New()
	setDefaults(v)

	env := strings.ToUpper(os.Getenv("ENV")) // DEV (local; default), TEST, QA, PROD
	if env == "" {
		env = "DEV"
	}
	if env == "TEST" {
		v.SetDefault("testMode", true)
	}
	v.SetEnvPrefix(env)

	// load .env if it exists (ignore if it does not)
	dotEnvPath := filepath.Join(Getwd(), "config", ".env."+strings.ToLower(env))
	if _, err := os.Stat(dotEnvPath); err == nil {
		if err := godotenv.Load(dotEnvPath); err != nil {
			log.Fatalf("config.godotenv(%s): %v", dotEnvPath, err)
		}
	} else if !os.IsNotExist(err) {
		log.Fatalf("config.os.Stat(%s): %v", dotEnvPath, err)
	}
	v.AutomaticEnv()

	return &Config{
		Env:              env,
		Build:            v.GetString("build"),
		Debug:            v.GetBool("debug"),
		TestMode:         v.GetBool("testMode"),
		AppName:          v.GetString("appName"),
		SecretKey:        v.GetString("secretKey"),
		FrontendBaseURL:  v.GetString("frontendBaseURL"),
		DefaultFromEmail: mail.Address{Name: v.GetString("appName"), Address: v.GetString("defaultFromEmail")},
		ModeratorEmails:  parseAddresses(v.GetString("moderatorEmails")),
		SendgridAPIKey:   v.GetString("sendgridApiKey"),
		RollbarToken:     v.GetString("rollbarToken"),
		Server: serverConfig{
			Host:               v.GetString("serverHost"),
			Address:            v.GetString("serverAddress"),
			DebugHost:          v.GetString("serverDebugHost"),
			ShutdownTimeout:    v.GetDuration("serverShutdownTimeout"),
			JWTExpirationDelta: v.GetDuration("jwtExpirationDelta"),
			SubmissionsPerMin:  v.GetInt("submissionsPerMinute"),
			DisableRequestLogs: v.GetBool("disableRequestLogs"),
		},
		Log: logConfig{
			Level:      v.GetString("logLevel"),
			Path:       v.GetString("logPath"),
			MaxSizeMB:  v.GetInt("logMaxSizeMB"),
			MaxBackups: v.GetInt("logMaxBackups"),
			MaxAgeDays: v.GetInt("logMaxAgeDays"),
			Compress:   v.GetBool("logCompress"),
		},
		Docstore: docstoreConfig{
			Engine:          strings.ToLower(v.GetString("docstoreEngine")),
			ProjectID:       v.GetString("firestoreProjectID"),
			CredentialsFile: v.GetString("firestoreCredentialsFile"),
		},
		Database: databaseConfig{
			Engine:     v.GetString("dbEngine"),
			Host:       v.GetString("dbHost"),
			Port:       v.GetString("dbPort"),
			Name:       v.GetString("dbName"),
			User:       v.GetString("dbUser"),
			Password:   v.GetString("dbPassword"),
			DisableTLS: v.GetBool("dbDisableTLS"),
		},
		Redis: redisConfig{
			Addr:       v.GetString("redisAddr"),
			Password:   v.GetString("redisPassword"),
			DB:         v.GetInt("redisDB"),
			SessionTTL: v.GetDuration("sessionTTL"),
		},
	}
}

func setDefaults(v *viper.Viper) {
	v.SetTypeByDefaultValue(true)
	v.SetDefault("build", "develop")
	v.SetDefault("debug", true)
	v.SetDefault("testMode", false)
	v.SetDefault("appName", "Nossa UESC")
	v.SetDefault("secretKey", "k2v!w9p_7s$3zq@r&0d1ya(t6mhu+e4x)c8n%ljg5bfo")
	v.SetDefault("frontendBaseURL", "http://localhost:19006")
	v.SetDefault("defaultFromEmail", "noreply@localhost")
	v.SetDefault("moderatorEmails", "") // comma separated
	v.SetDefault("sendgridApiKey", "")
	v.SetDefault("rollbarToken", "")

	v.SetDefault("serverHost", "localhost")
	v.SetDefault("serverAddress", ":8000")
	v.SetDefault("serverDebugHost", ":4000")
	v.SetDefault("serverShutdownTimeout", 5*time.Second)
	v.SetDefault("jwtExpirationDelta", 7*24*time.Hour)
	v.SetDefault("submissionsPerMinute", 10)
	v.SetDefault("disableRequestLogs", false)

	v.SetDefault("logLevel", "info")
	v.SetDefault("logPath", "")
	v.SetDefault("logMaxSizeMB", 100)
	v.SetDefault("logMaxBackups", 3)
	v.SetDefault("logMaxAgeDays", 7)
	v.SetDefault("logCompress", false)

	v.SetDefault("docstoreEngine", "memory")
	v.SetDefault("firestoreProjectID", "")
	v.SetDefault("firestoreCredentialsFile", "")

	v.SetDefault("dbEngine", "postgres")
	v.SetDefault("dbHost", "localhost")
	v.SetDefault("dbPort", "5432")
	v.SetDefault("dbName", "nossauesc")
	v.SetDefault("dbUser", "nossauesc")
	v.SetDefault("dbPassword", "")
	v.SetDefault("dbDisableTLS", true)

	v.SetDefault("redisAddr", "")
	v.SetDefault("redisPassword", "")
	v.SetDefault("redisDB", 0)
	v.SetDefault("sessionTTL", 24*time.Hour)
}

// parseAddresses parses a comma separated list of addresses, skipping invalid ones.
func parseAddresses(raw string) []mail.Address {
	addrs := make([]mail.Address, 0)
	for _, s := range strings.Split(raw, ",") {
		if s = strings.TrimSpace(s); s == "" {
			continue
		}
		if addr, err := mail.ParseAddress(s); err == nil {
			addrs = append(addrs, *addr)
		}
	}
	return addrs
}
