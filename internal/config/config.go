package config

import (
	"os"
	"strconv"
	"time"
)

type Config struct {
	// Database
	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
	DBSSLMode  string

	// Session (JWT in httpOnly cookie)
	JWTSecret     string
	SessionExpiry time.Duration
	CookieName    string
	CookieSecure  bool

	// Blob storage (Cloudinary)
	CloudinaryCloudName string
	CloudinaryAPIKey    string
	CloudinaryAPISecret string
	MaxUploadBytes      int64

	// SMS (Twilio)
	TwilioAccountSID string
	TwilioAuthToken  string
	TwilioFromPhone  string
	SMSCountryCode   string

	// OTP
	OTPLength     int
	OTPExpiry     time.Duration
	OTPSendLimit  int
	OTPSendWindow time.Duration

	// Redis (OTP send counters)
	RedisAddr     string
	RedisPassword string
	RedisDB       int

	// Admin
	AdminEmails  string
	AdminUserIDs string

	// Server
	AppEnv        string
	Port          string
	CORSOrigin    string
	APIRateLimit  int
	AuthRateLimit int
	SentryDSN     string
}

func Load() *Config {
	appEnv := getEnv("APP_ENV", "development")
	return &Config{
		DBHost:     getEnv("DB_HOST", "localhost"),
		DBPort:     getEnv("DB_PORT", "5432"),
		DBUser:     getEnv("DB_USER", "postgres"),
		DBPassword: getEnv("DB_PASSWORD", ""),
		DBName:     getEnv("DB_NAME", "workjunction"),
		DBSSLMode:  getEnv("DB_SSLMODE", "disable"),

		JWTSecret:     getEnv("JWT_SECRET", ""),
		SessionExpiry: parseDuration(getEnv("SESSION_EXPIRY", "168h"), 7*24*time.Hour),
		CookieName:    getEnv("COOKIE_NAME", "token"),
		CookieSecure:  appEnv == "production",

		CloudinaryCloudName: getEnv("CLOUDINARY_CLOUD_NAME", ""),
		CloudinaryAPIKey:    getEnv("CLOUDINARY_API_KEY", ""),
		CloudinaryAPISecret: getEnv("CLOUDINARY_API_SECRET", ""),
		MaxUploadBytes:      int64(parseInt(getEnv("MAX_UPLOAD_BYTES", "5242880"), 5*1024*1024)),

		TwilioAccountSID: getEnv("TWILIO_ACCOUNT_SID", ""),
		TwilioAuthToken:  getEnv("TWILIO_AUTH_TOKEN", ""),
		TwilioFromPhone:  getEnv("TWILIO_FROM_PHONE", ""),
		SMSCountryCode:   getEnv("SMS_COUNTRY_CODE", "+91"),

		OTPLength:     parseInt(getEnv("OTP_LENGTH", "6"), 6),
		OTPExpiry:     parseDuration(getEnv("OTP_EXPIRY", "5m"), 5*time.Minute),
		OTPSendLimit:  parseInt(getEnv("OTP_SEND_LIMIT", "5"), 5),
		OTPSendWindow: parseDuration(getEnv("OTP_SEND_WINDOW", "1h"), time.Hour),

		RedisAddr:     getEnv("REDIS_ADDR", ""),
		RedisPassword: getEnv("REDIS_PASSWORD", ""),
		RedisDB:       parseInt(getEnv("REDIS_DB", "0"), 0),

		AdminEmails:  getEnv("ADMIN_EMAILS", ""),
		AdminUserIDs: getEnv("ADMIN_USER_IDS", ""),

		AppEnv:        appEnv,
		Port:          getEnv("PORT", "8080"),
		CORSOrigin:    getEnv("CORS_ORIGIN", "http://localhost:5173"),
		APIRateLimit:  parseInt(getEnv("API_RATE_LIMIT", "60"), 60),
		AuthRateLimit: parseInt(getEnv("AUTH_RATE_LIMIT", "10"), 10),
		SentryDSN:     getEnv("SENTRY_DSN", ""),
	}
}

func (c *Config) DSN() string {
	return "host=" + c.DBHost +
		" user=" + c.DBUser +
		" password=" + c.DBPassword +
		" dbname=" + c.DBName +
		" port=" + c.DBPort +
		" sslmode=" + c.DBSSLMode +
		" TimeZone=UTC"
}

// CloudinaryConfigured reports whether all three Cloudinary credentials are set.
func (c *Config) CloudinaryConfigured() bool {
	return c.CloudinaryCloudName != "" && c.CloudinaryAPIKey != "" && c.CloudinaryAPISecret != ""
}

func (c *Config) TwilioConfigured() bool {
	return c.TwilioAccountSID != "" && c.TwilioAuthToken != "" && c.TwilioFromPhone != ""
}

func getEnv(key, fallback string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return fallback
}

func parseDuration(s string, fallback time.Duration) time.Duration {
	d, err := time.ParseDuration(s)
	if err != nil {
		return fallback
	}
	return d
}

func parseInt(s string, fallback int) int {
	n, err := strconv.Atoi(s)
	if err != nil {
		return fallback
	}
	return n
}
