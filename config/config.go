package config

import (
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	ServerPort  string
	BaseURL     string
	DatabaseDSN string

	KafkaBroker   string
	KafkaTopic    string
	KafkaGroupID  string
	KafkaUsername string
	KafkaPassword string

	AccessSecret       string
	DefaultPhoneRegion string

	OTPTTL           time.Duration
	OTPResendLock    time.Duration
	OTPMaxAttempts   int
	OTPBlockDuration time.Duration

	LoginMaxAttempts   int
	LoginBlockDuration time.Duration

	AccessTokenTTL time.Duration
	GuestTokenTTL  time.Duration

	StoreTimeout  time.Duration
	SweepInterval time.Duration
}

func LoadConfig() Config {
	if os.Getenv("ENV") != "prod" {
		if err := godotenv.Overload(); err != nil {
			log.Println("Warning: env file not found or could not be loaded:", err)
		}
	}

	return Config{
		ServerPort:  envStr("SERVER_PORT", ":3000"),
		BaseURL:     envStr("BASE_URL", "*"),
		DatabaseDSN: os.Getenv("DATABASE_DSN"),

		KafkaBroker:   os.Getenv("KAFKA_BROKER"),
		KafkaTopic:    envStr("KAFKA_TOPIC", "sms.send"),
		KafkaGroupID:  envStr("KAFKA_GROUP_ID", "sms-worker"),
		KafkaUsername: os.Getenv("KAFKA_USERNAME"),
		KafkaPassword: os.Getenv("KAFKA_PASSWORD"),

		AccessSecret:       os.Getenv("ACCESS_SECRET"),
		DefaultPhoneRegion: envStr("DEFAULT_PHONE_REGION", "EG"),

		OTPTTL:           envSeconds("OTP_TTL_SECONDS", 120),
		OTPResendLock:    envSeconds("OTP_RESEND_LOCK_SECONDS", 60),
		OTPMaxAttempts:   envInt("OTP_MAX_ATTEMPTS", 5),
		OTPBlockDuration: envSeconds("OTP_BLOCK_SECONDS", 900),

		LoginMaxAttempts:   envInt("LOGIN_MAX_ATTEMPTS", 5),
		LoginBlockDuration: envSeconds("LOGIN_BLOCK_SECONDS", 900),

		AccessTokenTTL: envSeconds("ACCESS_TOKEN_TTL_SECONDS", 72*3600),
		GuestTokenTTL:  envSeconds("GUEST_TOKEN_TTL_SECONDS", 24*3600),

		StoreTimeout:  envSeconds("STORE_TIMEOUT_SECONDS", 5),
		SweepInterval: envSeconds("SWEEP_INTERVAL_SECONDS", 600),
	}
}

func envStr(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func envInt(key string, def int) int {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil || n <= 0 {
		log.Printf("invalid %s=%q, using default %d", key, v, def)
		return def
	}
	return n
}

func envSeconds(key string, def int) time.Duration {
	return time.Duration(envInt(key, def)) * time.Second
}
