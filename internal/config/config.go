package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

type AppConfig struct {
	Port    int    `yaml:"port"`
	GinMode string `yaml:"gin_mode"`
}

type DatabaseConfig struct {
	DSN string `yaml:"dsn"`
}

type RedisConfig struct {
	Addr     string `yaml:"addr"`
	Password string `yaml:"password"`
	DB       int    `yaml:"db"`
}

type JWTConfig struct {
	Secret     string `yaml:"secret"`
	Issuer     string `yaml:"issuer"`
	AccessTTL  string `yaml:"access_ttl"`
	RefreshTTL string `yaml:"refresh_ttl"`
}

type VerificationConfig struct {
	TTL          string `yaml:"ttl"`
	Length       int    `yaml:"length"`
	MaxAttempts  int    `yaml:"max_attempts"`
	ResendWindow string `yaml:"resend_window"`
}

type SMTPConfig struct {
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	Username string `yaml:"username"`
	Password string `yaml:"password"`
	From     string `yaml:"from"`
}

type TwilioConfig struct {
	AccountSID string `yaml:"account_sid"`
	AuthToken  string `yaml:"auth_token"`
	FromNumber string `yaml:"from_number"`
}

type MercadoPagoConfig struct {
	AccessToken     string `yaml:"access_token"`
	NotificationURL string `yaml:"notification_url"`
	Descriptor      string `yaml:"descriptor"`
}

type CloudinaryConfig struct {
	CloudName string `yaml:"cloud_name"`
	APIKey    string `yaml:"api_key"`
	APISecret string `yaml:"api_secret"`
	Folder    string `yaml:"folder"`
}

type SweepConfig struct {
	Cron     string `yaml:"cron"`
	Timezone string `yaml:"timezone"`
}

type CasbinConfig struct {
	ModelPath string `yaml:"model_path"`
}

type CORSConfig struct {
	Origins []string `yaml:"origins"`
}

type ConfigFile struct {
	App          AppConfig          `yaml:"app"`
	Database     DatabaseConfig     `yaml:"database"`
	Redis        RedisConfig        `yaml:"redis"`
	JWT          JWTConfig          `yaml:"jwt"`
	Verification VerificationConfig `yaml:"verification"`
	SMTP         SMTPConfig         `yaml:"smtp"`
	Twilio       TwilioConfig       `yaml:"twilio"`
	MercadoPago  MercadoPagoConfig  `yaml:"mercado_pago"`
	Cloudinary   CloudinaryConfig   `yaml:"cloudinary"`
	Sweep        SweepConfig        `yaml:"sweep"`
	Casbin       CasbinConfig       `yaml:"casbin"`
	CORS         CORSConfig         `yaml:"cors"`
}

type Config struct {
	Port               string
	GinMode            string
	DSN                string
	RedisAddr          string
	RedisPassword      string
	RedisDB            int
	JWTSecret          string
	JWTIssuer          string
	AccessTTL          time.Duration
	RefreshTTL         time.Duration
	VerifyTTL          time.Duration
	VerifyLength       int
	VerifyMaxAttempts  int
	VerifyResendWindow time.Duration
	SMTPHost           string
	SMTPPort           int
	SMTPUsername       string
	SMTPPassword       string
	SMTPFrom           string
	TwilioSID          string
	TwilioToken        string
	TwilioFrom         string
	MPAccessToken      string
	MPNotificationURL  string
	MPDescriptor       string
	CloudinaryName     string
	CloudinaryKey      string
	CloudinarySecret   string
	CloudinaryFolder   string
	SweepCron          string
	SweepTimezone      string
	CasbinModelPath    string
	CORSOrigins        []string
}

func env(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}

func Load() (*Config, error) {
	configFile, err := loadConfigFile(env("CONFIG_PATH", "config/config.yml"))
	if err != nil {
		return nil, fmt.Errorf("failed to load config file: %w", err)
	}

	accTTL, err := time.ParseDuration(configFile.JWT.AccessTTL)
	if err != nil {
		return nil, fmt.Errorf("invalid JWT access TTL: %w", err)
	}

	refTTL, err := time.ParseDuration(configFile.JWT.RefreshTTL)
	if err != nil {
		return nil, fmt.Errorf("invalid JWT refresh TTL: %w", err)
	}

	verifyTTL, err := time.ParseDuration(configFile.Verification.TTL)
	if err != nil {
		return nil, fmt.Errorf("invalid verification TTL: %w", err)
	}

	resendWindow, err := time.ParseDuration(configFile.Verification.ResendWindow)
	if err != nil {
		return nil, fmt.Errorf("invalid verification resend window: %w", err)
	}

	return &Config{
		Port:               fmt.Sprintf("%d", configFile.App.Port),
		GinMode:            configFile.App.GinMode,
		DSN:                env("DATABASE_URL", configFile.Database.DSN),
		RedisAddr:          configFile.Redis.Addr,
		RedisPassword:      configFile.Redis.Password,
		RedisDB:            configFile.Redis.DB,
		JWTSecret:          env("JWT_SECRET", configFile.JWT.Secret),
		JWTIssuer:          configFile.JWT.Issuer,
		AccessTTL:          accTTL,
		RefreshTTL:         refTTL,
		VerifyTTL:          verifyTTL,
		VerifyLength:       configFile.Verification.Length,
		VerifyMaxAttempts:  configFile.Verification.MaxAttempts,
		VerifyResendWindow: resendWindow,
		SMTPHost:           env("SMTP_HOST", configFile.SMTP.Host),
		SMTPPort:           configFile.SMTP.Port,
		SMTPUsername:       env("SMTP_USERNAME", configFile.SMTP.Username),
		SMTPPassword:       env("SMTP_PASSWORD", configFile.SMTP.Password),
		SMTPFrom:           configFile.SMTP.From,
		TwilioSID:          env("TWILIO_SID", configFile.Twilio.AccountSID),
		TwilioToken:        env("TWILIO_TOKEN", configFile.Twilio.AuthToken),
		TwilioFrom:         configFile.Twilio.FromNumber,
		MPAccessToken:      env("MP_ACCESS_TOKEN", configFile.MercadoPago.AccessToken),
		MPNotificationURL:  configFile.MercadoPago.NotificationURL,
		MPDescriptor:       configFile.MercadoPago.Descriptor,
		CloudinaryName:     env("CLOUDINARY_CLOUD_NAME", configFile.Cloudinary.CloudName),
		CloudinaryKey:      env("CLOUDINARY_API_KEY", configFile.Cloudinary.APIKey),
		CloudinarySecret:   env("CLOUDINARY_API_SECRET", configFile.Cloudinary.APISecret),
		CloudinaryFolder:   configFile.Cloudinary.Folder,
		SweepCron:          configFile.Sweep.Cron,
		SweepTimezone:      configFile.Sweep.Timezone,
		CasbinModelPath:    configFile.Casbin.ModelPath,
		CORSOrigins:        configFile.CORS.Origins,
	}, nil
}

func loadConfigFile(path string) (*ConfigFile, error) {
	bytes, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("could not read config file at %s: %w", path, err)
	}

	var config ConfigFile
	if err := yaml.Unmarshal(bytes, &config); err != nil {
		return nil, fmt.Errorf("could not parse config yaml: %w", err)
	}

	return &config, nil
}
