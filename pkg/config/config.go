package config

import (
	"github.com/kelseyhightower/envconfig"
)

// Config holds runtime configuration common to every entrypoint. The
// backend profile file carries the per-backend credentials; everything
// here comes from the environment.
type Config struct {
	AppAddr string `envconfig:"APP_ADDR" default:":8080"`

	// PMSBackend selects the active property-management backend
	// (mews | impala | comanche).
	PMSBackend     string `envconfig:"PMS_BACKEND"`
	PMSProfilePath string `envconfig:"PMS_PROFILE_PATH" default:"pms-profile.yaml"`

	MessagingBaseURL      string `envconfig:"MESSAGING_BASE_URL"`
	MessagingClientID     string `envconfig:"MESSAGING_CLIENT_ID"`
	MessagingClientSecret string `envconfig:"MESSAGING_CLIENT_SECRET"`

	RedisAddr string `envconfig:"REDIS_ADDR" default:"127.0.0.1:6379"`

	// SummaryCron schedules the daily summary report (UTC).
	SummaryCron string `envconfig:"SUMMARY_CRON" default:"0 9 * * *"`
	// SummaryServiceName is the ancillary service the summary reports on.
	SummaryServiceName string `envconfig:"SUMMARY_SERVICE_NAME" default:"spa"`
}

// Load reads configuration from environment variables.
func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}
