package impala

import (
	"fmt"

	"github.com/spf13/viper"
)

// Config holds the Impala API credentials for one hotel.
type Config struct {
	BaseURL string `mapstructure:"base_url"`
	APIKey  string `mapstructure:"api_key" validate:"required"`
	HotelID string `mapstructure:"hotel_id" validate:"required"`

	// Services maps ancillary service names to Impala charge type codes.
	Services map[string]string `mapstructure:"services"`
}

const defaultBaseURL = "https://api.getimpala.com/v1"

// LoadConfig loads an Impala profile from the specified path.
func LoadConfig(profilePath string) (*Config, error) {
	v := viper.New()
	v.SetConfigFile(profilePath)

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("failed to parse impala config: %w", err)
	}

	if config.BaseURL == "" {
		config.BaseURL = defaultBaseURL
	}
	if config.APIKey == "" || config.HotelID == "" {
		return nil, fmt.Errorf("impala profile is missing api_key or hotel_id")
	}

	return &config, nil
}
