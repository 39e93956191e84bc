package mews

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/spf13/viper"
)

// Config holds the Mews connector credentials and the property's entity
// identifiers. Service identifiers are UUIDs on the Mews wire.
type Config struct {
	BaseURL     string `mapstructure:"base_url"`
	ClientToken string `mapstructure:"client_token" validate:"required"`
	AccessToken string `mapstructure:"access_token" validate:"required"`

	// StayServiceID is the reservable service whose availability feeds
	// occupancy.
	StayServiceID string `mapstructure:"stay_service_id"`
	// AccommodationCategoryID is the accounting category for room revenue.
	AccommodationCategoryID string `mapstructure:"accommodation_category_id"`
	// Services maps ancillary service names ("spa") to service IDs.
	Services map[string]string `mapstructure:"services"`
}

const defaultBaseURL = "https://api.mews.com/api/connector/v1"

// LoadConfig loads a Mews profile from the specified path.
func LoadConfig(profilePath string) (*Config, error) {
	v := viper.New()
	v.SetConfigFile(profilePath)

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("failed to parse mews config: %w", err)
	}

	if config.BaseURL == "" {
		config.BaseURL = defaultBaseURL
	}
	if config.ClientToken == "" || config.AccessToken == "" {
		return nil, fmt.Errorf("mews profile is missing client_token or access_token")
	}

	for _, id := range []string{config.StayServiceID, config.AccommodationCategoryID} {
		if id == "" {
			continue
		}
		if _, err := uuid.Parse(id); err != nil {
			return nil, fmt.Errorf("invalid mews entity id %q: %w", id, err)
		}
	}
	for name, id := range config.Services {
		if _, err := uuid.Parse(id); err != nil {
			return nil, fmt.Errorf("invalid mews service id for %q: %w", name, err)
		}
	}

	return &config, nil
}
