package comanche

import (
	"fmt"

	"github.com/spf13/viper"
)

// Config holds the Comanche read credentials and the property's room
// count, which the dashboard payload does not carry itself.
type Config struct {
	DataEndpointURL  string `mapstructure:"data_endpoint_url" validate:"required"`
	ClientID         string `mapstructure:"client_id" validate:"required"`
	ClientReadSecret string `mapstructure:"client_read_secret" validate:"required"`
	RoomCount        int    `mapstructure:"room_count" validate:"required,gt=0"`
}

// LoadConfig loads a Comanche profile from the specified path.
func LoadConfig(profilePath string) (*Config, error) {
	v := viper.New()
	v.SetConfigFile(profilePath)

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("failed to parse comanche config: %w", err)
	}

	if config.DataEndpointURL == "" || config.ClientID == "" || config.ClientReadSecret == "" {
		return nil, fmt.Errorf("comanche profile is missing endpoint or credentials")
	}
	if config.RoomCount <= 0 {
		return nil, fmt.Errorf("comanche profile needs a positive room_count")
	}

	return &config, nil
}
