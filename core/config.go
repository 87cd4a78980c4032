package core

import (
	"fmt"
	"strings"
)

type PlatformAppConfig struct {
	ClientID     string `koanf:"client_id" mapstructure:"client_id"`
	ClientSecret string `koanf:"client_secret" mapstructure:"client_secret"`
}

type RefreshConfig struct {
	Schedule    string `koanf:"schedule" mapstructure:"schedule"`
	MaxAttempts int    `koanf:"max_attempts" mapstructure:"max_attempts"`
}

type Config struct {
	ServiceName string `koanf:"service_name" mapstructure:"service_name"`
	Refresh     RefreshConfig `koanf:"refresh" mapstructure:"refresh"`
	// PlatformApps holds the fallback OAuth client per provider id, used
	// when a connection carries no tenant-owned app credential.
	PlatformApps map[string]PlatformAppConfig `koanf:"platform_apps" mapstructure:"platform_apps"`
}

func DefaultConfig() Config {
	return Config{
		ServiceName: "unified",
		Refresh: RefreshConfig{
			Schedule:    "@every 2m",
			MaxAttempts: defaultRefreshMaxAttempts,
		},
	}
}

func (c Config) Validate() error {
	if strings.TrimSpace(c.ServiceName) == "" {
		return fmt.Errorf("core: service_name is required")
	}
	if strings.TrimSpace(c.Refresh.Schedule) == "" {
		return fmt.Errorf("core: refresh.schedule is required")
	}
	if c.Refresh.MaxAttempts < 0 {
		return fmt.Errorf("core: refresh.max_attempts must not be negative")
	}
	for providerID, app := range c.PlatformApps {
		if strings.TrimSpace(providerID) == "" {
			return fmt.Errorf("core: platform_apps keys must be provider ids")
		}
		if strings.TrimSpace(app.ClientID) == "" || strings.TrimSpace(app.ClientSecret) == "" {
			return fmt.Errorf("core: platform_apps.%s requires client_id and client_secret", providerID)
		}
	}
	return nil
}

// PlatformApp returns the platform fallback client for a provider, if
// configured.
func (c Config) PlatformApp(providerID ProviderID) (PlatformAppConfig, bool) {
	app, ok := c.PlatformApps[string(providerID)]
	if !ok {
		return PlatformAppConfig{}, false
	}
	if strings.TrimSpace(app.ClientID) == "" {
		return PlatformAppConfig{}, false
	}
	return app, true
}
