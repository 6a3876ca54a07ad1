package config

import (
	"testing"
	"time"

	"github.com/spf13/viper"
)

func TestLoadDefaults(t *testing.T) {
	viper.Reset()
	defer viper.Reset()

	cfg := Load()

	if cfg.RefreshInterval != DefaultRefreshInterval {
		t.Errorf("expected default interval %v, got %v", DefaultRefreshInterval, cfg.RefreshInterval)
	}
	if cfg.FetchTimeout != DefaultFetchTimeout {
		t.Errorf("expected default fetch timeout %v, got %v", DefaultFetchTimeout, cfg.FetchTimeout)
	}
	if cfg.Listen != DefaultListen {
		t.Errorf("expected default listen %q, got %q", DefaultListen, cfg.Listen)
	}
}

func TestLoadFromViper(t *testing.T) {
	viper.Reset()
	defer viper.Reset()

	viper.Set("source", "/var/collector/attendance.csv")
	viper.Set("total_workers", 20)
	viper.Set("refresh_interval", "45s")
	viper.Set("listen", ":9090")

	cfg := Load()

	if cfg.Source != "/var/collector/attendance.csv" {
		t.Errorf("unexpected source: %q", cfg.Source)
	}
	if cfg.TotalWorkers != 20 {
		t.Errorf("unexpected total workers: %d", cfg.TotalWorkers)
	}
	if cfg.RefreshInterval != 45*time.Second {
		t.Errorf("unexpected interval: %v", cfg.RefreshInterval)
	}
	if cfg.Listen != ":9090" {
		t.Errorf("unexpected listen: %q", cfg.Listen)
	}
}

func TestValidate(t *testing.T) {
	valid := Config{Source: "attendance.csv", TotalWorkers: 20}
	if err := valid.Validate(); err != nil {
		t.Errorf("expected valid config, got %v", err)
	}

	missing := Config{TotalWorkers: 20}
	if err := missing.Validate(); err == nil {
		t.Error("expected an error for a missing source")
	}

	// A non-positive headcount cannot yield a meaningful percentage and
	// must refuse to start.
	for _, total := range []int{0, -1} {
		bad := Config{Source: "attendance.csv", TotalWorkers: total}
		if err := bad.Validate(); err == nil {
			t.Errorf("expected an error for total_workers=%d", total)
		}
	}
}
