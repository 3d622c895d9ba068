package config

import (
	"fmt"
	"net"

	"github.com/spf13/viper"
)

type ApplyConfig struct {
	AutoMine         bool
	MineRemaining    bool
	FailFast         bool
	Verify           bool
	ShowSummary      bool
	Progress         bool
	EnablePrometheus bool
	PrometheusAddr   string
	Hold             bool
	MirrorTSV        string
}

func (c ApplyConfig) Validate() error {
	if c.Hold && !c.EnablePrometheus {
		return fmt.Errorf("--hold requires --enable-prometheus")
	}
	if c.MirrorTSV != "" {
		if err := validateOutputDir(c.MirrorTSV); err != nil {
			return err
		}
	}
	if c.EnablePrometheus {
		if _, _, err := net.SplitHostPort(c.PrometheusAddr); err != nil {
			return fmt.Errorf("invalid Prometheus address %q: %w", c.PrometheusAddr, err)
		}
	}
	return nil
}

func LoadApplyConfigFromCLI() ApplyConfig {
	return ApplyConfig{
		AutoMine:         viper.GetBool("auto-mine"),
		MineRemaining:    viper.GetBool("mine-remaining"),
		FailFast:         viper.GetBool("fail-fast"),
		Verify:           viper.GetBool("verify"),
		ShowSummary:      viper.GetBool("summary"),
		Progress:         viper.GetBool("progress"),
		EnablePrometheus: viper.GetBool("enable-prometheus"),
		PrometheusAddr:   viper.GetString("prometheus-addr"),
		Hold:             viper.GetBool("hold"),
		MirrorTSV:        viper.GetString("mirror-tsv"),
	}
}
