package config

import (
	"fmt"
	"os"

	"github.com/spf13/viper"
)

// JSONConfig configures the directory sink writing one file per block.
type JSONConfig struct {
	Output string
}

func (c JSONConfig) Validate() error {
	return validateOutputDir(c.Output)
}

func LoadJSONConfigFromCLI() JSONConfig {
	return JSONConfig{
		Output: viper.GetString("json-out"),
	}
}

// TSVConfig configures the sink appending one line per block to blocks.tsv.
type TSVConfig struct {
	Output string
}

func (c TSVConfig) Validate() error {
	return validateOutputDir(c.Output)
}

func LoadTSVConfigFromCLI() TSVConfig {
	return TSVConfig{
		Output: viper.GetString("tsv-out"),
	}
}

func validateOutputDir(dir string) error {
	if dir == "" {
		return fmt.Errorf("missing output directory")
	}
	if fi, err := os.Stat(dir); err == nil && !fi.IsDir() {
		return fmt.Errorf("output path %s is not a directory", dir)
	}
	return nil
}
