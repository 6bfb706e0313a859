package main

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/wippyai/classgen/desc"
	"github.com/wippyai/classgen/synth"
)

// config is read from classgen.yaml, CLASSGEN_* variables and flags, in
// increasing order of precedence.
type config struct {
	Type    string `mapstructure:"type"`
	Naming  string `mapstructure:"naming"`
	Output  string `mapstructure:"output"`
	Java    int    `mapstructure:"java"`
	Verbose bool   `mapstructure:"verbose"`
}

func (c *config) version() (desc.Version, error) {
	return desc.ForJava(c.Java)
}

func (c *config) naming() synth.AuxiliaryNaming {
	n, _ := synth.NamingByName(c.Naming)
	return n
}

func loadConfig(cmd *cobra.Command, file string) (*config, error) {
	v := viper.New()

	v.SetDefault("type", "com/example/Generated")
	v.SetDefault("java", 8)
	v.SetDefault("naming", "sequential")
	v.SetDefault("output", ".")
	v.SetDefault("verbose", false)

	if file != "" {
		v.SetConfigFile(file)
	} else {
		v.SetConfigName("classgen")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
	}

	v.SetEnvPrefix("CLASSGEN")
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	if err := v.BindPFlags(cmd.Flags()); err != nil {
		return nil, fmt.Errorf("failed to bind flags: %w", err)
	}

	var cfg config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *config) validate() error {
	c.Type = strings.ReplaceAll(strings.TrimSpace(c.Type), ".", "/")
	if c.Type == "" {
		return fmt.Errorf("type name is required")
	}
	if _, err := c.version(); err != nil {
		return err
	}
	if _, ok := synth.NamingByName(c.Naming); !ok {
		return fmt.Errorf("unknown naming strategy %q (want sequential or random)", c.Naming)
	}
	return nil
}
