// Package cmdutil provides shared utilities for CLI command implementations.
package cmdutil

import (
	"fmt"
	"time"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// The getters below resolve a setting with the precedence explicit flag,
// then config file or environment, then flag default.

// GetString returns the value of flag name or config key.
func GetString(flags *pflag.FlagSet, name, key string) string {
	if !flags.Changed(name) && viper.IsSet(key) {
		return viper.GetString(key)
	}
	v, _ := flags.GetString(name)
	return v
}

// GetStringSlice returns the value of flag name or config key.
func GetStringSlice(flags *pflag.FlagSet, name, key string) []string {
	if !flags.Changed(name) {
		// Check actual config value instead of viper.IsSet() which is true
		// for an empty list
		if configValue := viper.GetStringSlice(key); len(configValue) > 0 {
			return configValue
		}
	}
	v, _ := flags.GetStringSlice(name)
	return v
}

// GetBool returns the value of flag name or config key.
func GetBool(flags *pflag.FlagSet, name, key string) bool {
	if !flags.Changed(name) && viper.IsSet(key) {
		return viper.GetBool(key)
	}
	v, _ := flags.GetBool(name)
	return v
}

// GetDuration returns the value of flag name or config key.
func GetDuration(flags *pflag.FlagSet, name, key string) time.Duration {
	if !flags.Changed(name) && viper.IsSet(key) {
		return viper.GetDuration(key)
	}
	v, _ := flags.GetDuration(name)
	return v
}

// GetSize returns the size given by flag name or config key, parsed with
// ParseSizeString.
func GetSize(flags *pflag.FlagSet, name, key string) (int64, error) {
	s := GetString(flags, name, key)
	n, err := ParseSizeString(s)
	if err != nil {
		return 0, fmt.Errorf("--%s: %w", name, err)
	}
	return n, nil
}

// ParseSizeString parses a size string (e.g., "100M", "1G", "500K") and returns bytes.
// Supported suffixes: K/k (KiB), M/m (MiB), G/g (GiB).
func ParseSizeString(s string) (int64, error) {
	if s == "" {
		return 0, fmt.Errorf("empty size string")
	}

	lastChar := s[len(s)-1]
	var multiplier int64 = 1

	switch lastChar {
	case 'K', 'k':
		multiplier = 1024
		s = s[:len(s)-1]
	case 'M', 'm':
		multiplier = 1024 * 1024
		s = s[:len(s)-1]
	case 'G', 'g':
		multiplier = 1024 * 1024 * 1024
		s = s[:len(s)-1]
	}

	var value int64
	if _, err := fmt.Sscanf(s, "%d", &value); err != nil {
		return 0, fmt.Errorf("invalid size value: %w", err)
	}
	if value <= 0 {
		return 0, fmt.Errorf("size must be positive, got %d", value)
	}

	return value * multiplier, nil
}
