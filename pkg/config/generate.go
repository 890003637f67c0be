package config

import (
	"strings"

	"github.com/pelletier/go-toml/v2"

	"github.com/skilldock/skilldock/pkg/errors"
)

// GenerateConfigContent returns the default configuration as a fully
// commented-out template, suitable for writing to the user config file.
func GenerateConfigContent() string {
	return commentOutConfigValues(string(defaultConfig))
}

// MarshalEffective renders a resolved configuration back to TOML, used by
// `genconfig --effective` to show the merged result of defaults, config
// file and environment.
func MarshalEffective(cfg *Config) (string, error) {
	out, err := toml.Marshal(cfg)
	if err != nil {
		return "", errors.Wrap(err, errors.ErrInternal, "failed to marshal configuration")
	}
	return string(out), nil
}

// commentOutConfigValues comments out all assignment lines in the TOML
// content, leaving comments, blank lines and section headers as-is.
func commentOutConfigValues(content string) string {
	lines := strings.Split(content, "\n")
	var result []string

	for _, line := range lines {
		trimmed := strings.TrimSpace(line)

		if trimmed == "" {
			result = append(result, line)
			continue
		}

		if strings.HasPrefix(trimmed, "#") {
			result = append(result, line)
			continue
		}

		if strings.HasPrefix(trimmed, "[") && strings.HasSuffix(trimmed, "]") {
			result = append(result, line)
			continue
		}

		result = append(result, "# "+line)
	}

	return strings.Join(result, "\n")
}
