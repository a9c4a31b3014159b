package config

import (
	gonanoid "github.com/matoous/go-nanoid/v2"
)

const defaultConfigYAML = `logging:
  level: error
search:
  defaultQueryKey: keywords
  clearAfterSearch: false
  typeaheadDelay: 400ms
  output: yaml
store:
  latency: 300ms
  maxResults: 50
appearance:
  theme: auto
`

// DefaultConfigYAML returns the config.yaml written by the sample install
func DefaultConfigYAML() string {
	return defaultConfigYAML
}

// GenerateRandomID generates a 6-character random alphanumeric ID (lowercase)
func GenerateRandomID() string {
	const alphabet = "abcdefghijklmnopqrstuvwxyz0123456789"
	const length = 6
	id, err := gonanoid.Generate(alphabet, length)
	if err != nil {
		// Fallback to simple implementation if nanoid fails
		return "error0"
	}
	return id
}
