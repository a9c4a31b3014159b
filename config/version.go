package config

// Build information, set with -ldflags "-X" at release time.
var (
	Version   = "dev"
	GitCommit = "unknown"
	BuildDate = "unknown"
)
