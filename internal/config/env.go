package config

// Environment variables read by [FromEnv].
const (
	EnvFormat        = "RICHTEXT_FORMAT"
	EnvEngine        = "RICHTEXT_ENGINE"
	EnvMaxInputBytes = "RICHTEXT_MAX_INPUT_BYTES"
	EnvLogLevel      = "RICHTEXT_LOG_LEVEL"
)

// Values used when the matching environment variable is unset or malformed.
const (
	DefaultFormat        = "auto"
	DefaultEngine        = "tree"
	DefaultMaxInputBytes = 1 << 20
	DefaultLogLevel      = "info"
)
