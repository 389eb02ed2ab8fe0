package types

const (
	FlagHome     = "home"
	FlagLogLevel = "log-level"

	DefaultHome     = "$HOME/.harvester"
	DefaultLogLevel = "info"
)
