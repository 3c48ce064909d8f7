package config

const (
	// Command line option keys
	ConfigFileKey = "config-file"
	HelpKey       = "help"

	// Top-level configuration keys
	LogLevelKey  = "log-level"
	GroupKey     = "group"
	ThresholdKey = "threshold"
	MembersKey   = "members"
	ReductionKey = "reduction"
)
