package core

import (
	"os"
	"strings"

	"github.com/rs/zerolog"
)

// LogEnv is the environment variable that controls the logging level.
const LogEnv = "LSHGRID_LOG"

// init initializes the logging configuration based on the LSHGRID_LOG environment variable.
func init() {
	zerolog.SetGlobalLevel(LogLevel(os.Getenv(LogEnv)))
}

// LogLevel maps a LSHGRID_LOG value to a zerolog level.
// "off" or "0" disables logging, "full" enables debug logging and anything else means info.
func LogLevel(value string) zerolog.Level {
	switch strings.TrimSpace(strings.ToLower(value)) {
	case "off", "0":
		return zerolog.Disabled
	case "full":
		return zerolog.DebugLevel
	default:
		return zerolog.InfoLevel
	}
}
