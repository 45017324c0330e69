package config

import (
	"os"
	"path/filepath"

	"github.com/avenka29/Hackathon-NCSU/internal/logging"
)

const (
	logDirName  = "logs"
	logFileName = "scamflight.log"
)

// defaultLogFile keeps logs off the terminal so the TUI screen stays clean.
// It is empty when no home directory can be found.
func defaultLogFile() string {
	dir, err := GetConfigDir()
	if err != nil {
		return ""
	}
	return filepath.Join(dir, logDirName, logFileName)
}

// ToLoggingConfig converts the file section into a logging.Config.
//
// A configured File selects file output; otherwise logs go to stderr.
func (lc *LoggingConfig) ToLoggingConfig() logging.Config {
	output := logging.OutputStderr
	if lc.File != "" {
		output = logging.OutputFile
	}

	return logging.Config{
		Level:  lc.Level,
		Format: lc.Format,
		Output: output,
		File:   lc.File,
	}
}

// DebugLoggingConfig is used for --debug: everything at debug level as
// human-readable console output on stderr.
func DebugLoggingConfig() logging.Config {
	return logging.Config{
		Level:  "debug",
		Format: logging.FormatConsole,
		Output: logging.OutputStderr,
		Caller: true,
	}
}

// GetLoggingConfig returns a copy of the global Logging section. Callers
// apply flag overrides such as --debug themselves.
func GetLoggingConfig() LoggingConfig {
	cfg := GetGlobalConfig()
	return cfg.Logging
}

// EnsureLogDir creates the directory of the configured log file, if any.
func EnsureLogDir() error {
	cfg := GetGlobalConfig()
	if cfg.Logging.File == "" {
		return nil
	}
	return os.MkdirAll(filepath.Dir(cfg.Logging.File), 0700)
}
