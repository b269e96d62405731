package main

import (
	"fmt"
	"os"
	"strings"

	"fortio.org/log"

	"elf/interpreter-go/pkg/driver"
)

const (
	logLevelEnv     = "ELF_LOG_LEVEL"
	defaultLogLevel = "info"
)

// explicitLogLevel records whether the flag or environment chose the level.
// A manifest's log_level only applies when neither did.
var explicitLogLevel bool

func parseLogLevelFlag(args []string) (string, []string, error) {
	level := ""
	remaining := make([]string, 0, len(args))
	for i := 0; i < len(args); i++ {
		arg := args[i]
		if arg == "--" {
			remaining = append(remaining, args[i+1:]...)
			break
		}
		switch {
		case arg == "--log-level":
			if i+1 >= len(args) {
				return "", nil, fmt.Errorf("--log-level expects a value")
			}
			level = args[i+1]
			i++
		case strings.HasPrefix(arg, "--log-level="):
			level = strings.TrimPrefix(arg, "--log-level=")
			if level == "" {
				return "", nil, fmt.Errorf("--log-level expects a value")
			}
		default:
			remaining = append(remaining, arg)
		}
	}
	return level, remaining, nil
}

// configureLogging applies the flag level, then the environment, then the
// default.
func configureLogging(flagLevel string) error {
	explicitLogLevel = false
	level := strings.TrimSpace(flagLevel)
	source := "--log-level"
	if level == "" {
		level = strings.TrimSpace(os.Getenv(logLevelEnv))
		source = logLevelEnv
	}
	if level == "" {
		return setLogLevel(defaultLogLevel, "default")
	}
	explicitLogLevel = true
	return setLogLevel(level, source)
}

// applyManifestLogLevel honours the manifest's log_level unless the level was
// chosen explicitly.
func applyManifestLogLevel(manifest *driver.Manifest) {
	if explicitLogLevel || manifest == nil || manifest.LogLevel == "" {
		return
	}
	if err := setLogLevel(manifest.LogLevel, manifest.Path); err != nil {
		log.Warnf("%v", err)
	}
}

func setLogLevel(level, source string) error {
	if err := log.SetLogLevelStr(level); err != nil {
		return fmt.Errorf("invalid log level %q from %s: %w", level, source, err)
	}
	log.LogVf("log level set to %s from %s", level, source)
	return nil
}
