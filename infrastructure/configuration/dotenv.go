package configuration

import (
	"errors"
	"fmt"
	"io/fs"

	"youtube-manager/infrastructure/logger"

	"github.com/subosito/gotenv"
)

// LoadEnvFiles loads KEY=VALUE pairs from the given files (config.env and
// .env by default). Missing files are skipped and variables already present
// in the process environment are never overridden.
func LoadEnvFiles(paths ...string) error {
	if len(paths) == 0 {
		paths = []string{"config.env", ".env"}
	}
	for _, p := range paths {
		err := gotenv.Load(p)
		switch {
		case err == nil:
			logger.GetLogger().WithField("file", p).Debug("Loaded env file")
		case errors.Is(err, fs.ErrNotExist):
			continue
		default:
			return fmt.Errorf("load env file %s: %w", p, err)
		}
	}
	return nil
}
