package config

import (
	"fmt"
	"io/fs"
	"log"
	"path/filepath"

	"github.com/spf13/afero"
)

// Initialize writes the default configuration into dir and loads it.
func Initialize(dir string, logger *log.Logger) (*Configuration, error) {
	return InitializeFs(afero.NewOsFs(), dir, logger)
}

// InitializeFs is Initialize against an arbitrary filesystem. An existing
// configuration is never overwritten.
func InitializeFs(afs afero.Fs, dir string, logger *log.Logger) (*Configuration, error) {
	if err := afs.MkdirAll(dir, 0700); err != nil {
		return nil, err
	}

	configPath := filepath.Join(dir, ConfigurationName)
	exists, err := afero.Exists(afs, configPath)
	switch {
	case err != nil:
		return nil, err
	case exists:
		return nil, fmt.Errorf("%s: %w", configPath, fs.ErrExist)
	}

	logger.Printf("Writing %s\n", configPath)
	if err := afero.WriteFile(afs, configPath, defaultConfigData, 0600); err != nil {
		return nil, err
	}

	return LoadFs(afs, dir)
}
