package priors

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// loadCache reads a cached prior from the output directory. It returns
// false if there is no cache file.
func (f *Fitter) loadCache(name string, v interface{}) (bool, error) {
	path := filepath.Join(f.Path, name)
	b, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("reading cache %s: %w", path, err)
	}
	if err := json.Unmarshal(b, v); err != nil {
		return false, fmt.Errorf("parsing cache %s: %w", path, err)
	}
	log.Infof("Loaded cached prior from %s", path)
	return true, nil
}

// storeCache writes a fitted prior to the output directory.
func (f *Fitter) storeCache(name string, v interface{}) error {
	path := filepath.Join(f.Path, name)
	b, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("encoding cache %s: %w", path, err)
	}
	if err := os.WriteFile(path, b, 0644); err != nil {
		return fmt.Errorf("writing cache %s: %w", path, err)
	}
	log.Infof("Stored prior in %s", path)
	return nil
}
