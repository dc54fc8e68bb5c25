package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/goccy/go-yaml"
)

// ProgramName is the resource class looked up in the database.
const ProgramName = "dmenu"

// ResourcesEnv names an explicit resource file, bypassing the search.
const ResourcesEnv = "DMENU_RESOURCES"

// Resources is a keyed string database. Keys are either qualified
// with the program name ("dmenu.font") or bare ("font").
type Resources map[string]string

// Get looks up key, preferring the qualified form.
func (r Resources) Get(key string) (string, bool) {
	if v, ok := r[ProgramName+"."+key]; ok {
		return v, true
	}
	if v, ok := r[ProgramName+"*"+key]; ok {
		return v, true
	}
	v, ok := r[key]
	return v, ok
}

// ReadResources reads a resource file. The decoder is chosen by
// extension: YAML, TOML, otherwise JSON. Scalar values of any type
// are stored in their string form.
func ReadResources(filename string) (Resources, error) {
	f, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to open file %s: %w", filename, err)
	}
	defer f.Close()

	raw := map[string]any{}
	switch ext := filepath.Ext(filename); ext {
	case ".yaml", ".yml":
		if err := yaml.NewDecoder(f).Decode(&raw); err != nil {
			return nil, fmt.Errorf("failed to decode YAML: %w", err)
		}
	case ".toml":
		if _, err := toml.NewDecoder(f).Decode(&raw); err != nil {
			return nil, fmt.Errorf("failed to decode TOML: %w", err)
		}
	default:
		if err := json.NewDecoder(f).Decode(&raw); err != nil {
			return nil, fmt.Errorf("failed to decode JSON: %w", err)
		}
	}

	r := Resources{}
	flatten(r, "", raw)
	return r, nil
}

// flatten turns nested tables ({dmenu: {font: x}}) into dotted keys.
func flatten(dst Resources, prefix string, src map[string]any) {
	for k, v := range src {
		key := k
		if prefix != "" {
			key = prefix + "." + k
		}
		switch v := v.(type) {
		case map[string]any:
			flatten(dst, key, v)
		case nil:
		default:
			dst[key] = fmt.Sprint(v)
		}
	}
}

// Locator locates a resource file in a given directory.
type Locator interface {
	Locate(string) (string, error)
}

// LocatorFunc is a function that implements Locator.
type LocatorFunc func(string) (string, error)

// Locate calls the underlying function.
func (f LocatorFunc) Locate(dir string) (string, error) {
	return f(dir)
}

var resourceFilenames = []string{"resources.json", "resources.yaml", "resources.yml", "resources.toml"}

// DefaultResourceLocator searches for one of the known resource file
// names in the given directory.
var DefaultResourceLocator = LocatorFunc(func(dir string) (string, error) {
	for _, basename := range resourceFilenames {
		file := filepath.Join(dir, basename)
		if _, err := os.Stat(file); err == nil {
			return file, nil
		}
	}
	return "", fmt.Errorf("resource file not found in %s", dir)
})

// ErrResourcesNotFound is returned when no resource file exists.
var ErrResourcesNotFound = errors.New("resource file not found")

// LocateResources attempts to find the resource file in various locations
func LocateResources(locater Locator) (string, error) {
	// http://standards.freedesktop.org/basedir-spec/basedir-spec-latest.html
	//
	// Try in this order:
	//    $DMENU_RESOURCES
	//    $XDG_CONFIG_HOME/dmenu/resources.{json,yaml,yml,toml}
	//    $XDG_CONFIG_DIR/dmenu/resources.* (for each dir in $XDG_CONFIG_DIRS)
	//    ~/.dmenu/resources.*
	if file := os.Getenv(ResourcesEnv); file != "" {
		if _, err := os.Stat(file); err != nil {
			return "", fmt.Errorf("%s: %w", ResourcesEnv, err)
		}
		return file, nil
	}

	home, uErr := homedirFunc()

	if dir := os.Getenv("XDG_CONFIG_HOME"); dir != "" {
		if file, err := locater.Locate(filepath.Join(dir, ProgramName)); err == nil {
			return file, nil
		}
	} else if uErr == nil { // silently ignore failure for homedir()
		if file, err := locater.Locate(filepath.Join(home, ".config", ProgramName)); err == nil {
			return file, nil
		}
	}

	if dirs := os.Getenv("XDG_CONFIG_DIRS"); dirs != "" {
		for dir := range strings.SplitSeq(dirs, string(filepath.ListSeparator)) {
			if file, err := locater.Locate(filepath.Join(dir, ProgramName)); err == nil {
				return file, nil
			}
		}
	}

	if uErr == nil {
		if file, err := locater.Locate(filepath.Join(home, "."+ProgramName)); err == nil {
			return file, nil
		}
	}

	return "", ErrResourcesNotFound
}
