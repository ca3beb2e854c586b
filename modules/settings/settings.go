// Package settings reads the user's home currency and enabled flag.
// The engine reads these at scan/display time and assumes nothing
// about how they persist.
package settings

import (
	"encoding/json"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"

	"pricepeek/modules/currency"
)

const DefaultPath = "settings.json"

type Settings struct {
	HomeCurrency string `json:"homeCurrency"`
	Enabled      bool   `json:"enabled"`
}

// Default derives the initial settings for a user who has never saved
// any: enabled, with the home currency picked from the process locale.
func Default() Settings {
	return Settings{
		HomeCurrency: currency.DefaultCurrencyForLocale(localeFromEnv()),
		Enabled:      true,
	}
}

// Load reads settings from a JSON file, trying the path as given and
// then relative to the working directory. A missing or unreadable file
// is not an error: defaults are returned so the engine always has a
// home currency to display in. An unsupported saved currency is
// replaced by the default, with a warning.
func Load(path string) Settings {
	if path == "" {
		path = DefaultPath
	}

	data, err := os.ReadFile(path)
	if err != nil {
		cwd, _ := os.Getwd()
		altPath := filepath.Join(cwd, path)
		data, err = os.ReadFile(altPath)
		if err != nil {
			return Default()
		}
	}

	var s Settings
	if err := json.Unmarshal(data, &s); err != nil {
		log.Printf("settings: malformed %s: %v, using defaults", path, err)
		return Default()
	}

	s.HomeCurrency = strings.ToUpper(strings.TrimSpace(s.HomeCurrency))
	if !currency.IsSupported(s.HomeCurrency) {
		log.Printf("settings: unsupported home currency %q, using default", s.HomeCurrency)
		s.HomeCurrency = Default().HomeCurrency
	}
	return s
}

// Save writes settings back as JSON.
func Save(path string, s Settings) error {
	if path == "" {
		path = DefaultPath
	}
	data, err := json.MarshalIndent(s, "", "  ")
	if err != nil {
		return fmt.Errorf("marshaling settings: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing settings %s: %w", path, err)
	}
	return nil
}

// localeFromEnv reads the usual POSIX locale variables and strips the
// encoding/modifier suffixes ("en_IN.UTF-8@x" -> "en_IN") so the
// region subtag survives the lookup.
func localeFromEnv() string {
	for _, key := range []string{"LC_ALL", "LC_MONETARY", "LANG"} {
		v := os.Getenv(key)
		if v == "" {
			continue
		}
		if i := strings.IndexAny(v, ".@"); i >= 0 {
			v = v[:i]
		}
		return v
	}
	return ""
}
