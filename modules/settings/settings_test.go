package settings_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pricepeek/modules/settings"
)

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "settings.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"homeCurrency":"inr","enabled":true}`), 0o644))

	s := settings.Load(path)
	assert.Equal(t, "INR", s.HomeCurrency)
	assert.True(t, s.Enabled)
}

func TestLoadMissingFileFallsBackToDefaults(t *testing.T) {
	t.Setenv("LC_ALL", "en_IN.UTF-8")

	s := settings.Load(filepath.Join(t.TempDir(), "nope.json"))
	assert.Equal(t, "INR", s.HomeCurrency)
	assert.True(t, s.Enabled)
}

func TestLoadUnsupportedCurrencyReplaced(t *testing.T) {
	t.Setenv("LC_ALL", "en_US")
	path := filepath.Join(t.TempDir(), "settings.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"homeCurrency":"DOGE","enabled":false}`), 0o644))

	s := settings.Load(path)
	assert.Equal(t, "USD", s.HomeCurrency)
	assert.False(t, s.Enabled)
}

func TestSaveRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "settings.json")
	in := settings.Settings{HomeCurrency: "EUR", Enabled: true}
	require.NoError(t, settings.Save(path, in))

	assert.Equal(t, in, settings.Load(path))
}

func TestDefaultUsesLocaleEnv(t *testing.T) {
	t.Setenv("LC_ALL", "")
	t.Setenv("LC_MONETARY", "")
	t.Setenv("LANG", "de_DE.UTF-8")

	assert.Equal(t, "EUR", settings.Default().HomeCurrency)
}
