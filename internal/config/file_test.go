package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadMissingFileYieldsDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "config.yaml"))
	assert.Error(t, err) // explicit path must exist

	cfg, err = Load("")
	require.NoError(t, err)
	assert.Equal(t, PresetDefault, cfg.ThemePreset)
	assert.Equal(t, 40, cfg.GutterWidth)
}

func TestLoadOverridesDefaults(t *testing.T) {
	path := writeConfig(t, `
theme: dracula
gutter_width: 32
tab_size: 2
log_level: debug
keybindings:
  quit: ["x"]
`)
	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, PresetDracula, cfg.ThemePreset)
	assert.Equal(t, ThemeForPreset(PresetDracula, false), cfg.Theme)
	assert.Equal(t, 32, cfg.GutterWidth)
	assert.Equal(t, 2, cfg.TabSize)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, []string{"x"}, cfg.Keybindings["quit"])
	// untouched bindings keep their defaults
	assert.Equal(t, DefaultKeybindings()["back"], cfg.Keybindings["back"])
}

func TestLoadRejectsInvalidYAML(t *testing.T) {
	path := writeConfig(t, "theme: [unclosed")
	_, err := Load(path)
	assert.Error(t, err)
}

func TestMergeKeybindingsIgnoresEmptyOverrides(t *testing.T) {
	merged := MergeKeybindings(Keybindings{"quit": {}})
	assert.Equal(t, DefaultKeybindings()["quit"], merged["quit"])
}

func TestThemeForPresetHighContrast(t *testing.T) {
	base := ThemeForPreset(PresetDefault, false)
	hc := ThemeForPreset(PresetDefault, true)
	assert.NotEqual(t, base.Palette, hc.Palette)
}

func TestAdjustBrightnessClampsAndValidates(t *testing.T) {
	assert.Equal(t, "#ffffff", adjustBrightness("#ffffff", 0.5))
	assert.Equal(t, "not-hex", adjustBrightness("not-hex", 0.5))
}
