package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultIsValid(t *testing.T) {
	t.Parallel()

	assert.NoError(t, Default().Validate())
}

func TestSaveLoadRoundTrip(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()

	for _, name := range []string{"cfg.yaml", "cfg.json"} {
		path := filepath.Join(dir, name)

		cfg := Default()
		cfg.Paths.DataDir = "/tmp/exports"
		cfg.Output.MasterName = "combined.csv"
		require.NoError(t, cfg.SaveToFile(path))

		got, err := LoadFromFile(path)
		require.NoError(t, err, name)
		assert.Equal(t, cfg, got, name)
	}
}

func TestLoadFromFileErrors(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()

	_, err := LoadFromFile(filepath.Join(dir, "missing.yaml"))
	assert.Error(t, err)

	bad := filepath.Join(dir, "bad.yaml")
	require.NoError(t, os.WriteFile(bad, []byte(":::"), 0o644))
	_, err = LoadFromFile(bad)
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name   string
		mutate func(*Config)
		want   string
	}{
		{"no data dir", func(c *Config) { c.Paths.DataDir = "" }, "data_dir"},
		{"no log dir", func(c *Config) { c.Paths.LogDir = "" }, "log_dir"},
		{"no parts file", func(c *Config) { c.Paths.PartsFile = "" }, "parts_file"},
		{"no master name", func(c *Config) { c.Output.MasterName = "" }, "master_name"},
		{"no workbook dir", func(c *Config) { c.Output.WorkbookDir = "" }, "workbook_dir"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			cfg := Default()
			tc.mutate(cfg)
			assert.ErrorContains(t, cfg.Validate(), tc.want)
		})
	}
}

func TestLoadParts(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "parts.json")
	doc := `{
		"2": ["march_part1.csv", "march_part2.csv"],
		"1": ["feb_part1.csv"]
	}`
	require.NoError(t, os.WriteFile(path, []byte(doc), 0o644))

	parts, err := LoadParts(path)
	require.NoError(t, err)

	// Keys come back sorted so later groups extend earlier ones.
	assert.Equal(t, []string{"1", "2"}, parts.Keys())
	assert.Equal(t, []string{"march_part1.csv", "march_part2.csv"}, parts["2"])
}

func TestLoadPartsErrors(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()

	_, err := LoadParts(filepath.Join(dir, "missing.json"))
	assert.Error(t, err)

	empty := filepath.Join(dir, "empty.json")
	require.NoError(t, os.WriteFile(empty, []byte(`{}`), 0o644))
	_, err = LoadParts(empty)
	assert.ErrorContains(t, err, "no groups")
}
