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
	path := filepath.Join(t.TempDir(), "shipshape.toml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoad_FullFile(t *testing.T) {
	path := writeConfig(t, `
older_than_days = 14
quiet = true

[exclude]
containers = ["registry", "traefik"]
images = ["redis"]
volumes = ["pgdata"]
builders = ["ci-builder"]
minikube = ["work"]
kind = ["dev"]
`)

	cfg, err := Load(path)

	require.NoError(t, err)
	assert.Equal(t, 14, cfg.OlderThanDays)
	assert.True(t, cfg.Quiet)
	assert.Equal(t, []string{"registry", "traefik"}, cfg.Exclude.Containers)
	assert.Equal(t, []string{"redis"}, cfg.Exclude.Images)
	assert.Equal(t, []string{"pgdata"}, cfg.Exclude.Volumes)
	assert.Equal(t, []string{"ci-builder"}, cfg.Exclude.Builders)
	assert.Equal(t, []string{"work"}, cfg.Exclude.Minikube)
	assert.Equal(t, []string{"dev"}, cfg.Exclude.Kind)
}

func TestLoad_DefaultsWhenFileEmpty(t *testing.T) {
	path := writeConfig(t, "")

	cfg, err := Load(path)

	require.NoError(t, err)
	assert.Equal(t, -1, cfg.OlderThanDays, "unset age threshold sentinel")
	assert.False(t, cfg.Quiet)
	assert.Empty(t, cfg.Exclude.Containers)
}

func TestLoad_MalformedFileFails(t *testing.T) {
	path := writeConfig(t, "older_than_days = [not toml")

	_, err := Load(path)

	assert.Error(t, err)
}

func TestLoad_ExplicitMissingFileFails(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.toml"))

	assert.Error(t, err)
}
