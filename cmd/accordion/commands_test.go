package main

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/muurk/accordion/internal/accordion"
	"github.com/muurk/accordion/internal/config"
	"github.com/muurk/accordion/internal/provider"
)

func TestPanelState(t *testing.T) {
	assert.Equal(t, "closed", panelState(accordion.PanelView{}))
	assert.Equal(t, "open", panelState(accordion.PanelView{Open: true}))
	assert.Equal(t, "open, pinned", panelState(accordion.PanelView{Open: true, Pinned: true}))
}

func TestPanelNote(t *testing.T) {
	assert.Equal(t, "boom", panelNote(accordion.PanelView{Err: errors.New("boom")}))
	assert.Equal(t, "2 lines", panelNote(accordion.PanelView{Open: true, Body: "a\nb"}))
	assert.Equal(t, "1 lines (4 clipped)", panelNote(accordion.PanelView{Open: true, Body: "a", Clipped: 4}))
	assert.Equal(t, "Count: 1", panelNote(accordion.PanelView{
		Summary: provider.Summary{{Label: "Count", Value: 1}},
	}))
}

func TestUnregisteredComponents(t *testing.T) {
	cfg := config.Demo()
	assert.Empty(t, unregisteredComponents(cfg, provider.DefaultRegistry()))

	cfg.Layers[0].ComponentName = "CounterComponnet"
	missing := unregisteredComponents(cfg, provider.DefaultRegistry())
	require.Len(t, missing, 1)
	assert.Equal(t, cfg.Layers[0].ID, missing[0].Key)
	assert.Contains(t, missing[0].Value, "did you mean CounterComponent?")
}

func TestConfigDetails(t *testing.T) {
	cfg := config.Demo()
	details := configDetails(cfg, demoSource)
	require.NotEmpty(t, details)
	assert.Equal(t, demoSource, details[0].Value)
	assert.Equal(t, "-", joinOrDash(nil))
	assert.Equal(t, "a, b", joinOrDash([]string{"a", "b"}))
}

func TestLoadConfigDemo(t *testing.T) {
	useDemo = true
	t.Cleanup(func() { useDemo = false })

	cfg, source, path, err := loadConfig()
	require.NoError(t, err)
	assert.NotEmpty(t, cfg.Layers)
	assert.Equal(t, demoSource, source)
	assert.Empty(t, path)
}

func TestLoadConfigExplicitMissingFileFails(t *testing.T) {
	configPath = t.TempDir() + "/missing.yaml"
	t.Cleanup(func() { configPath = "" })

	_, _, _, err := loadConfig()
	assert.Error(t, err)
}
