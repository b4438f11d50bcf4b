package config

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"keydash/internal/apperr"
	"keydash/internal/domain"
	"keydash/internal/eventbus"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}

func TestLoad_MissingFileReturnsDefaults(t *testing.T) {
	svc := NewConfigServiceAt(filepath.Join(t.TempDir(), "config.toml"))

	cfg, err := svc.Load()
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig().UI, cfg.UI)
	assert.Equal(t, "no matches", cfg.Labels.NoMatches)
}

func TestLoadFromPath_PartialFileKeepsDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	writeFile(t, path, `
data_file = "/tmp/marks.json"

[ui]
theme = "ocean"
columns = 6

[query]
interleave = true

[[themes]]
id = "ocean"
name = "Ocean"
accent = "39"
muted = "24"
`)

	cfg, err := NewConfigServiceAt(path).LoadFromPath(path)
	require.NoError(t, err)

	assert.Equal(t, "/tmp/marks.json", cfg.DataFile)
	assert.Equal(t, "ocean", cfg.UI.Theme)
	assert.Equal(t, 6, cfg.UI.Columns)
	assert.Equal(t, "m", cfg.UI.FontSize)
	assert.True(t, cfg.Query.Interleave)
	assert.Equal(t, 10, cfg.Query.FuzzyLimit)
	require.Len(t, cfg.Themes, 1)
	assert.Equal(t, "Ocean", cfg.Themes[0].Name)
}

func TestLoadFromPath_RejectsUnknownTheme(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	writeFile(t, path, "[ui]\ntheme = \"missing\"\n")

	_, err := NewConfigServiceAt(path).LoadFromPath(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "validation")
}

func TestLoadFromPath_RejectsColumnsOutOfRange(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	writeFile(t, path, "[ui]\ncolumns = 42\n")

	_, err := NewConfigServiceAt(path).LoadFromPath(path)
	require.Error(t, err)
}

func TestSaveToPath_RoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.toml")
	svc := NewConfigServiceAt(path)

	cfg := DefaultConfig()
	cfg.UI.Theme = "nord"
	cfg.Query.KeepOpenWhenEmpty = true
	require.NoError(t, svc.Save(cfg))

	loaded, err := svc.Load()
	require.NoError(t, err)
	assert.Equal(t, "nord", loaded.UI.Theme)
	assert.True(t, loaded.Query.KeepOpenWhenEmpty)
}

func TestSettings_SetPersistsAndPublishes(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	svc := NewConfigServiceAt(path)
	bus := eventbus.New()
	defer bus.Close()

	var mu sync.Mutex
	var events []eventbus.SettingChangedEvent
	got := make(chan struct{}, 4)
	bus.Subscribe(eventbus.EventSettingChanged, func(e eventbus.DomainEvent) {
		mu.Lock()
		events = append(events, e.(eventbus.SettingChangedEvent))
		mu.Unlock()
		got <- struct{}{}
	})

	settings := NewSettings(DefaultConfig(), svc, bus)
	require.NoError(t, settings.Set(context.Background(), KeyColumns, "3"))

	select {
	case <-got:
	case <-time.After(2 * time.Second):
		t.Fatal("no SettingChanged event")
	}

	assert.Equal(t, 3, settings.Snapshot().UI.Columns)

	loaded, err := svc.Load()
	require.NoError(t, err)
	assert.Equal(t, 3, loaded.UI.Columns)

	mu.Lock()
	defer mu.Unlock()
	assert.Equal(t, eventbus.SettingChangedEvent{Key: KeyColumns, Value: "3"}, events[0])
}

func TestSettings_SetRejectsInvalidValues(t *testing.T) {
	svc := NewConfigServiceAt(filepath.Join(t.TempDir(), "config.toml"))
	settings := NewSettings(DefaultConfig(), svc, nil)
	ctx := context.Background()

	err := settings.Set(ctx, KeyColumns, "many")
	assert.True(t, errors.Is(err, apperr.ErrInvalid))

	err = settings.Set(ctx, KeyTheme, "does-not-exist")
	assert.True(t, errors.Is(err, apperr.ErrInvalid))

	err = settings.Set(ctx, "volume", "11")
	assert.True(t, errors.Is(err, apperr.ErrInvalid))

	assert.Equal(t, "dark", settings.Snapshot().UI.Theme, "rejected values must not be applied")
}

func TestSettings_ThemesIncludeCustom(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Themes = []domain.Theme{{ID: "ocean", Name: "Ocean"}, {ID: "dark", Name: "Darker"}}
	settings := NewSettings(cfg, NewConfigServiceAt(filepath.Join(t.TempDir(), "c.toml")), nil)

	themes := settings.Themes()
	assert.Len(t, themes, len(domain.BuiltinThemes)+1)
	assert.Equal(t, "Darker", themes[0].Name)
	assert.Equal(t, "ocean", themes[len(themes)-1].ID)
}
