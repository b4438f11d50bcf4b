package ui

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"keydash/internal/eventbus"
	"keydash/internal/query"
)

type recordingBus struct {
	mu     sync.Mutex
	events []eventbus.DomainEvent
}

func (b *recordingBus) Publish(e eventbus.DomainEvent) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.events = append(b.events, e)
}

func (b *recordingBus) Subscribe(eventbus.EventType, eventbus.EventHandler) func() { return func() {} }
func (b *recordingBus) Close()                                                     {}

func (b *recordingBus) snapshot() []eventbus.DomainEvent {
	b.mu.Lock()
	defer b.mu.Unlock()
	return append([]eventbus.DomainEvent(nil), b.events...)
}

type recordingSettings struct {
	key, value string
}

func (s *recordingSettings) Set(ctx context.Context, key, value string) error {
	s.key, s.value = key, value
	return nil
}

func TestSink_NavigateFailurePublishesError(t *testing.T) {
	bus := &recordingBus{}
	s := NewSink(nil, bus, nil)
	s.SetOpener(func(string) error { return errors.New("no browser") })

	s.Navigate("https://example.com", true)

	require.Eventually(t, func() bool { return len(bus.snapshot()) == 1 }, time.Second, 10*time.Millisecond)
	ev, ok := bus.snapshot()[0].(eventbus.ErrorEvent)
	require.True(t, ok)
	assert.Contains(t, ev.Message, "https://example.com")
}

func TestSink_SetSettingDelegates(t *testing.T) {
	settings := &recordingSettings{}
	s := NewSink(settings, nil, nil)

	require.NoError(t, s.SetSetting(context.Background(), query.SettingTheme, "nord"))
	assert.Equal(t, "theme", settings.key)
	assert.Equal(t, "nord", settings.value)

	assert.NoError(t, NewSink(nil, nil, nil).SetSetting(context.Background(), "theme", "x"))
}

func TestSink_CallbacksAreOptional(t *testing.T) {
	s := NewSink(nil, nil, nil)
	assert.NotPanics(t, func() {
		s.ApplySetting("theme", "nord")
		s.OpenCreationForm(query.CreationContext{PageID: "home"})
	})

	var got query.CreationContext
	s.onCreate = func(c query.CreationContext) { got = c }
	s.OpenCreationForm(query.CreationContext{PageID: "home", Name: "Go"})
	assert.Equal(t, "Go", got.Name)
}
