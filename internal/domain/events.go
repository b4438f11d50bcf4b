package domain

// EventType represents the type of domain event
type EventType string

// Event types
const (
	EventBookmarksChanged EventType = "BookmarksChanged"
	EventFindersChanged   EventType = "FindersChanged"
	EventPageChanged      EventType = "PageChanged"
	EventDataReloaded     EventType = "DataReloaded"
	EventSettingChanged   EventType = "SettingChanged"
	EventError            EventType = "Error"
)

// DomainEvent is the interface for all domain events
type DomainEvent interface {
	Type() EventType
}

// BookmarksChangedEvent is emitted after a bookmark is created or deleted
type BookmarksChangedEvent struct {
	Page string
}

func (e BookmarksChangedEvent) Type() EventType { return EventBookmarksChanged }

// FindersChangedEvent is emitted when the finder list is replaced
type FindersChangedEvent struct{}

func (e FindersChangedEvent) Type() EventType { return EventFindersChanged }

// PageChangedEvent is emitted when the active page switches
type PageChangedEvent struct {
	From string
	To   string
}

func (e PageChangedEvent) Type() EventType { return EventPageChanged }

// DataReloadedEvent is emitted when the data file was re-read from disk
type DataReloadedEvent struct {
	Path string
}

func (e DataReloadedEvent) Type() EventType { return EventDataReloaded }

// SettingChangedEvent is emitted after a settings field was persisted
type SettingChangedEvent struct {
	Key   string
	Value string
}

func (e SettingChangedEvent) Type() EventType { return EventSettingChanged }

// ErrorEvent is emitted when a background operation fails
type ErrorEvent struct {
	Message string
	Err     error
}

func (e ErrorEvent) Type() EventType { return EventError }
