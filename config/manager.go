package config

import (
	"context"
	"errors"
	"fmt"
)

// User-visible configuration keys.
const (
	KeyAPIURL            = "api.url"
	KeyAPIUsername       = "api.username"
	KeyAPIPassword       = "api.password"
	KeyPreferredCurrency = "user-settings.preferred-currency"
)

// Sensitive is displayed instead of the value of a sensitive entry.
const Sensitive = "<sensitive>"

var (
	ErrUnknownKey  = errors.New("unknown configuration key")
	ErrNotSettable = errors.New("configuration key cannot be set")
)

// Getter reads a value held outside the local configuration, e.g. on the server.
type Getter func(ctx context.Context) (string, error)

// Setter writes a value held outside the local configuration.
type Setter func(ctx context.Context, value string) error

// Entry is a configuration key as shown by "wellets config".
type Entry struct {
	Key         string
	Description string
	Settable    bool
	ServerSide  bool
	Sensitive   bool

	// Getter and Setter replace the local value when set.
	Getter Getter
	Setter Setter

	value string
}

// NewEntry returns an entry holding value locally.
func NewEntry(key, value, description string) *Entry {
	return &Entry{Key: key, Description: description, value: value}
}

// Value returns the current value of the entry.
func (e *Entry) Value(ctx context.Context) (string, error) {
	if e.Getter != nil {
		return e.Getter(ctx)
	}
	return e.value, nil
}

// Display returns the value as it can be shown: sensitive values are masked.
func (e *Entry) Display(ctx context.Context) (string, error) {
	if e.Sensitive {
		return Sensitive, nil
	}
	return e.Value(ctx)
}

// SetValue changes the value. Only settable entries can be changed.
func (e *Entry) SetValue(ctx context.Context, value string) error {
	if !e.Settable {
		return fmt.Errorf("%w: %q", ErrNotSettable, e.Key)
	}
	if e.Setter != nil {
		return e.Setter(ctx, value)
	}
	e.value = value
	return nil
}

func (e *Entry) String() string { return e.Key + "=" + e.value }

// Filter selects entries in Manager.Keys. A false field does not filter.
type Filter struct {
	Settable   bool
	ServerSide bool
}

func (f Filter) match(e *Entry) bool {
	return (!f.Settable || e.Settable) && (!f.ServerSide || e.ServerSide)
}

// Manager is an ordered registry of configuration entries.
type Manager struct {
	entries []*Entry
}

// NewManager registers the standard entries. The preferred currency lives
// server-side and is accessed through get and set.
func NewManager(c Config, get Getter, set Setter) *Manager {
	m := new(Manager)
	m.Add(NewEntry(KeyAPIURL, c.APIURL, "URL of the Wellets API"))
	m.Add(NewEntry(KeyAPIUsername, c.APIUsername, "user name sent to the Wellets API"))
	password := NewEntry(KeyAPIPassword, c.APIPassword, "password sent to the Wellets API")
	password.Sensitive = true
	m.Add(password)
	m.Add(&Entry{
		Key:         KeyPreferredCurrency,
		Description: "currency used to display countervalues",
		Settable:    true,
		ServerSide:  true,
		Getter:      get,
		Setter:      set,
	})
	return m
}

// Add registers e, replacing any entry with the same key.
func (m *Manager) Add(e *Entry) {
	for i, x := range m.entries {
		if x.Key == e.Key {
			m.entries[i] = e
			return
		}
	}
	m.entries = append(m.entries, e)
}

// Entries returns all the entries in registration order.
func (m *Manager) Entries() []*Entry { return m.entries }

// Keys returns the keys of the entries matching f, in registration order.
func (m *Manager) Keys(f Filter) []string {
	var keys []string
	for _, e := range m.entries {
		if f.match(e) {
			keys = append(keys, e.Key)
		}
	}
	return keys
}

// Entry returns the entry for key.
func (m *Manager) Entry(key string) (*Entry, bool) {
	for _, e := range m.entries {
		if e.Key == key {
			return e, true
		}
	}
	return nil, false
}

func (m *Manager) Has(key string) bool {
	_, ok := m.Entry(key)
	return ok
}

// Get returns the value of key, or ErrUnknownKey.
func (m *Manager) Get(ctx context.Context, key string) (string, error) {
	e, ok := m.Entry(key)
	if !ok {
		return "", fmt.Errorf("%w: %q", ErrUnknownKey, key)
	}
	return e.Value(ctx)
}

// Set changes the value of key.
func (m *Manager) Set(ctx context.Context, key, value string) error {
	e, ok := m.Entry(key)
	if !ok {
		return fmt.Errorf("%w: %q", ErrUnknownKey, key)
	}
	return e.SetValue(ctx, value)
}
