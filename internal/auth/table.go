package auth

import (
	"errors"
	"fmt"
	"sort"
	"strings"
	"sync/atomic"
)

// DefaultChannel is the channel a bare token (no ":channel" suffix)
// authorizes.
const DefaultChannel = "default"

// ErrEmptyTable is returned when the configuration string yields no
// usable credentials. This is fatal at startup.
var ErrEmptyTable = errors.New("auth: credential table is empty")

// Table maps credentials to the single channel each one authorizes.
// Immutable after Parse; safe for concurrent reads without locking.
type Table struct {
	byToken map[string]string
}

// Parse builds a Table from a comma-separated entry list. Entries are
// scanned left to right; a token seen again overwrites its earlier
// mapping. Entries that are empty after trimming are skipped. An entry
// with a colon but an empty token or channel is a configuration error.
func Parse(raw string) (*Table, error) {
	byToken := make(map[string]string)
	for _, entry := range strings.Split(raw, ",") {
		entry = strings.TrimSpace(entry)
		if entry == "" {
			continue
		}
		token, channel := entry, DefaultChannel
		if i := strings.IndexByte(entry, ':'); i >= 0 {
			token = strings.TrimSpace(entry[:i])
			channel = strings.TrimSpace(entry[i+1:])
			if token == "" || channel == "" {
				return nil, fmt.Errorf("auth: malformed entry %q", entry)
			}
		}
		byToken[token] = channel
	}
	if len(byToken) == 0 {
		return nil, ErrEmptyTable
	}
	return &Table{byToken: byToken}, nil
}

// Authorize returns the channel the credential is assigned to.
func (t *Table) Authorize(credential string) (string, bool) {
	ch, ok := t.byToken[credential]
	return ch, ok
}

// IsAuthorizedFor reports whether the credential is assigned to exactly
// the given channel. Channel names are case-sensitive.
func (t *Table) IsAuthorizedFor(credential, channel string) bool {
	ch, ok := t.byToken[credential]
	return ok && ch == channel
}

// Credentials returns the number of usable credentials.
func (t *Table) Credentials() int { return len(t.byToken) }

// Channels returns the sorted set of channels referenced by the table.
func (t *Table) Channels() []string {
	seen := make(map[string]struct{}, len(t.byToken))
	for _, ch := range t.byToken {
		seen[ch] = struct{}{}
	}
	out := make([]string, 0, len(seen))
	for ch := range seen {
		out = append(out, ch)
	}
	sort.Strings(out)
	return out
}

// Store holds the active Table and swaps it atomically on reload.
type Store struct {
	table atomic.Pointer[Table]
}

// NewStore creates a Store serving the given table.
func NewStore(t *Table) *Store {
	s := &Store{}
	s.table.Store(t)
	return s
}

// Current returns the active table.
func (s *Store) Current() *Table { return s.table.Load() }

// Swap replaces the active table. In-flight readers keep the table they
// already loaded.
func (s *Store) Swap(t *Table) { s.table.Store(t) }

// Authorize delegates to the active table.
func (s *Store) Authorize(credential string) (string, bool) {
	return s.Current().Authorize(credential)
}

// IsAuthorizedFor delegates to the active table.
func (s *Store) IsAuthorizedFor(credential, channel string) bool {
	return s.Current().IsAuthorizedFor(credential, channel)
}
