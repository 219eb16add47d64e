package store

import (
	"fmt"
	"time"

	"github.com/insterion/ev-log/internal/model"
	"github.com/insterion/ev-log/internal/schema"
)

// StateKey is the canonical key holding the serialized state. The value
// carries the schema history in its name; older keys below are upgraded
// on first load.
const StateKey = "ev_log_final_v4_tco_attachments_split"

// LegacyStateKeys are scanned in order when the canonical key is absent;
// the first key found wins and is migrated forward.
var LegacyStateKeys = []string{
	"ev_log_final_v4_tco_attachments",
	"ev_log_final_v3_tco",
	"ev_log_final_v2",
	"ev_log_final_v1",
	"ev_log_tabs_v3_edit_filter_same",
	"ev_log_tabs_v2_savedcol",
	"ev_log_tabs_v1",
	"ev_log_v3_stacked_prices_ice",
	"ev_log_v2_payback",
	"ev_log_v1",
}

// Auxiliary keys, outside the state document.
const (
	KeyLastBackup  = "ev_last_backup"
	KeyMonthFilter = "ev_month_filter"
	KeyLastTab     = "ev_last_tab"
)

// LoadState reads, sanitizes, and if necessary migrates the persisted
// state. The returned state is always valid; the error reports read or
// migration-write problems the caller may want to warn about, never a
// data-shape problem (malformed payloads sanitize or fall through).
func LoadState(kv KV) (model.State, error) {
	raw, ok, err := kv.Get(StateKey)
	if err != nil {
		return schema.DefaultState(), fmt.Errorf("reading state: %w", err)
	}
	if ok {
		if st, err := schema.Decode([]byte(raw)); err == nil {
			return st, nil
		}
		// Undecodable canonical payload: fall through to the legacy scan
		// rather than wiping anything.
	}

	for _, key := range LegacyStateKeys {
		raw, ok, err := kv.Get(key)
		if err != nil || !ok {
			continue
		}
		st, err := schema.Decode([]byte(raw))
		if err != nil {
			continue
		}
		if err := SaveState(kv, st); err != nil {
			return st, fmt.Errorf("migrating %s: %w", key, err)
		}
		return st, nil
	}

	return schema.DefaultState(), nil
}

// SaveState serializes and writes the state under the canonical key.
func SaveState(kv KV, st model.State) error {
	data, err := schema.Serialize(st)
	if err != nil {
		return err
	}
	if err := kv.Set(StateKey, string(data)); err != nil {
		return fmt.Errorf("writing state: %w", err)
	}
	return nil
}

// Persist adapts a KV to the session's persister contract.
type Persist struct {
	KV KV
}

// SaveState implements session.Persister.
func (p Persist) SaveState(st model.State) error {
	return SaveState(p.KV, st)
}

// LastBackup returns the recorded time of the last export/backup.
func LastBackup(kv KV) (time.Time, bool) {
	raw, ok, err := kv.Get(KeyLastBackup)
	if err != nil || !ok {
		return time.Time{}, false
	}
	t, err := time.Parse(time.RFC3339, raw)
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}

// SetLastBackup records a backup timestamp.
func SetLastBackup(kv KV, t time.Time) error {
	return kv.Set(KeyLastBackup, t.UTC().Format(time.RFC3339))
}

// LastPeriod returns the persisted month-filter token ("" when unset).
func LastPeriod(kv KV) string {
	raw, ok, err := kv.Get(KeyMonthFilter)
	if err != nil || !ok {
		return ""
	}
	return raw
}

// SetLastPeriod persists the month-filter token.
func SetLastPeriod(kv KV, period string) error {
	return kv.Set(KeyMonthFilter, period)
}

// LastTab returns the persisted TUI tab name ("" when unset).
func LastTab(kv KV) string {
	raw, ok, err := kv.Get(KeyLastTab)
	if err != nil || !ok {
		return ""
	}
	return raw
}

// SetLastTab persists the active TUI tab name.
func SetLastTab(kv KV, tab string) error {
	return kv.Set(KeyLastTab, tab)
}
