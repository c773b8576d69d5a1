// Package symbols tracks the session variables consulted and mutated by
// commands and read by the expression evaluator.
package symbols

import (
	"errors"
	"sort"
	"strings"
	"sync"

	"github.com/point-o/sham/internal/value"
)

// ErrBlankName is returned by Set for empty or all-whitespace names.
var ErrBlankName = errors.New("symbols: variable name is blank")

// Table maps variable names to Values. The table, not its callers, owns
// locking: a single Table may be shared across goroutines.
type Table struct {
	mu    sync.RWMutex
	store map[string]value.Value
}

func NewTable() *Table {
	return &Table{store: make(map[string]value.Value)}
}

// Set stores v under name, replacing any previous binding. Blank names
// are rejected.
func (t *Table) Set(name string, v value.Value) error {
	if strings.TrimSpace(name) == "" {
		return ErrBlankName
	}
	t.mu.Lock()
	t.store[name] = v
	t.mu.Unlock()
	return nil
}

// Get returns the bound Value. The second result distinguishes a missing
// name from a variable that holds a Null value.
func (t *Table) Get(name string) (value.Value, bool) {
	t.mu.RLock()
	v, ok := t.store[name]
	t.mu.RUnlock()
	return v, ok
}

// Delete removes a binding, reporting whether it existed.
func (t *Table) Delete(name string) bool {
	t.mu.Lock()
	_, ok := t.store[name]
	delete(t.store, name)
	t.mu.Unlock()
	return ok
}

// Names returns all bound names in sorted order.
func (t *Table) Names() []string {
	t.mu.RLock()
	names := make([]string, 0, len(t.store))
	for name := range t.store {
		names = append(names, name)
	}
	t.mu.RUnlock()
	sort.Strings(names)
	return names
}

// Len reports the number of bindings.
func (t *Table) Len() int {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return len(t.store)
}

// Snapshot returns a copy of the bindings, for persistence.
func (t *Table) Snapshot() map[string]value.Value {
	t.mu.RLock()
	defer t.mu.RUnlock()
	snap := make(map[string]value.Value, len(t.store))
	for name, v := range t.store {
		snap[name] = v
	}
	return snap
}

// Replace swaps the table's contents for the given bindings. Used when
// restoring a persisted session.
func (t *Table) Replace(vars map[string]value.Value) {
	t.mu.Lock()
	t.store = make(map[string]value.Value, len(vars))
	for name, v := range vars {
		t.store[name] = v
	}
	t.mu.Unlock()
}
