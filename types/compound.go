package types

import (
	errs "github.com/chaisql/nbt/errors"
	"github.com/cockroachdb/errors"
)

// Entry is a named value of a compound.
type Entry struct {
	Name  string
	Value Value
}

// Compound stores named values in insertion order. Names are unique.
// A nil *Compound reads as an empty compound.
type Compound struct {
	entries []Entry
	index   map[string]int
}

// NewCompound creates an empty compound.
func NewCompound() *Compound {
	return &Compound{
		index: make(map[string]int),
	}
}

func (c *Compound) Kind() Kind { return TagCompound }
func (c *Compound) V() any     { return c }

// Add sets the value of name and returns c, to chain calls when building
// literals. See Set.
func (c *Compound) Add(name string, v Value) *Compound {
	c.Set(name, v)
	return c
}

// Insert appends a new entry. It fails with ErrDuplicateName if name
// is already present.
func (c *Compound) Insert(name string, v Value) error {
	if _, ok := c.index[name]; ok {
		return errors.Wrapf(errs.ErrDuplicateName, "%q", name)
	}

	c.append(name, v)
	return nil
}

// Set replaces the value of an existing entry, keeping its position,
// or appends a new entry.
func (c *Compound) Set(name string, v Value) {
	if i, ok := c.index[name]; ok {
		c.entries[i].Value = v
		return
	}

	c.append(name, v)
}

func (c *Compound) append(name string, v Value) {
	if c.index == nil {
		c.index = make(map[string]int)
	}

	c.index[name] = len(c.entries)
	c.entries = append(c.entries, Entry{Name: name, Value: v})
}

// Get returns the value of the entry called name.
func (c *Compound) Get(name string) (Value, bool) {
	if c == nil {
		return nil, false
	}

	i, ok := c.index[name]
	if !ok {
		return nil, false
	}

	return c.entries[i].Value, true
}

// Has reports whether the compound contains an entry called name.
func (c *Compound) Has(name string) bool {
	if c == nil {
		return false
	}

	_, ok := c.index[name]
	return ok
}

// Delete removes an entry. It returns false if the entry doesn't exist.
func (c *Compound) Delete(name string) bool {
	i, ok := c.index[name]
	if !ok {
		return false
	}

	c.entries = append(c.entries[:i], c.entries[i+1:]...)
	delete(c.index, name)
	for j := i; j < len(c.entries); j++ {
		c.index[c.entries[j].Name] = j
	}

	return true
}

// Iterate goes through all the entries in order and calls fn for each of them.
// If fn returns an error, the iteration stops and the error is returned.
func (c *Compound) Iterate(fn func(name string, v Value) error) error {
	if c == nil {
		return nil
	}

	for _, e := range c.entries {
		if err := fn(e.Name, e.Value); err != nil {
			return err
		}
	}

	return nil
}

// Len returns the number of entries.
func (c *Compound) Len() int {
	if c == nil {
		return 0
	}

	return len(c.entries)
}

// Names returns the entry names in order.
func (c *Compound) Names() []string {
	if c == nil {
		return []string{}
	}

	names := make([]string, len(c.entries))
	for i, e := range c.entries {
		names[i] = e.Name
	}

	return names
}

// Entries returns a copy of the entries in order.
func (c *Compound) Entries() []Entry {
	return append([]Entry(nil), c.entries...)
}
