package types

// A Document is a complete NBT tree: a single named root compound.
// The root name is commonly empty.
type Document struct {
	Name string
	Root *Compound
}

// NewDocument creates a document with an empty root compound.
func NewDocument(name string) *Document {
	return &Document{
		Name: name,
		Root: NewCompound(),
	}
}

// Equal reports whether d and other have the same root name and
// structurally equal roots.
func (d *Document) Equal(other *Document) bool {
	if d == nil || other == nil {
		return d == other
	}

	return d.Name == other.Name && Equal(d.Root, other.Root)
}

// Get returns the value found at the given path from the root.
func (d *Document) Get(path string) (Value, error) {
	p, err := ParsePath(path)
	if err != nil {
		return nil, err
	}

	return p.Get(d.Root)
}
