package types

import (
	"strconv"
	"strings"

	"github.com/chaisql/nbt/internal/stringutil"
	"github.com/cockroachdb/errors"
)

// A Path represents the location of a value within a tree.
type Path []PathFragment

// PathFragment is a fragment of a path representing either an entry name or
// the index of a list or array element.
type PathFragment struct {
	Name  string
	Index int
	// IsIndex distinguishes the index 0 from an unset field.
	IsIndex bool
}

// NewPath creates a path from a list of entry names.
func NewPath(names ...string) Path {
	p := make(Path, len(names))
	for i, n := range names {
		p[i] = PathFragment{Name: n}
	}

	return p
}

// ParsePath parses a path of the form a.b[0]."quoted name".
// An empty string is the empty path.
func ParsePath(s string) (Path, error) {
	var p Path
	orig := s

	for len(s) > 0 {
		switch s[0] {
		case '.':
			if len(p) == 0 {
				return nil, errors.Errorf("invalid path %q: leading dot", orig)
			}
			s = s[1:]
			name, rest, err := parsePathName(s)
			if err != nil {
				return nil, errors.Wrapf(err, "invalid path %q", orig)
			}
			p = append(p, PathFragment{Name: name})
			s = rest
		case '[':
			end := strings.IndexByte(s, ']')
			if end < 0 {
				return nil, errors.Errorf("invalid path %q: missing ]", orig)
			}
			idx, err := strconv.Atoi(s[1:end])
			if err != nil || idx < 0 {
				return nil, errors.Errorf("invalid path %q: bad index %q", orig, s[1:end])
			}
			p = append(p, PathFragment{Index: idx, IsIndex: true})
			s = s[end+1:]
		default:
			if len(p) > 0 {
				return nil, errors.Errorf("invalid path %q: unexpected %q", orig, s[0])
			}
			name, rest, err := parsePathName(s)
			if err != nil {
				return nil, errors.Wrapf(err, "invalid path %q", orig)
			}
			p = append(p, PathFragment{Name: name})
			s = rest
		}
	}

	return p, nil
}

func parsePathName(s string) (name string, rest string, err error) {
	if len(s) > 0 && s[0] == '"' {
		for i := 1; i < len(s); i++ {
			switch s[i] {
			case '\\':
				i++
			case '"':
				name, ok := stringutil.Unquote(s[:i+1])
				if !ok {
					return "", "", errors.New("bad quoted name")
				}
				return name, s[i+1:], nil
			}
		}

		return "", "", errors.New("unterminated quoted name")
	}

	end := strings.IndexAny(s, ".[")
	if end < 0 {
		end = len(s)
	}
	if end == 0 {
		return "", "", errors.New("empty name")
	}

	return s[:end], s[end:], nil
}

// String representation of all the fragments of the path.
// It implements the Stringer interface.
func (p Path) String() string {
	var b strings.Builder

	for i := range p {
		if p[i].IsIndex {
			b.WriteString("[" + strconv.Itoa(p[i].Index) + "]")
			continue
		}

		if i != 0 {
			b.WriteByte('.')
		}
		if strings.ContainsAny(p[i].Name, ".[") || p[i].Name == "" || strings.HasPrefix(p[i].Name, `"`) {
			b.WriteString(stringutil.Quote(p[i].Name))
		} else {
			b.WriteString(p[i].Name)
		}
	}

	return b.String()
}

// IsEqual returns whether other is equal to p.
func (p Path) IsEqual(other Path) bool {
	if len(other) != len(p) {
		return false
	}

	for i := range p {
		if other[i] != p[i] {
			return false
		}
	}

	return true
}

// ExtendName clones the path and appends the entry name to it.
func (p Path) ExtendName(name string) Path {
	return append(p[:len(p):len(p)], PathFragment{Name: name})
}

// ExtendIndex clones the path and appends the index to it.
func (p Path) ExtendIndex(index int) Path {
	return append(p[:len(p):len(p)], PathFragment{Index: index, IsIndex: true})
}

// Get returns the value found by following p from v.
// The empty path returns v itself.
func (p Path) Get(v Value) (Value, error) {
	for i, f := range p {
		next, ok := f.lookup(v)
		if !ok {
			return nil, errors.Wrapf(ErrNotFound, "%s", p[:i+1])
		}
		v = next
	}

	return v, nil
}

func (f PathFragment) lookup(v Value) (Value, bool) {
	if !f.IsIndex {
		c, ok := v.(*Compound)
		if !ok {
			return nil, false
		}
		return c.Get(f.Name)
	}

	i := f.Index
	switch x := v.(type) {
	case *List:
		if i < x.Len() {
			return x.At(i), true
		}
	case ByteArrayValue:
		if i < len(x) {
			return ByteValue(x[i]), true
		}
	case IntArrayValue:
		if i < len(x) {
			return IntValue(x[i]), true
		}
	case LongArrayValue:
		if i < len(x) {
			return LongValue(x[i]), true
		}
	}

	return nil, false
}
