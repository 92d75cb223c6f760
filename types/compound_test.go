package types_test

import (
	"math"
	"testing"

	"github.com/chaisql/nbt/errors"
	"github.com/chaisql/nbt/types"
	cerrors "github.com/cockroachdb/errors"
	"github.com/stretchr/testify/require"
)

func TestCompound(t *testing.T) {
	c := types.NewCompound()
	require.Equal(t, 0, c.Len())

	require.NoError(t, c.Insert("a", types.IntValue(1)))
	require.NoError(t, c.Insert("b", types.StringValue("x")))
	require.NoError(t, c.Insert("c", types.ByteValue(2)))

	err := c.Insert("a", types.IntValue(2))
	require.True(t, cerrors.Is(err, errors.ErrDuplicateName))

	c.Set("a", types.LongValue(3))
	require.Equal(t, []string{"a", "b", "c"}, c.Names())

	v, ok := c.Get("a")
	require.True(t, ok)
	require.Equal(t, types.LongValue(3), v)

	_, ok = c.Get("z")
	require.False(t, ok)

	require.True(t, c.Delete("b"))
	require.False(t, c.Delete("b"))
	require.False(t, c.Has("b"))
	require.Equal(t, []string{"a", "c"}, c.Names())

	v, ok = c.Get("c")
	require.True(t, ok)
	require.Equal(t, types.ByteValue(2), v)

	var names []string
	err = c.Iterate(func(name string, v types.Value) error {
		names = append(names, name)
		return nil
	})
	require.NoError(t, err)
	require.Equal(t, []string{"a", "c"}, names)

	entries := c.Entries()
	require.Len(t, entries, 2)
	require.Equal(t, "c", entries[1].Name)
}

func TestZeroCompound(t *testing.T) {
	var c types.Compound
	c.Set("a", types.IntValue(1))
	require.True(t, c.Has("a"))
}

func TestList(t *testing.T) {
	l, err := types.NewList(types.TagInt, types.IntValue(1), types.IntValue(2))
	require.NoError(t, err)
	require.Equal(t, types.TagInt, l.Elem())
	require.Equal(t, 2, l.Len())
	require.Equal(t, types.IntValue(2), l.At(1))

	err = l.Append(types.ShortValue(3))
	require.True(t, errors.IsTypeMismatch(err))
	require.Equal(t, 2, l.Len())

	_, err = types.NewList(types.TagString, types.IntValue(1))
	require.True(t, errors.IsTypeMismatch(err))

	_, err = types.NewList(types.Kind(20))
	require.True(t, errors.IsInvalidTagKind(err))

	empty, err := types.NewList(types.TagEnd)
	require.NoError(t, err)
	require.True(t, errors.IsTypeMismatch(empty.Append(types.IntValue(1))))
}

func TestEqual(t *testing.T) {
	nan := math.Float64frombits(0x7ff8000000000001)

	tests := []struct {
		name  string
		a, b  types.Value
		equal bool
	}{
		{"same int", types.IntValue(1), types.IntValue(1), true},
		{"different int", types.IntValue(1), types.IntValue(2), false},
		{"different kinds", types.IntValue(1), types.LongValue(1), false},
		{"nan", types.DoubleValue(nan), types.DoubleValue(nan), true},
		{"signed zero", types.FloatValue(0), types.FloatValue(float32(math.Copysign(0, -1))), false},
		{"byte arrays", types.ByteArrayValue{1, 2}, types.ByteArrayValue{1, 2}, true},
		{"int arrays", types.IntArrayValue{1, 2}, types.IntArrayValue{1}, false},
		{"long arrays", types.LongArrayValue{}, types.LongArrayValue(nil), true},
		{"lists", types.MustNewList(types.TagInt, types.IntValue(1)), types.MustNewList(types.TagInt, types.IntValue(1)), true},
		{"list order", types.MustNewList(types.TagInt, types.IntValue(1), types.IntValue(2)), types.MustNewList(types.TagInt, types.IntValue(2), types.IntValue(1)), false},
		{"empty lists", types.MustNewList(types.TagEnd), types.MustNewList(types.TagInt), true},
		{"compound order", types.NewCompound().Add("a", types.IntValue(1)).Add("b", types.IntValue(2)),
			types.NewCompound().Add("b", types.IntValue(2)).Add("a", types.IntValue(1)), true},
		{"compound size", types.NewCompound().Add("a", types.IntValue(1)),
			types.NewCompound().Add("a", types.IntValue(1)).Add("b", types.IntValue(2)), false},
		{"nested", types.NewCompound().Add("a", types.NewCompound().Add("x", types.StringValue("y"))),
			types.NewCompound().Add("a", types.NewCompound().Add("x", types.StringValue("z"))), false},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			require.Equal(t, test.equal, types.Equal(test.a, test.b))
			require.Equal(t, test.equal, types.Equal(test.b, test.a))
		})
	}
}

func TestDocumentEqual(t *testing.T) {
	a := types.NewDocument("hello")
	a.Root.Set("name", types.StringValue("Bananrama"))
	b := types.NewDocument("hello")
	b.Root.Set("name", types.StringValue("Bananrama"))
	require.True(t, a.Equal(b))

	b.Name = ""
	require.False(t, a.Equal(b))
}

func TestNilContainers(t *testing.T) {
	var c *types.Compound
	require.Zero(t, c.Len())
	require.Empty(t, c.Names())
	require.False(t, c.Has("a"))
	_, ok := c.Get("a")
	require.False(t, ok)
	require.Equal(t, "{}", c.String())

	var l *types.List
	require.Zero(t, l.Len())
	require.Equal(t, types.TagEnd, l.Elem())
	require.Empty(t, l.Values())
	require.Equal(t, "[]", l.String())

	require.True(t, types.Equal(c, types.NewCompound()))
	require.True(t, types.Equal(types.NewCompound(), c))
	require.False(t, types.Equal(c, types.NewCompound().Add("a", types.ByteValue(1))))
	require.True(t, types.Equal(l, types.MustNewList(types.TagInt)))
	require.False(t, types.Equal(types.MustNewList(types.TagInt, types.IntValue(1)), l))

	nested := types.NewCompound().Add("c", c).Add("l", l)
	require.True(t, types.Equal(nested, types.NewCompound().Add("c", types.NewCompound()).Add("l", types.MustNewList(types.TagEnd))))

	doc := &types.Document{Name: "x"}
	require.True(t, doc.Equal(types.NewDocument("x")))
	require.True(t, types.NewDocument("x").Equal(doc))
	require.False(t, doc.Equal(types.NewDocument("y")))
}
