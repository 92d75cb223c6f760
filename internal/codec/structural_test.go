package codec_test

import (
	"math"
	"strings"
	"testing"

	errs "github.com/chaisql/nbt/errors"
	"github.com/chaisql/nbt/internal/codec"
	"github.com/chaisql/nbt/internal/testutil/assert"
	"github.com/chaisql/nbt/record"
	"github.com/chaisql/nbt/types"
	"github.com/cockroachdb/errors"
	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"
)

type item struct {
	ID    string
	Count int8
	Tags  map[string]int32
}

func (i *item) Fields() []record.Field {
	return []record.Field{
		record.String("id", &i.ID).Require(),
		record.Byte("Count", &i.Count),
		record.Map("tags", &i.Tags, record.IntElem),
	}
}

type player struct {
	Name      string
	Score     int32
	XP        int64
	Level     int16
	Health    float32
	Speed     float64
	Alive     bool
	Pos       []float64
	Inventory []item
	Matrix    [][]int32
	Spawn     *item
	Extra     types.Value
	Data      []int8
	Blocks    []int32
	States    []int64
	Names     []string
}

func (p *player) Fields() []record.Field {
	return []record.Field{
		record.String("name", &p.Name).Require(),
		record.Int("score", &p.Score),
		record.Long("xp", &p.XP),
		record.Short("level", &p.Level),
		record.Float("health", &p.Health),
		record.Double("speed", &p.Speed),
		record.Bool("alive", &p.Alive),
		record.DoubleList("pos", &p.Pos),
		record.CompoundList[item]("inventory", &p.Inventory),
		record.List("matrix", &p.Matrix, record.ListElem(record.IntElem)),
		record.Optional("spawn", &p.Spawn, record.CompoundElem[item]()),
		record.Value("extra", &p.Extra),
		record.ByteArray("data", &p.Data),
		record.IntArray("blocks", &p.Blocks),
		record.LongArray("states", &p.States),
		record.StringList("names", &p.Names),
	}
}

func samplePlayer() player {
	return player{
		Name:   "Steve",
		Score:  287454020,
		XP:     math.MaxInt64,
		Level:  -3,
		Health: 19.5,
		Speed:  0.4931287132182315,
		Alive:  true,
		Pos:    []float64{1, 2.5, -3},
		Inventory: []item{
			{ID: "minecraft:stone", Count: 64, Tags: map[string]int32{}},
			{ID: "minecraft:torch", Count: 3, Tags: map[string]int32{"b": 2, "a": 1}},
		},
		Matrix: [][]int32{{1, 2}, {}, {3}},
		Spawn:  &item{ID: "bed", Tags: map[string]int32{}},
		Extra:  types.StringValue("anything"),
		Data:   []int8{-1, 0, 1},
		Blocks: []int32{math.MinInt32},
		States: []int64{},
		Names:  []string{"a", "b"},
	}
}

func TestRecordRoundTrip(t *testing.T) {
	p := samplePlayer()

	data, err := encodeRecord("player", &p, codec.Options{})
	require.NoError(t, err)

	var got player
	name, err := decodeRecord(data, &got, codec.Options{})
	require.NoError(t, err)
	require.Equal(t, "player", name)
	require.Empty(t, cmp.Diff(p, got))

	// the same bytes decoded as a tree
	doc, err := decodeTree(data, codec.Options{})
	require.NoError(t, err)

	v, err := doc.Get("inventory[1].id")
	require.NoError(t, err)
	require.Equal(t, types.StringValue("minecraft:torch"), v)

	v, err = doc.Get("alive")
	require.NoError(t, err)
	require.Equal(t, types.ByteValue(1), v)

	tags, err := doc.Get("inventory[1].tags")
	require.NoError(t, err)
	c, err := types.AsCompound(tags)
	require.NoError(t, err)
	require.Equal(t, []string{"a", "b"}, c.Names())

	matrix, err := doc.Get("matrix")
	require.NoError(t, err)
	require.Equal(t, types.TagList, matrix.(*types.List).Elem())
	require.Equal(t, types.TagInt, matrix.(*types.List).At(1).(*types.List).Elem())
}

func TestRecordOmit(t *testing.T) {
	p := player{Name: "Alex"}

	data, err := encodeRecord("", &p, codec.Options{})
	require.NoError(t, err)

	doc, err := decodeTree(data, codec.Options{})
	require.NoError(t, err)
	require.False(t, doc.Root.Has("spawn"))
	require.False(t, doc.Root.Has("extra"))

	// nil slices are written as empty lists
	v, err := doc.Get("pos")
	require.NoError(t, err)
	require.Equal(t, 0, v.(*types.List).Len())
	require.Equal(t, types.TagDouble, v.(*types.List).Elem())

	var got player
	_, err = decodeRecord(data, &got, codec.Options{})
	require.NoError(t, err)
	require.Nil(t, got.Spawn)
	require.Nil(t, got.Extra)
	require.Equal(t, []float64{}, got.Pos)
}

type named struct {
	Name string
}

func (n *named) Fields() []record.Field {
	return []record.Field{
		record.String("name", &n.Name).Require(),
	}
}

func TestRecordBananrama(t *testing.T) {
	var n named
	name, err := decodeRecord(bananrama, &n, codec.Options{})
	require.NoError(t, err)
	require.Equal(t, "", name)
	require.Equal(t, "Bananrama", n.Name)

	data, err := encodeRecord("", &n, codec.Options{})
	require.NoError(t, err)
	require.Equal(t, bananrama, data)
}

type wololo struct {
	CCC  int32
	Name string
}

func (w *wololo) Fields() []record.Field {
	return []record.Field{
		record.Int("ccc", &w.CCC),
		record.String("name", &w.Name),
	}
}

type wololos struct {
	List []wololo
}

func (w *wololos) Fields() []record.Field {
	return []record.Field{
		record.CompoundList[wololo]("list", &w.List),
	}
}

func TestRecordListOfCompounds(t *testing.T) {
	var b builder
	b.named(types.TagCompound, "")
	b.named(types.TagList, "list").kind(types.TagCompound).i32(2)
	for i := 0; i < 2; i++ {
		b.named(types.TagInt, "ccc").i32(287454020)
		b.named(types.TagString, "name").str("wololo")
		b.end()
	}
	b.end()

	var w wololos
	_, err := decodeRecord(b.bytes(), &w, codec.Options{})
	require.NoError(t, err)
	require.Equal(t, []wololo{{287454020, "wololo"}, {287454020, "wololo"}}, w.List)

	data, err := encodeRecord("", &w, codec.Options{})
	require.NoError(t, err)
	require.Equal(t, b.bytes(), data)
}

func TestRecordForwardCompatibility(t *testing.T) {
	data := encodeTree(t, richDocument())

	type small struct {
		Short int16
		Long  []int64
		Ham   string
	}
	var s small
	rec := record.FieldList{
		record.Short("short", &s.Short),
		record.LongList("list_test_long", &s.Long),
		record.Compound("nested compound test", record.FieldList{
			record.Compound("ham", record.FieldList{
				record.String("name", &s.Ham),
			}),
		}),
		record.Int("absent", new(int32)),
	}

	name, err := decodeRecord(data, rec, codec.Options{})
	require.NoError(t, err)
	require.Equal(t, "hello world", name)
	require.Equal(t, small{Short: 32767, Long: []int64{11, 12, 13, 14, 15}, Ham: "Hampus"}, s)

	// trailing documents are left unread
	_, err = decodeRecord(append(data, bananrama...), rec, codec.Options{})
	require.NoError(t, err)
}

func TestRecordMissingField(t *testing.T) {
	data := new(builder).named(types.TagCompound, "").named(types.TagInt, "other").i32(1).end().bytes()

	var n named
	_, err := decodeRecord(data, &n, codec.Options{})
	require.True(t, errs.IsMissingField(err))

	var missing *errs.MissingFieldError
	require.ErrorAs(t, err, &missing)
	require.Equal(t, "name", missing.Name)
}

func TestRecordTypeMismatch(t *testing.T) {
	tests := []struct {
		name     string
		data     []byte
		rec      record.Record
		expected string
		found    string
	}{
		{"scalar",
			new(builder).named(types.TagCompound, "").named(types.TagShort, "ccc").i16(1).end().bytes(),
			&wololo{}, "TAG_Int", "TAG_Short"},
		{"list element",
			new(builder).named(types.TagCompound, "").named(types.TagList, "list").kind(types.TagInt).i32(1).i32(1).end().bytes(),
			&wololos{}, "TAG_Compound", "TAG_Int"},
		{"list instead of compound",
			new(builder).named(types.TagCompound, "").named(types.TagList, "list").kind(types.TagEnd).i32(0).end().bytes(),
			record.FieldList{record.Compound("list", &named{})}, "TAG_Compound", "TAG_List"},
		{"map value",
			new(builder).named(types.TagCompound, "").
				named(types.TagList, "inventory").kind(types.TagCompound).i32(1).
				named(types.TagString, "id").str("x").
				named(types.TagCompound, "tags").named(types.TagLong, "a").i64(1).end().
				end().end().bytes(),
			&player{}, "TAG_Int", "TAG_Long"},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			_, err := decodeRecord(test.data, test.rec, codec.Options{})
			var mismatch *errs.TypeMismatchError
			require.ErrorAs(t, err, &mismatch)
			require.Equal(t, test.expected, mismatch.Expected)
			require.Equal(t, test.found, mismatch.Found)
		})
	}
}

func TestRecordEmptyList(t *testing.T) {
	data := new(builder).named(types.TagCompound, "").named(types.TagList, "list").kind(types.TagEnd).i32(0).end().bytes()

	w := wololos{List: []wololo{{CCC: 1}}}
	_, err := decodeRecord(data, &w, codec.Options{})
	require.NoError(t, err)
	require.Equal(t, []wololo{}, w.List)
}

func TestRecordAnyKind(t *testing.T) {
	data := encodeTree(t, richDocument())

	var v types.Value
	var kind types.Kind
	rec := record.FieldList{
		record.Value("nested compound test", &v),
		{
			Name: "bytes",
			Kind: record.AnyKind,
			Decode: func(d record.Decoder) error {
				kind = d.Kind()
				return nil
			},
		},
	}

	_, err := decodeRecord(data, rec, codec.Options{})
	require.NoError(t, err)
	require.Equal(t, types.TagByteArray, kind)

	ham, err := types.Path{{Name: "ham"}, {Name: "name"}}.Get(v)
	require.NoError(t, err)
	require.Equal(t, types.StringValue("Hampus"), ham)
}

func TestRecordDuplicateNames(t *testing.T) {
	data := new(builder).
		named(types.TagCompound, "").
		named(types.TagString, "name").str("first").
		named(types.TagString, "name").str("second").
		end().bytes()

	var n named
	_, err := decodeRecord(data, &n, codec.Options{})
	require.NoError(t, err)
	require.Equal(t, "second", n.Name)

	_, err = decodeRecord(data, &n, codec.Options{RejectDuplicateNames: true})
	assert.ErrorIs(t, err, errs.ErrDuplicateName)
}

func TestRecordSkippedDepth(t *testing.T) {
	var b builder
	b.named(types.TagCompound, "")
	b.named(types.TagString, "name").str("x")
	b.named(types.TagCompound, "deep")
	for i := 0; i < 8; i++ {
		b.named(types.TagCompound, "c")
	}
	for i := 0; i < 10; i++ {
		b.end()
	}

	var n named
	_, err := decodeRecord(b.bytes(), &n, codec.Options{MaxDepth: 10})
	require.NoError(t, err)

	_, err = decodeRecord(b.bytes(), &n, codec.Options{MaxDepth: 9})
	assert.ErrorIs(t, err, errs.ErrDepthLimitExceeded)
}

type node struct {
	Value int32
	Next  *node
}

func (n *node) Fields() []record.Field {
	return []record.Field{
		record.Int("value", &n.Value),
		record.Optional("next", &n.Next, record.CompoundElem[node]()),
	}
}

func TestRecordRecursive(t *testing.T) {
	head := &node{}
	cur := head
	for i := 1; i < 10; i++ {
		cur.Next = &node{Value: int32(i)}
		cur = cur.Next
	}

	data, err := encodeRecord("", head, codec.Options{MaxDepth: 10})
	require.NoError(t, err)

	var got node
	_, err = decodeRecord(data, &got, codec.Options{MaxDepth: 10})
	require.NoError(t, err)
	require.Empty(t, cmp.Diff(*head, got))

	_, err = decodeRecord(data, &got, codec.Options{MaxDepth: 9})
	assert.ErrorIs(t, err, errs.ErrDepthLimitExceeded)

	_, err = encodeRecord("", head, codec.Options{MaxDepth: 9})
	assert.ErrorIs(t, err, errs.ErrDepthLimitExceeded)
}

func TestRecordEncodeErrors(t *testing.T) {
	tests := []struct {
		name  string
		rec   record.Record
		check func(error) bool
	}{
		{"kind mismatch", record.FieldList{{
			Name: "x",
			Kind: types.TagInt,
			Encode: func(e record.Encoder) error {
				return e.EncodeShort(1)
			},
		}}, errs.IsTypeMismatch},
		{"list element mismatch", record.FieldList{{
			Name: "x",
			Kind: types.TagList,
			Encode: func(e record.Encoder) error {
				return e.EncodeList(types.TagInt, 1, func(i int, e record.Encoder) error {
					return e.EncodeString("x")
				})
			},
		}}, errs.IsTypeMismatch},
		{"list without element kind", record.FieldList{{
			Name: "x",
			Kind: types.TagList,
			Encode: func(e record.Encoder) error {
				return e.EncodeList(record.AnyKind, 1, func(i int, e record.Encoder) error {
					return e.EncodeInt(1)
				})
			},
		}}, errs.IsInvalidTagKind},
		{"nothing encoded", record.FieldList{{
			Name:   "x",
			Kind:   types.TagInt,
			Encode: func(e record.Encoder) error { return nil },
		}}, func(err error) bool { return err != nil }},
		{"encoded twice", record.FieldList{{
			Name: "x",
			Kind: record.AnyKind,
			Encode: func(e record.Encoder) error {
				if err := e.EncodeInt(1); err != nil {
					return err
				}
				return e.EncodeInt(2)
			},
		}}, func(err error) bool { return err != nil }},
		{"duplicate field", record.FieldList{
			record.Int("x", new(int32)),
			record.Int("x", new(int32)),
		}, func(err error) bool { return errors.Is(err, errs.ErrDuplicateName) }},
		{"string too large", record.FieldList{
			record.String("x", func() *string { s := strings.Repeat("a", math.MaxUint16+1); return &s }()),
		}, func(err error) bool { return errors.Is(err, errs.ErrValueTooLarge) }},
		{"nil value", record.FieldList{{
			Name: "x",
			Kind: record.AnyKind,
			Encode: func(e record.Encoder) error {
				return e.EncodeValue(nil)
			},
		}}, func(err error) bool { return err != nil }},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			_, err := encodeRecord("", test.rec, codec.Options{})
			require.Error(t, err)
			require.True(t, test.check(err), "got %v", err)
		})
	}
}
