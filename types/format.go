package types

import (
	"strconv"
	"strings"

	"github.com/chaisql/nbt/internal/stringutil"
)

func (v ByteValue) String() string  { return strconv.FormatInt(int64(v), 10) + "b" }
func (v ShortValue) String() string { return strconv.FormatInt(int64(v), 10) + "s" }
func (v IntValue) String() string   { return strconv.FormatInt(int64(v), 10) }
func (v LongValue) String() string  { return strconv.FormatInt(int64(v), 10) + "L" }

func (v FloatValue) String() string {
	return strconv.FormatFloat(float64(v), 'g', -1, 32) + "f"
}

func (v DoubleValue) String() string {
	return strconv.FormatFloat(float64(v), 'g', -1, 64) + "d"
}

func (v StringValue) String() string {
	return stringutil.Quote(string(v))
}

func (v ByteArrayValue) String() string {
	return formatArray("B", []int8(v), func(x int8) string { return strconv.FormatInt(int64(x), 10) + "b" })
}

func (v IntArrayValue) String() string {
	return formatArray("I", []int32(v), func(x int32) string { return strconv.FormatInt(int64(x), 10) })
}

func (v LongArrayValue) String() string {
	return formatArray("L", []int64(v), func(x int64) string { return strconv.FormatInt(x, 10) + "L" })
}

func formatArray[T any](prefix string, values []T, format func(T) string) string {
	var sb strings.Builder

	sb.WriteString("[" + prefix + ";")
	for i, x := range values {
		if i > 0 {
			sb.WriteByte(',')
		}
		sb.WriteString(format(x))
	}
	sb.WriteByte(']')

	return sb.String()
}

func (l *List) String() string {
	if l == nil {
		return "[]"
	}

	var sb strings.Builder

	sb.WriteByte('[')
	for i, v := range l.values {
		if i > 0 {
			sb.WriteByte(',')
		}
		sb.WriteString(v.String())
	}
	sb.WriteByte(']')

	return sb.String()
}

func (c *Compound) String() string {
	if c == nil {
		return "{}"
	}

	var sb strings.Builder

	sb.WriteByte('{')
	for i, e := range c.entries {
		if i > 0 {
			sb.WriteByte(',')
		}
		sb.WriteString(stringutil.NormalizeIdentifier(e.Name))
		sb.WriteByte(':')
		sb.WriteString(e.Value.String())
	}
	sb.WriteByte('}')

	return sb.String()
}
