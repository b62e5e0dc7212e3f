package tabular

import (
	sonic "github.com/bytedance/sonic"
	"github.com/valyala/bytebufferpool"
)

// jsonAPI keeps non-ASCII and HTML characters as they are.
var jsonAPI = sonic.Config{
	EscapeHTML:     false,
	SortMapKeys:    true,
	ValidateString: true,
}.Froze()

// EncodeValue writes one cell value as JSON.
func EncodeValue(buf *bytebufferpool.ByteBuffer, cell Cell) error {
	if cell.Value.IsNull() {
		_, _ = buf.WriteString("null")
		return nil
	}
	out, err := jsonAPI.Marshal(cell.Value.Interface())
	if err != nil {
		return err
	}
	_, _ = buf.Write(out)
	return nil
}

// EncodeKey writes a column name as a JSON string.
func EncodeKey(buf *bytebufferpool.ByteBuffer, column string) error {
	out, err := jsonAPI.Marshal(column)
	if err != nil {
		return err
	}
	_, _ = buf.Write(out)
	return nil
}

// MarshalJSON encodes the row as an object whose keys keep column order.
func (r Row) MarshalJSON() ([]byte, error) {
	buf := bytebufferpool.Get()
	defer bytebufferpool.Put(buf)

	_ = buf.WriteByte('{')
	for i, cell := range r {
		if i > 0 {
			_ = buf.WriteByte(',')
		}
		if err := EncodeKey(buf, cell.Column); err != nil {
			return nil, err
		}
		_ = buf.WriteByte(':')
		if err := EncodeValue(buf, cell); err != nil {
			return nil, err
		}
	}
	_ = buf.WriteByte('}')

	return append([]byte(nil), buf.B...), nil
}

// MarshalJSON encodes the table as an array of ordered row objects.
func (t *Table) MarshalJSON() ([]byte, error) {
	buf := bytebufferpool.Get()
	defer bytebufferpool.Put(buf)

	_ = buf.WriteByte('[')
	for i := 0; i < t.Len(); i++ {
		if i > 0 {
			_ = buf.WriteByte(',')
		}
		out, err := t.Row(i).MarshalJSON()
		if err != nil {
			return nil, err
		}
		_, _ = buf.Write(out)
	}
	_ = buf.WriteByte(']')

	return append([]byte(nil), buf.B...), nil
}
