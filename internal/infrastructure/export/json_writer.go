package export

import (
	"github.com/riskibarqy/fcdata/internal/platform/tabular"
	"github.com/valyala/bytebufferpool"
)

const jsonIndent = "    "

// EncodeJSON renders the table as an indented array of objects whose keys
// follow the table's column order.
func EncodeJSON(table *tabular.Table) ([]byte, error) {
	if table == nil || table.Len() == 0 {
		return []byte("[]"), nil
	}

	buf := bytebufferpool.Get()
	defer bytebufferpool.Put(buf)

	_, _ = buf.WriteString("[\n")
	for i := 0; i < table.Len(); i++ {
		if i > 0 {
			_, _ = buf.WriteString(",\n")
		}
		row := table.Row(i)
		_, _ = buf.WriteString(jsonIndent + "{")
		for j, cell := range row {
			if j > 0 {
				_ = buf.WriteByte(',')
			}
			_, _ = buf.WriteString("\n" + jsonIndent + jsonIndent)
			if err := tabular.EncodeKey(buf, cell.Column); err != nil {
				return nil, err
			}
			_, _ = buf.WriteString(": ")
			if err := tabular.EncodeValue(buf, cell); err != nil {
				return nil, err
			}
		}
		if len(row) > 0 {
			_, _ = buf.WriteString("\n" + jsonIndent)
		}
		_ = buf.WriteByte('}')
	}
	_, _ = buf.WriteString("\n]")

	return append([]byte(nil), buf.B...), nil
}
