package tabular

import "strings"

// Rower is implemented by record types that flatten into a table row.
type Rower interface {
	Row() Row
}

type builderOptions struct {
	dedup bool
}

type Option func(*builderOptions)

// WithDeduplication drops records whose full row equals one already added.
func WithDeduplication() Option {
	return func(o *builderOptions) {
		o.dedup = true
	}
}

// Builder accumulates typed records for one call and keeps the matching
// table in step with them.
type Builder[T Rower] struct {
	items []T
	table *Table
	dedup bool
	seen  map[string]struct{}
}

func NewBuilder[T Rower](opts ...Option) *Builder[T] {
	var options builderOptions
	for _, opt := range opts {
		opt(&options)
	}
	return &Builder[T]{
		table: NewTable(),
		dedup: options.dedup,
		seen:  make(map[string]struct{}),
	}
}

// Add appends item and reports whether it was kept.
func (b *Builder[T]) Add(item T) bool {
	row := item.Row()
	if b.dedup {
		key := rowKey(row)
		if _, ok := b.seen[key]; ok {
			return false
		}
		b.seen[key] = struct{}{}
	}
	b.items = append(b.items, item)
	b.table.Append(row)
	return true
}

// AddAll appends items in order and returns how many were kept.
func (b *Builder[T]) AddAll(items []T) int {
	kept := 0
	for _, item := range items {
		if b.Add(item) {
			kept++
		}
	}
	return kept
}

func (b *Builder[T]) Len() int {
	return len(b.items)
}

func (b *Builder[T]) Items() []T {
	return append([]T(nil), b.items...)
}

func (b *Builder[T]) Table() *Table {
	return b.table
}

func rowKey(row Row) string {
	var sb strings.Builder
	for _, cell := range row {
		sb.WriteString(cell.Column)
		sb.WriteByte(0x1f)
		sb.WriteString(cell.Value.Kind().String())
		sb.WriteByte(':')
		sb.WriteString(cell.Value.Text())
		sb.WriteByte(0x1e)
	}
	return sb.String()
}
