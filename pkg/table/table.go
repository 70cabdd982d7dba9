// Package table holds the tabular form of NILU API responses and the
// flattening transform that promotes nested columns. A table is an
// ordered sequence of rows; rows are plain maps because the API does
// not guarantee a uniform shape across endpoints.
package table

import "sort"

// Row is a single record decoded from an API response.
type Row map[string]any

// Table is an ordered sequence of rows.
type Table []Row

// Columns returns the sorted union of keys across all rows.
func (t Table) Columns() []string {
	seen := make(map[string]struct{})
	for _, row := range t {
		for k := range row {
			seen[k] = struct{}{}
		}
	}

	columns := make([]string, 0, len(seen))
	for k := range seen {
		columns = append(columns, k)
	}
	sort.Strings(columns)

	return columns
}

// HasColumn reports whether any row carries the given column.
func (t Table) HasColumn(column string) bool {
	for _, row := range t {
		if _, found := row[column]; found {
			return true
		}
	}
	return false
}

func (r Row) clone() Row {
	aux := make(Row, len(r))
	for k, v := range r {
		aux[k] = v
	}
	return aux
}

// Flatten promotes the nested content of the named column into
// top-level columns. List-valued cells are exploded into one row per
// element first, then each object-valued cell is spliced into its row
// in place of the original column. Rows never share storage with the
// input, so the input table is left untouched.
//
// A table without the column is returned unchanged. Cells holding a
// JSON null lose the column and contribute no fields; cells holding
// plain scalars pass through unmodified.
func Flatten(t Table, column string) Table {
	if !t.HasColumn(column) {
		return t
	}

	exploded := make(Table, 0, len(t))
	for _, row := range t {
		list, ok := row[column].([]any)
		if !ok {
			exploded = append(exploded, row.clone())
			continue
		}
		for _, elem := range list {
			aux := row.clone()
			aux[column] = elem
			exploded = append(exploded, aux)
		}
	}

	for _, row := range exploded {
		v, found := row[column]
		if !found {
			continue
		}
		switch fields := v.(type) {
		case map[string]any:
			delete(row, column)
			for k, val := range fields {
				row[k] = val
			}
		case nil:
			delete(row, column)
		}
	}

	return exploded
}
