package grid

import (
	"context"
)

// SQLResult is a bounded, display-ready view of one statement's outcome.
// Row sets carry columns and rows; updates carry the affected row count.
type SQLResult struct {
	Columns     []string `json:"columns,omitempty"`
	Rows        [][]any  `json:"rows,omitempty"`
	RowCount    int      `json:"row_count"`
	UpdateCount int64    `json:"update_count"`
	RowSet      bool     `json:"row_set"`
	Truncated   bool     `json:"truncated,omitempty"`
}

// SQLExecute runs one SQL statement against the cluster. Result sets are
// capped at the configured row limit; Truncated reports when the cap hit.
func (c *Client) SQLExecute(ctx context.Context, query string, params ...any) (*SQLResult, error) {
	result, err := c.hz.SQL().Execute(ctx, query, params...)
	if err != nil {
		return nil, err
	}
	defer func() { _ = result.Close() }()

	if !result.IsRowSet() {
		return &SQLResult{UpdateCount: result.UpdateCount()}, nil
	}

	meta, err := result.RowMetadata()
	if err != nil {
		return nil, err
	}
	columns := make([]string, 0, meta.ColumnCount())
	for _, col := range meta.Columns() {
		columns = append(columns, col.Name())
	}

	iter, err := result.Iterator()
	if err != nil {
		return nil, err
	}

	out := &SQLResult{Columns: columns, RowSet: true, UpdateCount: result.UpdateCount()}
	for iter.HasNext() {
		if len(out.Rows) >= c.sqlMaxRows {
			out.Truncated = true
			break
		}
		row, err := iter.Next()
		if err != nil {
			return nil, err
		}
		values := make([]any, len(columns))
		for i := range columns {
			value, err := row.Get(i)
			if err != nil {
				return nil, err
			}
			values[i] = fromGridValue(value)
		}
		out.Rows = append(out.Rows, values)
	}
	out.RowCount = len(out.Rows)
	return out, nil
}
