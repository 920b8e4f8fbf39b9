// internal/storage/table.go
package storage

import (
	"context"
	"fmt"
	"time"

	"github.com/missiondb/mission-dashboard/internal/domain"
	"github.com/missiondb/mission-dashboard/internal/metrics"
)

// queryTable runs a read query and returns its rows positionally under the given
// display headers. The query must select exactly len(columns) columns.
func queryTable(ctx context.Context, q querier, table string, columns []string, query string, args ...any) (*domain.Table, error) {
	start := time.Now()
	rows, err := q.QueryContext(ctx, query, args...)
	if err != nil {
		metrics.RecordDBQuery("SELECT", table, time.Since(start), err)
		customLog.Warnf("Storage: Failed SELECT on %s: %v", table, err)
		return nil, fmt.Errorf("database error querying %s: %w", table, err)
	}
	defer rows.Close()

	result := &domain.Table{Columns: columns, Rows: make([][]any, 0)}
	for rows.Next() {
		values := make([]any, len(columns))
		ptrs := make([]any, len(columns))
		for i := range values {
			ptrs[i] = &values[i]
		}
		if err := rows.Scan(ptrs...); err != nil {
			metrics.RecordDBQuery("SELECT", table, time.Since(start), err)
			return nil, fmt.Errorf("failed to scan %s row: %w", table, err)
		}
		for i, v := range values {
			if b, ok := v.([]byte); ok {
				values[i] = string(b)
			}
		}
		result.Rows = append(result.Rows, values)
	}
	err = rows.Err()
	metrics.RecordDBQuery("SELECT", table, time.Since(start), err)
	if err != nil {
		return nil, fmt.Errorf("failed reading %s rows: %w", table, err)
	}
	return result, nil
}

// exec runs a write statement and records its timing.
func exec(ctx context.Context, q querier, operation, table, query string, args ...any) (int64, error) {
	start := time.Now()
	res, err := q.ExecContext(ctx, query, args...)
	if err != nil {
		metrics.RecordDBQuery(operation, table, time.Since(start), err)
		return 0, err
	}
	affected, err := res.RowsAffected()
	metrics.RecordDBQuery(operation, table, time.Since(start), err)
	if err != nil {
		return 0, fmt.Errorf("failed to read affected rows: %w", err)
	}
	return affected, nil
}
