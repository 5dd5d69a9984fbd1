package logging

import (
	"database/sql"
	"fmt"
	"time"
)

// #region log-invocation
// LogInvocation writes one entry to the invocation_log table.
func LogInvocation(db *sql.DB, entry InvocationEntry) error {
	if entry.CreatedAt.IsZero() {
		entry.CreatedAt = time.Now().UTC()
	}

	_, err := db.Exec(
		`INSERT INTO invocation_log (run_id, record_name, trainer_module, outcome, exit_code, total_score, l3_error, duration_ms, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		entry.RunID,
		entry.RecordName,
		nullIfEmpty(entry.TrainerModule),
		entry.Outcome,
		nullIntPtr(entry.ExitCode),
		nullFloatPtr(entry.TotalScore),
		nullFloatPtr(entry.L3Error),
		entry.DurationMs,
		entry.CreatedAt.Format(time.RFC3339Nano),
	)
	if err != nil {
		return fmt.Errorf("log invocation: %w", err)
	}
	return nil
}
// #endregion log-invocation

// #region list-invocations
// ListInvocations returns a run's invocation entries in insertion order.
func ListInvocations(db *sql.DB, runID string) ([]InvocationEntry, error) {
	rows, err := db.Query(
		`SELECT run_id, record_name, trainer_module, outcome, exit_code, total_score, l3_error, duration_ms, created_at
		 FROM invocation_log WHERE run_id = ? ORDER BY id ASC`, runID,
	)
	if err != nil {
		return nil, fmt.Errorf("list invocations: %w", err)
	}
	defer rows.Close()

	var entries []InvocationEntry
	for rows.Next() {
		var e InvocationEntry
		var module sql.NullString
		var exitCode sql.NullInt64
		var totalScore, l3 sql.NullFloat64
		var createdStr string

		if err := rows.Scan(&e.RunID, &e.RecordName, &module, &e.Outcome, &exitCode,
			&totalScore, &l3, &e.DurationMs, &createdStr); err != nil {
			return nil, fmt.Errorf("scan invocation: %w", err)
		}
		if module.Valid {
			e.TrainerModule = module.String
		}
		if exitCode.Valid {
			v := int(exitCode.Int64)
			e.ExitCode = &v
		}
		if totalScore.Valid {
			v := totalScore.Float64
			e.TotalScore = &v
		}
		if l3.Valid {
			v := l3.Float64
			e.L3Error = &v
		}
		e.CreatedAt, _ = time.Parse(time.RFC3339Nano, createdStr)
		entries = append(entries, e)
	}
	return entries, rows.Err()
}
// #endregion list-invocations

// #region helpers
func nullIfEmpty(s string) interface{} {
	if s == "" {
		return nil
	}
	return s
}

func nullIntPtr(p *int) interface{} {
	if p == nil {
		return nil
	}
	return *p
}

func nullFloatPtr(p *float64) interface{} {
	if p == nil {
		return nil
	}
	return *p
}
// #endregion helpers
