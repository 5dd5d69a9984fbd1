package runlog

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"
)

// #region schema
const schema = `
CREATE TABLE IF NOT EXISTS runs (
	run_id        TEXT PRIMARY KEY,
	input_path    TEXT NOT NULL,
	output_path   TEXT,
	status        TEXT NOT NULL,
	row_count     INTEGER,
	started_at    TEXT NOT NULL,
	finished_at   TEXT,
	reg_slope     REAL,
	reg_intercept REAL,
	reg_points    INTEGER
);

CREATE TABLE IF NOT EXISTS invocation_log (
	id             INTEGER PRIMARY KEY AUTOINCREMENT,
	run_id         TEXT NOT NULL,
	record_name    TEXT NOT NULL,
	trainer_module TEXT,
	outcome        TEXT NOT NULL,
	exit_code      INTEGER,
	total_score    REAL,
	l3_error       REAL,
	duration_ms    INTEGER,
	created_at     TEXT NOT NULL,
	FOREIGN KEY (run_id) REFERENCES runs(run_id)
);
`
// #endregion schema

// #region store-struct
// Store manages pipeline run history in SQLite.
type Store struct {
	db *sql.DB
}
// #endregion store-struct

// #region constructor
// NewStore opens a SQLite database and runs migrations.
func NewStore(dbPath string) (*Store, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open db: %w", err)
	}
	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		return nil, fmt.Errorf("pragma: %w", err)
	}
	if _, err := db.Exec("PRAGMA foreign_keys=ON"); err != nil {
		return nil, fmt.Errorf("pragma fk: %w", err)
	}
	if _, err := db.Exec(schema); err != nil {
		return nil, fmt.Errorf("migrate: %w", err)
	}
	return &Store{db: db}, nil
}
// #endregion constructor

// #region close
// Close closes the underlying database connection.
func (s *Store) Close() error {
	return s.db.Close()
}
// #endregion close

// #region db-accessor
// DB returns the underlying *sql.DB for use by other packages (e.g. logging).
func (s *Store) DB() *sql.DB {
	return s.db
}
// #endregion db-accessor

// #region begin-run
// BeginRun inserts a new run in the running state and returns it.
func (s *Store) BeginRun(inputPath string) (RunRecord, error) {
	rec := RunRecord{
		RunID:     uuid.New().String(),
		InputPath: inputPath,
		Status:    StatusRunning,
		StartedAt: time.Now().UTC(),
	}

	_, err := s.db.Exec(
		`INSERT INTO runs (run_id, input_path, status, started_at)
		 VALUES (?, ?, ?, ?)`,
		rec.RunID, rec.InputPath, rec.Status, rec.StartedAt.Format(time.RFC3339Nano),
	)
	if err != nil {
		return RunRecord{}, fmt.Errorf("insert run: %w", err)
	}
	return rec, nil
}
// #endregion begin-run

// #region finish-run
// FinishRun stamps a run's terminal status, row count, and regression
// result (nil fields stay NULL).
func (s *Store) FinishRun(runID string, out RunOutcome) error {
	var slopePtr, interceptPtr, pointsPtr interface{}
	if out.RegSlope != nil {
		slopePtr = *out.RegSlope
	}
	if out.RegIntercept != nil {
		interceptPtr = *out.RegIntercept
	}
	if out.RegPoints != nil {
		pointsPtr = *out.RegPoints
	}

	var outputPtr interface{}
	if out.OutputPath != "" {
		outputPtr = out.OutputPath
	}

	res, err := s.db.Exec(
		`UPDATE runs SET status = ?, output_path = ?, row_count = ?, finished_at = ?,
		        reg_slope = ?, reg_intercept = ?, reg_points = ?
		 WHERE run_id = ?`,
		out.Status, outputPtr, out.RowCount, time.Now().UTC().Format(time.RFC3339Nano),
		slopePtr, interceptPtr, pointsPtr, runID,
	)
	if err != nil {
		return fmt.Errorf("finish run: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("finish run: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("run %s not found", runID)
	}
	return nil
}
// #endregion finish-run

// #region get-run
// GetRun retrieves a specific run by ID.
func (s *Store) GetRun(runID string) (RunRecord, error) {
	row := s.db.QueryRow(
		`SELECT run_id, input_path, output_path, status, row_count, started_at, finished_at,
		        reg_slope, reg_intercept, reg_points
		 FROM runs WHERE run_id = ?`, runID,
	)
	rec, err := scanRun(row)
	if err != nil {
		return RunRecord{}, fmt.Errorf("get run %s: %w", runID, err)
	}
	return rec, nil
}
// #endregion get-run

// #region list-runs
// ListRuns returns the most recent runs, newest first.
func (s *Store) ListRuns(limit int) ([]RunRecord, error) {
	rows, err := s.db.Query(
		`SELECT run_id, input_path, output_path, status, row_count, started_at, finished_at,
		        reg_slope, reg_intercept, reg_points
		 FROM runs ORDER BY started_at DESC LIMIT ?`, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("list runs: %w", err)
	}
	defer rows.Close()

	var records []RunRecord
	for rows.Next() {
		rec, err := scanRun(rows)
		if err != nil {
			return nil, fmt.Errorf("scan run: %w", err)
		}
		records = append(records, rec)
	}
	return records, rows.Err()
}
// #endregion list-runs

// #region scan
type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanRun(row rowScanner) (RunRecord, error) {
	var rec RunRecord
	var outputPath sql.NullString
	var rowCount sql.NullInt64
	var startedStr string
	var finishedStr sql.NullString
	var slope, intercept sql.NullFloat64
	var points sql.NullInt64

	err := row.Scan(&rec.RunID, &rec.InputPath, &outputPath, &rec.Status, &rowCount,
		&startedStr, &finishedStr, &slope, &intercept, &points)
	if err != nil {
		return RunRecord{}, err
	}

	if outputPath.Valid {
		rec.OutputPath = outputPath.String
	}
	if rowCount.Valid {
		rec.RowCount = int(rowCount.Int64)
	}
	rec.StartedAt, _ = time.Parse(time.RFC3339Nano, startedStr)
	if finishedStr.Valid {
		rec.FinishedAt, _ = time.Parse(time.RFC3339Nano, finishedStr.String)
	}
	if slope.Valid {
		v := slope.Float64
		rec.RegSlope = &v
	}
	if intercept.Valid {
		v := intercept.Float64
		rec.RegIntercept = &v
	}
	if points.Valid {
		v := int(points.Int64)
		rec.RegPoints = &v
	}
	return rec, nil
}
// #endregion scan
