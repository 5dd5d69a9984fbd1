package table

// #region record
// Record is one row of the PDE table: a named set of fields with the
// source column order preserved. Fields holds every cell as text;
// unknown columns pass through untouched.
type Record struct {
	Columns []string
	Fields  map[string]string
}

// NewRecord creates an empty record with the given column order.
func NewRecord(columns []string) Record {
	cols := make([]string, len(columns))
	copy(cols, columns)
	return Record{
		Columns: cols,
		Fields:  make(map[string]string, len(columns)),
	}
}

// Get returns the field value, or "" when the column is absent.
func (r Record) Get(column string) string {
	return r.Fields[column]
}

// Set stores a field value, appending the column when it is new.
func (r *Record) Set(column, value string) {
	if _, ok := r.Fields[column]; !ok && !r.hasColumn(column) {
		r.Columns = append(r.Columns, column)
	}
	r.Fields[column] = value
}

// Name returns the record's Name field, or "UNKNOWN" when absent.
func (r Record) Name() string {
	if n := r.Fields["Name"]; n != "" {
		return n
	}
	return "UNKNOWN"
}

func (r Record) hasColumn(column string) bool {
	for _, c := range r.Columns {
		if c == column {
			return true
		}
	}
	return false
}
// #endregion record

// #region well-known-columns
// Column names recognized by the pipeline. Everything else is carried
// through verbatim.
const (
	ColName          = "Name"
	ColTrainerModule = "TrainerModule"
	ColL3Error       = "L3_Error"
	ColTotalScore    = "Total_Score"
)

// ScoringColumns is the fixed ordered set of columns summed into
// Total_Score.
var ScoringColumns = []string{
	"Dimensionality",
	"Nonlinearity",
	"Boundary",
	"Time",
	"Coupling",
}
// #endregion well-known-columns
