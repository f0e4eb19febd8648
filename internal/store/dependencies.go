package store

import (
	"database/sql"
	"fmt"
)

// Dependency is one "caller invokes callee" edge, scoped to the caller's
// owning class (nil for free functions).
type Dependency struct {
	Name    string
	ClassID *int64
}

// InsertDependencies records one edge per callee for the caller identified
// by (functionName, classID). Callees are expected to be deduplicated by the
// extractor; rows are append-only.
func (s *Store) InsertDependencies(functionName string, classID *int64, dependencies []string) error {
	for _, dep := range dependencies {
		_, err := s.q.Exec(
			"INSERT INTO function_dependencies (function_name, dependency, class_id) VALUES (?, ?, ?)",
			functionName, dep, nullID(classID))
		if err != nil {
			return fmt.Errorf("insert dependency %s -> %s: %w", functionName, dep, err)
		}
	}
	return nil
}

// GetDependencies returns the callees recorded for (functionName, classID),
// in insertion order. A nil classID matches only edges whose class_id is
// NULL, never all edges.
func (s *Store) GetDependencies(functionName string, classID *int64) ([]Dependency, error) {
	var rows *sql.Rows
	var err error
	if classID != nil {
		rows, err = s.q.Query(
			"SELECT dependency, class_id FROM function_dependencies WHERE function_name=? AND class_id=?",
			functionName, *classID)
	} else {
		rows, err = s.q.Query(
			"SELECT dependency, class_id FROM function_dependencies WHERE function_name=? AND class_id IS NULL",
			functionName)
	}
	if err != nil {
		return nil, fmt.Errorf("get dependencies: %w", err)
	}
	defer rows.Close()

	var result []Dependency
	for rows.Next() {
		var d Dependency
		var cid sql.NullInt64
		if err := rows.Scan(&d.Name, &cid); err != nil {
			return nil, err
		}
		if cid.Valid {
			id := cid.Int64
			d.ClassID = &id
		}
		result = append(result, d)
	}
	return result, rows.Err()
}
