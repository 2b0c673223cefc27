// Package specification builds declarative query descriptions (filters, ordering and
// projection) that are only evaluated when handed to the repository.
package specification

import (
	"strings"

	"gorm.io/gorm"
)

// Spec describes which rows of one table to read, in which order and shaped as T.
// Building a Spec never touches the store.
type Spec[T any] struct {
	model   any
	table   string
	filters []filter
	joins   []string
	columns []string
	orderBy []string
}

type filter struct {
	query string
	args  []any
}

// New starts a specification over model's table, read back as T.
func New[T any](model any, table string) *Spec[T] {
	return &Spec[T]{model: model, table: table}
}

// Table is the table the specification reads from.
func (s *Spec[T]) Table() string {
	return s.table
}

// Where adds a filter. Columns must be table-qualified because projections join.
func (s *Spec[T]) Where(query string, args ...any) *Spec[T] {
	s.filters = append(s.filters, filter{query: query, args: args})
	return s
}

// Search adds a case-insensitive match of term against any of columns.
// A blank term leaves the specification unchanged.
func (s *Spec[T]) Search(term string, columns ...string) *Spec[T] {
	pattern, ok := SearchPattern(term)
	if !ok || len(columns) == 0 {
		return s
	}
	clauses := make([]string, len(columns))
	args := make([]any, len(columns))
	for i, col := range columns {
		clauses[i] = "LOWER(" + col + ") LIKE ?"
		args[i] = pattern
	}
	query := strings.Join(clauses, " OR ")
	if len(clauses) > 1 {
		query = "(" + query + ")"
	}
	return s.Where(query, args...)
}

// Join adds a join used by the projection only; it does not affect the count.
func (s *Spec[T]) Join(clause string) *Spec[T] {
	s.joins = append(s.joins, clause)
	return s
}

// Select declares the projected columns, aliased to T's column names.
func (s *Spec[T]) Select(columns ...string) *Spec[T] {
	s.columns = append(s.columns, columns...)
	return s
}

// OrderByRecency orders newest first. The id is a tie-breaker so equal timestamps
// still produce a stable order.
func (s *Spec[T]) OrderByRecency() *Spec[T] {
	s.orderBy = []string{s.table + ".created_at DESC", s.table + ".id DESC"}
	return s
}

// Ordered reports whether an ordering was requested.
func (s *Spec[T]) Ordered() bool {
	return len(s.orderBy) > 0
}

// Filtered applies the model and filters only. Counts are built from it.
func (s *Spec[T]) Filtered(db *gorm.DB) *gorm.DB {
	q := db.Model(s.model)
	for _, f := range s.filters {
		q = q.Where(f.query, f.args...)
	}
	return q
}

// Query applies filters, joins, projection and ordering.
func (s *Spec[T]) Query(db *gorm.DB) *gorm.DB {
	q := s.Filtered(db)
	for _, j := range s.joins {
		q = q.Joins(j)
	}
	if len(s.columns) > 0 {
		q = q.Select(strings.Join(s.columns, ", "))
	}
	for _, o := range s.orderBy {
		q = q.Order(o)
	}
	return q
}
