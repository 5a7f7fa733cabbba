package watchpager

import (
	"fmt"
	"strings"

	"github.com/samber/lo"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type (
	// Filter is a single predicate of the form "Column Operator Value". The
	// zero Filter is the identity: it is skipped while composing a query.
	Filter struct {
		Column   string
		Operator Operator
		Value    any
	}

	// Filters is an ordered list of optional predicates joined by AND.
	//
	// Thus:
	//
	//	Filters = F1 AND F2 ... AND Fn, where every absent Fi is dropped.
	//
	// Since AND is commutative, any permutation of the same filters matches
	// the same rows.
	Filters []Filter
)

func newOptionalFilter[V any](column string, operator Operator, value *V) Filter {
	if value == nil {
		return Filter{}
	}

	return Filter{
		Column:   column,
		Operator: operator,
		Value:    *value,
	}
}

// Eq returns "column = value" or the identity filter when value is nil.
func Eq[V any](column string, value *V) Filter {
	return newOptionalFilter(column, OperatorEq, value)
}

// Gt returns "column > value" or the identity filter when value is nil.
func Gt[V any](column string, value *V) Filter {
	return newOptionalFilter(column, OperatorGT, value)
}

// Gte returns "column >= value" or the identity filter when value is nil.
func Gte[V any](column string, value *V) Filter {
	return newOptionalFilter(column, OperatorGTE, value)
}

// Lt returns "column < value" or the identity filter when value is nil.
func Lt[V any](column string, value *V) Filter {
	return newOptionalFilter(column, OperatorLT, value)
}

// Lte returns "column <= value" or the identity filter when value is nil.
func Lte[V any](column string, value *V) Filter {
	return newOptionalFilter(column, OperatorLTE, value)
}

// IsNull returns "column IS NULL" if present is true, the identity filter
// otherwise.
func IsNull(column string, present bool) Filter {
	if !present {
		return Filter{}
	}

	return Filter{
		Column:   column,
		Operator: OperatorIsNull,
	}
}

// IsEmpty returns true for the identity filter.
func (f Filter) IsEmpty() bool {
	return f.Column == ""
}

func (f Filter) key() string {
	return f.Column + " " + string(f.Operator)
}

func (f Filter) validate() error {
	if !f.Operator.Valid() {
		return fmt.Errorf("invalid filter operator '%s'", f.Operator)
	}

	if !validColumnName(f.Column) {
		return fmt.Errorf("filter column name contains forbidden symbols '%s'", f.Column)
	}

	return nil
}

// toSQLClause converts a filter to an SQL condition of the form
// "Column Operator ?" with a corresponding value. Unary operators produce no
// value.
//
// Example:
//
//	Filter = { Column: "user_id", Operator: "=", Value: 7}
//
// Result:
//
//	("user_id = ?", [7])
func (f Filter) toSQLClause() (string, []any) {
	if f.Operator.IsUnary() {
		return fmt.Sprintf("%s %s", f.Column, f.Operator), nil
	}

	return fmt.Sprintf("%s %s ?", f.Column, f.Operator), []any{f.Value}
}

// toGORMExpression converts a filter into a clause.Expression.
//
// IMPORTANT: The method uses the SQL placeholder "?".
func (f Filter) toGORMExpression() clause.Expression {
	sqlClause, args := f.toSQLClause()

	return clause.Expr{
		SQL:  sqlClause,
		Vars: args,
	}
}

// Compact drops identity filters and collapses entries with the same column
// and operator, keeping the position of the first and the value of the last.
// The receiver is not modified.
func (f Filters) Compact() Filters {
	present := lo.Reject(f, func(item Filter, _ int) bool {
		return item.IsEmpty()
	})

	last := lo.SliceToMap(present, func(item Filter) (string, Filter) {
		return item.key(), item
	})

	return lo.Map(lo.UniqBy(present, Filter.key), func(item Filter, _ int) Filter {
		return last[item.key()]
	})
}

func (f Filters) validate() error {
	for _, filter := range f.Compact() {
		if err := filter.validate(); err != nil {
			return err
		}
	}

	return nil
}

// toGORMExpression converts filters (F1, F2, F3) into a gorm expression
// "F1 AND F2 AND F3". Returns nil when no filter is present.
func (f Filters) toGORMExpression() clause.Expression {
	andExpressions := lo.Map(f.Compact(), func(item Filter, _ int) clause.Expression {
		return item.toGORMExpression()
	})

	if len(andExpressions) == 1 {
		return andExpressions[0]
	} else if len(andExpressions) > 1 {
		return clause.And(andExpressions...)
	}

	return nil
}

// ToSQL converts filters into an SQL condition "(F1 AND F2 AND F3)" with the
// values for its placeholders. Returns "TRUE" when no filter is present.
//
// Usage:
//
//	where, args := filters.ToSQL()
//	db.Raw(fmt.Sprintf("SELECT * FROM reviews WHERE %s", where), args...)
func (f Filters) ToSQL() (string, []any) {
	compacted := f.Compact()
	if len(compacted) == 0 {
		return "TRUE", nil
	}

	andClauses := make([]string, 0, len(compacted))
	andValues := make([]any, 0, len(compacted))

	for _, filter := range compacted {
		andClause, values := filter.toSQLClause()
		andClauses = append(andClauses, andClause)
		andValues = append(andValues, values...)
	}

	return fmt.Sprintf("(%s)", strings.Join(andClauses, " AND ")), andValues
}

// Apply adds the present filters to a gorm query.
func (f Filters) Apply(db *gorm.DB) *gorm.DB {
	exp := f.toGORMExpression()
	if exp == nil {
		return db
	}

	return db.Clauses(exp)
}
