package repositories

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Criterion is one typed filter clause. The set of implementations is closed:
// Equals, Contains, Range, AnyOf and HasStopOfType.
type Criterion interface {
	apply(db *gorm.DB) *gorm.DB
}

// ApplyCriteria narrows db by every criterion in order.
func ApplyCriteria(db *gorm.DB, criteria ...Criterion) *gorm.DB {
	for _, c := range criteria {
		if c != nil {
			db = c.apply(db)
		}
	}
	return db
}

// Equals matches Column = Value.
type Equals struct {
	Column string
	Value  interface{}
}

func (e Equals) apply(db *gorm.DB) *gorm.DB {
	return db.Where(fmt.Sprintf("%s = ?", e.Column), e.Value)
}

// Contains is a case-insensitive substring match.
type Contains struct {
	Column    string
	Substring string
}

func (c Contains) apply(db *gorm.DB) *gorm.DB {
	if c.Substring == "" {
		return db
	}
	return db.Where(fmt.Sprintf(`LOWER(%s) LIKE ? ESCAPE '\'`, c.Column), likePattern(c.Substring))
}

// Range bounds a numeric column. With UnknownPasses a NULL value satisfies
// both bounds.
type Range struct {
	Column        string
	Min           *decimal.Decimal
	Max           *decimal.Decimal
	UnknownPasses bool
}

func (r Range) apply(db *gorm.DB) *gorm.DB {
	if r.Min != nil {
		db = db.Where(r.bound(">="), *r.Min)
	}
	if r.Max != nil {
		db = db.Where(r.bound("<="), *r.Max)
	}
	return db
}

func (r Range) bound(op string) string {
	if r.UnknownPasses {
		return fmt.Sprintf("(%s %s ? OR %s IS NULL)", r.Column, op, r.Column)
	}
	return fmt.Sprintf("%s %s ?", r.Column, op)
}

// AnyOf matches Column against any of Values, case-insensitively.
type AnyOf struct {
	Column string
	Values []string
}

func (a AnyOf) apply(db *gorm.DB) *gorm.DB {
	values := normalizeValues(a.Values)
	if len(values) == 0 {
		return db
	}
	return db.Where(fmt.Sprintf("LOWER(%s) IN ?", a.Column), values)
}

// HasStopOfType keeps routes with at least one stop whose attraction type is
// one of Types.
type HasStopOfType struct {
	Types []string
}

func (h HasStopOfType) apply(db *gorm.DB) *gorm.DB {
	types := normalizeValues(h.Types)
	if len(types) == 0 {
		return db
	}
	return db.Where(`EXISTS (
		SELECT 1 FROM route_stops rs
		JOIN attractions a ON a.id = rs.attraction_id
		WHERE rs.route_id = routes.id AND LOWER(a.type) IN ?)`, types)
}

func normalizeValues(values []string) []string {
	out := make([]string, 0, len(values))
	seen := make(map[string]struct{}, len(values))
	for _, v := range values {
		v = strings.ToLower(strings.TrimSpace(v))
		if v == "" {
			continue
		}
		if _, ok := seen[v]; ok {
			continue
		}
		seen[v] = struct{}{}
		out = append(out, v)
	}
	return out
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

func likePattern(s string) string {
	return "%" + likeEscaper.Replace(strings.ToLower(s)) + "%"
}
