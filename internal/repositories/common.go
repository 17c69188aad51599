package repositories

import (
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// forUpdate adds a row lock where the dialect supports it. SQLite serialises
// writers already and rejects the clause.
func forUpdate(tx *gorm.DB) *gorm.DB {
	if tx.Dialector.Name() == "postgres" {
		return tx.Clauses(clause.Locking{Strength: "UPDATE"})
	}
	return tx
}

func paginate(q *gorm.DB, page, pageSize int) *gorm.DB {
	if page <= 0 || pageSize <= 0 {
		return q
	}
	return q.Offset((page - 1) * pageSize).Limit(pageSize)
}

// Ordering is a whitelisted column and direction.
type Ordering struct {
	Column string
	Desc   bool
}

func applyOrdering(q *gorm.DB, orderings []Ordering) *gorm.DB {
	for _, o := range orderings {
		q = q.Order(clause.OrderByColumn{Column: clause.Column{Name: o.Column}, Desc: o.Desc})
	}
	return q
}
