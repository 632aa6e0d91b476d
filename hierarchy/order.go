package hierarchy

import (
	"gorm.io/gorm"
)

// siblingScope names one parent's set of ordered children. The two node
// tables share the same ordering rules, so the order maintenance below works
// off table and column names instead of concrete model types.
type siblingScope struct {
	table     string
	parentCol string
	parentID  uint
}

var (
	subCourseScope = func(courseID uint) siblingScope {
		return siblingScope{table: "sub_courses", parentCol: "course_id", parentID: courseID}
	}
	unitScope = func(subCourseID uint) siblingScope {
		return siblingScope{table: "units", parentCol: "sub_course_id", parentID: subCourseID}
	}
)

func (s siblingScope) live(tx *gorm.DB) *gorm.DB {
	return tx.Table(s.table).Where(s.parentCol+" = ? AND is_deleted = ?", s.parentID, false)
}

// liveChildIDs returns the parent's live child ids in stored order.
func (s siblingScope) liveChildIDs(tx *gorm.DB) ([]uint, error) {
	var ids []uint
	err := s.live(tx).Order("order_index asc").Pluck("id", &ids).Error
	return ids, err
}

func (s siblingScope) count(tx *gorm.DB) (int, error) {
	var n int64
	if err := s.live(tx).Count(&n).Error; err != nil {
		return 0, err
	}
	return int(n), nil
}

// shiftFrom makes room at position `from` by moving every live sibling at or
// after it up by one. The rewrite is two bulk statements: first into the
// negative range, then back to final values, so the per-parent unique index
// never sees a duplicate order_index inside the transaction.
func (s siblingScope) shiftFrom(tx *gorm.DB, from int) error {
	err := s.live(tx).Where("order_index >= ?", from).
		UpdateColumn("order_index", gorm.Expr("-(order_index + 2)")).Error
	if err != nil {
		return err
	}
	// -(x+2) maps back to x+1
	return s.live(tx).Where("order_index < 0").
		UpdateColumn("order_index", gorm.Expr("-order_index - 1")).Error
}

// renumber assigns order_index = position for every id in the given sequence.
// All rows are first parked in the negative range for the same unique-index
// reason as shiftFrom.
func (s siblingScope) renumber(tx *gorm.DB, orderedIDs []uint) error {
	err := s.live(tx).
		UpdateColumn("order_index", gorm.Expr("-(order_index + 1)")).Error
	if err != nil {
		return err
	}
	for i, id := range orderedIDs {
		err := tx.Table(s.table).Where("id = ?", id).
			UpdateColumn("order_index", i).Error
		if err != nil {
			return err
		}
	}
	return nil
}

// compact restores the 0..n-1 sequence for the parent's surviving children,
// preserving their relative order. Called after every delete and move.
func (s siblingScope) compact(tx *gorm.DB) error {
	ids, err := s.liveChildIDs(tx)
	if err != nil {
		return err
	}
	return s.renumber(tx, ids)
}
