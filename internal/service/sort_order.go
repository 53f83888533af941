package service

import (
	"errors"
	"fmt"

	"github.com/jaysperspective/JoshuaIsaiahart/internal/db"
	"github.com/jaysperspective/JoshuaIsaiahart/internal/ordering"
	"gorm.io/gorm"
)

// ErrReorderMismatch means a submitted order names an unknown id or names an
// id twice.
var ErrReorderMismatch = errors.New("order does not match stored records")

// nextSortOrder returns max(sort_order)+1 for model, or 0 for an empty table.
func nextSortOrder(tx *gorm.DB, model interface{}) (int, error) {
	var maxOrder int
	if err := tx.Model(model).Select("COALESCE(MAX(sort_order), -1)").Scan(&maxOrder).Error; err != nil {
		return 0, fmt.Errorf("resolve sort order: %w", err)
	}
	return maxOrder + 1, nil
}

// orderedIDs lists ids of model in display order.
func orderedIDs(tx *gorm.DB, model interface{}) ([]string, error) {
	var ids []string
	if err := tx.Model(model).Order(db.ListOrder).Pluck("id", &ids).Error; err != nil {
		return nil, err
	}
	return ids, nil
}

// mergeOrder puts requested first and appends stored ids the request did not
// mention, keeping their stored order. Unknown or repeated ids are rejected.
func mergeOrder(stored, requested []string) ([]string, error) {
	known := make(map[string]bool, len(stored))
	for _, id := range stored {
		known[id] = true
	}

	merged := make([]string, 0, len(stored))
	seen := make(map[string]bool, len(requested))
	for _, id := range requested {
		if !known[id] || seen[id] {
			return nil, ErrReorderMismatch
		}
		seen[id] = true
		merged = append(merged, id)
	}
	for _, id := range stored {
		if !seen[id] {
			merged = append(merged, id)
		}
	}
	return merged, nil
}

// writeSortOrder assigns every id its index.
func writeSortOrder(tx *gorm.DB, model interface{}, ids []string) error {
	for id, position := range ordering.DenseOrder(ids) {
		if err := tx.Model(model).Where("id = ?", id).Update("sort_order", position).Error; err != nil {
			return fmt.Errorf("write sort order: %w", err)
		}
	}
	return nil
}
