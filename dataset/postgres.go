package dataset

import (
	"fmt"

	"gorm.io/gorm"

	"collision-dashboard-api/models"
)

// LoadPostgres reads the collision dataset from the collisions table.
// Alternative to the CSV source; the result feeds the same immutable Store.
func LoadPostgres(db *gorm.DB, maxRows int) ([]models.Collision, error) {
	query := db.Model(&models.Collision{}).
		Where("latitude <> 0 OR longitude <> 0").
		Order("occurred_at DESC")
	if maxRows > 0 {
		query = query.Limit(maxRows)
	}

	var records []models.Collision
	if err := query.Find(&records).Error; err != nil {
		return nil, fmt.Errorf("load collisions from postgres: %w", err)
	}
	return records, nil
}
