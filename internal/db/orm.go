package db

import (
	"fmt"

	"blackbox/flightlog/internal/models/entities"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

var OrmDB *gorm.DB

func InitSQLiteORM(path string) (*gorm.DB, error) {
	orm, err := gorm.Open(sqlite.Open(path), &gorm.Config{})
	if err != nil {
		return nil, fmt.Errorf("failed to open sqlite database: %w", err)
	}

	if err := orm.AutoMigrate(&entities.FlightTrack{}); err != nil {
		return nil, fmt.Errorf("failed to migrate flight_tracks: %w", err)
	}

	OrmDB = orm
	return orm, nil
}
