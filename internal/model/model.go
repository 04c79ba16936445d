package model

import (
	"gorm.io/gorm"
)

// AutoMigrate 按模型名迁移表结构
func AutoMigrate(db *gorm.DB, key string) error {
	switch key {
	case "Product":
		return db.AutoMigrate(&Product{})
	case "ProductNote":
		return db.AutoMigrate(&ProductNote{})
	}
	return nil
}

// AutoMigrateAll migrates every table in dependency order
func AutoMigrateAll(db *gorm.DB) error {
	for _, key := range []string{"Product", "ProductNote"} {
		if err := AutoMigrate(db, key); err != nil {
			return err
		}
	}
	return nil
}
