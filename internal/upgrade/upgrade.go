package upgrade

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/haierkeys/product-note-service/internal/model"
	"github.com/haierkeys/product-note-service/pkg/logger"

	"go.uber.org/zap"
	"golang.org/x/mod/semver"
	"gorm.io/gorm"
)

// SchemaVersion 数据库版本记录表
type SchemaVersion struct {
	ID          int       `gorm:"primaryKey;autoIncrement" json:"id"`
	Version     string    `gorm:"not null;uniqueIndex;type:varchar(64)" json:"version"`
	Description string    `gorm:"type:text" json:"description"`
	AppliedAt   time.Time `gorm:"not null" json:"applied_at"`
}

// TableName 指定表名
func (SchemaVersion) TableName() string {
	return "schema_version"
}

// Migration 定义升级接口
type Migration interface {
	Version() string
	Description() string
	Up(db *gorm.DB, ctx context.Context) error
}

// MigrationManager 升级管理器
type MigrationManager struct {
	db          *gorm.DB
	logger      *zap.Logger
	appVersion  string
	autoMigrate bool
	migrations  []Migration
}

// NewMigrationManager 创建升级管理器
func NewMigrationManager(db *gorm.DB, lg *zap.Logger, appVersion string, autoMigrate bool) *MigrationManager {
	return &MigrationManager{
		db:          db,
		logger:      lg,
		appVersion:  canonical(appVersion),
		autoMigrate: autoMigrate,
		migrations: []Migration{
			// 在这里注册所有的升级脚本
			&VersionAwareNoteMigrate{},
			&ProductNoteIndexMigrate{},
		},
	}
}

func canonical(v string) string {
	if !strings.HasPrefix(v, "v") {
		v = "v" + v
	}
	return v
}

// Run 执行升级
// Schema rewrites run before auto migration so the legacy layout is never patched in place.
func (m *MigrationManager) Run(ctx context.Context) error {
	m.logger.Info("Migration started", zap.String(logger.FieldVersion, m.appVersion))

	// 确保 schema_version 表存在
	if err := m.db.WithContext(ctx).AutoMigrate(&SchemaVersion{}); err != nil {
		return fmt.Errorf("failed to create schema_version table: %w", err)
	}

	appliedVersions, err := m.getAppliedVersions(ctx)
	if err != nil {
		return fmt.Errorf("failed to get applied versions: %w", err)
	}

	pending := make([]Migration, len(m.migrations))
	copy(pending, m.migrations)
	sort.SliceStable(pending, func(i, j int) bool {
		return semver.Compare(canonical(pending[i].Version()), canonical(pending[j].Version())) < 0
	})

	executed := 0
	for _, migration := range pending {
		scriptVersion := canonical(migration.Version())

		if appliedVersions[migration.Version()] {
			continue
		}

		// 比当前程序版本更新的脚本不执行
		if semver.IsValid(m.appVersion) && semver.Compare(scriptVersion, m.appVersion) > 0 {
			m.logger.Info("skip migration > appVersion",
				zap.String("scriptVersion", scriptVersion),
				zap.String("appVersion", m.appVersion))
			continue
		}

		m.logger.Info("applying migration",
			zap.String("scriptVersion", migration.Version()),
			zap.String("desc", migration.Description()))

		// 在事务中执行升级
		if err := m.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
			if err := migration.Up(tx, ctx); err != nil {
				return fmt.Errorf("migration failed: %w", err)
			}

			record := &SchemaVersion{
				Version:     migration.Version(),
				Description: migration.Description(),
				AppliedAt:   time.Now(),
			}
			if err := tx.Create(record).Error; err != nil {
				return fmt.Errorf("failed to record version: %w", err)
			}
			return nil
		}); err != nil {
			return fmt.Errorf("failed to apply migration %s: %w", migration.Version(), err)
		}

		m.logger.Info("migration applied successfully", zap.String("scriptVersion", migration.Version()))
		executed++
	}

	if m.autoMigrate {
		if err := model.AutoMigrateAll(m.db.WithContext(ctx)); err != nil {
			return fmt.Errorf("failed to auto migrate: %w", err)
		}
	}

	if executed == 0 {
		m.logger.Info("database is already up to date")
	} else {
		m.logger.Info("upgrade completed", zap.Int("migrations_applied", executed))
	}
	return nil
}

// getAppliedVersions 获取已应用的数据库版本
func (m *MigrationManager) getAppliedVersions(ctx context.Context) (map[string]bool, error) {
	var versions []SchemaVersion
	if err := m.db.WithContext(ctx).Find(&versions).Error; err != nil {
		return nil, err
	}

	applied := make(map[string]bool, len(versions))
	for _, v := range versions {
		applied[v.Version] = true
	}
	return applied, nil
}

// Execute 执行升级(便捷方法)
func Execute(db *gorm.DB, lg *zap.Logger, appVersion string, autoMigrate bool) error {
	if db == nil {
		return fmt.Errorf("database not initialized")
	}
	if lg == nil {
		return fmt.Errorf("logger not initialized")
	}

	return NewMigrationManager(db, lg, appVersion, autoMigrate).Run(context.Background())
}
