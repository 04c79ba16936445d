// Package app 提供应用容器，封装所有依赖和服务
package app

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/haierkeys/product-note-service/internal/dao"
	"github.com/haierkeys/product-note-service/internal/domain"
	"github.com/haierkeys/product-note-service/internal/service"
	pkgapp "github.com/haierkeys/product-note-service/pkg/app"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// App 应用容器，封装所有依赖和服务
type App struct {
	// 基础设施（注入的依赖）
	config *AppConfig
	logger *zap.Logger
	DB     *gorm.DB
	Dao    *dao.Dao

	// Repository 层
	NoteRepo    domain.ProductNoteRepository
	ProductRepo domain.ProductRepository

	// Service 层
	ProductNoteService service.ProductNoteService

	StartTime time.Time

	// 关闭控制
	shutdownCh chan struct{}
	closeOnce  sync.Once
	wg         sync.WaitGroup
}

// NewApp 创建应用容器实例
// 初始化所有依赖并进行依赖注入
// cfg: 应用配置（必须）
// logger: zap 日志器（必须）
// db: 数据库连接（必须）
func NewApp(cfg *AppConfig, logger *zap.Logger, db *gorm.DB) (*App, error) {
	if cfg == nil {
		return nil, fmt.Errorf("configuration is required")
	}
	if logger == nil {
		return nil, fmt.Errorf("logger is required")
	}
	if db == nil {
		return nil, fmt.Errorf("database is required")
	}

	a := &App{
		config:     cfg,
		logger:     logger,
		DB:         db,
		StartTime:  time.Now(),
		shutdownCh: make(chan struct{}),
	}

	dbConfig := cfg.DaoConfig()
	a.Dao = dao.New(db,
		dao.WithConfig(&dbConfig),
		dao.WithLogger(logger),
	)

	// 初始化 Repository 层
	a.NoteRepo = dao.NewProductNoteRepository(a.Dao)
	a.ProductRepo = dao.NewProductRepository(a.Dao)

	// 初始化 Service 层（依赖注入）
	a.ProductNoteService = service.NewProductNoteService(a.NoteRepo, a.ProductRepo, cfg.ServiceConfig(), logger)

	logger.Info("App container initialized successfully",
		zap.String("database", cfg.Database.Type),
		zap.Int("noteMaxLength", cfg.Note.MaxLength))

	return a, nil
}

// Close 释放应用容器持有的资源
func (a *App) Close() error {
	if a.DB != nil {
		sqlDB, err := a.DB.DB()
		if err != nil {
			return fmt.Errorf("failed to get sql.DB: %w", err)
		}
		if err := sqlDB.Close(); err != nil {
			return fmt.Errorf("failed to close database: %w", err)
		}
		a.logger.Info("Database connection closed")
	}
	return nil
}

// Config 获取应用配置
func (a *App) Config() *AppConfig {
	return a.config
}

// Logger 获取日志器
func (a *App) Logger() *zap.Logger {
	return a.logger
}

// Version 获取版本信息
func (a *App) Version() pkgapp.VersionInfo {
	return pkgapp.VersionInfo{
		Version:   Version,
		GitTag:    GitTag,
		BuildTime: BuildTime,
	}
}

// IsProductionMode 是否为生产模式
func (a *App) IsProductionMode() bool {
	return a.config.Log.Production
}

// DefaultShutdownTimeout 默认关闭超时时间
const DefaultShutdownTimeout = 30 * time.Second

// Shutdown 优雅关闭应用容器
// 等待在途请求完成后关闭数据库连接
// ctx 用于控制关闭超时，如果为 nil 则使用默认 30 秒超时
func (a *App) Shutdown(ctx context.Context) error {
	if ctx == nil {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(context.Background(), DefaultShutdownTimeout)
		defer cancel()
	}

	var err error
	closed := false
	a.closeOnce.Do(func() {
		closed = true
		a.logger.Info("App container shutting down...")
		close(a.shutdownCh)

		done := make(chan struct{})
		go func() {
			a.wg.Wait()
			close(done)
		}()

		select {
		case <-done:
			a.logger.Info("All in-flight operations completed")
		case <-ctx.Done():
			a.logger.Warn("Shutdown timeout waiting for in-flight operations")
			err = fmt.Errorf("in-flight operations timeout: %w", ctx.Err())
		}

		if cerr := a.Close(); cerr != nil {
			if err == nil {
				err = cerr
			} else {
				err = fmt.Errorf("%v; %w", err, cerr)
			}
		}
	})
	if !closed {
		return nil
	}

	if err != nil {
		a.logger.Warn("App container shutdown completed with errors", zap.Error(err))
		return err
	}
	a.logger.Info("App container shutdown completed successfully")
	return nil
}

// IsShuttingDown 检查应用是否正在关闭
func (a *App) IsShuttingDown() bool {
	select {
	case <-a.shutdownCh:
		return true
	default:
		return false
	}
}

// ShutdownCh 返回关闭信号通道（用于监听关闭事件）
func (a *App) ShutdownCh() <-chan struct{} {
	return a.shutdownCh
}

// TrackOperation 跟踪在途操作（用于优雅关闭时等待）
// 返回一个函数，在操作完成时调用
func (a *App) TrackOperation() func() {
	a.wg.Add(1)
	return func() {
		a.wg.Done()
	}
}
