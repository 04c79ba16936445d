package routers

import (
	"github.com/haierkeys/product-note-service/internal/app"
	"github.com/haierkeys/product-note-service/internal/middleware"
	"github.com/haierkeys/product-note-service/internal/routers/api_router"
	"github.com/haierkeys/product-note-service/pkg/limiter"

	"github.com/gin-gonic/gin"
	ut "github.com/go-playground/universal-translator"
)

// NewRouter 创建公共路由
// metrics may be nil, it is created once per process because collectors register globally
func NewRouter(appContainer *app.App, uni *ut.UniversalTranslator, metrics *middleware.HTTPMetrics) *gin.Engine {

	// 获取配置
	cfg := appContainer.Config()

	methodLimiters := limiter.NewMethodLimiter().AddBuckets(cfg.BucketRules()...)

	r := gin.New()

	api := r.Group("/api")
	{
		api.Use(middleware.AppInfo(app.Name, appContainer.Version().Version))
		api.Use(middleware.TraceMiddleware(cfg.TracerMiddlewareConfig())) // Trace ID 中间件
		if metrics != nil {
			api.Use(metrics.Handler())
		}
		api.Use(middleware.RateLimiter(methodLimiters))
		api.Use(middleware.ContextTimeout(cfg.ContextTimeout()))
		api.Use(middleware.LangWithTranslator(uni))
		api.Use(middleware.AccessLogWithLogger(appContainer.Logger()))
		api.Use(middleware.RecoveryWithLogger(appContainer.Logger()))

		// 创建 Handlers（注入 App Container）
		versionHandler := api_router.NewVersionHandler(appContainer)
		healthHandler := api_router.NewHealthHandler(appContainer)
		noteHandler := api_router.NewProductNoteHandler(appContainer)

		// 无需认证
		api.GET("/version", versionHandler.ServerVersion)
		api.GET("/health", healthHandler.Check)

		admin := api.Group("", middleware.SimpleAuthTokenWithConfig(cfg.Security.AuthToken))
		{
			admin.GET("/product", noteHandler.GetProduct)
			admin.GET("/product/notes", noteHandler.List)

			admin.POST("/product/note", noteHandler.Create)
			admin.POST("/product/note/quick", noteHandler.QuickCreate)
			admin.POST("/product/note/guarded", noteHandler.AddToProduct)

			admin.PUT("/product/note", noteHandler.Update)
			admin.PUT("/product/note/safe", noteHandler.UpdateSafe)
			admin.PUT("/product/note/solved", noteHandler.UpdateSolved)
			admin.PUT("/product/note/history", noteHandler.UpdateWithHistory)

			admin.POST("/product/notes", noteHandler.CreateMany)
			admin.POST("/product/notes/bulk", noteHandler.BulkUpsert)

			admin.DELETE("/product/note", noteHandler.Delete)
			admin.DELETE("/product/notes", noteHandler.DeleteMany)
		}
	}

	r.NoRoute(middleware.LangWithTranslator(uni), middleware.NoFound())

	return r
}
