package router

import (
	"net/http"

	"github.com/tw092669-ctrl/gecko/internal/analysis"
	"github.com/tw092669-ctrl/gecko/internal/config"
	"github.com/tw092669-ctrl/gecko/internal/handler"
	"github.com/tw092669-ctrl/gecko/internal/syncx"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// SetupRouter configures Gin engine, static resources and the API surface.
func SetupRouter(cfg *config.Config, db *gorm.DB, publisher *syncx.Publisher, analyzer *analysis.Analyzer) *gin.Engine {
	if cfg.Server.Mode != "" {
		gin.SetMode(cfg.Server.Mode)
	}
	r := gin.New()
	r.Use(gin.Logger(), gin.Recovery())

	// 两个单页应用的静态文件
	r.Static("/mala", "./web/mala")           // 念佛计数
	r.Static("/inventory", "./web/inventory") // 库存报价

	r.GET("/", func(c *gin.Context) {
		c.Redirect(http.StatusFound, "/mala/")
	})

	// ====== API ======
	api := r.Group("/api")

	// ---- 念佛计数 ----
	mantraHandler := handler.NewMantraHandler(db, publisher)
	api.GET("/mantras", mantraHandler.ListMantras)
	api.POST("/mantras", mantraHandler.CreateMantra)
	api.PUT("/mantras/:id", mantraHandler.UpdateMantra)
	api.DELETE("/mantras/:id", mantraHandler.DeleteMantra)
	api.POST("/mantras/:id/increment", mantraHandler.IncrementMantra)
	api.POST("/mantras/:id/reset", mantraHandler.ResetMantra)
	api.POST("/mantras/:id/pin", mantraHandler.TogglePin)

	logHandler := handler.NewLogHandler(db)
	api.GET("/logs", logHandler.ListLogs)

	periodHandler := handler.NewPeriodHandler(db)
	api.GET("/period", periodHandler.GetPeriod)
	api.PUT("/period", periodHandler.SetPeriod)
	api.DELETE("/period", periodHandler.ClearPeriod)

	profileHandler := handler.NewProfileHandler(db)
	api.GET("/profile", profileHandler.GetProfile)
	api.PUT("/profile", profileHandler.UpdateProfile)
	api.GET("/sheet", profileHandler.GetSheet)
	api.PUT("/sheet", profileHandler.UpdateSheet)

	// 深链接配置，一条分享连结只生效一次
	bootstrapHandler := handler.NewBootstrapHandler(db)
	api.POST("/config/bootstrap", bootstrapHandler.Bootstrap)

	quoteHandler := handler.NewQuoteHandler()
	api.GET("/quotes", quoteHandler.ListQuotes)
	api.GET("/quotes/random", quoteHandler.RandomQuote)

	// ---- 库存报价 ----
	productHandler := handler.NewProductHandler(db)
	api.POST("/products", productHandler.CreateProduct)
	api.GET("/products", productHandler.ListProducts)
	api.PUT("/products/:id", productHandler.UpdateProduct)
	api.DELETE("/products/:id", productHandler.DeleteProduct)
	api.POST("/categories", productHandler.CreateCategory)
	api.GET("/categories", productHandler.ListCategories)
	api.DELETE("/categories/:id", productHandler.DeleteCategory)
	api.GET("/refs/:kind", productHandler.ListRefs)
	api.POST("/refs/:kind", productHandler.AddRef)
	api.DELETE("/refs/:kind/:name", productHandler.RemoveRef)
	api.GET("/inventory/quote-sheet", productHandler.QuoteSheet)

	importExportHandler := handler.NewImportExportHandler(db)
	api.POST("/inventory/import", importExportHandler.ImportXLSX)
	api.GET("/inventory/export/csv", importExportHandler.ExportCSV)
	api.GET("/inventory/export/xlsx", importExportHandler.ExportXLSX)

	analysisHandler := handler.NewAnalysisHandler(db, analyzer)
	api.POST("/inventory/analysis", analysisHandler.AnalyzeInventory)

	return r
}
