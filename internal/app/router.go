package app

import (
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/municatastro/catastro-backend/internal/handlers"
)

func wireRouter(cfg Config, h Handlers) *gin.Engine {
	router := gin.Default()

	router.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.CORSAllowOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Authorization", "Content-Type", "X-Requested-With"},
		AllowCredentials: true,
	}))

	router.GET("/healthcheck", handlers.HealthCheck)

	api := router.Group("/api")

	lotes := api.Group("/lotes")
	{
		lotes.POST("", h.Lote.Create)
		lotes.GET("", h.Lote.List)
		lotes.GET("/:id", h.Lote.GetByID)
		lotes.PUT("/:id", h.Lote.Update)
		lotes.DELETE("/:id", h.Lote.Delete)
		lotes.GET("/codigo/:codigo", h.Lote.GetByCodigo)
		lotes.GET("/sector/:sector", h.Lote.GetBySector)
		lotes.GET("/sector/:sector/count", h.Lote.CountBySector)
		lotes.GET("/sector/:sector/manzana/:manzana", h.Lote.GetByManzana)
		lotes.GET("/sector/:sector/manzana/:manzana/count", h.Lote.CountByManzana)
	}

	fichas := api.Group("/fichas")
	{
		fichas.POST("", h.Ficha.Create)
		fichas.GET("", h.Ficha.List)
		fichas.GET("/codigo-completo", h.Ficha.GetByCodigoCompleto)
		fichas.GET("/fecha-levantamiento", h.Ficha.GetByFechaLevantamiento)
		fichas.GET("/area-terreno", h.Ficha.GetByAreaTerreno)
		fichas.GET("/area-construccion", h.Ficha.GetByAreaConstruccion)
		fichas.GET("/:id", h.Ficha.GetByID)
		fichas.PUT("/:id", h.Ficha.Update)
		fichas.DELETE("/:id", h.Ficha.Delete)
		fichas.GET("/lote/:codigo", h.Ficha.GetByCodigoLote)
		fichas.GET("/lote/:codigo/count", h.Ficha.CountByCodigoLote)
		fichas.GET("/titular/:documento", h.Ficha.GetByNumeroDocumento)
		fichas.GET("/sector/:sector", h.Ficha.GetBySector)
		fichas.GET("/sector/:sector/count", h.Ficha.CountBySector)
		fichas.GET("/sector/:sector/manzana/:manzana", h.Ficha.GetByManzana)
		fichas.GET("/tipo-predio/:tipo", h.Ficha.GetByTipoPredio)
		fichas.GET("/tipo-predio/:tipo/count", h.Ficha.CountByTipoPredio)
		fichas.GET("/uso-predio/:uso", h.Ficha.GetByUsoPredio)
		fichas.GET("/clasificacion/:clasificacion", h.Ficha.GetByClasificacion)
	}

	estimaciones := api.Group("/estimaciones")
	{
		estimaciones.POST("", h.Estimacion.Create)
		estimaciones.GET("/:id", h.Estimacion.GetByID)
		estimaciones.PUT("/:id", h.Estimacion.Update)
		estimaciones.DELETE("/:id", h.Estimacion.Delete)
		estimaciones.GET("/lote/:codigo", h.Estimacion.GetByCodigoLote)
		estimaciones.DELETE("/lote/:codigo", h.Estimacion.DeleteByLote)
		estimaciones.GET("/lote-id/:id", h.Estimacion.GetByLoteID)
		estimaciones.GET("/tipo-terreno/:tipo", h.Estimacion.GetByTipoTerreno)
		estimaciones.GET("/tipo-terreno/:tipo/count", h.Estimacion.CountByTipoTerreno)
	}

	fotos := api.Group("/fotos")
	{
		fotos.POST("", h.Foto.Create)
		fotos.GET("/:id", h.Foto.GetByID)
		fotos.DELETE("/:id", h.Foto.Delete)
		fotos.GET("/lote/:codigo", h.Foto.GetByCodigoLote)
		fotos.GET("/lote-id/:id", h.Foto.GetByLoteID)
		fotos.GET("/tipo/:tipo", h.Foto.GetByTipoFoto)
	}

	return router
}
