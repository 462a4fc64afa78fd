package router

import "github.com/gin-gonic/gin"

// gameRoutes defines the public catalog and its privileged mutations
func (r *Router) gameRoutes(rg *gin.RouterGroup) {
	games := rg.Group("/games")
	{
		games.GET("", r.gameHandler.List)

		admin := games.Group("/admin")
		admin.Use(r.jwtMw.OptionalAuth(), r.adminMw.RequireAdminOrMaster())
		{
			admin.POST("", r.gameHandler.Upsert)
			admin.POST("/delete", r.gameHandler.Delete)
			admin.POST("/clear", r.gameHandler.Clear)
		}
	}
}

// statsRoutes defines the visit counter endpoints
func (r *Router) statsRoutes(rg *gin.RouterGroup) {
	rg.POST("/visits", r.statsHandler.Visit)
	rg.GET("/visits", r.statsHandler.Visits)
}
