package router

import "github.com/gin-gonic/gin"

// authRoutes defines account registration and login
func (r *Router) authRoutes(rg *gin.RouterGroup) {
	auth := rg.Group("/auth")
	{
		auth.POST("/register", r.authHandler.Register)
		auth.POST("/login", r.authHandler.Login)
	}
}

// userRoutes defines the authenticated account surface
func (r *Router) userRoutes(rg *gin.RouterGroup) {
	users := rg.Group("/users")
	users.Use(r.jwtMw.RequireAuth())
	{
		users.GET("/me", r.authHandler.Me)
		users.POST("/xp", r.userHandler.AddXP)
	}
}
