package router

import "github.com/gin-gonic/gin"

// chatRoutes defines the user-facing chat plus the operator dashboard
func (r *Router) chatRoutes(rg *gin.RouterGroup) {
	chat := rg.Group("/chat")
	chat.Use(r.jwtMw.RequireAuth())
	{
		chat.POST("/send", r.chatHandler.SendMessage)
		chat.GET("/messages", r.chatHandler.Messages)
	}

	admin := rg.Group("/chat/admin")
	admin.Use(r.jwtMw.OptionalAuth(), r.adminMw.RequireAdminOrMaster())
	{
		admin.GET("/list", r.chatAdminHandler.ListChats)
		admin.GET("/:chatId/messages", r.chatAdminHandler.ChatMessages)
		admin.POST("/:chatId/send", r.chatAdminHandler.SendMessage)
	}
}
