package router

import "github.com/gin-gonic/gin"

// tokenRoutes defines token issuance, redemption and premium lookups.
// Redemption is public: the frontend redeems on behalf of the logged-in
// user by id, and issuance is gated behind the admin key or master role.
func (r *Router) tokenRoutes(rg *gin.RouterGroup) {
	tokens := rg.Group("/tokens")
	{
		tokens.POST("/redeem", r.tokenHandler.Redeem)

		privileged := tokens.Group("")
		privileged.Use(r.jwtMw.OptionalAuth(), r.adminMw.RequireAdminOrMaster())
		{
			privileged.POST("/issue", r.tokenHandler.Issue)
		}
	}

	premium := rg.Group("/premium")
	{
		premium.GET("/count", r.tokenHandler.PremiumTotal)
		premium.GET("/:userId", r.tokenHandler.PremiumStatus)
	}
}
