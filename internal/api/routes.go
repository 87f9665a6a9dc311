package api

import (
	"github.com/gin-gonic/gin"

	"cvsite/internal/api/middleware"
)

// Handlers 汇总各路由所需的处理器。
type Handlers struct {
	Auth      *AuthHandler
	Sites     *SiteHandler
	CV        *CVHandler
	Uploads   *UploadHandler
	Contact   *ContactHandler
	Templates *TemplateHandler
	Ws        *WsHandler
}

// RegisterRoutes 在 /api 下注册全部接口。
func RegisterRoutes(router *gin.Engine, h Handlers, tokens middleware.TokenParser) {
	authMiddleware := middleware.AuthMiddleware(tokens)

	api := router.Group("/api")
	{
		api.GET("/ws", h.Ws.HandleConnection)
		api.POST("/contact", h.Contact.Submit)
		api.GET("/templates", h.Templates.ListTemplates)

		authGroup := api.Group("/auth")
		{
			authGroup.POST("/register", h.Auth.Register)
			authGroup.POST("/login", h.Auth.Login)
			authGroup.POST("/refresh", h.Auth.Refresh)
			authGroup.POST("/logout", h.Auth.Logout)
		}

		cvGroup := api.Group("/cv")
		cvGroup.Use(authMiddleware)
		{
			cvGroup.POST("/analyze", h.CV.Analyze)
			cvGroup.GET("/analyze", h.CV.GetCV)
		}

		sitesGroup := api.Group("/sites")
		sitesGroup.Use(authMiddleware)
		{
			sitesGroup.GET("", h.Sites.ListSites)
			sitesGroup.POST("", h.Sites.CreateSite)
		}

		siteGroup := api.Group("/site")
		siteGroup.Use(authMiddleware)
		{
			siteGroup.GET("", h.Sites.GetSite)
			siteGroup.DELETE("", h.Sites.DeleteSite)
			siteGroup.PUT("/cv", h.Sites.UpdateCV)
			siteGroup.POST("/generate", h.Sites.Generate)
			siteGroup.GET("/generate", h.Sites.GenerationStatus)
			siteGroup.POST("/regenerate", h.Sites.Regenerate)
			siteGroup.POST("/chat-analyze", h.Sites.ChatAnalyze)
			siteGroup.POST("/revise", h.Sites.Revise)
			siteGroup.GET("/preview", h.Sites.Preview)
			siteGroup.POST("/publish", h.Sites.Publish)
			siteGroup.POST("/unpublish", h.Sites.Unpublish)
		}

		uploadGroup := api.Group("/upload")
		uploadGroup.Use(authMiddleware)
		{
			uploadGroup.POST("/portfolio", h.Uploads.UploadPortfolio)
			uploadGroup.DELETE("/portfolio", h.Uploads.DeletePortfolio)
			uploadGroup.POST("/profile-photo", h.Uploads.UploadProfilePhoto)
			uploadGroup.DELETE("/profile-photo", h.Uploads.DeleteProfilePhoto)
		}
	}
}
