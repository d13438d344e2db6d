package httpx

import (
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/mdanyllo/UpaonServicesBackPrototipo/internal/http/handlers"
	"github.com/mdanyllo/UpaonServicesBackPrototipo/internal/http/middleware"
)

// BuildRouter wires every route group of the marketplace API
func BuildRouter(
	ah *handlers.AuthHandlers,
	ph *handlers.ProviderHandlers,
	rh *handlers.ReviewHandlers,
	payh *handlers.PaymentHandlers,
	adh *handlers.AdminHandlers,
	jwtmw *middleware.AuthMW,
	cb *middleware.CasbinMW,
	origins []string,
) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(cors.New(cors.Config{
		AllowOrigins: origins,
		AllowMethods: []string{"GET", "POST", "PUT", "PATCH", "DELETE"},
		AllowHeaders: []string{"Origin", "Content-Type", "Authorization"},
	}))

	r.GET("/", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status":  "ok",
			"api":     "Upaon Services",
			"version": "1.0.0",
		})
	})

	auth := r.Group("/auth")
	auth.POST("/register", ah.Register)
	auth.POST("/verify", ah.VerifyEmail)
	auth.POST("/resend-code", ah.ResendCode)
	auth.POST("/login", ah.Login)
	auth.POST("/refresh", ah.Refresh)

	r.GET("/providers", ph.Search)
	r.GET("/providers/:id", ph.Detail)
	r.GET("/providers/:id/stats", ph.ContactStats)
	r.POST("/providers/:id/contact", ph.Contact)
	r.GET("/categories", ph.Categories)
	r.GET("/categories/:category", ph.ByCategory)
	r.GET("/stats", ph.PublicStats)
	r.GET("/reviews/:providerId", rh.ListByProvider)

	r.POST("/payment", payh.Charge)
	r.POST("/payment/webhook", payh.Webhook)

	authed := r.Group("/").Use(jwtmw.WithJWT())
	authed.GET("/auth/me", ah.Me)
	authed.POST("/auth/logout", ah.Logout)
	authed.POST("/users/avatar", ah.UploadAvatar)
	authed.POST("/reviews", rh.Create)

	adm := r.Group("/admin").Use(jwtmw.WithJWT(), cb.Enforce())
	adm.GET("/stats", adh.Stats)
	adm.GET("/users", adh.ListUsers)
	adm.PATCH("/providers/:providerId/toggle-feature", adh.ToggleFeature)
	adm.PATCH("/users/:id/toggle-active", adh.ToggleActive)

	return r
}
