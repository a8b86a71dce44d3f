package handler

import (
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"github.com/ericoliveiras/avalia-loja/internal/middleware"
	"github.com/ericoliveiras/avalia-loja/internal/model"
)

// RouterConfig reúne tudo o que o roteador precisa.
type RouterConfig struct {
	DB          *gorm.DB
	Log         *logrus.Logger
	Auth        *AuthHandler
	Stores      *StoreHandler
	Admin       *AdminHandler
	LoginLimit  *middleware.RateLimiter
	CORSOrigins []string
	// TrustedProxies lista os proxies cujo X-Forwarded-For é aceito. Vazio
	// faz o IP do cliente ser sempre o da conexão.
	TrustedProxies []string
}

func NewRouter(rc RouterConfig) *gin.Engine {
	RegisterValidators()

	router := gin.New()
	if err := router.SetTrustedProxies(rc.TrustedProxies); err != nil {
		rc.Log.WithError(err).Warn("TRUSTED_PROXIES inválido, nenhum proxy será aceito")
		_ = router.SetTrustedProxies(nil)
	}
	// Metrics vem antes da recuperação: pânicos também contam como 500.
	router.Use(
		middleware.RequestID(),
		middleware.Logger(rc.Log),
		middleware.Metrics(),
		gin.CustomRecovery(func(c *gin.Context, recovered any) {
			rc.Log.WithFields(logrus.Fields{
				"request_id": middleware.GetRequestID(c),
				"panic":      recovered,
			}).Error("pânico ao atender requisição")
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "Erro interno do servidor."})
		}),
	)
	if len(rc.CORSOrigins) > 0 {
		router.Use(cors.New(cors.Config{
			AllowOrigins:     rc.CORSOrigins,
			AllowMethods:     []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodOptions},
			AllowHeaders:     []string{"Origin", "Content-Type", "Authorization", middleware.RequestIDHeader},
			ExposeHeaders:    []string{middleware.RequestIDHeader},
			AllowCredentials: true,
			MaxAge:           12 * time.Hour,
		}))
	}
	router.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Rota não encontrada."})
	})

	router.GET("/healthz", Health(rc.DB, rc.Log))
	router.GET("/metrics", middleware.MetricsHandler())

	public := router.Group("/")
	if rc.LoginLimit != nil {
		public.POST("/login", rc.LoginLimit.Handler(), rc.Auth.Login)
		public.POST("/signup", rc.LoginLimit.Handler(), rc.Auth.Signup)
	} else {
		public.POST("/login", rc.Auth.Login)
		public.POST("/signup", rc.Auth.Signup)
	}
	public.POST("/logout", rc.Auth.Logout)

	authed := router.Group("/")
	authed.Use(rc.Auth.AuthRequired())
	{
		authed.GET("/auth/me", rc.Auth.Me)
		authed.PUT("/user/password", rc.Auth.ChangePassword)
		authed.GET("/stores", rc.Stores.ListStores)
		authed.POST("/ratings", rc.Auth.RoleRequired(model.RoleUser), rc.Stores.SubmitRating)
		authed.GET("/store-owner/dashboard", rc.Auth.RoleRequired(model.RoleStoreOwner), rc.Stores.OwnerDashboard)
	}

	admin := router.Group("/admin")
	admin.Use(rc.Auth.AuthRequired(), rc.Auth.RoleRequired(model.RoleAdmin))
	{
		admin.GET("/dashboard", rc.Admin.Dashboard)
		admin.GET("/users", rc.Admin.ListUsers)
		admin.POST("/users", rc.Admin.CreateUser)
		admin.GET("/users/:id", rc.Admin.GetUser)
		admin.GET("/stores", rc.Admin.ListStores)
		admin.POST("/stores", rc.Admin.CreateStore)
	}

	return router
}
