package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"redemption-service/internal/domain/auth"
	"redemption-service/internal/handler/api"
	"redemption-service/internal/handler/middleware"
	"redemption-service/internal/pkg/config"
)

type route struct {
	Method  string
	Path    string
	Handler gin.HandlerFunc
	Mw      []gin.HandlerFunc
}

type Handlers struct {
	Codes       *api.CodeHandler
	Redemptions *api.RedemptionHandler
	Sellers     *api.SellerHandler
	Admin       *api.AdminHandler
	Auth        *middleware.AuthMiddleware
	// Metrics serves /metrics; nil leaves the route unregistered.
	Metrics http.Handler
}

func NewRouter(engine *gin.Engine, cfg config.Config, h Handlers) {
	setupMiddleware(engine, cfg)
	setupRoutes(engine, h)
}

func setupMiddleware(engine *gin.Engine, cfg config.Config) {
	// Recovery must be first (outermost) to catch panics from all other middleware
	engine.Use(middleware.CustomRecovery())
	engine.Use(middleware.NewCORSMiddleware(cfg.CORS))
	engine.Use(middleware.Tracing())
	engine.Use(middleware.LoggingMiddleware(nil, cfg.Log))
	engine.Use(middleware.ErrorHandler())
}

func setupRoutes(engine *gin.Engine, h Handlers) {
	engine.GET("/health", healthCheck)
	if h.Metrics != nil {
		engine.GET("/metrics", gin.WrapH(h.Metrics))
	}

	if gin.Mode() == gin.DebugMode {
		engine.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	apiGroup := engine.Group("/api")
	apiGroup.Use(h.Auth.RequireAuth())
	{
		addRoutes(apiGroup.Group("/codes"), []route{
			{Method: http.MethodPost, Path: "/validate", Handler: h.Codes.Validate},
			{Method: http.MethodGet, Path: "/:code", Handler: h.Codes.Get},
		})

		addRoutes(apiGroup.Group("/redemptions"), []route{
			{Method: http.MethodPost, Path: "", Handler: h.Redemptions.Reserve},
			{Method: http.MethodGet, Path: "/:id", Handler: h.Redemptions.Get},
			{Method: http.MethodPost, Path: "/:id/confirm", Handler: h.Redemptions.Confirm},
			{Method: http.MethodPost, Path: "/:id/release", Handler: h.Redemptions.Release},
		})

		addRoutes(apiGroup.Group("/sellers"), []route{
			{Method: http.MethodGet, Path: "/:id/referral-stats", Handler: h.Sellers.ReferralStats},
		})

		addRoutes(apiGroup.Group("/admin"), []route{
			{
				Method:  http.MethodPost,
				Path:    "/reaper/sweep",
				Handler: h.Admin.Sweep,
				Mw:      []gin.HandlerFunc{h.Auth.RequireRoleAtLeast(auth.RoleOperator)},
			},
		})
	}
}

// @Summary Health check
// @Description Check if the service is healthy
// @Tags health
// @Produce json
// @Success 200 {object} map[string]string
// @Router /health [get]
func healthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "ok",
		"message": "Service is healthy",
	})
}

func addRoutes(g *gin.RouterGroup, rs []route) {
	for _, r := range rs {
		h := r.Handler
		if len(r.Mw) > 0 {
			h = chainHandlers(append(r.Mw, r.Handler)...)
		}
		switch r.Method {
		case http.MethodGet:
			g.GET(r.Path, h)
		case http.MethodPost:
			g.POST(r.Path, h)
		case http.MethodPut:
			g.PUT(r.Path, h)
		case http.MethodPatch:
			g.PATCH(r.Path, h)
		case http.MethodDelete:
			g.DELETE(r.Path, h)
		default:
			g.Any(r.Path, h)
		}
	}
}

func chainHandlers(hs ...gin.HandlerFunc) gin.HandlerFunc {
	return func(c *gin.Context) {
		for _, h := range hs {
			h(c)
			if c.IsAborted() {
				return
			}
		}
	}
}
