package http

import (
	stdhttp "net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/avelichko/gameroom-server/internal/auth"
	"github.com/avelichko/gameroom-server/internal/calc"
	"github.com/avelichko/gameroom-server/internal/config"
	"github.com/avelichko/gameroom-server/internal/core"
	"github.com/avelichko/gameroom-server/internal/store"
)

// NewServer builds the HTTP server: REST API plus the room websocket.
func NewServer(registry *core.Registry, st store.Store, jwtCfg *auth.JWTConfig, calcSvc *calc.Service, cfg *config.Config, logger *zerolog.Logger) *stdhttp.Server {
	gin.SetMode(gin.ReleaseMode)

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(LoggerMiddleware(logger))

	router.GET("/healthz", func(c *gin.Context) {
		c.String(stdhttp.StatusOK, "ok")
	})

	userHandlers := NewUserHandlers(st, jwtCfg, logger)
	router.POST("/api/users", userHandlers.Register)
	router.GET("/api/users", userHandlers.List)
	router.GET("/api/users/:id", userHandlers.GetByID)
	router.GET("/api/me", AuthMiddleware(jwtCfg, logger), userHandlers.Me)

	roomHandlers := NewRoomHandlers(registry, logger)
	router.GET("/api/rooms", roomHandlers.List)

	calcHandlers := NewCalcHandlers(calcSvc, logger)
	router.POST("/api/calc/mul", calcHandlers.Mul)
	router.POST("/api/calc/sum", calcHandlers.Sum)
	router.POST("/api/calc/ops", calcHandlers.Operations)
	router.POST("/api/calc/vector-sum", calcHandlers.VectorSum)

	wsHandler := NewWSHandler(registry, st, cfg.WSCommandLimit, logger)
	router.GET("/ws", gin.WrapH(wsHandler))

	return &stdhttp.Server{
		Addr:              cfg.Addr,
		Handler:           router,
		ReadHeaderTimeout: cfg.ReadHeaderTimeout,
	}
}
