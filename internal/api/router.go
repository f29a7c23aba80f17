// Package api exposes extraction, stored families and recipe enhancement
// over HTTP.
package api

import (
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-contrib/requestid"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/ukaji3/recetario-go/internal/config"
	"github.com/ukaji3/recetario-go/internal/enhance"
	"github.com/ukaji3/recetario-go/internal/store"
	"github.com/ukaji3/recetario-go/pkg/recetario"
	"go.uber.org/zap"
)

// Server holds the dependencies of the HTTP handlers.
type Server struct {
	cfg      *config.Config
	store    store.Store
	enhancer *enhance.Service
	opts     recetario.Options
	log      *zap.Logger
}

// NewServer creates a Server. opts is used for every upload parse. A nil
// enhancer answers every request with the fallback set.
func NewServer(cfg *config.Config, st store.Store, enh *enhance.Service, opts recetario.Options, log *zap.Logger) *Server {
	if log == nil {
		log = zap.NewNop()
	}
	if enh == nil {
		enh = enhance.NewService(nil, 0, log)
	}
	return &Server{cfg: cfg, store: st, enhancer: enh, opts: opts, log: log}
}

// Router builds the gin engine.
func (s *Server) Router() *gin.Engine {
	if !s.cfg.App.Debug {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(recovery(s.log))
	r.Use(requestid.New(requestid.WithGenerator(func() string {
		return uuid.New().String()
	})))
	r.Use(accessLog(s.log))
	r.Use(cors.New(cors.Config{
		AllowOrigins:  s.cfg.Server.AllowOrigins,
		AllowMethods:  []string{"GET", "POST", "OPTIONS"},
		AllowHeaders:  []string{"Origin", "Content-Type", "Accept", "Authorization", "X-Request-ID"},
		ExposeHeaders: []string{"Content-Length", "X-Request-ID"},
		MaxAge:        12 * time.Hour,
	}))
	r.Use(bodySizeLimit(s.cfg.Server.MaxUploadBytes, s.log))

	r.GET("/health", s.health)

	v1 := r.Group("/api/v1")
	{
		v1.POST("/cookbook", s.parseCookbook)
		v1.GET("/families", s.listFamilies)
		v1.GET("/recipes/:id", s.getRecipe)
		v1.POST("/recipes/enhance", s.enhanceRecipe)
		v1.POST("/recipes/:id/enhance", s.enhanceStoredRecipe)
	}
	return r
}
