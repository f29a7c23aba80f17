package api

import (
	"errors"
	"net/http"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/gin-contrib/requestid"
	"github.com/gin-gonic/gin"
	"github.com/ukaji3/recetario-go/internal/enhance"
	"github.com/ukaji3/recetario-go/internal/store"
	"github.com/ukaji3/recetario-go/pkg/recetario"
	"github.com/ukaji3/recetario-go/pkg/recetario/models"
	"go.uber.org/zap"
)

// HealthResponse is the body of GET /health.
type HealthResponse struct {
	Status    string    `json:"status"`
	Timestamp time.Time `json:"timestamp"`
	Version   string    `json:"version"`
	Store     string    `json:"store"`
	Enhancer  string    `json:"enhancer"`
}

// CookbookResponse is the body of POST /api/v1/cookbook.
type CookbookResponse struct {
	UploadID string           `json:"upload_id"`
	Saved    bool             `json:"saved"`
	Cookbook *models.Cookbook `json:"cookbook"`
}

// EnhancementResponse pairs a recipe id with its suggestions.
type EnhancementResponse struct {
	RecipeID    string             `json:"recipe_id,omitempty"`
	Enhancement models.Enhancement `json:"enhancement"`
}

func (s *Server) health(c *gin.Context) {
	c.JSON(http.StatusOK, HealthResponse{
		Status:    "ok",
		Timestamp: time.Now().UTC(),
		Version:   s.cfg.App.Version,
		Store:     s.cfg.Store.Driver,
		Enhancer:  s.enhancer.ProviderName(),
	})
}

var workbookExts = map[string]bool{".xlsx": true, ".xlsm": true}

func (s *Server) parseCookbook(c *gin.Context) {
	fh, err := c.FormFile("file")
	if err != nil {
		s.fail(c, NewError(ErrCodeInvalidRequest, "multipart field \"file\" is required", http.StatusBadRequest, err))
		return
	}
	if !workbookExts[strings.ToLower(filepath.Ext(fh.Filename))] {
		s.fail(c, NewError(ErrCodeInvalidRequest, "only .xlsx workbooks are accepted", http.StatusBadRequest, nil))
		return
	}
	save, _ := strconv.ParseBool(c.DefaultQuery("save", "false"))

	f, err := fh.Open()
	if err != nil {
		s.fail(c, NewError(ErrCodeInvalidRequest, "cannot read upload", http.StatusBadRequest, err))
		return
	}
	defer f.Close()

	uploadID := requestid.Get(c)
	opts := s.opts
	opts.Logger = s.log.With(zap.String("upload_id", uploadID))

	cb, err := recetario.ExtractReader(f, filepath.Base(fh.Filename), opts)
	if err != nil {
		if errors.Is(err, recetario.ErrDocumentUnreadable) {
			s.fail(c, NewError(ErrCodeDocumentUnreadable, "the upload is not a readable xlsx workbook", http.StatusUnprocessableEntity, err))
			return
		}
		s.fail(c, NewError(ErrCodeInternalError, "extraction failed", http.StatusInternalServerError, err))
		return
	}

	if save {
		if err := s.store.Save(c.Request.Context(), cb.Families); err != nil {
			s.fail(c, NewError(ErrCodeStoreUnavailable, "failed to save families", http.StatusServiceUnavailable, err))
			return
		}
	}

	c.JSON(http.StatusOK, CookbookResponse{UploadID: uploadID, Saved: save, Cookbook: cb})
}

// loadFamilies maps store failures to API errors.
func (s *Server) loadFamilies(c *gin.Context) ([]models.Family, bool) {
	families, err := s.store.Load(c.Request.Context())
	switch {
	case err == nil:
		return families, true
	case errors.Is(err, store.ErrNotFound):
		s.fail(c, NewError(ErrCodeNotFound, "no families stored", http.StatusNotFound, err))
	default:
		s.fail(c, NewError(ErrCodeStoreUnavailable, "store unavailable", http.StatusServiceUnavailable, err))
	}
	return nil, false
}

func (s *Server) listFamilies(c *gin.Context) {
	families, ok := s.loadFamilies(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, gin.H{"families": families})
}

func (s *Server) storedRecipe(c *gin.Context) (models.Recipe, bool) {
	families, ok := s.loadFamilies(c)
	if !ok {
		return models.Recipe{}, false
	}
	id := c.Param("id")
	r, found := models.FindRecipe(families, id)
	if !found {
		s.fail(c, NewError(ErrCodeNotFound, "recipe not found: "+id, http.StatusNotFound, nil))
		return models.Recipe{}, false
	}
	return r, true
}

func (s *Server) getRecipe(c *gin.Context) {
	r, ok := s.storedRecipe(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, r)
}

func (s *Server) enhanceRecipe(c *gin.Context) {
	var r models.Recipe
	if err := c.ShouldBindJSON(&r); err != nil {
		s.fail(c, NewError(ErrCodeInvalidRequest, "body must be a recipe", http.StatusBadRequest, err))
		return
	}
	if strings.TrimSpace(r.Name) == "" {
		s.fail(c, NewError(ErrCodeInvalidRequest, "recipe name is required", http.StatusBadRequest, nil))
		return
	}
	s.respondEnhancement(c, r)
}

func (s *Server) enhanceStoredRecipe(c *gin.Context) {
	r, ok := s.storedRecipe(c)
	if !ok {
		return
	}
	s.respondEnhancement(c, r)
}

// respondEnhancement always answers 200, with the fallback set when the
// request is cancelled first.
func (s *Server) respondEnhancement(c *gin.Context, r models.Recipe) {
	ctx := c.Request.Context()
	var e models.Enhancement
	select {
	case e = <-s.enhancer.EnhanceAsync(ctx, r):
	case <-ctx.Done():
		e = enhance.Fallback()
	}
	c.JSON(http.StatusOK, EnhancementResponse{RecipeID: r.ID, Enhancement: e})
}
