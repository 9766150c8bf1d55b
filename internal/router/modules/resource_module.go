package modules

import (
	"github.com/gin-gonic/gin"

	handlers "github.com/oksasatya/notegenius-api/internal/interface/http"
)

// CRUDHandler is implemented by every resource handler.
type CRUDHandler interface {
	List(c *gin.Context)
	Create(c *gin.Context)
	Get(c *gin.Context)
	Update(c *gin.Context)
	Delete(c *gin.Context)
}

// ResourceModule registers the five CRUD routes for one collection.
type ResourceModule struct {
	Path    string
	Handler CRUDHandler
}

func NewResourceModule(path string, h CRUDHandler) *ResourceModule {
	return &ResourceModule{Path: path, Handler: h}
}

func (m *ResourceModule) Register(rg *gin.RouterGroup) {
	g := rg.Group(m.Path)
	g.GET("", m.Handler.List)
	g.POST("", m.Handler.Create)
	g.GET("/:id", m.Handler.Get)
	g.PUT("/:id", m.Handler.Update)
	g.DELETE("/:id", m.Handler.Delete)
}

// WelcomeModule serves GET /api.
type WelcomeModule struct{}

func NewWelcomeModule() *WelcomeModule { return &WelcomeModule{} }

func (m *WelcomeModule) Register(rg *gin.RouterGroup) {
	rg.GET("", handlers.Welcome)
}
