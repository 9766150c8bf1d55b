package modules

import (
	"github.com/gin-gonic/gin"

	handlers "github.com/oksasatya/notegenius-api/internal/interface/http"
)

// AuthModule exposes the public auth endpoints. Mounted under /auth.
type AuthModule struct {
	Handler *handlers.AuthHandler
}

func NewAuthModule(h *handlers.AuthHandler) *AuthModule {
	return &AuthModule{Handler: h}
}

func (m *AuthModule) Register(rg *gin.RouterGroup) {
	rg.POST("/register", m.Handler.Register)
	rg.POST("/login", m.Handler.Login)
	rg.POST("/reset-password", m.Handler.RequestReset)
	rg.POST("/reset-password/confirm", m.Handler.ConfirmReset)
	rg.GET("/verify", m.Handler.Verify)
}
