package router

import "github.com/gin-gonic/gin"

// Module registers its routes on the group it was mounted under via Registry.Add.
type Module interface {
	Register(rg *gin.RouterGroup)
}
