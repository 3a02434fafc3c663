package adapters

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/vexley/opdesc/pkg/opdesc"
)

// GinAdapter mounts command descriptors onto a Gin engine
type GinAdapter struct {
	engine *gin.Engine
}

// NewGinAdapter creates a Gin adapter for an existing engine
func NewGinAdapter(e *gin.Engine) *GinAdapter {
	return &GinAdapter{engine: e}
}

// NewDefaultGinAdapter creates a Gin adapter with a fresh engine
func NewDefaultGinAdapter() *GinAdapter {
	return &GinAdapter{engine: gin.New()}
}

// Engine returns the underlying Gin engine
func (a *GinAdapter) Engine() *gin.Engine {
	return a.engine
}

// Mount registers a route for every mountable command in the description
func (a *GinAdapter) Mount(desc *opdesc.Description, invoker Invoker, insp *opdesc.Inspector) {
	for _, cmd := range desc.Commands() {
		if !mountable(cmd) {
			continue
		}
		a.engine.Handle(cmd.Method(), ColonPath(cmd.URI()), a.handler(cmd, invoker, insp))
	}
}

func (a *GinAdapter) handler(cmd *opdesc.Command, invoker Invoker, insp *opdesc.Inspector) gin.HandlerFunc {
	paramNames := URIParams(cmd.URI())

	return func(c *gin.Context) {
		c.Header("X-Request-ID", uuid.NewString())

		cfg := opdesc.NewConfig(nil)
		for _, name := range paramNames {
			if value := c.Param(name); value != "" {
				cfg.Set(name, value)
			}
		}
		for key, values := range c.Request.URL.Query() {
			if len(values) > 0 {
				cfg.Set(key, values[0])
			}
		}
		if err := c.Request.ParseForm(); err == nil {
			for key, values := range c.Request.PostForm {
				if len(values) > 0 {
					cfg.Set(key, values[0])
				}
			}
		}

		if err := cmd.Validate(cfg, insp); err != nil {
			if problems := validationProblems(err); problems != nil {
				c.JSON(http.StatusBadRequest, errorBody(cmd, problems))
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}

		result, err := invoker.Invoke(c.Request.Context(), cmd, cfg)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		if result == nil {
			c.Status(http.StatusNoContent)
			return
		}
		c.JSON(http.StatusOK, result)
	}
}
