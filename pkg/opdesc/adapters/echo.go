package adapters

import (
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/vexley/opdesc/pkg/opdesc"
)

// EchoAdapter mounts command descriptors onto an Echo v4 engine
type EchoAdapter struct {
	engine *echo.Echo
}

// NewEchoAdapter creates an Echo adapter for an existing engine
func NewEchoAdapter(e *echo.Echo) *EchoAdapter {
	return &EchoAdapter{engine: e}
}

// NewDefaultEchoAdapter creates an Echo adapter with a fresh engine
func NewDefaultEchoAdapter() *EchoAdapter {
	return &EchoAdapter{engine: echo.New()}
}

// Engine returns the underlying Echo instance
func (a *EchoAdapter) Engine() *echo.Echo {
	return a.engine
}

// Mount registers a route for every mountable command in the description.
// A nil inspector defers to the process-wide default.
func (a *EchoAdapter) Mount(desc *opdesc.Description, invoker Invoker, insp *opdesc.Inspector) {
	for _, cmd := range desc.Commands() {
		if !mountable(cmd) {
			continue
		}
		a.engine.Add(cmd.Method(), ColonPath(cmd.URI()), a.handler(cmd, invoker, insp))
	}
}

func (a *EchoAdapter) handler(cmd *opdesc.Command, invoker Invoker, insp *opdesc.Inspector) echo.HandlerFunc {
	paramNames := URIParams(cmd.URI())

	return func(c echo.Context) error {
		c.Response().Header().Set(echo.HeaderXRequestID, uuid.NewString())

		cfg := opdesc.NewConfig(nil)
		for _, name := range paramNames {
			if value := c.Param(name); value != "" {
				cfg.Set(name, value)
			}
		}
		for key, values := range c.QueryParams() {
			if len(values) > 0 {
				cfg.Set(key, values[0])
			}
		}
		if form, err := c.FormParams(); err == nil {
			for key, values := range form {
				if len(values) > 0 {
					cfg.Set(key, values[0])
				}
			}
		}

		if err := cmd.Validate(cfg, insp); err != nil {
			if problems := validationProblems(err); problems != nil {
				return c.JSON(http.StatusBadRequest, errorBody(cmd, problems))
			}
			return err
		}

		result, err := invoker.Invoke(c.Request().Context(), cmd, cfg)
		if err != nil {
			return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
		}
		if result == nil {
			return c.NoContent(http.StatusNoContent)
		}
		return c.JSON(http.StatusOK, result)
	}
}
