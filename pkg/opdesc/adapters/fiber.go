package adapters

import (
	"net/http"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/vexley/opdesc/pkg/opdesc"
)

// FiberAdapter mounts command descriptors onto a Fiber app
type FiberAdapter struct {
	app *fiber.App
}

// NewFiberAdapter creates a Fiber adapter for an existing app
func NewFiberAdapter(app *fiber.App) *FiberAdapter {
	return &FiberAdapter{app: app}
}

// NewDefaultFiberAdapter creates a Fiber adapter with a fresh app
func NewDefaultFiberAdapter() *FiberAdapter {
	return &FiberAdapter{app: fiber.New()}
}

// App returns the underlying Fiber app
func (a *FiberAdapter) App() *fiber.App {
	return a.app
}

// Mount registers a route for every mountable command in the description
func (a *FiberAdapter) Mount(desc *opdesc.Description, invoker Invoker, insp *opdesc.Inspector) {
	for _, cmd := range desc.Commands() {
		if !mountable(cmd) {
			continue
		}
		a.app.Add(cmd.Method(), ColonPath(cmd.URI()), a.handler(cmd, invoker, insp))
	}
}

func (a *FiberAdapter) handler(cmd *opdesc.Command, invoker Invoker, insp *opdesc.Inspector) fiber.Handler {
	paramNames := URIParams(cmd.URI())

	return func(c *fiber.Ctx) error {
		c.Set(fiber.HeaderXRequestID, uuid.NewString())

		cfg := opdesc.NewConfig(nil)
		for _, name := range paramNames {
			if value := c.Params(name); value != "" {
				cfg.Set(name, value)
			}
		}
		c.Context().QueryArgs().VisitAll(func(key, value []byte) {
			cfg.Set(string(key), string(value))
		})
		c.Context().PostArgs().VisitAll(func(key, value []byte) {
			cfg.Set(string(key), string(value))
		})

		if err := cmd.Validate(cfg, insp); err != nil {
			if problems := validationProblems(err); problems != nil {
				return c.Status(http.StatusBadRequest).JSON(errorBody(cmd, problems))
			}
			return err
		}

		result, err := invoker.Invoke(c.UserContext(), cmd, cfg)
		if err != nil {
			return c.Status(http.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
		}
		if result == nil {
			return c.SendStatus(http.StatusNoContent)
		}
		return c.Status(http.StatusOK).JSON(result)
	}
}
