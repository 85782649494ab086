package handler

import (
	"errors"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"wakili/internal/http/middleware"
	"wakili/internal/identity"
	"wakili/internal/model"
	"wakili/internal/proxy"
	"wakili/internal/service"
	"wakili/internal/store"
)

var validate = validator.New()

// RegisterRoutes attaches HTTP routes to the provided Fiber app.
// Handlers stay thin: parse, validate, delegate to the service, map errors.
func RegisterRoutes(app *fiber.App, svc service.AdvisorService) {
	// Serve OpenAPI spec and Swagger UI
	app.Get("/openapi.yaml", func(c *fiber.Ctx) error {
		c.Type("yaml")
		return c.SendFile("openapi.yaml")
	})
	app.Get("/docs", func(c *fiber.Ctx) error {
		html := `<!DOCTYPE html>
<html lang="en">
<head>
  <meta charset="UTF-8" />
  <meta name="viewport" content="width=device-width, initial-scale=1" />
  <title>API Docs</title>
  <link rel="stylesheet" href="https://unpkg.com/swagger-ui-dist@5/swagger-ui.css" />
</head>
<body>
  <div id="swagger-ui"></div>
  <script src="https://unpkg.com/swagger-ui-dist@5/swagger-ui-bundle.js"></script>
  <script>
    window.ui = SwaggerUIBundle({
      url: '/openapi.yaml',
      dom_id: '#swagger-ui',
      presets: [SwaggerUIBundle.presets.apis],
      layout: 'BaseLayout'
    });
  </script>
</body>
</html>`
		return c.Type("html").SendString(html)
	})

	app.Get("/health", HealthCheck())
	app.Get("/healthz", LivenessProbe())

	v1 := app.Group("/v1")
	v1.Post("/advice", GenerateAdvice(svc))
	v1.Post("/documents", GenerateDocument(svc))
	v1.Get("/documents", ListUserDocuments(svc))
	v1.Get("/documents/:id", GetDocument(svc))
	v1.Get("/profile", GetProfile(svc))
	v1.Put("/profile/name", UpdateUserName(svc))
}

// HealthCheck reports service health. The service keeps all state in process
// memory, so there is no backing dependency to probe.
func HealthCheck() fiber.Handler {
	return func(c *fiber.Ctx) error {
		return c.Status(fiber.StatusOK).JSON(fiber.Map{"status": "healthy"})
	}
}

// LivenessProbe is a simple liveness endpoint.
func LivenessProbe() fiber.Handler {
	return func(c *fiber.Ctx) error {
		return c.SendStatus(fiber.StatusOK)
	}
}

// GenerateAdvice handles POST /v1/advice.
func GenerateAdvice(svc service.AdvisorService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var req model.LegalRequest
		if err := c.BodyParser(&req); err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_BODY", "cannot parse request body")
		}
		if err := validate.Struct(req); err != nil {
			return writeError(c, fiber.StatusBadRequest, "MISSING_FIELD", "prompt is required")
		}

		res, err := svc.GenerateAdvice(c.UserContext(), middleware.CallerFromCtx(c), req)
		if err != nil {
			return writeServiceError(c, err)
		}
		return c.JSON(res)
	}
}

// GenerateDocument handles POST /v1/documents.
func GenerateDocument(svc service.AdvisorService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var req model.LegalRequest
		if err := c.BodyParser(&req); err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_BODY", "cannot parse request body")
		}
		if err := validate.Struct(req); err != nil {
			return writeError(c, fiber.StatusBadRequest, "MISSING_FIELD", "prompt is required")
		}

		res, err := svc.GenerateDocument(c.UserContext(), middleware.CallerFromCtx(c), req)
		if err != nil {
			return writeServiceError(c, err)
		}
		return c.Status(fiber.StatusCreated).JSON(res)
	}
}

// GetDocument handles GET /v1/documents/:id.
func GetDocument(svc service.AdvisorService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		text, err := svc.GetDocument(c.UserContext(), middleware.CallerFromCtx(c), c.Params("id"))
		if err != nil {
			return writeServiceError(c, err)
		}
		return c.JSON(fiber.Map{"key": c.Params("id"), "text": text})
	}
}

// ListUserDocuments handles GET /v1/documents.
func ListUserDocuments(svc service.AdvisorService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		docs, err := svc.ListUserDocuments(c.UserContext(), middleware.CallerFromCtx(c))
		if err != nil {
			return writeServiceError(c, err)
		}
		return c.JSON(fiber.Map{"data": docs, "total": len(docs)})
	}
}

// GetProfile handles GET /v1/profile.
func GetProfile(svc service.AdvisorService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		profile, err := svc.GetProfile(c.UserContext(), middleware.CallerFromCtx(c))
		if err != nil {
			return writeServiceError(c, err)
		}
		return c.JSON(profile)
	}
}

// UpdateUserName handles PUT /v1/profile/name.
func UpdateUserName(svc service.AdvisorService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var req model.UpdateNameRequest
		if err := c.BodyParser(&req); err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_BODY", "cannot parse request body")
		}
		if err := validate.Struct(req); err != nil {
			return writeError(c, fiber.StatusBadRequest, "MISSING_FIELD", "name is required")
		}

		if err := svc.UpdateUserName(c.UserContext(), middleware.CallerFromCtx(c), req.Name); err != nil {
			return writeServiceError(c, err)
		}
		return c.JSON(fiber.Map{"status": "success"})
	}
}

// writeServiceError maps the service error taxonomy to HTTP responses. Error
// messages are surfaced as-is: the taxonomy errors are descriptive by design
// and carry no internal details.
func writeServiceError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, identity.ErrUnauthorized):
		return writeError(c, fiber.StatusUnauthorized, "UNAUTHORIZED", err.Error())
	case errors.Is(err, store.ErrNotFound):
		return writeError(c, fiber.StatusNotFound, "NOT_FOUND", err.Error())
	case errors.Is(err, service.ErrMissingField):
		return writeError(c, fiber.StatusBadRequest, "MISSING_FIELD", err.Error())
	case errors.Is(err, proxy.ErrTransport):
		return writeError(c, fiber.StatusBadGateway, "TRANSPORT_ERROR", err.Error())
	case errors.Is(err, proxy.ErrEncoding), errors.Is(err, proxy.ErrProtocol):
		return writeError(c, fiber.StatusBadGateway, "PROTOCOL_ERROR", err.Error())
	case errors.Is(err, proxy.ErrProxy):
		return writeError(c, fiber.StatusBadGateway, "PROXY_ERROR", err.Error())
	default:
		return writeError(c, fiber.StatusInternalServerError, "INTERNAL_ERROR", "internal server error")
	}
}
