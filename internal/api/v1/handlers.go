package apiv1

import (
	"github.com/gofiber/fiber/v2"

	// Delegate to existing controllers to keep behavior consistent
	"github.com/VisaPilotUK/VisaPilot/app/controllers"
	"github.com/VisaPilotUK/VisaPilot/internal/pkg/middleware"
)

// Pong is the response body of the ping endpoint.
type Pong struct {
	Ping string `json:"ping"`
}

// APIServer holds the JSON API v1 handlers.
type APIServer struct{}

// NewAPIServer creates a new API server instance
func NewAPIServer() *APIServer {
	return &APIServer{}
}

// RegisterHandlers mounts the v1 routes on the given router group.
// All routes except /ping and the token upload endpoint require an API key.
func RegisterHandlers(router fiber.Router, s *APIServer) {
	router.Get("/ping", s.GetPing)

	// Token-authenticated: the upload session token carries the identity.
	router.Post("/documents/upload", controllers.HandleTokenDocumentUpload)

	secured := router.Group("", middleware.APIKeyAuthMiddleware())
	secured.Get("/user/profile", s.GetUserProfile)
	secured.Get("/plans", s.GetPlans)
	secured.Get("/plans/:uuid", s.GetPlan)
	secured.Get("/plans/:uuid/status", s.GetPlanStatus)
	secured.Post("/upload/sessions", s.PostUploadSession)
}

// GetPing handles the ping endpoint
func (s *APIServer) GetPing(c *fiber.Ctx) error {
	response := Pong{
		Ping: "pong",
	}

	return c.Status(fiber.StatusOK).JSON(response)
}

// GetUserProfile returns account information for the authenticated user (API key).
// Security is enforced via API key middleware attached in the router.
func (s *APIServer) GetUserProfile(c *fiber.Ctx) error {
	return controllers.HandleGetUserAccount(c)
}

// GetPlans lists the authenticated user's business plans.
func (s *APIServer) GetPlans(c *fiber.Ctx) error {
	return controllers.HandleListPlansAPI(c)
}

// GetPlan returns the canonical plan resource by UUID (API key protected).
func (s *APIServer) GetPlan(c *fiber.Ctx) error {
	return controllers.HandleGetPlanResourceAPI(c)
}

// GetPlanStatus returns generation pipeline status for a plan (JSON).
func (s *APIServer) GetPlanStatus(c *fiber.Ctx) error {
	return controllers.HandlePlanStatusJSON(c)
}

// PostUploadSession issues a direct upload session via API key authentication.
func (s *APIServer) PostUploadSession(c *fiber.Ctx) error {
	return controllers.HandleCreateUploadSession(c)
}
