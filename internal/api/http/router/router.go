package router

import (
	"github.com/gofiber/fiber/v2"

	"github.com/AznStevy/bme590final/internal/api/http/handler"
	"github.com/AznStevy/bme590final/internal/api/http/middleware"
	"github.com/AznStevy/bme590final/internal/logger"
)

// Router assembles handlers and middleware into a fiber application.
type Router struct {
	imageService handler.ImageService
	userService  handler.UserService
	logger       *logger.Logger
}

func New(imageService handler.ImageService, userService handler.UserService, logger *logger.Logger) *Router {
	return &Router{
		imageService: imageService,
		userService:  userService,
		logger:       logger,
	}
}

// Register builds the fiber app with all routes attached.
func (r *Router) Register() *fiber.App {
	app := fiber.New(fiber.Config{
		AppName:               "image-provenance",
		BodyLimit:             32 * 1024 * 1024,
		DisableStartupMessage: true,
	})

	app.Use(middleware.NewLogging(r.logger).Handle)

	imageHandler := handler.NewImage(r.imageService, r.logger)
	userHandler := handler.NewUser(r.userService, r.logger)

	api := app.Group("/api")

	users := api.Group("/users")
	users.Post("/", userHandler.CreateUser)
	users.Get("/:id", userHandler.GetUser)
	users.Post("/:id/images", imageHandler.AddImage)

	images := api.Group("/images")
	images.Get("/:id", imageHandler.GetImage)
	images.Get("/:id/payload", imageHandler.GetImagePayload)
	images.Get("/:id/parent", imageHandler.GetImageParent)
	images.Get("/:id/children", imageHandler.GetImageChildren)
	images.Patch("/:id/description", imageHandler.UpdateDescription)
	images.Delete("/:id", imageHandler.DeleteImage)

	return app
}
