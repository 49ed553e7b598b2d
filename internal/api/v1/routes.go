package v1

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/websocket/v2"

	"taskmanager/internal/api/v1/handlers"
	"taskmanager/internal/middleware"
	"taskmanager/internal/ws"
)

// Deps carries the explicitly constructed handlers and shared state so no
// package-level globals are needed.
type Deps struct {
	Auth   *handlers.AuthHandler
	Tasks  *handlers.TaskHandler
	Secret []byte
	Hub    *ws.Hub
}

func RegisterRoutes(app *fiber.App, deps Deps) {
	app.Get("/", func(c *fiber.Ctx) error {
		return c.SendString("Server is running!")
	})

	api := app.Group("/api")

	// Auth
	authRoutes := api.Group("/auth")
	authRoutes.Post("/register", deps.Auth.Register)
	authRoutes.Post("/login", deps.Auth.Login)

	// Task
	taskRoutes := api.Group("/tasks", middleware.Auth(deps.Secret))
	taskRoutes.Get("/", deps.Tasks.List)
	taskRoutes.Post("/", deps.Tasks.Create)
	taskRoutes.Put("/:id", deps.Tasks.Update)
	taskRoutes.Delete("/:id", deps.Tasks.Delete)

	// Live task feed untuk dashboard. Token dikirim sebagai query param
	// karena browser tidak bisa mengatur header pada koneksi WebSocket.
	app.Use("/ws/tasks", func(c *fiber.Ctx) error {
		if !websocket.IsWebSocketUpgrade(c) {
			return fiber.ErrUpgradeRequired
		}
		userID, err := middleware.ParseToken(c.Query("token"), deps.Secret)
		if err != nil {
			return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
				"message": "Invalid or expired token",
			})
		}
		c.Locals("userID", userID)
		return c.Next()
	})
	app.Get("/ws/tasks", websocket.New(func(conn *websocket.Conn) {
		client := &ws.Client{UserID: conn.Locals("userID").(int), Conn: conn}
		deps.Hub.Register <- client
		defer func() {
			deps.Hub.Unregister <- client
		}()
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				break
			}
		}
	}))
}
