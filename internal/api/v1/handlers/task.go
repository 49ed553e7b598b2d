package handlers

import (
	"errors"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"taskmanager/internal/models"
	"taskmanager/internal/service"
	"taskmanager/internal/ws"
	"taskmanager/pkg/logger"
)

// TaskHandler maps task CRUD outcomes to HTTP responses. The owner id
// always comes from the request locals set by the token verifier.
type TaskHandler struct {
	tasks    *service.TaskService
	validate *validator.Validate
	hub      *ws.Hub
}

func NewTaskHandler(tasks *service.TaskService, validate *validator.Validate, hub *ws.Hub) *TaskHandler {
	return &TaskHandler{tasks: tasks, validate: validate, hub: hub}
}

// validStatus memeriksa apakah status task valid
func validStatus(status string) bool {
	switch status {
	case models.StatusPending, models.StatusCompleted:
		return true
	default:
		return false
	}
}

func (h *TaskHandler) Create(c *fiber.Ctx) error {
	userID := c.Locals("userID").(int)

	type TaskRequest struct {
		Title       string  `json:"title" validate:"required"`
		Description *string `json:"description"`
		Status      string  `json:"status" validate:"required,oneof=pending completed"`
	}

	var req TaskRequest
	if err := c.BodyParser(&req); err != nil {
		logger.ErrorLogger.Error("Bad request in create task", zap.Error(err))
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Title and status are required",
		})
	}
	if err := h.validate.Struct(req); err != nil {
		logger.AuditLogger.Warn("Validation error in create task", zap.Error(err))
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Title and status are required",
		})
	}

	task, err := h.tasks.Create(userID, req.Title, req.Description, req.Status)
	if err != nil {
		logger.ErrorLogger.Error("Error creating task", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Server error",
		})
	}

	h.hub.Publish(userID, ws.Event{Type: "task_created", Task: &task})
	logger.AuditLogger.Info("Task created successfully", zap.Int("task_id", task.ID))
	return c.Status(fiber.StatusCreated).JSON(task)
}

func (h *TaskHandler) List(c *fiber.Ctx) error {
	userID := c.Locals("userID").(int)

	tasks, err := h.tasks.List(userID)
	if err != nil {
		logger.ErrorLogger.Error("Error fetching tasks", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Server error",
		})
	}
	return c.JSON(tasks)
}

func (h *TaskHandler) Update(c *fiber.Ctx) error {
	userID := c.Locals("userID").(int)

	taskID, err := c.ParamsInt("id")
	if err != nil {
		logger.ErrorLogger.Error("Invalid task ID", zap.Error(err))
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid task ID",
		})
	}

	// pointer (*) untuk menandakan bahwa field bisa kosong
	type UpdateTaskRequest struct {
		Title       *string `json:"title"`
		Description *string `json:"description"`
		Status      *string `json:"status"`
	}

	var req UpdateTaskRequest
	if err := c.BodyParser(&req); err != nil {
		logger.ErrorLogger.Error("Bad request in update task", zap.Error(err))
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Bad request",
		})
	}
	if req.Status != nil && !validStatus(*req.Status) {
		logger.AuditLogger.Warn("Invalid status in update task", zap.String("status", *req.Status))
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid status",
		})
	}

	err = h.tasks.Update(userID, taskID, service.TaskUpdate{
		Title:       req.Title,
		Description: req.Description,
		Status:      req.Status,
	})
	if err != nil {
		if errors.Is(err, service.ErrTaskNotFound) {
			// Task milik user lain dilaporkan sama dengan task yang tidak ada
			logger.SecurityLogger.Warn("Task not found or not owned",
				zap.Int("user_id", userID), zap.Int("task_id", taskID))
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"message": "Task not found or user not authorized",
			})
		}
		logger.ErrorLogger.Error("Error updating task", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Server error",
		})
	}

	h.hub.Publish(userID, ws.Event{Type: "task_updated", TaskID: taskID})
	logger.AuditLogger.Info("Task updated", zap.Int("task_id", taskID))
	return c.JSON(fiber.Map{
		"message": "Task updated successfully",
	})
}

func (h *TaskHandler) Delete(c *fiber.Ctx) error {
	userID := c.Locals("userID").(int)

	taskID, err := c.ParamsInt("id")
	if err != nil {
		logger.ErrorLogger.Error("Invalid task ID", zap.Error(err))
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid task ID",
		})
	}

	if err := h.tasks.Delete(userID, taskID); err != nil {
		if errors.Is(err, service.ErrTaskNotFound) {
			logger.SecurityLogger.Warn("Task not found or not owned",
				zap.Int("user_id", userID), zap.Int("task_id", taskID))
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"message": "Task not found or user not authorized",
			})
		}
		logger.ErrorLogger.Error("Error deleting task", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Server error",
		})
	}

	h.hub.Publish(userID, ws.Event{Type: "task_deleted", TaskID: taskID})
	logger.AuditLogger.Info("Task deleted", zap.Int("task_id", taskID))
	return c.SendStatus(fiber.StatusNoContent)
}
