package controller

import (
	"log"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"tasknest/models"
	"tasknest/services"
	"tasknest/utils"
)

type MessageController struct {
	Service *services.MessageService
	Logger  *log.Logger
}

func NewMessageController(db *gorm.DB, logger *log.Logger) *MessageController {
	return &MessageController{
		Service: services.NewMessageService(db),
		Logger:  logger,
	}
}

type CreateMessageRequest struct {
	Subject string `json:"subject" validate:"required,max=255"`
	Message string `json:"message" validate:"required,max=4096"`
	Task    uint   `json:"task" validate:"required"`
}

type UpdateMessageRequest struct {
	Subject *string `json:"subject" validate:"omitempty,max=255"`
	Message *string `json:"message" validate:"omitempty,max=4096"`
	Task    *uint   `json:"task" validate:"omitempty,min=1"`
}

// MessageResponse is the transport shape of a message.
type MessageResponse struct {
	Subject string `json:"subject"`
	Message string `json:"message"`
}

func messageResponse(m *models.Message) MessageResponse {
	return MessageResponse{
		Subject: m.Subject,
		Message: m.Body,
	}
}

// CreateMessage handles POST /message/create — owner or associated user may
// post on a task.
func (mc *MessageController) CreateMessage(c *fiber.Ctx) error {
	user := c.Locals("user").(*models.User)

	var req CreateMessageRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}
	if err := utils.ValidateStruct(req); err != nil {
		return c.Status(fiber.StatusUnprocessableEntity).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	_, err := mc.Service.Create(req.Task, user.ID, req.Subject, req.Message)
	if err != nil {
		return handleServiceError(c, err, map[string]interface{}{
			"operation": "message_create",
			"task_id":   req.Task,
			"user_id":   user.ID,
		})
	}

	return statusResponse(c, fiber.StatusCreated, true)
}

// UpdateMessage handles PATCH /message/update — applies to every message the
// caller owns.
func (mc *MessageController) UpdateMessage(c *fiber.Ctx) error {
	user := c.Locals("user").(*models.User)

	var req UpdateMessageRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}
	if err := utils.ValidateStruct(req); err != nil {
		return c.Status(fiber.StatusUnprocessableEntity).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	err := mc.Service.Update(user.ID, services.UpdateMessageInput{
		Subject: req.Subject,
		Body:    req.Message,
		Task:    req.Task,
	})
	if err != nil {
		return handleServiceError(c, err, map[string]interface{}{
			"operation": "message_update",
			"user_id":   user.ID,
		})
	}

	return statusResponse(c, fiber.StatusOK, true)
}

// DeleteMessage handles DELETE /message/delete/:id
func (mc *MessageController) DeleteMessage(c *fiber.Ctx) error {
	user := c.Locals("user").(*models.User)

	id, err := c.ParamsInt("id")
	if err != nil || id < 1 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid message id",
		})
	}

	if err := mc.Service.Delete(user.ID, uint(id)); err != nil {
		return handleServiceError(c, err, map[string]interface{}{
			"operation":  "message_delete",
			"message_id": id,
			"user_id":    user.ID,
		})
	}

	mc.Logger.Printf("message %d deleted by user %d", id, user.ID)
	return statusResponse(c, fiber.StatusOK, true)
}

// ShowMessages handles GET /message/show/:id — a page of a task's messages
func (mc *MessageController) ShowMessages(c *fiber.Ctx) error {
	user := c.Locals("user").(*models.User)
	page := c.QueryInt("page", 1)

	id, err := c.ParamsInt("id")
	if err != nil || id < 1 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid task id",
		})
	}

	messages, total, err := mc.Service.ListForTask(uint(id), user.ID, page)
	if err != nil {
		return handleServiceError(c, err, map[string]interface{}{
			"operation": "message_show",
			"task_id":   id,
			"user_id":   user.ID,
		})
	}

	data := make([]MessageResponse, len(messages))
	for i := range messages {
		data[i] = messageResponse(&messages[i])
	}

	return c.JSON(utils.NewPaginated(data, total, len(data), page, services.PerPage))
}

// MessageInfo handles GET /message/:id — reading the body appends an
// access-log row.
func (mc *MessageController) MessageInfo(c *fiber.Ctx) error {
	user := c.Locals("user").(*models.User)

	id, err := c.ParamsInt("id")
	if err != nil || id < 1 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid message id",
		})
	}

	msg, err := mc.Service.Info(uint(id), user.ID)
	if err != nil {
		return handleServiceError(c, err, map[string]interface{}{
			"operation":  "message_info",
			"message_id": id,
			"user_id":    user.ID,
		})
	}

	return c.JSON(messageResponse(msg))
}
