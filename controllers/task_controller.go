package controller

import (
	"log"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"tasknest/models"
	"tasknest/services"
	"tasknest/utils"
)

type TaskController struct {
	Service *services.TaskService
	Logger  *log.Logger
}

func NewTaskController(db *gorm.DB, logger *log.Logger) *TaskController {
	return &TaskController{
		Service: services.NewTaskService(db),
		Logger:  logger,
	}
}

type CreateTaskRequest struct {
	Name        string `json:"name" validate:"required,max=255"`
	Description string `json:"description" validate:"required,max=4096"`
	Type        string `json:"type" validate:"required,oneof=basic advanced expert"`
	Status      string `json:"status" validate:"required,oneof=todo hold closed"`
	Attach      []uint `json:"attach" validate:"omitempty,dive,min=1"`
}

type UpdateTaskRequest struct {
	ID          uint    `json:"id" validate:"required"`
	Name        *string `json:"name" validate:"omitempty,max=255"`
	Description *string `json:"description" validate:"omitempty,max=4096"`
	Type        *string `json:"type" validate:"omitempty,oneof=basic advanced expert"`
	Status      *string `json:"status" validate:"omitempty,oneof=todo hold closed"`
	Attach      []uint  `json:"attach" validate:"omitempty,dive,min=1"`
}

type CloseTaskRequest struct {
	Task uint `json:"task" validate:"required"`
}

// TaskResponse is the transport shape of a task.
type TaskResponse struct {
	Name        string            `json:"name"`
	Description string            `json:"description"`
	Type        models.TaskType   `json:"type"`
	Status      models.TaskStatus `json:"status"`
}

func taskResponse(t *models.Task) TaskResponse {
	return TaskResponse{
		Name:        t.Name,
		Description: t.Description,
		Type:        t.Type,
		Status:      t.Status,
	}
}

// CreateTask handles POST /task/create
func (tc *TaskController) CreateTask(c *fiber.Ctx) error {
	user := c.Locals("user").(*models.User)

	var req CreateTaskRequest
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

	task, err := tc.Service.Create(user.ID, services.CreateTaskInput{
		Name:        req.Name,
		Description: req.Description,
		Type:        models.TaskType(req.Type),
		Status:      models.TaskStatus(req.Status),
		Attach:      req.Attach,
	})
	if err != nil {
		return handleServiceError(c, err, map[string]interface{}{
			"operation": "task_create",
			"user_id":   user.ID,
		})
	}

	tc.Logger.Printf("task %d created by user %d", task.ID, user.ID)
	return statusResponse(c, fiber.StatusCreated, true)
}

// UpdateTask handles PATCH /task/update
func (tc *TaskController) UpdateTask(c *fiber.Ctx) error {
	user := c.Locals("user").(*models.User)

	var req UpdateTaskRequest
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

	in := services.UpdateTaskInput{
		Name:        req.Name,
		Description: req.Description,
		Attach:      req.Attach,
	}
	if req.Type != nil {
		t := models.TaskType(*req.Type)
		in.Type = &t
	}
	if req.Status != nil {
		s := models.TaskStatus(*req.Status)
		in.Status = &s
	}

	if err := tc.Service.Update(req.ID, user.ID, in); err != nil {
		return handleServiceError(c, err, map[string]interface{}{
			"operation": "task_update",
			"task_id":   req.ID,
			"user_id":   user.ID,
		})
	}

	return statusResponse(c, fiber.StatusOK, true)
}

// DeleteTask handles DELETE /task/delete/:id
func (tc *TaskController) DeleteTask(c *fiber.Ctx) error {
	user := c.Locals("user").(*models.User)

	id, err := c.ParamsInt("id")
	if err != nil || id < 1 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid task id",
		})
	}

	if err := tc.Service.Delete(uint(id), user.ID); err != nil {
		return handleServiceError(c, err, map[string]interface{}{
			"operation": "task_delete",
			"task_id":   id,
			"user_id":   user.ID,
		})
	}

	tc.Logger.Printf("task %d deleted by user %d", id, user.ID)
	return statusResponse(c, fiber.StatusOK, true)
}

// ShowTasks handles GET /task/show — a page of the caller's accessible tasks
func (tc *TaskController) ShowTasks(c *fiber.Ctx) error {
	user := c.Locals("user").(*models.User)
	page := c.QueryInt("page", 1)

	tasks, total, err := tc.Service.ListAccessible(user.ID, page)
	if err != nil {
		return handleServiceError(c, err, map[string]interface{}{
			"operation": "task_show",
			"user_id":   user.ID,
		})
	}

	data := make([]TaskResponse, len(tasks))
	for i := range tasks {
		data[i] = taskResponse(&tasks[i])
	}

	return c.JSON(utils.NewPaginated(data, total, len(data), page, services.PerPage))
}

// CloseTask handles PATCH /task/close — any accessible user may close
func (tc *TaskController) CloseTask(c *fiber.Ctx) error {
	user := c.Locals("user").(*models.User)

	var req CloseTaskRequest
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

	if err := tc.Service.Close(req.Task, user.ID); err != nil {
		return handleServiceError(c, err, map[string]interface{}{
			"operation": "task_close",
			"task_id":   req.Task,
			"user_id":   user.ID,
		})
	}

	return statusResponse(c, fiber.StatusOK, true)
}

// TaskInfo handles GET /task/:id
func (tc *TaskController) TaskInfo(c *fiber.Ctx) error {
	user := c.Locals("user").(*models.User)

	id, err := c.ParamsInt("id")
	if err != nil || id < 1 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid task id",
		})
	}

	task, err := tc.Service.Info(uint(id), user.ID)
	if err != nil {
		return handleServiceError(c, err, map[string]interface{}{
			"operation": "task_info",
			"task_id":   id,
			"user_id":   user.ID,
		})
	}

	return c.JSON(taskResponse(task))
}
