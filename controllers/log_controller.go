package controller

import (
	"log"
	"time"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"tasknest/models"
	"tasknest/services"
	"tasknest/utils"
)

type LogController struct {
	Service *services.LogService
	Logger  *log.Logger
}

func NewLogController(db *gorm.DB, logger *log.Logger) *LogController {
	return &LogController{
		Service: services.NewLogService(db),
		Logger:  logger,
	}
}

// LogResponse is the transport shape of an access-log entry.
type LogResponse struct {
	Message    uint      `json:"message"`
	AccessedAt time.Time `json:"accessed_at"`
	User       uint      `json:"user"`
}

func logResponse(l *models.Log) LogResponse {
	return LogResponse{
		Message:    l.MessageID,
		AccessedAt: l.CreatedAt,
		User:       l.UserID,
	}
}

// ShowLogs handles GET /log/:id — a page of a task's access logs
func (lc *LogController) ShowLogs(c *fiber.Ctx) error {
	user := c.Locals("user").(*models.User)
	page := c.QueryInt("page", 1)

	id, err := c.ParamsInt("id")
	if err != nil || id < 1 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid task id",
		})
	}

	logs, total, err := lc.Service.ListForTask(uint(id), user.ID, page)
	if err != nil {
		return handleServiceError(c, err, map[string]interface{}{
			"operation": "log_show",
			"task_id":   id,
			"user_id":   user.ID,
		})
	}

	data := make([]LogResponse, len(logs))
	for i := range logs {
		data[i] = logResponse(&logs[i])
	}

	return c.JSON(utils.NewPaginated(data, total, len(data), page, services.PerPage))
}
