package services

import (
	"gorm.io/gorm"

	"tasknest/models"
)

// LogService exposes read access to the audit trail. Log rows are only ever
// written by MessageService.Info.
type LogService struct {
	DB *gorm.DB
}

func NewLogService(db *gorm.DB) *LogService {
	return &LogService{DB: db}
}

// ListForTask returns one page of a task's access logs, provided the caller
// can see the task.
func (s *LogService) ListForTask(taskID, userID uint, page int) ([]models.Log, int64, error) {
	if page < 1 {
		page = 1
	}

	ok, err := IsAccessible(s.DB, userID, taskID)
	if err != nil {
		return nil, 0, err
	}
	if !ok {
		return nil, 0, ErrNotFound
	}

	var total int64
	if err := s.DB.Model(&models.Log{}).Where("task_id = ?", taskID).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var logs []models.Log
	err = s.DB.
		Where("task_id = ?", taskID).
		Order("id").
		Limit(PerPage).
		Offset((page - 1) * PerPage).
		Find(&logs).Error
	if err != nil {
		return nil, 0, err
	}
	return logs, total, nil
}
