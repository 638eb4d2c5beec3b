package services

import (
	"errors"

	"gorm.io/gorm"

	"tasknest/models"
)

// PerPage is the fixed page size for every paginated listing.
const PerPage = 10

type TaskService struct {
	DB *gorm.DB
}

func NewTaskService(db *gorm.DB) *TaskService {
	return &TaskService{DB: db}
}

type CreateTaskInput struct {
	Name        string
	Description string
	Type        models.TaskType
	Status      models.TaskStatus
	Attach      []uint
}

type UpdateTaskInput struct {
	Name        *string
	Description *string
	Type        *models.TaskType
	Status      *models.TaskStatus
	Attach      []uint
}

// Create inserts a task owned by ownerID and attaches the given users to it.
// The owner id is skipped when it appears in the attach list. If any attach
// id does not reference an existing user the whole operation fails before
// any write.
func (s *TaskService) Create(ownerID uint, in CreateTaskInput) (*models.Task, error) {
	if in.Name == "" || len(in.Name) > 255 {
		return nil, validationErr("name", "must be between 1 and 255 characters")
	}
	if in.Description == "" || len(in.Description) > 4096 {
		return nil, validationErr("description", "must be between 1 and 4096 characters")
	}
	if !in.Type.Valid() {
		return nil, validationErr("type", "is not a valid task type")
	}
	if !in.Status.Valid() {
		return nil, validationErr("status", "is not a valid task status")
	}
	if err := s.checkAttachUsers(in.Attach); err != nil {
		return nil, err
	}

	tx := s.DB.Begin()
	if tx.Error != nil {
		return nil, tx.Error
	}

	task := models.Task{
		Owner:       ownerID,
		Name:        in.Name,
		Description: in.Description,
		Type:        in.Type,
		Status:      in.Status,
	}
	if err := tx.Create(&task).Error; err != nil {
		tx.Rollback()
		return nil, err
	}

	if err := attachUsers(tx, in.Attach, ownerID, task.ID); err != nil {
		tx.Rollback()
		return nil, err
	}

	if err := tx.Commit().Error; err != nil {
		return nil, err
	}
	return &task, nil
}

// Update applies the provided fields to a task the caller owns and attaches
// any newly listed users. A failed ownership check and a nonexistent task
// are reported identically as ErrNotFound.
func (s *TaskService) Update(taskID, ownerID uint, in UpdateTaskInput) error {
	updates := map[string]interface{}{}
	if in.Name != nil {
		if *in.Name == "" || len(*in.Name) > 255 {
			return validationErr("name", "must be between 1 and 255 characters")
		}
		updates["name"] = *in.Name
	}
	if in.Description != nil {
		if *in.Description == "" || len(*in.Description) > 4096 {
			return validationErr("description", "must be between 1 and 4096 characters")
		}
		updates["description"] = *in.Description
	}
	if in.Type != nil {
		if !in.Type.Valid() {
			return validationErr("type", "is not a valid task type")
		}
		updates["type"] = *in.Type
	}
	if in.Status != nil {
		if !in.Status.Valid() {
			return validationErr("status", "is not a valid task status")
		}
		updates["status"] = *in.Status
	}
	if err := s.checkAttachUsers(in.Attach); err != nil {
		return err
	}

	tx := s.DB.Begin()
	if tx.Error != nil {
		return tx.Error
	}

	if len(updates) > 0 {
		res := tx.Model(&models.Task{}).
			Where("id = ? AND owner = ?", taskID, ownerID).
			Updates(updates)
		if res.Error != nil {
			tx.Rollback()
			return res.Error
		}
		if res.RowsAffected == 0 {
			tx.Rollback()
			return ErrNotFound
		}
	} else {
		// Attach-only update; the ownership check still has to run.
		owner, err := IsOwner(tx, ownerID, taskID)
		if err != nil {
			tx.Rollback()
			return err
		}
		if !owner {
			tx.Rollback()
			return ErrNotFound
		}
	}

	if err := attachUsers(tx, in.Attach, ownerID, taskID); err != nil {
		tx.Rollback()
		return err
	}

	return tx.Commit().Error
}

// Delete hard-deletes a task the caller owns, cascading to its associations,
// messages and logs.
func (s *TaskService) Delete(taskID, ownerID uint) error {
	tx := s.DB.Begin()
	if tx.Error != nil {
		return tx.Error
	}

	res := tx.Where("id = ? AND owner = ?", taskID, ownerID).Delete(&models.Task{})
	if res.Error != nil {
		tx.Rollback()
		return res.Error
	}
	if res.RowsAffected == 0 {
		tx.Rollback()
		return ErrNotFound
	}

	if err := tx.Where("task = ?", taskID).Delete(&models.Association{}).Error; err != nil {
		tx.Rollback()
		return err
	}
	if err := tx.Where("task = ?", taskID).Delete(&models.Message{}).Error; err != nil {
		tx.Rollback()
		return err
	}
	if err := tx.Where("task_id = ?", taskID).Delete(&models.Log{}).Error; err != nil {
		tx.Rollback()
		return err
	}

	return tx.Commit().Error
}

// Close transitions a task to the closed status. Unlike Update and Delete
// any accessible user may close, not just the owner. Closing an already
// closed task is a no-op that still succeeds.
func (s *TaskService) Close(taskID, userID uint) error {
	tx := s.DB.Begin()
	if tx.Error != nil {
		return tx.Error
	}

	ok, err := IsAccessible(tx, userID, taskID)
	if err != nil {
		tx.Rollback()
		return err
	}
	if !ok {
		tx.Rollback()
		return ErrNotFound
	}

	if err := tx.Model(&models.Task{}).
		Where("id = ?", taskID).
		Update("status", models.TaskStatusClosed).Error; err != nil {
		tx.Rollback()
		return err
	}

	return tx.Commit().Error
}

// ListAccessible returns one page of the tasks the user owns or is
// associated with, in insertion order, together with the total row count.
func (s *TaskService) ListAccessible(userID uint, page int) ([]models.Task, int64, error) {
	if page < 1 {
		page = 1
	}

	var total int64
	if err := accessibleTasks(s.DB, userID).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var tasks []models.Task
	err := accessibleTasks(s.DB, userID).
		Select("tasks.*").
		Order("tasks.id").
		Limit(PerPage).
		Offset((page - 1) * PerPage).
		Find(&tasks).Error
	if err != nil {
		return nil, 0, err
	}
	return tasks, total, nil
}

// Info returns a single task if the user may see it.
func (s *TaskService) Info(taskID, userID uint) (*models.Task, error) {
	var task models.Task
	err := accessibleTasks(s.DB, userID).
		Select("tasks.*").
		Where("tasks.id = ?", taskID).
		First(&task).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &task, nil
}

// checkAttachUsers verifies every attach id references an existing user.
func (s *TaskService) checkAttachUsers(attach []uint) error {
	if len(attach) == 0 {
		return nil
	}
	distinct := map[uint]struct{}{}
	for _, id := range attach {
		distinct[id] = struct{}{}
	}
	ids := make([]uint, 0, len(distinct))
	for id := range distinct {
		ids = append(ids, id)
	}

	var count int64
	if err := s.DB.Model(&models.User{}).Where("id IN ?", ids).Count(&count).Error; err != nil {
		return err
	}
	if count != int64(len(ids)) {
		return validationErr("attach", "contains an unknown user id")
	}
	return nil
}

// attachUsers inserts an association row per listed user, skipping the
// owner. Duplicate associations are harmless and not deduplicated.
func attachUsers(tx *gorm.DB, users []uint, owner, taskID uint) error {
	for _, user := range users {
		if user == owner {
			continue
		}
		assoc := models.Association{Task: taskID, User: user}
		if err := tx.Create(&assoc).Error; err != nil {
			return err
		}
	}
	return nil
}
