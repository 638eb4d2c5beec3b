package services

import (
	"errors"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"tasknest/models"
)

type MessageService struct {
	DB *gorm.DB
}

func NewMessageService(db *gorm.DB) *MessageService {
	return &MessageService{DB: db}
}

type UpdateMessageInput struct {
	Subject *string
	Body    *string
	Task    *uint
}

// Create stores a message on a task the caller can see. The message is owned
// by the caller, which may differ from the task owner.
func (s *MessageService) Create(taskID, ownerID uint, subject, body string) (*models.Message, error) {
	if subject == "" || len(subject) > 255 {
		return nil, validationErr("subject", "must be between 1 and 255 characters")
	}
	if body == "" || len(body) > 4096 {
		return nil, validationErr("message", "must be between 1 and 4096 characters")
	}

	tx := s.DB.Begin()
	if tx.Error != nil {
		return nil, tx.Error
	}

	ok, err := IsAccessible(tx, ownerID, taskID)
	if err != nil {
		tx.Rollback()
		return nil, err
	}
	if !ok {
		tx.Rollback()
		return nil, ErrNotFound
	}

	task := taskID
	owner := ownerID
	msg := models.Message{
		Task:    &task,
		Owner:   &owner,
		Subject: subject,
		Body:    body,
	}
	if err := tx.Create(&msg).Error; err != nil {
		tx.Rollback()
		return nil, err
	}

	if err := tx.Commit().Error; err != nil {
		return nil, err
	}
	return &msg, nil
}

// Update applies the provided fields to every message the caller owns. It is
// intentionally not scoped to a single message or task; see the product
// notes before narrowing this.
func (s *MessageService) Update(ownerID uint, in UpdateMessageInput) error {
	updates := map[string]interface{}{}
	if in.Subject != nil {
		if *in.Subject == "" || len(*in.Subject) > 255 {
			return validationErr("subject", "must be between 1 and 255 characters")
		}
		updates["subject"] = *in.Subject
	}
	if in.Body != nil {
		if *in.Body == "" || len(*in.Body) > 4096 {
			return validationErr("message", "must be between 1 and 4096 characters")
		}
		updates["message"] = *in.Body
	}
	if in.Task != nil {
		updates["task"] = *in.Task
	}
	if len(updates) == 0 {
		return ErrNotFound
	}

	res := s.DB.Model(&models.Message{}).
		Where("owner = ?", ownerID).
		Updates(updates)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// Delete removes a message the caller owns in two phases: the row is first
// detached by nulling its task and owner, then a sweep deletes every
// detached row in the table. Deleting an already detached message matches
// zero rows and reports ErrNotFound. The sweep is idempotent under
// concurrent deletes.
func (s *MessageService) Delete(ownerID, messageID uint) error {
	tx := s.DB.Begin()
	if tx.Error != nil {
		return tx.Error
	}

	res := tx.Model(&models.Message{}).
		Where("id = ? AND owner = ?", messageID, ownerID).
		Updates(map[string]interface{}{"task": nil, "owner": nil})
	if res.Error != nil {
		tx.Rollback()
		return res.Error
	}
	if res.RowsAffected == 0 {
		tx.Rollback()
		return ErrNotFound
	}

	sweep := tx.Where("owner IS NULL").Delete(&models.Message{})
	if sweep.Error != nil {
		tx.Rollback()
		return sweep.Error
	}

	if err := tx.Commit().Error; err != nil {
		return err
	}

	logrus.WithFields(logrus.Fields{
		"message": messageID,
		"swept":   sweep.RowsAffected,
	}).Info("message deleted")
	return nil
}

// ListForTask returns one page of a task's messages, provided the caller can
// see the task.
func (s *MessageService) ListForTask(taskID, userID uint, page int) ([]models.Message, int64, error) {
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
	if err := s.DB.Model(&models.Message{}).Where("task = ?", taskID).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var messages []models.Message
	err = s.DB.
		Where("task = ?", taskID).
		Order("id").
		Limit(PerPage).
		Offset((page - 1) * PerPage).
		Find(&messages).Error
	if err != nil {
		return nil, 0, err
	}
	return messages, total, nil
}

// Info returns a message if its task is accessible to the caller and, in the
// same transaction, appends an access-log row. Every successful read writes
// exactly one log row; repeated reads write repeated rows. Detached messages
// are unreachable.
func (s *MessageService) Info(messageID, userID uint) (*models.Message, error) {
	tx := s.DB.Begin()
	if tx.Error != nil {
		return nil, tx.Error
	}

	var msg models.Message
	if err := tx.First(&msg, messageID).Error; err != nil {
		tx.Rollback()
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	if msg.Task == nil {
		tx.Rollback()
		return nil, ErrNotFound
	}

	ok, err := IsAccessible(tx, userID, *msg.Task)
	if err != nil {
		tx.Rollback()
		return nil, err
	}
	if !ok {
		tx.Rollback()
		return nil, ErrNotFound
	}

	entry := models.Log{MessageID: msg.ID, TaskID: *msg.Task, UserID: userID}
	if err := tx.Create(&entry).Error; err != nil {
		tx.Rollback()
		return nil, err
	}

	if err := tx.Commit().Error; err != nil {
		return nil, err
	}
	return &msg, nil
}
