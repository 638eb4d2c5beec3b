package services

import (
	"gorm.io/gorm"

	"tasknest/models"
)

// accessibleTasks scopes a query to the tasks a user may see: tasks the user
// owns plus tasks shared with the user through an association row. Every
// read path in the system goes through this join.
func accessibleTasks(db *gorm.DB, userID uint) *gorm.DB {
	return db.Model(&models.Task{}).
		Joins("LEFT JOIN associations ON associations.task = tasks.id").
		Where("tasks.owner = ? OR associations.user = ?", userID, userID)
}

// IsAccessible reports whether userID owns taskID or is associated with it.
// A nonexistent task is simply not accessible, not an error.
func IsAccessible(db *gorm.DB, userID, taskID uint) (bool, error) {
	var count int64
	err := accessibleTasks(db, userID).
		Where("tasks.id = ?", taskID).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

// IsOwner is the narrower write-side predicate: update, delete and message
// ownership checks all require it.
func IsOwner(db *gorm.DB, userID, taskID uint) (bool, error) {
	var count int64
	err := db.Model(&models.Task{}).
		Where("id = ? AND owner = ?", taskID, userID).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}
