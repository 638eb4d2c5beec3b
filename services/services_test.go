package services

import (
	"testing"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"tasknest/models"
)

// newTestDB opens a private in-memory database migrated with the production
// schema. The pool is pinned to one connection so every query sees the same
// in-memory store.
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("get sql.DB: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)

	err = db.AutoMigrate(
		&models.User{},
		&models.Task{},
		&models.Association{},
		&models.Message{},
		&models.Log{},
	)
	if err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return db
}

func seedUser(t *testing.T, db *gorm.DB, email string) *models.User {
	t.Helper()
	user := models.User{Email: email, PasswordHash: "x", IsActive: true}
	if err := db.Create(&user).Error; err != nil {
		t.Fatalf("seed user %s: %v", email, err)
	}
	return &user
}

func seedTask(t *testing.T, db *gorm.DB, owner uint) *models.Task {
	t.Helper()
	task := models.Task{
		Owner:       owner,
		Name:        "task",
		Description: "description",
		Type:        models.TaskTypeBasic,
		Status:      models.TaskStatusTodo,
	}
	if err := db.Create(&task).Error; err != nil {
		t.Fatalf("seed task: %v", err)
	}
	return &task
}

func seedAssociation(t *testing.T, db *gorm.DB, taskID, userID uint) {
	t.Helper()
	if err := db.Create(&models.Association{Task: taskID, User: userID}).Error; err != nil {
		t.Fatalf("seed association: %v", err)
	}
}

func countRows(t *testing.T, db *gorm.DB, model interface{}, query string, args ...interface{}) int64 {
	t.Helper()
	var n int64
	q := db.Model(model)
	if query != "" {
		q = q.Where(query, args...)
	}
	if err := q.Count(&n).Error; err != nil {
		t.Fatalf("count: %v", err)
	}
	return n
}
