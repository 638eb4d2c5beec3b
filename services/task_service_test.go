package services

import (
	"errors"
	"testing"

	"tasknest/models"
)

func TestTaskCreateWithAttach(t *testing.T) {
	db := newTestDB(t)
	owner := seedUser(t, db, "owner@example.com")
	friend := seedUser(t, db, "friend@example.com")
	svc := NewTaskService(db)

	task, err := svc.Create(owner.ID, CreateTaskInput{
		Name:        "plan release",
		Description: "ship it",
		Type:        models.TaskTypeBasic,
		Status:      models.TaskStatusTodo,
		Attach:      []uint{friend.ID, owner.ID},
	})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if task.Owner != owner.ID {
		t.Errorf("task owner = %d, want %d", task.Owner, owner.ID)
	}

	// The owner never gets a self-association.
	if n := countRows(t, db, &models.Association{}, "task = ?", task.ID); n != 1 {
		t.Errorf("association rows = %d, want 1", n)
	}
	if n := countRows(t, db, &models.Association{}, "task = ? AND user = ?", task.ID, friend.ID); n != 1 {
		t.Errorf("friend association missing")
	}
}

func TestTaskCreateRejectsUnknownAttachUser(t *testing.T) {
	db := newTestDB(t)
	owner := seedUser(t, db, "owner@example.com")
	svc := NewTaskService(db)

	_, err := svc.Create(owner.ID, CreateTaskInput{
		Name:        "plan release",
		Description: "ship it",
		Type:        models.TaskTypeBasic,
		Status:      models.TaskStatusTodo,
		Attach:      []uint{9999},
	})
	var verr *ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("Create err = %v, want ValidationError", err)
	}
	if verr.Field != "attach" {
		t.Errorf("validation field = %q, want attach", verr.Field)
	}

	// Nothing may be written when the attach list is invalid.
	if n := countRows(t, db, &models.Task{}, ""); n != 0 {
		t.Errorf("task rows = %d, want 0", n)
	}
}

func TestTaskCreateRejectsBadEnums(t *testing.T) {
	db := newTestDB(t)
	owner := seedUser(t, db, "owner@example.com")
	svc := NewTaskService(db)

	_, err := svc.Create(owner.ID, CreateTaskInput{
		Name:        "x",
		Description: "y",
		Type:        models.TaskType("heroic"),
		Status:      models.TaskStatusTodo,
	})
	var verr *ValidationError
	if !errors.As(err, &verr) || verr.Field != "type" {
		t.Fatalf("Create err = %v, want type ValidationError", err)
	}

	_, err = svc.Create(owner.ID, CreateTaskInput{
		Name:        "x",
		Description: "y",
		Type:        models.TaskTypeBasic,
		Status:      models.TaskStatus("paused"),
	})
	if !errors.As(err, &verr) || verr.Field != "status" {
		t.Fatalf("Create err = %v, want status ValidationError", err)
	}
}

func TestTaskUpdateRequiresOwnership(t *testing.T) {
	db := newTestDB(t)
	owner := seedUser(t, db, "owner@example.com")
	associate := seedUser(t, db, "associate@example.com")
	task := seedTask(t, db, owner.ID)
	seedAssociation(t, db, task.ID, associate.ID)
	svc := NewTaskService(db)

	name := "renamed"
	if err := svc.Update(task.ID, owner.ID, UpdateTaskInput{Name: &name}); err != nil {
		t.Fatalf("owner update: %v", err)
	}

	var got models.Task
	if err := db.First(&got, task.ID).Error; err != nil {
		t.Fatalf("reload task: %v", err)
	}
	if got.Name != "renamed" {
		t.Errorf("name = %q, want renamed", got.Name)
	}

	// Associated users may read but never update.
	other := "hijacked"
	err := svc.Update(task.ID, associate.ID, UpdateTaskInput{Name: &other})
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("associate update err = %v, want ErrNotFound", err)
	}
}

func TestTaskUpdateAttachOnly(t *testing.T) {
	db := newTestDB(t)
	owner := seedUser(t, db, "owner@example.com")
	friend := seedUser(t, db, "friend@example.com")
	task := seedTask(t, db, owner.ID)
	svc := NewTaskService(db)

	if err := svc.Update(task.ID, owner.ID, UpdateTaskInput{Attach: []uint{friend.ID}}); err != nil {
		t.Fatalf("attach-only update: %v", err)
	}
	if n := countRows(t, db, &models.Association{}, "task = ? AND user = ?", task.ID, friend.ID); n != 1 {
		t.Errorf("association not created")
	}

	// Attach-only against someone else's task still fails the owner check.
	err := svc.Update(task.ID, friend.ID, UpdateTaskInput{Attach: []uint{friend.ID}})
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("non-owner attach err = %v, want ErrNotFound", err)
	}
}

func TestTaskDeleteCascades(t *testing.T) {
	db := newTestDB(t)
	owner := seedUser(t, db, "owner@example.com")
	associate := seedUser(t, db, "associate@example.com")
	task := seedTask(t, db, owner.ID)
	seedAssociation(t, db, task.ID, associate.ID)

	taskID := task.ID
	msg := models.Message{Task: &taskID, Owner: &owner.ID, Subject: "s", Body: "b"}
	if err := db.Create(&msg).Error; err != nil {
		t.Fatalf("seed message: %v", err)
	}
	if err := db.Create(&models.Log{MessageID: msg.ID, TaskID: taskID, UserID: owner.ID}).Error; err != nil {
		t.Fatalf("seed log: %v", err)
	}

	svc := NewTaskService(db)
	if err := svc.Delete(taskID, owner.ID); err != nil {
		t.Fatalf("Delete: %v", err)
	}

	if n := countRows(t, db, &models.Task{}, ""); n != 0 {
		t.Errorf("task rows = %d, want 0", n)
	}
	if n := countRows(t, db, &models.Association{}, ""); n != 0 {
		t.Errorf("association rows = %d, want 0", n)
	}
	if n := countRows(t, db, &models.Message{}, ""); n != 0 {
		t.Errorf("message rows = %d, want 0", n)
	}
	if n := countRows(t, db, &models.Log{}, ""); n != 0 {
		t.Errorf("log rows = %d, want 0", n)
	}

	// A second delete finds nothing.
	if err := svc.Delete(taskID, owner.ID); !errors.Is(err, ErrNotFound) {
		t.Fatalf("second delete err = %v, want ErrNotFound", err)
	}
}

func TestTaskDeleteRequiresOwnership(t *testing.T) {
	db := newTestDB(t)
	owner := seedUser(t, db, "owner@example.com")
	associate := seedUser(t, db, "associate@example.com")
	task := seedTask(t, db, owner.ID)
	seedAssociation(t, db, task.ID, associate.ID)
	svc := NewTaskService(db)

	if err := svc.Delete(task.ID, associate.ID); !errors.Is(err, ErrNotFound) {
		t.Fatalf("associate delete err = %v, want ErrNotFound", err)
	}
	if n := countRows(t, db, &models.Task{}, ""); n != 1 {
		t.Errorf("task rows = %d, want 1", n)
	}
}

func TestTaskCloseByAssociateAndIdempotent(t *testing.T) {
	db := newTestDB(t)
	owner := seedUser(t, db, "owner@example.com")
	associate := seedUser(t, db, "associate@example.com")
	stranger := seedUser(t, db, "stranger@example.com")
	task := seedTask(t, db, owner.ID)
	seedAssociation(t, db, task.ID, associate.ID)
	svc := NewTaskService(db)

	// Closing is broader than ownership: any accessible user may close.
	if err := svc.Close(task.ID, associate.ID); err != nil {
		t.Fatalf("associate close: %v", err)
	}

	var got models.Task
	if err := db.First(&got, task.ID).Error; err != nil {
		t.Fatalf("reload task: %v", err)
	}
	if got.Status != models.TaskStatusClosed {
		t.Errorf("status = %q, want closed", got.Status)
	}

	// Closing twice stays closed and still succeeds.
	if err := svc.Close(task.ID, owner.ID); err != nil {
		t.Fatalf("second close: %v", err)
	}
	if err := db.First(&got, task.ID).Error; err != nil {
		t.Fatalf("reload task: %v", err)
	}
	if got.Status != models.TaskStatusClosed {
		t.Errorf("status after second close = %q, want closed", got.Status)
	}

	if err := svc.Close(task.ID, stranger.ID); !errors.Is(err, ErrNotFound) {
		t.Fatalf("stranger close err = %v, want ErrNotFound", err)
	}
}

func TestTaskListAccessiblePagination(t *testing.T) {
	db := newTestDB(t)
	owner := seedUser(t, db, "owner@example.com")
	associate := seedUser(t, db, "associate@example.com")
	svc := NewTaskService(db)

	var shared *models.Task
	for i := 0; i < 12; i++ {
		task := seedTask(t, db, owner.ID)
		if i == 0 {
			shared = task
		}
	}
	seedAssociation(t, db, shared.ID, associate.ID)

	tasks, total, err := svc.ListAccessible(owner.ID, 1)
	if err != nil {
		t.Fatalf("ListAccessible page 1: %v", err)
	}
	if total != 12 {
		t.Errorf("total = %d, want 12", total)
	}
	if len(tasks) != PerPage {
		t.Errorf("page 1 len = %d, want %d", len(tasks), PerPage)
	}

	tasks, _, err = svc.ListAccessible(owner.ID, 2)
	if err != nil {
		t.Fatalf("ListAccessible page 2: %v", err)
	}
	if len(tasks) != 2 {
		t.Errorf("page 2 len = %d, want 2", len(tasks))
	}

	// Insertion order is stable across pages.
	if len(tasks) == 2 && tasks[0].ID >= tasks[1].ID {
		t.Errorf("page 2 not in insertion order: %d, %d", tasks[0].ID, tasks[1].ID)
	}

	// The associate only sees the shared task.
	tasks, total, err = svc.ListAccessible(associate.ID, 1)
	if err != nil {
		t.Fatalf("ListAccessible associate: %v", err)
	}
	if total != 1 || len(tasks) != 1 {
		t.Fatalf("associate sees %d tasks (total %d), want 1", len(tasks), total)
	}
	if tasks[0].ID != shared.ID {
		t.Errorf("associate sees task %d, want %d", tasks[0].ID, shared.ID)
	}
}

func TestTaskInfoScope(t *testing.T) {
	db := newTestDB(t)
	owner := seedUser(t, db, "owner@example.com")
	stranger := seedUser(t, db, "stranger@example.com")
	task := seedTask(t, db, owner.ID)
	svc := NewTaskService(db)

	got, err := svc.Info(task.ID, owner.ID)
	if err != nil {
		t.Fatalf("owner Info: %v", err)
	}
	if got.ID != task.ID {
		t.Errorf("Info returned task %d, want %d", got.ID, task.ID)
	}

	if _, err := svc.Info(task.ID, stranger.ID); !errors.Is(err, ErrNotFound) {
		t.Fatalf("stranger Info err = %v, want ErrNotFound", err)
	}
	if _, err := svc.Info(9999, owner.ID); !errors.Is(err, ErrNotFound) {
		t.Fatalf("missing Info err = %v, want ErrNotFound", err)
	}
}
