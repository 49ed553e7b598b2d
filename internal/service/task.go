package service

import (
	"database/sql"

	"taskmanager/internal/models"
)

// TaskService performs task CRUD. Every query is scoped to the
// authenticated owner; a client-supplied owner field is never read.
type TaskService struct {
	db *sql.DB
}

func NewTaskService(db *sql.DB) *TaskService {
	return &TaskService{db: db}
}

// TaskUpdate carries the optional fields of an update. Nil pointers leave
// the stored value unchanged.
type TaskUpdate struct {
	Title       *string
	Description *string
	Status      *string
}

func (s *TaskService) Create(userID int, title string, description *string, status string) (models.Task, error) {
	var task models.Task
	err := s.db.QueryRow(
		`INSERT INTO tasks (user_id, title, description, status)
		 VALUES ($1, $2, $3, $4)
		 RETURNING id, title, description, status, user_id, created_at`,
		userID, title, description, status,
	).Scan(&task.ID, &task.Title, &task.Description, &task.Status, &task.UserID, &task.CreatedAt)
	return task, err
}

// List returns the user's tasks in storage order. The slice is never nil
// so an empty result serializes as [].
func (s *TaskService) List(userID int) ([]models.Task, error) {
	rows, err := s.db.Query(
		`SELECT id, title, description, status, user_id, created_at
		 FROM tasks WHERE user_id = $1 ORDER BY id`,
		userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	tasks := []models.Task{}
	for rows.Next() {
		var task models.Task
		if err := rows.Scan(&task.ID, &task.Title, &task.Description, &task.Status, &task.UserID, &task.CreatedAt); err != nil {
			return nil, err
		}
		tasks = append(tasks, task)
	}
	return tasks, rows.Err()
}

// Update patches the task in a single owner-scoped statement. Zero matched
// rows means the task does not exist or belongs to someone else; both
// cases come back as ErrTaskNotFound.
func (s *TaskService) Update(userID, taskID int, fields TaskUpdate) error {
	res, err := s.db.Exec(
		`UPDATE tasks
		 SET title = COALESCE($1, title),
		     description = COALESCE($2, description),
		     status = COALESCE($3, status)
		 WHERE id = $4 AND user_id = $5`,
		fields.Title, fields.Description, fields.Status, taskID, userID)
	if err != nil {
		return err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrTaskNotFound
	}
	return nil
}

// Delete removes the task with the same matched-conditional semantics as
// Update.
func (s *TaskService) Delete(userID, taskID int) error {
	res, err := s.db.Exec(
		"DELETE FROM tasks WHERE id = $1 AND user_id = $2",
		taskID, userID)
	if err != nil {
		return err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrTaskNotFound
	}
	return nil
}
