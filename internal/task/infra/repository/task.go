package repository

import (
	"context"
	"strconv"
	"time"

	domaintask "github.com/KasumiMercury/todo-web/internal/task/domain/task"
	domainuser "github.com/KasumiMercury/todo-web/internal/task/domain/user"
	"gorm.io/gorm"
)

type TodoModel struct {
	ID          int64     `gorm:"primaryKey;autoIncrement"`
	Title       string    `gorm:"type:text;not null"`
	IsCompleted bool      `gorm:"not null;default:false"`
	UserID      string    `gorm:"type:text;not null;index:idx_todos_user_id"`
	InsertedAt  time.Time `gorm:"type:timestamptz;not null;autoCreateTime"`
}

func (TodoModel) TableName() string {
	return "todos"
}

func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(&TodoModel{})
}

type taskRepository struct {
	db *gorm.DB
}

func NewTaskRepository(db *gorm.DB) domaintask.TaskRepository {
	return &taskRepository{db: db}
}

func (r *taskRepository) ListTasks(ctx context.Context, principal domainuser.Principal) ([]*domaintask.Task, error) {
	if principal.IsZero() {
		return nil, ErrPrincipalRequired
	}

	var records []TodoModel
	if err := r.db.WithContext(ctx).
		Where("user_id = ?", principal.UserID().String()).
		Order("id").
		Find(&records).Error; err != nil {
		return nil, err
	}

	tasks := make([]*domaintask.Task, 0, len(records))

	for _, record := range records {
		task, err := record.toDomain()
		if err != nil {
			return nil, err
		}

		tasks = append(tasks, task)
	}

	return tasks, nil
}

func (r *taskRepository) CreateTask(ctx context.Context, principal domainuser.Principal, title domaintask.Title) (*domaintask.Task, error) {
	if principal.IsZero() {
		return nil, ErrPrincipalRequired
	}

	record := TodoModel{
		Title:       title.String(),
		IsCompleted: false,
		UserID:      principal.UserID().String(),
	}

	if err := r.db.WithContext(ctx).Create(&record).Error; err != nil {
		return nil, err
	}

	return record.toDomain()
}

func (r *taskRepository) UpdateTaskCompletion(ctx context.Context, principal domainuser.Principal, id domaintask.ID, isCompleted bool) error {
	return r.update(ctx, principal, id, "is_completed", isCompleted)
}

func (r *taskRepository) UpdateTaskTitle(ctx context.Context, principal domainuser.Principal, id domaintask.ID, title domaintask.Title) error {
	return r.update(ctx, principal, id, "title", title.String())
}

func (r *taskRepository) DeleteTask(ctx context.Context, principal domainuser.Principal, id domaintask.ID) error {
	if principal.IsZero() {
		return ErrPrincipalRequired
	}

	rowID, ok := parseRowID(id)
	if !ok {
		return domaintask.ErrTaskNotFound
	}

	result := r.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", rowID, principal.UserID().String()).
		Delete(&TodoModel{})
	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		return domaintask.ErrTaskNotFound
	}

	return nil
}

func (r *taskRepository) update(ctx context.Context, principal domainuser.Principal, id domaintask.ID, column string, value any) error {
	if principal.IsZero() {
		return ErrPrincipalRequired
	}

	rowID, ok := parseRowID(id)
	if !ok {
		return domaintask.ErrTaskNotFound
	}

	result := r.db.WithContext(ctx).
		Model(&TodoModel{}).
		Where("id = ? AND user_id = ?", rowID, principal.UserID().String()).
		Update(column, value)
	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		return domaintask.ErrTaskNotFound
	}

	return nil
}

func (m TodoModel) toDomain() (*domaintask.Task, error) {
	taskID, err := domaintask.NewIDFromString(strconv.FormatInt(m.ID, 10))
	if err != nil {
		return nil, err
	}

	userID, err := domainuser.NewIDFromString(m.UserID)
	if err != nil {
		return nil, err
	}

	return domaintask.NewTask(taskID, userID, m.Title, m.IsCompleted, m.InsertedAt)
}

func parseRowID(id domaintask.ID) (int64, bool) {
	rowID, err := strconv.ParseInt(id.String(), 10, 64)
	if err != nil {
		return 0, false
	}

	return rowID, true
}
