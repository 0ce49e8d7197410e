package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/inkpad/webapps/internal/core/domain"
	"github.com/inkpad/webapps/internal/core/ports"
)

const kindTask = "task"

type TaskService struct {
	repo   ports.TaskRepository
	logger zerolog.Logger
}

var _ ports.TaskService = (*TaskService)(nil)

func NewTaskService(repo ports.TaskRepository, logger zerolog.Logger) *TaskService {
	return &TaskService{repo: repo, logger: logger}
}

// AddTask appends an open task to actor's list. Blank text is rejected.
func (s *TaskService) AddTask(ctx context.Context, actor ports.Actor, text string) (*domain.Task, error) {
	if actor.Anonymous() {
		observeMutation(kindTask, "create", domain.ErrUnauthenticated)
		return nil, domain.ErrUnauthenticated
	}
	if strings.TrimSpace(text) == "" {
		observeMutation(kindTask, "create", domain.ErrInvalidInput)
		return nil, fmt.Errorf("%w: task text is required", domain.ErrInvalidInput)
	}

	task := &domain.Task{
		OwnerID:   actor.UserID,
		Text:      text,
		CreatedAt: time.Now().UTC(),
	}
	if err := s.repo.Create(ctx, task); err != nil {
		observeMutation(kindTask, "create", err)
		s.logger.Error().Err(err).Msg("failed to add task")
		return nil, err
	}

	observeMutation(kindTask, "create", nil)
	s.logger.Info().Str("task_id", task.ID).Str("owner_id", task.OwnerID).Msg("task added")
	return task, nil
}

func (s *TaskService) ListTasks(ctx context.Context, actor ports.Actor) ([]*domain.Task, error) {
	if actor.Anonymous() {
		return nil, domain.ErrUnauthenticated
	}
	return s.repo.ListByOwner(ctx, actor.UserID)
}

func (s *TaskService) CompleteTask(ctx context.Context, actor ports.Actor, id string) error {
	return s.setCompleted(ctx, actor, id, "complete", true)
}

func (s *TaskService) ReopenTask(ctx context.Context, actor ports.Actor, id string) error {
	return s.setCompleted(ctx, actor, id, "reopen", false)
}

func (s *TaskService) RenameTask(ctx context.Context, actor ports.Actor, id, text string) error {
	if strings.TrimSpace(text) == "" {
		return fmt.Errorf("%w: task text is required", domain.ErrInvalidInput)
	}
	return guardedMutation(ctx, s.logger, kindTask, "update", actor.UserID, id, s.ownerOf,
		func(ctx context.Context) error {
			return s.repo.Update(ctx, id, actor.UserID, text)
		})
}

func (s *TaskService) DeleteTask(ctx context.Context, actor ports.Actor, id string) error {
	return guardedMutation(ctx, s.logger, kindTask, "delete", actor.UserID, id, s.ownerOf,
		func(ctx context.Context) error {
			return s.repo.Delete(ctx, id, actor.UserID)
		})
}

func (s *TaskService) setCompleted(ctx context.Context, actor ports.Actor, id, op string, completed bool) error {
	return guardedMutation(ctx, s.logger, kindTask, op, actor.UserID, id, s.ownerOf,
		func(ctx context.Context) error {
			return s.repo.SetCompleted(ctx, id, actor.UserID, completed)
		})
}

func (s *TaskService) ownerOf(ctx context.Context, id string) (string, error) {
	task, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return "", err
	}
	return task.OwnerID, nil
}
