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

const kindPost = "post"

type PostService struct {
	repo   ports.PostRepository
	logger zerolog.Logger
}

var _ ports.PostService = (*PostService)(nil)

func NewPostService(repo ports.PostRepository, logger zerolog.Logger) *PostService {
	return &PostService{repo: repo, logger: logger}
}

// CreatePost stores a post authored by actor.
func (s *PostService) CreatePost(ctx context.Context, actor ports.Actor, payload domain.PostPayload) (*domain.Post, error) {
	if actor.Anonymous() {
		observeMutation(kindPost, "create", domain.ErrUnauthenticated)
		return nil, domain.ErrUnauthenticated
	}
	if strings.TrimSpace(payload.Title) == "" {
		observeMutation(kindPost, "create", domain.ErrInvalidInput)
		return nil, fmt.Errorf("%w: title is required", domain.ErrInvalidInput)
	}

	post := &domain.Post{
		OwnerID:   actor.UserID,
		Author:    actor.Username,
		Title:     payload.Title,
		Content:   payload.Content,
		CreatedAt: time.Now().UTC(),
	}
	if err := s.repo.Create(ctx, post); err != nil {
		observeMutation(kindPost, "create", err)
		s.logger.Error().Err(err).Msg("failed to create post")
		return nil, err
	}

	observeMutation(kindPost, "create", nil)
	s.logger.Info().Str("post_id", post.ID).Str("author_id", post.OwnerID).Msg("post created")
	return post, nil
}

func (s *PostService) GetPost(ctx context.Context, id string) (*domain.Post, error) {
	return s.repo.FindByID(ctx, id)
}

// ListPosts returns the global feed, newest first.
func (s *PostService) ListPosts(ctx context.Context) ([]*domain.Post, error) {
	return s.repo.ListAll(ctx)
}

func (s *PostService) ListPostsByAuthor(ctx context.Context, ownerID string) ([]*domain.Post, error) {
	return s.repo.ListByOwner(ctx, ownerID)
}

// EditablePost loads a post only if actor may change it.
func (s *PostService) EditablePost(ctx context.Context, actor ports.Actor, id string) (*domain.Post, error) {
	post, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := domain.AuthorizeMutation(actor.UserID, post.OwnerID); err != nil {
		return nil, err
	}
	return post, nil
}

func (s *PostService) UpdatePost(ctx context.Context, actor ports.Actor, id string, payload domain.PostPayload) error {
	if strings.TrimSpace(payload.Title) == "" {
		return fmt.Errorf("%w: title is required", domain.ErrInvalidInput)
	}
	err := guardedMutation(ctx, s.logger, kindPost, "update", actor.UserID, id, s.ownerOf,
		func(ctx context.Context) error {
			return s.repo.Update(ctx, id, actor.UserID, payload)
		})
	if err == nil {
		s.logger.Info().Str("post_id", id).Msg("post updated")
	}
	return err
}

func (s *PostService) DeletePost(ctx context.Context, actor ports.Actor, id string) error {
	err := guardedMutation(ctx, s.logger, kindPost, "delete", actor.UserID, id, s.ownerOf,
		func(ctx context.Context) error {
			return s.repo.Delete(ctx, id, actor.UserID)
		})
	if err == nil {
		s.logger.Info().Str("post_id", id).Msg("post deleted")
	}
	return err
}

func (s *PostService) ownerOf(ctx context.Context, id string) (string, error) {
	post, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return "", err
	}
	return post.OwnerID, nil
}
