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

const kindNote = "note"

// NoteService keeps each user's notes private: reads are scoped to the
// session identity and single-note reads go through the mutation guard.
type NoteService struct {
	repo   ports.NoteRepository
	logger zerolog.Logger
}

var _ ports.NoteService = (*NoteService)(nil)

func NewNoteService(repo ports.NoteRepository, logger zerolog.Logger) *NoteService {
	return &NoteService{repo: repo, logger: logger}
}

func (s *NoteService) CreateNote(ctx context.Context, actor ports.Actor, text string) (*domain.Note, error) {
	if actor.Anonymous() {
		observeMutation(kindNote, "create", domain.ErrUnauthenticated)
		return nil, domain.ErrUnauthenticated
	}
	if strings.TrimSpace(text) == "" {
		observeMutation(kindNote, "create", domain.ErrInvalidInput)
		return nil, fmt.Errorf("%w: note text is required", domain.ErrInvalidInput)
	}

	note := &domain.Note{
		OwnerID:   actor.UserID,
		Text:      text,
		CreatedAt: time.Now().UTC(),
	}
	if err := s.repo.Create(ctx, note); err != nil {
		observeMutation(kindNote, "create", err)
		s.logger.Error().Err(err).Msg("failed to create note")
		return nil, err
	}

	observeMutation(kindNote, "create", nil)
	s.logger.Info().Str("note_id", note.ID).Str("user_id", note.OwnerID).Msg("note created")
	return note, nil
}

func (s *NoteService) ListNotes(ctx context.Context, actor ports.Actor) ([]*domain.Note, error) {
	if actor.Anonymous() {
		return nil, domain.ErrUnauthenticated
	}
	return s.repo.ListByOwner(ctx, actor.UserID)
}

func (s *NoteService) GetNote(ctx context.Context, actor ports.Actor, id string) (*domain.Note, error) {
	note, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := domain.AuthorizeMutation(actor.UserID, note.OwnerID); err != nil {
		return nil, err
	}
	return note, nil
}

func (s *NoteService) UpdateNote(ctx context.Context, actor ports.Actor, id, text string) error {
	if strings.TrimSpace(text) == "" {
		return fmt.Errorf("%w: note text is required", domain.ErrInvalidInput)
	}
	return guardedMutation(ctx, s.logger, kindNote, "update", actor.UserID, id, s.ownerOf,
		func(ctx context.Context) error {
			return s.repo.Update(ctx, id, actor.UserID, text)
		})
}

func (s *NoteService) DeleteNote(ctx context.Context, actor ports.Actor, id string) error {
	err := guardedMutation(ctx, s.logger, kindNote, "delete", actor.UserID, id, s.ownerOf,
		func(ctx context.Context) error {
			return s.repo.Delete(ctx, id, actor.UserID)
		})
	if err == nil {
		s.logger.Info().Str("note_id", id).Msg("note deleted")
	}
	return err
}

func (s *NoteService) ownerOf(ctx context.Context, id string) (string, error) {
	note, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return "", err
	}
	return note.OwnerID, nil
}
