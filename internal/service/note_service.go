package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"notekeeper/internal/cache"
	apperrors "notekeeper/internal/errors"
	"notekeeper/internal/model"
	"notekeeper/internal/repository"
)

const noteCacheTTL = time.Minute

// reserved fields a patch may never touch; ownership and identity are set by
// the system, not the client.
var reservedNoteFields = map[string]struct{}{
	"_id":       {},
	"id":        {},
	"userID":    {},
	"createdAt": {},
	"updatedAt": {},
}

// NoteService exposes ownership-scoped note operations. The owner id always
// comes from the verified caller, never from request payloads.
type NoteService interface {
	List(ctx context.Context, owner primitive.ObjectID) ([]model.Note, error)
	Create(ctx context.Context, owner primitive.ObjectID, title, subject string) (*model.Note, error)
	Update(ctx context.Context, owner, id primitive.ObjectID, patch map[string]interface{}) error
	Delete(ctx context.Context, owner, id primitive.ObjectID) error
}

type noteService struct {
	repo  repository.NoteRepository
	cache *cache.Client
}

// NewNoteService builds a NoteService with repository and cache.
func NewNoteService(repo repository.NoteRepository, cache *cache.Client) NoteService {
	return &noteService{repo: repo, cache: cache}
}

func (s *noteService) cacheKey(owner primitive.ObjectID) string {
	return fmt.Sprintf("notes:%s", owner.Hex())
}

// List returns the caller's notes in insertion order. An empty result is a
// distinct ErrNoNotes signal rather than an empty array, preserving the
// existing response contract.
func (s *noteService) List(ctx context.Context, owner primitive.ObjectID) ([]model.Note, error) {
	if data, _ := s.cache.Get(ctx, s.cacheKey(owner)); data != nil {
		var cached []model.Note
		if err := json.Unmarshal(data, &cached); err == nil && len(cached) > 0 {
			return cached, nil
		}
	}

	notes, err := s.repo.ListByOwner(ctx, owner)
	if err != nil {
		return nil, fmt.Errorf("list notes: %w", err)
	}
	if len(notes) == 0 {
		return nil, apperrors.ErrNoNotes
	}

	if payload, err := json.Marshal(notes); err == nil {
		_ = s.cache.Set(ctx, s.cacheKey(owner), payload, noteCacheTTL)
	}
	return notes, nil
}

// Create persists a new note owned by the caller.
func (s *noteService) Create(ctx context.Context, owner primitive.ObjectID, title, subject string) (*model.Note, error) {
	note := &model.Note{
		Title:   title,
		Subject: subject,
		UserID:  owner,
	}
	if err := s.repo.Create(ctx, note); err != nil {
		return nil, fmt.Errorf("create note: %w", err)
	}
	_ = s.cache.Delete(ctx, s.cacheKey(owner))
	return note, nil
}

// Update applies a partial field patch to the caller's note. The write is
// conditional on ownership at the store, so check and act are one atomic
// operation; a failed match is then disambiguated into not-found vs
// not-owner for the caller.
func (s *noteService) Update(ctx context.Context, owner, id primitive.ObjectID, patch map[string]interface{}) error {
	fields := bson.M{}
	for k, v := range patch {
		if _, reserved := reservedNoteFields[k]; reserved {
			continue
		}
		fields[k] = v
	}

	matched, err := s.repo.UpdateOwned(ctx, id, owner, fields)
	if err != nil {
		return fmt.Errorf("update note: %w", err)
	}
	if !matched {
		return s.mutationFailure(ctx, id)
	}
	_ = s.cache.Delete(ctx, s.cacheKey(owner))
	return nil
}

// Delete removes the caller's note, conditional on ownership.
func (s *noteService) Delete(ctx context.Context, owner, id primitive.ObjectID) error {
	matched, err := s.repo.DeleteOwned(ctx, id, owner)
	if err != nil {
		return fmt.Errorf("delete note: %w", err)
	}
	if !matched {
		return s.mutationFailure(ctx, id)
	}
	_ = s.cache.Delete(ctx, s.cacheKey(owner))
	return nil
}

// mutationFailure decides why a conditional write matched nothing: the note
// does not exist at all, or it belongs to another user.
func (s *noteService) mutationFailure(ctx context.Context, id primitive.ObjectID) error {
	if _, err := s.repo.FindByID(ctx, id); err != nil {
		if errors.Is(err, apperrors.ErrNoteNotFound) {
			return apperrors.ErrNoteNotFound
		}
		return fmt.Errorf("find note: %w", err)
	}
	return apperrors.ErrNotNoteOwner
}
