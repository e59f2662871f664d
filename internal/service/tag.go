package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/todolistapp/todolist-server/internal/domain"
	"github.com/todolistapp/todolist-server/internal/id"
	"github.com/todolistapp/todolist-server/internal/store"
	"github.com/todolistapp/todolist-server/internal/validation"
)

const maxLabelLength = 30

// TagService manages a user's tags.
type TagService struct {
	store  *store.Store
	logger *slog.Logger
}

// NewTagService creates a tag service.
func NewTagService(s *store.Store, logger *slog.Logger) *TagService {
	return &TagService{
		store:  s,
		logger: logger.With("service", "tag"),
	}
}

// Create adds a new tag for the user. Labels are trimmed before
// validation and storage; the duplicate check is case sensitive and
// scoped to the user's own tags.
func (s *TagService) Create(ctx context.Context, userID, label string) (*domain.Tag, error) {
	label = strings.TrimSpace(label)
	if err := s.validateLabel(ctx, userID, label, ""); err != nil {
		return nil, err
	}

	tag := &domain.Tag{
		ID:             id.MustGenerate("tag"),
		UserID:         userID,
		Label:          label,
		LastUpdateDate: time.Now(),
	}
	if err := s.store.CreateTag(ctx, tag); err != nil {
		return nil, fmt.Errorf("create tag: %w", err)
	}

	s.logger.Info("tag created", "tag_id", tag.ID, "user_id", userID)
	return tag, nil
}

// Update renames a tag. The tag's own ID is excluded from the duplicate
// check, so saving an unchanged label is allowed.
func (s *TagService) Update(ctx context.Context, userID, tagID, label string) (*domain.Tag, error) {
	tag, err := s.store.GetTag(ctx, userID, tagID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, invalidTagID()
		}
		return nil, fmt.Errorf("lookup tag: %w", err)
	}

	label = strings.TrimSpace(label)
	if err := s.validateLabel(ctx, userID, label, tagID); err != nil {
		return nil, err
	}

	tag.Label = label
	tag.LastUpdateDate = time.Now()
	if err := s.store.UpdateTag(ctx, tag); err != nil {
		return nil, fmt.Errorf("update tag: %w", err)
	}

	s.logger.Info("tag updated", "tag_id", tag.ID, "user_id", userID)
	return tag, nil
}

// Delete removes a tag and all item associations that reference it.
func (s *TagService) Delete(ctx context.Context, userID, tagID string) error {
	if err := s.store.DeleteTag(ctx, userID, tagID); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return invalidTagID()
		}
		return fmt.Errorf("delete tag: %w", err)
	}

	s.logger.Info("tag deleted", "tag_id", tagID, "user_id", userID)
	return nil
}

// List returns all of the user's tags.
func (s *TagService) List(ctx context.Context, userID string) ([]*domain.Tag, error) {
	tags, err := s.store.ListTags(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("list tags: %w", err)
	}
	return tags, nil
}

func (s *TagService) validateLabel(ctx context.Context, userID, label, excludeID string) error {
	var errs validation.FieldErrors
	switch {
	case !validation.Required(label):
		errs.Add("label", "Label Cannot Be Empty")
	case !validation.MaxLength(label, maxLabelLength):
		errs.Add("label", "Maximum Length For Label Is 30")
	default:
		count, err := s.store.CountTagsByLabel(ctx, userID, label, excludeID)
		if err != nil {
			return fmt.Errorf("check duplicate label: %w", err)
		}
		if count > 0 {
			errs.Add("label", "Duplicated Label")
		}
	}
	return errs.Err()
}

func invalidTagID() error {
	var errs validation.FieldErrors
	errs.Add("id", "Invalid Tag Id")
	return errs.Err()
}
