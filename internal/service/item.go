package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/todolistapp/todolist-server/internal/domain"
	"github.com/todolistapp/todolist-server/internal/id"
	"github.com/todolistapp/todolist-server/internal/store"
	"github.com/todolistapp/todolist-server/internal/validation"
)

const (
	maxTitleLength       = 250
	maxDescriptionLength = 500
	maxLocationLength    = 250
)

// ItemService manages a user's to-do list items and their tag sets.
type ItemService struct {
	store     *store.Store
	validator *validation.Validator
	logger    *slog.Logger
}

// NewItemService creates an item service.
func NewItemService(s *store.Store, logger *slog.Logger) *ItemService {
	return &ItemService{
		store:     s,
		validator: validation.New(),
		logger:    logger.With("service", "item"),
	}
}

// ItemInput carries the caller-editable fields of an item. Optional
// fields left nil are stored as absent; on update they overwrite any
// previous value.
type ItemInput struct {
	Title       string
	Description *string
	Location    *string
	DueDate     *time.Time
	Tags        []string
}

// ItemWithTags pairs an item with the IDs of its attached tags.
type ItemWithTags struct {
	Item   *domain.Item
	TagIDs []string
}

// Create persists a new item. The status is always NotStarted no matter
// what the caller sends; every supplied tag ID must resolve to one of
// the user's own tags or the whole request is rejected.
func (s *ItemService) Create(ctx context.Context, userID string, in ItemInput) (*ItemWithTags, error) {
	if err := s.validateInput(ctx, userID, in); err != nil {
		return nil, err
	}

	item := &domain.Item{
		ID:             id.MustGenerate("item"),
		UserID:         userID,
		Title:          in.Title,
		Status:         domain.StatusNotStarted,
		Description:    in.Description,
		Location:       in.Location,
		DueDate:        in.DueDate,
		LastUpdateDate: time.Now(),
	}
	if err := s.store.CreateItem(ctx, item, in.Tags); err != nil {
		return nil, fmt.Errorf("create item: %w", err)
	}

	s.logger.Info("item created", "item_id", item.ID, "user_id", userID)
	return &ItemWithTags{Item: item, TagIDs: tagIDsOrEmpty(in.Tags)}, nil
}

// Update fully replaces an item's fields and its tag set. Omitted
// optional fields become absent rather than keeping their old values.
func (s *ItemService) Update(ctx context.Context, userID, itemID string, status domain.ItemStatus, in ItemInput) (*ItemWithTags, error) {
	item, err := s.store.GetItem(ctx, userID, itemID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, invalidItemID()
		}
		return nil, fmt.Errorf("lookup item: %w", err)
	}

	if err := s.validateInput(ctx, userID, in); err != nil {
		return nil, err
	}
	if !status.IsValid() {
		var errs validation.FieldErrors
		errs.Add("itemStatus", "Invalid Status")
		return nil, errs.Err()
	}

	item.Title = in.Title
	item.Status = status
	item.Description = in.Description
	item.Location = in.Location
	item.DueDate = in.DueDate
	item.Touch(time.Now())
	if err := s.store.UpdateItem(ctx, item, in.Tags); err != nil {
		return nil, fmt.Errorf("update item: %w", err)
	}

	// Report the tag set as stored rather than echoing the input.
	tagIDs, err := s.store.GetItemTagIDs(ctx, item.ID)
	if err != nil {
		return nil, fmt.Errorf("load item tags: %w", err)
	}

	s.logger.Info("item updated", "item_id", item.ID, "user_id", userID)
	return &ItemWithTags{Item: item, TagIDs: tagIDs}, nil
}

// Delete removes an item and its tag associations.
func (s *ItemService) Delete(ctx context.Context, userID, itemID string) error {
	if err := s.store.DeleteItem(ctx, userID, itemID); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return invalidItemID()
		}
		return fmt.Errorf("delete item: %w", err)
	}

	s.logger.Info("item deleted", "item_id", itemID, "user_id", userID)
	return nil
}

// ItemQueryRequest is the filtered listing request. All filters are
// optional and AND-combined; Tags requires every listed tag.
type ItemQueryRequest struct {
	SearchText string             `json:"searchText"`
	Location   string             `json:"location"`
	Status     *domain.ItemStatus `json:"itemStatus"`
	StartDate  *time.Time         `json:"startDate"`
	EndDate    *time.Time         `json:"endDate"`
	DueDate    *time.Time         `json:"dueDate"`
	Tags       []string           `json:"tags"`
	OrderBy    string             `json:"orderBy" validate:"omitempty,oneof=dueDate title lastUpdate"`
	Descending bool               `json:"isDescending"`
	SkipCount  int                `json:"skipCount" validate:"gte=0"`
	TakeCount  int                `json:"takeCount" validate:"gte=0"`
}

// ItemQueryResult is one page of matching items plus the total match
// count computed before pagination.
type ItemQueryResult struct {
	Total int
	Items []*ItemWithTags
}

// Query returns the user's items matching the request.
func (s *ItemService) Query(ctx context.Context, userID string, req ItemQueryRequest) (*ItemQueryResult, error) {
	if err := s.validator.Validate(req); err != nil {
		return nil, err
	}

	total, items, err := s.store.QueryItems(ctx, userID, store.ItemQuery{
		SearchText: req.SearchText,
		Location:   req.Location,
		Status:     req.Status,
		StartDate:  req.StartDate,
		EndDate:    req.EndDate,
		DueDate:    req.DueDate,
		Tags:       req.Tags,
		OrderBy:    req.OrderBy,
		Descending: req.Descending,
		Skip:       req.SkipCount,
		Take:       req.TakeCount,
	})
	if err != nil {
		return nil, fmt.Errorf("query items: %w", err)
	}

	itemIDs := make([]string, len(items))
	for i, item := range items {
		itemIDs[i] = item.ID
	}
	tagsByItem, err := s.store.GetTagIDsForItems(ctx, itemIDs)
	if err != nil {
		return nil, fmt.Errorf("load item tags: %w", err)
	}

	result := &ItemQueryResult{Total: total, Items: make([]*ItemWithTags, len(items))}
	for i, item := range items {
		result.Items[i] = &ItemWithTags{Item: item, TagIDs: tagIDsOrEmpty(tagsByItem[item.ID])}
	}
	return result, nil
}

// validateInput checks the caller-editable fields and resolves every
// supplied tag ID against the user's own tags. One bad tag fails the
// whole request.
func (s *ItemService) validateInput(ctx context.Context, userID string, in ItemInput) error {
	var errs validation.FieldErrors
	switch {
	case !validation.Required(in.Title):
		errs.Add("title", "Title Cannot Be Empty")
	case !validation.MaxLength(in.Title, maxTitleLength):
		errs.Add("title", "Maximum Length Allowed For Title is 250")
	}
	if in.Description != nil && !validation.MaxLength(*in.Description, maxDescriptionLength) {
		errs.Add("description", "Maximum Length Allowed For Description is 500")
	}
	if in.Location != nil && !validation.MaxLength(*in.Location, maxLocationLength) {
		errs.Add("location", "Maximum Length Allowed For Location is 250")
	}
	for _, tagID := range in.Tags {
		if _, err := s.store.GetTag(ctx, userID, tagID); err != nil {
			if errors.Is(err, store.ErrNotFound) {
				errs.Add("tags", "Invalid Tag Id")
				continue
			}
			return fmt.Errorf("lookup tag: %w", err)
		}
	}
	return errs.Err()
}

func invalidItemID() error {
	var errs validation.FieldErrors
	errs.Add("id", "Invalid Item Id")
	return errs.Err()
}

// tagIDsOrEmpty keeps response tag lists as [] rather than null.
func tagIDsOrEmpty(ids []string) []string {
	if ids == nil {
		return []string{}
	}
	return ids
}
