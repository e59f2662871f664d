package api

import (
	"context"
	"net/http"
	"time"

	"github.com/danielgtaylor/huma/v2"
)

func (s *Server) registerTagRoutes() {
	huma.Register(s.api, huma.Operation{
		OperationID: "listTags",
		Method:      http.MethodGet,
		Path:        "/api/tags",
		Summary:     "List tags",
		Description: "Returns all tags owned by the current user",
		Tags:        []string{"Tags"},
		Security:    []map[string][]string{{"bearer": {}}},
	}, s.handleListTags)

	huma.Register(s.api, huma.Operation{
		OperationID: "createTag",
		Method:      http.MethodPost,
		Path:        "/api/tags",
		Summary:     "Create tag",
		Description: "Creates a new tag",
		Tags:        []string{"Tags"},
		Security:    []map[string][]string{{"bearer": {}}},
	}, s.handleCreateTag)

	huma.Register(s.api, huma.Operation{
		OperationID: "updateTag",
		Method:      http.MethodPut,
		Path:        "/api/tags",
		Summary:     "Update tag",
		Description: "Renames an existing tag",
		Tags:        []string{"Tags"},
		Security:    []map[string][]string{{"bearer": {}}},
	}, s.handleUpdateTag)

	huma.Register(s.api, huma.Operation{
		OperationID: "deleteTag",
		Method:      http.MethodDelete,
		Path:        "/api/tags/{id}",
		Summary:     "Delete tag",
		Description: "Deletes a tag and detaches it from all items",
		Tags:        []string{"Tags"},
		Security:    []map[string][]string{{"bearer": {}}},
	}, s.handleDeleteTag)
}

// === DTOs ===

// CreateTagRequest is the request body for creating a tag.
type CreateTagRequest struct {
	Label string `json:"label" required:"false" doc:"Tag label, unique per user"`
}

// CreateTagInput wraps the create tag request for Huma.
type CreateTagInput struct {
	Body CreateTagRequest
}

// TagResponse contains tag data in API responses.
type TagResponse struct {
	ID             string    `json:"id" doc:"Tag ID"`
	Label          string    `json:"label" doc:"Tag label"`
	LastUpdateDate time.Time `json:"lastUpdateDate" doc:"Last update time"`
}

// TagOutput wraps the tag response for Huma.
type TagOutput struct {
	Body TagResponse
}

// UpdateTagRequest is the request body for renaming a tag.
type UpdateTagRequest struct {
	ID    string `json:"id" required:"false" doc:"Tag ID"`
	Label string `json:"label" required:"false" doc:"New label"`
}

// UpdateTagInput wraps the update tag request for Huma.
type UpdateTagInput struct {
	Body UpdateTagRequest
}

// UpdateTagResponse contains the renamed tag.
type UpdateTagResponse struct {
	ID    string `json:"id" doc:"Tag ID"`
	Label string `json:"label" doc:"Tag label"`
}

// UpdateTagOutput wraps the update tag response for Huma.
type UpdateTagOutput struct {
	Body UpdateTagResponse
}

// DeleteTagInput contains parameters for deleting a tag.
type DeleteTagInput struct {
	ID string `path:"id" doc:"Tag ID"`
}

// SuccessResponse reports the outcome of a delete operation.
type SuccessResponse struct {
	Success bool `json:"success" doc:"Whether the operation completed"`
}

// SuccessOutput wraps the success response for Huma.
type SuccessOutput struct {
	Body SuccessResponse
}

// ListTagsResponse contains the user's tags.
type ListTagsResponse struct {
	Data []TagResponse `json:"data" doc:"Tags owned by the current user"`
}

// ListTagsOutput wraps the list tags response for Huma.
type ListTagsOutput struct {
	Body ListTagsResponse
}

// === Handlers ===

func (s *Server) handleListTags(ctx context.Context, _ *struct{}) (*ListTagsOutput, error) {
	userID, err := GetUserID(ctx)
	if err != nil {
		return nil, err
	}

	tags, err := s.services.Tag.List(ctx, userID)
	if err != nil {
		return nil, err
	}

	resp := make([]TagResponse, len(tags))
	for i, tag := range tags {
		resp[i] = TagResponse{
			ID:             tag.ID,
			Label:          tag.Label,
			LastUpdateDate: tag.LastUpdateDate,
		}
	}

	return &ListTagsOutput{Body: ListTagsResponse{Data: resp}}, nil
}

func (s *Server) handleCreateTag(ctx context.Context, input *CreateTagInput) (*TagOutput, error) {
	userID, err := GetUserID(ctx)
	if err != nil {
		return nil, err
	}

	tag, err := s.services.Tag.Create(ctx, userID, input.Body.Label)
	if err != nil {
		return nil, err
	}

	return &TagOutput{
		Body: TagResponse{
			ID:             tag.ID,
			Label:          tag.Label,
			LastUpdateDate: tag.LastUpdateDate,
		},
	}, nil
}

func (s *Server) handleUpdateTag(ctx context.Context, input *UpdateTagInput) (*UpdateTagOutput, error) {
	userID, err := GetUserID(ctx)
	if err != nil {
		return nil, err
	}

	tag, err := s.services.Tag.Update(ctx, userID, input.Body.ID, input.Body.Label)
	if err != nil {
		return nil, err
	}

	return &UpdateTagOutput{
		Body: UpdateTagResponse{
			ID:    tag.ID,
			Label: tag.Label,
		},
	}, nil
}

func (s *Server) handleDeleteTag(ctx context.Context, input *DeleteTagInput) (*SuccessOutput, error) {
	userID, err := GetUserID(ctx)
	if err != nil {
		return nil, err
	}

	if err := s.services.Tag.Delete(ctx, userID, input.ID); err != nil {
		return nil, err
	}

	return &SuccessOutput{Body: SuccessResponse{Success: true}}, nil
}
