package api

import (
	"context"
	"net/http"
	"time"

	"github.com/danielgtaylor/huma/v2"
	"github.com/todolistapp/todolist-server/internal/domain"
	"github.com/todolistapp/todolist-server/internal/service"
)

func (s *Server) registerItemRoutes() {
	huma.Register(s.api, huma.Operation{
		OperationID: "createToDoListItem",
		Method:      http.MethodPost,
		Path:        "/api/toDoListItems",
		Summary:     "Create item",
		Description: "Creates a new to-do list item; new items always start as NotStarted",
		Tags:        []string{"ToDoListItems"},
		Security:    []map[string][]string{{"bearer": {}}},
	}, s.handleCreateItem)

	huma.Register(s.api, huma.Operation{
		OperationID: "updateToDoListItem",
		Method:      http.MethodPut,
		Path:        "/api/toDoListItems",
		Summary:     "Update item",
		Description: "Fully replaces an item's fields and tag set",
		Tags:        []string{"ToDoListItems"},
		Security:    []map[string][]string{{"bearer": {}}},
	}, s.handleUpdateItem)

	huma.Register(s.api, huma.Operation{
		OperationID: "deleteToDoListItem",
		Method:      http.MethodDelete,
		Path:        "/api/toDoListItems/{id}",
		Summary:     "Delete item",
		Description: "Deletes an item and its tag associations",
		Tags:        []string{"ToDoListItems"},
		Security:    []map[string][]string{{"bearer": {}}},
	}, s.handleDeleteItem)

	huma.Register(s.api, huma.Operation{
		OperationID: "queryToDoListItems",
		Method:      http.MethodPost,
		Path:        "/api/toDoListItems/query",
		Summary:     "Query items",
		Description: "Returns a filtered, ordered, paginated item listing",
		Tags:        []string{"ToDoListItems"},
		Security:    []map[string][]string{{"bearer": {}}},
	}, s.handleQueryItems)
}

// === DTOs ===

// CreateItemRequest is the request body for creating an item.
// There is no status field: new items always start as NotStarted.
type CreateItemRequest struct {
	Title       string     `json:"title" required:"false" doc:"Item title"`
	Description *string    `json:"description,omitempty" doc:"Optional free-text details"`
	Location    *string    `json:"location,omitempty" doc:"Optional location"`
	DueDate     *time.Time `json:"dueDate,omitempty" doc:"Optional due date"`
	Tags        []string   `json:"tags,omitempty" doc:"IDs of tags to attach"`
}

// CreateItemInput wraps the create item request for Huma.
type CreateItemInput struct {
	Body CreateItemRequest
}

// ItemResponse contains item data in create/update responses.
type ItemResponse struct {
	ID             string     `json:"id" doc:"Item ID"`
	ItemStatus     string     `json:"itemStatus" doc:"Lifecycle status"`
	Title          string     `json:"title" doc:"Item title"`
	Description    *string    `json:"description,omitempty" doc:"Free-text details"`
	Location       *string    `json:"location,omitempty" doc:"Location"`
	DueDate        *time.Time `json:"dueDate,omitempty" doc:"Due date"`
	Tags           []string   `json:"tags" doc:"Attached tag IDs"`
	LastUpdateDate time.Time  `json:"lastUpdateDate" doc:"Last update time"`
}

// ItemOutput wraps the item response for Huma.
type ItemOutput struct {
	Body ItemResponse
}

// UpdateItemRequest is the request body for updating an item. All
// fields are replaced; omitted optional fields become absent.
type UpdateItemRequest struct {
	ID          string     `json:"id" required:"false" doc:"Item ID"`
	ItemStatus  string     `json:"itemStatus" required:"false" enum:"NotStarted,InProgress,Completed,Archived" doc:"Lifecycle status"`
	Title       string     `json:"title" required:"false" doc:"Item title"`
	Description *string    `json:"description,omitempty" doc:"Optional free-text details"`
	Location    *string    `json:"location,omitempty" doc:"Optional location"`
	DueDate     *time.Time `json:"dueDate,omitempty" doc:"Optional due date"`
	Tags        []string   `json:"tags,omitempty" doc:"IDs of tags to attach"`
}

// UpdateItemInput wraps the update item request for Huma.
type UpdateItemInput struct {
	Body UpdateItemRequest
}

// DeleteItemInput contains parameters for deleting an item.
type DeleteItemInput struct {
	ID string `path:"id" doc:"Item ID"`
}

// QueryItemsRequest is the request body for the filtered listing.
type QueryItemsRequest struct {
	SearchText string     `json:"searchText,omitempty" doc:"Substring match on title or description"`
	Location   string     `json:"location,omitempty" doc:"Substring match on location"`
	ItemStatus *string    `json:"itemStatus,omitempty" enum:"NotStarted,InProgress,Completed,Archived" doc:"Exact status match"`
	StartDate  *time.Time `json:"startDate,omitempty" doc:"Inclusive lower bound on last update time"`
	EndDate    *time.Time `json:"endDate,omitempty" doc:"Inclusive upper bound on last update time"`
	DueDate    *time.Time `json:"dueDate,omitempty" doc:"Exact due date match"`
	Tags       []string   `json:"tags,omitempty" doc:"Tag IDs that must all be attached"`
	OrderBy    *string    `json:"orderBy,omitempty" enum:"dueDate,title,lastUpdate" doc:"Sort field; defaults to last update descending"`
	Descending bool       `json:"isDescending,omitempty" doc:"Sort direction for orderBy"`
	SkipCount  int        `json:"skipCount" required:"false" doc:"Items to skip after sorting"`
	TakeCount  int        `json:"takeCount" required:"false" doc:"Page size"`
}

// QueryItemsInput wraps the query request for Huma.
type QueryItemsInput struct {
	Body QueryItemsRequest
}

// QueryItemResponse is one item in a query result page.
type QueryItemResponse struct {
	ID             string     `json:"id" doc:"Item ID"`
	Title          string     `json:"title" doc:"Item title"`
	ItemStatus     string     `json:"itemStatus" doc:"Lifecycle status"`
	Description    *string    `json:"description,omitempty" doc:"Free-text details"`
	Location       *string    `json:"location,omitempty" doc:"Location"`
	DueDate        *time.Time `json:"dueDate,omitempty" doc:"Due date"`
	LastUpdateDate time.Time  `json:"lastUpdateDate" doc:"Last update time"`
	TagIDs         []string   `json:"tagIds" doc:"Attached tag IDs"`
}

// QueryItemsResponse is a page of matching items.
type QueryItemsResponse struct {
	Total int                 `json:"total" doc:"Total matches before pagination"`
	Data  []QueryItemResponse `json:"data" doc:"The requested page"`
}

// QueryItemsOutput wraps the query response for Huma.
type QueryItemsOutput struct {
	Body QueryItemsResponse
}

// === Handlers ===

func (s *Server) handleCreateItem(ctx context.Context, input *CreateItemInput) (*ItemOutput, error) {
	userID, err := GetUserID(ctx)
	if err != nil {
		return nil, err
	}

	created, err := s.services.Item.Create(ctx, userID, service.ItemInput{
		Title:       input.Body.Title,
		Description: input.Body.Description,
		Location:    input.Body.Location,
		DueDate:     input.Body.DueDate,
		Tags:        input.Body.Tags,
	})
	if err != nil {
		return nil, err
	}

	return &ItemOutput{Body: itemResponse(created)}, nil
}

func (s *Server) handleUpdateItem(ctx context.Context, input *UpdateItemInput) (*ItemOutput, error) {
	userID, err := GetUserID(ctx)
	if err != nil {
		return nil, err
	}

	updated, err := s.services.Item.Update(ctx, userID, input.Body.ID,
		domain.ItemStatus(input.Body.ItemStatus),
		service.ItemInput{
			Title:       input.Body.Title,
			Description: input.Body.Description,
			Location:    input.Body.Location,
			DueDate:     input.Body.DueDate,
			Tags:        input.Body.Tags,
		})
	if err != nil {
		return nil, err
	}

	return &ItemOutput{Body: itemResponse(updated)}, nil
}

func (s *Server) handleDeleteItem(ctx context.Context, input *DeleteItemInput) (*SuccessOutput, error) {
	userID, err := GetUserID(ctx)
	if err != nil {
		return nil, err
	}

	if err := s.services.Item.Delete(ctx, userID, input.ID); err != nil {
		return nil, err
	}

	return &SuccessOutput{Body: SuccessResponse{Success: true}}, nil
}

func (s *Server) handleQueryItems(ctx context.Context, input *QueryItemsInput) (*QueryItemsOutput, error) {
	userID, err := GetUserID(ctx)
	if err != nil {
		return nil, err
	}

	req := service.ItemQueryRequest{
		SearchText: input.Body.SearchText,
		Location:   input.Body.Location,
		StartDate:  input.Body.StartDate,
		EndDate:    input.Body.EndDate,
		DueDate:    input.Body.DueDate,
		Tags:       input.Body.Tags,
		Descending: input.Body.Descending,
		SkipCount:  input.Body.SkipCount,
		TakeCount:  input.Body.TakeCount,
	}
	if input.Body.ItemStatus != nil {
		status := domain.ItemStatus(*input.Body.ItemStatus)
		req.Status = &status
	}
	if input.Body.OrderBy != nil {
		req.OrderBy = *input.Body.OrderBy
	}

	result, err := s.services.Item.Query(ctx, userID, req)
	if err != nil {
		return nil, err
	}

	data := make([]QueryItemResponse, len(result.Items))
	for i, it := range result.Items {
		data[i] = QueryItemResponse{
			ID:             it.Item.ID,
			Title:          it.Item.Title,
			ItemStatus:     string(it.Item.Status),
			Description:    it.Item.Description,
			Location:       it.Item.Location,
			DueDate:        it.Item.DueDate,
			LastUpdateDate: it.Item.LastUpdateDate,
			TagIDs:         it.TagIDs,
		}
	}

	return &QueryItemsOutput{Body: QueryItemsResponse{Total: result.Total, Data: data}}, nil
}

func itemResponse(it *service.ItemWithTags) ItemResponse {
	return ItemResponse{
		ID:             it.Item.ID,
		ItemStatus:     string(it.Item.Status),
		Title:          it.Item.Title,
		Description:    it.Item.Description,
		Location:       it.Item.Location,
		DueDate:        it.Item.DueDate,
		Tags:           it.TagIDs,
		LastUpdateDate: it.Item.LastUpdateDate,
	}
}
