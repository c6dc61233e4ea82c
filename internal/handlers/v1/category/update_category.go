package category

import (
	"context"
	"errors"
	"net/http"

	"github.com/danielgtaylor/huma/v2"
	"github.com/gofrs/uuid/v5"

	"github.com/carson-networks/finance-server/internal/identity"
	"github.com/carson-networks/finance-server/internal/service"
	"github.com/carson-networks/finance-server/internal/storage/category"
)

// UpdateCategoryBody is the request body for updating a category.
type UpdateCategoryBody struct {
	Name string `json:"name,omitempty" doc:"New category name"`
	Type string `json:"type,omitempty" doc:"New category type: income or expense"`
}

// UpdateCategoryInput is the Huma input for updating a category.
type UpdateCategoryInput struct {
	ID   string `path:"id" doc:"Category UUID"`
	Body UpdateCategoryBody
}

// UpdateCategoryResponse is the response body for updating a category.
type UpdateCategoryResponse struct {
	Message  string   `json:"message" doc:"Human readable confirmation"`
	Category Category `json:"category" doc:"The updated category"`
}

// UpdateCategoryOutput is the Huma output for updating a category.
type UpdateCategoryOutput struct {
	Body UpdateCategoryResponse
}

// UpdateCategoryHandler handles PUT /v1/category/{id}.
type UpdateCategoryHandler struct {
	CategoryService categoryService
}

// NewUpdateCategoryHandler creates a new UpdateCategoryHandler.
func NewUpdateCategoryHandler(svc categoryService) *UpdateCategoryHandler {
	return &UpdateCategoryHandler{CategoryService: svc}
}

// Register registers the update category endpoint with the Huma API.
func (h *UpdateCategoryHandler) Register(api huma.API) {
	huma.Register(api, huma.Operation{
		OperationID: "update-category",
		Method:      http.MethodPut,
		Path:        "/v1/category/{id}",
		Summary:     "Update category",
		Description: "Updates a category's name and type.",
		Tags:        []string{"Categories"},
	}, h.handle)
}

func parseUpdateCategoryInput(input *UpdateCategoryInput) (category.CategoryUpdate, error) {
	var update category.CategoryUpdate

	if input.Body.Name != "" {
		name := input.Body.Name
		update.Name = &name
	}
	if input.Body.Type != "" {
		categoryType := category.Type(input.Body.Type)
		if !categoryType.Valid() {
			return update, huma.NewError(http.StatusBadRequest, "type must be income or expense")
		}
		update.Type = &categoryType
	}

	if update.Name == nil && update.Type == nil {
		return update, huma.NewError(http.StatusBadRequest, "nothing to update")
	}
	return update, nil
}

func (h *UpdateCategoryHandler) handle(ctx context.Context, input *UpdateCategoryInput) (*UpdateCategoryOutput, error) {
	userID, ok := identity.FromContext(ctx)
	if !ok {
		return nil, huma.NewError(http.StatusUnauthorized, "missing user identity")
	}

	categoryID, err := uuid.FromString(input.ID)
	if err != nil {
		return nil, huma.NewError(http.StatusNotFound, "category not found")
	}

	update, err := parseUpdateCategoryInput(input)
	if err != nil {
		return nil, err
	}

	record, err := h.CategoryService.UpdateCategory(ctx, categoryID, userID, update)
	if err != nil {
		if errors.Is(err, service.ErrDuplicateCategory) {
			return nil, huma.NewError(http.StatusConflict, "category already exists")
		}
		return nil, huma.NewError(http.StatusInternalServerError, "failed to update category", err)
	}
	if record == nil {
		return nil, huma.NewError(http.StatusNotFound, "category not found")
	}

	return &UpdateCategoryOutput{
		Body: UpdateCategoryResponse{
			Message:  "Category updated successfully",
			Category: fromRecord(record),
		},
	}, nil
}
