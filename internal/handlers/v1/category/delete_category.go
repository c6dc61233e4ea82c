package category

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"
	"github.com/gofrs/uuid/v5"

	"github.com/carson-networks/finance-server/internal/identity"
)

// DeleteCategoryInput is the Huma input for deleting a category.
type DeleteCategoryInput struct {
	ID string `path:"id" doc:"Category UUID"`
}

// DeleteCategoryResponse is the response body for deleting a category.
type DeleteCategoryResponse struct {
	Message string `json:"message" doc:"Human readable confirmation"`
}

// DeleteCategoryOutput is the Huma output for deleting a category.
type DeleteCategoryOutput struct {
	Body DeleteCategoryResponse
}

// DeleteCategoryHandler handles DELETE /v1/category/{id}.
type DeleteCategoryHandler struct {
	CategoryService categoryService
}

// NewDeleteCategoryHandler creates a new DeleteCategoryHandler.
func NewDeleteCategoryHandler(svc categoryService) *DeleteCategoryHandler {
	return &DeleteCategoryHandler{CategoryService: svc}
}

// Register registers the delete category endpoint with the Huma API.
func (h *DeleteCategoryHandler) Register(api huma.API) {
	huma.Register(api, huma.Operation{
		OperationID: "delete-category",
		Method:      http.MethodDelete,
		Path:        "/v1/category/{id}",
		Summary:     "Delete category",
		Description: "Deletes a category owned by the requesting user.",
		Tags:        []string{"Categories"},
	}, h.handle)
}

func (h *DeleteCategoryHandler) handle(ctx context.Context, input *DeleteCategoryInput) (*DeleteCategoryOutput, error) {
	userID, ok := identity.FromContext(ctx)
	if !ok {
		return nil, huma.NewError(http.StatusUnauthorized, "missing user identity")
	}

	categoryID, err := uuid.FromString(input.ID)
	if err != nil {
		return nil, huma.NewError(http.StatusNotFound, "category not found")
	}

	deleted, err := h.CategoryService.DeleteCategory(ctx, categoryID, userID)
	if err != nil {
		return nil, huma.NewError(http.StatusInternalServerError, "failed to delete category", err)
	}
	if !deleted {
		return nil, huma.NewError(http.StatusNotFound, "category not found")
	}

	return &DeleteCategoryOutput{
		Body: DeleteCategoryResponse{Message: "Category deleted successfully"},
	}, nil
}
