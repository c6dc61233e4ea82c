package category

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"
	"github.com/gofrs/uuid/v5"

	"github.com/carson-networks/finance-server/internal/identity"
)

// GetCategoryInput is the Huma input for fetching one category.
type GetCategoryInput struct {
	ID string `path:"id" doc:"Category UUID"`
}

// GetCategoryOutput is the Huma output for fetching one category.
type GetCategoryOutput struct {
	Body Category
}

// GetCategoryHandler handles GET /v1/category/{id}.
type GetCategoryHandler struct {
	CategoryService categoryService
}

// NewGetCategoryHandler creates a new GetCategoryHandler.
func NewGetCategoryHandler(svc categoryService) *GetCategoryHandler {
	return &GetCategoryHandler{CategoryService: svc}
}

// Register registers the get category endpoint with the Huma API.
func (h *GetCategoryHandler) Register(api huma.API) {
	huma.Register(api, huma.Operation{
		OperationID: "get-category",
		Method:      http.MethodGet,
		Path:        "/v1/category/{id}",
		Summary:     "Get category",
		Description: "Returns one of the acting user's categories.",
		Tags:        []string{"Categories"},
	}, h.handle)
}

func (h *GetCategoryHandler) handle(ctx context.Context, input *GetCategoryInput) (*GetCategoryOutput, error) {
	userID, ok := identity.FromContext(ctx)
	if !ok {
		return nil, huma.NewError(http.StatusUnauthorized, "missing user identity")
	}

	categoryID, err := uuid.FromString(input.ID)
	if err != nil {
		return nil, huma.NewError(http.StatusNotFound, "category not found")
	}

	record, err := h.CategoryService.GetCategory(ctx, categoryID, userID)
	if err != nil {
		return nil, huma.NewError(http.StatusInternalServerError, "failed to fetch category", err)
	}
	if record == nil {
		return nil, huma.NewError(http.StatusNotFound, "category not found")
	}

	return &GetCategoryOutput{Body: fromRecord(record)}, nil
}
