package category

import (
	"context"
	"errors"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"github.com/carson-networks/finance-server/internal/identity"
	"github.com/carson-networks/finance-server/internal/service"
	"github.com/carson-networks/finance-server/internal/storage/category"
)

// CreateCategoryBody is the request body for creating a category.
type CreateCategoryBody struct {
	Name string `json:"name,omitempty" doc:"Category name, unique per user"`
	Type string `json:"type,omitempty" doc:"income or expense"`
}

// CreateCategoryInput is the Huma input for creating a category.
type CreateCategoryInput struct {
	Body CreateCategoryBody
}

// CreateCategoryResponse is the response body for creating a category.
type CreateCategoryResponse struct {
	Message  string   `json:"message" doc:"Human readable confirmation"`
	Category Category `json:"category" doc:"The created category"`
}

// CreateCategoryOutput is the Huma output for creating a category.
type CreateCategoryOutput struct {
	Status int
	Body   CreateCategoryResponse
}

// CreateCategoryHandler handles POST /v1/category.
type CreateCategoryHandler struct {
	CategoryService categoryService
}

// NewCreateCategoryHandler creates a new CreateCategoryHandler.
func NewCreateCategoryHandler(svc categoryService) *CreateCategoryHandler {
	return &CreateCategoryHandler{CategoryService: svc}
}

// Register registers the create category endpoint with the Huma API.
func (h *CreateCategoryHandler) Register(api huma.API) {
	huma.Register(api, huma.Operation{
		OperationID: "create-category",
		Method:      http.MethodPost,
		Path:        "/v1/category",
		Summary:     "Create category",
		Description: "Creates a new income or expense category.",
		Tags:        []string{"Categories"},
	}, h.handle)
}

func (h *CreateCategoryHandler) handle(ctx context.Context, input *CreateCategoryInput) (*CreateCategoryOutput, error) {
	userID, ok := identity.FromContext(ctx)
	if !ok {
		return nil, huma.NewError(http.StatusUnauthorized, "missing user identity")
	}

	if input.Body.Name == "" || input.Body.Type == "" {
		return nil, huma.NewError(http.StatusBadRequest, "name and type are required")
	}
	categoryType := category.Type(input.Body.Type)
	if !categoryType.Valid() {
		return nil, huma.NewError(http.StatusBadRequest, "type must be income or expense")
	}

	created, err := h.CategoryService.CreateCategory(ctx, category.CategoryCreate{
		UserID: userID,
		Name:   input.Body.Name,
		Type:   categoryType,
	})
	if err != nil {
		if errors.Is(err, service.ErrDuplicateCategory) {
			return nil, huma.NewError(http.StatusConflict, "category already exists")
		}
		return nil, huma.NewError(http.StatusInternalServerError, "failed to create category", err)
	}

	return &CreateCategoryOutput{
		Status: http.StatusCreated,
		Body: CreateCategoryResponse{
			Message:  "Category created successfully",
			Category: fromRecord(created),
		},
	}, nil
}
