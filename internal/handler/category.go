package handler

import (
	"fmt"
	"log/slog"
	"net/http"

	"assetmanagement/internal/domain/services"
	"assetmanagement/internal/httputil"
)

// CategoryHandler handles category HTTP requests
type CategoryHandler struct {
	categoryService services.CategoryService
	logger          *slog.Logger
}

// NewCategoryHandler creates a new category handler
func NewCategoryHandler(categoryService services.CategoryService, logger *slog.Logger) *CategoryHandler {
	return &CategoryHandler{
		categoryService: categoryService,
		logger:          logger,
	}
}

// CreateCategory creates a category under an account
// POST /categoria-activo?idCuenta=
func (h *CategoryHandler) CreateCategory(w http.ResponseWriter, r *http.Request) {
	accountID, present, ok := QueryID(w, r, "idCuenta")
	if !ok {
		return
	}
	if !present {
		httputil.RespondError(w, http.StatusBadRequest, "idCuenta query parameter is required")
		return
	}

	var dto CategoryDTO
	if err := httputil.ParseJSON(w, r, &dto); err != nil {
		httputil.RespondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	req := &services.CreateCategoryRequest{Name: dto.Nombre, AssetIDs: dto.Activos}
	category, err := h.categoryService.CreateCategory(r.Context(), httputil.GetPrincipal(r), accountID, req)
	if err != nil {
		handleError(w, err)
		return
	}

	w.Header().Set("Location", fmt.Sprintf("/categoria-activo/%d", category.ID))
	httputil.RespondJSON(w, http.StatusCreated, toCategoryDTO(category))
}

// ListCategories returns the categories of an account, or one category by id
// GET /categoria-activo?idCuenta= | ?idCategoria=
func (h *CategoryHandler) ListCategories(w http.ResponseWriter, r *http.Request) {
	principal := httputil.GetPrincipal(r)

	accountID, present, ok := QueryID(w, r, "idCuenta")
	if !ok {
		return
	}
	if present {
		categories, err := h.categoryService.ListByAccount(r.Context(), principal, accountID)
		if err != nil {
			handleError(w, err)
			return
		}
		httputil.RespondJSON(w, http.StatusOK, toCategoryDTOs(categories))
		return
	}

	categoryID, present, ok := QueryID(w, r, "idCategoria")
	if !ok {
		return
	}
	if !present {
		httputil.RespondError(w, http.StatusBadRequest, "one of idCuenta or idCategoria is required")
		return
	}

	category, err := h.categoryService.GetCategory(r.Context(), principal, categoryID)
	if err != nil {
		handleError(w, err)
		return
	}
	httputil.RespondJSON(w, http.StatusOK, []CategoryDTO{toCategoryDTO(category)})
}

// UpdateCategory renames a category
// PUT /categoria-activo/{id}
func (h *CategoryHandler) UpdateCategory(w http.ResponseWriter, r *http.Request) {
	id, ok := PathID(w, r)
	if !ok {
		return
	}

	var dto CategoryDTO
	if err := httputil.ParseJSON(w, r, &dto); err != nil {
		httputil.RespondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	category, err := h.categoryService.UpdateCategory(r.Context(), httputil.GetPrincipal(r), id, &services.UpdateCategoryRequest{Name: dto.Nombre})
	if err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, toCategoryDTO(category))
}

// DeleteCategory deletes a category without assets
// DELETE /categoria-activo/{id}
func (h *CategoryHandler) DeleteCategory(w http.ResponseWriter, r *http.Request) {
	id, ok := PathID(w, r)
	if !ok {
		return
	}

	if err := h.categoryService.DeleteCategory(r.Context(), httputil.GetPrincipal(r), id); err != nil {
		handleError(w, err)
		return
	}

	w.WriteHeader(http.StatusOK)
}
