package handler

import (
	"fmt"
	"log/slog"
	"net/http"

	"assetmanagement/internal/domain/models"
	"assetmanagement/internal/domain/services"
	"assetmanagement/internal/httputil"
)

// AssetHandler handles asset HTTP requests
type AssetHandler struct {
	assetService services.AssetService
	logger       *slog.Logger
}

// NewAssetHandler creates a new asset handler
func NewAssetHandler(assetService services.AssetService, logger *slog.Logger) *AssetHandler {
	return &AssetHandler{
		assetService: assetService,
		logger:       logger,
	}
}

// CreateAsset creates an asset under an account
// POST /activo?idCuenta=
func (h *AssetHandler) CreateAsset(w http.ResponseWriter, r *http.Request) {
	accountID, present, ok := QueryID(w, r, "idCuenta")
	if !ok {
		return
	}
	if !present {
		httputil.RespondError(w, http.StatusBadRequest, "idCuenta query parameter is required")
		return
	}

	var dto AssetDTO
	if err := httputil.ParseJSON(w, r, &dto); err != nil {
		httputil.RespondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	asset, err := h.assetService.CreateAsset(r.Context(), httputil.GetPrincipal(r), accountID, dto.createRequest())
	if err != nil {
		handleError(w, err)
		return
	}

	w.Header().Set("Location", fmt.Sprintf("/activo/%d", asset.ID))
	httputil.RespondJSON(w, http.StatusCreated, toAssetDTO(asset))
}

// ListAssets looks assets up by the first query parameter present,
// in the order idActivo, idCategoria, idProducto, idCuenta
// GET /activo
func (h *AssetHandler) ListAssets(w http.ResponseWriter, r *http.Request) {
	principal := httputil.GetPrincipal(r)

	for _, param := range []string{"idActivo", "idCategoria", "idProducto", "idCuenta"} {
		id, present, ok := QueryID(w, r, param)
		if !ok {
			return
		}
		if !present {
			continue
		}

		var assets []models.Asset
		var err error
		switch param {
		case "idActivo":
			var asset *models.Asset
			asset, err = h.assetService.GetAsset(r.Context(), principal, id)
			if err == nil {
				assets = []models.Asset{*asset}
			}
		case "idCategoria":
			assets, err = h.assetService.ListByCategory(r.Context(), principal, id)
		case "idProducto":
			assets, err = h.assetService.ListByProduct(r.Context(), principal, id)
		case "idCuenta":
			assets, err = h.assetService.ListByAccount(r.Context(), principal, id)
		}
		if err != nil {
			handleError(w, err)
			return
		}

		httputil.RespondJSON(w, http.StatusOK, toAssetDTOs(assets))
		return
	}

	httputil.RespondError(w, http.StatusBadRequest, "one of idActivo, idCategoria, idProducto or idCuenta is required")
}

// UpdateAsset replaces an asset
// PUT /activo/{id}
func (h *AssetHandler) UpdateAsset(w http.ResponseWriter, r *http.Request) {
	id, ok := PathID(w, r)
	if !ok {
		return
	}

	var dto AssetDTO
	if err := httputil.ParseJSON(w, r, &dto); err != nil {
		httputil.RespondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	asset, err := h.assetService.UpdateAsset(r.Context(), httputil.GetPrincipal(r), id, dto.updateRequest())
	if err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, toAssetDTO(asset))
}

// DeleteAsset deletes an asset
// DELETE /activo/{id}
func (h *AssetHandler) DeleteAsset(w http.ResponseWriter, r *http.Request) {
	id, ok := PathID(w, r)
	if !ok {
		return
	}

	if err := h.assetService.DeleteAsset(r.Context(), httputil.GetPrincipal(r), id); err != nil {
		handleError(w, err)
		return
	}

	w.WriteHeader(http.StatusOK)
}
