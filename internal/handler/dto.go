package handler

import (
	"assetmanagement/internal/domain/models"
	"assetmanagement/internal/domain/services"
)

// Wire format shared with the account service and existing clients.

type CategoryRefDTO struct {
	ID     int    `json:"id"`
	Nombre string `json:"nombre"`
}

type AssetDTO struct {
	ID         int              `json:"id"`
	Nombre     string           `json:"nombre"`
	Tipo       *string          `json:"tipo"`
	Tamanio    *int             `json:"tamanio"`
	URL        *string          `json:"url"`
	Categorias []CategoryRefDTO `json:"categorias"`
	Productos  []int            `json:"productos"`
}

type CategoryDTO struct {
	ID     int    `json:"id"`
	Nombre string `json:"nombre"`
	// Only read on create
	Activos []int `json:"activos,omitempty"`
}

func toAssetDTO(a *models.Asset) AssetDTO {
	size := a.Size
	refs := make([]CategoryRefDTO, 0, len(a.Categories))
	for _, c := range a.Categories {
		refs = append(refs, CategoryRefDTO{ID: c.ID, Nombre: c.Name})
	}
	products := a.ProductIDs
	if products == nil {
		products = []int{}
	}
	return AssetDTO{
		ID:         a.ID,
		Nombre:     a.Name,
		Tipo:       a.Kind,
		Tamanio:    &size,
		URL:        a.URL,
		Categorias: refs,
		Productos:  products,
	}
}

func toAssetDTOs(assets []models.Asset) []AssetDTO {
	out := make([]AssetDTO, 0, len(assets))
	for i := range assets {
		out = append(out, toAssetDTO(&assets[i]))
	}
	return out
}

func toCategoryDTO(c *models.Category) CategoryDTO {
	return CategoryDTO{ID: c.ID, Nombre: c.Name}
}

func toCategoryDTOs(categories []models.Category) []CategoryDTO {
	out := make([]CategoryDTO, 0, len(categories))
	for i := range categories {
		out = append(out, toCategoryDTO(&categories[i]))
	}
	return out
}

func (d *AssetDTO) categoryIDs() []int {
	ids := make([]int, 0, len(d.Categorias))
	for _, c := range d.Categorias {
		ids = append(ids, c.ID)
	}
	return ids
}

func (d *AssetDTO) createRequest() *services.CreateAssetRequest {
	return &services.CreateAssetRequest{
		Name:        d.Nombre,
		Kind:        d.Tipo,
		Size:        d.Tamanio,
		URL:         d.URL,
		CategoryIDs: d.categoryIDs(),
		ProductIDs:  d.Productos,
	}
}

func (d *AssetDTO) updateRequest() *services.UpdateAssetRequest {
	return &services.UpdateAssetRequest{
		Name:        d.Nombre,
		Kind:        d.Tipo,
		Size:        d.Tamanio,
		URL:         d.URL,
		CategoryIDs: d.categoryIDs(),
		ProductIDs:  d.Productos,
	}
}
