package models

// Category groups assets within one account. It owns the asset/category relation.
type Category struct {
	ID        int    `json:"id" db:"id"`
	Name      string `json:"name" db:"name"`
	AccountID int    `json:"account_id" db:"account_id"`
	AssetIDs  []int  `json:"asset_ids"`
}

// HasAsset reports whether the asset is linked to this category
func (c *Category) HasAsset(assetID int) bool {
	for _, id := range c.AssetIDs {
		if id == assetID {
			return true
		}
	}
	return false
}

// Ref returns the weak reference stored on the asset side
func (c *Category) Ref() CategoryRef {
	return CategoryRef{ID: c.ID, Name: c.Name}
}
