package models

// Asset is a stored file-like resource owned by one account.
// Categories is the non-owning side of the asset/category relation.
type Asset struct {
	ID         int           `json:"id" db:"id"`
	Name       string        `json:"name" db:"name"`
	Kind       *string       `json:"kind,omitempty" db:"kind"`
	Size       int           `json:"size" db:"size"`
	URL        *string       `json:"url,omitempty" db:"url"`
	ProductIDs []int         `json:"product_ids"`
	AccountID  int           `json:"account_id" db:"account_id"`
	Categories []CategoryRef `json:"categories"`
}

// CategoryRef is the weak reference an asset keeps to a category
type CategoryRef struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

// CategoryIDs returns the ids of the linked categories
func (a *Asset) CategoryIDs() []int {
	ids := make([]int, 0, len(a.Categories))
	for _, c := range a.Categories {
		ids = append(ids, c.ID)
	}
	return ids
}

// HasProduct reports whether the asset references the given product id
func (a *Asset) HasProduct(productID int) bool {
	for _, id := range a.ProductIDs {
		if id == productID {
			return true
		}
	}
	return false
}
