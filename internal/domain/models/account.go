package models

// Account mirrors the account ("cuenta") payload of the remote account service
type Account struct {
	ID        int    `json:"id"`
	Name      string `json:"nombre"`
	Address   string `json:"direccion"`
	NIF       string `json:"nif"`
	CreatedAt string `json:"fechaAlta"` // yyyy-MM-dd
	Plan      *Plan  `json:"plan"`
}

// Plan holds the subscription limits of an account.
// Nil limits mean the account service did not send them.
type Plan struct {
	ID                   int      `json:"id"`
	Name                 string   `json:"nombre"`
	MaxProducts          *int     `json:"maxProductos"`
	MaxAssets            *int     `json:"maxActivos"`
	MaxStorage           *int     `json:"maxAlmacenamiento"`
	MaxProductCategories *int     `json:"maxCategoriasProductos"`
	MaxAssetCategories   *int     `json:"maxCategoriasActivos"`
	MaxRelations         *int     `json:"maxRelaciones"`
	Price                *float64 `json:"precio"`
}

// AccountUser is an entry of the account service's user list
type AccountUser struct {
	ID    int64  `json:"id"`
	Name  string `json:"nombre"`
	Email string `json:"email,omitempty"`
	Role  string `json:"role,omitempty"`
}

// ResourceKind selects which plan limit and store count a quota check uses
type ResourceKind string

const (
	ResourceAsset    ResourceKind = "asset"
	ResourceCategory ResourceKind = "category"
)
