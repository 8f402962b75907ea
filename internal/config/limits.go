package config

const (
	// MaxAssetNameLength fits the VARCHAR(255) name column
	MaxAssetNameLength = 255

	// MaxCategoryNameLength fits the VARCHAR(255) name column
	MaxCategoryNameLength = 255

	// MaxAssetKindLength is the maximum length of an asset kind (e.g. a MIME type)
	MaxAssetKindLength = 100

	// MaxAssetURLLength is the maximum length of an asset URL
	MaxAssetURLLength = 2048
)
