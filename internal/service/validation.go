package service

import (
	"fmt"
	"strings"

	"assetmanagement/internal/config"
	"assetmanagement/internal/domain"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

// validateAssetFields validates the fields shared by create and update asset requests
func validateAssetFields(name string, kind *string, size *int, url *string) error {
	err := validation.Errors{
		"name": validation.Validate(name,
			validation.Required,
			validation.Length(1, config.MaxAssetNameLength),
			validation.By(validateName),
		),
		"kind": validation.Validate(kind, validation.Length(0, config.MaxAssetKindLength)),
		"size": validation.Validate(size, validation.NotNil, validation.Min(0)),
		"url":  validation.Validate(url, validation.Length(0, config.MaxAssetURLLength)),
	}.Filter()
	if err != nil {
		return fmt.Errorf("%w: %v", domain.ErrValidation, err)
	}
	return nil
}

// validateCategoryName validates a category name
func validateCategoryName(name string) error {
	err := validation.Validate(name,
		validation.Required,
		validation.Length(1, config.MaxCategoryNameLength),
		validation.By(validateName),
	)
	if err != nil {
		return fmt.Errorf("%w: name: %v", domain.ErrValidation, err)
	}
	return nil
}

// validateName rejects names that are blank once trimmed
func validateName(value interface{}) error {
	name, ok := value.(string)
	if !ok {
		return fmt.Errorf("name must be a string")
	}
	if strings.TrimSpace(name) == "" {
		return fmt.Errorf("name cannot be empty")
	}
	return nil
}

// distinct returns ids without duplicates, keeping first-seen order
func distinct(ids []int) []int {
	seen := make(map[int]struct{}, len(ids))
	out := make([]int, 0, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}
