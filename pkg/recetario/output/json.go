// Package output serializes extraction results.
package output

import (
	"encoding/json"

	"github.com/ukaji3/recetario-go/pkg/recetario/models"
)

// ToJSON serializes a cookbook.
func ToJSON(cb *models.Cookbook, pretty bool) ([]byte, error) {
	return marshal(cb, pretty)
}

// FamilyToJSON serializes a single family.
func FamilyToJSON(f *models.Family, pretty bool) ([]byte, error) {
	return marshal(f, pretty)
}

// FamiliesToJSON serializes a bare family list, the shape kept by stores.
func FamiliesToJSON(families []models.Family, pretty bool) ([]byte, error) {
	if families == nil {
		families = []models.Family{}
	}
	return marshal(families, pretty)
}

func marshal(v any, pretty bool) ([]byte, error) {
	if pretty {
		return json.MarshalIndent(v, "", "  ")
	}
	return json.Marshal(v)
}
