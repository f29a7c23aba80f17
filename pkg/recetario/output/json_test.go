package output

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/ukaji3/recetario-go/pkg/recetario/models"
)

func sampleCookbook() *models.Cookbook {
	return &models.Cookbook{
		BookName: "carta.xlsx",
		Families: []models.Family{
			{
				Name: "Postres",
				Recipes: []models.Recipe{
					{
						ID:          "Postres::3",
						Family:      "Postres",
						Name:        "Flan de coco",
						Ingredients: []models.Ingredient{{Name: "Leche", Unit: "ml", Quantity: "500"}},
						Preparation: "Hornear a baño maría",
						HeaderRow:   3,
					},
				},
			},
		},
	}
}

func TestToJSON(t *testing.T) {
	data, err := ToJSON(sampleCookbook(), false)
	if err != nil {
		t.Fatalf("ToJSON failed: %v", err)
	}
	if bytes.Contains(data, []byte("\n")) {
		t.Errorf("Expected compact output, got %s", data)
	}
	for _, want := range []string{`"book_name":"carta.xlsx"`, `"id":"Postres::3"`, `"quantity":"500"`} {
		if !bytes.Contains(data, []byte(want)) {
			t.Errorf("Expected %s in %s", want, data)
		}
	}
	// Empty optional fields stay out of the document.
	for _, absent := range []string{`"reports"`, `"plating"`, `"cost"`, `"synthetic_title"`} {
		if bytes.Contains(data, []byte(absent)) {
			t.Errorf("Did not expect %s in %s", absent, data)
		}
	}
}

func TestToJSONPretty(t *testing.T) {
	data, err := ToJSON(sampleCookbook(), true)
	if err != nil {
		t.Fatalf("ToJSON failed: %v", err)
	}
	if !bytes.Contains(data, []byte("\n  \"families\"")) {
		t.Errorf("Expected two-space indentation, got %s", data)
	}
}

func TestFamilyToJSON(t *testing.T) {
	cb := sampleCookbook()
	data, err := FamilyToJSON(&cb.Families[0], false)
	if err != nil {
		t.Fatalf("FamilyToJSON failed: %v", err)
	}
	var got models.Family
	if err := json.Unmarshal(data, &got); err != nil {
		t.Fatalf("Unmarshal failed: %v", err)
	}
	if got.Name != "Postres" || len(got.Recipes) != 1 || got.Recipes[0].Preparation != "Hornear a baño maría" {
		t.Errorf("Unexpected family %+v", got)
	}
}

func TestFamiliesToJSONNil(t *testing.T) {
	data, err := FamiliesToJSON(nil, false)
	if err != nil {
		t.Fatalf("FamiliesToJSON failed: %v", err)
	}
	if string(data) != "[]" {
		t.Errorf("Expected [], got %s", data)
	}
}
