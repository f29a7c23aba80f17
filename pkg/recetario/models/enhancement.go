package models

// Enhancement holds narrative suggestions for one recipe.
type Enhancement struct {
	GourmetVariation string `json:"gourmet_variation"`
	Pairing          string `json:"pairing"`
	TechniqueTip     string `json:"technique_tip"`
	NutritionNote    string `json:"nutrition_note"`
	// Fallback is set when the suggestions are the fixed default set.
	Fallback bool `json:"fallback,omitempty"`
}

// Complete reports whether all four suggestions are present.
func (e Enhancement) Complete() bool {
	return e.GourmetVariation != "" && e.Pairing != "" && e.TechniqueTip != "" && e.NutritionNote != ""
}
