package enhance

import (
	"fmt"
	"strings"

	"github.com/ukaji3/recetario-go/pkg/recetario/models"
)

const notSpecified = "No especificado"

// BuildPrompt renders the chef prompt for one recipe. The model must answer
// with a JSON object holding the four enhancement fields.
func BuildPrompt(r models.Recipe) string {
	ingredients := make([]string, 0, len(r.Ingredients))
	for _, ing := range r.Ingredients {
		line := strings.TrimSpace(fmt.Sprintf("%s %s de %s", ing.Quantity, ing.Unit, ing.Name))
		ingredients = append(ingredients, strings.Join(strings.Fields(line), " "))
	}

	plating := r.Plating
	if plating == "" {
		plating = notSpecified
	}
	preparation := r.Preparation
	if preparation == "" {
		preparation = notSpecified
	}

	var b strings.Builder
	b.WriteString("Actúa como el Chef Ejecutivo de la cocina.\n")
	b.WriteString("Analiza la siguiente ficha técnica:\n\n")
	fmt.Fprintf(&b, "Plato: %s\n", r.Name)
	fmt.Fprintf(&b, "Familia: %s\n", r.Family)
	if r.Description != "" {
		fmt.Fprintf(&b, "Descripción: %s\n", r.Description)
	}
	fmt.Fprintf(&b, "Insumos: %s\n", strings.Join(ingredients, ", "))
	fmt.Fprintf(&b, "Proceso Técnico: %s\n", preparation)
	fmt.Fprintf(&b, "Instrucciones de Servicio/Emplatado: %s\n\n", plating)
	b.WriteString(`Responde solo con un objeto JSON con este esquema exacto:
{
  "gourmet_variation": "Propuesta de elevación creativa del plato",
  "pairing": "Bebida ideal para acompañarlo",
  "technique_tip": "Secreto técnico de alta cocina para este plato",
  "nutrition_note": "Breve nota sobre la calidad nutricional"
}`)
	return b.String()
}
