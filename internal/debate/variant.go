package debate

import "fmt"

// Variant selects the prompt/response protocol for a debate run
type Variant string

const (
	// VariantVanilla uses free-form arguments throughout
	VariantVanilla Variant = "vanilla"
	// VariantIRAC uses Issue-Rule-Application-Conclusion structure throughout
	VariantIRAC Variant = "irac"
	// VariantHybrid uses IRAC openings with vanilla rebuttals; the judge must
	// pick between the two defended positions
	VariantHybrid Variant = "hybrid"
)

// ParseVariant converts a string into a Variant
func ParseVariant(s string) (Variant, error) {
	switch Variant(s) {
	case VariantVanilla, VariantIRAC, VariantHybrid:
		return Variant(s), nil
	}
	return "", fmt.Errorf("unknown debate variant %q", s)
}

// openingVariant returns the schema variant governing openings for a run.
// Hybrid runs open with IRAC structure.
func (v Variant) openingVariant() Variant {
	if v == VariantHybrid {
		return VariantIRAC
	}
	return v
}

// rebuttalVariant returns the schema variant governing rebuttals for a run.
// Hybrid runs rebut in free form.
func (v Variant) rebuttalVariant() Variant {
	if v == VariantHybrid {
		return VariantVanilla
	}
	return v
}
