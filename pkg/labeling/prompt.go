package labeling

import (
	"fmt"
	"strings"
)

// BuildSystemPrompt compiles the fixed system prompt for a batch's aspect
// list. The order of aspects embedded here is authoritative for interpreting
// every subsequent response.
func BuildSystemPrompt(aspects []string) string {
	scoreSlots := make([]string, len(aspects))
	confSlots := make([]string, len(aspects))
	for i := range aspects {
		scoreSlots[i] = fmt.Sprintf("S%d", i+1)
		confSlots[i] = fmt.Sprintf("C%d", i+1)
	}

	var b strings.Builder
	b.WriteString("Role: High-Precision Review ABSA Annotator\n")
	fmt.Fprintf(&b, "Task: Extract Score (S) and Confidence (C) for %d aspects.\n\n", len(aspects))
	fmt.Fprintf(&b, "Aspects: %s\n\n", strings.Join(aspects, ", "))
	b.WriteString(`Rules for Confidence (C):
- Score (S) range: -1.0 (Very Negative) to 1.0 (Very Positive). If not mentioned, use null.
- If S is provided: C = Confidence that the score is accurate.
- If S is null: C = Confidence that this aspect is NOT mentioned in the text at all.
- C range: 0.0 to 1.0 (1.0 = Absolutely certain), Important: Not null.

Conflict Handling: If a review has mixed feedback (e.g., "Good food but oily"), provide a balanced Score (S) and lower the Confidence (C) to reflect the ambiguity.

`)
	fmt.Fprintf(&b, "Output Format: Strict JSON [[%s], [%s]]",
		strings.Join(scoreSlots, ","), strings.Join(confSlots, ","))

	return b.String()
}
