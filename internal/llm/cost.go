package llm

import "strings"

// modelPricing is USD per million tokens.
type modelPricing struct {
	input  float64
	output float64
}

// priceTable keys are model id prefixes, so dated releases of the same
// model match. Local models (ollama, mock) are absent and cost zero.
var priceTable = map[string]modelPricing{
	"claude-sonnet-4-5": {input: 3.00, output: 15.00},
	"claude-haiku-4-5":  {input: 1.00, output: 5.00},
	"claude-opus-4-5":   {input: 5.00, output: 25.00},

	"gpt-4o":      {input: 2.50, output: 10.00},
	"gpt-4o-mini": {input: 0.15, output: 0.60},

	"gemini-3-flash-preview": {input: 0.15, output: 0.60},
	"gemini-2.0-flash":       {input: 0.10, output: 0.40},
	"gemini-1.5-pro":         {input: 1.25, output: 5.00},
}

// EstimateCost returns the approximate USD cost of a completion, or 0
// when the model is not in the price table.
func EstimateCost(model string, inputTokens, outputTokens int) float64 {
	pricing, ok := lookupPricing(model)
	if !ok {
		return 0
	}
	return float64(inputTokens)/1e6*pricing.input + float64(outputTokens)/1e6*pricing.output
}

func lookupPricing(model string) (modelPricing, bool) {
	if p, ok := priceTable[model]; ok {
		return p, true
	}
	// Longest matching prefix wins: "gpt-4o-mini-2024-07-18" must hit
	// gpt-4o-mini, not gpt-4o.
	var best string
	for prefix := range priceTable {
		if strings.HasPrefix(model, prefix) && len(prefix) > len(best) {
			best = prefix
		}
	}
	if best == "" {
		return modelPricing{}, false
	}
	return priceTable[best], true
}

// EstimateTokens roughly counts tokens as one per four characters. Good
// enough for cost previews, not for context budgeting.
func EstimateTokens(text string) int {
	n := len(text) / 4
	if n == 0 && len(text) > 0 {
		return 1
	}
	return n
}
