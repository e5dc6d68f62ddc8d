package metrics

import "github.com/fernwood/tally/internal/model"

// uncategorized is the bucket for transactions with no primary category.
const uncategorized = "Uncategorized"

// CategoryBreakdown groups transactions by primary category, preserving
// the order in which each category first appears so the display order is
// stable across refreshes of the same data.
func CategoryBreakdown(transactions []model.Transaction) []model.CategoryAmount {
	index := make(map[string]int, len(transactions))
	out := make([]model.CategoryAmount, 0)

	for _, tx := range transactions {
		category := tx.Category.Primary
		if category == "" {
			category = uncategorized
		}

		i, ok := index[category]
		if !ok {
			i = len(out)
			index[category] = i
			out = append(out, model.CategoryAmount{Category: category})
		}

		out[i].Amount += tx.Amount
		out[i].Count++
	}

	return out
}
