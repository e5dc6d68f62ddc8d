package metrics

import (
	"testing"

	"github.com/fernwood/tally/internal/model"
	"github.com/stretchr/testify/assert"
)

func tx(primary string, amount float64) model.Transaction {
	return model.Transaction{
		Category: model.Category{Primary: primary},
		Amount:   amount,
	}
}

func TestCategoryBreakdown(t *testing.T) {
	tests := []struct {
		name         string
		transactions []model.Transaction
		want         []model.CategoryAmount
	}{
		{
			name:         "nil input",
			transactions: nil,
			want:         []model.CategoryAmount{},
		},
		{
			name: "groups and sums by first occurrence order",
			transactions: []model.Transaction{
				tx("Software", 29.99),
				tx("Travel", 120),
				tx("Software", 10.01),
				tx("Meals", 45.50),
				tx("Travel", 80),
			},
			want: []model.CategoryAmount{
				{Category: "Software", Amount: 40, Count: 2},
				{Category: "Travel", Amount: 200, Count: 2},
				{Category: "Meals", Amount: 45.50, Count: 1},
			},
		},
		{
			name: "missing primary lands in uncategorized",
			transactions: []model.Transaction{
				tx("", 5),
				tx("Software", 10),
				tx("", 15),
			},
			want: []model.CategoryAmount{
				{Category: "Uncategorized", Amount: 20, Count: 2},
				{Category: "Software", Amount: 10, Count: 1},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, CategoryBreakdown(tt.transactions))
		})
	}
}
