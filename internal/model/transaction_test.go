package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCategoryConfidenceBands(t *testing.T) {
	tests := []struct {
		name       string
		confidence float64
		wantLow    bool
		wantHigh   bool
	}{
		{name: "zero confidence is low", confidence: 0, wantLow: true},
		{name: "just under low threshold", confidence: 0.49, wantLow: true},
		{name: "exactly at low threshold is not low", confidence: 0.5},
		{name: "middle band is neither", confidence: 0.7},
		{name: "exactly at high threshold is not high", confidence: 0.8},
		{name: "just over high threshold", confidence: 0.81, wantHigh: true},
		{name: "full confidence", confidence: 1.0, wantHigh: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := Category{Primary: "Software", Confidence: tt.confidence}
			assert.Equal(t, tt.wantLow, c.IsLowConfidence())
			assert.Equal(t, tt.wantHigh, c.IsHighConfidence())
		})
	}
}
