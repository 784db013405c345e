package evaluation

import "testing"

func TestCitationF1(t *testing.T) {
	tests := []struct {
		name          string
		predicted     []string
		expected      []string
		wantPrecision float64
		wantRecall    float64
		wantF1        float64
	}{
		{
			name:          "both empty is a perfect match",
			wantPrecision: 1.0,
			wantRecall:    1.0,
			wantF1:        1.0,
		},
		{
			name:     "empty prediction scores zero",
			expected: []string{"Art. 5, CF/88"},
		},
		{
			name:      "empty expectation scores zero",
			predicted: []string{"Art. 5, CF/88"},
		},
		{
			name:          "exact match",
			predicted:     []string{"Art. 5, CF/88", "Lei 8.112/1990"},
			expected:      []string{"Lei 8.112/1990", "Art. 5, CF/88"},
			wantPrecision: 1.0,
			wantRecall:    1.0,
			wantF1:        1.0,
		},
		{
			name:          "partial overlap",
			predicted:     []string{"Art. 5, CF/88", "Lei 8.112/1990"},
			expected:      []string{"Art. 5, CF/88", "Súmula 473 STF", "Lei 9.784/1999", "Art. 37, CF/88"},
			wantPrecision: 0.5,
			wantRecall:    0.25,
			wantF1:        0.3333,
		},
		{
			name:          "duplicates count once",
			predicted:     []string{"Art. 5, CF/88", "Art. 5, CF/88"},
			expected:      []string{"Art. 5, CF/88"},
			wantPrecision: 1.0,
			wantRecall:    1.0,
			wantF1:        1.0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := CitationF1(tt.predicted, tt.expected)
			if got.Precision != tt.wantPrecision {
				t.Errorf("Precision = %v, want %v", got.Precision, tt.wantPrecision)
			}
			if got.Recall != tt.wantRecall {
				t.Errorf("Recall = %v, want %v", got.Recall, tt.wantRecall)
			}
			if got.F1 != tt.wantF1 {
				t.Errorf("F1 = %v, want %v", got.F1, tt.wantF1)
			}
		})
	}
}
