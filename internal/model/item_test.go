package model

import "testing"

func TestValidCategory(t *testing.T) {
	tests := []struct {
		category string
		expected bool
	}{
		{CategoryElectronics, true},
		{CategoryClothing, true},
		{CategorySupplies, true},
		{CategoryBag, true},
		{CategoryWallet, true},
		{CategoryOther, true},
		// Unknown categories fail-closed.
		{"furniture", false},
		{"Bag", false},
		{"", false},
	}

	for _, tt := range tests {
		got := ValidCategory(tt.category)
		if got != tt.expected {
			t.Errorf("ValidCategory(%q) = %v, want %v", tt.category, got, tt.expected)
		}
	}
}

func TestValidStatus(t *testing.T) {
	tests := []struct {
		status   string
		expected bool
	}{
		{StatusFound, true},
		{StatusSearching, true},
		{"lost", false},
		{"Found", false},
		{"", false},
	}

	for _, tt := range tests {
		got := ValidStatus(tt.status)
		if got != tt.expected {
			t.Errorf("ValidStatus(%q) = %v, want %v", tt.status, got, tt.expected)
		}
	}
}

func TestValidationErrorMessage(t *testing.T) {
	err := &ValidationError{Fields: []string{"image", "item_name"}}
	want := "invalid or missing fields: image, item_name"
	if err.Error() != want {
		t.Errorf("Error() = %q, want %q", err.Error(), want)
	}
}
