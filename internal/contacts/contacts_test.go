package contacts

import (
	"errors"
	"testing"
)

func TestNew(t *testing.T) {
	c, err := New("Asha Rao", "asha@example.com", "", "college friend", 7)
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	if !c.HasCadence() {
		t.Error("expected cadence")
	}
}

func TestNew_EmptyName(t *testing.T) {
	if _, err := New("   ", "", "", "", 0); !errors.Is(err, ErrEmptyName) {
		t.Errorf("error = %v, want ErrEmptyName", err)
	}
}

func TestHasCadence(t *testing.T) {
	tests := []struct {
		freq int
		want bool
	}{
		{7, true},
		{1, true},
		{0, false},
		{-3, false},
	}
	for _, tc := range tests {
		c := Contact{Name: "X", FrequencyDays: tc.freq}
		if got := c.HasCadence(); got != tc.want {
			t.Errorf("HasCadence(freq=%d) = %v, want %v", tc.freq, got, tc.want)
		}
	}
}

func TestMatches(t *testing.T) {
	c := Contact{
		Name:  "Asha Rao",
		Email: "asha@example.com",
		Phone: "+91-98000-12345",
		Notes: "College friend in Pune",
	}

	for _, q := range []string{"asha", "EXAMPLE.COM", "98000", "pune"} {
		if !c.Matches(q) {
			t.Errorf("Matches(%q) = false, want true", q)
		}
	}
	if c.Matches("mumbai") {
		t.Error("Matches(mumbai) = true, want false")
	}
}
