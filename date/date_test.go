package date

import (
	"encoding/json"
	"testing"
)

// TestTime assert that the time() is cannonical and gives comparable times.
func TestTime(t *testing.T) {
	d1 := New(2025, 7, 31)
	d2 := New(2025, 7, 31)

	if d1.time() != d2.time() {
		t.Errorf("invalid time() function same day gives two different time")
	}
}

func TestParse(t *testing.T) {
	tests := []struct {
		in   string
		want Date
	}{
		{"2024-01-05", New(2024, 1, 5)},
		{"2024-1-5", New(2024, 1, 5)},
		{"01/05/2024", New(2024, 1, 5)},
		{"1/5/2024", New(2024, 1, 5)},
		{" 2024/01/05 ", New(2024, 1, 5)},
		{"Jan 5, 2024", New(2024, 1, 5)},
		{"2024-01-05T10:00:00Z", New(2024, 1, 5)},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := Parse(tt.in)
			if err != nil {
				t.Fatalf("Parse(%q) unexpected error: %v", tt.in, err)
			}
			if got != tt.want {
				t.Errorf("Parse(%q) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}

	for _, bad := range []string{"", "yesterday", "2024-13-01", "32/01/2024"} {
		if _, err := Parse(bad); err == nil {
			t.Errorf("Parse(%q) expected an error", bad)
		}
	}
}

func TestMonthKey(t *testing.T) {
	if got := New(2024, 3, 31).MonthKey(); got != "2024-03" {
		t.Errorf("MonthKey() = %q, want %q", got, "2024-03")
	}
	m, err := ParseMonth("2024-03")
	if err != nil {
		t.Fatalf("ParseMonth() unexpected error: %v", err)
	}
	if m != New(2024, 3, 1) {
		t.Errorf("ParseMonth() = %v", m)
	}
	if _, err := ParseMonth("2024-3-1"); err == nil {
		t.Error("ParseMonth() expected an error for a full date")
	}
}

func TestRange(t *testing.T) {
	r := YearToDate(New(2024, 6, 15))
	if r.From != New(2024, 1, 1) {
		t.Errorf("YearToDate().From = %v", r.From)
	}
	if !r.Contains(New(2024, 1, 1)) || !r.Contains(New(2024, 6, 15)) {
		t.Error("range boundaries must be included")
	}
	if r.Contains(New(2023, 12, 31)) || r.Contains(New(2024, 6, 16)) {
		t.Error("range must exclude dates outside the boundaries")
	}
	if got := r.Name(); got != "2024 YTD" {
		t.Errorf("Name() = %q", got)
	}
}

func TestJSON(t *testing.T) {
	d := New(2024, 2, 29)
	b, err := json.Marshal(d)
	if err != nil {
		t.Fatal(err)
	}
	if string(b) != `"2024-02-29"` {
		t.Errorf("Marshal() = %s", b)
	}
	var back Date
	if err := json.Unmarshal(b, &back); err != nil {
		t.Fatal(err)
	}
	if back != d {
		t.Errorf("Unmarshal() = %v, want %v", back, d)
	}
}

func TestParsePeriod(t *testing.T) {
	p, err := ParsePeriod("Inception")
	if err != nil || p != Inception {
		t.Errorf("ParsePeriod() = %v, %v", p, err)
	}
	on := New(2024, 5, 1)
	if got := Yearly.Range(New(2020, 1, 1), on); got.From != New(2024, 1, 1) {
		t.Errorf("Yearly.Range() = %v", got)
	}
	if got := Inception.Range(New(2020, 1, 1), on); got.From != New(2020, 1, 1) {
		t.Errorf("Inception.Range() = %v", got)
	}
}
