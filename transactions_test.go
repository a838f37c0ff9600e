package networth

import (
	"errors"
	"testing"
)

func TestResolveTransaction(t *testing.T) {
	txs := []Transaction{
		tx("3f2a9c", "2024-01-01", "A", "Food", "-1"),
		tx("3f2b10", "2024-01-02", "B", "Food", "-2"),
		tx("9b1c", "2024-01-03", "C", "Food", "-3"),
	}
	tests := []struct {
		ref     string
		want    int
		wantErr bool
	}{
		{ref: "9b1c", want: 2},
		{ref: "3f2a", want: 0},
		{ref: " 3f2b ", want: 1},
		{ref: "3f2", wantErr: true},
		{ref: "ffff", wantErr: true},
		{ref: "", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.ref, func(t *testing.T) {
			got, err := ResolveTransaction(txs, tt.ref)
			if tt.wantErr {
				var verr *ValidationError
				if !errors.As(err, &verr) {
					t.Fatalf("ResolveTransaction(%q) error = %v, want a ValidationError", tt.ref, err)
				}
				return
			}
			if err != nil || got != tt.want {
				t.Errorf("ResolveTransaction(%q) = %d, %v, want %d", tt.ref, got, err, tt.want)
			}
		})
	}
}
