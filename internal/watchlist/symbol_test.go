package watchlist

import (
	"errors"
	"testing"
)

func TestNormalizeSymbol(t *testing.T) {
	tests := []struct {
		name    string
		in      string
		want    string
		wantErr bool
	}{
		{name: "lowercase", in: "aapl", want: "AAPL"},
		{name: "already canonical", in: "TSLA", want: "TSLA"},
		{name: "class share dot", in: "brk.b", want: "BRK.B"},
		{name: "class share dash", in: "rds-a", want: "RDS-A"},
		{name: "surrounding whitespace", in: "  msft ", want: "MSFT"},
		{name: "max length", in: "ABCDEFGHIJ", want: "ABCDEFGHIJ"},
		{name: "empty", in: "", wantErr: true},
		{name: "too long", in: "ABCDEFGHIJK", wantErr: true},
		{name: "inner space", in: "AA PL", wantErr: true},
		{name: "punctuation", in: "AAPL$", wantErr: true},
		{name: "leading dot", in: ".AAPL", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := NormalizeSymbol(tt.in)
			if tt.wantErr {
				if !errors.Is(err, ErrInvalidSymbol) {
					t.Errorf("expected ErrInvalidSymbol, got %v", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tt.want {
				t.Errorf("expected %q, got %q", tt.want, got)
			}
		})
	}
}
