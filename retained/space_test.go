package retained

import (
	"errors"
	"testing"
)

func TestNewSpace(t *testing.T) {
	tests := []struct {
		name    string
		values  []int
		want    Space
		wantErr bool
	}{
		{"one value", []int{4}, Space{4, 4, 4, 4}, false},
		{"two values", []int{1, 2}, Space{1, 2, 1, 2}, false},
		{"three values", []int{1, 2, 3}, Space{1, 2, 3, 2}, false},
		{"four values", []int{1, 2, 3, 4}, Space{1, 2, 3, 4}, false},
		{"zero values", nil, Space{}, true},
		{"five values", []int{1, 2, 3, 4, 5}, Space{}, true},
		{"negative", []int{1, -2}, Space{}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := NewSpace(tt.values...)
			if tt.wantErr {
				if !errors.Is(err, ErrInvalidSpace) {
					t.Fatalf("err = %v, want ErrInvalidSpace", err)
				}
				return
			}
			if err != nil {
				t.Fatal(err)
			}
			if got != tt.want {
				t.Errorf("NewSpace(%v) = %+v, want %+v", tt.values, got, tt.want)
			}
		})
	}
}

func TestSpaceString(t *testing.T) {
	s, err := NewSpace(1, 2, 3)
	if err != nil {
		t.Fatal(err)
	}
	if got := s.String(); got != "space(1, 2, 3, 2)" {
		t.Errorf("String() = %q", got)
	}
	if s.Horizontal() != 4 || s.Vertical() != 4 {
		t.Errorf("Horizontal=%d Vertical=%d, want 4 4", s.Horizontal(), s.Vertical())
	}
}
