package fat16

import (
	"testing"
	"time"
)

func TestParseDate(t *testing.T) {
	tests := []struct {
		name  string
		input uint16
		want  time.Time
	}{
		{
			name:  "zero input is invalid",
			input: 0,
			want:  time.Time{},
		},
		{
			name:  "epoch",
			input: 1<<5 | 1,
			want:  time.Date(1980, 1, 1, 0, 0, 0, 0, time.UTC),
		},
		{
			name:  "regular date",
			input: 37<<9 | 3<<5 | 14,
			want:  time.Date(2017, 3, 14, 0, 0, 0, 0, time.UTC),
		},
		{
			name:  "day zero is invalid",
			input: 37<<9 | 3<<5,
			want:  time.Time{},
		},
		{
			name:  "month zero is invalid",
			input: 37<<9 | 14,
			want:  time.Time{},
		},
		{
			name:  "month above twelve rolls into the next year",
			input: 13<<5 | 1,
			want:  time.Date(1981, 1, 1, 0, 0, 0, 0, time.UTC),
		},
		{
			name:  "maximum year",
			input: 127<<9 | 12<<5 | 31,
			want:  time.Date(2107, 12, 31, 0, 0, 0, 0, time.UTC),
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ParseDate(tt.input); !got.Equal(tt.want) {
				t.Errorf("ParseDate(%#04x) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

func TestParseTime(t *testing.T) {
	tests := []struct {
		name  string
		input uint16
		want  time.Time
	}{
		{
			name:  "midnight is the zero time",
			input: 0,
			want:  time.Time{},
		},
		{
			name:  "regular time",
			input: 12<<11 | 30<<5 | 7,
			want:  time.Date(1, 1, 1, 12, 30, 14, 0, time.UTC),
		},
		{
			name:  "last valid stamp",
			input: 23<<11 | 59<<5 | 29,
			want:  time.Date(1, 1, 1, 23, 59, 58, 0, time.UTC),
		},
		{
			name:  "overflowing fields are clamped",
			input: 31<<11 | 63<<5 | 29,
			want:  time.Date(1, 1, 1, 23, 59, 59, 0, time.UTC),
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ParseTime(tt.input); !got.Equal(tt.want) {
				t.Errorf("ParseTime(%#04x) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}
