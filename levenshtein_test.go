package watchpager

import "testing"

func Test_levenshtein(t *testing.T) {
	tests := []struct {
		a    string
		b    string
		want int
	}{
		{"updated_at.desc", "updated_at.desc", 0},
		{"", "id.asc", 6},
		{"id.asc", "", 6},
		{"updated_at.dsc", "updated_at.desc", 1},
		{"tmbd_id.asc", "tmdb_id.asc", 2},
		{"created_at.up", "created_at.asc", 3},
		{"kitten", "sitting", 3},
		{"сезон", "сезоны", 1},
	}
	for _, tt := range tests {
		t.Run(tt.a+"/"+tt.b, func(t *testing.T) {
			if got := levenshtein([]rune(tt.a), []rune(tt.b)); got != tt.want {
				t.Errorf("levenshtein(%q, %q): got %d want %d", tt.a, tt.b, got, tt.want)
			}
			if got := levenshtein([]rune(tt.b), []rune(tt.a)); got != tt.want {
				t.Errorf("levenshtein(%q, %q) is not symmetric: got %d", tt.b, tt.a, got)
			}
		})
	}
}
