package intent

import "testing"

func TestClassify(t *testing.T) {
	tests := []struct {
		name      string
		query     string
		wantLyric bool
		wantWords int
	}{
		{"six plain words", "the rain falls down slowly tonight", true, 6},
		{"exactly five", "we were young and free", true, 5},
		{"four words", "hello from the other", false, 4},
		{"album keyword", "album tracklist with five words here", false, 6},
		{"artist keyword uppercase", "best ARTIST of all the time", false, 6},
		{"song inside word", "songbird sings in the morning light", false, 6},
		{"empty", "", false, 0},
		{"whitespace only", "   \t\n ", false, 0},
		{"punctuation only", "!!! ... ???", false, 0},
		{"punctuation glued", "don't stop me now, I'm", true, 5},
		{"punctuation separated words count", "hey - you - there - friend", false, 4},
		{"collapsed whitespace", "  a   b\tc\n d   e ", true, 5},
		{"symbols do not count as words", "love + war = $ pain & glory", false, 4},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Classify(tt.query)
			if got.IsLyrics != tt.wantLyric {
				t.Errorf("Classify(%q).IsLyrics = %v, want %v", tt.query, got.IsLyrics, tt.wantLyric)
			}
			if got.WordCount != tt.wantWords {
				t.Errorf("Classify(%q).WordCount = %d, want %d", tt.query, got.WordCount, tt.wantWords)
			}
		})
	}
}

func TestClassifyBelowThresholdNeverLyrics(t *testing.T) {
	queries := []string{"a", "a b", "a b c", "a, b. c! d?", "one two three four"}
	for _, q := range queries {
		if Classify(q).IsLyrics {
			t.Errorf("Classify(%q) reported lyrics with fewer than %d words", q, DefaultThreshold)
		}
	}
}

func TestClassifyWith(t *testing.T) {
	tests := []struct {
		query     string
		threshold int
		want      bool
	}{
		{"hello from the other", 4, true},
		{"hello from the other", 5, false},
		{"hello from the other side", 0, true}, // falls back to default
		{"hello from the other", -1, false},
	}
	for _, tt := range tests {
		if got := ClassifyWith(tt.query, tt.threshold).IsLyrics; got != tt.want {
			t.Errorf("ClassifyWith(%q, %d) = %v, want %v", tt.query, tt.threshold, got, tt.want)
		}
	}
}
