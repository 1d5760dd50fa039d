package search

import (
	"math"
	"testing"
)

func TestTrigrams(t *testing.T) {
	got := Trigrams("Cat")
	want := []string{"  c", " ca", "cat", "at "}
	if len(got) != len(want) {
		t.Fatalf("Trigrams(Cat) = %v", got)
	}
	for _, g := range want {
		if _, ok := got[g]; !ok {
			t.Errorf("missing trigram %q", g)
		}
	}
}

func TestSimilarity(t *testing.T) {
	tests := []struct {
		a, b string
		want float64
	}{
		{a: "cat", b: "cat", want: 1},
		{a: "cat", b: "CAT", want: 1},
		{a: "cat", b: "cats", want: 0.5},
		{a: "cat", b: "dog", want: 0},
		{a: "", b: "cat", want: 0},
		{a: "---", b: "---", want: 0},
		{a: "Иванов Иван", b: "иван иванов", want: 1},
	}

	for _, tt := range tests {
		t.Run(tt.a+"/"+tt.b, func(t *testing.T) {
			got := Similarity(tt.a, tt.b)
			if math.Abs(got-tt.want) > 1e-9 {
				t.Errorf("Similarity(%q, %q) = %v, want %v", tt.a, tt.b, got, tt.want)
			}
			if rev := Similarity(tt.b, tt.a); math.Abs(rev-got) > 1e-9 {
				t.Errorf("Similarity is not symmetric: %v vs %v", got, rev)
			}
		})
	}
}

func TestMatchDocument(t *testing.T) {
	doc := []string{"Иванов Иван Иванович", "+79616448504", "101"}

	tests := []struct {
		q    string
		want bool
	}{
		{q: "иванов", want: true},
		{q: "ИВАН 101", want: true},
		{q: "иванов петров", want: false},
		{q: "79616448504", want: true},
		{q: "...", want: false},
	}

	for _, tt := range tests {
		t.Run(tt.q, func(t *testing.T) {
			if got := matchDocument(doc, tt.q); got != tt.want {
				t.Errorf("matchDocument(%q) = %v, want %v", tt.q, got, tt.want)
			}
		})
	}
}
