package vocab

import (
	"testing"

	"github.com/entitymatch/debugblocker/internal/tokenize"
)

func TestBuildOrdersByFrequencyThenLex(t *testing.T) {
	l := [][]tokenize.Occurrence{
		{{Token: "zebra", Field: 0}, {Token: "apple", Field: 0}},
		{{Token: "apple", Field: 0}},
	}
	r := [][]tokenize.Occurrence{
		{{Token: "apple", Field: 0}},
	}
	order := Build(l, r)

	// apple occurs 3 times, zebra occurs once -> zebra ranks before apple.
	zebraRank, ok := order.Rank("zebra")
	if !ok {
		t.Fatal("zebra not in vocabulary")
	}
	appleRank, ok := order.Rank("apple")
	if !ok {
		t.Fatal("apple not in vocabulary")
	}
	if zebraRank >= appleRank {
		t.Errorf("zebra rank %d should be < apple rank %d (lower frequency sorts first)", zebraRank, appleRank)
	}
	if order.Size() != 2 {
		t.Errorf("Size() = %d, want 2", order.Size())
	}
}

func TestBuildLexTiebreak(t *testing.T) {
	l := [][]tokenize.Occurrence{
		{{Token: "banana", Field: 0}, {Token: "apple", Field: 0}},
	}
	order := Build(l)
	// Both occur once: lexicographic order applies.
	appleRank, _ := order.Rank("apple")
	bananaRank, _ := order.Rank("banana")
	if appleRank >= bananaRank {
		t.Errorf("apple rank %d should be < banana rank %d", appleRank, bananaRank)
	}
}

func TestRankUnseenToken(t *testing.T) {
	order := Build([][]tokenize.Occurrence{{{Token: "a", Field: 0}}})
	if _, ok := order.Rank("nope"); ok {
		t.Error("Rank of unseen token should report ok=false")
	}
}
