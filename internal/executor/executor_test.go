package executor

import (
	"context"
	"testing"

	"github.com/entitymatch/debugblocker/internal/candset"
	"github.com/entitymatch/debugblocker/internal/planner"
	"github.com/entitymatch/debugblocker/internal/recordstore"
)

func TestRunMergesAndDedups(t *testing.T) {
	l := recordstore.Records{
		Tokens: [][]uint32{{1, 2}},
		Fields: [][]uint32{{0, 1}},
	}
	r := recordstore.Records{
		Tokens: [][]uint32{{1, 2}},
		Fields: [][]uint32{{0, 1}},
	}
	configs := []planner.Config{
		{Mask: []bool{true, false}, Budget: []int{10, 0}},
		{Mask: []bool{false, true}, Budget: []int{0, 10}},
	}

	entries, err := Run(context.Background(), configs, l, r, candset.Index{}, 5, 2)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if len(entries) != 1 {
		t.Fatalf("got %d entries, want 1 (deduplicated on (l_idx, r_idx))", len(entries))
	}
}

func TestRunOrdering(t *testing.T) {
	l := recordstore.Records{
		Tokens: [][]uint32{{1}, {2}},
		Fields: [][]uint32{{0}, {0}},
	}
	r := recordstore.Records{
		Tokens: [][]uint32{{1}, {2}},
		Fields: [][]uint32{{0}, {0}},
	}
	configs := []planner.Config{{Mask: []bool{true}, Budget: []int{10}}}

	entries, err := Run(context.Background(), configs, l, r, candset.Index{}, 5, 1)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	for i := 1; i < len(entries); i++ {
		if entries[i].Sim > entries[i-1].Sim {
			t.Fatalf("entries not descending by sim: %+v", entries)
		}
	}
}
