package debugblocker

import (
	"context"
	"errors"
	"testing"

	"github.com/entitymatch/debugblocker/internal/testtable"
	"github.com/entitymatch/debugblocker/pkg/debugblocker/internalerr"
	"github.com/entitymatch/debugblocker/pkg/debugblocker/table"
)

func textualTable(rows [][]string, keyCol string) *testtable.Table {
	return &testtable.Table{
		Cols:   []string{"id", "name"},
		Types:  []table.DType{table.Textual, table.Textual},
		Rows:   rows,
		KeyCol: keyCol,
	}
}

func TestRunIdenticalTablesDiagonalDominates(t *testing.T) {
	rows := [][]string{
		{"1", "apple banana"},
		{"2", "cherry date"},
		{"3", "elderberry fig"},
		{"4", "grape honeydew"},
	}
	l := textualTable(rows, "id")
	r := textualTable(rows, "id")

	res, err := Run(context.Background(), RunConfig{
		LTable: l, RTable: r, CandidateSet: &testtable.CandidateSet{},
		OutputSize: 4, NJobs: 1, NConfigs: -2,
	})
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if len(res.Pairs) != 4 {
		t.Fatalf("got %d pairs, want 4", len(res.Pairs))
	}
	for _, p := range res.Pairs {
		if p.LIdx != p.RIdx {
			t.Errorf("expected diagonal self-pairs to dominate, got %+v", p)
		}
		if p.Sim != 1.0 {
			t.Errorf("expected sim=1.0 for identical records, got %v", p.Sim)
		}
	}
}

func TestRunExclusionRespected(t *testing.T) {
	l := textualTable([][]string{
		{"1", "quick brown fox"},
		{"2", "lazy dog sleeps"},
		{"3", "unrelated text here"},
	}, "id")
	r := textualTable([][]string{
		{"1", "quick brown fox"},
		{"2", "lazy dog sleeps"},
		{"3", "totally different words"},
	}, "id")

	cs := &testtable.CandidateSet{KeyPairs: []table.KeyPair{{LKey: "1", RKey: "1"}}}

	res, err := Run(context.Background(), RunConfig{
		LTable: l, RTable: r, CandidateSet: cs,
		OutputSize: 3, NJobs: 1, NConfigs: -2,
	})
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	for _, p := range res.Pairs {
		if p.LIdx == 0 && p.RIdx == 0 {
			t.Fatalf("excluded pair (0,0) present in output: %+v", res.Pairs)
		}
	}
	foundNextBest := false
	for _, p := range res.Pairs {
		if p.LIdx == 1 && p.RIdx == 1 {
			foundNextBest = true
		}
	}
	if !foundNextBest {
		t.Errorf("expected next-best pair (1,1) in output, got %+v", res.Pairs)
	}
}

func TestRunNumericOnlyNonKeyFails(t *testing.T) {
	l := &testtable.Table{
		Cols:   []string{"id", "age"},
		Types:  []table.DType{table.Textual, table.Numeric},
		Rows:   [][]string{{"1", "30"}, {"2", "40"}},
		KeyCol: "id",
	}
	r := &testtable.Table{
		Cols:   []string{"id", "age"},
		Types:  []table.DType{table.Textual, table.Numeric},
		Rows:   [][]string{{"1", "31"}, {"2", "41"}},
		KeyCol: "id",
	}
	_, err := Run(context.Background(), RunConfig{
		LTable: l, RTable: r, CandidateSet: &testtable.CandidateSet{},
		OutputSize: 2, NJobs: 1, NConfigs: -2,
	})
	if !errors.Is(err, internalerr.ErrNoUsableFeatures) {
		t.Fatalf("got %v, want ErrNoUsableFeatures", err)
	}
}

func TestRunDeterministicAcrossWorkerCounts(t *testing.T) {
	rows := [][]string{
		{"1", "alpha beta gamma"},
		{"2", "delta epsilon zeta"},
		{"3", "eta theta iota"},
		{"4", "kappa lambda mu"},
	}
	l := textualTable(rows, "id")
	r := textualTable(rows, "id")

	cfg1 := RunConfig{LTable: l, RTable: r, CandidateSet: &testtable.CandidateSet{}, OutputSize: 4, NJobs: 1, NConfigs: -2}
	cfg4 := RunConfig{LTable: l, RTable: r, CandidateSet: &testtable.CandidateSet{}, OutputSize: 4, NJobs: 4, NConfigs: -2}

	res1, err := Run(context.Background(), cfg1)
	if err != nil {
		t.Fatalf("Run(n_jobs=1): %v", err)
	}
	res4, err := Run(context.Background(), cfg4)
	if err != nil {
		t.Fatalf("Run(n_jobs=4): %v", err)
	}

	if len(res1.Pairs) != len(res4.Pairs) {
		t.Fatalf("output length differs: %d vs %d", len(res1.Pairs), len(res4.Pairs))
	}
	for i := range res1.Pairs {
		if res1.Pairs[i] != res4.Pairs[i] {
			t.Errorf("output diverges at index %d: %+v vs %+v", i, res1.Pairs[i], res4.Pairs[i])
		}
	}
}

func TestRunTieBreakPrefersSmallerIndices(t *testing.T) {
	// Every L record is equally similar to every R record (sim=1.0 for all
	// four pairs), so the tie-break must order by ascending l_idx then
	// ascending r_idx.
	l := textualTable([][]string{
		{"1", "same words"},
		{"2", "same words"},
	}, "id")
	r := textualTable([][]string{
		{"1", "same words"},
		{"2", "same words"},
	}, "id")

	res, err := Run(context.Background(), RunConfig{
		LTable: l, RTable: r, CandidateSet: &testtable.CandidateSet{},
		OutputSize: 4, NJobs: 1, NConfigs: -2,
	})
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if len(res.Pairs) != 4 {
		t.Fatalf("got %d pairs, want 4", len(res.Pairs))
	}
	want := [][2]uint32{{0, 0}, {0, 1}, {1, 0}, {1, 1}}
	for i, p := range res.Pairs {
		if p.Sim != 1.0 {
			t.Fatalf("pair %d: sim = %v, want 1.0", i, p.Sim)
		}
		if p.LIdx != want[i][0] || p.RIdx != want[i][1] {
			t.Errorf("pair %d = (%d,%d), want (%d,%d)", i, p.LIdx, p.RIdx, want[i][0], want[i][1])
		}
	}
}

func TestRunKExceedsDomain(t *testing.T) {
	l := textualTable([][]string{{"1", "a b"}, {"2", "c d"}}, "id")
	r := textualTable([][]string{{"1", "a b"}, {"2", "c d"}}, "id")

	cs := &testtable.CandidateSet{KeyPairs: []table.KeyPair{
		{LKey: "1", RKey: "1"},
		{LKey: "1", RKey: "2"},
		{LKey: "2", RKey: "1"},
	}}

	res, err := Run(context.Background(), RunConfig{
		LTable: l, RTable: r, CandidateSet: cs,
		OutputSize: 10, NJobs: 1, NConfigs: -2,
	})
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if len(res.Pairs) != 1 {
		t.Fatalf("got %d pairs, want exactly 1", len(res.Pairs))
	}
	if res.Pairs[0].LIdx != 1 || res.Pairs[0].RIdx != 1 {
		t.Errorf("expected the only remaining pair (1,1), got %+v", res.Pairs[0])
	}
}

func TestRunRejectsEmptyTables(t *testing.T) {
	l := textualTable(nil, "id")
	r := textualTable([][]string{{"1", "x"}}, "id")
	_, err := Run(context.Background(), RunConfig{LTable: l, RTable: r, CandidateSet: &testtable.CandidateSet{}, OutputSize: 1, NJobs: 1, NConfigs: -2})
	if !errors.Is(err, internalerr.ErrInvalidInput) {
		t.Fatalf("got %v, want ErrInvalidInput", err)
	}
}

func TestRunRejectsDuplicateKeys(t *testing.T) {
	l := textualTable([][]string{{"1", "a"}, {"1", "b"}}, "id")
	r := textualTable([][]string{{"1", "a"}}, "id")
	_, err := Run(context.Background(), RunConfig{LTable: l, RTable: r, CandidateSet: &testtable.CandidateSet{}, OutputSize: 1, NJobs: 1, NConfigs: -2})
	if !errors.Is(err, internalerr.ErrDuplicateKey) {
		t.Fatalf("got %v, want ErrDuplicateKey", err)
	}
}
