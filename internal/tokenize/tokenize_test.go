package tokenize

import (
	"testing"

	"github.com/entitymatch/debugblocker/internal/corres"
	"github.com/entitymatch/debugblocker/internal/testtable"
	"github.com/entitymatch/debugblocker/pkg/debugblocker/table"
)

func TestTableSplitsAndLowercases(t *testing.T) {
	l := &testtable.Table{
		Cols:   []string{"id", "name"},
		Types:  []table.DType{table.Textual, table.Textual},
		Rows:   [][]string{{"1", "John Smith"}},
		KeyCol: "id",
	}
	r := &testtable.Table{
		Cols:   []string{"id", "name"},
		Types:  []table.DType{table.Textual, table.Textual},
		Rows:   [][]string{{"1", "john smith"}},
		KeyCol: "id",
	}
	pairs, err := corres.Resolve(l, r, nil)
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	aligned, err := corres.Build(l, r, pairs)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}

	// name is field 0 of the selected list (key excluded, single column).
	occ := Table(aligned, []int{0}, Left)
	if len(occ) != 1 {
		t.Fatalf("got %d records, want 1", len(occ))
	}
	want := []Occurrence{{Token: "john", Field: 0}, {Token: "smith", Field: 0}}
	if !equalOcc(occ[0], want) {
		t.Errorf("got %v, want %v", occ[0], want)
	}
}

func TestTableSuffixesRepeatedTokens(t *testing.T) {
	l := &testtable.Table{
		Cols:   []string{"id", "name"},
		Types:  []table.DType{table.Textual, table.Textual},
		Rows:   [][]string{{"1", "paris paris paris"}},
		KeyCol: "id",
	}
	r := &testtable.Table{
		Cols:   []string{"id", "name"},
		Types:  []table.DType{table.Textual, table.Textual},
		Rows:   [][]string{{"1", "x"}},
		KeyCol: "id",
	}
	pairs, _ := corres.Resolve(l, r, nil)
	aligned, _ := corres.Build(l, r, pairs)
	occ := Table(aligned, []int{0}, Left)

	want := []Occurrence{
		{Token: "paris", Field: 0},
		{Token: "paris_1", Field: 0},
		{Token: "paris_2", Field: 0},
	}
	if !equalOcc(occ[0], want) {
		t.Errorf("got %v, want %v", occ[0], want)
	}
}

func TestTableDropsEmptyCells(t *testing.T) {
	l := &testtable.Table{
		Cols:   []string{"id", "name"},
		Types:  []table.DType{table.Textual, table.Textual},
		Rows:   [][]string{{"1", ""}},
		KeyCol: "id",
	}
	r := &testtable.Table{
		Cols:   []string{"id", "name"},
		Types:  []table.DType{table.Textual, table.Textual},
		Rows:   [][]string{{"1", "x"}},
		KeyCol: "id",
	}
	pairs, _ := corres.Resolve(l, r, nil)
	aligned, _ := corres.Build(l, r, pairs)
	occ := Table(aligned, []int{0}, Left)
	if len(occ[0]) != 0 {
		t.Errorf("got %v, want empty", occ[0])
	}
}

func equalOcc(a, b []Occurrence) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
