// Package debugblocker finds tuple pairs discarded by an entity-resolution
// blocker that nonetheless look like matches: pairs with high textual
// similarity across the two input tables, excluding anything the blocker
// already accepted. Run wires together feature selection, tokenization,
// global token ordering, the top-K similarity join, and its parallel
// executor into a single call.
package debugblocker

import (
	"context"
	"crypto/rand"
	"fmt"
	"log"
	"runtime"
	"sync"

	"github.com/oklog/ulid/v2"

	"github.com/entitymatch/debugblocker/internal/candset"
	"github.com/entitymatch/debugblocker/internal/corres"
	"github.com/entitymatch/debugblocker/internal/executor"
	"github.com/entitymatch/debugblocker/internal/features"
	"github.com/entitymatch/debugblocker/internal/planner"
	"github.com/entitymatch/debugblocker/internal/recordstore"
	"github.com/entitymatch/debugblocker/internal/tokenize"
	"github.com/entitymatch/debugblocker/internal/vocab"
	"github.com/entitymatch/debugblocker/pkg/debugblocker/internalerr"
	"github.com/entitymatch/debugblocker/pkg/debugblocker/table"
)

// runIDSource hands out monotonically increasing ULIDs so that Run's
// verbose log lines from concurrent Run calls can be correlated back to
// the run that produced them. The configuration workers do not log.
var (
	runIDMu  sync.Mutex
	runIDSrc = ulid.Monotonic(rand.Reader, 0)
)

func newRunID() string {
	runIDMu.Lock()
	defer runIDMu.Unlock()
	return ulid.MustNew(ulid.Now(), runIDSrc).String()
}

// RunConfig bundles the inputs and tuning parameters for a single run.
type RunConfig struct {
	LTable        table.Table
	RTable        table.Table
	CandidateSet  table.CandidateSet
	AttrCorres    []table.ColumnPair // optional; identical-name correspondence inferred if nil
	OutputSize    int                // K, must be > 0
	Verbose       bool
	NJobs         int // worker count; 0 rejected, -1 = all CPUs, negative = n_cpus+1+n_jobs
	NConfigs      int // configuration count; 0 rejected, -1/-2 special, see planner.Resolve
}

// Pair is one output triple: the similarity score between L record l_idx
// and R record r_idx.
type Pair struct {
	LIdx uint32
	RIdx uint32
	Sim  float64
}

// Result is the ordered output of a run: up to OutputSize pairs, sorted
// descending by Sim, then ascending LIdx, then ascending RIdx.
type Result struct {
	Pairs []Pair
}

// Run executes the full debugging pipeline against cfg.
func Run(ctx context.Context, cfg RunConfig) (Result, error) {
	if cfg.LTable == nil || cfg.RTable == nil {
		return Result{}, fmt.Errorf("%w: ltable and rtable are required", internalerr.ErrInvalidInput)
	}
	if cfg.LTable.NumRecords() == 0 || cfg.RTable.NumRecords() == 0 {
		return Result{}, fmt.Errorf("%w: ltable and rtable must be non-empty", internalerr.ErrInvalidInput)
	}
	if cfg.OutputSize <= 0 {
		return Result{}, fmt.Errorf("%w: output_size must be > 0", internalerr.ErrInvalidInput)
	}
	if err := checkDuplicateKeys(cfg.LTable); err != nil {
		return Result{}, err
	}
	if err := checkDuplicateKeys(cfg.RTable); err != nil {
		return Result{}, err
	}

	runID := newRunID()

	pairs, err := corres.Resolve(cfg.LTable, cfg.RTable, cfg.AttrCorres)
	if err != nil {
		return Result{}, err
	}
	aligned, err := corres.Build(cfg.LTable, cfg.RTable, pairs)
	if err != nil {
		return Result{}, err
	}
	if cfg.Verbose {
		log.Printf("debugblocker[%s]: aligned %d column pairs", runID, aligned.NumFields())
	}

	selected, err := features.Select(aligned)
	if err != nil {
		return Result{}, err
	}
	numFields := len(selected)
	if cfg.Verbose {
		log.Printf("debugblocker[%s]: selected %d fields for tokenization", runID, numFields)
	}

	lOcc := tokenize.Table(aligned, selected, tokenize.Left)
	rOcc := tokenize.Table(aligned, selected, tokenize.Right)

	order := vocab.Build(lOcc, rOcc)
	if cfg.Verbose {
		log.Printf("debugblocker[%s]: vocabulary size %d", runID, order.Size())
	}

	lRecords := recordstore.Build(lOcc, order)
	rRecords := recordstore.Build(rOcc, order)

	lTotals := recordstore.FieldTotals(lRecords, numFields)
	rTotals := recordstore.FieldTotals(rRecords, numFields)

	excl := candset.Build(cfg.CandidateSet, cfg.LTable, cfg.RTable)

	configs := planner.Generate(numFields, lTotals, rTotals, lRecords.NumRecords(), rRecords.NumRecords())
	if len(configs) == 0 {
		return Result{}, fmt.Errorf("%w", internalerr.ErrConfigEmpty)
	}

	numConfigs, numWorkers, err := planner.Resolve(cfg.NJobs, cfg.NConfigs, len(configs), runtime.NumCPU())
	if err != nil {
		return Result{}, err
	}
	configs = configs[:numConfigs]
	if cfg.Verbose {
		log.Printf("debugblocker[%s]: running %d configurations across %d workers", runID, numConfigs, numWorkers)
	}

	entries, err := executor.Run(ctx, configs, lRecords, rRecords, excl, cfg.OutputSize, numWorkers)
	if err != nil {
		return Result{}, err
	}

	out := Result{Pairs: make([]Pair, len(entries))}
	for i, e := range entries {
		out.Pairs[i] = Pair{LIdx: e.LIdx, RIdx: e.RIdx, Sim: e.Sim}
	}
	return out, nil
}

// checkDuplicateKeys fails if two records in t share the same key value.
func checkDuplicateKeys(t table.Table) error {
	keyCol := -1
	for i, c := range t.Columns() {
		if c == t.KeyColumn() {
			keyCol = i
			break
		}
	}
	if keyCol < 0 {
		return fmt.Errorf("%w: key column %q not found", internalerr.ErrSchemaMismatch, t.KeyColumn())
	}

	seen := make(map[string]struct{}, t.NumRecords())
	for i := 0; i < t.NumRecords(); i++ {
		v, isNull := t.Cell(i, keyCol)
		if isNull {
			continue
		}
		if _, ok := seen[v]; ok {
			return fmt.Errorf("%w: key value %q appears more than once", internalerr.ErrDuplicateKey, v)
		}
		seen[v] = struct{}{}
	}
	return nil
}
