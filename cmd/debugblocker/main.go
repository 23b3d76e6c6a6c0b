package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log"

	"github.com/entitymatch/debugblocker/adapters/csv"
	"github.com/entitymatch/debugblocker/adapters/sqlite"
	"github.com/entitymatch/debugblocker/internal/join"
	"github.com/entitymatch/debugblocker/pkg/debugblocker"
	"github.com/entitymatch/debugblocker/pkg/debugblocker/assemble"
	"github.com/entitymatch/debugblocker/pkg/debugblocker/config"
	"github.com/entitymatch/debugblocker/pkg/debugblocker/table"
)

func main() {
	var (
		configPath = flag.String("config", "", "Path to run config YAML (required)")
	)
	flag.Parse()

	if *configPath == "" {
		log.Fatal("--config required")
	}

	ctx := context.Background()

	run, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	l, closeL, err := openTable(ctx, run.LTable)
	if err != nil {
		log.Fatalf("load ltable: %v", err)
	}
	defer closeL()

	r, closeR, err := openTable(ctx, run.RTable)
	if err != nil {
		log.Fatalf("load rtable: %v", err)
	}
	defer closeR()

	var cs table.CandidateSet
	if run.CandidateSet.Path != "" {
		cs, err = csv.LoadCandidateSet(run.CandidateSet.Path)
		if err != nil {
			log.Fatalf("load candidate set: %v", err)
		}
	} else {
		cs = &csv.CandidateSet{}
	}

	attrCorres := make([]table.ColumnPair, len(run.AttrCorres))
	for i, p := range run.AttrCorres {
		attrCorres[i] = table.ColumnPair{LCol: p.LCol, RCol: p.RCol}
	}

	result, err := debugblocker.Run(ctx, debugblocker.RunConfig{
		LTable:       l,
		RTable:       r,
		CandidateSet: cs,
		AttrCorres:   attrCorres,
		OutputSize:   run.OutputSize,
		Verbose:      run.Verbose,
		NJobs:        run.NJobs,
		NConfigs:     run.NConfigs,
	})
	if err != nil {
		log.Fatalf("run: %v", err)
	}

	entries := make([]join.Entry, len(result.Pairs))
	for i, p := range result.Pairs {
		entries[i] = join.Entry{Sim: p.Sim, LIdx: p.LIdx, RIdx: p.RIdx}
	}

	rows := assemble.Table(entries, l, r)
	out, err := json.MarshalIndent(rows, "", "  ")
	if err != nil {
		log.Fatalf("marshal report: %v", err)
	}
	fmt.Println(string(out))
}

func openTable(ctx context.Context, spec config.TableSpec) (table.Table, func(), error) {
	switch spec.Driver {
	case "sqlite":
		t, err := sqlite.Open(ctx, spec.Path, spec.Table, spec.KeyColumn, spec.NumericSet())
		if err != nil {
			return nil, func() {}, err
		}
		return t, func() { t.Close() }, nil
	default:
		t, err := csv.Load(spec.Path, spec.KeyColumn, spec.NumericSet())
		if err != nil {
			return nil, func() {}, err
		}
		return t, func() {}, nil
	}
}
