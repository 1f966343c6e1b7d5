package core

import (
	"testing"

	"github.com/shopspring/decimal"
)

type saleFixture struct {
	region string
	amount int64
}

type regionTotal struct {
	region string
	count  int
	total  decimal.Decimal
}

func TestGroupRows(t *testing.T) {
	rows := []saleFixture{
		{"North", 100},
		{"South", 50},
		{"North", 25},
		{"East", 10},
		{"South", 5},
	}

	groups := groupRows(rows,
		func(r saleFixture) string { return r.region },
		func(r saleFixture) *regionTotal { return &regionTotal{region: r.region} },
		func(g *regionTotal, r saleFixture) {
			g.count++
			g.total = g.total.Add(decimal.NewFromInt(r.amount))
		},
	)

	if len(groups) != 3 {
		t.Fatalf("expected 3 groups, got %d", len(groups))
	}

	// First-appearance order, not key order.
	wantOrder := []string{"North", "South", "East"}
	for i, want := range wantOrder {
		if groups[i].region != want {
			t.Errorf("group %d region = %q, want %q", i, groups[i].region, want)
		}
	}

	wantTotals := map[string]int64{"North": 125, "South": 55, "East": 10}
	wantCounts := map[string]int{"North": 2, "South": 2, "East": 1}
	for _, g := range groups {
		if !g.total.Equal(decimal.NewFromInt(wantTotals[g.region])) {
			t.Errorf("%s total = %s, want %d", g.region, g.total, wantTotals[g.region])
		}
		if g.count != wantCounts[g.region] {
			t.Errorf("%s count = %d, want %d", g.region, g.count, wantCounts[g.region])
		}
	}
}

func TestGroupRowsEmpty(t *testing.T) {
	groups := groupRows(nil,
		func(r saleFixture) string { return r.region },
		func(r saleFixture) *regionTotal { return &regionTotal{region: r.region} },
		func(g *regionTotal, r saleFixture) { g.count++ },
	)
	if len(groups) != 0 {
		t.Errorf("expected no groups, got %d", len(groups))
	}
	if out := groupsAsAny(groups); len(out) != 0 {
		t.Errorf("expected empty payload, got %d entries", len(out))
	}
}
