package game

import (
	"testing"

	"casino_webapp/internal/rng"
)

func TestDefaultCatalogValidates(t *testing.T) {
	if _, err := NewCatalog(DefaultCatalog()); err != nil {
		t.Fatal(err)
	}
}

func TestCatalogRejectsMisnormalizedOdds(t *testing.T) {
	bad := []CaseDef{{
		ID: "broken", Name: "Broken", PriceMinor: 100,
		Items: []CaseItem{
			{Name: "a", Odds: 50, ValueMinor: 10},
			{Name: "b", Odds: 40, ValueMinor: 20}, // sums to 90, not 100
		},
	}}
	if _, err := NewCatalog(bad); err == nil {
		t.Fatal("mis-normalized case accepted")
	}
}

func TestOpenCaseSingleDraw(t *testing.T) {
	catalog, err := NewCatalog(DefaultCatalog())
	if err != nil {
		t.Fatal(err)
	}

	// Draw at 0.0 selects the first item of the starter case
	out, err := catalog.OpenCase("starter", 1, rng.NewSequence(0.0))
	if err != nil {
		t.Fatal(err)
	}
	if len(out.Items) != 1 || out.Items[0].Name != "Scrap" {
		t.Fatalf("items = %+v", out.Items)
	}
	if out.TotalStake != 100 || out.TotalPayout != 30 {
		t.Fatalf("stake=%d payout=%d", out.TotalStake, out.TotalPayout)
	}
}

func TestOpenCaseMultiDrawIndependent(t *testing.T) {
	catalog, err := NewCatalog(DefaultCatalog())
	if err != nil {
		t.Fatal(err)
	}

	// Same draw value five times: repeats of the same item are expected
	out, err := catalog.OpenCase("starter", 5, rng.NewSequence(0.0))
	if err != nil {
		t.Fatal(err)
	}
	if out.Opens != 5 || len(out.Items) != 5 {
		t.Fatalf("opens=%d items=%d", out.Opens, len(out.Items))
	}
	for _, item := range out.Items {
		if item.Name != "Scrap" {
			t.Fatalf("expected repeated draws, got %+v", out.Items)
		}
	}
	if out.TotalStake != 500 {
		t.Fatalf("stake = %d", out.TotalStake)
	}
}

func TestOpenCaseRejectsBadInput(t *testing.T) {
	catalog, _ := NewCatalog(DefaultCatalog())

	if _, err := catalog.OpenCase("missing", 1, rng.NewSeeded(1)); err != ErrUnknownCase {
		t.Fatalf("unknown case err = %v", err)
	}
	if _, err := catalog.OpenCase("starter", 0, rng.NewSeeded(1)); err != ErrInvalidOpenCount {
		t.Fatalf("count 0 err = %v", err)
	}
	if _, err := catalog.OpenCase("starter", 6, rng.NewSeeded(1)); err != ErrInvalidOpenCount {
		t.Fatalf("count 6 err = %v", err)
	}
}
