package game

import (
	"errors"
	"testing"

	"github.com/appengine-ltd/mathdash/internal/store"
)

func testCatalog(t *testing.T, kv store.KV) *Catalog {
	t.Helper()
	c, err := NewCatalog(kv, BuiltinItems(), nil)
	if err != nil {
		t.Fatalf("new catalog: %v", err)
	}
	return c
}

func TestBuiltinCatalogShape(t *testing.T) {
	c := testCatalog(t, store.NewMemory())
	wantPerTier := map[Tier]int{
		TierCheap: 10, TierMedium: 8, TierExpensive: 6, TierLegendary: 5,
		TierEpic: 4, TierUnreal: 3, TierSecret: 2,
	}
	total := 0
	for tier, want := range wantPerTier {
		if got := len(c.ItemsInTier(tier)); got != want {
			t.Fatalf("tier %s: expected %d items, got %d", tier, want, got)
		}
		total += want
	}
	if c.TotalCount() != total {
		t.Fatalf("expected %d items, got %d", total, c.TotalCount())
	}
	for _, item := range c.Items() {
		if item.Price <= 0 || item.Name == "" || item.Emoji == "" {
			t.Fatalf("bad catalog item %+v", item)
		}
	}
}

func TestNewCatalogRejectsBadDefinitions(t *testing.T) {
	tests := [][]CatalogItem{
		{{ID: "a", Name: "A", Price: 0}},
		{{ID: "", Name: "A", Price: 1}},
		{{ID: "a", Name: "A", Price: 1}, {ID: "a", Name: "B", Price: 2}},
	}
	for i, items := range tests {
		if _, err := NewCatalog(store.NewMemory(), items, nil); err == nil {
			t.Fatalf("case %d: expected definition error", i)
		}
	}
}

func TestPurchaseIsMonotonicAndPersistent(t *testing.T) {
	kv := store.NewMemory()
	c := testCatalog(t, kv)
	if err := c.Purchase("kite"); err != nil {
		t.Fatalf("purchase: %v", err)
	}
	if err := c.Purchase("kite"); !errors.Is(err, ErrAlreadyOwned) {
		t.Fatalf("expected already owned, got %v", err)
	}
	if err := c.Purchase("spaceship"); !errors.Is(err, ErrUnknownItem) {
		t.Fatalf("expected unknown item, got %v", err)
	}
	_ = c.Purchase("apple")

	reloaded := testCatalog(t, kv)
	if reloaded.OwnedCount() != 2 || !reloaded.IsOwned("kite") || !reloaded.IsOwned("apple") {
		t.Fatalf("expected kite and apple owned after reload, got %+v", reloaded.OwnedItems())
	}
	owned := reloaded.OwnedItems()
	if owned[0].ID != "kite" || owned[1].ID != "apple" {
		t.Fatalf("expected purchase order preserved, got %+v", owned)
	}
}

func TestTierCompletion(t *testing.T) {
	c := testCatalog(t, store.NewMemory())
	cheap := c.ItemsInTier(TierCheap)
	for i, item := range cheap {
		if c.IsTierComplete(TierCheap) {
			t.Fatalf("tier complete after only %d of %d", i, len(cheap))
		}
		if err := c.Purchase(item.ID); err != nil {
			t.Fatalf("purchase %s: %v", item.ID, err)
		}
	}
	if !c.IsTierComplete(TierCheap) {
		t.Fatalf("expected cheap tier complete")
	}
	_ = c.Purchase("rocket")
	if !c.IsTierComplete(TierCheap) {
		t.Fatalf("owning more items must not un-complete a tier")
	}
	if c.IsTierComplete(TierEpic) {
		t.Fatalf("epic should not be complete")
	}
}

func TestEmptyTierNeverComplete(t *testing.T) {
	c, err := NewCatalog(store.NewMemory(), []CatalogItem{{ID: "a", Name: "A", Emoji: "a", Price: 1, Tier: TierCheap}}, nil)
	if err != nil {
		t.Fatalf("new catalog: %v", err)
	}
	_ = c.Purchase("a")
	if c.IsTierComplete(TierSecret) {
		t.Fatalf("tier with no items must never report complete")
	}
	if !c.IsTierComplete(TierCheap) {
		t.Fatalf("single-item tier should be complete")
	}
}

func TestCatalogDropsUnknownStoredIDs(t *testing.T) {
	kv := store.NewMemory()
	_ = kv.Set(keyOwned, []byte(`["apple","ghost","apple"]`))
	c := testCatalog(t, kv)
	if c.OwnedCount() != 1 || !c.IsOwned("apple") {
		t.Fatalf("expected only apple owned, got %+v", c.OwnedItems())
	}
}

func TestParseTier(t *testing.T) {
	for _, tier := range AllTiers() {
		got, ok := ParseTier(" " + tier.String() + " ")
		if !ok || got != tier {
			t.Fatalf("ParseTier(%q) = %v, %v", tier.String(), got, ok)
		}
	}
	if _, ok := ParseTier("mythic"); ok {
		t.Fatalf("expected unknown tier to fail")
	}
}

func TestFindByName(t *testing.T) {
	c := testCatalog(t, store.NewMemory())
	item, ok := c.FindByName("  lucky SOCK ")
	if !ok || item.ID != "sock" {
		t.Fatalf("expected sock by name, got %+v %v", item, ok)
	}
	if item, ok := c.FindByName("dragon-egg"); !ok || item.Tier != TierLegendary {
		t.Fatalf("expected dragon egg by id, got %+v %v", item, ok)
	}
	if _, ok := c.FindByName(""); ok {
		t.Fatalf("empty name should not match")
	}
}
