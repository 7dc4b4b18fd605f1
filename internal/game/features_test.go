package game

import (
	"errors"
	"testing"

	"github.com/appengine-ltd/mathdash/internal/store"
)

func buyTier(t *testing.T, c *Catalog, r *FeatureRegistry, tier Tier) [][]Reward {
	t.Helper()
	var events [][]Reward
	for _, item := range c.ItemsInTier(tier) {
		if c.IsOwned(item.ID) {
			continue
		}
		if err := c.Purchase(item.ID); err != nil {
			t.Fatalf("purchase %s: %v", item.ID, err)
		}
		got, err := r.AfterPurchase(c, item)
		if err != nil {
			t.Fatalf("after purchase %s: %v", item.ID, err)
		}
		events = append(events, got)
	}
	return events
}

func TestEveryRewardedTierHasItems(t *testing.T) {
	c := testCatalog(t, store.NewMemory())
	r := NewFeatureRegistry(store.NewMemory(), nil)
	seen := map[Tier]bool{}
	for _, rw := range r.Rewards() {
		if seen[rw.Tier] {
			t.Fatalf("tier %s rewarded twice", rw.Tier)
		}
		seen[rw.Tier] = true
		if len(c.ItemsInTier(rw.Tier)) == 0 {
			t.Fatalf("reward %s sits on empty tier %s", rw.Feature, rw.Tier)
		}
	}
	if seen[TierSecret] {
		t.Fatalf("secret tier should carry no reward")
	}
}

func TestCompletingTierUnlocksOnce(t *testing.T) {
	kv := store.NewMemory()
	c := testCatalog(t, kv)
	r := NewFeatureRegistry(kv, nil)

	events := buyTier(t, c, r, TierCheap)
	for i, ev := range events[:len(events)-1] {
		if len(ev) != 0 {
			t.Fatalf("purchase %d fired early unlock %+v", i, ev)
		}
	}
	last := events[len(events)-1]
	if len(last) != 1 || last[0].Feature != FeatureConfetti {
		t.Fatalf("expected confetti unlock, got %+v", last)
	}
	if !r.IsUnlocked(FeatureConfetti, c) || !r.IsEnabled(FeatureConfetti) || !r.IsActive(FeatureConfetti, c) {
		t.Fatalf("confetti should be unlocked and enabled")
	}

	cheap := c.ItemsInTier(TierCheap)
	again, err := r.AfterPurchase(c, cheap[0])
	if err != nil || len(again) != 0 {
		t.Fatalf("unlock must fire once, got %+v %v", again, err)
	}

	reloaded := NewFeatureRegistry(kv, nil)
	again, _ = reloaded.AfterPurchase(c, cheap[len(cheap)-1])
	if len(again) != 0 {
		t.Fatalf("unlock must not refire after reload, got %+v", again)
	}
	if !reloaded.IsEnabled(FeatureConfetti) {
		t.Fatalf("auto-enabled toggle should persist")
	}
}

func TestUserDisableSurvivesRepeatHook(t *testing.T) {
	kv := store.NewMemory()
	c := testCatalog(t, kv)
	r := NewFeatureRegistry(kv, nil)
	buyTier(t, c, r, TierUnreal)

	if err := r.SetToggle(FeatureFireworks, false); err != nil {
		t.Fatalf("set toggle: %v", err)
	}
	unreal := c.ItemsInTier(TierUnreal)
	if _, err := r.AfterPurchase(c, unreal[0]); err != nil {
		t.Fatalf("after purchase: %v", err)
	}
	if r.IsEnabled(FeatureFireworks) {
		t.Fatalf("hook must not flip a user preference after the first unlock")
	}
}

func TestRawBitIndependentOfUnlock(t *testing.T) {
	kv := store.NewMemory()
	c := testCatalog(t, kv)
	r := NewFeatureRegistry(kv, nil)

	if err := r.SetToggle(FeatureGoldenTheme, true); err != nil {
		t.Fatalf("set toggle: %v", err)
	}
	if !r.IsEnabled(FeatureGoldenTheme) {
		t.Fatalf("raw bit should be stored")
	}
	if r.IsUnlocked(FeatureGoldenTheme, c) || r.IsActive(FeatureGoldenTheme, c) {
		t.Fatalf("locked feature must not be active")
	}
	if !NewFeatureRegistry(kv, nil).IsEnabled(FeatureGoldenTheme) {
		t.Fatalf("raw bit should persist")
	}
}

func TestSetToggleUnknownFeature(t *testing.T) {
	r := NewFeatureRegistry(store.NewMemory(), nil)
	if err := r.SetToggle("laser_show", true); !errors.Is(err, ErrUnknownFeature) {
		t.Fatalf("expected unknown feature, got %v", err)
	}
}

func TestSecretTierHasNoUnlockEvent(t *testing.T) {
	kv := store.NewMemory()
	c := testCatalog(t, kv)
	r := NewFeatureRegistry(kv, nil)
	for _, ev := range buyTier(t, c, r, TierSecret) {
		if len(ev) != 0 {
			t.Fatalf("secret tier should not unlock anything, got %+v", ev)
		}
	}
	if !c.IsTierComplete(TierSecret) {
		t.Fatalf("secret tier should still complete")
	}
}

func TestFeatureRegistryIgnoresCorruptState(t *testing.T) {
	kv := store.NewMemory()
	_ = kv.Set(keyToggles, []byte(`{not json`))
	_ = kv.Set(keyUnlocks, []byte(`["confetti","bogus"]`))
	r := NewFeatureRegistry(kv, nil)
	if r.IsEnabled(FeatureConfetti) {
		t.Fatalf("corrupt toggles should load as all off")
	}
	c := testCatalog(t, kv)
	events := buyTier(t, c, r, TierCheap)
	if len(events[len(events)-1]) != 0 {
		t.Fatalf("already announced reward should not fire")
	}
}
