package game

import (
	"errors"
	"fmt"
	"log/slog"
	"slices"

	"github.com/appengine-ltd/mathdash/internal/store"
)

type FeatureID string

const (
	FeatureConfetti     FeatureID = "confetti"
	FeatureSoundEffects FeatureID = "sound_effects"
	FeatureRainbowText  FeatureID = "rainbow_text"
	FeatureWhiteboard   FeatureID = "whiteboard"
	FeatureGoldenTheme  FeatureID = "golden_theme"
	FeatureFireworks    FeatureID = "fireworks"
)

// Reward is the feature granted for owning every item of a tier.
type Reward struct {
	Feature     FeatureID
	DisplayName string
	Tier        Tier
}

var builtinRewards = []Reward{
	{Feature: FeatureConfetti, DisplayName: "Confetti Celebrations", Tier: TierCheap},
	{Feature: FeatureSoundEffects, DisplayName: "Sound Effects", Tier: TierMedium},
	{Feature: FeatureRainbowText, DisplayName: "Rainbow Questions", Tier: TierExpensive},
	{Feature: FeatureWhiteboard, DisplayName: "Scratch Whiteboard", Tier: TierLegendary},
	{Feature: FeatureGoldenTheme, DisplayName: "Golden Theme", Tier: TierEpic},
	{Feature: FeatureFireworks, DisplayName: "Fireworks Finale", Tier: TierUnreal},
}

// FeatureRegistry holds the user's raw toggle bits and the set of rewards
// that have already been announced. Unlock state is never stored; it is
// derived from catalog ownership on every query.
type FeatureRegistry struct {
	kv        store.KV
	rewards   []Reward
	toggles   map[FeatureID]bool
	announced map[FeatureID]bool
}

func NewFeatureRegistry(kv store.KV, logger *slog.Logger) *FeatureRegistry {
	logger = loggerOrDefault(logger)
	r := &FeatureRegistry{
		kv:        kv,
		rewards:   slices.Clone(builtinRewards),
		toggles:   make(map[FeatureID]bool),
		announced: make(map[FeatureID]bool),
	}
	for id, on := range loadJSON[map[FeatureID]bool](kv, keyToggles, logger) {
		if _, ok := r.Reward(id); !ok {
			logger.Warn("dropping unknown feature toggle", "feature", id)
			continue
		}
		r.toggles[id] = on
	}
	for _, id := range loadJSON[[]FeatureID](kv, keyUnlocks, logger) {
		if _, ok := r.Reward(id); ok {
			r.announced[id] = true
		}
	}
	return r
}

func (r *FeatureRegistry) Rewards() []Reward {
	return slices.Clone(r.rewards)
}

func (r *FeatureRegistry) Reward(id FeatureID) (Reward, bool) {
	for _, rw := range r.rewards {
		if rw.Feature == id {
			return rw, true
		}
	}
	return Reward{}, false
}

func (r *FeatureRegistry) rewardForTier(t Tier) (Reward, bool) {
	for _, rw := range r.rewards {
		if rw.Tier == t {
			return rw, true
		}
	}
	return Reward{}, false
}

// IsUnlocked reports whether the tier behind id is complete in c.
func (r *FeatureRegistry) IsUnlocked(id FeatureID, c *Catalog) bool {
	rw, ok := r.Reward(id)
	if !ok || c == nil {
		return false
	}
	return c.IsTierComplete(rw.Tier)
}

// SetToggle stores the raw bit without consulting unlock state. Gating user
// enables on unlock is the session controller's job.
func (r *FeatureRegistry) SetToggle(id FeatureID, enabled bool) error {
	if _, ok := r.Reward(id); !ok {
		return fmt.Errorf("%q: %w", id, ErrUnknownFeature)
	}
	r.toggles[id] = enabled
	return saveJSON(r.kv, keyToggles, r.toggles)
}

// IsEnabled returns the raw persisted bit.
func (r *FeatureRegistry) IsEnabled(id FeatureID) bool {
	return r.toggles[id]
}

// IsActive is the effective state: enabled and unlocked.
func (r *FeatureRegistry) IsActive(id FeatureID, c *Catalog) bool {
	return r.IsEnabled(id) && r.IsUnlocked(id, c)
}

// AfterPurchase runs once the catalog has recorded item as owned. If that
// completed a rewarded tier for the first time, the reward is switched on and
// returned. Later calls for the same tier return nothing.
func (r *FeatureRegistry) AfterPurchase(c *Catalog, item CatalogItem) ([]Reward, error) {
	rw, ok := r.rewardForTier(item.Tier)
	if !ok || r.announced[rw.Feature] || !c.IsTierComplete(item.Tier) {
		return nil, nil
	}

	r.announced[rw.Feature] = true
	r.toggles[rw.Feature] = true

	announced := make([]FeatureID, 0, len(r.announced))
	for _, known := range r.rewards {
		if r.announced[known.Feature] {
			announced = append(announced, known.Feature)
		}
	}
	err := errors.Join(
		saveJSON(r.kv, keyUnlocks, announced),
		saveJSON(r.kv, keyToggles, r.toggles),
	)
	return []Reward{rw}, err
}
