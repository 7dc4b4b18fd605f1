package game

import (
	"fmt"
	"log/slog"
	"slices"
	"strings"

	"github.com/appengine-ltd/mathdash/internal/store"
)

type Tier int

const (
	TierCheap Tier = iota
	TierMedium
	TierExpensive
	TierLegendary
	TierEpic
	TierUnreal
	TierSecret
)

var tierNames = []string{"cheap", "medium", "expensive", "legendary", "epic", "unreal", "secret"}

func (t Tier) String() string {
	if t < 0 || int(t) >= len(tierNames) {
		return fmt.Sprintf("tier(%d)", int(t))
	}
	return tierNames[t]
}

func AllTiers() []Tier {
	out := make([]Tier, len(tierNames))
	for i := range tierNames {
		out[i] = Tier(i)
	}
	return out
}

func ParseTier(s string) (Tier, bool) {
	i := slices.Index(tierNames, strings.ToLower(strings.TrimSpace(s)))
	if i < 0 {
		return 0, false
	}
	return Tier(i), true
}

type CatalogItem struct {
	ID    string
	Emoji string
	Name  string
	Price int
	Tier  Tier
}

var builtinItems = []CatalogItem{
	{ID: "apple", Emoji: "🍎", Name: "Apple", Price: 5, Tier: TierCheap},
	{ID: "pencil", Emoji: "✏️", Name: "Pencil", Price: 5, Tier: TierCheap},
	{ID: "balloon", Emoji: "🎈", Name: "Balloon", Price: 6, Tier: TierCheap},
	{ID: "cookie", Emoji: "🍪", Name: "Cookie", Price: 6, Tier: TierCheap},
	{ID: "sock", Emoji: "🧦", Name: "Lucky Sock", Price: 8, Tier: TierCheap},
	{ID: "lollipop", Emoji: "🍭", Name: "Lollipop", Price: 8, Tier: TierCheap},
	{ID: "button", Emoji: "🔘", Name: "Shiny Button", Price: 10, Tier: TierCheap},
	{ID: "sticker", Emoji: "⭐", Name: "Gold Star Sticker", Price: 10, Tier: TierCheap},
	{ID: "marble", Emoji: "🔮", Name: "Marble", Price: 12, Tier: TierCheap},
	{ID: "kite", Emoji: "🪁", Name: "Kite", Price: 15, Tier: TierCheap},

	{ID: "skateboard", Emoji: "🛹", Name: "Skateboard", Price: 25, Tier: TierMedium},
	{ID: "guitar", Emoji: "🎸", Name: "Guitar", Price: 30, Tier: TierMedium},
	{ID: "telescope", Emoji: "🔭", Name: "Telescope", Price: 35, Tier: TierMedium},
	{ID: "football", Emoji: "⚽", Name: "Football", Price: 35, Tier: TierMedium},
	{ID: "paint-set", Emoji: "🎨", Name: "Paint Set", Price: 40, Tier: TierMedium},
	{ID: "headphones", Emoji: "🎧", Name: "Headphones", Price: 45, Tier: TierMedium},
	{ID: "camera", Emoji: "📷", Name: "Camera", Price: 50, Tier: TierMedium},
	{ID: "puppy", Emoji: "🐶", Name: "Puppy", Price: 50, Tier: TierMedium},

	{ID: "bicycle", Emoji: "🚲", Name: "Bicycle", Price: 75, Tier: TierExpensive},
	{ID: "drum-kit", Emoji: "🥁", Name: "Drum Kit", Price: 90, Tier: TierExpensive},
	{ID: "laptop", Emoji: "💻", Name: "Laptop", Price: 110, Tier: TierExpensive},
	{ID: "robot", Emoji: "🤖", Name: "Robot Buddy", Price: 120, Tier: TierExpensive},
	{ID: "treehouse", Emoji: "🌳", Name: "Treehouse", Price: 135, Tier: TierExpensive},
	{ID: "pony", Emoji: "🐴", Name: "Pony", Price: 150, Tier: TierExpensive},

	{ID: "crown", Emoji: "👑", Name: "Crown", Price: 200, Tier: TierLegendary},
	{ID: "dragon-egg", Emoji: "🥚", Name: "Dragon Egg", Price: 250, Tier: TierLegendary},
	{ID: "magic-wand", Emoji: "🪄", Name: "Magic Wand", Price: 300, Tier: TierLegendary},
	{ID: "treasure", Emoji: "💰", Name: "Treasure Chest", Price: 350, Tier: TierLegendary},
	{ID: "castle", Emoji: "🏰", Name: "Castle", Price: 400, Tier: TierLegendary},

	{ID: "rocket", Emoji: "🚀", Name: "Rocket", Price: 500, Tier: TierEpic},
	{ID: "unicorn", Emoji: "🦄", Name: "Unicorn", Price: 600, Tier: TierEpic},
	{ID: "volcano", Emoji: "🌋", Name: "Volcano", Price: 700, Tier: TierEpic},
	{ID: "ufo", Emoji: "🛸", Name: "UFO", Price: 800, Tier: TierEpic},

	{ID: "comet", Emoji: "☄️", Name: "Comet", Price: 1000, Tier: TierUnreal},
	{ID: "galaxy", Emoji: "🌌", Name: "Galaxy", Price: 1250, Tier: TierUnreal},
	{ID: "black-hole", Emoji: "🕳️", Name: "Black Hole", Price: 1500, Tier: TierUnreal},

	{ID: "golden-calculator", Emoji: "🧮", Name: "Golden Abacus", Price: 2500, Tier: TierSecret},
	{ID: "infinity", Emoji: "♾️", Name: "Infinity", Price: 5000, Tier: TierSecret},
}

// BuiltinItems returns the static store catalog in display order.
func BuiltinItems() []CatalogItem {
	return slices.Clone(builtinItems)
}

// Catalog is the purchasable item list plus the monotonically growing set of
// owned item ids. It does not touch coins: callers spend first, then Purchase.
type Catalog struct {
	kv    store.KV
	items []CatalogItem
	byID  map[string]int
	owned map[string]bool
	order []string
}

func NewCatalog(kv store.KV, items []CatalogItem, logger *slog.Logger) (*Catalog, error) {
	logger = loggerOrDefault(logger)
	c := &Catalog{
		kv:    kv,
		items: slices.Clone(items),
		byID:  make(map[string]int, len(items)),
		owned: make(map[string]bool),
	}
	for i, item := range c.items {
		if strings.TrimSpace(item.ID) == "" {
			return nil, fmt.Errorf("catalog item %d has no id", i)
		}
		if item.Price <= 0 {
			return nil, fmt.Errorf("catalog item %q has non-positive price %d", item.ID, item.Price)
		}
		if _, dup := c.byID[item.ID]; dup {
			return nil, fmt.Errorf("duplicate catalog item %q", item.ID)
		}
		c.byID[item.ID] = i
	}

	for _, id := range loadJSON[[]string](kv, keyOwned, logger) {
		if _, ok := c.byID[id]; !ok {
			logger.Warn("dropping unknown owned item", "id", id)
			continue
		}
		if !c.owned[id] {
			c.owned[id] = true
			c.order = append(c.order, id)
		}
	}
	return c, nil
}

func (c *Catalog) Items() []CatalogItem {
	return slices.Clone(c.items)
}

func (c *Catalog) Item(id string) (CatalogItem, bool) {
	i, ok := c.byID[id]
	if !ok {
		return CatalogItem{}, false
	}
	return c.items[i], true
}

func (c *Catalog) ItemsInTier(t Tier) []CatalogItem {
	var out []CatalogItem
	for _, item := range c.items {
		if item.Tier == t {
			out = append(out, item)
		}
	}
	return out
}

func (c *Catalog) IsOwned(id string) bool {
	return c.owned[id]
}

// Purchase marks id as owned. It fails for unknown or already owned items.
func (c *Catalog) Purchase(id string) error {
	if _, ok := c.byID[id]; !ok {
		return fmt.Errorf("%q: %w", id, ErrUnknownItem)
	}
	if c.owned[id] {
		return fmt.Errorf("%q: %w", id, ErrAlreadyOwned)
	}
	c.owned[id] = true
	c.order = append(c.order, id)
	return saveJSON(c.kv, keyOwned, c.order)
}

// IsTierComplete reports whether every item of t is owned. A tier with no
// items is never complete.
func (c *Catalog) IsTierComplete(t Tier) bool {
	found := false
	for _, item := range c.items {
		if item.Tier != t {
			continue
		}
		found = true
		if !c.owned[item.ID] {
			return false
		}
	}
	return found
}

// OwnedItems returns owned items in purchase order.
func (c *Catalog) OwnedItems() []CatalogItem {
	out := make([]CatalogItem, 0, len(c.order))
	for _, id := range c.order {
		out = append(out, c.items[c.byID[id]])
	}
	return out
}

func (c *Catalog) OwnedCount() int { return len(c.order) }

func (c *Catalog) TotalCount() int { return len(c.items) }

// FindByName matches an item by id or display name, ignoring case and
// surrounding whitespace. Fuzzy matching lives in the command parser.
func (c *Catalog) FindByName(name string) (CatalogItem, bool) {
	needle := strings.ToLower(strings.TrimSpace(name))
	if needle == "" {
		return CatalogItem{}, false
	}
	for _, item := range c.items {
		if item.ID == needle || strings.ToLower(item.Name) == needle {
			return item, true
		}
	}
	return CatalogItem{}, false
}
