package game

import (
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/appengine-ltd/mathdash/internal/store"
)

const (
	keyStats   = "stats"
	keyScores  = "scores"
	keyCoins   = "coins"
	keyOwned   = "owned"
	keyToggles = "toggles"
	keyUnlocks = "unlocks"
)

// loadJSON decodes key into a fresh T. Missing, unreadable or corrupt data all
// yield the zero value: a blank store is a normal first run.
func loadJSON[T any](kv store.KV, key string, logger *slog.Logger) T {
	var out T
	data, ok, err := kv.Get(key)
	if err != nil {
		logger.Warn("state load failed, using defaults", "key", key, "err", err)
		return out
	}
	if !ok || len(data) == 0 {
		return out
	}
	var decoded T
	if err := json.Unmarshal(data, &decoded); err != nil {
		logger.Warn("stored state unreadable, using defaults", "key", key, "err", err)
		return out
	}
	return decoded
}

func saveJSON(kv store.KV, key string, v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("encode %s: %w", key, err)
	}
	if err := kv.Set(key, data); err != nil {
		return fmt.Errorf("save %s: %w", key, err)
	}
	return nil
}

func loggerOrDefault(logger *slog.Logger) *slog.Logger {
	if logger == nil {
		return slog.Default()
	}
	return logger
}
