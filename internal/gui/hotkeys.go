package gui

import (
	"strconv"
	"strings"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/appengine-ltd/mathdash/internal/game"
	"github.com/appengine-ltd/mathdash/internal/parser"
)

var (
	choiceKeys   = []int32{rl.KeyOne, rl.KeyTwo, rl.KeyThree, rl.KeyFour}
	shiftScreens = map[int32]string{rl.KeyS: "store", rl.KeyT: "stats", rl.KeyR: "rewards"}
)

func ShiftPressed() bool {
	return shiftDown()
}

func ShiftKeyPressed(key int32) bool {
	if ShiftPressed() && rl.IsKeyPressed(key) {
		return true
	}
	// Accept either key order: Shift then key, or key then Shift.
	if rl.IsKeyDown(key) && (rl.IsKeyPressed(rl.KeyLeftShift) || rl.IsKeyPressed(rl.KeyRightShift)) {
		return true
	}
	return false
}

// HotkeysEnabled is false while the player is typing, so letters and digits
// go to the prompt instead.
func HotkeysEnabled(uiState *gameUI) bool {
	if uiState == nil {
		return true
	}
	if strings.TrimSpace(uiState.input) != "" {
		return false
	}
	if uiState.pendingClarify != nil {
		return false
	}
	return true
}

// pollHotkeys turns key presses into intents for the current screen and
// reports whether a printable key was consumed.
func pollHotkeys(uiState *gameUI, sink CommandSink) bool {
	consumed := false
	for key, verb := range shiftScreens {
		if ShiftKeyPressed(key) {
			sink.EnqueueIntent(parser.Intent{Verb: verb, Kind: parser.Query})
			consumed = true
		}
	}
	if rl.IsKeyPressed(rl.KeyF1) {
		sink.EnqueueIntent(parser.Intent{Verb: "help", Kind: parser.Help})
	}
	if uiState.screen != screenPlay {
		return consumed
	}

	if rl.IsKeyPressed(rl.KeyTab) {
		next := "double"
		if uiState.ctrl.View().ScoringMode == game.ScoringDouble {
			next = "standard"
		}
		sink.EnqueueIntent(parser.Intent{Verb: "mode", Kind: parser.Command, Args: []string{next}})
	}
	if ShiftKeyPressed(rl.KeyC) {
		uiState.board.Clear()
		consumed = true
	}
	v := uiState.ctrl.View()
	if v.InputMode != game.InputChoice {
		return consumed
	}
	for i, key := range choiceKeys {
		if i < len(v.Options) && rl.IsKeyPressed(key) {
			sink.EnqueueIntent(parser.Intent{Verb: "pick", Kind: parser.Answer, Args: []string{strconv.Itoa(i)}})
			consumed = true
		}
	}
	if rl.IsKeyPressed(rl.KeyRight) {
		uiState.choiceIdx = wrapIndex(uiState.choiceIdx+1, len(v.Options))
	}
	if rl.IsKeyPressed(rl.KeyLeft) {
		uiState.choiceIdx = wrapIndex(uiState.choiceIdx-1, len(v.Options))
	}
	return consumed
}

func shiftDown() bool {
	return rl.IsKeyDown(rl.KeyLeftShift) || rl.IsKeyDown(rl.KeyRightShift)
}
