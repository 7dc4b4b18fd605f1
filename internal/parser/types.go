package parser

type IntentKind int

const (
	Command IntentKind = iota
	Query
	Help
	Answer
	Unknown
)

// Intent is one parsed line of player input. Answer intents carry the raw
// number text in Args[0]; validation is left to the game layer.
type Intent struct {
	Raw        string
	Normalised string
	Kind       IntentKind
	Verb       string
	Args       []string
	Confidence float64
	Clarify    *ClarifyQuestion
}

type ClarifyQuestion struct {
	Prompt  string
	Options []Intent
}

// ParseContext lists what the player can currently refer to. Affordable
// items and unlocked features score slightly higher on fuzzy ties.
type ParseContext struct {
	Items      []string
	Affordable []string
	Features   []string
	Unlocked   []string
	LastEntity string
}

type CommandDef struct {
	Canonical  string
	Aliases    []string
	MinArgs    int
	MaxArgs    int
	HandlerKey string
}
