package parser

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/agnivade/levenshtein"
)

type Parser struct {
	registry *Registry
}

func New() *Parser {
	return &Parser{registry: DefaultRegistry()}
}

func (p *Parser) RegisterCommand(c CommandDef) {
	p.registry.RegisterCommand(c)
}

var (
	scoringModes = []string{"standard", "double"}
	inputModes   = []string{"choice", "numeric"}
)

func (p *Parser) Parse(ctx ParseContext, raw string) Intent {
	intent := Intent{
		Raw:        raw,
		Normalised: normaliseInput(raw),
		Kind:       Unknown,
		Confidence: 0,
	}
	trimmed := strings.TrimSpace(raw)
	if looksNumeric(trimmed) {
		intent.Kind = Answer
		intent.Verb = "answer"
		intent.Args = []string{trimmed}
		intent.Confidence = 1
		return intent
	}
	if trimmed == "?" {
		intent.Kind = Help
		intent.Verb = "help"
		intent.Confidence = 1
		return intent
	}
	if intent.Normalised == "" {
		intent.Clarify = &ClarifyQuestion{Prompt: "Type an answer or a command.", Options: nil}
		return intent
	}

	tokens := tokenise(intent.Normalised)
	cmdMatch, alternates := p.registry.matchCommand(tokens)
	if cmdMatch.Canonical == "" || cmdMatch.Score < 0.5 {
		inferred := inferFreeTextIntent(ctx, intent.Raw, intent.Normalised)
		if inferred != nil {
			return *inferred
		}
		intent.Clarify = &ClarifyQuestion{
			Prompt: "I couldn't map that to a command. Try help, play, buy, store, stats, rewards, mode, input, quit.",
		}
		return intent
	}

	if len(alternates) > 0 && (cmdMatch.Score-alternates[0].Score) < 0.05 && alternates[0].Score > 0.65 {
		options := []Intent{
			{
				Raw:        raw,
				Normalised: cmdMatch.Canonical,
				Kind:       commandKind(cmdMatch.Canonical),
				Verb:       cmdMatch.Canonical,
				Confidence: cmdMatch.Score,
			},
			{
				Raw:        raw,
				Normalised: alternates[0].Canonical,
				Kind:       commandKind(alternates[0].Canonical),
				Verb:       alternates[0].Canonical,
				Confidence: alternates[0].Score,
			},
		}
		intent.Clarify = &ClarifyQuestion{
			Prompt:  "Did you mean:",
			Options: options,
		}
		return intent
	}

	intent.Verb = cmdMatch.Canonical
	intent.Kind = commandKind(intent.Verb)
	intent.Confidence = clampScore(cmdMatch.Score)

	argsTokens := tokens
	if cmdMatch.Consumed > 0 && len(tokens) >= cmdMatch.Consumed {
		argsTokens = tokens[cmdMatch.Consumed:]
	}
	if intent.Verb == "answer" && len(argsTokens) > 0 {
		// Keep the sign that normalisation strips.
		fields := strings.Fields(trimmed)
		argsTokens = []string{fields[len(fields)-1]}
	}

	def, _ := p.registry.command(intent.Verb)
	resolvedArgs, clarify, argScore := p.resolveArgs(ctx, def, argsTokens)
	if clarify != nil {
		intent.Clarify = clarify
		intent.Confidence = 0.45
		return intent
	}
	intent.Args = resolvedArgs
	intent.Confidence = clampScore((intent.Confidence * 0.75) + (argScore * 0.25))

	if len(intent.Args) < def.MinArgs {
		if options := buildEntityOptions(ctx, def.Canonical, 5); len(options) > 0 {
			intent.Clarify = &ClarifyQuestion{
				Prompt:  fmt.Sprintf("What should I %s?", def.Canonical),
				Options: options,
			}
			intent.Confidence = 0.46
			return intent
		}
		intent.Clarify = &ClarifyQuestion{Prompt: fmt.Sprintf("%s needs at least %d argument(s).", def.Canonical, def.MinArgs)}
		intent.Confidence = 0.42
		return intent
	}

	if def.MaxArgs > 0 && len(intent.Args) > def.MaxArgs {
		intent.Args = append([]string(nil), intent.Args[:def.MaxArgs]...)
		intent.Confidence = clampScore(intent.Confidence - 0.05)
	}

	if intent.Confidence < 0.52 && intent.Clarify == nil {
		intent.Clarify = &ClarifyQuestion{Prompt: "I have low confidence in that parse. Please rephrase or pick a clearer command."}
	}
	return intent
}

func commandKind(verb string) IntentKind {
	switch verb {
	case "help":
		return Help
	case "stats", "store", "rewards", "coins":
		return Query
	case "answer":
		return Answer
	default:
		return Command
	}
}

func (p *Parser) resolveArgs(ctx ParseContext, def CommandDef, args []string) ([]string, *ClarifyQuestion, float64) {
	if len(args) == 0 {
		return nil, nil, 0.9
	}

	switch def.Canonical {
	case "answer":
		if !looksNumeric(args[0]) {
			return nil, &ClarifyQuestion{Prompt: "Answers are whole numbers."}, 0.4
		}
		return []string{strings.TrimSpace(args[0])}, nil, 1
	case "pick":
		idx := choiceIndex(args[0])
		if idx < 0 {
			return nil, &ClarifyQuestion{Prompt: "Pick 1, 2, 3 or 4."}, 0.4
		}
		return []string{strconv.Itoa(idx)}, nil, 1
	case "mode":
		return resolveFixed(modeAlias(strings.Join(args, " ")), scoringModes, "Which mode: standard or double?")
	case "input":
		return resolveFixed(inputAlias(strings.Join(args, " ")), inputModes, "Which input: choice or numeric?")
	}

	if !expectsEntity(def.Canonical) {
		return append([]string(nil), args...), nil, 0.9
	}

	score := 0.9
	joined := strings.Join(args, " ")
	if len(args) == 1 && isPronoun(args[0]) {
		if strings.TrimSpace(ctx.LastEntity) == "" {
			return nil, &ClarifyQuestion{Prompt: "What does that refer to?"}, 0.4
		}
		joined = ctx.LastEntity
		score -= 0.08
	}
	pool, boost := entityPool(ctx, def.Canonical)
	entity, confidence, tie := resolveEntity(joined, pool, boost)
	if tie && len(entity) >= 2 {
		options := make([]Intent, 0, 2)
		for idx := 0; idx < 2; idx++ {
			options = append(options, Intent{
				Kind:       commandKind(def.Canonical),
				Verb:       def.Canonical,
				Args:       []string{entity[idx]},
				Confidence: confidence - float64(idx)*0.01,
			})
		}
		return nil, &ClarifyQuestion{Prompt: "Did you mean:", Options: options}, 0.5
	}
	if len(entity) == 0 {
		return nil, &ClarifyQuestion{Prompt: fmt.Sprintf("Nothing called %q to %s.", joined, def.Canonical)}, 0.4
	}
	return []string{entity[0]}, nil, minScore(score, confidence)
}

func expectsEntity(verb string) bool {
	switch verb {
	case "buy", "enable", "disable":
		return true
	default:
		return false
	}
}

func entityPool(ctx ParseContext, verb string) ([]string, []string) {
	switch verb {
	case "buy":
		return ctx.Items, ctx.Affordable
	case "enable", "disable":
		return ctx.Features, ctx.Unlocked
	}
	return nil, nil
}

// choiceIndex maps "1".."4" or "a".."d" to a zero-based option index.
func choiceIndex(token string) int {
	token = strings.TrimSpace(strings.ToLower(token))
	if n, err := strconv.Atoi(token); err == nil && n >= 1 && n <= 4 {
		return n - 1
	}
	if len(token) == 1 && token[0] >= 'a' && token[0] <= 'd' {
		return int(token[0] - 'a')
	}
	return -1
}

func modeAlias(arg string) string {
	switch {
	case containsWord(arg, "double"), containsWord(arg, "x2"), containsWord(arg, "2x"):
		return "double"
	case containsWord(arg, "normal"), containsWord(arg, "single"), containsWord(arg, "x1"):
		return "standard"
	}
	return arg
}

func inputAlias(arg string) string {
	switch {
	case containsAnyPhrase(arg, "multiple choice", "options", "buttons", "bubbles"):
		return "choice"
	case containsAnyPhrase(arg, "type", "typing", "number", "numbers", "keyboard"):
		return "numeric"
	}
	return arg
}

func resolveFixed(arg string, allowed []string, prompt string) ([]string, *ClarifyQuestion, float64) {
	m, confidence, tie := resolveEntity(arg, allowed, nil)
	if len(m) == 0 || tie {
		return nil, &ClarifyQuestion{Prompt: prompt}, 0.4
	}
	return []string{m[0]}, nil, confidence
}

// resolveEntity fuzzy matches token against candidates and returns the
// original (un-normalised) candidate strings.
func resolveEntity(token string, candidates []string, boost []string) ([]string, float64, bool) {
	n := normaliseInput(token)
	if n == "" {
		return nil, 0, false
	}
	originals := make(map[string]string, len(candidates))
	all := make([]string, 0, len(candidates))
	for _, c := range candidates {
		v := normaliseInput(c)
		if v == "" {
			continue
		}
		if _, seen := originals[v]; seen {
			continue
		}
		originals[v] = c
		all = append(all, v)
	}
	boosted := make([]string, 0, len(boost))
	for _, b := range boost {
		if v := normaliseInput(b); v != "" {
			boosted = append(boosted, v)
		}
	}
	matches, score, tie := bestMatches(n, all, boosted)
	for i, m := range matches {
		matches[i] = originals[m]
	}
	return matches, score, tie
}

func bestMatches(token string, all []string, boost []string) ([]string, float64, bool) {
	if len(all) == 0 {
		return nil, 0, false
	}
	type scored struct {
		val   string
		score float64
	}
	boostSet := make(map[string]bool, len(boost))
	for _, b := range boost {
		boostSet[b] = true
	}

	results := make([]scored, 0, len(all))
	for _, cand := range all {
		score := 0.0
		switch {
		case token == cand:
			score = 1.0
		case strings.HasPrefix(cand, token) && len(token) >= 2:
			score = 0.9
		case len(token) >= 3 && containsWord(cand, token):
			score = 0.86
		default:
			dist := levenshtein.ComputeDistance(token, cand)
			if dist > levenshteinLimit(len(cand)) {
				continue
			}
			score = 0.72 - (0.08 * float64(dist))
		}
		if boostSet[cand] {
			score += 0.08
		}
		results = append(results, scored{val: cand, score: clampScore(score)})
	}
	if len(results) == 0 {
		return nil, 0, false
	}
	sort.SliceStable(results, func(i, j int) bool {
		if results[i].score == results[j].score {
			return results[i].val < results[j].val
		}
		return results[i].score > results[j].score
	})

	best := results[0]
	tie := len(results) > 1 && (best.score-results[1].score) < 0.05 && results[1].score > 0.6
	if tie {
		return []string{best.val, results[1].val}, best.score, true
	}
	return []string{best.val}, best.score, false
}

func buildEntityOptions(ctx ParseContext, verb string, maxOptions int) []Intent {
	var pool []string
	switch verb {
	case "buy":
		pool = ctx.Affordable
	case "enable", "disable":
		pool = ctx.Unlocked
	case "mode":
		pool = scoringModes
	case "input":
		pool = inputModes
	}
	seen := map[string]bool{}
	options := make([]Intent, 0, maxOptions)
	for _, entity := range pool {
		n := normaliseInput(entity)
		if n == "" || seen[n] {
			continue
		}
		seen[n] = true
		options = append(options, Intent{
			Kind:       commandKind(verb),
			Verb:       verb,
			Args:       []string{entity},
			Confidence: 0.88,
		})
		if len(options) >= maxOptions {
			break
		}
	}
	return options
}

func inferFreeTextIntent(ctx ParseContext, raw string, normalised string) *Intent {
	n := normalised
	makeIntent := func(kind IntentKind, verb string, args []string, confidence float64) *Intent {
		return &Intent{
			Raw:        raw,
			Normalised: normalised,
			Kind:       kind,
			Verb:       verb,
			Args:       args,
			Confidence: clampScore(confidence),
		}
	}

	if containsAnyPhrase(n, "the answer is", "i think its", "i think it is", "it is", "it s") {
		tokens := tokenise(n)
		if last := tokens[len(tokens)-1]; looksNumeric(last) {
			return makeIntent(Answer, "answer", []string{last}, 0.86)
		}
	}
	if containsAnyPhrase(n, "what can i buy", "show me the store", "go shopping", "the shop") {
		return makeIntent(Query, "store", nil, 0.9)
	}
	if containsAnyPhrase(n, "how am i doing", "my stats", "my scores", "most missed", "what did i miss") {
		return makeIntent(Query, "stats", nil, 0.88)
	}
	if containsAnyPhrase(n, "how many coins", "how much money", "my coins", "my money") {
		return makeIntent(Query, "coins", nil, 0.9)
	}
	if containsAnyPhrase(n, "double or nothing", "double mode") {
		return makeIntent(Command, "mode", []string{"double"}, 0.86)
	}
	if containsAnyPhrase(n, "multiple choice") {
		return makeIntent(Command, "input", []string{"choice"}, 0.84)
	}
	if containsAnyPhrase(n, "let me type", "type answers", "type my answers", "numeric entry") {
		return makeIntent(Command, "input", []string{"numeric"}, 0.84)
	}
	if containsAnyPhrase(n, "one more", "another round", "go again", "again") {
		return makeIntent(Command, "again", nil, 0.84)
	}

	// "i want the kite" / "can i have a pony" fallback.
	for _, lead := range []string{"i want to buy", "i want the", "i want a", "i want", "can i have a", "can i have", "can i get a", "can i get"} {
		if !strings.HasPrefix(n, lead+" ") {
			continue
		}
		entity := strings.TrimSpace(strings.TrimPrefix(n, lead+" "))
		if entity == "" {
			break
		}
		m, confidence, tie := resolveEntity(entity, ctx.Items, ctx.Affordable)
		if tie && len(m) >= 2 {
			return &Intent{
				Raw:        raw,
				Normalised: normalised,
				Kind:       Command,
				Verb:       "buy",
				Confidence: 0.52,
				Clarify: &ClarifyQuestion{
					Prompt: "Did you mean:",
					Options: []Intent{
						{Kind: Command, Verb: "buy", Args: []string{m[0]}, Confidence: confidence},
						{Kind: Command, Verb: "buy", Args: []string{m[1]}, Confidence: confidence - 0.01},
					},
				},
			}
		}
		if len(m) == 1 {
			return makeIntent(Command, "buy", []string{m[0]}, confidence)
		}
		break
	}

	return nil
}

func containsAnyPhrase(value string, phrases ...string) bool {
	for _, phrase := range phrases {
		if containsPhrase(value, phrase) {
			return true
		}
	}
	return false
}

func containsPhrase(value, phrase string) bool {
	p := normaliseInput(phrase)
	if p == "" {
		return false
	}
	return strings.Contains(" "+value+" ", " "+p+" ")
}

func containsWord(value, word string) bool {
	w := normaliseInput(word)
	if w == "" {
		return false
	}
	return strings.Contains(" "+value+" ", " "+w+" ")
}

func minScore(a, b float64) float64 {
	if b < a {
		return b
	}
	return a
}

func clampScore(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

func IntentToCommandString(intent Intent) string {
	verb := normaliseInput(intent.Verb)
	if verb == "" {
		return ""
	}
	args := make([]string, 0, len(intent.Args))
	for _, arg := range intent.Args {
		n := normaliseInput(arg)
		if n != "" {
			args = append(args, n)
		}
	}
	if len(args) == 0 {
		return verb
	}
	return verb + " " + strings.Join(args, " ")
}
