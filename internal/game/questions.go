package game

import (
	"fmt"
	"math/rand/v2"
	"slices"
)

type Operation int

const (
	OpMultiply Operation = iota
	OpDivide
)

const (
	DefaultQuestionCount = 20
	MaxMultiplier        = 12
	MaxAnswer            = MaxMultiplier * MaxMultiplier
	OptionCount          = 4

	distractorSpread = 10
)

// DefaultBaseNumbers are the facts being drilled.
var DefaultBaseNumbers = []int{7, 8, 9}

// Question is one generated problem. Both framings of a fact keep the same
// base and multiplier, so the answer can always be recomputed.
type Question struct {
	Prompt        string
	CorrectAnswer int
	Base          int
	Multiplier    int
	Op            Operation
}

// Operands returns the two numbers shown in the prompt.
func (q Question) Operands() (int, int) {
	if q.Op == OpDivide {
		return q.Base * q.Multiplier, q.Base
	}
	return q.Base, q.Multiplier
}

// Evaluate recomputes the answer from the displayed operands.
func (q Question) Evaluate() int {
	a, b := q.Operands()
	if q.Op == OpDivide {
		if b == 0 {
			return 0
		}
		return a / b
	}
	return a * b
}

type QuestionEngine struct {
	rng   *rand.Rand
	bases []int
}

func NewQuestionEngine(rng *rand.Rand, bases []int) (*QuestionEngine, error) {
	if rng == nil {
		rng = NewRNG(0)
	}
	if len(bases) == 0 {
		bases = DefaultBaseNumbers
	}
	for _, b := range bases {
		if b < 1 || b > MaxMultiplier {
			return nil, fmt.Errorf("base number %d outside 1..%d", b, MaxMultiplier)
		}
	}
	return &QuestionEngine{rng: rng, bases: slices.Clone(bases)}, nil
}

func (e *QuestionEngine) GenerateSession(n int) []Question {
	if n < 1 {
		n = DefaultQuestionCount
	}
	out := make([]Question, 0, n)
	for i := 0; i < n; i++ {
		out = append(out, e.next())
	}
	return out
}

func (e *QuestionEngine) next() Question {
	base := e.bases[e.rng.IntN(len(e.bases))]
	m := e.rng.IntN(MaxMultiplier + 1)

	if m != 0 && e.rng.Float64() < 0.5 {
		return Question{
			Prompt:        fmt.Sprintf("%d ÷ %d = ?", base*m, base),
			CorrectAnswer: m,
			Base:          base,
			Multiplier:    m,
			Op:            OpDivide,
		}
	}
	return Question{
		Prompt:        fmt.Sprintf("%d × %d = ?", base, m),
		CorrectAnswer: base * m,
		Base:          base,
		Multiplier:    m,
		Op:            OpMultiply,
	}
}

// Options returns the correct answer plus three nearby wrong answers in
// random order. Wrong answers are always in 1..MaxAnswer.
func (e *QuestionEngine) Options(correct int) []int {
	out := make([]int, 0, OptionCount)
	out = append(out, correct)
	for len(out) < OptionCount {
		offset := e.rng.IntN(2*distractorSpread+1) - distractorSpread
		if offset == 0 {
			continue
		}
		candidate := correct + offset
		if candidate < 1 || candidate > MaxAnswer || slices.Contains(out, candidate) {
			continue
		}
		out = append(out, candidate)
	}
	e.shuffle(out)
	return out
}

func (e *QuestionEngine) shuffle(values []int) {
	for i := len(values) - 1; i > 0; i-- {
		j := e.rng.IntN(i + 1)
		values[i], values[j] = values[j], values[i]
	}
}
