package game

type ResultTier int

const (
	ResultKeepPracticing ResultTier = iota
	ResultGoodJob
	ResultAwesome
	ResultPerfect
)

func (r ResultTier) String() string {
	switch r {
	case ResultPerfect:
		return "Perfect"
	case ResultAwesome:
		return "Awesome"
	case ResultGoodJob:
		return "Good Job"
	default:
		return "Keep Practicing"
	}
}

func (r ResultTier) Banner() string {
	switch r {
	case ResultPerfect:
		return "🌟 PERFECT! 🌟"
	case ResultAwesome:
		return "🎉 Awesome! 🎉"
	case ResultGoodJob:
		return "👍 Good Job! 👍"
	default:
		return "💪 Keep Practicing! 💪"
	}
}

// ClassifyResult grades a round on questions answered correctly, not on
// score, so double mode cannot inflate the grade.
func ClassifyResult(correct, total int) ResultTier {
	if total <= 0 {
		return ResultKeepPracticing
	}
	switch {
	case correct >= total:
		return ResultPerfect
	case correct*4 >= total*3:
		return ResultAwesome
	case correct*2 >= total:
		return ResultGoodJob
	default:
		return ResultKeepPracticing
	}
}
