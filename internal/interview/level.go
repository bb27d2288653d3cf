package interview

// Level bounds and interview length.
const (
	MinLevel     = 1
	MaxLevel     = 10
	DefaultLevel = 5
	MaxQuestions = 10
)

// LevelDescription is the coarse band a numeric level falls into.
type LevelDescription string

const (
	Beginner     LevelDescription = "Beginner"
	Intermediate LevelDescription = "Intermediate"
	Advanced     LevelDescription = "Advanced"
)

// Describe maps a numeric level to its band: below 5 is Beginner, below 8
// Intermediate, anything else Advanced.
func Describe(level int) LevelDescription {
	switch {
	case level < 5:
		return Beginner
	case level < 8:
		return Intermediate
	default:
		return Advanced
	}
}

// ClampLevel forces level into [MinLevel, MaxLevel].
func ClampLevel(level int) int {
	return min(max(level, MinLevel), MaxLevel)
}

// AdjustLevel moves one step up after a correct answer and one step down
// after an incorrect one, never leaving [MinLevel, MaxLevel].
func AdjustLevel(level int, correct bool) int {
	if correct {
		return ClampLevel(level + 1)
	}
	return ClampLevel(level - 1)
}
