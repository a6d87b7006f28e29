package entities

// Effect is the visual treatment of a flag button after an answer.
type Effect int

const (
	EffectNone  Effect = iota
	EffectSpin         // the tapped flag when the answer was right
	EffectFaded        // the untapped flags when the answer was wrong
)

// FlagView is the presentation state of one flag button.
type FlagView struct {
	Index   int
	Country Country
	Label   string
	Effect  Effect
	Tapped  bool
}
