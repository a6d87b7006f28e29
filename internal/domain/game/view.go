package game

import "github.com/aliskhannn/guess-the-flag-bot/internal/domain/entities"

// Flags derives the presentation state of the flags on screen.
func Flags(s entities.GameSession) []entities.FlagView {
	choices := s.ActiveChoices()
	views := make([]entities.FlagView, 0, len(choices))

	for i, c := range choices {
		v := entities.FlagView{
			Index:   i,
			Country: c,
			Label:   c.Label(),
		}

		if fb := s.Feedback; fb != nil {
			v.Tapped = fb.TappedIndex == i
			switch {
			case fb.Correct && v.Tapped:
				v.Effect = entities.EffectSpin
			case !fb.Correct && !v.Tapped:
				v.Effect = entities.EffectFaded
			}
		}

		views = append(views, v)
	}

	return views
}
