package brackets

import "github.com/Dosada05/bracket-service/models"

// autoResolve доводит состояние сетки до фиксированной точки двумя
// правилами: гидратация слотов из решённых исходных матчей и автопроход при
// BYE. Каждый проход может только переводить слоты из нерешённых в
// решённые, поэтому фиксированная точка достигается не более чем за
// len(rounds)+1 проходов; превышение лимита означает испорченные ссылки.
func autoResolve(state *models.BracketState) error {
	maxPasses := len(state.Rounds) + 1
	for pass := 0; ; pass++ {
		changed := hydrateSlots(state)
		if advanceByes(state) {
			changed = true
		}
		if !changed {
			return nil
		}
		if pass >= maxPasses {
			return ErrPropagationStalled
		}
	}
}

// hydrateSlots копирует победителя решённого матча во все слоты, которые на
// него ссылаются. Ссылки структурные, разрешаются за O(1).
func hydrateSlots(state *models.BracketState) bool {
	updated := false
	state.EachMatch(func(match *models.BracketMatch) {
		for _, slot := range []*models.BracketSlot{&match.CompetitorOne, &match.CompetitorTwo} {
			if slot.Resolved() || slot.Source == nil {
				continue
			}
			source := state.MatchAt(*slot.Source)
			if source == nil {
				continue
			}
			winner := source.WinnerSlot()
			if winner == nil || !winner.Resolved() {
				continue
			}
			slot.AdoptFrom(winner)
			updated = true
		}
	})
	return updated
}

// advanceByes автоматически записывает победителя там, где ровно одна
// сторона матча решена, а вторая — настоящий BYE (никогда не заполнится).
func advanceByes(state *models.BracketState) bool {
	assigned := false
	state.EachMatch(func(match *models.BracketMatch) {
		if match.Decided() {
			return
		}
		oneReady := match.CompetitorOne.Resolved()
		twoReady := match.CompetitorTwo.Resolved()
		switch {
		case oneReady && !twoReady && match.CompetitorTwo.IsBye():
			recordWinner(match, 0)
			assigned = true
		case twoReady && !oneReady && match.CompetitorOne.IsBye():
			recordWinner(match, 1)
			assigned = true
		}
	})
	return assigned
}

// recordWinner ставит индекс победителя без валидации; вызывающий код
// обязан проверить слот заранее.
func recordWinner(match *models.BracketMatch, winnerIndex int) {
	idx := winnerIndex
	match.WinnerIndex = &idx
}
