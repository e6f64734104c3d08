package brackets

import (
	"strings"

	"github.com/Dosada05/bracket-service/models"
)

// Render строит текстовое представление сетки: имя раунда, строка матча
// "[RxMy] A vs B", строка победителя и, если финал решён, завершающая
// строка Champion.
//
// В режиме shrinkToActive вывод начинается с первого раунда, где остались
// нерешённые матчи (или с последнего, если нерешённых нет), чтобы почти
// завершённая сетка не повторяла давно отыгранные раунды.
func Render(state *models.BracketState, shrinkToActive bool) string {
	startIndex := 0
	if shrinkToActive && len(state.Rounds) > 0 {
		startIndex = len(state.Rounds) - 1
		for idx := range state.Rounds {
			undecided := false
			for j := range state.Rounds[idx].Matches {
				if !state.Rounds[idx].Matches[j].Decided() {
					undecided = true
					break
				}
			}
			if undecided {
				startIndex = idx
				break
			}
		}
	}

	var lines []string
	for _, round := range state.Rounds[startIndex:] {
		lines = append(lines, round.Name)
		for i := range round.Matches {
			match := &round.Matches[i]
			lines = append(lines, "  ["+match.MatchID+"] "+match.CompetitorOne.Display()+" vs "+match.CompetitorTwo.Display())
			if winner := match.WinnerSlot(); winner != nil && winner.Resolved() {
				lines = append(lines, "    -> Winner: "+winner.Display())
			} else {
				lines = append(lines, "    -> Winner: TBD")
			}
		}
		lines = append(lines, "")
	}
	if len(lines) > 0 && lines[len(lines)-1] == "" {
		lines = lines[:len(lines)-1]
	}

	if final := state.FinalMatch(); final != nil {
		if winner := final.WinnerSlot(); winner != nil && winner.Resolved() {
			lines = append(lines, "Champion: "+winner.Display())
		}
	}

	for i, line := range lines {
		lines[i] = strings.TrimRight(line, " ")
	}
	return strings.Join(lines, "\n")
}
