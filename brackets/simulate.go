package brackets

import "github.com/Dosada05/bracket-service/models"

// missingSeedRank подставляется вместо отсутствующего сида при сравнении в
// симуляции: унаследованный без сида слот проигрывает любому конкретному
// сиду. Значение наблюдаемо в снимках, менять нельзя.
const missingSeedRank = 999

// Snapshot — неизменяемая копия состояния сетки в момент симуляции.
type Snapshot struct {
	Label string               `json:"label"`
	State *models.BracketState `json:"state"`
}

// Simulate доводит копию сетки до конца без внешнего ввода: при двух
// готовых сторонах побеждает меньший сид, при одной — она и проходит.
// Исходное состояние не мутируется. Возвращает финальное состояние и
// последовательность снимков: "Initial Bracket" плюс по одному после
// каждого раунда.
func Simulate(state *models.BracketState) (*models.BracketState, []Snapshot, error) {
	working := state.Clone()
	if err := autoResolve(working); err != nil {
		return nil, nil, err
	}

	snapshots := make([]Snapshot, 0, len(working.Rounds)+1)
	snapshots = append(snapshots, Snapshot{Label: "Initial Bracket", State: working.Clone()})

	for roundIdx := range working.Rounds {
		for matchIdx := range working.Rounds[roundIdx].Matches {
			match := &working.Rounds[roundIdx].Matches[matchIdx]
			if match.Decided() {
				continue
			}
			if err := autoResolve(working); err != nil {
				return nil, nil, err
			}
			oneReady := match.CompetitorOne.Resolved()
			twoReady := match.CompetitorTwo.Resolved()
			if !oneReady && !twoReady {
				continue
			}
			winnerIdx := 0
			switch {
			case oneReady && !twoReady:
				winnerIdx = 0
			case twoReady && !oneReady:
				winnerIdx = 1
			default:
				if seedRank(&match.CompetitorTwo) < seedRank(&match.CompetitorOne) {
					winnerIdx = 1
				}
			}
			if err := SetMatchWinner(working, match.MatchID, winnerIdx); err != nil {
				return nil, nil, err
			}
		}
		snapshots = append(snapshots, Snapshot{
			Label: "After " + working.Rounds[roundIdx].Name,
			State: working.Clone(),
		})
	}
	return working, snapshots, nil
}

func seedRank(slot *models.BracketSlot) int {
	if slot.Seed == nil {
		return missingSeedRank
	}
	return *slot.Seed
}
