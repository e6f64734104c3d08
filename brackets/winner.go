package brackets

import "github.com/Dosada05/bracket-service/models"

// SetMatchWinner записывает победителя матча и прогоняет распространение,
// так что решённые вниз по сетке слоты гидратируются в том же вызове.
//
// Вся валидация выполняется до любой мутации: отклонённый вызов оставляет
// состояние байт-в-байт неизменным. Повторная запись того же победителя —
// успешный no-op, что делает безопасными ретраи при доставке команд
// at-least-once; попытка сменить уже записанного победителя отклоняется с
// ErrWinnerConflict.
func SetMatchWinner(state *models.BracketState, matchID string, winnerSlot int) error {
	if winnerSlot != 0 && winnerSlot != 1 {
		return ErrInvalidSlot
	}
	match := state.FindMatch(matchID)
	if match == nil {
		return ErrMatchNotFound
	}
	slot := match.Slot(winnerSlot)
	if !slot.Resolved() {
		return ErrCompetitorNotReady
	}
	if match.WinnerIndex != nil {
		if *match.WinnerIndex == winnerSlot {
			return nil
		}
		return ErrWinnerConflict
	}
	recordWinner(match, winnerSlot)
	return autoResolve(state)
}
