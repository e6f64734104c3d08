package brackets

import (
	"fmt"
	"math/bits"
	"strconv"
)

// NextPowerOfTwo возвращает ближайшую степень двойки >= value.
func NextPowerOfTwo(value int) (int, error) {
	if value <= 0 {
		return 0, fmt.Errorf("value must be positive, got %d", value)
	}
	if value&(value-1) == 0 {
		return value, nil
	}
	return 1 << bits.Len(uint(value)), nil
}

// SeedOrder возвращает порядок сидов для сетки размера slots (степень
// двойки): текущий порядок рекурсивно переслаивается со своим зеркалом
// (seed, slots+1-seed), так что сиды 1 и 2 могут встретиться только в
// финале, сиды 1-4 — не раньше полуфиналов, и так далее.
func SeedOrder(slots int) ([]int, error) {
	if slots <= 0 {
		return nil, fmt.Errorf("bracket size must be positive, got %d", slots)
	}
	if slots&(slots-1) != 0 {
		return nil, fmt.Errorf("bracket size must be a power of two, got %d", slots)
	}
	order := []int{1}
	for size := 2; size <= slots; size *= 2 {
		expanded := make([]int, 0, size)
		for _, seed := range order {
			expanded = append(expanded, seed, size+1-seed)
		}
		order = expanded
	}
	return order, nil
}

// roundName возвращает человекочитаемое имя раунда по его удалённости от
// финала: Final, Semifinals, Quarterfinals, иначе "Round of N".
func roundName(roundIndex, totalRounds int) string {
	remaining := totalRounds - roundIndex
	switch remaining {
	case 1:
		return "Final"
	case 2:
		return "Semifinals"
	case 3:
		return "Quarterfinals"
	}
	return "Round of " + strconv.Itoa(1<<remaining)
}

// matchID формирует отображаемый идентификатор матча: R<раунд>M<номер>,
// оба значения с единицы.
func matchID(roundIndex, matchIndex int) string {
	return fmt.Sprintf("R%dM%d", roundIndex+1, matchIndex+1)
}
