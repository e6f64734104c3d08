package brackets

import (
	"sort"
	"strings"

	"github.com/Dosada05/bracket-service/models"
)

// CaptainLines возвращает по строке на каждую различимую команду в сетке,
// связывая её отображение с именем капитана из регистрации. Порядок: по
// сиду (слоты без сида после всех посеянных), затем по имени. Сетку не
// мутирует.
func CaptainLines(state *models.BracketState, registrations []models.TeamRegistration) []string {
	captains := make(map[int64]string, len(registrations))
	for i := range registrations {
		captains[registrations[i].UserID] = registrations[i].UserName
	}

	// Для каждой команды выбираем слот с известным сидом, если такой есть:
	// гидратированные копии выше по сетке сид сохраняют, но исходный слот
	// первого раунда надёжнее.
	bestSlot := make(map[int64]*models.BracketSlot)
	state.EachMatch(func(match *models.BracketMatch) {
		for _, slot := range []*models.BracketSlot{&match.CompetitorOne, &match.CompetitorTwo} {
			if slot.CompetitorID == nil {
				continue
			}
			existing, ok := bestSlot[*slot.CompetitorID]
			if !ok || (existing.Seed == nil && slot.Seed != nil) {
				bestSlot[*slot.CompetitorID] = slot
			}
		}
	})

	slots := make([]*models.BracketSlot, 0, len(bestSlot))
	for _, slot := range bestSlot {
		slots = append(slots, slot)
	}
	sort.Slice(slots, func(i, j int) bool {
		seedI, seedJ := captainSeedRank(slots[i]), captainSeedRank(slots[j])
		if seedI != seedJ {
			return seedI < seedJ
		}
		return strings.ToLower(slots[i].Label) < strings.ToLower(slots[j].Label)
	})

	lines := make([]string, 0, len(slots))
	for _, slot := range slots {
		captain := "Unknown captain"
		if name, ok := captains[*slot.CompetitorID]; ok {
			captain = name
		}
		lines = append(lines, slot.Display()+" — Captain: "+captain)
	}
	return lines
}

func captainSeedRank(slot *models.BracketSlot) int {
	if slot.Seed == nil {
		return 1_000_000
	}
	return *slot.Seed
}
