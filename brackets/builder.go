package brackets

import (
	"math/bits"
	"sort"
	"time"

	"github.com/Dosada05/bracket-service/models"
)

// CreateBracket строит посеянную сетку single elimination из списка
// регистраций дивизиона. Количество слотов дополняется до степени двойки;
// лишние слоты становятся BYE, и такие матчи решаются автоматически ещё до
// возврата состояния.
func CreateBracket(guildID int64, divisionID string, registrations []models.TeamRegistration) (*models.BracketState, error) {
	if len(registrations) < 2 {
		return nil, ErrInsufficientEntrants
	}

	slots, err := NextPowerOfTwo(len(registrations))
	if err != nil {
		return nil, err
	}
	seedOrder, err := SeedOrder(slots)
	if err != nil {
		return nil, err
	}

	// Канонический порядок посева: время регистрации, затем id капитана.
	ordered := make([]models.TeamRegistration, len(registrations))
	copy(ordered, registrations)
	sort.SliceStable(ordered, func(i, j int) bool {
		if !ordered[i].RegisteredAt.Equal(ordered[j].RegisteredAt) {
			return ordered[i].RegisteredAt.Before(ordered[j].RegisteredAt)
		}
		return ordered[i].UserID < ordered[j].UserID
	})

	totalRounds := bits.Len(uint(slots)) - 1

	firstRoundSlots := make([]models.BracketSlot, 0, slots)
	for _, seed := range seedOrder {
		if seed <= len(ordered) {
			firstRoundSlots = append(firstRoundSlots, slotFromRegistration(&ordered[seed-1], seed))
		} else {
			firstRoundSlots = append(firstRoundSlots, models.BracketSlot{Label: "BYE"})
		}
	}

	rounds := make([]models.BracketRound, 0, totalRounds)

	firstRound := models.BracketRound{Name: roundName(0, totalRounds)}
	for i := 0; i < len(firstRoundSlots); i += 2 {
		firstRound.Matches = append(firstRound.Matches, models.BracketMatch{
			MatchID:       matchID(0, i/2),
			RoundIndex:    0,
			CompetitorOne: firstRoundSlots[i],
			CompetitorTwo: firstRoundSlots[i+1],
		})
	}
	rounds = append(rounds, firstRound)

	for roundIdx := 1; roundIdx < totalRounds; roundIdx++ {
		previous := rounds[roundIdx-1].Matches
		round := models.BracketRound{Name: roundName(roundIdx, totalRounds)}
		for i := 0; i < len(previous); i += 2 {
			round.Matches = append(round.Matches, models.BracketMatch{
				MatchID:       matchID(roundIdx, i/2),
				RoundIndex:    roundIdx,
				CompetitorOne: pendingSlot(roundIdx-1, i, previous[i].MatchID),
				CompetitorTwo: pendingSlot(roundIdx-1, i+1, previous[i+1].MatchID),
			})
		}
		rounds = append(rounds, round)
	}

	state := &models.BracketState{
		GuildID:    guildID,
		DivisionID: divisionID,
		CreatedAt:  time.Now().UTC(),
		Rounds:     rounds,
	}
	if err := autoResolve(state); err != nil {
		return nil, err
	}
	return state, nil
}

func slotFromRegistration(registration *models.TeamRegistration, seed int) models.BracketSlot {
	seedCopy := seed
	competitorID := registration.UserID
	return models.BracketSlot{
		Seed:         &seedCopy,
		CompetitorID: &competitorID,
		Label:        registration.TeamLabel(),
	}
}

func pendingSlot(sourceRound, sourceMatch int, sourceMatchID string) models.BracketSlot {
	id := sourceMatchID
	return models.BracketSlot{
		Label:         "Winner of " + sourceMatchID,
		SourceMatchID: &id,
		Source:        &models.SlotRef{Round: sourceRound, Match: sourceMatch},
	}
}
