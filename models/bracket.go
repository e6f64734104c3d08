package models

import (
	"strconv"
	"time"
)

// SlotRef указывает на матч предыдущего раунда структурно, без поиска по id.
type SlotRef struct {
	Round int `json:"round"`
	Match int `json:"match"`
}

// BracketSlot представляет одну сторону матча.
// Слот либо засеян напрямую из регистрации (Seed установлен), либо ждёт
// победителя другого матча (Source установлен), либо является пустым BYE.
type BracketSlot struct {
	Seed          *int     `json:"seed,omitempty"`
	CompetitorID  *int64   `json:"competitor_id,omitempty"`
	Label         string   `json:"label"`
	SourceMatchID *string  `json:"source_match_id,omitempty"`
	Source        *SlotRef `json:"source,omitempty"`
}

// Resolved reports whether a real competitor occupies the slot.
func (s *BracketSlot) Resolved() bool {
	return s.CompetitorID != nil
}

// IsBye reports whether the slot is permanently empty: no competitor and no
// source match that could ever fill it.
func (s *BracketSlot) IsBye() bool {
	return s.CompetitorID == nil && s.Source == nil
}

// Display возвращает строку для отображения слота в сетке.
func (s *BracketSlot) Display() string {
	if s.CompetitorID == nil {
		return s.Label
	}
	if s.Seed != nil {
		return "#" + strconv.Itoa(*s.Seed) + " " + s.Label
	}
	return s.Label
}

// AdoptFrom copies the resolved identity of another slot into this one,
// keeping Source intact so the origin of the slot stays visible.
func (s *BracketSlot) AdoptFrom(other *BracketSlot) {
	s.Seed = cloneIntPtr(other.Seed)
	s.CompetitorID = cloneInt64Ptr(other.CompetitorID)
	s.Label = other.Label
}

func (s *BracketSlot) clone() BracketSlot {
	out := BracketSlot{
		Seed:         cloneIntPtr(s.Seed),
		CompetitorID: cloneInt64Ptr(s.CompetitorID),
		Label:        s.Label,
	}
	if s.SourceMatchID != nil {
		v := *s.SourceMatchID
		out.SourceMatchID = &v
	}
	if s.Source != nil {
		v := *s.Source
		out.Source = &v
	}
	return out
}

// BracketMatch — один матч сетки. WinnerIndex выбирает одну из двух сторон и,
// однажды установленный, может быть переустановлен только в то же значение.
type BracketMatch struct {
	MatchID       string      `json:"match_id"`
	RoundIndex    int         `json:"round_index"`
	CompetitorOne BracketSlot `json:"competitor_one"`
	CompetitorTwo BracketSlot `json:"competitor_two"`
	WinnerIndex   *int        `json:"winner_index,omitempty"`
}

// Slot returns the slot at index 0 or 1, nil otherwise.
func (m *BracketMatch) Slot(index int) *BracketSlot {
	switch index {
	case 0:
		return &m.CompetitorOne
	case 1:
		return &m.CompetitorTwo
	}
	return nil
}

// WinnerSlot returns the recorded winner's slot, or nil while undecided.
func (m *BracketMatch) WinnerSlot() *BracketSlot {
	if m.WinnerIndex == nil {
		return nil
	}
	return m.Slot(*m.WinnerIndex)
}

// Decided reports whether the match has a winner recorded.
func (m *BracketMatch) Decided() bool {
	return m.WinnerIndex != nil
}

func (m *BracketMatch) clone() BracketMatch {
	out := BracketMatch{
		MatchID:       m.MatchID,
		RoundIndex:    m.RoundIndex,
		CompetitorOne: m.CompetitorOne.clone(),
		CompetitorTwo: m.CompetitorTwo.clone(),
	}
	if m.WinnerIndex != nil {
		v := *m.WinnerIndex
		out.WinnerIndex = &v
	}
	return out
}

// BracketRound — упорядоченный список матчей одного раунда.
type BracketRound struct {
	Name    string         `json:"name"`
	Matches []BracketMatch `json:"matches"`
}

// BracketState владеет всей сеткой дивизиона. Все мутации выполняются
// движком brackets поверх одного экземпляра; внешних ссылок внутрь нет.
type BracketState struct {
	GuildID    int64          `json:"guild_id"`
	DivisionID string         `json:"division_id"`
	CreatedAt  time.Time      `json:"created_at"`
	Rounds     []BracketRound `json:"rounds"`
}

// Clone выполняет полную структурную копию состояния. Используется
// симуляцией для снимков и для безопасного чтения параллельно с мутатором.
func (b *BracketState) Clone() *BracketState {
	out := &BracketState{
		GuildID:    b.GuildID,
		DivisionID: b.DivisionID,
		CreatedAt:  b.CreatedAt,
		Rounds:     make([]BracketRound, len(b.Rounds)),
	}
	for i, round := range b.Rounds {
		matches := make([]BracketMatch, len(round.Matches))
		for j := range round.Matches {
			matches[j] = round.Matches[j].clone()
		}
		out.Rounds[i] = BracketRound{Name: round.Name, Matches: matches}
	}
	return out
}

// MatchAt resolves a structural reference in O(1). Returns nil for
// out-of-range references.
func (b *BracketState) MatchAt(ref SlotRef) *BracketMatch {
	if ref.Round < 0 || ref.Round >= len(b.Rounds) {
		return nil
	}
	round := &b.Rounds[ref.Round]
	if ref.Match < 0 || ref.Match >= len(round.Matches) {
		return nil
	}
	return &round.Matches[ref.Match]
}

// FindMatch ищет матч по человекочитаемому id (только для внешних ссылок;
// внутренние связи используют SlotRef).
func (b *BracketState) FindMatch(matchID string) *BracketMatch {
	for i := range b.Rounds {
		for j := range b.Rounds[i].Matches {
			if b.Rounds[i].Matches[j].MatchID == matchID {
				return &b.Rounds[i].Matches[j]
			}
		}
	}
	return nil
}

// EachMatch вызывает fn для каждого матча в порядке раундов.
func (b *BracketState) EachMatch(fn func(match *BracketMatch)) {
	for i := range b.Rounds {
		for j := range b.Rounds[i].Matches {
			fn(&b.Rounds[i].Matches[j])
		}
	}
}

// FinalMatch returns the last match of the last round, or nil for an empty
// bracket.
func (b *BracketState) FinalMatch() *BracketMatch {
	if len(b.Rounds) == 0 {
		return nil
	}
	last := &b.Rounds[len(b.Rounds)-1]
	if len(last.Matches) == 0 {
		return nil
	}
	return &last.Matches[len(last.Matches)-1]
}

func cloneIntPtr(v *int) *int {
	if v == nil {
		return nil
	}
	out := *v
	return &out
}

func cloneInt64Ptr(v *int64) *int64 {
	if v == nil {
		return nil
	}
	out := *v
	return &out
}
