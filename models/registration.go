package models

import (
	"strings"
	"time"
)

// PlayerEntry — один игрок в составе зарегистрированной команды.
type PlayerEntry struct {
	Name     string  `json:"name"`
	Tag      string  `json:"tag"`
	TownHall int     `json:"town_hall"`
	ClanName *string `json:"clan_name,omitempty"`
	ClanTag  *string `json:"clan_tag,omitempty"`
}

// TeamRegistration — заявка капитана на участие в дивизионе.
// UserID капитана служит идентификатором команды в сетке.
type TeamRegistration struct {
	GuildID      int64         `json:"guild_id"`
	DivisionID   string        `json:"division_id"`
	UserID       int64         `json:"user_id"`
	UserName     string        `json:"user_name"`
	TeamName     *string       `json:"team_name,omitempty"`
	Players      []PlayerEntry `json:"players"`
	RegisteredAt time.Time     `json:"registered_at"`
}

// TeamLabel returns the display name for the team. A provided team name
// wins; a provided-but-blank one means the captain chose no name, so the
// placeholder is used. The captain's own name fills in only when no team
// name was provided at all. Never empty.
func (r *TeamRegistration) TeamLabel() string {
	if r.TeamName != nil {
		if label := strings.TrimSpace(*r.TeamName); label != "" {
			return label
		}
		return "Unnamed Team"
	}
	if label := strings.TrimSpace(r.UserName); label != "" {
		return label
	}
	return "Unnamed Team"
}
