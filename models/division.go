package models

import "time"

// DivisionConfig хранит настройки одного дивизиона турнира.
type DivisionConfig struct {
	GuildID              int64     `json:"guild_id"`
	DivisionID           string    `json:"division_id"`
	DivisionName         string    `json:"division_name"`
	TeamSize             int       `json:"team_size"`
	AllowedTownHalls     []int     `json:"allowed_town_halls"`
	MaxTeams             int       `json:"max_teams"`
	RegistrationOpensAt  time.Time `json:"registration_opens_at"`
	RegistrationClosesAt time.Time `json:"registration_closes_at"`
	UpdatedBy            int64     `json:"updated_by"`
	UpdatedAt            time.Time `json:"updated_at"`
}

// RegistrationOpen reports whether the registration window contains now.
func (c *DivisionConfig) RegistrationOpen(now time.Time) bool {
	return !now.Before(c.RegistrationOpensAt) && now.Before(c.RegistrationClosesAt)
}

// TownHallAllowed reports whether the level is in the allowed set. An empty
// set allows everything.
func (c *DivisionConfig) TownHallAllowed(level int) bool {
	if len(c.AllowedTownHalls) == 0 {
		return true
	}
	for _, allowed := range c.AllowedTownHalls {
		if allowed == level {
			return true
		}
	}
	return false
}
