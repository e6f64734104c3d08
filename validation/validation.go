package validation

import (
	"errors"
	"fmt"
	"regexp"
	"sort"
	"strconv"
	"strings"
)

var (
	ErrEmptyPlayerTag     = errors.New("player tag cannot be empty")
	ErrInvalidPlayerTag   = errors.New("player tag must contain only letters and digits after '#'")
	ErrDuplicatePlayerTag = errors.New("duplicate player tag provided")
	ErrNoPlayerTags       = errors.New("at least one player tag is required")
	ErrNoTownHallLevels   = errors.New("at least one town hall level must be provided")
	ErrTeamSizeTooSmall   = errors.New("team size must be at least 5 players")
	ErrTeamSizeIncrement  = errors.New("team size must be in increments of 5")
	ErrTeamSizeTooLarge   = errors.New("team size above 50 players is not supported")
	ErrMaxTeamsTooSmall   = errors.New("maximum teams must be at least 2")
	ErrMaxTeamsIncrement  = errors.New("maximum teams must be in increments of 2")
	ErrMaxTeamsTooLarge   = errors.New("maximum teams above 200 are not supported")
)

var (
	tagPattern   = regexp.MustCompile(`^#[A-Z0-9]+$`)
	splitPattern = regexp.MustCompile(`[\s,]+`)
)

// NormalizePlayerTag приводит тег игрока к каноническому виду: верхний
// регистр, ведущий '#', только допустимые символы.
func NormalizePlayerTag(tag string) (string, error) {
	tag = strings.ToUpper(strings.TrimSpace(tag))
	if tag == "" {
		return "", ErrEmptyPlayerTag
	}
	if !strings.HasPrefix(tag, "#") {
		tag = "#" + tag
	}
	if !tagPattern.MatchString(tag) {
		return "", fmt.Errorf("%w: %s", ErrInvalidPlayerTag, tag)
	}
	return tag, nil
}

// ParsePlayerTags разбирает строку тегов, разделённых пробелами или
// запятыми. Дубликаты считаются ошибкой ввода, а не молча схлопываются.
func ParsePlayerTags(raw string) ([]string, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, ErrNoPlayerTags
	}
	parts := splitPattern.Split(raw, -1)
	normalized := make([]string, 0, len(parts))
	seen := make(map[string]struct{}, len(parts))
	for _, part := range parts {
		if part == "" {
			continue
		}
		tag, err := NormalizePlayerTag(part)
		if err != nil {
			return nil, err
		}
		if _, dup := seen[tag]; dup {
			return nil, fmt.Errorf("%w: %s", ErrDuplicatePlayerTag, tag)
		}
		seen[tag] = struct{}{}
		normalized = append(normalized, tag)
	}
	if len(normalized) == 0 {
		return nil, ErrNoPlayerTags
	}
	return normalized, nil
}

// ParseTownHallLevels разбирает список уровней ратуши (1-25),
// возвращает отсортированный список без дубликатов.
func ParseTownHallLevels(raw string) ([]int, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, ErrNoTownHallLevels
	}
	parts := splitPattern.Split(raw, -1)
	levels := make(map[int]struct{})
	for _, part := range parts {
		if part == "" {
			continue
		}
		level, err := strconv.Atoi(part)
		if err != nil {
			return nil, fmt.Errorf("town hall level must be a number: %s", part)
		}
		if level < 1 || level > 25 {
			return nil, fmt.Errorf("town hall level %d is outside supported range (1-25)", level)
		}
		levels[level] = struct{}{}
	}
	if len(levels) == 0 {
		return nil, ErrNoTownHallLevels
	}
	out := make([]int, 0, len(levels))
	for level := range levels {
		out = append(out, level)
	}
	sort.Ints(out)
	return out, nil
}

// ValidateTeamSize проверяет размер команды: от 5 до 50, кратно 5.
func ValidateTeamSize(teamSize int) error {
	if teamSize < 5 {
		return ErrTeamSizeTooSmall
	}
	if teamSize%5 != 0 {
		return ErrTeamSizeIncrement
	}
	if teamSize > 50 {
		return ErrTeamSizeTooLarge
	}
	return nil
}

// ValidateMaxTeams проверяет лимит команд дивизиона: от 2 до 200, кратно 2.
func ValidateMaxTeams(maxTeams int) error {
	if maxTeams < 2 {
		return ErrMaxTeamsTooSmall
	}
	if maxTeams%2 != 0 {
		return ErrMaxTeamsIncrement
	}
	if maxTeams > 200 {
		return ErrMaxTeamsTooLarge
	}
	return nil
}
