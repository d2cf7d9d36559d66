package domain

import (
	"strings"
	"time"
)

type Category string

const (
	CategoryBilliards Category = "billiards"
	CategoryPS5       Category = "ps5"
	CategoryPS4       Category = "ps4"
	CategoryXbox      Category = "xbox"
	CategorySwitch    Category = "switch"
	CategoryBoardGame Category = "board_game"
	CategoryOther     Category = "other"
)

// ClassifyActivity infers the category from the activity name. There is no
// category column; the name text is the only signal, so the substring rules
// live here and nowhere else.
func ClassifyActivity(name string) Category {
	lower := strings.ToLower(name)

	switch {
	case strings.Contains(lower, "board game"):
		return CategoryBoardGame
	case strings.Contains(lower, "billiard"):
		return CategoryBilliards
	case strings.Contains(lower, "ps5") || strings.Contains(lower, "playstation 5"):
		return CategoryPS5
	case strings.Contains(lower, "ps4") || strings.Contains(lower, "playstation 4"):
		return CategoryPS4
	case strings.Contains(lower, "xbox"):
		return CategoryXbox
	case strings.Contains(lower, "switch"):
		return CategorySwitch
	}

	return CategoryOther
}

type Activity struct {
	ID               uint      `json:"id"`
	Name             string    `json:"name"`
	Description      string    `json:"description"`
	ImageURL         string    `json:"image_url"`
	PricePerHalfHour float64   `json:"price_per_half_hour"`
	PricePerHour     float64   `json:"price_per_hour"`
	Available        int       `json:"available"`
	IsActive         bool      `json:"is_active"`
	CreatedAt        time.Time `json:"created_at"`
	UpdatedAt        time.Time `json:"updated_at"`
}

func (a Activity) Category() Category {
	return ClassifyActivity(a.Name)
}

// IsBoardGame reports whether the activity is exempt from timed availability
// tracking. Board games only ever flip a plain available flag.
func (a Activity) IsBoardGame() bool {
	return a.Category() == CategoryBoardGame
}
