package models

import "github.com/shopspring/decimal"

type MenuItem struct {
	ID          int             `json:"id"`
	Name        string          `json:"name"`
	Price       decimal.Decimal `json:"price"`
	Category    string          `json:"category"`
	Description string          `json:"description"`
	IsAvailable bool            `json:"isAvailable"`
	ImageURL    string          `json:"imageUrl"`
}

type BoardGame struct {
	ID          int    `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	PlayerMin   int    `json:"playerMin"`
	PlayerMax   int    `json:"playerMax"`
	PlayTime    int    `json:"playTime"`
	Difficulty  int    `json:"difficulty"`
	GameType    string `json:"gameType"`
	ImageURL    string `json:"imageUrl"`
}
