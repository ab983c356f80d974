package models

// DiceResult is the outcome of one two-die roll. Ephemeral; not kept past
// the turn it was rolled in.
type DiceResult struct {
	Dice     [2]int `json:"dice"`
	Total    int    `json:"total"`
	IsDouble bool   `json:"isDouble"`
}
