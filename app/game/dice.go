package game

import (
	"math/rand"

	"tycoon-backend/app/models"
)

func rollDice(rng *rand.Rand) models.DiceResult {
	d1 := rng.Intn(6) + 1
	d2 := rng.Intn(6) + 1
	return models.DiceResult{
		Dice:     [2]int{d1, d2},
		Total:    d1 + d2,
		IsDouble: d1 == d2,
	}
}
