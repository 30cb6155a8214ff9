package model

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestOptionDelta(t *testing.T) {
	p := &Product{
		Price: decimal.NewFromInt(100),
		Options: OptionGroups{
			{
				Name: "Switch",
				Values: []OptionValue{
					{Value: "Red", PriceDelta: decimal.Zero},
					{Value: "Blue", PriceDelta: decimal.NewFromInt(5)},
					{Value: "Silent", PriceDelta: decimal.NewFromInt(-3)},
				},
			},
		},
	}

	assert.True(t, p.OptionDelta("Switch", "Blue").Equal(decimal.NewFromInt(5)))
	assert.True(t, p.OptionDelta("Switch", "Silent").Equal(decimal.NewFromInt(-3)))
	assert.True(t, p.OptionDelta("Switch", "Red").IsZero())

	// unknown names and values contribute nothing
	assert.True(t, p.OptionDelta("Switch", "Rainbow").IsZero())
	assert.True(t, p.OptionDelta("Engraving", "Yes").IsZero())
}
