package service

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"gls-plugin/config"
)

func TestExpressRuleTable_Offered(t *testing.T) {
	table := NewExpressRuleTable([]config.ExpressRuleConfig{
		{Country: "HU", ZipCode: "1011", Offered: []string{"T09", "T10", "T12"}},
		{Country: "HU", ZipCode: "9700", Offered: []string{"T12"}},
	})

	assert.True(t, table.Offered("HU", "1011", ExpressT09))
	assert.True(t, table.Offered("HU", "9700", ExpressT12))
	assert.False(t, table.Offered("HU", "9700", ExpressT09))
}

func TestExpressRuleTable_UnmatchedMeansNotOffered(t *testing.T) {
	table := NewExpressRuleTable([]config.ExpressRuleConfig{
		{Country: "HU", ZipCode: "1011", Offered: []string{"T09"}},
	})

	// No row, unknown country, or an unrecognized option value all
	// default to "not offered" rather than raising an error.
	assert.False(t, table.Offered("HU", "2000", ExpressT09))
	assert.False(t, table.Offered("SK", "1011", ExpressT09))
	assert.False(t, table.Offered("HU", "1011", "T08"))
	assert.False(t, table.Offered("HU", "1011", ""))
}

func TestExpressRuleTable_NormalizesKeys(t *testing.T) {
	table := NewExpressRuleTable([]config.ExpressRuleConfig{
		{Country: "hu", ZipCode: " 1011 ", Offered: []string{"t09"}},
	})

	assert.True(t, table.Offered("HU", "1011", "T09"))
}
