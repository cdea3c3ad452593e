package blog

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeTags(t *testing.T) {
	got := NormalizeTags([]string{" beach ", "", "Goa", "beach", "  ", "goa", "food"})
	assert.Equal(t, []string{"beach", "Goa", "food"}, got, "blank entries pruned, dedup keeps first occurrence order")
}

func TestNormalizeTags_Empty(t *testing.T) {
	assert.Empty(t, NormalizeTags(nil))
	assert.Empty(t, NormalizeTags([]string{"", "   "}))
}

func TestHasTag(t *testing.T) {
	p := Post{Tags: []string{"Beach", "food"}}
	assert.True(t, p.HasTag("beach"))
	assert.True(t, p.HasTag("FOOD"))
	assert.False(t, p.HasTag("trek"))
}
