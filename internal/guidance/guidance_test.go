package guidance

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLookup_KnownKind(t *testing.T) {
	item, ok := Lookup("mouse-only-click")
	assert.True(t, ok)
	assert.NotEmpty(t, item.Description)
	assert.NotEmpty(t, item.BadCode)
	assert.NotEmpty(t, item.GoodCode)
}

func TestLookup_UnknownKind(t *testing.T) {
	item, ok := Lookup("not-a-real-kind")
	assert.False(t, ok)
	assert.Zero(t, item)
}

func TestLookup_EveryRuleKindCovered(t *testing.T) {
	kinds := []string{
		"mouse-only-click",
		"orphaned-handler",
		"missing-aria-connection",
		"positive-tabindex",
		"duplicate-tabindex",
		"aria-hidden-focusable",
		"css-hidden-focusable",
		"missing-alt-text",
		"missing-form-label",
		"missing-lang-attribute",
		"duplicate-id",
		"missing-button-text",
	}
	for _, k := range kinds {
		_, ok := Lookup(k)
		assert.True(t, ok, "expected guidance for kind %q", k)
	}
}
