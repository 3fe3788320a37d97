package source

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLocation_String(t *testing.T) {
	assert.Equal(t, "a.html:3:5", Location{File: "a.html", Line: 3, Column: 5}.String())
	assert.Equal(t, "a.html:3:5+7", Location{File: "a.html", Line: 3, Column: 5, Length: 7}.String())
}

func TestScope_Valid(t *testing.T) {
	assert.True(t, ScopeFile.Valid())
	assert.True(t, ScopePage.Valid())
	assert.True(t, ScopeWorkspace.Valid())
	assert.False(t, Scope("component").Valid())
	assert.False(t, Scope("").Valid())
}
