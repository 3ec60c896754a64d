package asm

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTokenizeSkipsBlankAndComment(t *testing.T) {
	src := "# a comment\n\nd0=!1\n"
	lines, err := tokenize(strings.NewReader(src))
	require.NoError(t, err)
	require.Len(t, lines, 1)
	assert.Equal(t, "d0=!1", lines[0].Op)
	assert.Equal(t, "", lines[0].Label)
}

func TestTokenizeLabelOnSameLine(t *testing.T) {
	lines, err := tokenize(strings.NewReader("loop: d0=d1\n"))
	require.NoError(t, err)
	require.Len(t, lines, 1)
	assert.Equal(t, "loop", lines[0].Label)
	assert.Equal(t, "d0=d1", lines[0].Op)
}

func TestTokenizeIsCaseInsensitive(t *testing.T) {
	lines, err := tokenize(strings.NewReader("LOOP: D0=D1\n"))
	require.NoError(t, err)
	require.Len(t, lines, 1)
	assert.Equal(t, "loop", lines[0].Label)
	assert.Equal(t, "d0=d1", lines[0].Op)
}

func TestTokenizeBareLabelBindsToNextLine(t *testing.T) {
	lines, err := tokenize(strings.NewReader("loop:\nd0=d1\n"))
	require.NoError(t, err)
	require.Len(t, lines, 1)
	assert.Equal(t, "loop", lines[0].Label)
	assert.Equal(t, "d0=d1", lines[0].Op)
}

func TestTokenizeAutoLabelsFollowRealLabel(t *testing.T) {
	lines, err := tokenize(strings.NewReader("loop: d0=d1\nd1=d2\nd2=d0\n"))
	require.NoError(t, err)
	require.Len(t, lines, 3)
	assert.Equal(t, "loop", lines[0].Label)
	assert.Equal(t, "loop+1", lines[1].Label)
	assert.Equal(t, "loop+2", lines[2].Label)
}

func TestTokenizeAutoLabelsResetOnNewLabel(t *testing.T) {
	lines, err := tokenize(strings.NewReader("a: d0=d1\nd1=d2\nb: d2=d0\nd0=d0\n"))
	require.NoError(t, err)
	require.Len(t, lines, 4)
	assert.Equal(t, "a", lines[0].Label)
	assert.Equal(t, "a+1", lines[1].Label)
	assert.Equal(t, "b", lines[2].Label)
	assert.Equal(t, "b+1", lines[3].Label)
}

func TestTokenizeUnlabeledLineBeforeAnyLabel(t *testing.T) {
	lines, err := tokenize(strings.NewReader("d0=d1\n"))
	require.NoError(t, err)
	require.Len(t, lines, 1)
	assert.Equal(t, "", lines[0].Label)
}
