package slop

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestContradictionDetected(t *testing.T) {
	m := Analyze("Her influence is quiet, but it shows up in every decision.")

	require.Equal(t, 1, m.ContradictionCount)
	assert.Equal(t, ContradictionPair{Quiet: "quiet", Loud: "shows up in"}, m.Contradictions[0])
	assert.Equal(t, "'quiet' followed by 'shows up in'", m.Contradictions[0].String())
}

func TestContradictionOnlyFirstQuietMarkerIsChecked(t *testing.T) {
	filler := strings.Repeat("the garden grew in the rain ", 25)
	text := "The change was quiet. " + filler + "Later a subtle shift appears in everything."
	require.Greater(t, len(filler), contradictionWindow)

	m := Analyze(text)
	assert.Zero(t, m.ContradictionCount)
	assert.Empty(t, m.Contradictions)
}

func TestContradictionWindowIsHardSlice(t *testing.T) {
	fits := "quiet" + strings.Repeat(" ", contradictionWindow-len("appears in")) + "appears in"
	assert.Equal(t, 1, Analyze(fits).ContradictionCount)

	truncated := "quiet" + strings.Repeat(" ", contradictionWindow-len("appears in")+1) + "appears in"
	assert.Zero(t, Analyze(truncated).ContradictionCount)

	outside := "quiet" + strings.Repeat(" ", contradictionWindow) + "appears in"
	assert.Zero(t, Analyze(outside).ContradictionCount)
}

func TestContradictionWindowCountsCodePoints(t *testing.T) {
	padding := strings.Repeat("é", contradictionWindow-len("manifests in"))
	m := Analyze("modest" + padding + "manifests in")

	require.Equal(t, 1, m.ContradictionCount)
	assert.Equal(t, "modest", m.Contradictions[0].Quiet)
	assert.Equal(t, "manifests in", m.Contradictions[0].Loud)
}

func TestForwardWindow(t *testing.T) {
	assert.Equal(t, "", forwardWindow("abc", 3, 10))
	assert.Equal(t, "bc", forwardWindow("abc", 1, 10))
	assert.Equal(t, "ñé", forwardWindow("añéx", 1, 2))
}
