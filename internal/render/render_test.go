package render

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/require"

	"profile-roast/internal/models"
)

func sample() models.Analysis {
	return models.Analysis{
		Profile:    models.Profile{Username: "alice", Tweets: []string{"a", "b"}},
		Commentary: "  what a feed  \n",
	}
}

func TestAnalysis_Plain(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Analysis(&buf, sample(), false))
	require.Equal(t, "@alice\n2 posts analyzed\n\nwhat a feed\n", buf.String())
}

func TestAnalysis_Styled(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Analysis(&buf, sample(), true))
	require.Contains(t, buf.String(), "@alice")
	require.Contains(t, buf.String(), "what a feed")
}

func TestAnalysis_Degraded(t *testing.T) {
	a := sample()
	a.Degraded = true
	var buf bytes.Buffer
	require.NoError(t, Analysis(&buf, a, false))
	require.Contains(t, buf.String(), "analysis unavailable")
}

func TestIsTerminal_Buffer(t *testing.T) {
	require.False(t, IsTerminal(&bytes.Buffer{}))
}
