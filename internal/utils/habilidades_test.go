package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSplitHabilidades(t *testing.T) {
	assert.Equal(t, []string{"React", "Node", "SQL"}, SplitHabilidades("React, Node, SQL"))
	assert.Equal(t, []string{"Go", "Docker"}, SplitHabilidades("Go\nDocker"))
	assert.Equal(t, []string{"Go"}, SplitHabilidades("  Go ,,\n , "))
	assert.Empty(t, SplitHabilidades(""))
	assert.Empty(t, SplitHabilidades(" , ,\n"))
}

func TestJoinHabilidades(t *testing.T) {
	assert.Equal(t, "React, Node, SQL", JoinHabilidades([]string{"React", "Node", "SQL"}))
	assert.Equal(t, "", JoinHabilidades(nil))
}

func TestSplitJoinRoundTrip(t *testing.T) {
	original := "React, Node, SQL"
	assert.Equal(t, original, JoinHabilidades(SplitHabilidades(original)))
}
