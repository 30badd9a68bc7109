package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTFIDFOracle_IdenticalTextScoresFull(t *testing.T) {
	o := NewTFIDFOracle()

	job := "java developer spring boot sql"
	scores, err := o.Scores(context.Background(), job, []string{job})

	require.NoError(t, err)
	require.Len(t, scores, 1)
	assert.InDelta(t, 100.0, scores[0], 0.001)
}

func TestTFIDFOracle_DisjointVocabularyScoresZero(t *testing.T) {
	o := NewTFIDFOracle()

	scores, err := o.Scores(context.Background(),
		"java developer spring boot",
		[]string{"pastry chef croissant baking"},
	)

	require.NoError(t, err)
	assert.InDelta(t, 0.0, scores[0], 0.001)
}

func TestTFIDFOracle_RanksOverlapHigher(t *testing.T) {
	o := NewTFIDFOracle()

	scores, err := o.Scores(context.Background(),
		"java developer spring boot sql",
		[]string{
			"java developer sql databases",
			"marketing manager social media",
		},
	)

	require.NoError(t, err)
	require.Len(t, scores, 2)
	assert.Greater(t, scores[0], scores[1])
}

func TestTFIDFOracle_EmptyResumeScoresZero(t *testing.T) {
	o := NewTFIDFOracle()

	scores, err := o.Scores(context.Background(),
		"java developer",
		[]string{"", "java developer"},
	)

	require.NoError(t, err)
	assert.Equal(t, 0.0, scores[0])
	assert.Greater(t, scores[1], 0.0)
}

func TestTFIDFOracle_IgnoresStopWords(t *testing.T) {
	o := NewTFIDFOracle()

	scores, err := o.Scores(context.Background(),
		"the a an with for java",
		[]string{"the a an with for python"},
	)

	require.NoError(t, err)
	// Only content terms remain and they are disjoint.
	assert.InDelta(t, 0.0, scores[0], 0.001)
}
