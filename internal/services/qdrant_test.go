package services

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewResumePointID_UsesFullUUID(t *testing.T) {
	a := newResumePointID()
	b := newResumePointID()

	_, err := uuid.Parse(a.GetUuid())
	require.NoError(t, err, "point id must carry the full uuid form")
	assert.NotEqual(t, a.GetUuid(), b.GetUuid())
}
