package workspace

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildTree(t *testing.T) {
	tree := BuildTree(sampleStore(), "r1")

	assert.Equal(t, "r1", tree.RoomID)
	require.Len(t, tree.Folders, 2)
	require.Len(t, tree.Files, 1)
	assert.Equal(t, "d1", tree.Files[0].ID)

	financials := tree.Folders[0]
	assert.Equal(t, "Financials", financials.Name)
	require.Len(t, financials.Folders, 1)
	require.Len(t, financials.Files, 1)
	assert.Equal(t, "d2", financials.Files[0].ID)

	year := financials.Folders[0]
	assert.Equal(t, "2024", year.Name)
	require.Len(t, year.Files, 1)
	assert.Equal(t, "d3", year.Files[0].ID)

	legal := tree.Folders[1]
	assert.Empty(t, legal.Folders)
	assert.Empty(t, legal.Files)
}

func TestBuildTree_EmptyRoom(t *testing.T) {
	tree := BuildTree(NewStore(), "nothing")

	assert.NotNil(t, tree.Folders)
	assert.NotNil(t, tree.Files)
	assert.Empty(t, tree.Folders)
	assert.Empty(t, tree.Files)
}
