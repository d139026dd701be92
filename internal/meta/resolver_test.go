package meta

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeMetadata(t *testing.T, gamesDir, gameID, content string) {
	t.Helper()
	dir := filepath.Join(gamesDir, gameID)
	require.NoError(t, os.MkdirAll(dir, 0755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, DocumentName), []byte(content), 0644))
}

func TestResolver_Resolve(t *testing.T) {
	gamesDir := t.TempDir()
	writeMetadata(t, gamesDir, "mario", `
title: Super Mario Bros.
developer: Nintendo
year: 1985
hide: no
added: 2025-01-06
`)

	r := NewResolver(gamesDir)
	record, ok := r.Resolve("mario")
	require.True(t, ok)
	assert.Equal(t, "Super Mario Bros.", record.Title)
	assert.Equal(t, "Nintendo", record.Developer.String())
	assert.Equal(t, "1985", record.Year.String())
	assert.Equal(t, "no", record.Hide.String())
	assert.Equal(t, "2025-01-06", record.Added.String())
}

func TestResolver_MissingDocument(t *testing.T) {
	r := NewResolver(t.TempDir())

	record, ok := r.Resolve("ghost")
	assert.False(t, ok)
	require.NotNil(t, record)
	assert.Empty(t, record.Title)
	assert.Empty(t, record.Hide.String())
}

func TestResolver_MalformedDocument(t *testing.T) {
	gamesDir := t.TempDir()
	writeMetadata(t, gamesDir, "broken", "title: [unclosed\n  :::bad yaml")

	r := NewResolver(gamesDir)
	record, ok := r.Resolve("broken")

	// Malformed behaves exactly like absent.
	assert.False(t, ok)
	require.NotNil(t, record)
	assert.Empty(t, record.Title)
}

func TestResolver_PartialDocumentDefaults(t *testing.T) {
	gamesDir := t.TempDir()
	writeMetadata(t, gamesDir, "sparse", "title: Sparse Game\n")

	r := NewResolver(gamesDir)
	record, ok := r.Resolve("sparse")
	require.True(t, ok)

	assert.Equal(t, "Sparse Game", record.Title)
	assert.Empty(t, record.Added.String())
	assert.Nil(t, record.EnableScore)
	assert.Nil(t, record.Controls)
	assert.Empty(t, record.ExternalURL)
}
