package services

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPublishBracket(t *testing.T) {
	bracketService, _, registrationRepo, _ := newBracketServiceFixture()
	seedRegistrations(registrationRepo, 42, "gold", "Alpha", "Bravo")

	_, err := bracketService.GenerateAndSaveBracket(context.Background(), 42, "gold")
	require.NoError(t, err)

	uploader := newFakeUploader()
	service := NewExportService(bracketService, uploader)

	export, err := service.PublishBracket(context.Background(), 42, "gold")
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(export.Key, "exports/42/gold/bracket-"), export.Key)
	assert.Equal(t, "https://cdn.example/"+export.Key, export.PublicURL)

	content := string(uploader.objects[export.Key])
	assert.Contains(t, content, "Final")
	assert.Contains(t, content, "[R1M1] #1 Alpha vs #2 Bravo")
}

func TestPublishBracketNoBracket(t *testing.T) {
	bracketService, _, _, _ := newBracketServiceFixture()
	service := NewExportService(bracketService, newFakeUploader())

	_, err := service.PublishBracket(context.Background(), 42, "gold")
	assert.ErrorIs(t, err, ErrBracketNotFound)
}

func TestPublishSimulation(t *testing.T) {
	bracketService, _, registrationRepo, _ := newBracketServiceFixture()
	seedRegistrations(registrationRepo, 42, "gold", "Alpha", "Bravo", "Charlie", "Delta")

	_, err := bracketService.GenerateAndSaveBracket(context.Background(), 42, "gold")
	require.NoError(t, err)

	uploader := newFakeUploader()
	service := NewExportService(bracketService, uploader)

	export, err := service.PublishSimulation(context.Background(), 42, "gold")
	require.NoError(t, err)

	content := string(uploader.objects[export.Key])
	assert.Contains(t, content, "=== Initial Bracket ===")
	assert.Contains(t, content, "=== After Semifinals ===")
	assert.Contains(t, content, "=== After Final ===")
	assert.Contains(t, content, "Champion: #1 Alpha")
}
