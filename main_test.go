package main

import (
	"bytes"
	"os"
	"path/filepath"
	"soundboard/board"
	"soundboard/models"
	"soundboard/storage"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func run(t *testing.T, dataDir string, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	cmd := newRootCmd()
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(append([]string{"--data-dir", dataDir}, args...))
	err := cmd.Execute()
	return out.String(), err
}

func TestCLI_BoardLifecycle(t *testing.T) {
	dir := t.TempDir()
	sound := filepath.Join(t.TempDir(), "loud_explosion_effect.wav")

	out, err := run(t, dir, "new", "  Party  ")
	require.NoError(t, err)
	assert.Contains(t, out, "Soundboard 'Party' created successfully!")

	out, err = run(t, dir, "assign", "Party", "2", sound)
	require.NoError(t, err)
	assert.Contains(t, out, "loud_explo...")

	out, err = run(t, dir, "list")
	require.NoError(t, err)
	assert.Contains(t, out, "Party")
	assert.Contains(t, out, "loud_explo...")
	assert.Contains(t, out, sound)

	store := storage.NewManager(dir, zap.NewNop())
	registry := store.LoadBoards()
	assert.Equal(t, []models.SlotAssignment{{Pos: 2, File: sound, Name: "loud_explo..."}}, registry["Party"])

	_, err = run(t, dir, "clear", "Party", "2")
	require.NoError(t, err)
	assert.Empty(t, store.LoadBoards()["Party"])
}

func TestCLI_Rejections(t *testing.T) {
	dir := t.TempDir()

	_, err := run(t, dir, "new", "Party")
	require.NoError(t, err)

	_, err = run(t, dir, "new", "Party")
	assert.ErrorIs(t, err, board.ErrBoardExists)

	_, err = run(t, dir, "assign", "Office", "0", "/sounds/horn.wav")
	assert.ErrorIs(t, err, board.ErrUnknownBoard)

	_, err = run(t, dir, "assign", "Party", "6", "/sounds/horn.wav")
	assert.ErrorIs(t, err, board.ErrPositionOutOfRange)

	_, err = run(t, dir, "clear", "Party", "two")
	assert.ErrorContains(t, err, "invalid slot position")

	_, err = run(t, dir, "play", "Party", "0")
	assert.ErrorContains(t, err, "is empty")
}

func TestCLI_ListEmpty(t *testing.T) {
	out, err := run(t, t.TempDir(), "list")
	require.NoError(t, err)
	assert.Contains(t, out, "No soundboards found.")
}

func TestCLI_Theme(t *testing.T) {
	dir := t.TempDir()

	out, err := run(t, dir, "theme")
	require.NoError(t, err)
	assert.Contains(t, out, "Theme is now light")

	_, settings := storage.NewManager(dir, zap.NewNop()).LoadSettings()
	assert.Equal(t, models.ThemeLight, settings.Theme)
}

func TestCLI_FixPaths(t *testing.T) {
	dir := t.TempDir()
	store := storage.NewManager(dir, zap.NewNop())
	require.NoError(t, store.SaveBoards(models.Registry{
		"Party": {{Pos: 0, File: `'/sounds/./horn.wav'`, Name: "horn"}},
	}))

	out, err := run(t, dir, "fix-paths")
	require.NoError(t, err)
	assert.Contains(t, out, "Fixed 1 sounds with path issues.")
	assert.Equal(t, "/sounds/horn.wav", store.LoadBoards()["Party"][0].File)

	out, err = run(t, dir, "fix-paths")
	require.NoError(t, err)
	assert.Contains(t, out, "No path issues found.")
}

func TestCLI_CreatesDefaultSettings(t *testing.T) {
	dir := t.TempDir()
	_, err := run(t, dir, "list")
	require.NoError(t, err)

	_, err = os.Stat(filepath.Join(dir, storage.SettingsFile))
	assert.NoError(t, err)
}
