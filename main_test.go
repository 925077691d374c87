package main

import (
	"bytes"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"curator/scoring"
)

const cliPayload = `[
	{"id": "a", "teamNumber": 100, "teamName": "Alpha", "qualificationNumber": 1, "allianceColour": "Red", "autoPreload": "Sample", "autoBasketLow": 1},
	{"id": "b", "teamNumber": "200", "teamName": "Beta", "qualificationNumber": 1, "allianceColour": "Blue", "autoPreload": "Nothing", "teleopChamberHigh": 2},
	{"id": "c", "teamNumber": 100.0, "qualificationNumber": 5, "allianceColour": "Blue", "autoPreload": "Nothing", "teleopChamberHigh": 9}
]`

// runCLI runs one command against a SQLite file shared by the whole test.
func runCLI(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	app := newApp()
	app.Writer = &out
	app.ErrWriter = &out
	err := app.Run(append([]string{"curator"}, args...))
	return out.String(), err
}

func cliEnv(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("DB_PATH", filepath.Join(dir, "curator.db"))
	t.Setenv("RAILWAY_VOLUME_MOUNT_PATH", "")
	t.Setenv("AGGREGATION_MODE", "")
	t.Setenv("WEIGHTS_FILE", "")
	t.Setenv("QR_SIZE", "")
	return dir
}

func TestCLIImportLeaderboardExport(t *testing.T) {
	dir := cliEnv(t)
	payloadPath := filepath.Join(dir, "payload.json")
	require.NoError(t, os.WriteFile(payloadPath, []byte(cliPayload), 0o644))

	out, err := runCLI(t, "import", "-i", payloadPath)
	require.NoError(t, err)
	assert.Equal(t, "imported 3 of 3 submissions\n", out)

	out, err = runCLI(t, "import", "-i", payloadPath)
	require.NoError(t, err)
	assert.Equal(t, "imported 0 of 3 submissions\n", out)

	out, err = runCLI(t, "count")
	require.NoError(t, err)
	assert.Equal(t, "stored submissions: 3\n", out)

	out, err = runCLI(t, "leaderboard", "-f", "json")
	require.NoError(t, err)
	var teams []scoring.TeamSummary
	require.NoError(t, json.Unmarshal([]byte(out), &teams))
	require.Len(t, teams, 2)
	// 200 scores 20 in teleop, 100 only its first record's 4 in auto
	assert.Equal(t, "200", teams[0].TeamNumber)
	assert.Equal(t, "100", teams[1].TeamNumber)
	assert.Equal(t, 2, teams[1].Matches)
	assert.Equal(t, 4.0, teams[1].Total)

	out, err = runCLI(t, "leaderboard", "-f", "json", "--mode", "mean", "-s", "teleop")
	require.NoError(t, err)
	require.NoError(t, json.Unmarshal([]byte(out), &teams))
	assert.Equal(t, "100", teams[0].TeamNumber)
	assert.Equal(t, 45.0, teams[0].Teleop)

	csvPath := filepath.Join(dir, "out.csv")
	_, err = runCLI(t, "export", "-f", "csv", "-o", csvPath)
	require.NoError(t, err)
	data, err := os.ReadFile(csvPath)
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	assert.Len(t, lines, 4)
	assert.True(t, strings.HasPrefix(lines[0], "Team Number,Team Name"))

	out, err = runCLI(t, "clear")
	require.NoError(t, err)
	assert.Equal(t, "local data cleared\n", out)

	out, err = runCLI(t, "count")
	require.NoError(t, err)
	assert.Equal(t, "stored submissions: 0\n", out)
}

func TestCLIExportEmptyPayloadToStdout(t *testing.T) {
	cliEnv(t)
	out, err := runCLI(t, "--memory", "export", "-o", "-")
	require.NoError(t, err)
	assert.Equal(t, "[]", out)
}

func TestCLIRejectsInvalidImport(t *testing.T) {
	dir := cliEnv(t)
	payloadPath := filepath.Join(dir, "bad.json")
	require.NoError(t, os.WriteFile(payloadPath, []byte(`[{"teamNumber": 1}]`), 0o644))

	_, err := runCLI(t, "import", "-i", payloadPath)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "record 0")
}

func TestCLIUnknownFormat(t *testing.T) {
	cliEnv(t)
	_, err := runCLI(t, "--memory", "leaderboard", "-f", "xml")
	assert.EqualError(t, err, `unknown format "xml"`)
}

func TestLeaderboardTable(t *testing.T) {
	teams := scoring.Aggregate([]scoring.Record{
		{TeamNumber: "16405", TeamName: "Robo Raiders", TeleopBasketHigh: 2},
	})
	out := leaderboardTable(teams)
	assert.Contains(t, out, "Teleop")
	assert.Contains(t, out, "Robo Raiders")
	assert.Contains(t, out, "16405")
	assert.Contains(t, out, "16")
}

type failingCloser struct{ err error }

func (f failingCloser) Close() error { return f.err }

func TestCloseOutputReportsCloseError(t *testing.T) {
	diskFull := errors.New("no space left on device")

	var err error
	closeOutput(failingCloser{diskFull}, "out.csv", &err)
	require.ErrorIs(t, err, diskFull)
	assert.Contains(t, err.Error(), "out.csv")

	// the first failure wins
	writeErr := errors.New("write failed")
	err = writeErr
	closeOutput(failingCloser{diskFull}, "out.csv", &err)
	assert.Equal(t, writeErr, err)

	err = nil
	closeOutput(failingCloser{}, "out.csv", &err)
	assert.NoError(t, err)
}
