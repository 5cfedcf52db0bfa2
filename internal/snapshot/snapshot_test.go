package snapshot

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/crestlinelabs/decisiond/internal/decision"
)

const sampleSnapshot = `{
  "records": {
    "trade_ideas": [
      {
        "id": "t1",
        "asset_id": "as1",
        "ticker": "ACME",
        "stage": "deciding",
        "created_at": "2026-02-18T09:00:00Z",
        "proposed_at": "2026-02-18T09:00:00Z"
      }
    ],
    "assets": [
      {"id": "as1", "ticker": "ACME", "expected_return": 0.22}
    ]
  },
  "attention_items": [
    {
      "id": "att-1",
      "type": "task",
      "title": "Review onboarding checklist",
      "severity": "low",
      "created_at": "2026-02-20T09:00:00Z"
    }
  ]
}`

func writeSnapshot(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "snapshot.json")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoad(t *testing.T) {
	f, err := Load(writeSnapshot(t, sampleSnapshot))
	require.NoError(t, err)
	require.Len(t, f.Records.TradeIdeas, 1)
	assert.Equal(t, "t1", f.Records.TradeIdeas[0].ID)
	require.Len(t, f.Records.Assets, 1)
	assert.Equal(t, 0.22, f.Records.Assets[0].ExpectedReturn)
	require.Len(t, f.AttentionItems, 1)
	assert.Equal(t, "att-1", f.AttentionItems[0].ID)
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "absent.json"))
	assert.Error(t, err)
}

func TestLoad_MalformedJSON(t *testing.T) {
	_, err := Load(writeSnapshot(t, `{"records": [`))
	assert.Error(t, err)
}

func TestNewWatcher_EvaluatesOnce(t *testing.T) {
	engine, err := decision.NewEngine(decision.DefaultConfig())
	require.NoError(t, err)

	w, err := NewWatcher(writeSnapshot(t, sampleSnapshot), engine, zap.NewNop())
	require.NoError(t, err)

	res := w.Result()
	assert.NotEmpty(t, res.Meta.RunID)
	assert.NotEmpty(t, res.ActionItems, "the waiting proposal should fire")
	assert.Len(t, w.TrackerItems(), 1)
}

func TestNewWatcher_BadSnapshotFails(t *testing.T) {
	engine, err := decision.NewEngine(decision.DefaultConfig())
	require.NoError(t, err)

	_, err = NewWatcher(filepath.Join(t.TempDir(), "absent.json"), engine, nil)
	assert.Error(t, err)
}

func TestWatcher_ReloadKeepsPriorResultOnFailure(t *testing.T) {
	engine, err := decision.NewEngine(decision.DefaultConfig())
	require.NoError(t, err)

	path := writeSnapshot(t, sampleSnapshot)
	w, err := NewWatcher(path, engine, zap.NewNop())
	require.NoError(t, err)
	before := w.Result()

	require.NoError(t, os.WriteFile(path, []byte("{broken"), 0o644))
	assert.Error(t, w.Reload(time.Now()))
	assert.Equal(t, before.Meta.RunID, w.Result().Meta.RunID, "failed reload must not clobber the served result")

	// A repaired file swaps in a fresh run.
	require.NoError(t, os.WriteFile(path, []byte(sampleSnapshot), 0o644))
	require.NoError(t, w.Reload(time.Now()))
	assert.NotEqual(t, before.Meta.RunID, w.Result().Meta.RunID)
}
