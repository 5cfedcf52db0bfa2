// Package snapshot loads the domain-record snapshot the engine evaluates
// and keeps a current engine result refreshed when the snapshot changes.
//
// The snapshot file is the stand-in for the out-of-scope data layer: a
// single JSON document holding the raw record arrays plus the attention
// tracker's items. The engine itself never reads files; this package feeds
// it plain data.
package snapshot

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/crestlinelabs/decisiond/internal/attention"
	"github.com/crestlinelabs/decisiond/internal/decision"
)

// maxSnapshotSize bounds the snapshot file at 32MB.
const maxSnapshotSize = 32 * 1024 * 1024

// File is the on-disk snapshot document.
type File struct {
	// Records are the raw domain records the engine evaluates.
	Records decision.Snapshot `json:"records"`

	// AttentionItems are the attention tracker's items, merged into the
	// feed alongside the engine output.
	AttentionItems []attention.SourceItem `json:"attention_items,omitempty"`
}

// Load reads and decodes the snapshot at path.
func Load(path string) (*File, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("failed to stat snapshot: %w", err)
	}
	if info.Size() > maxSnapshotSize {
		return nil, fmt.Errorf("snapshot %s exceeds size limit (%d bytes)", path, info.Size())
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read snapshot: %w", err)
	}

	var f File
	if err := json.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("failed to decode snapshot %s: %w", path, err)
	}
	return &f, nil
}
