package checkpoint

import (
	"path/filepath"
	"testing"

	bolt "go.etcd.io/bbolt"
)

func TestCheckpointRoundTrip(tst *testing.T) {
	db, err := bolt.Open(filepath.Join(tst.TempDir(), "chk.db"), 0644, nil)
	if err != nil {
		tst.Fatal("Error opening database:", err)
	}
	defer db.Close()

	cio := NewCheckpointIO(db, []byte("reten"), 0)
	data := &CheckpointData{
		Parameters: map[string]float64{"pi": 0.2, "sigma": 0.11},
		Likelihood: -1.5,
		Iter:       10,
	}
	if err := cio.Save(data); err != nil {
		tst.Error("Error saving checkpoint:", err)
	}

	got, err := cio.Load()
	if err != nil {
		tst.Error("Error loading checkpoint:", err)
	}
	if got == nil {
		tst.Fatal("Expected a checkpoint")
	}
	if got.Iter != data.Iter || got.Likelihood != data.Likelihood || got.Final != data.Final {
		tst.Error("Checkpoint mismatch:", got)
	}
	if len(got.Parameters) != 2 || got.Parameters["pi"] != 0.2 {
		tst.Error("Parameters mismatch:", got.Parameters)
	}
}

func TestCheckpointMissing(tst *testing.T) {
	db, err := bolt.Open(filepath.Join(tst.TempDir(), "chk.db"), 0644, nil)
	if err != nil {
		tst.Fatal("Error opening database:", err)
	}
	defer db.Close()

	cio := NewCheckpointIO(db, []byte("cov"), 0)
	got, err := cio.Load()
	if err != nil {
		tst.Error("Error loading checkpoint:", err)
	}
	if got != nil {
		tst.Error("Expected no checkpoint, got:", got)
	}
}

func TestCheckpointNilDB(tst *testing.T) {
	cio := NewCheckpointIO(nil, []byte("x"), 0)
	if err := cio.Save(&CheckpointData{Parameters: map[string]float64{"a": 1}}); err != nil {
		tst.Error("Saving with nil database should be a no-op:", err)
	}
	got, err := cio.Load()
	if err != nil || got != nil {
		tst.Error("Loading with nil database should return nothing:", got, err)
	}
}
