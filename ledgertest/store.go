package ledgertest

import (
	"io/ioutil"
	"os"
	"testing"

	"github.com/vaultswap/ledger"
	"github.com/vaultswap/ledger/store/iavl"
)

// CommitKVStore returns a store instance that is using a filesystem backend
// engine to store the data.
// This implementation should be used instead of MemStore when you want the
// exact same storage implementation as the production instance is using.
func CommitKVStore(t testing.TB) (db ledger.CommitKVStore, cleanup func()) {
	t.Helper()
	dbpath, err := ioutil.TempDir("", "ledgertest-")
	if err != nil {
		t.Fatalf("cannot create a temporary directory: %s", err)
	}
	cleanup = func() { os.RemoveAll(dbpath) }

	commit, err := iavl.NewCommitStore(dbpath, "db")
	if err != nil {
		cleanup()
		t.Fatalf("cannot create commit store: %s", err)
	}
	if err := commit.LoadLatestVersion(); err != nil {
		cleanup()
		t.Fatalf("cannot load commit store: %s", err)
	}
	return commit, cleanup
}
