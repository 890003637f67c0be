package reconciler

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/skilldock/skilldock/pkg/filesystem"
	"github.com/skilldock/skilldock/pkg/testutil"
	"github.com/skilldock/skilldock/pkg/types"
)

func TestStatusClassifiesWithoutMutating(t *testing.T) {
	home, shared := testSetup(t)

	linked := filepath.Join(home, "linked")
	testutil.CreateSymlink(t, shared, linked)

	stale := filepath.Join(home, "stale")
	elsewhere := testutil.CreateDir(t, home, "elsewhere")
	testutil.CreateSymlink(t, elsewhere, stale)

	realDir := testutil.CreateDir(t, home, "real")

	targets := []types.Target{
		{Path: linked, Kind: types.KindSimple, Label: "linked"},
		{Path: stale, Kind: types.KindSimple, Label: "stale"},
		{Path: realDir, Kind: types.KindSimple, Label: "real"},
		{Path: filepath.Join(home, "absent"), Kind: types.KindSimple, Label: "absent"},
	}

	r := New(filesystem.NewOS(), Options{})
	entries := r.Status(shared, targets)
	require.Len(t, entries, 4)

	assert.Equal(t, types.EntrySymlink, entries[0].Class)
	assert.True(t, entries[0].PointsToShared)

	// A stale link is surfaced by status but never rewritten by link
	assert.Equal(t, types.EntrySymlink, entries[1].Class)
	assert.False(t, entries[1].PointsToShared)
	assert.Equal(t, elsewhere, entries[1].LinkDest)

	assert.Equal(t, types.EntryDir, entries[2].Class)
	assert.Equal(t, types.EntryAbsent, entries[3].Class)
}

func TestStatusVersionedFamily(t *testing.T) {
	home, shared := testSetup(t)
	root := testutil.CreateDir(t, home, "cache/skills")
	testutil.CreateDir(t, root, "1.0.0")
	testutil.CreateSymlink(t, shared, filepath.Join(root, "2.3.1"))

	family := types.Target{Path: root, Kind: types.KindVersionedParent, Label: "plugin-cache"}

	r := New(filesystem.NewOS(), Options{})
	entries := r.Status(shared, []types.Target{family})
	require.Len(t, entries, 2)

	assert.Equal(t, "plugin-cache/1.0.0", entries[0].Target.Label)
	assert.Equal(t, types.EntryDir, entries[0].Class)
	assert.Equal(t, "plugin-cache/2.3.1", entries[1].Target.Label)
	assert.True(t, entries[1].PointsToShared)
}

func TestStatusMissingVersionedRoot(t *testing.T) {
	home, shared := testSetup(t)
	family := types.Target{
		Path:  filepath.Join(home, "cache", "missing"),
		Kind:  types.KindVersionedParent,
		Label: "plugin-cache",
	}

	r := New(filesystem.NewOS(), Options{})
	entries := r.Status(shared, []types.Target{family})
	require.Len(t, entries, 1)
	assert.True(t, entries[0].Missing)
}
