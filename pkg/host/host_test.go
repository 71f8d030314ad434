package host_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lstacklang/lvm/pkg/host"
)

func TestNewPathValidation(t *testing.T) {
	_, err := host.NewPath("no-leading-slash")
	assert.Error(t, err)

	_, err = host.NewPath("/a//b")
	assert.Error(t, err)

	p, err := host.NewPath("/a/b/c")
	require.NoError(t, err)
	assert.Equal(t, "/a/b/c", p.String())
}

func TestMemStoreWriteReadDelete(t *testing.T) {
	m := host.NewMemStore(host.RollupMetadata{Address: []byte("rollup1"), Level: 7})
	p, err := host.NewPath("/counter")
	require.NoError(t, err)

	vt, err := m.StoreHas(p)
	require.NoError(t, err)
	assert.Equal(t, host.None, vt)

	require.NoError(t, m.StoreWrite(p, 0, []byte("hello")))
	vt, err = m.StoreHas(p)
	require.NoError(t, err)
	assert.Equal(t, host.Value, vt)

	data, err := m.StoreRead(p, 0, 100)
	require.NoError(t, err)
	assert.Equal(t, []byte("hello"), data)

	size, err := m.StoreValueSize(p)
	require.NoError(t, err)
	assert.Equal(t, 5, size)

	require.NoError(t, m.StoreDelete(p))
	_, err = m.StoreRead(p, 0, 100)
	var rerr host.RuntimeError
	require.ErrorAs(t, err, &rerr)
	assert.Equal(t, host.PathNotFound, rerr.Kind)
}

func TestMemStoreSubkeys(t *testing.T) {
	m := host.NewMemStore(host.RollupMetadata{})
	base, err := host.NewPath("/accounts")
	require.NoError(t, err)
	for _, name := range []string{"/accounts/bob", "/accounts/alice"} {
		p, err := host.NewPath(name)
		require.NoError(t, err)
		require.NoError(t, m.StoreWrite(p, 0, []byte("x")))
	}

	count, err := m.StoreCountSubkeys(base)
	require.NoError(t, err)
	assert.EqualValues(t, 2, count)

	first, err := m.StoreGetSubkey(base, 0)
	require.NoError(t, err)
	assert.Equal(t, "/accounts/alice", first.String())

	_, err = m.StoreGetSubkey(base, 5)
	var rerr host.RuntimeError
	require.ErrorAs(t, err, &rerr)
	assert.Equal(t, host.StoreListIndexOutOfBounds, rerr.Kind)
}

func TestMemStoreWriteOutputAndDebug(t *testing.T) {
	m := host.NewMemStore(host.RollupMetadata{})
	require.NoError(t, m.WriteOutput([]byte("result")))
	m.WriteDebug("trace line")
	assert.Equal(t, [][]byte{[]byte("result")}, m.Outputs())
	assert.Equal(t, []string{"trace line"}, m.DebugLog())
}

func TestMemStoreRevealPreimageAndMetadata(t *testing.T) {
	m := host.NewMemStore(host.RollupMetadata{Address: []byte("addr"), Level: 3})
	var hash [32]byte
	hash[0] = 0xAB
	m.SeedPreimage(hash, []byte("preimage-bytes"))

	data, err := m.RevealPreimage(hash, 100)
	require.NoError(t, err)
	assert.Equal(t, []byte("preimage-bytes"), data)

	meta, err := m.RevealMetadata()
	require.NoError(t, err)
	assert.Equal(t, uint32(3), meta.Level)
}

func TestMemStoreMarkForReboot(t *testing.T) {
	m := host.NewMemStore(host.RollupMetadata{})
	assert.False(t, m.Rebooted())
	require.NoError(t, m.MarkForReboot())
	assert.True(t, m.Rebooted())
}
