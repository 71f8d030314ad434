package host

import (
	"sort"
	"strings"
	"sync"

	"github.com/pkg/errors"
)

// MemStore is an in-memory Runtime, deterministic and unordered-read-free
// (StoreGetSubkey sorts lexically), grounded on the original runtime's own
// #[cfg(test)] MockSmartRollupCore: a fake sufficient to exercise the
// Runtime contract in tests, never a durable-storage backend (§1, §14
// Non-goals).
type MemStore struct {
	mu       sync.Mutex
	values   map[string][]byte
	output   [][]byte
	debug    []string
	inbox    []Message
	inboxPos int
	rebooted bool
	metadata RollupMetadata
	preimage map[[32]byte][]byte
}

// NewMemStore builds an empty store. metadata is returned verbatim by
// RevealMetadata.
func NewMemStore(metadata RollupMetadata) *MemStore {
	return &MemStore{
		values:   make(map[string][]byte),
		preimage: make(map[[32]byte][]byte),
		metadata: metadata,
	}
}

// SeedInbox queues messages for ReadInput to hand out in order.
func (m *MemStore) SeedInbox(msgs ...Message) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.inbox = append(m.inbox, msgs...)
}

// SeedPreimage registers a preimage for RevealPreimage.
func (m *MemStore) SeedPreimage(hash [32]byte, data []byte) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.preimage[hash] = append([]byte(nil), data...)
}

// Outputs returns every WriteOutput payload, in call order.
func (m *MemStore) Outputs() [][]byte {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([][]byte(nil), m.output...)
}

// DebugLog returns every WriteDebug message, in call order.
func (m *MemStore) DebugLog() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]string(nil), m.debug...)
}

// Rebooted reports whether MarkForReboot has been called.
func (m *MemStore) Rebooted() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.rebooted
}

func (m *MemStore) WriteOutput(data []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.output = append(m.output, append([]byte(nil), data...))
	return nil
}

func (m *MemStore) WriteDebug(msg string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.debug = append(m.debug, msg)
}

func (m *MemStore) ReadInput() (*Message, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.inboxPos >= len(m.inbox) {
		return nil, nil
	}
	msg := m.inbox[m.inboxPos]
	m.inboxPos++
	return &msg, nil
}

func (m *MemStore) StoreHas(path Path) (ValueType, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	_, hasValue := m.values[path.String()]
	hasSubtree := m.hasSubtreeLocked(path.String())
	switch {
	case hasValue && hasSubtree:
		return ValueWithSubtree, nil
	case hasValue:
		return Value, nil
	case hasSubtree:
		return Subtree, nil
	default:
		return None, nil
	}
}

func (m *MemStore) hasSubtreeLocked(prefix string) bool {
	p := prefix
	if !strings.HasSuffix(p, "/") {
		p += "/"
	}
	for k := range m.values {
		if k != prefix && strings.HasPrefix(k, p) {
			return true
		}
	}
	return false
}

func (m *MemStore) StoreRead(path Path, offset, maxBytes int) ([]byte, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	v, ok := m.values[path.String()]
	if !ok {
		return nil, RuntimeError{Kind: PathNotFound}
	}
	if offset > len(v) {
		return nil, nil
	}
	end := offset + maxBytes
	if end > len(v) {
		end = len(v)
	}
	return append([]byte(nil), v[offset:end]...), nil
}

func (m *MemStore) StoreWrite(path Path, offset int, data []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	existing := m.values[path.String()]
	needed := offset + len(data)
	if needed > len(existing) {
		grown := make([]byte, needed)
		copy(grown, existing)
		existing = grown
	}
	copy(existing[offset:], data)
	m.values[path.String()] = existing
	return nil
}

func (m *MemStore) StoreDelete(path Path) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	p := path.String()
	if _, ok := m.values[p]; !ok && !m.hasSubtreeLocked(p) {
		return RuntimeError{Kind: PathNotFound}
	}
	prefix := p
	if !strings.HasSuffix(prefix, "/") {
		prefix += "/"
	}
	for k := range m.values {
		if k == p || strings.HasPrefix(k, prefix) {
			delete(m.values, k)
		}
	}
	return nil
}

func (m *MemStore) StoreMove(from, to Path) error {
	if err := m.copyTree(from, to); err != nil {
		return err
	}
	return m.StoreDelete(from)
}

func (m *MemStore) StoreCopy(from, to Path) error {
	return m.copyTree(from, to)
}

func (m *MemStore) copyTree(from, to Path) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	fp, tp := from.String(), to.String()
	prefix := fp
	if !strings.HasSuffix(prefix, "/") {
		prefix += "/"
	}
	moved := false
	for k, v := range m.values {
		if k == fp {
			m.values[tp] = append([]byte(nil), v...)
			moved = true
		} else if strings.HasPrefix(k, prefix) {
			m.values[tp+strings.TrimPrefix(k, fp)] = append([]byte(nil), v...)
			moved = true
		}
	}
	if !moved {
		return RuntimeError{Kind: PathNotFound}
	}
	return nil
}

func (m *MemStore) StoreCountSubkeys(prefix Path) (int64, error) {
	keys, err := m.sortedSubkeys(prefix)
	if err != nil {
		return 0, err
	}
	return int64(len(keys)), nil
}

func (m *MemStore) StoreGetSubkey(prefix Path, index int64) (Path, error) {
	keys, err := m.sortedSubkeys(prefix)
	if err != nil {
		return Path{}, err
	}
	if index < 0 || index >= int64(len(keys)) {
		return Path{}, RuntimeError{Kind: StoreListIndexOutOfBounds}
	}
	return NewPath(keys[index])
}

// sortedSubkeys returns the immediate child path segments under prefix, as
// full paths excluding prefix's own value entry, sorted for determinism —
// the original trait leaves ordering unspecified but every test fixture
// needs one.
func (m *MemStore) sortedSubkeys(prefix Path) ([]string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	p := prefix.String()
	base := p
	if !strings.HasSuffix(base, "/") {
		base += "/"
	}
	seen := map[string]bool{}
	for k := range m.values {
		if k == p || !strings.HasPrefix(k, base) {
			continue
		}
		rest := strings.TrimPrefix(k, base)
		if i := strings.IndexByte(rest, '/'); i >= 0 {
			rest = rest[:i]
		}
		seen[base+rest] = true
	}
	out := make([]string, 0, len(seen))
	for k := range seen {
		out = append(out, k)
	}
	sort.Strings(out)
	return out, nil
}

func (m *MemStore) StoreValueSize(path Path) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	v, ok := m.values[path.String()]
	if !ok {
		return 0, RuntimeError{Kind: PathNotFound}
	}
	return len(v), nil
}

func (m *MemStore) RevealPreimage(hash [32]byte, maxBytes int) ([]byte, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	data, ok := m.preimage[hash]
	if !ok {
		return nil, errors.New("memstore: no preimage seeded for requested hash")
	}
	if maxBytes < len(data) {
		data = data[:maxBytes]
	}
	return append([]byte(nil), data...), nil
}

func (m *MemStore) RevealMetadata() (RollupMetadata, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.metadata, nil
}

func (m *MemStore) MarkForReboot() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.rebooted = true
	return nil
}

var _ Runtime = (*MemStore)(nil)
