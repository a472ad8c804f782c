package memory

import (
	"context"
	"slices"
	"sync"

	"github.com/jhoicas/catalog-api/internal/application/catalog"
)

var _ catalog.TxRunner = (*TxRunner)(nil)

// TxRunner serializa las escrituras que comparten clave natural.
// No hay rollback: una escritura que falla a mitad conserva lo ya guardado.
type TxRunner struct {
	store     *Store
	serialize bool
	locks     *keyLocks
}

// NewTxRunner construye el runner. Con serialize en false fn se llama sin bloqueo.
func NewTxRunner(store *Store, serialize bool) *TxRunner {
	return &TxRunner{store: store, serialize: serialize, locks: newKeyLocks()}
}

// Run bloquea las claves (ordenadas, sin duplicados) y ejecuta fn.
func (r *TxRunner) Run(ctx context.Context, keys []string, fn func(repos catalog.Repos) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if !r.serialize {
		return fn(r.store.Repos())
	}
	unlock := r.locks.lock(keys)
	defer unlock()
	return fn(r.store.Repos())
}

type keyLock struct {
	mu   sync.Mutex
	refs int
}

// keyLocks conjunto de mutex por clave; una entrada vive mientras alguien la usa.
type keyLocks struct {
	mu    sync.Mutex
	locks map[string]*keyLock
}

func newKeyLocks() *keyLocks {
	return &keyLocks{locks: make(map[string]*keyLock)}
}

func (k *keyLocks) lock(keys []string) func() {
	sorted := slices.Clone(keys)
	slices.Sort(sorted)
	sorted = slices.Compact(sorted)

	held := make([]*keyLock, 0, len(sorted))
	for _, key := range sorted {
		k.mu.Lock()
		l, ok := k.locks[key]
		if !ok {
			l = &keyLock{}
			k.locks[key] = l
		}
		l.refs++
		k.mu.Unlock()

		l.mu.Lock()
		held = append(held, l)
	}

	return func() {
		for i := len(held) - 1; i >= 0; i-- {
			held[i].mu.Unlock()
			k.mu.Lock()
			held[i].refs--
			if held[i].refs == 0 {
				delete(k.locks, sorted[i])
			}
			k.mu.Unlock()
		}
	}
}
