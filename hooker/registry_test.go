package hooker

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/wnxd/hookhelper/internal/funcval"
	"github.com/wnxd/hookhelper/symbol"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func symbolName(s string) symbol.Name {
	return symbol.Name(s)
}

func TestRegistryInstall(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	r := NewRegistry(WithLogger(zap.New(core)), WithTag("test"))

	h := newFakeHandler(map[string]uintptr{
		"_Z3addii":           funcval.Addr(origAdd),
		"_ZN7Counter3addEi": funcval.Addr(counterAdd),
	})

	add := New("_Z3addii", replaceAdd)
	addOld := New("_Z3addll", replaceAdd)
	missing := New("_Z7missingv", replaceAdd)
	mem := NewMem[*counter]("_ZN7Counter3addEi", replaceCounterAdd)

	require.NoError(t, r.Register(addOld, add))
	require.NoError(t, r.Register(missing))
	require.NoError(t, r.Register(mem))
	assert.ErrorIs(t, r.Register(New("_Z3addll", replaceAdd)), ErrDuplicateTarget)

	assert.Equal(t, 3, r.Count())
	assert.Equal(t, []symbol.Name{"_Z3addll", "_Z7missingv", "_ZN7Counter3addEi"}, r.List())

	group, ok := r.Lookup("_Z3addll")
	require.True(t, ok)
	assert.Equal(t, []Entry{addOld, add}, group)
	_, ok = r.Lookup("_Z3addii")
	assert.False(t, ok)

	res := r.Install(h)
	assert.Equal(t, []symbol.Name{"_Z3addll", "_ZN7Counter3addEi"}, res.Hooked)
	assert.Equal(t, []symbol.Name{"_Z7missingv"}, res.Failed)
	assert.False(t, res.OK())

	assert.True(t, add.Hooked())
	assert.False(t, addOld.Hooked())
	assert.True(t, mem.Hooked())

	errs := logs.FilterLevelExact(zapcore.ErrorLevel).All()
	require.Len(t, errs, 1)
	assert.Equal(t, "test", errs[0].ContextMap()["tag"])
	assert.Equal(t, "_Z7missingv", errs[0].ContextMap()["symbol"])

	// A second pass does not patch twice.
	hooks := len(h.hooks)
	r.Install(h)
	assert.Len(t, h.hooks, hooks)
}

func TestRegistryAllHooked(t *testing.T) {
	r := NewRegistry()
	h := newFakeHandler(map[string]uintptr{"foo": funcval.Addr(origAdd)})
	r.MustRegister(New("foo", replaceAdd))

	res := r.Install(h)
	assert.True(t, res.OK())
	assert.Panics(t, func() { r.MustRegister(New("foo", replaceAdd)) })
}

func TestDefaultRegistry(t *testing.T) {
	saved := DefaultRegistry
	DefaultRegistry = NewRegistry()
	t.Cleanup(func() { DefaultRegistry = saved })

	h := newFakeHandler(map[string]uintptr{"foo": funcval.Addr(origAdd)})
	require.NoError(t, Register(New("foo", replaceAdd)))
	MustRegister(New("bar", replaceAdd))

	res := Install(h)
	assert.Equal(t, []symbol.Name{"foo"}, res.Hooked)
	assert.Equal(t, []symbol.Name{"bar"}, res.Failed)
}

func TestRegistryConcurrentInstall(t *testing.T) {
	r := NewRegistry()
	h := newFakeHandler(map[string]uintptr{
		"foo": funcval.Addr(origAdd),
		"add": funcval.Addr(counterAdd),
	})
	foo := New("foo", replaceAdd)
	mem := NewMem[*counter]("add", replaceCounterAdd)
	r.MustRegister(foo)
	r.MustRegister(mem)

	var wg sync.WaitGroup
	for range 8 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			assert.True(t, r.Install(h).OK())
		}()
	}
	wg.Wait()

	assert.Equal(t, 2, h.hookCount())
	assert.True(t, foo.Hooked())
	assert.True(t, mem.Hooked())
}

func TestRegistryZeroBackup(t *testing.T) {
	orig := funcval.Addr(origAdd)
	r := NewRegistry()
	h := newFakeHandler(map[string]uintptr{"foo": orig})
	h.backups[orig] = 0
	r.MustRegister(New("foo", replaceAdd))

	assert.Equal(t, []symbol.Name{"foo"}, r.Install(h).Failed)
	assert.Equal(t, []symbol.Name{"foo"}, r.Install(h).Failed)
	assert.Equal(t, 1, h.hookCount())
}
