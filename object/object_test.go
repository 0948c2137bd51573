package object

import (
	"errors"
	"fmt"
	"reflect"
	"sync"
	"sync/atomic"
	"testing"
)

// intBox is the test payload: an int64 behind the full capability
// set, with Dump/Load built on the package codec and a Finalize hook
// counting frees.
type intBox struct {
	*Core
	data      int64
	finalized *atomic.Int64
}

func newIntBox(v int64) *intBox {
	return &intBox{Core: NewCore(), data: v, finalized: &atomic.Int64{}}
}

func (b *intBox) Identity() reflect.Type { return reflect.TypeOf(b) }

func (b *intBox) New() (Value, error) { return newIntBox(0), nil }

func (b *intBox) Get() (Value, error) { return newIntBox(b.data), nil }

func (b *intBox) Set(v Value) error {
	other, ok := v.(*intBox)
	if !ok {
		return fmt.Errorf("%w: want *intBox, got %T", ErrType, v)
	}
	b.data = other.data
	return nil
}

func (b *intBox) Dump() ([]byte, error) { return Marshal(b.data) }

func (b *intBox) Load(data []byte) error { return Unmarshal(data, &b.data) }

func (b *intBox) Finalize() { b.finalized.Add(1) }

// strBox is a second payload type, used to provoke Set mismatches.
type strBox struct {
	*Core
	data string
}

func newStrBox(s string) *strBox { return &strBox{Core: NewCore(), data: s} }

func (b *strBox) Identity() reflect.Type { return reflect.TypeOf(b) }
func (b *strBox) New() (Value, error)    { return newStrBox(""), nil }
func (b *strBox) Get() (Value, error)    { return newStrBox(b.data), nil }
func (b *strBox) Set(v Value) error {
	other, ok := v.(*strBox)
	if !ok {
		return fmt.Errorf("%w: want *strBox, got %T", ErrType, v)
	}
	b.data = other.data
	return nil
}
func (b *strBox) Dump() ([]byte, error)  { return Marshal(b.data) }
func (b *strBox) Load(data []byte) error { return Unmarshal(data, &b.data) }

func mustObject(t *testing.T, v Value) *Object {
	t.Helper()
	o, err := New(v)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	return o
}

func TestNewNil(t *testing.T) {
	if _, err := New(nil); !errors.Is(err, ErrRuntime) {
		t.Errorf("New(nil) error = %v, want ErrRuntime", err)
	}
}

func TestReadWrite(t *testing.T) {
	o := mustObject(t, newIntBox(41))

	w, err := o.Write()
	if err != nil {
		t.Fatalf("Write() error = %v", err)
	}
	if err := w.Set(newIntBox(42)); err != nil {
		t.Fatalf("Set() error = %v", err)
	}
	if err := w.Close(); err != nil {
		t.Fatalf("Close() error = %v", err)
	}

	r, err := o.Read()
	if err != nil {
		t.Fatalf("Read() error = %v", err)
	}
	defer func() {
		if err := r.Close(); err != nil {
			t.Errorf("Close() error = %v", err)
		}
	}()

	got, err := r.Get()
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if got.(*intBox).data != 42 {
		t.Errorf("Get() = %d, want 42", got.(*intBox).data)
	}
}

func TestSetTypeMismatch(t *testing.T) {
	o := mustObject(t, newIntBox(1))

	w, err := o.Write()
	if err != nil {
		t.Fatal(err)
	}
	defer w.Close()

	if err := w.Set(newStrBox("nope")); !errors.Is(err, ErrType) {
		t.Errorf("Set() with wrong payload error = %v, want ErrType", err)
	}

	got, err := w.Get()
	if err != nil {
		t.Fatal(err)
	}
	if got.(*intBox).data != 1 {
		t.Errorf("payload changed on failed Set: %d, want 1", got.(*intBox).data)
	}
}

func TestDumpLoadRoundTrip(t *testing.T) {
	src := mustObject(t, newIntBox(1234567))

	r, err := src.Read()
	if err != nil {
		t.Fatal(err)
	}
	data, err := r.Dump()
	if err != nil {
		t.Fatalf("Dump() error = %v", err)
	}
	if err := r.Close(); err != nil {
		t.Fatal(err)
	}

	dst := mustObject(t, newIntBox(0))
	w, err := dst.Write()
	if err != nil {
		t.Fatal(err)
	}
	if err := w.Load(data); err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	got, err := w.Get()
	if err != nil {
		t.Fatal(err)
	}
	if err := w.Close(); err != nil {
		t.Fatal(err)
	}

	if got.(*intBox).data != 1234567 {
		t.Errorf("round trip = %d, want 1234567", got.(*intBox).data)
	}
}

func TestCloneSharesContainer(t *testing.T) {
	o := mustObject(t, newIntBox(1))

	clone, err := o.Clone()
	if err != nil {
		t.Fatalf("Clone() error = %v", err)
	}

	// A write through the original is visible through the clone:
	// cloning shares, never copies.
	w, err := o.Write()
	if err != nil {
		t.Fatal(err)
	}
	if err := w.Set(newIntBox(99)); err != nil {
		t.Fatal(err)
	}
	if err := w.Close(); err != nil {
		t.Fatal(err)
	}

	r, err := clone.Read()
	if err != nil {
		t.Fatal(err)
	}
	defer r.Close()
	got, err := r.Get()
	if err != nil {
		t.Fatal(err)
	}
	if got.(*intBox).data != 99 {
		t.Errorf("clone sees %d, want 99", got.(*intBox).data)
	}
}

func TestDropFinalizesOnce(t *testing.T) {
	box := newIntBox(7)
	o := mustObject(t, box)

	const copies = 32
	clones := make([]*Object, copies)
	var wg sync.WaitGroup
	for i := 0; i < copies; i++ {
		i := i
		wg.Add(1)
		go func() {
			defer wg.Done()
			c, err := o.Clone()
			if err != nil {
				t.Errorf("Clone() error = %v", err)
				return
			}
			clones[i] = c
		}()
	}
	wg.Wait()

	if box.finalized.Load() != 0 {
		t.Fatal("finalized before any drop")
	}

	for i, c := range clones {
		i, c := i, c
		wg.Add(1)
		go func() {
			defer wg.Done()
			if err := c.Drop(); err != nil {
				t.Errorf("Drop() clone %d error = %v", i, err)
			}
		}()
	}
	wg.Wait()

	// The original still owns a reference.
	if box.finalized.Load() != 0 {
		t.Fatal("finalized while an owner remains")
	}

	if err := o.Drop(); err != nil {
		t.Fatalf("final Drop() error = %v", err)
	}
	if got := box.finalized.Load(); got != 1 {
		t.Errorf("finalized %d times, want exactly 1", got)
	}
}

func TestDroppedObjectUnusable(t *testing.T) {
	o := mustObject(t, newIntBox(0))
	if err := o.Drop(); err != nil {
		t.Fatal(err)
	}

	if _, err := o.Clone(); !errors.Is(err, ErrRuntime) {
		t.Errorf("Clone() after drop error = %v, want ErrRuntime", err)
	}
	if _, err := o.Read(); !errors.Is(err, ErrRuntime) {
		t.Errorf("Read() after drop error = %v, want ErrRuntime", err)
	}
	if _, err := o.Write(); !errors.Is(err, ErrRuntime) {
		t.Errorf("Write() after drop error = %v, want ErrRuntime", err)
	}
	if err := o.Drop(); !errors.Is(err, ErrRuntime) {
		t.Errorf("second Drop() error = %v, want ErrRuntime", err)
	}
}

func TestTryVariants(t *testing.T) {
	o := mustObject(t, newIntBox(5))

	w, err := o.Write()
	if err != nil {
		t.Fatal(err)
	}

	if _, ok, err := o.TryRead(); err != nil || ok {
		t.Errorf("TryRead() under exclusive = %v, %v, want false, nil", ok, err)
	}
	if _, ok, err := o.TryWrite(); err != nil || ok {
		t.Errorf("TryWrite() under exclusive = %v, %v, want false, nil", ok, err)
	}

	if err := w.Close(); err != nil {
		t.Fatal(err)
	}

	r, ok, err := o.TryRead()
	if err != nil || !ok {
		t.Fatalf("TryRead() after release = %v, %v, want true, nil", ok, err)
	}

	// Readers block writers but not other readers.
	if _, ok, err := o.TryWrite(); err != nil || ok {
		t.Errorf("TryWrite() under shared = %v, %v, want false, nil", ok, err)
	}
	r2, ok, err := o.TryRead()
	if err != nil || !ok {
		t.Fatalf("second TryRead() = %v, %v, want true, nil", ok, err)
	}

	if err := r2.Close(); err != nil {
		t.Fatal(err)
	}
	if err := r.Close(); err != nil {
		t.Fatal(err)
	}
}

func TestGuardDoubleClose(t *testing.T) {
	o := mustObject(t, newIntBox(0))

	r, err := o.Read()
	if err != nil {
		t.Fatal(err)
	}
	if err := r.Close(); err != nil {
		t.Fatal(err)
	}
	if err := r.Close(); !errors.Is(err, ErrRuntime) {
		t.Errorf("second Close() error = %v, want ErrRuntime", err)
	}
	if _, err := r.Get(); !errors.Is(err, ErrRuntime) {
		t.Errorf("Get() on closed guard error = %v, want ErrRuntime", err)
	}
}

func TestConcurrentReadersWriter(t *testing.T) {
	o := mustObject(t, newIntBox(0))

	const writers = 4
	const perWriter = 50

	var wg sync.WaitGroup
	for i := 0; i < writers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < perWriter; j++ {
				w, err := o.Write()
				if err != nil {
					t.Errorf("Write() error = %v", err)
					return
				}
				cur, err := w.Get()
				if err != nil {
					t.Error(err)
					w.Close()
					return
				}
				if err := w.Set(newIntBox(cur.(*intBox).data + 1)); err != nil {
					t.Error(err)
				}
				if err := w.Close(); err != nil {
					t.Error(err)
				}
			}
		}()
	}
	wg.Wait()

	r, err := o.Read()
	if err != nil {
		t.Fatal(err)
	}
	defer r.Close()
	got, err := r.Get()
	if err != nil {
		t.Fatal(err)
	}
	if got.(*intBox).data != writers*perWriter {
		t.Errorf("counter = %d, want %d", got.(*intBox).data, writers*perWriter)
	}
}

func TestIdentity(t *testing.T) {
	o := mustObject(t, newIntBox(0))
	id, err := o.Identity()
	if err != nil {
		t.Fatal(err)
	}
	if id != reflect.TypeOf(&intBox{}) {
		t.Errorf("Identity() = %v, want %v", id, reflect.TypeOf(&intBox{}))
	}
}
