package guard_test

import (
	"context"
	"errors"
	"testing"

	"github.com/kenjiz/guard-vm/asyncvalue"
	"github.com/kenjiz/guard-vm/guard"
)

func TestCoordinateWith_ImmediateDispatch(t *testing.T) {
	src := guard.New(asyncvalue.Data(5))
	dst := guard.NewCoordinated(asyncvalue.Loading[int]())

	var got []int
	guard.CoordinateWith(dst, src, func(v int) {
		got = append(got, v)
		dst.SetData(v * 10)
	})

	// Dispatched synchronously against the source's current state before
	// CoordinateWith returned.
	if len(got) != 1 || got[0] != 5 {
		t.Fatalf("onData saw %v, want [5]", got)
	}
	if v, ok := dst.State().Value(); !ok || v != 50 {
		t.Errorf("dependent state = %v, want Data(50)", dst.State())
	}
}

func TestCoordinateWith_WithoutImmediateDispatch(t *testing.T) {
	src := guard.New(asyncvalue.Data(5))
	dst := guard.NewCoordinated(asyncvalue.Loading[int]())

	called := false
	guard.CoordinateWith(dst, src, func(int) { called = true },
		guard.WithoutImmediateDispatch())

	if called {
		t.Error("onData ran despite WithoutImmediateDispatch")
	}
	if !dst.State().IsLoading() {
		t.Errorf("dependent state = %v, want untouched Loading", dst.State())
	}
}

func TestCoordinateWith_PropagatesSourceTransitions(t *testing.T) {
	src := guard.New(asyncvalue.Loading[int]())
	dst := guard.NewCoordinated(asyncvalue.Loading[string]())

	guard.CoordinateWith(dst, src, func(v int) {
		dst.SetData("derived")
	})

	src.Guard(context.Background(), func(context.Context) (int, error) { return 1, nil })

	if v, ok := dst.State().Value(); !ok || v != "derived" {
		t.Errorf("dependent state = %v, want Data(derived)", dst.State())
	}
}

func TestCoordinateWith_ErrorDefaultPropagation(t *testing.T) {
	src := guard.New(asyncvalue.Loading[int]())
	dst := guard.NewCoordinated(asyncvalue.Data("fine"))

	guard.CoordinateWith(dst, src, func(int) {})

	src.Guard(context.Background(), func(context.Context) (int, error) {
		return 0, errBoom
	})

	err, ok := dst.State().ErrorValue()
	if !ok || !errors.Is(err, errBoom) {
		t.Errorf("dependent state = %v, want propagated Error(boom)", dst.State())
	}
}

func TestCoordinateWith_CustomErrorHandler(t *testing.T) {
	src := guard.New(asyncvalue.Error[int](errBoom))
	dst := guard.NewCoordinated(asyncvalue.Data("fine"))

	var intercepted error
	guard.CoordinateWith(dst, src, func(int) {},
		guard.WithOnError(func(err error) { intercepted = err }))

	if !errors.Is(intercepted, errBoom) {
		t.Errorf("intercepted = %v, want boom", intercepted)
	}
	if v, ok := dst.State().Value(); !ok || v != "fine" {
		t.Errorf("dependent state = %v, want untouched Data(fine)", dst.State())
	}
}

func TestCoordinateWith_OnLoading(t *testing.T) {
	src := guard.New(asyncvalue.Loading[int]())
	dst := guard.NewCoordinated(asyncvalue.Data("stale"))

	loading := false
	guard.CoordinateWith(dst, src, func(int) {},
		guard.WithOnLoading(func() { loading = true }))

	if !loading {
		t.Error("onLoading not dispatched for a Loading source")
	}

	// Without the handler, Loading transitions are ignored.
	dst2 := guard.NewCoordinated(asyncvalue.Data("stale"))
	guard.CoordinateWith(dst2, src, func(int) {})
	if v, _ := dst2.State().Value(); v != "stale" {
		t.Errorf("dependent state = %v, want untouched Data(stale)", dst2.State())
	}
}

func TestCoordinateWith_ChainResolvesSynchronously(t *testing.T) {
	a := guard.NewCoordinated(asyncvalue.Loading[int]())
	b := guard.NewCoordinated(asyncvalue.Loading[int]())
	c := guard.NewCoordinated(asyncvalue.Loading[int]())

	guard.CoordinateWith(b, a, func(v int) { b.SetData(v * 2) })
	guard.CoordinateWith(c, b, func(v int) { c.SetData(v + 1) })

	a.SetData(21)

	// The whole chain resolved before SetData returned.
	if v, _ := b.State().Value(); v != 42 {
		t.Errorf("b = %v, want Data(42)", b.State())
	}
	if v, _ := c.State().Value(); v != 43 {
		t.Errorf("c = %v, want Data(43)", c.State())
	}
}

func TestCoordinateWith_MultipleSources(t *testing.T) {
	left := guard.NewCoordinated(asyncvalue.Loading[int]())
	right := guard.NewCoordinated(asyncvalue.Loading[int]())
	sum := guard.NewCoordinated(asyncvalue.Loading[int]())

	recompute := func(int) {
		l, lok := left.State().Value()
		r, rok := right.State().Value()
		if lok && rok {
			sum.SetData(l + r)
		}
	}
	guard.CoordinateWith(sum, left, recompute)
	guard.CoordinateWith(sum, right, recompute)

	left.SetData(2)
	right.SetData(3)
	if v, _ := sum.State().Value(); v != 5 {
		t.Errorf("sum = %v, want Data(5)", sum.State())
	}

	right.SetData(40)
	if v, _ := sum.State().Value(); v != 42 {
		t.Errorf("sum = %v, want Data(42)", sum.State())
	}
}

func TestCoordinatedContainer_DisposeDetaches(t *testing.T) {
	src := guard.NewCoordinated(asyncvalue.Loading[int]())
	dst := guard.NewCoordinated(asyncvalue.Loading[int]())

	calls := 0
	guard.CoordinateWith(dst, src, func(int) { calls++ })

	dst.Dispose()
	dst.Dispose()

	src.SetData(1)
	if calls != 0 {
		t.Errorf("onData ran %d times after disposal, want 0", calls)
	}

	// Detaching from an already-disposed source must not panic either.
	src.Dispose()
}

func TestCoordinateWith_OnDisposedDstIsNoOp(t *testing.T) {
	src := guard.NewCoordinated(asyncvalue.Data(1))
	dst := guard.NewCoordinated(asyncvalue.Loading[int]())
	dst.Dispose()

	calls := 0
	guard.CoordinateWith(dst, src, func(int) { calls++ })

	src.SetData(2)
	if calls != 0 {
		t.Errorf("onData ran %d times on disposed container, want 0", calls)
	}
}

func TestCoordinateWith_StreamSourceInterop(t *testing.T) {
	feed := &manualSource[int]{}
	src := guard.NewStream(asyncvalue.Loading[int]())
	dst := guard.NewCoordinated(asyncvalue.Loading[int]())

	src.GuardStream(feed, nil)
	guard.CoordinateWith(dst, src, func(v int) { dst.SetData(v) })

	feed.onValue(7)
	if v, _ := dst.State().Value(); v != 7 {
		t.Errorf("dependent state = %v, want Data(7)", dst.State())
	}
}
