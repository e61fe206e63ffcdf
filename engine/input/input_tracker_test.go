package input

import (
	"slices"
	"sync"
	"testing"

	"github.com/Carmen-Shannon/oxy-flycam/common"
)

type fakeModifiers struct {
	shift, ctrl, alt bool
}

func (f *fakeModifiers) IsShiftHeld() bool { return f.shift }
func (f *fakeModifiers) IsCtrlHeld() bool  { return f.ctrl }
func (f *fakeModifiers) IsAltHeld() bool   { return f.alt }

func press(it InputTracker, code common.KeyCode) {
	it.AddKey(common.KeyState{Code: code})
}

func release(it InputTracker, code common.KeyCode) {
	it.RemoveKey(common.KeyState{Code: code})
}

func checkKey(t *testing.T, it InputTracker, code common.KeyCode, wantKey, wantDown, wantUp bool) {
	t.Helper()
	if got := it.IsKey(code); got != wantKey {
		t.Errorf("IsKey(%v) = %v, want %v", code, got, wantKey)
	}
	if got := it.IsKeyDown(code); got != wantDown {
		t.Errorf("IsKeyDown(%v) = %v, want %v", code, got, wantDown)
	}
	if got := it.IsKeyUp(code); got != wantUp {
		t.Errorf("IsKeyUp(%v) = %v, want %v", code, got, wantUp)
	}
}

func TestUnknownKeysAreNotHeld(t *testing.T) {
	it := NewInputTracker()
	for _, code := range []common.KeyCode{common.KeyW, common.KeySpace, common.KeyUnknown, common.KeyCode(12345)} {
		checkKey(t, it, code, false, false, false)
	}
	it.ProgressFrame()
	checkKey(t, it, common.KeyW, false, false, false)
}

func TestPressSameFrameIsRisingEdge(t *testing.T) {
	it := NewInputTracker()
	press(it, common.KeyW)
	checkKey(t, it, common.KeyW, true, true, false)
}

func TestPressThenProgressConsumesEdge(t *testing.T) {
	it := NewInputTracker()
	press(it, common.KeyW)
	it.ProgressFrame()
	checkKey(t, it, common.KeyW, true, false, false)
}

func TestReleaseIsFallingEdgeForOneFrame(t *testing.T) {
	it := NewInputTracker()
	press(it, common.KeyW)
	it.ProgressFrame()
	release(it, common.KeyW)
	checkKey(t, it, common.KeyW, false, false, true)

	it.ProgressFrame()
	checkKey(t, it, common.KeyW, false, false, false)
}

func TestRepeatedPressIsIdempotent(t *testing.T) {
	it := NewInputTracker()
	press(it, common.KeyA)
	it.ProgressFrame()
	press(it, common.KeyA)
	press(it, common.KeyA)
	checkKey(t, it, common.KeyA, true, false, false)
}

func TestDoubleProgressCollapsesEdges(t *testing.T) {
	it := NewInputTracker()
	press(it, common.KeyW)
	press(it, common.KeyS)
	it.ProgressFrame()
	release(it, common.KeyS)
	press(it, common.KeyD)

	it.ProgressFrame()
	it.ProgressFrame()

	for _, code := range []common.KeyCode{common.KeyW, common.KeyS, common.KeyD} {
		if it.IsKeyDown(code) {
			t.Errorf("IsKeyDown(%v) = true after double ProgressFrame, want false", code)
		}
		if it.IsKeyUp(code) {
			t.Errorf("IsKeyUp(%v) = true after double ProgressFrame, want false", code)
		}
	}
}

// Documents the contract violation: without ProgressFrame a held key keeps
// reporting a rising edge.
func TestNoProgressKeepsRisingEdge(t *testing.T) {
	it := NewInputTracker()
	press(it, common.KeyW)
	for frame := 0; frame < 5; frame++ {
		if !it.IsKeyDown(common.KeyW) {
			t.Fatalf("frame %d: IsKeyDown(W) = false, want true without ProgressFrame", frame)
		}
	}
}

func TestPressAndReleaseWithinOneFrame(t *testing.T) {
	it := NewInputTracker()
	press(it, common.KeyE)
	release(it, common.KeyE)
	checkKey(t, it, common.KeyE, false, false, false)
}

func TestEdgesAcrossFrameSequence(t *testing.T) {
	it := NewInputTracker()
	type frame struct {
		press, release bool
		wantKey        bool
		wantDown       bool
		wantUp         bool
	}
	frames := []frame{
		{press: true, wantKey: true, wantDown: true},
		{wantKey: true},
		{wantKey: true},
		{release: true, wantUp: true},
		{},
		{press: true, wantKey: true, wantDown: true},
	}
	for i, f := range frames {
		if f.press {
			press(it, common.KeySpace)
		}
		if f.release {
			release(it, common.KeySpace)
		}
		if got := it.IsKey(common.KeySpace); got != f.wantKey {
			t.Errorf("frame %d: IsKey = %v, want %v", i, got, f.wantKey)
		}
		if got := it.IsKeyDown(common.KeySpace); got != f.wantDown {
			t.Errorf("frame %d: IsKeyDown = %v, want %v", i, got, f.wantDown)
		}
		if got := it.IsKeyUp(common.KeySpace); got != f.wantUp {
			t.Errorf("frame %d: IsKeyUp = %v, want %v", i, got, f.wantUp)
		}
		it.ProgressFrame()
	}
}

func TestCharIsIgnoredForKeyIdentity(t *testing.T) {
	it := NewInputTracker()
	it.AddKey(common.KeyState{Code: common.KeyA, Char: 'a'})
	it.RemoveKey(common.KeyState{Code: common.KeyA, Char: 'A'})
	if it.IsKey(common.KeyA) {
		t.Error("IsKey(A) = true, want false after release with a different char")
	}
}

func TestModifiersWithoutSource(t *testing.T) {
	it := NewInputTracker()
	press(it, common.KeyLeftShift)
	if it.IsShiftHeld() || it.IsCtrlHeld() || it.IsAltHeld() {
		t.Error("modifier query returned true without a ModifierSource")
	}
}

func TestModifiersBypassTrackedKeys(t *testing.T) {
	mods := &fakeModifiers{}
	it := NewInputTracker(WithModifierSource(mods))

	// A tracked shift press does not count; only the live source does.
	press(it, common.KeyLeftShift)
	if it.IsShiftHeld() {
		t.Error("IsShiftHeld() = true from tracked key, want false")
	}

	mods.shift = true
	mods.alt = true
	if !it.IsShiftHeld() {
		t.Error("IsShiftHeld() = false, want true")
	}
	if it.IsCtrlHeld() {
		t.Error("IsCtrlHeld() = true, want false")
	}
	if !it.IsAltHeld() {
		t.Error("IsAltHeld() = false, want true")
	}

	// Modifier state is level-based and unaffected by frame boundaries.
	it.ProgressFrame()
	it.ProgressFrame()
	if !it.IsShiftHeld() {
		t.Error("IsShiftHeld() = false after ProgressFrame, want true")
	}
}

func TestHeldKeysSorted(t *testing.T) {
	it := NewInputTracker()
	press(it, common.KeyW)
	press(it, common.KeyA)
	press(it, common.KeySpace)
	press(it, common.KeyD)
	release(it, common.KeyD)

	want := []common.KeyCode{common.KeySpace, common.KeyA, common.KeyW}
	if got := it.HeldKeys(); !slices.Equal(got, want) {
		t.Errorf("HeldKeys() = %v, want %v", got, want)
	}
}

func TestReset(t *testing.T) {
	it := NewInputTracker()
	press(it, common.KeyW)
	it.ProgressFrame()
	press(it, common.KeyA)
	it.Reset()

	checkKey(t, it, common.KeyW, false, false, false)
	checkKey(t, it, common.KeyA, false, false, false)
	if got := it.HeldKeys(); len(got) != 0 {
		t.Errorf("HeldKeys() = %v after Reset, want empty", got)
	}
}

func TestConcurrentEventsAndFrames(t *testing.T) {
	it := NewInputTracker()
	var wg sync.WaitGroup
	wg.Add(2)
	go func() {
		defer wg.Done()
		for i := 0; i < 1000; i++ {
			code := common.KeyCode(int(common.KeyA) + i%26)
			press(it, code)
			release(it, code)
		}
	}()
	go func() {
		defer wg.Done()
		for i := 0; i < 1000; i++ {
			_ = it.IsKeyDown(common.KeyA)
			_ = it.IsKeyUp(common.KeyB)
			it.ProgressFrame()
		}
	}()
	wg.Wait()

	it.ProgressFrame()
	for code := common.KeyA; code <= common.KeyZ; code++ {
		checkKey(t, it, code, false, false, false)
	}
}
