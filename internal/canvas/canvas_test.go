package canvas

import (
	"errors"
	"image"
	"image/color"
	"math/rand"
	"testing"
)

var (
	black = Hex(0x000000FF)
	white = Hex(0xFFFFFFFF)
)

func paintRect(c *Canvas, r image.Rectangle, col color.RGBA) {
	r = r.Intersect(c.Bounds())
	for y := r.Min.Y; y < r.Max.Y; y++ {
		for x := r.Min.X; x < r.Max.X; x++ {
			c.Set(x, y, col)
		}
	}
	c.MarkDirty(r)
}

func mustNew(t *testing.T, w, h int, bg color.RGBA, opts ...Option) *Canvas {
	t.Helper()
	c, err := New(w, h, bg, opts...)
	if err != nil {
		t.Fatalf("New(%d, %d): %v", w, h, err)
	}
	return c
}

func TestNewRejectsInvalidSize(t *testing.T) {
	for _, sz := range [][2]int{{0, 4}, {4, 0}, {-1, 3}} {
		if _, err := New(sz[0], sz[1], black); !errors.Is(err, ErrInvalidSize) {
			t.Errorf("New(%d, %d) error = %v, want ErrInvalidSize", sz[0], sz[1], err)
		}
	}
}

func TestFromImageRebasesAndCopies(t *testing.T) {
	src := image.NewRGBA(image.Rect(10, 20, 13, 22))
	src.SetRGBA(10, 20, white)
	c, err := FromImage(src)
	if err != nil {
		t.Fatalf("FromImage: %v", err)
	}
	if got := c.Bounds(); got != image.Rect(0, 0, 3, 2) {
		t.Fatalf("bounds = %v, want (0,0)-(3,2)", got)
	}
	if got := c.At(0, 0); got != white {
		t.Fatalf("At(0,0) = %v, want %v", got, white)
	}
	src.SetRGBA(10, 20, black)
	if got := c.At(0, 0); got != white {
		t.Fatalf("canvas shares memory with source: At(0,0) = %v", got)
	}
	if !c.inSync() {
		t.Fatal("backup differs from pixels after creation")
	}
}

func TestUndoRestoresPaintedSquare(t *testing.T) {
	c := mustNew(t, 4, 4, black)
	paintRect(c, image.Rect(1, 1, 3, 3), white)
	if !c.Commit() {
		t.Fatal("Commit returned false for a dirty canvas")
	}
	if !c.Undo() {
		t.Fatal("Undo returned false")
	}
	for y := 0; y < 4; y++ {
		for x := 0; x < 4; x++ {
			if got := c.At(x, y); got != black {
				t.Fatalf("pixel (%d,%d) = %v, want %v", x, y, got, black)
			}
		}
	}
	if c.UndoCount() != 0 || c.RedoCount() != 1 {
		t.Fatalf("undo/redo = %d/%d, want 0/1", c.UndoCount(), c.RedoCount())
	}
	if !c.Redo() {
		t.Fatal("Redo returned false")
	}
	if got := c.At(2, 2); got != white {
		t.Fatalf("pixel (2,2) after redo = %v, want %v", got, white)
	}
	if got := c.At(0, 0); got != black {
		t.Fatalf("pixel (0,0) after redo = %v, want %v", got, black)
	}
	if !c.inSync() {
		t.Fatal("backup differs from pixels after redo")
	}
}

func TestCommitWithoutChanges(t *testing.T) {
	c := mustNew(t, 4, 4, black)
	if c.Commit() {
		t.Fatal("Commit stored an undo point for a clean canvas")
	}
	if c.UndoCount() != 0 || c.RedoCount() != 0 {
		t.Fatalf("undo/redo = %d/%d, want 0/0", c.UndoCount(), c.RedoCount())
	}
	for _, p := range c.history.points {
		if p != nil {
			t.Fatal("history slot populated after empty commit")
		}
	}
	if c.Modified() {
		t.Fatal("empty commit marked canvas as modified")
	}
}

func TestUndoRedoOnEmptyHistory(t *testing.T) {
	c := mustNew(t, 2, 2, black)
	if c.Undo() {
		t.Fatal("Undo succeeded with no history")
	}
	if c.Redo() {
		t.Fatal("Redo succeeded with no history")
	}
}

func TestUndoDiscardsUncommittedPaint(t *testing.T) {
	c := mustNew(t, 5, 5, black)
	paintRect(c, image.Rect(0, 0, 2, 2), white)
	c.Commit()
	paintRect(c, image.Rect(3, 3, 5, 5), white)
	if !c.Dirty() {
		t.Fatal("expected dirty canvas")
	}
	if !c.Undo() {
		t.Fatal("Undo returned false")
	}
	if c.Dirty() {
		t.Fatal("dirty rectangle not cleared by undo")
	}
	if got := c.At(4, 4); got != black {
		t.Fatalf("uncommitted pixel survived undo: %v", got)
	}
	if got := c.At(0, 0); got != black {
		t.Fatalf("committed pixel not undone: %v", got)
	}
	if !c.inSync() {
		t.Fatal("backup differs from pixels after undo")
	}
}

func TestRevert(t *testing.T) {
	c := mustNew(t, 3, 3, black)
	paintRect(c, image.Rect(1, 1, 2, 2), white)
	c.Revert()
	if c.Dirty() {
		t.Fatal("Revert left the canvas dirty")
	}
	if got := c.At(1, 1); got != black {
		t.Fatalf("At(1,1) = %v after revert, want %v", got, black)
	}
	if c.UndoCount() != 0 {
		t.Fatalf("Revert recorded history: undo = %d", c.UndoCount())
	}
}

func TestHistoryIsBounded(t *testing.T) {
	const size = 4
	c := mustNew(t, 10, 1, black, WithHistorySize(size))
	for i := 0; i < 10; i++ {
		paintRect(c, image.Rect(i, 0, i+1, 1), white)
		c.Commit()
		if c.UndoCount() > size {
			t.Fatalf("undo count %d exceeds capacity %d", c.UndoCount(), size)
		}
	}
	if c.UndoCount() != size {
		t.Fatalf("undo count = %d, want %d", c.UndoCount(), size)
	}
	undone := 0
	for c.Undo() {
		undone++
	}
	if undone != size {
		t.Fatalf("undid %d steps, want %d", undone, size)
	}
	for x := 0; x < 10; x++ {
		want := white
		if x >= 10-size {
			want = black
		}
		if got := c.At(x, 0); got != want {
			t.Fatalf("pixel %d = %v, want %v", x, got, want)
		}
	}
	if c.RedoCount() != size {
		t.Fatalf("redo count = %d, want %d", c.RedoCount(), size)
	}
}

func TestNewCommitDiscardsRedo(t *testing.T) {
	c := mustNew(t, 3, 1, black)
	paintRect(c, image.Rect(0, 0, 1, 1), white)
	c.Commit()
	paintRect(c, image.Rect(1, 0, 2, 1), white)
	c.Commit()
	c.Undo()
	if c.RedoCount() != 1 {
		t.Fatalf("redo count = %d, want 1", c.RedoCount())
	}
	red := color.RGBA{R: 255, A: 255}
	paintRect(c, image.Rect(2, 0, 3, 1), red)
	c.Commit()
	if c.RedoCount() != 0 {
		t.Fatalf("redo count = %d after new commit, want 0", c.RedoCount())
	}
	if c.Redo() {
		t.Fatal("discarded redo state is still reachable")
	}
	if got := c.At(1, 0); got != black {
		t.Fatalf("pixel 1 = %v, want discarded edit to stay undone", got)
	}
	for _, p := range c.history.points {
		if p != nil && p.rect == image.Rect(1, 0, 2, 1) {
			t.Fatal("discarded undo point still held by history")
		}
	}
}

func TestRandomEditsKeepBackupInSync(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	c := mustNew(t, 16, 12, black, WithHistorySize(8))
	var states [][]byte
	states = append(states, append([]byte(nil), c.Image().Pix...))
	for i := 0; i < 30; i++ {
		x, y := rng.Intn(16), rng.Intn(12)
		r := sized(x, y, rng.Intn(9)-4, rng.Intn(9)-4).Canon()
		col := color.RGBA{uint8(rng.Intn(256)), uint8(rng.Intn(256)), uint8(rng.Intn(256)), 255}
		paintRect(c, r, col)
		if c.Commit() {
			states = append(states, append([]byte(nil), c.Image().Pix...))
		}
		if !c.inSync() {
			t.Fatalf("step %d: backup differs after commit", i)
		}
	}
	steps := c.UndoCount()
	for i := 1; i <= steps; i++ {
		if !c.Undo() {
			t.Fatalf("undo %d failed", i)
		}
		if !c.inSync() {
			t.Fatalf("undo %d: backup differs", i)
		}
		want := states[len(states)-1-i]
		if string(c.Image().Pix) != string(want) {
			t.Fatalf("undo %d: pixels do not match recorded state", i)
		}
	}
	for i := steps - 1; i >= 0; i-- {
		if !c.Redo() {
			t.Fatalf("redo failed with %d remaining", i)
		}
		want := states[len(states)-1-i]
		if string(c.Image().Pix) != string(want) {
			t.Fatalf("redo: pixels do not match recorded state (%d remaining)", i)
		}
	}
}

func TestSinkReceivesChangedRects(t *testing.T) {
	var got []image.Rectangle
	sink := SinkFunc(func(img *image.RGBA, r image.Rectangle) { got = append(got, r) })
	c := mustNew(t, 8, 8, black, WithSink(sink))
	if len(got) != 1 || got[0] != c.Bounds() {
		t.Fatalf("creation refresh = %v, want full bounds", got)
	}
	got = nil
	paintRect(c, image.Rect(-2, -2, 2, 2), white)
	if len(got) != 1 || got[0] != image.Rect(0, 0, 2, 2) {
		t.Fatalf("paint refresh = %v, want clipped (0,0)-(2,2)", got)
	}
	got = nil
	c.Commit()
	c.Undo()
	if len(got) != 2 || got[1] != image.Rect(0, 0, 2, 2) {
		t.Fatalf("commit/undo refresh = %v", got)
	}
}

func TestModifiedFlag(t *testing.T) {
	c := mustNew(t, 2, 2, black)
	paintRect(c, image.Rect(0, 0, 1, 1), white)
	if c.Modified() {
		t.Fatal("uncommitted paint marked canvas as modified")
	}
	c.Commit()
	if !c.Status().Modified {
		t.Fatal("commit did not mark canvas as modified")
	}
	c.MarkSaved()
	if c.Modified() {
		t.Fatal("MarkSaved did not clear the flag")
	}
	c.Undo()
	if !c.Modified() {
		t.Fatal("undo did not mark canvas as modified")
	}
}

func TestCloseDropsHistoryAndSink(t *testing.T) {
	refreshes := 0
	sink := SinkFunc(func(*image.RGBA, image.Rectangle) { refreshes++ })
	c := mustNew(t, 4, 4, black, WithSink(sink), WithHistorySize(3))
	paintRect(c, image.Rect(0, 0, 2, 2), white)
	c.Commit()
	if st := c.Status(); st.UndoCount != 1 || st.HistorySize != 3 {
		t.Fatalf("status before close = %+v", st)
	}
	c.Close()
	refreshes = 0
	if c.Undo() {
		t.Fatal("undo succeeded after Close")
	}
	paintRect(c, image.Rect(2, 2, 3, 3), white)
	if refreshes != 0 {
		t.Fatalf("closed canvas refreshed the sink %d times", refreshes)
	}
	if c.At(0, 0) != white {
		t.Fatal("Close changed the pixels")
	}
}

func TestHexPack(t *testing.T) {
	c := Hex(0x11223344)
	if c != (color.RGBA{0x11, 0x22, 0x33, 0x44}) {
		t.Fatalf("Hex = %+v", c)
	}
	if v := Pack(c); v != 0x11223344 {
		t.Fatalf("Pack = %#x", v)
	}
}
