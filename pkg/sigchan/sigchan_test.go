package sigchan

import "testing"

func TestEmitNeverBlocks(t *testing.T) {
	c := New(1)
	for i := 0; i < 100; i++ {
		c.Emit()
	}
	select {
	case <-c.C():
	default:
		t.Fatal("no signal pending after Emit")
	}
	select {
	case <-c.C():
		t.Fatal("overflow signals were not dropped")
	default:
	}
}
