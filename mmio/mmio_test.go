package mmio

import (
	"testing"
	"time"
)

func TestReadWrite(t *testing.T) {
	r := NewRegs(make([]uint32, 4))
	if r.Size() != 16 {
		t.Errorf("Size() = %d, want 16", r.Size())
	}
	r.Write(8, 0xdeadbeef)
	if got := r.Read(8); got != 0xdeadbeef {
		t.Errorf("Read(8) = %08x, want deadbeef", got)
	}
	if got := r.Read(4); got != 0 {
		t.Errorf("Read(4) = %08x, want 0", got)
	}
}

func TestBitOps(t *testing.T) {
	r := NewRegs(make([]uint32, 1))
	r.SetBits(0, 1<<3|1<<17)
	if got := r.Read(0); got != 1<<3|1<<17 {
		t.Errorf("after SetBits: %08x, want %08x", got, uint32(1<<3|1<<17))
	}
	r.ClearBits(0, 1<<3)
	if got := r.Read(0); got != 1<<17 {
		t.Errorf("after ClearBits: %08x, want %08x", got, uint32(1<<17))
	}
}

func TestPollSetAlreadySet(t *testing.T) {
	r := NewRegs([]uint32{1 << 29})
	if !r.PollSet(0, 1<<29, time.Microsecond, time.Millisecond) {
		t.Error("PollSet returned false for an already-set bit")
	}
}

func TestPollSetTimeout(t *testing.T) {
	r := NewRegs(make([]uint32, 1))
	start := time.Now()
	if r.PollSet(0, 1<<29, 10*time.Microsecond, time.Millisecond) {
		t.Error("PollSet returned true for a bit that never sets")
	}
	if elapsed := time.Since(start); elapsed < time.Millisecond {
		t.Errorf("PollSet gave up after %v, before the timeout", elapsed)
	}
}

func TestPollSetWantsAllBits(t *testing.T) {
	r := NewRegs([]uint32{1 << 0})
	if r.PollSet(0, 1<<0|1<<1, time.Microsecond, time.Millisecond) {
		t.Error("PollSet returned true with only half the mask set")
	}
}
