// Package mmio gives access to 32-bit hardware registers in a physical
// address window, either mapped from /dev/mem or (for tests) backed by a
// plain slice.
package mmio

import (
	"fmt"
	"log"
	"os"
	"time"
	"unsafe"

	mmap "github.com/edsrzf/mmap-go"
)

const (
	MEM_FILE  = "/dev/mem"
	PAGE_SIZE = 4096 // Theoretically, we could get this via whatever getconf does
)

// Regs is a window of 32-bit registers. All offsets passed to its methods
// are byte offsets from the window start and must be word-aligned.
// Register access is plain (non-atomic) - callers serialize operations
// touching the same register.
type Regs struct {
	words []uint32
	buf   mmap.MMap
}

// NewRegs wraps an existing word slice as a register window. This is how
// tests provide fake hardware; it also serves windows mapped by other
// means.
func NewRegs(words []uint32) *Regs {
	return &Regs{words: words}
}

// mmapToUintSlice does terrible things to a []byte (in the form of an MMap) to return it as []uint32
func mmapToUintSlice(m []byte) []uint32 {
	return unsafe.Slice((*uint32)(unsafe.Pointer(unsafe.SliceData(m))), len(m)/4)
}

// Map opens /dev/mem and maps size bytes at the given physical address into
// our address space. Since the mapping has to start at a page boundary, the
// physical address is rounded down to the nearest page boundary and the
// returned window starts at the requested address within the mapping.
func Map(physAddr uintptr, size int) (*Regs, error) {
	f, err := os.OpenFile(MEM_FILE, os.O_RDWR|os.O_SYNC, os.ModePerm)
	if err != nil {
		return nil, fmt.Errorf("couldn't open %s: %v", MEM_FILE, err)
	}

	pagemask := ^uintptr(PAGE_SIZE - 1)
	mapAddr := physAddr & pagemask
	size += int(physAddr - mapAddr)
	mm, err := mmap.MapRegion(f, size, mmap.RDWR, 0, int64(mapAddr))
	if err != nil {
		f.Close() // Ignore error
		return nil, fmt.Errorf("couldn't map region (%v, %v): %v", physAddr, size, err)
	}
	f.Close() // Ignore error

	offs := physAddr & (PAGE_SIZE - 1)
	log.Printf("Mapped %08X: got %d bytes, offset %d\n", physAddr, len(mm), offs)
	return &Regs{
		words: mmapToUintSlice(mm[offs:]),
		buf:   mm,
	}, nil
}

// Close unmaps the window if it was produced by Map.
func (r *Regs) Close() error {
	if r.buf == nil {
		return nil
	}
	return r.buf.Unmap()
}

// Size returns the window size in bytes.
func (r *Regs) Size() int {
	return len(r.words) * 4
}

func (r *Regs) Read(off uint32) uint32 {
	return r.words[off/4]
}

func (r *Regs) Write(off uint32, val uint32) {
	r.words[off/4] = val
}

func (r *Regs) SetBits(off uint32, mask uint32) {
	r.words[off/4] |= mask
}

func (r *Regs) ClearBits(off uint32, mask uint32) {
	r.words[off/4] &^= mask
}

// PollSet busy-polls the register at off, reading every interval, until all
// bits in mask read back set or timeout passes. The hardware this waits on
// has no interrupt for the polled conditions, so the wait blocks the
// calling goroutine for up to the full timeout. It returns whether the bits
// were seen set; a final read after the deadline avoids reporting a timeout
// when the bits arrived during the last sleep.
func (r *Regs) PollSet(off uint32, mask uint32, interval, timeout time.Duration) bool {
	deadline := time.Now().Add(timeout)
	for {
		if r.words[off/4]&mask == mask {
			return true
		}
		if time.Now().After(deadline) {
			return r.words[off/4]&mask == mask
		}
		time.Sleep(interval)
	}
}
