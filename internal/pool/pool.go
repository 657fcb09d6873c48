// Package pool provides bucketed sync.Pool byte buffers for the raster
// codec's per-row scratch allocations (internal/raster's PPM/PBM writers),
// which would otherwise allocate one row-sized slice per call on every
// debug-artifact dump. The two callers only ever ask for a PPM row
// (cols*3 bytes) or a PBM row ((cols+7)/8 bytes), so the bucket ladder is
// sized for document page widths rather than the general-purpose range a
// codec's internal buffers would need.
package pool

import "sync"

// Row-buffer size classes, spanning page widths from small crops (a few
// hundred columns) up to large multi-thousand-pixel scans.
const (
	Size1K  = 1024
	Size8K  = 8192
	Size64K = 65536
	Size1M  = 1048576
)

var sizes = [4]int{Size1K, Size8K, Size64K, Size1M}

var pools [4]sync.Pool

func init() {
	for i := range pools {
		sz := sizes[i]
		pools[i] = sync.Pool{
			New: func() any {
				b := make([]byte, sz)
				return &b
			},
		}
	}
}

// bucketIndex returns the pool index for a given size.
func bucketIndex(size int) int {
	switch {
	case size <= Size1K:
		return 0
	case size <= Size8K:
		return 1
	case size <= Size64K:
		return 2
	default:
		return 3
	}
}

// Get returns a byte slice of at least the requested size from the pool.
// The returned slice has length == size and may have a larger capacity.
// The caller must call Put when done.
func Get(size int) []byte {
	idx := bucketIndex(size)
	bp := pools[idx].Get().(*[]byte)
	b := *bp
	if cap(b) < size {
		b = make([]byte, size)
		*bp = b
		return b
	}
	return b[:size]
}

// Put returns a byte slice to the pool. The slice must have been obtained
// from Get. Slices smaller than Size1K are not pooled.
func Put(b []byte) {
	c := cap(b)
	if c < Size1K {
		return
	}
	idx := bucketIndex(c)
	b = b[:c]
	pools[idx].Put(&b)
}
