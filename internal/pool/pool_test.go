package pool

import (
	"runtime"
	"sync"
	"testing"
)

func TestGetPut_ExactSize(t *testing.T) {
	tests := []struct {
		name string
		size int
	}{
		{"1K", 1024},
		{"8K", 8192},
		{"64K", 65536},
		{"1M", 1048576},
		{"500B", 500},
		{"3000B", 3000},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := Get(tt.size)
			if len(b) != tt.size {
				t.Errorf("Get(%d): len = %d, want %d", tt.size, len(b), tt.size)
			}
			Put(b)
		})
	}
}

func TestGetPut_LargeCapacity(t *testing.T) {
	// For each size class, request a size within that class and verify
	// the capacity is at least the size class minimum.
	tests := []struct {
		name   string
		size   int
		minCap int
	}{
		{"bucket0_exact", 1024, 1024},
		{"bucket0_small", 500, 1024},
		{"bucket1_exact", 8192, 8192},
		{"bucket1_mid", 4096, 8192},
		{"bucket2_exact", 65536, 65536},
		{"bucket3_exact", 1048576, 1048576},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := Get(tt.size)
			if cap(b) < tt.minCap {
				t.Errorf("Get(%d): cap = %d, want >= %d", tt.size, cap(b), tt.minCap)
			}
			Put(b)
		})
	}
}

func TestGet_SmallSize(t *testing.T) {
	sizes := []int{1, 10, 64, 512, 1023}
	for _, size := range sizes {
		b := Get(size)
		if len(b) != size {
			t.Errorf("Get(%d): len = %d, want %d", size, len(b), size)
		}
		// Small sizes go to bucket 0 (1K), so cap should be >= 1024.
		if cap(b) < Size1K {
			t.Errorf("Get(%d): cap = %d, want >= %d", size, cap(b), Size1K)
		}
		Put(b)
	}
}

func TestGet_LargeSize(t *testing.T) {
	// Sizes larger than 1MB go to bucket 3 (1M pool).
	// The pool's New creates 1M slices, so Get must handle the case
	// where cap(b) < size by allocating a new slice.
	largeSize := 2 * 1048576 // 2MB
	b := Get(largeSize)
	if len(b) != largeSize {
		t.Errorf("Get(%d): len = %d, want %d", largeSize, len(b), largeSize)
	}
	if cap(b) < largeSize {
		t.Errorf("Get(%d): cap = %d, want >= %d", largeSize, cap(b), largeSize)
	}
	Put(b)

	// Also test a size just above 1MB.
	justOver := 1048576 + 1
	b2 := Get(justOver)
	if len(b2) != justOver {
		t.Errorf("Get(%d): len = %d, want %d", justOver, len(b2), justOver)
	}
	Put(b2)
}

func TestPut_SmallSlice(t *testing.T) {
	// Put of slices with cap < 1K should be a no-op (not panic).
	small := make([]byte, 100)
	Put(small) // Should not panic.

	tiny := make([]byte, 0, 10)
	Put(tiny) // Should not panic.

	// Verify the pool still works correctly after putting small slices.
	b := Get(1024)
	if len(b) != 1024 {
		t.Errorf("Get(1024) after small Put: len = %d, want 1024", len(b))
	}
	Put(b)
}

func TestConcurrency(t *testing.T) {
	const goroutines = 32
	const iterations = 100

	var wg sync.WaitGroup
	wg.Add(goroutines)

	for g := 0; g < goroutines; g++ {
		go func() {
			defer wg.Done()
			for i := 0; i < iterations; i++ {
				// Vary sizes across all bucket classes.
				for _, size := range []int{512, 2048, 8192, 32768, 131072, 524288} {
					b := Get(size)
					if len(b) != size {
						t.Errorf("concurrent Get(%d): len = %d", size, len(b))
						return
					}
					// Write to the buffer to detect data races.
					for j := range b {
						b[j] = byte(j)
					}
					Put(b)
				}
			}
		}()
	}

	wg.Wait()
}

func TestBucketIndex(t *testing.T) {
	// Verify that bucketIndex maps each size to the expected size class.
	tests := []struct {
		name       string
		size       int
		wantBucket int
		wantMinCap int
	}{
		{"1->bucket0", 1, 0, Size1K},
		{"1024->bucket0", 1024, 0, Size1K},
		{"1025->bucket1", 1025, 1, Size8K},
		{"8192->bucket1", 8192, 1, Size8K},
		{"8193->bucket2", 8193, 2, Size64K},
		{"65536->bucket2", 65536, 2, Size64K},
		{"65537->bucket3", 65537, 3, Size1M},
		{"1048576->bucket3", 1048576, 3, Size1M},
		{"2097152->bucket3", 2097152, 3, Size1M},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			idx := bucketIndex(tt.size)
			if idx != tt.wantBucket {
				t.Errorf("bucketIndex(%d) = %d, want %d", tt.size, idx, tt.wantBucket)
			}
		})
	}
}

func TestReuse(t *testing.T) {
	// Verify that after Put + GC, a subsequent Get can still provide a
	// valid buffer (sync.Pool may or may not retain objects across GC,
	// so this checks correctness rather than reuse itself).
	const size = 8192
	b := Get(size)
	if len(b) != size {
		t.Fatalf("Get(%d): len = %d", size, len(b))
	}

	sentinel := byte(0xAB)
	b[0] = sentinel
	b[size-1] = sentinel

	savedCap := cap(b)
	Put(b)

	runtime.GC()

	b2 := Get(size)
	if len(b2) != size {
		t.Fatalf("Get(%d) after reuse: len = %d", size, len(b2))
	}
	if cap(b2) < savedCap {
		if cap(b2) < Size8K {
			t.Errorf("Get(%d) after reuse: cap = %d, want >= %d", size, cap(b2), Size8K)
		}
	}
	Put(b2)

	for i := 0; i < 10; i++ {
		buf := Get(size)
		if len(buf) != size {
			t.Errorf("cycle %d: Get(%d) len = %d", i, size, len(buf))
		}
		Put(buf)
	}
}

func TestGet_ZeroSize(t *testing.T) {
	// Edge case: requesting size 0 should not panic and return a
	// zero-length slice backed by a pooled buffer.
	b := Get(0)
	if len(b) != 0 {
		t.Errorf("Get(0): len = %d, want 0", len(b))
	}
	Put(b)
}

func TestPut_NilSlice(t *testing.T) {
	// Putting a nil slice should not panic (cap is 0, which is < 1K).
	Put(nil)
}

func BenchmarkGet(b *testing.B) {
	benchmarks := []struct {
		name string
		size int
	}{
		{"1K", 1024},
		{"8K", 8192},
		{"64K", 65536},
		{"1M", 1048576},
	}
	for _, bm := range benchmarks {
		b.Run(bm.name, func(b *testing.B) {
			for i := 0; i < b.N; i++ {
				buf := Get(bm.size)
				Put(buf)
			}
		})
	}
}

func BenchmarkGetParallel(b *testing.B) {
	b.RunParallel(func(pb *testing.PB) {
		for pb.Next() {
			buf := Get(8192)
			Put(buf)
		}
	})
}
