package job

import (
	"context"
	"image"
	"image/color"
	"image/png"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/deepteams/scribo"
)

// writeTestPNG writes a small all-white page: enough to exercise decode and
// the pipeline's zero-foreground degenerate-output exit without a real scan.
func writeTestPNG(t *testing.T, path string) {
	t.Helper()
	img := image.NewGray(image.Rect(0, 0, 8, 8))
	for y := 0; y < 8; y++ {
		for x := 0; x < 8; x++ {
			img.SetGray(x, y, color.Gray{Y: 0xff})
		}
	}
	f, err := os.Create(path)
	if err != nil {
		t.Fatalf("create test fixture: %v", err)
	}
	defer f.Close()
	if err := png.Encode(f, img); err != nil {
		t.Fatalf("encode test fixture: %v", err)
	}
}

func TestJobResolvesLocalFileAndReachesDone(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "page.png")
	writeTestPNG(t, path)

	j := New(path, scribo.DefaultOptions())
	if j.State() != Pending {
		t.Fatalf("initial state = %v, want Pending", j.State())
	}

	_, err := j.Run(context.Background())
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if j.State() != Done {
		t.Errorf("final state = %v, want Done", j.State())
	}
}

func TestJobDownloadsHTTPURIAndCleansUpTempFile(t *testing.T) {
	dir := t.TempDir()
	fixture := filepath.Join(dir, "src.png")
	writeTestPNG(t, fixture)
	data, err := os.ReadFile(fixture)
	if err != nil {
		t.Fatalf("read fixture: %v", err)
	}

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write(data)
	}))
	defer srv.Close()

	j := New(srv.URL, scribo.DefaultOptions())
	before, _ := os.ReadDir(os.TempDir())

	_, err = j.Run(context.Background())
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if j.State() != Done {
		t.Errorf("final state = %v, want Done", j.State())
	}

	after, _ := os.ReadDir(os.TempDir())
	if len(after) > len(before) {
		t.Errorf("temp directory grew from %d to %d entries: temp file was not cleaned up", len(before), len(after))
	}
}

func TestJobReportsFailedForMissingFile(t *testing.T) {
	j := New("/no/such/file.png", scribo.DefaultOptions())
	if _, err := j.Run(context.Background()); err == nil {
		t.Fatal("expected an error for a missing input file")
	}
	if j.State() != Failed {
		t.Errorf("final state = %v, want Failed", j.State())
	}
}

func TestJobReportsCanceledForAlreadyCancelledContext(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "page.png")
	writeTestPNG(t, path)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	j := New(path, scribo.DefaultOptions())
	if _, err := j.Run(ctx); err == nil {
		t.Fatal("expected an error for an already-cancelled context")
	}
	if j.State() != Canceled {
		t.Errorf("final state = %v, want Canceled", j.State())
	}
}
