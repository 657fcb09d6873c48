// Package job wraps ExtractText with the URI-resolution, temp-file, and
// state-machine behavior spec.md §6 describes for an asynchronous job
// front-end, reimagining the original KDE/Nepomuk OlenaTextExtractionJob
// (original_source/olenatextextractionjob.{h,cpp}) as a plain Go future
// instead of a KJob signal/slot object.
package job

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"sync"

	"github.com/deepteams/scribo"
)

// State is one point in the job's lifecycle (spec.md §6 "Pending ->
// Downloading -> Running -> Done|Failed|Canceled").
type State int

const (
	Pending State = iota
	Downloading
	Running
	Done
	Failed
	Canceled
)

func (s State) String() string {
	switch s {
	case Pending:
		return "pending"
	case Downloading:
		return "downloading"
	case Running:
		return "running"
	case Done:
		return "done"
	case Failed:
		return "failed"
	case Canceled:
		return "canceled"
	default:
		return "unknown"
	}
}

// Job resolves a file or HTTP URI to local bytes, runs the extraction
// pipeline, and reports its text result. A Job runs once; create a new one
// per extraction.
type Job struct {
	URI  string
	Opts scribo.Options

	mu    sync.Mutex
	state State
}

// New returns a Job in the Pending state.
func New(uri string, opts scribo.Options) *Job {
	return &Job{URI: uri, Opts: opts, state: Pending}
}

// State returns the job's current state.
func (j *Job) State() State {
	j.mu.Lock()
	defer j.mu.Unlock()
	return j.state
}

func (j *Job) setState(s State) {
	j.mu.Lock()
	j.state = s
	j.mu.Unlock()
}

// Run resolves the URI, extracts text, and always cleans up any temp file
// it created, on every exit path — matching the original's
// KIO::NetAccess::removeTempFile call in slotFinished, which ran whether
// extraction succeeded or not.
func (j *Job) Run(ctx context.Context) (string, error) {
	j.setState(Downloading)
	path, cleanup, err := resolveURI(ctx, j.URI)
	if err != nil {
		j.setState(Failed)
		return "", fmt.Errorf("job: resolve %q: %w", j.URI, err)
	}
	defer cleanup()

	if err := ctx.Err(); err != nil {
		j.setState(Canceled)
		return "", err
	}

	j.setState(Running)
	data, err := os.ReadFile(path)
	if err != nil {
		j.setState(Failed)
		return "", fmt.Errorf("job: read %q: %w", path, err)
	}

	text, err := scribo.ExtractText(ctx, data, j.Opts)
	if err != nil {
		var scribeErr *scribo.Error
		if errors.As(err, &scribeErr) && scribeErr.Kind == scribo.KindDegenerateOutput {
			// Non-fatal per spec.md §7: the page decoded and processed
			// fine, it just has no foreground ink to recognize.
			j.setState(Done)
			return "", nil
		}
		if ctx.Err() != nil {
			j.setState(Canceled)
		} else {
			j.setState(Failed)
		}
		return "", err
	}

	j.setState(Done)
	return text, nil
}

// resolveURI turns a file:// or bare path URI into a local path directly,
// and an http(s):// URI into a downloaded temp file path plus a cleanup
// func that removes it (spec.md §6 step 1, "Resolves a URI (file or HTTP)
// to a local path"; step 4, "Deletes the temp file").
func resolveURI(ctx context.Context, uri string) (path string, cleanup func(), err error) {
	u, err := url.Parse(uri)
	if err != nil || u.Scheme == "" || u.Scheme == "file" {
		p := uri
		if err == nil && u.Scheme == "file" {
			p = u.Path
		}
		return p, func() {}, nil
	}

	if u.Scheme != "http" && u.Scheme != "https" {
		return "", nil, fmt.Errorf("job: unsupported URI scheme %q", u.Scheme)
	}

	tmp, err := os.CreateTemp("", "scribo-*")
	if err != nil {
		return "", nil, fmt.Errorf("job: create temp file: %w", err)
	}
	cleanup = func() { os.Remove(tmp.Name()) }

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, uri, nil)
	if err != nil {
		cleanup()
		return "", nil, err
	}
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		cleanup()
		return "", nil, err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		cleanup()
		return "", nil, fmt.Errorf("job: download %q: status %s", uri, resp.Status)
	}

	if _, err := io.Copy(tmp, resp.Body); err != nil {
		tmp.Close()
		cleanup()
		return "", nil, fmt.Errorf("job: download %q: %w", uri, err)
	}
	if err := tmp.Close(); err != nil {
		cleanup()
		return "", nil, fmt.Errorf("job: close temp file: %w", err)
	}

	return tmp.Name(), cleanup, nil
}
