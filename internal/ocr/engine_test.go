package ocr

import (
	"context"
	"errors"
	"testing"
)

// fakeEngine records its lifecycle for assertions.
type fakeEngine struct {
	text     string
	err      error
	closeErr error
	closed   int
	calls    int
}

func (f *fakeEngine) Recognize(ctx context.Context, image []byte) (string, error) {
	f.calls++
	return f.text, f.err
}

func (f *fakeEngine) Close() error {
	f.closed++
	return f.closeErr
}

func factoryFor(e *fakeEngine, created *int) Factory {
	return func() (Engine, error) {
		*created++
		return e, nil
	}
}

func TestRecognize(t *testing.T) {
	e := &fakeEngine{text: "  Ingredients: E100, E330\n"}
	created := 0

	text, err := Recognize(context.Background(), factoryFor(e, &created), []byte("img"))
	if err != nil {
		t.Fatalf("Recognize failed: %v", err)
	}
	if text != "Ingredients: E100, E330" {
		t.Errorf("text: got %q", text)
	}
	if created != 1 || e.calls != 1 || e.closed != 1 {
		t.Errorf("lifecycle: created=%d calls=%d closed=%d, want 1/1/1", created, e.calls, e.closed)
	}
}

func TestRecognize_ReleasesOnFailure(t *testing.T) {
	boom := errors.New("bad image")
	e := &fakeEngine{err: boom}
	created := 0

	_, err := Recognize(context.Background(), factoryFor(e, &created), []byte("img"))
	if !errors.Is(err, ErrEngine) || !errors.Is(err, boom) {
		t.Errorf("error: got %v, want ErrEngine wrapping cause", err)
	}
	if e.closed != 1 {
		t.Errorf("closed: got %d, want 1", e.closed)
	}
}

func TestRecognize_CloseFailure(t *testing.T) {
	e := &fakeEngine{text: "E100", closeErr: errors.New("worker stuck")}
	created := 0

	text, err := Recognize(context.Background(), factoryFor(e, &created), []byte("img"))
	if !errors.Is(err, ErrEngine) {
		t.Errorf("error: got %v, want ErrEngine", err)
	}
	if text != "" {
		t.Errorf("text: got %q, want empty on terminate failure", text)
	}
}

func TestRecognize_RecognitionErrorWinsOverClose(t *testing.T) {
	boom := errors.New("bad image")
	e := &fakeEngine{err: boom, closeErr: errors.New("worker stuck")}
	created := 0

	_, err := Recognize(context.Background(), factoryFor(e, &created), []byte("img"))
	if !errors.Is(err, boom) {
		t.Errorf("error: got %v, want recognition failure", err)
	}
}

func TestRecognize_InitFailure(t *testing.T) {
	boom := errors.New("no language data")
	factory := func() (Engine, error) { return nil, boom }

	_, err := Recognize(context.Background(), factory, []byte("img"))
	if !errors.Is(err, ErrEngine) || !errors.Is(err, boom) {
		t.Errorf("error: got %v, want ErrEngine wrapping cause", err)
	}
}

func TestRecognize_CanceledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	e := &fakeEngine{text: "E100"}
	created := 0

	_, err := Recognize(ctx, factoryFor(e, &created), []byte("img"))
	if !errors.Is(err, ErrEngine) || !errors.Is(err, context.Canceled) {
		t.Errorf("error: got %v, want ErrEngine wrapping context.Canceled", err)
	}
	if created != 0 {
		t.Errorf("engine created %d times for a canceled context", created)
	}
}

func TestNewFactory_Unknown(t *testing.T) {
	_, err := NewFactory(Options{Backend: "paddle"})
	if !errors.Is(err, ErrNotAvailable) {
		t.Errorf("error: got %v, want ErrNotAvailable", err)
	}
}

func TestNewFactory_MissingBinary(t *testing.T) {
	_, err := NewFactory(Options{Backend: BackendCLI, Binary: "tesseract-does-not-exist-here"})
	if !errors.Is(err, ErrNotAvailable) {
		t.Errorf("error: got %v, want ErrNotAvailable", err)
	}
}

func TestProbe_MissingBinary(t *testing.T) {
	info := Probe(Options{Binary: "tesseract-does-not-exist-here"})
	if info.Available {
		t.Error("Available: got true for a missing binary")
	}
	if info.Backend != BackendCLI || info.Language != "eng" {
		t.Errorf("defaults not applied: %+v", info)
	}
	if info.Error == "" {
		t.Error("Error: got empty")
	}
}

func TestProbe_UnknownBackend(t *testing.T) {
	info := Probe(Options{Backend: "paddle"})
	if info.Available || info.Error == "" {
		t.Errorf("got %+v, want unavailable with error", info)
	}
}

func TestDefaultOptions(t *testing.T) {
	o := Options{}.withDefaults()
	if o != DefaultOptions() {
		t.Errorf("withDefaults of zero Options: got %+v, want %+v", o, DefaultOptions())
	}

	custom := Options{Backend: BackendGosseract, Language: "deu", PageSegMode: 6}.withDefaults()
	if custom.Backend != BackendGosseract || custom.Language != "deu" || custom.PageSegMode != 6 || custom.Binary != "tesseract" {
		t.Errorf("withDefaults overrode set fields: %+v", custom)
	}
}
