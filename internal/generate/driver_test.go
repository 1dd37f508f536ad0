package generate

import (
	"context"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/synthdocs/synthgen/internal/catalog"
	"github.com/synthdocs/synthgen/internal/imaging"
	"github.com/synthdocs/synthgen/internal/split"
)

// testBoundary matches the worked example from the compositor contract.
var testBoundary = catalog.Boundary{Left: 0.1, Top: 0.1, Width: 0.5, Height: 0.3}

func testEntries() []catalog.Entry {
	return []catalog.Entry{
		{Filename: "plain.png", Composite: catalog.ModeCenter},
		{
			Filename:            "frame.png",
			Composite:           catalog.ModeEmbedded,
			Orientation:         catalog.Landscape,
			TransparentBoundary: &testBoundary,
		},
	}
}

// newTestCorpus lays out a bases/ and backgrounds/ tree in a temp dir with
// the given landscape base files (400x200) and both test backgrounds.
func newTestCorpus(t *testing.T, baseNames ...string) (root string) {
	t.Helper()
	root = t.TempDir()

	baseDir := filepath.Join(root, "bases", string(CashCard))
	if err := os.MkdirAll(baseDir, 0o755); err != nil {
		t.Fatalf("failed to create base dir: %v", err)
	}
	for _, name := range baseNames {
		writeSolidPNG(t, filepath.Join(baseDir, name), 400, 200, color.NRGBA{R: 220, G: 30, B: 30, A: 255})
	}

	bgDir := filepath.Join(root, "backgrounds")
	if err := os.MkdirAll(bgDir, 0o755); err != nil {
		t.Fatalf("failed to create background dir: %v", err)
	}
	writeSolidPNG(t, filepath.Join(bgDir, "plain.png"), 1000, 800, color.NRGBA{R: 30, G: 60, B: 200, A: 255})
	writeCutoutPNG(t, filepath.Join(bgDir, "frame.png"), 1000, 800, testBoundary)

	return root
}

func newTestDriver(root string, entries []catalog.Entry) *Driver {
	return New(Config{
		BasesDir:       filepath.Join(root, "bases"),
		BackgroundsDir: filepath.Join(root, "backgrounds"),
		OutputDir:      filepath.Join(root, "out"),
		TrainRatio:     0.8,
	}, entries, zerolog.Nop())
}

func TestGenerateProducesOutputs(t *testing.T) {
	root := newTestCorpus(t, "card_01.png")
	d := newTestDriver(root, testEntries())

	summary, err := d.Generate(context.Background(), CashCard)
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}

	if summary.Pairs != 2 || summary.Generated != 2 {
		t.Errorf("summary: got %+v, want 2 pairs generated", summary)
	}

	// Dimension laws: base 400x200 over 1000x800 backgrounds.
	centerOut := findOutput(t, filepath.Join(root, "out"), "card_01_0.jpg")
	assertDimensions(t, centerOut, 480, 384)
	embeddedOut := findOutput(t, filepath.Join(root, "out"), "card_01_1.jpg")
	assertDimensions(t, embeddedOut, 800, 640)
}

func TestGenerateIdempotent(t *testing.T) {
	root := newTestCorpus(t, "card_01.png", "card_02.png")

	first, err := newTestDriver(root, testEntries()).Generate(context.Background(), CashCard)
	if err != nil {
		t.Fatalf("first Generate failed: %v", err)
	}
	if first.Generated != 4 {
		t.Fatalf("first run: got %+v, want 4 generated", first)
	}

	// A fresh driver mimics a process restart: the skip cache lives in the
	// filesystem, not in memory.
	second, err := newTestDriver(root, testEntries()).Generate(context.Background(), CashCard)
	if err != nil {
		t.Fatalf("second Generate failed: %v", err)
	}
	if second.Generated != 0 || second.UpToDate != 4 {
		t.Errorf("second run: got %+v, want 0 generated, 4 up to date", second)
	}
}

func TestGenerateRegeneratesTouchedBase(t *testing.T) {
	root := newTestCorpus(t, "card_01.png", "card_02.png")

	if _, err := newTestDriver(root, testEntries()).Generate(context.Background(), CashCard); err != nil {
		t.Fatalf("first Generate failed: %v", err)
	}

	touched := filepath.Join(root, "bases", string(CashCard), "card_01.png")
	future := time.Now().Add(2 * time.Hour)
	if err := os.Chtimes(touched, future, future); err != nil {
		t.Fatalf("failed to touch base: %v", err)
	}

	summary, err := newTestDriver(root, testEntries()).Generate(context.Background(), CashCard)
	if err != nil {
		t.Fatalf("Generate after touch failed: %v", err)
	}

	// Only the touched base's outputs regenerate.
	if summary.Generated != 2 || summary.UpToDate != 2 {
		t.Errorf("after touch: got %+v, want 2 generated, 2 up to date", summary)
	}
}

func TestGenerateOrientationSkip(t *testing.T) {
	root := newTestCorpus(t, "card_01.png")
	entries := []catalog.Entry{{
		Filename:            "frame.png",
		Composite:           catalog.ModeEmbedded,
		Orientation:         catalog.Portrait, // bases are landscape
		TransparentBoundary: &testBoundary,
	}}

	summary, err := newTestDriver(root, entries).Generate(context.Background(), CashCard)
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}

	if summary.OrientationSkips != 1 || summary.Generated != 0 || summary.Failures != 0 {
		t.Errorf("summary: got %+v, want exactly one orientation skip", summary)
	}

	for _, bucket := range []string{"train", "test"} {
		path := filepath.Join(root, "out", bucket, "card_01_0.jpg")
		if _, err := os.Stat(path); err == nil {
			t.Errorf("skipped pair must not produce %s", path)
		}
	}
}

func TestGenerateEmptyInput(t *testing.T) {
	root := t.TempDir() // no bases tree at all

	summary, err := newTestDriver(root, testEntries()).Generate(context.Background(), CashCard)
	if err != nil {
		t.Fatalf("empty input must not be an error, got %v", err)
	}
	if summary != (Summary{}) {
		t.Errorf("summary: got %+v, want zero", summary)
	}
}

func TestGenerateRejectsUnsupportedType(t *testing.T) {
	root := newTestCorpus(t, "card_01.png")

	if _, err := newTestDriver(root, testEntries()).Generate(context.Background(), DocumentType("passport")); err == nil {
		t.Fatal("expected error for unsupported document type")
	}
}

func TestGenerateIsolatesCorruptBase(t *testing.T) {
	root := newTestCorpus(t, "card_01.png")
	bad := filepath.Join(root, "bases", string(CashCard), "zz_broken.png")
	if err := os.WriteFile(bad, []byte("not an image"), 0o644); err != nil {
		t.Fatalf("failed to write corrupt base: %v", err)
	}

	summary, err := newTestDriver(root, testEntries()).Generate(context.Background(), CashCard)
	if err != nil {
		t.Fatalf("corrupt base must not abort the batch, got %v", err)
	}

	if summary.Generated != 2 {
		t.Errorf("good base outputs: got %d generated, want 2", summary.Generated)
	}
	if summary.Failures != 2 {
		t.Errorf("corrupt base pairs: got %d failures, want 2", summary.Failures)
	}
}

func TestGenerateConcurrent(t *testing.T) {
	root := newTestCorpus(t, "card_01.png", "card_02.png", "card_03.png")
	d := New(Config{
		BasesDir:       filepath.Join(root, "bases"),
		BackgroundsDir: filepath.Join(root, "backgrounds"),
		OutputDir:      filepath.Join(root, "out"),
		TrainRatio:     0.8,
		Workers:        4,
	}, testEntries(), zerolog.Nop())

	summary, err := d.Generate(context.Background(), CashCard)
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}
	if summary.Generated != 6 {
		t.Errorf("summary: got %+v, want 6 generated", summary)
	}
}

func TestOutputName(t *testing.T) {
	tests := []struct {
		basePath string
		idx      int
		want     string
	}{
		{"license_01.png", 3, "license_01_3.jpg"},
		{filepath.Join("bases", "cash_card", "card_07.jpeg"), 0, "card_07_0.jpg"},
		{"scan.jpg", 12, "scan_12.jpg"},
	}

	for _, tt := range tests {
		if got := outputName(tt.basePath, tt.idx); got != tt.want {
			t.Errorf("outputName(%q, %d): got %q, want %q", tt.basePath, tt.idx, got, tt.want)
		}
	}
}

// findOutput locates a generated file, asserting it is in exactly the bucket
// the split assigner says it belongs to.
func findOutput(t *testing.T, outDir, name string) string {
	t.Helper()
	bucket := split.New(0.8).Assign(name)
	other := split.Train
	if bucket == split.Train {
		other = split.Test
	}

	want := filepath.Join(outDir, string(bucket), name)
	if _, err := os.Stat(want); err != nil {
		t.Fatalf("output %s not in expected bucket %s: %v", name, bucket, err)
	}
	if _, err := os.Stat(filepath.Join(outDir, string(other), name)); err == nil {
		t.Fatalf("output %s present in both buckets", name)
	}
	return want
}

func assertDimensions(t *testing.T, path string, w, h int) {
	t.Helper()
	img, err := imaging.NewImageCache().Load(path)
	if err != nil {
		t.Fatalf("failed to reload %s: %v", path, err)
	}
	if img.Bounds().Dx() != w || img.Bounds().Dy() != h {
		t.Errorf("%s: got %dx%d, want %dx%d", filepath.Base(path), img.Bounds().Dx(), img.Bounds().Dy(), w, h)
	}
}

func writeSolidPNG(t *testing.T, path string, w, h int, c color.NRGBA) {
	t.Helper()
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.SetNRGBA(x, y, c)
		}
	}
	writePNG(t, path, img)
}

// writeCutoutPNG writes an opaque green frame with a transparent rectangle
// described by boundary fractions.
func writeCutoutPNG(t *testing.T, path string, w, h int, b catalog.Boundary) {
	t.Helper()
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	x1 := int(b.Left * float64(w))
	y1 := int(b.Top * float64(h))
	x2 := int((b.Left + b.Width) * float64(w))
	y2 := int((b.Top + b.Height) * float64(h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			if x >= x1 && x < x2 && y >= y1 && y < y2 {
				img.SetNRGBA(x, y, color.NRGBA{})
			} else {
				img.SetNRGBA(x, y, color.NRGBA{R: 30, G: 180, B: 60, A: 255})
			}
		}
	}
	writePNG(t, path, img)
}

func writePNG(t *testing.T, path string, img image.Image) {
	t.Helper()
	f, err := os.Create(path)
	if err != nil {
		t.Fatalf("failed to create %s: %v", path, err)
	}
	defer f.Close()
	if err := png.Encode(f, img); err != nil {
		t.Fatalf("failed to encode %s: %v", path, err)
	}
}
