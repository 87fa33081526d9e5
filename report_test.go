package davit

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleSession(t *testing.T) (*Crane, *Logbook, *Checklist) {
	t.Helper()

	logbook := NewLogbook(64)
	crane := NewCrane(Config{Logbook: logbook})
	checklist := NewChecklist(logbook)

	checklist.Run()
	crane.Dispatch(CmdHoist)
	crane.Stop("Load landed")

	return crane, logbook, checklist
}

func TestGenerateSessionReport(t *testing.T) {
	crane, logbook, checklist := sampleSession(t)
	dir := t.TempDir()

	report := SessionReport{
		Title:       "Crane working session",
		StartedAt:   time.Now().Add(-time.Minute),
		Status:      crane.Status(),
		Checklist:   checklist.Items(),
		Entries:     logbook.Entries(),
		FaultReport: crane.Faults().DetailedReport(),
	}

	path, err := NewReportGenerator(dir).Generate(report)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "index.html"), path)

	html, err := os.ReadFile(path)
	require.NoError(t, err)

	content := string(html)
	assert.Contains(t, content, "Crane working session")
	assert.Contains(t, content, "Hoisting: raising the load")
	assert.Contains(t, content, "Load landed")
	assert.Contains(t, content, wantChecklist[0])
	assert.Contains(t, content, "idle")
	assert.Contains(t, content, "crane fault report")
}

func TestGenerateReportCreatesDirectory(t *testing.T) {
	crane, logbook, checklist := sampleSession(t)
	dir := filepath.Join(t.TempDir(), "nested", "reports")

	report := SessionReport{
		Title:     "session",
		Status:    crane.Status(),
		Checklist: checklist.Items(),
		Entries:   logbook.Entries(),
	}

	path, err := NewReportGenerator(dir).Generate(report)
	require.NoError(t, err)
	assert.FileExists(t, path)
}

func TestAttachFrameEmbedsDataURL(t *testing.T) {
	_, logbook, _ := sampleSession(t)
	dir := t.TempDir()

	framePath := filepath.Join(dir, "logbook.png")
	renderer := NewFrameRenderer(DefaultFrameConfig())
	renderer.RenderText(logbook.Render())
	require.NoError(t, renderer.CaptureFrame(framePath))

	report := SessionReport{Title: "session"}
	generator := NewReportGenerator(dir)
	require.NoError(t, generator.AttachFrame(&report, "Logbook", framePath))

	require.Len(t, report.Frames, 1)
	assert.Equal(t, "Logbook", report.Frames[0].Label)
	assert.Contains(t, string(report.Frames[0].DataURL), "data:image/png;base64,")

	path, err := generator.Generate(report)
	require.NoError(t, err)

	html, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(html), "data:image/png;base64,")
}

func TestGenerateReportRendersFinalView(t *testing.T) {
	crane, logbook, checklist := sampleSession(t)

	report := SessionReport{
		Title:     "session",
		Status:    crane.Status(),
		Checklist: checklist.Items(),
		Entries:   logbook.Entries(),
		FinalView: ViewToHTML("\x1b[31mOVERLOAD\x1b[0m mode idle"),
	}

	path, err := NewReportGenerator(t.TempDir()).Generate(report)
	require.NoError(t, err)

	html, err := os.ReadFile(path)
	require.NoError(t, err)

	content := string(html)
	assert.Contains(t, content, "Console at shutdown")
	assert.Contains(t, content, `<span style="color: #f87171">OVERLOAD</span>`)

	// Without a captured view the section is omitted entirely.
	report.FinalView = ""
	path, err = NewReportGenerator(t.TempDir()).Generate(report)
	require.NoError(t, err)
	html, err = os.ReadFile(path)
	require.NoError(t, err)
	assert.NotContains(t, string(html), "Console at shutdown")
}

func TestAttachFrameMissingFile(t *testing.T) {
	report := SessionReport{}
	err := NewReportGenerator(t.TempDir()).AttachFrame(&report, "missing", "does-not-exist.png")
	assert.Error(t, err)
	assert.Empty(t, report.Frames)
}
