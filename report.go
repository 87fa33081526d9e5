package davit

import (
	_ "embed"
	"encoding/base64"
	"fmt"
	"html/template"
	"os"
	"path/filepath"
	"strings"
	"time"
)

//go:embed html_templates/session_report.html
var sessionReportTemplate string

// SessionReport collects everything a finished working session produced:
// final crane status, checklist state, the full logbook transcript,
// fault summaries and any captured watch-log frames.
type SessionReport struct {
	Title       string          `json:"title"`
	StartedAt   time.Time       `json:"started_at"`
	GeneratedAt time.Time       `json:"generated_at"`
	Status      Status          `json:"status"`
	Checklist   []ChecklistItem `json:"checklist"`
	Entries     []Entry         `json:"entries"`
	FaultReport string          `json:"fault_report"`
	FinalView   template.HTML   `json:"-"` // Console view converted from ANSI
	Frames      []FrameEntry    `json:"frames"`
}

// FrameEntry is one captured watch-log frame embedded in the report.
type FrameEntry struct {
	Label   string       `json:"label"`
	DataURL template.URL `json:"data_url"` // Base64 data URL for embedding
}

// ReportGenerator writes HTML session reports.
type ReportGenerator struct {
	outputDir string
	tmpl      *template.Template
}

// NewReportGenerator creates a generator writing under outputDir.
func NewReportGenerator(outputDir string) *ReportGenerator {
	return &ReportGenerator{outputDir: outputDir}
}

// Generate writes the session report as index.html under the output
// directory and returns the written path.
func (g *ReportGenerator) Generate(report SessionReport) (string, error) {
	if err := os.MkdirAll(g.outputDir, 0755); err != nil {
		return "", fmt.Errorf("failed to create report directory: %w", err)
	}

	if report.GeneratedAt.IsZero() {
		report.GeneratedAt = time.Now()
	}

	reportPath := filepath.Join(g.outputDir, "index.html")
	file, err := os.Create(reportPath)
	if err != nil {
		return "", fmt.Errorf("failed to create report file: %w", err)
	}
	defer file.Close()

	if err := g.template().Execute(file, report); err != nil {
		return "", fmt.Errorf("failed to render report: %w", err)
	}
	return reportPath, nil
}

// AttachFrame embeds a captured PNG frame into the report as a data URL.
func (g *ReportGenerator) AttachFrame(report *SessionReport, label, imagePath string) error {
	dataURL, err := convertImageToDataURL(imagePath)
	if err != nil {
		return err
	}
	report.Frames = append(report.Frames, FrameEntry{Label: label, DataURL: dataURL})
	return nil
}

func (g *ReportGenerator) template() *template.Template {
	if g.tmpl == nil {
		g.tmpl = template.Must(template.New("session").Parse(sessionReportTemplate))
	}
	return g.tmpl
}

// convertImageToDataURL reads an image file and converts it to a base64
// data URL so reports stay self-contained.
func convertImageToDataURL(imagePath string) (template.URL, error) {
	imageBytes, err := os.ReadFile(imagePath)
	if err != nil {
		return "", fmt.Errorf("failed to read image file: %w", err)
	}

	ext := strings.ToLower(filepath.Ext(imagePath))
	mimeType := "image/png"
	if ext == ".jpg" || ext == ".jpeg" {
		mimeType = "image/jpeg"
	}

	encoded := base64.StdEncoding.EncodeToString(imageBytes)
	return template.URL(fmt.Sprintf("data:%s;base64,%s", mimeType, encoded)), nil
}
