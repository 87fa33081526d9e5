// Command davit runs the interactive ship's crane operating console.
//
// Configuration is taken from the environment:
//
//	DAVIT_SWL               safe working load in kg (default 25000)
//	DAVIT_HOOK_LOAD         load on the hook in kg (default 12000)
//	DAVIT_LOGBOOK_CAPACITY  retained logbook entries (default 512)
//	DAVIT_JOURNAL           path of the structured journal file (off when unset)
//	DAVIT_REPORT_DIR        write an HTML session report here on exit (off when unset)
package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/teranos/davit"
	"github.com/teranos/davit/tui"
	"go.uber.org/zap"
)

func main() {
	swl := envInt("DAVIT_SWL", davit.DefaultSWL)
	hookLoad := envInt("DAVIT_HOOK_LOAD", davit.DefaultHookLoad)
	capacity := envInt("DAVIT_LOGBOOK_CAPACITY", davit.DefaultLogbookCapacity)

	logbook := davit.NewLogbook(capacity)

	// The journal writes structured entries to a file; the console owns
	// the terminal, so zap must never touch stdout here.
	if path := os.Getenv("DAVIT_JOURNAL"); path != "" {
		cfg := zap.NewDevelopmentConfig()
		cfg.OutputPaths = []string{path}
		cfg.ErrorOutputPaths = []string{path}
		logger, err := cfg.Build()
		if err != nil {
			fmt.Fprintf(os.Stderr, "failed to open journal %s: %v\n", path, err)
			os.Exit(1)
		}
		sugar := logger.Sugar()
		defer func() {
			_ = sugar.Sync()
		}()
		logbook.WithJournal(sugar)
	}

	crane := davit.NewCrane(davit.Config{
		SWL:      swl,
		HookLoad: hookLoad,
		Logbook:  logbook,
	})
	checklist := davit.NewChecklist(logbook)
	director := davit.NewDirector(crane, davit.DefaultDirectorConfig())

	startedAt := time.Now()
	crane.Note(fmt.Sprintf("Crane console ready: hook %d kg, SWL %d kg", hookLoad, swl))

	program := tea.NewProgram(tui.New(crane, logbook, checklist, director), tea.WithAltScreen())
	finalModel, err := program.Run()
	if err != nil {
		fmt.Fprintf(os.Stderr, "console error: %v\n", err)
		os.Exit(1)
	}

	var finalView string
	if model, ok := finalModel.(tui.Model); ok {
		finalView = model.ConsoleView()
	}

	if dir := os.Getenv("DAVIT_REPORT_DIR"); dir != "" {
		if path, err := writeReport(dir, startedAt, crane, checklist, director, logbook, finalView); err != nil {
			fmt.Fprintf(os.Stderr, "failed to write session report: %v\n", err)
			os.Exit(1)
		} else {
			fmt.Printf("Session report written to %s\n", path)
		}
	}
}

func writeReport(dir string, startedAt time.Time, crane *davit.Crane, checklist *davit.Checklist, director *davit.Director, logbook *davit.Logbook, finalView string) (string, error) {
	report := davit.SessionReport{
		Title:     "Crane working session",
		StartedAt: startedAt,
		Status:    crane.Status(),
		Checklist: checklist.Items(),
		Entries:   logbook.Entries(),
		FaultReport: crane.Faults().DetailedReport() + "\n" +
			director.Faults().DetailedReport(),
	}
	if finalView != "" {
		report.FinalView = davit.ViewToHTML(finalView)
	}

	generator := davit.NewReportGenerator(dir)

	// Capture the transcript as a watch-log frame and embed it.
	framePath := filepath.Join(dir, "logbook.png")
	renderer := davit.NewFrameRenderer(davit.DefaultFrameConfig())
	renderer.RenderText(logbook.Render())
	if err := renderer.CaptureFrame(framePath); err != nil {
		return "", err
	}
	if err := generator.AttachFrame(&report, "Logbook at shutdown", framePath); err != nil {
		return "", err
	}

	return generator.Generate(report)
}

func envInt(key string, fallback int) int {
	raw := os.Getenv(key)
	if raw == "" {
		return fallback
	}
	value, err := strconv.Atoi(raw)
	if err != nil {
		fmt.Fprintf(os.Stderr, "invalid %s=%q, using %d\n", key, raw, fallback)
		return fallback
	}
	return value
}
