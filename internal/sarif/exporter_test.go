package sarif

import (
	"encoding/json"
	"os"
	"testing"

	"github.com/Sena-ops/lintmerge/internal/model"
)

func TestFromToolResults(t *testing.T) {
	results := []model.ToolResult{
		model.NewToolResult("clang-tidy", "ts", []model.Issue{
			{File: "./include/b.h", Line: 9, Column: 2, Severity: model.SevWarning, Message: " w ", Rule: "r2"},
			{File: "../include/a.h", Line: 0, Severity: model.SevError, Message: "e", Rule: "r1"},
		}),
		model.NewToolResult("cppcheck", "ts", []model.Issue{
			{Severity: model.SevStyle, Rule: "s"},
		}),
	}

	log := FromToolResults(results)
	if len(log.Runs) != 2 || log.Runs[0].Tool.Driver.Name != "clang-tidy" {
		t.Fatalf("unexpected runs: %+v", log.Runs)
	}

	tidy := log.Runs[0].Results
	if tidy[0].Locations[0].PhysicalLocation.ArtifactLocation.URI != "include/a.h" {
		t.Errorf("results not sorted or uri not normalized: %+v", tidy[0])
	}
	if tidy[0].Locations[0].PhysicalLocation.Region != nil {
		t.Error("unknown line must not produce a region")
	}
	if r := tidy[1].Locations[0].PhysicalLocation.Region; r == nil || r.StartLine != 9 || r.StartColumn != 2 {
		t.Errorf("region = %+v", r)
	}
	if tidy[1].Level != "warning" || tidy[1].Message.Text != "w" {
		t.Errorf("unexpected result: %+v", tidy[1])
	}

	style := log.Runs[1].Results[0]
	if style.Level != "note" || style.Locations[0].PhysicalLocation.ArtifactLocation.URI != "UNKNOWN" {
		t.Errorf("unexpected style result: %+v", style)
	}

	// the input must stay in discovery order
	if results[0].Issues[0].Rule != "r2" {
		t.Error("FromToolResults reordered its input")
	}
}

func TestExport(t *testing.T) {
	dir := t.TempDir()
	path, err := Export([]model.ToolResult{model.NewToolResult("cppcheck", "ts", nil)}, dir, "lintmerge_ts")
	if err != nil {
		t.Fatalf("Export: %v", err)
	}
	b, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	var log Log
	if err := json.Unmarshal(b, &log); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if log.Version != Version || len(log.Runs) != 1 {
		t.Errorf("unexpected log: %+v", log)
	}
}
