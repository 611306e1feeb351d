package output_test

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	ce "github.com/aws/aws-sdk-go-v2/service/costexplorer"
	cetypes "github.com/aws/aws-sdk-go-v2/service/costexplorer/types"

	"github.com/pankaj-dahiya-devops/costctl/internal/output"
)

// ── helpers ───────────────────────────────────────────────────────────────────

func renderToString(t *testing.T, v any, format output.Format) string {
	t.Helper()
	var buf bytes.Buffer
	if err := output.Render(&buf, v, format); err != nil {
		t.Fatalf("Render: %v", err)
	}
	return buf.String()
}

func monitorsOutput() *ce.GetAnomalyMonitorsOutput {
	return &ce.GetAnomalyMonitorsOutput{AnomalyMonitors: []cetypes.AnomalyMonitor{
		{
			MonitorArn:       aws.String("arn:aws:ce::123456789012:anomalymonitor/a"),
			MonitorName:      aws.String("services"),
			MonitorType:      cetypes.MonitorTypeDimensional,
			MonitorDimension: cetypes.MonitorDimensionService,
		},
		{
			MonitorArn:  aws.String("arn:aws:ce::123456789012:anomalymonitor/b"),
			MonitorName: aws.String("team-core"),
			MonitorType: cetypes.MonitorTypeCustom,
		},
	}}
}

// ── ParseFormat ───────────────────────────────────────────────────────────────

func TestParseFormat(t *testing.T) {
	for in, want := range map[string]output.Format{
		"":     output.FormatJSON,
		"json": output.FormatJSON,
		"YAML": output.FormatYAML,
		"text": output.FormatText,
	} {
		got, err := output.ParseFormat(in)
		if err != nil || got != want {
			t.Errorf("ParseFormat(%q) = %q, %v; want %q", in, got, err, want)
		}
	}
	if _, err := output.ParseFormat("table"); err == nil {
		t.Error("expected error for unknown format")
	}
}

// ── scalars ───────────────────────────────────────────────────────────────────

func TestRender_TextScalarIsBareLine(t *testing.T) {
	out := renderToString(t, "arn:aws:ce::123456789012:anomalymonitor/a", output.FormatText)
	if out != "arn:aws:ce::123456789012:anomalymonitor/a\n" {
		t.Errorf("got %q", out)
	}
}

func TestRender_JSONScalarIsQuoted(t *testing.T) {
	out := renderToString(t, "abc", output.FormatJSON)
	if strings.TrimSpace(out) != `"abc"` {
		t.Errorf("got %q", out)
	}
}

func TestRender_NilWritesNothing(t *testing.T) {
	for _, f := range []output.Format{output.FormatJSON, output.FormatYAML, output.FormatText} {
		if out := renderToString(t, nil, f); out != "" {
			t.Errorf("%s: got %q; want empty", f, out)
		}
	}
}

// ── whole responses ───────────────────────────────────────────────────────────

func TestRender_JSONDropsResultMetadata(t *testing.T) {
	out := renderToString(t, monitorsOutput(), output.FormatJSON)
	if strings.Contains(out, "ResultMetadata") {
		t.Errorf("ResultMetadata leaked into output:\n%s", out)
	}

	var doc map[string]any
	if err := json.Unmarshal([]byte(out), &doc); err != nil {
		t.Fatalf("output is not JSON: %v\n%s", err, out)
	}
	monitors, ok := doc["AnomalyMonitors"].([]any)
	if !ok || len(monitors) != 2 {
		t.Errorf("AnomalyMonitors = %#v", doc["AnomalyMonitors"])
	}
}

func TestRender_YAML(t *testing.T) {
	out := renderToString(t, monitorsOutput(), output.FormatYAML)
	for _, want := range []string{"AnomalyMonitors:", "MonitorName: services", "MonitorType: CUSTOM"} {
		if !strings.Contains(out, want) {
			t.Errorf("yaml missing %q\ngot:\n%s", want, out)
		}
	}
}

func TestRender_TextObjectIsKeyValueLines(t *testing.T) {
	out := renderToString(t, &ce.StartCostAllocationTagBackfillOutput{
		BackfillRequest: &cetypes.CostAllocationTagBackfillRequest{
			BackfillFrom:   aws.String("2024-01-01T00:00:00Z"),
			BackfillStatus: cetypes.CostAllocationTagBackfillStatusProcessing,
		},
	}, output.FormatText)
	if !strings.HasPrefix(out, "BackfillRequest: {") {
		t.Errorf("got %q", out)
	}
	if !strings.Contains(out, `"BackfillStatus":"PROCESSING"`) {
		t.Errorf("nested value not rendered as compact JSON: %q", out)
	}
}

// ── tables ────────────────────────────────────────────────────────────────────

func TestRender_TextListOfObjectsIsTable(t *testing.T) {
	out := renderToString(t, monitorsOutput().AnomalyMonitors, output.FormatText)
	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	if len(lines) != 4 {
		t.Fatalf("want header, separator and 2 rows; got %d lines:\n%s", len(lines), out)
	}
	for _, col := range []string{"MONITORARN", "MONITORDIMENSION", "MONITORNAME", "MONITORTYPE"} {
		if !strings.Contains(lines[0], col) {
			t.Errorf("header missing %q: %q", col, lines[0])
		}
	}
	if strings.Trim(lines[1], "-") != "" || len(lines[1]) != len(lines[0]) {
		t.Errorf("separator %q does not match header width %d", lines[1], len(lines[0]))
	}
	if !strings.Contains(lines[3], "team-core") || !strings.Contains(lines[3], "CUSTOM") {
		t.Errorf("row = %q", lines[3])
	}
}

func TestRenderTable_Empty(t *testing.T) {
	var buf bytes.Buffer
	output.RenderTable(&buf, nil)
	if !strings.Contains(buf.String(), "No results.") {
		t.Errorf("got %q", buf.String())
	}
}

func TestRenderTable_TruncatesLongCells(t *testing.T) {
	long := strings.Repeat("x", 200)
	var buf bytes.Buffer
	output.RenderTable(&buf, []map[string]any{{"Key": long}})
	if strings.Contains(buf.String(), long) {
		t.Error("long cell was not truncated")
	}
	if !strings.Contains(buf.String(), "…") {
		t.Errorf("expected ellipsis; got %q", buf.String())
	}
}

func TestRender_TextListOfScalars(t *testing.T) {
	out := renderToString(t, []string{"team", "env"}, output.FormatText)
	if out != "team\nenv\n" {
		t.Errorf("got %q", out)
	}
}

func TestRender_TextWholeNumbers(t *testing.T) {
	out := renderToString(t, map[string]any{"Count": 3, "Ratio": 0.5}, output.FormatText)
	if out != "Count: 3\nRatio: 0.5\n" {
		t.Errorf("got %q", out)
	}
}
