package output

import (
	"encoding/json"
	"fmt"
	"io"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"
)

// Format selects how a command's output is written.
type Format string

const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
	FormatText Format = "text"
)

// ParseFormat validates s. An empty string selects FormatJSON.
func ParseFormat(s string) (Format, error) {
	switch Format(strings.ToLower(s)) {
	case "", FormatJSON:
		return FormatJSON, nil
	case FormatYAML:
		return FormatYAML, nil
	case FormatText:
		return FormatText, nil
	default:
		return "", fmt.Errorf("unknown output format %q: want json, yaml or text", s)
	}
}

// sdkMetadataKey is the SDK's per-response middleware metadata. It never
// carries data the caller asked for.
const sdkMetadataKey = "ResultMetadata"

// maxCellWidth caps text-table columns; longer values are truncated.
const maxCellWidth = 60

// Render writes v to w in format. A nil value writes nothing.
func Render(w io.Writer, v any, format Format) error {
	doc, err := normalize(v)
	if err != nil {
		return err
	}
	if doc == nil {
		return nil
	}

	switch format {
	case FormatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(doc); err != nil {
			return fmt.Errorf("encode yaml: %w", err)
		}
		return enc.Close()
	case FormatText:
		renderText(w, doc)
		return nil
	default:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		if err := enc.Encode(doc); err != nil {
			return fmt.Errorf("encode json: %w", err)
		}
		return nil
	}
}

// normalize converts v into plain maps, slices and scalars by a JSON round
// trip, and drops SDK response metadata from the top-level object.
func normalize(v any) (any, error) {
	if v == nil {
		return nil, nil
	}
	data, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("encode output: %w", err)
	}
	var doc any
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("decode output: %w", err)
	}
	if m, ok := doc.(map[string]any); ok {
		delete(m, sdkMetadataKey)
	}
	return doc, nil
}

// renderText writes scalars as bare lines, lists of objects as a table and
// objects as "Key: value" lines.
func renderText(w io.Writer, doc any) {
	switch v := doc.(type) {
	case []any:
		if rows, ok := objectRows(v); ok {
			RenderTable(w, rows)
			return
		}
		for _, item := range v {
			fmt.Fprintln(w, cell(item))
		}
	case map[string]any:
		keys := sortedKeys(v)
		for _, k := range keys {
			fmt.Fprintf(w, "%s: %s\n", k, cell(v[k]))
		}
	default:
		fmt.Fprintln(w, cell(v))
	}
}

// objectRows returns items as maps when every item is an object.
func objectRows(items []any) ([]map[string]any, bool) {
	if len(items) == 0 {
		return nil, false
	}
	rows := make([]map[string]any, 0, len(items))
	for _, item := range items {
		m, ok := item.(map[string]any)
		if !ok {
			return nil, false
		}
		rows = append(rows, m)
	}
	return rows, true
}

// RenderTable writes rows as a fixed-width table. Columns are the union of
// keys holding non-null scalar values, in alphabetical order; nested values are left
// to the json and yaml formats. The separator line width is derived from the
// header row so all rows align.
func RenderTable(w io.Writer, rows []map[string]any) {
	if len(rows) == 0 {
		fmt.Fprintln(w, "No results.")
		return
	}

	var columns []string
	seen := make(map[string]bool)
	for _, row := range rows {
		for _, k := range sortedKeys(row) {
			if seen[k] || row[k] == nil || !isScalar(row[k]) {
				continue
			}
			seen[k] = true
			columns = append(columns, k)
		}
	}
	sort.Strings(columns)
	if len(columns) == 0 {
		fmt.Fprintln(w, "No scalar columns; use --output json or yaml.")
		return
	}

	widths := make([]int, len(columns))
	for i, c := range columns {
		widths[i] = len(c)
		for _, row := range rows {
			if n := len(cell(row[c])); n > widths[i] {
				widths[i] = n
			}
		}
		if widths[i] > maxCellWidth {
			widths[i] = maxCellWidth
		}
	}

	var hb strings.Builder
	for i, c := range columns {
		if i > 0 {
			hb.WriteString("  ")
		}
		hb.WriteString(fmt.Sprintf("%-*s", widths[i], strings.ToUpper(c)))
	}
	header := strings.TrimRight(hb.String(), " ")
	fmt.Fprintln(w, header)
	fmt.Fprintln(w, strings.Repeat("-", len(header)))

	for _, row := range rows {
		var rb strings.Builder
		for i, c := range columns {
			if i > 0 {
				rb.WriteString("  ")
			}
			rb.WriteString(fmt.Sprintf("%-*s", widths[i], truncateField(cell(row[c]), widths[i])))
		}
		fmt.Fprintln(w, strings.TrimRight(rb.String(), " "))
	}
}

func isScalar(v any) bool {
	switch v.(type) {
	case nil, string, float64, bool:
		return true
	default:
		return false
	}
}

// cell formats a value for text output. Whole numbers print without a
// decimal point; nested values print as compact JSON.
func cell(v any) string {
	switch x := v.(type) {
	case nil:
		return ""
	case string:
		return x
	case bool:
		return fmt.Sprintf("%t", x)
	case float64:
		if x == float64(int64(x)) {
			return fmt.Sprintf("%d", int64(x))
		}
		return fmt.Sprintf("%g", x)
	default:
		data, err := json.Marshal(x)
		if err != nil {
			return fmt.Sprintf("%v", x)
		}
		return string(data)
	}
}

func sortedKeys(m map[string]any) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// truncateField shortens s to at most max runes.
// A single-char ellipsis replaces the last rune when truncation occurs.
func truncateField(s string, max int) string {
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return string(runes[:max-1]) + "…"
}
