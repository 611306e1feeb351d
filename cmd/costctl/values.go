package main

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	cetypes "github.com/aws/aws-sdk-go-v2/service/costexplorer/types"
)

// jsonSetter is implemented by flag values that accept a structured JSON
// document from --cli-input-json instead of their textual flag form.
type jsonSetter interface {
	SetJSON(raw json.RawMessage) error
}

// readDocument returns the JSON document behind a flag argument. A value of
// the form file://path is read from disk; anything else is taken literally.
func readDocument(s string) ([]byte, error) {
	if path, ok := strings.CutPrefix(s, "file://"); ok {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read %s: %w", path, err)
		}
		return data, nil
	}
	return []byte(s), nil
}

// jsonValue decodes a JSON document into target, which must be a pointer
// to an SDK type such as **cetypes.Expression.
type jsonValue struct {
	target any
	raw    string
}

func newJSONValue(target any) *jsonValue { return &jsonValue{target: target} }

func (v *jsonValue) String() string { return v.raw }
func (v *jsonValue) Type() string   { return "json" }

func (v *jsonValue) Set(s string) error {
	data, err := readDocument(s)
	if err != nil {
		return err
	}
	return v.SetJSON(data)
}

func (v *jsonValue) SetJSON(raw json.RawMessage) error {
	if err := json.Unmarshal(raw, v.target); err != nil {
		return fmt.Errorf("invalid JSON: %w", err)
	}
	v.raw = string(raw)
	return nil
}

// splitPair splits "left=right" and rejects an empty left side.
func splitPair(s, what string) (string, string, error) {
	left, right, ok := strings.Cut(s, "=")
	if !ok || left == "" {
		return "", "", fmt.Errorf("invalid %s %q: want LEFT=RIGHT", what, s)
	}
	return left, right, nil
}

// groupByValue collects repeated --group-by TYPE=KEY flags, e.g.
// DIMENSION=SERVICE or TAG=team. TYPE is passed through as given; the
// service validates it.
type groupByValue struct {
	target *[]cetypes.GroupDefinition
}

func (v *groupByValue) String() string {
	parts := make([]string, 0, len(*v.target))
	for _, g := range *v.target {
		parts = append(parts, string(g.Type)+"="+aws.ToString(g.Key))
	}
	return strings.Join(parts, ",")
}

func (v *groupByValue) Type() string { return "type=key" }

func (v *groupByValue) Set(s string) error {
	typ, key, err := splitPair(s, "group definition")
	if err != nil {
		return err
	}
	*v.target = append(*v.target, cetypes.GroupDefinition{
		Type: cetypes.GroupDefinitionType(typ),
		Key:  aws.String(key),
	})
	return nil
}

func (v *groupByValue) SetJSON(raw json.RawMessage) error {
	var groups []cetypes.GroupDefinition
	if err := json.Unmarshal(raw, &groups); err != nil {
		return fmt.Errorf("invalid GroupBy: %w", err)
	}
	*v.target = groups
	return nil
}

// resourceTagValue collects repeated --resource-tag KEY=VALUE flags.
type resourceTagValue struct {
	target *[]cetypes.ResourceTag
}

func (v *resourceTagValue) String() string {
	parts := make([]string, 0, len(*v.target))
	for _, t := range *v.target {
		parts = append(parts, aws.ToString(t.Key)+"="+aws.ToString(t.Value))
	}
	return strings.Join(parts, ",")
}

func (v *resourceTagValue) Type() string { return "key=value" }

func (v *resourceTagValue) Set(s string) error {
	key, value, err := splitPair(s, "resource tag")
	if err != nil {
		return err
	}
	*v.target = append(*v.target, cetypes.ResourceTag{Key: aws.String(key), Value: aws.String(value)})
	return nil
}

func (v *resourceTagValue) SetJSON(raw json.RawMessage) error {
	var tags []cetypes.ResourceTag
	if err := json.Unmarshal(raw, &tags); err != nil {
		return fmt.Errorf("invalid ResourceTags: %w", err)
	}
	*v.target = tags
	return nil
}

// tagStatusValue collects repeated --tag-status KEY=Active|Inactive flags.
// The status is passed through as given; the service validates it.
type tagStatusValue struct {
	target *[]cetypes.CostAllocationTagStatusEntry
}

func (v *tagStatusValue) String() string {
	parts := make([]string, 0, len(*v.target))
	for _, e := range *v.target {
		parts = append(parts, aws.ToString(e.TagKey)+"="+string(e.Status))
	}
	return strings.Join(parts, ",")
}

func (v *tagStatusValue) Type() string { return "key=status" }

func (v *tagStatusValue) Set(s string) error {
	key, status, err := splitPair(s, "tag status")
	if err != nil {
		return err
	}
	*v.target = append(*v.target, cetypes.CostAllocationTagStatusEntry{
		TagKey: aws.String(key),
		Status: cetypes.CostAllocationTagStatus(status),
	})
	return nil
}

func (v *tagStatusValue) SetJSON(raw json.RawMessage) error {
	var entries []cetypes.CostAllocationTagStatusEntry
	if err := json.Unmarshal(raw, &entries); err != nil {
		return fmt.Errorf("invalid CostAllocationTagsStatus: %w", err)
	}
	*v.target = entries
	return nil
}
