package flow

import (
	"reflect"
	"testing"

	"gopkg.in/yaml.v3"
)

func TestFlow_UnmarshalYAML(t *testing.T) {
	doc := `
id: f-1
name: Ingest
version: 0
contents:
  processors:
    - name: Fetch
      bundle: core
      type: HTTP
      properties:
        timeout: 30
        retry: true
        url: http://example.com
`
	var got Flow
	if err := yaml.Unmarshal([]byte(doc), &got); err != nil {
		t.Fatalf("Unmarshal() error = %v", err)
	}

	if !got.HasID() || *got.ID != "f-1" {
		t.Errorf("ID = %v, want f-1", got.ID)
	}
	if got.Version == nil || *got.Version != "0" {
		t.Errorf("Version = %v, want \"0\"", got.Version)
	}
	if got.Description != nil {
		t.Errorf("Description = %q, want nil", *got.Description)
	}
	if got.Contents == nil || len(got.Contents.Processors) != 1 {
		t.Fatalf("Contents = %+v, want one processor", got.Contents)
	}

	proc := got.Contents.Processors[0]
	wantProps := Properties{
		{Name: "timeout", Value: 30},
		{Name: "retry", Value: true},
		{Name: "url", Value: "http://example.com"},
	}
	if !reflect.DeepEqual(proc.Properties, wantProps) {
		t.Errorf("Properties = %#v, want %#v", proc.Properties, wantProps)
	}
}

func TestFlow_UnmarshalYAML_FlowContentsAlias(t *testing.T) {
	doc := `
name: Registry
flowContents:
  processors:
    - name: Route
      type: RouteOnAttribute
      bundle:
        group: org.apache.nifi
        artifact: nifi-standard-nar
        version: 1.23.2
`
	var got Flow
	if err := yaml.Unmarshal([]byte(doc), &got); err != nil {
		t.Fatalf("Unmarshal() error = %v", err)
	}
	if got.Contents == nil || len(got.Contents.Processors) != 1 {
		t.Fatalf("Contents = %+v, want one processor", got.Contents)
	}
	want := Bundle("org.apache.nifi:nifi-standard-nar:1.23.2")
	if b := got.Contents.Processors[0].Bundle; b != want {
		t.Errorf("Bundle = %q, want %q", b, want)
	}
}

func TestFlow_UnmarshalYAML_JSONDocument(t *testing.T) {
	doc := `{"name": "FromJSON", "contents": {"processors": [{"name": "P", "properties": {"b": 2, "a": 1}}]}}`

	var got Flow
	if err := yaml.Unmarshal([]byte(doc), &got); err != nil {
		t.Fatalf("Unmarshal() error = %v", err)
	}
	props := got.Contents.Processors[0].Properties
	if len(props) != 2 || props[0].Name != "b" || props[1].Name != "a" {
		t.Errorf("Properties order = %+v, want b then a", props)
	}
}

func TestProcessor_UnmarshalYAML_OptionalFields(t *testing.T) {
	doc := `
processors:
  - name: Bare
  - name: Empty
    comments: ""
    properties: {}
`
	var got Contents
	if err := yaml.Unmarshal([]byte(doc), &got); err != nil {
		t.Fatalf("Unmarshal() error = %v", err)
	}
	if len(got.Processors) != 2 {
		t.Fatalf("Processors = %+v, want two", got.Processors)
	}

	bare, empty := got.Processors[0], got.Processors[1]
	if bare.Comments != nil {
		t.Errorf("Bare.Comments = %q, want nil", *bare.Comments)
	}
	if bare.Properties != nil {
		t.Errorf("Bare.Properties = %#v, want nil", bare.Properties)
	}
	if empty.Comments == nil || *empty.Comments != "" {
		t.Errorf("Empty.Comments = %v, want empty string", empty.Comments)
	}
	if empty.Properties == nil || len(empty.Properties) != 0 {
		t.Errorf("Empty.Properties = %#v, want empty non-nil", empty.Properties)
	}
}

func TestProperties_RejectsSequence(t *testing.T) {
	var p Properties
	if err := yaml.Unmarshal([]byte("- a\n- b\n"), &p); err == nil {
		t.Error("expected error for sequence properties")
	}
}

func TestOrUnknown(t *testing.T) {
	if got := OrUnknown(nil); got != Unknown {
		t.Errorf("OrUnknown(nil) = %q, want %q", got, Unknown)
	}
	if got := OrUnknown(String("")); got != "" {
		t.Errorf("OrUnknown(\"\") = %q, want empty", got)
	}
	if got := OrUnknown(String("0")); got != "0" {
		t.Errorf("OrUnknown(\"0\") = %q, want \"0\"", got)
	}
}

func TestFlow_HasID(t *testing.T) {
	tests := []struct {
		name string
		id   *string
		want bool
	}{
		{"nil", nil, false},
		{"empty", String(""), false},
		{"blank", String("  "), false},
		{"set", String("abc"), true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := &Flow{ID: tt.id}
			if got := f.HasID(); got != tt.want {
				t.Errorf("HasID() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestFieldErrors(t *testing.T) {
	errs := FieldErrors{}
	errs.Add("name", "required")
	errs.Add("bundle", "required")
	errs.Add("name", "too long")

	if got := errs.Fields(); !reflect.DeepEqual(got, []string{"bundle", "name"}) {
		t.Errorf("Fields() = %v", got)
	}
	if got := errs["name"]; !reflect.DeepEqual(got, []string{"required", "too long"}) {
		t.Errorf("name messages = %v", got)
	}

	var empty FieldErrors
	if got := empty.Fields(); len(got) != 0 {
		t.Errorf("nil Fields() = %v, want empty", got)
	}
}
