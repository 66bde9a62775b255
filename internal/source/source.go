// Package source loads bucket documents from an input directory.
//
// Every *.yaml, *.yml and *.json file below the root is one bucket document.
// Documents that cannot be parsed, and entities that fail validation, are
// reported as flow.ErrorSet values rather than aborting the load.
package source

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"gopkg.in/yaml.v3"

	"github.com/gorewood/flowdoc/internal/flow"
	"github.com/gorewood/flowdoc/internal/output"
)

var (
	errMissingDir = errors.New("directory does not exist")
	errNotDir     = errors.New("not a directory")
)

// Entity labels used in error sets.
const (
	TypeFile   = "File"
	TypeBucket = "Bucket"
	TypeFlow   = "Flow"
)

// Document is one parsed bucket document.
type Document struct {
	flow.Bucket `yaml:",inline"`
	Flows       []*flow.Flow `yaml:"flows"`

	// Path is the document path relative to the input root.
	Path string `yaml:"-"`
}

// Result is the outcome of loading an input directory.
type Result struct {
	Documents []*Document
	Errors    []flow.ErrorSet
}

// FlowCount returns the number of flows across all documents.
func (r *Result) FlowCount() int {
	count := 0
	for _, doc := range r.Documents {
		count += len(doc.Flows)
	}
	return count
}

// Load reads every bucket document below root in lexical path order.
// Directories listed in exclude (typically the export output directory) and
// hidden entries are skipped.
func Load(dir string, exclude ...string) (*Result, error) {
	root, err := filepath.Abs(dir)
	if err != nil {
		return nil, output.NewInputError(dir, err)
	}

	info, err := os.Stat(root)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, output.NewInputError(root, errMissingDir)
		}
		return nil, output.NewIOError("stat input directory", root, err)
	}
	if !info.IsDir() {
		return nil, output.NewInputError(root, errNotDir)
	}

	skip := make(map[string]bool, len(exclude))
	for _, path := range exclude {
		if abs, err := filepath.Abs(path); err == nil && abs != root {
			skip[abs] = true
		}
	}

	result := &Result{}
	walkErr := filepath.WalkDir(root, func(path string, entry fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if path != root && strings.HasPrefix(entry.Name(), ".") {
			if entry.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}
		if entry.IsDir() {
			if skip[path] {
				return filepath.SkipDir
			}
			return nil
		}
		if !IsDocument(path) {
			return nil
		}

		rel, err := filepath.Rel(root, path)
		if err != nil {
			rel = path
		}
		result.add(path, filepath.ToSlash(rel))
		return nil
	})
	if walkErr != nil {
		return nil, output.NewIOError("scan input directory", root, walkErr)
	}

	return result, nil
}

// IsDocument reports whether path has a bucket document extension.
func IsDocument(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml", ".json":
		return true
	}
	return false
}

// add parses one document and records it, or the reason it was rejected.
func (r *Result) add(path, rel string) {
	doc, err := ParseFile(path)
	if err != nil {
		r.Errors = append(r.Errors, flow.ErrorSet{
			Type:   TypeFile,
			ID:     rel,
			Fields: flow.FieldErrors{"document": {err.Error()}},
		})
		return
	}
	doc.Path = rel
	r.Documents = append(r.Documents, doc)
	r.Errors = append(r.Errors, Validate(doc)...)
}

// ParseFile decodes a bucket document. JSON documents are read by the YAML
// decoder.
func ParseFile(path string) (*Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	return Parse(data)
}

// Parse decodes a bucket document from bytes.
func Parse(data []byte) (*Document, error) {
	var doc Document
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parsing document: %w", err)
	}
	return &doc, nil
}

// Validate checks a document and returns one error set per invalid entity:
// the bucket first, then its flows in order.
func Validate(doc *Document) []flow.ErrorSet {
	var sets []flow.ErrorSet

	bucketErrs := flow.FieldErrors{}
	collect(bucketErrs, "", validation.ValidateStruct(&doc.Bucket,
		validation.Field(&doc.Bucket.BucketID, validation.Required),
		validation.Field(&doc.Bucket.Name, validation.Required),
	))
	if len(bucketErrs) > 0 {
		sets = append(sets, flow.ErrorSet{Type: TypeBucket, ID: doc.BucketID, Fields: bucketErrs})
	}

	for _, f := range doc.Flows {
		if f == nil {
			continue
		}
		if errs := validateFlow(f); len(errs) > 0 {
			id := ""
			if f.HasID() {
				id = *f.ID
			}
			sets = append(sets, flow.ErrorSet{Type: TypeFlow, ID: id, Fields: errs})
		}
	}
	return sets
}

// validateFlow checks a flow and its processors. Processor fields are keyed
// as processors[i].field.
func validateFlow(f *flow.Flow) flow.FieldErrors {
	errs := flow.FieldErrors{}
	collect(errs, "", validation.ValidateStruct(f,
		validation.Field(&f.Name, validation.Required),
	))

	if f.Contents == nil {
		return errs
	}
	for i := range f.Contents.Processors {
		proc := &f.Contents.Processors[i]
		collect(errs, fmt.Sprintf("processors[%d].", i), validation.ValidateStruct(proc,
			validation.Field(&proc.Name, validation.Required),
			validation.Field(&proc.Type, validation.Required),
			validation.Field(&proc.Bundle, validation.Required),
		))
	}
	return errs
}

// collect copies ozzo validation errors into field errors. Anything that is
// not a validation.Errors (an internal validator failure) is recorded under
// the prefix itself.
func collect(into flow.FieldErrors, prefix string, err error) {
	if err == nil {
		return
	}

	var fieldErrs validation.Errors
	if errors.As(err, &fieldErrs) {
		for field, fieldErr := range fieldErrs {
			into.Add(prefix+field, fieldErr.Error())
		}
		return
	}

	key := strings.TrimSuffix(prefix, ".")
	if key == "" {
		key = "validation"
	}
	into.Add(key, err.Error())
}
