package domain

import (
	"errors"
	"fmt"
	"math"
	"slices"
	"sort"
)

// FieldKind enumerates the legal form field shapes
type FieldKind string

const (
	FieldKindText         FieldKind = "text"
	FieldKindNumeric      FieldKind = "numeric"
	FieldKindSingleSelect FieldKind = "single-select"
	FieldKindMultiSelect  FieldKind = "multi-select"
	FieldKindImage        FieldKind = "image"
)

// Field is a form field descriptor. The set of implementations is closed.
type Field interface {
	Name() string
	Kind() FieldKind
	sealed()
}

// TextField is a free text input
type TextField struct {
	Key       string
	Required  bool
	MaxLength int
}

// NumericField is a bounded number input
type NumericField struct {
	Key      string
	Required bool
	Min      float64
	Max      float64
	Integer  bool
}

// SingleSelectField picks one option
type SingleSelectField struct {
	Key        string
	Required   bool
	Options    []string
	Filterable bool
}

// MultiSelectField picks any number of options
type MultiSelectField struct {
	Key        string
	Options    []string
	Filterable bool
}

// ImageField references an input image by storage uri
type ImageField struct {
	Key      string
	Required bool
}

func (f TextField) Name() string         { return f.Key }
func (f NumericField) Name() string      { return f.Key }
func (f SingleSelectField) Name() string { return f.Key }
func (f MultiSelectField) Name() string  { return f.Key }
func (f ImageField) Name() string        { return f.Key }

func (TextField) Kind() FieldKind         { return FieldKindText }
func (NumericField) Kind() FieldKind      { return FieldKindNumeric }
func (SingleSelectField) Kind() FieldKind { return FieldKindSingleSelect }
func (MultiSelectField) Kind() FieldKind  { return FieldKindMultiSelect }
func (ImageField) Kind() FieldKind        { return FieldKindImage }

func (TextField) sealed()         {}
func (NumericField) sealed()      {}
func (SingleSelectField) sealed() {}
func (MultiSelectField) sealed()  {}
func (ImageField) sealed()        {}

// FormValues holds submitted values as decoded from JSON
type FormValues map[string]any

// String returns a string value, or "" when absent or of another type
func (v FormValues) String(key string) string {
	s, _ := v[key].(string)
	return s
}

// Number returns a numeric value and whether it was present
func (v FormValues) Number(key string) (float64, bool) {
	switch n := v[key].(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int32:
		return float64(n), true
	case int64:
		return float64(n), true
	default:
		return 0, false
	}
}

// Strings returns a list value; a single string is promoted to a one element list
func (v FormValues) Strings(key string) []string {
	switch s := v[key].(type) {
	case []string:
		return s
	case string:
		if s == "" {
			return nil
		}
		return []string{s}
	case []any:
		out := make([]string, 0, len(s))
		for _, item := range s {
			if str, ok := item.(string); ok {
				out = append(out, str)
			}
		}
		return out
	default:
		return nil
	}
}

// FormSchema is an ordered set of field descriptors
type FormSchema struct {
	Name   string
	Fields []Field
}

// Field looks a descriptor up by name
func (s FormSchema) Field(name string) (Field, bool) {
	for _, f := range s.Fields {
		if f.Name() == name {
			return f, true
		}
	}
	return nil, false
}

// Validate checks every submitted value against its descriptor
func (s FormSchema) Validate(values FormValues) error {
	var errs []error
	for _, field := range s.Fields {
		if err := validateField(field, values); err != nil {
			errs = append(errs, err)
		}
	}
	if len(errs) > 0 {
		return fmt.Errorf("%w: %s: %w", ErrInvalidForm, s.Name, errors.Join(errs...))
	}
	return nil
}

func validateField(field Field, values FormValues) error {
	_, present := values[field.Name()]

	switch f := field.(type) {
	case TextField:
		if _, ok := values[f.Key].(string); present && values[f.Key] != nil && !ok {
			return fmt.Errorf("%s must be text", f.Key)
		}
		text := values.String(f.Key)
		if f.Required && text == "" {
			return fmt.Errorf("%s is required", f.Key)
		}
		if f.MaxLength > 0 && len([]rune(text)) > f.MaxLength {
			return fmt.Errorf("%s exceeds %d characters", f.Key, f.MaxLength)
		}
	case NumericField:
		n, ok := values.Number(f.Key)
		if !ok {
			if present && values[f.Key] != nil {
				return fmt.Errorf("%s must be a number", f.Key)
			}
			if f.Required {
				return fmt.Errorf("%s is required", f.Key)
			}
			return nil
		}
		if n < f.Min || n > f.Max {
			return fmt.Errorf("%s must be between %g and %g", f.Key, f.Min, f.Max)
		}
		if f.Integer && n != math.Trunc(n) {
			return fmt.Errorf("%s must be an integer", f.Key)
		}
	case SingleSelectField:
		choice := values.String(f.Key)
		if choice == "" {
			if f.Required {
				return fmt.Errorf("%s is required", f.Key)
			}
			return nil
		}
		if !slices.Contains(f.Options, choice) {
			return fmt.Errorf("%s: %q is not an option", f.Key, choice)
		}
	case MultiSelectField:
		for _, choice := range values.Strings(f.Key) {
			if !slices.Contains(f.Options, choice) {
				return fmt.Errorf("%s: %q is not an option", f.Key, choice)
			}
		}
	case ImageField:
		uri := values.String(f.Key)
		if uri == "" {
			if f.Required {
				return fmt.Errorf("%s is required", f.Key)
			}
			return nil
		}
		if _, _, err := ParseStorageURI(uri); err != nil {
			return fmt.Errorf("%s: %w", f.Key, err)
		}
	default:
		return fmt.Errorf("%s: unsupported field kind %s", field.Name(), field.Kind())
	}
	return nil
}

// FilterTokens derives the combined filter tokens from the filterable select fields
func (s FormSchema) FilterTokens(values FormValues) []string {
	seen := make(map[string]struct{})
	var tokens []string
	add := func(field, value string) {
		if value == "" {
			return
		}
		token := FilterToken(field, value)
		if _, ok := seen[token]; ok {
			return
		}
		seen[token] = struct{}{}
		tokens = append(tokens, token)
	}

	for _, field := range s.Fields {
		switch f := field.(type) {
		case SingleSelectField:
			if f.Filterable {
				add(f.Key, values.String(f.Key))
			}
		case MultiSelectField:
			if f.Filterable {
				for _, v := range values.Strings(f.Key) {
					add(f.Key, v)
				}
			}
		case TextField, NumericField, ImageField:
		}
	}
	sort.Strings(tokens)
	return tokens
}

// FilterableFields lists the fields the library can filter on
func (s FormSchema) FilterableFields() []string {
	var names []string
	for _, field := range s.Fields {
		switch f := field.(type) {
		case SingleSelectField:
			if f.Filterable {
				names = append(names, f.Key)
			}
		case MultiSelectField:
			if f.Filterable {
				names = append(names, f.Key)
			}
		case TextField, NumericField, ImageField:
		}
	}
	return names
}

// GenerationKind selects a form schema
type GenerationKind string

const (
	GenerationKindImage GenerationKind = "image"
	GenerationKindVideo GenerationKind = "video"
)

var styleOptions = []string{"photography", "drawing", "painting", "digitalArt", "3dRender", "cinematic"}
var lightingOptions = []string{"natural", "studio", "golden", "backlight", "neon", "dramatic"}
var colorOptions = []string{"vibrant", "pastel", "monochrome", "warm", "cool", "muted"}
var compositionOptions = []string{"closeUp", "portrait", "landscape", "aerial", "symmetrical", "wide"}

// ImageGenerationForm describes the image generation form
var ImageGenerationForm = FormSchema{
	Name: "image-generation",
	Fields: []Field{
		TextField{Key: "prompt", Required: true, MaxLength: 4000},
		TextField{Key: "negativePrompt", MaxLength: 1000},
		SingleSelectField{Key: "modelVersion", Required: true, Filterable: true, Options: []string{
			"imagen-4.0-generate-001", "imagen-4.0-ultra-generate-001", "imagen-4.0-fast-generate-001", "imagen-3.0-generate-002",
		}},
		SingleSelectField{Key: "aspectRatio", Required: true, Filterable: true, Options: []string{"1:1", "9:16", "16:9", "3:4", "4:3"}},
		NumericField{Key: "sampleCount", Min: 1, Max: 4, Integer: true},
		SingleSelectField{Key: "style", Filterable: true, Options: styleOptions},
		SingleSelectField{Key: "lighting", Filterable: true, Options: lightingOptions},
		MultiSelectField{Key: "colorAndTone", Filterable: true, Options: colorOptions},
		SingleSelectField{Key: "composition", Filterable: true, Options: compositionOptions},
		ImageField{Key: "referenceImage"},
	},
}

// VideoGenerationForm describes the video generation form
var VideoGenerationForm = FormSchema{
	Name: "video-generation",
	Fields: []Field{
		TextField{Key: "prompt", Required: true, MaxLength: 4000},
		TextField{Key: "negativePrompt", MaxLength: 1000},
		SingleSelectField{Key: "modelVersion", Required: true, Filterable: true, Options: []string{
			"veo-3.0-generate-001", "veo-3.0-fast-generate-001", "veo-2.0-generate-001",
		}},
		SingleSelectField{Key: "aspectRatio", Required: true, Filterable: true, Options: []string{"16:9", "9:16"}},
		NumericField{Key: "durationSeconds", Min: 4, Max: 8, Integer: true},
		SingleSelectField{Key: "resolution", Filterable: true, Options: []string{"720p", "1080p"}},
		NumericField{Key: "sampleCount", Min: 1, Max: 4, Integer: true},
		SingleSelectField{Key: "style", Filterable: true, Options: styleOptions},
		SingleSelectField{Key: "cameraMotion", Filterable: true, Options: []string{"static", "pan", "tilt", "dolly", "orbit", "handheld"}},
		SingleSelectField{Key: "lighting", Filterable: true, Options: lightingOptions},
		ImageField{Key: "startImage"},
	},
}

// SchemaFor returns the form schema of a generation kind
func SchemaFor(kind GenerationKind) (FormSchema, error) {
	switch kind {
	case GenerationKindImage:
		return ImageGenerationForm, nil
	case GenerationKindVideo:
		return VideoGenerationForm, nil
	default:
		return FormSchema{}, fmt.Errorf("%w: unknown generation kind %q", ErrInvalidForm, kind)
	}
}
