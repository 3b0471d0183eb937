package domain

import (
	"fmt"
	"strings"
)

// ValueKind tags the shape held by a Value.
type ValueKind string

const (
	ValueText  ValueKind = "text"
	ValueBool  ValueKind = "bool"
	ValueFile  ValueKind = "file"
	ValueFiles ValueKind = "files"
)

// FileRef is a reference to a selected file. Contents are never read.
type FileRef struct {
	Name        string `json:"name" mapstructure:"name"`
	Size        int64  `json:"size,omitempty" mapstructure:"size"`
	ContentType string `json:"content_type,omitempty" mapstructure:"content_type"`
}

// Value is the current value of a field.
// An absent value is represented by the key missing from State.Values.
type Value struct {
	Kind  ValueKind `json:"kind"`
	Text  string    `json:"text,omitempty"`
	Bool  bool      `json:"bool,omitempty"`
	Files []FileRef `json:"files,omitempty"`
}

// TextValue wraps a string.
func TextValue(s string) Value {
	return Value{Kind: ValueText, Text: s}
}

// BoolValue wraps a checkbox state.
func BoolValue(b bool) Value {
	return Value{Kind: ValueBool, Bool: b}
}

// FileValue wraps a single selected file.
func FileValue(f FileRef) Value {
	return Value{Kind: ValueFile, Files: []FileRef{f}}
}

// FilesValue wraps a multiple-file selection. An empty selection is kept as
// an empty list.
func FilesValue(files ...FileRef) Value {
	out := make([]FileRef, len(files))
	copy(out, files)
	return Value{Kind: ValueFiles, Files: out}
}

// File returns the single file of a ValueFile.
func (v Value) File() (FileRef, bool) {
	if v.Kind != ValueFile || len(v.Files) == 0 {
		return FileRef{}, false
	}
	return v.Files[0], true
}

// Equal compares two values by kind and content.
func (v Value) Equal(o Value) bool {
	if v.Kind != o.Kind {
		return false
	}
	switch v.Kind {
	case ValueText:
		return v.Text == o.Text
	case ValueBool:
		return v.Bool == o.Bool
	case ValueFile, ValueFiles:
		if len(v.Files) != len(o.Files) {
			return false
		}
		for i := range v.Files {
			if v.Files[i] != o.Files[i] {
				return false
			}
		}
		return true
	}
	return false
}

// Clone returns a copy that shares no slices with v.
func (v Value) Clone() Value {
	if v.Files != nil {
		files := make([]FileRef, len(v.Files))
		copy(files, v.Files)
		v.Files = files
	}
	return v
}

// Interface converts the value into plain Go types (string, bool, FileRef,
// []FileRef), which is how submissions are emitted.
func (v Value) Interface() any {
	switch v.Kind {
	case ValueText:
		return v.Text
	case ValueBool:
		return v.Bool
	case ValueFile:
		f, _ := v.File()
		return f
	case ValueFiles:
		return v.Clone().Files
	}
	return nil
}

func (v Value) String() string {
	switch v.Kind {
	case ValueText:
		return v.Text
	case ValueBool:
		return fmt.Sprintf("%t", v.Bool)
	case ValueFile, ValueFiles:
		names := make([]string, 0, len(v.Files))
		for _, f := range v.Files {
			names = append(names, f.Name)
		}
		return strings.Join(names, ", ")
	}
	return ""
}
