package runner

import (
	"fmt"
	"mime"
	"os"
	"path/filepath"
	"strings"

	"github.com/aretw0/stepwise/pkg/domain"
)

// ParseFilePaths turns a comma separated list of paths into file references.
// Each path is stat'ed for its size; contents are never read.
func ParseFilePaths(input string) ([]domain.FileRef, error) {
	var refs []domain.FileRef
	for _, p := range strings.Split(input, ",") {
		p = strings.TrimSpace(p)
		if p == "" {
			continue
		}
		info, err := os.Stat(p)
		if err != nil {
			return nil, fmt.Errorf("cannot use %q: %w", p, err)
		}
		if info.IsDir() {
			return nil, fmt.Errorf("cannot use %q: is a directory", p)
		}
		refs = append(refs, domain.FileRef{
			Name:        filepath.Base(p),
			Size:        info.Size(),
			ContentType: mime.TypeByExtension(filepath.Ext(p)),
		})
	}
	return refs, nil
}

// fileValue builds the value for a file field from typed paths.
func fileValue(field domain.FieldView, input string) (domain.Value, error) {
	refs, err := ParseFilePaths(input)
	if err != nil {
		return domain.Value{}, err
	}
	if field.Multiple {
		return domain.FilesValue(refs...), nil
	}
	switch len(refs) {
	case 0:
		return domain.FileValue(domain.FileRef{}), nil
	case 1:
		return domain.FileValue(refs[0]), nil
	default:
		return domain.Value{}, fmt.Errorf("only one file is accepted")
	}
}

// currentText renders the current value as a prompt default.
func currentText(field domain.FieldView) string {
	if field.Value == nil {
		return ""
	}
	return field.Value.String()
}

func promptLabel(field domain.FieldView) string {
	label := field.Label
	if field.Required {
		label += " *"
	}
	return label
}
