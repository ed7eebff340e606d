package cli

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/eclipse-basyx/basyx-go-aasx/internal/session"
)

var zipMagic = []byte("PK\x03\x04")

// openFile starts a session on an archive or a bare markup document. The
// format is sniffed from the content, not the file name.
func openFile(path string) (*session.Session, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	if bytes.HasPrefix(data, zipMagic) {
		return session.Open(cfg, data)
	}
	return session.OpenMarkup(cfg, string(data))
}

// writeOutput writes the session in the form selected by the extension of
// path: .aasx exports a package, .xml writes markup and .json the record.
// Exporting a package validates first and fails when that is not accepted.
func writeOutput(ctx context.Context, s *session.Session, path string) error {
	var data []byte
	switch strings.ToLower(filepath.Ext(path)) {
	case ".aasx":
		report, current := s.Report()
		if !current {
			var err error
			if report, err = s.Validate(ctx); err != nil {
				return err
			}
		}
		if !report.Accepted {
			return fmt.Errorf("%s: %w", path, ErrNotAccepted)
		}
		pkg, err := s.Export(ctx, nil)
		if err != nil {
			return err
		}
		data = pkg
	case ".xml":
		data = []byte(s.Markup().Text())
	case ".json":
		data = []byte(s.Record().Text())
	default:
		return &usageError{msg: fmt.Sprintf("unsupported output %q: use .aasx, .xml or .json", path)}
	}
	return os.WriteFile(path, data, 0o644)
}
