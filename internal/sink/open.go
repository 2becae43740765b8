package sink

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/scan-io-git/scanio-parser/pkg/shared/config"
	"github.com/scan-io-git/scanio-parser/pkg/shared/files"
)

// StdoutPath selects standard output for file based formats.
const StdoutPath = "-"

// Options selects and configures the writer behind a Builder.
type Options struct {
	Format string
	// Path is the output file or folder for jsonl and sarif; empty or "-"
	// writes to Stdout.
	Path     string
	Postgres config.Postgres
	// Stdout defaults to os.Stdout.
	Stdout io.Writer
}

// Open creates the writer for opts.Format and wraps it in a Builder.
func Open(ctx context.Context, opts Options) (*Builder, error) {
	format, err := ParseFormat(opts.Format)
	if err != nil {
		return nil, err
	}

	if format == FormatPostgres {
		db, err := OpenPostgres(ctx, opts.Postgres)
		if err != nil {
			return nil, fmt.Errorf("postgres output: %w", err)
		}
		return New(NewPostgresWriter(ctx, db, true)), nil
	}

	out, err := openOutput(opts, format)
	if err != nil {
		return nil, err
	}
	if format == FormatSARIF {
		w, err := NewSARIFWriter(out)
		if err != nil {
			out.Close()
			return nil, err
		}
		return New(w), nil
	}
	return New(NewJSONLWriter(out)), nil
}

func openOutput(opts Options, format string) (io.WriteCloser, error) {
	if opts.Path == "" || opts.Path == StdoutPath {
		stdout := opts.Stdout
		if stdout == nil {
			stdout = os.Stdout
		}
		return nopCloser{stdout}, nil
	}

	path, folder, err := files.DetermineFileFullPath(opts.Path, "scanio-parser-report."+format)
	if err != nil {
		return nil, err
	}
	if err := files.CreateFolderIfNotExists(folder); err != nil {
		return nil, err
	}
	return &lazyFile{path: path}, nil
}

// lazyFile creates its file on the first Write, so an output that is never
// flushed leaves nothing behind.
type lazyFile struct {
	path string
	f    *os.File
}

func (l *lazyFile) Write(p []byte) (int, error) {
	if l.f == nil {
		f, err := os.OpenFile(l.path, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0644)
		if err != nil {
			return 0, fmt.Errorf("failed to create output file: %w", err)
		}
		l.f = f
	}
	return l.f.Write(p)
}

func (l *lazyFile) Close() error {
	if l.f == nil {
		return nil
	}
	return l.f.Close()
}

type nopCloser struct {
	io.Writer
}

func (nopCloser) Close() error { return nil }
