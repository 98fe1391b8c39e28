// Package migrations applies and prints the raw SQL files under migrations/.
// Files run in lexical order, each in its own transaction; the first failure
// rolls that file back and stops the batch.
package migrations

import (
	"context"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path"
	"sort"
	"strings"

	"horeca-board/pkg/logger"

	"github.com/jmoiron/sqlx"
)

const (
	gooseUp   = "-- +goose Up"
	gooseDown = "-- +goose Down"
)

type File struct {
	Name string
	SQL  string
}

// FileError names the file that stopped the batch.
type FileError struct {
	File string
	Err  error
}

func (e *FileError) Error() string {
	return fmt.Sprintf("migration %s failed: %v", e.File, e.Err)
}

func (e *FileError) Unwrap() error {
	return e.Err
}

// Load reads every *.sql file in dir, sorted by name.
func Load(fsys fs.FS, dir string) ([]File, error) {
	entries, err := fs.ReadDir(fsys, dir)
	if err != nil {
		return nil, fmt.Errorf("failed to read migrations dir %s: %w", dir, err)
	}

	var names []string
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), ".sql") {
			continue
		}
		names = append(names, e.Name())
	}
	sort.Strings(names)

	files := make([]File, 0, len(names))
	for _, name := range names {
		data, err := fs.ReadFile(fsys, path.Join(dir, name))
		if err != nil {
			return nil, fmt.Errorf("failed to read %s: %w", name, err)
		}
		files = append(files, File{Name: name, SQL: string(data)})
	}
	return files, nil
}

// LoadDir reads the *.sql files of a directory on disk. The path may be absolute
// or relative to the working directory.
func LoadDir(dir string) ([]File, error) {
	return Load(os.DirFS(dir), ".")
}

// UpSection returns the part of a goose-annotated file between the Up and Down markers.
// Files without markers are returned whole.
func UpSection(sql string) string {
	up := strings.Index(sql, gooseUp)
	if up < 0 {
		return sql
	}
	body := sql[up+len(gooseUp):]
	if down := strings.Index(body, gooseDown); down >= 0 {
		body = body[:down]
	}
	return strings.TrimSpace(body)
}

type Runner struct {
	db  *sqlx.DB
	log *logger.Logger
}

func NewRunner(db *sqlx.DB, log *logger.Logger) *Runner {
	return &Runner{db: db, log: log}
}

// Apply runs the files in order and returns the names that committed.
func (r *Runner) Apply(ctx context.Context, files []File) ([]string, error) {
	applied := make([]string, 0, len(files))
	for _, f := range files {
		if err := r.applyOne(ctx, f); err != nil {
			r.log.Error("Migration %s failed, batch halted: %v", f.Name, err)
			return applied, &FileError{File: f.Name, Err: err}
		}
		r.log.Info("Applied migration %s", f.Name)
		applied = append(applied, f.Name)
	}
	return applied, nil
}

func (r *Runner) applyOne(ctx context.Context, f File) error {
	stmt := UpSection(f.SQL)
	if strings.TrimSpace(stmt) == "" {
		return nil
	}

	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin: %w", err)
	}
	if _, err := tx.ExecContext(ctx, stmt); err != nil {
		if rbErr := tx.Rollback(); rbErr != nil {
			return fmt.Errorf("%w (rollback: %v)", err, rbErr)
		}
		return err
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit: %w", err)
	}
	return nil
}

// Print writes every file with a separator header, for pasting into a SQL console.
func Print(w io.Writer, files []File) error {
	for _, f := range files {
		if _, err := fmt.Fprintf(w, "-- ================ %s ================\n%s\n\n", f.Name, f.SQL); err != nil {
			return err
		}
	}
	return nil
}
