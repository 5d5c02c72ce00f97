// Package export writes notes out as Markdown files with YAML frontmatter
// and reads them back.
package export

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/spf13/afero"
	"gopkg.in/yaml.v3"

	"github.com/aretw0/jot/pkg/core"
)

// Ext is the extension of exported files.
const Ext = ".md"

type frontmatter struct {
	ID        string `yaml:"id"`
	Title     string `yaml:"title,omitempty"`
	UpdatedAt int64  `yaml:"updatedAt"`
}

// Markdown renders a note as Markdown with frontmatter.
func Markdown(n core.Note) ([]byte, error) {
	var buf bytes.Buffer

	buf.WriteString("---\n")
	encoder := yaml.NewEncoder(&buf)
	encoder.SetIndent(2)
	if err := encoder.Encode(frontmatter{ID: n.ID, Title: n.Title, UpdatedAt: n.UpdatedAt}); err != nil {
		return nil, err
	}
	if err := encoder.Close(); err != nil {
		return nil, err
	}
	buf.WriteString("---\n")

	buf.WriteString(n.Content)
	return buf.Bytes(), nil
}

// Parse reads a note written by Markdown.
func Parse(r io.Reader) (core.Note, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return core.Note{}, err
	}

	if !bytes.HasPrefix(data, []byte("---\n")) && !bytes.HasPrefix(data, []byte("---\r\n")) {
		return core.Note{}, errors.New("missing frontmatter")
	}

	rest := data[bytes.IndexByte(data, '\n')+1:]
	end := bytes.Index(rest, []byte("\n---"))
	if end < 0 {
		return core.Note{}, errors.New("frontmatter started but no closing delimiter found")
	}

	var fm frontmatter
	if err := yaml.Unmarshal(rest[:end+1], &fm); err != nil {
		return core.Note{}, fmt.Errorf("failed to parse frontmatter: %w", err)
	}
	if fm.ID == "" {
		return core.Note{}, core.ErrEmptyID
	}

	body := string(rest[end+len("\n---"):])
	body = strings.TrimPrefix(body, "\r")
	body = strings.TrimPrefix(body, "\n")

	return core.Note{
		ID:        fm.ID,
		Title:     fm.Title,
		Content:   body,
		UpdatedAt: fm.UpdatedAt,
	}, nil
}

// Dir writes every note to dir as {id}.md and returns the written paths.
func Dir(fsys afero.Fs, dir string, notes core.Notes) ([]string, error) {
	if err := fsys.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create export directory: %w", err)
	}

	paths := make([]string, 0, len(notes))
	for _, n := range notes {
		if n.ID == "" || strings.ContainsAny(n.ID, `/\`) {
			return paths, fmt.Errorf("cannot export note with id %q", n.ID)
		}
		data, err := Markdown(n)
		if err != nil {
			return paths, fmt.Errorf("failed to render note %s: %w", n.ID, err)
		}
		path := filepath.Join(dir, n.ID+Ext)
		if err := afero.WriteFile(fsys, path, data, 0644); err != nil {
			return paths, fmt.Errorf("failed to write %s: %w", path, err)
		}
		paths = append(paths, path)
	}
	return paths, nil
}
