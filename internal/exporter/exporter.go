// Package exporter regenerates a pretty-printed JSON fixture from its source document.
package exporter

import (
	"bytes"
	"fmt"
	"os"

	"github.com/sirupsen/logrus"

	"github.com/mcncl/fixturegen/internal/config"
	"github.com/mcncl/fixturegen/internal/errors"
	"github.com/mcncl/fixturegen/internal/formatter"
	"github.com/mcncl/fixturegen/internal/locate"
	"github.com/mcncl/fixturegen/internal/models"
	"github.com/mcncl/fixturegen/internal/parser"
)

// Exporter reads one source document and writes it back out as a fixture
type Exporter struct {
	InputPath  string
	OutputPath string

	formatter *formatter.Formatter
	log       *logrus.Entry
}

// Result describes a completed export
type Result struct {
	InputPath  string
	OutputPath string
	Kind       models.Kind
	Bytes      int
	// Changed is false when the fixture already held exactly these bytes.
	Changed bool
}

// New creates an Exporter whose relative file names resolve against baseDir
func New(baseDir string, cfg *config.Config, log *logrus.Entry) *Exporter {
	if log == nil {
		log = logrus.NewEntry(logrus.StandardLogger())
	}
	return &Exporter{
		InputPath:  locate.Resolve(baseDir, cfg.Input),
		OutputPath: locate.Resolve(baseDir, cfg.Output),
		formatter: &formatter.Formatter{
			Indent:          cfg.Indent,
			TrailingNewline: cfg.TrailingNewline,
		},
		log: log,
	}
}

// Render reads and parses the source document and returns its fixture text.
// Nothing is written.
func (e *Exporter) Render() (models.Document, []byte, error) {
	doc, err := parser.ParseFile(e.InputPath)
	if err != nil {
		return models.Document{}, nil, err
	}
	e.log.WithFields(logrus.Fields{
		"input": e.InputPath,
		"bytes": doc.Size,
		"kind":  doc.Kind,
	}).Debug("parsed source document")

	out, err := e.formatter.Format(doc)
	if err != nil {
		return models.Document{}, nil, errors.NewEncodingError(
			fmt.Sprintf("failed to serialize '%s'", e.InputPath), err)
	}
	return doc, out, nil
}

// Export rewrites the fixture from the source document. The fixture is only
// touched once the source has been read and parsed successfully, and is
// replaced in one step so readers never see a partial file.
func (e *Exporter) Export() (Result, error) {
	doc, out, err := e.Render()
	if err != nil {
		return Result{}, err
	}

	previous, readErr := os.ReadFile(e.OutputPath)
	changed := readErr != nil || !bytes.Equal(previous, out)

	if err := writeFileAtomic(e.OutputPath, out, 0644); err != nil {
		return Result{}, errors.NewOutputError(
			fmt.Sprintf("failed to write fixture '%s'", e.OutputPath), err)
	}

	e.log.WithFields(logrus.Fields{
		"output":  e.OutputPath,
		"bytes":   len(out),
		"changed": changed,
	}).Debug("wrote fixture")

	return Result{
		InputPath:  e.InputPath,
		OutputPath: e.OutputPath,
		Kind:       doc.Kind,
		Bytes:      len(out),
		Changed:    changed,
	}, nil
}
