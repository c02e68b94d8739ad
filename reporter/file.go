package reporter

import (
	"errors"
	"fmt"
	"io"
	"os"
	"sync"

	"github.com/fxamacker/cbor/v2"

	"github.com/benbjohnson/cssparse"
	"github.com/benbjohnson/cssparse/parser"
	"github.com/benbjohnson/cssparse/token"
)

// Record is a reported error in a form that can be stored.
// Line and Column are zero-based. CBOR encoding uses integer keys.
type Record struct {
	URL    string                `cbor:"1,keyasint,omitempty"`
	Line   int                   `cbor:"2,keyasint"`
	Column int                   `cbor:"3,keyasint"`
	Kind   parser.ContextualKind `cbor:"4,keyasint"`
	Source string                `cbor:"5,keyasint,omitempty"`
	Error  string                `cbor:"6,keyasint,omitempty"`
}

// NewRecord returns the record for a reported error.
func NewRecord(urlData *css.URLData, pos token.Pos, err parser.ContextualError) Record {
	rec := Record{
		URL:    urlData.String(),
		Line:   pos.Line,
		Column: pos.Char,
		Kind:   err.Kind,
		Source: err.Source,
	}
	if err.Err != nil {
		rec.Error = err.Err.Error()
	}
	return rec
}

// String returns the record formatted as "url:line:column: kind: error".
func (r Record) String() string {
	msg := r.Kind.String()
	if r.Error != "" {
		msg += ": " + r.Error
	}
	return fmt.Sprintf("%s:%d:%d: %s", r.URL, r.Line+1, r.Column+1, msg)
}

var (
	recordEncMode cbor.EncMode
	recordDecMode cbor.DecMode
)

func init() {
	var err error

	encOpts := cbor.EncOptions{
		Sort:        cbor.SortCanonical,
		IndefLength: cbor.IndefLengthForbidden,
	}
	if recordEncMode, err = encOpts.EncMode(); err != nil {
		panic(fmt.Sprintf("failed to create record CBOR encoder mode: %v", err))
	}

	decOpts := cbor.DecOptions{
		DupMapKey:   cbor.DupMapKeyQuiet,
		IndefLength: cbor.IndefLengthAllowed,
	}
	if recordDecMode, err = decOpts.DecMode(); err != nil {
		panic(fmt.Sprintf("failed to create record CBOR decoder mode: %v", err))
	}
}

// File writes reported errors to a file as a stream of CBOR records.
// It is safe for concurrent use.
type File struct {
	mu      sync.Mutex
	file    *os.File
	encoder *cbor.Encoder
	closed  bool
}

// NewFile returns a reporter appending records to the file at path.
// The file is created with permissions 0644 if it does not exist.
func NewFile(path string) (*File, error) {
	f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0644)
	if err != nil {
		return nil, err
	}
	return &File{file: f, encoder: recordEncMode.NewEncoder(f)}, nil
}

// ReportError writes the error to the file. Encoding errors are ignored and
// errors reported after Close are dropped.
func (r *File) ReportError(urlData *css.URLData, pos token.Pos, err parser.ContextualError) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.closed {
		return
	}
	_ = r.encoder.Encode(NewRecord(urlData, pos, err))
}

// Close closes the file. It is safe to call Close multiple times.
func (r *File) Close() error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.closed {
		return nil
	}
	r.closed = true
	return r.file.Close()
}

// ReadFile returns all records stored in the file at path.
func ReadFile(path string) ([]Record, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return Decode(f)
}

// Decode reads records from r until EOF.
func Decode(r io.Reader) ([]Record, error) {
	var records []Record
	dec := recordDecMode.NewDecoder(r)
	for {
		var rec Record
		if err := dec.Decode(&rec); errors.Is(err, io.EOF) {
			return records, nil
		} else if err != nil {
			return records, err
		}
		records = append(records, rec)
	}
}
