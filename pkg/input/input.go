// Package input reads and writes the flat triangle list: a triangle count
// followed by nine coordinates per triangle (ax ay az bx by bz cx cy cz),
// all separated by whitespace. Line breaks carry no meaning.
package input

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"

	"github.com/chazu/trisect/pkg/geom"
)

// FieldsPerTriangle is the number of coordinates in one record.
const FieldsPerTriangle = 9

// maxPrealloc caps the slice ReadAll sizes from an untrusted count.
const maxPrealloc = 1 << 16

var (
	ErrCount     = errors.New("bad triangle count")
	ErrTruncated = errors.New("input ends before the last triangle")
	ErrSyntax    = errors.New("not a number")
)

// ParseError locates a bad or missing coordinate.
type ParseError struct {
	Triangle int    // 0-based record index
	Field    int    // 0-based coordinate index within the record
	Token    string // offending token, empty when input ended
	Err      error
}

func (e *ParseError) Error() string {
	if e.Token == "" {
		return fmt.Sprintf("input: triangle %d field %d: %v", e.Triangle, e.Field, e.Err)
	}
	return fmt.Sprintf("input: triangle %d field %d %q: %v", e.Triangle, e.Field, e.Token, e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// Record is one raw triangle. ID is its position in the input.
type Record struct {
	ID      int
	A, B, C geom.Vector3
}

// Triangle validates the record. Degenerate records return a wrapped
// geom.ErrDegenerate.
func (r Record) Triangle() (geom.Triangle, error) {
	return geom.NewTriangle(r.A, r.B, r.C)
}

// Reader decodes records one at a time.
type Reader struct {
	sc    *bufio.Scanner
	count int
	next  int
}

// NewReader reads the count and returns a Reader positioned at the first
// record.
func NewReader(r io.Reader) (*Reader, error) {
	sc := bufio.NewScanner(r)
	sc.Split(bufio.ScanWords)
	if !sc.Scan() {
		if err := sc.Err(); err != nil {
			return nil, fmt.Errorf("input: count: %w", err)
		}
		return nil, fmt.Errorf("input: count: %w: empty input", ErrCount)
	}
	tok := sc.Text()
	n, err := strconv.Atoi(tok)
	if err != nil || n < 0 {
		return nil, fmt.Errorf("input: count: %w: %q", ErrCount, tok)
	}
	return &Reader{sc: sc, count: n}, nil
}

// Count is the number of records announced by the input.
func (r *Reader) Count() int {
	return r.count
}

// Next returns the next record, or io.EOF once Count records were read.
// Anything after the last record is ignored.
func (r *Reader) Next() (Record, error) {
	if r.next >= r.count {
		return Record{}, io.EOF
	}
	var f [FieldsPerTriangle]float64
	for i := range f {
		if !r.sc.Scan() {
			err := r.sc.Err()
			if err == nil {
				err = ErrTruncated
			}
			return Record{}, &ParseError{Triangle: r.next, Field: i, Err: err}
		}
		tok := r.sc.Text()
		v, err := strconv.ParseFloat(tok, 64)
		if err != nil {
			return Record{}, &ParseError{Triangle: r.next, Field: i, Token: tok, Err: ErrSyntax}
		}
		f[i] = v
	}
	rec := Record{
		ID: r.next,
		A:  geom.Vec3(f[0], f[1], f[2]),
		B:  geom.Vec3(f[3], f[4], f[5]),
		C:  geom.Vec3(f[6], f[7], f[8]),
	}
	r.next++
	return rec, nil
}

// ReadAll reads every record.
func ReadAll(r io.Reader) ([]Record, error) {
	rd, err := NewReader(r)
	if err != nil {
		return nil, err
	}
	out := make([]Record, 0, min(rd.Count(), maxPrealloc))
	for {
		rec, err := rd.Next()
		if errors.Is(err, io.EOF) {
			return out, nil
		}
		if err != nil {
			return nil, err
		}
		out = append(out, rec)
	}
}

// Write encodes triangles in the format Reader accepts, one triangle per
// line. Coordinates use the shortest text that parses back exactly.
func Write(w io.Writer, tris []geom.Triangle) error {
	bw := bufio.NewWriter(w)
	fmt.Fprintf(bw, "%d\n", len(tris))
	buf := make([]byte, 0, 256)
	for _, t := range tris {
		buf = buf[:0]
		for i, v := range t.Vertices() {
			for j, c := range [3]float64{v.X, v.Y, v.Z} {
				if i > 0 || j > 0 {
					buf = append(buf, ' ')
				}
				buf = strconv.AppendFloat(buf, c, 'g', -1, 64)
			}
		}
		buf = append(buf, '\n')
		if _, err := bw.Write(buf); err != nil {
			return fmt.Errorf("input: write: %w", err)
		}
	}
	if err := bw.Flush(); err != nil {
		return fmt.Errorf("input: write: %w", err)
	}
	return nil
}
