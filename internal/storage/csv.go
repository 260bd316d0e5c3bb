package storage

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/san-kum/rigidsim/internal/dynamo"
)

var bodyColumns = [...]string{"_x", "_y", "_angle"}

// WriteFrames writes one row per frame: step, time, then x, y and angle of
// every body in the order of the first frame.
func WriteFrames(w io.Writer, frames []dynamo.Frame) error {
	cw := csv.NewWriter(w)

	header := []string{"step", "time"}
	if len(frames) > 0 {
		for _, b := range frames[0].Bodies {
			for _, col := range bodyColumns {
				header = append(header, b.Name+col)
			}
		}
	}
	if err := cw.Write(header); err != nil {
		return err
	}

	for _, f := range frames {
		row := []string{strconv.Itoa(f.Step), formatFloat(f.Time)}
		for _, b := range f.Bodies {
			row = append(row, formatFloat(b.X), formatFloat(b.Y), formatFloat(b.Angle))
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}

	cw.Flush()
	return cw.Error()
}

// ReadFrames parses what WriteFrames wrote. Velocities are not stored and
// come back as zero. A row whose width differs from the header fails with
// dynamo.ErrDimensionMismatch.
func ReadFrames(r io.Reader) ([]dynamo.Frame, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	records, err := cr.ReadAll()
	if err != nil {
		return nil, err
	}
	if len(records) == 0 {
		return []dynamo.Frame{}, nil
	}

	header := records[0]
	if len(header) < 2 || (len(header)-2)%len(bodyColumns) != 0 {
		return nil, fmt.Errorf("malformed frames header: %v", header)
	}
	names := make([]string, 0, (len(header)-2)/len(bodyColumns))
	for i := 2; i < len(header); i += len(bodyColumns) {
		names = append(names, strings.TrimSuffix(header[i], bodyColumns[0]))
	}

	frames := make([]dynamo.Frame, 0, len(records)-1)
	for line, record := range records[1:] {
		if len(record) != len(header) {
			return nil, fmt.Errorf("line %d: %d fields for %d columns: %w", line+2, len(record), len(header), dynamo.ErrDimensionMismatch)
		}
		step, err := strconv.Atoi(record[0])
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", line+2, err)
		}
		vals := make([]float64, len(record)-1)
		for i, field := range record[1:] {
			if vals[i], err = strconv.ParseFloat(field, 64); err != nil {
				return nil, fmt.Errorf("line %d: %w", line+2, err)
			}
		}

		f := dynamo.Frame{Step: step, Time: vals[0], Bodies: make([]dynamo.BodyState, len(names))}
		for i, name := range names {
			off := 1 + i*len(bodyColumns)
			f.Bodies[i] = dynamo.BodyState{Name: name, X: vals[off], Y: vals[off+1], Angle: vals[off+2]}
		}
		frames = append(frames, f)
	}
	return frames, nil
}

// Series extracts one column of a body across frames, for plotting.
func Series(frames []dynamo.Frame, body, column string) ([]float64, error) {
	data := make([]float64, 0, len(frames))
	for _, f := range frames {
		b, ok := f.Body(body)
		if !ok {
			return nil, fmt.Errorf("body %q not in frame %d", body, f.Step)
		}
		switch column {
		case "x":
			data = append(data, b.X)
		case "y":
			data = append(data, b.Y)
		case "angle":
			data = append(data, b.Angle)
		default:
			return nil, fmt.Errorf("unknown column %q", column)
		}
	}
	return data, nil
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', 6, 64)
}
