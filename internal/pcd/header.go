package pcd

import (
	"bufio"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/ecopia-map/pcd_dataset/internal/data"
)

type DataFormat string

// Upper bound on the points allocated up front, larger clouds grow while being read
const maxPreallocatedPoints = 1 << 16

const (
	FormatASCII            DataFormat = "ascii"
	FormatBinary           DataFormat = "binary"
	FormatBinaryCompressed DataFormat = "binary_compressed"
)

// Parsed PCD header. Size, Type and Count are parallel to Fields.
type Header struct {
	Version string
	Fields  []string
	Size    []int
	Type    []string
	Count   []int
	Width   int
	Height  int
	Points  int
	Data    DataFormat
}

// Returns the index of the named field or -1
func (h *Header) fieldIndex(name string) int {
	for i, f := range h.Fields {
		if f == name {
			return i
		}
	}
	return -1
}

// Byte offset of each field inside one binary point record, and the record size
func (h *Header) offsets() ([]int, int) {
	offsets := make([]int, len(h.Fields))
	total := 0
	for i := range h.Fields {
		offsets[i] = total
		total += h.Size[i] * h.Count[i]
	}
	return offsets, total
}

// Position of the x, y and z values among the flattened per-point values (fields expanded by count)
func (h *Header) xyzColumns() ([3]int, error) {
	var cols [3]int
	for axis, name := range []string{"x", "y", "z"} {
		idx := h.fieldIndex(name)
		if idx < 0 {
			return cols, fmt.Errorf("%w: missing field %q", data.ErrParse, name)
		}
		col := 0
		for i := 0; i < idx; i++ {
			col += h.Count[i]
		}
		cols[axis] = col
	}
	return cols, nil
}

func readHeader(r *bufio.Reader) (*Header, error) {
	h := &Header{}
	for {
		line, err := r.ReadString('\n')
		if err != nil && line == "" {
			return nil, fmt.Errorf("%w: header ended before DATA line", data.ErrParse)
		}
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		tokens := strings.Fields(line)
		key, values := strings.ToUpper(tokens[0]), tokens[1:]
		switch key {
		case "VERSION":
			if len(values) > 0 {
				h.Version = values[0]
			}
		case "FIELDS":
			h.Fields = values
		case "SIZE":
			if h.Size, err = parseInts(key, values); err != nil {
				return nil, err
			}
		case "TYPE":
			h.Type = values
		case "COUNT":
			if h.Count, err = parseInts(key, values); err != nil {
				return nil, err
			}
		case "WIDTH":
			if h.Width, err = parseInt(key, values); err != nil {
				return nil, err
			}
		case "HEIGHT":
			if h.Height, err = parseInt(key, values); err != nil {
				return nil, err
			}
		case "POINTS":
			if h.Points, err = parseInt(key, values); err != nil {
				return nil, err
			}
		case "VIEWPOINT":
		case "DATA":
			if len(values) != 1 {
				return nil, fmt.Errorf("%w: malformed DATA line %q", data.ErrParse, line)
			}
			h.Data = DataFormat(strings.ToLower(values[0]))
			return h, h.validate()
		default:
			return nil, fmt.Errorf("%w: unknown header entry %q", data.ErrParse, tokens[0])
		}
	}
}

func (h *Header) validate() error {
	if len(h.Fields) == 0 {
		return fmt.Errorf("%w: no FIELDS declared", data.ErrParse)
	}
	if h.Count == nil {
		h.Count = make([]int, len(h.Fields))
		for i := range h.Count {
			h.Count[i] = 1
		}
	}
	if len(h.Size) != len(h.Fields) || len(h.Type) != len(h.Fields) || len(h.Count) != len(h.Fields) {
		return fmt.Errorf("%w: FIELDS, SIZE, TYPE and COUNT lengths differ", data.ErrParse)
	}
	for i, c := range h.Count {
		if c < 1 {
			return fmt.Errorf("%w: field %q has COUNT %d", data.ErrParse, h.Fields[i], c)
		}
	}
	if h.Width < 0 || h.Height < 0 || h.Points < 0 {
		return fmt.Errorf("%w: negative WIDTH, HEIGHT or POINTS", data.ErrParse)
	}
	if h.Width > 0 {
		height := h.Height
		if height == 0 {
			height = 1
		}
		if h.Width > math.MaxInt/height {
			return fmt.Errorf("%w: WIDTH %d * HEIGHT %d overflows", data.ErrParse, h.Width, height)
		}
		switch organized := h.Width * height; {
		case h.Points == 0:
			h.Points = organized
		case h.Points != organized:
			return fmt.Errorf("%w: POINTS %d disagrees with WIDTH*HEIGHT %d", data.ErrParse, h.Points, organized)
		}
	}
	for i, t := range h.Type {
		if err := checkType(t, h.Size[i]); err != nil {
			return fmt.Errorf("field %q: %w", h.Fields[i], err)
		}
	}
	switch h.Data {
	case FormatASCII, FormatBinary:
	case FormatBinaryCompressed:
		return fmt.Errorf("%w: DATA binary_compressed is not supported", data.ErrParse)
	default:
		return fmt.Errorf("%w: unknown DATA format %q", data.ErrParse, h.Data)
	}
	return nil
}

func checkType(t string, size int) error {
	switch strings.ToUpper(t) {
	case "F":
		if size == 4 || size == 8 {
			return nil
		}
	case "I", "U":
		if size == 1 || size == 2 || size == 4 || size == 8 {
			return nil
		}
	default:
		return fmt.Errorf("%w: unknown TYPE %q", data.ErrParse, t)
	}
	return fmt.Errorf("%w: TYPE %s with SIZE %d", data.ErrParse, t, size)
}

func parseInt(key string, values []string) (int, error) {
	if len(values) != 1 {
		return 0, fmt.Errorf("%w: %s expects one value", data.ErrParse, key)
	}
	v, err := strconv.Atoi(values[0])
	if err != nil || v < 0 {
		return 0, fmt.Errorf("%w: %s value %q", data.ErrParse, key, values[0])
	}
	return v, nil
}

func parseInts(key string, values []string) ([]int, error) {
	out := make([]int, len(values))
	for i, s := range values {
		v, err := strconv.Atoi(s)
		if err != nil || v <= 0 {
			return nil, fmt.Errorf("%w: %s value %q", data.ErrParse, key, s)
		}
		out[i] = v
	}
	return out, nil
}
