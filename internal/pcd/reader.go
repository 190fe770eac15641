// Package pcd reads and writes Point Cloud Data (.pcd) files.
package pcd

import (
	"bufio"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"math"
	"os"
	"strconv"
	"strings"

	"github.com/ecopia-map/pcd_dataset/internal/data"
)

// Loads the point cloud stored at path.
// Failures wrap data.ErrFileIO together with data.ErrFileNotFound or data.ErrParse.
type Loader interface {
	Load(path string) (data.PointCloud, error)
}

type FileLoader struct{}

func NewFileLoader() Loader {
	return &FileLoader{}
}

func (l *FileLoader) Load(path string) (data.PointCloud, error) {
	file, err := os.Open(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %w: %s", data.ErrFileIO, data.ErrFileNotFound, path)
		}
		return nil, fmt.Errorf("%w: %v", data.ErrFileIO, err)
	}
	defer func() { _ = file.Close() }()

	cloud, err := Read(file)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", data.ErrFileIO, path, err)
	}
	return cloud, nil
}

// Read decodes the x, y and z fields of a PCD stream. Other fields are skipped.
func Read(r io.Reader) (data.PointCloud, error) {
	br := bufio.NewReader(r)
	header, err := readHeader(br)
	if err != nil {
		return nil, err
	}

	switch header.Data {
	case FormatASCII:
		return readASCII(br, header)
	default:
		return readBinary(br, header)
	}
}

func readASCII(r *bufio.Reader, h *Header) (data.PointCloud, error) {
	cols, err := h.xyzColumns()
	if err != nil {
		return nil, err
	}
	width := 0
	for _, c := range h.Count {
		width += c
	}

	cloud := make(data.PointCloud, 0, min(h.Points, maxPreallocatedPoints))
	scanner := bufio.NewScanner(r)
	for scanner.Scan() && len(cloud) < h.Points {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		values := strings.Fields(line)
		if len(values) != width {
			return nil, fmt.Errorf("%w: point %d has %d values, expected %d", data.ErrParse, len(cloud), len(values), width)
		}

		var xyz [3]float64
		for axis, col := range cols {
			v, err := strconv.ParseFloat(values[col], 64)
			if err != nil {
				return nil, fmt.Errorf("%w: point %d: %v", data.ErrParse, len(cloud), err)
			}
			xyz[axis] = v
		}
		cloud = append(cloud, data.NewPoint(xyz[0], xyz[1], xyz[2]))
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("%w: %v", data.ErrParse, err)
	}
	if len(cloud) != h.Points {
		return nil, fmt.Errorf("%w: header declares %d points, found %d", data.ErrParse, h.Points, len(cloud))
	}
	return cloud, nil
}

func readBinary(r io.Reader, h *Header) (data.PointCloud, error) {
	var idx [3]int
	for axis, name := range []string{"x", "y", "z"} {
		idx[axis] = h.fieldIndex(name)
		if idx[axis] < 0 {
			return nil, fmt.Errorf("%w: missing field %q", data.ErrParse, name)
		}
	}
	offsets, recordSize := h.offsets()

	record := make([]byte, recordSize)
	cloud := make(data.PointCloud, 0, min(h.Points, maxPreallocatedPoints))
	for i := 0; i < h.Points; i++ {
		if _, err := io.ReadFull(r, record); err != nil {
			return nil, fmt.Errorf("%w: point %d: %v", data.ErrParse, i, err)
		}
		var xyz [3]float64
		for axis, f := range idx {
			xyz[axis] = decodeValue(record[offsets[f]:], h.Type[f], h.Size[f])
		}
		cloud = append(cloud, data.NewPoint(xyz[0], xyz[1], xyz[2]))
	}
	return cloud, nil
}

// PCD binary payloads are little endian
func decodeValue(b []byte, typ string, size int) float64 {
	le := binary.LittleEndian
	switch strings.ToUpper(typ) {
	case "F":
		if size == 4 {
			return float64(math.Float32frombits(le.Uint32(b)))
		}
		return math.Float64frombits(le.Uint64(b))
	case "I":
		switch size {
		case 1:
			return float64(int8(b[0]))
		case 2:
			return float64(int16(le.Uint16(b)))
		case 4:
			return float64(int32(le.Uint32(b)))
		default:
			return float64(int64(le.Uint64(b)))
		}
	default:
		switch size {
		case 1:
			return float64(b[0])
		case 2:
			return float64(le.Uint16(b))
		case 4:
			return float64(le.Uint32(b))
		default:
			return float64(le.Uint64(b))
		}
	}
}
