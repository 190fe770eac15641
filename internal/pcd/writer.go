package pcd

import (
	"bufio"
	"fmt"
	"io"
	"math"
	"os"
	"strconv"

	"github.com/ecopia-map/pcd_dataset/internal/data"
	"github.com/shopspring/decimal"
)

// Write encodes the cloud as an ascii PCD v0.7 stream with float64 x, y, z fields.
func Write(w io.Writer, cloud data.PointCloud) error {
	bw := bufio.NewWriter(w)

	header := "# .PCD v0.7 - Point Cloud Data file format\n" +
		"VERSION 0.7\n" +
		"FIELDS x y z\n" +
		"SIZE 8 8 8\n" +
		"TYPE F F F\n" +
		"COUNT 1 1 1\n" +
		fmt.Sprintf("WIDTH %d\n", len(cloud)) +
		"HEIGHT 1\n" +
		"VIEWPOINT 0 0 0 1 0 0 0\n" +
		fmt.Sprintf("POINTS %d\n", len(cloud)) +
		"DATA ascii\n"
	if _, err := bw.WriteString(header); err != nil {
		return err
	}

	for _, p := range cloud {
		line := formatCoord(p.X) + " " + formatCoord(p.Y) + " " + formatCoord(p.Z) + "\n"
		if _, err := bw.WriteString(line); err != nil {
			return err
		}
	}
	return bw.Flush()
}

// Shortest decimal string that parses back to exactly v
func formatCoord(v float64) string {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return strconv.FormatFloat(v, 'g', -1, 64)
	}
	return decimal.NewFromFloat(v).String()
}

// SaveFile writes the cloud to path, replacing any existing file.
func SaveFile(path string, cloud data.PointCloud) error {
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("%w: %v", data.ErrFileIO, err)
	}

	if err := Write(file, cloud); err != nil {
		_ = file.Close()
		return fmt.Errorf("%w: %s: %v", data.ErrFileIO, path, err)
	}
	return file.Close()
}
