// Command ballpivot reconstructs a triangle mesh from an oriented point
// cloud using ball pivoting.
//
// Input is a text file with one point per line, whitespace separated:
//
//	x y z nx ny nz [r g b]
//
// Blank lines and lines starting with '#' are skipped. Output is a
// binary STL file.
package main

import (
	"bufio"
	"flag"
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/deadsy/sdfx/render"
	v3 "github.com/deadsy/sdfx/vec/v3"

	"github.com/chazu/ballpivot/pkg/cloud"
	"github.com/chazu/ballpivot/pkg/pivot"
	"github.com/chazu/ballpivot/pkg/spatial"
	"github.com/chazu/ballpivot/pkg/spatial/kdtree"
	"github.com/chazu/ballpivot/pkg/spatial/rtree"
)

func main() {
	var (
		radiiFlag = flag.String("r", "", "comma-separated ball radii, e.g. 0.1,0.2 (required)")
		indexFlag = flag.String("index", "kdtree", "spatial index backend: kdtree or rtree")
		outFlag   = flag.String("o", "out.stl", "output STL path")
		verbose   = flag.Bool("v", false, "log the pivoting trace to stderr")
	)
	flag.Parse()

	if flag.NArg() != 1 || *radiiFlag == "" {
		fmt.Fprintf(os.Stderr, "usage: ballpivot -r <radii> [-index kdtree|rtree] [-o out.stl] [-v] <points.xyz>\n")
		os.Exit(2)
	}

	radii, err := parseRadii(*radiiFlag)
	if err != nil {
		log.Fatalf("ballpivot: %v", err)
	}

	pc, err := readPointCloud(flag.Arg(0))
	if err != nil {
		log.Fatalf("ballpivot: %v", err)
	}

	var index spatial.Index
	switch *indexFlag {
	case "kdtree":
		index = kdtree.New(pc.Points)
	case "rtree":
		index = rtree.New(pc.Points)
	default:
		log.Fatalf("ballpivot: unknown index backend %q", *indexFlag)
	}

	engine := pivot.NewEngine(pc, index)
	if *verbose {
		engine.Log = log.New(os.Stderr, "pivot: ", 0)
	}

	m, err := engine.Run(radii)
	if err != nil {
		log.Fatalf("ballpivot: %v", err)
	}
	fmt.Printf("%d points -> %d triangles\n", pc.Len(), m.TriangleCount())

	if err := render.SaveSTL(*outFlag, m.Triangles3()); err != nil {
		log.Fatalf("ballpivot: %v", err)
	}
	fmt.Printf("wrote %s\n", *outFlag)
}

// parseRadii parses a comma-separated list of ball radii.
func parseRadii(s string) ([]float64, error) {
	parts := strings.Split(s, ",")
	radii := make([]float64, 0, len(parts))
	for _, p := range parts {
		r, err := strconv.ParseFloat(strings.TrimSpace(p), 64)
		if err != nil {
			return nil, fmt.Errorf("bad radius %q: %w", p, err)
		}
		radii = append(radii, r)
	}
	return radii, nil
}

// readPointCloud reads an xyz-with-normals file. Every line must carry
// the same number of fields; colors are either on every point or none.
func readPointCloud(path string) (*cloud.PointCloud, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	pc := cloud.New()
	scanner := bufio.NewScanner(f)
	lineno := 0
	wantFields := 0
	for scanner.Scan() {
		lineno++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		fields := strings.Fields(line)
		if len(fields) != 6 && len(fields) != 9 {
			return nil, fmt.Errorf("%s:%d: want 6 or 9 fields, got %d", path, lineno, len(fields))
		}
		if wantFields == 0 {
			wantFields = len(fields)
		} else if len(fields) != wantFields {
			return nil, fmt.Errorf("%s:%d: want %d fields as on earlier lines, got %d", path, lineno, wantFields, len(fields))
		}
		vals := make([]float64, len(fields))
		for i, fld := range fields {
			v, err := strconv.ParseFloat(fld, 64)
			if err != nil {
				return nil, fmt.Errorf("%s:%d: bad number %q", path, lineno, fld)
			}
			vals[i] = v
		}
		p := v3.Vec{X: vals[0], Y: vals[1], Z: vals[2]}
		n := v3.Vec{X: vals[3], Y: vals[4], Z: vals[5]}
		if len(fields) == 9 {
			pc.AddColored(p, n, v3.Vec{X: vals[6], Y: vals[7], Z: vals[8]})
		} else {
			pc.Add(p, n)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return pc, nil
}
