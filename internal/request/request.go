// Package request validates raw command line input into a generation request.
package request

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/woozymasta/geofixture/internal/geo"
)

// DataType selects which kind of features are generated.
type DataType string

// Supported data types.
const (
	Objects DataType = "objects"
	Paths   DataType = "paths"
)

// Raw holds unvalidated input exactly as received from the command line.
type Raw struct {
	DataType    string
	BoundingBox string
	Output      string
	Density     string
}

// Request is a validated generation request.
type Request struct {
	DataType    DataType
	Output      string
	BoundingBox geo.BoundingBox
	Density     float64
}

// Parse validates raw input and builds a Request.
func Parse(raw Raw) (Request, error) {
	dataType, err := parseDataType(raw.DataType)
	if err != nil {
		return Request{}, err
	}

	bbox, err := ParseBoundingBox(raw.BoundingBox)
	if err != nil {
		return Request{}, err
	}

	if raw.Output == "" {
		return Request{}, fmt.Errorf("%w: output path must be specified", ErrMissingArgument)
	}

	density, err := ParseDensity(raw.Density)
	if err != nil {
		return Request{}, err
	}

	return Request{
		DataType:    dataType,
		Output:      raw.Output,
		BoundingBox: bbox,
		Density:     density,
	}, nil
}

func parseDataType(s string) (DataType, error) {
	switch DataType(s) {
	case Objects, Paths:
		return DataType(s), nil
	}

	return "", fmt.Errorf("%w: data type %q must be either %s or %s", ErrInvalidArgument, s, Objects, Paths)
}

// ParseBoundingBox parses "lon1,lat1,lon2,lat2".
func ParseBoundingBox(s string) (geo.BoundingBox, error) {
	var bbox geo.BoundingBox

	parts := strings.Split(s, ",")
	if len(parts) != len(bbox) {
		return bbox, fmt.Errorf("%w: bounding box %q must be in lon,lat,lon,lat format", ErrFormat, s)
	}

	for i, part := range parts {
		v, err := strconv.ParseFloat(strings.TrimSpace(part), 64)
		if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
			return bbox, fmt.Errorf("%w: invalid number %q in bounding box %q", ErrFormat, part, s)
		}
		bbox[i] = v
	}

	for _, i := range []int{0, 2} {
		if bbox[i] < -180 || bbox[i] > 180 {
			return bbox, fmt.Errorf("%w: longitude %v in bounding box %q must be within [-180, 180]", ErrRange, bbox[i], s)
		}
	}
	for _, i := range []int{1, 3} {
		if bbox[i] < -90 || bbox[i] > 90 {
			return bbox, fmt.Errorf("%w: latitude %v in bounding box %q must be within [-90, 90]", ErrRange, bbox[i], s)
		}
	}

	return bbox, nil
}

// ParseDensity parses a non-negative number of features per square mile.
func ParseDensity(s string) (float64, error) {
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, fmt.Errorf("%w: density %q is not a number", ErrFormat, s)
	}
	if v < 0 {
		return 0, fmt.Errorf("%w: density %q is not a positive number", ErrRange, s)
	}

	return v, nil
}
