package main

import (
	"bufio"
	"bytes"
	"encoding/json"
	"errors"
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/jessevdk/go-flags"
	"github.com/matryer/is"
	"github.com/paulmach/orb/geojson"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/woozymasta/geofixture/internal/geo"
	"github.com/woozymasta/geofixture/internal/request"
)

const eps = 1e-9

type record struct {
	Coordinates [][]float64 `json:"coordinates"`
	ID          string      `json:"id"`
	Height      *int        `json:"height"`
	Base        *int        `json:"base"`
	Altitude    *int        `json:"altitude"`
}

func testOptions(t *testing.T, dataType string) Options {
	var opts Options
	opts.Args.DataType = dataType
	opts.BoundingBox = "-1,-1,1,1"
	opts.Output = filepath.Join(t.TempDir(), "out.json")
	opts.Density = "1"
	opts.Format = "json"
	return opts
}

func readRecords(is *is.I, path string) []record {
	data, err := os.ReadFile(path)
	is.NoErr(err)

	var records []record
	is.NoErr(json.Unmarshal(data, &records))
	return records
}

func withinBox(c []float64) bool {
	return len(c) == 2 &&
		c[0] >= -1-eps && c[0] <= 1+eps &&
		c[1] >= -1-eps && c[1] <= 1+eps
}

func TestGenerateObjects(t *testing.T) {
	is := is.New(t)
	opts := testOptions(t, "objects")

	is.NoErr(run(opts))

	_, n, err := geo.FeatureCount(geo.BoundingBox{-1, -1, 1, 1}, 1)
	is.NoErr(err)
	records := readRecords(is, opts.Output)
	is.Equal(len(records), n)

	for _, r := range records {
		is.True(r.Height != nil && *r.Height >= 10 && *r.Height <= 199)
		is.True(r.Base != nil && *r.Base == 0)
		is.True(r.Altitude == nil)
		is.Equal(len(r.ID), 36)

		is.Equal(len(r.Coordinates), 5) // 4 vertices, closed
		is.Equal(r.Coordinates[0], r.Coordinates[4])
		for _, c := range r.Coordinates {
			is.True(withinBox(c))
		}
	}
}

func TestGeneratePaths(t *testing.T) {
	is := is.New(t)
	opts := testOptions(t, "paths")

	is.NoErr(run(opts))

	records := readRecords(is, opts.Output)
	is.True(len(records) > 0)

	for _, r := range records {
		is.True(r.Altitude != nil && *r.Altitude >= 1000 && *r.Altitude <= 5999)
		is.True(r.Height == nil)
		is.Equal(len(r.ID), 36)
		is.True(len(r.Coordinates) >= 2)
		for _, c := range r.Coordinates {
			is.True(withinBox(c))
		}
	}
}

func TestRerunKeepsSchemaButChangesValues(t *testing.T) {
	is := is.New(t)

	first := testOptions(t, "objects")
	first.BoundingBox = "-0.1,-0.1,0.1,0.1"
	second := first
	second.Output = filepath.Join(t.TempDir(), "again.json")

	is.NoErr(run(first))
	is.NoErr(run(second))

	a := readRecords(is, first.Output)
	b := readRecords(is, second.Output)
	is.Equal(len(a), len(b))
	is.True(len(a) > 0)
	is.True(a[0].ID != b[0].ID)
}

func TestSeededRunIsReproducible(t *testing.T) {
	is := is.New(t)

	first := testOptions(t, "paths")
	first.BoundingBox = "-0.1,-0.1,0.1,0.1"
	first.Seed = 7
	second := first
	second.Output = filepath.Join(t.TempDir(), "again.json")

	is.NoErr(run(first))
	is.NoErr(run(second))

	a, err := os.ReadFile(first.Output)
	is.NoErr(err)
	b, err := os.ReadFile(second.Output)
	is.NoErr(err)
	is.Equal(string(a), string(b))
}

func TestZeroDensityWritesEmptyArray(t *testing.T) {
	is := is.New(t)
	opts := testOptions(t, "objects")
	opts.Density = "0"

	is.NoErr(run(opts))

	data, err := os.ReadFile(opts.Output)
	is.NoErr(err)
	is.Equal(string(data), "[]")
}

func TestGeoJSONWithPreview(t *testing.T) {
	is := is.New(t)
	opts := testOptions(t, "objects")
	opts.BoundingBox = "-0.2,-0.2,0.2,0.2"
	opts.Format = "geojson"
	opts.Minify = true
	opts.Preview = filepath.Join(t.TempDir(), "preview", "out.webp")

	is.NoErr(run(opts))

	data, err := os.ReadFile(opts.Output)
	is.NoErr(err)
	fc, err := geojson.UnmarshalFeatureCollection(data)
	is.NoErr(err)

	area := geo.Area(geo.BoundingBox{-0.2, -0.2, 0.2, 0.2})
	is.Equal(len(fc.Features), int(math.Floor(area)))

	info, err := os.Stat(opts.Preview)
	is.NoErr(err)
	is.True(info.Size() > 0)
}

func TestConfigFileChangesShape(t *testing.T) {
	is := is.New(t)
	opts := testOptions(t, "paths")
	opts.BoundingBox = "-0.1,-0.1,0.1,0.1"
	opts.ConfigFile = filepath.Join(t.TempDir(), "config.yaml")
	is.NoErr(os.WriteFile(opts.ConfigFile, []byte("path:\n  vertices: 3\n"), 0644))

	is.NoErr(run(opts))

	for _, r := range readRecords(is, opts.Output) {
		is.Equal(len(r.Coordinates), 3)
	}
}

func TestValidationErrors(t *testing.T) {
	cases := []struct {
		name   string
		modify func(*Options)
		want   error
	}{
		{"bad data type", func(o *Options) { o.Args.DataType = "shapes" }, request.ErrInvalidArgument},
		{"three tokens", func(o *Options) { o.BoundingBox = "1,2,3" }, request.ErrFormat},
		{"longitude range", func(o *Options) { o.BoundingBox = "200,2,3,4" }, request.ErrRange},
		{"negative density", func(o *Options) { o.Density = "-1" }, request.ErrRange},
		{"density not a number", func(o *Options) { o.Density = "abc" }, request.ErrFormat},
		{"empty output", func(o *Options) { o.Output = "" }, request.ErrMissingArgument},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			is := is.New(t)
			opts := testOptions(t, "objects")
			tc.modify(&opts)

			err := run(opts)
			is.True(errors.Is(err, tc.want))

			if opts.Output != "" {
				_, statErr := os.Stat(opts.Output)
				is.True(os.IsNotExist(statErr)) // nothing written
			}
		})
	}
}

func TestHugeDensityIsRangeError(t *testing.T) {
	for _, density := range []string{"1e12", "1e300"} {
		t.Run(density, func(t *testing.T) {
			is := is.New(t)
			opts := testOptions(t, "objects")
			opts.Density = density

			err := run(opts)
			is.True(errors.Is(err, request.ErrRange))
			is.True(strings.Contains(err.Error(), density))

			_, statErr := os.Stat(opts.Output)
			is.True(os.IsNotExist(statErr))
		})
	}
}

func TestRunReportsAreaAndCount(t *testing.T) {
	is := is.New(t)

	var buf bytes.Buffer
	prev := log.Logger
	log.Logger = zerolog.New(&buf)
	t.Cleanup(func() { log.Logger = prev })

	opts := testOptions(t, "paths")
	opts.BoundingBox = "-0.1,-0.1,0.1,0.1"
	is.NoErr(run(opts))

	entries := map[string]map[string]any{}
	scanner := bufio.NewScanner(&buf)
	for scanner.Scan() {
		var entry map[string]any
		is.NoErr(json.Unmarshal(scanner.Bytes(), &entry))
		if msg, ok := entry["message"].(string); ok {
			entries[msg] = entry
		}
	}

	area, ok := entries["Total area"]
	is.True(ok)
	want := geo.Area(geo.BoundingBox{-0.1, -0.1, 0.1, 0.1})
	is.True(math.Abs(area["area_sq_miles"].(float64)-want) < 1e-6)

	count, ok := entries["Total object count"]
	is.True(ok)
	is.True(math.Abs(count["count"].(float64)-want) < 1e-6) // density 1
	is.Equal(count["generated"], math.Floor(want))
	is.Equal(count["type"], "paths")
}

func TestEnvFallbacksArePrefixed(t *testing.T) {
	is := is.New(t)
	args := []string{"--boundingBox", "-1,-1,1,1", "--density", "1", "objects"}

	t.Setenv("FORMAT", "xml")
	t.Setenv("OUTPUT", "unrelated.txt")
	t.Setenv("GEOFIXTURE_OUTPUT", "from-env.json")

	var opts Options
	_, err := flags.NewParser(&opts, flags.None).ParseArgs(args)
	is.NoErr(err)
	is.Equal(opts.Format, "json")
	is.Equal(opts.Output, "from-env.json")
	is.Equal(opts.Args.DataType, "objects")

	t.Setenv("GEOFIXTURE_FORMAT", "yaml")

	var withFormat Options
	_, err = flags.NewParser(&withFormat, flags.None).ParseArgs(args)
	is.NoErr(err)
	is.Equal(withFormat.Format, "yaml")
}
