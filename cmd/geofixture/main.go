package main

import (
	"errors"
	"fmt"
	"io"
	"math/rand/v2"
	"os"

	"github.com/woozymasta/geofixture/internal/config"
	"github.com/woozymasta/geofixture/internal/geo"
	"github.com/woozymasta/geofixture/internal/logger"
	"github.com/woozymasta/geofixture/internal/output"
	"github.com/woozymasta/geofixture/internal/preview"
	"github.com/woozymasta/geofixture/internal/randgeo"
	"github.com/woozymasta/geofixture/internal/request"
	"github.com/woozymasta/geofixture/internal/synth"

	"github.com/jessevdk/go-flags"
	"github.com/rs/zerolog/log"
)

type Options struct {
	Logger logger.Logger `group:"Logger options"`

	Args struct {
		DataType string `positional-arg-name:"dataType" description:"Type of data to be generated, either 'objects' or 'paths'"`
	} `positional-args:"yes" required:"yes"`

	BoundingBox string `short:"b" long:"boundingBox" env:"GEOFIXTURE_BOUNDING_BOX" description:"Bounding box of the features as lon1,lat1,lon2,lat2" required:"true"`
	Output      string `short:"o" long:"output"      env:"GEOFIXTURE_OUTPUT" description:"Path to the output file, '-' for stdout" required:"true"`
	Density     string `short:"d" long:"density"     env:"GEOFIXTURE_DENSITY" description:"Density of the features per square mile" required:"true"`
	Format      string `short:"f" long:"format"      env:"GEOFIXTURE_FORMAT" description:"Output format" choice:"json" choice:"yaml" choice:"geojson" default:"json"`
	Preview     string `short:"p" long:"preview"     env:"GEOFIXTURE_PREVIEW" description:"Also render a WebP preview to this path"`
	ConfigFile  string `short:"c" long:"config"      env:"GEOFIXTURE_CONFIG" description:"Path to YAML file with shape and preview parameters"`
	Seed        uint64 `short:"s" long:"seed"        env:"GEOFIXTURE_SEED" description:"Seed for a reproducible run, 0 is random"`
	Minify      bool   `short:"m" long:"minify"                         description:"Write compact JSON instead of indented"`
}

func main() {
	var opts Options
	parser := flags.NewParser(&opts, flags.Default)
	if _, err := parser.Parse(); err != nil {
		if flagsErr, ok := err.(*flags.Error); ok && flagsErr.Type == flags.ErrHelp {
			os.Exit(0)
		}
		os.Exit(1)
	}

	opts.Logger.Setup()

	if err := run(opts); err != nil {
		log.Fatal().Err(err).Msg("Generation failed")
	}
}

func run(opts Options) error {
	req, err := request.Parse(request.Raw{
		DataType:    opts.Args.DataType,
		BoundingBox: opts.BoundingBox,
		Output:      opts.Output,
		Density:     opts.Density,
	})
	if err != nil {
		return err
	}

	cfg, err := config.Load(opts.ConfigFile)
	if err != nil {
		return fmt.Errorf("load configuration: %w", err)
	}

	format := output.Format(opts.Format)
	if opts.Minify && format == output.YAML {
		log.Warn().Msg("Minify has no effect on YAML output")
	}

	count, n, err := geo.FeatureCount(req.BoundingBox, req.Density)
	if err != nil {
		return fmt.Errorf("%w: density %q: %v", request.ErrRange, opts.Density, err)
	}
	log.Info().
		Float64("area_sq_miles", geo.Area(req.BoundingBox)).
		Msg("Total area")
	log.Info().
		Float64("count", count).
		Int("generated", n).
		Str("type", string(req.DataType)).
		Msg("Total object count")

	dataset, err := generate(req, cfg, opts.Seed, n)
	if err != nil {
		return err
	}

	if err := output.Write(req.Output, dataset, format, opts.Minify); err != nil {
		return err
	}

	if opts.Preview != "" {
		err := preview.Render(opts.Preview, req.BoundingBox, dataset, preview.Options{
			Size:    cfg.Preview.Size,
			Quality: cfg.Preview.Quality,
		})
		if err != nil {
			return err
		}
	}

	return nil
}

func generate(req request.Request, cfg *config.Config, seed uint64, n int) (output.Dataset, error) {
	stream := randgeo.Stream(seed)
	rnd := rand.New(stream)

	// Unseeded runs take identifiers from crypto/rand.
	var ids io.Reader
	if seed != 0 {
		ids = stream
	}
	s := synth.New(randgeo.New(rnd), rnd, ids, cfg.PolygonOptions(), cfg.LineOptions())

	dataset := output.Dataset{Kind: req.DataType}

	var err error
	switch req.DataType {
	case request.Objects:
		dataset.Objects, err = s.Objects(n, req.BoundingBox)
	case request.Paths:
		dataset.Paths, err = s.Paths(n, req.BoundingBox)
	default:
		err = errors.New("unsupported data type")
	}

	return dataset, err
}
