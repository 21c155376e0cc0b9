// Package app wires the spring layout solver into the command line surface:
// environment configuration, logging setup and the stdin-to-stdout JSON
// pipeline of the spring-layout binary.
package app

import (
	"context"
	"encoding/json"
	"io"
	"os"

	"github.com/caarlos0/env/v6"
	"github.com/pkg/errors"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/suxatcode/spring-layout/layout"
	"github.com/suxatcode/spring-layout/sparse"
)

type Config struct {
	// Levels are {trace, debug, info, warn, error, fatal, panic}.
	// See github.com/rs/zerolog log.go for possible values.
	LogLevel string `env:"LOGLEVEL" envDefault:"debug"`
	// simulation parameters, zero STRENGTH means 1/sqrt(n)
	MaxIterations   int     `env:"MAX_ITERATIONS" envDefault:"50"`
	Strength        float64 `env:"STRENGTH" envDefault:"0"`
	Tolerance       float64 `env:"TOLERANCE" envDefault:"0.0001"`
	InitialLayout   string  `env:"INITIAL_LAYOUT" envDefault:"spectral"`
	Parallelization int     `env:"PARALLELIZATION" envDefault:"0"`
	// when set, the final embedding is additionally rendered to this file
	PNGOut      string `env:"PNG_OUT" envDefault:""`
	InvertColor bool   `env:"INVERT_COLOR" envDefault:"false"`
}

func GetEnvConfig() Config {
	conf := Config{}
	env.Parse(&conf)
	return conf
}

// Node carries the per-node payload of the JSON graph document; Pos is
// filled with the computed embedding on output.
type Node struct {
	Name string    `json:"name"`
	Pos  []float64 `json:"pos,omitempty"`
}

// GraphDoc is the JSON document read from stdin and written to stdout.
type GraphDoc struct {
	Nodes []Node        `json:"nodes"`
	Edges []sparse.Edge `json:"edges"`
}

func initialLayoutFromName(name string) (layout.InitialLayout, error) {
	switch name {
	case "spectral":
		return layout.InitialLayoutSpectral, nil
	case "random":
		return layout.InitialLayoutRandom, nil
	}
	return layout.InitialLayoutUndefined, errors.Wrapf(layout.ErrUnknownInitialLayout, "%q", name)
}

// Run decodes a graph document from in, computes its spring layout and
// encodes the document with positions to out.
func Run(ctx context.Context, conf Config, in io.Reader, out io.Writer) error {
	doc := GraphDoc{}
	if err := json.NewDecoder(in).Decode(&doc); err != nil {
		return errors.Wrap(err, "failed to decode graph")
	}
	if len(doc.Nodes) == 0 {
		return errors.Wrap(sparse.ErrBadShape, "graph has no nodes")
	}
	adjacency, err := sparse.FromEdges(len(doc.Nodes), doc.Edges)
	if err != nil {
		return errors.Wrap(err, "failed to build adjacency")
	}
	adjacency, err = sparse.ValidateAndSymmetrize(adjacency)
	if err != nil {
		return errors.Wrap(err, "failed to symmetrize adjacency")
	}
	initialLayout, err := initialLayoutFromName(conf.InitialLayout)
	if err != nil {
		return err
	}
	fs := layout.NewForceSimulation(layout.Config{
		Strength:        conf.Strength,
		Tolerance:       conf.Tolerance,
		MaxIterations:   conf.MaxIterations,
		InitialLayout:   initialLayout,
		Parallelization: conf.Parallelization,
	})
	pos, stats, err := fs.ComputeLayout(ctx, adjacency, nil, -1)
	if err != nil {
		return errors.Wrap(err, "layout computation failed")
	}
	log.Info().Msgf(
		"graph layout computation finished: stats{iterations: %d, converged: %v, time: %d ms}",
		stats.Iterations, stats.Converged, stats.TotalTime.Milliseconds(),
	)
	for i := range doc.Nodes {
		doc.Nodes[i].Pos = []float64{pos[i].X(), pos[i].Y()}
	}
	if conf.PNGOut != "" {
		if err := layout.DrawPNG(pos, conf.PNGOut, conf.InvertColor); err != nil {
			return errors.Wrap(err, "failed to render PNG")
		}
		log.Info().Msgf("embedding rendered to %s", conf.PNGOut)
	}
	return errors.Wrap(json.NewEncoder(out).Encode(&doc), "failed to encode graph")
}

func setLogLevel(conf Config) {
	level, err := zerolog.ParseLevel(conf.LogLevel)
	if err != nil {
		log.Error().Msgf("unknown log level %q, defaulting to debug", conf.LogLevel)
		level = zerolog.DebugLevel
	}
	zerolog.SetGlobalLevel(level)
}

// Main is the entry point of the spring-layout binary.
func Main() {
	conf := GetEnvConfig()
	setLogLevel(conf)
	if err := Run(context.Background(), conf, os.Stdin, os.Stdout); err != nil {
		log.Fatal().Msgf("%v", err)
	}
}
