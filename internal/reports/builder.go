// Package reports turns fetched repository data into report aggregates.
// Builders own the fetch + normalize + analyze sequence for one report
// each; rendering lives elsewhere.
package reports

import (
	"math"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/mikematt33/ghscope/internal/config"
	"github.com/mikematt33/ghscope/internal/gh"
)

// Builder wires a fetcher and config into report constructors. AsOf is
// the analysis timestamp: every age and window is computed against it so
// a cached rerun reproduces the same numbers.
type Builder struct {
	Fetcher *gh.Fetcher
	Cfg     *config.Config
	Log     *logrus.Logger
	AsOf    time.Time
}

func NewBuilder(f *gh.Fetcher, cfg *config.Config, log *logrus.Logger) *Builder {
	if log == nil {
		log = logrus.StandardLogger()
	}
	return &Builder{
		Fetcher: f,
		Cfg:     cfg,
		Log:     log,
		AsOf:    time.Now().UTC(),
	}
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}
