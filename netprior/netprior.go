/*

Netprior estimates empirical prior distributions for the LLIN
stock-and-flow model. Three priors are fitted by MCMC: the annual net
discard rate, the administrative reporting error and bias, and the
coverage decay rate together with the zero-inflation fraction.

The basic usage of netprior looks like this:

	netprior -data data/

, this will fit all three priors from the CSV tables in data/ and cache
them as JSON files in the current directory. Priors are refitted even
if a cache file exists; use -no-recompute to reuse cached results.

To see all the options run:

	netprior -h

*/
package main

import (
	"encoding/json"
	"fmt"
	"math/rand"
	"os"
	"time"

	"github.com/op/go-logging"
	bolt "go.etcd.io/bbolt"
	"gopkg.in/alecthomas/kingpin.v2"

	"github.com/llin-model/netprior/data"
	"github.com/llin-model/netprior/mcmc"
	"github.com/llin-model/netprior/priors"
)

// These three variables are set during the compilation.
var githash = ""
var gitbranch = ""
var buildstamp = ""
var version = fmt.Sprintf("branch: %s, revision: %s, build time: %s", gitbranch, githash, buildstamp)

// Logger settings.
var log = logging.MustGetLogger("netprior")
var formatter = logging.MustStringFormatter(`%{message}`)

// command-line options
var (
	// application
	app = kingpin.New("netprior", "empirical prior estimator for the LLIN stock-and-flow model").Version(version)

	// input data directory
	dataDir = app.Flag("data", "directory with the input CSV tables").Default("data").ExistingDir()

	// output
	path      = app.Flag("path", "directory for the prior cache files").Default(".").String()
	recompute = app.Flag("recompute", "refit the priors even if a cache file exists").Default("true").Bool()

	// mcmc parameters
	burn    = app.Flag("burn", "number of burn-in iterations").Default("20000").Int()
	samples = app.Flag("samples", "number of posterior samples").Default("10000").Int()
	thin    = app.Flag("thin", "thinning interval").Default("20").Int()
	quiet   = app.Flag("quiet", "don't print the sampling trajectory").Bool()

	// adaptive mcmc parameters
	adaptive = app.Flag("adaptive", "use adaptive MCMC").Bool()
	skip     = app.Flag("skip", "number of iterations to skip for adaptive mcmc").Default("-1").Int()
	maxAdapt = app.Flag("maxadapt", "stop adapting after iteration").Default("-1").Int()

	// starting point
	mapStart  = app.Flag("map", "start chains from the posterior mode (L-BFGS-B)").Bool()
	randomize = app.Flag("randomize", "use random starting point").Bool()

	// technical
	checkpointF = app.Flag("checkpoint", "checkpoint file for resuming interrupted chains").String()
	checkpointT = app.Flag("cptime", "time in seconds between checkpoints").Default("30").Float64()
	seed        = app.Flag("seed", "random generator seed, default time based").Default("-1").Int64()

	// input/output
	outLogF  = app.Flag("log", "write log to a file").String()
	logLevel = app.Flag("loglevel", "set loglevel "+
		"('critical', 'error', 'warning', 'notice', 'info', 'debug')").
		Default("notice").
		Enum("critical", "error", "warning", "notice", "info", "debug")
	jsonF = app.Flag("json", "write json output to a file").String()
)

func run() (summary *RunSummary) {
	startTime := time.Now()
	summary = &RunSummary{}

	d, err := data.Load(*dataDir)
	if err != nil {
		log.Fatal(err)
	}

	f := priors.NewFitter(d, *path)
	f.Burn = *burn
	f.Samples = *samples
	f.Thin = *thin
	f.Quiet = *quiet
	f.MAPStart = *mapStart
	f.Randomize = *randomize
	f.CheckpointSeconds = *checkpointT

	if *adaptive {
		as := mcmc.NewAdaptiveSettings()
		if *skip >= 0 {
			as.Skip = *skip
		} else {
			as.Skip = *burn / 20
		}
		if *maxAdapt >= 0 {
			as.MaxAdapt = *maxAdapt
		} else {
			as.MaxAdapt = *burn / 5
		}
		log.Infof("Adaptive MCMC, skip=%v, maxadapt=%v", as.Skip, as.MaxAdapt)
		f.Adaptive = as
	}

	if *checkpointF != "" {
		db, err := bolt.Open(*checkpointF, 0666, nil)
		if err != nil {
			log.Fatal("Error opening checkpoint file:", err)
		}
		defer db.Close()
		f.DB = db
	}

	if summary.DiscardRate, err = f.DiscardRate(*recompute); err != nil {
		log.Fatal(err)
	}
	fmt.Printf("discard rate ~ Beta(alpha=%g, beta=%g)\n",
		summary.DiscardRate.Alpha, summary.DiscardRate.Beta)

	if summary.Admin, err = f.AdminErrBias(*recompute); err != nil {
		log.Fatal(err)
	}
	fmt.Printf("admin error sigma ~ Normal(mu=%g, tau=%g)\n",
		summary.Admin.Sigma.Mu, summary.Admin.Sigma.Tau)
	fmt.Printf("admin bias eps ~ Normal(mu=%g, tau=%g)\n",
		summary.Admin.Eps.Mu, summary.Admin.Eps.Tau)

	if summary.Coverage, err = f.CovZeroInfl(*recompute); err != nil {
		log.Fatal(err)
	}
	fmt.Printf("coverage eta ~ Normal(mu=%g, tau=%g)\n",
		summary.Coverage.Eta.Mu, summary.Coverage.Eta.Tau)
	fmt.Printf("zero inflation zeta ~ Normal(mu=%g, tau=%g)\n",
		summary.Coverage.Zeta.Mu, summary.Coverage.Zeta.Tau)

	summary.SamplerRuns = f.SamplerRuns
	summary.TotalTime = time.Since(startTime).Seconds()
	return
}

func main() {
	kingpin.MustParse(app.Parse(os.Args[1:]))

	// logging
	logging.SetFormatter(formatter)

	var backend *logging.LogBackend
	if *outLogF != "" {
		f, err := os.OpenFile(*outLogF, os.O_WRONLY|os.O_CREATE|os.O_APPEND, 0666)
		if err != nil {
			log.Fatal("Error creating log file:", err)
		}
		defer f.Close()
		backend = logging.NewLogBackend(f, "", 0)
	} else {
		backend = logging.NewLogBackend(os.Stderr, "", 0)
	}
	logging.SetBackend(backend)

	level, err := logging.LogLevel(*logLevel)
	if err != nil {
		log.Fatal(err)
	}
	for _, pkg := range []string{"netprior", "priors", "model", "mcmc", "data", "checkpoint"} {
		logging.SetLevel(level, pkg)
	}

	// print revision
	log.Info(version)

	// print commandline
	log.Info("Command line:", os.Args)

	if *seed == -1 {
		*seed = time.Now().UnixNano()
		log.Debug("Random seed from time")
	}
	log.Infof("Random seed=%v", *seed)
	rand.Seed(*seed)

	summary := run()
	summary.Version = version
	summary.CommandLine = os.Args
	summary.Seed = *seed

	// output summary in json format
	if *jsonF != "" {
		j, err := json.Marshal(summary)
		if err != nil {
			log.Error(err)
		} else {
			log.Debug(string(j))
			f, err := os.Create(*jsonF)
			if err != nil {
				log.Error("Error creating json output file:", err)
			} else {
				if _, err := f.Write(j); err != nil {
					log.Error("Error writing json output:", err)
				}
				f.Close()
			}
		}
	}
}
