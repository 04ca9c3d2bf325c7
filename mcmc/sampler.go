package mcmc

import (
	"fmt"
	"os"
	"os/signal"

	"github.com/op/go-logging"

	"github.com/llin-model/netprior/checkpoint"
)

var log = logging.MustGetLogger("mcmc")

// Optimizable is a model the sampler can draw from. Likelihood must
// return the data log-likelihood for the current parameter values;
// priors are attached to the parameters themselves.
type Optimizable interface {
	GetFloatParameters() FloatParameters
	Likelihood() float64
	Copy() Optimizable
}

// BaseSampler implements the functionality shared by samplers and
// optimizers.
type BaseSampler struct {
	Optimizable
	parameters  FloatParameters
	i           int
	l           float64
	maxL        float64
	maxLPar     []float64
	calls       int
	repPeriod   int
	sig         chan os.Signal
	interrupted bool
	cio         *checkpoint.CheckpointIO
	// Quiet disables the trajectory output.
	Quiet bool
}

// SetOptimizable sets the model to sample from.
func (o *BaseSampler) SetOptimizable(opt Optimizable) {
	o.Optimizable = opt
	o.parameters = opt.GetFloatParameters()
}

// WatchSignals makes the sampler stop gracefully on a signal.
func (o *BaseSampler) WatchSignals(sigs ...os.Signal) {
	o.sig = make(chan os.Signal, 1)
	signal.Notify(o.sig, sigs...)
}

// SetReportPeriod sets the number of iterations between trajectory
// lines.
func (o *BaseSampler) SetReportPeriod(period int) {
	o.repPeriod = period
}

// SetCheckpointIO enables checkpointing of the sampler state.
func (o *BaseSampler) SetCheckpointIO(cio *checkpoint.CheckpointIO) {
	o.cio = cio
}

// Interrupted returns true if the run was stopped by a signal.
func (o *BaseSampler) Interrupted() bool {
	return o.interrupted
}

// GetL returns the current log-likelihood.
func (o *BaseSampler) GetL() float64 {
	return o.l
}

// GetMaxL returns the maximum log-likelihood encountered.
func (o *BaseSampler) GetMaxL() float64 {
	return o.maxL
}

// GetMaxLParameters returns the parameter values with the maximum
// log-likelihood.
func (o *BaseSampler) GetMaxLParameters() []float64 {
	return o.maxLPar
}

// Calls returns the number of likelihood calls.
func (o *BaseSampler) Calls() int {
	return o.calls
}

// PrintHeader prints the trajectory header.
func (o *BaseSampler) PrintHeader() {
	if !o.Quiet {
		fmt.Printf("iteration\tlikelihood\t%s\n", o.parameters.NamesString())
	}
}

// PrintLine prints one trajectory line.
func (o *BaseSampler) PrintLine() {
	if !o.Quiet {
		fmt.Printf("%d\t%f\t%s\n", o.i, o.l, o.parameters.ValuesString())
	}
}

// PrintFinal prints the final parameter values.
func (o *BaseSampler) PrintFinal() {
	if !o.Quiet {
		for _, par := range o.parameters {
			log.Infof("%s=%v", par.Name(), par.Get())
		}
	}
}

// SaveCheckpoint stores the sampler state if a checkpoint store is
// configured and enough time has passed since the last save.
func (o *BaseSampler) SaveCheckpoint(final bool) {
	if o.cio == nil {
		return
	}
	if !final && !o.cio.Old() {
		return
	}
	o.cio.Save(&checkpoint.CheckpointData{
		Parameters: o.parameters.Map(),
		Likelihood: o.l,
		Iter:       o.i,
		Final:      final,
	})
}
