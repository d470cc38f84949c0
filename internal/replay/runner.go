package replay

import (
	"fmt"

	"github.com/google/uuid"

	"github.com/dshills/editstate/internal/editing/delta"
	"github.com/dshills/editstate/internal/editing/state"
	"github.com/dshills/editstate/internal/logging"
)

// StepResult is the outcome of one scenario step. Replace steps carry
// the classified delta and its wire payload; span steps carry neither.
type StepResult struct {
	Index   int
	Delta   delta.Delta
	Payload []byte
	Err     error
}

// Failed reports whether the step errored or missed its expectation.
func (r StepResult) Failed() bool {
	return r.Err != nil
}

// Report is the outcome of running a whole scenario.
type Report struct {
	SessionID string
	Scenario  string
	Results   []StepResult
	FinalText string
}

// Failures returns the failed step results.
func (r Report) Failures() []StepResult {
	var out []StepResult
	for _, res := range r.Results {
		if res.Failed() {
			out = append(out, res)
		}
	}
	return out
}

// Runner executes scenarios against a fresh editing state per run.
type Runner struct {
	log logging.Sink
}

// NewRunner creates a Runner reporting usage errors to sink.
func NewRunner(sink logging.Sink) *Runner {
	if sink == nil {
		sink = logging.Nop{}
	}
	return &Runner{log: sink}
}

// Run executes the scenario and returns a per-step report. A failed step
// does not stop the run; later steps see the state as it stands.
func (r *Runner) Run(sc Scenario) Report {
	rep := Report{
		SessionID: uuid.NewString(),
		Scenario:  sc.Name,
	}

	st := state.New(
		state.WithText(sc.Initial.Text),
		state.WithLogger(r.log),
	)
	if s := sc.Initial.Selection; s != nil {
		if err := st.SetSelection(s.Start, s.End); err != nil {
			rep.Results = append(rep.Results, StepResult{Index: -1, Err: fmt.Errorf("initial selection: %w", err)})
		}
	}
	if c := sc.Initial.Composing; c != nil {
		if err := st.SetComposingRegion(c.Start, c.End); err != nil {
			rep.Results = append(rep.Results, StepResult{Index: -1, Err: fmt.Errorf("initial composing: %w", err)})
		}
	}

	for i, step := range sc.Steps {
		rep.Results = append(rep.Results, r.runStep(st, i, step))
	}

	rep.FinalText = st.Text()
	return rep
}

func (r *Runner) runStep(st *state.State, index int, step Step) StepResult {
	res := StepResult{Index: index}

	switch {
	case step.Replace != nil:
		spec := step.Replace
		d, err := st.ApplyReplace(spec.Start, spec.End, spec.Text, 0, len(spec.Text))
		if err != nil {
			res.Err = fmt.Errorf("replace [%d:%d): %w", spec.Start, spec.End, err)
			return res
		}
		res.Delta = d

		if step.Expect != "" {
			want, err := delta.KindFromString(step.Expect)
			if err != nil {
				res.Err = err
				return res
			}
			if d.Kind != want {
				res.Err = fmt.Errorf("classified as %v, expected %v", d.Kind, want)
				return res
			}
		}

		payload, err := d.MarshalPayload()
		if err != nil {
			res.Err = fmt.Errorf("marshalling payload: %w", err)
			return res
		}
		res.Payload = payload

	case step.Selection != nil:
		if err := st.SetSelection(step.Selection.Start, step.Selection.End); err != nil {
			res.Err = fmt.Errorf("selection [%d:%d): %w", step.Selection.Start, step.Selection.End, err)
		}

	case step.Composing != nil:
		if err := st.SetComposingRegion(step.Composing.Start, step.Composing.End); err != nil {
			res.Err = fmt.Errorf("composing [%d:%d): %w", step.Composing.Start, step.Composing.End, err)
		}
	}

	return res
}
