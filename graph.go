package pullsync

import "github.com/randalmurphal/flowgraph/pkg/flowgraph"

// Node names of the resolution graph.
const (
	nodeMetadata = "metadata"
	nodeLive     = "live"
	nodeDefault  = "default"
)

// resolveState flows through the resolution graph. Each node fills in the
// result of its own step; a node that reaches a terminal state sets Outcome.
//
// Errors are carried in Err rather than returned from nodes so callers see
// the original error value, not a graph execution wrapper.
type resolveState struct {
	Job JobData

	Fork    bool        // from the first metadata read
	Outcome Outcome     // empty until a terminal state is reached
	Reason  SkipReason  // set with OutcomeSkipped
	Config  *PullConfig // set with OutcomeLive or OutcomeDefault
	Err     error
}

func (s resolveState) done() bool {
	return s.Outcome != "" || s.Err != nil
}

func (s resolveState) skip(reason SkipReason) resolveState {
	s.Outcome = OutcomeSkipped
	s.Reason = reason
	return s
}

// compileGraph builds metadata -> live -> default, ending early at any
// terminal state.
func (r *Resolver) compileGraph() (func(flowgraph.Context, resolveState) (resolveState, error), error) {
	compiled, err := flowgraph.NewGraph[resolveState]().
		AddNode(nodeMetadata, r.metadataNode).
		AddNode(nodeLive, r.liveNode).
		AddNode(nodeDefault, r.defaultNode).
		AddConditionalEdge(nodeMetadata, continueTo(nodeLive)).
		AddConditionalEdge(nodeLive, continueTo(nodeDefault)).
		AddEdge(nodeDefault, flowgraph.END).
		SetEntry(nodeMetadata).
		Compile()
	if err != nil {
		return nil, err
	}

	return func(ctx flowgraph.Context, state resolveState) (resolveState, error) {
		return compiled.Run(ctx, state)
	}, nil
}

// continueTo routes to next unless the state is already terminal.
func continueTo(next string) func(flowgraph.Context, resolveState) string {
	return func(_ flowgraph.Context, state resolveState) string {
		if state.done() {
			return flowgraph.END
		}
		return next
	}
}

// metadataNode reads repository metadata and skips archived repositories.
func (r *Resolver) metadataNode(ctx flowgraph.Context, state resolveState) (resolveState, error) {
	repo, err := readRepository(ctx, r.provider, state.Job)
	if err != nil {
		state.Err = err
		return state, nil
	}

	if repo.Archived {
		loggerFrom(ctx, r.logger, state.Job).Debug("repository is archived, skipping")
		return state.skip(SkipArchived), nil
	}

	state.Fork = repo.Fork
	return state, nil
}

// liveNode reads the committed config file. Non-forks without one are skipped.
func (r *Resolver) liveNode(ctx flowgraph.Context, state resolveState) (resolveState, error) {
	cfg, err := r.live.Fetch(ctx, state.Job)
	if err != nil {
		state.Err = err
		return state, nil
	}

	switch {
	case cfg != nil:
		state.Outcome = OutcomeLive
		state.Config = cfg
	case !state.Fork:
		state = state.skip(SkipNotConfigured)
	}
	return state, nil
}

// defaultNode synthesizes a config from the fork parent.
func (r *Resolver) defaultNode(ctx flowgraph.Context, state resolveState) (resolveState, error) {
	cfg, err := r.synth.Synthesize(ctx, state.Job)
	if err != nil {
		state.Err = err
		return state, nil
	}

	if cfg == nil {
		return state.skip(SkipNoUpstream), nil
	}
	state.Outcome = OutcomeDefault
	state.Config = cfg
	return state, nil
}
