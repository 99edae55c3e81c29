package csg

import (
	"context"
	"errors"
	"fmt"
	"time"
)

// Operation is one of the four boolean operations the service exposes.
type Operation string

const (
	OpSubtract   Operation = "subtract"
	OpAdd        Operation = "add"
	OpIntersect  Operation = "intersect"
	OpDifference Operation = "difference"
)

// PerformanceMode trades result fidelity for speed (§4.I).
type PerformanceMode string

const (
	ModeFast     PerformanceMode = "fast"
	ModeBalanced PerformanceMode = "balanced"
	ModeQuality  PerformanceMode = "quality"
)

// Options configures one boolean operation.
type Options struct {
	UseGroups       bool
	Attributes      []string
	PerformanceMode PerformanceMode
	MaxVertices     int
	ValidateResult  bool
}

// DefaultOptions returns the balanced-mode default, matching the 100 000
// vertex budget named in §4.I.
func DefaultOptions() Options {
	return Options{PerformanceMode: ModeBalanced, MaxVertices: 100000, ValidateResult: true}
}

// ErrInvalidMesh is returned (wrapped) when a mesh fails pre-op
// validation: missing position attribute, fewer than 3 vertices, or
// non-finite coordinates.
var ErrInvalidMesh = errors.New("csg: invalid mesh")

// ErrBudgetExceeded is returned (wrapped) when the combined vertex count
// of the two operands exceeds Options.MaxVertices.
var ErrBudgetExceeded = errors.New("csg: vertex budget exceeded")

// Result is the outcome of a boolean operation. On failure, Geometry is
// set to a clone of the base mesh so the caller can always continue with
// the last-known-good geometry (§4.I error semantics, §7 GeometryError).
type Result struct {
	Success  bool
	Geometry Mesh
	Error    error
	Offloaded bool
	Duration time.Duration
}

// Evaluator is the pluggable CSG kernel contract (§1: "the specific CSG
// kernel (treated as a pluggable evaluator with a defined contract)").
// The service never implements boolean algebra itself; Evaluator is the
// only place actual geometry intersection logic may live.
type Evaluator interface {
	Boolean(op Operation, a, b Mesh) (Mesh, error)
}

// Offloader hands a heavy evaluation to a worker and blocks for its
// result; Service falls back to evaluating inline when nil or on error
// (§4.I offload decision, §7 WorkerError).
type Offloader interface {
	Submit(ctx context.Context, task Task) (Mesh, error)
}

// heavyVertexThreshold and heavyComplexityThreshold implement the §4.I
// offload decision: combined vertex count over the threshold, or
// estimated complexity (product of vertex counts / 1000) over the
// threshold, routes to the worker pool unless performanceMode is quality.
const (
	heavyVertexThreshold     = 5000
	heavyComplexityThreshold = 10000
)

// Monitor is the black-box metrics contract (§4.L, §9): the cut pipeline
// must function correctly against a no-op implementation.
type Monitor interface {
	StartOp(name string) func()
	Sample(name string, value float64)
}

type noopMonitor struct{}

func (noopMonitor) StartOp(string) func()     { return func() {} }
func (noopMonitor) Sample(string, float64) {}

// Service performs boolean mesh operations, offloading heavy ones to an
// Offloader (typically a *Pool) and falling back to inline evaluation
// whenever offloading is unavailable or fails (§4.I, §4.J).
type Service struct {
	Evaluator Evaluator
	Offloader Offloader
	Monitor   Monitor
}

// NewService builds a Service around the given evaluator. offloader may
// be nil, in which case every operation runs inline on the caller.
func NewService(eval Evaluator, offloader Offloader) *Service {
	return &Service{Evaluator: eval, Offloader: offloader, Monitor: noopMonitor{}}
}

func (s *Service) monitor() Monitor {
	if s.Monitor == nil {
		return noopMonitor{}
	}
	return s.Monitor
}

// Subtract, Add, Intersect and Difference are thin wrappers over Do for
// each of the four boolean operations (§4.I).
func (s *Service) Subtract(ctx context.Context, base, cut Mesh, opts Options) Result {
	return s.Do(ctx, OpSubtract, base, cut, opts)
}
func (s *Service) Add(ctx context.Context, base, cut Mesh, opts Options) Result {
	return s.Do(ctx, OpAdd, base, cut, opts)
}
func (s *Service) Intersect(ctx context.Context, base, cut Mesh, opts Options) Result {
	return s.Do(ctx, OpIntersect, base, cut, opts)
}
func (s *Service) Difference(ctx context.Context, base, cut Mesh, opts Options) Result {
	return s.Do(ctx, OpDifference, base, cut, opts)
}

// Do validates its inputs, decides whether to offload, runs the boolean
// op, and applies the performance-mode post-processing (§4.I). It never
// panics: any failure is reported in Result.Error with Geometry set to a
// clone of base.
func (s *Service) Do(ctx context.Context, op Operation, base, cut Mesh, opts Options) Result {
	stop := s.monitor().StartOp("csg." + string(op))
	defer stop()
	start := time.Now()

	fail := func(err error) Result {
		return Result{Success: false, Error: err, Geometry: base.Clone(), Duration: time.Since(start)}
	}

	if opts.MaxVertices <= 0 {
		opts.MaxVertices = DefaultOptions().MaxVertices
	}
	if opts.PerformanceMode == "" {
		opts.PerformanceMode = ModeBalanced
	}

	if err := validateMesh(base); err != nil {
		return fail(fmt.Errorf("%w: base: %v", ErrInvalidMesh, err))
	}
	if err := validateMesh(cut); err != nil {
		return fail(fmt.Errorf("%w: cut: %v", ErrInvalidMesh, err))
	}
	combined := base.VertexCount() + cut.VertexCount()
	if combined > opts.MaxVertices {
		return fail(fmt.Errorf("%w: %d vertices > max %d", ErrBudgetExceeded, combined, opts.MaxVertices))
	}

	base = EnsureNormals(base)
	cut = EnsureNormals(cut)

	offloaded := false
	var geom Mesh
	var err error

	if s.shouldOffload(base, cut, opts) {
		geom, err = s.Offloader.Submit(ctx, Task{Operation: op, MeshA: base, MeshB: cut, Options: opts})
		if err == nil {
			offloaded = true
		}
		// worker failure falls through to inline execution (§4.J, §7)
	}
	if !offloaded {
		if s.Evaluator == nil {
			return fail(errors.New("csg: no evaluator configured"))
		}
		geom, err = s.Evaluator.Boolean(op, base, cut)
	}
	if err != nil {
		return fail(err)
	}

	geom = applyPerformanceMode(geom, opts.PerformanceMode)

	if opts.ValidateResult {
		if err := validateMesh(geom); err != nil {
			return fail(fmt.Errorf("%w: result: %v", ErrInvalidMesh, err))
		}
	}

	s.monitor().Sample("csg.vertices", float64(geom.VertexCount()))
	return Result{Success: true, Geometry: geom, Offloaded: offloaded, Duration: time.Since(start)}
}

func (s *Service) shouldOffload(base, cut Mesh, opts Options) bool {
	if s.Offloader == nil || opts.PerformanceMode == ModeQuality {
		return false
	}
	combined := base.VertexCount() + cut.VertexCount()
	complexity := float64(base.VertexCount()) * float64(cut.VertexCount()) / 1000
	return combined > heavyVertexThreshold || complexity > heavyComplexityThreshold
}

func validateMesh(m Mesh) error {
	if !m.HasPosition() {
		return errors.New("missing position attribute or fewer than 3 vertices")
	}
	if !m.FiniteCoordinates() {
		return errors.New("non-finite coordinate")
	}
	return nil
}

func applyPerformanceMode(m Mesh, mode PerformanceMode) Mesh {
	switch mode {
	case ModeFast:
		bb := ComputeBoundingBox(m)
		out := m
		out.UserData = mergeUserData(m.UserData, "bounds", bb)
		return out
	case ModeQuality:
		m = EnsureNormals(m)
		bb := ComputeBoundingBox(m)
		sphere := ComputeBoundingSphere(m)
		out := stripNonEssential(m)
		out.UserData = mergeUserData(out.UserData, "bounds", bb)
		out.UserData = mergeUserData(out.UserData, "boundingSphere", sphere)
		return out
	default: // balanced
		m = EnsureNormals(m)
		out := stripNonEssential(m)
		bb := ComputeBoundingBox(m)
		out.UserData = mergeUserData(out.UserData, "bounds", bb)
		return out
	}
}

func mergeUserData(data map[string]any, key string, value any) map[string]any {
	out := make(map[string]any, len(data)+1)
	for k, v := range data {
		out[k] = v
	}
	out[key] = value
	return out
}

// Step is one operation in a batch chain.
type Step struct {
	Mesh Mesh
	Op   Operation
	Opts Options
}

// BatchResult reports per-step and aggregate timings plus the split of
// worker vs main-thread operations (§4.I performBatch).
type BatchResult struct {
	Final       Mesh
	StepResults []Result
	Total       time.Duration
	Offloaded   int
	Inline      int
	FirstError  error
}

// PerformBatch chains operations against base, disposing each
// intermediate result's predecessor logically (callers own Mesh values;
// there is nothing to explicitly free, but only the final mesh and the
// per-step Result metadata are retained).
func (s *Service) PerformBatch(ctx context.Context, base Mesh, steps []Step) BatchResult {
	start := time.Now()
	br := BatchResult{Final: base}
	current := base
	for _, step := range steps {
		res := s.Do(ctx, step.Op, current, step.Mesh, step.Opts)
		br.StepResults = append(br.StepResults, res)
		if res.Offloaded {
			br.Offloaded++
		} else {
			br.Inline++
		}
		if !res.Success && br.FirstError == nil {
			br.FirstError = res.Error
		}
		current = res.Geometry
	}
	br.Final = current
	br.Total = time.Since(start)
	return br
}
