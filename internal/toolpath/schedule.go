package toolpath

import (
	"math"
	"sort"
)

// clampEpsilon absorbs floating-point drift when deciding whether an
// accumulated value has reached its target.
const clampEpsilon = 1e-9

// DepthPass describes one axial cutting pass.
type DepthPass struct {
	Index       int     // 1-based pass number
	TargetDepth float64 // Absolute depth below the top surface, positive
	Increment   float64 // Depth added by this pass
}

// DepthPasses partitions a total depth into passes no larger than maxPerPass.
// All passes except the last equal maxPerPass; the last is clamped to the
// exact remainder so the cumulative depth equals total with no overshoot.
// Built as a scan over the pass count rather than a mutating accumulator, so
// the boundary pass cannot drift.
func DepthPasses(total, maxPerPass float64) []DepthPass {
	if total <= 0 || maxPerPass <= 0 {
		return nil
	}
	count := int(math.Ceil(total/maxPerPass - clampEpsilon))
	if count < 1 {
		count = 1
	}
	passes := make([]DepthPass, count)
	for i := 0; i < count; i++ {
		target := float64(i+1) * maxPerPass
		if target > total {
			target = total
		}
		prev := float64(i) * maxPerPass
		passes[i] = DepthPass{
			Index:       i + 1,
			TargetDepth: target,
			Increment:   target - prev,
		}
	}
	return passes
}

// StepoverRadii accumulates concentric radii one stepover apart until the
// net path radius is reached. The final element is clamped exactly to
// pathRadius so the boundary pass achieves full engagement regardless of the
// stepover remainder.
func StepoverRadii(pathRadius, stepover float64) []float64 {
	if pathRadius <= 0 || stepover <= 0 {
		return nil
	}
	count := int(math.Ceil(pathRadius/stepover - clampEpsilon))
	if count < 1 {
		count = 1
	}
	radii := make([]float64, count)
	for i := 0; i < count; i++ {
		r := float64(i+1) * stepover
		if r > pathRadius {
			r = pathRadius
		}
		radii[i] = r
	}
	// Guard against a remainder pass landing short of the boundary.
	radii[count-1] = pathRadius
	return radii
}

// FixedCountRadii divides the net path radius into a requested number of
// passes, clamping the per-pass step to the nominal machine ceiling maxStep.
// The candidates are generated outermost-first (pathRadius - i*step) and then
// sorted by absolute value ascending: the tool must step into the material
// progressively regardless of the arithmetic order the clamp produced.
func FixedCountRadii(pathRadius float64, passes int, maxStep float64) []float64 {
	if passes < 1 {
		return nil
	}
	step := pathRadius / float64(passes)
	if math.Abs(step) > maxStep {
		step = math.Copysign(maxStep, step)
	}
	radii := make([]float64, passes)
	for i := 0; i < passes; i++ {
		radii[i] = pathRadius - float64(i)*step
	}
	sort.Slice(radii, func(a, b int) bool {
		return math.Abs(radii[a]) < math.Abs(radii[b])
	})
	return radii
}
