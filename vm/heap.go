package vm

import "github.com/mirrow-lang/mirrow/internal/object"

// GC tuning constants, ported verbatim from the source language's own
// constants (original_source/src/types/constants.rs) rather than
// re-derived, per spec.md §4.5.
const (
	gcCheckInterval     = 12
	gcThreshold         = 4000
	gcHistoryBufferSize = 10
)

// Heap owns every runtime-allocated compound value (arrays, maps,
// strings built at runtime, enum instances, closures) and runs
// mark-and-sweep collection over them. Constant-pool values are never
// registered here: spec.md §4.5 treats strings interned in the constant
// pool as permanent roots, which falls out for free by simply never
// putting them in the collected set.
type Heap struct {
	objects         []object.HeapObject
	allocSinceCheck int
	threshold       int
	history         []int
}

func NewHeap() *Heap {
	return &Heap{threshold: gcThreshold}
}

// Alloc registers obj as a tracked heap object and returns it unchanged,
// so call sites can write `arr := heap.Alloc(&object.Array{...}).(*object.Array)`.
func (h *Heap) Alloc(obj object.HeapObject) object.HeapObject {
	h.objects = append(h.objects, obj)
	h.allocSinceCheck++
	return obj
}

// MaybeCollect checks every gcCheckInterval allocations whether the
// live-weighted score has crossed the current threshold, and runs a
// full collection if so.
func (h *Heap) MaybeCollect(roots []object.Value, frames []*Frame) {
	if h.allocSinceCheck < gcCheckInterval {
		return
	}
	h.allocSinceCheck = 0
	if h.liveScore() < h.threshold {
		return
	}
	h.collect(roots, frames)
}

func (h *Heap) liveScore() int {
	total := 0
	for _, o := range h.objects {
		total += o.Score()
	}
	return total
}

// collect runs one stop-the-world mark-sweep pass: mark from the value
// stack and every live frame's locals, then drop everything left
// unmarked. Cycles terminate naturally since markValue only recurses
// into an object the first time it's marked.
func (h *Heap) collect(roots []object.Value, frames []*Frame) {
	for _, v := range roots {
		markValue(v)
	}
	for _, f := range frames {
		markEnv(f.Env)
	}

	survivors := h.objects[:0]
	for _, o := range h.objects {
		if o.Marked() {
			o.Unmark()
			survivors = append(survivors, o)
		}
	}
	h.objects = survivors
	h.recordHistory(len(survivors))
}

// recordHistory keeps the last gcHistoryBufferSize post-collection
// live-set sizes and widens the trigger threshold when recent
// collections keep finding the heap still nearly full — a bounded
// adaptation rather than a fixed constant, per spec.md §4.5's
// "implementers may widen or tighten within a bounded factor."
func (h *Heap) recordHistory(liveCount int) {
	h.history = append(h.history, liveCount)
	if len(h.history) > gcHistoryBufferSize {
		h.history = h.history[1:]
	}
	sum := 0
	for _, n := range h.history {
		sum += n
	}
	avg := sum / len(h.history)
	if avg*3 > h.threshold {
		h.threshold = avg * 3
	}
}

func markValue(v object.Value) {
	ho, ok := v.(object.HeapObject)
	if !ok || ho.Marked() {
		return
	}
	ho.Mark()
	switch o := ho.(type) {
	case *object.Array:
		for _, e := range o.Elements {
			markValue(e)
		}
	case *object.MapObj:
		for _, k := range o.Keys {
			if val, ok := o.Get(k); ok {
				markValue(val)
			}
		}
	case *object.EnumInstance:
		if o.Payload != nil {
			markValue(o.Payload)
		}
	case *object.Closure:
		if o.Env != nil {
			markEnv(o.Env)
		}
	}
}

func markEnv(env *object.Environment) {
	for env != nil {
		for _, v := range env.LocalValues() {
			markValue(v)
		}
		env = env.Parent()
	}
}
