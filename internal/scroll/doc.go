// Package scroll describes a single animated scroll request and the
// position logic a driving loop needs to carry it out.
//
// The package defines:
//
//   - [Instance]: one scroll request plus its in-flight progress
//   - [Options] and [New]: the factory that resolves caller overrides over a [Defaults] snapshot
//   - [Surface], [Node], [Document]: the geometry collaborators an instance reads and mutates
//   - [InterruptReporter]: the hook invoked when user input arrives mid-animation
//
// Nothing in this package schedules frames. A loop (see package engine)
// resolves the target once, samples the easing function over time and
// feeds each candidate to [Instance.WritePosition] until it reports false,
// the duration elapses, or an interrupt is reported.
//
// # Example
//
//	inst := scroll.New(doc, scroll.Selector("#install"), scroll.Options{
//		Offset:   scroll.Float(50),
//		Duration: 500 * time.Millisecond,
//	})
//	pos := inst.ResolveTargetPosition()
//	if !pos.Valid() {
//		inst.FireEvent(false)
//	}
//
// # Thread Safety
//
// Instances are NOT thread-safe. An instance is owned by whoever created it
// and mutated only by the loop driving it.
package scroll
