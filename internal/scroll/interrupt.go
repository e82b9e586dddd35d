package scroll

// AttachInterruptListeners registers one listener per interrupt event on the
// document's event target. Each listener forwards to reporter; stopping the
// animation is the reporter's call. Listeners already attached are removed
// first.
func (i *Instance) AttachInterruptListeners(reporter InterruptReporter) {
	if i.attached {
		i.DetachInterruptListeners()
	}
	if i.doc == nil || reporter == nil {
		return
	}
	target := i.doc.EventTarget()
	if target == nil {
		return
	}

	listener := func(ev Event) {
		reporter.Report(ev, i)
	}
	i.removers = make([]func(), 0, len(i.interruptEvents))
	for _, name := range i.interruptEvents {
		i.removers = append(i.removers, target.AddListener(name, listener))
	}
	i.attached = true
}

// DetachInterruptListeners removes every registered listener. Safe to call
// when nothing is attached.
func (i *Instance) DetachInterruptListeners() {
	for _, remove := range i.removers {
		if remove != nil {
			remove()
		}
	}
	i.removers = nil
	i.attached = false
}
