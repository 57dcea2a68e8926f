// Package field implements the drifting "neural network" particle field.
//
// A [Field] owns a fixed number of [Node]s inside a box sized to its host
// [Container]. Each frame the nodes drift, bounce off the box edges and are
// joined by a [Connection] whenever two of them are closer than the
// configured threshold. Drawing goes through the [Surface] interface so the
// same field can be rendered to a terminal canvas, an SVG document, a raster
// image or a desktop window.
//
// # Frame Loop
//
// The field never schedules itself. A driver asks for frame callbacks and
// invokes [Field.Frame] from each one:
//
//	if f.Start() {
//		scheduleFrame()
//	}
//	// in the callback
//	if f.Frame(surface, 1) {
//		scheduleFrame()
//	}
//
// [Field.Resume] and [Field.Frame] report whether a new callback must be
// requested, which keeps at most one callback in flight.
//
// The field is decorative: nothing in this package returns an error. A nil
// container produces an inert field whose methods do nothing.
package field
