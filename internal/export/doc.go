// Package export writes field frames to files: SVG documents, PNG and
// animated GIF rasters, and JSON snapshots of the node set.
package export
