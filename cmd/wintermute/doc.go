/*
wintermute finds the synaptic partners of cells in a connectome edge table and builds
neuroglancer links that show them.

Input tables

The edge table lists one synapse per row and needs the columns

	ids, segs_1, segs_2, locs_1, locs_2, locs_3

where segs_1 is the presynaptic segment, segs_2 the postsynaptic segment and locs_*
the synapse location in voxels.  The cell table needs the columns

	cell_id, cell_type

with cell_type "E" for excitatory (spiny) and "I" for inhibitory (smooth) cells.
Tables may be comma or tab separated (.csv, .tsv) and may be compressed (.gz, .zst).
Only synapses leaving or arriving at cells of the cell table are queried, and only
partners with a known type are reported as neighbors.

Configuration

Settings are read from an optional TOML file given with -config:

	[viewer]
	prefix = "https://neuroglancer-demo.appspot.com/#!"
	baseurl = "https://neuroglancer-demo.appspot.com/#!{'layers':...}"
	command = ["firefox", "--new-tab"]

	[data]
	edges = "edges.csv.gz"
	cells = "cells.csv"

	[logging]
	logfile = "/var/log/wintermute.log"
	max_log_size = 500
	max_log_age = 30

The base URL supplies the layers, zoom and orientation of every generated link.

Example

	% wintermute -config pinky.toml neighbors 58045989 mode=out
	% wintermute -config pinky.toml goto 58045989 52089750 index=0 open=true
*/
package main
