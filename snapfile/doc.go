// Package snapfile stores blobs and authoring state as YAML documents,
// and loads the YAML configuration file used by the snap tool.
//
// A blob file looks like
//
//	type: game.Enemy
//	data: AAAAAAAbAAAAAQAAAAIAAAA...
//	tables:
//	  strings: [Root, game.Enemy, Name, Health]
//	  objects: [asset/1]
//
// Object handles are written as their ids and resolved on read.
package snapfile
