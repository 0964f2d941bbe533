// Package effect holds the fixed catalog of photo effects offered by the
// editor and knows how to turn an entry into a ready-to-use filter.
//
// The catalog is built once at package initialization and never changes,
// so it can be read from any goroutine without locking:
//
//	for i, e := range effect.All() {
//	    f, err := e.NewFilter(filter.Default)
//	    ...
//	}
//
// Most entries are color lookup tables. A LUT resource is a 512×512
// image tiled as an 8×8 grid of 64×64 cells: cell (i%8, i/8) holds blue
// level i, and inside a cell x is red and y is green. Resources are read
// through a Source; the built-in source synthesizes every catalog look,
// and FSSource reads PNG/JPEG/BMP/TIFF/WebP files from an fs.FS. A decoded
// table is kept on its entry for the life of the process.
package effect
