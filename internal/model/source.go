package model

// Path represents a file system path.
type Path string

// Source represents a collected Cryptol/SAW source file.
type Source struct {
	Origin Path
	// Hash is a stable fingerprint of the file contents at collection time.
	Hash string
}
