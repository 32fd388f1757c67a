package config

// File is the content of a config file after decoding. Nil pointers and nil
// slices mean "not set".
type File struct {
	// Path is the file the values were loaded from.
	Path string

	Template     *string
	Context      *string
	StaticColors *bool
	Seed         *uint64
	Palette      []string
	Compiler     *Compiler
}

// Compiler overrides the external compiler invocation.
type Compiler struct {
	Command *string
	Args    []string
}
