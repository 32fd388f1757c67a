package hcl

// fileSchema is the decoding target for a certgen.hcl file.
type fileSchema struct {
	Template     *string         `hcl:"template,optional"`
	Context      *string         `hcl:"context,optional"`
	StaticColors *bool           `hcl:"static_colors,optional"`
	Seed         *int64          `hcl:"seed,optional"`
	Palette      []string        `hcl:"palette,optional"`
	Compiler     *compilerSchema `hcl:"compiler,block"`
}

type compilerSchema struct {
	Command *string  `hcl:"command,optional"`
	Args    []string `hcl:"args,optional"`
}
