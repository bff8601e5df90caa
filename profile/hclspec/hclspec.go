package hclspec

// Profile is one launch profile file.
type Profile struct {
	Version   string            `hcl:"version,optional"`
	Directory string            `hcl:"directory,optional"`
	Features  map[string]bool   `hcl:"features,optional"`
	Vars      map[string]string `hcl:"vars,optional"`
	JVMArgs   []string          `hcl:"jvm_args,optional"`
	Env       map[string]string `hcl:"env,optional"`

	Runtime  *Runtime  `hcl:"runtime,block"`
	Download *Download `hcl:"download,block"`
	Checks   []Check   `hcl:"check,block"`
}

type Runtime struct {
	Distribution string `hcl:"distribution,optional"`
	// Java overrides the provisioned executable.
	Java string `hcl:"java,optional"`
}

type Download struct {
	MaxRedirects  int `hcl:"max_redirects,optional"`
	MaxConcurrent int `hcl:"max_concurrent,optional"`
}

// Check pins expected sums for the file served at URL.
type Check struct {
	URL  string   `hcl:"url,label"`
	Sums []string `hcl:"sums,attr"`
}
