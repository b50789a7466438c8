// Package hostinfo describes the machine a comparison ran on, so timings in
// reports can be read in context.
package hostinfo

import (
	"runtime"

	"golang.org/x/sys/cpu"
)

// Info holds host details attached to reports.
type Info struct {
	GOOS      string   `yaml:"goos" json:"goos"`
	GOARCH    string   `yaml:"goarch" json:"goarch"`
	NumCPU    int      `yaml:"num_cpu" json:"num_cpu"`
	GoVersion string   `yaml:"go_version" json:"go_version"`
	Features  []string `yaml:"cpu_features,omitempty" json:"cpu_features,omitempty"`
}

type feature struct {
	name    string
	present bool
}

// cpuFeatures lists vector extensions relevant to byte scanning.
// Fields of other architectures are always false.
func cpuFeatures() []feature {
	return []feature{
		{"avx2", cpu.X86.HasAVX2},
		{"avx512bw", cpu.X86.HasAVX512BW},
		{"sse4.2", cpu.X86.HasSSE42},
		{"sse4.1", cpu.X86.HasSSE41},
		{"ssse3", cpu.X86.HasSSSE3},
		{"sse2", cpu.X86.HasSSE2},
		{"popcnt", cpu.X86.HasPOPCNT},
		{"asimd", cpu.ARM64.HasASIMD},
		{"sve", cpu.ARM64.HasSVE},
	}
}

// Detect returns the current host description.
func Detect() Info {
	info := Info{
		GOOS:      runtime.GOOS,
		GOARCH:    runtime.GOARCH,
		NumCPU:    runtime.NumCPU(),
		GoVersion: runtime.Version(),
	}
	for _, f := range cpuFeatures() {
		if f.present {
			info.Features = append(info.Features, f.name)
		}
	}
	return info
}

// Has reports whether the named CPU feature was detected.
func (i Info) Has(name string) bool {
	for _, f := range i.Features {
		if f == name {
			return true
		}
	}
	return false
}
