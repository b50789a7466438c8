package hostinfo

import (
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
	"golang.org/x/sys/cpu"
)

func TestDetect(t *testing.T) {
	info := Detect()

	assert.Equal(t, runtime.GOOS, info.GOOS)
	assert.Equal(t, runtime.GOARCH, info.GOARCH)
	assert.Equal(t, runtime.NumCPU(), info.NumCPU)
	assert.Equal(t, runtime.Version(), info.GoVersion)
	assert.Equal(t, cpu.X86.HasAVX2, info.Has("avx2"))
	assert.Equal(t, cpu.ARM64.HasASIMD, info.Has("asimd"))
}

func TestInfo_Has(t *testing.T) {
	info := Info{Features: []string{"sse2", "avx2"}}
	assert.True(t, info.Has("avx2"))
	assert.False(t, info.Has("sve"))
}
