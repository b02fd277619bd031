package config

import (
	"os"
	"testing"
	"testing/fstest"

	"github.com/gonewx/geotd/pkg/embedded"
)

// useRepoData 让 embedded 指向仓库根目录下的 data/
func useRepoData(t *testing.T) {
	t.Helper()
	embedded.Init(os.DirFS("../.."))
}

// useFiles 让 embedded 指向内存中的临时文件
func useFiles(t *testing.T, files map[string]string) {
	t.Helper()
	fsys := fstest.MapFS{}
	for name, content := range files {
		fsys[name] = &fstest.MapFile{Data: []byte(content)}
	}
	embedded.Init(fsys)
	t.Cleanup(func() { embedded.Init(nil) })
}
