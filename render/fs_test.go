// ABOUTME: Test helper that builds an in-memory content tree from path/contents pairs.
// ABOUTME: Keeps render tests independent of the on-disk fixtures used elsewhere.
package render

import "testing/fstest"

func mapFS(files map[string]string) fstest.MapFS {
	fsys := make(fstest.MapFS, len(files))
	for name, data := range files {
		fsys[name] = &fstest.MapFile{Data: []byte(data)}
	}
	return fsys
}
