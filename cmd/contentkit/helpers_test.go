package main

import (
	"os"
	"path/filepath"
	"testing"
)

// newTestApp writes a config and a small content tree into a temp dir and
// builds the app against it.
func newTestApp(t *testing.T) *app {
	t.Helper()
	root := t.TempDir()
	t.Chdir(root)

	files := map[string]string{
		"contentkit.yaml": `
site:
  name: Test Site
  base_url: https://example.com
content:
  dir: content
output:
  dir: public
logging:
  level: error
`,
		"content/page/index.yaml": "id: home\nslug: index\ntitle: Home\ncontent: []\n",
		"content/page/about.yaml": `
id: about
slug: about
title: About
redirects: ["/old-about/"]
content:
  - renderType: container
    content: []
`,
	}
	for name, body := range files {
		path := filepath.Join(root, filepath.FromSlash(name))
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			t.Fatalf("mkdir: %v", err)
		}
		if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
			t.Fatalf("write %s: %v", name, err)
		}
	}

	a, err := newApp(&CLI{Config: filepath.Join(root, "contentkit.yaml")}, nil)
	if err != nil {
		t.Fatalf("newApp: %v", err)
	}
	return a
}
