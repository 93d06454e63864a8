// Package loader reads a local content tree into the collections, menus and
// redirects of a render pass.
//
// Layout:
//
//	navigation.yaml      navigations and navigation items
//	redirects.yaml       redirects
//	<type>.yaml          a collection document {type, items}
//	<type>/<slug>.yaml   one item of content type <type>
//
// JSON files are accepted wherever YAML is. Hidden files and directories are
// ignored.
package loader

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io/fs"
	"os"
	"path"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/goliatone/go-contentkit/pkg/content"
	"github.com/goliatone/go-contentkit/pkg/orchestrator"
)

// Root file stems with a fixed meaning.
const (
	NavigationFile = "navigation"
	RedirectsFile  = "redirects"
)

// Bundle is the content read from a tree.
type Bundle struct {
	Collections     []content.Collection
	Navigations     []content.Navigation
	NavigationItems []content.NavigationItem
	Redirects       []content.Redirect
}

// Items counts the items of every collection.
func (b Bundle) Items() int {
	total := 0
	for _, collection := range b.Collections {
		total += len(collection.Items)
	}
	return total
}

// Input builds the orchestrator input for a pass. A nil serverless request
// yields a static pass.
func (b Bundle) Input(serverless *content.ServerlessData) orchestrator.Input {
	return orchestrator.Input{
		Collections:     b.Collections,
		Navigations:     b.Navigations,
		NavigationItems: b.NavigationItems,
		Redirects:       b.Redirects,
		Serverless:      serverless,
	}
}

type navigationFile struct {
	Navigations []content.Navigation     `json:"navigations" yaml:"navigations"`
	Items       []content.NavigationItem `json:"items" yaml:"items"`
}

type redirectsFile struct {
	Redirects []content.Redirect `json:"redirects" yaml:"redirects"`
}

type collectionFile struct {
	Type  string         `json:"type" yaml:"type"`
	Items []content.Item `json:"items" yaml:"items"`
}

// LoadDir loads the tree rooted at dir.
func LoadDir(dir string) (Bundle, error) {
	if strings.TrimSpace(dir) == "" {
		return Bundle{}, fmt.Errorf("loader: content directory is required")
	}
	return LoadFS(os.DirFS(dir))
}

// LoadFS walks fsys in lexical order. Collections appear in the order their
// type is first seen. When fsys is nil the bundle is empty.
func LoadFS(fsys fs.FS) (Bundle, error) {
	l := &load{index: make(map[string]int), ids: make(map[string]string)}
	if fsys == nil {
		return l.bundle, nil
	}

	err := fs.WalkDir(fsys, ".", func(name string, entry fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			return walkErr
		}
		if name != "." && strings.HasPrefix(entry.Name(), ".") {
			if entry.IsDir() {
				return fs.SkipDir
			}
			return nil
		}
		if entry.IsDir() || !isContentFile(name) {
			return nil
		}

		data, err := fs.ReadFile(fsys, name)
		if err != nil {
			return fmt.Errorf("loader: read %s: %w", name, err)
		}
		if len(bytes.TrimSpace(data)) == 0 {
			return fmt.Errorf("loader: file %s is empty", name)
		}
		return l.file(name, data)
	})
	if err != nil {
		return Bundle{}, err
	}
	return l.bundle, nil
}

type load struct {
	bundle Bundle
	index  map[string]int
	// ids maps "type/id" to the file that defined it.
	ids map[string]string
}

func (l *load) file(name string, data []byte) error {
	dir, base := path.Split(name)
	stem := strings.TrimSuffix(base, path.Ext(base))

	if dir == "" {
		switch stem {
		case NavigationFile:
			var doc navigationFile
			if err := decode(name, data, &doc); err != nil {
				return err
			}
			l.bundle.Navigations = append(l.bundle.Navigations, doc.Navigations...)
			l.bundle.NavigationItems = append(l.bundle.NavigationItems, doc.Items...)
			return nil
		case RedirectsFile:
			var doc redirectsFile
			if err := decode(name, data, &doc); err != nil {
				return err
			}
			l.bundle.Redirects = append(l.bundle.Redirects, doc.Redirects...)
			return nil
		}

		var doc collectionFile
		if err := decode(name, data, &doc); err != nil {
			return err
		}
		contentType := strings.TrimSpace(doc.Type)
		if contentType == "" {
			contentType = stem
		}
		for _, item := range doc.Items {
			if err := l.add(contentType, item, name); err != nil {
				return err
			}
		}
		return nil
	}

	var item content.Item
	if err := decode(name, data, &item); err != nil {
		return err
	}
	contentType, _, _ := strings.Cut(name, "/")
	return l.add(contentType, item, name)
}

func (l *load) add(contentType string, item content.Item, source string) error {
	if id := strings.TrimSpace(item.ID); id != "" {
		key := contentType + "/" + id
		if previous, exists := l.ids[key]; exists {
			return fmt.Errorf("loader: duplicate %s item %q (files %s, %s)", contentType, id, previous, source)
		}
		l.ids[key] = source
	}

	idx, ok := l.index[contentType]
	if !ok {
		idx = len(l.bundle.Collections)
		l.index[contentType] = idx
		l.bundle.Collections = append(l.bundle.Collections, content.Collection{Type: contentType})
	}
	l.bundle.Collections[idx].Items = append(l.bundle.Collections[idx].Items, item)
	return nil
}

func decode(name string, data []byte, target any) error {
	var err error
	if strings.EqualFold(path.Ext(name), ".json") {
		err = json.Unmarshal(data, target)
	} else {
		err = yaml.Unmarshal(data, target)
	}
	if err != nil {
		return fmt.Errorf("loader: parse %s: %w", name, err)
	}
	return nil
}

func isContentFile(name string) bool {
	switch strings.ToLower(path.Ext(name)) {
	case ".yaml", ".yml", ".json":
		return true
	default:
		return false
	}
}
