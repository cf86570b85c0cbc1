package manifest

import (
	"errors"
	"fmt"

	"github.com/pelletier/go-toml/v2"
	"github.com/zclconf/go-cty/cty"
)

// Document is a single parsed manifest. Root is used for shape checks. Names
// and other user-supplied strings are read from raw, since cty normalizes
// attribute names and string values to NFC.
type Document struct {
	Path string
	Root cty.Value

	raw map[string]any
}

// Parse decodes manifest content into a Document. The path is only used for
// diagnostics; Parse never touches the file system.
func Parse(path string, content []byte) (*Document, error) {
	var raw map[string]any
	if err := toml.Unmarshal(content, &raw); err != nil {
		merr := &MalformedError{
			Manifest: path,
			Reason:   fmt.Sprintf("failed to parse TOML: %v", err),
		}
		var decodeErr *toml.DecodeError
		if errors.As(err, &decodeErr) {
			merr.Line, merr.Column = decodeErr.Position()
		}
		return nil, merr
	}

	root, err := nativeToCty(raw)
	if err != nil {
		return nil, &MalformedError{Manifest: path, Reason: err.Error()}
	}
	return &Document{Path: path, Root: root, raw: raw}, nil
}

// IsWorkspace reports whether the manifest declares a [workspace] table.
func (d *Document) IsWorkspace() (bool, error) {
	_, ok, err := d.table(cty.GetAttrPath("workspace"))
	return ok, err
}

// PackageName returns the value of package.name, if the manifest has one.
func (d *Document) PackageName() (string, bool, error) {
	pkg, ok, err := d.table(cty.GetAttrPath("package"))
	if err != nil || !ok {
		return "", false, err
	}
	namePath := cty.GetAttrPath("package").GetAttr("name")
	name, ok := getAttr(pkg, "name")
	if !ok {
		return "", false, nil
	}
	if !name.Type().Equals(cty.String) {
		return "", false, malformed(d.Path, namePath, "package name must be a string")
	}
	return d.rawAt(namePath).(string), true, nil
}

// Members returns the workspace.members patterns in declaration order.
func (d *Document) Members() ([]string, error) {
	return d.stringList(cty.GetAttrPath("workspace").GetAttr("members"))
}

// Excludes returns the workspace.exclude paths in declaration order.
func (d *Document) Excludes() ([]string, error) {
	return d.stringList(cty.GetAttrPath("workspace").GetAttr("exclude"))
}

// table walks path from the document root. It returns ok=false when any key
// along the path is absent, and an error when a key exists but does not hold
// a table.
func (d *Document) table(path cty.Path) (cty.Value, bool, error) {
	current := d.Root
	for i, step := range path {
		attr := step.(cty.GetAttrStep)
		next, ok := getAttr(current, attr.Name)
		if !ok {
			return cty.NilVal, false, nil
		}
		if !next.Type().IsObjectType() {
			return cty.NilVal, false, malformed(d.Path, path[:i+1], "expected a table, found %s", next.Type().FriendlyName())
		}
		current = next
	}
	return current, true, nil
}

func (d *Document) stringList(path cty.Path) ([]string, error) {
	parent, ok, err := d.table(path[:len(path)-1])
	if err != nil || !ok {
		return nil, err
	}
	list, ok := getAttr(parent, path[len(path)-1].(cty.GetAttrStep).Name)
	if !ok {
		return nil, nil
	}
	if !list.Type().IsTupleType() {
		return nil, malformed(d.Path, path, "expected an array of strings, found %s", list.Type().FriendlyName())
	}

	it := list.ElementIterator()
	for it.Next() {
		idx, elem := it.Element()
		if !elem.Type().Equals(cty.String) {
			return nil, malformed(d.Path, path.Index(idx), "expected a string, found %s", elem.Type().FriendlyName())
		}
	}

	raw := d.rawAt(path).([]any)
	out := make([]string, 0, len(raw))
	for _, elem := range raw {
		out = append(out, elem.(string))
	}
	return out, nil
}

// rawAt returns the decoded value at an attribute path, or nil when a key is
// absent. Callers check the shape against Root first.
func (d *Document) rawAt(path cty.Path) any {
	var current any = d.raw
	for _, step := range path {
		tbl, ok := current.(map[string]any)
		if !ok {
			return nil
		}
		current = tbl[step.(cty.GetAttrStep).Name]
	}
	return current
}

// getAttr is a nil-safe attribute lookup on object values.
func getAttr(v cty.Value, name string) (cty.Value, bool) {
	if v.IsNull() || !v.Type().IsObjectType() || !v.Type().HasAttribute(name) {
		return cty.NilVal, false
	}
	return v.GetAttr(name), true
}
