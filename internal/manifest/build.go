package manifest

import (
	"sort"

	"github.com/zclconf/go-cty/cty"
)

// Build extracts every dependency declaration from a root manifest and the
// manifests of its workspace members. Members are scanned in the order given.
func Build(root *Document, members []*Document) ([]Declaration, error) {
	var decls []Declaration

	isWorkspace, err := root.IsWorkspace()
	if err != nil {
		return nil, err
	}

	// The workspace-level table is scanned first so that inherited references
	// can be resolved against it, wherever they appear.
	shared := map[string]Declaration{}
	if isWorkspace {
		wsDecls, err := scanTable(root, WorkspaceRoot, TableWorkspaceDependencies, nil)
		if err != nil {
			return nil, err
		}
		for _, d := range wsDecls {
			shared[d.Name] = d
		}
		decls = append(decls, wsDecls...)
	}

	owner := WorkspaceRoot
	name, ok, err := root.PackageName()
	if err != nil {
		return nil, err
	}
	if ok {
		owner = name
	}
	rootDecls, err := scanPackage(root, owner, shared)
	if err != nil {
		return nil, err
	}
	decls = append(decls, rootDecls...)

	for _, member := range members {
		name, ok, err := member.PackageName()
		if err != nil {
			return nil, err
		}
		if !ok {
			return nil, malformed(member.Path, cty.GetAttrPath("package").GetAttr("name"), "workspace member has no package name")
		}
		memberDecls, err := scanPackage(member, name, shared)
		if err != nil {
			return nil, err
		}
		decls = append(decls, memberDecls...)
	}

	return decls, nil
}

func scanPackage(doc *Document, owner string, shared map[string]Declaration) ([]Declaration, error) {
	var decls []Declaration
	for _, table := range packageTables {
		found, err := scanTable(doc, owner, table, shared)
		if err != nil {
			return nil, err
		}
		decls = append(decls, found...)
	}
	return decls, nil
}

// scanTable normalizes every entry of one dependency table. shared is nil
// while scanning the workspace-level table itself.
func scanTable(doc *Document, owner string, table Table, shared map[string]Declaration) ([]Declaration, error) {
	tablePath := table.path()
	_, ok, err := doc.table(tablePath)
	if err != nil || !ok {
		return nil, err
	}

	// Keys come from the decoded table so names keep their exact bytes.
	entries := doc.rawAt(tablePath).(map[string]any)
	names := make([]string, 0, len(entries))
	for name := range entries {
		names = append(names, name)
	}
	sort.Strings(names)

	var decls []Declaration
	for _, name := range names {
		entryPath := tablePath.GetAttr(name)
		if name == "" {
			return nil, malformed(doc.Path, entryPath, "dependency name must not be empty")
		}
		value, err := nativeToCty(entries[name])
		if err != nil {
			return nil, malformed(doc.Path, entryPath, "%v", err)
		}

		decl, err := declare(doc.Path, entryPath, name, entries[name], value)
		if err != nil {
			return nil, err
		}
		decl.Package = owner
		decl.Table = table

		if decl.Syntax == SyntaxWorkspace {
			if shared == nil {
				return nil, malformed(doc.Path, entryPath, "[workspace.dependencies] entries cannot inherit from the workspace")
			}
			base, ok := shared[name]
			if !ok {
				return nil, malformed(doc.Path, entryPath, "dependency '%s' inherits from the workspace, but [workspace.dependencies] does not declare it", name)
			}
			decl.DefaultFeatures = base.DefaultFeatures
			decl.CrateName = base.CrateName
		}

		decls = append(decls, decl)
	}
	return decls, nil
}

// declare classifies a single entry by its syntax variant. raw is the decoded
// entry that value was converted from.
func declare(manifest string, path cty.Path, name string, raw any, value cty.Value) (Declaration, error) {
	decl := Declaration{Name: name, CrateName: name, Manifest: manifest}

	switch {
	case value.Type().Equals(cty.String):
		decl.Syntax = SyntaxVersion
		decl.DefaultFeatures = FeaturesUnset
		return decl, nil

	case value.Type().IsObjectType():
		if pkg, ok := getAttr(value, "package"); ok {
			if !pkg.Type().Equals(cty.String) {
				return decl, malformed(manifest, path.GetAttr("package"), "package must be a string")
			}
			decl.CrateName = raw.(map[string]any)["package"].(string)
		}

		if ws, ok := getAttr(value, "workspace"); ok {
			if !ws.Type().Equals(cty.Bool) || ws.False() {
				return decl, malformed(manifest, path.GetAttr("workspace"), "workspace must be set to true")
			}
			decl.Syntax = SyntaxWorkspace
			return decl, nil
		}

		decl.Syntax = SyntaxTable
		decl.DefaultFeatures = featureSetting(value)
		return decl, nil

	default:
		return decl, malformed(manifest, path, "dependency must be a version string or a table, found %s", value.Type().FriendlyName())
	}
}

func featureSetting(entry cty.Value) FeatureSetting {
	flag, ok := getAttr(entry, "default-features")
	switch {
	case !ok:
		return FeaturesUnset
	case !flag.Type().Equals(cty.Bool):
		return FeaturesInvalid
	case flag.True():
		return FeaturesEnabled
	default:
		return FeaturesDisabled
	}
}
