package services

import (
	"context"
	"fmt"
	"go/token"
	"path"
	"sort"
	"strings"

	"golang.org/x/mod/module"

	"github.com/custodia-labs/docsplice/internal/core/domain"
	"github.com/custodia-labs/docsplice/internal/logger"
	"github.com/custodia-labs/docsplice/internal/splice"
)

const (
	packageDocFile = "doc.go"
	declDocSuffix  = "_doc.go"
)

// plannedTarget carries planner-only facts alongside the public plan.
type plannedTarget struct {
	unit       domain.PlannedUnit
	packageDoc bool
}

// Plan resolves every manifest entry into planned units, sorted by output.
func (s *GeneratorService) Plan(ctx context.Context, m *domain.Manifest) ([]domain.PlannedUnit, error) {
	if err := m.Validate(); err != nil {
		return nil, err
	}

	logger.Section("Plan")
	var targets []plannedTarget
	for _, entry := range m.Units {
		sources, err := s.expand(ctx, entry)
		if err != nil {
			return nil, err
		}
		for _, src := range sources {
			if err := ctx.Err(); err != nil {
				return nil, err
			}
			t, err := s.planSource(ctx, entry, src)
			if err == nil {
				err = checkBuildable(t.unit, m.Generator.Module)
			}
			if err != nil {
				return nil, fmt.Errorf("unit %q: %w", entry.Label(), err)
			}
			logger.Debug("planned %s -> %s (%s)", t.unit.Source, t.unit.Output, t.unit.Unit.Form())
			targets = append(targets, t)
		}
	}

	sort.Slice(targets, func(i, j int) bool {
		return targets[i].unit.Output < targets[j].unit.Output
	})
	if err := checkTargets(targets); err != nil {
		return nil, err
	}

	units := make([]domain.PlannedUnit, len(targets))
	for i := range targets {
		units[i] = targets[i].unit
	}
	return units, nil
}

func (s *GeneratorService) expand(ctx context.Context, entry domain.Entry) ([]string, error) {
	if entry.Source != "" {
		return []string{path.Clean(entry.Source)}, nil
	}

	matches, err := s.source.Glob(ctx, entry.Pattern)
	if err != nil {
		return nil, fmt.Errorf("unit %q: %w", entry.Label(), err)
	}
	if len(matches) == 0 {
		logger.Warn("unit %q: pattern %q matched no files", entry.Label(), entry.Pattern)
	}
	return matches, nil
}

func (s *GeneratorService) planSource(ctx context.Context, entry domain.Entry, src string) (plannedTarget, error) {
	raw, err := s.source.ReadSource(ctx, src)
	if err != nil {
		return plannedTarget{}, err
	}
	res, err := s.normaliser.Normalise(ctx, src, raw)
	if err != nil {
		return plannedTarget{}, fmt.Errorf("%s: %w", src, err)
	}

	pkg := path.Clean(strings.TrimSpace(entry.Package))
	if strings.Contains(pkg, domain.StemPlaceholder) {
		stem, err := StemIdent(src)
		if err != nil {
			return plannedTarget{}, err
		}
		pkg = path.Clean(strings.ReplaceAll(pkg, domain.StemPlaceholder, stem))
	}

	var (
		unit       domain.Unit
		name       = path.Base(pkg)
		packageDoc bool
	)
	switch {
	case entry.Standalone:
		unit = domain.EmbedStandalone(res.Text)
	case strings.TrimSpace(entry.Decl) != "":
		info, err := splice.ParseDecl(entry.Decl)
		if err != nil {
			return plannedTarget{}, err
		}
		if info.Kind == domain.DeclPackage {
			name = info.Name
			packageDoc = true
		}
		unit = domain.EmbedOn(res.Text, domain.Decl{Source: info.Source})
	default:
		if !splice.IsPackageName(name) {
			return plannedTarget{}, fmt.Errorf("%w: package path %q does not end in a valid package name", domain.ErrInvalidManifest, pkg)
		}
		unit = domain.EmbedOn(res.Text, domain.Decl{Source: "package " + name})
		packageDoc = true
	}
	if !splice.IsPackageName(name) {
		return plannedTarget{}, fmt.Errorf("%w: %q is not a valid package name", domain.ErrInvalidManifest, name)
	}

	file := entry.File
	if file == "" {
		if packageDoc {
			file = packageDocFile
		} else {
			stem, err := StemIdent(src)
			if err != nil {
				return plannedTarget{}, err
			}
			file = stem + declDocSuffix
		}
	}

	return plannedTarget{
		unit: domain.PlannedUnit{
			Entry:       entry.Label(),
			Source:      src,
			Title:       res.Title,
			Summary:     res.Summary,
			Unit:        unit,
			Package:     pkg,
			PackageName: name,
			Output:      path.Join(pkg, file),
		},
		packageDoc: packageDoc,
	}, nil
}

// checkTargets expects targets sorted by output.
func checkTargets(targets []plannedTarget) error {
	names := make(map[string]string)
	packageDocs := make(map[string][]string)

	for i, t := range targets {
		u := t.unit
		if i > 0 && targets[i-1].unit.Output == u.Output {
			return fmt.Errorf("%w: %s is produced by both %s and %s",
				domain.ErrDuplicateOutput, u.Output, targets[i-1].unit.Source, u.Source)
		}
		if prev, ok := names[u.Package]; ok && prev != u.PackageName {
			return fmt.Errorf("%w: directory %s declares both %q and %q",
				domain.ErrPackageConflict, u.Package, prev, u.PackageName)
		}
		names[u.Package] = u.PackageName
		if t.packageDoc {
			packageDocs[u.Package] = append(packageDocs[u.Package], u.Source)
		}
	}

	for pkg, sources := range packageDocs {
		if len(sources) > 1 {
			logger.Warn("package %s has %d package docs (%s); go doc shows only one",
				pkg, len(sources), strings.Join(sources, ", "))
		}
	}
	return nil
}

// checkBuildable rejects outputs the go tool would skip: files or
// directories starting with '_' or '.', testdata, test files, and package
// paths that are not valid import paths.
func checkBuildable(u domain.PlannedUnit, mod string) error {
	file := path.Base(u.Output)
	switch {
	case !strings.HasSuffix(file, ".go"):
		return fmt.Errorf("%w: output %s is not a .go file", domain.ErrInvalidManifest, u.Output)
	case strings.HasSuffix(file, "_test.go"):
		return fmt.Errorf("%w: output %s is a test file", domain.ErrInvalidManifest, u.Output)
	case ignoredName(file):
		return fmt.Errorf("%w: output %s is ignored by the go tool", domain.ErrInvalidManifest, u.Output)
	}

	if u.Package == "." {
		return nil
	}
	for _, elem := range strings.Split(u.Package, "/") {
		if ignoredName(elem) || elem == "testdata" || elem == ".." {
			return fmt.Errorf("%w: package directory %s is ignored by the go tool", domain.ErrInvalidManifest, u.Package)
		}
	}
	if err := module.CheckImportPath(u.ImportPath(mod)); err != nil {
		return fmt.Errorf("%w: %v", domain.ErrInvalidManifest, err)
	}
	return nil
}

func ignoredName(name string) bool {
	return strings.HasPrefix(name, "_") || strings.HasPrefix(name, ".")
}

// StemIdent turns a file name into a Go identifier usable as a package
// directory and file name prefix: the base name without its extension,
// lower-cased, with ASCII punctuation mapped to '_'. Leading underscores are
// dropped and a leading digit gets an 'n' prefix so the go tool never skips
// the result. Non-ASCII names are rejected.
func StemIdent(p string) (string, error) {
	base := path.Base(p)
	base = strings.TrimSuffix(base, path.Ext(base))

	var b strings.Builder
	for _, r := range strings.ToLower(base) {
		switch {
		case r > 0x7f:
			return "", fmt.Errorf("%w: file name %q is not ASCII; set package or file explicitly", domain.ErrInvalidManifest, path.Base(p))
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9', r == '_':
			b.WriteRune(r)
		default:
			b.WriteByte('_')
		}
	}

	stem := strings.TrimLeft(b.String(), "_")
	switch {
	case stem == "":
		return "", fmt.Errorf("%w: file name %q has no usable identifier", domain.ErrInvalidManifest, path.Base(p))
	case stem[0] >= '0' && stem[0] <= '9':
		stem = "n" + stem
	case token.IsKeyword(stem):
		stem += "_"
	}
	return stem, nil
}
