package convert

import (
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/gosimple/slug"
	"go.uber.org/zap"

	"figmark/config"
	"figmark/state"
)

// outputPaths holds artifact file names for a single scene document.
type outputPaths struct {
	Markup     string
	Stylesheet string
}

// buildOutputPaths returns artifact paths based on source name and
// configuration. Markup name comes either from source file name or from
// user-defined template, stylesheet is put next to markup and named by its
// own template or after markup. Names are cleaned and if requested
// transliterated.
func buildOutputPaths(values Values, src, dst string, env *state.LocalEnv) outputPaths {
	base := buildOutputBase(values, src, dst, env)

	paths := outputPaths{Markup: base + env.Format.Ext(), Stylesheet: base + ".css"}

	gen := env.Cfg.Generator
	if gen.StylesheetName == "" {
		return paths
	}
	name, err := expandTemplate(config.StylesheetNameFieldName, gen.StylesheetName, values)
	if err != nil {
		env.Logger().Warn("Unable to prepare stylesheet filename", zap.Error(err))
		return paths
	}
	if segments := splitAndCleanPath(filepath.FromSlash(name)); len(segments) > 0 {
		paths.Stylesheet = filepath.Join(filepath.Dir(base), cleanPathSegment(segments[len(segments)-1], env)) + ".css"
	}
	return paths
}

// buildOutputBase returns output path without extension.
func buildOutputBase(values Values, src, dst string, env *state.LocalEnv) string {
	outDir := determineOutputDir(src, dst, env)
	defaultName := filepath.Join(outDir, buildDefaultFileName(src, env))

	if env.Cfg.Generator.OutputNameTemplate == "" {
		return defaultName
	}

	expanded, err := expandTemplate(config.OutputNameTemplateFieldName, env.Cfg.Generator.OutputNameTemplate, values)
	if err != nil {
		env.Logger().Warn("Unable to prepare output filename", zap.Error(err))
		return defaultName
	}
	segments := splitAndCleanPath(filepath.FromSlash(expanded))
	if len(segments) == 0 {
		return defaultName
	}
	return assemblePathWithSubdirs(outDir, segments, env)
}

func determineOutputDir(src, dst string, env *state.LocalEnv) string {
	if env.NoDirs {
		return dst
	}
	return filepath.Join(dst, filepath.Dir(src))
}

func buildDefaultFileName(src string, env *state.LocalEnv) string {
	return cleanPathSegment(strings.TrimSuffix(filepath.Base(src), filepath.Ext(src)), env)
}

// assemblePathWithSubdirs joins expanded template segments, which may name
// subdirectories, under output directory.
func assemblePathWithSubdirs(outDir string, segments []string, env *state.LocalEnv) string {
	parts := make([]string, 0, len(segments)+1)
	parts = append(parts, outDir)
	for _, s := range segments {
		parts = append(parts, cleanPathSegment(s, env))
	}
	return filepath.Join(parts...)
}

func splitAndCleanPath(path string) []string {
	path = strings.TrimSuffix(path, string(os.PathSeparator))
	segments := make([]string, 0, 8)

	for head, tail := filepath.Split(path); tail != ""; head, tail = filepath.Split(head) {
		segments = slices.Insert(segments, 0, tail)
		head = strings.TrimSuffix(head, string(os.PathSeparator))
		if head == "" {
			break
		}
	}
	return slices.DeleteFunc(segments, func(s string) bool {
		return s == "." || s == ".."
	})
}

func cleanPathSegment(segment string, env *state.LocalEnv) string {
	if env.Cfg.Generator.FileNameTransliterate {
		segment = slug.Make(segment)
	}
	return config.CleanFileName(segment)
}
