package convert

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/maruel/natural"
	cli "github.com/urfave/cli/v3"
	"go.uber.org/multierr"
	"go.uber.org/zap"

	"figmark/common"
	"figmark/config"
	"figmark/element"
	"figmark/markup"
	"figmark/scene"
	"figmark/state"
)

// sceneExtensions lists file types recognized as exported scenes.
var sceneExtensions = []string{".json", ".yaml", ".yml"}

func Run(ctx context.Context, cmd *cli.Command) (err error) {
	if err := ctx.Err(); err != nil {
		return err
	}

	env := state.EnvFromContext(ctx)
	log := env.Log.Named("convert")

	src := cmd.Args().Get(0)
	if len(src) == 0 {
		return errors.New("no input source has been specified")
	}
	if src, err = filepath.Abs(src); err != nil {
		return err
	}

	dst := cmd.Args().Get(1)
	if len(dst) == 0 {
		if dst, err = os.Getwd(); err != nil {
			return fmt.Errorf("unable to get working directory: %w", err)
		}
	}
	if dst, err = filepath.Abs(dst); err != nil {
		return err
	}
	if cmd.Args().Len() > 2 {
		log.Warn("Malformed command line, too many destinations", zap.Strings("ignoring", cmd.Args().Slice()[2:]))
	}

	env.Format = env.Cfg.Generator.Format
	if name := cmd.String("format"); len(name) > 0 {
		if env.Format, err = common.ParseMarkupFormat(name); err != nil {
			log.Warn("Unknown markup format requested, switching to html", zap.Error(err))
			env.Format = common.MarkupFormatHtml
		}
	}
	env.NoDirs, env.Overwrite, env.Stdout = cmd.Bool("nodirs"), cmd.Bool("overwrite"), cmd.Bool("stdout")
	env.NodeIDs = cmd.StringSlice("node")

	out := cmd.Root().Writer
	if out == nil {
		out = os.Stdout
	}

	log.Info("Processing starting", zap.String("source", src), zap.String("destination", dst), zap.Stringer("format", env.Format))
	defer func(start time.Time) {
		log.Info("Processing completed", zap.Duration("elapsed", time.Since(start)))
	}(time.Now())

	return process(ctx, src, dst, out, log)
}

// process handles single scene file or directory of scene files
// independently of CLI framework.
func process(ctx context.Context, src, dst string, out io.Writer, log *zap.Logger) error {
	fi, err := os.Stat(src)
	if err != nil {
		return fmt.Errorf("input source was not found (%s): %w", src, err)
	}
	switch {
	case fi.IsDir():
		return processDir(ctx, src, dst, out, log)
	case fi.Mode().IsRegular():
		return processScene(ctx, src, filepath.Base(src), 1, dst, out, log)
	default:
		return fmt.Errorf("unexpected path mode for (%s)", src)
	}
}

// collectScenes returns scene files under dir in natural order, relative
// to dir.
func collectScenes(dir string, log *zap.Logger) ([]string, error) {
	var files []string
	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			log.Warn("Skipping path", zap.String("path", path), zap.Error(err))
			return nil
		}
		if !d.Type().IsRegular() {
			return nil
		}
		if !slices.Contains(sceneExtensions, strings.ToLower(filepath.Ext(path))) {
			log.Debug("Skipping file, not recognized as scene", zap.String("file", path))
			return nil
		}
		rel, err := filepath.Rel(dir, path)
		if err != nil {
			return err
		}
		files = append(files, rel)
		return nil
	})
	if err != nil {
		return nil, err
	}
	slices.SortFunc(files, func(a, b string) int {
		switch {
		case natural.Less(a, b):
			return -1
		case natural.Less(b, a):
			return 1
		}
		return 0
	})
	return files, nil
}

// processDir generates artifacts for every scene file under directory. Failure
// of a single file does not stop processing.
func processDir(ctx context.Context, dir, dst string, out io.Writer, log *zap.Logger) (err error) {
	files, err := collectScenes(dir, log)
	if err != nil {
		return fmt.Errorf("unable to process directory: %w", err)
	}
	if len(files) == 0 {
		log.Debug("Nothing to process", zap.String("dir", dir))
		return nil
	}

	for i, rel := range files {
		if err := ctx.Err(); err != nil {
			return err
		}
		if e := processScene(ctx, filepath.Join(dir, rel), rel, i+1, dst, out, log); e != nil {
			log.Error("Unable to process file", zap.String("file", rel), zap.Error(e))
			err = multierr.Append(err, fmt.Errorf("%s: %w", rel, e))
		}
	}
	return err
}

// processScene generates artifacts for single scene file. "src" is path
// relative to original source including file name, "index" is file position
// in processing order starting with 1.
func processScene(ctx context.Context, path, src string, index int, dst string, out io.Writer, log *zap.Logger) (rerr error) {
	env := state.EnvFromContext(ctx)

	refID := "unknown"
	if id, err := uuid.NewV7(); err == nil {
		refID = id.String()
	}
	log = log.With(zap.String("ref_id", refID))

	outcome := state.Outcome{Source: src, RefID: refID}
	log.Info("Generation starting", zap.String("from", src))
	defer func(start time.Time) {
		if rerr != nil {
			outcome.Error = rerr.Error()
		} else {
			log.Info("Generation completed", zap.Duration("elapsed", time.Since(start)), zap.String("to", outcome.Markup))
		}
		env.Record(outcome)
	}(time.Now())

	if err := env.Rpt.StoreCopy(fmt.Sprintf("source-%s%s", refID, filepath.Ext(path)), path); err != nil {
		log.Warn("Unable to store source in report", zap.Error(err))
	}

	f, err := os.Open(path)
	if err != nil {
		return err
	}
	doc, err := scene.Decode(f)
	f.Close()
	if err != nil {
		return fmt.Errorf("unable to decode scene (%s): %w", src, err)
	}

	opts := Options{ImagePlaceholder: env.ImagePlaceholder(), Indent: env.Indent()}
	res := Safe(doc, env.NodeIDs, opts, log)
	if len(res.Elements) > 0 {
		env.Rpt.StoreData(fmt.Sprintf("elements-%s.txt", refID), []byte(element.Dump(res.Elements...)))
	}

	values := newValues(doc, env.NodeIDs, src, index, env.Format)

	if env.Stdout {
		outcome.Markup, outcome.Stylesheet = "STDOUT", "STDOUT"
		_, err = fmt.Fprintf(out, "%s\n\n%s", res.Markup, res.Stylesheet)
		return err
	}

	paths := buildOutputPaths(values, src, dst, env)
	if err := prepareTargets(env, log, paths.Markup, paths.Stylesheet); err != nil {
		return err
	}

	if err := writeMarkup(env, log, res, values, paths); err != nil {
		return err
	}
	if err := os.WriteFile(paths.Stylesheet, []byte(res.Stylesheet), 0644); err != nil {
		return fmt.Errorf("unable to write stylesheet: %w", err)
	}

	outcome.Markup, outcome.Stylesheet = paths.Markup, paths.Stylesheet

	env.Rpt.Store(fmt.Sprintf("result-%s%s", refID, filepath.Ext(paths.Markup)), paths.Markup)
	env.Rpt.Store(fmt.Sprintf("result-%s.css", refID), paths.Stylesheet)

	if res.Failed() {
		return fmt.Errorf("placeholders written for (%s): %w", src, res.Err)
	}
	return nil
}

// prepareTargets makes sure artifacts could be written: existing files are
// only replaced when requested, output directories are created.
func prepareTargets(env *state.LocalEnv, log *zap.Logger, names ...string) (err error) {
	for _, name := range names {
		_, serr := os.Stat(name)
		switch {
		case serr == nil:
			if !env.Overwrite {
				err = multierr.Append(err, fmt.Errorf("output file already exists: %s", name))
				continue
			}
			log.Warn("Overwriting existing file", zap.String("file", name))
		case !os.IsNotExist(serr):
			err = multierr.Append(err, serr)
		default:
			if e := os.MkdirAll(filepath.Dir(name), 0755); e != nil {
				err = multierr.Append(err, fmt.Errorf("unable to create output directory: %w", e))
			}
		}
	}
	return err
}

func writeMarkup(env *state.LocalEnv, log *zap.Logger, res *Result, values Values, paths outputPaths) error {
	if !env.Format.Standalone() {
		if err := os.WriteFile(paths.Markup, []byte(res.Markup+"\n"), 0644); err != nil {
			return fmt.Errorf("unable to write markup: %w", err)
		}
		return nil
	}

	title := values.Name
	if tmpl := env.Cfg.Generator.PageTitleTemplate; len(tmpl) > 0 {
		if t, err := expandTemplate(config.PageTitleTemplateFieldName, tmpl, values); err == nil {
			title = t
		} else {
			log.Warn("Unable to prepare page title", zap.Error(err))
		}
	}

	link, err := filepath.Rel(filepath.Dir(paths.Markup), paths.Stylesheet)
	if err != nil {
		link = filepath.Base(paths.Stylesheet)
	}

	page := markup.Page(title, filepath.ToSlash(link), res.Elements...)
	if res.Failed() {
		if body := page.FindElement("//body"); body != nil {
			body.CreateComment(strings.TrimSuffix(strings.TrimPrefix(MarkupPlaceholder, "<!--"), "-->"))
		}
	}
	page.Indent(env.Indent())

	if err := page.WriteToFile(paths.Markup); err != nil {
		return fmt.Errorf("unable to write page: %w", err)
	}
	return nil
}
