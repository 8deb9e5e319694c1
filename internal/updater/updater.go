// Package updater drives one documentation update run: discover docs, detect
// changed API files, and append a note to the nearest related doc of each.
package updater

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/KaramelBytes/docbump-cli/internal/apidiff"
	"github.com/KaramelBytes/docbump-cli/internal/changes"
	cfgpkg "github.com/KaramelBytes/docbump-cli/internal/config"
	"github.com/KaramelBytes/docbump-cli/internal/docs"
	"github.com/KaramelBytes/docbump-cli/internal/logging"
	"github.com/KaramelBytes/docbump-cli/internal/notes"
	"github.com/google/uuid"
)

// Options configures a run.
type Options struct {
	Config *cfgpkg.Global
	Source changes.ChangeSource
	// Dir is the working tree root; paths in the run are relative to it.
	Dir    string
	DryRun bool
	Logger *logging.Logger
}

// Update records a note planned or appended for one changed file.
type Update struct {
	Changed string   `json:"changed"`
	Doc     string   `json:"doc"`
	Details []string `json:"details"`
	Applied bool     `json:"applied"`
}

// Failure records a note that could not be appended.
type Failure struct {
	Changed string `json:"changed"`
	Doc     string `json:"doc"`
	Error   string `json:"error"`
}

// Result is the in-memory record of one run.
type Result struct {
	RunID      string    `json:"run_id"`
	StartedAt  time.Time `json:"started_at"`
	BaseBranch string    `json:"base_branch"`
	DryRun     bool      `json:"dry_run"`
	Docs       []string  `json:"docs"`
	Changed    []string  `json:"changed"`
	Updates    []Update  `json:"updates"`
	Duplicates []Update  `json:"duplicates,omitempty"`
	Unmatched  []string  `json:"unmatched,omitempty"`
	Failures   []Failure `json:"failures,omitempty"`
}

// Run executes one update pass. Diff tool failures abort the run; append
// failures are logged, the run continues, and they are returned joined at the end.
func Run(ctx context.Context, opts Options) (*Result, error) {
	if opts.Config == nil {
		return nil, errors.New("config is nil")
	}
	if opts.Source == nil {
		return nil, errors.New("change source is nil")
	}
	if err := opts.Config.Validate(); err != nil {
		return nil, err
	}
	cfg := opts.Config
	log := opts.Logger
	if log == nil {
		log = logging.Discard()
	}
	dir := opts.Dir
	if dir == "" {
		dir = "."
	}

	res := &Result{
		RunID:      uuid.NewString(),
		StartedAt:  time.Now().UTC(),
		BaseBranch: cfg.BaseBranch,
		DryRun:     opts.DryRun,
	}
	log.Debugf("run %s in %s", res.RunID, dir)

	docList, err := docs.Find(dir, cfg.DocFilePatterns)
	if err != nil {
		return res, fmt.Errorf("find documentation: %w", err)
	}
	res.Docs = docList
	log.Infof("Documentation files: %s", formatList(docList))

	changed, err := changes.Detect(ctx, opts.Source, cfg.BaseBranch, cfg.APISourceDirs)
	if err != nil {
		return res, fmt.Errorf("detect changes: %w", err)
	}
	res.Changed = changed
	log.Infof("Changed API files: %s", formatList(changed))

	var base *baseline
	if cfg.NoteStyle == cfgpkg.NoteSummary {
		if cs, ok := opts.Source.(changes.ContentSource); ok {
			base = &baseline{src: cs, branch: cfg.BaseBranch}
		}
	}

	var writeErrs []error
	for _, file := range changed {
		doc, ok := docs.FindRelated(file, docList)
		if !ok {
			res.Unmatched = append(res.Unmatched, file)
			log.Debugf("no documentation found for %s", file)
			continue
		}
		target := filepath.Join(dir, filepath.FromSlash(doc))

		if cfg.DuplicatePolicy == cfgpkg.DuplicateSkip {
			present, err := hasNote(target, file)
			if err != nil {
				log.Warnf("%v", err)
				res.Failures = append(res.Failures, Failure{Changed: file, Doc: doc, Error: err.Error()})
				writeErrs = append(writeErrs, err)
				continue
			}
			if present {
				res.Duplicates = append(res.Duplicates, Update{Changed: file, Doc: doc})
				log.Infof("Skipping %s: note for %s already present", doc, file)
				continue
			}
		}

		var details []string
		if cfg.NoteStyle == cfgpkg.NoteSummary {
			details = summarize(ctx, base, dir, file, log)
		}
		u := Update{Changed: file, Doc: doc, Details: details}
		if len(u.Details) == 0 {
			u.Details = []string{notes.GenericDetail}
		}

		if opts.DryRun {
			log.Infof("Would update documentation for %s in %s", file, doc)
			res.Updates = append(res.Updates, u)
			continue
		}
		log.Infof("Updating documentation for %s in %s", file, doc)
		if err := notes.Append(target, notes.Block(file, details)); err != nil {
			log.Warnf("%v", err)
			res.Failures = append(res.Failures, Failure{Changed: file, Doc: doc, Error: err.Error()})
			writeErrs = append(writeErrs, err)
			continue
		}
		u.Applied = true
		res.Updates = append(res.Updates, u)
		log.Successf("Updated %s", doc)
	}

	if len(writeErrs) > 0 {
		return res, fmt.Errorf("%d documentation update(s) failed: %w", len(writeErrs), errors.Join(writeErrs...))
	}
	return res, nil
}

// hasNote reports whether target already carries the heading for changed.
func hasNote(target, changed string) (bool, error) {
	b, err := os.ReadFile(target)
	if err != nil {
		return false, &notes.FileWriteError{Path: target, Err: err}
	}
	return docs.HasHeading(b, notes.Heading(changed))
}

// baseline resolves the merge base of the base branch and HEAD at most once
// per run, so every summary reads the revision the change list was diffed against.
type baseline struct {
	src    changes.ContentSource
	branch string
	done   bool
	rev    string
	err    error
}

func (b *baseline) resolve(ctx context.Context, log *logging.Logger) (string, error) {
	if !b.done {
		b.done = true
		b.rev, b.err = b.src.MergeBase(ctx, b.branch)
		if b.err != nil {
			log.Warnf("cannot resolve merge base of %s and HEAD; using generic notes: %v", b.branch, b.err)
		} else {
			log.Debugf("comparing against merge base %s", b.rev)
		}
	}
	return b.rev, b.err
}

// summarize describes API-level changes of file against the merge base. Any
// missing input degrades to no details, which renders the generic bullet.
// Only a path absent at the merge base counts as a new file.
func summarize(ctx context.Context, base *baseline, dir, file string, log *logging.Logger) []string {
	current, err := os.ReadFile(filepath.Join(dir, filepath.FromSlash(file)))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return []string{"File removed"}
		}
		log.Debugf("read %s: %v", file, err)
		return nil
	}
	if base == nil {
		log.Debugf("change source cannot read base revisions; using generic note for %s", file)
		return nil
	}
	rev, err := base.resolve(ctx, log)
	if err != nil {
		return nil
	}
	old, err := base.src.Show(ctx, rev, file)
	hasOld := err == nil
	if err != nil {
		if !errors.Is(err, changes.ErrNotAtRevision) {
			log.Warnf("cannot read %s at %s; using generic note: %v", file, base.branch, err)
			return nil
		}
		log.Debugf("%s is new since %s", file, base.branch)
	}
	details, err := apidiff.Summarize(file, old, hasOld, current)
	if err != nil {
		log.Debugf("analyze %s: %v", file, err)
		return nil
	}
	return details
}

func formatList(items []string) string {
	if len(items) == 0 {
		return "(none)"
	}
	return strings.Join(items, ", ")
}
