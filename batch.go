package alphavariant

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/setanarut/alphavariant/utils"
)

// Job remaps one source image for one variant.
type Job struct {
	Variant string
	Src     string
	Dst     string
	Target  Target
}

// Result is the outcome of a single Job.
type Result struct {
	Job
	Modes    Modes
	Remapped int
	Err      error
}

// Report summarizes a batch run. Results are in plan order.
type Report struct {
	Results []Result
	// Skipped holds one ErrMissingInput per absent input. Skips are not
	// failures.
	Skipped []error
}

// Processed returns the number of jobs that completed.
func (r *Report) Processed() int {
	n := 0
	for _, res := range r.Results {
		if res.Err == nil {
			n++
		}
	}
	return n
}

// Failed returns the results of jobs that did not complete.
func (r *Report) Failed() []Result {
	var out []Result
	for _, res := range r.Results {
		if res.Err != nil {
			out = append(out, res)
		}
	}
	return out
}

// Plan expands every configured input for every variant into jobs. Inputs
// that do not exist are returned in skipped, wrapping ErrMissingInput. A
// folder input contributes its *.png files in name order; subfolders are not
// visited. A single-file input must be a .png. Two inputs resolving to the
// same output path are a config error.
func Plan(cfg Config) (jobs []Job, skipped []error, err error) {
	if err := cfg.Validate(); err != nil {
		return nil, nil, err
	}

	type source struct {
		src, rel string
	}
	var sources []source
	var errs []error
	owner := make(map[string]string)
	add := func(src, rel string) error {
		rel = filepath.Clean(rel)
		if prev, ok := owner[rel]; ok {
			return fmt.Errorf("%w: %s and %s both map to %s", ErrConfig, prev, src, rel)
		}
		owner[rel] = src
		sources = append(sources, source{src: src, rel: rel})
		return nil
	}
	for _, in := range cfg.Inputs {
		p := filepath.Join(cfg.BaseDir, in)
		fi, err := os.Stat(p)
		if errors.Is(err, fs.ErrNotExist) {
			miss := fmt.Errorf("%w: %s", ErrMissingInput, p)
			log.Printf("skip: %v", miss)
			skipped = append(skipped, miss)
			continue
		}
		if err != nil {
			errs = append(errs, fmt.Errorf("stat %s: %w", p, err))
			continue
		}
		if !fi.IsDir() {
			if !isPNG(p) {
				errs = append(errs, fmt.Errorf("%w: %s is not a .png file", ErrDecode, p))
				continue
			}
			if err := add(p, in); err != nil {
				return nil, nil, err
			}
			continue
		}
		entries, err := os.ReadDir(p)
		if err != nil {
			errs = append(errs, fmt.Errorf("read %s: %w", p, err))
			continue
		}
		for _, e := range entries {
			if e.IsDir() || !isPNG(e.Name()) {
				continue
			}
			if err := add(filepath.Join(p, e.Name()), filepath.Join(in, e.Name())); err != nil {
				return nil, nil, err
			}
		}
	}

	for _, v := range cfg.Variants {
		t := v.Targets()
		for _, s := range sources {
			jobs = append(jobs, Job{
				Variant: v.Tag,
				Src:     s.src,
				Dst:     filepath.Join(cfg.OutputDir, v.Tag, s.rel),
				Target:  t,
			})
		}
	}
	return jobs, skipped, errors.Join(errs...)
}

func isPNG(name string) bool {
	return strings.HasSuffix(strings.ToLower(name), ".png")
}

// Run plans and executes the batch. Every job is attempted even when others
// fail; the returned error joins all failures and is nil only if every
// planned job and input succeeded. Cancelling ctx stops new jobs from
// starting.
func Run(ctx context.Context, cfg Config) (*Report, error) {
	jobs, skipped, planErr := Plan(cfg)
	if errors.Is(planErr, ErrConfig) {
		return nil, planErr
	}
	report := &Report{
		Results: make([]Result, len(jobs)),
		Skipped: skipped,
	}

	g := new(errgroup.Group)
	g.SetLimit(max(1, cfg.Workers))
	for i, job := range jobs {
		if err := ctx.Err(); err != nil {
			for j := i; j < len(jobs); j++ {
				report.Results[j] = Result{Job: jobs[j], Err: err}
			}
			break
		}
		i, job := i, job
		g.Go(func() error {
			report.Results[i] = Process(job)
			return nil
		})
	}
	g.Wait()

	errs := []error{planErr}
	for _, res := range report.Results {
		if res.Err != nil {
			errs = append(errs, res.Err)
		}
	}
	log.Printf("done: %d files processed across %d variants", report.Processed(), len(cfg.Variants))
	return report, errors.Join(errs...)
}

// Process runs one job: decode, detect, remap and encode. Failures are
// returned in Result.Err, wrapped with ErrDecode or ErrEncode.
func Process(job Job) Result {
	res := Result{Job: job}
	src, err := utils.ReadNRGBA(job.Src)
	if err != nil {
		res.Err = fmt.Errorf("%w: %s: %v", ErrDecode, job.Src, err)
		log.Printf("error: %v", res.Err)
		return res
	}

	res.Modes = Detect(src)
	out, changed := Remap(src, res.Modes, job.Target)
	res.Remapped = changed

	if err := utils.SaveImageAll(out, job.Dst); err != nil {
		res.Err = fmt.Errorf("%w: %s: %v", ErrEncode, job.Dst, err)
		log.Printf("error: %v", res.Err)
		return res
	}
	log.Printf("processed %s -> %s (changed %d pixels; modes %v; lower_target=%d)",
		job.Src, job.Dst, changed, res.Modes, job.Target.Lower())
	return res
}
