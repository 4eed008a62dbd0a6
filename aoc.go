// Package aoc are the utilities behind Maisem's Advent of Code 2024
// solutions: grids, points, graphs and the puzzle runner. (forked from
// bradfitz/aoc)
//
// Shortest-path searches go through the search package; this package only
// adapts grids and graphs to it.
package aoc

import (
	"bufio"
	"bytes"
	"context"
	"fmt"
	"go/ast"
	"go/parser"
	"go/token"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"reflect"
	"regexp"
	"slices"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"
	"golang.org/x/exp/maps"
	"golang.org/x/sync/errgroup"
)

type sample struct {
	input string
	want  string
}

var sampleRx = regexp.MustCompile(`(?sm)^\s*want=([^\n]*)(?:\s+(.+\n))?\s*`)

func parseSample(comment string) (sample, bool) {
	text := strings.TrimPrefix(comment, "//")
	if v, ok := strings.CutPrefix(text, "/*"); ok {
		text = strings.TrimSuffix(v, "*/")
	}
	if m := sampleRx.FindStringSubmatch(text); m != nil {
		s := sample{
			want:  m[1],
			input: m[2],
		}
		return s, true
	}
	var zero sample
	return zero, false
}

// extractSamples finds the want=/input blocks in the doc comments of the
// solver methods in src. A method without its own input reuses the input of
// the method before it.
func extractSamples(src []byte) (map[string]sample, error) {
	fs := token.NewFileSet()
	f, err := parser.ParseFile(fs, "solver.go", src, parser.ParseComments)
	if err != nil {
		return nil, fmt.Errorf("parsing source to extract samples: %w", err)
	}
	var lastInput string
	samples := make(map[string]sample)
	for _, d := range f.Decls {
		fd, ok := d.(*ast.FuncDecl)
		if !ok || fd.Doc == nil {
			continue
		}
		funcName := fd.Name.Name
		for _, c := range fd.Doc.List {
			s, ok := parseSample(c.Text)
			if ok {
				s.input = Or(s.input, lastInput)
				samples[funcName] = s
				lastInput = s.input
				break
			}
		}
	}
	return samples, nil
}

// Puzzle is embedded (as *aoc.Puzzle) in the solver struct and gives each
// part access to its input.
type Puzzle struct {
	year       int
	day        day
	SampleMode bool

	ctx     context.Context
	cfg     Config
	debug   bool
	logger  *log.Logger
	out     *bytes.Buffer // per-day debug output, printed with the report
	solver  partSolver
	samples map[string]sample
	input   []byte
}

// Context is cancelled when the run is interrupted. Long searches should
// pass it along.
func (p *Puzzle) Context() context.Context {
	return p.ctx
}

func (p *Puzzle) Logger() *log.Logger {
	return p.logger
}

func (p *Puzzle) Day() int {
	return p.day.day
}

func (p *Puzzle) Input() []byte {
	if p.SampleMode {
		return []byte(p.Sample().input)
	}
	return MustGet(p.loadInput())
}

func (p *Puzzle) loadInput() ([]byte, error) {
	if p.input != nil {
		return p.input, nil
	}
	name := filepath.Join(p.cfg.InputDir, fmt.Sprintf("%d/%d.input", p.year, p.day.day))
	url := fmt.Sprintf("https://adventofcode.com/%d/day/%d/input", p.year, p.day.day)
	b, err := fileOrFetch(p.ctx, p.cfg, name, url)
	if err != nil {
		return nil, err
	}
	p.input = b
	return b, nil
}

func (p *Puzzle) Scanner() *bufio.Scanner {
	return bufio.NewScanner(bytes.NewReader(p.Input()))
}

func (p *Puzzle) ForLinesY(onLine func(int, string)) {
	s := p.Scanner()
	y := -1
	for s.Scan() {
		y++
		onLine(y, s.Text())
	}
	MustDo(s.Err())
}

// ForLines calls onLine for each line of input.
func (p *Puzzle) ForLines(onLine func(line string)) {
	p.ForLinesY(func(_ int, line string) { onLine(line) })
}

func (p *Puzzle) Debug(v ...any) {
	if p.debug {
		fmt.Fprintln(p.out, v...)
	}
}

func (p *Puzzle) Debugf(format string, args ...any) {
	if p.debug && p.SampleMode {
		fmt.Fprintf(p.out, format+"\n", args...)
	}
}

func (p *Puzzle) Sample() sample {
	sample, ok := p.samples[p.solver.Name]
	if !ok {
		panic(fmt.Sprintf("no sample found for %v", p.solver.Name))
	}
	return sample
}

type day struct {
	day   int
	parts []partSolver
}

type partSolver struct {
	index int // method index in the solver's value method set
	Part  string
	Name  string
}

var methodRx = regexp.MustCompile(`^D(\d+)p(\d+.*)$`)

// extractMethods registers a struct with methods named D{day}p{part} for
// each day/part of Advent of Code. The methods must have value receivers
// and the signature func() any.
func extractMethods(x any) (map[int]day, error) {
	rv := reflect.ValueOf(x)
	if rv.Kind() != reflect.Pointer || rv.Elem().Kind() != reflect.Struct {
		return nil, fmt.Errorf("register: got %T; want pointer to struct", x)
	}
	vt := rv.Elem().Type()
	if f, ok := vt.FieldByName("Puzzle"); !ok || f.Type != reflect.TypeOf((*Puzzle)(nil)) {
		return nil, fmt.Errorf("register: %v must embed *aoc.Puzzle", vt)
	}
	byDays := map[int][]partSolver{}
	for i := 0; i < vt.NumMethod(); i++ {
		mt := vt.Method(i)
		matches := methodRx.FindStringSubmatch(mt.Name)
		if len(matches) != 3 {
			continue
		}
		if mt.Type.NumIn() != 1 || mt.Type.NumOut() != 1 || mt.Type.Out(0) != reflect.TypeOf((*any)(nil)).Elem() {
			return nil, fmt.Errorf("register: %s has signature %v; want func() any", mt.Name, mt.Type)
		}
		d := Int(matches[1])
		byDays[d] = append(byDays[d], partSolver{
			index: i,
			Part:  matches[2],
			Name:  mt.Name,
		})
	}
	days := make(map[int]day, len(byDays))
	for d, parts := range byDays {
		slices.SortFunc(parts, func(i, j partSolver) int {
			return strings.Compare(i.Part, j.Part)
		})
		days[d] = day{parts: parts, day: d}
	}
	return days, nil
}

// Days returns the day numbers slvr implements, sorted.
func Days(slvr any) ([]int, error) {
	days, err := extractMethods(slvr)
	if err != nil {
		return nil, err
	}
	nums := maps.Keys(days)
	slices.Sort(nums)
	return nums, nil
}

// RunOptions selects what Run executes.
type RunOptions struct {
	Day        int    // 0 runs every day
	Part       string // empty runs every part
	OnlySample bool
	SkipSample bool
	Debug      bool
	Out        io.Writer // report output, debug lines included; os.Stdout if nil
}

type partResult struct {
	part   string
	sample bool
	got    any
	want   string
	took   time.Duration
	err    error
}

func (r partResult) failed() bool {
	return r.err != nil || (r.sample && fmt.Sprint(r.got) != r.want)
}

type dayReport struct {
	day     int
	debug   string
	results []partResult
}

func (r dayReport) failed() bool {
	return slices.ContainsFunc(r.results, partResult.failed)
}

var (
	styleDay  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("36"))
	stylePass = lipgloss.NewStyle().Foreground(lipgloss.Color("35"))
	styleFail = lipgloss.NewStyle().Foreground(lipgloss.Color("167"))
	styleDim  = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
)

func (r dayReport) print(w io.Writer) {
	fmt.Fprintln(w, styleDay.Render(fmt.Sprintf("Running day %d", r.day)))
	io.WriteString(w, r.debug)
	for _, pr := range r.results {
		took := styleDim.Render(fmt.Sprintf("(%v)", pr.took.Round(time.Microsecond)))
		switch {
		case pr.err != nil:
			fmt.Fprintf(w, "part %s: %s\n", pr.part, styleFail.Render(fmt.Sprintf("error: %v", pr.err)))
		case pr.sample && pr.failed():
			fmt.Fprintf(w, "part %s: %v %s; want %v\n", pr.part, pr.got, styleFail.Render("❌"), pr.want)
		case pr.sample:
			fmt.Fprintf(w, "part %s sample: %v %s %s\n", pr.part, pr.got, stylePass.Render("✅"), took)
		default:
			fmt.Fprintf(w, "part %s: %v %s\n", pr.part, pr.got, took)
		}
	}
	fmt.Fprintln(w)
}

// Run solves the days implemented by slvr, a pointer to a struct that
// embeds *Puzzle. src is the solver's source, used to extract the samples.
// Days run concurrently up to cfg.Workers; results are printed in day
// order once all are done.
func Run(ctx context.Context, cfg Config, opts RunOptions, src []byte, slvr any, logger *log.Logger) error {
	if opts.Out == nil {
		opts.Out = os.Stdout
	}
	if logger == nil {
		logger = log.New(io.Discard)
	}
	samples, err := extractSamples(src)
	if err != nil {
		return err
	}
	days, err := extractMethods(slvr)
	if err != nil {
		return err
	}

	var nums []int
	if opts.Day > 0 {
		if _, ok := days[opts.Day]; !ok {
			return fmt.Errorf("no day %d", opts.Day)
		}
		nums = []int{opts.Day}
	} else {
		nums = maps.Keys(days)
		slices.Sort(nums)
	}

	reports := make([]dayReport, len(nums))
	eg, gctx := errgroup.WithContext(ctx)
	eg.SetLimit(max(cfg.Workers, 1))
	for i, d := range nums {
		i, d := i, d
		eg.Go(func() error {
			reports[i] = runDay(gctx, cfg, opts, slvr, days[d], samples, logger)
			return nil
		})
	}
	MustDo(eg.Wait())

	failed := 0
	for _, r := range reports {
		r.print(opts.Out)
		if r.failed() {
			failed++
		}
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	if failed > 0 {
		return fmt.Errorf("%d of %d days failed", failed, len(reports))
	}
	return nil
}

func runDay(ctx context.Context, cfg Config, opts RunOptions, slvr any, d day, samples map[string]sample, logger *log.Logger) (rep dayReport) {
	rep.day = d.day
	p := &Puzzle{
		year:    cfg.Year,
		day:     d,
		ctx:     ctx,
		cfg:     cfg,
		debug:   opts.Debug,
		logger:  logger.With("day", d.day),
		out:     new(bytes.Buffer),
		samples: samples,
	}
	// Each day gets its own copy of the solver so days can run in parallel.
	sv := reflect.New(reflect.TypeOf(slvr).Elem()).Elem()
	sv.Set(reflect.ValueOf(slvr).Elem())
	sv.FieldByName("Puzzle").Set(reflect.ValueOf(p))

	t0 := time.Now()
	p.logger.Debug("day started")
	defer func() {
		rep.debug = p.out.String()
		p.logger.Info("day finished", "took", time.Since(t0).Round(time.Millisecond), "failed", rep.failed())
	}()
	for _, ps := range d.parts {
		if opts.Part != "" && ps.Part != opts.Part {
			continue
		}
		p.solver = ps
		fn := sv.Method(ps.index).Interface().(func() any)
		for _, sm := range []bool{true, false} {
			if !sm && opts.OnlySample {
				continue
			} else if sm && opts.SkipSample {
				continue
			}
			if err := ctx.Err(); err != nil {
				return rep
			}
			p.SampleMode = sm
			r := partResult{part: ps.Part, sample: sm}
			if sm {
				s, ok := samples[ps.Name]
				if !ok {
					r.err = fmt.Errorf("no sample found for %v", ps.Name)
					rep.results = append(rep.results, r)
					return rep
				}
				r.want = s.want
			} else if _, err := p.loadInput(); err != nil {
				// Prime the input so fetching is not timed.
				r.err = err
				rep.results = append(rep.results, r)
				return rep
			}
			start := time.Now()
			r.got, r.err = call(fn)
			r.took = time.Since(start)
			rep.results = append(rep.results, r)
			p.logger.Debug("part solved", "part", ps.Part, "sample", sm, "took", r.took)
			if r.failed() {
				return rep
			}
		}
	}
	return rep
}

// call runs fn, turning a panic into an error.
func call(fn func() any) (got any, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("panic: %v", r)
		}
	}()
	return fn(), nil
}

func fileOrFetch(ctx context.Context, cfg Config, filename, url string) ([]byte, error) {
	if f, err := os.ReadFile(filename); err == nil {
		return f, nil
	}
	body, err := fetch(ctx, cfg, url)
	if err != nil {
		return nil, err
	}
	if err := os.MkdirAll(filepath.Dir(filename), 0700); err != nil {
		return nil, err
	}
	if err := os.WriteFile(filename, body, 0644); err != nil {
		return nil, err
	}
	return body, nil
}

func fetch(ctx context.Context, cfg Config, url string) ([]byte, error) {
	session, err := cfg.session()
	if err != nil {
		return nil, err
	}
	req, err := http.NewRequestWithContext(ctx, "GET", url, nil)
	if err != nil {
		return nil, err
	}
	req.AddCookie(&http.Cookie{Name: "session", Value: session})
	res, err := http.DefaultClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer res.Body.Close()
	if res.StatusCode != 200 {
		return nil, fmt.Errorf("bad status fetching %s: %v", url, res.Status)
	}
	return io.ReadAll(res.Body)
}
