package direction

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"sync"
	"unicode/utf8"

	"github.com/google/uuid"
	"github.com/npillmayer/qalam"
	"github.com/npillmayer/qalam/settings"
)

// Job is a reversal running in the background. Start and End are the rune
// offsets of the text the job has been started for.
type Job struct {
	ID         uuid.UUID
	Start, End int
	Input      string
	Direction  Direction
	output     string
	err        error
	done       chan struct{}
}

// Done is closed when the job's result is ready and its application has been
// handed to the UI thread.
func (j *Job) Done() <-chan struct{} {
	return j.done
}

// Result waits for the job and returns its output.
func (j *Job) Result() (string, error) {
	<-j.done
	return j.output, j.err
}

// target is the range the next result will be written to.
type target struct {
	job        uuid.UUID
	editor     qalam.Editor
	start, end int
}

// Extension reverses the selection (or the whole document) of the current
// editor. There is at most one tracked target at a time: starting a job while
// another one is running re-targets the running job. With settings option
// discard_stale, results of superseded jobs are dropped instead.
type Extension struct {
	mu           sync.Mutex
	host         qalam.Host
	caps         qalam.Capabilities
	lang         qalam.UILanguage
	settingsPath string
	conf         settings.Reverse
	file         *settings.File
	pool         *qalam.WorkerPool
	tracked      *target
}

var _ qalam.Extension = (*Extension)(nil)
var _ qalam.ContextMenuProvider = (*Extension)(nil)
var _ qalam.Closer = (*Extension)(nil)

// NewExtension creates a reverser which keeps its settings in the JSON file
// at settingsPath.
func NewExtension(settingsPath string, lang qalam.UILanguage) *Extension {
	return &Extension{settingsPath: settingsPath, lang: lang}
}

// Name is part of interface qalam.Extension.
func (x *Extension) Name() string {
	return "reverse"
}

// Attach is part of interface qalam.Extension. Unreadable settings are
// reported and the defaults are used; a missing settings file is not an
// error.
func (x *Extension) Attach(host qalam.Host, caps qalam.Capabilities) error {
	x.host = host
	x.caps = caps
	conf, f, err := settings.LoadReverse(x.settingsPath)
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		caps.ShowError(settingsLabel.In(x.lang), err)
	}
	x.conf, x.file = conf, f
	if x.pool != nil {
		x.pool.Close()
	}
	x.pool = qalam.NewWorkerPool(conf.MaxWorkers)
	tracer().Infof("reverser attached, direction %s, %d workers", conf.Direction, x.pool.Size())
	return nil
}

const shortcut = "Ctrl+Shift+R"

var (
	reverseLabel  = qalam.Label{En: "Reverse selection", Ar: "عكس التحديد"}
	toggleLabel   = qalam.Label{En: "Toggle direction", Ar: "تبديل الاتجاه"}
	settingsLabel = qalam.Label{En: "Reverse settings", Ar: "إعدادات العكس"}
	dirLabel      = qalam.Label{En: "Direction", Ar: "الاتجاه"}
	rtlLabel      = qalam.Label{En: "right to left", Ar: "من اليمين إلى اليسار"}
	ltrLabel      = qalam.Label{En: "left to right", Ar: "من اليسار إلى اليمين"}
)

// MenuItems is part of interface qalam.Extension.
func (x *Extension) MenuItems() []qalam.MenuItem {
	return []qalam.MenuItem{
		{Name: reverseLabel.In(x.lang), Callback: x.reverseAction},
		{Name: toggleLabel.In(x.lang), Callback: func() {
			x.caps.ShowError(toggleLabel.In(x.lang), x.ToggleDirection())
		}},
		{Name: settingsLabel.In(x.lang), Callback: x.chooseWorkers},
	}
}

// ContextMenuItems is part of interface qalam.ContextMenuProvider.
func (x *Extension) ContextMenuItems() []qalam.ContextMenuItem {
	return []qalam.ContextMenuItem{
		{Name: reverseLabel.In(x.lang), Callback: x.reverseAction, Shortcut: shortcut},
	}
}

func (x *Extension) reverseAction() {
	if _, err := x.ReverseSelection(); err != nil {
		x.caps.ShowError(reverseLabel.In(x.lang), err)
	}
}

// Direction returns the configured direction.
func (x *Extension) Direction() Direction {
	x.mu.Lock()
	defer x.mu.Unlock()
	d, _ := Parse(x.conf.Direction)
	return d
}

// Workers returns the size of the worker pool.
func (x *Extension) Workers() int {
	x.mu.Lock()
	defer x.mu.Unlock()
	return x.pool.Size()
}

// ReverseSelection starts reversing the selection of the current editor, or
// the whole document if nothing is selected. The result is written back on
// the UI thread.
func (x *Extension) ReverseSelection() (*Job, error) {
	ed := x.host.CurrentEditor()
	if ed == nil {
		return nil, qalam.ErrNoEditor
	}
	c := ed.Cursor()
	var start, end int
	var text string
	if c.HasSelection() {
		start, end = c.Selection()
		text = c.SelectedText()
	} else {
		text = ed.Text()
		start, end = 0, utf8.RuneCountInString(text)
	}
	x.mu.Lock()
	dir, _ := Parse(x.conf.Direction)
	job := &Job{
		ID:        uuid.New(),
		Start:     start,
		End:       end,
		Input:     text,
		Direction: dir,
		done:      make(chan struct{}),
	}
	x.tracked = &target{job: job.ID, editor: ed, start: start, end: end}
	pool := x.pool
	x.mu.Unlock()
	tracer().Debugf("job %s: reversing [%d,%d) %s", job.ID, start, end, dir)
	result := pool.Submit(func() error {
		out, err := Reverse(job.Input, job.Direction)
		job.output = out
		return err
	})
	go func() {
		job.err = <-result
		x.caps.RunOnUI(func() { x.apply(job) })
		close(job.done)
	}()
	return job, nil
}

// apply writes a job's result to the tracked target. It runs on the UI
// thread.
func (x *Extension) apply(job *Job) {
	if job.err != nil {
		x.caps.ShowError(reverseLabel.In(x.lang), job.err)
		return
	}
	x.mu.Lock()
	t := x.tracked
	strict := x.conf.DiscardStale
	if t == nil || (strict && t.job != job.ID) {
		x.mu.Unlock()
		tracer().Infof("job %s: result is stale, discarded", job.ID)
		return
	}
	c := t.editor.Cursor()
	c.Select(t.start, t.end)
	c.InsertText(job.output)
	// the target collapses to the end of the inserted text
	t.start += utf8.RuneCountInString(job.output)
	t.end = t.start
	if t.job == job.ID {
		x.tracked = nil
	}
	x.mu.Unlock()
	tracer().Debugf("job %s: result applied", job.ID)
}

// ToggleDirection switches between right-to-left and left-to-right and saves
// the settings.
func (x *Extension) ToggleDirection() error {
	x.mu.Lock()
	d, _ := Parse(x.conf.Direction)
	x.conf.Direction = d.Toggle().String()
	conf, f := x.conf, x.file
	x.mu.Unlock()
	name := rtlLabel
	if d.Toggle() == LeftToRight {
		name = ltrLabel
	}
	x.caps.Notify(dirLabel.In(x.lang) + ": " + name.In(x.lang))
	return conf.Store(f)
}

// SetMaxWorkers changes the size of the worker pool and saves the settings.
// Jobs already submitted finish on the old pool.
func (x *Extension) SetMaxWorkers(n int) error {
	if n < qalam.MinWorkers || n > qalam.MaxWorkers {
		return fmt.Errorf("max workers %d out of range [%d, %d]", n, qalam.MinWorkers, qalam.MaxWorkers)
	}
	x.mu.Lock()
	x.conf.MaxWorkers = n
	old := x.pool
	x.pool = qalam.NewWorkerPool(n)
	conf, f := x.conf, x.file
	x.mu.Unlock()
	go old.Close()
	return conf.Store(f)
}

func (x *Extension) chooseWorkers() {
	if x.caps.Chooser == nil {
		x.caps.ShowError(settingsLabel.In(x.lang), errors.New("host cannot show choices"))
		return
	}
	options := make([]string, 0, qalam.MaxWorkers)
	for n := qalam.MinWorkers; n <= qalam.MaxWorkers; n++ {
		options = append(options, strconv.Itoa(n))
	}
	current := strconv.Itoa(x.Workers())
	answer, ok := x.caps.Chooser.Choose(settingsLabel.In(x.lang), options, current)
	if !ok || answer == current {
		return
	}
	n, err := strconv.Atoi(answer)
	if err == nil {
		err = x.SetMaxWorkers(n)
	}
	x.caps.ShowError(settingsLabel.In(x.lang), err)
}

// Close is part of interface qalam.Closer. It waits for running jobs.
func (x *Extension) Close() error {
	x.mu.Lock()
	pool := x.pool
	x.mu.Unlock()
	if pool != nil {
		pool.Close()
	}
	return nil
}
