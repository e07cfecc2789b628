package main

import (
	"errors"
	"fmt"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/chzyer/readline"
	"github.com/npillmayer/qalam"
	"github.com/npillmayer/qalam/arabic"
	"github.com/npillmayer/qalam/direction"
	"github.com/npillmayer/qalam/internal/memhost"
	"github.com/npillmayer/qalam/project"
	"github.com/npillmayer/qalam/shaping"
	"github.com/pterm/pterm"
)

// Intp is our interpreter object.
type Intp struct {
	repl     *readline.Instance
	host     *memhost.Host
	loader   *qalam.Loader
	lang     qalam.UILanguage
	reverser *direction.Extension
	project  *project.Extension
}

func (intp *Intp) String() string {
	doc := intp.host.Active()
	if doc == nil {
		return "( no document )"
	}
	start, end := doc.Selection()
	if start != end {
		return fmt.Sprintf("( %s | sel=[%d,%d) )", doc.Path(), start, end)
	}
	return fmt.Sprintf("( %s | pos=%d )", doc.Path(), doc.Position())
}

// REPL starts interactive mode.
func (intp *Intp) REPL() {
	for {
		pterm.Println(intp.String())
		line, err := intp.repl.Readline()
		if err != nil { // io.EOF
			break
		}
		if line = strings.TrimSpace(line); line == "" {
			continue
		}
		name, arg, _ := strings.Cut(line, " ")
		cmd, ok := commands[strings.ToLower(name)]
		if !ok {
			pterm.Error.Printf("unknown command %q, try 'help'\n", name)
			continue
		}
		quit, err := cmd.fn(intp, strings.TrimSpace(arg))
		if err != nil {
			pterm.Error.Println(err)
		}
		intp.settle()
		if quit {
			break
		}
	}
	pterm.Info.Println("Good bye!")
}

// settle runs pending UI work, waiting shortly for background jobs, and
// prints the messages extensions produced.
func (intp *Intp) settle() {
	for intp.host.RunNext(50 * time.Millisecond) {
	}
	errs, infos, status := intp.host.Drain()
	for _, m := range errs {
		pterm.Error.Printf("%s: %s\n", m.Title, m.Text)
	}
	for _, m := range infos {
		pterm.Info.Println(m.Title)
		pterm.Println(m.Text)
	}
	for _, s := range status {
		pterm.Info.Println(s)
	}
}

type command struct {
	usage string
	fn    func(*Intp, string) (bool, error)
}

var commands map[string]command

func init() {
	commands = map[string]command{
		"help":    {"help                  list commands", helpCmd},
		"quit":    {"quit                  leave the shell", quitCmd},
		"menu":    {"menu                  list menu items", menuCmd},
		"do":      {"do <n|name>           activate a menu item", doCmd},
		"key":     {"key <shortcut>        press a shortcut, e.g. ctrl+shift+r", keyCmd},
		"answer":  {"answer <text>         answer for the next choice", answerCmd},
		"new":     {"new [text]            open a new document", newCmd},
		"open":    {"open <path>           open a project file", openCmd},
		"docs":    {"docs                  list open documents", docsCmd},
		"doc":     {"doc <n>               switch to document n", docCmd},
		"show":    {"show                  print the active document", showCmd},
		"type":    {"type <text>           type text at the cursor", typeCmd},
		"select":  {"select <from> <to>    select a range", selectCmd},
		"cursor":  {"cursor <pos>          move the cursor", cursorCmd},
		"reverse": {"reverse <text>        prepare text for display", reverseCmd},
		"runs":    {"runs <text>           show directional runs", runsCmd},
		"shape":   {"shape <text>          show contextual forms", shapeCmd},
		"strip":   {"strip <text>          remove diacritics", stripCmd},
		"tree":    {"tree                  print the project tree", treeCmd},
	}
}

var errArg = errors.New("missing or invalid argument")

func helpCmd(intp *Intp, arg string) (bool, error) {
	names := make([]string, 0, len(commands))
	for name := range commands {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		pterm.Println("  " + commands[name].usage)
	}
	return false, nil
}

func quitCmd(intp *Intp, arg string) (bool, error) {
	return true, nil
}

func menuCmd(intp *Intp, arg string) (bool, error) {
	for i, item := range intp.loader.MenuItems() {
		pterm.Printf("%3d  %s\n", i+1, item.Name)
	}
	for _, item := range intp.loader.ContextMenuItems() {
		pterm.Printf("     %s  [%s]\n", item.Name, item.Shortcut)
	}
	return false, nil
}

func doCmd(intp *Intp, arg string) (bool, error) {
	if arg == "" {
		return false, errArg
	}
	if n, err := strconv.Atoi(arg); err == nil {
		items := intp.loader.MenuItems()
		if n < 1 || n > len(items) {
			return false, fmt.Errorf("no menu item #%d", n)
		}
		items[n-1].Callback()
		return false, nil
	}
	return false, intp.loader.Trigger(arg)
}

func keyCmd(intp *Intp, arg string) (bool, error) {
	return false, intp.loader.TriggerShortcut(arg)
}

func answerCmd(intp *Intp, arg string) (bool, error) {
	intp.host.Answer(arg)
	return false, nil
}

func newCmd(intp *Intp, arg string) (bool, error) {
	n := len(intp.host.Documents()) + 1
	return false, intp.host.CreateNewTab(fmt.Sprintf("untitled-%d", n), arg)
}

func openCmd(intp *Intp, arg string) (bool, error) {
	if arg == "" {
		return false, errArg
	}
	return false, intp.project.OpenFile(arg)
}

func docsCmd(intp *Intp, arg string) (bool, error) {
	active := intp.host.Active()
	for i, doc := range intp.host.Documents() {
		mark := " "
		if doc == active {
			mark = "*"
		}
		pterm.Printf("%s %2d  %s (%d runes)\n", mark, i, doc.Path(), doc.Len())
	}
	return false, nil
}

func docCmd(intp *Intp, arg string) (bool, error) {
	n, err := strconv.Atoi(arg)
	if err != nil {
		return false, errArg
	}
	return false, intp.host.Activate(n)
}

func showCmd(intp *Intp, arg string) (bool, error) {
	doc := intp.host.Active()
	if doc == nil {
		return false, qalam.ErrNoEditor
	}
	pterm.Println(doc.Text())
	return false, nil
}

func typeCmd(intp *Intp, arg string) (bool, error) {
	doc := intp.host.Active()
	if doc == nil {
		return false, qalam.ErrNoEditor
	}
	doc.Type(arg)
	return false, nil
}

func selectCmd(intp *Intp, arg string) (bool, error) {
	doc := intp.host.Active()
	if doc == nil {
		return false, qalam.ErrNoEditor
	}
	var from, to int
	if _, err := fmt.Sscanf(arg, "%d %d", &from, &to); err != nil {
		return false, errArg
	}
	doc.Select(from, to)
	return false, nil
}

func cursorCmd(intp *Intp, arg string) (bool, error) {
	doc := intp.host.Active()
	if doc == nil {
		return false, qalam.ErrNoEditor
	}
	pos, err := strconv.Atoi(arg)
	if err != nil {
		return false, errArg
	}
	doc.SetPosition(pos)
	return false, nil
}

func reverseCmd(intp *Intp, arg string) (bool, error) {
	out, err := direction.Reverse(arg, intp.reverser.Direction())
	if err != nil {
		return false, err
	}
	pterm.Println(out)
	return false, nil
}

func runsCmd(intp *Intp, arg string) (bool, error) {
	for _, run := range direction.Segment(arg) {
		pterm.Printf("[%3d,%3d) %-7s %q\n", run.Start, run.End, run.Class, run.Text)
	}
	return false, nil
}

func shapeCmd(intp *Intp, arg string) (bool, error) {
	rs := []rune(arg)
	forms := shaping.ResolveForms(rs)
	for i, r := range rs {
		p := shaping.PresentationForm(r, forms[i])
		pterm.Printf("U+%04X  %-8s -> U+%04X\n", r, forms[i], p)
	}
	pterm.Println(shaping.Reshape(arg))
	return false, nil
}

func stripCmd(intp *Intp, arg string) (bool, error) {
	out, err := arabic.StripTashkeel(arg)
	if err != nil {
		return false, err
	}
	pterm.Println(out)
	return false, nil
}

func treeCmd(intp *Intp, arg string) (bool, error) {
	tree := intp.project.Tree()
	if tree == nil {
		return false, errors.New("no project tree")
	}
	pterm.Print(tree.Render())
	return false, nil
}
