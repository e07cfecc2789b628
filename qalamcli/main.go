// Command qalamcli is an interactive shell for trying out the editor
// extensions. It runs all extensions inside an in-memory editor host.
package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/alecthomas/kong"
	"github.com/chzyer/readline"
	"github.com/npillmayer/qalam"
	"github.com/npillmayer/qalam/arabic"
	"github.com/npillmayer/qalam/autocorrect"
	"github.com/npillmayer/qalam/backup"
	"github.com/npillmayer/qalam/direction"
	"github.com/npillmayer/qalam/internal/memhost"
	"github.com/npillmayer/qalam/project"
	"github.com/npillmayer/qalam/theme"
	"github.com/npillmayer/schuko/schukonf/testconfig"
	"github.com/npillmayer/schuko/tracing"
	"github.com/npillmayer/schuko/tracing/gologadapter"
	"github.com/npillmayer/schuko/tracing/trace2go"
	"github.com/pterm/pterm"
)

// tracer traces with key 'qalam.core'
func tracer() tracing.Trace {
	return tracing.Select("qalam.core")
}

// CLI defines the command line.
var CLI struct {
	Trace    string   `name:"trace" short:"t" help:"Trace level [Debug|Info|Error]" enum:"Debug,Info,Error" default:"Info"`
	Project  string   `name:"project" short:"p" help:"Project folder" type:"path" default:"."`
	Backups  string   `name:"backups" short:"b" help:"Backup folder (default: <project>/.backups)" type:"path"`
	Settings string   `name:"settings" short:"s" help:"Folder for settings files (default: user config folder)" type:"path"`
	Lang     string   `name:"lang" short:"l" help:"Menu language [en|ar], detected from the locale if empty"`
	Files    []string `arg:"" optional:"" help:"Files to open" type:"existingfile"`
}

var traceKeys = []string{
	"qalam.core", "qalam.arabic", "qalam.shaping", "qalam.direction",
	"qalam.autocorrect", "qalam.backup", "qalam.project", "qalam.theme", "qalam.settings",
}

func main() {
	initDisplay()
	kong.Parse(&CLI,
		kong.Name("qalamcli"),
		kong.Description("Interactive shell for the Arabic editor extensions"),
		kong.UsageOnError(),
	)

	// set up logging
	tracing.RegisterTraceAdapter("go", gologadapter.GetAdapter(), false)
	conf := testconfig.Conf{"tracing.adapter": "go"}
	for _, key := range traceKeys {
		conf["trace."+key] = "Error" // will set the correct level later
	}
	if err := trace2go.ConfigureRoot(conf, "trace", trace2go.ReplaceTracers(true)); err != nil {
		fmt.Printf("error configuring tracing")
		os.Exit(1)
	}
	tracing.SetTraceSelector(trace2go.Selector())
	pterm.Info.Println("Welcome to Qalam CLI")

	intp, err := setup()
	if err != nil {
		pterm.Error.Println(err)
		os.Exit(2)
	}
	defer intp.loader.Close()
	repl, err := readline.New("qalam > ")
	if err != nil {
		tracer().Errorf(err.Error())
		os.Exit(3)
	}
	defer repl.Close()
	intp.repl = repl

	level := tracing.LevelInfo
	switch CLI.Trace {
	case "Debug":
		level = tracing.LevelDebug
	case "Error":
		level = tracing.LevelError
	}
	for _, key := range traceKeys {
		tracing.Select(key).SetTraceLevel(level)
	}
	tracer().Infof("Trace level is %s", CLI.Trace)
	pterm.Info.Println("Quit with <ctrl>D") // inform user how to stop the CLI
	intp.REPL()
}

// We use pterm for moderately fancy output.
func initDisplay() {
	pterm.EnableDebugMessages()
	pterm.Info.Prefix = pterm.Prefix{
		Text:  " !  ",
		Style: pterm.NewStyle(pterm.BgCyan, pterm.FgBlack),
	}
	pterm.Error.Prefix = pterm.Prefix{
		Text:  " Error",
		Style: pterm.NewStyle(pterm.BgRed, pterm.FgBlack),
	}
}

// setup creates the host, registers all extensions and opens the files given
// on the command line.
func setup() (*Intp, error) {
	lang := qalam.DetectUILanguage()
	switch CLI.Lang {
	case "en":
		lang = qalam.English
	case "ar":
		lang = qalam.Arabic
	}
	settingsDir := CLI.Settings
	if settingsDir == "" {
		dir, err := os.UserConfigDir()
		if err != nil {
			return nil, err
		}
		settingsDir = filepath.Join(dir, "qalam")
	}
	backups := CLI.Backups
	if backups == "" {
		backups = filepath.Join(CLI.Project, ".backups")
	}
	host := memhost.New()
	loader := qalam.NewLoader(host, host.Capabilities())
	host.OnSwitch(loader.SetActiveEditor)
	intp := &Intp{host: host, loader: loader, lang: lang}
	intp.reverser = direction.NewExtension(filepath.Join(settingsDir, "reverse.json"), lang)
	intp.project = project.NewExtension(CLI.Project, lang)
	extensions := []qalam.Extension{
		intp.reverser,
		autocorrect.NewExtension(lang),
		arabic.NewExtension(lang),
		backup.NewExtension(CLI.Project, backups, lang),
		intp.project,
		theme.NewExtension(filepath.Join(settingsDir, "settings.json"), lang),
	}
	for _, ext := range extensions {
		if err := loader.Register(ext); err != nil {
			return nil, err
		}
	}
	for _, f := range CLI.Files {
		if err := host.OpenFile(f); err != nil {
			return nil, err
		}
	}
	pterm.Info.Printf("Menu language is %s, %d extensions loaded\n", lang, len(extensions))
	return intp, nil
}
