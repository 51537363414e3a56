package cli

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/ezrec/tinyturing/bbformat"
	"github.com/ezrec/tinyturing/emulator"
	"github.com/ezrec/tinyturing/machinefile"
	"github.com/ezrec/tinyturing/script"
)

// Machine is what the commands need from a loaded machine, whatever its
// symbol and state types.
type Machine interface {
	emulator.Machine
	TapeLen() int
	NonBlank() int
	String() string
}

// loaded is a machine together with where it came from.
type loaded struct {
	Name    string
	Format  string
	Machine Machine
	Desc    *machinefile.Description
}

// detectFormat picks a format from the file extension. Anything that is
// not a description file is taken as a bb code.
func detectFormat(arg string) string {
	switch strings.ToLower(filepath.Ext(arg)) {
	case ".yaml", ".yml":
		return "yaml"
	case ".star":
		return "star"
	default:
		return "bb"
	}
}

// loadMachine builds a machine from a bb code or a description file.
func loadMachine(arg string, format string, verbose bool) (l *loaded, err error) {
	if format == "" || format == "auto" {
		format = detectFormat(arg)
	}

	defer func() {
		if err != nil {
			l = nil
			err = &ErrLoad{Machine: arg, Format: format, Err: err}
		}
	}()

	l = &loaded{Name: arg, Format: format}

	switch format {
	case "bb":
		var m *bbformat.Machine
		m, err = bbformat.Parse(arg)
		if err != nil {
			return
		}
		m.Verbose = verbose
		l.Machine = m
		l.Desc = machinefile.Describe(m, strings.TrimSpace(arg))
	case "yaml":
		var file *os.File
		file, err = os.Open(arg)
		if err != nil {
			return
		}
		defer file.Close()

		l.Desc, err = machinefile.Load(file)
		if err != nil {
			return
		}
		err = l.build(verbose)
	case "star":
		sc := &script.Script{Verbose: verbose}
		l.Desc, err = sc.Load(arg, nil)
		if err != nil {
			return
		}
		err = l.build(verbose)
	default:
		err = ErrFormat
	}

	return
}

func (l *loaded) build(verbose bool) (err error) {
	m, err := l.Desc.Build()
	if err != nil {
		return
	}
	m.Verbose = verbose
	l.Machine = m

	if l.Desc.Name == "" {
		l.Desc.Name = strings.TrimSuffix(filepath.Base(l.Name), filepath.Ext(l.Name))
	}

	return
}
