package main

import (
	"asciid/canvas"
	"asciid/config"
	"asciid/editor"
	"asciid/history"
	"asciid/store"
	"asciid/terminal"
	"asciid/validation"
	"bytes"
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"

	"github.com/gdamore/tcell/v2"
	"golang.org/x/term"
)

// errCheckFailed is returned when -check finds line drawing errors.
var errCheckFailed = errors.New("line check failed")

type options struct {
	configPath  string
	interactive bool
	fix         bool
	check       bool
	strict      bool
	outputFile  string
	dbPath      string
	name        string
	list        bool
	markdown    bool
	block       int
	rows        int
	cols        int
	filename    string
}

func main() {
	var opts options
	help := flag.Bool("help", false, "Show help")
	flag.StringVar(&opts.configPath, "config", "", "Config file (default: $XDG_CONFIG_HOME/asciid/config.json)")
	flag.BoolVar(&opts.interactive, "i", false, "Interactive editor")
	flag.BoolVar(&opts.fix, "fix", false, "Rebuild broken line joints before writing")
	flag.BoolVar(&opts.check, "check", false, "Report lines that do not join up (exit status 2)")
	flag.BoolVar(&opts.strict, "strict", false, "With -check, also report arrowheads without a line")
	flag.StringVar(&opts.outputFile, "o", "", "Output file (default: stdout)")
	flag.StringVar(&opts.dbPath, "db", "", "Document database (default from config)")
	flag.StringVar(&opts.name, "name", "", "Load and save the named document in the database")
	flag.BoolVar(&opts.list, "list", false, "List stored documents")
	flag.BoolVar(&opts.markdown, "markdown", false, "Treat the file as markdown and edit a diagram block in place")
	flag.IntVar(&opts.block, "block", 0, "With -markdown, the block to edit (1-based)")
	flag.IntVar(&opts.rows, "rows", 0, "Grid rows (default from config)")
	flag.IntVar(&opts.cols, "cols", 0, "Grid columns (default from config)")

	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: %s [options] [diagram.txt]\n\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "Draw box-drawing diagrams on a character grid.\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		flag.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nExamples:\n")
		fmt.Fprintf(os.Stderr, "  %s                          # Start the editor on an empty grid\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "  %s -i diagram.txt           # Edit a diagram file\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "  %s -fix diagram.txt         # Print the diagram with joints rebuilt\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "  %s -fix -o out.txt < in.txt # Filter stdin\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "  %s -check diagram.txt       # Report broken joints\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "  %s -name flow               # Edit a stored document\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "  %s -list                    # List stored documents\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "  %s -markdown README.md      # Edit a diagram block in markdown\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "  %s -markdown -fix -block 2 README.md\n", os.Args[0])
	}

	flag.Parse()

	if *help {
		flag.Usage()
		os.Exit(0)
	}
	if args := flag.Args(); len(args) > 0 {
		opts.filename = args[0]
	}

	if err := run(context.Background(), opts); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		if errors.Is(err, errCheckFailed) {
			os.Exit(2) // Exit with error code to indicate validation issues
		}
		os.Exit(1)
	}
}

func run(ctx context.Context, opts options) error {
	configPath := opts.configPath
	if configPath == "" {
		path, err := config.DefaultPath()
		if err != nil {
			return fmt.Errorf("locating config: %w", err)
		}
		configPath = path
	}
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}
	if opts.rows > 0 {
		cfg.Rows = opts.rows
	}
	if opts.cols > 0 {
		cfg.Cols = opts.cols
	}
	if opts.dbPath != "" {
		cfg.DBPath = opts.dbPath
	}

	if opts.list {
		return listDocuments(ctx, cfg.DBPath, os.Stdout)
	}

	session := editor.NewSession(
		canvas.New(cfg.CellWidth, cfg.CellHeight, cfg.Rows, cfg.Cols),
		history.NewWithLimit(cfg.HistoryCapacity()),
	)

	var db *store.Store
	var md *markdownTarget
	switch {
	case opts.markdown:
		if opts.filename == "" {
			return errors.New("-markdown needs a file")
		}
		md, err = openMarkdown(opts.filename, opts.block, os.Stderr)
		if err != nil {
			return err
		}
	case opts.name != "":
		db, err = store.Open(cfg.DBPath)
		if err != nil {
			return err
		}
		defer db.Close()
	}

	stdinIsTerminal := term.IsTerminal(int(os.Stdin.Fd()))
	interactive := opts.interactive || (opts.filename == "" && opts.name == "" && stdinIsTerminal)
	if md != nil && !opts.fix && !opts.check && opts.outputFile == "" && stdinIsTerminal {
		interactive = true
	}

	if md != nil {
		err = md.load(session)
	} else {
		err = loadSession(ctx, session, db, opts, interactive)
	}
	if err != nil {
		return err
	}

	if !interactive {
		return runBatch(ctx, session, db, md, opts)
	}
	if !stdinIsTerminal {
		return errors.New("interactive mode needs a terminal")
	}
	return runInteractive(session, db, md, opts, filepath.Dir(configPath))
}

// loadSession fills the session from the stored document, the diagram file or
// stdin, in that order of preference.
func loadSession(ctx context.Context, s *editor.Session, db *store.Store, opts options, interactive bool) error {
	switch {
	case db != nil:
		doc, err := db.Load(ctx, opts.name)
		if errors.Is(err, store.ErrNotFound) && interactive {
			return nil
		}
		if err != nil {
			return err
		}
		return s.Restore(doc)

	case opts.filename != "":
		file, err := os.Open(opts.filename)
		if os.IsNotExist(err) && interactive {
			return nil
		}
		if err != nil {
			return fmt.Errorf("opening file: %w", err)
		}
		defer file.Close()
		if err := s.Open(file); err != nil {
			return fmt.Errorf("loading %s: %w", opts.filename, err)
		}
		return nil

	case !interactive:
		if err := s.Open(os.Stdin); err != nil {
			return fmt.Errorf("loading stdin: %w", err)
		}
	}
	return nil
}

func runBatch(ctx context.Context, s *editor.Session, db *store.Store, md *markdownTarget, opts options) error {
	if opts.fix {
		n := s.FixAll()
		fmt.Fprintf(os.Stderr, "Fixed %d joints\n", n)
		if n > 0 {
			switch {
			case db != nil:
				if err := db.Save(ctx, s.Document(opts.name)); err != nil {
					return err
				}
			case md != nil:
				if err := md.save(s); err != nil {
					return err
				}
				fmt.Fprintf(os.Stderr, "Updated block at line %d in %s\n", md.block.StartLine+1, md.path)
			}
		}
	}

	// A markdown file fixed or checked in place only prints the block when asked to.
	if md == nil || opts.outputFile != "" || (!opts.fix && !opts.check) {
		if err := writeOutput(s, opts.outputFile); err != nil {
			return err
		}
	}
	if opts.check {
		return checkLines(s, opts.strict, os.Stderr)
	}
	return nil
}

func writeOutput(s *editor.Session, path string) error {
	if path == "" {
		return s.Save(os.Stdout)
	}
	if err := saveFile(s, path); err != nil {
		return fmt.Errorf("writing to file: %w", err)
	}
	fmt.Fprintf(os.Stderr, "Successfully wrote %s\n", path)
	return nil
}

// checkLines validates the committed diagram, printing every problem to w.
func checkLines(s *editor.Session, strict bool, w io.Writer) error {
	validator := validation.NewLineValidator()
	validator.SetStrictMode(strict)
	problems := validator.Validate(s.Grid().Text())
	for _, p := range problems {
		fmt.Fprintln(w, p)
	}
	if len(problems) > 0 {
		return fmt.Errorf("%w: %d problems", errCheckFailed, len(problems))
	}
	return nil
}

func runInteractive(s *editor.Session, db *store.Store, md *markdownTarget, opts options, logDir string) error {
	if logFile, err := setupLogging(logDir); err == nil {
		defer logFile.Close()
	} else {
		log.SetOutput(io.Discard)
	}

	screen, err := tcell.NewScreen()
	if err != nil {
		return fmt.Errorf("init screen: %w", err)
	}

	topts := terminal.Options{Name: opts.name}
	switch {
	case md != nil:
		topts.Name = fmt.Sprintf("%s:%d", md.path, md.block.StartLine+1)
		topts.Save = md.save
	case db != nil:
		topts.Save = func(s *editor.Session) error {
			return db.Save(context.Background(), s.Document(opts.name))
		}
	case opts.filename != "":
		topts.Name = opts.filename
		topts.Save = func(s *editor.Session) error {
			return saveFile(s, opts.filename)
		}
	}

	log.Printf("Editing %q", topts.Name)
	return terminal.Run(screen, s, topts)
}

// saveFile writes the diagram to path.
func saveFile(s *editor.Session, path string) error {
	var buf bytes.Buffer
	if err := s.Save(&buf); err != nil {
		return err
	}
	return writeFileAtomic(path, buf.Bytes())
}

// writeFileAtomic writes through a temporary file so a failed write leaves
// the previous version intact.
func writeFileAtomic(path string, data []byte) error {
	tmp, err := os.CreateTemp(filepath.Dir(path), ".asciid-*")
	if err != nil {
		return err
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	return os.Rename(tmp.Name(), path)
}

func listDocuments(ctx context.Context, dbPath string, w io.Writer) error {
	db, err := store.Open(dbPath)
	if err != nil {
		return err
	}
	defer db.Close()

	docs, err := db.List(ctx)
	if err != nil {
		return err
	}
	for _, d := range docs {
		fmt.Fprintf(w, "%-24s %4dx%-4d %4d versions  %s\n",
			d.Name, d.Rows, d.Cols, d.Versions, d.Updated.Format("2006-01-02 15:04"))
	}
	return nil
}

// setupLogging sends log output to a file while the screen is in use.
func setupLogging(dir string) (*os.File, error) {
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return nil, err
	}
	file, err := os.OpenFile(filepath.Join(dir, "asciid.log"), os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o640)
	if err != nil {
		return nil, err
	}
	log.SetOutput(file)
	return file, nil
}
