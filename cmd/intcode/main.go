// intcode: run an intcode program image from the command line.
//
// Usage:
//
//	intcode [flags] <image>
//
// The image may be plain text, or compressed when named *.zst or *.gz.
// Outputs go to stdout, logs to stderr.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"

	"github.com/google/uuid"
	"gitlab.com/efronlicht/enve"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/fortiblox/intcode/pkg/driver"
	"github.com/fortiblox/intcode/pkg/image"
	"github.com/fortiblox/intcode/pkg/intcode"
)

// Version information
var (
	Version   = "0.1.0"
	GitCommit = "dev"
)

// Configuration flags
var (
	inputs      = flag.String("input", "", "Values queued before the run, e.g. \"1,2 3\"")
	patches     = flag.String("patch", "", "Memory patches applied before the run, e.g. \"1=12,2=2\"")
	ascii       = flag.Bool("ascii", false, "Treat input and output as ASCII text")
	interactive = flag.Bool("interactive", false, "Read stdin when the program asks for input")
	maxSteps    = flag.Uint64("max-steps", enve.Uint64Or("INTCODE_MAX_STEPS", 0), "Instruction budget (0 = unlimited)")
	dump        = flag.String("dump", "", "Memory addresses printed after the run, e.g. \"0,1\"")
	logLevel    = flag.String("log-level", enve.StringOr("INTCODE_LOG_LEVEL", "info"), "Log level: debug, info, warn, error")
	showVersion = flag.Bool("version", false, "Print version and exit")
)

func main() {
	flag.Usage = func() {
		fmt.Fprintf(flag.CommandLine.Output(), "usage: %s [flags] <image>\n", os.Args[0])
		flag.PrintDefaults()
	}
	flag.Parse()

	if *showVersion {
		fmt.Printf("intcode %s (%s)\n", Version, GitCommit)
		os.Exit(0)
	}
	if flag.NArg() != 1 {
		flag.Usage()
		os.Exit(2)
	}

	logger, err := newLogger(*logLevel)
	if err != nil {
		fmt.Fprintf(os.Stderr, "intcode: %v\n", err)
		os.Exit(2)
	}
	logger = logger.With(zap.String("run_id", uuid.New().String()))
	defer logger.Sync()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg := config{
		image:       flag.Arg(0),
		inputs:      *inputs,
		patches:     *patches,
		ascii:       *ascii,
		interactive: *interactive,
		maxSteps:    *maxSteps,
		dump:        *dump,
	}
	if err := run(ctx, logger, cfg, os.Stdin, os.Stdout); err != nil {
		logger.Error("run failed", zap.Error(err))
		logger.Sync()
		os.Exit(1)
	}
}

func newLogger(level string) (*zap.Logger, error) {
	lvl, err := zapcore.ParseLevel(level)
	if err != nil {
		return nil, fmt.Errorf("log level: %w", err)
	}
	cfg := zap.NewProductionEncoderConfig()
	cfg.EncodeTime = zapcore.RFC3339TimeEncoder
	cfg.EncodeLevel = zapcore.CapitalColorLevelEncoder
	core := zapcore.NewCore(zapcore.NewConsoleEncoder(cfg), zapcore.Lock(os.Stderr), lvl)
	return zap.New(core), nil
}

// config is one invocation's settings.
type config struct {
	image       string
	inputs      string
	patches     string
	ascii       bool
	interactive bool
	maxSteps    uint64
	dump        string
}

func run(ctx context.Context, logger *zap.Logger, cfg config, stdin io.Reader, stdout io.Writer) error {
	img, err := image.Open(cfg.image)
	if err != nil {
		return err
	}
	logger.Info("loaded image",
		zap.String("path", img.Path),
		zap.String("compression", img.Compression.String()),
		zap.Int("cells", len(img.Cells)),
		zap.String("digest", img.ID()))

	p := img.Program(intcode.Opts{MaxSteps: cfg.maxSteps, Logger: logger.Named("vm")})

	ps, err := driver.ParsePatches(cfg.patches)
	if err != nil {
		return err
	}
	if err := driver.Patch(p, ps); err != nil {
		return err
	}

	vals, err := driver.ParseInputs(cfg.inputs)
	if err != nil {
		return err
	}
	p.Enqueue(vals...)

	s := &driver.Session{
		Program: p,
		Out:     stdout,
		ASCII:   cfg.ascii,
		Logger:  logger.Named("driver"),
	}
	if cfg.interactive {
		s.In = stdin
	}

	res, err := s.Run(ctx)
	if err != nil && !errors.Is(err, driver.ErrInputExhausted) {
		return err
	}
	logger.Info("run finished",
		zap.Stringer("state", res.State),
		zap.Uint64("steps", res.Steps),
		zap.Int("outputs", len(res.Outputs)))
	if err != nil {
		return err
	}

	return dumpMemory(p, cfg.dump, stdout)
}

// dumpMemory prints addr=value for each requested address.
func dumpMemory(p *intcode.Program, addrs string, w io.Writer) error {
	if addrs == "" {
		return nil
	}
	for _, f := range strings.FieldsFunc(addrs, func(r rune) bool { return r == ',' || r == ' ' }) {
		addr, err := strconv.ParseInt(f, 10, 64)
		if err != nil {
			return fmt.Errorf("dump address %q: %w", f, err)
		}
		x, err := p.Read(addr)
		if err != nil {
			return fmt.Errorf("dump address %d: %w", addr, err)
		}
		fmt.Fprintf(w, "%d=%d\n", addr, x)
	}
	return nil
}
