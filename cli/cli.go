package cli

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/alexflint/go-arg"
	"github.com/pkg/errors"
	"go.uber.org/zap"

	"tdms-savior/tdms"
	"tdms-savior/tdms/dpath"
	"tdms-savior/tdms/dsegment"
	"tdms-savior/tdms/dtype"
	"tdms-savior/ui"
)

type (
	Args struct {
		Inspect     *InspectCmd     `arg:"subcommand:inspect" help:"list groups, channels and properties"`
		Dump        *DumpCmd        `arg:"subcommand:dump" help:"print the samples of one channel"`
		Interactive *InteractiveCmd `arg:"subcommand:interactive" help:"browse channels in the terminal"`
		Verbose     bool            `arg:"-v" help:"trace every decoded segment"`
	}
	InspectCmd struct {
		From string `arg:"positional,required" help:"path to a .tdms file" placeholder:"FILE"`
		JSON bool   `help:"print an ordered JSON tree"`
	}
	DumpCmd struct {
		From    string `arg:"positional,required" help:"path to a .tdms file" placeholder:"FILE"`
		Channel string `arg:"required" help:"channel path" placeholder:"/'Group'/'Chan'"`
		Limit   int    `help:"print at most this many samples, 0 for all"`
	}
	InteractiveCmd struct {
		From string `arg:"positional,required" help:"path to a .tdms file" placeholder:"FILE"`
	}
)

func (Args) Description() string {
	des := strings.Join(
		[]string{
			"Read TDMS measurement files in the command line.\n",
			"Lists the groups, channels and properties of a file,",
			"and prints or browses channel samples.",
		},
		"\n",
	)
	des += "\n"
	return des
}

func newLogger(verbose bool) *zap.SugaredLogger {
	if !verbose {
		return zap.NewNop().Sugar()
	}
	logger, err := zap.NewDevelopment()
	if err != nil {
		return zap.NewNop().Sugar()
	}
	return logger.Sugar()
}

func openFile(path string, log *zap.SugaredLogger) (*tdms.File, io.Closer, error) {
	source, closer, err := OpenSource(path)
	if err != nil {
		return nil, nil, err
	}
	file, err := tdms.Open(source, dsegment.WithLogger(log))
	if err != nil {
		closer.Close()
		return nil, nil, err
	}
	return file, closer, nil
}

func RunInspect(cmd InspectCmd, log *zap.SugaredLogger, out io.Writer) error {
	file, closer, err := openFile(cmd.From, log)
	if err != nil {
		return err
	}
	defer closer.Close()

	if cmd.JSON {
		bs, err := ToJSON(file)
		if err != nil {
			return errors.Wrap(err, "cli.RunInspect error")
		}
		_, err = fmt.Fprintln(out, string(bs))
		return err
	}
	return WriteSummary(file, out)
}

func RunDump(cmd DumpCmd, log *zap.SugaredLogger, out io.Writer) error {
	file, closer, err := openFile(cmd.From, log)
	if err != nil {
		return err
	}
	defer closer.Close()

	components, err := dpath.Parse(cmd.Channel)
	if err != nil {
		return err
	}
	if dpath.KindOf(components) != dpath.KindChannel {
		return errors.Errorf(`cli.RunDump error: "%s" is a %s, not a channel`, cmd.Channel, dpath.KindOf(components))
	}
	channel, err := file.Channel(components[0], components[1])
	if err != nil {
		return errors.Wrap(err, "cli.RunDump error")
	}
	values, err := channel.ReadAll()
	if err != nil {
		return errors.Wrap(err, "cli.RunDump error")
	}
	for _, value := range dtype.FormatSlice(values, cmd.Limit) {
		if _, err := fmt.Fprintln(out, value); err != nil {
			return err
		}
	}
	return nil
}

func RunInteractive(cmd InteractiveCmd, log *zap.SugaredLogger) error {
	file, closer, err := openFile(cmd.From, log)
	if err != nil {
		return err
	}
	defer closer.Close()
	return ui.Start(cmd.From, file)
}

func Start() {
	args := Args{}
	parser := arg.MustParse(&args)
	log := newLogger(args.Verbose)
	defer log.Sync()

	err := error(nil)
	switch {
	case args.Inspect != nil:
		err = RunInspect(*args.Inspect, log, os.Stdout)
	case args.Dump != nil:
		err = RunDump(*args.Dump, log, os.Stdout)
	case args.Interactive != nil:
		err = RunInteractive(*args.Interactive, log)
	default:
		parser.WriteHelp(os.Stdout)
		return
	}
	if err != nil {
		println("Error: " + err.Error())
		os.Exit(1)
	}
}
