// Command slgrcat reads lines from stdin and logs each of them through a
// slgr registry, so output settings can be tried from the shell:
//
//	dmesg | slgrcat --level warning --config outputs.toml
package main

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"log"
	"os"
	"strings"

	"github.com/abyssdigger/slgr"
	"github.com/spf13/afero"
	"github.com/urfave/cli/v3"
)

const (
	filePrefix = "file:"
	maxLineLen = 1 << 20 // longer stdin lines fail the command
)

func main() {
	app := &cli.Command{
		Name:  "slgrcat",
		Usage: "Log stdin lines to several outputs with per-output levels and prefixes",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "level",
				Usage: "Level of every logged line (error, warning, info, trace, verbose)",
				Value: "info",
			},
			&cli.StringFlag{
				Name:  "config",
				Usage: "TOML file with outputs (names: stdout, stderr, file:<path>)",
			},
			&cli.BoolFlag{
				Name:  "crlf",
				Usage: "End lines with \\r\\n",
			},
		},
		Action: run,
	}

	if err := app.Run(context.Background(), os.Args); err != nil {
		log.Fatal(err)
	}
}

func run(ctx context.Context, cmd *cli.Command) error {
	level, err := slgr.ParseLogLevel(cmd.String("level"))
	if err != nil {
		return err
	}
	reg := slgr.NewRegistry(slgr.WithFallback(os.Stderr))
	if cmd.Bool("crlf") {
		reg.SetLineEnding("\r\n")
	}

	if path := cmd.String("config"); path != "" {
		fs := afero.NewOsFs()
		cfg, err := slgr.LoadConfig(fs, path)
		if err != nil {
			return err
		}
		sinks, closeAll, err := openSinks(fs, cfg)
		if err != nil {
			return err
		}
		defer closeAll()
		if err := reg.ApplyConfig(cfg, sinks); err != nil {
			return err
		}
	} else if err := reg.Add(os.Stdout, slgr.LVL_VERBOSE); err != nil {
		return err
	}

	return pipe(ctx, os.Stdin, slgr.NewLogger(reg, level))
}

// openSinks maps every configured output name to a writer.
func openSinks(fs afero.Fs, cfg *slgr.Config) (map[string]slgr.OutType, func(), error) {
	sinks := map[string]slgr.OutType{}
	var files []*slgr.FileSink
	closeAll := func() {
		for _, f := range files {
			f.Close()
		}
	}
	for _, o := range cfg.Outputs {
		switch {
		case o.Name == "stdout":
			sinks[o.Name] = os.Stdout
		case o.Name == "stderr":
			sinks[o.Name] = os.Stderr
		case strings.HasPrefix(o.Name, filePrefix):
			f, err := slgr.OpenFileSink(fs, strings.TrimPrefix(o.Name, filePrefix), false)
			if err != nil {
				closeAll()
				return nil, nil, fmt.Errorf("opening output %q: %w", o.Name, err)
			}
			files = append(files, f)
			sinks[o.Name] = f
		}
	}
	return sinks, closeAll, nil
}

func pipe(ctx context.Context, in io.Reader, l *slgr.Logger) error {
	scanner := bufio.NewScanner(in)
	scanner.Buffer(make([]byte, 0, bufio.MaxScanTokenSize), maxLineLen)
	for scanner.Scan() {
		if err := ctx.Err(); err != nil {
			return err
		}
		l.Println(scanner.Text())
	}
	return scanner.Err()
}
