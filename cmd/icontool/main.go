package main

import (
	"flag"
	"os"

	"github.com/bodgit/icontool"
	"github.com/bodgit/icontool/dmi"
	"github.com/bodgit/icontool/sheet"
	"github.com/golang/glog"
	"github.com/urfave/cli/v2"
)

func init() {
	cli.VersionFlag = &cli.BoolFlag{
		Name:    "version",
		Aliases: []string{"V"},
		Usage:   "print the version",
	}
}

func newIconTool(c *cli.Context) *icontool.IconTool {
	if c.Bool("verbose") {
		flag.Set("v", "1")
	}

	return icontool.New(
		dmi.Parser{
			DefaultWidth:  c.Int("frame-width"),
			DefaultHeight: c.Int("frame-height"),
		},
		sheet.Policy{
			MaxWidth:  c.Int("max-width"),
			MaxHeight: c.Int("max-height"),
			ExactFit:  c.Bool("exact-fit"),
		},
	)
}

var outputFlag = &cli.StringFlag{
	Name:    "output",
	Aliases: []string{"o"},
	Usage:   "write to `FILE` instead of the default",
}

func main() {
	// glog registers its flags on the standard flag set, only the defaults
	// are used apart from -v
	flag.Set("logtostderr", "true")
	flag.CommandLine.Parse(nil)

	app := cli.NewApp()

	app.Name = "icontool"
	app.Usage = "Tool for working with BYOND DreamMaker Icon (.dmi) files"
	app.Version = "1.0.0"

	app.Flags = []cli.Flag{
		&cli.BoolFlag{
			Name:    "verbose",
			Aliases: []string{"v"},
			Usage:   "increase verbosity",
		},
		&cli.IntFlag{
			Name:    "max-width",
			EnvVars: []string{"ICONTOOL_MAX_WIDTH"},
			Value:   sheet.DefaultPolicy.MaxWidth,
			Usage:   "maximum width of a compiled image",
		},
		&cli.IntFlag{
			Name:    "max-height",
			EnvVars: []string{"ICONTOOL_MAX_HEIGHT"},
			Value:   sheet.DefaultPolicy.MaxHeight,
			Usage:   "maximum height of a compiled image",
		},
		&cli.BoolFlag{
			Name:    "exact-fit",
			EnvVars: []string{"ICONTOOL_EXACT_FIT"},
			Usage:   "keep an image that has exactly enough room for its frames",
		},
		&cli.IntFlag{
			Name:    "frame-width",
			EnvVars: []string{"ICONTOOL_FRAME_WIDTH"},
			Value:   dmi.DefaultFrameSize,
			Usage:   "frame width when the metadata doesn't specify one",
		},
		&cli.IntFlag{
			Name:    "frame-height",
			EnvVars: []string{"ICONTOOL_FRAME_HEIGHT"},
			Value:   dmi.DefaultFrameSize,
			Usage:   "frame height when the metadata doesn't specify one",
		},
	}

	app.Commands = []*cli.Command{
		{
			Name:        "compile",
			Usage:       "Compile a .dmi.yml document into a .dmi file",
			Description: "",
			ArgsUsage:   "FILE",
			Flags:       []cli.Flag{outputFlag},
			Action: func(c *cli.Context) error {
				if c.NArg() < 1 {
					cli.ShowCommandHelpAndExit(c, c.Command.FullName(), 1)
				}

				if err := newIconTool(c).Compile(c.Args().First(), c.String("output")); err != nil {
					return cli.Exit(err, 1)
				}

				return nil
			},
		},
		{
			Name:        "decompile",
			Usage:       "Decompile a .dmi file into a .dmi.yml document",
			Description: "",
			ArgsUsage:   "FILE",
			Flags:       []cli.Flag{outputFlag},
			Action: func(c *cli.Context) error {
				if c.NArg() < 1 {
					cli.ShowCommandHelpAndExit(c, c.Command.FullName(), 1)
				}

				if err := newIconTool(c).Decompile(c.Args().First(), c.String("output")); err != nil {
					return cli.Exit(err, 1)
				}

				return nil
			},
		},
		{
			Name:        "metadata",
			Usage:       "Print the metadata of a .dmi file",
			Description: "",
			ArgsUsage:   "FILE",
			Action: func(c *cli.Context) error {
				if c.NArg() < 1 {
					cli.ShowCommandHelpAndExit(c, c.Command.FullName(), 1)
				}

				if err := newIconTool(c).Inspect(c.Args().First(), os.Stdout); err != nil {
					return cli.Exit(err, 1)
				}

				return nil
			},
		},
		{
			Name:        "preview",
			Usage:       "Render one direction of a state as an animated GIF",
			Description: "",
			ArgsUsage:   "FILE",
			Flags: []cli.Flag{
				&cli.StringFlag{
					Name:     "output",
					Aliases:  []string{"o"},
					Usage:    "write the GIF to `FILE`",
					Required: true,
				},
				&cli.StringFlag{
					Name:     "state",
					Aliases:  []string{"s"},
					Usage:    "name of the state",
					Required: true,
				},
				&cli.IntFlag{
					Name:    "dir",
					Aliases: []string{"d"},
					Usage:   "direction to render, counting from 0",
				},
				&cli.IntFlag{
					Name:  "scale",
					Value: 1,
					Usage: "enlarge each frame by this factor",
				},
			},
			Action: func(c *cli.Context) error {
				if c.NArg() < 1 {
					cli.ShowCommandHelpAndExit(c, c.Command.FullName(), 1)
				}

				if err := newIconTool(c).Preview(c.Args().First(), c.String("output"), c.String("state"), c.Int("dir"), c.Int("scale")); err != nil {
					return cli.Exit(err, 1)
				}

				return nil
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		glog.Exit(err)
	}
}
