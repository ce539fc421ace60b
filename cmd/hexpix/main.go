package main

import (
	"fmt"
	"io/ioutil"
	"log"
	"os"
	"path/filepath"

	"github.com/bodgit/hexpix"
	"github.com/bodgit/hexpix/config"
	"github.com/bodgit/hexpix/container"
	jsoniter "github.com/json-iterator/go"
	"github.com/urfave/cli/v2"
)

const defaultDB = "hexpix.db"

func init() {
	cli.VersionFlag = &cli.BoolFlag{
		Name:    "version",
		Aliases: []string{"V"},
		Usage:   "print the version",
	}
}

// setup loads the configuration and returns it along with a HexPix using
// the catalog named by either the flag, the configuration or the default,
// in that order.
func setup(c *cli.Context) (*hexpix.HexPix, config.Config, error) {
	cfg, err := config.Load(c.String("config"))
	if err != nil {
		return nil, config.Config{}, err
	}

	logger := log.New(ioutil.Discard, "", 0)
	if c.Bool("verbose") {
		logger.SetOutput(os.Stderr)
	}

	db := c.String("db")
	if !c.IsSet("db") && cfg.Database != "" {
		db = cfg.Database
	}

	h, err := hexpix.New(db, logger)
	if err != nil {
		return nil, config.Config{}, err
	}

	return h, cfg, nil
}

func intFlag(c *cli.Context, name string, value int) int {
	if c.IsSet(name) {
		return c.Int(name)
	}
	return value
}

func stringFlag(c *cli.Context, name string, value string) string {
	if c.IsSet(name) {
		return c.String(name)
	}
	return value
}

func compile(c *cli.Context) error {
	if c.NArg() < 1 {
		cli.ShowCommandHelpAndExit(c, c.Command.FullName(), 1)
	}

	h, cfg, err := setup(c)
	if err != nil {
		return cli.NewExitError(err, 1)
	}
	defer h.Close()

	dst, err := h.Compile(c.Args().First(), hexpix.CompileOptions{
		Output: c.String("output"),
		Colors: intFlag(c, "colors", cfg.Colors),
	})
	if err != nil {
		return cli.NewExitError(err, 1)
	}

	fmt.Println(dst)

	return nil
}

func render(c *cli.Context) error {
	if c.NArg() < 1 {
		cli.ShowCommandHelpAndExit(c, c.Command.FullName(), 1)
	}

	h, cfg, err := setup(c)
	if err != nil {
		return cli.NewExitError(err, 1)
	}
	defer h.Close()

	src := c.Args().First()

	r, err := h.Render(src, hexpix.RenderOptions{
		Format: stringFlag(c, "format", cfg.Format),
		Scale:  intFlag(c, "scale", cfg.Scale),
	})
	if err != nil {
		return cli.NewExitError(err, 1)
	}

	if _, err := h.WriteRendering(r, src, c.String("output")); err != nil {
		return cli.NewExitError(err, 1)
	}

	fmt.Println(r.Width, r.Height)

	return nil
}

func scan(c *cli.Context) error {
	if c.NArg() < 1 {
		cli.ShowCommandHelpAndExit(c, c.Command.FullName(), 1)
	}

	h, cfg, err := setup(c)
	if err != nil {
		return cli.NewExitError(err, 1)
	}
	defer h.Close()

	opts := hexpix.CompileOptions{
		Colors: intFlag(c, "colors", cfg.Colors),
	}

	if err := h.Scan(c.Args().First(), opts, intFlag(c, "workers", cfg.Workers)); err != nil {
		return cli.NewExitError(err, 1)
	}

	return nil
}

type info struct {
	File   string `json:"file"`
	Width  int    `json:"width"`
	Height int    `json:"height"`
}

func identify(c *cli.Context) error {
	if c.NArg() < 1 {
		cli.ShowCommandHelpAndExit(c, c.Command.FullName(), 1)
	}

	file := c.Args().First()

	f, err := os.Open(file)
	if err != nil {
		return cli.NewExitError(err, 1)
	}
	defer f.Close()

	cfg, err := container.DecodeConfig(f)
	if err != nil {
		return cli.NewExitError(fmt.Errorf("%s: %w", file, err), 1)
	}

	if c.Bool("json") {
		var json = jsoniter.ConfigCompatibleWithStandardLibrary

		b, err := json.MarshalIndent(info{file, cfg.Width, cfg.Height}, "", "  ")
		if err != nil {
			return cli.NewExitError(err, 1)
		}
		fmt.Println(string(b))
		return nil
	}

	fmt.Printf("File:       %s\n", file)
	fmt.Printf("Dimensions: %d x %d\n", cfg.Width, cfg.Height)

	return nil
}

func list(c *cli.Context) error {
	h, _, err := setup(c)
	if err != nil {
		return cli.NewExitError(err, 1)
	}
	defer h.Close()

	if h.Catalog() == nil {
		return cli.NewExitError("no catalog", 1)
	}

	entries, err := h.Catalog().Entries()
	if err != nil {
		return cli.NewExitError(err, 1)
	}

	for _, e := range entries {
		fmt.Printf("%s\t%dx%d\t%d\t%s\n", e.SHA1, e.Width, e.Height, e.Colors, e.Path)
	}

	return nil
}

func main() {
	app := cli.NewApp()

	app.Name = "hexpix"
	app.Usage = "Hex container image conversion utility"
	app.Version = "1.0.0"

	cwd, err := os.Getwd()
	if err != nil {
		log.Fatal(err)
	}

	colorsFlag := &cli.IntFlag{
		Name:  "colors",
		Usage: "reduce the image to at most `N` colors, 0 keeps every color",
	}

	app.Flags = []cli.Flag{
		&cli.StringFlag{
			Name:    "db",
			EnvVars: []string{"HEXPIX_DB"},
			Value:   filepath.Join(cwd, defaultDB),
			Usage:   "path to catalog, empty disables it",
		},
		&cli.StringFlag{
			Name:    "config",
			EnvVars: []string{"HEXPIX_CONFIG"},
			Value:   filepath.Join(cwd, config.Filename),
			Usage:   "path to configuration file",
		},
		&cli.BoolFlag{
			Name:    "verbose",
			Aliases: []string{"v"},
			Usage:   "increase verbosity",
		},
	}

	app.Commands = []*cli.Command{
		{
			Name:        "compile",
			Usage:       "Compile an image to a hex container",
			Description: "",
			ArgsUsage:   "FILE",
			Flags: []cli.Flag{
				&cli.StringFlag{
					Name:    "output",
					Aliases: []string{"o"},
					Usage:   "container path, defaults to FILE with a " + container.Extension + " extension",
				},
				colorsFlag,
			},
			Action: compile,
		},
		{
			Name:        "render",
			Usage:       "Render a hex container as an image",
			Description: "Prints the width and height of the container once the image is written.",
			ArgsUsage:   "FILE",
			Flags: []cli.Flag{
				&cli.StringFlag{
					Name:    "output",
					Aliases: []string{"o"},
					Usage:   "image path, defaults to FILE with the format extension",
				},
				&cli.StringFlag{
					Name:  "format",
					Usage: "image format, png or bmp",
				},
				&cli.IntFlag{
					Name:  "scale",
					Usage: "enlarge each pixel to `N` by N",
				},
			},
			Action: render,
		},
		{
			Name:        "scan",
			Usage:       "Compile every image below a directory",
			Description: "",
			ArgsUsage:   "DIRECTORY",
			Flags: []cli.Flag{
				&cli.IntFlag{
					Name:  "workers",
					Usage: "number of images compiled at once",
				},
				colorsFlag,
			},
			Action: scan,
		},
		{
			Name:        "info",
			Usage:       "Print the dimensions of a hex container",
			Description: "",
			ArgsUsage:   "FILE",
			Flags: []cli.Flag{
				&cli.BoolFlag{
					Name:  "json",
					Usage: "print as JSON",
				},
			},
			Action: identify,
		},
		{
			Name:        "list",
			Usage:       "List the containers in the catalog",
			Description: "",
			Action:      list,
		},
	}

	if err := app.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}
