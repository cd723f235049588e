package main

import (
	"errors"
	"fmt"
	"log"
	"log/slog"
	"os"

	"github.com/urfave/cli/v2"

	"wordcharts/internal/config"
	"wordcharts/internal/pipeline"
	"wordcharts/internal/render"
	"wordcharts/internal/report"
)

func main() {
	app := &cli.App{
		Name:  "wordfreq",
		Usage: "Rank the most frequent words of a Chinese web page",
		Commands: []*cli.Command{
			analyzeCommand(),
		},
	}

	if err := app.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}

func analyzeCommand() *cli.Command {
	return &cli.Command{
		Name:      "analyze",
		Usage:     "Fetch a page and print its ranked words",
		ArgsUsage: "<url>",
		Flags: []cli.Flag{
			&cli.IntFlag{
				Name:  "min-freq",
				Usage: "minimum occurrences; 0 uses the default, clamped to the highest count",
			},
			&cli.StringFlag{
				Name:  "format",
				Value: report.FormatJSON,
				Usage: "output format: json or yaml",
			},
			&cli.StringFlag{
				Name:  "chart",
				Usage: "also render a chart: wordcloud, bar, line, pie or scatter",
			},
			&cli.StringFlag{
				Name:    "out",
				Aliases: []string{"o"},
				Usage:   "chart output file (.html for wordcloud/pie/scatter, .png for bar/line)",
			},
		},
		Action: runAnalyze,
	}
}

func runAnalyze(c *cli.Context) error {
	if c.NArg() != 1 {
		return errors.New("exactly one url is required")
	}

	var kind render.ChartKind
	if c.IsSet("chart") {
		k, err := render.ParseChartKind(c.String("chart"))
		if err != nil {
			return err
		}
		if c.String("out") == "" {
			return errors.New("--chart needs --out")
		}
		kind = k
	}

	cfg := config.Load()
	slog.SetDefault(cfg.Logger(os.Stderr))

	yamlCfg, err := config.LoadYAMLConfig()
	if err != nil {
		return fmt.Errorf("failed to load config file: %w", err)
	}
	p, err := pipeline.FromConfig(cfg, yamlCfg, nil)
	if err != nil {
		return err
	}

	res := report.Analyze(c.Context, p, c.Args().First(), c.Int("min-freq"))
	if err := report.Write(c.App.Writer, res, c.String("format")); err != nil {
		return err
	}
	if res.Error != "" {
		return cli.Exit(res.Error, 1)
	}

	if kind == "" {
		return nil
	}
	art, err := p.Render(res.Words, kind)
	if err != nil {
		return err
	}
	if err := report.WriteChart(c.String("out"), art); err != nil {
		return err
	}
	slog.Info("chart written", "kind", kind, "path", c.String("out"))
	return nil
}
