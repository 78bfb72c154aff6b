package main

import (
	"context"
	"fmt"
	"go/format"
	"log"
	"os"
	"time"

	"github.com/delaneyj/propertyparty/cmd/codegen/templates"
	"github.com/urfave/cli/v3"
)

const (
	outKey     = "out"
	packageKey = "package"
	kindsKey   = "kinds"
)

func main() {
	cmd := &cli.Command{
		Name:  "generate",
		Usage: "Generate the builtin interpolators of the property package",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  outKey,
				Usage: "File to write",
				Value: "property/interpolate_gen.go",
			},
			&cli.StringFlag{
				Name:  packageKey,
				Usage: "Package name of the generated file",
				Value: "property",
			},
			&cli.StringSliceFlag{
				Name:  kindsKey,
				Usage: "Numeric types to generate, all of them when empty",
			},
		},
		Action: generate,
	}
	if err := cmd.Run(context.Background(), os.Args); err != nil {
		log.Fatal(err)
	}
}

func generate(ctx context.Context, cmd *cli.Command) error {
	start := time.Now()
	log.Printf("Codegen for interpolators started !")
	defer func() {
		log.Printf("Codegen for interpolators finished in %v", time.Since(start))
	}()

	kinds, unknown := templates.SelectKinds(cmd.StringSlice(kindsKey))
	if len(unknown) > 0 {
		return fmt.Errorf("unknown numeric types %v", unknown)
	}
	log.Printf("Generating %d interpolators", len(kinds))

	contents := templates.InterpolateGen(cmd.String(packageKey), kinds)
	src, err := format.Source([]byte(contents))
	if err != nil {
		return fmt.Errorf("formatting generated code: %w", err)
	}

	out := cmd.String(outKey)
	if err := os.WriteFile(out, src, 0644); err != nil {
		return err
	}
	log.Printf("Wrote %s", out)

	return nil
}
