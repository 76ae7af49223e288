package main

import (
	"flag"
	"fmt"
	"os"
	"time"

	"cloudfit/pkg/cloudfit"
)

func main() {
	if err := run(os.Args[1:]); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run(args []string) error {
	fs := flag.NewFlagSet("cloudfit", flag.ContinueOnError)
	zoom := fs.Float64("zoom", 1, "downsample factor to speed up fitting (>= 1)")
	angleOffset := fs.Float64("angle-offset", 0, "center of the canonical tilt-angle window, degrees")
	fixAngle := fs.Bool("fix-angle", false, "constrain the tilt angle to zero")
	fixSlope := fs.Bool("fix-slope", false, "constrain the linear background gradient to zero")
	conf := fs.Float64("conf", cloudfit.DefaultConfLevel, "confidence level for intervals, in (0, 1)")
	save := fs.String("save", "", "write the fit diagnostic figure to this PNG path")
	verbose := fs.Bool("v", false, "print fit diagnostics to stderr")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() != 1 {
		return fmt.Errorf("usage: cloudfit [flags] <image-file>")
	}
	inputPath := fs.Arg(0)

	img, err := loadImage(inputPath)
	if err != nil {
		return err
	}

	cfg := cloudfit.NewFitConfig()
	cfg.Zoom = *zoom
	cfg.AngleOffset = *angleOffset
	cfg.FixAngle = *fixAngle
	cfg.FixSlope = *fixSlope
	cfg.ConfLevel = *conf
	if *verbose {
		cfg.Logf = func(format string, a ...any) {
			fmt.Fprintf(os.Stderr, format+"\n", a...)
		}
	}

	start := time.Now()
	res, err := cloudfit.FitGaussian2D(img, cfg)
	if err != nil {
		return fmt.Errorf("fitting %s: %w", inputPath, err)
	}
	elapsed := time.Since(start)

	fmt.Println()
	fmt.Printf("=== 2D Gaussian Fit Results (%.2fs) ===\n", elapsed.Seconds())
	fmt.Printf("  Image size:   %d x %d\n", img.Rows(), img.Cols())
	for _, key := range res.Keys {
		p := res.Param(key)
		fmt.Printf("  %-8s = %10.3f +- %.4f\n", p.Name, p.Val, p.ErrHalfRange)
	}
	fmt.Printf("  NGauss        = %.4g\n", res.NGauss)
	fmt.Printf("  NSum          = %.4g\n", res.NSum)
	fmt.Printf("  NSum (BG sub) = %.4g\n", res.NSumBGSubtract)
	fmt.Println("=======================================")

	if *save != "" {
		if err := cloudfit.SaveFigure(res, *save); err != nil {
			return err
		}
		fmt.Printf("Figure saved: %s\n", *save)
	}
	return nil
}
