// Package main implements freightls, a small inspector that loads a
// plugin library and prints its flattened catalogs.
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/rs/zerolog"

	"github.com/dshills/freight"
)

// Version information (set via ldflags during build).
var (
	version = "dev"
)

func main() {
	os.Exit(run())
}

func run() int {
	opts := parseFlags()

	logLevel := zerolog.InfoLevel
	if opts.debug {
		logLevel = zerolog.DebugLevel
	}
	log := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).
		Level(logLevel).
		With().Timestamp().Logger()

	loaderOpts := []freight.LoaderOption{freight.WithLogger(log)}
	if opts.apiVersion != "" {
		loaderOpts = append(loaderOpts, freight.WithAPIVersion(opts.apiVersion))
	}
	loader := freight.NewLoader(loaderOpts...)

	if opts.path == "" {
		return listDiscovered(loader)
	}

	proxy, err := loader.Load(opts.path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}
	defer proxy.Close()

	fmt.Printf("%s %s (compatible since %s)\n", proxy.Name, proxy.Version, proxy.BackCompat)

	if err := printCatalogs(proxy); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}
	return 0
}

func listDiscovered(loader *freight.Loader) int {
	plugins, err := loader.Discover()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}
	if len(plugins) == 0 {
		fmt.Println("no plugins found")
		return 0
	}
	for _, info := range plugins {
		if info.Error != nil {
			fmt.Printf("%-20s %s (%v)\n", info.Name, info.State, info.Error)
			continue
		}
		fmt.Printf("%-20s %s %s\n", info.Name, info.Manifest.Version, info.Manifest.LibraryPath())
	}
	return 0
}

func printCatalogs(proxy *freight.Proxy) error {
	modules, err := proxy.Modules()
	if err != nil {
		return err
	}
	fmt.Println("\nModules:")
	for i, mod := range modules {
		if mod.Name == "" {
			continue
		}
		fmt.Printf("  %4d  %s\n", i, mod.Name)
	}

	functions, err := proxy.Functions()
	if err != nil {
		return err
	}
	fmt.Println("\nFunctions:")
	for i, fn := range functions {
		if fn.Name == "" {
			continue
		}
		fmt.Printf("  %4d  %s\n", i, fn.Name)
	}

	types, err := proxy.Types()
	if err != nil {
		return err
	}
	fmt.Println("\nTypes:")
	for i, typ := range types {
		if typ.Name == "" {
			continue
		}
		fmt.Printf("  %4d  %s (%v)\n", i, typ.Name, typ.Native)
	}

	traits, err := proxy.Traits()
	if err != nil {
		return err
	}
	fmt.Println("\nTraits:")
	for i, def := range traits {
		if def.Name == "" {
			continue
		}
		fmt.Printf("  %4d  %s (%d methods)\n", i, def.Name, len(def.Methods))
	}
	return nil
}

type options struct {
	path       string
	apiVersion string
	debug      bool
}

func parseFlags() options {
	var opts options
	var showVersion bool

	flag.StringVar(&opts.path, "path", "", "Plugin library to inspect (default: list discovered plugins)")
	flag.StringVar(&opts.path, "p", "", "Plugin library to inspect (shorthand)")
	flag.StringVar(&opts.apiVersion, "api-version", "", "Override the required API version")
	flag.BoolVar(&opts.debug, "debug", false, "Enable debug logging")
	flag.BoolVar(&opts.debug, "d", false, "Enable debug logging (shorthand)")
	flag.BoolVar(&showVersion, "version", false, "Show version information")
	flag.BoolVar(&showVersion, "v", false, "Show version information (shorthand)")

	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "freightls - plugin catalog inspector\n\n")
		fmt.Fprintf(os.Stderr, "Usage: freightls [options]\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		flag.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nExamples:\n")
		fmt.Fprintf(os.Stderr, "  freightls                   List discovered plugins\n")
		fmt.Fprintf(os.Stderr, "  freightls -p plug.so        Print a plugin's catalogs\n")
	}

	flag.Parse()

	if showVersion {
		fmt.Printf("freightls %s\n", version)
		os.Exit(0)
	}

	return opts
}
