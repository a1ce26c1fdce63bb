// cmd/routeparse/main.go

package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"

	"github.com/neoradar-project/route-handler-sub000/internal/loader"
	"github.com/neoradar-project/route-handler-sub000/pkg/airway"
	applog "github.com/neoradar-project/route-handler-sub000/pkg/log"
	"github.com/neoradar-project/route-handler-sub000/pkg/navdata"
	"github.com/neoradar-project/route-handler-sub000/pkg/parser"
	"github.com/neoradar-project/route-handler-sub000/pkg/procedure"
	"github.com/neoradar-project/route-handler-sub000/pkg/route"
	"github.com/neoradar-project/route-handler-sub000/pkg/util"
)

func main() {
	airwayFile := flag.String("airway-file", "", "path to a tab-separated airway text file")
	intersectionFile := flag.String("intersection-file", "", "path to a tab-separated intersection file")
	airportsDB := flag.String("airports-db", "", "path to a SQLite airports database")
	navaidsDB := flag.String("navaids-db", "", "path to a SQLite navaids database")
	origin := flag.String("origin", "", "origin airport ICAO")
	destination := flag.String("destination", "", "destination airport ICAO")
	defaultRule := flag.String("rule", "IFR", "default flight rule (IFR or VFR)")
	logDir := flag.String("log-dir", "", "directory for rotating log output")
	logLevel := flag.String("log-level", "info", "log level (debug, info, warn, error)")
	flag.Parse()

	if flag.NArg() != 1 {
		fmt.Printf("usage: routeparse [flags] <route string>\n")
		flag.PrintDefaults()
		os.Exit(1)
	}
	if *origin == "" || *destination == "" {
		fmt.Printf("both -origin and -destination are required\n")
		os.Exit(1)
	}

	rule := route.IFR
	if *defaultRule == "VFR" {
		rule = route.VFR
	}

	logger := applog.New(true, *logLevel, *logDir)

	ctx := context.Background()
	registry := navdata.NewRegistry(logger, true)
	procedures := procedure.NewStore()
	airways := airway.NewNetwork(logger)
	var errs util.ErrorLogger

	if *intersectionFile != "" {
		waypoints, err := loader.LoadIntersectionFile(*intersectionFile, logger, &errs)
		if err != nil {
			fmt.Printf("%v\n", err)
			os.Exit(1)
		}
		registry.AddProvider(navdata.NewMapProvider("intersections", navdata.PriorityNavdata, waypoints))
	}

	if *airportsDB != "" {
		waypoints, err := loader.LoadAirportsDB(ctx, *airportsDB)
		if err != nil {
			fmt.Printf("%v\n", err)
			os.Exit(1)
		}
		registry.AddProvider(navdata.NewMapProvider("airports", navdata.PriorityNavdata, waypoints))
	}

	if *navaidsDB != "" {
		waypoints, err := loader.LoadNavaidsDB(ctx, *navaidsDB)
		if err != nil {
			fmt.Printf("%v\n", err)
			os.Exit(1)
		}
		registry.AddProvider(navdata.NewMapProvider("navaids", navdata.PriorityNavdata, waypoints))
	}

	if *airwayFile != "" {
		if err := loader.LoadAirwayFile(*airwayFile, airways, logger, &errs); err != nil {
			fmt.Printf("%v\n", err)
			os.Exit(1)
		}
		airways.Finalize()
	}

	if errs.HaveErrors() {
		errs.PrintErrors(logger)
	}

	if err := registry.RequireProviders(); err != nil {
		fmt.Printf("%v\n", err)
		os.Exit(1)
	}
	if *airwayFile != "" {
		if err := airways.RequireFinalized(); err != nil {
			fmt.Printf("%v\n", err)
			os.Exit(1)
		}
	}

	p := parser.New(registry, procedures, airways, logger)
	result := p.Parse(flag.Arg(0), *origin, *destination, rule)

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	if err := enc.Encode(result); err != nil {
		fmt.Printf("%v\n", err)
		os.Exit(1)
	}
}
