package main

import (
	"fmt"
	"os"
	"os/signal"
	"path/filepath"

	"github.com/calyx-lang/calyx/internal/ast"
	"github.com/calyx-lang/calyx/internal/cache"
	"github.com/calyx-lang/calyx/internal/config"
	"github.com/calyx-lang/calyx/internal/diagnostics"
	"github.com/calyx-lang/calyx/internal/loader"
	"github.com/calyx-lang/calyx/internal/resolver"
	"github.com/calyx-lang/calyx/internal/rewriters"
	"github.com/calyx-lang/calyx/internal/sigserve"
)

func usage() {
	fmt.Fprintln(os.Stderr, "usage:")
	fmt.Fprintln(os.Stderr, "  calyx resolve <dir>   resolve every module outline under <dir>")
	fmt.Fprintln(os.Stderr, "  calyx serve <dir>     resolve, then serve signatures over gRPC")
	os.Exit(2)
}

func main() {
	if len(os.Args) < 3 {
		usage()
	}
	command, dir := os.Args[1], os.Args[2]

	switch command {
	case "resolve":
		os.Exit(runResolve(dir, false))
	case "serve":
		os.Exit(runResolve(dir, true))
	default:
		usage()
	}
}

func runResolve(dir string, serve bool) int {
	cfg, err := config.Load(dir)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}

	rep := diagnostics.NewReporter()
	pipeline := rewriters.NewPipeline()
	var trace *rewriters.Trace
	for _, name := range cfg.Rewriters {
		if name == "trace" {
			trace = &rewriters.Trace{}
			pipeline.Register(trace)
		}
	}

	sourceDir := filepath.Join(dir, cfg.SourceDir)
	prog, err := loader.New(rep).LoadProgram(sourceDir)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}

	res := resolver.New(prog, rep, pipeline)
	res.ResolveProgram()

	rep.Render(os.Stderr)
	if trace != nil {
		for _, ev := range trace.Events {
			fmt.Fprintln(os.Stderr, "trace:", ev)
		}
	}

	if cfg.Cache.Enabled {
		if err := writeCache(filepath.Join(dir, cfg.Cache.Path), prog, res); err != nil {
			fmt.Fprintln(os.Stderr, "cache:", err)
		}
	}

	for _, clone := range prog.Artifacts() {
		fmt.Printf("compiled %s (from %s)\n", clone.Name, clone.ClonedFrom)
	}

	if serve {
		addr := cfg.Serve.Address
		if addr == "" {
			addr = "127.0.0.1:0"
		}
		if err := serveSignatures(addr, res); err != nil {
			fmt.Fprintln(os.Stderr, err)
			return 1
		}
	}

	if rep.ErrorCount() > 0 {
		return 1
	}
	return 0
}

func writeCache(path string, prog *ast.Program, res *resolver.Resolver) error {
	c, err := cache.Open(path)
	if err != nil {
		return err
	}
	defer c.Close()
	for _, m := range prog.Modules {
		if !m.SuccessfullyResolved {
			continue
		}
		sig, ok := res.Signatures().Get(m.Name)
		if !ok {
			continue
		}
		if err := c.Put(m.Name, cache.Fingerprint(m), sig); err != nil {
			return err
		}
	}
	return nil
}

func serveSignatures(addr string, res *resolver.Resolver) error {
	srv, err := sigserve.NewServer(res.Signatures())
	if err != nil {
		return err
	}
	if err := srv.ServeAsync(addr); err != nil {
		return err
	}
	fmt.Fprintln(os.Stderr, "serving signatures on", srv.Addr())

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt)
	<-stop
	srv.Stop()
	return nil
}
