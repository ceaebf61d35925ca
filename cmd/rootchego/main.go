// Command rootchego runs the engine as a UCI process communicating over
// stdin/stdout.
package main

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/nkoppel/rootchego/internal/config"
	"github.com/nkoppel/rootchego/internal/engine"
	"github.com/nkoppel/rootchego/internal/uci"
	"github.com/seekerror/logw"
)

var configPath = flag.String("config", "", "Path to an optional TOML config file")

func init() {
	flag.Usage = func() {
		fmt.Fprint(os.Stderr, `usage: rootchego [options]

rootchego is a UCI chess engine.
Options:
`)
		flag.PrintDefaults()
	}
}

func main() {
	flag.Parse()
	ctx := context.Background()

	opts, err := config.Load(*configPath)
	if err != nil {
		logw.Exitf(ctx, "Failed to load config: %v", err)
	}

	e := engine.New(ctx, "rootchego", "nkoppel", opts)

	in := readStdinLines(ctx)
	switch <-in {
	case uci.ProtocolName:
		driver, out := uci.NewDriver(ctx, e, in)
		go writeStdoutLines(ctx, out)

		<-driver.Closed()

	default:
		flag.Usage()
		logw.Exitf(ctx, "Protocol not supported")
	}
}

func readStdinLines(ctx context.Context) <-chan string {
	ret := make(chan string, 1)
	go func() {
		defer close(ret)

		scanner := bufio.NewScanner(os.Stdin)
		scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
		for scanner.Scan() {
			logw.Debugf(ctx, "<< %v", scanner.Text())
			ret <- scanner.Text()
		}
	}()
	return ret
}

func writeStdoutLines(ctx context.Context, out <-chan string) {
	for line := range out {
		logw.Debugf(ctx, ">> %v", line)
		_, _ = fmt.Fprintln(os.Stdout, line)
	}
}
