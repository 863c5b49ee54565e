// Copyright (c) 2019 devblok
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package main

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"os/signal"
	"runtime/pprof"
	"runtime/trace"
	"sync"
	"sync/atomic"
	"syscall"
	"time"

	"github.com/gobuffalo/packr"
	log "github.com/sirupsen/logrus"
	flag "github.com/spf13/pflag"
	"golang.org/x/exp/mmap"

	"github.com/devblok/arvo/core"
	"github.com/devblok/arvo/utility/arv"
)

// Demo assets compiled into the binary
var StaticResources packr.Box

func init() {
	StaticResources = packr.NewBox("./assets")
}

// Profiling
var (
	cpuProfile   = flag.String("cpuprof", "", "Profile CPU usage to file")
	memProfile   = flag.String("memprof", "", "Profile memory usage into a file")
	traceProfile = flag.String("trace", "", "Trace output for profiling")
)

var (
	configFile = flag.String("config", "arvosim.toml", "Engine configuration file")
	duration   = flag.Duration("duration", 10*time.Second, "How long to run, 0 runs until interrupted")
	workers    = flag.Int("workers", 4, "Number of texture sharing workers")
)

var frameCounter int64

func main() {
	flag.Parse()

	if *cpuProfile != "" {
		f, err := os.Create(*cpuProfile)
		if err != nil {
			panic(err)
		}
		if err := pprof.StartCPUProfile(f); err != nil {
			panic(err)
		}
		defer pprof.StopCPUProfile()
	}

	if *traceProfile != "" {
		f, err := os.Create(*traceProfile)
		if err != nil {
			panic(err)
		}
		if err := trace.Start(f); err != nil {
			panic(err)
		}
		defer trace.Stop()
	}

	configuration, err := core.LoadConfiguration(*configFile)
	if err != nil {
		log.Fatal(err)
	}

	archiveFile, err := buildAssetArchive()
	if err != nil {
		log.Fatal(err)
	}
	defer os.Remove(archiveFile)

	archiveReader, err := mmap.Open(archiveFile)
	if err != nil {
		log.Fatal(err)
	}
	defer archiveReader.Close()

	archive, err := arv.Open(archiveReader)
	if err != nil {
		log.Fatal(err)
	}

	engine := core.NewContext(configuration)
	engine.SetAssets(core.NewAssetSource(archive))

	timeService := core.NewTime(configuration.Time)
	defer timeService.Stop()

	texture, err := engine.LoadTexture("brick.png")
	if err != nil {
		log.Fatal(err)
	}

	ctx, cancel := context.WithCancel(context.Background())

	interrupts := make(chan os.Signal, 1)
	signal.Notify(interrupts, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-interrupts
		cancel()
	}()

	if *duration > 0 {
		time.AfterFunc(*duration, cancel)
	}

	programSync := sync.WaitGroup{}

	/* Frame counter loop */
	programSync.Add(1)
	go func(ctx context.Context, wg *sync.WaitGroup) {
	CounterLoop:
		for {
			select {
			case <-ctx.Done():
				break CounterLoop
			default:
				currentCount := atomic.LoadInt64(&frameCounter)
				atomic.StoreInt64(&frameCounter, 0)
				fmt.Printf("\r\033[2KFrame count: %d\tTexture refs: %d", currentCount*5, texture.Refs())
				time.Sleep(200 * time.Millisecond)
				// 200 ms * 5 = 1s, therefore we need to mutiply the count
			}
		}
		wg.Done()
	}(ctx, &programSync)

	/* Mesh churn loop */
	programSync.Add(1)
	go func(ctx context.Context, wg *sync.WaitGroup) {
	ChurnLoop:
		for {
			select {
			case <-ctx.Done():
				break ChurnLoop
			case <-timeService.FpsTicker().C:
				holder, err := engine.LoadMesh("quad.json")
				if err != nil {
					log.Error("mesh load: " + err.Error())
					continue ChurnLoop
				}
				if _, err := engine.Meshes().Get(holder.Handle()); err != nil {
					log.Error("mesh lookup: " + err.Error())
				}
				if err := holder.Close(); err != nil {
					log.Error("mesh close: " + err.Error())
				}
				atomic.AddInt64(&frameCounter, 1)
			}
		}
		wg.Done()
	}(ctx, &programSync)

	/* Texture sharing workers */
	for idx := 0; idx < *workers; idx++ {
		programSync.Add(1)
		go func(ctx context.Context, wg *sync.WaitGroup) {
		WorkerLoop:
			for {
				select {
				case <-ctx.Done():
					break WorkerLoop
				default:
					ref, err := texture.Acquire()
					if err != nil {
						log.Error("texture acquire: " + err.Error())
						break WorkerLoop
					}
					if _, err := engine.Textures().Get(ref.Handle()); err != nil {
						log.Error("texture lookup: " + err.Error())
					}
					time.Sleep(time.Millisecond)
					if err := ref.Close(); err != nil {
						log.Error("texture close: " + err.Error())
					}
				}
			}
			wg.Done()
		}(ctx, &programSync)
	}

	<-ctx.Done()
	programSync.Wait()
	fmt.Println()

	if err := texture.Close(); err != nil {
		log.Error("texture teardown: " + err.Error())
	}

	if leaked := engine.Shutdown(); leaked > 0 {
		log.Warnf("shutdown swept up %d leaked objects", leaked)
	}

	if *memProfile != "" {
		f, err := os.Create(*memProfile)
		if err != nil {
			panic(err)
		}
		if err := pprof.WriteHeapProfile(f); err != nil {
			panic(err)
		}
	}
}

func buildAssetArchive() (string, error) {
	builder, err := arv.NewBuilder(arv.Header{
		Author:      "arvosim",
		DateCreated: time.Now().Unix(),
		Version:     1,
	})
	if err != nil {
		return "", err
	}

	for _, name := range []string{"quad.json", "brick.png"} {
		if err := builder.Add(name, bytes.NewReader(StaticResources.Bytes(name))); err != nil {
			return "", err
		}
	}

	f, err := os.CreateTemp("", "arvosim*.arv")
	if err != nil {
		return "", err
	}
	defer f.Close()

	if _, err := builder.WriteTo(f); err != nil {
		os.Remove(f.Name())
		return "", err
	}
	return f.Name(), nil
}
