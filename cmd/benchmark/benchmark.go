package main

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/krisalay/mvr"
	"github.com/krisalay/mvr/metrics"
	"github.com/krisalay/mvr/overrides"
	"github.com/krisalay/mvr/types"
)

// ================= STUB REGISTRY =================

// stubRegistry answers every package lookup with a derived address after a
// fixed latency, standing in for the remote service.
type stubRegistry struct {
	latency time.Duration
}

func (s stubRegistry) Get(ctx context.Context, url string) (*types.Response, error) {
	select {
	case <-time.After(s.latency):
	case <-ctx.Done():
		return nil, ctx.Err()
	}
	name := url[strings.LastIndex(url, "/")+1:]
	return &types.Response{
		StatusCode: http.StatusOK,
		Header:     http.Header{},
		Body:       []byte(fmt.Sprintf(`{"address":"0x%064x"}`, len(name))),
	}, nil
}

// ================= BENCHMARK =================

func main() {
	ctx := context.Background()

	const (
		names         = 2000
		cacheSize     = 1000
		maxConcurrent = 16
		overridden    = 100
		goroutines    = 200
		opsPerG       = 5000
		latency       = 2 * time.Millisecond
	)

	fmt.Println("\n================ RESOLVER LOAD BENCHMARK =================")
	fmt.Println("CONFIG")
	fmt.Println("---------------------------------")
	fmt.Println("Distinct Names :", names)
	fmt.Println("Cache Size     :", cacheSize)
	fmt.Println("Max Concurrent :", maxConcurrent)
	fmt.Println("Overrides      :", overridden)
	fmt.Println("Goroutines     :", goroutines)
	fmt.Println("Ops/Goroutine  :", opsPerG)
	fmt.Println("Fetch Latency  :", latency)
	fmt.Println("---------------------------------")

	// ---------------- Metrics ----------------
	reg := prometheus.NewRegistry()
	m := metrics.MustNewPrometheus(reg, "mvr")

	// ---------------- Resolver ----------------
	ov := overrides.New()
	for i := 0; i < overridden; i++ {
		ov = ov.WithPackage(fmt.Sprintf("@bench/p%d", i), fmt.Sprintf("0x%x", i))
	}
	cfg := mvr.DefaultConfig().
		WithEndpoint("http://registry.bench").
		WithMaxCacheSize(cacheSize).
		WithMaxConcurrentRequests(maxConcurrent).
		WithOverrides(ov)

	r, err := mvr.New(cfg, stubRegistry{latency: latency}, mvr.WithMetrics(m))
	if err != nil {
		panic(err)
	}

	// ---------------- Load Test ----------------
	fmt.Println("Running concurrency benchmark...")
	start := time.Now()

	var failures sync.Map
	wg := sync.WaitGroup{}
	wg.Add(goroutines)
	for i := 0; i < goroutines; i++ {
		go func(id int) {
			defer wg.Done()
			for j := 0; j < opsPerG; j++ {
				// skewed toward low indexes so the hot set fits in the cache
				n := (j * (id + 1)) % names
				if j%4 != 0 {
					n %= cacheSize / 2
				}
				if _, err := r.ResolvePackage(ctx, fmt.Sprintf("@bench/p%d", n)); err != nil {
					failures.Store(types.KindOf(err), true)
				}
			}
		}(i)
	}
	wg.Wait()

	duration := time.Since(start)
	totalOps := goroutines * opsPerG
	stats := r.CacheStats()

	fmt.Println("\n================ RESULTS =================")
	fmt.Printf("Total Operations : %d\n", totalOps)
	fmt.Printf("Total Time       : %v\n", duration)
	fmt.Printf("Throughput       : %.2f ops/sec\n", float64(totalOps)/duration.Seconds())
	fmt.Printf("Cache Entries    : %d / %d\n", stats.TotalEntries, stats.MaxSize)
	fmt.Printf("Cache Hit Rate   : %.2f%%\n", stats.HitRate()*100)
	failures.Range(func(k, _ any) bool {
		fmt.Printf("Failure Kind     : %v\n", k)
		return true
	})

	// ---------------- Metrics Dump ----------------
	fmt.Println("\n================ METRICS =================")
	families, err := reg.Gather()
	if err != nil {
		panic(err)
	}
	for _, mf := range families {
		for _, metric := range mf.GetMetric() {
			labels := ""
			for _, lp := range metric.GetLabel() {
				labels += fmt.Sprintf("{%s=%q}", lp.GetName(), lp.GetValue())
			}
			switch {
			case metric.GetCounter() != nil:
				fmt.Printf("%s%s %.0f\n", mf.GetName(), labels, metric.GetCounter().GetValue())
			case metric.GetHistogram() != nil:
				h := metric.GetHistogram()
				fmt.Printf("%s%s count=%d sum=%.3fs\n", mf.GetName(), labels, h.GetSampleCount(), h.GetSampleSum())
			}
		}
	}
	fmt.Println("=========================================")
}
