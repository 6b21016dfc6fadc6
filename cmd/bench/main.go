// Command bench runs a synthetic lookup workload against the table and
// exposes optional pprof/Prometheus endpoints.
package main

import (
	"flag"
	"fmt"
	"log"
	"math/rand"
	"net/http"
	_ "net/http/pprof" // registers /debug/pprof/* on DefaultServeMux
	"runtime"
	"sync"
	"sync/atomic"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	pmet "github.com/IvanBrykalov/tcam/metrics/prom"
	"github.com/IvanBrykalov/tcam/policy"
	"github.com/IvanBrykalov/tcam/policy/nru2"
	"github.com/IvanBrykalov/tcam/policy/plru"
	"github.com/IvanBrykalov/tcam/tcam"
)

func main() {
	// ---- Flags ----
	var (
		width     = flag.Int("width", 48, "key width in bits [1..64]")
		capacity  = flag.Int("cap", 1024, "table capacity (slots)")
		cacheSize = flag.Int("cache", 8, "cache lines (0 = no cache tier)")
		polName   = flag.String("policy", "plru", "replacement policy: plru | nru2")

		workers  = flag.Int("workers", 2*runtime.GOMAXPROCS(0), "number of worker goroutines")
		duration = flag.Duration("duration", 10*time.Second, "benchmark duration")
		writePct = flag.Int("writes", 5, "learn/delete percentage [0..100]")
		scrubPct = flag.Int("scrub", 1, "scrub-tick percentage [0..100]")

		keys  = flag.Int("keys", 4096, "keyspace size")
		zipfS = flag.Float64("zipf_s", 1.1, "Zipf s > 1 (skew)")
		zipfV = flag.Float64("zipf_v", 1.0, "Zipf v")
		seed  = flag.Int64("seed", time.Now().UnixNano(), "random seed")

		httpAddr = flag.String("http", "", "serve /metrics and /debug/pprof on this address (e.g. :8080)")
	)
	flag.Parse()

	var pol policy.Policy
	switch *polName {
	case "plru":
		pol = plru.New()
	case "nru2":
		pol = nru2.New()
	default:
		log.Fatalf("unknown policy %q", *polName)
	}

	var metrics tcam.Metrics
	if *httpAddr != "" {
		metrics = pmet.New(nil, "tcam", "bench", nil)
		go func() {
			http.Handle("/metrics", promhttp.Handler())
			log.Printf("serving metrics and pprof on %s", *httpAddr)
			log.Fatal(http.ListenAndServe(*httpAddr, nil))
		}()
	}

	tb := tcam.New[int](tcam.Options[int]{
		Width:     *width,
		Capacity:  *capacity,
		CacheSize: *cacheSize,
		Policy:    pol,
		Metrics:   metrics,
	})

	// Preload the table so queries have something to hit.
	widthMask := ^uint64(0) >> (64 - uint(*width))
	for i := 0; i < *capacity; i++ {
		key := uint64(i) & widthMask
		if err := tb.Insert(i, key, widthMask, tcam.KindExact, i); err != nil {
			log.Fatalf("preload: %v", err)
		}
	}

	// ---- Workload ----
	var ops, found uint64
	stop := time.Now().Add(*duration)

	var wg sync.WaitGroup
	wg.Add(*workers)
	for w := 0; w < *workers; w++ {
		go func(id int) {
			defer wg.Done()
			r := rand.New(rand.NewSource(*seed + int64(id)*7919))
			z := rand.NewZipf(r, *zipfS, *zipfV, uint64(*keys-1))
			for time.Now().Before(stop) {
				key := z.Uint64() & widthMask
				switch p := r.Intn(100); {
				case p < *writePct/2:
					_, _ = tb.Learn(key, widthMask, tcam.KindExact, int(key))
				case p < *writePct:
					_ = tb.Delete(int(key) % *capacity)
				case p < *writePct+*scrubPct:
					tb.ScrubTick(func(tcam.Entry[int]) bool { return false })
				default:
					if res := tb.Query(key); res.Found {
						atomic.AddUint64(&found, 1)
					}
				}
				atomic.AddUint64(&ops, 1)
			}
		}(w)
	}
	wg.Wait()

	// ---- Report ----
	st := tb.Stats()
	total := atomic.LoadUint64(&ops)
	secs := (*duration).Seconds()
	fmt.Printf("ops=%d (%.0f/s) found=%d\n", total, float64(total)/secs, atomic.LoadUint64(&found))
	fmt.Printf("queries=%d hits=%d misses=%d hit%%=%.1f\n",
		st.Queries, st.Hits, st.Misses, 100*float64(st.Hits)/float64(st.Queries))
	fmt.Printf("evictions=%d scrubbed=%d entries=%d/%d\n",
		st.Evictions, st.ScrubDeleted, st.Entries, tb.Capacity())
}
