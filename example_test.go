//go:build unix

package nvstore_test

import (
	"errors"
	"fmt"
	"log"
	"os"

	"github.com/hupe1980/nvstore"
)

// Example demonstrates a store, load and delete cycle.
func Example() {
	root, err := os.MkdirTemp("", "nvstore-example-*")
	if err != nil {
		log.Fatal(err)
	}
	defer os.RemoveAll(root)

	dir, err := nvstore.Prepare(root)
	if err != nil {
		log.Fatal(err)
	}
	defer dir.Close()

	if err := dir.Store(0, "permall", []byte("state")); err != nil {
		log.Fatal(err)
	}

	data, err := dir.Load(0, "permall")
	if err != nil {
		log.Fatal(err)
	}
	fmt.Printf("%s\n", data)

	if err := dir.Delete(0, "permall", true); err != nil {
		log.Fatal(err)
	}

	_, err = dir.Load(0, "permall")
	fmt.Println(errors.Is(err, nvstore.ErrRetry))
	// Output:
	// state
	// true
}

// ExampleResolvePath shows the on-disk names of both layout versions.
func ExampleResolvePath() {
	for _, v := range []nvstore.Version{nvstore.Version1, nvstore.Version2} {
		cfg := nvstore.Config{Version: v}
		perm, _ := nvstore.ResolvePath(cfg, "/tmp/teststate", 0, "permall", false)
		temp, _ := nvstore.ResolvePath(cfg, "/tmp/teststate", 0, "permall", true)
		fmt.Println(perm, temp)
	}
	// Output:
	// /tmp/teststate/tpm-00.permall /tmp/teststate/TMP-00.permall
	// /tmp/teststate/tpm2-00.permall /tmp/teststate/TMP2-00.permall
}

// ExampleWithMetricsCollector shows the built-in counters.
func ExampleWithMetricsCollector() {
	root, err := os.MkdirTemp("", "nvstore-example-*")
	if err != nil {
		log.Fatal(err)
	}
	defer os.RemoveAll(root)

	metrics := &nvstore.BasicMetricsCollector{}
	dir, err := nvstore.Prepare(root, nvstore.WithMetricsCollector(metrics))
	if err != nil {
		log.Fatal(err)
	}
	defer dir.Close()

	_, _ = dir.Load(0, "permall")
	_ = dir.Store(0, "permall", []byte("abc"))
	_, _ = dir.Load(0, "permall")

	stats := metrics.GetStats()
	fmt.Println(stats.LoadCount, stats.LoadMisses, stats.StoreCount, stats.StoreBytes)
	// Output: 2 1 1 3
}
