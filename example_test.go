package ordsearch_test

import (
	"cmp"
	"context"
	"fmt"
	"log"
	"slices"

	"github.com/hupe1980/ordsearch"
)

// Example demonstrates building from unsorted values and querying successors.
func Example() {
	c, err := ordsearch.New([]int{64, 1, 32, 2, 16, 4, 8})
	if err != nil {
		log.Fatal(err)
	}

	for _, x := range []int{0, 3, 8, 65} {
		v, ok := c.FindGTE(x)
		fmt.Println(x, v, ok)
	}
	// Output:
	// 0 1 true
	// 3 4 true
	// 8 8 true
	// 65 0 false
}

// ExampleFromSorted demonstrates streaming already sorted input.
func ExampleFromSorted() {
	sorted := []uint32{1, 2, 4, 8, 16, 32, 64, 128, 256}

	c, err := ordsearch.FromSorted(slices.Values(sorted), len(sorted))
	if err != nil {
		log.Fatal(err)
	}

	v, ok := c.FindGTE(10)
	fmt.Println(v, ok, c.Height())
	// Output: 16 true 4
}

// ExampleFromSlice demonstrates a collection of references into a slice.
func ExampleFromSlice() {
	s := []int{30, 10, 20}

	c, err := ordsearch.FromSlice(s)
	if err != nil {
		log.Fatal(err)
	}

	p, _ := ordsearch.FindGTERef(c, 15)
	*p++ // Points into s; the order still holds.

	fmt.Println(s)
	// Output: [10 21 30]
}

// ExampleFindGTEFunc demonstrates querying records by a projected key.
func ExampleFindGTEFunc() {
	type event struct {
		At   int
		Name string
	}

	timeline := ordsearch.Must(ordsearch.NewFunc([]event{
		{At: 900, Name: "standup"},
		{At: 1300, Name: "lunch"},
		{At: 1000, Name: "review"},
	}, func(a, b event) int { return cmp.Compare(a.At, b.At) }))

	next, ok := ordsearch.FindGTEFunc(timeline, 930, func(e event, at int) int {
		return cmp.Compare(e.At, at)
	})
	fmt.Println(next.Name, ok)
	// Output: review true
}

// ExampleCollection_All demonstrates in-order iteration.
func ExampleCollection_All() {
	c := ordsearch.Must(ordsearch.New([]string{"c", "a", "b"}))

	for v := range c.All() {
		fmt.Print(v, " ")
	}
	fmt.Println()
	// Output: a b c
}

// ExampleLive demonstrates swapping in a rebuilt collection.
func ExampleLive() {
	live := ordsearch.NewLive(ordsearch.Must(ordsearch.New([]int{10, 20, 30})))

	_, err := live.Reload(context.Background(), func(context.Context) (*ordsearch.Collection[int], error) {
		return ordsearch.New([]int{15, 25, 35})
	})
	if err != nil {
		log.Fatal(err)
	}

	v, _ := live.FindGTE(11)
	fmt.Println(v)
	// Output: 15
}

// ExampleBasicMetricsCollector demonstrates in-memory metrics.
func ExampleBasicMetricsCollector() {
	metrics := &ordsearch.BasicMetricsCollector{}
	c := ordsearch.Must(ordsearch.New([]int{1, 2, 3}, ordsearch.WithMetricsCollector(metrics)))

	c.FindGTE(2)
	c.FindGTE(9)

	stats := metrics.GetStats()
	fmt.Println(stats.BuildCount, stats.SearchCount, stats.SearchHits)
	// Output: 1 2 1
}
