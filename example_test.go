package auxcallback_test

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/joeycumines/go-auxcallback"
)

// Example_basicUsage demonstrates deferring callbacks from background
// goroutines, then draining them on the host goroutine.
func Example_basicUsage() {
	registry, err := auxcallback.NewRegistry()
	if err != nil {
		panic(err)
	}

	engine, err := auxcallback.NewEngine(registry,
		auxcallback.WithErrorSink(auxcallback.ErrorSinkFunc(func(message string) error {
			fmt.Println("reported:", message)
			return nil
		})),
	)
	if err != nil {
		panic(err)
	}

	sender := registry.SenderByIDInsert("io")

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		// e.g. an async I/O completion, handing its result back to the host
		result := "payload"
		_ = sender.Send(auxcallback.VoidFunc(func() error {
			fmt.Println("host received:", result)
			return nil
		}))
		_ = sender.Send(auxcallback.VoidFunc(func() error {
			return errors.New("write failed")
		}))
	}()
	wg.Wait()

	// host goroutine
	engine.Process("io")

	fmt.Println("invoked:", engine.Stats().Invoked)

	//output:
	//host received: payload
	//reported: write failed
	//invoked: 2
}

// ExampleEngine_Dispatch demonstrates the host calling convention.
func ExampleEngine_Dispatch() {
	registry, err := auxcallback.NewRegistry(auxcallback.WithCapacity(16))
	if err != nil {
		panic(err)
	}
	engine, err := auxcallback.NewEngine(registry)
	if err != nil {
		panic(err)
	}

	_ = registry.SenderByIDInsert("timers").Send(auxcallback.VoidFunc(func() error {
		fmt.Println("tick")
		return nil
	}))

	// all channels, non-blocking, for up to 50ms
	exceeded, err := engine.Dispatch(context.TODO(), nil, 50)
	fmt.Println(exceeded, err)

	_, err = engine.Dispatch(context.TODO(), "a", 1, 2)
	fmt.Println(err)

	//output:
	//tick
	//false <nil>
	//Invalid number of arguments for callback processing; must be 0, 1 or 2
}
