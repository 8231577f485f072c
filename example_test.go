package incr

import "fmt"

func ExampleState() {
	Bind(NewRuntime())
	defer Release()

	count := NewState(0)
	fmt.Println(count.Read())

	count.Write(10)
	fmt.Println(count.Read())

	// Output:
	// 0
	// 10
}

func ExampleNewEffect() {
	Bind(NewRuntime())
	defer Release()

	count := NewState(1)
	sub := NewEffect(func(sc *SignalContext) {
		fmt.Println("count:", count.Get(sc))
	})
	defer sub.Unsubscribe()

	Update()
	count.Write(2)

	// Output:
	// count: 1
	// count: 2
}

func ExampleMap() {
	Bind(NewRuntime())
	defer Release()

	celsius := NewState(20)
	fahrenheit := Map(celsius, func(c int) int { return c*9/5 + 32 })

	sub := NewEffect(func(sc *SignalContext) {
		fmt.Println(fahrenheit.Get(sc))
	})
	defer sub.Unsubscribe()

	Update()
	celsius.Write(25)

	// Output:
	// 68
	// 77
}

func ExampleNewFold() {
	Bind(NewRuntime())
	defer Release()

	n := NewState(0)
	sum := NewFold(n, 0, func(acc, v int) int { return acc + v })

	sub := NewEffect(func(sc *SignalContext) {
		fmt.Println("sum:", sum.Get(sc))
	})
	defer sub.Unsubscribe()

	Update()
	n.Write(1)
	n.Write(2)

	// Output:
	// sum: 0
	// sum: 1
	// sum: 3
}

func ExampleBatch() {
	Bind(NewRuntime())
	defer Release()

	first := NewState("Ada")
	last := NewState("Lovelace")
	sub := NewEffect(func(sc *SignalContext) {
		fmt.Println(first.Get(sc), last.Get(sc))
	})
	defer sub.Unsubscribe()
	Update()

	// effects see only the final coalesced state
	Batch(func() {
		first.Write("Grace")
		last.Write("Hopper")
	})

	// Output:
	// Ada Lovelace
	// Grace Hopper
}
