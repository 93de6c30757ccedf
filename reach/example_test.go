package reach_test

import (
	"fmt"

	"github.com/katalvlaran/togglenet/device"
	"github.com/katalvlaran/togglenet/reach"
)

// ExampleMinPresses lights ".##." using the buttons of the first sample device.
func ExampleMinPresses() {
	d, err := device.ParseLine("[.##.] (3) (1,3) (2) (2,3) (0,2) (0,1) {3,5,4,7}")
	if err != nil {
		fmt.Println("error:", err)
		return
	}
	presses, err := reach.MinPresses(d)
	if err != nil {
		fmt.Println("error:", err)
		return
	}
	fmt.Println(presses)
	// Output:
	// 2
}

// ExampleSearchDevice records one shortest sequence of button indices.
func ExampleSearchDevice() {
	d, _ := device.ParseLine("[###] (0) (1) (2) (0,1) {0,0,0}")
	res, err := reach.SearchDevice(d, reach.WithPath())
	if err != nil {
		fmt.Println("error:", err)
		return
	}
	fmt.Println(res.Presses, res.Path)
	// Output:
	// 2 [2 3]
}

// ExampleBuildTable prints the successors of state 0b01 for two buttons.
func ExampleBuildTable() {
	tab := reach.BuildTable(2, []uint64{0b01, 0b11})
	fmt.Println(tab.Row(0b01))
	// Output:
	// [0 2]
}
