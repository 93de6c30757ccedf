// Package devicegen samples random devices with a planted solution, for
// property tests, benchmarks and the CLI's gen command.
//
// Every generated device is solvable in both senses. The planted press vector
// meets the counter targets, so its total bounds the counter answer; the
// buttons it presses an odd number of times reach the light pattern, so
// their count bounds the light answer.
//
//	ps, err := devicegen.Batch(10, 6, devicegen.WithSeed(1))
//	for _, p := range ps {
//		fmt.Println(p.Device) // "[.##..#] (0,3) ... {4,2,...}"
//	}
package devicegen
